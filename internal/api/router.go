package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kotonoha-app/kotonoha-api/internal/api/handler"
	"github.com/kotonoha-app/kotonoha-api/internal/api/middleware"
	"github.com/kotonoha-app/kotonoha-api/internal/core/service"
	mongodb "github.com/kotonoha-app/kotonoha-api/internal/infrastructure/db/mongo"
	"github.com/kotonoha-app/kotonoha-api/internal/infrastructure/http/handlers"
)

// Options carries the tunables the router threads into the auth services.
type Options struct {
	TokenTTL      time.Duration
	LoginDelayMin time.Duration
	LoginDelayMax time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("kotonoha"))

	// --- Repositories ---
	credentialRepo := mongodb.NewCredentialRepository(db)
	tokenRepo := mongodb.NewTokenRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)

	// --- Services ---
	credentialService := service.NewCredentialService(credentialRepo, opts.LoginDelayMin, opts.LoginDelayMax, log)
	tokenService := service.NewTokenService(tokenRepo, opts.TokenTTL, log)
	identityService := service.NewIdentityService(credentialRepo, userRepo, log)
	userService := service.NewUserService(userRepo, log)
	postService := service.NewPostService(postRepo, userRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(credentialService, tokenService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)

	required := middleware.Required(tokenService, identityService)
	optional := middleware.Optional(tokenService, identityService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, required)
	e.GET("/auth/me", authHandler.Me, required)

	// --- User routes ---
	e.POST("/users", userHandler.Create, required)
	e.GET("/users/my", userHandler.ShowMe, required)
	e.PATCH("/users/my", userHandler.UpdateMe, required)
	e.GET("/users/:id", userHandler.Show, optional)

	// --- Post routes ---
	e.POST("/posts", postHandler.Create, required)
	e.GET("/posts/my", postHandler.ListMine, required)
	e.GET("/posts/user/:user_id", postHandler.ListByUser, optional)
	e.GET("/posts/:id", postHandler.Show, optional)
	e.POST("/posts/:id/publish", postHandler.Publish, required)
	e.DELETE("/posts/:id", postHandler.Delete, required)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
