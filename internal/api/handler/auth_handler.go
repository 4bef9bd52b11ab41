package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kotonoha-app/kotonoha-api/internal/api/metrics"
	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
	"github.com/kotonoha-app/kotonoha-api/internal/core/ports"
)

// AuthHandler handles registration, login, logout and credential
// introspection.
type AuthHandler struct {
	credentials ports.CredentialService
	tokens      ports.TokenService
}

func NewAuthHandler(credentials ports.CredentialService, tokens ports.TokenService) *AuthHandler {
	return &AuthHandler{credentials: credentials, tokens: tokens}
}

// Register creates a new credential.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Email and raw password"
// @Success      201
// @Failure      400   {object}  errorBody
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewAPIError(domain.CodeInvalidRequest, "Failed to parse request.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.credentials.Register(c.Request().Context(), req.Email, req.RawPassword); err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.NoContent(http.StatusCreated)
}

// Login verifies credentials and issues a bearer token. Any verification
// failure is the same generic auth_failed: the response never reveals
// whether the email or the password was wrong.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  errorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewAPIError(domain.CodeInvalidRequest, "Failed to parse request.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cred, err := h.credentials.Verify(c.Request().Context(), req.Email, req.RawPassword)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		return err
	}

	token, err := h.tokens.Issue(c.Request().Context(), cred.ID)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	metrics.TokensIssuedTotal.Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Logout revokes the bearer token the request was authenticated with.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	authCtx := ctxAuth(c)

	if err := h.tokens.Revoke(c.Request().Context(), authCtx.Token); err != nil {
		return err
	}

	metrics.TokensRevokedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Me returns the caller's credential (id, email, timestamps; never the
// password hash).
//
// @Summary      Show own credential
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  credentialResponse
// @Failure      401   {object}  errorBody
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	authCtx := ctxAuth(c)
	return c.JSON(http.StatusOK, credentialResponse{Credential: authCtx.Credential})
}
