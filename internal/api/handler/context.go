package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kotonoha-app/kotonoha-api/internal/api/middleware"
	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

// ctxAuth returns the AuthContext the auth gate attached to the request, or
// nil when the request is anonymous (optional-auth routes only; on required
// routes the gate rejects before the handler runs).
func ctxAuth(c echo.Context) *domain.AuthContext {
	authCtx, _ := c.Get(middleware.AuthContextKey).(*domain.AuthContext)
	return authCtx
}

// ctxOnboarded returns the caller's profile-bearing AuthContext, or the
// domain "create user first" failure. Onboarding-gated actions (posting,
// "my" resources) funnel through this one predicate instead of re-deriving
// the check per call site.
func ctxOnboarded(c echo.Context) (*domain.AuthContext, error) {
	authCtx := ctxAuth(c)
	if !authCtx.Onboarded() {
		return nil, domain.ErrUserNotOnboarded
	}
	return authCtx, nil
}

// pathUUID reads a path parameter and checks it parses as a UUID before it
// reaches a repository query.
func pathUUID(c echo.Context, name string) (string, error) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", domain.NewAPIError(domain.CodeInvalidRequest, "Invalid uuid.")
	}
	return raw, nil
}
