package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kotonoha-app/kotonoha-api/internal/api/metrics"
	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
	"github.com/kotonoha-app/kotonoha-api/internal/core/ports"
)

// AuthContextKey is the echo context key under which the middleware stores
// the resolved *domain.AuthContext. Handlers read it through a typed
// accessor, never directly.
const AuthContextKey = "auth_context"

// Required gates a route on a valid bearer token: no token is auth_failed,
// a bad token is invalid_token.
func Required(tokens ports.TokenService, identity ports.IdentityService) echo.MiddlewareFunc {
	return auth(tokens, identity, true)
}

// Optional lets anonymous requests through without an AuthContext, but a
// presented token must still be valid: a malformed or expired token is an
// error, never silently anonymous.
func Optional(tokens ports.TokenService, identity ports.IdentityService) echo.MiddlewareFunc {
	return auth(tokens, identity, false)
}

// auth is a pure gate: it decides pass/reject and annotates the request
// context, and never touches domain data.
func auth(tokens ports.TokenService, identity ports.IdentityService, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				if required {
					return domain.ErrAuthRequired
				}
				return next(c)
			}

			rec, err := tokens.Verify(c.Request().Context(), token)
			if err != nil {
				// Storage faults are not bad tokens; only a real miss
				// counts as invalid.
				if errors.Is(err, domain.ErrInvalidToken) {
					metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				}
				return err
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			authCtx, err := identity.Resolve(c.Request().Context(), rec)
			if err != nil {
				return err
			}

			c.Set(AuthContextKey, authCtx)
			return next(c)
		}
	}
}

// bearerToken extracts the token from the standard authorization header.
// A missing or malformed header reads as "no token presented".
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
