package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

// errorBody is the canonical error envelope for all API errors:
// {"error":{"code":..,"message":..,"detail":..}}.
type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    domain.ErrorCode `json:"code"`
	Message string           `json:"message"`
	Detail  any              `json:"detail,omitempty"`
}

// statusForCode maps the stable error codes onto HTTP statuses. Conflicts
// (duplicate email/handle) are folded into invalid_request, matching the
// validation-style response the client already handles.
func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeInvalidRequest:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeNotAllowed:
		return http.StatusForbidden
	case domain.CodeAuthFailed, domain.CodeInvalidToken:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders domain APIErrors with their code, message and detail.
//   - Adds the bearer challenge on 401s (error="invalid_token" for bad
//     tokens, plain Bearer for missing auth).
//   - Logs anything unexpected and degrades it to a generic server_error
//     without leaking internals.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, payload := resolveError(err, log, c)

		switch payload.Code {
		case domain.CodeAuthFailed:
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		case domain.CodeInvalidToken:
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer error="invalid_token"`)
		}

		_ = c.JSON(status, errorBody{Error: payload})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorPayload) {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return statusForCode(apiErr.Code), errorPayload{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Detail:  apiErr.Detail,
		}
	}

	// Echo's own errors: bind failures, 404/405 from the router.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := domain.CodeInvalidRequest
		switch {
		case he.Code == http.StatusNotFound:
			code = domain.CodeNotFound
		case he.Code == http.StatusMethodNotAllowed:
			code = domain.CodeNotAllowed
		case he.Code >= http.StatusInternalServerError:
			code = domain.CodeServerError
		}
		return he.Code, errorPayload{Code: code, Message: fmt.Sprintf("%v", he.Message)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorPayload{
		Code:    domain.CodeServerError,
		Message: "Internal server error.",
	}
}
