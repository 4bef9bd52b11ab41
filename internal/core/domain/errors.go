package domain

// ErrorCode is the machine-readable error identifier exposed in the API
// error envelope. Values are stable contract: clients switch on them.
type ErrorCode string

const (
	CodeInvalidRequest ErrorCode = "invalid_request"
	CodeNotFound       ErrorCode = "not_found"
	CodeNotAllowed     ErrorCode = "not_allowed"
	CodeAuthFailed     ErrorCode = "auth_failed"
	CodeInvalidToken   ErrorCode = "invalid_token"
	CodeServerError    ErrorCode = "server_error"
)

// APIError is a domain failure that maps 1:1 onto the API error envelope.
// Detail carries optional structured context (e.g. field-level validation
// violations) and is omitted from the response when nil.
type APIError struct {
	Code    ErrorCode
	Message string
	Detail  any
}

func (e *APIError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewAPIError builds an APIError without detail.
func NewAPIError(code ErrorCode, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// NewValidationError builds an invalid_request error carrying a map of
// field name to violated constraints.
func NewValidationError(detail map[string][]string) *APIError {
	return &APIError{Code: CodeInvalidRequest, Message: "Invalid parameter.", Detail: detail}
}

// Sentinel errors. Compared with errors.Is (pointer identity), mapped to
// HTTP responses by the API error handler.
var (
	// ErrAuthFailed covers both unknown email and wrong password: login
	// deliberately does not reveal which factor failed.
	ErrAuthFailed = NewAPIError(CodeAuthFailed, "Invalid credentials.")

	// ErrAuthRequired is returned when a protected route is hit without a
	// bearer token.
	ErrAuthRequired = NewAPIError(CodeAuthFailed, "Authorization required.")

	// ErrInvalidToken covers unknown, revoked and expired tokens alike.
	ErrInvalidToken = NewAPIError(CodeInvalidToken, "Invalid token.")

	ErrTokenNotFound      = NewAPIError(CodeNotFound, "Token not found.")
	ErrCredentialNotFound = NewAPIError(CodeNotFound, "Credential does not exist.")
	ErrUserNotFound       = NewAPIError(CodeNotFound, "User does not exist.")
	ErrPostNotFound       = NewAPIError(CodeNotFound, "Post does not exist.")

	// ErrUserNotOnboarded gates actions that require a created profile.
	// Deliberately a not_found, not an auth error: the caller is
	// authenticated but has not finished onboarding.
	ErrUserNotOnboarded = NewAPIError(CodeNotFound, "Create user first.")

	ErrUserAlreadyCreated = NewAPIError(CodeInvalidRequest, "User already created.")
	ErrEmailTaken         = NewAPIError(CodeInvalidRequest, "Email already in use.")
	ErrHandleTaken        = NewAPIError(CodeInvalidRequest, "Handle already in use.")
	ErrNotPostAuthor      = NewAPIError(CodeNotAllowed, "Not the author of this post.")
)
