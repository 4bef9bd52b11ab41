package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kotonoha-app/kotonoha-api/internal/api/middleware"
	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

type stubCredentialService struct {
	registerFn func(ctx context.Context, email, rawPassword string) (string, error)
	verifyFn   func(ctx context.Context, email, rawPassword string) (*domain.Credential, error)
}

func (s *stubCredentialService) Register(ctx context.Context, email, rawPassword string) (string, error) {
	return s.registerFn(ctx, email, rawPassword)
}

func (s *stubCredentialService) Verify(ctx context.Context, email, rawPassword string) (*domain.Credential, error) {
	return s.verifyFn(ctx, email, rawPassword)
}

type stubTokenService struct {
	issueFn  func(ctx context.Context, credentialID string) (string, error)
	verifyFn func(ctx context.Context, token string) (*domain.Token, error)
	revokeFn func(ctx context.Context, token string) error
}

func (s *stubTokenService) Issue(ctx context.Context, credentialID string) (string, error) {
	return s.issueFn(ctx, credentialID)
}

func (s *stubTokenService) Verify(ctx context.Context, token string) (*domain.Token, error) {
	return s.verifyFn(ctx, token)
}

func (s *stubTokenService) Revoke(ctx context.Context, token string) error {
	return s.revokeFn(ctx, token)
}

// jsonContext builds an echo context with the request body and the real
// validator wired in, the way the router configures it.
func jsonContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authedContext(method, target, body string, authCtx *domain.AuthContext) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := jsonContext(method, target, body)
	c.Set(middleware.AuthContextKey, authCtx)
	return c, rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	creds := &stubCredentialService{
		registerFn: func(ctx context.Context, email, rawPassword string) (string, error) {
			if email != "alice@example.com" || rawPassword != "correct horse" {
				t.Fatalf("unexpected args: %s %s", email, rawPassword)
			}
			return "cred-1", nil
		},
	}
	handler := NewAuthHandler(creds, nil)

	c, rec := jsonContext(http.MethodPost, "/auth/register", `{"email":"alice@example.com","raw_password":"correct horse"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	creds := &stubCredentialService{
		registerFn: func(ctx context.Context, email, rawPassword string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	handler := NewAuthHandler(creds, nil)

	c, _ := jsonContext(http.MethodPost, "/auth/register", `{"email":"alice@example.com","raw_password":"short"}`)
	err := handler.Register(c)

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != domain.CodeInvalidRequest {
		t.Fatalf("expected invalid_request, got %v", err)
	}
	detail, ok := apiErr.Detail.(map[string][]string)
	if !ok || len(detail["raw_password"]) == 0 {
		t.Fatalf("expected raw_password detail, got %+v", apiErr.Detail)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	creds := &stubCredentialService{
		registerFn: func(ctx context.Context, email, rawPassword string) (string, error) {
			return "", domain.ErrEmailTaken
		},
	}
	handler := NewAuthHandler(creds, nil)

	c, _ := jsonContext(http.MethodPost, "/auth/register", `{"email":"alice@example.com","raw_password":"correct horse"}`)
	if err := handler.Register(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	creds := &stubCredentialService{
		registerFn: func(ctx context.Context, email, rawPassword string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	handler := NewAuthHandler(creds, nil)

	c, _ := jsonContext(http.MethodPost, "/auth/register", "not-json")
	err := handler.Register(c)

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != domain.CodeInvalidRequest {
		t.Fatalf("expected invalid_request, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	creds := &stubCredentialService{
		verifyFn: func(ctx context.Context, email, rawPassword string) (*domain.Credential, error) {
			return &domain.Credential{ID: "cred-1", Email: email}, nil
		},
	}
	tokens := &stubTokenService{
		issueFn: func(ctx context.Context, credentialID string) (string, error) {
			if credentialID != "cred-1" {
				t.Fatalf("unexpected credential id: %s", credentialID)
			}
			return "token123", nil
		},
	}
	handler := NewAuthHandler(creds, tokens)

	c, rec := jsonContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","raw_password":"correct horse"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	creds := &stubCredentialService{
		verifyFn: func(ctx context.Context, email, rawPassword string) (*domain.Credential, error) {
			return nil, domain.ErrAuthFailed
		},
	}
	handler := NewAuthHandler(creds, &stubTokenService{})

	c, _ := jsonContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","raw_password":"wrong"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	revoked := ""
	tokens := &stubTokenService{
		revokeFn: func(ctx context.Context, token string) error {
			revoked = token
			return nil
		},
	}
	handler := NewAuthHandler(&stubCredentialService{}, tokens)

	authCtx := &domain.AuthContext{Token: "token123", Credential: &domain.Credential{ID: "cred-1"}}
	c, rec := authedContext(http.MethodPost, "/auth/logout", "", authCtx)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if revoked != "token123" {
		t.Fatalf("expected the session token revoked, got %q", revoked)
	}
}

func TestAuthHandler_Logout_AlreadyRevoked(t *testing.T) {
	tokens := &stubTokenService{
		revokeFn: func(ctx context.Context, token string) error {
			return domain.ErrTokenNotFound
		},
	}
	handler := NewAuthHandler(&stubCredentialService{}, tokens)

	authCtx := &domain.AuthContext{Token: "token123", Credential: &domain.Credential{ID: "cred-1"}}
	c, _ := authedContext(http.MethodPost, "/auth/logout", "", authCtx)

	if err := handler.Logout(c); !errors.Is(err, domain.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	handler := NewAuthHandler(&stubCredentialService{}, &stubTokenService{})

	authCtx := &domain.AuthContext{
		Token:      "token123",
		Credential: &domain.Credential{ID: "cred-1", Email: "alice@example.com", PasswordHash: "secret-hash"},
	}
	c, rec := authedContext(http.MethodGet, "/auth/me", "", authCtx)

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	cred, ok := resp["credential"].(map[string]any)
	if !ok {
		t.Fatalf("expected credential in response")
	}
	if cred["id"] != "cred-1" || cred["email"] != "alice@example.com" {
		t.Fatalf("unexpected credential payload: %+v", cred)
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("password hash leaked into the response")
	}
}
