package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

func seedCredential(repo *stubCredentialRepo, id, email string) {
	now := time.Now().UTC()
	_ = repo.Create(context.Background(), &domain.Credential{
		ID: id, Email: email, PasswordHash: "$argon2id$...", CreatedAt: now, UpdatedAt: now,
	})
}

func TestIdentityService_Resolve_NotOnboarded(t *testing.T) {
	creds := newStubCredentialRepo()
	users := newStubUserRepo()
	seedCredential(creds, "cred-1", "alice@example.com")
	svc := NewIdentityService(creds, users, zerolog.Nop())

	authCtx, err := svc.Resolve(context.Background(), &domain.Token{Token: "t", UserID: "cred-1"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !authCtx.Authenticated() {
		t.Fatalf("expected authenticated context")
	}
	if authCtx.Onboarded() {
		t.Fatalf("expected no profile for registered-only account")
	}
	if authCtx.Credential.ID != "cred-1" {
		t.Fatalf("unexpected credential: %+v", authCtx.Credential)
	}
	if authCtx.Token != "t" {
		t.Fatalf("token not carried into context")
	}
}

func TestIdentityService_Resolve_Onboarded(t *testing.T) {
	creds := newStubCredentialRepo()
	users := newStubUserRepo()
	seedCredential(creds, "cred-1", "alice@example.com")
	_ = users.Create(context.Background(), &domain.User{ID: "cred-1", IDName: "alice"})
	svc := NewIdentityService(creds, users, zerolog.Nop())

	authCtx, err := svc.Resolve(context.Background(), &domain.Token{Token: "t", UserID: "cred-1"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !authCtx.Onboarded() {
		t.Fatalf("expected onboarded context")
	}
	if authCtx.User.IDName != "alice" {
		t.Fatalf("unexpected profile: %+v", authCtx.User)
	}
}

func TestIdentityService_Resolve_MissingCredential(t *testing.T) {
	svc := NewIdentityService(newStubCredentialRepo(), newStubUserRepo(), zerolog.Nop())

	// A valid token pointing at a nonexistent credential is a consistency
	// fault, not a recoverable auth failure.
	_, err := svc.Resolve(context.Background(), &domain.Token{Token: "t", UserID: "gone"})
	if err == nil {
		t.Fatalf("expected error for missing credential")
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("expected a plain internal error, got API error %v", apiErr)
	}
}
