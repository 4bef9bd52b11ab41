package ports

import (
	"context"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

// CredentialService owns password hashing and verification.
type CredentialService interface {
	// Register creates a credential and returns its id. Fails with a
	// validation APIError on malformed input and domain.ErrEmailTaken on a
	// duplicate email.
	Register(ctx context.Context, email, rawPassword string) (string, error)

	// Verify checks an email/password pair. Any failure, unknown email or
	// wrong password alike, yields domain.ErrAuthFailed after the same
	// amount of password-shaped work plus a randomized equalization delay,
	// so the two paths are not distinguishable by timing.
	Verify(ctx context.Context, email, rawPassword string) (*domain.Credential, error)
}
