package ports

import (
	"context"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

// TokenService issues, verifies and revokes opaque bearer tokens.
type TokenService interface {
	// Issue mints a new token for the credential and persists it. The token
	// string is returned only after the row is durably recorded.
	Issue(ctx context.Context, credentialID string) (string, error)

	// Verify returns the token row iff the string matches a non-revoked,
	// non-expired token. Every miss is domain.ErrInvalidToken; the caller
	// cannot tell unknown, revoked and expired apart.
	Verify(ctx context.Context, token string) (*domain.Token, error)

	// Revoke deletes a currently valid token. Revoking an unknown, expired
	// or already revoked token fails with domain.ErrTokenNotFound.
	Revoke(ctx context.Context, token string) error
}

// IdentityService resolves a verified token into an AuthContext.
type IdentityService interface {
	// Resolve loads the owning credential (its absence is a data-integrity
	// fault, not a recoverable error) and the profile when present.
	Resolve(ctx context.Context, token *domain.Token) (*domain.AuthContext, error)
}
