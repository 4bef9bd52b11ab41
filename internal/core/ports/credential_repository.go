package ports

import (
	"context"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

// CredentialRepository defines persistence for login credentials.
// Implementations must surface a duplicate email as domain.ErrEmailTaken
// (uniqueness is enforced by the store, never pre-checked).
type CredentialRepository interface {
	Create(ctx context.Context, credential *domain.Credential) error
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	FindByID(ctx context.Context, id string) (*domain.Credential, error)
}
