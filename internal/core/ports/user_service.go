package ports

import (
	"context"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

// CreateUserInput carries the onboarding form for a profile.
type CreateUserInput struct {
	IDName      string
	DisplayName string
	Description string
	Birthday    *domain.Date
	Website     string
	IsPrivate   bool
}

// UpdateUserInput carries a partial profile update; nil fields are left
// untouched.
type UpdateUserInput struct {
	DisplayName *string
	Description *string
	Birthday    *domain.Date
	Website     *string
	IsPrivate   *bool
}

// UserService manages profile onboarding and reads.
type UserService interface {
	// Create onboards the credential: profile id == credential id. A second
	// create fails with domain.ErrUserAlreadyCreated.
	Create(ctx context.Context, credentialID string, input CreateUserInput) (string, error)

	// Get returns a profile by id for public consumption; the caller is
	// responsible for redaction before serializing.
	Get(ctx context.Context, id string) (*domain.User, error)

	// Update patches the caller's own profile; fails with
	// domain.ErrUserNotOnboarded when no profile exists yet.
	Update(ctx context.Context, credentialID string, input UpdateUserInput) (*domain.User, error)
}
