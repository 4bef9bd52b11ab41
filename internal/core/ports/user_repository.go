package ports

import (
	"context"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

// UserRepository defines persistence for onboarded profiles. Create must
// surface a duplicate id as domain.ErrUserAlreadyCreated and a duplicate
// handle as domain.ErrHandleTaken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
