package ports

import (
	"context"
	"time"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

// PostRepository defines persistence for posts. Reads exclude soft-deleted
// rows; publish-time filtering is the service's concern so the author path
// can bypass it.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
