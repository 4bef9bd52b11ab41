package ports

import (
	"context"
	"time"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

// CreatePostInput carries a new post. A nil PublishedAt creates a draft.
type CreatePostInput struct {
	Content     string
	PublishedAt *time.Time
}

// PostWithAuthor pairs a post with its author's response-shaped (already
// redacted) profile.
type PostWithAuthor struct {
	Post *domain.Post
	User *domain.User
}

// PostService manages authored content and enforces visibility.
type PostService interface {
	// Create stores a new post for the viewer; requires an onboarded
	// profile.
	Create(ctx context.Context, viewer *domain.AuthContext, input CreatePostInput) (*PostWithAuthor, error)

	// Get fetches a single post. Unpublished, future-dated and deleted
	// posts are not_found to everyone but the author.
	Get(ctx context.Context, id string, viewer *domain.AuthContext) (*PostWithAuthor, error)

	// ListByUser returns the publicly visible posts of a user.
	ListByUser(ctx context.Context, userID string) ([]*domain.Post, error)

	// ListMine returns the viewer's own posts, drafts included.
	ListMine(ctx context.Context, viewer *domain.AuthContext) ([]*domain.Post, error)

	// Publish stamps a draft's publish time; author only.
	Publish(ctx context.Context, id string, viewer *domain.AuthContext) (*domain.Post, error)

	// Delete soft-deletes the viewer's own post.
	Delete(ctx context.Context, id string, viewer *domain.AuthContext) error
}
