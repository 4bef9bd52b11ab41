package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
	"github.com/kotonoha-app/kotonoha-api/internal/core/ports"
)

// PostService manages authored content and applies the visibility rules.
type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, logger: logger}
}

// Create stores a new post for the viewer. Requires an onboarded profile;
// a nil PublishedAt creates a draft.
func (s *PostService) Create(ctx context.Context, viewer *domain.AuthContext, input ports.CreatePostInput) (*ports.PostWithAuthor, error) {
	if !viewer.Onboarded() {
		return nil, domain.ErrUserNotOnboarded
	}

	now := time.Now().UTC()
	post := &domain.Post{
		ID:          uuid.NewString(),
		Content:     input.Content,
		AuthorID:    viewer.User.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
		PublishedAt: input.PublishedAt,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", post.ID).Str("author_id", post.AuthorID).Bool("draft", post.PublishedAt == nil).Msg("post created")
	return &ports.PostWithAuthor{Post: post, User: viewer.User.Redacted()}, nil
}

// Get fetches a single post with its author's redacted profile. A post that
// is soft-deleted, a draft, or future-dated is not_found to everyone but
// its author.
func (s *PostService) Get(ctx context.Context, id string, viewer *domain.AuthContext) (*ports.PostWithAuthor, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.PostVisibleTo(post, viewer, time.Now().UTC()) {
		return nil, domain.ErrPostNotFound
	}

	author, err := s.users.FindByID(ctx, post.AuthorID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// A stored post always has an onboarded author.
			return nil, fmt.Errorf("post %s references missing author %s", post.ID, post.AuthorID)
		}
		return nil, err
	}

	return &ports.PostWithAuthor{Post: post, User: author.Redacted()}, nil
}

// ListByUser returns the publicly visible posts of a user: published, past
// their publish time and not deleted.
func (s *PostService) ListByUser(ctx context.Context, userID string) ([]*domain.Post, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	visible := make([]*domain.Post, 0, len(posts))
	for _, p := range posts {
		if domain.PostPubliclyVisible(p, now) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// ListMine returns the viewer's own posts. Drafts are included; the
// repository already excludes soft-deleted rows.
func (s *PostService) ListMine(ctx context.Context, viewer *domain.AuthContext) ([]*domain.Post, error) {
	if !viewer.Onboarded() {
		return nil, domain.ErrUserNotOnboarded
	}
	return s.posts.ListByAuthor(ctx, viewer.User.ID)
}

// Publish stamps the post's publish time with the current instant. Only the
// author may publish; publishing an already published post refreshes its
// timestamp.
func (s *PostService) Publish(ctx context.Context, id string, viewer *domain.AuthContext) (*domain.Post, error) {
	post, err := s.ownPost(ctx, id, viewer)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post.PublishedAt = &now
	post.UpdatedAt = now

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", post.ID).Msg("post published")
	return post, nil
}

// Delete soft-deletes the viewer's own post.
func (s *PostService) Delete(ctx context.Context, id string, viewer *domain.AuthContext) error {
	post, err := s.ownPost(ctx, id, viewer)
	if err != nil {
		return err
	}
	return s.posts.SoftDelete(ctx, post.ID, time.Now().UTC())
}

// ownPost loads a post and checks the viewer authored it. Someone else's
// post is not_allowed when visible to the viewer and not_found otherwise,
// so the guard leaks no existence information about drafts.
func (s *PostService) ownPost(ctx context.Context, id string, viewer *domain.AuthContext) (*domain.Post, error) {
	if !viewer.Onboarded() {
		return nil, domain.ErrUserNotOnboarded
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.DeletedAt != nil {
		return nil, domain.ErrPostNotFound
	}
	if post.AuthorID != viewer.User.ID {
		if domain.PostPubliclyVisible(post, time.Now().UTC()) {
			return nil, domain.ErrNotPostAuthor
		}
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}
