package service

import (
	"context"
	"time"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

// In-memory repository stubs shared by the service tests.

type stubCredentialRepo struct {
	byEmail map[string]*domain.Credential
	byID    map[string]*domain.Credential
}

func newStubCredentialRepo() *stubCredentialRepo {
	return &stubCredentialRepo{
		byEmail: make(map[string]*domain.Credential),
		byID:    make(map[string]*domain.Credential),
	}
}

func (r *stubCredentialRepo) Create(_ context.Context, c *domain.Credential) error {
	if _, exists := r.byEmail[c.Email]; exists {
		return domain.ErrEmailTaken
	}
	clone := *c
	r.byEmail[clone.Email] = &clone
	r.byID[clone.ID] = &clone
	return nil
}

func (r *stubCredentialRepo) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	c, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrCredentialNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCredentialRepo) FindByID(_ context.Context, id string) (*domain.Credential, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCredentialNotFound
	}
	clone := *c
	return &clone, nil
}

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if _, exists := r.users[u.ID]; exists {
		return domain.ErrUserAlreadyCreated
	}
	for _, other := range r.users {
		if other.IDName == u.IDName {
			return domain.ErrHandleTaken
		}
	}
	clone := *u
	r.users[clone.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.users[clone.ID] = &clone
	return nil
}

type stubTokenRepo struct {
	tokens     map[string]*domain.Token
	createErr  error
	hardDelete bool
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[string]*domain.Token)}
}

func (r *stubTokenRepo) Create(_ context.Context, t *domain.Token) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *t
	r.tokens[clone.Token] = &clone
	return nil
}

func (r *stubTokenRepo) FindValid(_ context.Context, token string, now time.Time) (*domain.Token, error) {
	t, ok := r.tokens[token]
	if !ok || !t.Valid(now) {
		return nil, domain.ErrTokenNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTokenRepo) DeleteValid(_ context.Context, token string, now time.Time) error {
	t, ok := r.tokens[token]
	if !ok || !t.Valid(now) {
		return domain.ErrTokenNotFound
	}
	if r.hardDelete {
		delete(r.tokens, token)
	} else {
		deleted := now
		t.DeletedAt = &deleted
	}
	return nil
}

type stubPostRepo struct {
	posts map[string]*domain.Post
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) error {
	clone := *p
	r.posts[clone.ID] = &clone
	return nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok || p.DeletedAt != nil {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) ListByAuthor(_ context.Context, authorID string) ([]*domain.Post, error) {
	var out []*domain.Post
	for _, p := range r.posts {
		if p.AuthorID == authorID && p.DeletedAt == nil {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPostRepo) Update(_ context.Context, p *domain.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return domain.ErrPostNotFound
	}
	clone := *p
	r.posts[clone.ID] = &clone
	return nil
}

func (r *stubPostRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	p, ok := r.posts[id]
	if !ok || p.DeletedAt != nil {
		return domain.ErrPostNotFound
	}
	p.DeletedAt = &at
	return nil
}
