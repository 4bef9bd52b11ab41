package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
	"github.com/kotonoha-app/kotonoha-api/internal/core/ports"
)

// UserService manages profile onboarding, reads and updates.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Create onboards a credential. The profile id is the credential id, so the
// repository's primary key doubles as the "only one profile per account"
// guard.
func (s *UserService) Create(ctx context.Context, credentialID string, input ports.CreateUserInput) (string, error) {
	now := time.Now().UTC()
	user := &domain.User{
		ID:          credentialID,
		IDName:      input.IDName,
		DisplayName: input.DisplayName,
		Description: input.Description,
		Birthday:    input.Birthday,
		Website:     input.Website,
		IsPrivate:   input.IsPrivate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return "", err
	}

	s.logger.Info().Str("user_id", user.ID).Str("id_name", user.IDName).Msg("profile created")
	return user.ID, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update patches the caller's profile. Fields left nil in the input keep
// their stored values; the handle is immutable after onboarding.
func (s *UserService) Update(ctx context.Context, credentialID string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, credentialID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Description != nil {
		user.Description = *input.Description
	}
	if input.Birthday != nil {
		user.Birthday = input.Birthday
	}
	if input.Website != nil {
		user.Website = *input.Website
	}
	if input.IsPrivate != nil {
		user.IsPrivate = *input.IsPrivate
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
