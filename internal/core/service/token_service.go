package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
	"github.com/kotonoha-app/kotonoha-api/internal/core/ports"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// TokenService issues, verifies and revokes opaque bearer tokens backed by
// a persistent token table.
type TokenService struct {
	repo   ports.TokenRepository
	ttl    time.Duration
	logger zerolog.Logger
}

func NewTokenService(repo ports.TokenRepository, ttl time.Duration, logger zerolog.Logger) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{repo: repo, ttl: ttl, logger: logger}
}

// Issue mints a fresh token for the credential. The string is returned only
// after the row is persisted: a token that is not durably recorded must
// never reach a client.
func (s *TokenService) Issue(ctx context.Context, credentialID string) (string, error) {
	t, err := generateToken()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	token := &domain.Token{
		Token:     t,
		UserID:    credentialID,
		ExpiredAt: now.Add(s.ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, token); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}

	s.logger.Info().Str("credential_id", credentialID).Time("expired_at", token.ExpiredAt).Msg("token issued")
	return t, nil
}

// Verify resolves a token string through a single read filtered on
// equality, non-revocation and future expiry. Unknown, revoked and expired
// all collapse into ErrInvalidToken.
func (s *TokenService) Verify(ctx context.Context, token string) (*domain.Token, error) {
	rec, err := s.repo.FindValid(ctx, token, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return rec, nil
}

// Revoke deletes a currently valid token. A miss, including a token that
// already expired or was revoked before, reports ErrTokenNotFound.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	if err := s.repo.DeleteValid(ctx, token, time.Now().UTC()); err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return domain.ErrTokenNotFound
		}
		return err
	}
	return nil
}

// generateToken returns a high-entropy opaque token string: 32 random
// bytes, base64url without padding.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
