package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
	"github.com/kotonoha-app/kotonoha-api/internal/core/ports"
)

// decoyHash is a syntactically valid credential hash used to burn a real
// argon2 derivation when the email lookup misses, so "unknown email" does
// the same work as "wrong password".
var decoyHash = sync.OnceValue(func() string {
	h, err := hashPassword("decoy-password-never-matches")
	if err != nil {
		panic("credential service: failed to derive decoy hash: " + err.Error())
	}
	return h
})

// CredentialService implements registration and password verification.
type CredentialService struct {
	repo     ports.CredentialRepository
	minDelay time.Duration
	maxDelay time.Duration
	logger   zerolog.Logger
}

// NewCredentialService builds a CredentialService. minDelay/maxDelay bound
// the randomized equalization sleep applied on every failed verification;
// pass zeroes to disable it (tests only).
func NewCredentialService(repo ports.CredentialRepository, minDelay, maxDelay time.Duration, logger zerolog.Logger) *CredentialService {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &CredentialService{repo: repo, minDelay: minDelay, maxDelay: maxDelay, logger: logger}
}

// Register hashes the password and stores a new credential. Email
// uniqueness is enforced by the repository's unique index, never
// pre-checked, so concurrent registrations cannot race past the check.
func (s *CredentialService) Register(ctx context.Context, email, rawPassword string) (string, error) {
	hash, err := hashPassword(rawPassword)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	cred := &domain.Credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, cred); err != nil {
		return "", err
	}

	s.logger.Info().Str("credential_id", cred.ID).Msg("credential registered")
	return cred.ID, nil
}

// Verify checks an email/password pair. Both failure paths, unknown email
// and wrong password, derive a full argon2 hash and then sleep a random
// duration within the configured bounds before returning the same generic
// error. The repository read completes before the sleep, so no database
// connection is held during the delay.
func (s *CredentialService) Verify(ctx context.Context, email, rawPassword string) (*domain.Credential, error) {
	cred, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			_, _ = comparePassword(decoyHash(), rawPassword)
			s.equalizationDelay()
			return nil, domain.ErrAuthFailed
		}
		return nil, err
	}

	ok, err := comparePassword(cred.PasswordHash, rawPassword)
	if err != nil {
		// Stored hash is unreadable: a data fault, not a login failure.
		s.logger.Error().Err(err).Str("credential_id", cred.ID).Msg("unreadable password hash")
		return nil, err
	}
	if !ok {
		s.equalizationDelay()
		return nil, domain.ErrAuthFailed
	}

	return cred, nil
}

func (s *CredentialService) equalizationDelay() {
	if s.maxDelay <= 0 {
		return
	}
	d := s.minDelay
	if span := s.maxDelay - s.minDelay; span > 0 {
		d += time.Duration(rand.Int63n(int64(span)))
	}
	time.Sleep(d)
}
