package ports

import (
	"context"
	"time"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

// TokenRepository defines persistence for bearer tokens. FindValid and
// DeleteValid apply the full validity filter (token match, not revoked,
// expiry after now) in a single query so validity is never decided from a
// stale read.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	FindValid(ctx context.Context, token string, now time.Time) (*domain.Token, error)
	DeleteValid(ctx context.Context, token string, now time.Time) error
}
