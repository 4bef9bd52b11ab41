package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
	"github.com/kotonoha-app/kotonoha-api/internal/core/ports"
)

// IdentityService turns a verified token into the request's AuthContext.
type IdentityService struct {
	credentials ports.CredentialRepository
	users       ports.UserRepository
	logger      zerolog.Logger
}

func NewIdentityService(credentials ports.CredentialRepository, users ports.UserRepository, logger zerolog.Logger) *IdentityService {
	return &IdentityService{credentials: credentials, users: users, logger: logger}
}

// Resolve loads the credential owning the token and, when the account has
// onboarded, its profile. A valid token whose credential is missing is a
// data-integrity fault and surfaces as an internal error; a missing profile
// is the normal registered-but-not-onboarded state.
func (s *IdentityService) Resolve(ctx context.Context, token *domain.Token) (*domain.AuthContext, error) {
	cred, err := s.credentials.FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			s.logger.Error().Str("credential_id", token.UserID).Msg("valid token references missing credential")
			return nil, fmt.Errorf("valid token references missing credential %s", token.UserID)
		}
		return nil, err
	}

	authCtx := &domain.AuthContext{Token: token.Token, Credential: cred}

	user, err := s.users.FindByID(ctx, cred.ID)
	switch {
	case err == nil:
		authCtx.User = user
	case errors.Is(err, domain.ErrUserNotFound):
		// Registered but not onboarded.
	default:
		return nil, err
	}

	return authCtx, nil
}
