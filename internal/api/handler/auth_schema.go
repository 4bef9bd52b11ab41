package handler

import "github.com/kotonoha-app/kotonoha-api/internal/core/domain"

// registerRequest carries the email/password pair for account creation.
// The password arrives raw and is hashed before it touches storage.
type registerRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	RawPassword string `json:"raw_password" validate:"required,min=8"`
}

// loginRequest is the same pair without the registration policy checks: a
// short password on login is just a wrong password.
type loginRequest struct {
	Email       string `json:"email"        validate:"required"`
	RawPassword string `json:"raw_password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type credentialResponse struct {
	Credential *domain.Credential `json:"credential"`
}
