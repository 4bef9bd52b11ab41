package domain

import "time"

// Credential is the identity anchor: the login email and password hash for
// an account. A Credential exists before any Profile or Token referencing
// it; a registered account without a Profile is a normal state.
type Credential struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}
