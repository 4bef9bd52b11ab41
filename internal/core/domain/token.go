package domain

import "time"

// Token is an opaque bearer secret granting request-scoped authority to act
// as a Credential. The token string itself is the primary key. Validity is a
// point-in-time property: not revoked and not past expiry. Expired rows are
// never cleaned up; they simply stop matching the validity filter.
type Token struct {
	Token     string     `json:"token"`
	UserID    string     `json:"-"`
	ExpiredAt time.Time  `json:"expired_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// Valid reports whether the token grants authority at the given instant.
func (t *Token) Valid(now time.Time) bool {
	return t.DeletedAt == nil && now.Before(t.ExpiredAt)
}
