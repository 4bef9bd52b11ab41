package domain

// AuthContext is the request-scoped result of token verification: the
// validated token string, its owning credential, and the profile when the
// account has finished onboarding. Never persisted; rebuilt per request.
type AuthContext struct {
	Token      string
	Credential *Credential
	User       *User
}

// Onboarded reports whether the caller has a created profile. Actions such
// as posting require this; its absence is a domain not-found condition, not
// an authentication failure.
func (a *AuthContext) Onboarded() bool {
	return a != nil && a.User != nil
}

// Authenticated reports whether the request carried a valid token at all.
func (a *AuthContext) Authenticated() bool {
	return a != nil && a.Credential != nil
}
