package domain

import "time"

// PostPubliclyVisible reports whether a post may be shown on public read
// paths at the given instant: not soft-deleted, published, and past its
// publish time. Drafts and future-dated posts are invisible to everyone
// but their author.
func PostPubliclyVisible(p *Post, now time.Time) bool {
	return p.DeletedAt == nil && p.PublishedAt != nil && !p.PublishedAt.After(now)
}

// PostVisibleTo extends the public predicate with the author exception: an
// author always sees their own non-deleted posts, drafts included.
func PostVisibleTo(p *Post, viewer *AuthContext, now time.Time) bool {
	if p.DeletedAt != nil {
		return false
	}
	if viewer.Onboarded() && viewer.User.ID == p.AuthorID {
		return true
	}
	return PostPubliclyVisible(p, now)
}

// Redacted returns a response-shaped copy of the user with private fields
// withheld. Applied on every outward-facing read of a profile, including
// author views embedded in post responses.
func (u *User) Redacted() *User {
	if !u.IsPrivate {
		return u
	}
	out := *u
	out.Birthday = nil
	return &out
}
