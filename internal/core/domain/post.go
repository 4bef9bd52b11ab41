package domain

import "time"

// Post is authored content. PublishedAt == nil (or in the future) means
// draft: invisible on public paths, visible to the author.
type Post struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	AuthorID    string     `json:"author_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at"`
	DeletedAt   *time.Time `json:"-"`
}
