package handler

import (
	"time"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
	"github.com/kotonoha-app/kotonoha-api/internal/core/ports"
)

// createPostRequest carries a new post. Omitting published_at creates a
// draft; a future published_at schedules the post.
type createPostRequest struct {
	Content     string     `json:"content"      validate:"required,max=500"`
	PublishedAt *time.Time `json:"published_at"`
}

// postView is a post as serialized outward, optionally with its author's
// already-redacted profile embedded.
type postView struct {
	*domain.Post
	User *domain.User `json:"user,omitempty"`
}

type postResponse struct {
	Post postView `json:"post"`
}

type postsResponse struct {
	Posts []postView `json:"posts"`
}

func newPostResponse(pa *ports.PostWithAuthor) postResponse {
	return postResponse{Post: postView{Post: pa.Post, User: pa.User}}
}

func newPostsResponse(posts []*domain.Post) postsResponse {
	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, postView{Post: p})
	}
	return postsResponse{Posts: views}
}
