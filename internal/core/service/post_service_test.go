package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
	"github.com/kotonoha-app/kotonoha-api/internal/core/ports"
)

func onboardedViewer(users *stubUserRepo, id, handle string, private bool) *domain.AuthContext {
	var birthday *domain.Date
	if private {
		d := domain.NewDate(1990, time.April, 2)
		birthday = &d
	}
	user := &domain.User{ID: id, IDName: handle, DisplayName: handle, Birthday: birthday, IsPrivate: private}
	_ = users.Create(context.Background(), user)
	return &domain.AuthContext{
		Token:      "tok-" + id,
		Credential: &domain.Credential{ID: id},
		User:       user,
	}
}

func registeredOnlyViewer(id string) *domain.AuthContext {
	return &domain.AuthContext{Token: "tok-" + id, Credential: &domain.Credential{ID: id}}
}

func newPostFixture() (*PostService, *stubPostRepo, *stubUserRepo) {
	posts := newStubPostRepo()
	users := newStubUserRepo()
	return NewPostService(posts, users, zerolog.Nop()), posts, users
}

func TestPostService_Create_RequiresProfile(t *testing.T) {
	svc, _, _ := newPostFixture()

	_, err := svc.Create(context.Background(), registeredOnlyViewer("cred-1"), ports.CreatePostInput{Content: "hello"})
	if !errors.Is(err, domain.ErrUserNotOnboarded) {
		t.Fatalf("expected ErrUserNotOnboarded, got %v", err)
	}
}

func TestPostService_Create_Draft(t *testing.T) {
	svc, posts, users := newPostFixture()
	viewer := onboardedViewer(users, "u1", "alice", false)

	created, err := svc.Create(context.Background(), viewer, ports.CreatePostInput{Content: "draft text"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Post.PublishedAt != nil {
		t.Fatalf("expected draft, got published_at %v", created.Post.PublishedAt)
	}
	if created.Post.AuthorID != "u1" {
		t.Fatalf("unexpected author: %s", created.Post.AuthorID)
	}
	if _, ok := posts.posts[created.Post.ID]; !ok {
		t.Fatalf("post not persisted")
	}
}

func TestPostService_Get_DraftVisibility(t *testing.T) {
	svc, _, users := newPostFixture()
	author := onboardedViewer(users, "u1", "alice", false)
	other := onboardedViewer(users, "u2", "bob", false)

	created, err := svc.Create(context.Background(), author, ports.CreatePostInput{Content: "draft"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Author sees their own draft.
	if _, err := svc.Get(context.Background(), created.Post.ID, author); err != nil {
		t.Fatalf("author should see own draft: %v", err)
	}

	// Everyone else gets not_found.
	if _, err := svc.Get(context.Background(), created.Post.ID, other); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("other user: expected ErrPostNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), created.Post.ID, nil); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("anonymous: expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Get_FuturePublishDate(t *testing.T) {
	svc, _, users := newPostFixture()
	author := onboardedViewer(users, "u1", "alice", false)

	future := time.Now().UTC().Add(time.Hour)
	created, err := svc.Create(context.Background(), author, ports.CreatePostInput{Content: "scheduled", PublishedAt: &future})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), created.Post.ID, nil); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("future-dated post should be invisible publicly, got %v", err)
	}
	if _, err := svc.Get(context.Background(), created.Post.ID, author); err != nil {
		t.Fatalf("author should see future-dated post: %v", err)
	}
}

func TestPostService_Get_RedactsPrivateAuthor(t *testing.T) {
	svc, _, users := newPostFixture()
	author := onboardedViewer(users, "u1", "alice", true)

	now := time.Now().UTC()
	created, err := svc.Create(context.Background(), author, ports.CreatePostInput{Content: "hello", PublishedAt: &now})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.Get(context.Background(), created.Post.ID, nil)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.User.Birthday != nil {
		t.Fatalf("private author birthday leaked")
	}
	if users.users["u1"].Birthday == nil {
		t.Fatalf("redaction mutated the stored profile")
	}
}

func TestPostService_ListByUser_PublicOnly(t *testing.T) {
	svc, _, users := newPostFixture()
	author := onboardedViewer(users, "u1", "alice", false)

	now := time.Now().UTC()
	future := now.Add(time.Hour)
	if _, err := svc.Create(context.Background(), author, ports.CreatePostInput{Content: "published", PublishedAt: &now}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), author, ports.CreatePostInput{Content: "draft"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), author, ports.CreatePostInput{Content: "scheduled", PublishedAt: &future}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	public, err := svc.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(public) != 1 || public[0].Content != "published" {
		t.Fatalf("expected only the published post, got %d posts", len(public))
	}

	mine, err := svc.ListMine(context.Background(), author)
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("author should see all 3 posts, got %d", len(mine))
	}
}

func TestPostService_ListByUser_UnknownUser(t *testing.T) {
	svc, _, _ := newPostFixture()

	if _, err := svc.ListByUser(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPostService_Publish(t *testing.T) {
	svc, _, users := newPostFixture()
	author := onboardedViewer(users, "u1", "alice", false)

	created, err := svc.Create(context.Background(), author, ports.CreatePostInput{Content: "draft"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), created.Post.ID, nil); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("draft visible before publish")
	}

	published, err := svc.Publish(context.Background(), created.Post.ID, author)
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatalf("publish did not stamp published_at")
	}

	if _, err := svc.Get(context.Background(), created.Post.ID, nil); err != nil {
		t.Fatalf("published post should be publicly visible: %v", err)
	}
}

func TestPostService_Publish_NotAuthor(t *testing.T) {
	svc, _, users := newPostFixture()
	author := onboardedViewer(users, "u1", "alice", false)
	other := onboardedViewer(users, "u2", "bob", false)

	now := time.Now().UTC()
	created, err := svc.Create(context.Background(), author, ports.CreatePostInput{Content: "mine", PublishedAt: &now})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Publish(context.Background(), created.Post.ID, other); !errors.Is(err, domain.ErrNotPostAuthor) {
		t.Fatalf("expected ErrNotPostAuthor, got %v", err)
	}
}

func TestPostService_Publish_DraftOfAnotherUserStaysHidden(t *testing.T) {
	svc, _, users := newPostFixture()
	author := onboardedViewer(users, "u1", "alice", false)
	other := onboardedViewer(users, "u2", "bob", false)

	created, err := svc.Create(context.Background(), author, ports.CreatePostInput{Content: "draft"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// A draft must not reveal its existence through the ownership check.
	if _, err := svc.Publish(context.Background(), created.Post.ID, other); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Delete(t *testing.T) {
	svc, posts, users := newPostFixture()
	author := onboardedViewer(users, "u1", "alice", false)

	now := time.Now().UTC()
	created, err := svc.Create(context.Background(), author, ports.CreatePostInput{Content: "bye", PublishedAt: &now})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.Post.ID, author); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if posts.posts[created.Post.ID].DeletedAt == nil {
		t.Fatalf("expected soft delete, row was not stamped")
	}
	if _, err := svc.Get(context.Background(), created.Post.ID, author); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("deleted post should be gone even for the author, got %v", err)
	}

	mine, err := svc.ListMine(context.Background(), author)
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(mine) != 0 {
		t.Fatalf("deleted post still listed for author")
	}
}
