package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kotonoha-app/kotonoha-api/internal/api/metrics"
	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
	"github.com/kotonoha-app/kotonoha-api/internal/core/ports"
)

// PostHandler handles post creation, publishing, deletion and reads.
type PostHandler struct {
	posts ports.PostService
}

func NewPostHandler(posts ports.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create stores a new post authored by the caller's profile.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post content, optional publish time"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	authCtx, err := ctxOnboarded(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewAPIError(domain.CodeInvalidRequest, "Failed to parse request.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.posts.Create(c.Request().Context(), authCtx, ports.CreatePostInput{
		Content:     req.Content,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		return err
	}

	kind := "published"
	if created.Post.PublishedAt == nil {
		kind = "draft"
	}
	metrics.PostsCreatedTotal.WithLabelValues(kind).Inc()

	return c.JSON(http.StatusCreated, newPostResponse(created))
}

// Show fetches a single post with its author. Drafts and future-dated
// posts are not_found for everyone but the author, so the route takes
// optional auth.
//
// @Summary      Show a post
// @Tags         posts
// @Produce      json
// @Param        id    path      string  true  "Post id (uuid)"
// @Success      200   {object}  postResponse
// @Failure      404   {object}  errorBody
// @Router       /posts/{id} [get]
func (h *PostHandler) Show(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.posts.Get(c.Request().Context(), id, ctxAuth(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newPostResponse(post))
}

// Publish stamps a post's publish time with the current instant.
//
// @Summary      Publish a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Post id (uuid)"
// @Success      200   {object}  postResponse
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /posts/{id}/publish [post]
func (h *PostHandler) Publish(c echo.Context) error {
	authCtx, err := ctxOnboarded(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.posts.Publish(c.Request().Context(), id, authCtx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, postResponse{Post: postView{Post: post, User: authCtx.User.Redacted()}})
}

// Delete soft-deletes the caller's own post.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id    path      string  true  "Post id (uuid)"
// @Success      204
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	authCtx, err := ctxOnboarded(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.posts.Delete(c.Request().Context(), id, authCtx); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMine returns the caller's own posts, drafts included.
//
// @Summary      List own posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  postsResponse
// @Failure      401   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /posts/my [get]
func (h *PostHandler) ListMine(c echo.Context) error {
	authCtx, err := ctxOnboarded(c)
	if err != nil {
		return err
	}

	posts, err := h.posts.ListMine(c.Request().Context(), authCtx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPostsResponse(posts))
}

// ListByUser returns a user's publicly visible posts.
//
// @Summary      List a user's posts
// @Tags         posts
// @Produce      json
// @Param        user_id  path      string  true  "User id (uuid)"
// @Success      200      {object}  postsResponse
// @Failure      404      {object}  errorBody
// @Router       /posts/user/{user_id} [get]
func (h *PostHandler) ListByUser(c echo.Context) error {
	userID, err := pathUUID(c, "user_id")
	if err != nil {
		return err
	}

	posts, err := h.posts.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPostsResponse(posts))
}
