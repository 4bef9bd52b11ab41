package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kotonoha-app/kotonoha-api/internal/api/metrics"
	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
	"github.com/kotonoha-app/kotonoha-api/internal/core/ports"
)

// UserHandler handles profile onboarding and reads.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Create onboards the authenticated credential with a profile.
//
// @Summary      Create own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Profile details"
// @Success      201   {object}  createdUserResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	authCtx := ctxAuth(c)
	if authCtx.Onboarded() {
		return domain.ErrUserAlreadyCreated
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewAPIError(domain.CodeInvalidRequest, "Failed to parse request.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.users.Create(c.Request().Context(), authCtx.Credential.ID, ports.CreateUserInput{
		IDName:      req.IDName,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Birthday:    req.Birthday,
		Website:     req.Website,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		return err
	}

	metrics.ProfilesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createdUserResponse{User: createdUserID{ID: id}})
}

// Show returns a user's public profile. Private fields are redacted for
// private accounts.
//
// @Summary      Show a user
// @Tags         users
// @Produce      json
// @Param        id    path      string  true  "User id (uuid)"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  errorBody
// @Router       /users/{id} [get]
func (h *UserHandler) Show(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user.Redacted()})
}

// ShowMe returns the caller's own profile. The redaction rule applies to
// every outward view, the owner's included.
//
// @Summary      Show own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /users/my [get]
func (h *UserHandler) ShowMe(c echo.Context) error {
	authCtx, err := ctxOnboarded(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: authCtx.User.Redacted()})
}

// UpdateMe patches the caller's own profile.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /users/my [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	authCtx, err := ctxOnboarded(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewAPIError(domain.CodeInvalidRequest, "Failed to parse request.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Update(c.Request().Context(), authCtx.Credential.ID, ports.UpdateUserInput{
		DisplayName: req.DisplayName,
		Description: req.Description,
		Birthday:    req.Birthday,
		Website:     req.Website,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user.Redacted()})
}
