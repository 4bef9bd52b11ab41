package handler

import "github.com/kotonoha-app/kotonoha-api/internal/core/domain"

type createUserRequest struct {
	IDName      string       `json:"id_name"      validate:"required,max=20"`
	DisplayName string       `json:"display_name" validate:"required,max=100"`
	Description string       `json:"description"  validate:"max=300"`
	Birthday    *domain.Date `json:"birthday"     validate:"omitempty,notfuture"`
	Website     string       `json:"website"      validate:"omitempty,url,max=100"`
	IsPrivate   bool         `json:"is_private"`
}

// updateUserRequest is a partial patch: absent fields keep their stored
// values. The handle (id_name) is immutable and deliberately not listed.
type updateUserRequest struct {
	DisplayName *string      `json:"display_name" validate:"omitempty,max=100"`
	Description *string      `json:"description"  validate:"omitempty,max=300"`
	Birthday    *domain.Date `json:"birthday"     validate:"omitempty,notfuture"`
	Website     *string      `json:"website"      validate:"omitempty,url,max=100"`
	IsPrivate   *bool        `json:"is_private"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type createdUserResponse struct {
	User createdUserID `json:"user"`
}

type createdUserID struct {
	ID string `json:"id"`
}
