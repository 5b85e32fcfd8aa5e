package httpapi

import "github.com/dmitrijs2005/gophprofile/internal/server/models"

// User-facing rejection reasons.
const (
	msgNoToken      = "No token, authorization denied"
	msgInvalidToken = "Token is not valid"
	msgEmptyName    = "Name cannot be empty"
	msgNameTaken    = "Name already taken"
	msgBadRequest   = "Invalid request body"
	msgServerError  = "Server error"

	msgTooManyUpdates = "Too many profile updates, try again later"
)

type userDTO struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar,omitempty"`
}

type profileResponse struct {
	Success bool     `json:"success"`
	User    *userDTO `json:"user,omitempty"`
	Token   string   `json:"token,omitempty"`
	Msg     string   `json:"msg,omitempty"`
}

type updateProfileRequest struct {
	Name *string `json:"name"`
}

func toUserDTO(u *models.User) *userDTO {
	return &userDTO{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.AvatarRef}
}
