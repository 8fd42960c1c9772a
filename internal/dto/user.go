package dto

import (
	"strings"

	"DOIT_BACK-END/internal/models"
	"DOIT_BACK-END/internal/validation"
)

// UpdateUserRequest replaces the caller's name and email.
// Password is optional; when present it is re-hashed.
type UpdateUserRequest struct {
	Name     string  `json:"name" validate:"notblank,max=100" example:"Ann B."`
	Email    string  `json:"email" validate:"notblank,email" example:"ann.b@x.com"`
	Password *string `json:"password,omitempty" validate:"omitnil,notblank,min=6" example:"secret2"`
}

func (r *UpdateUserRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	return validation.Struct(r)
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
}
