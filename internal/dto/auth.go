package dto

import (
	"strings"

	"DOIT_BACK-END/internal/validation"
)

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"notblank,max=100" example:"Ann"`
	Email    string `json:"email" validate:"notblank,email" example:"ann@x.com"`
	Password string `json:"password" validate:"notblank,min=6" example:"secret1"`
}

// Validate checks the registration fields and normalises the email.
func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	return validation.Struct(r)
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"notblank,email" example:"ann@x.com"`
	Password string `json:"password" validate:"notblank" example:"secret1"`
}

func (r *LoginRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	return validation.Struct(r)
}

// RegisteredUser is returned after a successful registration.
// The id is left out on purpose; clients log in to learn it.
type RegisteredUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse represents the response after successful authentication
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
