package handlers

import (
	"context"
	"net/http"

	"DOIT_BACK-END/internal/dto"
	"DOIT_BACK-END/internal/logging"
	"DOIT_BACK-END/internal/models"
	"DOIT_BACK-END/internal/services"
	"DOIT_BACK-END/internal/utils"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users AuthService
	log   logging.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users AuthService, log logging.Logger) *AuthHandler {
	return &AuthHandler{users: users, log: log}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account with name, email, and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.Envelope{data=dto.RegisteredUser} "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusCreated, "User created successfully", dto.RegisteredUser{
		Name:  user.Name,
		Email: user.Email,
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.Envelope{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, "Login successful", dto.LoginResponse{
		Token: res.Token,
		User:  dto.NewUserResponse(res.User),
	})
}
