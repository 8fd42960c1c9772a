package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"DOIT_BACK-END/internal/dto"
	"DOIT_BACK-END/internal/logging"
	"DOIT_BACK-END/internal/models"
	"DOIT_BACK-END/internal/services"
	"DOIT_BACK-END/internal/utils"
)

type UserService interface {
	GetByID(ctx context.Context, requesterID, targetID uuid.UUID) (*models.User, error)
	Update(ctx context.Context, requesterID, targetID uuid.UUID, in services.UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, requesterID, targetID uuid.UUID) error
}

// UserHandler serves /api/users/{id}. Callers may only act on their own id.
type UserHandler struct {
	users UserService
	log   logging.Logger
}

func NewUserHandler(users UserService, log logging.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// GetUser returns the caller's account
// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.Envelope{data=dto.UserResponse} "User retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid token"
// @Failure 403 {object} dto.ErrorResponse "Not your account"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathUUID(r, "id")
	if err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), utils.GetUserIDFromContext(r.Context()), id)
	if err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, "User retrieved successfully", dto.NewUserResponse(user))
}

// UpdateUser replaces the caller's name, email and optionally password
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "New account data"
// @Success 200 {object} dto.Envelope{data=dto.UserResponse} "User updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Not your account"
// @Failure 409 {object} dto.ErrorResponse "Email already in use"
// @Router /api/users/{id} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathUUID(r, "id")
	if err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	user, err := h.users.Update(r.Context(), utils.GetUserIDFromContext(r.Context()), id, services.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, "User updated successfully", dto.NewUserResponse(user))
}

// DeleteUser removes the caller's account and all of its notes
// @Summary Delete user
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Not your account"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathUUID(r, "id")
	if err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	if err := h.users.Delete(r.Context(), utils.GetUserIDFromContext(r.Context()), id); err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	utils.WriteNoContent(w)
}
