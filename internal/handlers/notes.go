package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"DOIT_BACK-END/internal/dto"
	"DOIT_BACK-END/internal/logging"
	"DOIT_BACK-END/internal/models"
	"DOIT_BACK-END/internal/utils"
)

type NoteService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Note, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*models.Note, error)
	Create(ctx context.Context, userID uuid.UUID, title, description string) (*models.Note, error)
	Update(ctx context.Context, id, userID uuid.UUID, title, description string) (*models.Note, error)
	Complete(ctx context.Context, id, userID uuid.UUID) (*models.Note, error)
	Uncomplete(ctx context.Context, id, userID uuid.UUID) (*models.Note, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// NoteHandler serves the caller's notes under /api/notes.
type NoteHandler struct {
	notes NoteService
	log   logging.Logger
}

func NewNoteHandler(notes NoteService, log logging.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, log: log}
}

// ListNotes returns every note of the caller, oldest first
// @Summary List notes
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope{data=[]dto.NoteResponse} "Notes retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid token"
// @Failure 403 {object} dto.ErrorResponse "Missing token"
// @Router /api/notes [get]
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.List(r.Context(), utils.GetUserIDFromContext(r.Context()))
	if err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, http.StatusOK, "Notes retrieved successfully", dto.NewNoteResponses(notes))
}

// GetNote
// @Summary Get note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} dto.Envelope{data=dto.NoteResponse} "Note retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /api/notes/{id} [get]
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	h.withNote(w, r, http.StatusOK, "Note retrieved successfully", h.notes.Get)
}

// CreateNote
// @Summary Create note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.NoteRequest true "Note data"
// @Success 201 {object} dto.Envelope{data=dto.NoteResponse} "Note created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /api/notes [post]
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req dto.NoteRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	note, err := h.notes.Create(r.Context(), utils.GetUserIDFromContext(r.Context()), req.Title, req.Description)
	if err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, http.StatusCreated, "Note created successfully", dto.NewNoteResponse(note))
}

// UpdateNote replaces title and description
// @Summary Update note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param request body dto.NoteRequest true "Note data"
// @Success 200 {object} dto.Envelope{data=dto.NoteResponse} "Note updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /api/notes/{id} [put]
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathUUID(r, "id")
	if err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	var req dto.NoteRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	note, err := h.notes.Update(r.Context(), id, utils.GetUserIDFromContext(r.Context()), req.Title, req.Description)
	if err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, http.StatusOK, "Note updated successfully", dto.NewNoteResponse(note))
}

// DeleteNote
// @Summary Delete note
// @Tags notes
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /api/notes/{id} [delete]
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathUUID(r, "id")
	if err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}
	if err := h.notes.Delete(r.Context(), id, utils.GetUserIDFromContext(r.Context())); err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}
	utils.WriteNoContent(w)
}

// CompleteNote
// @Summary Mark note as completed
// @Description Sets isCompleted and stamps completedAt with the current time
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} dto.Envelope{data=dto.NoteResponse} "Note marked as completed"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /api/notes/{id}/complete [patch]
func (h *NoteHandler) CompleteNote(w http.ResponseWriter, r *http.Request) {
	h.withNote(w, r, http.StatusOK, "Note marked as completed", h.notes.Complete)
}

// UncompleteNote
// @Summary Unmark note as completed
// @Description Clears isCompleted and completedAt
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} dto.Envelope{data=dto.NoteResponse} "Note unmarked as completed"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /api/notes/{id}/uncomplete [patch]
func (h *NoteHandler) UncompleteNote(w http.ResponseWriter, r *http.Request) {
	h.withNote(w, r, http.StatusOK, "Note unmarked as completed", h.notes.Uncomplete)
}

// withNote runs a body-less (id, owner) operation and renders the note it returns.
func (h *NoteHandler) withNote(w http.ResponseWriter, r *http.Request, status int, message string,
	op func(ctx context.Context, id, userID uuid.UUID) (*models.Note, error)) {
	id, err := utils.PathUUID(r, "id")
	if err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}

	note, err := op(r.Context(), id, utils.GetUserIDFromContext(r.Context()))
	if err != nil {
		utils.WriteError(r.Context(), w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, status, message, dto.NewNoteResponse(note))
}
