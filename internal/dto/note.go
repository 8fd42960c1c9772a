package dto

import (
	"strings"
	"time"

	"DOIT_BACK-END/internal/models"
	"DOIT_BACK-END/internal/validation"
)

// NoteRequest is used for both create and full update.
type NoteRequest struct {
	Title       string `json:"title" validate:"notblank,max=255" example:"Buy milk"`
	Description string `json:"description" validate:"notblank" example:"2 litres, semi-skimmed"`
}

func (r *NoteRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	return validation.Struct(r)
}

// NoteResponse represents a note in API responses
type NoteResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	IsCompleted bool    `json:"isCompleted"`
	CompletedAt *string `json:"completedAt"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func NewNoteResponse(n *models.Note) NoteResponse {
	resp := NoteResponse{
		ID:          n.ID.String(),
		Title:       n.Title,
		Description: n.Description,
		IsCompleted: n.IsCompleted,
		CreatedAt:   FormatTime(n.CreatedAt),
		UpdatedAt:   FormatTime(n.UpdatedAt),
	}
	if n.CompletedAt != nil {
		s := FormatTime(*n.CompletedAt)
		resp.CompletedAt = &s
	}
	return resp
}

// NewNoteResponses never returns nil so an empty list encodes as [].
func NewNoteResponses(notes []models.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, NewNoteResponse(&notes[i]))
	}
	return out
}

// FormatTime renders timestamps in UTC RFC 3339 with sub-second precision.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
