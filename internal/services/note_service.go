package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"DOIT_BACK-END/internal/logging"
	"DOIT_BACK-END/internal/models"
	"DOIT_BACK-END/internal/repositories"
)

// NoteService never reveals whether a note exists under another owner:
// all lookups are keyed by (id, owner) and a miss is ErrNoteNotFound.
type NoteService struct {
	notes repositories.NoteRepository
	users repositories.UserRepository
	log   logging.Logger
	now   func() time.Time
}

func NewNoteService(notes repositories.NoteRepository, users repositories.UserRepository, log logging.Logger) *NoteService {
	return &NoteService{
		notes: notes,
		users: users,
		log:   log.With("component", "note_service"),
		now:   defaultClock,
	}
}

func (s *NoteService) List(ctx context.Context, userID uuid.UUID) ([]models.Note, error) {
	return s.notes.ListByOwner(ctx, userID)
}

func (s *NoteService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Note, error) {
	return s.notes.GetByIDAndOwner(ctx, id, userID)
}

func (s *NoteService) Create(ctx context.Context, userID uuid.UUID, title, description string) (*models.Note, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	now := s.now()
	note := &models.Note{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "note created", "note_id", note.ID, "user_id", userID)
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, id, userID uuid.UUID, title, description string) (*models.Note, error) {
	return s.notes.Update(ctx, id, userID, strings.TrimSpace(title), strings.TrimSpace(description), s.now())
}

// Complete stamps completedAt with the current time, also when the note was
// already completed.
func (s *NoteService) Complete(ctx context.Context, id, userID uuid.UUID) (*models.Note, error) {
	return s.notes.SetCompleted(ctx, id, userID, true, s.now())
}

func (s *NoteService) Uncomplete(ctx context.Context, id, userID uuid.UUID) (*models.Note, error) {
	return s.notes.SetCompleted(ctx, id, userID, false, s.now())
}

func (s *NoteService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.notes.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.log.Debug(ctx, "note deleted", "note_id", id, "user_id", userID)
	return nil
}
