// Package repositories persists users and notes.
package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"DOIT_BACK-END/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NoteRepository scopes every lookup and write to the owning user, so a note
// that belongs to someone else behaves exactly like a missing one.
type NoteRepository interface {
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Note, error)
	GetByIDAndOwner(ctx context.Context, id, userID uuid.UUID) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) error
	Update(ctx context.Context, id, userID uuid.UUID, title, description string, at time.Time) (*models.Note, error)
	SetCompleted(ctx context.Context, id, userID uuid.UUID, completed bool, at time.Time) (*models.Note, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
