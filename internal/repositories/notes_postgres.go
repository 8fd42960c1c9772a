package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"DOIT_BACK-END/internal/common"
	"DOIT_BACK-END/internal/models"
)

type PostgresNoteRepository struct {
	db sqlx.ExtContext
}

func NewPostgresNoteRepository(db sqlx.ExtContext) *PostgresNoteRepository {
	return &PostgresNoteRepository{db: db}
}

func (r *PostgresNoteRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Note, error) {
	query, args, err := psql.Select(noteColumns...).
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	notes := []models.Note{}
	if err := sqlx.SelectContext(ctx, r.db, &notes, query, args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return notes, nil
}

func (r *PostgresNoteRepository) GetByIDAndOwner(ctx context.Context, id, userID uuid.UUID) (*models.Note, error) {
	query, args, err := psql.Select(noteColumns...).
		From("notes").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	note := &models.Note{}
	if err := sqlx.GetContext(ctx, r.db, note, query, args...); err != nil {
		return nil, translate(err, common.ErrNoteNotFound)
	}
	return note, nil
}

func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	query, args, err := psql.Insert("notes").
		Columns(noteColumns...).
		Values(note.ID, note.UserID, note.Title, note.Description,
			note.IsCompleted, note.CompletedAt, note.CreatedAt, note.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return translate(err, common.ErrNoteNotFound)
}

func (r *PostgresNoteRepository) Update(ctx context.Context, id, userID uuid.UUID, title, description string, at time.Time) (*models.Note, error) {
	return r.updateReturning(ctx, id, userID, map[string]interface{}{
		"title":       title,
		"description": description,
		"updated_at":  at,
	})
}

// SetCompleted flips the flag and its timestamp in one statement so the two
// never disagree.
func (r *PostgresNoteRepository) SetCompleted(ctx context.Context, id, userID uuid.UUID, completed bool, at time.Time) (*models.Note, error) {
	var completedAt *time.Time
	if completed {
		completedAt = &at
	}
	return r.updateReturning(ctx, id, userID, map[string]interface{}{
		"is_completed": completed,
		"completed_at": completedAt,
		"updated_at":   at,
	})
}

func (r *PostgresNoteRepository) updateReturning(ctx context.Context, id, userID uuid.UUID, set map[string]interface{}) (*models.Note, error) {
	query, args, err := psql.Update("notes").
		SetMap(set).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + strings.Join(noteColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	note := &models.Note{}
	if err := sqlx.GetContext(ctx, r.db, note, query, args...); err != nil {
		return nil, translate(err, common.ErrNoteNotFound)
	}
	return note, nil
}

func (r *PostgresNoteRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return rowsAffected(res, common.ErrNoteNotFound)
}
