package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DOIT_BACK-END/internal/common"
	"DOIT_BACK-END/internal/models"
)

const noteSelect = `SELECT id, user_id, title, description, is_completed, completed_at, created_at, updated_at FROM notes`

func noteRows(notes ...models.Note) *sqlmock.Rows {
	rows := sqlmock.NewRows(noteColumns)
	for _, n := range notes {
		var completedAt interface{}
		if n.CompletedAt != nil {
			completedAt = *n.CompletedAt
		}
		rows.AddRow(n.ID.String(), n.UserID.String(), n.Title, n.Description,
			n.IsCompleted, completedAt, n.CreatedAt, n.UpdatedAt)
	}
	return rows
}

func sampleNote(owner uuid.UUID) models.Note {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return models.Note{
		ID:          uuid.New(),
		UserID:      owner,
		Title:       "T",
		Description: "D",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestNoteListByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNoteRepository(db)
	owner := uuid.New()
	a, b := sampleNote(owner), sampleNote(owner)

	mock.ExpectQuery(regexp.QuoteMeta(noteSelect + ` WHERE user_id = $1 ORDER BY created_at, id`)).
		WithArgs(owner.String()).
		WillReturnRows(noteRows(a, b))

	got, err := repo.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Nil(t, got[0].CompletedAt)
}

func TestNoteListByOwner_EmptyIsNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNoteRepository(db)

	mock.ExpectQuery(`FROM notes WHERE user_id`).WillReturnRows(noteRows())

	got, err := repo.ListByOwner(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNoteGetByIDAndOwner_ScopedToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNoteRepository(db)
	n := sampleNote(uuid.New())
	stranger := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(noteSelect + ` WHERE id = $1 AND user_id = $2`)).
		WithArgs(n.ID.String(), n.UserID.String()).
		WillReturnRows(noteRows(n))
	mock.ExpectQuery(regexp.QuoteMeta(noteSelect + ` WHERE id = $1 AND user_id = $2`)).
		WithArgs(n.ID.String(), stranger.String()).
		WillReturnRows(noteRows())

	got, err := repo.GetByIDAndOwner(context.Background(), n.ID, n.UserID)
	require.NoError(t, err)
	assert.Equal(t, n, *got)

	_, err = repo.GetByIDAndOwner(context.Background(), n.ID, stranger)
	assert.ErrorIs(t, err, common.ErrNoteNotFound)
}

func TestNoteCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNoteRepository(db)
	n := sampleNote(uuid.New())

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO notes (id,user_id,title,description,is_completed,completed_at,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`)).
		WithArgs(n.ID.String(), n.UserID.String(), "T", "D", false, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), &n))
}

func TestNoteCreate_UnknownOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNoteRepository(db)
	n := sampleNote(uuid.New())

	mock.ExpectExec(`INSERT INTO notes`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "notes_user_id_fkey"})

	assert.ErrorIs(t, repo.Create(context.Background(), &n), common.ErrUserNotFound)
}

func TestNoteUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNoteRepository(db)
	n := sampleNote(uuid.New())
	n.Title = "T2"

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE notes SET description = $1, title = $2, updated_at = $3 WHERE id = $4 AND user_id = $5 RETURNING id, user_id`)).
		WithArgs("D", "T2", sqlmock.AnyArg(), n.ID.String(), n.UserID.String()).
		WillReturnRows(noteRows(n))

	got, err := repo.Update(context.Background(), n.ID, n.UserID, "T2", "D", n.UpdatedAt)
	require.NoError(t, err)
	assert.Equal(t, "T2", got.Title)
}

func TestNoteSetCompleted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNoteRepository(db)
	n := sampleNote(uuid.New())
	at := n.CreatedAt.Add(time.Hour)
	n.IsCompleted = true
	n.CompletedAt = &at

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE notes SET completed_at = $1, is_completed = $2, updated_at = $3 WHERE id = $4 AND user_id = $5 RETURNING`)).
		WithArgs(at, true, at, n.ID.String(), n.UserID.String()).
		WillReturnRows(noteRows(n))

	got, err := repo.SetCompleted(context.Background(), n.ID, n.UserID, true, at)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, at.Equal(*got.CompletedAt))
}

func TestNoteSetCompleted_ClearsTimestamp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNoteRepository(db)
	n := sampleNote(uuid.New())

	mock.ExpectQuery(`UPDATE notes SET completed_at`).
		WithArgs(nil, false, sqlmock.AnyArg(), n.ID.String(), n.UserID.String()).
		WillReturnRows(noteRows(n))

	got, err := repo.SetCompleted(context.Background(), n.ID, n.UserID, false, time.Now())
	require.NoError(t, err)
	assert.False(t, got.IsCompleted)
	assert.Nil(t, got.CompletedAt)
}

func TestNoteSetCompleted_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNoteRepository(db)

	mock.ExpectQuery(`UPDATE notes`).WillReturnRows(noteRows())

	_, err := repo.SetCompleted(context.Background(), uuid.New(), uuid.New(), true, time.Now())
	assert.ErrorIs(t, err, common.ErrNoteNotFound)
}

func TestNoteDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNoteRepository(db)
	id, owner := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM notes WHERE id = $1 AND user_id = $2`)).
		WithArgs(id.String(), owner.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id, owner), common.ErrNoteNotFound)
}
