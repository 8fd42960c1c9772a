package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DOIT_BACK-END/internal/common"
	"DOIT_BACK-END/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return sqlx.NewDb(db, "sqlmock"), mock
}

func userRows(u models.User) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).
		AddRow(u.ID.String(), u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
}

func sampleUser() models.User {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return models.User{
		ID:           uuid.New(),
		Name:         "Ann",
		Email:        "ann@x.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserCreate_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepository(db)
	u := sampleUser()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id,name,email,password_hash,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6)`)).
		WithArgs(u.ID.String(), "Ann", "ann@x.com", "hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), &u))
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepository(db)
	u := sampleUser()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &u)
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestUserCreate_OtherUniqueViolationIsNotDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepository(db)
	u := sampleUser()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"})

	err := repo.Create(context.Background(), &u)
	assert.NotErrorIs(t, err, common.ErrDuplicateEmail)
	assert.ErrorContains(t, err, "db error")
}

func TestUserCreate_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepository(db)
	u := sampleUser()

	mock.ExpectExec(`INSERT INTO users`).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &u)
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db down`, err.Error())
}

func TestUserGetByID_Found(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepository(db)
	u := sampleUser()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE id = $1`)).
		WithArgs(u.ID.String()).
		WillReturnRows(userRows(u))

	got, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, *got)
}

func TestUserGetByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("ghost@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUserExistsByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`)).
		WithArgs("ann@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.ExistsByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserUpdate_WithPassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepository(db)
	u := sampleUser()
	u.Name = "Ann B."
	hash := "new-hash"

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET name = $1, email = $2, updated_at = $3, password_hash = $4 WHERE id = $5 RETURNING id, name, email, password_hash, created_at, updated_at`)).
		WithArgs("Ann B.", "ann@x.com", sqlmock.AnyArg(), "new-hash", u.ID.String()).
		WillReturnRows(userRows(u))

	got, err := repo.Update(context.Background(), u.ID, models.UserUpdate{
		Name:         "Ann B.",
		Email:        "ann@x.com",
		PasswordHash: &hash,
		UpdatedAt:    u.UpdatedAt,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann B.", got.Name)
}

func TestUserUpdate_KeepsPasswordWhenNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepository(db)
	u := sampleUser()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET name = $1, email = $2, updated_at = $3 WHERE id = $4 RETURNING`)).
		WithArgs("Ann", "ann@x.com", sqlmock.AnyArg(), u.ID.String()).
		WillReturnRows(userRows(u))

	_, err := repo.Update(context.Background(), u.ID, models.UserUpdate{Name: "Ann", Email: "ann@x.com", UpdatedAt: u.UpdatedAt})
	require.NoError(t, err)
}

func TestUserUpdate_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(`UPDATE users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Update(context.Background(), uuid.New(), models.UserUpdate{Name: "Ann", Email: "bob@x.com"})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestUserDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), id))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), common.ErrUserNotFound)
}
