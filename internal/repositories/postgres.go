package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"DOIT_BACK-END/internal/common"
)

const (
	uniqueViolation      = "23505"
	foreignKeyViolation  = "23503"
	usersEmailConstraint = "users_email_key"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var (
	userColumns = []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}
	noteColumns = []string{"id", "user_id", "title", "description", "is_completed", "completed_at", "created_at", "updated_at"}
)

// translate maps driver errors onto the common taxonomy. notFound is returned
// for sql.ErrNoRows.
func translate(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolation && pgErr.ConstraintName == usersEmailConstraint:
			return common.ErrDuplicateEmail
		case pgErr.Code == foreignKeyViolation:
			// only notes.user_id references another table
			return common.ErrUserNotFound
		}
	}
	return fmt.Errorf("db error: %w", err)
}

func rowsAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
