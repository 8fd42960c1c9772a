package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"DOIT_BACK-END/internal/common"
	"DOIT_BACK-END/internal/models"
)

type PostgresUserRepository struct {
	db sqlx.ExtContext
}

func NewPostgresUserRepository(db sqlx.ExtContext) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return translate(err, common.ErrUserNotFound)
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *PostgresUserRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	user := &models.User{}
	if err := sqlx.GetContext(ctx, r.db, user, query, args...); err != nil {
		return nil, translate(err, common.ErrUserNotFound)
	}
	return user, nil
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.db, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error) {
	b := psql.Update("users").
		Set("name", upd.Name).
		Set("email", upd.Email).
		Set("updated_at", upd.UpdatedAt)
	if upd.PasswordHash != nil {
		b = b.Set("password_hash", *upd.PasswordHash)
	}

	query, args, err := b.Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	user := &models.User{}
	if err := sqlx.GetContext(ctx, r.db, user, query, args...); err != nil {
		return nil, translate(err, common.ErrUserNotFound)
	}
	return user, nil
}

// Delete removes the user; notes go with it through ON DELETE CASCADE.
func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return rowsAffected(res, common.ErrUserNotFound)
}
