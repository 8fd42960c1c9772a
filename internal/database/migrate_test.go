package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DOIT_BACK-END/internal/database/migrations"
	"DOIT_BACK-END/internal/logging"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func stubGoose(t *testing.T) *[]string {
	t.Helper()
	var calls []string
	origUp, origDown, origStatus := gooseUpContext, gooseDownContext, gooseStatusContext
	record := func(name string) func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
			if dir != "." {
				return errors.New("unexpected dir")
			}
			calls = append(calls, name)
			return nil
		}
	}
	gooseUpContext = record("up")
	gooseDownContext = record("down")
	gooseStatusContext = record("status")
	t.Cleanup(func() {
		gooseUpContext, gooseDownContext, gooseStatusContext = origUp, origDown, origStatus
	})
	return &calls
}

func TestMigrate_DispatchesCommands(t *testing.T) {
	calls := stubGoose(t)
	db := newDB(t)

	for _, cmd := range []string{MigrateUp, MigrateDown, MigrateStatus} {
		require.NoError(t, Migrate(context.Background(), db, cmd, logging.Nop()))
	}

	assert.Equal(t, []string{"up", "down", "status"}, *calls)
}

func TestMigrate_UnknownCommand(t *testing.T) {
	stubGoose(t)

	err := Migrate(context.Background(), newDB(t), "sideways", logging.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}

func TestMigrate_PropagatesGooseError(t *testing.T) {
	stubGoose(t)
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	err := Migrate(context.Background(), newDB(t), MigrateUp, logging.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate up: boom")
}

func TestEmbeddedMigrations_Present(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_create_users.sql", "00002_create_notes.sql"}, files)
}
