package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"DOIT_BACK-END/internal/database/migrations"
	"DOIT_BACK-END/internal/logging"
)

// Migration commands accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// seams for testing goose without a live server
var (
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
	gooseDownContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.DownContext(ctx, db, dir, opts...)
	}
	gooseStatusContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.StatusContext(ctx, db, dir, opts...)
	}
)

// Migrate runs one goose command against the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, log logging.Logger) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(&gooseLogger{ctx: ctx, log: log.With("component", "migrations")})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	var err error
	switch command {
	case MigrateUp:
		err = gooseUpContext(ctx, db, ".")
	case MigrateDown:
		err = gooseDownContext(ctx, db, ".")
	case MigrateStatus:
		err = gooseStatusContext(ctx, db, ".")
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}

// gooseLogger routes goose output through the application logger.
type gooseLogger struct {
	ctx context.Context
	log logging.Logger
}

func (g *gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info(g.ctx, fmt.Sprintf(format, v...))
}

func (g *gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Error(g.ctx, fmt.Sprintf(format, v...))
}
