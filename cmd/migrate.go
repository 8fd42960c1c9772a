package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"DOIT_BACK-END/internal/database"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or inspect the embedded schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{database.MigrateUp, database.MigrateDown, database.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime(*configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			pool, err := database.NewPool(ctx, cfg)
			if err != nil {
				return fmt.Errorf("database: %w", err)
			}
			defer pool.Close()

			db := database.OpenDB(pool)
			defer database.Close(db.DB)

			return database.Migrate(ctx, db.DB, args[0], log)
		},
	}
}
