package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"DOIT_BACK-END/internal/config"
	"DOIT_BACK-END/internal/database"
	"DOIT_BACK-END/internal/handlers"
	"DOIT_BACK-END/internal/logging"
	"DOIT_BACK-END/internal/repositories"
	"DOIT_BACK-END/internal/routes"
	"DOIT_BACK-END/internal/services"
)

func newServeCmd(configPath *string) *cobra.Command {
	var inMemory bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadRuntime(*configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, log, inMemory)
		},
	}
	cmd.Flags().BoolVar(&inMemory, "in-memory", false, "keep data in process memory instead of PostgreSQL")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, log logging.Logger, inMemory bool) error {
	if cfg.UsesDefaultSecret() {
		log.Warn(ctx, "JWT_SECRET is not set; using the built-in development secret")
	}

	var (
		users  repositories.UserRepository
		notes  repositories.NoteRepository
		health *handlers.HealthHandler
	)

	if inMemory {
		store := repositories.NewMemoryStore()
		users, notes = store.Users(), store.Notes()
		health = handlers.NewHealthHandler("memory", store)
		log.Warn(ctx, "running with the in-memory store; data is lost on exit")
	} else {
		pool, err := database.NewPool(ctx, cfg)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()

		db := database.OpenDB(pool)
		defer database.Close(db.DB)

		if cfg.Database.AutoMigrate {
			if err := database.Migrate(ctx, db.DB, database.MigrateUp, log); err != nil {
				return err
			}
		}

		users = repositories.NewPostgresUserRepository(db)
		notes = repositories.NewPostgresNoteRepository(db)
		health = handlers.NewHealthHandler("db", pool)
		log.Info(ctx, "connected to database", "host", cfg.Database.Host, "name", cfg.Database.Name)
	}

	userService := services.NewUserService(users, &cfg.JWT, log)
	noteService := services.NewNoteService(notes, users, log)

	var google *handlers.GoogleAuthHandler
	if cfg.IsGoogleOAuthConfigured() {
		google = handlers.NewGoogleAuthHandler(userService, cfg.GoogleOAuth, log)
	}

	router := routes.NewRouter(routes.Deps{
		Users:  userService,
		Notes:  noteService,
		Health: health,
		Google: google,
		JWT:    &cfg.JWT,
		Log:    log,
	})

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
