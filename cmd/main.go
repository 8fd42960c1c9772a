// @title DoIt Backend API
// @version 1.0
// @description Notes and task tracking backend with JWT authentication

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "DOIT_BACK-END/docs" // This is required for swagger
	"DOIT_BACK-END/internal/config"
	"DOIT_BACK-END/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "doit",
		Short: "DoIt notes backend",
		Long: `DoIt serves the notes REST API.

Configuration is read from an optional YAML file and environment
variables (a .env file is loaded first when present). Running the
binary without a sub-command starts the HTTP server.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (defaults to $CONFIG_FILE)")

	serve := newServeCmd(&configPath)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newMigrateCmd(&configPath))
	return root
}

// loadRuntime reads configuration and builds the logger every command shares.
func loadRuntime(configPath string) (*config.Config, logging.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logging.New(cfg.Log, os.Stdout), nil
}
