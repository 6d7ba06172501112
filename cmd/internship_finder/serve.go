package main

import (
	"fmt"

	"github.com/jonathan/internship-finder/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveConfigPath string
	servePort       int
	serveDBURL      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wizard web server",
	Long: `Start an HTTP server that walks a visitor through uploading a resume,
entering contact details, and reviewing job suggestions and internship listings.

Configuration can be loaded from a JSON file using --config. Environment
variables override the file, and flags override both.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveDBURL, "db-url", "", "PostgreSQL URL for session storage (optional, defaults to DATABASE_URL env var)")
	addListingFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, serveConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = serveDBURL
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(cfg, server.Deps{})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
