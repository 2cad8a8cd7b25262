package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that renders resumes and hosts editing sessions.

Saved drafts are enabled when DATABASE_URL and JWT_SECRET are both set.`,
	RunE: runServe,
}

var (
	servePort        int
	serveEngine      string
	serveDatabaseURL string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8000)")
	serveCmd.Flags().StringVar(&serveEngine, "engine", "", "PDF engine: latex, chrome or native")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if servePort != 0 {
		settings.Port = servePort
	}
	if serveDatabaseURL != "" {
		settings.DatabaseURL = serveDatabaseURL
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	engine, err := newEngine(serveEngine)
	if err != nil {
		return err
	}

	opts := server.Options{
		Engine:        engine,
		Template:      settings.Template,
		SessionTTL:    settings.SessionTTL(),
		RenderTimeout: settings.RenderTimeout(),
		Logger:        logger,
	}

	if settings.DatabaseURL != "" {
		database, err := db.Open(ctx, settings.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			logger.Warn("drafts disabled", zap.Error(err))
		} else {
			opts.Drafts = database
			opts.JWT = server.NewJWTService(jwtConfig)
		}
	}

	srv, err := server.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(ctx, settings.Addr())
}
