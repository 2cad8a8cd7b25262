package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

var migrateDatabaseURL string

func init() {
	migrateCmd.Flags().StringVar(&migrateDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	url := migrateDatabaseURL
	if url == "" {
		url = settings.DatabaseURL
	}
	if url == "" {
		return fmt.Errorf("DATABASE_URL not set and --db-url not provided")
	}

	database, err := db.Connect(cmd.Context(), url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	applied, err := database.Migrate(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(applied) == 0 {
		_, _ = fmt.Fprintln(out, "Database is up to date")
		return nil
	}
	for _, name := range applied {
		_, _ = fmt.Fprintf(out, "Applied %s\n", name)
	}
	return nil
}
