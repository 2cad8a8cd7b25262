// Package main provides the resume_builder CLI: the HTTP server plus offline
// rendering, preview and export tools for resume bundles.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Resume Builder server and tools",
	Long: `Resume Builder edits structured resumes and renders them to HTML, LaTeX and PDF.

Configuration can be loaded from a YAML or JSON file using --config. Environment
variables (and a .env file) override the file, and command flags override both.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

var (
	rootConfigPath string
	rootVerbose    bool

	// settings is the merged configuration for the running command.
	settings config.Config
	logger   = zap.NewNop()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
}

// loadSettings merges the config file, the environment and defaults, then
// builds the logger.
func loadSettings(_ *cobra.Command, _ []string) error {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if rootVerbose {
		cfg.Verbose = true
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return err
	}
	settings = merged

	l, err := observability.NewLogger(settings.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
