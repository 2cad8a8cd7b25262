// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the configuration that can be loaded from a YAML or JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port              int    `json:"port,omitempty" yaml:"port,omitempty"`
	DatabaseURL       string `json:"database_url,omitempty" yaml:"database_url,omitempty"`
	SessionTTLMinutes int    `json:"session_ttl_minutes,omitempty" yaml:"session_ttl_minutes,omitempty"`

	// Rendering
	Engine               string `json:"engine,omitempty" yaml:"engine,omitempty"`             // latex, chrome or native
	Template             string `json:"template,omitempty" yaml:"template,omitempty"`         // Path to a LaTeX template override
	WorkDir              string `json:"work_dir,omitempty" yaml:"work_dir,omitempty"`         // Root for per-request build directories
	PDFLatex             string `json:"pdflatex,omitempty" yaml:"pdflatex,omitempty"`         // pdflatex binary
	ChromePath           string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`   // Chrome executable for the chrome engine
	RenderTimeoutSeconds int    `json:"render_timeout_seconds,omitempty" yaml:"render_timeout_seconds,omitempty"`

	// Clients
	RemoteURL   string `json:"remote_url,omitempty" yaml:"remote_url,omitempty"` // Base URL of a remote generate-pdf server
	Concurrency int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:                 8000,
		SessionTTLMinutes:    60,
		Engine:               "latex",
		PDFLatex:             "pdflatex",
		RenderTimeoutSeconds: 30,
		RemoteURL:            "http://localhost:8000",
		Concurrency:          4,
	}
}

var knownEngines = map[string]bool{
	"": true, "latex": true, "pdflatex": true,
	"chrome": true, "chromedp": true,
	"native": true, "gofpdf": true,
}

// LoadConfig loads configuration from a file. Files ending in .yaml or .yml
// are parsed as YAML, everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables. Unparseable numbers are reported.
func (c *Config) ApplyEnv() error {
	strs := map[string]*string{
		"DATABASE_URL":    &c.DatabaseURL,
		"PDF_ENGINE":      &c.Engine,
		"RESUME_TEMPLATE": &c.Template,
		"PDF_WORK_DIR":    &c.WorkDir,
		"PDFLATEX_PATH":   &c.PDFLatex,
		"CHROME_PATH":     &c.ChromePath,
		"PDF_SERVER_URL":  &c.RemoteURL,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"PORT":                   &c.Port,
		"SESSION_TTL_MINUTES":    &c.SessionTTLMinutes,
		"RENDER_TIMEOUT_SECONDS": &c.RenderTimeoutSeconds,
		"RENDER_CONCURRENCY":     &c.Concurrency,
	}
	for key, dst := range ints {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", key, err)
		}
		*dst = n
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.SessionTTLMinutes < 0 {
		return fmt.Errorf("config error: 'session_ttl_minutes' must be non-negative")
	}
	if c.RenderTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'render_timeout_seconds' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if !knownEngines[strings.ToLower(c.Engine)] {
		return fmt.Errorf("config error: unknown engine %q", c.Engine)
	}

	// Validate file paths exist (if specified)
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	for _, f := range []struct{ dst *string; def string }{
		{&result.DatabaseURL, defaults.DatabaseURL},
		{&result.Engine, defaults.Engine},
		{&result.Template, defaults.Template},
		{&result.WorkDir, defaults.WorkDir},
		{&result.PDFLatex, defaults.PDFLatex},
		{&result.ChromePath, defaults.ChromePath},
		{&result.RemoteURL, defaults.RemoteURL},
	} {
		if *f.dst == "" {
			*f.dst = f.def
		}
	}

	// Int fields: use default if zero
	for _, f := range []struct{ dst *int; def int }{
		{&result.Port, defaults.Port},
		{&result.SessionTTLMinutes, defaults.SessionTTLMinutes},
		{&result.RenderTimeoutSeconds, defaults.RenderTimeoutSeconds},
		{&result.Concurrency, defaults.Concurrency},
	} {
		if *f.dst == 0 {
			*f.dst = f.def
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// RenderTimeout returns the render timeout as a duration.
func (c *Config) RenderTimeout() time.Duration {
	return time.Duration(c.RenderTimeoutSeconds) * time.Second
}

// SessionTTL returns the idle lifetime of an editing session.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
