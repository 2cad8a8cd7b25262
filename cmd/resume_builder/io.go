package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/exchange"
	"github.com/jonathan/resume-builder/internal/pdfgen"
	"github.com/jonathan/resume-builder/internal/types"
)

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

// readBundle reads a generate-pdf payload or a bare resume leniently.
func readBundle(cmd *cobra.Command, path string) (types.Bundle, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return types.Bundle{}, err
	}
	return exchange.DecodePayload(data)
}

// writeOutput writes data to path, creating parent directories, or to the
// command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// newEngine selects a PDF engine by name, falling back to the configured one.
func newEngine(name string) (pdfgen.Engine, error) {
	if name == "" {
		name = settings.Engine
	}
	return pdfgen.Select(name, pdfgen.Options{
		WorkDir:    settings.WorkDir,
		PDFLatex:   settings.PDFLatex,
		ChromePath: settings.ChromePath,
		Timeout:    settings.RenderTimeout(),
		Logger:     logger,
	})
}
