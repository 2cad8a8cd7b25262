package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/exchange"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/pdfgen"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a bundle against the resume schema and layout ranges",
	Long:  "Checks the resume against the embedded JSON Schema, the layout fields against the settings panel ranges and the section order against the known sections. With --pages the bundle is also rendered and its page count reported.",
	RunE:  runValidate,
}

var (
	validateInput  string
	validatePages  bool
	validateEngine string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to bundle JSON file, or - for stdin (required)")
	validateCmd.Flags().BoolVar(&validatePages, "pages", false, "Render the bundle and report its page count")
	validateCmd.Flags().StringVarP(&validateEngine, "engine", "e", "", "PDF engine for --pages (default from config)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	data, err := readInput(cmd, validateInput)
	if err != nil {
		return err
	}

	problems, err := exchange.Check(data)
	if err != nil {
		return err
	}

	pages := 0
	if len(problems) == 0 && validatePages {
		bundle, err := exchange.DecodePayload(data)
		if err != nil {
			return err
		}
		engine, err := newEngine(validateEngine)
		if err != nil {
			return err
		}
		pdf, err := engine.Render(cmd.Context(), pdfgen.NewJob(bundle))
		if err != nil {
			return fmt.Errorf("PDF generation failed: %w", err)
		}
		if pages, err = pdfgen.CountPages(pdf); err != nil {
			return err
		}
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(problems, pages)

	if len(problems) > 0 {
		return fmt.Errorf("validation failed with %d problem(s)", len(problems))
	}
	return nil
}
