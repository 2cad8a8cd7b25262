package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/pdfgen"
)

var renderPDFCmd = &cobra.Command{
	Use:   "render-pdf",
	Short: "Render a PDF resume from a bundle",
	Long: `Renders a resume bundle to PDF with the selected engine:

  latex   compile the LaTeX template with pdflatex
  chrome  print the HTML preview with headless Chrome
  native  draw the page directly, no external tools needed`,
	RunE: runRenderPDF,
}

var (
	renderPDFInput  string
	renderPDFOutput string
	renderPDFEngine string
)

func init() {
	renderPDFCmd.Flags().StringVarP(&renderPDFInput, "in", "i", "", "Path to bundle JSON file, or - for stdin (required)")
	renderPDFCmd.Flags().StringVarP(&renderPDFOutput, "out", "o", "resume.pdf", "Path to output PDF file")
	renderPDFCmd.Flags().StringVarP(&renderPDFEngine, "engine", "e", "", "PDF engine: latex, chrome or native (default from config)")

	if err := renderPDFCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(renderPDFCmd)
}

func runRenderPDF(cmd *cobra.Command, _ []string) error {
	bundle, err := readBundle(cmd, renderPDFInput)
	if err != nil {
		return err
	}
	engine, err := newEngine(renderPDFEngine)
	if err != nil {
		return err
	}

	start := time.Now()
	pdf, err := engine.Render(cmd.Context(), pdfgen.NewJob(bundle))
	if err != nil {
		return fmt.Errorf("PDF generation failed: %w", err)
	}
	logger.Debug("pdf rendered",
		zap.String("engine", engine.Name()),
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)))

	if err := writeOutput(cmd, renderPDFOutput, pdf); err != nil {
		return err
	}

	pages, err := pdfgen.CountPages(pdf)
	if err != nil {
		logger.Warn("failed to count pages", zap.Error(err))
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d page(s), %d bytes)\n", renderPDFOutput, pages, len(pdf))
	return nil
}
