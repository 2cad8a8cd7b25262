package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/exchange"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/pdfgen"
)

var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Render many bundles to PDF concurrently",
	Long: `Renders each bundle JSON file to a PDF of the same base name in --out-dir.
Inputs sharing a base name get numbered outputs (resume.pdf, resume-2.pdf).

A failed file does not stop the others. The command fails if any file failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	batchOutDir      string
	batchEngine      string
	batchConcurrency int
)

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out-dir", "o", "out", "Directory for the rendered PDFs")
	batchCmd.Flags().StringVarP(&batchEngine, "engine", "e", "", "PDF engine: latex, chrome or native (default from config)")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "Maximum renders in flight (default from config)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(batchEngine)
	if err != nil {
		return err
	}

	limit := batchConcurrency
	if limit <= 0 {
		limit = settings.Concurrency
	}

	outputs := batchOutputs(args)
	results := make([]observability.RenderResult, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(limit)

	for i, path := range args {
		g.Go(func() error {
			results[i] = renderOne(ctx, cmd, engine, path, outputs[i])
			// Failures are collected in results so the other files still render.
			return nil
		})
	}
	_ = g.Wait()

	observability.NewPrinter(cmd.OutOrStdout()).PrintRenderResults(results)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d renders failed", failed, len(results))
	}
	return nil
}

// batchOutputs maps each input file to a distinct PDF path in the output
// directory. Repeated base names are numbered in argument order.
func batchOutputs(paths []string) []string {
	outputs := make([]string, len(paths))
	used := make(map[string]bool, len(paths))
	for i, path := range paths {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		name := base
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		used[name] = true
		outputs[i] = filepath.Join(batchOutDir, name+".pdf")
	}
	return outputs
}

func renderOne(ctx context.Context, cmd *cobra.Command, engine pdfgen.Engine, path, output string) (result observability.RenderResult) {
	result = observability.RenderResult{Source: path, Output: output, Engine: engine.Name()}
	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	data, err := readInput(cmd, path)
	if err != nil {
		result.Err = err
		return result
	}
	bundle, err := exchange.DecodePayload(data)
	if err != nil {
		result.Err = err
		return result
	}

	pdf, err := engine.Render(ctx, pdfgen.NewJob(bundle))
	if err != nil {
		logger.Debug("render failed", zap.String("file", path), zap.Error(err))
		result.Err = err
		return result
	}
	if err := writeOutput(cmd, result.Output, pdf); err != nil {
		result.Err = err
		return result
	}

	result.Bytes = len(pdf)
	if result.Pages, err = pdfgen.CountPages(pdf); err != nil {
		logger.Warn("failed to count pages", zap.String("file", path), zap.Error(err))
	}
	return result
}
