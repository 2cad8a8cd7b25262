package pdfgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/rendering"
)

// LaTeX engine defaults
const (
	DefaultPDFLatex = "pdflatex"
	// Two passes settle hyperref references.
	DefaultPasses = 2
	texFileName   = "resume.tex"
	pdfFileName   = "resume.pdf"
)

// DefaultWorkRoot is where per-request directories are created when Root is empty.
var DefaultWorkRoot = filepath.Join(os.TempDir(), "resumes")

// LaTeXEngine renders the LaTeX source and compiles it with pdflatex
type LaTeXEngine struct {
	// Root is the parent of the per-request working directories.
	Root string
	// Binary is the pdflatex executable.
	Binary string
	// Passes is how many times pdflatex runs.
	Passes  int
	Timeout time.Duration
	// Template replaces the built-in LaTeX template when set.
	Template string
	// KeepWorkDir leaves the working directory in place for debugging.
	KeepWorkDir bool
	Logger      *zap.Logger
}

// Name implements Engine.
func (e *LaTeXEngine) Name() string { return EngineLaTeX }

// Render implements Engine.
func (e *LaTeXEngine) Render(ctx context.Context, job Job) ([]byte, error) {
	tex, err := e.source(job)
	if err != nil {
		return nil, err
	}
	return e.Compile(ctx, tex)
}

func (e *LaTeXEngine) source(job Job) (string, error) {
	if e.Template != "" {
		return rendering.RenderLaTeXWithTemplate(job.Bundle(), e.Template)
	}
	return rendering.RenderLaTeX(job.Bundle())
}

// Compile writes tex into a fresh working directory and runs pdflatex on it.
func (e *LaTeXEngine) Compile(ctx context.Context, tex string) ([]byte, error) {
	logger := loggerOrNop(e.Logger)
	binary := e.Binary
	if binary == "" {
		binary = DefaultPDFLatex
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, &CompilationError{
			Message: fmt.Sprintf("%s not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)", binary),
			Cause:   err,
		}
	}

	root := e.Root
	if root == "" {
		root = DefaultWorkRoot
	}
	workDir := filepath.Join(root, uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, &CompilationError{
			Message: fmt.Sprintf("failed to create working directory: %s", workDir),
			Cause:   err,
		}
	}
	if !e.KeepWorkDir {
		defer func() {
			if err := os.RemoveAll(workDir); err != nil {
				logger.Warn("failed to remove LaTeX working directory", zap.String("dir", workDir), zap.Error(err))
			}
		}()
	}

	texPath := filepath.Join(workDir, texFileName)
	if err := os.WriteFile(texPath, []byte(tex), 0o644); err != nil {
		return nil, &CompilationError{
			Message: fmt.Sprintf("failed to write LaTeX file to working directory: %s", workDir),
			Cause:   err,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeoutOrDefault(e.Timeout))
	defer cancel()

	passes := e.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}

	start := time.Now()
	for pass := 1; pass <= passes; pass++ {
		cmd := exec.CommandContext(ctx, binary, "-interaction=nonstopmode", "-output-directory", workDir, texPath)
		cmd.Dir = workDir

		var output strings.Builder
		cmd.Stdout = &output
		cmd.Stderr = &output

		if err := cmd.Run(); err != nil {
			msg := fmt.Sprintf("pdflatex pass %d failed", pass)
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				msg = fmt.Sprintf("pdflatex pass %d timed out", pass)
			}
			return nil, &CompilationError{
				Message:   msg,
				LogOutput: output.String(),
				Cause:     err,
			}
		}
	}

	data, err := os.ReadFile(filepath.Join(workDir, pdfFileName))
	if err != nil {
		return nil, &CompilationError{
			Message: "LaTeX compilation failed: PDF was not generated",
			Cause:   err,
		}
	}

	logger.Debug("compiled LaTeX",
		zap.String("dir", workDir),
		zap.Int("passes", passes),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return data, nil
}
