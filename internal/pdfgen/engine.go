package pdfgen

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

// Engine names accepted by Select
const (
	EngineLaTeX  = "latex"
	EngineChrome = "chrome"
	EngineNative = "native"
)

// DefaultTimeout bounds a single render
const DefaultTimeout = 30 * time.Second

// Job is one render request
type Job struct {
	Resume   types.Resume
	Order    []types.SectionID
	Settings layout.Settings
}

// NewJob unpacks a bundle into a job.
func NewJob(b types.Bundle) Job {
	return Job{Resume: b.Resume, Order: b.Order(), Settings: b.Layout()}
}

// Bundle packs the job back into the shape the renderers take.
func (j Job) Bundle() types.Bundle {
	return types.NewBundle(j.Resume, j.Order, j.Settings)
}

// Engine renders a job to PDF bytes
type Engine interface {
	Name() string
	Render(ctx context.Context, job Job) ([]byte, error)
}

// Options configure the engines built by Select
type Options struct {
	// WorkDir is the parent of the per-request LaTeX directories.
	WorkDir string
	// PDFLatex is the pdflatex binary name or path.
	PDFLatex string
	// ChromePath overrides the browser binary. CHROME_PATH is used when empty.
	ChromePath string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// Select returns the engine registered under name. Names are case-insensitive
// and an empty name selects the LaTeX engine.
func Select(name string, opts Options) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineLaTeX, "pdflatex":
		return &LaTeXEngine{
			Root:    opts.WorkDir,
			Binary:  opts.PDFLatex,
			Timeout: opts.Timeout,
			Logger:  opts.Logger,
		}, nil
	case EngineChrome, "chromedp":
		return &ChromeEngine{
			ExecPath: opts.ChromePath,
			Timeout:  opts.Timeout,
			Logger:   opts.Logger,
		}, nil
	case EngineNative, "gofpdf":
		return &NativeEngine{}, nil
	default:
		return nil, &UnknownEngineError{Name: name}
	}
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}
