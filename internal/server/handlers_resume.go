package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/resume-builder/internal/exchange"
	"github.com/jonathan/resume-builder/internal/pdfgen"
	"github.com/jonathan/resume-builder/internal/preview"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// readBody reads a bounded request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return data, nil
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	data, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// renderPDF runs the configured engine under the render timeout.
func (s *Server) renderPDF(ctx context.Context, b types.Bundle) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.renderTimeout)
	defer cancel()

	start := time.Now()
	data, err := s.engine.Render(ctx, pdfgen.NewJob(b))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("rendered pdf",
		zap.String("engine", s.engine.Name()),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)),
	)
	return data, nil
}

// writePDF sends PDF bytes, or {"pdf": base64} when the client asks for ?encoding=base64.
func (s *Server) writePDF(w http.ResponseWriter, r *http.Request, data []byte) {
	if r.URL.Query().Get("encoding") == "base64" {
		s.jsonResponse(w, http.StatusOK, map[string]string{
			"pdf": base64.StdEncoding.EncodeToString(data),
		})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("failed to write pdf", zap.Error(err))
	}
}

// handleGeneratePDF renders a payload to PDF. Errors use {"detail": ...} for
// compatibility with existing clients.
func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	bundle, err := exchange.DecodePayload(data)
	if err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	pdf, err := s.renderPDF(r.Context(), bundle)
	if err != nil {
		s.logger.Error("pdf generation failed", zap.Error(err))
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{
			"detail": fmt.Sprintf("PDF generation failed: %v", err),
		})
		return
	}

	s.writePDF(w, r, pdf)
}

// renderTeX renders with the configured template override, if any.
func (s *Server) renderTeX(b types.Bundle) (string, error) {
	if s.template != "" {
		return rendering.RenderLaTeXWithTemplate(b, s.template)
	}
	return rendering.RenderLaTeX(b)
}

// handleTeX returns the LaTeX source for a payload.
func (s *Server) handleTeX(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	bundle, err := exchange.DecodePayload(data)
	if err != nil {
		s.fail(w, err)
		return
	}

	tex, err := s.renderTeX(bundle)
	if err != nil {
		s.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-tex; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="resume.tex"`)
	_, _ = io.WriteString(w, tex)
}

// writePreview writes HTML, or wrapped text when ?format=text.
func (s *Server) writePreview(w http.ResponseWriter, r *http.Request, b types.Bundle) {
	q := r.URL.Query()
	if q.Get("format") == "text" {
		width, _ := strconv.Atoi(q.Get("width"))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, preview.Text(b, width))
		return
	}

	html, err := preview.HTML(b)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

// handlePreview renders a payload as an HTML page.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	bundle, err := exchange.DecodePayload(data)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writePreview(w, r, bundle)
}

// ValidationReport is the response of the validate endpoint
type ValidationReport struct {
	Valid  bool                 `json:"valid"`
	Errors []schemas.FieldError `json:"errors"`
	Pages  int                  `json:"pages,omitempty"`
}

// handleValidate checks a payload against the resume schema and the layout
// ranges. With ?pages=true it also renders the PDF and counts its pages.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	report, err := validatePayload(data)
	if err != nil {
		s.fail(w, err)
		return
	}

	if report.Valid && r.URL.Query().Get("pages") == "true" {
		bundle, err := exchange.DecodePayload(data)
		if err != nil {
			s.fail(w, err)
			return
		}
		pdf, err := s.renderPDF(r.Context(), bundle)
		if err != nil {
			s.fail(w, err)
			return
		}
		if report.Pages, err = pdfgen.CountPages(pdf); err != nil {
			s.fail(w, err)
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// validatePayload wraps exchange.Check into a report.
func validatePayload(data []byte) (*ValidationReport, error) {
	problems, err := exchange.Check(data)
	if err != nil {
		return nil, err
	}
	return &ValidationReport{Valid: len(problems) == 0, Errors: problems}, nil
}
