// Package server provides the HTTP API for rendering and editing resumes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/resume-builder/internal/pdfgen"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 5 << 20

// Options configure a Server. Only Engine is required.
type Options struct {
	Engine pdfgen.Engine
	// Template overrides the built-in LaTeX template for the tex endpoints.
	Template string
	// Drafts and JWT enable the /api/drafts routes when both are set.
	Drafts DraftStore
	JWT    *JWTService
	// SessionTTL is the idle lifetime of an editing session.
	SessionTTL time.Duration
	// RenderTimeout bounds a single PDF render.
	RenderTimeout time.Duration
	// RateLimit configures the limiter. Nil uses ratelimit.LoadConfig.
	RateLimit *ratelimit.Config
	Logger    *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	engine        pdfgen.Engine
	template      string
	drafts        DraftStore
	jwtService    *JWTService
	sessions      *SessionStore
	rateLimiter   *ratelimit.Limiter
	renderTimeout time.Duration
	writeTimeout  time.Duration
	logger        *zap.Logger
	handler       http.Handler
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("a PDF engine is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rlConfig := opts.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}
	timeout := opts.RenderTimeout
	if timeout <= 0 {
		timeout = pdfgen.DefaultTimeout
	}

	s := &Server{
		engine:        opts.Engine,
		template:      opts.Template,
		drafts:        opts.Drafts,
		jwtService:    opts.JWT,
		sessions:      NewSessionStore(opts.SessionTTL, logger),
		rateLimiter:   ratelimit.NewLimiter(rlConfig),
		renderTimeout: timeout,
		writeTimeout:  timeout + 30*time.Second,
		logger:        logger,
	}
	s.sessions.Start(0)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Stateless rendering matching the generate-pdf wire contract
	mux.HandleFunc("POST /api/resume/generate-pdf", s.handleGeneratePDF)
	mux.HandleFunc("POST /api/resume/tex", s.handleTeX)
	mux.HandleFunc("POST /api/resume/preview", s.handlePreview)
	mux.HandleFunc("POST /api/resume/validate", s.handleValidate)

	// Editing sessions
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("PATCH /api/sessions/{id}/fields", s.handleUpdateFields)
	mux.HandleFunc("POST /api/sessions/{id}/sections/{section}/items", s.handleAddItem)
	mux.HandleFunc("PATCH /api/sessions/{id}/sections/{section}/items/{index}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /api/sessions/{id}/sections/{section}/items/{index}", s.handleRemoveItem)
	mux.HandleFunc("POST /api/sessions/{id}/order/drop", s.handleDrop)
	mux.HandleFunc("POST /api/sessions/{id}/order/{section}", s.handleAddSection)
	mux.HandleFunc("DELETE /api/sessions/{id}/order/{section}", s.handleRemoveSection)
	mux.HandleFunc("PUT /api/sessions/{id}/layout", s.handleSetLayout)
	mux.HandleFunc("POST /api/sessions/{id}/reset", s.handleReset)
	mux.HandleFunc("GET /api/sessions/{id}/export", s.handleExport)
	mux.HandleFunc("POST /api/sessions/{id}/import", s.handleImport)
	mux.HandleFunc("GET /api/sessions/{id}/preview", s.handleSessionPreview)
	mux.HandleFunc("GET /api/sessions/{id}/pdf", s.handleSessionPDF)
	mux.HandleFunc("GET /api/sessions/{id}/events", s.handleSessionEvents)

	// Saved drafts
	mux.Handle("POST /api/drafts", s.withAuth(s.handleCreateDraft))
	mux.Handle("GET /api/drafts", s.withAuth(s.handleListDrafts))
	mux.Handle("GET /api/drafts/{id}", s.withAuth(s.handleGetDraft))
	mux.Handle("PUT /api/drafts/{id}", s.withAuth(s.handleUpdateDraft))
	mux.Handle("DELETE /api/drafts/{id}", s.withAuth(s.handleDeleteDraft))
	mux.Handle("POST /api/drafts/{id}/session", s.withAuth(s.handleOpenDraft))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	return s, nil
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions returns the in-memory session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.Close()
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.writeTimeout,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", zap.Stringer("addr", ln.Addr()), zap.String("engine", s.engine.Name()))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.Close()
	s.logger.Info("server stopped")
	return err
}

// Close stops background goroutines.
func (s *Server) Close() {
	s.rateLimiter.Stop()
	s.sessions.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Flush keeps SSE streaming working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, clientID, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withAuth guards draft routes with bearer token auth. Without a store or
// a JWT service the routes answer 503.
func (s *Server) withAuth(h http.HandlerFunc) http.Handler {
	if s.drafts == nil || s.jwtService == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			s.errorResponse(w, HTTPStatus(ErrDraftsDisabled), ErrDraftsDisabled.Error())
		})
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(h)
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retry := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = retry
		w.Header().Set("Retry-After", strconv.Itoa(retry))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID),
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status and writes it as an error response.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"engine":   s.engine.Name(),
		"sessions": s.sessions.Len(),
		"drafts":   s.drafts != nil && s.jwtService != nil,
	})
}
