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

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-editor/internal/editing"
	"github.com/jonathan/resume-editor/internal/persistence"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/server/middleware"
	"github.com/jonathan/resume-editor/internal/server/ratelimit"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	workspace   *editing.Workspace
	exporter    *rendering.Exporter
	adapter     *persistence.Adapter
	rateLimiter *ratelimit.Limiter
	validator   *validator.Validate
	logger      logrus.FieldLogger
	now         func() time.Time
}

// Config holds server configuration
type Config struct {
	Port      int
	Workspace *editing.Workspace
	Exporter  *rendering.Exporter
	// Adapter, when set, is flushed on shutdown.
	Adapter   *persistence.Adapter
	RateLimit *ratelimit.Config
	Logger    logrus.FieldLogger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Workspace == nil {
		return nil, fmt.Errorf("server requires a workspace")
	}
	if cfg.Exporter == nil {
		return nil, fmt.Errorf("server requires an exporter")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Server{
		workspace:   cfg.Workspace,
		exporter:    cfg.Exporter,
		adapter:     cfg.Adapter,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		validator:   validator.New(),
		logger:      logger.WithField("component", "server"),
		now:         time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /documents", s.handleGetDocuments)
	mux.HandleFunc("GET /workspace", s.handleGetWorkspace)
	mux.HandleFunc("PUT /workspace/tab", s.handleSetTab)
	mux.HandleFunc("PUT /workspace/export-menu", s.handleSetExportMenu)

	// Section editing
	mux.HandleFunc("GET /sections/{section}", s.handleGetSection)
	mux.HandleFunc("POST /sections/{section}/edit", s.handleEditSection)
	mux.HandleFunc("PATCH /sections/{section}/buffer", s.handleUpdateBuffer)
	mux.HandleFunc("POST /sections/{section}/commit", s.handleCommitSection)
	mux.HandleFunc("POST /sections/{section}/discard", s.handleDiscardSection)

	// List entries and bullets inside an open buffer
	mux.HandleFunc("POST /sections/{section}/entries", s.handleAddEntry)
	mux.HandleFunc("DELETE /sections/{section}/entries/{entry}", s.handleRemoveEntry)
	mux.HandleFunc("POST /sections/{section}/entries/{entry}/bullets", s.handleAddBullet)
	mux.HandleFunc("DELETE /sections/{section}/entries/{entry}/bullets/{bullet}", s.handleRemoveBullet)

	// Exports
	mux.HandleFunc("GET /export/{document}/{format}", s.handleExport)
	mux.HandleFunc("GET /print/{document}", s.handlePrint)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      middleware.RequestID(s.withLogging(s.withRateLimit(s.withCORS(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF exports start a browser
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves until ctx is cancelled, then shuts down gracefully and writes
// any pending save.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.rateLimiter.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()

	if s.adapter != nil {
		if flushErr := s.adapter.Flush(shutdownCtx); flushErr != nil {
			s.logger.WithError(flushErr).Warn("failed to flush pending save")
		}
	}

	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exceed their endpoint's budget.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.Method, r.URL.Path)
		setRateLimitHeaders(w, info)
		if !allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())+1))
			}
			s.logger.WithFields(logrus.Fields{
				"client": clientID(r),
				"path":   r.URL.Path,
			}).Warn("rate limit exceeded")
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		s.logger.WithFields(logrus.Fields{
			"request_id":  middleware.GetRequestID(r.Context()),
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"bytes":       rec.bytes,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("request completed")
	})
}

// clientID identifies the caller by IP address.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status and writes it. Server-side failures are
// logged with their detail.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(r.Context()),
			"path":       r.URL.Path,
		}).WithError(err).Error("request failed")
	}
	s.errorResponse(w, status, publicMessage(err))
}
