// Package server provides the HTTP host of the portfolio site.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/portfolio-site/internal/cv"
	"github.com/jonathan/portfolio-site/internal/form"
	"github.com/jonathan/portfolio-site/internal/localization"
	"github.com/jonathan/portfolio-site/internal/logging"
	"github.com/jonathan/portfolio-site/internal/server/middleware"
	"github.com/jonathan/portfolio-site/internal/server/ratelimit"
	"github.com/jonathan/portfolio-site/internal/translations"
)

// Config holds server configuration.
type Config struct {
	Addr            string
	DefaultLanguage string
	SecureCookies   bool
	// Page is the HTML page served at "/".
	Page []byte
	// PDF enables GET /cv/{lang}/pdf when non-nil.
	PDF *cv.PDFOptions
	// RateLimit configures the limiter. Nil disables rate limiting.
	RateLimit *ratelimit.Config
}

// Deps are the components the handlers drive.
type Deps struct {
	Translations *translations.Store
	Engine       *localization.Engine
	Contact      *form.Controller
	CV           *cv.Generator
	Logger       *slog.Logger
}

// Server represents the HTTP server.
type Server struct {
	cfg         Config
	deps        Deps
	logger      *slog.Logger
	rateLimiter *ratelimit.Limiter
	handler     http.Handler
	httpServer  *http.Server

	// renderPDF is swapped in tests.
	renderPDF func(ctx context.Context, doc *cv.Document, opts *cv.PDFOptions) (cv.Artifact, error)
}

// New creates a new server instance.
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Translations == nil || deps.Engine == nil || deps.Contact == nil || deps.CV == nil {
		return nil, fmt.Errorf("server dependencies are incomplete")
	}
	if len(cfg.Page) == 0 {
		return nil, fmt.Errorf("server page is empty")
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "en"
	}

	s := &Server{
		cfg:       cfg,
		deps:      deps,
		logger:    logging.OrDefault(deps.Logger),
		renderPDF: cv.RenderPDF,
	}

	rlCfg := cfg.RateLimit
	if rlCfg == nil {
		rlCfg = &ratelimit.Config{Enabled: false}
	}
	s.rateLimiter = ratelimit.NewLimiter(rlCfg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /data/languages.json", s.handleLanguages)
	mux.HandleFunc("POST /language", s.handleSetLanguage)
	mux.HandleFunc("POST /theme/toggle", s.handleToggleTheme)
	mux.HandleFunc("POST /contact", s.handleContact)
	mux.HandleFunc("POST /contact/stream", s.handleContactStream)
	mux.HandleFunc("GET /cv/{lang}", s.handleCV)
	mux.HandleFunc("GET /cv/{lang}/pdf", s.handleCVPDF)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.handler = middleware.RequestID(middleware.Logging(s.logger)(s.withRateLimit(mux)))

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // PDF printing is slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}

// withRateLimit adds rate limiting middleware.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"translations": s.deps.Translations.Loaded(),
		"languages":    s.deps.Translations.Languages(),
	})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Error encoding JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID returns the client IP from RemoteAddr.
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

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	s.logger.Warn("Rate limit exceeded",
		"request_id", middleware.RequestIDFrom(r.Context()),
		"path", r.URL.Path,
		"limit", info.Limit)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
