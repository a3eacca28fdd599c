// Package http serves the active documentation index as a JSON REST API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/anydocs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server defaults.
const (
	DefaultAddr       = ":8080"
	DefaultRateLimit  = 20
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server is the HTTP API over an IndexService.
type Server struct {
	router   chi.Router
	index    anydocs.IndexService
	switcher anydocs.IndexSwitcher
	log      *slog.Logger

	// Requests per second allowed per client; zero disables limiting.
	rateLimit float64
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimit sets the per-client request rate. Zero disables limiting.
func WithRateLimit(rps float64) Option {
	return func(s *Server) {
		s.rateLimit = rps
	}
}

// NewServer creates and configures the HTTP server.
func NewServer(index anydocs.IndexService, switcher anydocs.IndexSwitcher, log *slog.Logger, opts ...Option) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		index:     index,
		switcher:  switcher,
		log:       log,
		rateLimit: DefaultRateLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if s.rateLimit > 0 {
			r.Use(RateLimit(NewClientLimiter(s.rateLimit)))
		}

		r.Get("/search", s.handleSearch)
		r.Get("/overview", s.handleOverview)
		r.Get("/files", s.handleFiles)
		r.Get("/files/{file}/toc", s.handleFileTOC)
		r.Get("/sections", s.handleFindSections)
		r.Get("/sections/{id}", s.handleSection)
		r.Get("/stats", s.handleStats)
		r.Post("/refresh", s.handleRefresh)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"active": s.index.Stats().Built(),
	})
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// jsonError writes {"error": msg} with the given status.
func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	anydocs.ECONFLICT:       http.StatusConflict,
	anydocs.EINVALID:        http.StatusBadRequest,
	anydocs.ENOTFOUND:       http.StatusNotFound,
	anydocs.ENOTIMPLEMENTED: http.StatusNotImplemented,
	anydocs.EINTERNAL:       http.StatusInternalServerError,
}

// Error writes err as a JSON error response. Internal errors are logged
// and their details hidden from the client.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code := anydocs.ErrorCode(err)
	if code == anydocs.EINTERNAL {
		s.log.Error("http error",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}
	status, ok := codes[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	jsonError(w, anydocs.ErrorMessage(err), status)
}
