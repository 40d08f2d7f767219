package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"pkg.jsn.cam/regfake/pkg/httpx"
	"pkg.jsn.cam/regfake/pkg/regfake"
)

// DefaultMaxCount caps the records generated by one request.
const DefaultMaxCount = 1000

// Config holds server configuration
type Config struct {
	// MaxCount caps Count in a generate request. Zero means DefaultMaxCount.
	MaxCount int
	// Workers bounds concurrent generation per request. Zero means one.
	Workers int
}

// Server exposes an Engine over HTTP
type Server struct {
	engine *regfake.Engine
	cfg    Config
	mux    *http.ServeMux
}

// NewServer creates a server around engine
func NewServer(engine *regfake.Engine, cfg Config) *Server {
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = DefaultMaxCount
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	s := &Server{
		engine: engine,
		cfg:    cfg,
		mux:    http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("POST /api/records", httpx.Wrap(s.handleGenerate))
	s.mux.HandleFunc("GET /api/templates", httpx.Wrap(s.handleTemplateList))
	s.mux.HandleFunc("GET /api/templates/{name}", httpx.Wrap(s.handleTemplate))
	s.mux.HandleFunc("GET /api/plates", httpx.Wrap(s.handlePlateFormats))
	s.mux.HandleFunc("GET /health", httpx.Wrap(s.handleHealth))
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("[SERVER] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
