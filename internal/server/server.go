package server

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"health/api/internal/config"
	"health/api/internal/database"

	"github.com/rs/zerolog"
)

// DatabaseChecker verifies database connectivity and returns the sentinel value read back.
type DatabaseChecker interface {
	Check(ctx context.Context) (int64, error)
}

// brokenChecker reports a pool that could not be built from the configured URL.
type brokenChecker struct {
	err error
}

func (c brokenChecker) Check(context.Context) (int64, error) {
	return 0, c.err
}

// Server wires configuration, dependencies and HTTP routing together.
type Server struct {
	cfg     config.Config
	log     zerolog.Logger
	db      *sql.DB
	checker DatabaseChecker
}

// New instantiates the HTTP server. The database pool is only prepared when a URL is configured;
// a URL the driver cannot use is reported by /health rather than failing startup.
func New(cfg config.Config, log zerolog.Logger) *Server {
	if !cfg.Database.Configured() {
		log.Warn().Msg("POSTGRES_URL not set, health checks will report not_configured")
		return NewWithChecker(cfg, log, nil)
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("open database, health checks will report error")
		return NewWithChecker(cfg, log, brokenChecker{err: err})
	}

	srv := NewWithChecker(cfg, log, database.NewProbe(db))
	srv.db = db
	return srv
}

// NewWithChecker builds a server around the given checker without touching the environment.
func NewWithChecker(cfg config.Config, log zerolog.Logger, checker DatabaseChecker) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		checker: checker,
	}
}

// Close releases database resources.
func (s *Server) Close() {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.log.Error().Err(err).Msg("close database")
		}
	}
}

// Run starts the HTTP server and blocks until the context is cancelled or an unrecoverable error occurs.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.routes(),
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
		IdleTimeout:  s.cfg.HTTP.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	s.log.Info().Str("addr", httpServer.Addr).Msg("http server listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
