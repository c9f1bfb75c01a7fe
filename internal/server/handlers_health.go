package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

const errNotConfigured = "POSTGRES_URL environment variable not set"

// handleIndex godoc
// @Title Greeting
// @Description Returns a static greeting.
// @Resource System
// @Produce json
// @Success 200 {object} GreetingResponse
// @Route / [get]
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, GreetingResponse{
		Message: "Hello from " + s.cfg.AppName + "!",
		Status:  "running",
	})
}

// handleReady godoc
// @Title Readiness probe
// @Description Reports that the process is up. Does not check the database.
// @Resource System
// @Produce json
// @Success 200 {object} ReadinessResponse
// @Route /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, ReadinessResponse{Ready: true})
}

// handleHealth godoc
// @Title Health check
// @Description Validates database connectivity with a single SELECT 1.
// @Resource System
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Route /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	payload := s.checkDatabase(r.Context())
	if payload.Status != StatusHealthy {
		s.log.Warn().
			Str("database", payload.Database).
			Str("error", payload.Error).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("health check failed")
		s.writeJSON(w, http.StatusServiceUnavailable, payload)
		return
	}
	s.writeJSON(w, http.StatusOK, payload)
}

// checkDatabase makes at most one attempt and never returns an error; every outcome is a payload.
func (s *Server) checkDatabase(ctx context.Context) HealthResponse {
	payload := HealthResponse{Status: StatusHealthy, Database: DatabaseUnknown}

	if !s.cfg.Database.Configured() || s.checker == nil {
		payload.Status = StatusUnhealthy
		payload.Database = DatabaseNotConfigured
		payload.Error = errNotConfigured
		return payload
	}

	if timeout := s.cfg.Database.HealthTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	sentinel, err := s.checker.Check(ctx)
	switch {
	case err != nil:
		payload.Status = StatusUnhealthy
		payload.Database = DatabaseError
		payload.Error = err.Error()
	case sentinel != 1:
		payload.Status = StatusUnhealthy
		payload.Database = DatabaseQueryFailed
	default:
		payload.Database = DatabaseConnected
	}
	return payload
}
