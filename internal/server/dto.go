package server

// Database states reported by the health check.
const (
	DatabaseUnknown       = "unknown"
	DatabaseConnected     = "connected"
	DatabaseNotConfigured = "not_configured"
	DatabaseQueryFailed   = "query_failed"
	DatabaseError         = "error"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

type GreetingResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type ReadinessResponse struct {
	Ready bool `json:"ready"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}
