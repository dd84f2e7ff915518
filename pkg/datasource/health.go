package datasource

import "time"

// HealthStatus describes how operational a source is.
type HealthStatus int

const (
	// StatusUnknown means the health of the source cannot be determined.
	StatusUnknown HealthStatus = iota
	// StatusHealthy means the source is fully operational.
	StatusHealthy
	// StatusDegraded means the source works but with reduced performance.
	StatusDegraded
	// StatusUnhealthy means the source is not operational.
	StatusUnhealthy
)

// String returns the human-readable name of the status.
func (s HealthStatus) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// HealthCheckResult is the outcome of a single health probe.
type HealthCheckResult struct {
	Status    HealthStatus `json:"status"`
	Message   string       `json:"message,omitempty"`
	Metrics   Metrics      `json:"metrics"`
	CheckTime time.Time    `json:"check_time"`
}

// IsHealthy reports full health.
func (r HealthCheckResult) IsHealthy() bool {
	return r.Status == StatusHealthy
}

// IsAvailable reports whether the source can serve requests at all, possibly
// degraded.
func (r HealthCheckResult) IsAvailable() bool {
	return r.Status == StatusHealthy || r.Status == StatusDegraded
}
