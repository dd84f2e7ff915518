package datasource

import (
	"sync"
	"time"
)

// Metrics is a snapshot of a source's request counters. Every request
// increments TotalRequests and exactly one of SuccessfulRequests and
// FailedRequests.
type Metrics struct {
	TotalRequests      int64     `json:"total_requests"`
	SuccessfulRequests int64     `json:"successful_requests"`
	FailedRequests     int64     `json:"failed_requests"`
	LastResponseTimeMs float64   `json:"last_response_time_ms"`
	AvgResponseTimeMs  float64   `json:"avg_response_time_ms"`
	LastAccessTime     time.Time `json:"last_access_time"`
}

// SuccessRate returns the percentage of successful requests, or 0 when no
// requests have been recorded.
func (m Metrics) SuccessRate() float64 {
	if m.TotalRequests == 0 {
		return 0
	}
	return float64(m.SuccessfulRequests) / float64(m.TotalRequests) * 100
}

// FailureRate returns the percentage of failed requests, or 0 when no
// requests have been recorded.
func (m Metrics) FailureRate() float64 {
	if m.TotalRequests == 0 {
		return 0
	}
	return float64(m.FailedRequests) / float64(m.TotalRequests) * 100
}

// Tracker accumulates metrics for a source. Backends embed one and call
// Observe at the end of every operation.
type Tracker struct {
	mu sync.Mutex
	m  Metrics
}

// Observe records the outcome of one operation started at the given time.
func (t *Tracker) Observe(start time.Time, err error) {
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	t.mu.Lock()
	defer t.mu.Unlock()

	t.m.TotalRequests++
	if err != nil {
		t.m.FailedRequests++
	} else {
		t.m.SuccessfulRequests++
	}
	t.m.LastResponseTimeMs = elapsed
	// Incremental running mean over all requests.
	n := float64(t.m.TotalRequests)
	t.m.AvgResponseTimeMs = (t.m.AvgResponseTimeMs*(n-1) + elapsed) / n
	t.m.LastAccessTime = time.Now()
}

// Snapshot returns a copy of the current metrics.
func (t *Tracker) Snapshot() Metrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.m
}
