package datasource

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// MetricsTestSuite tests the request tracker and derived rates
type MetricsTestSuite struct {
	suite.Suite
	tracker Tracker
}

func (s *MetricsTestSuite) SetupTest() {
	s.tracker = Tracker{}
}

// TestEmptySnapshot tests rates before any request was observed
func (s *MetricsTestSuite) TestEmptySnapshot() {
	m := s.tracker.Snapshot()
	s.Equal(int64(0), m.TotalRequests)
	s.Equal(0.0, m.SuccessRate())
	s.Equal(0.0, m.FailureRate())
}

// TestObserveCounts tests success and failure counting
func (s *MetricsTestSuite) TestObserveCounts() {
	start := time.Now()
	s.tracker.Observe(start, nil)
	s.tracker.Observe(start, nil)
	s.tracker.Observe(start, errors.New("boom"))

	m := s.tracker.Snapshot()
	s.Equal(int64(3), m.TotalRequests)
	s.Equal(int64(2), m.SuccessfulRequests)
	s.Equal(int64(1), m.FailedRequests)
	s.InDelta(66.66, m.SuccessRate(), 0.1)
	s.InDelta(33.33, m.FailureRate(), 0.1)
	s.False(m.LastAccessTime.IsZero())
}

// TestRunningAverage tests the incremental average response time
func (s *MetricsTestSuite) TestRunningAverage() {
	now := time.Now()
	s.tracker.Observe(now.Add(-10*time.Millisecond), nil)
	first := s.tracker.Snapshot().AvgResponseTimeMs
	s.Greater(first, 0.0)

	s.tracker.Observe(now.Add(-30*time.Millisecond), nil)
	m := s.tracker.Snapshot()

	// The average moves toward the slower sample without jumping to it.
	s.Greater(m.AvgResponseTimeMs, first)
	s.Less(m.AvgResponseTimeMs, m.LastResponseTimeMs)
}

// TestHealthStatusStrings tests the status name mapping
func (s *MetricsTestSuite) TestHealthStatusStrings() {
	s.Equal("healthy", StatusHealthy.String())
	s.Equal("degraded", StatusDegraded.String())
	s.Equal("unhealthy", StatusUnhealthy.String())
	s.Equal("unknown", StatusUnknown.String())
}

// TestHealthCheckResult tests the availability predicates
func (s *MetricsTestSuite) TestHealthCheckResult() {
	healthy := HealthCheckResult{Status: StatusHealthy}
	s.True(healthy.IsHealthy())
	s.True(healthy.IsAvailable())

	degraded := HealthCheckResult{Status: StatusDegraded}
	s.False(degraded.IsHealthy())
	s.True(degraded.IsAvailable())

	unhealthy := HealthCheckResult{Status: StatusUnhealthy}
	s.False(unhealthy.IsHealthy())
	s.False(unhealthy.IsAvailable())
}

func TestMetricsTestSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}
