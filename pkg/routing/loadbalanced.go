package routing

import (
	"sync/atomic"
	"time"

	"plotter/pkg/datasource"
)

// LoadBalancedStrategy spreads reads across available sources. The only
// implemented algorithm is round-robin: a shared counter indexes into the
// available set, so consecutive reads rotate through the sources.
type LoadBalancedStrategy struct {
	algorithm atomic.Value // string
	counter   atomic.Uint64
}

// AlgorithmRoundRobin is the round-robin read distribution algorithm.
const AlgorithmRoundRobin = "round-robin"

// NewLoadBalanced creates a round-robin load-balanced strategy.
func NewLoadBalanced() *LoadBalancedStrategy {
	s := &LoadBalancedStrategy{}
	s.algorithm.Store(AlgorithmRoundRobin)
	return s
}

// Type returns LoadBalanced.
func (s *LoadBalancedStrategy) Type() Type {
	return LoadBalanced
}

// SetAlgorithm records the configured algorithm name. Only round-robin is
// implemented; other names fall back to round-robin behavior.
func (s *LoadBalancedStrategy) SetAlgorithm(name string) {
	s.algorithm.Store(name)
}

// Algorithm returns the configured algorithm name.
func (s *LoadBalancedStrategy) Algorithm() string {
	v, _ := s.algorithm.Load().(string)
	return v
}

// SelectForRead rotates through the available sources.
func (s *LoadBalancedStrategy) SelectForRead(available []datasource.DataSource) datasource.DataSource {
	if len(available) == 0 {
		return nil
	}
	n := s.counter.Add(1) - 1
	return available[n%uint64(len(available))]
}

// SelectForWrite returns every available source.
func (s *LoadBalancedStrategy) SelectForWrite(available []datasource.DataSource) []datasource.DataSource {
	out := make([]datasource.DataSource, len(available))
	copy(out, available)
	return out
}

// RecordResult is a no-op; round-robin does not adapt.
func (s *LoadBalancedStrategy) RecordResult(datasource.DataSource, bool, time.Duration) {}
