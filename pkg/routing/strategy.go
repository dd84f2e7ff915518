// Package routing holds the pure decision logic for picking which sources
// serve reads and writes. Strategies never call into a source; they only look
// at identity, type, priority and recorded results.
package routing

import (
	"time"

	"plotter/pkg/datasource"
)

// Type identifies a routing strategy kind.
type Type int

const (
	// PriorityBased reads from the highest-priority available source and
	// writes through to all of them.
	PriorityBased Type = iota
	// CacheFirst reads from cache-typed sources first and optionally writes
	// through to them.
	CacheFirst
	// Failover sticks to a primary source type and fails over to the rest.
	Failover
	// LoadBalanced spreads reads across available sources.
	LoadBalanced
	// PerformanceBased reads from the best-scoring source by observed
	// latency and success rate.
	PerformanceBased
)

// String returns the configuration name of the strategy type.
func (t Type) String() string {
	switch t {
	case PriorityBased:
		return "priority"
	case CacheFirst:
		return "cache-first"
	case Failover:
		return "failover"
	case LoadBalanced:
		return "load-balanced"
	case PerformanceBased:
		return "performance"
	default:
		return "unknown"
	}
}

// Strategy decides which sources serve an operation given the currently
// available set. Implementations must not reorder or retain the input slice.
type Strategy interface {
	// Type returns the strategy kind.
	Type() Type

	// SelectForRead picks the source to serve a read, or nil when the
	// available set is empty.
	SelectForRead(available []datasource.DataSource) datasource.DataSource

	// SelectForWrite picks the sources to write to. The returned order is
	// the write order.
	SelectForWrite(available []datasource.DataSource) []datasource.DataSource

	// RecordResult feeds back the outcome of an attempt against a source.
	// Strategies that do not adapt may ignore it.
	RecordResult(ds datasource.DataSource, success bool, elapsed time.Duration)
}
