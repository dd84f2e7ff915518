package routing

import (
	"sync"
	"time"

	"plotter/pkg/datasource"
)

// FailoverStrategy serves reads from sources of a configured primary type and
// fails over to the remaining sources when no primary is available. Once
// failed over it keeps serving the fallback; with auto-failback enabled it
// returns to the primary as soon as one is available again. Writes always go
// to every available source so the fallback stays current.
type FailoverStrategy struct {
	mu           sync.Mutex
	primaryType  string
	autoFailback bool
	failedOver   bool
}

// NewFailover creates a failover strategy preferring sources of the given
// type. Auto-failback starts enabled.
func NewFailover(primaryType string) *FailoverStrategy {
	return &FailoverStrategy{
		primaryType:  primaryType,
		autoFailback: true,
	}
}

// Type returns Failover.
func (s *FailoverStrategy) Type() Type {
	return Failover
}

// SetPrimaryType changes the preferred source type.
func (s *FailoverStrategy) SetPrimaryType(primaryType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primaryType = primaryType
	s.failedOver = false
}

// SetAutoFailback toggles returning to the primary once it recovers. When
// disabled the strategy keeps serving the fallback until the fallback itself
// disappears from the available set.
func (s *FailoverStrategy) SetAutoFailback(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoFailback = enabled
}

// SelectForRead returns the first available primary-typed source, or the
// first available source of any other type when the primary tier is down.
func (s *FailoverStrategy) SelectForRead(available []datasource.DataSource) datasource.DataSource {
	if len(available) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var primary, fallback datasource.DataSource
	for _, ds := range available {
		if ds.Type() == s.primaryType {
			if primary == nil {
				primary = ds
			}
		} else if fallback == nil {
			fallback = ds
		}
	}

	if primary != nil {
		// Stay on the fallback after a failover unless failback is allowed
		// or the fallback is gone.
		if s.failedOver && !s.autoFailback && fallback != nil {
			return fallback
		}
		s.failedOver = false
		return primary
	}

	if fallback != nil {
		s.failedOver = true
		return fallback
	}
	return available[0]
}

// SelectForWrite returns every available source.
func (s *FailoverStrategy) SelectForWrite(available []datasource.DataSource) []datasource.DataSource {
	out := make([]datasource.DataSource, len(available))
	copy(out, available)
	return out
}

// RecordResult is a no-op; failover state is derived from availability.
func (s *FailoverStrategy) RecordResult(datasource.DataSource, bool, time.Duration) {}
