package routing

import (
	"time"

	"plotter/pkg/datasource"
)

// Priority selects the available source with the highest priority for reads
// and writes through to every available source.
type Priority struct{}

// NewPriority creates a priority-based strategy.
func NewPriority() *Priority {
	return &Priority{}
}

// Type returns PriorityBased.
func (p *Priority) Type() Type {
	return PriorityBased
}

// SelectForRead returns the available source with the maximum priority. Ties
// resolve to the first one in the input order, so callers get deterministic
// picks as long as they pass sources in a stable order.
func (p *Priority) SelectForRead(available []datasource.DataSource) datasource.DataSource {
	if len(available) == 0 {
		return nil
	}

	best := available[0]
	for _, ds := range available[1:] {
		if ds.Priority() > best.Priority() {
			best = ds
		}
	}
	return best
}

// SelectForWrite returns every available source: priority routing always
// writes through.
func (p *Priority) SelectForWrite(available []datasource.DataSource) []datasource.DataSource {
	out := make([]datasource.DataSource, len(available))
	copy(out, available)
	return out
}

// RecordResult is a no-op; priority routing does not adapt.
func (p *Priority) RecordResult(datasource.DataSource, bool, time.Duration) {}
