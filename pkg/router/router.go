// Package router aggregates a named set of datasources under one routing
// strategy and executes read and write operations across them with fallback
// and partial-success semantics. All execution is sequential: one source at a
// time, in a deterministic order, never a parallel fan-out.
package router

import (
	"context"
	"sync"
	"time"

	"plotter/pkg/datasource"
	"plotter/pkg/log"
	"plotter/pkg/routing"
)

// Router owns an ordered collection of datasources and an optional routing
// strategy. Registration order is preserved and is the fallback order for
// reads. Registration and execution may run concurrently; the source list is
// guarded by a read-write lock.
type Router[DS datasource.DataSource] struct {
	mu       sync.RWMutex
	sources  []DS
	strategy routing.Strategy
}

// New creates an empty router with no strategy. Without a strategy reads go
// to the first available source and writes go to all available sources.
func New[DS datasource.DataSource]() *Router[DS] {
	return &Router[DS]{}
}

// Add registers a source at the end of the list. It fails with
// ErrDuplicateSource when a source with the same name is already registered.
func (r *Router[DS]) Add(ds DS) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sources {
		if existing.Name() == ds.Name() {
			return ErrDuplicateSource
		}
	}
	r.sources = append(r.sources, ds)

	log.Debug().
		Str("source", ds.Name()).
		Str("type", ds.Type()).
		Int("priority", ds.Priority()).
		Msg("Datasource registered")
	return nil
}

// Remove unregisters the first source with the given name. It returns false
// when no such source is registered.
func (r *Router[DS]) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ds := range r.sources {
		if ds.Name() == name {
			r.sources = append(r.sources[:i], r.sources[i+1:]...)
			log.Debug().Str("source", name).Msg("Datasource removed")
			return true
		}
	}
	return false
}

// SetStrategy swaps the active routing strategy. A nil strategy restores the
// default first-available / all-available behavior.
func (r *Router[DS]) SetStrategy(s routing.Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategy = s
}

// Strategy returns the active strategy, or nil.
func (r *Router[DS]) Strategy() routing.Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.strategy
}

// All returns every registered source in registration order.
func (r *Router[DS]) All() []DS {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]DS, len(r.sources))
	copy(out, r.sources)
	return out
}

// Available returns the sources currently reporting availability, preserving
// registration order.
func (r *Router[DS]) Available() []DS {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]DS, 0, len(r.sources))
	for _, ds := range r.sources {
		if ds.IsAvailable() {
			out = append(out, ds)
		}
	}
	return out
}

// Get returns the registered source with the given name.
func (r *Router[DS]) Get(name string) (DS, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ds := range r.sources {
		if ds.Name() == name {
			return ds, true
		}
	}
	var zero DS
	return zero, false
}

// SelectForRead asks the strategy which available source should serve a
// read. Without a strategy it returns the first available source.
func (r *Router[DS]) SelectForRead() (DS, bool) {
	available := r.Available()
	var zero DS
	if len(available) == 0 {
		return zero, false
	}

	s := r.Strategy()
	if s == nil {
		return available[0], true
	}

	pick := s.SelectForRead(asBase(available))
	if pick == nil {
		return zero, false
	}
	for _, ds := range available {
		if ds.Name() == pick.Name() {
			return ds, true
		}
	}
	return zero, false
}

// SelectForWrite asks the strategy which available sources a write targets,
// in write order. Without a strategy it returns all available sources.
func (r *Router[DS]) SelectForWrite() []DS {
	available := r.Available()
	s := r.Strategy()
	if s == nil {
		return available
	}

	picks := s.SelectForWrite(asBase(available))
	out := make([]DS, 0, len(picks))
	for _, pick := range picks {
		for _, ds := range available {
			if ds.Name() == pick.Name() {
				out = append(out, ds)
				break
			}
		}
	}
	return out
}

// SourceHealth pairs a source name with its health check result.
type SourceHealth struct {
	Name   string
	Result datasource.HealthCheckResult
}

// CheckAllHealth probes every registered source in registration order.
func (r *Router[DS]) CheckAllHealth(ctx context.Context) []SourceHealth {
	sources := r.All()
	out := make([]SourceHealth, 0, len(sources))
	for _, ds := range sources {
		out = append(out, SourceHealth{Name: ds.Name(), Result: ds.CheckHealth(ctx)})
	}
	return out
}

// recordResult feeds an attempt outcome back to the active strategy.
func (r *Router[DS]) recordResult(ds datasource.DataSource, success bool, elapsed time.Duration) {
	if s := r.Strategy(); s != nil {
		s.RecordResult(ds, success, elapsed)
	}
}

// asBase converts a typed source slice to the base interface the strategies
// operate on.
func asBase[DS datasource.DataSource](sources []DS) []datasource.DataSource {
	out := make([]datasource.DataSource, len(sources))
	for i, ds := range sources {
		out[i] = ds
	}
	return out
}
