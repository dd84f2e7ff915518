package routing

import (
	"sync"
	"time"

	"plotter/pkg/datasource"
)

// CacheFirstStrategy reads from sources whose type is configured as a cache,
// falling back to the first available source on a miss of the cache tier.
// Writes go to all sources when write-through is enabled, otherwise only to
// the persistent (non-cache) tier.
type CacheFirstStrategy struct {
	mu           sync.RWMutex
	cacheTypes   map[string]struct{}
	writeThrough bool
}

// NewCacheFirst creates a cache-first strategy treating the given source
// types as the cache tier. Write-through starts enabled.
func NewCacheFirst(cacheTypes ...string) *CacheFirstStrategy {
	s := &CacheFirstStrategy{
		cacheTypes:   make(map[string]struct{}, len(cacheTypes)),
		writeThrough: true,
	}
	for _, t := range cacheTypes {
		s.cacheTypes[t] = struct{}{}
	}
	return s
}

// Type returns CacheFirst.
func (s *CacheFirstStrategy) Type() Type {
	return CacheFirst
}

// SetCacheTypes replaces the set of source types treated as cache.
func (s *CacheFirstStrategy) SetCacheTypes(types []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheTypes = make(map[string]struct{}, len(types))
	for _, t := range types {
		s.cacheTypes[t] = struct{}{}
	}
}

// SetWriteThrough toggles writing to the cache tier alongside persistent
// storage.
func (s *CacheFirstStrategy) SetWriteThrough(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeThrough = enabled
}

func (s *CacheFirstStrategy) isCache(ds datasource.DataSource) bool {
	_, ok := s.cacheTypes[ds.Type()]
	return ok
}

// SelectForRead returns the first available cache-typed source, or the first
// available source of any type when the cache tier is empty.
func (s *CacheFirstStrategy) SelectForRead(available []datasource.DataSource) datasource.DataSource {
	if len(available) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ds := range available {
		if s.isCache(ds) {
			return ds
		}
	}
	return available[0]
}

// SelectForWrite returns all available sources under write-through, otherwise
// only the non-cache sources.
func (s *CacheFirstStrategy) SelectForWrite(available []datasource.DataSource) []datasource.DataSource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.writeThrough {
		out := make([]datasource.DataSource, len(available))
		copy(out, available)
		return out
	}

	out := make([]datasource.DataSource, 0, len(available))
	for _, ds := range available {
		if !s.isCache(ds) {
			out = append(out, ds)
		}
	}
	return out
}

// RecordResult is a no-op; cache-first routing does not adapt.
func (s *CacheFirstStrategy) RecordResult(datasource.DataSource, bool, time.Duration) {}
