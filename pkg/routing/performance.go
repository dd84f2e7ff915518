package routing

import (
	"sync"
	"time"

	"plotter/pkg/datasource"
)

const (
	// ewmaAlpha weights the latest latency sample in the moving average.
	ewmaAlpha = 0.3
	// latencyScaleMs normalizes latency into roughly [0,1] for scoring.
	latencyScaleMs = 1000.0
)

// sourceStats is the adaptive state kept per source name.
type sourceStats struct {
	attempts  int64
	successes int64
	ewmaMs    float64
}

// PerformanceStrategy ranks sources by outcomes fed through RecordResult.
// Score = successWeight*successRatio - responseTimeWeight*normalizedLatency;
// the highest score serves the read. Sources with no recorded attempts are
// tried first so the strategy gathers data for all of them.
type PerformanceStrategy struct {
	mu                 sync.Mutex
	responseTimeWeight float64
	successRateWeight  float64
	stats              map[string]*sourceStats
}

// NewPerformance creates a performance-based strategy with equal weights.
func NewPerformance() *PerformanceStrategy {
	return &PerformanceStrategy{
		responseTimeWeight: 0.5,
		successRateWeight:  0.5,
		stats:              make(map[string]*sourceStats),
	}
}

// Type returns PerformanceBased.
func (s *PerformanceStrategy) Type() Type {
	return PerformanceBased
}

// SetResponseTimeWeight sets the weight of latency in the score, clamped to
// [0,1].
func (s *PerformanceStrategy) SetResponseTimeWeight(w float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responseTimeWeight = clamp01(w)
}

// SetSuccessRateWeight sets the weight of the success ratio in the score,
// clamped to [0,1].
func (s *PerformanceStrategy) SetSuccessRateWeight(w float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.successRateWeight = clamp01(w)
}

func clamp01(w float64) float64 {
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

// SelectForRead returns the best-scoring source, preferring sources that have
// never been tried.
func (s *PerformanceStrategy) SelectForRead(available []datasource.DataSource) datasource.DataSource {
	if len(available) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var best datasource.DataSource
	bestScore := 0.0
	for _, ds := range available {
		st, ok := s.stats[ds.Name()]
		if !ok || st.attempts == 0 {
			return ds
		}
		score := s.successRateWeight*(float64(st.successes)/float64(st.attempts)) -
			s.responseTimeWeight*(st.ewmaMs/latencyScaleMs)
		if best == nil || score > bestScore {
			best = ds
			bestScore = score
		}
	}
	return best
}

// SelectForWrite returns every available source.
func (s *PerformanceStrategy) SelectForWrite(available []datasource.DataSource) []datasource.DataSource {
	out := make([]datasource.DataSource, len(available))
	copy(out, available)
	return out
}

// RecordResult folds the attempt outcome into the source's stats.
func (s *PerformanceStrategy) RecordResult(ds datasource.DataSource, success bool, elapsed time.Duration) {
	if ds == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stats[ds.Name()]
	if !ok {
		st = &sourceStats{}
		s.stats[ds.Name()] = st
	}

	st.attempts++
	if success {
		st.successes++
	}
	sample := float64(elapsed.Microseconds()) / 1000.0
	if st.attempts == 1 {
		st.ewmaMs = sample
	} else {
		st.ewmaMs = ewmaAlpha*sample + (1-ewmaAlpha)*st.ewmaMs
	}
}
