package router

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"plotter/pkg/datasource"
	"plotter/pkg/log"
)

// WriteResult is the outcome of one write attempt against one source.
type WriteResult[R any] struct {
	Source string
	Value  R
	Err    error
}

// OK reports whether the attempt succeeded.
func (w WriteResult[R]) OK() bool {
	return w.Err == nil
}

// ExecuteRead runs op against the available sources one at a time until one
// succeeds and returns that result. The fallback order is registration order,
// not the strategy's read ranking: the strategy pick only matters to callers
// that use SelectForRead directly, while the aggregated executor always walks
// the full available set breadth-first. Every attempt, successful or not, is
// reported back to the strategy with its timing.
//
// ExecuteRead fails with ErrNoSourcesAvailable when no source is available,
// and with an ErrAllSourcesFailed aggregate naming each source when every
// attempt failed.
func ExecuteRead[DS datasource.DataSource, R any](
	ctx context.Context,
	r *Router[DS],
	op func(ctx context.Context, ds DS) (R, error),
) (R, error) {
	var zero R

	available := r.Available()
	if len(available) == 0 {
		return zero, ErrNoSourcesAvailable
	}

	var attempts *multierror.Error
	for _, ds := range available {
		start := time.Now()
		value, err := op(ctx, ds)
		elapsed := time.Since(start)
		r.recordResult(ds, err == nil, elapsed)

		if err == nil {
			return value, nil
		}

		log.Debug().
			Str("source", ds.Name()).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("Read attempt failed, falling back")
		attempts = multierror.Append(attempts, fmt.Errorf("source %q: %w", ds.Name(), err))
	}

	return zero, fmt.Errorf("%w: %w", ErrAllSourcesFailed, attempts.ErrorOrNil())
}

// ExecuteWrite runs op against every source the strategy selects for writes,
// sequentially and in the strategy's order, and collects one WriteResult per
// target. Each attempt is reported back to the strategy with its timing.
//
// ExecuteWrite succeeds as long as at least one target succeeded; the caller
// inspects the per-target results for partial failures. It fails with
// ErrNoSourcesAvailable when the target set is empty and with an
// ErrAllSourcesFailed aggregate when every target failed.
func ExecuteWrite[DS datasource.DataSource, R any](
	ctx context.Context,
	r *Router[DS],
	op func(ctx context.Context, ds DS) (R, error),
) ([]WriteResult[R], error) {
	targets := r.SelectForWrite()
	if len(targets) == 0 {
		return nil, ErrNoSourcesAvailable
	}

	results := make([]WriteResult[R], 0, len(targets))
	var failures *multierror.Error
	succeeded := 0

	for _, ds := range targets {
		start := time.Now()
		value, err := op(ctx, ds)
		elapsed := time.Since(start)
		r.recordResult(ds, err == nil, elapsed)

		results = append(results, WriteResult[R]{Source: ds.Name(), Value: value, Err: err})
		if err == nil {
			succeeded++
			continue
		}

		log.Warn().
			Str("source", ds.Name()).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("Write attempt failed")
		failures = multierror.Append(failures, fmt.Errorf("source %q: %w", ds.Name(), err))
	}

	if succeeded == 0 {
		return results, fmt.Errorf("%w: %w", ErrAllSourcesFailed, failures.ErrorOrNil())
	}
	return results, nil
}
