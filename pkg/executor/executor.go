// Package executor wraps operations with timeout, categorized retry and
// progress reporting. It is the only layer that assigns the failure taxonomy
// and decides retry eligibility.
package executor

import (
	"context"
	"fmt"
	"time"

	"plotter/pkg/log"
)

const (
	// DefaultTimeout bounds a single attempt when no timeout is configured.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRetries is the default number of retries after the first
	// attempt.
	DefaultMaxRetries = 3
	// DefaultRetryDelay is the fixed pause between attempts. No backoff.
	DefaultRetryDelay = time.Second
)

// Progress describes how far an operation has come. Reported once per
// attempt when a callback is configured.
type Progress struct {
	Operation       string
	CurrentStep     int
	TotalSteps      int
	PercentComplete float64
	StatusMessage   string
}

// ProgressFunc receives progress updates.
type ProgressFunc func(Progress)

// Config controls one execution. It is immutable for the duration of a call.
type Config struct {
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	OnProgress ProgressFunc
}

// DefaultConfig returns the standard execution configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// Response is the outcome of an execution. Every response, success or
// failure, carries the total elapsed time including retries.
type Response[T any] struct {
	Value        T
	OK           bool
	Category     Category
	Message      string
	Detail       string
	RetryAttempt int
	Elapsed      time.Duration
	TimedOut     bool
}

// Execute runs op with up-front validation, a per-attempt deadline and
// categorized retry.
//
// A validation failure returns immediately with zero retries. Each attempt
// runs under a deadline context derived from ctx; an attempt that overruns it
// yields a timeout response without retry. Repository and system failures are
// retried up to cfg.MaxRetries times with a fixed cfg.RetryDelay between
// attempts; business rule failures never are. The final failure response
// records how many retries were actually performed.
func Execute[T any](
	ctx context.Context,
	cfg Config,
	operation string,
	validate func() error,
	op func(ctx context.Context) (T, error),
) Response[T] {
	start := time.Now()
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if validate != nil {
		if err := validate(); err != nil {
			return Response[T]{
				Category: CategoryValidation,
				Message:  err.Error(),
				Elapsed:  time.Since(start),
			}
		}
	}

	totalSteps := cfg.MaxRetries + 1
	var resp Response[T]

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		reportProgress(cfg, operation, attempt, totalSteps)

		value, err := runAttempt(ctx, cfg.Timeout, operation, op)
		if err == nil {
			return Response[T]{Value: value, OK: true, Elapsed: time.Since(start)}
		}

		category := Categorize(err)
		resp = Response[T]{
			Category:     category,
			Message:      err.Error(),
			Detail:       fmt.Sprintf("%s failed on attempt %d of %d", operation, attempt+1, totalSteps),
			RetryAttempt: attempt,
			Elapsed:      time.Since(start),
		}

		if category == CategoryTimeout {
			resp.Message = fmt.Sprintf("operation timed out after %s: %v", cfg.Timeout, err)
			resp.TimedOut = true
			return resp
		}
		if !category.Retryable() {
			return resp
		}
		if attempt == cfg.MaxRetries {
			break
		}

		log.Debug().
			Str("operation", operation).
			Int("attempt", attempt+1).
			Str("category", category.String()).
			Dur("retry_delay", cfg.RetryDelay).
			Err(err).
			Msg("Retrying after transient failure")

		select {
		case <-time.After(cfg.RetryDelay):
		case <-ctx.Done():
			resp.Elapsed = time.Since(start)
			resp.Detail = "canceled while waiting to retry"
			return resp
		}
	}

	resp.Message = fmt.Sprintf("%s failed after %d attempts: %s", operation, totalSteps, resp.Message)
	resp.Elapsed = time.Since(start)
	return resp
}

// runAttempt executes one attempt under a deadline. The deadline context is
// threaded into op so cooperative operations stop when it expires; an op that
// ignores it keeps running detached, which is logged, and the attempt still
// reports a timeout.
func runAttempt[T any](
	ctx context.Context,
	timeout time.Duration,
	operation string,
	op func(ctx context.Context) (T, error),
) (T, error) {
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		value, err := op(opCtx)
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-opCtx.Done():
		log.Warn().
			Str("operation", operation).
			Dur("timeout", timeout).
			Msg("Attempt exceeded its deadline and is now detached")
		var zero T
		return zero, opCtx.Err()
	}
}

func reportProgress(cfg Config, operation string, attempt, totalSteps int) {
	if cfg.OnProgress == nil {
		return
	}

	status := "first attempt"
	if attempt > 0 {
		status = fmt.Sprintf("retry attempt %d", attempt)
	}
	cfg.OnProgress(Progress{
		Operation:       operation,
		CurrentStep:     attempt + 1,
		TotalSteps:      totalSteps,
		PercentComplete: float64(attempt) / float64(totalSteps) * 100,
		StatusMessage:   status,
	})
}
