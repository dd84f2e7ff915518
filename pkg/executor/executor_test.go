package executor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"plotter/pkg/datasource"
	"plotter/pkg/router"
)

// ExecutorTestSuite tests timeout, categorized retry and progress reporting
type ExecutorTestSuite struct {
	suite.Suite
	ctx context.Context
	cfg Config
}

func (s *ExecutorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.cfg = Config{
		Timeout:    time.Second,
		MaxRetries: 2,
		RetryDelay: 10 * time.Millisecond,
	}
}

// TestSuccess tests the passthrough of a successful operation
func (s *ExecutorTestSuite) TestSuccess() {
	resp := Execute(s.ctx, s.cfg, "op", nil, func(ctx context.Context) (int, error) {
		return 42, nil
	})

	s.True(resp.OK)
	s.Equal(42, resp.Value)
	s.Equal(CategoryNone, resp.Category)
	s.Equal(0, resp.RetryAttempt)
	s.Greater(resp.Elapsed, time.Duration(0))
}

// TestValidationShortCircuit tests that validation failures skip the
// operation entirely
func (s *ExecutorTestSuite) TestValidationShortCircuit() {
	called := false
	resp := Execute(s.ctx, s.cfg, "op",
		func() error { return NewValidationError("name is required") },
		func(ctx context.Context) (int, error) {
			called = true
			return 0, nil
		})

	s.False(resp.OK)
	s.False(called)
	s.Equal(CategoryValidation, resp.Category)
	s.Equal(0, resp.RetryAttempt)
	s.Equal("name is required", resp.Message)
	s.Less(resp.Elapsed, 100*time.Millisecond)
}

// TestRetryExhaustion tests that repository failures are retried MaxRetries
// times with the configured delay
func (s *ExecutorTestSuite) TestRetryExhaustion() {
	attempts := 0
	resp := Execute(s.ctx, s.cfg, "op", nil, func(ctx context.Context) (int, error) {
		attempts++
		return 0, fmt.Errorf("wrapped: %w", datasource.ErrSourceFailure)
	})

	s.False(resp.OK)
	s.Equal(3, attempts)
	s.Equal(CategoryRepository, resp.Category)
	s.Equal(2, resp.RetryAttempt)
	s.GreaterOrEqual(resp.Elapsed, 20*time.Millisecond)
	s.Contains(resp.Message, "failed after 3 attempts")
}

// TestBusinessRuleNotRetried tests that rule violations fail fast
func (s *ExecutorTestSuite) TestBusinessRuleNotRetried() {
	attempts := 0
	resp := Execute(s.ctx, s.cfg, "op", nil, func(ctx context.Context) (int, error) {
		attempts++
		return 0, NewBusinessRuleError("project is not empty")
	})

	s.False(resp.OK)
	s.Equal(1, attempts)
	s.Equal(CategoryBusinessRule, resp.Category)
	s.Equal(0, resp.RetryAttempt)
}

// TestTimeout tests that an attempt overrunning its deadline reports a
// timeout without retrying
func (s *ExecutorTestSuite) TestTimeout() {
	cfg := s.cfg
	cfg.Timeout = 20 * time.Millisecond

	attempts := 0
	resp := Execute(s.ctx, cfg, "op", nil, func(ctx context.Context) (int, error) {
		attempts++
		select {
		case <-time.After(time.Second):
			return 1, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})

	s.False(resp.OK)
	s.True(resp.TimedOut)
	s.Equal(1, attempts)
	s.Equal(CategoryTimeout, resp.Category)
	s.Contains(resp.Message, "timed out after 20ms")
}

// TestProgressReporting tests the per-attempt progress callback
func (s *ExecutorTestSuite) TestProgressReporting() {
	var updates []Progress
	cfg := s.cfg
	cfg.OnProgress = func(p Progress) { updates = append(updates, p) }

	attempts := 0
	Execute(s.ctx, cfg, "op", nil, func(ctx context.Context) (int, error) {
		attempts++
		if attempts < 3 {
			return 0, fmt.Errorf("flaky: %w", datasource.ErrSourceFailure)
		}
		return 1, nil
	})

	s.Require().Len(updates, 3)
	s.Equal("first attempt", updates[0].StatusMessage)
	s.Equal("retry attempt 1", updates[1].StatusMessage)
	s.Equal("retry attempt 2", updates[2].StatusMessage)
	s.Equal(3, updates[2].TotalSteps)
	s.Equal("op", updates[0].Operation)
}

// TestCancellationDuringRetryWait tests that a canceled context stops the
// retry loop
func (s *ExecutorTestSuite) TestCancellationDuringRetryWait() {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := s.cfg
	cfg.RetryDelay = time.Second

	attempts := 0
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()
	resp := Execute(ctx, cfg, "op", nil, func(ctx context.Context) (int, error) {
		attempts++
		return 0, fmt.Errorf("down: %w", datasource.ErrSourceFailure)
	})

	s.False(resp.OK)
	s.Equal(1, attempts)
	s.Equal("canceled while waiting to retry", resp.Detail)
}

// TestCategorize tests the failure taxonomy mapping
func (s *ExecutorTestSuite) TestCategorize() {
	tests := []struct {
		name     string
		err      error
		expected Category
	}{
		{"nil", nil, CategoryNone},
		{"validation", NewValidationError("bad"), CategoryValidation},
		{"business rule", NewBusinessRuleError("no"), CategoryBusinessRule},
		{"deadline", context.DeadlineExceeded, CategoryTimeout},
		{"source failure", datasource.NewSourceError("db", "save", "p1", errors.New("io")), CategoryRepository},
		{"all sources failed", fmt.Errorf("op: %w", router.ErrAllSourcesFailed), CategoryRepository},
		{"no sources", router.ErrNoSourcesAvailable, CategoryRepository},
		{"unknown", errors.New("boom"), CategorySystem},
	}

	for _, tt := range tests {
		s.Equal(tt.expected, Categorize(tt.err), tt.name)
	}
}

// TestCategoryRetryable tests the retry eligibility per category
func (s *ExecutorTestSuite) TestCategoryRetryable() {
	s.True(CategoryRepository.Retryable())
	s.True(CategorySystem.Retryable())
	s.False(CategoryValidation.Retryable())
	s.False(CategoryBusinessRule.Retryable())
	s.False(CategoryTimeout.Retryable())
}

func TestExecutorTestSuite(t *testing.T) {
	suite.Run(t, new(ExecutorTestSuite))
}
