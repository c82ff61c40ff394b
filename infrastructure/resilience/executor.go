// Package resilience provides resilient store-call execution using fortify.
package resilience

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/retry"
)

// Config configures a resilient executor.
type Config struct {
	// MaxConcurrent limits concurrent executions. Zero means no limit.
	// A limit of 1 serializes callers, which is how the gateway keeps
	// a single active writer on the store file.
	MaxConcurrent int

	// RetryMaxAttempts is the maximum number of attempts.
	RetryMaxAttempts int

	// RetryInitialDelay is the initial delay between attempts.
	RetryInitialDelay time.Duration

	// RetryBackoffMultiplier is the exponential backoff multiplier.
	RetryBackoffMultiplier float64
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxConcurrent:          0,
		RetryMaxAttempts:       3,
		RetryInitialDelay:      100 * time.Millisecond,
		RetryBackoffMultiplier: 2.0,
	}
}

// Executor runs store operations with bounded retry and optional
// concurrency limiting. Retry applies only to errors the predicate
// accepts (lock contention); every other failure is surfaced on the
// first attempt.
type Executor[T any] struct {
	bulkhead    bulkhead.Bulkhead[T]
	retry       retry.Retry[T]
	shouldRetry func(error) bool
}

// New creates an executor. shouldRetry decides which errors are worth
// another attempt; nil retries nothing.
func New[T any](cfg Config, shouldRetry func(error) bool) *Executor[T] {
	e := &Executor[T]{
		retry: retry.New[T](retry.Config{
			MaxAttempts:   cfg.RetryMaxAttempts,
			InitialDelay:  cfg.RetryInitialDelay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    cfg.RetryBackoffMultiplier,
		}),
		shouldRetry: shouldRetry,
	}
	if cfg.MaxConcurrent > 0 {
		e.bulkhead = bulkhead.New[T](bulkhead.Config{
			MaxConcurrent: cfg.MaxConcurrent,
		})
	}
	return e
}

// Execute runs op, serialized through the bulkhead when one is
// configured, retrying with backoff while op fails with a retryable
// error.
func (e *Executor[T]) Execute(ctx context.Context, op func(context.Context) (T, error)) (T, error) {
	if e.bulkhead == nil {
		return e.withRetry(ctx, op)
	}
	return e.bulkhead.Execute(ctx, func(ctx context.Context) (T, error) {
		return e.withRetry(ctx, op)
	})
}

func (e *Executor[T]) withRetry(ctx context.Context, op func(context.Context) (T, error)) (T, error) {
	// Terminal failures are tunneled past the retry loop as a nil
	// error so only retryable ones consume attempts.
	var terminal error
	result, err := e.retry.Do(ctx, func(ctx context.Context) (T, error) {
		r, opErr := op(ctx)
		if opErr != nil && (e.shouldRetry == nil || !e.shouldRetry(opErr)) {
			terminal = opErr
			return r, nil
		}
		terminal = nil
		return r, opErr
	})
	if terminal != nil {
		return result, terminal
	}
	return result, err
}
