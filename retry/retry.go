// Package retry re-invokes a failing function a bounded number of times with
// a configurable delay between attempts.
//
// The loop makes one initial attempt plus up to MaxRetries retry cycles, so
// WithMaxRetries(3) yields at most four invocations. Between attempts it
// sleeps either a fixed RetryDelay or an exponentially growing one, and the
// sleep is cut short when the context is cancelled. A predicate decides per
// error whether retrying is worthwhile; a non-retryable error is returned to
// the caller unchanged, while exhausting the budget on retryable errors
// yields an *ExhaustedError wrapping the last failure.
package retry

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultMaxRetries applies when no WithMaxRetries option is given.
	DefaultMaxRetries = 3
	// DefaultRetryDelay applies when no WithRetryDelay option is given.
	DefaultRetryDelay = time.Second

	minMaxRetries = 1
	maxMaxRetries = 16
)

// Options is the resolved retry configuration. Build one with Normalize;
// values produced any other way may sit outside the supported ranges.
type Options struct {
	// MaxRetries counts retry cycles after the initial attempt.
	MaxRetries int
	// RetryDelay is the base wait between attempts.
	RetryDelay time.Duration
	// ExponentialBackoff doubles the wait after every failed attempt.
	ExponentialBackoff bool
	// ShouldRetry reports whether an error is worth another attempt.
	ShouldRetry func(error) bool
}

// Option customizes a single Do call.
type Option func(*Options)

// WithMaxRetries sets the retry budget. Values are clamped into [1, 16], so
// an explicit 0 still performs one retry.
func WithMaxRetries(n int) Option {
	return func(o *Options) { o.MaxRetries = n }
}

// WithRetryDelay sets the base wait between attempts. Zero disables the wait
// entirely; negative values are treated as zero.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) { o.RetryDelay = d }
}

// WithExponentialBackoff doubles the delay after each failed attempt instead
// of waiting a fixed interval.
func WithExponentialBackoff() Option {
	return func(o *Options) { o.ExponentialBackoff = true }
}

// WithShouldRetry installs the retryability predicate. Errors the predicate
// rejects propagate to the caller immediately and unchanged.
func WithShouldRetry(fn func(error) bool) Option {
	return func(o *Options) { o.ShouldRetry = fn }
}

// Normalize applies opts over the defaults and clamps the result into the
// supported ranges. Absent options keep their defaults, which is how an
// explicit WithMaxRetries(0) (clamped to 1) differs from no option at all
// (default 3).
func Normalize(opts ...Option) Options {
	o := Options{
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxRetries < minMaxRetries {
		o.MaxRetries = minMaxRetries
	}
	if o.MaxRetries > maxMaxRetries {
		o.MaxRetries = maxMaxRetries
	}
	if o.RetryDelay < 0 {
		o.RetryDelay = 0
	}
	if o.ShouldRetry == nil {
		o.ShouldRetry = func(error) bool { return true }
	}
	return o
}

// Delay returns the wait before the next attempt. attempt is 0-based counting
// from the first retry: with exponential backoff enabled the waits are
// RetryDelay, 2*RetryDelay, 4*RetryDelay and so on; without it every wait is
// RetryDelay.
func Delay(attempt int, o Options) time.Duration {
	if !o.ExponentialBackoff {
		return o.RetryDelay
	}
	if attempt < 0 {
		attempt = 0
	}
	return o.RetryDelay << attempt
}

// ExhaustedError reports that every attempt failed with a retryable error.
// The last attempt's error is available via Unwrap, so errors.Is and
// errors.As see through it.
type ExhaustedError struct {
	// Attempts is the total number of invocations, the initial attempt
	// included.
	Attempts int
	// Err is the error from the final attempt.
	Err error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d attempts failed: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Do runs fn until it succeeds, fails with a non-retryable error, exhausts
// the attempt budget, or ctx is cancelled. Cancellation interrupts the wait
// between attempts, never a running fn; the cancellation cause is returned
// in that case.
func Do[T any](ctx context.Context, fn func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	var zero T
	o := Normalize(opts...)
	attempts := o.MaxRetries + 1

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if ctx.Err() != nil {
			return zero, context.Cause(ctx)
		}

		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if !o.ShouldRetry(err) {
			return zero, err
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}
		if err := wait(ctx, Delay(attempt, o)); err != nil {
			return zero, err
		}
	}
	return zero, &ExhaustedError{Attempts: attempts, Err: lastErr}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	case <-timer.C:
		return nil
	}
}
