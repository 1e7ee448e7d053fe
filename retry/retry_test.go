package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		opts []Option
		want Options
	}{
		{
			name: "defaults",
			opts: nil,
			want: Options{MaxRetries: 3, RetryDelay: time.Second},
		},
		{
			name: "explicit zero retries clamps to one",
			opts: []Option{WithMaxRetries(0)},
			want: Options{MaxRetries: 1, RetryDelay: time.Second},
		},
		{
			name: "negative retries clamps to one",
			opts: []Option{WithMaxRetries(-5)},
			want: Options{MaxRetries: 1, RetryDelay: time.Second},
		},
		{
			name: "retries above ceiling clamps to sixteen",
			opts: []Option{WithMaxRetries(100)},
			want: Options{MaxRetries: 16, RetryDelay: time.Second},
		},
		{
			name: "in-range values pass through",
			opts: []Option{WithMaxRetries(7), WithRetryDelay(250 * time.Millisecond)},
			want: Options{MaxRetries: 7, RetryDelay: 250 * time.Millisecond},
		},
		{
			name: "negative delay clamps to zero",
			opts: []Option{WithRetryDelay(-time.Second)},
			want: Options{MaxRetries: 3, RetryDelay: 0},
		},
		{
			name: "exponential backoff flag",
			opts: []Option{WithExponentialBackoff()},
			want: Options{MaxRetries: 3, RetryDelay: time.Second, ExponentialBackoff: true},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Normalize(tc.opts...)

			assert.Equal(t, tc.want.MaxRetries, got.MaxRetries)
			assert.Equal(t, tc.want.RetryDelay, got.RetryDelay)
			assert.Equal(t, tc.want.ExponentialBackoff, got.ExponentialBackoff)
			require.NotNil(t, got.ShouldRetry, "predicate must always be populated")
			assert.True(t, got.ShouldRetry(errors.New("any")), "default predicate retries everything")
		})
	}
}

func TestDelay(t *testing.T) {
	t.Parallel()

	fixed := Normalize(WithRetryDelay(100 * time.Millisecond))
	exponential := Normalize(WithRetryDelay(100*time.Millisecond), WithExponentialBackoff())

	testCases := []struct {
		name    string
		opts    Options
		attempt int
		want    time.Duration
	}{
		{name: "fixed attempt 0", opts: fixed, attempt: 0, want: 100 * time.Millisecond},
		{name: "fixed attempt 3", opts: fixed, attempt: 3, want: 100 * time.Millisecond},
		{name: "exponential attempt 0", opts: exponential, attempt: 0, want: 100 * time.Millisecond},
		{name: "exponential attempt 1", opts: exponential, attempt: 1, want: 200 * time.Millisecond},
		{name: "exponential attempt 2", opts: exponential, attempt: 2, want: 400 * time.Millisecond},
		{name: "exponential attempt 3", opts: exponential, attempt: 3, want: 800 * time.Millisecond},
		{name: "negative attempt treated as first", opts: exponential, attempt: -1, want: 100 * time.Millisecond},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Delay(tc.attempt, tc.opts))
		})
	}
}

func TestDo_FirstAttemptSucceeds(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := Do(context.Background(), func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
}

func TestDo_RecoversAfterTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := Do(context.Background(), func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 99, nil
	}, WithRetryDelay(0))

	require.NoError(t, err)
	assert.Equal(t, 99, got)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsBudget(t *testing.T) {
	t.Parallel()

	last := errors.New("still broken")
	calls := 0
	_, err := Do(context.Background(), func(context.Context) (struct{}, error) {
		calls++
		return struct{}{}, last
	}, WithMaxRetries(3), WithRetryDelay(0))

	assert.Equal(t, 4, calls, "three retries means four invocations in total")

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 4, exhausted.Attempts)
	assert.ErrorIs(t, err, last)
	assert.EqualError(t, err, "all 4 attempts failed: still broken")
}

func TestDo_NonRetryableErrorPropagatesUnchanged(t *testing.T) {
	t.Parallel()

	fatal := errors.New("permanent")
	calls := 0
	_, err := Do(context.Background(), func(context.Context) (struct{}, error) {
		calls++
		return struct{}{}, fatal
	}, WithShouldRetry(func(err error) bool { return false }), WithRetryDelay(0))

	assert.Equal(t, 1, calls)
	assert.Equal(t, fatal, err, "the error must come back without wrapping")

	var exhausted *ExhaustedError
	assert.False(t, errors.As(err, &exhausted))
}

func TestDo_PredicateConsultedPerError(t *testing.T) {
	t.Parallel()

	transient := errors.New("transient")
	fatal := errors.New("fatal")
	calls := 0
	_, err := Do(context.Background(), func(context.Context) (struct{}, error) {
		calls++
		if calls == 1 {
			return struct{}{}, transient
		}
		return struct{}{}, fatal
	}, WithShouldRetry(func(err error) bool { return errors.Is(err, transient) }), WithRetryDelay(0))

	assert.Equal(t, 2, calls)
	assert.Equal(t, fatal, err)
}

func TestDo_CancellationInterruptsWait(t *testing.T) {
	t.Parallel()

	cause := errors.New("deadline moved up")
	ctx, cancel := context.WithCancelCause(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel(cause)
	}()

	start := time.Now()
	_, err := Do(ctx, func(context.Context) (struct{}, error) {
		return struct{}{}, errors.New("transient")
	}, WithRetryDelay(10*time.Second))

	require.ErrorIs(t, err, cause)
	assert.Less(t, time.Since(start), 5*time.Second, "the wait must be cut short")
}

func TestDo_CancelledBeforeFirstAttempt(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancelCause(context.Background())
	cause := errors.New("never started")
	cancel(cause)

	calls := 0
	_, err := Do(ctx, func(context.Context) (struct{}, error) {
		calls++
		return struct{}{}, nil
	})

	require.ErrorIs(t, err, cause)
	assert.Zero(t, calls)
}
