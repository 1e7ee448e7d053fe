package ctxmerge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitCancelled fails the test if ctx does not become done quickly.
func waitCancelled(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("composed context was not cancelled in time")
	}
}

// assertStillLive gives listeners a moment to (incorrectly) fire before
// checking that ctx is still pending.
func assertStillLive(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
		t.Fatalf("composed context unexpectedly cancelled: %v", context.Cause(ctx))
	case <-time.After(50 * time.Millisecond):
	}
}

func TestAny_FirstParentWins(t *testing.T) {
	reason := errors.New("user aborted the run")

	ctxA, cancelA := context.WithCancelCause(context.Background())
	ctxB, cancelB := context.WithCancelCause(context.Background())
	ctxC, cancelC := context.WithCancelCause(context.Background())
	defer cancelA(nil)
	defer cancelC(nil)

	merged, stop := Any(ctxA, ctxB, ctxC)
	defer stop()

	cancelB(reason)
	waitCancelled(t, merged)

	require.ErrorIs(t, merged.Err(), context.Canceled)
	assert.Equal(t, reason, context.Cause(merged))

	// A second parent firing afterwards must not panic or replace the reason.
	cancelC(errors.New("too late"))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, reason, context.Cause(merged))
}

func TestAny_NilEntriesAreSkipped(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())

	merged, stop := Any(nil, ctx, nil)
	defer stop()

	assertStillLive(t, merged)
	cancel(errors.New("boom"))
	waitCancelled(t, merged)
}

func TestAny_NoUsableParents(t *testing.T) {
	merged, stop := Any(nil, nil)

	assertStillLive(t, merged)

	// stop is a no-op but must be safe to call, repeatedly.
	stop()
	stop()
	assertStillLive(t, merged)
}

func TestAny_AlreadyCancelledParent(t *testing.T) {
	reason := errors.New("expired before compose")
	done, cancel := context.WithCancelCause(context.Background())
	cancel(reason)

	live, liveCancel := context.WithCancel(context.Background())
	defer liveCancel()

	merged, stop := Any(live, done)
	defer stop()

	// No listener round trip: the composed context is settled on return.
	require.Error(t, merged.Err())
	assert.Equal(t, reason, context.Cause(merged))
}

func TestAny_ClearDetachesListeners(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())

	merged, stop := Any(ctx)
	stop()

	cancel(errors.New("after clear"))
	assertStillLive(t, merged)

	// Clearing again, including after a parent fired, stays a no-op.
	stop()
}

func TestAny_DeadlineCauseFlowsThrough(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	merged, stop := Any(ctx)
	defer stop()

	waitCancelled(t, merged)
	assert.ErrorIs(t, context.Cause(merged), context.DeadlineExceeded)
}
