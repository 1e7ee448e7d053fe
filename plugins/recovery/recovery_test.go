package recovery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/taskpipe/executor"
)

type job struct{ Name string }

var errTransient = errors.New("transient")

func failWith(err error) executor.Task[job] {
	return func(*executor.Context[job]) (any, error) {
		return nil, err
	}
}

func TestPlugin_RecoversEveryErrorByDefault(t *testing.T) {
	t.Parallel()

	e := executor.NewSync[job]()
	e.Use(New[job]())

	got, err := e.Exec(job{}, failWith(errTransient))

	require.NoError(t, err)
	recovered, ok := got.(Recovered)
	require.True(t, ok, "the outcome must be the tagged value, got %T", got)
	assert.ErrorIs(t, recovered.Err, errTransient)
}

func TestPlugin_MatchRestrictsRecovery(t *testing.T) {
	t.Parallel()

	fatal := errors.New("fatal")
	e := executor.NewSync[job]()
	e.Use(New[job](WithMatch(func(err error) bool {
		return errors.Is(err, errTransient)
	})))

	got, err := e.Exec(job{}, failWith(errTransient))
	require.NoError(t, err)
	assert.IsType(t, Recovered{}, got)

	_, err = e.Exec(job{}, failWith(fatal))
	assert.ErrorIs(t, err, fatal, "unmatched errors keep propagating")
}

func TestPlugin_StopsErrorPhaseWhenRecovering(t *testing.T) {
	t.Parallel()

	laterRan := false
	e := executor.NewSync[job]()
	e.Use(New[job]())
	e.Use(&afterHook{fn: func() { laterRan = true }})

	_, err := e.Exec(job{}, failWith(errTransient))

	require.NoError(t, err)
	assert.False(t, laterRan, "recovery ends the error phase")
}

func TestPlugin_SecondRegistrationIsDropped(t *testing.T) {
	t.Parallel()

	e := executor.NewSync[job]()
	e.Use(New[job]())
	e.Use(New[job](WithMatch(func(error) bool { return false })))

	assert.Equal(t, []string{"recovery"}, e.Plugins())

	// The surviving predicate is the first one: recover everything.
	got, err := e.Exec(job{}, failWith(errTransient))
	require.NoError(t, err)
	assert.IsType(t, Recovered{}, got)
}

type afterHook struct {
	fn func()
}

func (h *afterHook) PluginName() string { return "after" }

func (h *afterHook) OnError(*executor.Context[job]) error {
	h.fn()
	return nil
}
