// Package cleanup guarantees that teardown actions registered during a
// computation all run exactly once, in reverse registration order, regardless
// of how the computation ends.
//
// A Finalizer is bound to a single computation started with Run or Start. It
// collects cleanup callbacks while the computation executes and unwinds them
// LIFO at settlement, on the success and failure paths alike. A callback that
// panics is swallowed so it can never override the computation's outcome, and
// a callback registered after settlement fires immediately instead of being
// dropped.
package cleanup

import "sync"

type state int

const (
	statePending state = iota
	stateSettling
	stateSettled
)

// Finalizer holds the LIFO cleanup stack of one computation. The zero value
// is ready for use; Run and Start create one per invocation and own its
// settlement.
type Finalizer struct {
	mu    sync.Mutex
	state state
	stack []func()
}

// Defer registers fn to run when the computation settles. Callbacks run in
// reverse registration order. Registering during the unwind is allowed: the
// new callback runs before the next already-queued one. Registering after
// settlement runs fn immediately and synchronously. A nil fn is ignored.
func (f *Finalizer) Defer(fn func()) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	if f.state == stateSettled {
		f.mu.Unlock()
		runQuietly(fn)
		return
	}
	f.stack = append(f.stack, fn)
	f.mu.Unlock()
}

// Push is an alias for Defer, for call sites that read better as stack
// operations. The two are functionally identical.
func (f *Finalizer) Push(fn func()) {
	f.Defer(fn)
}

// settle unwinds the stack. Only the first call has any effect; the unwind
// pops one callback at a time so re-entrant registrations land in the right
// LIFO position.
func (f *Finalizer) settle() {
	f.mu.Lock()
	if f.state != statePending {
		f.mu.Unlock()
		return
	}
	f.state = stateSettling
	f.mu.Unlock()

	for {
		f.mu.Lock()
		n := len(f.stack)
		if n == 0 {
			f.state = stateSettled
			f.mu.Unlock()
			return
		}
		fn := f.stack[n-1]
		f.stack = f.stack[:n-1]
		f.mu.Unlock()

		runQuietly(fn)
	}
}

// runQuietly shields the primary outcome from a panicking callback. The
// panic value is intentionally discarded; collaborators that want visibility
// wrap their callbacks before registering them.
func runQuietly(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

// Run invokes factory with a fresh Finalizer and returns its result. The
// registered cleanups run when factory returns, whether it succeeded or
// failed, and also when it panics; the panic propagates after the unwind.
func Run[T any](factory func(f *Finalizer) (T, error)) (T, error) {
	f := &Finalizer{}
	defer f.settle()
	return factory(f)
}

// Outcome is the handle returned by Start. It settles once, when the settle
// callback handed to setup is first invoked.
type Outcome[T any] struct {
	fin  *Finalizer
	once sync.Once
	done chan struct{}
	val  T
	err  error
}

// Start begins a computation whose settlement is driven manually, for
// producers that cannot simply return from a factory (background goroutines,
// callback-based APIs). setup runs synchronously on the calling goroutine and
// receives the Finalizer plus a settle function; the first settle call wins
// and later calls are ignored. Cleanups unwind on the settling goroutine
// before Wait observers are released.
//
// A panic inside setup unwinds the cleanups registered so far and then
// propagates.
func Start[T any](setup func(f *Finalizer, settle func(T, error))) *Outcome[T] {
	o := &Outcome[T]{
		fin:  &Finalizer{},
		done: make(chan struct{}),
	}
	settle := func(v T, err error) {
		o.once.Do(func() {
			o.val = v
			o.err = err
			o.fin.settle()
			close(o.done)
		})
	}

	defer func() {
		if r := recover(); r != nil {
			o.fin.settle()
			panic(r)
		}
	}()
	setup(o.fin, settle)
	return o
}

// Wait blocks until the computation settles and returns its outcome.
func (o *Outcome[T]) Wait() (T, error) {
	<-o.done
	return o.val, o.err
}

// Done returns a channel closed at settlement, for use in select statements.
func (o *Outcome[T]) Done() <-chan struct{} {
	return o.done
}
