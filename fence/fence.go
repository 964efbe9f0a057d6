package fence

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Infinite waits until the target value is reached.
const Infinite time.Duration = -1

// nativePollInterval bounds how long a wait on a GPU-driven realization
// goes without re-checking native completion.
const nativePollInterval = time.Millisecond

// QueueID identifies a queue holding a fence.
type QueueID uint32

// Status is the outcome of a wait.
type Status uint8

const (
	// Signaled means the counter reached the target value.
	Signaled Status = iota

	// TimedOut means the deadline passed first. It is not an error.
	TimedOut
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Signaled:
		return "Signaled"
	case TimedOut:
		return "TimedOut"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Realization is the native object behind a Fence.
type Realization interface {
	// Kind names the native primitive, e.g. "d3d12-fence".
	Kind() string

	// Signal mirrors a host signal to the native object. It is called with
	// the fence lock held and only with increasing values.
	Signal(v uint64) error

	// Completed returns the last value known complete on the native side.
	Completed() uint64

	// Destroy releases the native object.
	Destroy()
}

// nativeWaiter is implemented by realizations whose value can advance on the
// GPU without a host signal.
type nativeWaiter interface {
	WaitNative(v uint64, timeout time.Duration) (bool, error)
}

var nextID atomic.Uint64

// Fence is a monotonic 64-bit counter shared between queues and the host.
// It is safe for concurrent use.
type Fence struct {
	id    uint64
	value atomic.Uint64
	real  Realization

	destroyed atomic.Bool

	mu             sync.Mutex
	changed        chan struct{}
	owners         map[QueueID]struct{}
	waiters        int
	pendingDestroy bool
}

// New returns a fence with the given initial value, exclusively owned by
// owner.
func New(owner QueueID, initial uint64, r Realization) *Fence {
	f := &Fence{
		id:      nextID.Add(1),
		real:    r,
		changed: make(chan struct{}),
		owners:  map[QueueID]struct{}{owner: {}},
	}
	f.value.Store(initial)
	slogger().Debug("fence: created",
		"fence", f.id,
		"kind", r.Kind(),
		"owner", owner,
		"initial", initial)
	return f
}

// ID returns the process-unique fence id.
func (f *Fence) ID() uint64 { return f.id }

// Kind returns the realization kind.
func (f *Fence) Kind() string { return f.real.Kind() }

// Value returns the current counter value, including progress made on the
// native side without a host signal.
func (f *Fence) Value() uint64 {
	v := f.value.Load()
	if c := f.real.Completed(); c > v {
		f.mu.Lock()
		f.advanceLocked(c)
		f.mu.Unlock()
		return c
	}
	return v
}

// Signal sets the counter to v and wakes every waiter whose target is at
// most v. v must be greater than the current value.
func (f *Fence) Signal(v uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.destroyed.Load() {
		return ErrDestroyed
	}
	f.advanceLocked(f.real.Completed())
	cur := f.value.Load()
	if v <= cur {
		return &NonMonotonicSignalError{Fence: f.id, Attempted: v, Current: cur}
	}
	if err := f.real.Signal(v); err != nil {
		return fmt.Errorf("fence %d: native signal: %w", f.id, err)
	}
	f.advanceLocked(v)
	return nil
}

func (f *Fence) advanceLocked(v uint64) {
	if v <= f.value.Load() {
		return
	}
	f.value.Store(v)
	close(f.changed)
	f.changed = make(chan struct{})
}

// reached reports whether the counter is at least t, folding in completion
// observed on the native side.
func (f *Fence) reached(t uint64) (bool, error) {
	if f.value.Load() >= t {
		return true, nil
	}
	if c := f.real.Completed(); c >= t {
		f.mu.Lock()
		f.advanceLocked(c)
		f.mu.Unlock()
		return true, nil
	}
	nw, ok := f.real.(nativeWaiter)
	if !ok {
		return false, nil
	}
	done, err := nw.WaitNative(t, 0)
	if err != nil || !done {
		return false, err
	}
	f.mu.Lock()
	f.advanceLocked(t)
	f.mu.Unlock()
	return true, nil
}

// Wait blocks until the counter reaches t or timeout passes. A zero timeout
// polls once; Infinite, or any negative value, waits without deadline.
func (f *Fence) Wait(t uint64, timeout time.Duration) (Status, error) {
	if f.value.Load() >= t && !f.destroyed.Load() {
		return Signaled, nil
	}
	return f.wait(t, timeout, nil, nil)
}

// WaitContext is Wait without deadline that gives up when ctx is done. The
// fence stays valid after cancellation.
func (f *Fence) WaitContext(ctx context.Context, t uint64) (Status, error) {
	if f.value.Load() >= t && !f.destroyed.Load() {
		return Signaled, nil
	}
	return f.wait(t, Infinite, ctx.Done(), ctx.Err)
}

func (f *Fence) wait(t uint64, timeout time.Duration, done <-chan struct{}, doneErr func() error) (Status, error) {
	ch, err := f.enter()
	if err != nil {
		return TimedOut, err
	}
	defer f.leave()

	settled := func() (Status, bool, error) {
		ok, err := f.reached(t)
		switch {
		case err != nil:
			return TimedOut, true, err
		case ok:
			return Signaled, true, nil
		}
		return TimedOut, false, nil
	}

	if s, ok, err := settled(); ok {
		return s, err
	}
	if timeout == 0 {
		return TimedOut, nil
	}

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}
	var tick <-chan time.Time
	if _, ok := f.real.(nativeWaiter); ok {
		ticker := time.NewTicker(nativePollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ch:
		case <-tick:
		case <-deadline:
			s, _, err := settled()
			return s, err
		case <-done:
			return TimedOut, doneErr()
		}
		if s, ok, err := settled(); ok {
			return s, err
		}
		ch = f.changedChan()
	}
}

func (f *Fence) changedChan() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.changed
}

// enter registers a waiter and returns the channel closed on the next
// signal.
func (f *Fence) enter() (<-chan struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.destroyed.Load() {
		return nil, ErrDestroyed
	}
	f.waiters++
	return f.changed, nil
}

func (f *Fence) leave() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.waiters--
	if f.waiters == 0 && f.pendingDestroy {
		f.destroyLocked()
	}
}

// Owns reports whether q holds the fence.
func (f *Fence) Owns(q QueueID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.owners[q]
	return ok
}

// Share adds q as a holder of the fence.
func (f *Fence) Share(q QueueID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.destroyed.Load() || f.pendingDestroy {
		return ErrDestroyed
	}
	f.owners[q] = struct{}{}
	return nil
}

// Release removes q as a holder. When the last holder releases the fence is
// destroyed, after any pending waiters have returned.
func (f *Fence) Release(q QueueID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.owners[q]; !ok {
		return ErrNotOwner
	}
	delete(f.owners, q)
	if len(f.owners) > 0 {
		return nil
	}
	if f.waiters > 0 {
		f.pendingDestroy = true
		slogger().Debug("fence: destroy deferred",
			"fence", f.id,
			"waiters", f.waiters)
		return nil
	}
	f.destroyLocked()
	return nil
}

func (f *Fence) destroyLocked() {
	if f.destroyed.Load() {
		return
	}
	f.destroyed.Store(true)
	f.pendingDestroy = false
	f.real.Destroy()
	slogger().Debug("fence: destroyed",
		"fence", f.id,
		"value", f.value.Load())
}

// Owners returns the holders of the fence in ascending order.
func (f *Fence) Owners() []QueueID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]QueueID, 0, len(f.owners))
	for q := range f.owners {
		out = append(out, q)
	}
	slices.Sort(out)
	return out
}

// Shared reports whether more than one queue holds the fence.
func (f *Fence) Shared() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.owners) > 1
}

// Destroyed reports whether the native object has been released.
func (f *Fence) Destroyed() bool {
	return f.destroyed.Load()
}

// String implements fmt.Stringer.
func (f *Fence) String() string {
	return fmt.Sprintf("fence %d (%s) = %d", f.id, f.real.Kind(), f.value.Load())
}
