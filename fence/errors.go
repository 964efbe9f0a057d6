package fence

import (
	"errors"
	"fmt"
)

var (
	// ErrNonMonotonic matches every *NonMonotonicSignalError via errors.Is.
	ErrNonMonotonic = errors.New("fence: non-monotonic signal")

	// ErrDestroyed is returned for operations on a destroyed fence.
	ErrDestroyed = errors.New("fence: destroyed")

	// ErrNotOwner is returned when a queue releases or signals a fence it
	// does not hold.
	ErrNotOwner = errors.New("fence: queue is not an owner")

	// ErrWaitMultipleEmpty is returned by WaitMultiple without targets.
	ErrWaitMultipleEmpty = errors.New("fence: wait on empty fence list")

	// ErrDeviceLost is returned when the native device was lost while
	// waiting.
	ErrDeviceLost = errors.New("fence: device lost")
)

// NonMonotonicSignalError is returned when a signal value is not greater
// than the current counter. The fence is left unchanged.
type NonMonotonicSignalError struct {
	Fence     uint64
	Attempted uint64
	Current   uint64
}

func (e *NonMonotonicSignalError) Error() string {
	return fmt.Sprintf("fence %d: signal %d is not greater than current value %d", e.Fence, e.Attempted, e.Current)
}

// Is reports whether target is ErrNonMonotonic.
func (e *NonMonotonicSignalError) Is(target error) bool {
	return target == ErrNonMonotonic
}
