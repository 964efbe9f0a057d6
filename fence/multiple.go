package fence

import (
	"reflect"
	"time"
)

// Target is a fence and the value to wait for.
type Target struct {
	Fence *Fence
	Value uint64
}

// Reached reports whether the target's fence is at or past its value.
func (t Target) Reached() bool {
	return t.Fence.Value() >= t.Value
}

// WaitMultiple waits until all targets are reached when all is true, or
// until any one is reached otherwise. Timeout follows Wait.
func WaitMultiple(targets []Target, all bool, timeout time.Duration) (Status, error) {
	if len(targets) == 0 {
		return TimedOut, ErrWaitMultipleEmpty
	}

	for _, t := range targets {
		if _, err := t.Fence.enter(); err != nil {
			return TimedOut, err
		}
		defer t.Fence.leave()
	}

	settled := func() (bool, error) {
		hit := 0
		for _, t := range targets {
			ok, err := t.Fence.reached(t.Value)
			if err != nil {
				return false, err
			}
			if ok {
				hit++
				if !all {
					return true, nil
				}
			}
		}
		return hit == len(targets), nil
	}

	if ok, err := settled(); ok || err != nil {
		return statusOf(ok), err
	}
	if timeout == 0 {
		return TimedOut, nil
	}

	// One case per fence, then the optional poll and deadline cases.
	cases := make([]reflect.SelectCase, len(targets), len(targets)+2)
	native := false
	for _, t := range targets {
		if _, ok := t.Fence.real.(nativeWaiter); ok {
			native = true
		}
	}
	if native {
		ticker := time.NewTicker(nativePollInterval)
		defer ticker.Stop()
		cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ticker.C)})
	}
	deadlineCase := -1
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadlineCase = len(cases)
		cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(timer.C)})
	}

	for {
		for i, t := range targets {
			cases[i] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(t.Fence.changedChan())}
		}
		// Re-check after snapshotting channels so a signal in between is
		// not missed.
		if ok, err := settled(); ok || err != nil {
			return statusOf(ok), err
		}
		chosen, _, _ := reflect.Select(cases)
		if chosen == deadlineCase {
			ok, err := settled()
			return statusOf(ok), err
		}
	}
}

func statusOf(ok bool) Status {
	if ok {
		return Signaled
	}
	return TimedOut
}
