package fence

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/gogpu/wgpu/hal"
)

// halFence realizes a Fence with a wgpu hal fence. GPU completion is observed
// through hal.Device.Wait.
type halFence struct {
	dev   hal.Device
	fence hal.Fence

	host      atomic.Uint64
	destroyed atomic.Bool
}

// hostSignaler is implemented by hal fences that accept a host signal, such
// as the noop backend's fence.
type hostSignaler interface {
	Signal(value uint64)
}

// valueReader is implemented by hal fences that expose their counter, such
// as the noop backend's fence.
type valueReader interface {
	GetValue() uint64
}

// completedReader is implemented by hal fences backed by a native counter,
// such as an ID3D12Fence.
type completedReader interface {
	GetCompletedValue() uint64
}

// NewHAL creates a hal fence on dev and wraps it.
func NewHAL(dev hal.Device) (Realization, error) {
	f, err := dev.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("fence: create hal fence: %w", err)
	}
	return &halFence{dev: dev, fence: f}, nil
}

func (h *halFence) Kind() string { return "hal-fence" }

func (h *halFence) Signal(v uint64) error {
	if h.destroyed.Load() {
		return ErrDestroyed
	}
	if s, ok := h.fence.(hostSignaler); ok {
		s.Signal(v)
	}
	h.host.Store(v)
	return nil
}

func (h *halFence) Completed() uint64 {
	v := h.host.Load()
	switch r := h.fence.(type) {
	case valueReader:
		v = max(v, r.GetValue())
	case completedReader:
		v = max(v, r.GetCompletedValue())
	}
	return v
}

func (h *halFence) WaitNative(v uint64, timeout time.Duration) (bool, error) {
	if h.destroyed.Load() {
		return false, ErrDestroyed
	}
	if timeout < 0 {
		timeout = time.Duration(math.MaxInt64)
	}
	ok, err := h.dev.Wait(h.fence, v, timeout)
	switch {
	case errors.Is(err, hal.ErrTimeout), errors.Is(err, hal.ErrNotReady):
		return false, nil
	case errors.Is(err, hal.ErrDeviceLost):
		return false, fmt.Errorf("%w: %w", ErrDeviceLost, err)
	case err != nil:
		return false, fmt.Errorf("fence: hal wait: %w", err)
	}
	return ok, nil
}

func (h *halFence) Destroy() {
	if h.destroyed.Swap(true) {
		return
	}
	h.dev.DestroyFence(h.fence)
}
