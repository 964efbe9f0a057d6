package backend

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ral/config"
	"github.com/gogpu/ral/fence"
	"github.com/gogpu/ral/format"
	"github.com/gogpu/ral/limits"
)

// Software is the CPU backend. It is registered so that settings naming it
// resolve, but it cannot drive a device yet.
type Software struct{}

func init() {
	Register(NameSoftware, func() Backend { return Software{} })
}

// Name returns the backend identifier.
func (Software) Name() string { return NameSoftware }

// API returns config.APISoftware.
func (Software) API() config.API { return config.APISoftware }

// Variant returns gputypes.BackendEmpty.
func (Software) Variant() gputypes.Backend { return gputypes.BackendEmpty }

// Probe always fails with ErrNotImplemented.
func (Software) Probe() ([]Adapter, error) { return nil, ErrNotImplemented }

// DefaultLimits returns the baseline.
func (Software) DefaultLimits() limits.RawDeviceLimits {
	return limits.BaselineLimits(NameSoftware)
}

// NewFenceRealization always fails with ErrNotImplemented.
func (Software) NewFenceRealization(uint64) (fence.Realization, error) {
	return nil, ErrNotImplemented
}

// SupportsFormat reports false for every format.
func (Software) SupportsFormat(format.Format, format.Usage) bool { return false }
