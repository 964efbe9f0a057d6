package backend

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ral/config"
	"github.com/gogpu/ral/fence"
	"github.com/gogpu/ral/format"
	"github.com/gogpu/ral/limits"
)

var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered
	// or its native API is missing on this platform.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotImplemented is returned by backends that are registered but not
	// implemented.
	ErrNotImplemented = errors.New("backend: not implemented")

	// ErrNoAdapters is returned when probing finds no adapters.
	ErrNoAdapters = errors.New("backend: no adapters")

	// ErrNoNativeAdapter is returned when opening an adapter that was not
	// produced by a hal probe.
	ErrNoNativeAdapter = errors.New("backend: adapter has no native handle")
)

// Backend is a native graphics API. A backend is resolved once when a device
// is opened and is held for the lifetime of that device.
type Backend interface {
	// Name returns the registry name (e.g., "dx12", "vulkan").
	Name() string

	// API returns the settings value that selects this backend.
	API() config.API

	// Variant returns the gputypes backend identifier.
	Variant() gputypes.Backend

	// Probe enumerates the adapters this backend can drive.
	Probe() ([]Adapter, error)

	// DefaultLimits returns the documented limits of the native API,
	// used for values an adapter does not report.
	DefaultLimits() limits.RawDeviceLimits

	// NewFenceRealization returns the native fence primitive of this API.
	NewFenceRealization(initial uint64) (fence.Realization, error)

	// SupportsFormat reports whether the API can use f for every bit of u.
	SupportsFormat(f format.Format, u format.Usage) bool
}

// Configurer is implemented by backends that honor debug settings.
type Configurer interface {
	Configure(s config.Settings)
}

// Opener is implemented by backends that can open a logical hal device on a
// probed adapter.
type Opener interface {
	Open(a Adapter) (hal.OpenDevice, error)
}

// DeviceFencer is implemented by backends that can back a fence with a
// fence of an open hal device.
type DeviceFencer interface {
	NewDeviceFence(dev hal.Device, initial uint64) (fence.Realization, error)
}

// Releaser is implemented by backends that hold native state between Probe
// and device destruction.
type Releaser interface {
	Release()
}

// Adapter is a physical device found by Probe.
type Adapter struct {
	// Info is the summary used for adapter selection.
	Info gpucontext.AdapterInfo

	// GPU is the full adapter description.
	GPU gputypes.AdapterInfo

	// Limits are the reported limits, completed with the backend defaults.
	Limits limits.RawDeviceLimits

	// Native holds what the hal adapter reported, if it came from a hal probe.
	Native *NativeAdapter

	// formats holds the usage the adapter reports per format. Nil means the
	// capability matrix applies unchanged.
	formats map[format.Format]format.Usage
}

// NativeAdapter is the hal side of an Adapter.
type NativeAdapter struct {
	Adapter  hal.Adapter
	Features gputypes.Features
	Limits   gputypes.Limits
}

// FormatUsage returns the usage the adapter supports for f.
func (a Adapter) FormatUsage(f format.Format) format.Usage {
	if a.formats == nil {
		return format.CapabilitiesOf(f).Usage
	}
	return a.formats[f]
}

// SupportsFormat reports whether the adapter supports every bit of u for f.
func (a Adapter) SupportsFormat(f format.Format, u format.Usage) bool {
	return u != 0 && a.FormatUsage(f).Contains(u)
}

// WithFormats returns a copy of a restricted to the given per-format usage.
// Usage outside the capability matrix is dropped.
func (a Adapter) WithFormats(usage map[format.Format]format.Usage) Adapter {
	a.formats = make(map[format.Format]format.Usage, len(usage))
	for f, u := range usage {
		a.formats[f] = u & format.CapabilitiesOf(f).Usage
	}
	return a
}

// Rank orders adapter types for selection. Lower is better.
func (a Adapter) Rank() int {
	switch a.Info.Type {
	case gpucontext.AdapterTypeDiscrete:
		return 0
	case gpucontext.AdapterTypeIntegrated:
		return 1
	case gpucontext.AdapterTypeSoftware:
		return 3
	}
	return 2
}

// adapterType maps the hal device type onto the gpucontext summary.
func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	}
	return gpucontext.AdapterTypeUnknown
}
