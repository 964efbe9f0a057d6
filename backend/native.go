package backend

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ral/config"
	"github.com/gogpu/ral/fence"
	"github.com/gogpu/ral/format"
	"github.com/gogpu/ral/limits"
)

// NativeOption configures a hal-backed backend.
type NativeOption func(*Native)

// WithHAL overrides the hal backend instead of looking it up by variant.
func WithHAL(hb hal.Backend) NativeOption {
	return func(n *Native) {
		n.hal = hb
	}
}

// Native is a backend driven through a wgpu hal backend.
//
// Thread safety: Native is safe for concurrent use.
type Native struct {
	name     string
	api      config.API
	variant  gputypes.Backend
	defaults func() limits.RawDeviceLimits
	newFence func(uint64) fence.Realization

	mu       sync.Mutex
	hal      hal.Backend
	flags    gputypes.InstanceFlags
	instance hal.Instance
}

func newNative(name string, api config.API, variant gputypes.Backend,
	defaults func() limits.RawDeviceLimits, newFence func(uint64) fence.Realization,
	opts ...NativeOption) *Native {
	n := &Native{
		name:     name,
		api:      api,
		variant:  variant,
		defaults: defaults,
		newFence: newFence,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewDX12 returns the DirectX 12 backend.
func NewDX12(opts ...NativeOption) *Native {
	return newNative(NameDX12, config.APIDX12, gputypes.BackendDX12,
		limits.DefaultDX12Limits, fence.NewDX12Counter, opts...)
}

// NewVulkan returns the Vulkan backend.
func NewVulkan(opts ...NativeOption) *Native {
	return newNative(NameVulkan, config.APIVulkan, gputypes.BackendVulkan,
		limits.DefaultVulkanLimits, fence.NewVulkanTimeline, opts...)
}

func init() {
	Register(NameVulkan, func() Backend { return NewVulkan() })
}

// Name returns the backend identifier.
func (n *Native) Name() string { return n.name }

// API returns the settings value that selects this backend.
func (n *Native) API() config.API { return n.api }

// Variant returns the gputypes backend identifier.
func (n *Native) Variant() gputypes.Backend { return n.variant }

// DefaultLimits returns the documented limits of the native API.
func (n *Native) DefaultLimits() limits.RawDeviceLimits { return n.defaults() }

// Configure applies the debug settings to the next instance.
func (n *Native) Configure(s config.Settings) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.flags = s.InstanceFlags()
	if keys := s.UnsupportedDebug(); len(keys) > 0 {
		slogger().Warn("backend: debug switches are not supported by the hal backend",
			"backend", n.name,
			"switches", keys)
	}
	if n.variant == gputypes.BackendVulkan && len(s.Vulkan.AdditionalLayers) > 0 {
		slogger().Warn("backend: additional vulkan layers are not supported by the hal loader",
			"layers", s.Vulkan.AdditionalLayers)
	}
}

func (n *Native) halBackend() (hal.Backend, error) {
	if n.hal != nil {
		return n.hal, nil
	}
	hb, ok := hal.GetBackend(n.variant)
	if !ok {
		return nil, fmt.Errorf("%w: %s hal backend not compiled in", ErrBackendNotAvailable, n.name)
	}
	n.hal = hb
	return hb, nil
}

// Probe enumerates the adapters of the hal backend. The hal instance stays
// alive until Release.
func (n *Native) Probe() ([]Adapter, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	hb, err := n.halBackend()
	if err != nil {
		return nil, err
	}
	if n.instance != nil {
		n.instance.Destroy()
		n.instance = nil
	}
	inst, adapters, err := ProbeHAL(hb, &hal.InstanceDescriptor{
		Backends: gputypes.Backends(1) << n.variant,
		Flags:    n.flags,
	}, n.defaults())
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", n.name, err)
	}
	n.instance = inst
	return adapters, nil
}

// Open opens a logical device on a. The adapter must come from Probe.
func (n *Native) Open(a Adapter) (hal.OpenDevice, error) {
	if a.Native == nil || a.Native.Adapter == nil {
		return hal.OpenDevice{}, ErrNoNativeAdapter
	}
	od, err := a.Native.Adapter.Open(a.Native.Features, a.Native.Limits)
	if err != nil {
		return hal.OpenDevice{}, fmt.Errorf("backend %s: open %q: %w", n.name, a.Info.Name, err)
	}
	slogger().Info("backend: device opened",
		"backend", n.name,
		"adapter", a.Info.Name)
	return od, nil
}

// Release destroys the hal instance created by Probe.
func (n *Native) Release() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.instance != nil {
		n.instance.Destroy()
		n.instance = nil
	}
}

// NewFenceRealization returns the native fence primitive of the API: a
// 64-bit fence counter on DirectX 12, a timeline semaphore on Vulkan.
func (n *Native) NewFenceRealization(initial uint64) (fence.Realization, error) {
	return n.newFence(initial), nil
}

// NewDeviceFence returns the fence realization for a device opened by Open.
// On DirectX 12 the hal fence is an ID3D12Fence and carries the counter
// itself. The hal Vulkan fence is a binary VkFence, so Vulkan keeps the
// timeline realization.
func (n *Native) NewDeviceFence(dev hal.Device, initial uint64) (fence.Realization, error) {
	if n.variant != gputypes.BackendDX12 {
		return n.NewFenceRealization(initial)
	}
	r, err := fence.NewHAL(dev)
	if err != nil {
		return nil, err
	}
	if initial > 0 {
		if err := r.Signal(initial); err != nil {
			r.Destroy()
			return nil, err
		}
	}
	return r, nil
}

// SupportsFormat reports whether the API can use f for u. Both APIs expose
// the whole capability matrix; adapters may report less.
func (n *Native) SupportsFormat(f format.Format, u format.Usage) bool {
	return u != 0 && format.CapabilitiesOf(f).Usage.Contains(u)
}
