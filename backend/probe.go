package backend

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ral/format"
	"github.com/gogpu/ral/limits"
)

// ProbeHAL creates an instance of hb and converts every adapter it exposes.
// Limits the adapter does not report are taken from defaults. The caller owns
// the returned instance and must destroy it after the adapters.
func ProbeHAL(hb hal.Backend, desc *hal.InstanceDescriptor, defaults limits.RawDeviceLimits) (hal.Instance, []Adapter, error) {
	inst, err := hb.CreateInstance(desc)
	if err != nil {
		return nil, nil, fmt.Errorf("backend: create %s instance: %w", hb.Variant(), err)
	}

	exposed := inst.EnumerateAdapters(nil)
	if len(exposed) == 0 {
		inst.Destroy()
		return nil, nil, fmt.Errorf("%w: %s", ErrNoAdapters, hb.Variant())
	}

	adapters := make([]Adapter, 0, len(exposed))
	for _, e := range exposed {
		a := FromExposed(e, defaults)
		slogger().Debug("backend: adapter found",
			"backend", hb.Variant(),
			"adapter", a.Info.Name,
			"type", a.Info.Type,
			"driver", e.Info.Driver)
		adapters = append(adapters, a)
	}
	return inst, adapters, nil
}

// FromExposed converts a hal adapter. Per-format usage comes from
// TextureFormatCapabilities, intersected with the capability matrix.
func FromExposed(e hal.ExposedAdapter, defaults limits.RawDeviceLimits) Adapter {
	raw := limits.FromGPUTypes(e.Info.Name, e.Info.Backend, e.Capabilities.Limits, e.Capabilities.AlignmentsMask)
	a := Adapter{
		Info: gpucontext.AdapterInfo{
			Name: e.Info.Name,
			Type: adapterType(e.Info.DeviceType),
		},
		GPU:    e.Info,
		Limits: raw.WithDefaults(defaults),
		Native: &NativeAdapter{
			Adapter:  e.Adapter,
			Features: e.Features,
			Limits:   e.Capabilities.Limits,
		},
	}

	usage := make(map[format.Format]format.Usage)
	for _, f := range format.All() {
		g, ok := f.GPUType()
		if !ok {
			continue
		}
		caps := e.Adapter.TextureFormatCapabilities(g)
		usage[f] = usageFromHAL(caps.Flags)
	}
	return a.WithFormats(usage)
}

// usageFromHAL widens hal flags onto Usage. The capability matrix removes the
// bits a format cannot have.
func usageFromHAL(flags hal.TextureFormatCapabilityFlags) format.Usage {
	var u format.Usage
	if flags&hal.TextureFormatCapabilitySampled != 0 {
		u |= format.UsageSampled | format.UsageConstantTexelBuffer
	}
	if flags&hal.TextureFormatCapabilityStorage != 0 {
		u |= format.UsageStorage | format.UsageStorageTexelBuffer
	}
	if flags&hal.TextureFormatCapabilityRenderAttachment != 0 {
		u |= format.UsageRenderTarget | format.UsageDepthStencil | format.UsageDisplay
	}
	return u
}
