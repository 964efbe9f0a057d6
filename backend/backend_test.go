package backend

import (
	"bytes"
	"log/slog"
	"runtime"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ral/config"
	"github.com/gogpu/ral/format"
	"github.com/gogpu/ral/limits"
)

// =============================================================================
// Registry
// =============================================================================

func TestRegistryPriority(t *testing.T) {
	want := []string{NameVulkan, NameSoftware}
	if runtime.GOOS == "windows" {
		want = append([]string{NameDX12}, want...)
	}
	assert.Equal(t, want, Available())

	b := Default()
	require.NotNil(t, b)
	assert.Equal(t, want[0], b.Name())
}

func TestDX12RegisteredOnlyOnWindows(t *testing.T) {
	assert.Equal(t, runtime.GOOS == "windows", IsRegistered(NameDX12))
	if runtime.GOOS != "windows" {
		_, err := Resolve(config.APIDX12)
		assert.ErrorIs(t, err, ErrBackendNotAvailable)
	}
}

func TestRegisterUnregister(t *testing.T) {
	Register("zz-test", func() Backend { return Software{} })
	t.Cleanup(func() { Unregister("zz-test") })

	assert.True(t, IsRegistered("zz-test"))
	names := Available()
	assert.Equal(t, "zz-test", names[len(names)-1])

	Unregister("zz-test")
	assert.False(t, IsRegistered("zz-test"))
	assert.Nil(t, Get("zz-test"))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		api     config.API
		variant gputypes.Backend
	}{
		{config.APIVulkan, gputypes.BackendVulkan},
		{config.APISoftware, gputypes.BackendEmpty},
	}
	if runtime.GOOS == "windows" {
		tests = append(tests, struct {
			api     config.API
			variant gputypes.Backend
		}{config.APIDX12, gputypes.BackendDX12})
	}
	for _, tt := range tests {
		b, err := Resolve(tt.api)
		require.NoError(t, err, tt.api)
		assert.Equal(t, tt.api, b.API())
		assert.Equal(t, tt.variant, b.Variant())
	}

	_, err := Resolve("metal")
	assert.ErrorIs(t, err, ErrBackendNotAvailable)
}

// =============================================================================
// Native backends
// =============================================================================

func TestNativeProbeNoop(t *testing.T) {
	b := NewVulkan(WithHAL(noop.API{}))
	defer b.Release()

	adapters, err := b.Probe()
	require.NoError(t, err)
	require.Len(t, adapters, 1)

	a := adapters[0]
	assert.Equal(t, "Noop Adapter", a.Info.Name)
	assert.Equal(t, gpucontext.AdapterTypeUnknown, a.Info.Type)
	assert.Equal(t, "noop-1.0", a.GPU.Driver)
	require.NotNil(t, a.Native)

	// Reported values win, the rest come from the Vulkan defaults.
	v, ok := a.Limits.Lookup(limits.MaxTextureSize2D)
	require.True(t, ok)
	assert.Equal(t, uint64(8192), v.Scalar)
	v, ok = a.Limits.Lookup(limits.MinTexelBufferOffsetAlignment)
	require.True(t, ok)
	assert.Equal(t, uint64(16), v.Scalar)

	// WebGPU defaults do not meet the baseline.
	_, err = limits.Validate(a.Limits)
	assert.ErrorIs(t, err, limits.ErrDeviceRejected)
}

func TestNativeAdapterFormats(t *testing.T) {
	b := NewDX12(WithHAL(noop.API{}))
	defer b.Release()
	adapters, err := b.Probe()
	require.NoError(t, err)
	a := adapters[0]

	assert.True(t, a.SupportsFormat(format.R8G8B8A8UNorm, format.UsageSampled|format.UsageRenderTarget))
	assert.False(t, a.SupportsFormat(format.R8G8B8A8UNorm, format.UsageDepthStencil))
	assert.True(t, a.SupportsFormat(format.D32SFloat, format.UsageDepthStencil))
	assert.False(t, a.SupportsFormat(format.D32SFloat, format.UsageStorage))
	assert.False(t, a.SupportsFormat(format.R8G8B8A8Typeless, format.UsageSampled))
	assert.False(t, a.SupportsFormat(format.R8G8B8A8UNorm, 0))
}

// sampledOnly reports sampling support and nothing else.
type sampledOnly struct{ noop.Adapter }

func (sampledOnly) TextureFormatCapabilities(gputypes.TextureFormat) hal.TextureFormatCapabilities {
	return hal.TextureFormatCapabilities{Flags: hal.TextureFormatCapabilitySampled}
}

func TestFromExposedIntersectsMatrix(t *testing.T) {
	e := hal.ExposedAdapter{
		Adapter: &sampledOnly{},
		Info: gputypes.AdapterInfo{
			Name:       "Sampler",
			DeviceType: gputypes.DeviceTypeDiscreteGPU,
		},
		Capabilities: hal.Capabilities{Limits: gputypes.DefaultLimits()},
	}
	a := FromExposed(e, limits.DefaultVulkanLimits())
	assert.Equal(t, gpucontext.AdapterTypeDiscrete, a.Info.Type)
	assert.Equal(t, 0, a.Rank())

	u := a.FormatUsage(format.R32SFloat)
	assert.Equal(t, format.UsageSampled|format.UsageConstantTexelBuffer, u)
	assert.False(t, a.SupportsFormat(format.R32SFloat, format.UsageRenderTarget))
}

// dx12HALLimits is what hal/dx12 reports for a feature level 12_0 adapter.
func dx12HALLimits() gputypes.Limits {
	l := gputypes.DefaultLimits()
	l.MaxTextureDimension2D = 16384
	l.MaxTextureDimension3D = 2048
	l.MaxBindGroups = 4
	l.MaxSampledTexturesPerShaderStage = 128
	l.MaxSamplersPerShaderStage = 16
	l.MaxStorageBuffersPerShaderStage = 64
	l.MaxStorageTexturesPerShaderStage = 64
	l.MaxUniformBuffersPerShaderStage = 14
	l.MaxBufferSize = 128 << 30
	l.MaxUniformBufferBindingSize = 65536
	l.MaxComputeWorkgroupStorageSize = 32768
	l.MaxComputeInvocationsPerWorkgroup = 1024
	l.MaxComputeWorkgroupSizeX = 1024
	l.MaxComputeWorkgroupSizeY = 1024
	l.MaxComputeWorkgroupSizeZ = 64
	l.MaxComputeWorkgroupsPerDimension = 65535
	return l
}

// vulkanHALLimits is what hal/vulkan reports for a current desktop GPU.
func vulkanHALLimits() gputypes.Limits {
	l := gputypes.DefaultLimits()
	l.MaxTextureDimension1D = 32768
	l.MaxTextureDimension2D = 32768
	l.MaxTextureDimension3D = 16384
	l.MaxTextureArrayLayers = 2048
	l.MaxBindGroups = 8
	l.MaxSampledTexturesPerShaderStage = 1_048_576
	l.MaxSamplersPerShaderStage = 1_048_576
	l.MaxStorageBuffersPerShaderStage = 1_048_576
	l.MaxStorageTexturesPerShaderStage = 1_048_576
	l.MaxUniformBuffersPerShaderStage = 1_048_576
	l.MaxUniformBufferBindingSize = 65536
	l.MaxStorageBufferBindingSize = 1<<32 - 1
	l.MinUniformBufferOffsetAlignment = 64
	l.MinStorageBufferOffsetAlignment = 16
	l.MaxVertexAttributes = 32
	l.MaxVertexBufferArrayStride = 2048
	l.MaxColorAttachments = 8
	l.MaxComputeWorkgroupStorageSize = 49152
	l.MaxComputeInvocationsPerWorkgroup = 1024
	l.MaxComputeWorkgroupSizeX = 1024
	l.MaxComputeWorkgroupSizeY = 1024
	l.MaxComputeWorkgroupSizeZ = 64
	l.MaxComputeWorkgroupsPerDimension = 2_147_483_647
	l.MaxPushConstantSize = 256
	return l
}

func TestFromExposedNativeLimits(t *testing.T) {
	tests := []struct {
		name     string
		backend  gputypes.Backend
		limits   gputypes.Limits
		align    hal.Alignments
		defaults limits.RawDeviceLimits
	}{
		{"dx12", gputypes.BackendDX12, dx12HALLimits(),
			hal.Alignments{BufferCopyOffset: 512, BufferCopyPitch: 256}, limits.DefaultDX12Limits()},
		{"vulkan", gputypes.BackendVulkan, vulkanHALLimits(),
			hal.Alignments{BufferCopyOffset: 4, BufferCopyPitch: 256}, limits.DefaultVulkanLimits()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := hal.ExposedAdapter{
				Adapter: &noop.Adapter{},
				Info: gputypes.AdapterInfo{
					Name:       tt.name + " GPU",
					DeviceType: gputypes.DeviceTypeDiscreteGPU,
					Backend:    tt.backend,
				},
				Capabilities: hal.Capabilities{Limits: tt.limits, AlignmentsMask: tt.align},
			}
			a := FromExposed(e, tt.defaults)

			set, err := limits.Validate(a.Limits)
			require.NoError(t, err)
			assert.Equal(t, uint64(16384), set.Scalar(limits.MaxTextureSize2D))
			assert.Equal(t, uint64(1_048_576), set.Scalar(limits.MaxPerStageSamplers))
			assert.Equal(t, uint64(32), set.Scalar(limits.MaxPipelineBoundDescriptors))
		})
	}
}

func TestFromExposedNativeShortfallRejected(t *testing.T) {
	l := vulkanHALLimits()
	l.MaxSamplersPerShaderStage = 4000
	e := hal.ExposedAdapter{
		Adapter: &noop.Adapter{},
		Info: gputypes.AdapterInfo{
			Name:    "Small GPU",
			Backend: gputypes.BackendVulkan,
		},
		Capabilities: hal.Capabilities{Limits: l},
	}
	a := FromExposed(e, limits.DefaultVulkanLimits())

	_, err := limits.Validate(a.Limits)
	var rejected *limits.DeviceRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, []limits.Name{limits.MaxPerStageSamplers}, rejected.Names())
}

// recordingHAL captures the instance descriptor.
type recordingHAL struct {
	noop.API
	desc *hal.InstanceDescriptor
}

func (r *recordingHAL) CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error) {
	r.desc = desc
	return r.API.CreateInstance(desc)
}

func TestNativeConfigure(t *testing.T) {
	rec := &recordingHAL{}
	b := NewVulkan(WithHAL(rec))
	defer b.Release()

	s := config.Default()
	s.Debug.Enable = true
	s.Debug.Validation = true
	b.Configure(s)

	_, err := b.Probe()
	require.NoError(t, err)
	require.NotNil(t, rec.desc)
	assert.Equal(t, s.InstanceFlags(), rec.desc.Flags)
	assert.True(t, rec.desc.Backends.Contains(gputypes.BackendVulkan))
}

func TestNativeConfigureWarnsUnsupported(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	s := config.Default()
	s.Debug.DCQS = true
	s.Debug.Performance = true
	s.Vulkan.AdditionalLayers = []string{"VK_LAYER_LUNARG_api_dump"}
	NewVulkan(WithHAL(&recordingHAL{})).Configure(s)

	out := buf.String()
	assert.Contains(t, out, "debug switches are not supported")
	assert.Contains(t, out, "dcqs")
	assert.Contains(t, out, "performance")
	assert.Contains(t, out, "additional vulkan layers")

	buf.Reset()
	NewVulkan(WithHAL(&recordingHAL{})).Configure(config.Default())
	assert.Empty(t, buf.String())
}

// emptyInstance exposes no adapters.
type emptyInstance struct{ noop.Instance }

func (emptyInstance) EnumerateAdapters(hal.Surface) []hal.ExposedAdapter { return nil }

type emptyHAL struct{ noop.API }

func (emptyHAL) CreateInstance(*hal.InstanceDescriptor) (hal.Instance, error) {
	return &emptyInstance{}, nil
}

func TestProbeNoAdapters(t *testing.T) {
	_, _, err := ProbeHAL(emptyHAL{}, &hal.InstanceDescriptor{}, limits.DefaultVulkanLimits())
	assert.ErrorIs(t, err, ErrNoAdapters)
}

func TestNativeMissingHAL(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("dx12 hal backend is compiled in on windows")
	}
	b := NewDX12()
	_, err := b.Probe()
	assert.ErrorIs(t, err, ErrBackendNotAvailable)
}

func TestNativeOpen(t *testing.T) {
	b := NewVulkan(WithHAL(noop.API{}))
	defer b.Release()
	adapters, err := b.Probe()
	require.NoError(t, err)

	od, err := b.Open(adapters[0])
	require.NoError(t, err)
	assert.NotNil(t, od.Device)
	assert.NotNil(t, od.Queue)

	_, err = b.Open(Adapter{})
	assert.ErrorIs(t, err, ErrNoNativeAdapter)
}

func TestNativeFenceRealization(t *testing.T) {
	r, err := NewDX12().NewFenceRealization(3)
	require.NoError(t, err)
	assert.Equal(t, "d3d12-fence", r.Kind())
	assert.Equal(t, uint64(3), r.Completed())

	r, err = NewVulkan().NewFenceRealization(0)
	require.NoError(t, err)
	assert.Equal(t, "vk-timeline-semaphore", r.Kind())
}

func TestNativeDeviceFence(t *testing.T) {
	dev := &noop.Device{}

	r, err := NewDX12().NewDeviceFence(dev, 4)
	require.NoError(t, err)
	assert.Equal(t, "hal-fence", r.Kind())
	assert.Equal(t, uint64(4), r.Completed())
	r.Destroy()

	// hal/vulkan fences are binary, so the timeline stays.
	r, err = NewVulkan().NewDeviceFence(dev, 4)
	require.NoError(t, err)
	assert.Equal(t, "vk-timeline-semaphore", r.Kind())
	assert.Equal(t, uint64(4), r.Completed())
}

func TestNativeDefaultLimitsMeetBaseline(t *testing.T) {
	for _, b := range []*Native{NewDX12(), NewVulkan()} {
		_, err := limits.Validate(b.DefaultLimits())
		assert.NoError(t, err, b.Name())
	}
}

// =============================================================================
// Software
// =============================================================================

func TestSoftwareNotImplemented(t *testing.T) {
	b := Get(NameSoftware)
	require.NotNil(t, b)

	_, err := b.Probe()
	assert.ErrorIs(t, err, ErrNotImplemented)
	_, err = b.NewFenceRealization(0)
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.False(t, b.SupportsFormat(format.R8G8B8A8UNorm, format.UsageSampled))

	_, err = limits.Validate(b.DefaultLimits())
	assert.NoError(t, err)
}

// =============================================================================
// Adapters
// =============================================================================

func TestAdapterWithFormats(t *testing.T) {
	a := Adapter{}
	assert.True(t, a.SupportsFormat(format.BC7UNorm, format.UsageSampled), "nil table falls back to the matrix")

	a = a.WithFormats(map[format.Format]format.Usage{
		format.BC7UNorm: format.UsageSampled | format.UsageRenderTarget,
	})
	assert.Equal(t, format.UsageSampled, a.FormatUsage(format.BC7UNorm))
	assert.Zero(t, a.FormatUsage(format.R8UNorm))
}

func TestAdapterRank(t *testing.T) {
	tests := []struct {
		typ  gpucontext.AdapterType
		want int
	}{
		{gpucontext.AdapterTypeDiscrete, 0},
		{gpucontext.AdapterTypeIntegrated, 1},
		{gpucontext.AdapterTypeUnknown, 2},
		{gpucontext.AdapterTypeSoftware, 3},
	}
	for _, tt := range tests {
		a := Adapter{Info: gpucontext.AdapterInfo{Type: tt.typ}}
		if got := a.Rank(); got != tt.want {
			t.Errorf("Rank(%v) = %d, want %d", tt.typ, got, tt.want)
		}
	}
}
