package limits

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaselineIsCopy(t *testing.T) {
	a := Baseline()
	a[0].Baseline = Scalar(1)
	b := Baseline()
	assert.Equal(t, Scalar(16384), b[0].Baseline)
}

func TestBaselineNamesUnique(t *testing.T) {
	seen := make(map[Name]bool)
	for _, e := range Baseline() {
		assert.False(t, seen[e.Name], "duplicate %s", e.Name)
		seen[e.Name] = true
		got, ok := BaselineEntry(e.Name)
		require.True(t, ok)
		assert.Equal(t, e, got)
	}
}

func TestValidateExactBaseline(t *testing.T) {
	set, err := Validate(BaselineLimits("exact"))
	require.NoError(t, err)
	assert.Equal(t, len(Baseline()), set.Len())
	assert.Empty(t, set.Diagnostics())
	assert.Equal(t, "exact", set.Adapter())

	assert.Equal(t, uint64(64*kib), set.Scalar(MaxConstantBufferSize))
	assert.Equal(t, [3]uint64{1024, 1024, 64}, set.Vector(MaxComputeWorkgroupSize))
	lo, hi := set.Range(ShaderTexelOffsetRange)
	assert.Equal(t, int64(-8), lo)
	assert.Equal(t, int64(7), hi)
}

func TestValidateNormalizesToBaseline(t *testing.T) {
	raw := BaselineLimits("roomy")
	raw.Set(MaxTextureSize2D, Scalar(32768))
	raw.Set(MinConstantBufferOffsetAlignment, Scalar(16))
	raw.Set(MaxComputeWorkgroupSize, Vec(2048, 2048, 2048))
	raw.Set(ViewportBoundsRange, Span(-65536, 65535))

	set, err := Validate(raw)
	require.NoError(t, err)

	assert.Equal(t, uint64(16384), set.Scalar(MaxTextureSize2D))
	assert.Equal(t, uint64(64), set.Scalar(MinConstantBufferOffsetAlignment))
	assert.Equal(t, [3]uint64{1024, 1024, 64}, set.Vector(MaxComputeWorkgroupSize))
	lo, hi := set.Range(ViewportBoundsRange)
	assert.Equal(t, int64(-32768), lo)
	assert.Equal(t, int64(32767), hi)

	b, ok := set.Get(MaxTextureSize2D)
	require.True(t, ok)
	assert.Equal(t, uint64(32768), b.Reported.Scalar)
}

func TestValidateReportsEveryFailure(t *testing.T) {
	raw := BaselineLimits("weak")
	raw.Set(MaxConstantBufferSize, Scalar(64*kib-1))
	raw.Set(MaxTextureSize2D, Scalar(8192))
	delete(raw.Values, MaxRenderTargets)

	_, err := Validate(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeviceRejected))

	var rejected *DeviceRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, "weak", rejected.Adapter)
	// Baseline order, not insertion order.
	assert.Equal(t, []Name{MaxTextureSize2D, MaxConstantBufferSize, MaxRenderTargets}, rejected.Names())
	assert.True(t, rejected.Failing[2].Missing)

	report := rejected.Report()
	assert.Contains(t, report, "3 baseline limits")
	assert.Contains(t, report, string(MaxConstantBufferSize))
	assert.Contains(t, report, "16,384")
	assert.Contains(t, report, "not reported")
}

func TestValidateBoundaryInclusive(t *testing.T) {
	for _, e := range Baseline() {
		if e.Provenance != Hard || e.Kind != AtLeast {
			continue
		}
		raw := BaselineLimits("boundary")
		_, err := Validate(raw)
		require.NoError(t, err, "exact baseline for %s", e.Name)

		raw.Set(e.Name, Scalar(e.Baseline.Scalar-1))
		_, err = Validate(raw)
		var rejected *DeviceRejectedError
		require.True(t, errors.As(err, &rejected), "one below baseline for %s", e.Name)
		assert.Equal(t, []Name{e.Name}, rejected.Names())
	}
}

func TestValidateAlignment(t *testing.T) {
	tests := []struct {
		name     string
		reported uint64
		ok       bool
	}{
		{"equal", 64, true},
		{"finer", 16, true},
		{"zero", 0, true},
		{"coarser", 256, false},
		{"not a divisor", 48, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := BaselineLimits("align")
			raw.Set(MinStorageBufferOffsetAlignment, Scalar(tt.reported))
			_, err := Validate(raw)
			assert.Equal(t, tt.ok, err == nil, "err = %v", err)
		})
	}
}

func TestValidateRangeContainment(t *testing.T) {
	raw := BaselineLimits("range")
	raw.Set(ShaderTexelGatherOffsetRange, Span(-32, 30))
	_, err := Validate(raw)
	var rejected *DeviceRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, []Name{ShaderTexelGatherOffsetRange}, rejected.Names())
}

func TestValidateVectorPerComponent(t *testing.T) {
	raw := BaselineLimits("vector")
	raw.Set(MaxComputeWorkgroupCount, Vec(65535, 65535, 65534))
	_, err := Validate(raw)
	var rejected *DeviceRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, []Name{MaxComputeWorkgroupCount}, rejected.Names())
}

func TestSoftNeverBlocks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	raw := BaselineLimits("mesh-less")
	raw.Set(MaxMeshOutputVertices, Scalar(128))
	raw.Set(MaxSparseAddressSpaceSize, Scalar(1<<40-1-1))
	delete(raw.Values, MaxTaskInvocations)

	set, err := NewValidator(WithLogger(logger)).Validate(raw)
	require.NoError(t, err)

	// Soft values are kept as reported.
	assert.Equal(t, uint64(128), set.Scalar(MaxMeshOutputVertices))
	_, ok := set.Get(MaxTaskInvocations)
	assert.False(t, ok)

	diags := set.Diagnostics()
	require.Len(t, diags, 3)
	assert.Equal(t, MaxSparseAddressSpaceSize, diags[0].Name)
	assert.Equal(t, Informational, diags[0].Provenance)
	assert.Equal(t, MaxTaskInvocations, diags[1].Name)
	assert.True(t, diags[1].Missing)
	assert.Equal(t, MaxMeshOutputVertices, diags[2].Name)
	assert.Equal(t, Soft, diags[2].Provenance)

	out := buf.String()
	assert.Contains(t, out, "tier=soft")
	assert.Contains(t, out, "limit=max_mesh_output_vertices")
}

func TestWithBaseline(t *testing.T) {
	entries := []Entry{
		{Name: "a", Kind: AtLeast, Baseline: Scalar(10)},
		{Name: "b", Kind: AtMost, Baseline: Scalar(4)},
	}
	raw := NewRawDeviceLimits("custom")
	raw.Set("a", Scalar(10))
	raw.Set("b", Scalar(5))

	_, err := NewValidator(WithBaseline(entries)).Validate(raw)
	var rejected *DeviceRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, []Name{"b"}, rejected.Names())
	assert.True(t, strings.HasPrefix(err.Error(), "limits: device \"custom\" rejected"))
}

func TestNamesSorted(t *testing.T) {
	set, err := Validate(BaselineLimits("sorted"))
	require.NoError(t, err)
	names := set.Names()
	require.Len(t, names, set.Len())
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestFromGPUTypesWebGPUDefaultsRejected(t *testing.T) {
	raw := FromGPUTypes("webgpu", gputypes.BackendEmpty, gputypes.DefaultLimits(), hal.Alignments{BufferCopyOffset: 4, BufferCopyPitch: 256}).
		WithDefaults(DefaultVulkanLimits())
	assert.Equal(t, "webgpu", raw.Adapter)

	_, err := Validate(raw)
	var rejected *DeviceRejectedError
	require.True(t, errors.As(err, &rejected))

	names := rejected.Names()
	assert.Contains(t, names, MaxTextureSize2D)
	assert.Contains(t, names, MinConstantBufferOffsetAlignment)
	assert.Contains(t, names, MaxComputeWorkgroupInvocations)
	// 64 KiB constant buffers meet the baseline exactly.
	assert.NotContains(t, names, MaxConstantBufferSize)
	assert.NotContains(t, names, MaxTextureSize3D)
	assert.NotContains(t, names, OptimalCopyOffsetAlignment)
	assert.NotContains(t, names, OptimalCopyRowPitchAlignment)
}

func TestFromGPUTypesSkipsCappedLimits(t *testing.T) {
	capped := []Name{
		MaxPipelineBoundDescriptors,
		MaxVertexInputAttributes,
		MaxVertexInputBuffers,
		MaxVertexOutputComponents,
		MaxRenderTargets,
	}
	l := gputypes.DefaultLimits()

	dx12 := FromGPUTypes("dx12", gputypes.BackendDX12, l, hal.Alignments{})
	for _, name := range append(capped, MaxPerStageSamplers, MaxTextureSize1D, MaxStorageBufferSize) {
		_, ok := dx12.Lookup(name)
		assert.False(t, ok, "dx12 %s", name)
	}
	_, ok := dx12.Lookup(MaxTextureSize2D)
	assert.True(t, ok)

	vk := FromGPUTypes("vulkan", gputypes.BackendVulkan, l, hal.Alignments{})
	for _, name := range capped {
		_, ok := vk.Lookup(name)
		assert.False(t, ok, "vulkan %s", name)
	}
	v, ok := vk.Lookup(MaxPerStageSamplers)
	require.True(t, ok)
	assert.Equal(t, uint64(16), v.Scalar)

	// Backends without a native query map every field.
	other := FromGPUTypes("other", gputypes.BackendEmpty, l, hal.Alignments{})
	v, ok = other.Lookup(MaxPipelineBoundDescriptors)
	require.True(t, ok)
	assert.Equal(t, uint64(4), v.Scalar)
}

func TestBackendDefaultsAccepted(t *testing.T) {
	for _, raw := range []RawDeviceLimits{DefaultDX12Limits(), DefaultVulkanLimits()} {
		set, err := Validate(raw)
		require.NoError(t, err, raw.Adapter)
		assert.Equal(t, uint64(1), set.Scalar(MaxRaytraceRecursionDepth), raw.Adapter)
	}
}

func TestWithDefaultsPrefersReported(t *testing.T) {
	raw := NewRawDeviceLimits("gpu")
	raw.Set(MaxRenderTargets, Scalar(4))
	merged := raw.WithDefaults(DefaultDX12Limits())
	assert.Equal(t, "gpu", merged.Adapter)
	v, _ := merged.Lookup(MaxRenderTargets)
	assert.Equal(t, uint64(4), v.Scalar)
	_, ok := merged.Lookup(MaxTextureSize1D)
	assert.True(t, ok)
	// The input is untouched.
	assert.Len(t, raw.Values, 1)
}

func TestValueFormat(t *testing.T) {
	assert.Equal(t, "42", Scalar(42).Format(AtLeast))
	assert.Equal(t, "(1, 2, 3)", Vec(1, 2, 3).Format(Vector))
	assert.Equal(t, "[-8, 7]", Span(-8, 7).Format(Range))
	assert.Equal(t, "soft", Soft.String())
	assert.Equal(t, "Alignment", Alignment.String())
}
