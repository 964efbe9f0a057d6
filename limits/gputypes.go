package limits

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// FromGPUTypes maps the limits a hal adapter exposes onto limit names. Only
// exposed limits are set; combine with WithDefaults to fill the rest.
//
// The DX12 and Vulkan hal backends start from gputypes.DefaultLimits and cap
// several values at the WebGPU maximum. For those backends only the values
// queried from the native API are mapped. Any other backend is mapped in
// full.
func FromGPUTypes(adapter string, b gputypes.Backend, l gputypes.Limits, a hal.Alignments) RawDeviceLimits {
	r := NewRawDeviceLimits(adapter)

	// Queried on every backend.
	r.Set(MaxTextureSize2D, Scalar(uint64(l.MaxTextureDimension2D)))
	r.Set(MaxTextureSize3D, Scalar(uint64(l.MaxTextureDimension3D)))
	r.Set(MaxConstantBufferSize, Scalar(l.MaxUniformBufferBindingSize))
	r.Set(OptimalCopyOffsetAlignment, Scalar(a.BufferCopyOffset))
	r.Set(OptimalCopyRowPitchAlignment, Scalar(a.BufferCopyPitch))
	r.Set(MaxComputeSharedMemory, Scalar(uint64(l.MaxComputeWorkgroupStorageSize)))
	r.Set(MaxComputeWorkgroupInvocations, Scalar(uint64(l.MaxComputeInvocationsPerWorkgroup)))
	r.Set(MaxComputeWorkgroupSize, Vec(
		uint64(l.MaxComputeWorkgroupSizeX),
		uint64(l.MaxComputeWorkgroupSizeY),
		uint64(l.MaxComputeWorkgroupSizeZ)))
	n := uint64(l.MaxComputeWorkgroupsPerDimension)
	r.Set(MaxComputeWorkgroupCount, Vec(n, n, n))

	switch b {
	case gputypes.BackendDX12:
		// Cube faces follow the 2D limit at every feature level.
		r.Set(MaxTextureSizeCube, Scalar(uint64(l.MaxTextureDimension2D)))
		return r
	case gputypes.BackendVulkan:
		setVulkanQueried(r, l)
		return r
	}

	setVulkanQueried(r, l)
	r.Set(MaxTextureSizeCube, Scalar(uint64(l.MaxTextureDimension2D)))
	r.Set(MaxPipelineDynamicConstantBuffers, Scalar(uint64(l.MaxDynamicUniformBuffersPerPipelineLayout)))
	r.Set(MaxPipelineDynamicStorageBuffers, Scalar(uint64(l.MaxDynamicStorageBuffersPerPipelineLayout)))
	r.Set(MaxPipelineBoundDescriptors, Scalar(uint64(l.MaxBindGroups)))
	r.Set(MaxVertexInputAttributes, Scalar(uint64(l.MaxVertexAttributes)))
	r.Set(MaxVertexInputBuffers, Scalar(uint64(l.MaxVertexBuffers)))
	r.Set(MaxVertexInputAttributeStride, Scalar(uint64(l.MaxVertexBufferArrayStride)))
	// Inter-stage variables are vec4 slots.
	r.Set(MaxVertexOutputComponents, Scalar(uint64(l.MaxInterStageShaderVariables)*4))
	r.Set(MaxPixelInputComponents, Scalar(uint64(l.MaxInterStageShaderVariables)*4))
	r.Set(MaxRenderTargets, Scalar(uint64(l.MaxColorAttachments)))
	return r
}

// setVulkanQueried sets the values hal/vulkan copies from
// VkPhysicalDeviceLimits without a WebGPU cap.
func setVulkanQueried(r RawDeviceLimits, l gputypes.Limits) {
	r.Set(MaxTextureSize1D, Scalar(uint64(l.MaxTextureDimension1D)))
	r.Set(MaxTextureLayers1D, Scalar(uint64(l.MaxTextureArrayLayers)))
	r.Set(MaxTextureLayers2D, Scalar(uint64(l.MaxTextureArrayLayers)))

	r.Set(MaxStorageBufferSize, Scalar(l.MaxStorageBufferBindingSize))
	r.Set(MinConstantBufferOffsetAlignment, Scalar(uint64(l.MinUniformBufferOffsetAlignment)))
	r.Set(MinStorageBufferOffsetAlignment, Scalar(uint64(l.MinStorageBufferOffsetAlignment)))

	r.Set(MaxPerStageSamplers, Scalar(uint64(l.MaxSamplersPerShaderStage)))
	r.Set(MaxPerStageConstantBuffers, Scalar(uint64(l.MaxUniformBuffersPerShaderStage)))
	r.Set(MaxPerStageStorageBuffers, Scalar(uint64(l.MaxStorageBuffersPerShaderStage)))
	r.Set(MaxPerStageSampledTextures, Scalar(uint64(l.MaxSampledTexturesPerShaderStage)))
	r.Set(MaxPerStageStorageTextures, Scalar(uint64(l.MaxStorageTexturesPerShaderStage)))
	r.Set(MaxPipelinePushConstantSize, Scalar(uint64(l.MaxPushConstantSize)))
}

// DefaultDX12Limits returns the limits a feature level 12_1, resource binding
// tier 3 device guarantees for everything hal does not expose.
func DefaultDX12Limits() RawDeviceLimits {
	r := BaselineLimits("dx12 defaults")
	r.Set(MaxStorageBufferSize, Scalar(2*gib))
	r.Set(MaxPipelineSamplers, Scalar(2048))
	r.Set(MaxPipelinePushConstantSize, Scalar(256))
	r.Set(MaxSampleCount, Scalar(32))
	r.Set(MaxRaytraceRecursionDepth, Scalar(31))
	r.Set(MaxRaytraceHitgroupStride, Scalar(4096))
	r.Set(MaxRenderTargetViews, Scalar(1_000_000))
	r.Set(MaxDepthStencilViews, Scalar(1_000_000))
	return r
}

// DefaultVulkanLimits returns common desktop Vulkan 1.3 limits for everything
// hal does not expose.
func DefaultVulkanLimits() RawDeviceLimits {
	r := BaselineLimits("vulkan defaults")
	r.Set(MaxTexelBufferElements, Scalar(1<<28))
	r.Set(MinTexelBufferOffsetAlignment, Scalar(16))
	r.Set(MinCoherentMemoryMapAlignment, Scalar(64))
	r.Set(MaxPerStageResources, Scalar(4_294_967_295))
	r.Set(MaxVertexInputAttributeOffset, Scalar(4095))
	r.Set(MaxViewportSize, Vec(32768, 32768, 0))
	r.Set(ViewportBoundsRange, Span(-65536, 65535))
	r.Set(SamplerLODBiasRange, Span(-16, 16))
	r.Set(MaxRaytraceRecursionDepth, Scalar(31))
	r.Set(MaxMeshOutputVertices, Scalar(256))
	r.Set(MaxMeshOutputPrimitives, Scalar(512))
	return r
}
