package limits

import "github.com/gogpu/ral/format"

// Limit names.
const (
	MaxTextureSize1D   Name = "max_texture_size_1d"
	MaxTextureLayers1D Name = "max_texture_layers_1d"
	MaxTextureSize2D   Name = "max_texture_size_2d"
	MaxTextureLayers2D Name = "max_texture_layers_2d"
	MaxTextureSize3D   Name = "max_texture_size_3d"
	MaxTextureSizeCube Name = "max_texture_size_cube"

	MaxTexelBufferElements             Name = "max_texel_buffer_elements"
	MaxConstantBufferSize              Name = "max_constant_buffer_size"
	MaxStorageBufferSize               Name = "max_storage_buffer_size"
	MinTexelBufferOffsetAlignment      Name = "min_texel_buffer_offset_alignment"
	MinConstantBufferOffsetAlignment   Name = "min_constant_buffer_offset_alignment"
	MinStorageBufferOffsetAlignment    Name = "min_storage_buffer_offset_alignment"
	MinCoherentMemoryMapAlignment      Name = "min_coherent_memory_map_alignment"
	ConstantBufferSizeAlignment        Name = "constant_buffer_size_alignment"
	OptimalCopyOffsetAlignment         Name = "optimal_copy_offset_alignment"
	OptimalCopyRowPitchAlignment       Name = "optimal_copy_row_pitch_alignment"
	MaxSparseAddressSpaceSize          Name = "max_sparse_address_space_size"
	MaxPerStageSamplers                Name = "max_per_stage_samplers"
	MaxPerStageConstantBuffers         Name = "max_per_stage_constant_buffers"
	MaxPerStageStorageBuffers          Name = "max_per_stage_storage_buffers"
	MaxPerStageSampledTextures         Name = "max_per_stage_sampled_textures"
	MaxPerStageStorageTextures         Name = "max_per_stage_storage_textures"
	MaxPerStageInputAttachments        Name = "max_per_stage_input_attachments"
	MaxPerStageInlineDescriptors       Name = "max_per_stage_inline_descriptors"
	MaxPerStageResources               Name = "max_per_stage_resources"
	MaxDescriptorArraySize             Name = "max_descriptor_array_size"
	MaxBindlessArraySize               Name = "max_bindless_array_size"
	MaxPipelineSamplers                Name = "max_pipeline_samplers"
	MaxPipelineDynamicConstantBuffers  Name = "max_pipeline_dynamic_constant_buffers"
	MaxPipelineDynamicStorageBuffers   Name = "max_pipeline_dynamic_storage_buffers"
	MaxPipelineInlineDescriptorSize    Name = "max_pipeline_inline_descriptor_block_size"
	MaxPipelineBoundDescriptors        Name = "max_pipeline_bound_descriptors"
	MaxPipelinePushConstantSize        Name = "max_pipeline_push_constant_size"
	ShaderTexelOffsetRange             Name = "shader_texel_offset_range"
	ShaderTexelGatherOffsetRange       Name = "shader_texel_gather_offset_range"
	MaxVertexInputAttributes           Name = "max_vertex_input_attributes"
	MaxVertexInputBuffers              Name = "max_vertex_input_buffers"
	MaxVertexInputAttributeOffset      Name = "max_vertex_input_attribute_offset"
	MaxVertexInputAttributeStride      Name = "max_vertex_input_attribute_stride"
	MaxVertexOutputComponents          Name = "max_vertex_output_components"
	MaxPixelInputComponents            Name = "max_pixel_input_components"
	MaxRenderTargets                   Name = "max_render_targets"
	MaxPixelDualSrcOutputAttachments   Name = "max_pixel_dual_src_output_attachments"
	MaxComputeSharedMemory             Name = "max_compute_shared_memory"
	MaxComputeWorkgroupCount           Name = "max_compute_workgroup_count"
	MaxComputeWorkgroupInvocations     Name = "max_compute_workgroup_invocations"
	MaxComputeWorkgroupSize            Name = "max_compute_workgroup_size"
	MaxViewportCount                   Name = "max_viewport_count"
	MaxViewportSize                    Name = "max_viewport_size"
	ViewportBoundsRange                Name = "viewport_bounds_range"
	MinViewportSubpixelPrecision       Name = "min_viewport_subpixel_precision"
	MaxMultiviewViewCount              Name = "max_multiview_view_count"
	MaxSampleCount                     Name = "max_sample_count"
	MaxSamplerAllocationCount          Name = "max_sampler_allocation_count"
	SamplerLODBiasRange                Name = "sampler_lod_bias_range"
	MaxSamplerAnisotropy               Name = "max_sampler_anisotropy"
	MaxClipOrCullDistances             Name = "max_clip_or_cull_distances"
	MaxTaskPayloadSize                 Name = "max_task_payload_size"
	MaxTaskInvocations                 Name = "max_task_invocations"
	MaxTaskWorkgroupSize               Name = "max_task_workgroup_size"
	MaxMeshGroupsharedSize             Name = "max_mesh_groupshared_size"
	MaxMeshOutputSize                  Name = "max_mesh_output_size"
	MaxMeshInvocations                 Name = "max_mesh_invocations"
	MaxMeshWorkgroupSize               Name = "max_mesh_workgroup_size"
	MaxMeshOutputVertices              Name = "max_mesh_output_vertices"
	MaxMeshOutputPrimitives            Name = "max_mesh_output_primitives"
	MaxRaytraceGeometryCount           Name = "max_raytrace_geometry_count"
	MaxRaytraceInstanceCount           Name = "max_raytrace_instance_count"
	MaxRaytracePrimitiveCount          Name = "max_raytrace_primitive_count"
	MaxRaytraceInvocations             Name = "max_raytrace_invocations"
	MaxRaytraceRecursionDepth          Name = "max_raytrace_recursion_depth"
	MaxRaytraceHitAttributeSize        Name = "max_raytrace_hit_attribute_size"
	MinRaytraceScratchAlignment        Name = "min_raytrace_scratch_alignment"
	MaxRaytraceHitgroupStride          Name = "max_raytrace_hitgroup_stride"
	MinRaytraceHitgroupBaseAlignment   Name = "min_raytrace_hitgroup_base_alignment"
	MinRaytraceHitgroupHandleAlignment Name = "min_raytrace_hitgroup_handle_alignment"
	MaxRenderTargetViews               Name = "max_render_target_views"
	MaxDepthStencilViews               Name = "max_depth_stencil_views"
)

const (
	kib = 1 << 10
	gib = 1 << 30
)

func hard(n Name, k Kind, v Value, doc string) Entry {
	return Entry{Name: n, Kind: k, Provenance: Hard, Baseline: v, Doc: doc}
}

func soft(n Name, k Kind, v Value, doc string) Entry {
	return Entry{Name: n, Kind: k, Provenance: Soft, Baseline: v, Doc: doc}
}

// baseline is built once at package init and never mutated.
var baseline = []Entry{
	// Textures
	hard(MaxTextureSize1D, AtLeast, Scalar(format.MaxTextureSize1D), "maximum 1D texture width"),
	hard(MaxTextureLayers1D, AtLeast, Scalar(format.MaxTextureLayers1D), "maximum 1D texture array layers"),
	hard(MaxTextureSize2D, AtLeast, Scalar(format.MaxTextureSize2D), "maximum 2D texture width and height"),
	hard(MaxTextureLayers2D, AtLeast, Scalar(format.MaxTextureLayers2D), "maximum 2D texture array layers"),
	hard(MaxTextureSize3D, AtLeast, Scalar(format.MaxTextureSize3D), "maximum 3D texture extent"),
	hard(MaxTextureSizeCube, AtLeast, Scalar(format.MaxTextureSizeCube), "maximum cube texture face size"),

	// Buffers and alignment
	hard(MaxTexelBufferElements, AtLeast, Scalar(1<<27), "maximum texel buffer elements"),
	hard(MaxConstantBufferSize, AtLeast, Scalar(64*kib), "maximum constant buffer size in bytes"),
	hard(MaxStorageBufferSize, AtLeast, Scalar(gib), "maximum storage buffer size in bytes"),
	hard(MinTexelBufferOffsetAlignment, Alignment, Scalar(64), "texel buffer offset alignment"),
	hard(MinConstantBufferOffsetAlignment, Alignment, Scalar(64), "constant buffer offset alignment"),
	hard(MinStorageBufferOffsetAlignment, Alignment, Scalar(64), "storage buffer offset alignment"),
	hard(MinCoherentMemoryMapAlignment, Alignment, Scalar(128), "coherent memory map alignment"),
	hard(ConstantBufferSizeAlignment, Alignment, Scalar(256), "constant buffer size alignment"),
	hard(OptimalCopyOffsetAlignment, Alignment, Scalar(512), "buffer to texture copy offset alignment"),
	hard(OptimalCopyRowPitchAlignment, Alignment, Scalar(256), "buffer to texture copy row pitch alignment"),
	{Name: MaxSparseAddressSpaceSize, Kind: AtLeast, Provenance: Informational, Baseline: Scalar(1024*gib - 1), Doc: "sparse address space in bytes"},

	// Per-stage descriptors
	hard(MaxPerStageSamplers, AtLeast, Scalar(1_048_576), "samplers per shader stage"),
	hard(MaxPerStageConstantBuffers, AtLeast, Scalar(1_048_576), "constant buffers per shader stage"),
	hard(MaxPerStageStorageBuffers, AtLeast, Scalar(1_048_576), "storage buffers per shader stage"),
	hard(MaxPerStageSampledTextures, AtLeast, Scalar(1_048_576), "sampled textures per shader stage"),
	hard(MaxPerStageStorageTextures, AtLeast, Scalar(1_048_576), "storage textures per shader stage"),
	hard(MaxPerStageInputAttachments, AtLeast, Scalar(7), "input attachments per shader stage"),
	hard(MaxPerStageInlineDescriptors, AtLeast, Scalar(4), "inline descriptors per shader stage"),
	hard(MaxPerStageResources, AtLeast, Scalar(8_388_606), "resources per shader stage"),
	soft(MaxDescriptorArraySize, AtLeast, Scalar(16), "descriptor array size, engine chosen"),
	soft(MaxBindlessArraySize, AtLeast, Scalar(1024), "unbounded bindless range size, engine chosen"),

	// Pipeline descriptors
	hard(MaxPipelineSamplers, AtLeast, Scalar(2048), "samplers per pipeline layout"),
	hard(MaxPipelineDynamicConstantBuffers, AtLeast, Scalar(8), "dynamic constant buffers per pipeline layout"),
	hard(MaxPipelineDynamicStorageBuffers, AtLeast, Scalar(8), "dynamic storage buffers per pipeline layout"),
	hard(MaxPipelineInlineDescriptorSize, AtLeast, Scalar(256), "inline descriptor block size in bytes"),
	hard(MaxPipelineBoundDescriptors, AtLeast, Scalar(32), "bound descriptor tables"),
	hard(MaxPipelinePushConstantSize, AtLeast, Scalar(128), "push constant size in bytes"),

	// Shader offsets
	hard(ShaderTexelOffsetRange, Range, Span(-8, 7), "texel fetch offset range"),
	hard(ShaderTexelGatherOffsetRange, Range, Span(-32, 31), "texel gather offset range"),

	// Vertex and pixel stages
	hard(MaxVertexInputAttributes, AtLeast, Scalar(32), "vertex input attributes"),
	hard(MaxVertexInputBuffers, AtLeast, Scalar(32), "vertex input buffers"),
	hard(MaxVertexInputAttributeOffset, AtLeast, Scalar(2047), "vertex attribute offset in bytes"),
	hard(MaxVertexInputAttributeStride, AtLeast, Scalar(2048), "vertex buffer stride in bytes"),
	hard(MaxVertexOutputComponents, AtLeast, Scalar(128), "vertex output components"),
	hard(MaxPixelInputComponents, AtLeast, Scalar(128), "pixel input components"),
	hard(MaxRenderTargets, AtLeast, Scalar(8), "simultaneous render targets"),
	hard(MaxPixelDualSrcOutputAttachments, AtLeast, Scalar(1), "dual source blend attachments"),

	// Compute
	hard(MaxComputeSharedMemory, AtLeast, Scalar(32*kib), "compute groupshared memory in bytes"),
	hard(MaxComputeWorkgroupCount, Vector, Vec(65535, 65535, 65535), "dispatch size per dimension"),
	hard(MaxComputeWorkgroupInvocations, AtLeast, Scalar(1024), "invocations per workgroup"),
	hard(MaxComputeWorkgroupSize, Vector, Vec(1024, 1024, 64), "workgroup size per dimension"),

	// Viewports
	hard(MaxViewportCount, AtLeast, Scalar(16), "viewports"),
	hard(MaxViewportSize, Vector, Vec(16384, 16384, 0), "viewport width and height"),
	hard(ViewportBoundsRange, Range, Span(-32768, 32767), "viewport bounds"),
	hard(MinViewportSubpixelPrecision, AtLeast, Scalar(8), "viewport sub-pixel precision bits"),
	hard(MaxMultiviewViewCount, AtLeast, Scalar(4), "multiview views"),

	// Sampling
	hard(MaxSampleCount, AtLeast, Scalar(16), "multisample count"),
	hard(MaxSamplerAllocationCount, AtLeast, Scalar(4000), "live sampler objects"),
	hard(SamplerLODBiasRange, Range, Span(-15, 15), "sampler LOD bias"),
	hard(MaxSamplerAnisotropy, AtLeast, Scalar(16), "sampler anisotropy"),
	hard(MaxClipOrCullDistances, AtLeast, Scalar(8), "clip or cull distances"),

	// Mesh and task shaders diverge between vendors.
	soft(MaxTaskPayloadSize, AtLeast, Scalar(16*kib), "task payload in bytes"),
	soft(MaxTaskInvocations, AtLeast, Scalar(128), "task invocations per workgroup"),
	soft(MaxTaskWorkgroupSize, Vector, Vec(128, 128, 128), "task workgroup size"),
	soft(MaxMeshGroupsharedSize, AtLeast, Scalar(28*kib), "mesh groupshared memory in bytes"),
	soft(MaxMeshOutputSize, AtLeast, Scalar(32*kib), "mesh output memory in bytes"),
	soft(MaxMeshInvocations, AtLeast, Scalar(128), "mesh invocations per workgroup"),
	soft(MaxMeshWorkgroupSize, Vector, Vec(128, 128, 128), "mesh workgroup size"),
	soft(MaxMeshOutputVertices, AtLeast, Scalar(256), "mesh output vertices"),
	soft(MaxMeshOutputPrimitives, AtLeast, Scalar(256), "mesh output primitives"),

	// Raytracing
	hard(MaxRaytraceGeometryCount, AtLeast, Scalar(1<<24-1), "geometries per bottom level structure"),
	hard(MaxRaytraceInstanceCount, AtLeast, Scalar(1<<24-1), "instances per top level structure"),
	hard(MaxRaytracePrimitiveCount, AtLeast, Scalar(1<<29-1), "primitives per bottom level structure"),
	hard(MaxRaytraceInvocations, AtLeast, Scalar(1<<30), "ray dispatch invocations"),
	hard(MaxRaytraceRecursionDepth, AtLeast, Scalar(1), "ray recursion depth"),
	hard(MaxRaytraceHitAttributeSize, AtLeast, Scalar(32), "hit attribute size in bytes"),
	hard(MinRaytraceScratchAlignment, Alignment, Scalar(256), "acceleration structure scratch alignment"),
	hard(MaxRaytraceHitgroupStride, AtLeast, Scalar(4096), "hit group record stride"),
	hard(MinRaytraceHitgroupBaseAlignment, Alignment, Scalar(64), "shader table base alignment"),
	hard(MinRaytraceHitgroupHandleAlignment, Alignment, Scalar(32), "shader record alignment"),

	// View heaps, engine chosen
	soft(MaxRenderTargetViews, AtLeast, Scalar(2048), "live render target views"),
	soft(MaxDepthStencilViews, AtLeast, Scalar(256), "live depth stencil views"),
}

var baselineIndex = func() map[Name]int {
	m := make(map[Name]int, len(baseline))
	for i, e := range baseline {
		m[e.Name] = i
	}
	return m
}()

// Baseline returns a copy of the baseline table in table order.
func Baseline() []Entry {
	out := make([]Entry, len(baseline))
	copy(out, baseline)
	return out
}

// BaselineEntry returns the baseline entry for name.
func BaselineEntry(name Name) (Entry, bool) {
	i, ok := baselineIndex[name]
	if !ok {
		return Entry{}, false
	}
	return baseline[i], true
}

// BaselineLimits returns a report that meets every baseline entry exactly.
func BaselineLimits(adapter string) RawDeviceLimits {
	r := NewRawDeviceLimits(adapter)
	for _, e := range baseline {
		r.Values[e.Name] = e.Baseline
	}
	return r
}
