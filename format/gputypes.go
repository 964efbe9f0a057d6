package format

import "github.com/gogpu/gputypes"

// gpuFormats maps registry formats to their WebGPU texture format. Typeless
// formats have no counterpart.
var gpuFormats = map[Format]gputypes.TextureFormat{
	R32G32B32A32SFloat: gputypes.TextureFormatRGBA32Float,
	R32G32B32A32UInt:   gputypes.TextureFormatRGBA32Uint,
	R32G32B32A32SInt:   gputypes.TextureFormatRGBA32Sint,
	R32G32SFloat:       gputypes.TextureFormatRG32Float,
	R32G32UInt:         gputypes.TextureFormatRG32Uint,
	R32G32SInt:         gputypes.TextureFormatRG32Sint,
	R32SFloat:          gputypes.TextureFormatR32Float,
	R32UInt:            gputypes.TextureFormatR32Uint,
	R32SInt:            gputypes.TextureFormatR32Sint,

	R16G16B16A16SFloat: gputypes.TextureFormatRGBA16Float,
	R16G16B16A16UInt:   gputypes.TextureFormatRGBA16Uint,
	R16G16B16A16SInt:   gputypes.TextureFormatRGBA16Sint,
	R16G16B16A16UNorm:  gputypes.TextureFormatRGBA16Unorm,
	R16G16B16A16SNorm:  gputypes.TextureFormatRGBA16Snorm,
	R16G16SFloat:       gputypes.TextureFormatRG16Float,
	R16G16UInt:         gputypes.TextureFormatRG16Uint,
	R16G16SInt:         gputypes.TextureFormatRG16Sint,
	R16G16UNorm:        gputypes.TextureFormatRG16Unorm,
	R16G16SNorm:        gputypes.TextureFormatRG16Snorm,
	R16SFloat:          gputypes.TextureFormatR16Float,
	R16UInt:            gputypes.TextureFormatR16Uint,
	R16SInt:            gputypes.TextureFormatR16Sint,
	R16UNorm:           gputypes.TextureFormatR16Unorm,
	R16SNorm:           gputypes.TextureFormatR16Snorm,

	R8G8B8A8UInt:  gputypes.TextureFormatRGBA8Uint,
	R8G8B8A8SInt:  gputypes.TextureFormatRGBA8Sint,
	R8G8B8A8UNorm: gputypes.TextureFormatRGBA8Unorm,
	R8G8B8A8SNorm: gputypes.TextureFormatRGBA8Snorm,
	R8G8B8A8Srgb:  gputypes.TextureFormatRGBA8UnormSrgb,
	R8G8UInt:      gputypes.TextureFormatRG8Uint,
	R8G8SInt:      gputypes.TextureFormatRG8Sint,
	R8G8UNorm:     gputypes.TextureFormatRG8Unorm,
	R8G8SNorm:     gputypes.TextureFormatRG8Snorm,
	R8UInt:        gputypes.TextureFormatR8Uint,
	R8SInt:        gputypes.TextureFormatR8Sint,
	R8UNorm:       gputypes.TextureFormatR8Unorm,
	R8SNorm:       gputypes.TextureFormatR8Snorm,

	B8G8R8A8UNorm: gputypes.TextureFormatBGRA8Unorm,
	B8G8R8A8Srgb:  gputypes.TextureFormatBGRA8UnormSrgb,

	R10G10B10A2UInt:  gputypes.TextureFormatRGB10A2Uint,
	R10G10B10A2UNorm: gputypes.TextureFormatRGB10A2Unorm,
	R11G11B10UFloat:  gputypes.TextureFormatRG11B10Ufloat,
	R9G9B9E5UFloat:   gputypes.TextureFormatRGB9E5Ufloat,

	D32SFloat:       gputypes.TextureFormatDepth32Float,
	D32SFloatS8UInt: gputypes.TextureFormatDepth32FloatStencil8,
	S8UInt:          gputypes.TextureFormatStencil8,

	BC1UNorm:   gputypes.TextureFormatBC1RGBAUnorm,
	BC1Srgb:    gputypes.TextureFormatBC1RGBAUnormSrgb,
	BC2UNorm:   gputypes.TextureFormatBC2RGBAUnorm,
	BC2Srgb:    gputypes.TextureFormatBC2RGBAUnormSrgb,
	BC3UNorm:   gputypes.TextureFormatBC3RGBAUnorm,
	BC3Srgb:    gputypes.TextureFormatBC3RGBAUnormSrgb,
	BC4UNorm:   gputypes.TextureFormatBC4RUnorm,
	BC4SNorm:   gputypes.TextureFormatBC4RSnorm,
	BC5UNorm:   gputypes.TextureFormatBC5RGUnorm,
	BC5SNorm:   gputypes.TextureFormatBC5RGSnorm,
	BC6HUFloat: gputypes.TextureFormatBC6HRGBUfloat,
	BC6HSFloat: gputypes.TextureFormatBC6HRGBFloat,
	BC7UNorm:   gputypes.TextureFormatBC7RGBAUnorm,
	BC7Srgb:    gputypes.TextureFormatBC7RGBAUnormSrgb,
}

var fromGPUFormats = func() map[gputypes.TextureFormat]Format {
	m := make(map[gputypes.TextureFormat]Format, len(gpuFormats))
	for f, g := range gpuFormats {
		m[g] = f
	}
	return m
}()

// GPUType returns the WebGPU texture format for f. Typeless formats report
// false.
func (f Format) GPUType() (gputypes.TextureFormat, bool) {
	g, ok := gpuFormats[f]
	return g, ok
}

// FromGPUType returns the registry format for a WebGPU texture format.
// Formats outside the registry (ETC2, ASTC, Depth24Plus, ...) report false.
func FromGPUType(g gputypes.TextureFormat) (Format, bool) {
	f, ok := fromGPUFormats[g]
	return f, ok
}
