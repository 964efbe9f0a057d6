package format

import "strings"

// DataType is the interpretation of the bits of a format component.
type DataType uint8

const (
	// DataTypeTypeless formats can be cast to any format with the same components.
	DataTypeTypeless DataType = iota
	// DataTypeUFloat is an unsigned float.
	DataTypeUFloat
	// DataTypeSFloat is a signed float.
	DataTypeSFloat
	// DataTypeUInt is an unsigned integer.
	DataTypeUInt
	// DataTypeSInt is a signed integer.
	DataTypeSInt
	// DataTypeUNorm is an unsigned normalized value.
	DataTypeUNorm
	// DataTypeSNorm is a signed normalized value.
	DataTypeSNorm
	// DataTypeSrgb is an unsigned normalized value in sRGB space.
	DataTypeSrgb

	dataTypeCount
)

var dataTypeNames = [dataTypeCount]string{
	"Typeless", "UFloat", "SFloat", "UInt", "SInt", "UNorm", "SNorm", "Srgb",
}

// String returns the data type name.
func (d DataType) String() string {
	if d >= dataTypeCount {
		return "Unknown"
	}
	return dataTypeNames[d]
}

// IsInteger reports whether the data type is UInt or SInt.
func (d DataType) IsInteger() bool {
	return d == DataTypeUInt || d == DataTypeSInt
}

// IsNonInteger reports whether the data type is a float or normalized type.
// Typeless is neither integer nor non-integer, so prefer this over !IsInteger.
func (d DataType) IsNonInteger() bool {
	return d != DataTypeTypeless && !d.IsInteger()
}

// Format identifies an exact GPU-visible bit layout.
//
// The zero value is Undefined and is not part of the enumeration.
type Format uint8

// Format values. The order is stable and matches the registry table.
const (
	Undefined Format = iota

	R32G32B32A32Typeless
	R32G32B32A32SFloat
	R32G32B32A32UInt
	R32G32B32A32SInt
	R32G32Typeless
	R32G32SFloat
	R32G32UInt
	R32G32SInt
	R32Typeless
	R32SFloat
	R32UInt
	R32SInt

	R16G16B16A16Typeless
	R16G16B16A16SFloat
	R16G16B16A16UInt
	R16G16B16A16SInt
	R16G16B16A16UNorm
	R16G16B16A16SNorm
	R16G16Typeless
	R16G16SFloat
	R16G16UInt
	R16G16SInt
	R16G16UNorm
	R16G16SNorm
	R16Typeless
	R16SFloat
	R16UInt
	R16SInt
	R16UNorm
	R16SNorm

	R8G8B8A8Typeless
	R8G8B8A8UInt
	R8G8B8A8SInt
	R8G8B8A8UNorm
	R8G8B8A8SNorm
	R8G8B8A8Srgb
	R8G8Typeless
	R8G8UInt
	R8G8SInt
	R8G8UNorm
	R8G8SNorm
	R8Typeless
	R8UInt
	R8SInt
	R8UNorm
	R8SNorm

	B8G8R8A8Typeless
	B8G8R8A8UNorm
	B8G8R8A8Srgb

	R10G10B10A2Typeless
	R10G10B10A2UInt
	R10G10B10A2UNorm
	R11G11B10UFloat
	R9G9B9E5UFloat

	D32SFloat
	D32SFloatS8UInt
	S8UInt

	BC1Typeless
	BC1UNorm
	BC1Srgb
	BC2Typeless
	BC2UNorm
	BC2Srgb
	BC3Typeless
	BC3UNorm
	BC3Srgb
	BC4Typeless
	BC4UNorm
	BC4SNorm
	BC5Typeless
	BC5UNorm
	BC5SNorm
	BC6HTypeless
	BC6HUFloat
	BC6HSFloat
	BC7Typeless
	BC7UNorm
	BC7Srgb

	formatCount
)

// Count is the number of defined formats, excluding Undefined.
const Count = int(formatCount) - 1

// formatInfo is one row of the registry.
type formatInfo struct {
	name       string
	components Components
	dataType   DataType
	usage      Usage
}

// Usage groups shared by many rows.
const (
	bufferUsage            = UsageConstantTexelBuffer | UsageStorageTexelBuffer
	sampledRenderTarget    = UsageSampled | UsageRenderTarget
	colorTextureUsage      = sampledRenderTarget | UsageStorage
	depthStencilUsage      = UsageSampled | UsageDepthStencil
	bufferAndColorTexture  = bufferUsage | colorTextureUsage
	displayableColorFormat = bufferAndColorTexture | UsageDisplay
)

var formats = [formatCount]formatInfo{
	Undefined: {name: "Undefined"},

	R32G32B32A32Typeless: {"R32G32B32A32Typeless", ComponentsR32G32B32A32, DataTypeTypeless, 0},
	R32G32B32A32SFloat:   {"R32G32B32A32SFloat", ComponentsR32G32B32A32, DataTypeSFloat, bufferAndColorTexture},
	R32G32B32A32UInt:     {"R32G32B32A32UInt", ComponentsR32G32B32A32, DataTypeUInt, bufferAndColorTexture},
	R32G32B32A32SInt:     {"R32G32B32A32SInt", ComponentsR32G32B32A32, DataTypeSInt, bufferAndColorTexture},
	R32G32Typeless:       {"R32G32Typeless", ComponentsR32G32, DataTypeTypeless, 0},
	R32G32SFloat:         {"R32G32SFloat", ComponentsR32G32, DataTypeSFloat, bufferAndColorTexture},
	R32G32UInt:           {"R32G32UInt", ComponentsR32G32, DataTypeUInt, bufferAndColorTexture},
	R32G32SInt:           {"R32G32SInt", ComponentsR32G32, DataTypeSInt, bufferAndColorTexture},
	R32Typeless:          {"R32Typeless", ComponentsR32, DataTypeTypeless, 0},
	R32SFloat:            {"R32SFloat", ComponentsR32, DataTypeSFloat, bufferAndColorTexture},
	R32UInt:              {"R32UInt", ComponentsR32, DataTypeUInt, bufferAndColorTexture},
	R32SInt:              {"R32SInt", ComponentsR32, DataTypeSInt, bufferAndColorTexture},

	R16G16B16A16Typeless: {"R16G16B16A16Typeless", ComponentsR16G16B16A16, DataTypeTypeless, 0},
	R16G16B16A16SFloat:   {"R16G16B16A16SFloat", ComponentsR16G16B16A16, DataTypeSFloat, displayableColorFormat},
	R16G16B16A16UInt:     {"R16G16B16A16UInt", ComponentsR16G16B16A16, DataTypeUInt, bufferAndColorTexture},
	R16G16B16A16SInt:     {"R16G16B16A16SInt", ComponentsR16G16B16A16, DataTypeSInt, bufferAndColorTexture},
	R16G16B16A16UNorm:    {"R16G16B16A16UNorm", ComponentsR16G16B16A16, DataTypeUNorm, bufferAndColorTexture},
	R16G16B16A16SNorm:    {"R16G16B16A16SNorm", ComponentsR16G16B16A16, DataTypeSNorm, bufferAndColorTexture},
	R16G16Typeless:       {"R16G16Typeless", ComponentsR16G16, DataTypeTypeless, 0},
	R16G16SFloat:         {"R16G16SFloat", ComponentsR16G16, DataTypeSFloat, bufferAndColorTexture},
	R16G16UInt:           {"R16G16UInt", ComponentsR16G16, DataTypeUInt, bufferAndColorTexture},
	R16G16SInt:           {"R16G16SInt", ComponentsR16G16, DataTypeSInt, bufferAndColorTexture},
	R16G16UNorm:          {"R16G16UNorm", ComponentsR16G16, DataTypeUNorm, bufferAndColorTexture},
	R16G16SNorm:          {"R16G16SNorm", ComponentsR16G16, DataTypeSNorm, bufferAndColorTexture},
	R16Typeless:          {"R16Typeless", ComponentsR16, DataTypeTypeless, 0},
	R16SFloat:            {"R16SFloat", ComponentsR16, DataTypeSFloat, bufferAndColorTexture},
	R16UInt:              {"R16UInt", ComponentsR16, DataTypeUInt, bufferAndColorTexture},
	R16SInt:              {"R16SInt", ComponentsR16, DataTypeSInt, bufferAndColorTexture},
	R16UNorm:             {"R16UNorm", ComponentsR16, DataTypeUNorm, bufferAndColorTexture},
	R16SNorm:             {"R16SNorm", ComponentsR16, DataTypeSNorm, bufferAndColorTexture},

	R8G8B8A8Typeless: {"R8G8B8A8Typeless", ComponentsR8G8B8A8, DataTypeTypeless, 0},
	R8G8B8A8UInt:     {"R8G8B8A8UInt", ComponentsR8G8B8A8, DataTypeUInt, bufferAndColorTexture},
	R8G8B8A8SInt:     {"R8G8B8A8SInt", ComponentsR8G8B8A8, DataTypeSInt, bufferAndColorTexture},
	R8G8B8A8UNorm:    {"R8G8B8A8UNorm", ComponentsR8G8B8A8, DataTypeUNorm, displayableColorFormat},
	R8G8B8A8SNorm:    {"R8G8B8A8SNorm", ComponentsR8G8B8A8, DataTypeSNorm, bufferAndColorTexture},
	R8G8B8A8Srgb:     {"R8G8B8A8Srgb", ComponentsR8G8B8A8, DataTypeSrgb, sampledRenderTarget | UsageDisplay},
	R8G8Typeless:     {"R8G8Typeless", ComponentsR8G8, DataTypeTypeless, 0},
	R8G8UInt:         {"R8G8UInt", ComponentsR8G8, DataTypeUInt, bufferAndColorTexture},
	R8G8SInt:         {"R8G8SInt", ComponentsR8G8, DataTypeSInt, bufferAndColorTexture},
	R8G8UNorm:        {"R8G8UNorm", ComponentsR8G8, DataTypeUNorm, bufferAndColorTexture},
	R8G8SNorm:        {"R8G8SNorm", ComponentsR8G8, DataTypeSNorm, bufferAndColorTexture},
	R8Typeless:       {"R8Typeless", ComponentsR8, DataTypeTypeless, 0},
	R8UInt:           {"R8UInt", ComponentsR8, DataTypeUInt, bufferAndColorTexture},
	R8SInt:           {"R8SInt", ComponentsR8, DataTypeSInt, bufferAndColorTexture},
	R8UNorm:          {"R8UNorm", ComponentsR8, DataTypeUNorm, bufferAndColorTexture},
	R8SNorm:          {"R8SNorm", ComponentsR8, DataTypeSNorm, bufferAndColorTexture},

	B8G8R8A8Typeless: {"B8G8R8A8Typeless", ComponentsB8G8R8A8, DataTypeTypeless, 0},
	B8G8R8A8UNorm:    {"B8G8R8A8UNorm", ComponentsB8G8R8A8, DataTypeUNorm, bufferUsage | sampledRenderTarget | UsageDisplay},
	B8G8R8A8Srgb:     {"B8G8R8A8Srgb", ComponentsB8G8R8A8, DataTypeSrgb, sampledRenderTarget | UsageDisplay},

	R10G10B10A2Typeless: {"R10G10B10A2Typeless", ComponentsR10G10B10A2, DataTypeTypeless, 0},
	R10G10B10A2UInt:     {"R10G10B10A2UInt", ComponentsR10G10B10A2, DataTypeUInt, bufferAndColorTexture},
	R10G10B10A2UNorm:    {"R10G10B10A2UNorm", ComponentsR10G10B10A2, DataTypeUNorm, displayableColorFormat},
	R11G11B10UFloat:     {"R11G11B10UFloat", ComponentsR11G11B10, DataTypeUFloat, bufferAndColorTexture},
	R9G9B9E5UFloat:      {"R9G9B9E5UFloat", ComponentsR9G9B9E5, DataTypeUFloat, UsageSampled},

	D32SFloat:       {"D32SFloat", ComponentsD32, DataTypeSFloat, depthStencilUsage},
	D32SFloatS8UInt: {"D32SFloatS8UInt", ComponentsD32S8, DataTypeSFloat, depthStencilUsage},
	S8UInt:          {"S8UInt", ComponentsS8, DataTypeUInt, depthStencilUsage},

	BC1Typeless:  {"BC1Typeless", ComponentsBC1, DataTypeTypeless, 0},
	BC1UNorm:     {"BC1UNorm", ComponentsBC1, DataTypeUNorm, UsageSampled},
	BC1Srgb:      {"BC1Srgb", ComponentsBC1, DataTypeSrgb, UsageSampled},
	BC2Typeless:  {"BC2Typeless", ComponentsBC2, DataTypeTypeless, 0},
	BC2UNorm:     {"BC2UNorm", ComponentsBC2, DataTypeUNorm, UsageSampled},
	BC2Srgb:      {"BC2Srgb", ComponentsBC2, DataTypeSrgb, UsageSampled},
	BC3Typeless:  {"BC3Typeless", ComponentsBC3, DataTypeTypeless, 0},
	BC3UNorm:     {"BC3UNorm", ComponentsBC3, DataTypeUNorm, UsageSampled},
	BC3Srgb:      {"BC3Srgb", ComponentsBC3, DataTypeSrgb, UsageSampled},
	BC4Typeless:  {"BC4Typeless", ComponentsBC4, DataTypeTypeless, 0},
	BC4UNorm:     {"BC4UNorm", ComponentsBC4, DataTypeUNorm, UsageSampled},
	BC4SNorm:     {"BC4SNorm", ComponentsBC4, DataTypeSNorm, UsageSampled},
	BC5Typeless:  {"BC5Typeless", ComponentsBC5, DataTypeTypeless, 0},
	BC5UNorm:     {"BC5UNorm", ComponentsBC5, DataTypeUNorm, UsageSampled},
	BC5SNorm:     {"BC5SNorm", ComponentsBC5, DataTypeSNorm, UsageSampled},
	BC6HTypeless: {"BC6HTypeless", ComponentsBC6H, DataTypeTypeless, 0},
	BC6HUFloat:   {"BC6HUFloat", ComponentsBC6H, DataTypeUFloat, UsageSampled},
	BC6HSFloat:   {"BC6HSFloat", ComponentsBC6H, DataTypeSFloat, UsageSampled},
	BC7Typeless:  {"BC7Typeless", ComponentsBC7, DataTypeTypeless, 0},
	BC7UNorm:     {"BC7UNorm", ComponentsBC7, DataTypeUNorm, UsageSampled},
	BC7Srgb:      {"BC7Srgb", ComponentsBC7, DataTypeSrgb, UsageSampled},
}

// byComponents maps (components, data type) back to a format. Built once from
// the registry table.
var byComponents = func() map[[2]uint8]Format {
	m := make(map[[2]uint8]Format, Count)
	for f := Format(1); f < formatCount; f++ {
		info := formats[f]
		m[[2]uint8{uint8(info.components), uint8(info.dataType)}] = f
	}
	return m
}()

// byName maps lower-cased names to formats for ParseFormat.
var byName = func() map[string]Format {
	m := make(map[string]Format, Count)
	for f := Format(1); f < formatCount; f++ {
		m[strings.ToLower(formats[f].name)] = f
	}
	return m
}()

// IsValid reports whether f is a member of the format enumeration.
func (f Format) IsValid() bool {
	return f > Undefined && f < formatCount
}

// String returns the format name, e.g. "R8G8B8A8UNorm".
func (f Format) String() string {
	if f >= formatCount {
		return "Unknown"
	}
	return formats[f].name
}

// Components returns the component layout of the format.
func (f Format) Components() Components {
	if !f.IsValid() {
		return ComponentsNone
	}
	return formats[f].components
}

// DataType returns how the format's bits are interpreted.
func (f Format) DataType() DataType {
	if !f.IsValid() {
		return DataTypeTypeless
	}
	return formats[f].dataType
}

// Lookup returns the format with the given components and data type.
func Lookup(c Components, d DataType) (Format, bool) {
	f, ok := byComponents[[2]uint8{uint8(c), uint8(d)}]
	return f, ok
}

// ParseFormat returns the format with the given name. Matching is case-insensitive.
func ParseFormat(name string) (Format, bool) {
	f, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// All returns every defined format in registry order.
func All() []Format {
	out := make([]Format, 0, Count)
	for f := Format(1); f < formatCount; f++ {
		out = append(out, f)
	}
	return out
}
