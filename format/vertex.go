package format

import "github.com/gogpu/gputypes"

// VertexFormat is the layout of one vertex attribute.
type VertexFormat uint8

// Vertex formats.
const (
	VertexUndefined VertexFormat = iota
	VertexX32Y32Z32W32SFloat
	VertexX32Y32Z32W32SInt
	VertexX32Y32Z32W32UInt
	VertexX32Y32Z32SFloat
	VertexX32Y32Z32SInt
	VertexX32Y32Z32UInt
	VertexX32Y32SFloat
	VertexX32Y32SInt
	VertexX32Y32UInt
	VertexX32SFloat
	VertexX32SInt
	VertexX32UInt
	VertexX16Y16Z16W16SFloat
	VertexX16Y16Z16W16SInt
	VertexX16Y16Z16W16UInt
	VertexX16Y16Z16W16SNorm
	VertexX16Y16Z16W16UNorm
	VertexX16Y16SFloat
	VertexX16Y16SInt
	VertexX16Y16UInt
	VertexX16Y16SNorm
	VertexX16Y16UNorm
	VertexX16SFloat
	VertexX16SInt
	VertexX16UInt
	VertexX16SNorm
	VertexX16UNorm
	VertexX8Y8Z8W8SInt
	VertexX8Y8Z8W8UInt
	VertexX8Y8Z8W8SNorm
	VertexX8Y8Z8W8UNorm
	VertexX8Y8SInt
	VertexX8Y8UInt
	VertexX8Y8SNorm
	VertexX8Y8UNorm
	VertexX8SInt
	VertexX8UInt
	VertexX8SNorm
	VertexX8UNorm
	VertexX10Y10Z10W2UInt
	VertexX10Y10Z10W2UNorm
	VertexX11Y11Z10UFloat

	vertexFormatCount
)

// VertexFormatCount is the number of defined vertex formats.
const VertexFormatCount = int(vertexFormatCount) - 1

type vertexInfo struct {
	name     string
	byteSize uint32
	// accel marks formats usable as acceleration structure vertex positions.
	accel bool
	gpu   gputypes.VertexFormat
}

var vertexFormats = [vertexFormatCount]vertexInfo{
	VertexUndefined: {name: "Undefined"},

	VertexX32Y32Z32W32SFloat: {"X32Y32Z32W32SFloat", 16, false, gputypes.VertexFormatFloat32x4},
	VertexX32Y32Z32W32SInt:   {"X32Y32Z32W32SInt", 16, false, gputypes.VertexFormatSint32x4},
	VertexX32Y32Z32W32UInt:   {"X32Y32Z32W32UInt", 16, false, gputypes.VertexFormatUint32x4},
	VertexX32Y32Z32SFloat:    {"X32Y32Z32SFloat", 12, true, gputypes.VertexFormatFloat32x3},
	VertexX32Y32Z32SInt:      {"X32Y32Z32SInt", 12, false, gputypes.VertexFormatSint32x3},
	VertexX32Y32Z32UInt:      {"X32Y32Z32UInt", 12, false, gputypes.VertexFormatUint32x3},
	VertexX32Y32SFloat:       {"X32Y32SFloat", 8, true, gputypes.VertexFormatFloat32x2},
	VertexX32Y32SInt:         {"X32Y32SInt", 8, false, gputypes.VertexFormatSint32x2},
	VertexX32Y32UInt:         {"X32Y32UInt", 8, false, gputypes.VertexFormatUint32x2},
	VertexX32SFloat:          {"X32SFloat", 4, false, gputypes.VertexFormatFloat32},
	VertexX32SInt:            {"X32SInt", 4, false, gputypes.VertexFormatSint32},
	VertexX32UInt:            {"X32UInt", 4, false, gputypes.VertexFormatUint32},

	VertexX16Y16Z16W16SFloat: {"X16Y16Z16W16SFloat", 8, true, gputypes.VertexFormatFloat16x4},
	VertexX16Y16Z16W16SInt:   {"X16Y16Z16W16SInt", 8, false, gputypes.VertexFormatSint16x4},
	VertexX16Y16Z16W16UInt:   {"X16Y16Z16W16UInt", 8, false, gputypes.VertexFormatUint16x4},
	VertexX16Y16Z16W16SNorm:  {"X16Y16Z16W16SNorm", 8, true, gputypes.VertexFormatSnorm16x4},
	VertexX16Y16Z16W16UNorm:  {"X16Y16Z16W16UNorm", 8, true, gputypes.VertexFormatUnorm16x4},
	VertexX16Y16SFloat:       {"X16Y16SFloat", 4, true, gputypes.VertexFormatFloat16x2},
	VertexX16Y16SInt:         {"X16Y16SInt", 4, false, gputypes.VertexFormatSint16x2},
	VertexX16Y16UInt:         {"X16Y16UInt", 4, false, gputypes.VertexFormatUint16x2},
	VertexX16Y16SNorm:        {"X16Y16SNorm", 4, true, gputypes.VertexFormatSnorm16x2},
	VertexX16Y16UNorm:        {"X16Y16UNorm", 4, true, gputypes.VertexFormatUnorm16x2},
	VertexX16SFloat:          {"X16SFloat", 2, false, gputypes.VertexFormatUndefined},
	VertexX16SInt:            {"X16SInt", 2, false, gputypes.VertexFormatUndefined},
	VertexX16UInt:            {"X16UInt", 2, false, gputypes.VertexFormatUndefined},
	VertexX16SNorm:           {"X16SNorm", 2, false, gputypes.VertexFormatUndefined},
	VertexX16UNorm:           {"X16UNorm", 2, false, gputypes.VertexFormatUndefined},

	VertexX8Y8Z8W8SInt:  {"X8Y8Z8W8SInt", 4, false, gputypes.VertexFormatSint8x4},
	VertexX8Y8Z8W8UInt:  {"X8Y8Z8W8UInt", 4, false, gputypes.VertexFormatUint8x4},
	VertexX8Y8Z8W8SNorm: {"X8Y8Z8W8SNorm", 4, true, gputypes.VertexFormatSnorm8x4},
	VertexX8Y8Z8W8UNorm: {"X8Y8Z8W8UNorm", 4, true, gputypes.VertexFormatUnorm8x4},
	VertexX8Y8SInt:      {"X8Y8SInt", 2, false, gputypes.VertexFormatSint8x2},
	VertexX8Y8UInt:      {"X8Y8UInt", 2, false, gputypes.VertexFormatUint8x2},
	VertexX8Y8SNorm:     {"X8Y8SNorm", 2, true, gputypes.VertexFormatSnorm8x2},
	VertexX8Y8UNorm:     {"X8Y8UNorm", 2, true, gputypes.VertexFormatUnorm8x2},
	VertexX8SInt:        {"X8SInt", 1, false, gputypes.VertexFormatUndefined},
	VertexX8UInt:        {"X8UInt", 1, false, gputypes.VertexFormatUndefined},
	VertexX8SNorm:       {"X8SNorm", 1, false, gputypes.VertexFormatUndefined},
	VertexX8UNorm:       {"X8UNorm", 1, false, gputypes.VertexFormatUndefined},

	VertexX10Y10Z10W2UInt:  {"X10Y10Z10W2UInt", 4, false, gputypes.VertexFormatUndefined},
	VertexX10Y10Z10W2UNorm: {"X10Y10Z10W2UNorm", 4, true, gputypes.VertexFormatUnorm1010102},
	VertexX11Y11Z10UFloat:  {"X11Y11Z10UFloat", 4, false, gputypes.VertexFormatUndefined},
}

// IsValid reports whether v is a member of the vertex format enumeration.
func (v VertexFormat) IsValid() bool {
	return v > VertexUndefined && v < vertexFormatCount
}

// String returns the vertex format name.
func (v VertexFormat) String() string {
	if v >= vertexFormatCount {
		return "Unknown"
	}
	return vertexFormats[v].name
}

// ByteSize returns the size of one attribute element in bytes.
func (v VertexFormat) ByteSize() uint32 {
	if !v.IsValid() {
		return 0
	}
	return vertexFormats[v].byteSize
}

// AccelStructEligible reports whether v can hold vertex positions of a
// raytracing acceleration structure.
func (v VertexFormat) AccelStructEligible() bool {
	return v.IsValid() && vertexFormats[v].accel
}

// GPUType returns the gputypes equivalent of v. Formats without a WebGPU
// counterpart report false.
func (v VertexFormat) GPUType() (gputypes.VertexFormat, bool) {
	if !v.IsValid() {
		return gputypes.VertexFormatUndefined, false
	}
	g := vertexFormats[v].gpu
	return g, g != gputypes.VertexFormatUndefined
}

// AllVertexFormats returns every defined vertex format in table order.
func AllVertexFormats() []VertexFormat {
	out := make([]VertexFormat, 0, VertexFormatCount)
	for v := VertexFormat(1); v < vertexFormatCount; v++ {
		out = append(out, v)
	}
	return out
}
