package format

import "strings"

// Usage is a set of ways a format can be used by a resource.
type Usage uint16

const (
	// UsageSampled allows sampled texture views.
	UsageSampled Usage = 1 << iota
	// UsageStorage allows storage (read/write) texture views.
	UsageStorage
	// UsageRenderTarget allows color render target views.
	UsageRenderTarget
	// UsageDepthStencil allows depth/stencil views.
	UsageDepthStencil
	// UsageDisplay allows presenting to a screen.
	UsageDisplay
	// UsageConstantTexelBuffer allows read-only typed buffer views.
	UsageConstantTexelBuffer
	// UsageStorageTexelBuffer allows read/write typed buffer views.
	UsageStorageTexelBuffer
)

var usageNames = []string{
	"Sampled", "Storage", "RenderTarget", "DepthStencil", "Display",
	"ConstantTexelBuffer", "StorageTexelBuffer",
}

// Contains reports whether every bit of other is set in u.
func (u Usage) Contains(other Usage) bool {
	return u&other == other
}

// String returns the usage bits joined by '|', e.g. "Sampled|RenderTarget".
func (u Usage) String() string {
	if u == 0 {
		return "None"
	}
	var parts []string
	for i, name := range usageNames {
		if u&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Aspect is a set of sub-planes a view or operation addresses.
type Aspect uint8

const (
	// AspectColor is the color data of a color format.
	AspectColor Aspect = 1 << iota
	// AspectDepth is the depth data of a depth format.
	AspectDepth
	// AspectStencil is the stencil data of a stencil format.
	AspectStencil
)

// String returns the aspect bits joined by '|'.
func (a Aspect) String() string {
	if a == 0 {
		return "None"
	}
	var parts []string
	if a&AspectColor != 0 {
		parts = append(parts, "Color")
	}
	if a&AspectDepth != 0 {
		parts = append(parts, "Depth")
	}
	if a&AspectStencil != 0 {
		parts = append(parts, "Stencil")
	}
	return strings.Join(parts, "|")
}

// Atomics is the level of atomic operation support on storage views.
type Atomics uint8

const (
	// AtomicsNone means no atomic operations are available.
	AtomicsNone Atomics = iota
	// AtomicsExchangeOnly allows exchange and compare-exchange only.
	AtomicsExchangeOnly
	// AtomicsFull allows the full set of integer atomic operations.
	AtomicsFull
)

// String returns the atomics level name.
func (a Atomics) String() string {
	switch a {
	case AtomicsExchangeOnly:
		return "ExchangeOnly"
	case AtomicsFull:
		return "Full"
	default:
		return "None"
	}
}

// Derived holds capabilities inferred from a format's primary attributes.
// They are recomputed on every query and never stored.
type Derived struct {
	// Blendable is set for render targets with a non-integer data type.
	Blendable bool
	// LogicOpEligible is set for render targets with a UInt data type.
	LogicOpEligible bool
	// ComparisonFilterEligible is set for depth/stencil formats.
	ComparisonFilterEligible bool
	// SparseEligible is set for color formats.
	SparseEligible bool
	// Atomics is the atomic operation support level.
	Atomics Atomics
}

// Capabilities is the complete capability record of a format.
type Capabilities struct {
	Usage   Usage
	Aspect  Aspect
	Derived Derived
}

// CapabilitiesOf returns the usages, aspects and derived capabilities of f.
//
// The lookup is a table index followed by fixed inference rules, so equal
// inputs always produce equal results. Formats outside the enumeration report
// no usage at all.
func CapabilitiesOf(f Format) Capabilities {
	if !f.IsValid() {
		return Capabilities{}
	}
	info := formats[f]
	return Capabilities{
		Usage:   info.usage,
		Aspect:  f.Aspect(),
		Derived: derive(f, info),
	}
}

func derive(f Format, info formatInfo) Derived {
	renderTarget := info.usage.Contains(UsageRenderTarget)
	depthStencil := f.IsDepthStencil()

	d := Derived{
		Blendable:                renderTarget && info.dataType.IsNonInteger(),
		LogicOpEligible:          renderTarget && info.dataType == DataTypeUInt,
		ComparisonFilterEligible: depthStencil,
		SparseEligible:           !depthStencil,
	}
	switch f {
	case R32UInt, R32SInt:
		d.Atomics = AtomicsFull
	case R32SFloat:
		d.Atomics = AtomicsExchangeOnly
	}
	return d
}

// Supports reports whether f provides every usage in u.
func (f Format) Supports(u Usage) bool {
	return f.IsValid() && u != 0 && formats[f].usage.Contains(u)
}

// ValidateUsage checks a resource creation request for f with usage u.
// It returns a *FormatUsageUnsupportedError naming the missing usages when the
// format cannot provide all of them.
func ValidateUsage(f Format, u Usage) error {
	if !f.IsValid() {
		return &FormatUsageUnsupportedError{Format: f, Usage: u, Missing: u}
	}
	have := formats[f].usage
	if u == 0 || !have.Contains(u) {
		return &FormatUsageUnsupportedError{Format: f, Usage: u, Missing: u &^ have}
	}
	return nil
}
