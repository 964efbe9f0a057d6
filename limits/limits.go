package limits

import (
	"fmt"
	"strconv"
)

// Name identifies a limit, e.g. "max_texture_size_2d".
type Name string

// Kind is the comparison direction of a limit.
type Kind uint8

const (
	// AtLeast is a maximum-style limit: the device must report at least the
	// baseline. The normalized value is min(reported, baseline).
	AtLeast Kind = iota

	// AtMost is a minimum-support limit: the device must report at most the
	// baseline. The normalized value is max(reported, baseline).
	AtMost

	// Alignment is AtMost where the baseline must also be a multiple of the
	// reported alignment.
	Alignment

	// Vector is AtLeast applied per dimension.
	Vector

	// Range requires the reported range to contain the baseline range. The
	// normalized value is the intersection.
	Range
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case AtLeast:
		return "AtLeast"
	case AtMost:
		return "AtMost"
	case Alignment:
		return "Alignment"
	case Vector:
		return "Vector"
	case Range:
		return "Range"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Provenance is the tier of a baseline entry.
type Provenance uint8

const (
	// Hard entries block device acceptance.
	Hard Provenance = iota

	// Soft entries have no confirmed cross-vendor baseline yet.
	Soft

	// Informational entries are recorded only.
	Informational
)

// String returns the tier name used in logs.
func (p Provenance) String() string {
	switch p {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Informational:
		return "informational"
	default:
		return "provenance(" + strconv.Itoa(int(p)) + ")"
	}
}

// Value holds a limit value. Which field is meaningful depends on the Kind of
// the entry it belongs to. Unused vector components are zero.
type Value struct {
	Scalar uint64
	Vector [3]uint64
	Min    int64
	Max    int64
}

// Scalar returns a scalar value.
func Scalar(v uint64) Value { return Value{Scalar: v} }

// Vec returns a three component value.
func Vec(x, y, z uint64) Value { return Value{Vector: [3]uint64{x, y, z}} }

// Span returns an inclusive range value.
func Span(lo, hi int64) Value { return Value{Min: lo, Max: hi} }

// Format renders v for the given kind.
func (v Value) Format(k Kind) string {
	switch k {
	case Vector:
		return fmt.Sprintf("(%d, %d, %d)", v.Vector[0], v.Vector[1], v.Vector[2])
	case Range:
		return fmt.Sprintf("[%d, %d]", v.Min, v.Max)
	default:
		return strconv.FormatUint(v.Scalar, 10)
	}
}

// Entry is one row of the baseline table.
type Entry struct {
	Name       Name
	Kind       Kind
	Provenance Provenance
	Baseline   Value
	Doc        string
}

// Bound is a normalized limit in a LimitSet.
type Bound struct {
	Entry    Entry
	Reported Value
	Value    Value
}

// RawDeviceLimits is what a backend adapter reports for one physical device.
type RawDeviceLimits struct {
	Adapter string
	Values  map[Name]Value
}

// NewRawDeviceLimits returns an empty report for the named adapter.
func NewRawDeviceLimits(adapter string) RawDeviceLimits {
	return RawDeviceLimits{Adapter: adapter, Values: make(map[Name]Value)}
}

// Set records a reported value.
func (r RawDeviceLimits) Set(name Name, v Value) {
	r.Values[name] = v
}

// Lookup returns the reported value for name.
func (r RawDeviceLimits) Lookup(name Name) (Value, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// WithDefaults returns a copy of r where every limit missing from r is taken
// from d. Values already present in r win.
func (r RawDeviceLimits) WithDefaults(d RawDeviceLimits) RawDeviceLimits {
	out := NewRawDeviceLimits(r.Adapter)
	for n, v := range d.Values {
		out.Values[n] = v
	}
	for n, v := range r.Values {
		out.Values[n] = v
	}
	return out
}

// Clone returns a deep copy of r.
func (r RawDeviceLimits) Clone() RawDeviceLimits {
	return r.WithDefaults(RawDeviceLimits{})
}
