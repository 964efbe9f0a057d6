package limits

import (
	"log/slog"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Diagnostic records a Soft or Informational entry the device fell short of,
// or did not report.
type Diagnostic struct {
	Name       Name
	Provenance Provenance
	Baseline   Value
	Reported   Value
	Missing    bool
	Reason     string
}

// LimitSet is the normalized, immutable limit snapshot of an accepted device.
// It is safe for concurrent use.
type LimitSet struct {
	adapter     string
	bounds      map[Name]Bound
	diagnostics []Diagnostic
}

// Adapter returns the name of the adapter the set was built for.
func (s *LimitSet) Adapter() string { return s.adapter }

// Get returns the bound for name.
func (s *LimitSet) Get(name Name) (Bound, bool) {
	b, ok := s.bounds[name]
	return b, ok
}

// Scalar returns the normalized scalar value of name, or zero if absent.
func (s *LimitSet) Scalar(name Name) uint64 {
	return s.bounds[name].Value.Scalar
}

// Vector returns the normalized per-dimension value of name.
func (s *LimitSet) Vector(name Name) [3]uint64 {
	return s.bounds[name].Value.Vector
}

// Range returns the normalized inclusive range of name.
func (s *LimitSet) Range(name Name) (lo, hi int64) {
	v := s.bounds[name].Value
	return v.Min, v.Max
}

// Names returns every limit name in the set, sorted.
func (s *LimitSet) Names() []Name {
	names := maps.Keys(s.bounds)
	slices.Sort(names)
	return names
}

// Diagnostics returns a copy of the recorded Soft and Informational
// shortfalls in baseline order.
func (s *LimitSet) Diagnostics() []Diagnostic {
	return slices.Clone(s.diagnostics)
}

// Len returns the number of limits in the set.
func (s *LimitSet) Len() int { return len(s.bounds) }

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithBaseline replaces the baseline table the validator checks against.
func WithBaseline(entries []Entry) ValidatorOption {
	return func(v *Validator) {
		v.entries = slices.Clone(entries)
	}
}

// WithLogger sets the logger for diagnostics. Nil disables logging.
func WithLogger(l *slog.Logger) ValidatorOption {
	return func(v *Validator) {
		v.log = l
	}
}

// Validator checks raw device limits against a baseline table.
type Validator struct {
	entries []Entry
	log     *slog.Logger
}

// NewValidator returns a validator for the default baseline.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{entries: baseline}
	for _, opt := range opts {
		opt(v)
	}
	if v.log == nil {
		v.log = slog.New(nopHandler{})
	}
	return v
}

// Validate checks raw against the default baseline.
func Validate(raw RawDeviceLimits) (*LimitSet, error) {
	return NewValidator().Validate(raw)
}

// Validate checks every baseline entry against raw. If any Hard entry fails
// it returns a *DeviceRejectedError listing all of them in baseline order.
func (v *Validator) Validate(raw RawDeviceLimits) (*LimitSet, error) {
	set := &LimitSet{
		adapter: raw.Adapter,
		bounds:  make(map[Name]Bound, len(v.entries)),
	}
	var failing []Failure

	for _, e := range v.entries {
		reported, ok := raw.Lookup(e.Name)
		if !ok {
			if e.Provenance == Hard {
				failing = append(failing, Failure{Entry: e, Missing: true, Reason: "not reported"})
				continue
			}
			set.diagnostics = append(set.diagnostics, v.diagnose(raw.Adapter, e, Value{}, true, "not reported"))
			continue
		}

		reason, pass := check(e, reported)
		switch {
		case e.Provenance == Hard && !pass:
			failing = append(failing, Failure{Entry: e, Reported: reported, Reason: reason})
		case e.Provenance == Hard:
			set.bounds[e.Name] = Bound{Entry: e, Reported: reported, Value: normalize(e, reported)}
		default:
			if !pass {
				set.diagnostics = append(set.diagnostics, v.diagnose(raw.Adapter, e, reported, false, reason))
			}
			set.bounds[e.Name] = Bound{Entry: e, Reported: reported, Value: reported}
		}
	}

	if len(failing) > 0 {
		err := &DeviceRejectedError{Adapter: raw.Adapter, Failing: failing}
		v.log.Warn("limits: device rejected",
			"adapter", raw.Adapter,
			"failing", len(failing))
		return nil, err
	}

	v.log.Debug("limits: device accepted",
		"adapter", raw.Adapter,
		"limits", len(set.bounds),
		"diagnostics", len(set.diagnostics))
	return set, nil
}

func (v *Validator) diagnose(adapter string, e Entry, reported Value, missing bool, reason string) Diagnostic {
	v.log.Info("limits: below baseline",
		"tier", e.Provenance.String(),
		"adapter", adapter,
		"limit", string(e.Name),
		"baseline", e.Baseline.Format(e.Kind),
		"reason", reason)
	return Diagnostic{
		Name:       e.Name,
		Provenance: e.Provenance,
		Baseline:   e.Baseline,
		Reported:   reported,
		Missing:    missing,
		Reason:     reason,
	}
}

// check reports whether reported satisfies e. Boundaries are inclusive.
func check(e Entry, reported Value) (string, bool) {
	base := e.Baseline
	switch e.Kind {
	case AtLeast:
		if reported.Scalar < base.Scalar {
			return "below baseline", false
		}
	case AtMost:
		if reported.Scalar > base.Scalar {
			return "above baseline", false
		}
	case Alignment:
		align := max(reported.Scalar, 1)
		if align > base.Scalar {
			return "alignment coarser than baseline", false
		}
		if base.Scalar%align != 0 {
			return "baseline not a multiple of alignment", false
		}
	case Vector:
		for i := range reported.Vector {
			if reported.Vector[i] < base.Vector[i] {
				return "component below baseline", false
			}
		}
	case Range:
		if reported.Min > base.Min || reported.Max < base.Max {
			return "range does not contain baseline", false
		}
	}
	return "", true
}

// normalize picks the more conservative of reported and the baseline.
func normalize(e Entry, reported Value) Value {
	base := e.Baseline
	switch e.Kind {
	case AtLeast:
		return Scalar(min(reported.Scalar, base.Scalar))
	case AtMost, Alignment:
		return Scalar(max(reported.Scalar, base.Scalar))
	case Vector:
		var out Value
		for i := range out.Vector {
			out.Vector[i] = min(reported.Vector[i], base.Vector[i])
		}
		return out
	case Range:
		return Span(max(reported.Min, base.Min), min(reported.Max, base.Max))
	}
	return base
}
