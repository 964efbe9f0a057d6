package limits

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrDeviceRejected matches every *DeviceRejectedError via errors.Is.
var ErrDeviceRejected = errors.New("limits: device rejected")

// Failure is one Hard entry the device did not meet.
type Failure struct {
	Entry    Entry
	Reported Value
	Missing  bool
	Reason   string
}

// DeviceRejectedError lists every Hard entry a device failed, in baseline
// order.
type DeviceRejectedError struct {
	Adapter string
	Failing []Failure
}

func (e *DeviceRejectedError) Error() string {
	if len(e.Failing) == 1 {
		return fmt.Sprintf("limits: device %q rejected: %s %s", e.Adapter, e.Failing[0].Entry.Name, e.Failing[0].Reason)
	}
	return fmt.Sprintf("limits: device %q rejected: %d limits below baseline", e.Adapter, len(e.Failing))
}

// Is reports whether target is ErrDeviceRejected.
func (e *DeviceRejectedError) Is(target error) bool {
	return target == ErrDeviceRejected
}

// Names returns the failing limit names in baseline order.
func (e *DeviceRejectedError) Names() []Name {
	out := make([]Name, len(e.Failing))
	for i, f := range e.Failing {
		out[i] = f.Entry.Name
	}
	return out
}

// Report returns a human-readable list of every failing limit. Numbers are
// grouped for English.
func (e *DeviceRejectedError) Report() string {
	return e.ReportFor(language.English)
}

// ReportFor is Report with numbers formatted for tag.
func (e *DeviceRejectedError) ReportFor(tag language.Tag) string {
	p := message.NewPrinter(tag)
	var b strings.Builder
	p.Fprintf(&b, "device %q does not meet %d baseline limits:\n", e.Adapter, len(e.Failing))
	for _, f := range e.Failing {
		if f.Missing {
			p.Fprintf(&b, "  %-44s required %s %s, not reported\n", f.Entry.Name, relation(f.Entry.Kind), printValue(p, f.Entry.Baseline, f.Entry.Kind))
			continue
		}
		p.Fprintf(&b, "  %-44s required %s %s, reported %s (%s)\n",
			f.Entry.Name,
			relation(f.Entry.Kind),
			printValue(p, f.Entry.Baseline, f.Entry.Kind),
			printValue(p, f.Reported, f.Entry.Kind),
			f.Reason)
	}
	return b.String()
}

// LogValue lets the error be logged as a group of failing limits.
func (e *DeviceRejectedError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.Failing)+1)
	attrs = append(attrs, slog.String("adapter", e.Adapter))
	for _, f := range e.Failing {
		attrs = append(attrs, slog.String(string(f.Entry.Name), f.Reason))
	}
	return slog.GroupValue(attrs...)
}

func printValue(p *message.Printer, v Value, k Kind) string {
	switch k {
	case Vector:
		return p.Sprintf("(%d, %d, %d)", v.Vector[0], v.Vector[1], v.Vector[2])
	case Range:
		return p.Sprintf("[%d, %d]", v.Min, v.Max)
	default:
		return p.Sprintf("%d", v.Scalar)
	}
}

func relation(k Kind) string {
	switch k {
	case AtMost, Alignment:
		return "<="
	case Range:
		return "within"
	default:
		return ">="
	}
}
