package format

import (
	"errors"
	"fmt"
)

// ErrUnsupported is matched by every capability failure of this package
// through errors.Is.
var ErrUnsupported = errors.New("format: unsupported")

// FormatUsageUnsupportedError is returned when a resource creation request
// asks for a usage the format cannot provide. It is a hard validation failure;
// the caller must pick another format or usage.
type FormatUsageUnsupportedError struct {
	Format Format
	// Usage is the requested usage.
	Usage Usage
	// Missing is the part of Usage the format does not support.
	Missing Usage
}

func (e *FormatUsageUnsupportedError) Error() string {
	if e.Usage == 0 {
		return fmt.Sprintf("format: %s: no usage requested", e.Format)
	}
	return fmt.Sprintf("format: %s does not support usage %s (missing %s)", e.Format, e.Usage, e.Missing)
}

// Is makes errors.Is(err, ErrUnsupported) match.
func (e *FormatUsageUnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// TextureLimitError is returned when a texture description falls outside the
// valid range of its format and dimension.
type TextureLimitError struct {
	Format    Format
	Dimension Dimension
	Reason    string
}

func (e *TextureLimitError) Error() string {
	return fmt.Sprintf("format: %s %s texture: %s", e.Format, e.Dimension, e.Reason)
}

// Is makes errors.Is(err, ErrUnsupported) match.
func (e *TextureLimitError) Is(target error) bool {
	return target == ErrUnsupported
}
