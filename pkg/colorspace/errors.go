package colorspace

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedConversion is returned when a source or target space is
	// outside the supported set.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrAmbiguousConversion is returned for conversions between the device
	// spaces HSV/HLS and the CIE family, which have no defined colorimetric link.
	ErrAmbiguousConversion = errors.New("ambiguous conversion")

	// ErrInvalidInput is matched by every *ValidationError.
	ErrInvalidInput = errors.New("invalid color input")
)

// ConversionError reports a failed conversion between two spaces.
type ConversionError struct {
	From Space
	To   Space
	// Target holds the requested name when the target could not be parsed.
	Target string
	Err    error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	to := e.To.String()
	if e.Target != "" {
		to = fmt.Sprintf("%q", e.Target)
	}
	return fmt.Sprintf("convert %s to %s: %v", e.From, to, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ValidationError describes malformed constructor or Set input.
type ValidationError struct {
	Space   Space
	Channel string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Channel == "" {
		return fmt.Sprintf("%s: %s", e.Space, e.Message)
	}
	return fmt.Sprintf("%s: channel %s: %s", e.Space, e.Channel, e.Message)
}

// Is reports whether target is ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(s Space, channel, format string, args ...any) *ValidationError {
	return &ValidationError{Space: s, Channel: channel, Message: fmt.Sprintf(format, args...)}
}
