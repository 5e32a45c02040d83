package model

import "fmt"

// MalformedChartError reports a chart field that is missing or cannot be packed.
type MalformedChartError struct {
	Field  string
	Reason string
}

func (e *MalformedChartError) Error() string {
	return fmt.Sprintf("malformed chart: %s: %s", e.Field, e.Reason)
}

func Malformed(field string, format string, args ...any) error {
	return &MalformedChartError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

type InputOpenError struct {
	Path string
	Err  error
}

func (e *InputOpenError) Error() string {
	return fmt.Sprintf("Failed to open %s: %v", e.Path, e.Err)
}

func (e *InputOpenError) Unwrap() error { return e.Err }

type OutputOpenError struct {
	Path string
	Err  error
}

func (e *OutputOpenError) Error() string {
	return fmt.Sprintf("Failed to open %s: %v", e.Path, e.Err)
}

func (e *OutputOpenError) Unwrap() error { return e.Err }

// WithinField prefixes the field of a MalformedChartError with the path of its container.
// Other errors are returned unchanged.
func WithinField(err error, prefix string) error {
	if m, ok := err.(*MalformedChartError); ok {
		return &MalformedChartError{Field: prefix + "." + m.Field, Reason: m.Reason}
	}
	return err
}
