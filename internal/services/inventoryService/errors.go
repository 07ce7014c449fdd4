package inventoryservice

import (
	"errors"
	"fmt"
)

// ErrNoComponents is returned by parsers that require at least one record
// in their input, e.g. a plist dictionary with no disk properties.
var ErrNoComponents = errors.New("no components found")

// maxRawInError caps how much raw output is echoed by Error(). The full
// text stays available on the Raw field.
const maxRawInError = 120

// DecodeError records output that matched neither the single-object nor the
// array shape, or a required field that was missing.
type DecodeError struct {
	Source string // e.g. "Win32_Processor JSON", "diskutil plist"
	Raw    string // the offending raw output
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v (raw: %q)", e.Source, e.Err, truncate(e.Raw))
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FieldParseError records a numeric text field that could not be parsed.
type FieldParseError struct {
	Field string // e.g. "machdep.cpu.core_count"
	Raw   string
	Err   error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("parse field %s: %v (raw: %q)", e.Field, e.Err, truncate(e.Raw))
}

func (e *FieldParseError) Unwrap() error {
	return e.Err
}

// ComponentError ties a failure to the component kind whose query raised it.
// Use errors.As to find which kind failed.
type ComponentError struct {
	Kind Kind
	Err  error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("collect %s: %v", e.Kind, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}

func truncate(s string) string {
	if len(s) <= maxRawInError {
		return s
	}
	return s[:maxRawInError] + "..."
}
