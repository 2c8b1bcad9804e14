package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind identifies the failure class of a compile error.
type ErrorKind string

const (
	ErrMalformedFrontmatter      ErrorKind = "malformed_frontmatter"
	ErrInvalidColorValue         ErrorKind = "invalid_color_value"
	ErrEmptyPresentation         ErrorKind = "empty_presentation"
	ErrMalformedBlock            ErrorKind = "malformed_block"
	ErrMalformedColumns          ErrorKind = "malformed_columns"
	ErrUndefinedVariable         ErrorKind = "undefined_variable"
	ErrChartSeriesLengthMismatch ErrorKind = "chart_series_length_mismatch"
	ErrMissingImageSource        ErrorKind = "missing_image_source"
)

// Error is the single structured error type returned by Compile. A
// compilation either yields a complete document or exactly one Error; there
// is no partial output.
type Error struct {
	Kind ErrorKind
	// Slide is the 1-based slide number the error belongs to, 0 when the
	// error is not slide-scoped (frontmatter, empty document).
	Slide int
	// Line is the 1-based source line where known, 0 otherwise.
	Line int
	// Key names the offending frontmatter key, block kind, or variable name.
	Key    string
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Key != "" {
		fmt.Fprintf(&b, " (%s)", e.Key)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Slide > 0 {
		fmt.Fprintf(&b, " [slide %d]", e.Slide)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " [line %d]", e.Line)
	}
	return b.String()
}

// AsError unwraps err into a *Error when it is one.
func AsError(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsKind reports whether err is a compile error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	ce, ok := AsError(err)
	return ok && ce.Kind == kind
}
