package types

import (
	"errors"
	"fmt"
)

// ErrEmptyPattern is returned when a search is configured without a pattern.
var ErrEmptyPattern = errors.New("pattern must not be empty")

// InvalidPatternSyntaxError reports a regular expression that failed to compile.
// It is fatal: no source is opened once it has been returned.
type InvalidPatternSyntaxError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternSyntaxError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternSyntaxError) Unwrap() error {
	return e.Err
}

// SourceErrorKind classifies a failure attributable to one input source.
type SourceErrorKind int

const (
	// SourceUnavailable means the source could not be opened or read.
	SourceUnavailable SourceErrorKind = iota
	// SourceDecoding means the source content is not valid text.
	SourceDecoding
)

func (k SourceErrorKind) String() string {
	switch k {
	case SourceUnavailable:
		return "unavailable"
	case SourceDecoding:
		return "decoding"
	default:
		return fmt.Sprintf("SourceErrorKind(%d)", int(k))
	}
}

// SourceError identifies the source that failed and why.
type SourceError struct {
	Origin string
	Kind   SourceErrorKind
	// Index is the 1-based line that failed to decode, 0 when not line specific.
	Index uint64
	Err   error
}

func (e *SourceError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("%s:%d: %s: %v", e.Origin, e.Index, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Origin, e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
