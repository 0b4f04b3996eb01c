package minelog

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNotADirectory is returned by New when the root does not exist or
	// is not a directory.
	ErrNotADirectory = errors.New("not a directory")

	// ErrTypeMismatch is returned by Compile when the pattern is not a byte
	// pattern (for example a string).
	ErrTypeMismatch = errors.New("pattern must be []byte, *minelog.Pattern or *regexp.Regexp")

	// ErrDecodeFailure is returned when an archive cannot be decompressed.
	ErrDecodeFailure = errors.New("archive decode failure")

	// ErrSourceTooLarge is returned when a source exceeds WithMaxSourceBytes.
	ErrSourceTooLarge = errors.New("source exceeds size limit")
)

// SourceOp identifies the operation that failed on a source.
type SourceOp string

// Source operations reported in SourceError.
const (
	OpList   SourceOp = "list"
	OpOpen   SourceOp = "open"
	OpDecode SourceOp = "decode"
	OpRead   SourceOp = "read"
)

// SourceError describes a failure while enumerating or reading a source.
type SourceError struct {
	Op   SourceOp
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// PatternError is returned when a byte pattern fails to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying regexp syntax error.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// TemplateError is returned when a replacement template references a group
// the pattern does not define, or is otherwise malformed.
type TemplateError struct {
	Template string
	Offset   int
	Message  string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("invalid replacement template at offset %d: %s", e.Offset, e.Message)
}
