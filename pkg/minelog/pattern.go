package minelog

import (
	"fmt"
	"regexp"
)

// multilineFlag makes ^ and $ match at line boundaries. Sources are scanned
// as one buffer, never line by line, so this is always on.
const multilineFlag = "(?m)"

// Pattern is a compiled byte-oriented regular expression.
// Pattern is safe for concurrent use by multiple goroutines.
type Pattern struct {
	re *regexp.Regexp
}

// Compile resolves a caller-supplied pattern into a *Pattern.
//
// Accepted inputs:
//   - []byte: compiled with multiline mode enabled
//   - *Pattern: returned unchanged
//   - *regexp.Regexp: wrapped unchanged; its flags are the caller's choice
//
// A string (a text pattern) or any other type is rejected with
// ErrTypeMismatch. Text is never silently re-encoded to bytes: log files do
// not carry their encoding, so the caller must choose it.
func Compile(p any) (*Pattern, error) {
	switch v := p.(type) {
	case *Pattern:
		if v == nil {
			return nil, fmt.Errorf("%w: got nil *Pattern", ErrTypeMismatch)
		}
		return v, nil
	case *regexp.Regexp:
		if v == nil {
			return nil, fmt.Errorf("%w: got nil *regexp.Regexp", ErrTypeMismatch)
		}
		return &Pattern{re: v}, nil
	case []byte:
		re, err := regexp.Compile(multilineFlag + string(v))
		if err != nil {
			return nil, &PatternError{Pattern: string(v), Err: err}
		}
		return &Pattern{re: re}, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrTypeMismatch, p)
	}
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(p any) *Pattern {
	pat, err := Compile(p)
	if err != nil {
		panic(`minelog: Compile: ` + err.Error())
	}
	return pat
}

// Regexp returns the underlying regular expression.
func (p *Pattern) Regexp() *regexp.Regexp {
	return p.re
}

// String returns the source text, including the multiline flag prefix.
func (p *Pattern) String() string {
	return p.re.String()
}

// SubexpNames returns the names of the capture groups; index 0 is the whole
// match and always "".
func (p *Pattern) SubexpNames() []string {
	return p.re.SubexpNames()
}

// NumSubexp returns the number of capture groups.
func (p *Pattern) NumSubexp() int {
	return p.re.NumSubexp()
}
