package minelog

import (
	"fmt"
	"log/slog"

	"golang.org/x/text/encoding"
)

// Option configures a Session using the functional options pattern.
type Option func(*sessionConfig)

type sessionConfig struct {
	logger         *slog.Logger
	maxSourceBytes int64             // 0 = unlimited
	sourceEncoding encoding.Encoding // nil = raw bytes
}

func applyOptions(opts []Option) *sessionConfig {
	cfg := &sessionConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func (c *sessionConfig) validate() error {
	if c.maxSourceBytes < 0 {
		return fmt.Errorf("maxSourceBytes must be non-negative, got %d", c.maxSourceBytes)
	}
	return nil
}

// WithLogger sets a logger for debug output.
// If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithMaxSourceBytes caps the decoded size of a single source.
// A source larger than max fails with ErrSourceTooLarge.
// Default is 0 (unlimited).
func WithMaxSourceBytes(max int64) Option {
	return func(c *sessionConfig) {
		c.maxSourceBytes = max
	}
}

// WithSourceEncoding transcodes every source from enc to UTF-8 after
// decompression and before matching. Match offsets then refer to the
// transcoded content. By default sources are matched as raw bytes, and
// bytes that are not valid UTF-8 match "." one at a time.
func WithSourceEncoding(enc encoding.Encoding) Option {
	return func(c *sessionConfig) {
		c.sourceEncoding = enc
	}
}

// SearchOption configures Search.
type SearchOption func(*searchConfig)

type searchConfig struct {
	template    []byte
	hasTemplate bool
	replaceFunc ReplaceFunc
	unique      bool
	sort        bool
}

func applySearchOptions(opts []SearchOption) *searchConfig {
	cfg := &searchConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithReplacement rewrites each record by substituting the first match of
// the pattern inside it with template. Group references are written \1,
// \g<1> or \g<name>; \\, \n, \r and \t are escapes.
// It replaces any earlier WithReplaceFunc.
func WithReplacement(template []byte) SearchOption {
	return func(c *searchConfig) {
		c.template = template
		c.hasTemplate = true
		c.replaceFunc = nil
	}
}

// WithReplaceFunc is like WithReplacement but computes the substitution.
// If fn is nil, this option has no effect.
func WithReplaceFunc(fn ReplaceFunc) SearchOption {
	return func(c *searchConfig) {
		if fn != nil {
			c.replaceFunc = fn
			c.template = nil
			c.hasTemplate = false
		}
	}
}

// WithUnique drops records equal to one already emitted.
func WithUnique(unique bool) SearchOption {
	return func(c *searchConfig) {
		c.unique = unique
	}
}

// WithSort buffers every record and emits them in ascending byte order.
// This holds the full result set in memory.
func WithSort(sort bool) SearchOption {
	return func(c *searchConfig) {
		c.sort = sort
	}
}
