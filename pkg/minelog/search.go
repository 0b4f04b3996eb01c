package minelog

import (
	"bytes"
	"context"
	"iter"
	"slices"
)

// Search runs pattern over every source and yields the resulting records.
//
// Each record is the full matched span, optionally rewritten by
// WithReplacement or WithReplaceFunc (first occurrence within the record
// only). Then:
//   - WithUnique drops records equal to one already emitted
//   - WithSort buffers all records and yields them in ascending byte order
//   - with neither, every record streams in extraction order
//
// Without WithSort nothing is buffered except the set of seen values
// needed by WithUnique. Yielded records must not be modified.
//
// Errors (invalid pattern or template, unreadable directory, corrupt
// archive, cancelled ctx) are yielded once and end the iteration.
//
// Example:
//
//	for name, err := range s.Search(ctx,
//	    []byte(`^\[[0-9:]+\] \[Server thread/INFO\]: (\w+) joined the game$`),
//	    minelog.WithReplacement([]byte(`\1`)),
//	    minelog.WithUnique(true),
//	    minelog.WithSort(true),
//	) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("%s\n", name)
//	}
func (s *Session) Search(ctx context.Context, pattern any, opts ...SearchOption) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		cfg := applySearchOptions(opts)

		pat, err := Compile(pattern)
		if err != nil {
			yield(nil, err)
			return
		}
		repl, err := newReplacer(pat.re, cfg)
		if err != nil {
			yield(nil, err)
			return
		}

		var seen map[string]struct{}
		if cfg.unique {
			seen = make(map[string]struct{})
		}
		var buffered [][]byte

		for m, err := range s.matches(ctx, pat) {
			if err != nil {
				yield(nil, err)
				return
			}

			record := m.Content
			if repl != nil {
				record = repl.apply(record)
			}

			if seen != nil {
				if _, dup := seen[string(record)]; dup {
					continue
				}
				seen[string(record)] = struct{}{}
			}

			if cfg.sort {
				// Clone so the source buffer can be released.
				buffered = append(buffered, bytes.Clone(record))
				continue
			}
			if !yield(record, nil) {
				return
			}
		}

		if !cfg.sort {
			return
		}
		slices.SortFunc(buffered, bytes.Compare)
		s.log.Debug("sorted results", "count", len(buffered))
		for _, record := range buffered {
			if !yield(record, nil) {
				return
			}
		}
	}
}

// SearchAll is like Search but collects every record into a slice.
func (s *Session) SearchAll(ctx context.Context, pattern any, opts ...SearchOption) ([][]byte, error) {
	var records [][]byte
	for record, err := range s.Search(ctx, pattern, opts...) {
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// MatchesAll is like Matches but collects every match into a slice.
func (s *Session) MatchesAll(ctx context.Context, pattern any) ([]Match, error) {
	var matches []Match
	for m, err := range s.Matches(ctx, pattern) {
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}
