package minelog

import (
	"context"
	"iter"
)

// Match is one occurrence of a pattern within one source.
type Match struct {
	// Source is the file the match was found in.
	Source Source

	// Start and End are byte offsets of the match in the decoded content.
	Start int
	End   int

	// Content is the matched bytes. It aliases the source buffer; copy it
	// before modifying.
	Content []byte

	content []byte // whole decoded source
	loc     []int  // submatch index pairs
	names   []string
}

// Group returns capture group i, or nil if the group did not participate
// or does not exist. Group(0) is Content.
func (m Match) Group(i int) []byte {
	if i < 0 || 2*i+1 >= len(m.loc) {
		return nil
	}
	start, end := m.loc[2*i], m.loc[2*i+1]
	if start < 0 {
		return nil
	}
	return m.content[start:end]
}

// NamedGroup returns the capture group called name, or nil.
func (m Match) NamedGroup(name string) []byte {
	for i, n := range m.names {
		if n != "" && n == name {
			return m.Group(i)
		}
	}
	return nil
}

// Date returns the archive date of the source, or "" for the live log.
func (m Match) Date() string {
	return m.Source.Date
}

// Number returns the archive sequence number of the source, or 0 for the
// live log.
func (m Match) Number() int {
	return m.Source.Number
}

// Matches yields every match of pattern across the session's sources.
// Sources are visited in Sources order and matches within a source in
// left-to-right, non-overlapping order; sources never interleave.
//
// Iteration is lazy per source: each source is read and scanned whole, and
// the offsets of all its matches are held until the last one is yielded.
// Go's regexp cannot resume a search at an offset with the surrounding
// text still visible to ^ and \b, so a source is not scanned piecemeal.
// Breaking out of the loop stops before the next source is opened.
//
// pattern is resolved with Compile; an invalid pattern is yielded as the
// first and only error.
func (s *Session) Matches(ctx context.Context, pattern any) iter.Seq2[Match, error] {
	return func(yield func(Match, error) bool) {
		pat, err := Compile(pattern)
		if err != nil {
			yield(Match{}, err)
			return
		}
		s.matches(ctx, pat)(yield)
	}
}

func (s *Session) matches(ctx context.Context, pat *Pattern) iter.Seq2[Match, error] {
	return func(yield func(Match, error) bool) {
		names := pat.re.SubexpNames()
		for sc, err := range s.Contents(ctx) {
			if err != nil {
				yield(Match{}, err)
				return
			}

			count := 0
			for _, loc := range pat.re.FindAllSubmatchIndex(sc.Content, -1) {
				count++
				m := Match{
					Source:  sc.Source,
					Start:   loc[0],
					End:     loc[1],
					Content: sc.Content[loc[0]:loc[1]],
					content: sc.Content,
					loc:     loc,
					names:   names,
				}
				if !yield(m, nil) {
					return
				}
			}
			s.log.Debug("scanned source", "path", sc.Source.Path, "matches", count)
		}
	}
}
