// Package minelog searches Minecraft client log directories.
//
// A log directory holds one live, uncompressed latest.log and any number of
// gzip-compressed rotated archives named YYYY-MM-DD-N.log.gz. This package
// allows you to:
//   - List the archives and the live log in a deterministic order
//   - Decode archives transparently and scan every source with one regular
//     expression
//   - Rewrite, deduplicate and sort the matches
//
// Every search is a full scan; nothing is indexed or cached between calls.
//
// # Basic Usage
//
// To print every chat line from all logs:
//
//	s, err := minelog.New("") // default directory for this OS
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pattern := []byte(`^\[[0-9:]+\] \[Server thread/INFO\]: <(\w+)> (.*)$`)
//	for line, err := range s.Search(ctx, pattern,
//	    minelog.WithReplacement([]byte(`\1: \2`)),
//	) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("%s\n", line)
//	}
//
// # Patterns
//
// Patterns are byte-oriented. [Compile] accepts a []byte (compiled with the
// multiline flag so ^ and $ match at line boundaries), a [*Pattern], or a
// *regexp.Regexp. A string is rejected with [ErrTypeMismatch]: log files do
// not declare their encoding, so converting text is left to the caller.
//
// Go's regexp package matches UTF-8. Logs written in a legacy code page can
// be transcoded on read with [WithSourceEncoding]; otherwise each byte that
// is not valid UTF-8 matches "." on its own.
//
// # Raw Matches
//
// [Session.Matches] yields [Match] values that keep the source, the byte
// offsets and the capture groups:
//
//	for m, err := range s.Matches(ctx, []byte(`(?P<level>WARN|ERROR)\]: (.*)$`)) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("%s %s@%d %s\n", m.Date(), m.Source.Name, m.Start, m.NamedGroup("level"))
//	}
//
// # Errors
//
// [New] fails with [ErrNotADirectory]. A corrupt archive ends iteration
// with a [*SourceError] wrapping [ErrDecodeFailure]. A missing latest.log is
// not an error.
package minelog
