package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/minelog/minelog-go/pkg/minelog"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

func checkFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("unknown format: %s (want jsonl or pretty)", format)
	}
	return nil
}

// matchRecord is the JSON Lines form of a match. Bytes that are not valid
// UTF-8 are replaced with U+FFFD by encoding/json.
type matchRecord struct {
	Source string             `json:"source"`
	Kind   minelog.SourceKind `json:"kind"`
	Date   string             `json:"date,omitempty"`
	Number int                `json:"number,omitempty"`
	Start  int                `json:"start"`
	End    int                `json:"end"`
	Match  string             `json:"match"`
	Groups map[string]string  `json:"groups,omitempty"`
}

func newMatchRecord(m minelog.Match, names []string) matchRecord {
	rec := matchRecord{
		Source: m.Source.Name,
		Kind:   m.Source.Kind,
		Date:   m.Date(),
		Number: m.Number(),
		Start:  m.Start,
		End:    m.End,
		Match:  string(m.Content),
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		if g := m.NamedGroup(name); g != nil {
			if rec.Groups == nil {
				rec.Groups = make(map[string]string)
			}
			rec.Groups[name] = string(g)
		}
	}
	return rec
}

// OutputMatch writes a match in the specified format to the writer.
// names are the pattern's capture group names.
func OutputMatch(format string, m minelog.Match, names []string, out io.Writer) error {
	rec := newMatchRecord(m, names)
	switch format {
	case "jsonl":
		return outputJSON(rec, out)
	case "pretty":
		return outputMatchPretty(rec, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputSource writes a source in the specified format to the writer.
func OutputSource(format string, src minelog.Source, out io.Writer) error {
	switch format {
	case "jsonl":
		return outputJSON(src, out)
	case "pretty":
		return outputSourcePretty(src, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// outputJSON writes v as one JSON line. HTML escaping is off so that log
// text such as "<Steve>" stays readable.
func outputJSON(v any, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func outputMatchPretty(rec matchRecord, out io.Writer) error {
	var err error
	if len(rec.Groups) > 0 {
		_, err = fmt.Fprintf(out, "%s:%d-%d %s %s\n",
			rec.Source, rec.Start, rec.End, quoteIfNeeded(rec.Match), formatGroups(rec.Groups))
	} else {
		_, err = fmt.Fprintf(out, "%s:%d-%d %s\n",
			rec.Source, rec.Start, rec.End, quoteIfNeeded(rec.Match))
	}
	return err
}

func outputSourcePretty(src minelog.Source, out io.Writer) error {
	var err error
	switch src.Kind {
	case minelog.KindArchive:
		_, err = fmt.Fprintf(out, "%-7s %s #%d %s\n", src.Kind, src.Date, src.Number, src.Name)
	default:
		_, err = fmt.Fprintf(out, "%-7s %s\n", src.Kind, src.Name)
	}
	return err
}

// formatGroups formats named groups as sorted key=value pairs.
func formatGroups(groups map[string]string) string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(groups))
	for _, k := range keys {
		parts = append(parts, k+"="+quoteIfNeeded(groups[k]))
	}
	return strings.Join(parts, " ")
}

// quoteIfNeeded quotes a value if it contains spaces, equals signs, quotes,
// backslashes or control characters.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}

	needsQuote := strings.ContainsFunc(v, func(c rune) bool {
		return c == ' ' || c == '=' || c == '"' || c == '\\' || c < 0x20 || c == 0x7F
	})
	if !needsQuote {
		return v
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range v {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c == 0x7F:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
