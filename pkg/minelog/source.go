package minelog

import (
	"regexp"
	"strconv"
)

// LatestLogName is the file name of the live, uncompressed log.
const LatestLogName = "latest.log"

// archiveNamePattern matches rotated archives such as "2024-01-02-1.log.gz".
// Validation is lexical: month "13" or day "39" are accepted.
var archiveNamePattern = regexp.MustCompile(
	`^(20[0-9]{2}-[01][0-9]-[0-3][0-9])-([0-9]{1,2})\.log\.gz$`,
)

// ParseArchiveName reports whether name is a rotated archive name and, if
// so, returns its embedded date ("YYYY-MM-DD") and sequence number.
func ParseArchiveName(name string) (date string, number int, ok bool) {
	m := archiveNamePattern.FindStringSubmatch(name)
	if m == nil {
		return "", 0, false
	}
	// At most two digits, so Atoi cannot fail.
	n, _ := strconv.Atoi(m[2])
	return m[1], n, true
}

// SourceKind distinguishes archives from the live log.
type SourceKind int

const (
	// KindArchive is a gzip-compressed rotated log.
	KindArchive SourceKind = iota
	// KindLatest is the live latest.log.
	KindLatest
)

func (k SourceKind) String() string {
	switch k {
	case KindArchive:
		return "archive"
	case KindLatest:
		return "latest"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k SourceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Source is one unit of scan: an archive or the live log.
// Its identity is Path.
type Source struct {
	Kind SourceKind `json:"kind"`
	Path string     `json:"path"`
	Name string     `json:"name"`

	// Date and Number are set for archives only.
	Date   string `json:"date,omitempty"`
	Number int    `json:"number,omitempty"`
}

// Compressed reports whether the source is gzip-compressed on disk.
func (s Source) Compressed() bool {
	return s.Kind == KindArchive
}

func (s Source) String() string {
	return s.Path
}

// SourceContent pairs a source with its fully decoded bytes.
type SourceContent struct {
	Source  Source
	Content []byte
}
