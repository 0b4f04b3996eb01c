package query

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/minelog/minelog-go/internal/safefile"
	"github.com/minelog/minelog-go/pkg/minelog"
)

const (
	// MaxFileSize is the maximum allowed size for a query file (1MB).
	MaxFileSize = 1 * 1024 * 1024

	// MaxPatternLength is the maximum allowed length of a query pattern.
	MaxPatternLength = 1024

	// MaxQueryCount is the maximum number of queries in one file.
	MaxQueryCount = 1000

	// SupportedVersion is the currently supported query file format version.
	SupportedVersion = 1
)

// sanitizePathError removes the path from os.PathError so error messages
// don't echo file system paths back.
func sanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

// Load reads and parses a query file from the given path.
// Returns an error if the file cannot be read, is too large, or fails validation.
//
// Example:
//
//	qf, err := query.Load("queries.yaml")
//	if err != nil {
//	    log.Fatalf("failed to load query file: %v", err)
//	}
func Load(path string) (*File, error) {
	f, info, err := safefile.OpenRegular(path)
	if errors.Is(err, safefile.ErrNotRegularFile) {
		return nil, errors.New("query file must be a regular file (not FIFO, device, or special file)")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open query file: %w", sanitizePathError(err))
	}
	defer f.Close()

	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("query file too large: %d bytes (max %d)", info.Size(), MaxFileSize)
	}

	data, err := safefile.ReadAll(f, MaxFileSize, info.Size())
	if errors.Is(err, safefile.ErrTooLarge) {
		return nil, fmt.Errorf("query file too large (max %d bytes)", MaxFileSize)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read query file: %w", sanitizePathError(err))
	}

	return LoadBytes(data)
}

// LoadBytes parses a query file from a byte slice.
func LoadBytes(data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, errors.New("query file is empty")
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("query file too large: %d bytes (max %d)", len(data), MaxFileSize)
	}

	var qf File
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := qf.Validate(); err != nil {
		return nil, err
	}

	return &qf, nil
}

// Validate checks the query file. It checks for:
//   - Supported version number
//   - At least one query, and no more than MaxQueryCount
//   - Required fields (id, pattern) and unique ids
//   - Pattern length, pattern syntax and replacement templates
func (qf *File) Validate() error {
	if qf.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", qf.Version, SupportedVersion),
		}
	}

	if len(qf.Queries) == 0 {
		return &ValidationError{
			Field:   "queries",
			Message: "at least one query is required",
		}
	}
	if len(qf.Queries) > MaxQueryCount {
		return &ValidationError{
			Field:   "queries",
			Message: fmt.Sprintf("too many queries (%d), maximum allowed is %d", len(qf.Queries), MaxQueryCount),
		}
	}

	seenIDs := make(map[string]int, len(qf.Queries))
	for i, q := range qf.Queries {
		if q.ID == "" {
			return &QueryError{Index: i, Field: "id", Message: "id is required"}
		}
		if prev, exists := seenIDs[q.ID]; exists {
			return &QueryError{
				Index:   i,
				ID:      q.ID,
				Field:   "id",
				Message: fmt.Sprintf("duplicate id (previously defined at query[%d])", prev),
			}
		}
		seenIDs[q.ID] = i

		if q.Pattern == "" {
			return &QueryError{Index: i, ID: q.ID, Field: "pattern", Message: "pattern is required"}
		}
		if len(q.Pattern) > MaxPatternLength {
			return &QueryError{
				Index:   i,
				ID:      q.ID,
				Field:   "pattern",
				Message: fmt.Sprintf("pattern too long: %d bytes (max %d)", len(q.Pattern), MaxPatternLength),
			}
		}

		pat, err := minelog.Compile(q.PatternBytes())
		if err != nil {
			return &QueryError{Index: i, ID: q.ID, Field: "pattern", Message: "invalid regular expression", Cause: err}
		}
		if q.Replace != nil {
			if err := minelog.CheckReplacement(pat, []byte(*q.Replace)); err != nil {
				return &QueryError{Index: i, ID: q.ID, Field: "replace", Message: err.Error(), Cause: err}
			}
		}
	}

	return nil
}
