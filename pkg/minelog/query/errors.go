package query

import "fmt"

// ValidationError represents a schema-level validation error, such as an
// unsupported version or an empty query list.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// QueryError represents an error specific to one query in a file.
type QueryError struct {
	Index   int    // 0-based index of the query in the file
	ID      string // may be empty if the id field is missing
	Field   string
	Message string
	Cause   error
}

func (e *QueryError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("query %q: %s: %s", e.ID, e.Field, e.Message)
	}
	return fmt.Sprintf("query[%d]: %s: %s", e.Index, e.Field, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *QueryError) Unwrap() error {
	return e.Cause
}
