// Package query provides saved searches for minelog.
// Saved searches are stored in YAML files and bundle a pattern with its
// replacement, unique and sort settings under an id.
package query

import "github.com/minelog/minelog-go/pkg/minelog"

// File represents the structure of a YAML query file.
//
// Example YAML file:
//
//	version: 1
//	queries:
//	  - id: chat
//	    pattern: '^\[[0-9:]+\] \[Server thread/INFO\]: <(\w+)> (.*)$'
//	    replace: '\1: \2'
//	  - id: players
//	    pattern: '^\[[0-9:]+\] \[Server thread/INFO\]: (\w+) joined the game$'
//	    replace: '\1'
//	    unique: true
//	    sort: true
type File struct {
	// Version is the query file format version. Currently only version 1 is supported.
	Version int `yaml:"version"`

	// Queries is the list of saved searches.
	Queries []Query `yaml:"queries"`
}

// Query is a single saved search.
type Query struct {
	// ID is a unique identifier for this query (e.g., "chat").
	ID string `yaml:"id"`

	// Description is free text shown by the CLI.
	Description string `yaml:"description,omitempty"`

	// Pattern is the regular expression, compiled in multiline mode.
	Pattern string `yaml:"pattern"`

	// Replace is an optional replacement template (\1, \g<name>).
	// nil means no replacement; an empty string replaces with nothing.
	Replace *string `yaml:"replace,omitempty"`

	Unique bool `yaml:"unique,omitempty"`
	Sort   bool `yaml:"sort,omitempty"`
}

// Find returns the query with the given id.
func (f *File) Find(id string) (*Query, bool) {
	for i := range f.Queries {
		if f.Queries[i].ID == id {
			return &f.Queries[i], true
		}
	}
	return nil, false
}

// PatternBytes returns the pattern as bytes, ready for minelog.Compile.
func (q *Query) PatternBytes() []byte {
	return []byte(q.Pattern)
}

// SearchOptions converts the query settings into minelog search options.
func (q *Query) SearchOptions() []minelog.SearchOption {
	opts := []minelog.SearchOption{
		minelog.WithUnique(q.Unique),
		minelog.WithSort(q.Sort),
	}
	if q.Replace != nil {
		opts = append(opts, minelog.WithReplacement([]byte(*q.Replace)))
	}
	return opts
}
