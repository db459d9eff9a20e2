// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// NameRecord is one row of the reference name table.
type NameRecord struct {
	Native  string // name as written in its native script
	English string // canonical English-alphabet rendering
	Gender  string // informational tag, never used in scoring
	Index   int    // stable row position, unique for the process lifetime
}

// Column selects which side of the reference table a scan runs against.
type Column int

const (
	// ColumnNative targets the native-script column.
	ColumnNative Column = iota
	// ColumnEnglish targets the English-script column.
	ColumnEnglish
)

// String returns the column's dataset header name.
func (c Column) String() string {
	switch c {
	case ColumnNative:
		return "name"
	case ColumnEnglish:
		return "english_name"
	default:
		return fmt.Sprintf("column(%d)", int(c))
	}
}

// Valid reports whether c is one of the two recognized columns.
func (c Column) Valid() bool {
	return c == ColumnNative || c == ColumnEnglish
}

// Method identifies a similarity metric.
type Method int

const (
	// Levenshtein is unit-cost insert/delete/substitute edit distance.
	Levenshtein Method = iota
	// DamerauLevenshtein adds unit-cost adjacent transposition.
	DamerauLevenshtein
	// JaroWinkler is Jaro similarity with the standard prefix boost.
	JaroWinkler
)

// String returns the method's wire name.
func (m Method) String() string {
	switch m {
	case Levenshtein:
		return "levenshtein"
	case DamerauLevenshtein:
		return "damerau_levenshtein"
	case JaroWinkler:
		return "jaro_winkler"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Valid reports whether m is one of the three recognized methods.
func (m Method) Valid() bool {
	switch m {
	case Levenshtein, DamerauLevenshtein, JaroWinkler:
		return true
	}
	return false
}

// ParseMethod maps a wire name to a Method.
// Returns ErrUnsupportedMethod for anything it does not recognize.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "levenshtein":
		return Levenshtein, nil
	case "damerau_levenshtein", "damerau":
		return DamerauLevenshtein, nil
	case "jaro_winkler":
		return JaroWinkler, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
	}
}

// Match is the transient result of scoring one dataset row against a query.
type Match struct {
	Text    string  // the field value that was scored (native or English form)
	Score   float64 // normalized similarity in [0, 100]
	English string  // english_form of the matching row, whatever column matched
	Index   int     // dataset row index
	Column  Column  // which column the text came from
}

// Suggestion is the outcome of a full recommendation pass for one name.
type Suggestion struct {
	Input     string   `json:"input_name"`
	Resolved  string   `json:"resolved_name"`
	Usernames []string `json:"recommended_usernames"`
}

// BatchJob is one unit of work in the asynchronous batch pipeline.
type BatchJob struct {
	JobID   string // unique id for at-most-once processing
	BatchID string // owning batch
	Name    string // input name to run the pipeline for
}
