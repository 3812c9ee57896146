// Package models defines the core data structures shared across the service.
// It includes the input table records, graph types and query results.
package models

import (
	"errors"
	"fmt"
)

var (
	ErrLookup       = errors.New("lookup failed")
	ErrMalformedRow = errors.New("malformed row")
)

// LookupError reports a reference that resolves to nothing: a character
// missing from the character table, an unknown issue or node id.
type LookupError struct {
	Kind string
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

// MalformedRowError reports a row missing a required field. Row is 1-based
// and counts data rows only.
type MalformedRowError struct {
	Table string
	Row   int
	Field string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s row %d: missing required field %q", e.Table, e.Row, e.Field)
}

func (e *MalformedRowError) Is(target error) bool {
	return target == ErrMalformedRow
}
