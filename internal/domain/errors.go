package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyLog is returned when an operation needs a latest entry and the log
// has none.
var ErrEmptyLog = errors.New("no entries logged yet")

// ValidationError reports input fields that are missing, non-numeric or not
// positive.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid: " + strings.Join(e.Fields, ", ")
}

// IndexError reports a delete position outside the log.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

// PersistenceError wraps a store failure. When returned from a mutation the
// in-memory log already holds the change but the store does not.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("not saved: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
