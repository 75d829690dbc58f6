package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalogUnavailable signals that the primary item table cannot be read.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrItemNotFound signals that no item matches the requested title or id.
	ErrItemNotFound = errors.New("item not found")
	// ErrMalformedRow signals a catalog row that cannot be parsed.
	ErrMalformedRow = errors.New("malformed row")
	// ErrInvalidRequest signals a request that fails validation.
	ErrInvalidRequest = errors.New("invalid request")
)

// MalformedRowError wraps ErrMalformedRow with the offending position.
type MalformedRowError struct {
	Table  string
	Line   int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s: %s line %d: %s", ErrMalformedRow.Error(), e.Table, e.Line, e.Reason)
}

func (e *MalformedRowError) Unwrap() error { return ErrMalformedRow }

// NewMalformedRow creates a malformed row error.
func NewMalformedRow(table string, line int, reason string) error {
	return &MalformedRowError{Table: table, Line: line, Reason: reason}
}
