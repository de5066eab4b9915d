package subject

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCast is returned when a batch value cannot be cast to the column type
	ErrInvalidCast = errors.New("invalid cast")

	// ErrNullValue is returned when a batch cell required for an identifier is nil
	ErrNullValue = errors.New("null value")

	// ErrMissingColumn is returned when a column required for an identifier is absent
	ErrMissingColumn = errors.New("missing column")

	// ErrColumnLength is returned when batch columns have different row counts
	ErrColumnLength = errors.New("column length mismatch")
)

// CastError describes a batch cell that could not be converted.
type CastError struct {
	Row    int
	Column string
	Value  any
	Err    error
}

func (e *CastError) Error() string {
	return fmt.Sprintf("row %d: column %s: cannot cast %#v (%T): %v", e.Row, e.Column, e.Value, e.Value, e.Err)
}

func (e *CastError) Unwrap() error {
	return e.Err
}
