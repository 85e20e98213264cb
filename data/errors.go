package data

import "errors"

// Common errors returned by the data package.
var (
	// ErrInvalidSource is returned when a construction source has an
	// unsupported shape (a flat slice, a scalar, or an unrecognized type).
	ErrInvalidSource = errors.New("invalid table source")

	// ErrInvalidName is returned when a column name is empty.
	ErrInvalidName = errors.New("invalid column name")

	// ErrDuplicateName is returned when a column name is already in use.
	ErrDuplicateName = errors.New("duplicate column name")

	// ErrLengthMismatch is returned when a column's length differs from the
	// table's row count.
	ErrLengthMismatch = errors.New("column length mismatch")

	// ErrNotOneDimensional is returned when column data is not a
	// one-dimensional sequence of scalar values.
	ErrNotOneDimensional = errors.New("column data is not one-dimensional")

	// ErrRagged is returned when the rows of a matrix source have
	// different lengths.
	ErrRagged = errors.New("matrix rows have different lengths")

	// ErrColumnNotFound is returned when a column name is not found.
	ErrColumnNotFound = errors.New("column not found")

	// ErrRowRange is returned when a row index is out of range.
	ErrRowRange = errors.New("row index out of range")

	// ErrInvalidQuery is returned when a filter expression is invalid.
	ErrInvalidQuery = errors.New("invalid query expression")
)
