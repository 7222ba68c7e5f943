package dataset

import "errors"

// Common errors returned by the dataset package.
var (
	// ErrInvalidColumn is returned when a column index is out of range.
	ErrInvalidColumn = errors.New("invalid column index")

	// ErrInvalidRow is returned when a row index is out of range.
	ErrInvalidRow = errors.New("invalid row index")

	// ErrColumnNotFound is returned when a column name is not found.
	ErrColumnNotFound = errors.New("column not found")

	// ErrInvalidFilter is returned when a filter expression is invalid.
	ErrInvalidFilter = errors.New("invalid filter expression")

	// ErrNotNumeric is returned when a numeric operation targets a
	// non-numeric column.
	ErrNotNumeric = errors.New("column is not numeric")

	// ErrEmptyData is returned when data is empty where it shouldn't be.
	ErrEmptyData = errors.New("data is empty")
)
