package dataset

import "errors"

var (
	// ErrFileNotFound is returned when the source workbook does not exist.
	ErrFileNotFound = errors.New("dataset: file not found")
	// ErrEmptyTable is returned when the workbook has no data rows.
	ErrEmptyTable = errors.New("dataset: empty table")
	// ErrMissingIdentityColumn is returned when AGENTE or EMPRESA is absent.
	ErrMissingIdentityColumn = errors.New("dataset: missing identity column")
	// ErrNoSheet is returned when the workbook has no sheets.
	ErrNoSheet = errors.New("dataset: workbook has no sheets")
)
