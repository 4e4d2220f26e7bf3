package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedFormat indicates the bytes are not an xlsx or xls workbook.
	ErrUnrecognizedFormat = errors.New("unrecognized spreadsheet format")

	// ErrEmptyDataset indicates the first worksheet has no data rows.
	ErrEmptyDataset = errors.New("spreadsheet contains no data rows")

	// ErrNoWorksheet indicates the workbook has no worksheet to read.
	ErrNoWorksheet = errors.New("workbook has no worksheets")
)

// ParseError is returned for any ingest failure. The workflow must not
// advance past ingest when it is returned.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("parsing spreadsheet: %v", e.Err)
	}
	return fmt.Sprintf("parsing %s spreadsheet: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErr(format string, err error) error {
	return &ParseError{Format: format, Err: err}
}
