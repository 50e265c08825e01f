package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat is returned when the uploaded filename has an extension
// other than .csv, .xls or .xlsx. The file contents are never read.
var ErrUnsupportedFormat = errors.New("unsupported file type: must be .csv, .xls, or .xlsx")

// ParseError wraps a failure to read the uploaded bytes as a tabular file.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing file: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// SchemaError reports required columns absent from the uploaded header.
// Missing preserves the required-list order.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing expected columns: [%s]", strings.Join(e.Missing, ", "))
}

// RowError reports a single row whose required cell could not be coerced.
// Row is the 1-based data row number (header excluded).
type RowError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("row %d: column %q: required value is missing", e.Row, e.Column)
	}
	return fmt.Sprintf("row %d: column %q: invalid value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
