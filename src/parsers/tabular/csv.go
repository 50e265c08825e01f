package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV parses a semicolon-delimited CSV export. The first record is the
// header; every following record becomes a data row.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1 // bank exports pad rows inconsistently

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	table := newTable(header)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", table.NumRows()+2, err)
		}
		table.appendRow(record)
	}
	return table, nil
}
