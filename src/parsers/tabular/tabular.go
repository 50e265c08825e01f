// Package tabular reads uploaded statement files (semicolon CSV or Excel
// workbooks) into a uniform column-addressable table.
package tabular

// Cell is a single table cell. A missing cell (empty CSV field, absent
// spreadsheet cell) is distinct from a cell that merely holds text.
type Cell struct {
	value   string
	missing bool
}

// Missing reports whether the cell was absent in the source file.
func (c Cell) Missing() bool { return c.missing }

// String returns the raw cell text. Empty for missing cells.
func (c Cell) String() string { return c.value }

func newCell(value string) Cell {
	if value == "" {
		return Cell{missing: true}
	}
	return Cell{value: value}
}

func missingCell() Cell { return Cell{missing: true} }

// Table is a parsed tabular file: an ordered header plus data rows whose cells
// are addressable by column name.
type Table struct {
	Columns []string
	index   map[string]int
	rows    [][]Cell
}

func newTable(columns []string) *Table {
	t := &Table{
		Columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range columns {
		// First occurrence wins on duplicate headers.
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}
	return t
}

// appendRow adds a data row, padding short rows with missing cells so every
// row is addressable by every header column.
func (t *Table) appendRow(fields []string) {
	row := make([]Cell, len(t.Columns))
	for i := range row {
		if i < len(fields) {
			row[i] = newCell(fields[i])
		} else {
			row[i] = missingCell()
		}
	}
	t.rows = append(t.rows, row)
}

// HasColumn reports whether the header contains the exact column name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// NumRows returns the number of data rows (header excluded).
func (t *Table) NumRows() int { return len(t.rows) }

// Row returns the i-th data row in file order.
func (t *Table) Row(i int) Row { return Row{table: t, cells: t.rows[i]} }

// Row is one data row of a Table.
type Row struct {
	table *Table
	cells []Cell
}

// Cell returns the cell under the named column, or a missing cell when the
// column does not exist.
func (r Row) Cell(column string) Cell {
	i, ok := r.table.index[column]
	if !ok {
		return missingCell()
	}
	return r.cells[i]
}
