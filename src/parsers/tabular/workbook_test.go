package tabular

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadWorkbook_FirstSheet(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Naam", "Bedrag"},
		{"Albert Heijn", "-12,50"},
		{"Salaris", "2500,00"},
	})

	table, err := ReadWorkbook(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Naam", "Bedrag"}, table.Columns)
	require.Equal(t, 2, table.NumRows())
	assert.Equal(t, "Albert Heijn", table.Row(0).Cell("Naam").String())
	assert.Equal(t, "2500,00", table.Row(1).Cell("Bedrag").String())
}

func TestReadWorkbook_TrailingEmptyCellsAreMissing(t *testing.T) {
	// excelize trims trailing empty cells from a row; the table pads them
	// back out as missing.
	data := buildWorkbook(t, [][]interface{}{
		{"A", "B", "C"},
		{"x"},
	})

	table, err := ReadWorkbook(bytes.NewReader(data))
	require.NoError(t, err)

	row := table.Row(0)
	assert.Equal(t, "x", row.Cell("A").String())
	assert.True(t, row.Cell("B").Missing())
	assert.True(t, row.Cell("C").Missing())
}

func TestReadWorkbook_CorruptBytes(t *testing.T) {
	_, err := ReadWorkbook(bytes.NewReader([]byte("this is not a workbook")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "opening workbook")
}

func TestReadWorkbook_EmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = ReadWorkbook(bytes.NewReader(buf.Bytes()))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}
