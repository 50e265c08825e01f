package validation

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/kasboek/backend/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func TestValidateClientContentType(t *testing.T) {
	assert.NoError(t, ValidateClientContentType("text/csv"))
	assert.NoError(t, ValidateClientContentType("text/csv; charset=utf-8"))
	assert.NoError(t, ValidateClientContentType("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
	assert.NoError(t, ValidateClientContentType("application/octet-stream"))

	assert.Error(t, ValidateClientContentType("text/html"))
	assert.Error(t, ValidateClientContentType("application/pdf"))
	assert.Error(t, ValidateClientContentType(""))
}

func TestValidateFileContent_TextCSV(t *testing.T) {
	r := bytes.NewReader([]byte("Rekening;Bedrag\nNL01;-1,00\n"))
	assert.NoError(t, ValidateFileContent(r, "export.csv"))

	// Read pointer must be reset for the parser.
	head := make([]byte, 8)
	n, err := r.Read(head)
	require.NoError(t, err)
	assert.Equal(t, "Rekening", string(head[:n]))
}

func TestValidateFileContent_BinaryCSVRejected(t *testing.T) {
	r := bytes.NewReader([]byte{0x00, 0x01, 0x02, 'a', 'b'})
	assert.Error(t, ValidateFileContent(r, "export.csv"))
}

func TestValidateFileContent_WorkbookSignatures(t *testing.T) {
	xlsx := bytes.NewReader(append([]byte{0x50, 0x4B, 0x03, 0x04}, make([]byte, 32)...))
	assert.NoError(t, ValidateFileContent(xlsx, "export.xlsx"))

	xls := bytes.NewReader(append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 32)...))
	assert.NoError(t, ValidateFileContent(xls, "export.xls"))

	text := bytes.NewReader([]byte("just some text pretending"))
	assert.Error(t, ValidateFileContent(text, "export.xlsx"))
}

func TestValidateFileContent_EmptyFile(t *testing.T) {
	assert.Error(t, ValidateFileContent(bytes.NewReader(nil), "export.csv"))
}

func TestValidateFileContent_OtherExtensionPassesThrough(t *testing.T) {
	// The ingestion pipeline rejects unknown extensions itself, without
	// content inspection.
	r := bytes.NewReader([]byte{0x00, 0xFF})
	assert.NoError(t, ValidateFileContent(r, "export.txt"))
}
