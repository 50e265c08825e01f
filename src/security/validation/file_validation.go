package validation

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/username/kasboek/backend/src/logger"
)

// AllowedClientContentTypes is a map for quick lookup of allowed client-declared MIME types.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"text/plain":               true, // CSVs are often plain text
	"application/vnd.ms-excel": true, // legacy .xls, also used for CSV by older Excel
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true, // .xlsx
	"application/octet-stream": true, // browsers fall back to this for workbook uploads
}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if allowed := AllowedClientContentTypes[mediaType]; !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed for statement upload", contentType)
	}
	return nil
}

// isBinaryContent checks if a buffer contains binary control characters (like
// null bytes) which indicate the file is not a valid text-based CSV.
func isBinaryContent(buf []byte) bool {
	if bytes.IndexByte(buf, 0) != -1 {
		return true
	}
	if !utf8.Valid(buf) {
		return true
	}
	return false
}

// Magic-byte signatures for the two workbook containers: OPC/zip (.xlsx) and
// OLE compound files (.xls).
var (
	zipSignature = []byte{0x50, 0x4B, 0x03, 0x04}
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// ValidateFileContent inspects the first bytes of the upload and checks that
// they plausibly match what the filename extension claims: text content for
// .csv, a zip or OLE container for .xls/.xlsx. The read pointer is reset so
// the parser can re-read the full file.
func ValidateFileContent(file io.ReadSeeker, filename string) error {
	if file == nil {
		return fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 1024)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for content checking: %w", err)
	}
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	if n == 0 {
		return fmt.Errorf("file is empty")
	}
	head := buffer[:n]

	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		if isBinaryContent(head) {
			logger.L.Warn("File rejected: binary content in CSV upload", "filename", filename)
			return fmt.Errorf("file appears to be binary, not text/CSV")
		}
	case strings.HasSuffix(lower, ".xls"), strings.HasSuffix(lower, ".xlsx"):
		if !bytes.HasPrefix(head, zipSignature) && !bytes.HasPrefix(head, oleSignature) {
			logger.L.Warn("File rejected: content does not look like a workbook", "filename", filename)
			return fmt.Errorf("file content does not match a spreadsheet format")
		}
	}
	// Other extensions pass through; the ingestion pipeline rejects them
	// without reading content.
	return nil
}
