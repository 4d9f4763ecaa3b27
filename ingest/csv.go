package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// maxCSVRows is the safety limit for very large CSV files; rows past
// it are summarized by a truncation marker.
const maxCSVRows = 1000

// ExtractCSVText renders a CSV file as retrievable text: one line per
// row, columns joined by " | ", the header row labeled as such.
func ExtractCSVText(data []byte) (string, error) {
	reader := csv.NewReader(strings.NewReader(decodeCSV(data)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var sb strings.Builder
	for i := 0; ; i++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse CSV: %w", err)
		}

		if i >= maxCSVRows {
			sb.WriteString(fmt.Sprintf("... (truncated after %d rows)\n", maxCSVRows))
			break
		}

		if i == 0 {
			sb.WriteString("Headers: " + strings.Join(row, " | ") + "\n")
		} else {
			sb.WriteString(fmt.Sprintf("Row %d: %s\n", i, strings.Join(row, " | ")))
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

// decodeCSV recovers text from an unknown encoding: valid UTF-8 is
// used as-is, then legacy single-byte encodings are attempted in a
// fixed order, and as a last resort the bytes are decoded lossily with
// replacement characters instead of failing the document.
func decodeCSV(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		if decoded, err := cm.NewDecoder().Bytes(data); err == nil && utf8.Valid(decoded) {
			return string(decoded)
		}
	}

	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
