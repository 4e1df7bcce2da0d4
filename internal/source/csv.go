package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// utf8BOM prefixes CSV output so spreadsheet tools detect UTF-8.
const utf8BOM = "\ufeff"

// CSVReader reads a subject sheet from CSV.
type CSVReader struct{}

// Format returns the reader name.
func (CSVReader) Format() string { return "csv" }

// Read parses CSV with a header row. A leading UTF-8 BOM is ignored.
func (CSVReader) Read(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, []byte(utf8BOM)) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading subjects CSV: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	return NewTable(records[0], records[1:])
}

// WriteCSV writes t as CSV with a UTF-8 BOM and a header row.
func WriteCSV(w io.Writer, t *Table) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}
