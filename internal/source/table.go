// Package source loads and saves subject sheets in CSV, Excel and JSON form.
//
// A Table keeps the raw cells next to the decoded subjects so that output
// columns can be written back into the sheet the reviewer already knows.
package source

import (
	"github.com/cleared-dev/coamigrate/internal/model"
)

// Table is a subject sheet: header, data rows and the subjects decoded from
// them. Rows and Subjects are index-aligned.
type Table struct {
	Header   []string
	Rows     [][]string
	Subjects []model.Subject
}

// NewTable decodes rows under header into a Table.
func NewTable(header []string, rows [][]string) (*Table, error) {
	layout, err := detectLayout(header)
	if err != nil {
		return nil, err
	}

	t := &Table{Header: trimCells(header)}
	for _, row := range rows {
		if layout.skip(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
		t.Subjects = append(t.Subjects, layout.decode(row))
	}
	t.pad()
	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns the values of the named column, or nil if it does not exist.
func (t *Table) Column(name string) []string {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// SetColumn overwrites the named column with values, appending the column
// if it is new. values must have one entry per row; missing entries are blank.
func (t *Table) SetColumn(name string, values []string) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		t.Header = append(t.Header, name)
		idx = len(t.Header) - 1
		t.pad()
	}
	for i := range t.Rows {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		t.Rows[i][idx] = v
	}
}

// pad extends ragged rows to the header width.
func (t *Table) pad() {
	for i, row := range t.Rows {
		if len(row) < len(t.Header) {
			padded := make([]string, len(t.Header))
			copy(padded, row)
			t.Rows[i] = padded
		}
	}
}
