package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cleared-dev/coamigrate/internal/model"
)

// subjectRecord is the JSON shape of one subject in the grouped report.
type subjectRecord struct {
	OldCode   string  `json:"old_code"`
	OldName   string  `json:"old_name"`
	NewCode   *string `json:"new_code"`
	NewName   string  `json:"new_name"`
	Operation string  `json:"operation"`
	Category  string  `json:"category"`
	Auxiliary string  `json:"auxiliary"`
	Remark    string  `json:"remark"`
}

func newSubjectRecord(s model.Subject) subjectRecord {
	rec := subjectRecord{
		OldCode:   s.Code,
		OldName:   s.Name,
		NewName:   s.NewName,
		Operation: string(s.Operation),
		Category:  string(s.CategoryType),
		Auxiliary: s.Auxiliary,
		Remark:    s.Remark,
	}
	if s.NewCode != "" {
		code := s.NewCode
		rec.NewCode = &code
	}
	return rec
}

// WriteGroupedJSON writes a JSON object mapping each category to its
// subjects. Keys follow report order; empty categories map to [].
func WriteGroupedJSON(w io.Writer, groups []Group) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, g := range groups {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := encode(string(g.Category), "")
		if err != nil {
			return fmt.Errorf("encoding category: %w", err)
		}
		recs := make([]subjectRecord, len(g.Subjects))
		for j, s := range g.Subjects {
			recs[j] = newSubjectRecord(s)
		}
		val, err := encode(recs, "  ")
		if err != nil {
			return fmt.Errorf("encoding %s: %w", g.Category, err)
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
	}
	if len(groups) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing grouped JSON: %w", err)
	}
	return nil
}

// encode marshals v without HTML escaping, indenting nested lines by prefix.
func encode(v any, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if prefix != "" {
		enc.SetIndent(prefix, "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
