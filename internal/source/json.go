package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
)

// bareNaN matches the NaN literals pandas emits for missing values, which are not valid JSON.
var bareNaN = regexp.MustCompile(`:\s*NaN\b`)

// JSONReader reads a subject sheet stored as an array of records.
type JSONReader struct{}

// Format returns the reader name.
func (JSONReader) Format() string { return "json" }

// Read parses an array of objects. The header is the union of keys in
// first-seen order; numbers are rendered without exponent.
func (JSONReader) Read(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading subjects JSON: %w", err)
	}
	data = bareNaN.ReplaceAll(data, []byte(": null"))

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing subjects JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("parsing subjects JSON: expected array, got %v", tok)
	}

	var header []string
	seen := make(map[string]int)
	var records []map[string]string
	for dec.More() {
		rec, keys, err := decodeRecord(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records)+1, err)
		}
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = len(header)
				header = append(header, k)
			}
		}
		records = append(records, rec)
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(header))
		for k, v := range rec {
			row[seen[k]] = v
		}
		rows[i] = row
	}
	if len(header) == 0 {
		return &Table{}, nil
	}
	return NewTable(header, rows)
}

// decodeRecord reads one object, keeping key order.
func decodeRecord(dec *json.Decoder) (map[string]string, []string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	rec := make(map[string]string)
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, _ := keyTok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("value of %q: %w", key, err)
		}
		rec[key] = stringify(v)
		keys = append(keys, key)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return rec, keys, nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return strconv.FormatInt(n, 10)
		}
		if f, err := x.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return strconv.FormatInt(int64(f), 10)
		}
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

// WriteJSON writes t as an indented array of records in column order.
// Blank cells are written as null.
func WriteJSON(w io.Writer, t *Table) error {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, row := range t.Rows {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  {")
		for j, h := range t.Header {
			if j > 0 {
				buf.WriteString(",")
			}
			key, err := marshalNoEscape(h)
			if err != nil {
				return fmt.Errorf("encoding key %q: %w", h, err)
			}
			buf.WriteString("\n    ")
			buf.Write(key)
			buf.WriteString(": ")
			if row[j] == "" {
				buf.WriteString("null")
				continue
			}
			val, err := marshalNoEscape(row[j])
			if err != nil {
				return fmt.Errorf("encoding row %d: %w", i+1, err)
			}
			buf.Write(val)
		}
		buf.WriteString("\n  }")
	}
	if len(t.Rows) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}

// marshalNoEscape encodes v without HTML escaping so Chinese text and
// symbols stay readable.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
