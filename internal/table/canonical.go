package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// CanonicalValue produces the canonical JSON encoding of a single cell.
// This is the ONLY serialization used for content-addressed identity:
//   - strings are NFC normalized and encoded without HTML escaping
//   - ints print in base 10 with no exponent
//   - floats use the shortest 'f'-form representation that round-trips,
//     never exponent notation, so the same float always encodes the same
//   - missing cells encode as null
func CanonicalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Null:
		return []byte("null"), nil
	case String:
		return canonicalString(string(val))
	case Int:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case Float:
		return strconv.AppendFloat(nil, float64(val), 'f', -1, 64), nil
	default:
		return nil, fmt.Errorf("unsupported cell type %T", v)
	}
}

// CanonicalRow encodes a row as a canonical JSON array in column order.
func CanonicalRow(row []Value) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range row {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := CanonicalValue(v)
		if err != nil {
			return nil, fmt.Errorf("row[%d]: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// CanonicalTable encodes a whole table as canonical JSON. Columns appear in
// table order; the keys of each column object ("name", "type", "values")
// are in sorted order as canonical JSON requires.
func CanonicalTable(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"columns":[`)
	for i, c := range t.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := canonicalString(c.Name)
		if err != nil {
			return nil, fmt.Errorf("column %q name: %w", c.Name, err)
		}
		buf.WriteString(`{"name":`)
		buf.Write(name)
		buf.WriteString(`,"type":"`)
		buf.WriteString(string(c.Type))
		buf.WriteString(`","values":[`)
		for j, v := range c.Values {
			if j > 0 {
				buf.WriteByte(',')
			}
			b, err := CanonicalValue(v)
			if err != nil {
				return nil, fmt.Errorf("column %q value %d: %w", c.Name, j, err)
			}
			buf.Write(b)
		}
		buf.WriteString(`]}`)
	}
	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}

// canonicalString NFC-normalizes then JSON-encodes a string without HTML
// escaping. encoding/json escapes < > & by default, which would make the
// encoding depend on library defaults rather than the string content.
func canonicalString(s string) ([]byte, error) {
	s = norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	// Encoder appends a newline; strip it.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
