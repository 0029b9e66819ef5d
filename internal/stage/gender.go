package stage

import (
	"log/slog"
	"unicode"

	"github.com/roach88/sift/internal/table"
)

// NormalizeGender collapses free-text gender values to the codes "M" / "F".
//
// A textual value whose upper-cased first rune is M or F is replaced by
// that single letter. Every other value (other text, numbers, missing) is
// filled with the column's modal code.
//
// The modal code is FROZEN: it is computed exactly once, from the column as
// it exists before any replacement in this pass, and the same code is used
// for every invalid entry. It is computed over the normalized codes of the
// valid entries ("Male" counts toward "M"), so the fill value is itself
// always a valid code. Recomputing the mode per row against a partially
// rewritten column would make the result depend on row order.
type NormalizeGender struct {
	// Column is the gender column name.
	Column string
}

// Name implements Stage.
func (NormalizeGender) Name() string { return "normalize_gender" }

// Apply implements Stage. A column with no valid entries is returned
// unchanged with a warning; the output is undefined in that case but the
// stage never fails on it.
func (g NormalizeGender) Apply(t *table.Table) (*table.Table, error) {
	col, ok := t.Column(g.Column)
	if !ok {
		return nil, newMissingColumn(g.Name(), g.Column)
	}

	// Frozen mode over normalized valid entries. Normalizing before taking
	// the mode makes "Male" and "M" count toward the same code.
	var codes []table.Value
	for _, v := range col.Values {
		if code, ok := genderCode(v); ok {
			codes = append(codes, table.String(code))
		}
	}

	modal, ok := table.Mode(table.Column{Name: g.Column, Type: table.TypeString, Values: codes})
	if !ok {
		slog.Warn("gender column has no valid entries, leaving values unchanged",
			"column", g.Column,
			"rows", t.NumRows(),
		)
		return t, nil
	}
	fill := string(modal.(table.String))

	values := make([]table.Value, len(col.Values))
	for i, v := range col.Values {
		if code, ok := genderCode(v); ok {
			values[i] = table.String(code)
		} else {
			values[i] = table.String(fill)
		}
	}

	return t.WithColumn(g.Column, col.Type, values)
}

// genderCode returns the normalized code for a valid gender value.
func genderCode(v table.Value) (string, bool) {
	s, ok := v.(table.String)
	if !ok || len(s) == 0 {
		return "", false
	}
	switch unicode.ToUpper([]rune(string(s))[0]) {
	case 'M':
		return "M", true
	case 'F':
		return "F", true
	}
	return "", false
}
