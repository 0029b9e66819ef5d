package stage

import (
	"fmt"
	"strings"

	"github.com/roach88/sift/internal/table"
)

// Replace applies ordered literal substring replacements to one column.
//
// Pairs are applied sequentially: later pairs observe the values rewritten
// by earlier pairs. Values are treated as text; a non-text value in the
// target column is a NON_TEXT_TARGET error. Missing values pass through.
type Replace struct {
	// Column is the target column name.
	Column string

	// Pairs are the (old, new) substring replacements, in order.
	Pairs []Pair
}

// Name implements Stage.
func (Replace) Name() string { return "replace" }

// Apply implements Stage.
func (r Replace) Apply(t *table.Table) (*table.Table, error) {
	col, ok := t.Column(r.Column)
	if !ok {
		return nil, newMissingColumn(r.Name(), r.Column)
	}
	if !col.Type.Textual() {
		return nil, &Error{
			Code:    ErrCodeNonTextTarget,
			Stage:   r.Name(),
			Column:  r.Column,
			Message: fmt.Sprintf("substring replacement on %s column", col.Type),
		}
	}

	values := make([]table.Value, len(col.Values))
	for i, v := range col.Values {
		switch val := v.(type) {
		case table.Null:
			values[i] = val
		case table.String:
			s := string(val)
			for _, p := range r.Pairs {
				s = strings.ReplaceAll(s, p.Old, p.New)
			}
			values[i] = table.String(s)
		default:
			return nil, &Error{
				Code:    ErrCodeNonTextTarget,
				Stage:   r.Name(),
				Column:  r.Column,
				Message: fmt.Sprintf("row %d holds non-text value %v", i, table.Format(v)),
			}
		}
	}

	return t.WithColumn(r.Column, col.Type, values)
}
