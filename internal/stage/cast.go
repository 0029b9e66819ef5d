package stage

import (
	"fmt"
	"math"
	"strconv"

	"github.com/roach88/sift/internal/table"
)

// Cast coerces a full column to a declared nominal type.
//
// Missing values pass through every cast unchanged. Any other value that
// cannot be represented in the target type is a TYPE_COERCION error naming
// the column and the offending value; the column is then left as it was
// (the stage fails as a whole, there are no partial casts).
type Cast struct {
	// Column is the column to coerce.
	Column string

	// To is the target nominal type.
	To table.Type
}

// Name implements Stage.
func (Cast) Name() string { return "cast" }

// Apply implements Stage.
func (c Cast) Apply(t *table.Table) (*table.Table, error) {
	col, ok := t.Column(c.Column)
	if !ok {
		return nil, newMissingColumn(c.Name(), c.Column)
	}
	if !c.To.Valid() {
		return nil, &Error{
			Code:    ErrCodeTypeCoercion,
			Stage:   c.Name(),
			Column:  c.Column,
			Message: fmt.Sprintf("unknown target type %q", c.To),
		}
	}

	values := make([]table.Value, len(col.Values))
	for i, v := range col.Values {
		out, err := coerce(v, c.To)
		if err != nil {
			return nil, &Error{
				Code:    ErrCodeTypeCoercion,
				Stage:   c.Name(),
				Column:  c.Column,
				Message: fmt.Sprintf("row %d: %v", i, err),
			}
		}
		values[i] = out
	}

	return t.WithColumn(c.Column, c.To, values)
}

// coerce converts one cell to the target type.
func coerce(v table.Value, to table.Type) (table.Value, error) {
	if table.IsNull(v) {
		return v, nil
	}

	switch to {
	case table.TypeInt:
		switch val := v.(type) {
		case table.Int:
			return val, nil
		case table.Float:
			// Truncation toward zero, matching conventional numeric casts.
			return table.Int(int64(math.Trunc(float64(val)))), nil
		case table.String:
			n, err := strconv.ParseInt(string(val), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot cast %q to int", string(val))
			}
			return table.Int(n), nil
		}

	case table.TypeFloat:
		switch val := v.(type) {
		case table.Float:
			return val, nil
		case table.Int:
			return table.Float(float64(val)), nil
		case table.String:
			f, err := strconv.ParseFloat(string(val), 64)
			if err != nil {
				return nil, fmt.Errorf("cannot cast %q to float", string(val))
			}
			return table.Float(f), nil
		}

	case table.TypeString, table.TypeCategory:
		return table.String(table.Format(v)), nil
	}

	return nil, fmt.Errorf("cannot cast %T to %s", v, to)
}
