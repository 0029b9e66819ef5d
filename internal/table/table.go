package table

import (
	"fmt"
)

// Column is a named, ordered sequence of values of a single nominal type.
type Column struct {
	Name   string
	Type   Type
	Values []Value
}

// Table is an ordered collection of uniquely named columns with rows
// aligned by position.
//
// INVARIANTS:
//   - column names are unique
//   - all columns have the same number of values
//   - column order never changes except through explicit renames
//
// Tables are immutable by contract: operations return new tables and never
// modify their receiver. Unchanged column value slices are shared between
// versions, so callers must not mutate Values obtained from a table.
type Table struct {
	cols  []Column
	index map[string]int
}

// New builds a table from columns, validating the table invariants.
func New(cols ...Column) (*Table, error) {
	index := make(map[string]int, len(cols))
	rows := -1
	for i, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("column %d has empty name", i)
		}
		if !c.Type.Valid() {
			return nil, fmt.Errorf("column %q has invalid type %q", c.Name, c.Type)
		}
		if _, dup := index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.Name)
		}
		if rows == -1 {
			rows = len(c.Values)
		} else if len(c.Values) != rows {
			return nil, fmt.Errorf("column %q has %d values, want %d", c.Name, len(c.Values), rows)
		}
		index[c.Name] = i
	}

	copied := make([]Column, len(cols))
	copy(copied, cols)
	return &Table{cols: copied, index: index}, nil
}

// MustNew is like New but panics on error. Use only in tests or when the
// columns are known to be valid.
func MustNew(cols ...Column) *Table {
	t, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Values)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// Columns returns the columns in order. The returned slice is a copy; the
// value slices inside it are shared and must not be mutated.
func (t *Table) Columns() []Column {
	cols := make([]Column, len(t.cols))
	copy(cols, t.cols)
	return cols
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column. The second return value reports whether
// the column exists.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.cols))
	for j, c := range t.cols {
		row[j] = c.Values[i]
	}
	return row
}

// WithColumn returns a new table where the named column is replaced by the
// given type and values. The value count must match the table's row count.
func (t *Table) WithColumn(name string, typ Type, values []Value) (*Table, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("invalid type %q for column %q", typ, name)
	}
	if len(values) != t.NumRows() {
		return nil, fmt.Errorf("column %q: %d values, want %d", name, len(values), t.NumRows())
	}

	cols := make([]Column, len(t.cols))
	copy(cols, t.cols)
	cols[i] = Column{Name: name, Type: typ, Values: values}

	index := make(map[string]int, len(cols))
	for j, c := range cols {
		index[c.Name] = j
	}
	return &Table{cols: cols, index: index}, nil
}

// WithColumnNames returns a new table with all columns renamed
// positionally. Data and order are unchanged. Fails if the resulting names
// are not unique.
func (t *Table) WithColumnNames(names []string) (*Table, error) {
	if len(names) != len(t.cols) {
		return nil, fmt.Errorf("%d names for %d columns", len(names), len(t.cols))
	}

	cols := make([]Column, len(t.cols))
	copy(cols, t.cols)
	index := make(map[string]int, len(cols))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("column %d renamed to empty name", i)
		}
		if prev, dup := index[name]; dup {
			return nil, fmt.Errorf("columns %d and %d both named %q", prev, i, name)
		}
		cols[i].Name = name
		index[name] = i
	}
	return &Table{cols: cols, index: index}, nil
}

// SelectRows returns a new table containing only the rows at the given
// indices, in the order given. Indices must be valid row positions.
func (t *Table) SelectRows(keep []int) *Table {
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		values := make([]Value, len(keep))
		for j, r := range keep {
			values[j] = c.Values[r]
		}
		cols[i] = Column{Name: c.Name, Type: c.Type, Values: values}
	}

	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c.Name] = i
	}
	return &Table{cols: cols, index: index}
}
