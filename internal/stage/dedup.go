package stage

import (
	"fmt"

	"github.com/roach88/sift/internal/table"
)

// Dedup removes exact duplicate rows and rows with no non-missing values.
//
// Duplicates are computed on the table as given, keeping the first
// occurrence; the emptiness check applies afterward to the deduplicated
// result. A row with at least one non-missing field is retained. Row order
// is never changed.
type Dedup struct{}

// Name implements Stage.
func (Dedup) Name() string { return "dedup" }

// Apply implements Stage.
func (d Dedup) Apply(t *table.Table) (*table.Table, error) {
	seen := make(map[string]bool, t.NumRows())
	var keep []int

	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)

		key, err := table.RowKey(row)
		if err != nil {
			return nil, &Error{
				Code:    ErrCodeTypeCoercion,
				Stage:   d.Name(),
				Message: fmt.Sprintf("row %d cannot be hashed: %v", i, err),
			}
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		if allNull(row) {
			continue
		}
		keep = append(keep, i)
	}

	return t.SelectRows(keep), nil
}

func allNull(row []table.Value) bool {
	for _, v := range row {
		if !table.IsNull(v) {
			return false
		}
	}
	return true
}
