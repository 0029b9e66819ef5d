package stage

import (
	"github.com/roach88/sift/internal/table"
)

// Stage is a single cleaning transformation over a table.
//
// Apply returns a new table and must not modify its input. Implementations
// are the descriptor structs in this package: Format, Dedup,
// NormalizeGender, ExtractComplaintMonth, Replace, and Cast.
type Stage interface {
	// Name identifies the stage in traces, logs, and errors.
	Name() string

	// Apply runs the transformation and returns the resulting table.
	Apply(t *table.Table) (*table.Table, error)
}

// Pair is one ordered literal substring replacement.
type Pair struct {
	Old string
	New string
}
