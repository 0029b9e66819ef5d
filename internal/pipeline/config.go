package pipeline

import (
	"fmt"

	"github.com/roach88/sift/internal/stage"
	"github.com/roach88/sift/internal/table"
)

// Pipeline variant names.
const (
	// Standard cleans in the order: format, dedup, gender, complaints,
	// replacements, casts.
	Standard = "standard"

	// DedupLast cleans values first and deduplicates at the end, so rows
	// that become identical during cleaning collapse into one.
	DedupLast = "dedup-last"
)

// Default column names for the two fixed cleaning stages.
const (
	DefaultGenderColumn     = "gender"
	DefaultComplaintsColumn = "number_of_open_complaints"
)

// ColumnReplacements names a column and its ordered substring replacements.
type ColumnReplacements struct {
	Column string
	Pairs  []stage.Pair
}

// ColumnCast names a column and its target nominal type.
type ColumnCast struct {
	Column string
	Type   table.Type
}

// Config is the full configuration surface of a cleaning pipeline.
//
// Replacements, NumericReplacements, and Casts are ordered slices rather
// than maps: replacement stages run once per configured column, in
// configuration order, and that order is part of the contract.
type Config struct {
	// Pipeline selects the stage ordering; empty means Standard.
	Pipeline string

	// ColumnRenames maps formatted column names to final names.
	ColumnRenames map[string]string

	// Replacements are per-column substring replacements (standard
	// pipeline).
	Replacements []ColumnReplacements

	// NumericReplacements are per-column substring replacements followed
	// by a float cast (dedup-last pipeline).
	NumericReplacements []ColumnReplacements

	// Casts are the per-column type reassignments (standard pipeline).
	Casts []ColumnCast

	// GenderColumn overrides the gender column name; empty means
	// DefaultGenderColumn.
	GenderColumn string

	// ComplaintsColumn overrides the complaint-count column name; empty
	// means DefaultComplaintsColumn.
	ComplaintsColumn string
}

// Validate checks the configuration for structural problems. Column
// existence is not checked here; stages report MISSING_COLUMN against the
// actual table at run time.
func (c *Config) Validate() error {
	switch c.Pipeline {
	case "", Standard, DedupLast:
	default:
		return fmt.Errorf("unknown pipeline %q (want %q or %q)", c.Pipeline, Standard, DedupLast)
	}

	for i, r := range c.Replacements {
		if r.Column == "" {
			return fmt.Errorf("cols_to_replace[%d]: empty column name", i)
		}
	}
	for i, r := range c.NumericReplacements {
		if r.Column == "" {
			return fmt.Errorf("numerical_cols_to_replace[%d]: empty column name", i)
		}
	}
	for i, cast := range c.Casts {
		if cast.Column == "" {
			return fmt.Errorf("cols_to_reassign_datatype[%d]: empty column name", i)
		}
		if !cast.Type.Valid() {
			return fmt.Errorf("cols_to_reassign_datatype[%d]: invalid type %q", i, cast.Type)
		}
	}
	return nil
}

// PipelineName returns the effective variant name.
func (c *Config) PipelineName() string {
	if c.Pipeline == "" {
		return Standard
	}
	return c.Pipeline
}

func (c *Config) genderColumn() string {
	if c.GenderColumn != "" {
		return c.GenderColumn
	}
	return DefaultGenderColumn
}

func (c *Config) complaintsColumn() string {
	if c.ComplaintsColumn != "" {
		return c.ComplaintsColumn
	}
	return DefaultComplaintsColumn
}

// Stages builds the stage list for the configured pipeline variant.
func (c *Config) Stages() ([]stage.Stage, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.PipelineName() {
	case Standard:
		return StandardStages(c), nil
	case DedupLast:
		return DedupLastStages(c), nil
	default:
		return nil, fmt.Errorf("unknown pipeline %q", c.Pipeline)
	}
}
