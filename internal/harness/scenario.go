package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sift/internal/pipeline"
	"github.com/roach88/sift/internal/stage"
	"github.com/roach88/sift/internal/table"
)

// Scenario defines a conformance test scenario: an input table, a pipeline
// configuration, and (via the golden file) the expected cleaned table.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Pipeline selects the variant; empty means standard.
	Pipeline string `yaml:"pipeline,omitempty"`

	// Config is the cleaning configuration.
	Config ScenarioConfig `yaml:"config,omitempty"`

	// Input is the raw table the pipeline runs over.
	Input ScenarioInput `yaml:"input"`
}

// ScenarioConfig mirrors the CUE definition surface in YAML form.
type ScenarioConfig struct {
	ColumnRenames          map[string]string     `yaml:"column_renames,omitempty"`
	ColsToReplace          []ScenarioReplacement `yaml:"cols_to_replace,omitempty"`
	NumericalColsToReplace []ScenarioReplacement `yaml:"numerical_cols_to_replace,omitempty"`
	ColsToReassignDatatype []ScenarioCast        `yaml:"cols_to_reassign_datatype,omitempty"`
	GenderColumn           string                `yaml:"gender_column,omitempty"`
	ComplaintsColumn       string                `yaml:"complaints_column,omitempty"`
}

// ScenarioReplacement names a column and its ordered [old, new] pairs.
type ScenarioReplacement struct {
	Column string     `yaml:"column"`
	Pairs  [][]string `yaml:"pairs"`
}

// ScenarioCast names a column and its target type.
type ScenarioCast struct {
	Column string `yaml:"column"`
	Type   string `yaml:"type"`
}

// ScenarioInput is the input table in column-major form.
type ScenarioInput struct {
	Columns []ScenarioColumn `yaml:"columns"`
}

// ScenarioColumn is one input column. Values use plain YAML scalars; null
// entries are missing cells.
type ScenarioColumn struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Values []any  `yaml:"values"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "column:" vs "columns:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Input.Columns) == 0 {
		return fmt.Errorf("input.columns is required and must be non-empty")
	}
	for i, c := range s.Input.Columns {
		if c.Name == "" {
			return fmt.Errorf("input.columns[%d]: name is required", i)
		}
		if c.Type == "" {
			return fmt.Errorf("input.columns[%d]: type is required", i)
		}
	}
	return nil
}

// PipelineConfig converts the scenario configuration into a pipeline.Config.
func (s *Scenario) PipelineConfig() (*pipeline.Config, error) {
	cfg := &pipeline.Config{
		Pipeline:         s.Pipeline,
		ColumnRenames:    s.Config.ColumnRenames,
		GenderColumn:     s.Config.GenderColumn,
		ComplaintsColumn: s.Config.ComplaintsColumn,
	}

	var err error
	cfg.Replacements, err = convertReplacements(s.Config.ColsToReplace, "cols_to_replace")
	if err != nil {
		return nil, err
	}
	cfg.NumericReplacements, err = convertReplacements(s.Config.NumericalColsToReplace, "numerical_cols_to_replace")
	if err != nil {
		return nil, err
	}

	for i, c := range s.Config.ColsToReassignDatatype {
		typ, err := table.ParseType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("cols_to_reassign_datatype[%d]: %w", i, err)
		}
		cfg.Casts = append(cfg.Casts, pipeline.ColumnCast{Column: c.Column, Type: typ})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func convertReplacements(in []ScenarioReplacement, field string) ([]pipeline.ColumnReplacements, error) {
	var out []pipeline.ColumnReplacements
	for i, r := range in {
		var pairs []stage.Pair
		for j, p := range r.Pairs {
			if len(p) != 2 {
				return nil, fmt.Errorf("%s[%d].pairs[%d]: want an [old, new] pair, got %d elements", field, i, j, len(p))
			}
			pairs = append(pairs, stage.Pair{Old: p[0], New: p[1]})
		}
		out = append(out, pipeline.ColumnReplacements{Column: r.Column, Pairs: pairs})
	}
	return out, nil
}

// InputTable builds the input table from the scenario columns.
func (s *Scenario) InputTable() (*table.Table, error) {
	cols := make([]table.Column, len(s.Input.Columns))
	for i, sc := range s.Input.Columns {
		typ, err := table.ParseType(sc.Type)
		if err != nil {
			return nil, fmt.Errorf("input.columns[%d]: %w", i, err)
		}

		values := make([]table.Value, len(sc.Values))
		for j, raw := range sc.Values {
			v, err := convertValue(raw, typ)
			if err != nil {
				return nil, fmt.Errorf("input.columns[%d] (%s) value %d: %w", i, sc.Name, j, err)
			}
			values[j] = v
		}
		cols[i] = table.Column{Name: sc.Name, Type: typ, Values: values}
	}
	return table.New(cols...)
}

// convertValue converts a decoded YAML scalar to a cell of the column's
// declared type. YAML decodes whole numbers as int even in float columns,
// so float columns accept both.
func convertValue(raw any, typ table.Type) (table.Value, error) {
	if raw == nil {
		return table.Null{}, nil
	}

	switch typ {
	case table.TypeInt:
		if n, ok := raw.(int); ok {
			return table.Int(n), nil
		}
	case table.TypeFloat:
		switch n := raw.(type) {
		case int:
			return table.Float(n), nil
		case float64:
			return table.Float(n), nil
		}
	default:
		if s, ok := raw.(string); ok {
			return table.String(s), nil
		}
	}
	return nil, fmt.Errorf("cannot use %T value %v in a %s column", raw, raw, typ)
}
