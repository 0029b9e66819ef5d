package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sift/internal/table"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: minimal
description: smallest valid scenario
input:
  columns:
    - name: v
      type: string
      values: ["a", null]
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "minimal", s.Name)

	tbl, err := s.InputTable()
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())

	col, ok := tbl.Column("v")
	require.True(t, ok)
	assert.Equal(t, table.String("a"), col.Values[0])
	assert.True(t, table.IsNull(col.Values[1]))
}

func TestLoadScenario_RejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: misspelled section
inputs:
  columns: []
`)

	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenario_RequiresName(t *testing.T) {
	path := writeScenario(t, `
description: no name
input:
  columns:
    - name: v
      type: string
      values: []
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "name is required")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestScenario_PipelineConfig(t *testing.T) {
	path := writeScenario(t, `
name: config
description: config conversion
pipeline: dedup-last
config:
  column_renames:
    st: state
  numerical_cols_to_replace:
    - column: amount
      pairs: [[",", ""]]
  cols_to_reassign_datatype:
    - column: amount
      type: float
input:
  columns:
    - name: amount
      type: string
      values: []
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	cfg, err := s.PipelineConfig()
	require.NoError(t, err)
	assert.Equal(t, "dedup-last", cfg.PipelineName())
	assert.Equal(t, map[string]string{"st": "state"}, cfg.ColumnRenames)
	require.Len(t, cfg.NumericReplacements, 1)
	require.Len(t, cfg.Casts, 1)
	assert.Equal(t, table.TypeFloat, cfg.Casts[0].Type)
}

func TestScenario_PipelineConfig_BadPair(t *testing.T) {
	path := writeScenario(t, `
name: bad-pair
description: pair with one element
config:
  cols_to_replace:
    - column: v
      pairs: [["only"]]
input:
  columns:
    - name: v
      type: string
      values: []
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	_, err = s.PipelineConfig()
	require.Error(t, err)
	assert.ErrorContains(t, err, "[old, new] pair")
}

func TestScenario_InputTable_NumericColumns(t *testing.T) {
	path := writeScenario(t, `
name: numeric
description: int and float column conversion
input:
  columns:
    - name: n
      type: int
      values: [1, null, 3]
    - name: x
      type: float
      values: [1.5, 2, null]
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	tbl, err := s.InputTable()
	require.NoError(t, err)

	n, _ := tbl.Column("n")
	assert.Equal(t, table.Int(1), n.Values[0])

	// Whole YAML numbers decode as int; float columns accept them.
	x, _ := tbl.Column("x")
	assert.Equal(t, table.Float(1.5), x.Values[0])
	assert.Equal(t, table.Float(2), x.Values[1])
}

func TestScenario_InputTable_RejectsMistypedValue(t *testing.T) {
	path := writeScenario(t, `
name: mistyped
description: string value in an int column
input:
  columns:
    - name: n
      type: int
      values: ["oops"]
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	_, err = s.InputTable()
	assert.Error(t, err)
}
