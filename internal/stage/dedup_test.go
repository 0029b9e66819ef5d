package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sift/internal/table"
)

func TestDedup_DropsDuplicatesAndEmptyRows(t *testing.T) {
	// Rows: [A,B], [A,B], [null,null] -> only [A,B] survives.
	tbl := table.MustNew(
		table.Column{Name: "x", Type: table.TypeString, Values: []table.Value{
			table.String("A"), table.String("A"), table.Null{},
		}},
		table.Column{Name: "y", Type: table.TypeString, Values: []table.Value{
			table.String("B"), table.String("B"), table.Null{},
		}},
	)

	out, err := Dedup{}.Apply(tbl)
	require.NoError(t, err)
	require.Equal(t, 1, out.NumRows())
	assert.Equal(t, []table.Value{table.String("A"), table.String("B")}, out.Row(0))
	assert.Equal(t, 3, tbl.NumRows(), "input table unchanged")
}

func TestDedup_KeepsFirstOccurrence(t *testing.T) {
	tbl := table.MustNew(
		table.Column{Name: "x", Type: table.TypeString, Values: []table.Value{
			table.String("b"), table.String("a"), table.String("b"), table.String("c"),
		}},
	)

	out, err := Dedup{}.Apply(tbl)
	require.NoError(t, err)
	col, _ := out.Column("x")
	assert.Equal(t, []table.Value{table.String("b"), table.String("a"), table.String("c")}, col.Values)
}

func TestDedup_PartiallyMissingRowRetained(t *testing.T) {
	tbl := table.MustNew(
		table.Column{Name: "x", Type: table.TypeString, Values: []table.Value{table.Null{}}},
		table.Column{Name: "y", Type: table.TypeString, Values: []table.Value{table.String("kept")}},
	)

	out, err := Dedup{}.Apply(tbl)
	require.NoError(t, err)
	assert.Equal(t, 1, out.NumRows())
}

func TestDedup_EmptinessCheckAfterDedup(t *testing.T) {
	// Two identical all-empty rows: the duplicate goes first, then the
	// surviving empty row is dropped too.
	tbl := table.MustNew(
		table.Column{Name: "x", Type: table.TypeString, Values: []table.Value{table.Null{}, table.Null{}}},
	)

	out, err := Dedup{}.Apply(tbl)
	require.NoError(t, err)
	assert.Equal(t, 0, out.NumRows())
}

func TestDedup_EmptyTable(t *testing.T) {
	tbl := table.MustNew(table.Column{Name: "x", Type: table.TypeString, Values: nil})
	out, err := Dedup{}.Apply(tbl)
	require.NoError(t, err)
	assert.Equal(t, 0, out.NumRows())
}
