package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sift/internal/table"
)

func TestCast_StringToInt(t *testing.T) {
	tbl := table.MustNew(table.Column{
		Name: "age", Type: table.TypeString,
		Values: []table.Value{table.String("1"), table.String("2"), table.String("3")},
	})

	out, err := Cast{Column: "age", To: table.TypeInt}.Apply(tbl)
	require.NoError(t, err)

	col, _ := out.Column("age")
	assert.Equal(t, table.TypeInt, col.Type)
	assert.Equal(t, []table.Value{table.Int(1), table.Int(2), table.Int(3)}, col.Values)
}

func TestCast_RoundTripIdempotent(t *testing.T) {
	tbl := table.MustNew(table.Column{
		Name: "age", Type: table.TypeString,
		Values: []table.Value{table.String("1"), table.String("2"), table.String("3")},
	})

	asInt, err := Cast{Column: "age", To: table.TypeInt}.Apply(tbl)
	require.NoError(t, err)
	asString, err := Cast{Column: "age", To: table.TypeString}.Apply(asInt)
	require.NoError(t, err)
	again, err := Cast{Column: "age", To: table.TypeInt}.Apply(asString)
	require.NoError(t, err)

	want, _ := asInt.Column("age")
	got, _ := again.Column("age")
	assert.Equal(t, want.Values, got.Values)
}

func TestCast_StringToFloat(t *testing.T) {
	tbl := table.MustNew(table.Column{
		Name: "v", Type: table.TypeString,
		Values: []table.Value{table.String("697953.59"), table.String("5")},
	})

	out, err := Cast{Column: "v", To: table.TypeFloat}.Apply(tbl)
	require.NoError(t, err)
	col, _ := out.Column("v")
	assert.Equal(t, []table.Value{table.Float(697953.59), table.Float(5)}, col.Values)
}

func TestCast_IntToFloat(t *testing.T) {
	tbl := table.MustNew(table.Column{
		Name: "v", Type: table.TypeInt,
		Values: []table.Value{table.Int(3)},
	})

	out, err := Cast{Column: "v", To: table.TypeFloat}.Apply(tbl)
	require.NoError(t, err)
	col, _ := out.Column("v")
	assert.Equal(t, []table.Value{table.Float(3)}, col.Values)
}

func TestCast_FloatToIntTruncates(t *testing.T) {
	tbl := table.MustNew(table.Column{
		Name: "v", Type: table.TypeFloat,
		Values: []table.Value{table.Float(3.9), table.Float(-3.9)},
	})

	out, err := Cast{Column: "v", To: table.TypeInt}.Apply(tbl)
	require.NoError(t, err)
	col, _ := out.Column("v")
	assert.Equal(t, []table.Value{table.Int(3), table.Int(-3)}, col.Values)
}

func TestCast_ToCategory(t *testing.T) {
	tbl := table.MustNew(table.Column{
		Name: "v", Type: table.TypeString,
		Values: []table.Value{table.String("Basic")},
	})

	out, err := Cast{Column: "v", To: table.TypeCategory}.Apply(tbl)
	require.NoError(t, err)
	col, _ := out.Column("v")
	assert.Equal(t, table.TypeCategory, col.Type)
	assert.Equal(t, []table.Value{table.String("Basic")}, col.Values)
}

func TestCast_NullsPassThrough(t *testing.T) {
	tbl := table.MustNew(table.Column{
		Name: "v", Type: table.TypeString,
		Values: []table.Value{table.Null{}, table.String("1")},
	})

	out, err := Cast{Column: "v", To: table.TypeInt}.Apply(tbl)
	require.NoError(t, err)
	col, _ := out.Column("v")
	assert.Equal(t, []table.Value{table.Null{}, table.Int(1)}, col.Values)
}

func TestCast_UnparseableFails(t *testing.T) {
	tbl := table.MustNew(table.Column{
		Name: "v", Type: table.TypeString,
		Values: []table.Value{table.String("1"), table.String("not-a-number")},
	})

	_, err := Cast{Column: "v", To: table.TypeFloat}.Apply(tbl)
	require.Error(t, err)
	assert.True(t, IsTypeCoercion(err))
	assert.ErrorContains(t, err, `"not-a-number"`)
	assert.ErrorContains(t, err, "row 1")
}

func TestCast_NonIntegerStringToIntFails(t *testing.T) {
	tbl := table.MustNew(table.Column{
		Name: "v", Type: table.TypeString,
		Values: []table.Value{table.String("3.5")},
	})

	_, err := Cast{Column: "v", To: table.TypeInt}.Apply(tbl)
	assert.True(t, IsTypeCoercion(err))
}

func TestCast_MissingColumn(t *testing.T) {
	tbl := table.MustNew(table.Column{Name: "other", Type: table.TypeString, Values: nil})
	_, err := Cast{Column: "v", To: table.TypeInt}.Apply(tbl)
	assert.True(t, IsMissingColumn(err))
}
