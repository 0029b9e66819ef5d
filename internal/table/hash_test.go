package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowKey_EqualRowsShareKey(t *testing.T) {
	a := []Value{String("x"), Int(1)}
	b := []Value{String("x"), Int(1)}
	assert.Equal(t, MustRowKey(a), MustRowKey(b))
}

func TestRowKey_DifferentRowsDiffer(t *testing.T) {
	a := []Value{String("x"), Int(1)}
	b := []Value{String("x"), Int(2)}
	assert.NotEqual(t, MustRowKey(a), MustRowKey(b))
}

func TestRowKey_NullsAreSignificant(t *testing.T) {
	a := []Value{String("x"), Null{}}
	b := []Value{String("x"), String("")}
	assert.NotEqual(t, MustRowKey(a), MustRowKey(b))
}

func TestRowKey_NumericValueEquality(t *testing.T) {
	// Int and Float with the same numeric value are duplicates by design.
	a := []Value{Int(1000)}
	b := []Value{Float(1000)}
	assert.Equal(t, MustRowKey(a), MustRowKey(b))
}

func TestTableHash_Stable(t *testing.T) {
	build := func() *Table {
		return MustNew(
			Column{Name: "id", Type: TypeString, Values: []Value{String("a")}},
			Column{Name: "n", Type: TypeInt, Values: []Value{Int(1)}},
		)
	}
	h1, err := build().Hash()
	require.NoError(t, err)
	h2, err := build().Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestTableHash_SensitiveToType(t *testing.T) {
	a := MustNew(Column{Name: "n", Type: TypeString, Values: []Value{String("1")}})
	b := MustNew(Column{Name: "n", Type: TypeCategory, Values: []Value{String("1")}})
	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}
