package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sift/internal/table"
)

func TestFormat_LowercasesAndUnderscores(t *testing.T) {
	tbl := table.MustNew(
		table.Column{Name: "Customer ID", Type: table.TypeString, Values: []table.Value{table.String("a")}},
		table.Column{Name: "GENDER", Type: table.TypeString, Values: []table.Value{table.String("M")}},
		table.Column{Name: "Number of Open Complaints", Type: table.TypeString, Values: []table.Value{table.String("1/2/00")}},
	)

	out, err := Format{}.Apply(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"customer_id", "gender", "number_of_open_complaints"}, out.ColumnNames())

	// Data untouched, input table untouched.
	col, _ := out.Column("customer_id")
	assert.Equal(t, []table.Value{table.String("a")}, col.Values)
	assert.Equal(t, []string{"Customer ID", "GENDER", "Number of Open Complaints"}, tbl.ColumnNames())
}

func TestFormat_AppliesRenames(t *testing.T) {
	tbl := table.MustNew(
		table.Column{Name: "ST", Type: table.TypeString, Values: nil},
		table.Column{Name: "Customer", Type: table.TypeString, Values: nil},
	)

	out, err := Format{Renames: map[string]string{"st": "state"}}.Apply(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"state", "customer"}, out.ColumnNames())
}

func TestFormat_UnmatchedRenameKeysIgnored(t *testing.T) {
	tbl := table.MustNew(
		table.Column{Name: "ST", Type: table.TypeString, Values: nil},
	)

	out, err := Format{Renames: map[string]string{"st": "state", "zip": "postal_code"}}.Apply(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"state"}, out.ColumnNames())
}

func TestFormat_RenameKeysMatchFormattedNames(t *testing.T) {
	// The key "st" matches the column "ST" only after formatting; a key in
	// the original casing does not match anything.
	tbl := table.MustNew(
		table.Column{Name: "ST", Type: table.TypeString, Values: nil},
	)

	out, err := Format{Renames: map[string]string{"ST": "state"}}.Apply(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"st"}, out.ColumnNames())
}

func TestFormat_CollisionFails(t *testing.T) {
	tbl := table.MustNew(
		table.Column{Name: "Customer ID", Type: table.TypeString, Values: nil},
		table.Column{Name: "customer id", Type: table.TypeString, Values: nil},
	)

	_, err := Format{}.Apply(tbl)
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrCodeDuplicateColumn, se.Code)
}
