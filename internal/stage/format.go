package stage

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/sift/internal/table"
)

// Format normalizes column names and applies a rename mapping.
//
// Every column name is lower-cased (Und locale, so the mapping does not
// depend on the host locale) and each space character becomes an
// underscore. Rename keys are matched against the formatted names;
// unmatched keys are silently ignored. Data is untouched.
type Format struct {
	// Renames maps formatted-name to final name.
	Renames map[string]string
}

// Name implements Stage.
func (Format) Name() string { return "format" }

// Apply implements Stage. Fails with DUPLICATE_COLUMN if formatting or
// renaming collapses two columns onto the same name.
func (f Format) Apply(t *table.Table) (*table.Table, error) {
	lower := cases.Lower(language.Und)

	names := t.ColumnNames()
	formatted := make([]string, len(names))
	for i, name := range names {
		name = strings.ReplaceAll(lower.String(name), " ", "_")
		if final, ok := f.Renames[name]; ok {
			name = final
		}
		formatted[i] = name
	}

	out, err := t.WithColumnNames(formatted)
	if err != nil {
		return nil, &Error{
			Code:    ErrCodeDuplicateColumn,
			Stage:   f.Name(),
			Message: fmt.Sprintf("column names collide after formatting: %v", err),
		}
	}
	return out, nil
}
