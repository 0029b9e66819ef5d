package stage

import (
	"strings"

	"github.com/roach88/sift/internal/table"
)

// ExtractComplaintMonth parses slash-delimited date-like strings and keeps
// the month segment as the complaint count.
//
// A string value containing "/" is replaced by the segment at index 1 of
// the "/"-split ("1/5/2018" becomes "5"). Every other value, including
// numbers and strings without a slash, passes through unchanged. No numeric
// conversion happens here; coercion is deferred to the Cast stage.
type ExtractComplaintMonth struct {
	// Column is the complaint-count column name.
	Column string
}

// Name implements Stage.
func (ExtractComplaintMonth) Name() string { return "extract_complaint_month" }

// Apply implements Stage.
func (e ExtractComplaintMonth) Apply(t *table.Table) (*table.Table, error) {
	col, ok := t.Column(e.Column)
	if !ok {
		return nil, newMissingColumn(e.Name(), e.Column)
	}

	values := make([]table.Value, len(col.Values))
	for i, v := range col.Values {
		if s, ok := v.(table.String); ok && strings.Contains(string(s), "/") {
			values[i] = table.String(strings.Split(string(s), "/")[1])
			continue
		}
		values[i] = v
	}

	return t.WithColumn(e.Column, col.Type, values)
}
