// Package compiler turns CUE pipeline definitions into pipeline
// configurations. Definitions are parsed with the CUE SDK's Go API (not a
// CLI subprocess); compile errors carry CUE source positions so the CLI can
// point at the offending line.
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/sift/internal/pipeline"
	"github.com/roach88/sift/internal/stage"
	"github.com/roach88/sift/internal/table"
)

// CompileError is a definition error with an optional CUE source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CompileDefinition parses a CUE value into a pipeline.Config.
//
// The CUE value is the definition struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`column_renames: {st: "state"}`)
//	cfg, err := CompileDefinition(v)
//
// Every field is optional; an empty definition compiles to the standard
// pipeline with no renames, replacements, or casts.
//
// CompileDefinition is fail-fast: the first error wins. Use
// CompileDefinitionAll to collect every error for diagnostics.
func CompileDefinition(v cue.Value) (*pipeline.Config, error) {
	cfg, errs := CompileDefinitionAll(v)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return cfg, nil
}

// CompileDefinitionAll parses a CUE value and collects errors from every
// section instead of stopping at the first, so a bad cast does not mask a
// bad replacement. Returns a nil config when any error occurred.
func CompileDefinitionAll(v cue.Value) (*pipeline.Config, []error) {
	if err := v.Err(); err != nil {
		return nil, []error{formatCUEError(err)}
	}

	cfg := &pipeline.Config{}
	var errs []error

	if name, found, ferr := lookupString(v, "pipeline"); ferr != nil {
		errs = append(errs, ferr)
	} else if found {
		cfg.Pipeline = name
	}
	if name, found, ferr := lookupString(v, "gender_column"); ferr != nil {
		errs = append(errs, ferr)
	} else if found {
		cfg.GenderColumn = name
	}
	if name, found, ferr := lookupString(v, "complaints_column"); ferr != nil {
		errs = append(errs, ferr)
	} else if found {
		cfg.ComplaintsColumn = name
	}

	var err error
	cfg.ColumnRenames, err = parseRenames(v)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.Replacements, err = parseReplacements(v, "cols_to_replace")
	if err != nil {
		errs = append(errs, err)
	}
	cfg.NumericReplacements, err = parseReplacements(v, "numerical_cols_to_replace")
	if err != nil {
		errs = append(errs, err)
	}
	cfg.Casts, err = parseCasts(v)
	if err != nil {
		errs = append(errs, err)
	}

	// Structural validation runs regardless of parse errors; sections that
	// failed to parse are empty, so nothing is reported twice.
	if err := cfg.Validate(); err != nil {
		errs = append(errs, &CompileError{
			Field:   "definition",
			Message: err.Error(),
			Pos:     v.Pos(),
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}

// parseRenames parses the column_renames struct.
func parseRenames(v cue.Value) (map[string]string, error) {
	rv := v.LookupPath(cue.ParsePath("column_renames"))
	if !rv.Exists() {
		return nil, nil
	}

	iter, err := rv.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	renames := make(map[string]string)
	for iter.Next() {
		val, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{
				Field:   "column_renames." + iter.Selector().String(),
				Message: "rename target must be a string",
				Pos:     iter.Value().Pos(),
			}
		}
		renames[selectorName(iter.Selector())] = val
	}
	return renames, nil
}

// parseReplacements parses an ordered replacement list:
//
//	cols_to_replace: [
//	  {column: "customer_lifetime_value", pairs: [["%", ""]]},
//	]
func parseReplacements(v cue.Value, field string) ([]pipeline.ColumnReplacements, error) {
	lv := v.LookupPath(cue.ParsePath(field))
	if !lv.Exists() {
		return nil, nil
	}

	iter, err := lv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var out []pipeline.ColumnReplacements
	for i := 0; iter.Next(); i++ {
		elem := iter.Value()

		column, found, ferr := lookupString(elem, "column")
		if ferr != nil {
			return nil, ferr
		}
		if !found {
			return nil, &CompileError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: "column is required",
				Pos:     elem.Pos(),
			}
		}

		pairs, err := parsePairs(elem.LookupPath(cue.ParsePath("pairs")), fmt.Sprintf("%s[%d].pairs", field, i))
		if err != nil {
			return nil, err
		}
		out = append(out, pipeline.ColumnReplacements{Column: column, Pairs: pairs})
	}
	return out, nil
}

// parsePairs parses a list of two-element [old, new] string lists.
func parsePairs(v cue.Value, field string) ([]stage.Pair, error) {
	if !v.Exists() {
		return nil, nil
	}

	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var pairs []stage.Pair
	for i := 0; iter.Next(); i++ {
		pairIter, err := iter.Value().List()
		if err != nil {
			return nil, formatCUEError(err)
		}

		var parts []string
		for pairIter.Next() {
			s, err := pairIter.Value().String()
			if err != nil {
				return nil, &CompileError{
					Field:   fmt.Sprintf("%s[%d]", field, i),
					Message: "replacement values must be strings",
					Pos:     pairIter.Value().Pos(),
				}
			}
			parts = append(parts, s)
		}
		if len(parts) != 2 {
			return nil, &CompileError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: fmt.Sprintf("replacement must be an [old, new] pair, got %d elements", len(parts)),
				Pos:     iter.Value().Pos(),
			}
		}
		pairs = append(pairs, stage.Pair{Old: parts[0], New: parts[1]})
	}
	return pairs, nil
}

// parseCasts parses the type reassignment list:
//
//	cols_to_reassign_datatype: [
//	  {column: "number_of_open_complaints", type: "int"},
//	]
func parseCasts(v cue.Value) ([]pipeline.ColumnCast, error) {
	lv := v.LookupPath(cue.ParsePath("cols_to_reassign_datatype"))
	if !lv.Exists() {
		return nil, nil
	}

	iter, err := lv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var out []pipeline.ColumnCast
	for i := 0; iter.Next(); i++ {
		elem := iter.Value()
		field := fmt.Sprintf("cols_to_reassign_datatype[%d]", i)

		column, found, ferr := lookupString(elem, "column")
		if ferr != nil {
			return nil, ferr
		}
		if !found {
			return nil, &CompileError{Field: field, Message: "column is required", Pos: elem.Pos()}
		}

		typeName, found, ferr := lookupString(elem, "type")
		if ferr != nil {
			return nil, ferr
		}
		if !found {
			return nil, &CompileError{Field: field, Message: "type is required", Pos: elem.Pos()}
		}

		typ, err := table.ParseType(typeName)
		if err != nil {
			return nil, &CompileError{
				Field:   field + ".type",
				Message: err.Error(),
				Pos:     elem.LookupPath(cue.ParsePath("type")).Pos(),
			}
		}
		out = append(out, pipeline.ColumnCast{Column: column, Type: typ})
	}
	return out, nil
}

// lookupString fetches an optional string field. The second return value
// reports whether the field exists.
func lookupString(v cue.Value, field string) (string, bool, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", false, nil
	}
	s, err := fv.String()
	if err != nil {
		return "", false, &CompileError{
			Field:   field,
			Message: "must be a string",
			Pos:     fv.Pos(),
		}
	}
	return s, true, nil
}

// selectorName returns the unquoted name of a struct field selector.
func selectorName(sel cue.Selector) string {
	if sel.Type() == cue.StringLabel {
		return sel.Unquoted()
	}
	return sel.String()
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return &CompileError{Field: "cue", Message: firstErr.Error()}
}
