package stage

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes stage failures.
type ErrorCode string

const (
	// ErrCodeMissingColumn indicates a referenced column is absent.
	ErrCodeMissingColumn ErrorCode = "MISSING_COLUMN"

	// ErrCodeTypeCoercion indicates a value could not be cast to the
	// requested type.
	ErrCodeTypeCoercion ErrorCode = "TYPE_COERCION"

	// ErrCodeNonTextTarget indicates substring replacement was invoked on
	// a non-text value or column.
	ErrCodeNonTextTarget ErrorCode = "NON_TEXT_TARGET"

	// ErrCodeDuplicateColumn indicates formatting or renaming produced two
	// columns with the same name.
	ErrCodeDuplicateColumn ErrorCode = "DUPLICATE_COLUMN"
)

// Error represents a stage failure with enough context to diagnose it:
// the stage that failed, the column involved, and a category code.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Stage is the name of the failing stage.
	Stage string

	// Column is the column involved, when known.
	Column string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: %s (stage=%s, column=%s)", e.Code, e.Message, e.Stage, e.Column)
	}
	return fmt.Sprintf("%s: %s (stage=%s)", e.Code, e.Message, e.Stage)
}

// IsMissingColumn reports whether err is a missing-column stage error.
// Uses errors.As to handle wrapped errors.
func IsMissingColumn(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == ErrCodeMissingColumn
}

// IsTypeCoercion reports whether err is a type-coercion stage error.
func IsTypeCoercion(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == ErrCodeTypeCoercion
}

// IsNonTextTarget reports whether err is a non-text replacement target error.
func IsNonTextTarget(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == ErrCodeNonTextTarget
}

func newMissingColumn(stage, column string) *Error {
	return &Error{
		Code:    ErrCodeMissingColumn,
		Stage:   stage,
		Column:  column,
		Message: fmt.Sprintf("column %q not found", column),
	}
}
