package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the nominal type of a column.
type Type string

const (
	// TypeString holds free-form text.
	TypeString Type = "string"

	// TypeInt holds 64-bit integers.
	TypeInt Type = "int"

	// TypeFloat holds 64-bit floats.
	TypeFloat Type = "float"

	// TypeCategory holds categorical text. Values are represented as
	// strings; the tag only records the nominal intent of the column.
	TypeCategory Type = "category"
)

// Valid reports whether t is one of the known nominal types.
func (t Type) Valid() bool {
	switch t {
	case TypeString, TypeInt, TypeFloat, TypeCategory:
		return true
	}
	return false
}

// Textual reports whether values of this type are treated as text.
func (t Type) Textual() bool {
	return t == TypeString || t == TypeCategory
}

// ParseType resolves a type identifier to a Type. Common aliases from
// configuration files are accepted ("integer", "int64", "float64",
// "numeric", "text", "str").
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "str", "text":
		return TypeString, nil
	case "int", "integer", "int64":
		return TypeInt, nil
	case "float", "float64", "numeric", "number":
		return TypeFloat, nil
	case "category", "categorical":
		return TypeCategory, nil
	default:
		return "", fmt.Errorf("unknown column type %q", s)
	}
}

// Value is a sealed interface representing a single table cell.
// Only Null, String, Int, and Float implement it.
type Value interface {
	value() // Sealed - only these types implement it
}

// Null represents a missing cell. Using an explicit type keeps the sealed
// interface total: a cell is never a nil Value.
type Null struct{}

func (Null) value() {}

// String represents a text cell.
type String string

func (String) value() {}

// Int represents an integer cell. Always int64.
type Int int64

func (Int) value() {}

// Float represents a floating-point cell. Always float64.
type Float float64

func (Float) value() {}

// IsNull reports whether v is a missing cell.
func IsNull(v Value) bool {
	_, ok := v.(Null)
	return ok
}

// Format renders a value as display text. Null renders as the empty string;
// floats use the shortest representation that round-trips (see canonical.go
// for why the formatting is pinned).
func Format(v Value) string {
	switch val := v.(type) {
	case Null:
		return ""
	case String:
		return string(val)
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		return strconv.FormatFloat(float64(val), 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
