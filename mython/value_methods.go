package mython

import (
	"fmt"
	"strconv"
)

func (k ValueKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String renders the value the way print does, except that instances are
// rendered by address only; __str__ dispatch needs an Execution and lives in
// writeValue.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindNumber:
		return strconv.Itoa(v.data.(int))
	case KindString:
		return v.data.(string)
	case KindBool:
		if v.data.(bool) {
			return "True"
		}
		return "False"
	case KindClass:
		return "Class " + v.data.(*ClassDef).Name
	case KindInstance:
		return fmt.Sprintf("%p", v.data.(*Instance))
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// Truthy coerces the value to a boolean: Bool is its value, a Number is true
// iff non-zero, a String iff non-empty, everything else (None included) is
// false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.data.(bool)
	case KindNumber:
		return v.data.(int) != 0
	case KindString:
		return v.data.(string) != ""
	default:
		return false
	}
}
