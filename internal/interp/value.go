// Package interp evaluates a parsed CFPL program against a flat variable
// environment, producing OUTPUT text and consuming INPUT values.
package interp

import (
	"strconv"

	"github.com/cwbudde/cfpl/internal/cfplerrors"
)

// Value is any runtime value CFPL statements and expressions operate on.
type Value interface {
	Type() string
	String() string
}

// IntValue holds an INT-typed value.
type IntValue struct{ Val int64 }

func (v *IntValue) Type() string   { return "INT" }
func (v *IntValue) String() string { return strconv.FormatInt(v.Val, 10) }

// FloatValue holds a FLOAT-typed value.
type FloatValue struct{ Val float64 }

func (v *FloatValue) Type() string   { return "FLOAT" }
func (v *FloatValue) String() string { return strconv.FormatFloat(v.Val, 'f', -1, 64) }

// emptyChar is the rune held by a CHAR variable that was declared without
// an initializer; it renders as "" rather than a character, since CFPL's
// CHAR default is empty, not a NUL byte.
const emptyChar rune = -1

// CharValue holds a CHAR-typed value.
type CharValue struct{ Val rune }

func (v *CharValue) Type() string { return "CHAR" }
func (v *CharValue) String() string {
	if v.Val == emptyChar {
		return ""
	}
	return string(v.Val)
}

// BoolValue holds a BOOL-typed value.
type BoolValue struct{ Val bool }

func (v *BoolValue) Type() string { return "BOOL" }
func (v *BoolValue) String() string {
	if v.Val {
		return "TRUE"
	}
	return "FALSE"
}

// StrValue is an intermediate string value, produced by a quoted string
// literal in an expression or by INPUT text that fits no other type; no
// CFPL variable can ever hold one (spec.md §3).
type StrValue struct{ Val string }

func (v *StrValue) Type() string   { return "STRING" }
func (v *StrValue) String() string { return v.Val }

// ErrorValue wraps a *cfplerrors.Error so it can flow through Eval like any
// other Value; every call site checks isError before using a result
// (the teacher's own errors-as-values evaluator idiom).
type ErrorValue struct{ Err *cfplerrors.Error }

func (v *ErrorValue) Type() string   { return "ERROR" }
func (v *ErrorValue) String() string { return v.Err.Error() }

func isError(v Value) bool {
	_, ok := v.(*ErrorValue)
	return ok
}

func newError(line int, format string, args ...any) *ErrorValue {
	return &ErrorValue{Err: cfplerrors.NewRuntimeError(line, format, args...)}
}

func wrapError(err *cfplerrors.Error) *ErrorValue {
	return &ErrorValue{Err: err}
}

// truthy implements CFPL's truthiness rule, used by IF/WHILE conditions
// and by NOT applied to a non-boolean operand: non-zero numbers and
// non-empty chars/strings count as true; BOOL values pass through as-is.
func truthy(v Value, line int) (bool, *ErrorValue) {
	switch n := v.(type) {
	case *BoolValue:
		return n.Val, nil
	case *IntValue:
		return n.Val != 0, nil
	case *FloatValue:
		return n.Val != 0, nil
	case *CharValue:
		return n.Val != emptyChar, nil
	case *StrValue:
		return n.Val != "", nil
	default:
		return false, newError(line, "cannot evaluate truthiness of %s", v.Type())
	}
}
