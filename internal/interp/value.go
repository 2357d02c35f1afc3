// Package interp implements the Lox evaluator: runtime values, the
// environment chain, the callable/class/instance runtime, and the
// recursive evaluate dispatch over the AST.
package interp

import (
	"strconv"
	"strings"
)

// Value is any runtime value the evaluator can produce or operate on.
type Value interface {
	// Type names the runtime kind, used in diagnostics.
	Type() string
	// String returns Lox's display form of the value (what `print` writes).
	String() string
}

// Nil is Lox's unit value. There is exactly one: the package-level Nil.
type NilValue struct{}

func (NilValue) Type() string   { return "NIL" }
func (NilValue) String() string { return "nil" }

var Nil Value = NilValue{}

// BoolValue is a boolean.
type BoolValue bool

func (b BoolValue) Type() string { return "BOOL" }
func (b BoolValue) String() string {
	if b {
		return "true"
	}
	return "false"
}

// NumberValue is Lox's single numeric kind, a 64-bit float.
type NumberValue float64

func (n NumberValue) Type() string { return "NUMBER" }

// String strips the trailing ".0" integral floats would otherwise print
// with, per the language's display rules.
func (n NumberValue) String() string {
	s := strconv.FormatFloat(float64(n), 'f', -1, 64)
	return strings.TrimSuffix(s, ".0")
}

// StringValue is an immutable Lox string.
type StringValue string

func (s StringValue) Type() string   { return "STRING" }
func (s StringValue) String() string { return string(s) }

// NativeFn is a callable implemented in Go rather than in Lox, exposed to
// scripts as an ordinary callable value.
type NativeFn struct {
	Name string
	Arty int
	Fn   func(args []Value) (Value, error)
}

func (n *NativeFn) Type() string   { return "NATIVE_FN" }
func (n *NativeFn) String() string { return "<native fn>" }

// isTruthy applies Lox's truthiness rule: only nil and false are falsey,
// every other value (including 0 and "") is truthy.
func isTruthy(v Value) bool {
	switch val := v.(type) {
	case NilValue:
		return false
	case BoolValue:
		return bool(val)
	default:
		return true
	}
}

// valuesEqual implements Lox's ==. Values of different kinds are never
// equal; NilValue, BoolValue, NumberValue, and StringValue compare by
// value; Function, Class, Instance, and NativeFn compare by identity (each
// case compares the two pointers).
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av == bv
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av == bv
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av == bv
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	case *Class:
		bv, ok := b.(*Class)
		return ok && av == bv
	case *Instance:
		bv, ok := b.(*Instance)
		return ok && av == bv
	case *NativeFn:
		bv, ok := b.(*NativeFn)
		return ok && av == bv
	default:
		return false
	}
}
