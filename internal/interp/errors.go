package interp

import (
	"fmt"

	"github.com/loxlang/golox/internal/lexer"
)

// RuntimeError is a failure that occurs while evaluating an otherwise
// well-formed program: a type mismatch in an operator, division by zero, an
// undefined variable or property, or a call to a non-callable value. It
// carries the source position of the node nearest the failure, and its
// message ends with that position's line number.
type RuntimeError struct {
	Message string
	Pos     lexer.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Pos.Line)
}

func newRuntimeError(pos lexer.Position, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// ReturnSignal is thrown by a `return` statement and caught by the nearest
// enclosing function call. It is never surfaced to a caller outside this
// package: execute and evaluate pass it up as an ordinary error until
// callFunction intercepts it, and Run turns one that reaches the top level
// into a RuntimeError.
type ReturnSignal struct {
	Value Value
}

func (r *ReturnSignal) Error() string { return "return outside of function" }

func asReturnSignal(err error) (*ReturnSignal, bool) {
	rs, ok := err.(*ReturnSignal)
	return rs, ok
}
