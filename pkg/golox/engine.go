// Package golox is the embeddable facade over the Lox front end and
// evaluator: lex, parse, validate, and run a script from a single call,
// with hooks for redirecting output and registering host functions.
package golox

import (
	"bytes"
	"io"

	"github.com/loxlang/golox/internal/interp"
	"github.com/loxlang/golox/internal/parser"
	"github.com/loxlang/golox/internal/semantic"
)

// Value is any Lox runtime value, usable in native function signatures
// registered with RegisterNativeFn.
type Value = interp.Value

// Nil is Lox's unit value.
var Nil = interp.Nil

// Number, String, and Bool construct Lox values of the corresponding kind,
// for use inside native functions registered with RegisterNativeFn.
func Number(n float64) Value { return interp.NumberValue(n) }
func String(s string) Value  { return interp.StringValue(s) }
func Bool(b bool) Value      { return interp.BoolValue(b) }

// Result is what a successful Eval produces.
type Result struct {
	// Output holds everything the script printed, when the Engine was not
	// given an explicit output writer via SetOutput.
	Output string
}

// Engine runs Lox source against a configurable global scope.
type Engine struct {
	validate bool
	output   io.Writer
	natives  map[string]*interp.NativeFn
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithValidation toggles the semantic validation pass that runs between
// parsing and evaluation. It defaults to enabled; disabling it is mainly
// useful for tests that want to observe a raw parse tree run as-is.
func WithValidation(enabled bool) Option {
	return func(e *Engine) { e.validate = enabled }
}

// New creates an Engine with validation enabled and no registered natives.
func New(opts ...Option) *Engine {
	e := &Engine{validate: true, natives: make(map[string]*interp.NativeFn)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetOutput redirects every future Eval's `print` output to w instead of
// being captured into the returned Result.
func (e *Engine) SetOutput(w io.Writer) {
	e.output = w
}

// RegisterNativeFn exposes a Go function to scripts as a global callable
// named name. arity is the number of arguments the call form enforces; pass
// -1 to accept any number of arguments.
func (e *Engine) RegisterNativeFn(name string, arity int, fn func(args []Value) (Value, error)) {
	e.natives[name] = &interp.NativeFn{Name: name, Arty: arity, Fn: fn}
}

// Eval lexes, parses, (optionally) validates, and runs source, returning
// its captured output.
func (e *Engine) Eval(source string) (*Result, error) {
	program, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}

	if e.validate {
		if err := semantic.Validate(program); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	w := e.output
	if w == nil {
		w = &buf
	}

	interpreter := interp.New(w)
	for name, fn := range e.natives {
		interpreter.DefineGlobal(name, fn)
	}

	if err := interpreter.Run(program); err != nil {
		return nil, err
	}

	return &Result{Output: buf.String()}, nil
}
