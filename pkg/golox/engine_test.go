package golox

import (
	"errors"
	"testing"

	"github.com/loxlang/golox/internal/interp"
)

var errNotANumber = errors.New("argument must be a number")

func TestEvalCapturesOutput(t *testing.T) {
	e := New()
	result, err := e.Eval(`print "hello";`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Output != "hello\n" {
		t.Errorf("got %q", result.Output)
	}
}

func TestEvalRunsValidationByDefault(t *testing.T) {
	e := New()
	if _, err := e.Eval(`print this;`); err == nil {
		t.Error("expected a semantic error for top-level 'this'")
	}
}

func TestWithValidationDisabled(t *testing.T) {
	e := New(WithValidation(false))
	// 'this' outside a class is a semantic error, not a parse error, so
	// disabling validation lets it through to evaluation, where it fails
	// as an ordinary runtime error instead.
	if _, err := e.Eval(`print this;`); err == nil {
		t.Error("expected a runtime error once validation is skipped")
	}
}

func TestRegisterNativeFn(t *testing.T) {
	e := New()
	e.RegisterNativeFn("double", 1, func(args []Value) (Value, error) {
		n, ok := args[0].(interp.NumberValue)
		if !ok {
			return nil, errNotANumber
		}
		return Number(2 * float64(n)), nil
	})

	result, err := e.Eval(`print double(21);`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Output != "42\n" {
		t.Errorf("got %q", result.Output)
	}
}
