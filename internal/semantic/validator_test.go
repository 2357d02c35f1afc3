package semantic

import (
	"testing"

	"github.com/loxlang/golox/internal/ast"
	"github.com/loxlang/golox/internal/lexer"
	"github.com/loxlang/golox/internal/parser"
)

func validate(t *testing.T, input string) error {
	t.Helper()
	program, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Validate(program)
}

func TestValidProgramsPass(t *testing.T) {
	programs := []string{
		`print "hi";`,
		`fun f() { return 1; }`,
		`class A { init() { this.x = 1; } }`,
		`class A {} class B < A { m() { super.init(); } }`,
	}
	for _, src := range programs {
		if err := validate(t, src); err != nil {
			t.Errorf("%q: unexpected error: %v", src, err)
		}
	}
}

func TestThisOutsideClassIsRejected(t *testing.T) {
	if err := validate(t, `print this;`); err == nil {
		t.Error("expected an error for 'this' outside a class")
	}
}

func TestSuperOutsideClassIsRejected(t *testing.T) {
	if err := validate(t, `print super.foo;`); err == nil {
		t.Error("expected an error for 'super' outside a class")
	}
}

func TestSuperWithoutSuperclassIsRejected(t *testing.T) {
	if err := validate(t, `class A { m() { super.m(); } }`); err == nil {
		t.Error("expected an error for 'super' in a class with no superclass")
	}
}

func TestReturnOutsideFunctionIsRejected(t *testing.T) {
	if err := validate(t, `return 1;`); err == nil {
		t.Error("expected an error for top-level return")
	}
}

// The lexer never tokenizes a reserved word as an identifier, so this case
// cannot arise from parsed source; it is exercised directly against a
// hand-built AST instead, the way the validator is meant to defend a tree
// built by something other than this package's own parser.
func TestReservedWordAsVariableNameIsRejected(t *testing.T) {
	nameTok := lexer.Token{Type: lexer.CLASS, Literal: "class"}
	program := &ast.Program{
		Statements: []ast.Statement{
			&ast.VarDef{
				Token:       lexer.Token{Type: lexer.VAR, Literal: "var"},
				NameTok:     nameTok,
				Name:        "class",
				Initializer: &ast.Literal{Token: lexer.Token{Type: lexer.NUMBER, Literal: "1"}, Value: float64(1)},
			},
		},
	}
	if err := Validate(program); err == nil {
		t.Error("expected an error for reserved word as a variable name")
	}
}

func TestBlockRedeclarationIsRejected(t *testing.T) {
	if err := validate(t, `{ var a = 1; var a = 2; }`); err == nil {
		t.Error("expected an error for redeclaration in the same block")
	}
}

func TestDuplicateParameterIsRejected(t *testing.T) {
	if err := validate(t, `fun f(a, a) { return a; }`); err == nil {
		t.Error("expected an error for duplicate parameter names")
	}
}

func TestParamShadowedByBodyVarIsRejected(t *testing.T) {
	if err := validate(t, `fun f(a) { var a = 2; return a; }`); err == nil {
		t.Error("expected an error for a body var shadowing a parameter")
	}
}

func TestThisInsideNestedClosureIsAccepted(t *testing.T) {
	src := `
class A {
  m() {
    fun inner() {
      print this;
    }
    inner();
  }
}
`
	if err := validate(t, src); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
