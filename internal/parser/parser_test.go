package parser

import (
	"testing"

	"github.com/loxlang/golox/internal/ast"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, err := Parse(input)
	if err != nil {
		t.Fatalf("parser error for %q: %v", input, err)
	}
	return program
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3))"},
		{"(1 + 2) * 3;", "((1 + 2) * 3)"},
		{"-1 + 2;", "((-1) + 2)"},
		{"1 < 2 == 3 < 4;", "((1 < 2) == (3 < 4))"},
		{"a = b = 1;", "(a = (b = 1))"},
		{"a or b and c;", "(a or (b and c))"},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		if len(program.Statements) != 1 {
			t.Fatalf("%q: expected 1 statement, got %d", tt.input, len(program.Statements))
		}
		stmt, ok := program.Statements[0].(*ast.ExprStmt)
		if !ok {
			t.Fatalf("%q: expected ExprStmt, got %T", tt.input, program.Statements[0])
		}
		if got := stmt.Expr.String(); got != tt.expected {
			t.Errorf("%q: got %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseVarDecl(t *testing.T) {
	program := parseProgram(t, `var x = 1 + 2;`)
	stmt, ok := program.Statements[0].(*ast.VarDef)
	if !ok {
		t.Fatalf("expected VarDef, got %T", program.Statements[0])
	}
	if stmt.Name != "x" {
		t.Errorf("expected name 'x', got %q", stmt.Name)
	}
}

func TestParseFunctionDecl(t *testing.T) {
	program := parseProgram(t, `fun add(a, b) { return a + b; }`)
	fn, ok := program.Statements[0].(*ast.Function)
	if !ok {
		t.Fatalf("expected Function, got %T", program.Statements[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Errorf("unexpected function shape: %+v", fn)
	}
}

func TestParseClassDeclWithSuperclass(t *testing.T) {
	program := parseProgram(t, `class B < A { m() { return 1; } }`)
	class, ok := program.Statements[0].(*ast.Class)
	if !ok {
		t.Fatalf("expected Class, got %T", program.Statements[0])
	}
	if class.Name != "B" || class.Base == nil || class.Base.Name != "A" {
		t.Errorf("unexpected class shape: %+v", class)
	}
	if len(class.Methods) != 1 || class.Methods[0].Name != "m" {
		t.Errorf("unexpected methods: %+v", class.Methods)
	}
}

func TestParseIfElse(t *testing.T) {
	program := parseProgram(t, `if (a) print 1; else print 2;`)
	stmt, ok := program.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected If, got %T", program.Statements[0])
	}
	if stmt.Then == nil || stmt.Else == nil {
		t.Errorf("expected both branches to be present")
	}
}

func TestParseGetAndSetAttr(t *testing.T) {
	program := parseProgram(t, `a.b.c = 1;`)
	stmt, ok := program.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", program.Statements[0])
	}
	setattr, ok := stmt.Expr.(*ast.Setattr)
	if !ok {
		t.Fatalf("expected Setattr, got %T", stmt.Expr)
	}
	if setattr.Name != "c" {
		t.Errorf("expected field 'c', got %q", setattr.Name)
	}
	if _, ok := setattr.Obj.(*ast.Getattr); !ok {
		t.Errorf("expected Obj to be Getattr, got %T", setattr.Obj)
	}
}

func TestInvalidAssignmentTargetIsRejected(t *testing.T) {
	if _, err := Parse(`1 = 2;`); err == nil {
		t.Error("expected a parse error for assigning to a literal")
	}
}
