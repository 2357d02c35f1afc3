package interp

import (
	"bytes"
	"testing"

	"github.com/loxlang/golox/internal/parser"
)

// run lexes, parses, and evaluates input, returning whatever it printed.
// Tests that need the program to fail use runErr instead.
func run(t *testing.T, input string) string {
	t.Helper()
	program, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var buf bytes.Buffer
	interp := New(&buf)
	if err := interp.Run(program); err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	return buf.String()
}

func runErr(t *testing.T, input string) error {
	t.Helper()
	program, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var buf bytes.Buffer
	interp := New(&buf)
	return interp.Run(program)
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print 1 + 2;", "3\n"},
		{"print 10 - 4;", "6\n"},
		{"print 3 * 4;", "12\n"},
		{"print 10 / 4;", "2.5\n"},
		{"print 2 + 3 * 4;", "14\n"},
		{"print (2 + 3) * 4;", "20\n"},
		{"print -5;", "-5\n"},
		{"print \"foo\" + \"bar\";", "foobar\n"},
	}

	for _, tt := range tests {
		if got := run(t, tt.input); got != tt.expected {
			t.Errorf("%q: got %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print !nil;", "true\n"},
		{"print !false;", "true\n"},
		{"print !0;", "false\n"},
		{"print !\"\";", "false\n"},
		{"print 1 == 1;", "true\n"},
		{"print 1 == \"1\";", "false\n"},
	}

	for _, tt := range tests {
		if got := run(t, tt.input); got != tt.expected {
			t.Errorf("%q: got %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	err := runErr(t, "print 1 / 0;")
	if err == nil {
		t.Fatal("expected a runtime error, got none")
	}
}

func TestVariablesAndScope(t *testing.T) {
	input := `
var a = 1;
{
  var a = 2;
  print a;
}
print a;
`
	got := run(t, input)
	if got != "2\n1\n" {
		t.Errorf("got %q", got)
	}
}

func TestControlFlow(t *testing.T) {
	input := `
var i = 0;
while (i < 3) {
  print i;
  i = i + 1;
}
`
	if got := run(t, input); got != "0\n1\n2\n" {
		t.Errorf("got %q", got)
	}

	input = `if (true) print "yes"; else print "no";`
	if got := run(t, input); got != "yes\n" {
		t.Errorf("got %q", got)
	}
}

func TestClosures(t *testing.T) {
	input := `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    print count;
  }
  return increment;
}
var counter = makeCounter();
counter();
counter();
`
	if got := run(t, input); got != "1\n2\n" {
		t.Errorf("got %q", got)
	}
}

func TestClassesAndMethods(t *testing.T) {
	input := `
class Greeter {
  init(name) {
    this.name = name;
  }
  greet() {
    print "Hello, " + this.name;
  }
}
var g = Greeter("world");
g.greet();
`
	if got := run(t, input); got != "Hello, world\n" {
		t.Errorf("got %q", got)
	}
}

func TestInheritanceAndSuper(t *testing.T) {
	input := `
class Animal {
  speak() {
    print "...";
  }
}
class Dog < Animal {
  speak() {
    super.speak();
    print "Woof";
  }
}
Dog().speak();
`
	if got := run(t, input); got != "...\nWoof\n" {
		t.Errorf("got %q", got)
	}
}

func TestGetattrOnClassYieldsUnboundMethod(t *testing.T) {
	input := `
class A {
  m() {
    print "m";
  }
}
print A.m;
`
	if got := run(t, input); got != "<fn m>\n" {
		t.Errorf("got %q", got)
	}
}

func TestGetattrOnClassMissingMethodErrors(t *testing.T) {
	if err := runErr(t, `class A {} print A.missing;`); err == nil {
		t.Fatal("expected a runtime error for an undefined class method")
	}
}

func TestInitAlwaysReturnsInstance(t *testing.T) {
	input := `
class Point {
  init(x) {
    this.x = x;
  }
}
var p = Point(1);
var q = p.init(2);
print q.x;
print p.x;
`
	if got := run(t, input); got != "2\n2\n" {
		t.Errorf("got %q", got)
	}
}
