package interp

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/loxlang/golox/internal/parser"
)

// TestMain lets go-snaps clean up any snapshot no longer referenced by a
// test once the whole package's tests have finished.
func TestMain(m *testing.M) {
	snaps.Clean(m)
}

// fixtures is a small curated set of representative programs exercising
// recursion, closures, and inheritance together, snapshotted so a
// regression in their combined output shows up as a diff.
var fixtures = map[string]string{
	"fibonacci": `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
var i = 0;
while (i < 8) {
  print fib(i);
  i = i + 1;
}
`,
	"shapes": `
class Shape {
  area() {
    return 0;
  }
  describe() {
    print "shape area:";
    print this.area();
  }
}
class Circle < Shape {
  init(radius) {
    this.radius = radius;
  }
  area() {
    return 3 * this.radius * this.radius;
  }
}
var c = Circle(2);
c.describe();
`,
}

func TestFixtureSnapshots(t *testing.T) {
	for name, src := range fixtures {
		t.Run(name, func(t *testing.T) {
			program, err := parser.Parse(src)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			var buf bytes.Buffer
			interp := New(&buf)
			if err := interp.Run(program); err != nil {
				t.Fatalf("runtime error: %v", err)
			}
			snaps.MatchSnapshot(t, buf.String())
		})
	}
}
