package main

import (
	"fmt"
	"io"

	"github.com/mython-lang/mython/mython"
)

type scenario struct {
	name   string
	source string
	want   string
}

// scenarios is the built-in suite behind --test: a handful of complete
// programs with their exact expected output.
var scenarios = []scenario{
	{
		name:   "arithmetics",
		source: "print 1+2+3+4+5, 1*2*3*4*5, 1-2-3-4-5, 36/4/3, 2*5+10/2\n",
		want:   "15 120 -13 3 15\n",
	},
	{
		name: "simple prints",
		source: `print 57
print 10, 24, -8
print 'hello'
print "world"
print True, False
print
print None
`,
		want: "57\n10 24 -8\nhello\nworld\nTrue False\n\nNone\n",
	},
	{
		name: "assignments",
		source: `x = 57
print x
x = 's'
print x
y = False
x = y
print x
x = None
print x, y
`,
		want: "57\ns\nFalse\nNone False\n",
	},
	{
		name: "variables are pointers",
		source: `class Counter:
  def __init__():
    self.value = 0

  def add():
    self.value = self.value + 1

class Dummy:
  def do_add(counter):
    counter.add()

x = Counter()
y = x

x.add()
y.add()

print x.value

d = Dummy()
d.do_add(x)

print y.value
`,
		want: "2\n3\n",
	},
	{
		name: "inheritance and __str__",
		source: `class Shape:
  def __str__():
    return 'Shape'

class Rect(Shape):
  def __str__():
    return 'Rect'

class Circle(Shape):
  def __str__():
    return 'Circle'

class Blob(Shape):
  def size():
    return 1

print Shape(), Rect(), Circle(), Blob()
`,
		want: "Shape Rect Circle Shape\n",
	},
	{
		name: "comparison dispatch",
		source: `class Num:
  def __init__(v):
    self.v = v

  def __lt__(rhs):
    return self.v < rhs.v

  def __eq__(rhs):
    return self.v == rhs.v

a = Num(1)
b = Num(2)
print a < b, a > b, a <= b, a != b
`,
		want: "True False True True\n",
	},
}

func runSelfTest(w io.Writer) error {
	failures := 0
	for _, sc := range scenarios {
		got, err := runScenario(sc)
		switch {
		case err != nil:
			failures++
			fmt.Fprintf(w, "FAIL %s: %v\n", sc.name, err)
		case got != sc.want:
			failures++
			fmt.Fprintf(w, "FAIL %s: got %q, want %q\n", sc.name, got, sc.want)
		default:
			fmt.Fprintf(w, "PASS %s\n", sc.name)
		}
	}
	fmt.Fprintf(w, "%d/%d scenarios passed\n", len(scenarios)-failures, len(scenarios))
	if failures > 0 {
		return fmt.Errorf("%d scenario(s) failed", failures)
	}
	return nil
}

func runScenario(sc scenario) (string, error) {
	program, err := mython.Compile(sc.source)
	if err != nil {
		return "", err
	}
	var ctx mython.CaptureContext
	if err := program.Run(&ctx); err != nil {
		return "", err
	}
	return ctx.String(), nil
}
