package mython

import (
	"strings"
	"testing"
)

func parseSource(t *testing.T, source string) []Statement {
	t.Helper()
	lx, err := newLexer(source)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	stmts, err := newParser(lx, nil).parseProgram()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return stmts
}

func parseErrorFor(t *testing.T, source string) *ParseError {
	t.Helper()
	lx, err := newLexer(source)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	_, err = newParser(lx, nil).parseProgram()
	if err == nil {
		t.Fatalf("expected parse error for %q", source)
	}
	parseErr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	return parseErr
}

func TestParseAssignment(t *testing.T) {
	stmts := parseSource(t, "x = 42\n")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements", len(stmts))
	}
	assign, ok := stmts[0].(*AssignStmt)
	if !ok {
		t.Fatalf("expected *AssignStmt, got %T", stmts[0])
	}
	if assign.Name != "x" {
		t.Fatalf("unexpected target %q", assign.Name)
	}
	num, ok := assign.Value.(*NumberLiteral)
	if !ok || num.Value != 42 {
		t.Fatalf("unexpected value %#v", assign.Value)
	}
}

func TestParseFieldAssignment(t *testing.T) {
	stmts := parseSource(t, "a.b.c = 1\n")
	field, ok := stmts[0].(*FieldAssignStmt)
	if !ok {
		t.Fatalf("expected *FieldAssignStmt, got %T", stmts[0])
	}
	if field.Field != "c" {
		t.Fatalf("unexpected field %q", field.Field)
	}
	if len(field.Object.Path) != 2 || field.Object.Path[0] != "a" || field.Object.Path[1] != "b" {
		t.Fatalf("unexpected object path %v", field.Object.Path)
	}
}

func TestParsePrecedence(t *testing.T) {
	stmts := parseSource(t, "print 1 + 2 * 3\n")
	print := stmts[0].(*PrintStmt)
	sum, ok := print.Args[0].(*BinaryExpr)
	if !ok || sum.Op != "+" {
		t.Fatalf("expected + at the top, got %#v", print.Args[0])
	}
	product, ok := sum.Right.(*BinaryExpr)
	if !ok || product.Op != "*" {
		t.Fatalf("expected * under +, got %#v", sum.Right)
	}
}

func TestParseLogicalPrecedence(t *testing.T) {
	// or is loosest, then and, then not, then comparison.
	stmts := parseSource(t, "x = a or b and not c == 1\n")
	assign := stmts[0].(*AssignStmt)

	or, ok := assign.Value.(*BinaryExpr)
	if !ok || or.Op != "or" {
		t.Fatalf("expected or at the top, got %#v", assign.Value)
	}
	and, ok := or.Right.(*BinaryExpr)
	if !ok || and.Op != "and" {
		t.Fatalf("expected and under or, got %#v", or.Right)
	}
	not, ok := and.Right.(*UnaryExpr)
	if !ok || not.Op != "not" {
		t.Fatalf("expected not under and, got %#v", and.Right)
	}
	cmp, ok := not.Right.(*BinaryExpr)
	if !ok || cmp.Op != "==" {
		t.Fatalf("expected == under not, got %#v", not.Right)
	}
}

func TestParseUnaryMinus(t *testing.T) {
	stmts := parseSource(t, "print 1-2, -3\n")
	print := stmts[0].(*PrintStmt)
	if len(print.Args) != 2 {
		t.Fatalf("expected two print arguments, got %d", len(print.Args))
	}
	if sub, ok := print.Args[0].(*BinaryExpr); !ok || sub.Op != "-" {
		t.Fatalf("expected binary - in first argument, got %#v", print.Args[0])
	}
	if neg, ok := print.Args[1].(*UnaryExpr); !ok || neg.Op != "-" {
		t.Fatalf("expected unary - in second argument, got %#v", print.Args[1])
	}
}

func TestParseIfElse(t *testing.T) {
	source := "if x:\n  y = 1\nelse:\n  y = 2\n"
	stmts := parseSource(t, source)
	ifStmt, ok := stmts[0].(*IfStmt)
	if !ok {
		t.Fatalf("expected *IfStmt, got %T", stmts[0])
	}
	if len(ifStmt.Consequent) != 1 || len(ifStmt.Alternate) != 1 {
		t.Fatalf("unexpected branch sizes: %d/%d", len(ifStmt.Consequent), len(ifStmt.Alternate))
	}
}

func TestParseNestedIfElseAssociation(t *testing.T) {
	source := strings.Join([]string{
		"if a:",
		"  if b:",
		"    x = 1",
		"else:",
		"  x = 2",
		"",
	}, "\n")
	stmts := parseSource(t, source)
	outer := stmts[0].(*IfStmt)
	if len(outer.Alternate) != 1 {
		t.Fatalf("else should bind to the outer if, got %d alternate statements", len(outer.Alternate))
	}
	inner := outer.Consequent[0].(*IfStmt)
	if inner.Alternate != nil {
		t.Fatalf("inner if must not own the else branch")
	}
}

func TestParseClassAndInstantiation(t *testing.T) {
	source := strings.Join([]string{
		"class Point:",
		"  def __init__(x, y):",
		"    self.x = x",
		"    self.y = y",
		"",
		"p = Point(1, 2)",
		"",
	}, "\n")
	stmts := parseSource(t, source)
	if len(stmts) != 2 {
		t.Fatalf("got %d statements", len(stmts))
	}

	classStmt := stmts[0].(*ClassDefStmt)
	class := classStmt.Class.Class()
	if class.Name != "Point" || len(class.Methods) != 1 {
		t.Fatalf("unexpected class %q with %d methods", class.Name, len(class.Methods))
	}
	init := class.Methods[0]
	if init.Name != "__init__" || len(init.Params) != 2 {
		t.Fatalf("unexpected method %q/%d", init.Name, len(init.Params))
	}

	assign := stmts[1].(*AssignStmt)
	inst, ok := assign.Value.(*NewInstanceExpr)
	if !ok {
		t.Fatalf("expected *NewInstanceExpr, got %T", assign.Value)
	}
	if inst.Class != class {
		t.Fatalf("instantiation must capture the declared class descriptor")
	}
	if len(inst.Args) != 2 {
		t.Fatalf("expected two constructor arguments, got %d", len(inst.Args))
	}
}

func TestParseInheritance(t *testing.T) {
	source := strings.Join([]string{
		"class Base:",
		"  def ping():",
		"    return 1",
		"",
		"class Child(Base):",
		"  def pong():",
		"    return 2",
		"",
	}, "\n")
	stmts := parseSource(t, source)
	child := stmts[1].(*ClassDefStmt).Class.Class()
	if child.Parent == nil || child.Parent.Name != "Base" {
		t.Fatalf("child did not capture its parent: %#v", child.Parent)
	}
}

func TestParseSelfReferentialClass(t *testing.T) {
	source := strings.Join([]string{
		"class Vec:",
		"  def double():",
		"    return Vec()",
		"",
	}, "\n")
	stmts := parseSource(t, source)
	class := stmts[0].(*ClassDefStmt).Class.Class()
	body := class.Methods[0].Body
	ret := body[0].(*ReturnStmt)
	inst := ret.Value.(*NewInstanceExpr)
	if inst.Class != class {
		t.Fatalf("method body must see its own class")
	}
}

func TestParseMethodCall(t *testing.T) {
	stmts := parseSource(t, "x.go(1, 2)\n")
	expr := stmts[0].(*ExprStmt)
	call, ok := expr.Expr.(*MethodCallExpr)
	if !ok {
		t.Fatalf("expected *MethodCallExpr, got %T", expr.Expr)
	}
	if call.Method != "go" || len(call.Args) != 2 {
		t.Fatalf("unexpected call %s/%d", call.Method, len(call.Args))
	}
	obj := call.Object.(*VariableExpr)
	if len(obj.Path) != 1 || obj.Path[0] != "x" {
		t.Fatalf("unexpected receiver path %v", obj.Path)
	}
}

func TestParseStringify(t *testing.T) {
	stmts := parseSource(t, "x = str(5)\n")
	assign := stmts[0].(*AssignStmt)
	if _, ok := assign.Value.(*StringifyExpr); !ok {
		t.Fatalf("expected *StringifyExpr, got %T", assign.Value)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		msg    string
	}{
		{"unknown class", "x = Widget()\n", "not a declared class"},
		{"unknown base", "class A(B):\n  def m():\n    return 1\n", "unknown base class"},
		{"def outside class", "def m():\n  return 1\n", "outside of class body"},
		{"missing colon", "if x\n  y = 1\n", "expected ':'"},
		{"missing block", "if x:\ny = 1\n", "indented block"},
		{"empty class", "class A:\nx = 1\n", "indented class body"},
		{"statement in class body", "class A:\n  x = 1\n", "method definition in class body"},
		{"assignment to call", "x.y(1) = 2\n", "newline after statement"},
		{"stray indent", "x = 1\n    y = 2\n", "unexpected indent"},
		{"unexpected token", "print )\n", "unexpected token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := parseErrorFor(t, tc.source)
			if !strings.Contains(err.Msg, tc.msg) {
				t.Fatalf("error %q does not mention %q", err.Msg, tc.msg)
			}
		})
	}
}

func TestParseSuiteUnclosedAtEOF(t *testing.T) {
	// No dedent is synthesized at end of input; the suite must still close.
	stmts := parseSource(t, "if x:\n  y = 1")
	ifStmt := stmts[0].(*IfStmt)
	if len(ifStmt.Consequent) != 1 {
		t.Fatalf("unclosed suite at EOF not tolerated: %#v", ifStmt)
	}
}
