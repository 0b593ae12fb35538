package mython

import (
	"fmt"
	"io"
	"strings"
)

// RuntimeError reports a failure during evaluation: an undefined name, a type
// mismatch in an operator, a missing method, division by zero or an
// incomparable pair of values.
type RuntimeError struct {
	Message   string
	CodeFrame string
	Frames    []StackFrame
}

type StackFrame struct {
	Function string
	Pos      Position
}

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	for _, frame := range re.Frames {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}
	return b.String()
}

type callFrame struct {
	Function string
	Pos      Position
}

// Execution walks the statement tree. It carries the output sink print
// writes to, the source text for error code frames, and the method call
// stack for diagnostics.
type Execution struct {
	out       io.Writer
	source    string
	callStack []callFrame
}

func newExecution(source string, ctx Context) *Execution {
	return &Execution{out: ctx.Output(), source: source}
}

func (exec *Execution) errorAt(pos Position, format string, args ...any) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	if len(exec.callStack) > 0 {
		current := exec.callStack[len(exec.callStack)-1]
		frames = append(frames, StackFrame{Function: current.Function, Pos: pos})
		for i := len(exec.callStack) - 1; i >= 0; i-- {
			frames = append(frames, StackFrame(exec.callStack[i]))
		}
	} else {
		frames = append(frames, StackFrame{Function: "<program>", Pos: pos})
	}
	return &RuntimeError{
		Message:   fmt.Sprintf(format, args...),
		CodeFrame: formatCodeFrame(exec.source, pos),
		Frames:    frames,
	}
}

// evalStatements runs a statement list in order. The middle result reports
// whether a return statement fired; it propagates through nested blocks
// untouched so that only the method call boundary consumes it.
func (exec *Execution) evalStatements(stmts []Statement, env *Env) (Value, bool, error) {
	for _, stmt := range stmts {
		val, returned, err := exec.evalStatement(stmt, env)
		if err != nil {
			return NewNone(), false, err
		}
		if returned {
			return val, true, nil
		}
	}
	return NewNone(), false, nil
}

func (exec *Execution) evalStatement(stmt Statement, env *Env) (Value, bool, error) {
	switch s := stmt.(type) {
	case *ExprStmt:
		val, err := exec.evalExpression(s.Expr, env)
		return val, false, err
	case *ReturnStmt:
		val, err := exec.evalExpression(s.Value, env)
		return val, true, err
	case *AssignStmt:
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return NewNone(), false, err
		}
		env.Define(s.Name, val)
		return val, false, nil
	case *FieldAssignStmt:
		obj, err := exec.resolveVariable(s.Object, env)
		if err != nil {
			return NewNone(), false, err
		}
		inst := obj.Instance()
		if inst == nil {
			return NewNone(), false, exec.errorAt(s.Pos(), "cannot assign field %s of %s", s.Field, obj.Kind())
		}
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return NewNone(), false, err
		}
		inst.Fields[s.Field] = val
		return val, false, nil
	case *PrintStmt:
		return NewNone(), false, exec.evalPrint(s, env)
	case *IfStmt:
		cond, err := exec.evalExpression(s.Condition, env)
		if err != nil {
			return NewNone(), false, err
		}
		if cond.Truthy() {
			return exec.evalStatements(s.Consequent, env)
		}
		if len(s.Alternate) > 0 {
			return exec.evalStatements(s.Alternate, env)
		}
		return NewNone(), false, nil
	case *ClassDefStmt:
		env.Define(s.Class.Class().Name, s.Class)
		return NewNone(), false, nil
	default:
		return NewNone(), false, exec.errorAt(stmt.Pos(), "unsupported statement")
	}
}

func (exec *Execution) evalExpression(expr Expression, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *NumberLiteral:
		return NewNumber(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *NoneLiteral:
		return NewNone(), nil
	case *VariableExpr:
		return exec.resolveVariable(e, env)
	case *UnaryExpr:
		return exec.evalUnaryExpr(e, env)
	case *BinaryExpr:
		return exec.evalBinaryExpr(e, env)
	case *MethodCallExpr:
		return exec.evalMethodCall(e, env)
	case *NewInstanceExpr:
		return exec.evalNewInstance(e, env)
	case *StringifyExpr:
		val, err := exec.evalExpression(e.Arg, env)
		if err != nil {
			return NewNone(), err
		}
		var sb strings.Builder
		if err := exec.writeValue(&sb, val, e.Pos()); err != nil {
			return NewNone(), err
		}
		return NewString(sb.String()), nil
	default:
		return NewNone(), exec.errorAt(expr.Pos(), "unsupported expression")
	}
}

// resolveVariable walks a dotted path. The head is looked up in the scope,
// each further segment in the fields of the instance reached so far; the
// first non-instance value terminates the walk and is returned as-is.
func (exec *Execution) resolveVariable(v *VariableExpr, env *Env) (Value, error) {
	cur, ok := env.Get(v.Path[0])
	if !ok {
		return NewNone(), exec.errorAt(v.Pos(), "undefined variable %s", v.Path[0])
	}
	for _, name := range v.Path[1:] {
		inst := cur.Instance()
		if inst == nil {
			return cur, nil
		}
		field, ok := inst.Fields[name]
		if !ok {
			return NewNone(), exec.errorAt(v.Pos(), "%s has no field %s", inst.Class.Name, name)
		}
		cur = field
	}
	return cur, nil
}
