package mython

import (
	"fmt"
	"io"
)

// callMethod resolves a method through the instance's class and runs its
// body against a fresh scope holding self and the bound parameters. A
// missing method and an arity mismatch are the same error. The return
// signal stops here: it never crosses a method boundary.
func (exec *Execution) callMethod(inst *Instance, name string, args []Value, pos Position) (Value, error) {
	method := inst.Class.GetMethod(name)
	if method == nil || len(method.Params) != len(args) {
		return NewNone(), exec.errorAt(pos, "Not implemented: %s.%s/%d", inst.Class.Name, name, len(args))
	}

	env := newEnv()
	env.Define("self", NewInstance(inst))
	for i, param := range method.Params {
		env.Define(param, args[i])
	}

	exec.callStack = append(exec.callStack, callFrame{
		Function: inst.Class.Name + "." + name,
		Pos:      pos,
	})
	val, returned, err := exec.evalStatements(method.Body, env)
	exec.callStack = exec.callStack[:len(exec.callStack)-1]

	if err != nil {
		return NewNone(), err
	}
	if returned {
		return val, nil
	}
	return NewNone(), nil
}

func (exec *Execution) evalMethodCall(e *MethodCallExpr, env *Env) (Value, error) {
	obj, err := exec.evalExpression(e.Object, env)
	if err != nil {
		return NewNone(), err
	}
	inst := obj.Instance()
	if inst == nil {
		return NewNone(), exec.errorAt(e.Pos(), "cannot call method %s on %s", e.Method, obj.Kind())
	}

	args, err := exec.evalArgs(e.Args, env)
	if err != nil {
		return NewNone(), err
	}
	return exec.callMethod(inst, e.Method, args, e.Pos())
}

// evalNewInstance allocates a fresh instance on every evaluation. When the
// class resolves __init__ with matching arity the constructor runs against
// the new instance; otherwise the fields simply start out empty.
func (exec *Execution) evalNewInstance(e *NewInstanceExpr, env *Env) (Value, error) {
	args, err := exec.evalArgs(e.Args, env)
	if err != nil {
		return NewNone(), err
	}

	inst := newInstance(e.Class)
	if e.Class.hasMethod("__init__", len(args)) {
		if _, err := exec.callMethod(inst, "__init__", args, e.Pos()); err != nil {
			return NewNone(), err
		}
	}
	return NewInstance(inst), nil
}

func (exec *Execution) evalArgs(exprs []Expression, env *Env) ([]Value, error) {
	args := make([]Value, len(exprs))
	for i, expr := range exprs {
		val, err := exec.evalExpression(expr, env)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}
	return args, nil
}

func (exec *Execution) evalPrint(s *PrintStmt, env *Env) error {
	for i, arg := range s.Args {
		if i > 0 {
			if _, err := io.WriteString(exec.out, " "); err != nil {
				return exec.errorAt(s.Pos(), "write failed: %v", err)
			}
		}
		val, err := exec.evalExpression(arg, env)
		if err != nil {
			return err
		}
		if err := exec.writeValue(exec.out, val, s.Pos()); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(exec.out, "\n"); err != nil {
		return exec.errorAt(s.Pos(), "write failed: %v", err)
	}
	return nil
}

// writeValue renders a value for print and str(...). Instances render via
// their __str__ method when one is defined, by address otherwise.
func (exec *Execution) writeValue(w io.Writer, v Value, pos Position) error {
	if inst := v.Instance(); inst != nil {
		if inst.Class.hasMethod("__str__", 0) {
			res, err := exec.callMethod(inst, "__str__", nil, pos)
			if err != nil {
				return err
			}
			return exec.writeValue(w, res, pos)
		}
		_, err := fmt.Fprintf(w, "%p", inst)
		return err
	}
	_, err := io.WriteString(w, v.String())
	return err
}
