package mython

import (
	"bytes"
	"io"
)

// Context supplies the output stream print statements write to.
type Context interface {
	Output() io.Writer
}

// SimpleContext writes interpreter output straight to the wrapped writer.
type SimpleContext struct {
	out io.Writer
}

func NewSimpleContext(out io.Writer) *SimpleContext {
	return &SimpleContext{out: out}
}

func (c *SimpleContext) Output() io.Writer { return c.out }

// CaptureContext collects interpreter output in memory. It backs the tests,
// the built-in self test suite and the REPL result pane.
type CaptureContext struct {
	buf bytes.Buffer
}

func (c *CaptureContext) Output() io.Writer { return &c.buf }

func (c *CaptureContext) String() string { return c.buf.String() }

func (c *CaptureContext) Reset() { c.buf.Reset() }

// Program is a compiled Mython program, ready to run any number of times.
type Program struct {
	statements []Statement
	source     string
}

// Compile lexes and parses source into an executable program. The error is
// a *LexerError or *ParseError describing the first problem found.
func Compile(source string) (*Program, error) {
	return compile(source, nil)
}

func compile(source string, classes map[string]*ClassDef) (*Program, error) {
	lx, err := newLexer(source)
	if err != nil {
		return nil, err
	}
	stmts, err := newParser(lx, classes).parseProgram()
	if err != nil {
		return nil, err
	}
	return &Program{statements: stmts, source: source}, nil
}

// Run executes the program against a fresh top-level scope.
func (p *Program) Run(ctx Context) error {
	return p.run(ctx, newEnv())
}

func (p *Program) run(ctx Context, env *Env) error {
	exec := newExecution(p.source, ctx)
	_, returned, err := exec.evalStatements(p.statements, env)
	if err != nil {
		return err
	}
	if returned {
		return &RuntimeError{Message: "return outside of method"}
	}
	return nil
}

// Interpret compiles and runs source, sending print output to out.
func Interpret(source string, out io.Writer) error {
	program, err := Compile(source)
	if err != nil {
		return err
	}
	return program.Run(NewSimpleContext(out))
}

// Session evaluates successive snippets against one persistent top-level
// scope, the way the REPL feeds it line by line. Variables, instances and
// class declarations all carry over between snippets.
type Session struct {
	ctx     Context
	env     *Env
	classes map[string]*ClassDef
}

func NewSession(ctx Context) *Session {
	return &Session{ctx: ctx, env: newEnv(), classes: make(map[string]*ClassDef)}
}

func (s *Session) Eval(source string) error {
	program, err := compile(source, s.classes)
	if err != nil {
		return err
	}
	return program.run(s.ctx, s.env)
}
