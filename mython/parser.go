package mython

import (
	"fmt"
	"strconv"
)

// ParseError reports a grammar violation at the offending token.
type ParseError struct {
	Tok Token
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Tok.Pos.Line, e.Tok.Pos.Column, e.Msg)
}

type parser struct {
	lx  *lexer
	cur Token

	// classes maps declared class names to their descriptors so that
	// instantiation sites can capture the descriptor at parse time.
	classes map[string]*ClassDef
}

func newParser(lx *lexer, classes map[string]*ClassDef) *parser {
	if classes == nil {
		classes = make(map[string]*ClassDef)
	}
	return &parser{
		lx:      lx,
		cur:     lx.CurrentToken(),
		classes: classes,
	}
}

func (p *parser) next() {
	p.cur = p.lx.NextToken()
}

func (p *parser) errorExpected(expected string) error {
	return &ParseError{Tok: p.cur, Msg: fmt.Sprintf("expected %s, got %s", expected, p.cur)}
}

func (p *parser) expectChar(c byte) error {
	if !p.cur.isChar(c) {
		return p.errorExpected(fmt.Sprintf("'%c'", c))
	}
	p.next()
	return nil
}

// endStatement consumes the newline terminating a simple statement. EOF is
// accepted so that the last line of a file needs no trailing newline.
func (p *parser) endStatement() error {
	switch p.cur.Type {
	case tokenNewline:
		p.next()
		return nil
	case tokenEOF:
		return nil
	default:
		return p.errorExpected("newline after statement")
	}
}

func (p *parser) parseProgram() ([]Statement, error) {
	var stmts []Statement
	for p.cur.Type != tokenEOF {
		if p.cur.Type == tokenNewline {
			p.next()
			continue
		}
		var (
			stmt Statement
			err  error
		)
		if p.cur.Type == tokenClass {
			stmt, err = p.parseClassDef()
		} else {
			stmt, err = p.parseStatement()
		}
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *parser) parseStatement() (Statement, error) {
	switch p.cur.Type {
	case tokenIf:
		return p.parseIfStatement()
	case tokenReturn:
		return p.parseReturnStatement()
	case tokenPrint:
		return p.parsePrintStatement()
	case tokenDef:
		return nil, &ParseError{Tok: p.cur, Msg: "method definition outside of class body"}
	case tokenIndent:
		return nil, &ParseError{Tok: p.cur, Msg: "unexpected indent"}
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

func (p *parser) parseReturnStatement() (Statement, error) {
	pos := p.cur.Pos
	p.next()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ReturnStmt{Value: value, position: pos}, nil
}

func (p *parser) parsePrintStatement() (Statement, error) {
	pos := p.cur.Pos
	p.next()

	var args []Expression
	if p.cur.Type != tokenNewline && p.cur.Type != tokenEOF {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.cur.isChar(',') {
			p.next()
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &PrintStmt{Args: args, position: pos}, nil
}

func (p *parser) parseIfStatement() (Statement, error) {
	pos := p.cur.Pos
	p.next()

	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	consequent, err := p.parseSuite()
	if err != nil {
		return nil, err
	}

	var alternate []Statement
	if p.cur.Type == tokenElse {
		p.next()
		if err := p.expectChar(':'); err != nil {
			return nil, err
		}
		alternate, err = p.parseSuite()
		if err != nil {
			return nil, err
		}
	}

	return &IfStmt{Condition: condition, Consequent: consequent, Alternate: alternate, position: pos}, nil
}

func (p *parser) parseExpressionOrAssignStatement() (Statement, error) {
	pos := p.cur.Pos
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if target, ok := expr.(*VariableExpr); ok && p.cur.isChar('=') {
		p.next()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.endStatement(); err != nil {
			return nil, err
		}
		if last := len(target.Path) - 1; last > 0 {
			object := &VariableExpr{Path: target.Path[:last], position: target.position}
			return &FieldAssignStmt{Object: object, Field: target.Path[last], Value: value, position: pos}, nil
		}
		return &AssignStmt{Name: target.Path[0], Value: value, position: pos}, nil
	}

	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr, position: pos}, nil
}

// parseSuite parses NEWLINE INDENT stmt {stmt} DEDENT. A missing DEDENT is
// tolerated at end of input since the lexer synthesizes none there.
func (p *parser) parseSuite() ([]Statement, error) {
	if p.cur.Type != tokenNewline {
		return nil, p.errorExpected("newline to open a block")
	}
	p.next()
	if p.cur.Type != tokenIndent {
		return nil, p.errorExpected("an indented block")
	}
	p.next()

	var stmts []Statement
	for p.cur.Type != tokenDedent && p.cur.Type != tokenEOF {
		if p.cur.Type == tokenNewline {
			p.next()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if p.cur.Type == tokenDedent {
		p.next()
	}
	if len(stmts) == 0 {
		return nil, p.errorExpected("at least one statement in block")
	}
	return stmts, nil
}

func (p *parser) parseClassDef() (Statement, error) {
	pos := p.cur.Pos
	p.next()

	if p.cur.Type != tokenId {
		return nil, p.errorExpected("class name")
	}
	name := p.cur.Literal
	p.next()

	var parent *ClassDef
	if p.cur.isChar('(') {
		p.next()
		if p.cur.Type != tokenId {
			return nil, p.errorExpected("base class name")
		}
		base, ok := p.classes[p.cur.Literal]
		if !ok {
			return nil, &ParseError{Tok: p.cur, Msg: fmt.Sprintf("unknown base class %s", p.cur.Literal)}
		}
		parent = base
		p.next()
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}

	if p.cur.Type != tokenNewline {
		return nil, p.errorExpected("newline to open a class body")
	}
	p.next()
	if p.cur.Type != tokenIndent {
		return nil, p.errorExpected("an indented class body")
	}
	p.next()

	// Register the descriptor before parsing the body so methods can
	// instantiate their own class.
	class := newClassDef(name, nil, parent)
	p.classes[name] = class

	var methods []*Method
	for p.cur.Type != tokenDedent && p.cur.Type != tokenEOF {
		if p.cur.Type == tokenNewline {
			p.next()
			continue
		}
		if p.cur.Type != tokenDef {
			return nil, p.errorExpected("method definition in class body")
		}
		method, err := p.parseMethodDef()
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if p.cur.Type == tokenDedent {
		p.next()
	}
	if len(methods) == 0 {
		return nil, p.errorExpected("at least one method in class body")
	}

	class.define(methods)
	return &ClassDefStmt{Class: NewClass(class), position: pos}, nil
}

func (p *parser) parseMethodDef() (*Method, error) {
	p.next()

	if p.cur.Type != tokenId {
		return nil, p.errorExpected("method name")
	}
	name := p.cur.Literal
	p.next()

	if err := p.expectChar('('); err != nil {
		return nil, err
	}
	var params []string
	if p.cur.Type == tokenId {
		params = append(params, p.cur.Literal)
		p.next()
		for p.cur.isChar(',') {
			p.next()
			if p.cur.Type != tokenId {
				return nil, p.errorExpected("parameter name")
			}
			params = append(params, p.cur.Literal)
			p.next()
		}
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}

	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &Method{Name: name, Params: params, Body: body}, nil
}

// Expression parsing follows the precedence ladder, loosest first:
// or, and, not, comparison, additive, multiplicative, unary minus, primary.

func (p *parser) parseExpression() (Expression, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == tokenOr {
		pos := p.cur.Pos
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: "or", Right: right, position: pos}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == tokenAnd {
		pos := p.cur.Pos
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: "and", Right: right, position: pos}
	}
	return left, nil
}

func (p *parser) parseNot() (Expression, error) {
	if p.cur.Type == tokenNot {
		pos := p.cur.Pos
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: "not", Right: right, position: pos}, nil
	}
	return p.parseComparison()
}

func (p *parser) comparisonOp() string {
	switch {
	case p.cur.Type == tokenEq:
		return "=="
	case p.cur.Type == tokenNotEq:
		return "!="
	case p.cur.Type == tokenLessOrEq:
		return "<="
	case p.cur.Type == tokenGreaterOrEq:
		return ">="
	case p.cur.isChar('<'):
		return "<"
	case p.cur.isChar('>'):
		return ">"
	default:
		return ""
	}
}

func (p *parser) parseComparison() (Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for op := p.comparisonOp(); op != ""; op = p.comparisonOp() {
		pos := p.cur.Pos
		p.next()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right, position: pos}
	}
	return left, nil
}

func (p *parser) parseAdditive() (Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.isChar('+') || p.cur.isChar('-') {
		op := p.cur.Literal
		pos := p.cur.Pos
		p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right, position: pos}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.isChar('*') || p.cur.isChar('/') {
		op := p.cur.Literal
		pos := p.cur.Pos
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right, position: pos}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expression, error) {
	if p.cur.isChar('-') {
		pos := p.cur.Pos
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: "-", Right: right, position: pos}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expression, error) {
	switch {
	case p.cur.Type == tokenNumber:
		value, err := strconv.Atoi(p.cur.Literal)
		if err != nil {
			return nil, &ParseError{Tok: p.cur, Msg: "invalid number literal"}
		}
		expr := &NumberLiteral{Value: value, position: p.cur.Pos}
		p.next()
		return expr, nil
	case p.cur.Type == tokenString:
		expr := &StringLiteral{Value: p.cur.Literal, position: p.cur.Pos}
		p.next()
		return expr, nil
	case p.cur.Type == tokenTrue, p.cur.Type == tokenFalse:
		expr := &BoolLiteral{Value: p.cur.Type == tokenTrue, position: p.cur.Pos}
		p.next()
		return expr, nil
	case p.cur.Type == tokenNone:
		expr := &NoneLiteral{position: p.cur.Pos}
		p.next()
		return expr, nil
	case p.cur.isChar('('):
		p.next()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
		return expr, nil
	case p.cur.Type == tokenId:
		return p.parseIdentifierExpr()
	default:
		return nil, &ParseError{Tok: p.cur, Msg: fmt.Sprintf("unexpected token %s in expression", p.cur)}
	}
}

// parseIdentifierExpr handles everything that begins with an identifier:
// the reserved str(...) form, dotted variable reads, method calls and class
// instantiation. Whether ID(...) instantiates is decided by the parse-time
// class table.
func (p *parser) parseIdentifierExpr() (Expression, error) {
	head := p.cur
	pos := p.cur.Pos
	name := p.cur.Literal
	p.next()

	if name == "str" && p.cur.isChar('(') {
		p.next()
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
		return &StringifyExpr{Arg: arg, position: pos}, nil
	}

	path := []string{name}
	for p.cur.isChar('.') {
		p.next()
		if p.cur.Type != tokenId {
			return nil, p.errorExpected("identifier after '.'")
		}
		path = append(path, p.cur.Literal)
		p.next()
	}

	if p.cur.isChar('(') {
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		if len(path) == 1 {
			class, ok := p.classes[name]
			if !ok {
				return nil, &ParseError{Tok: head, Msg: fmt.Sprintf("%s is not a declared class", name)}
			}
			return &NewInstanceExpr{Class: class, Args: args, position: pos}, nil
		}
		last := len(path) - 1
		object := &VariableExpr{Path: path[:last], position: pos}
		return &MethodCallExpr{Object: object, Method: path[last], Args: args, position: pos}, nil
	}

	return &VariableExpr{Path: path, position: pos}, nil
}

func (p *parser) parseArgList() ([]Expression, error) {
	p.next()

	var args []Expression
	if !p.cur.isChar(')') {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.cur.isChar(',') {
			p.next()
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	return args, nil
}
