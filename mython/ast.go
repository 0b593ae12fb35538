package mython

type Node interface {
	Pos() Position
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// AssignStmt binds a top-level name in the current scope: `x = expr`.
type AssignStmt struct {
	Name     string
	Value    Expression
	position Position
}

func (s *AssignStmt) stmtNode()     {}
func (s *AssignStmt) Pos() Position { return s.position }

// FieldAssignStmt writes into an instance field: `a.b.field = expr`.
type FieldAssignStmt struct {
	Object   *VariableExpr
	Field    string
	Value    Expression
	position Position
}

func (s *FieldAssignStmt) stmtNode()     {}
func (s *FieldAssignStmt) Pos() Position { return s.position }

// PrintStmt writes its arguments, space-separated, followed by a newline.
type PrintStmt struct {
	Args     []Expression
	position Position
}

func (s *PrintStmt) stmtNode()     {}
func (s *PrintStmt) Pos() Position { return s.position }

// ReturnStmt aborts the enclosing method with the value of its expression.
type ReturnStmt struct {
	Value    Expression
	position Position
}

func (s *ReturnStmt) stmtNode()     {}
func (s *ReturnStmt) Pos() Position { return s.position }

type IfStmt struct {
	Condition  Expression
	Consequent []Statement
	Alternate  []Statement
	position   Position
}

func (s *IfStmt) stmtNode()     {}
func (s *IfStmt) Pos() Position { return s.position }

// ClassDefStmt binds the class name to its descriptor in the enclosing scope.
// The descriptor itself is built at parse time.
type ClassDefStmt struct {
	Class    Value
	position Position
}

func (s *ClassDefStmt) stmtNode()     {}
func (s *ClassDefStmt) Pos() Position { return s.position }

type ExprStmt struct {
	Expr     Expression
	position Position
}

func (s *ExprStmt) stmtNode()     {}
func (s *ExprStmt) Pos() Position { return s.position }

type NumberLiteral struct {
	Value    int
	position Position
}

func (e *NumberLiteral) exprNode()     {}
func (e *NumberLiteral) Pos() Position { return e.position }

type StringLiteral struct {
	Value    string
	position Position
}

func (e *StringLiteral) exprNode()     {}
func (e *StringLiteral) Pos() Position { return e.position }

type BoolLiteral struct {
	Value    bool
	position Position
}

func (e *BoolLiteral) exprNode()     {}
func (e *BoolLiteral) Pos() Position { return e.position }

type NoneLiteral struct {
	position Position
}

func (e *NoneLiteral) exprNode()     {}
func (e *NoneLiteral) Pos() Position { return e.position }

// VariableExpr reads a dotted chain `a.b.c`: `a` is looked up in the scope
// and each further segment in the fields of the instance reached so far. The
// first non-instance value terminates the walk and is the expression's value.
type VariableExpr struct {
	Path     []string
	position Position
}

func (e *VariableExpr) exprNode()     {}
func (e *VariableExpr) Pos() Position { return e.position }

// UnaryExpr covers `not x` and `-x`; Op is "not" or "-".
type UnaryExpr struct {
	Op       string
	Right    Expression
	position Position
}

func (e *UnaryExpr) exprNode()     {}
func (e *UnaryExpr) Pos() Position { return e.position }

// BinaryExpr covers arithmetic, logical and comparison operators. Op is one
// of "+", "-", "*", "/", "and", "or", "==", "!=", "<", ">", "<=", ">=".
type BinaryExpr struct {
	Left     Expression
	Op       string
	Right    Expression
	position Position
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.position }

// MethodCallExpr invokes `object.method(args...)` on a class instance.
type MethodCallExpr struct {
	Object   Expression
	Method   string
	Args     []Expression
	position Position
}

func (e *MethodCallExpr) exprNode()     {}
func (e *MethodCallExpr) Pos() Position { return e.position }

// NewInstanceExpr allocates a fresh instance of Class, invoking __init__ when
// one with matching arity exists.
type NewInstanceExpr struct {
	Class    *ClassDef
	Args     []Expression
	position Position
}

func (e *NewInstanceExpr) exprNode()     {}
func (e *NewInstanceExpr) Pos() Position { return e.position }

// StringifyExpr is the reserved `str(expr)` form: it renders its argument
// with the same routine print uses and wraps the text as a String.
type StringifyExpr struct {
	Arg      Expression
	position Position
}

func (e *StringifyExpr) exprNode()     {}
func (e *StringifyExpr) Pos() Position { return e.position }
