package ast

// Node is the interface for all AST nodes.
type Node interface {
	node()
	Location() Location
}

// Statement is the interface for statement nodes.
type Statement interface {
	Node
	stmt()
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	expr()
}

// Literal is the interface for literal nodes. Literals are expressions.
type Literal interface {
	Expr
	literal()
	Type() DataType
}

// Base provides the source location shared by all nodes.
type Base struct {
	Loc Location
}

func (b Base) Location() Location { return b.Loc }

// Program is the root node: an ordered list of function definitions.
type Program struct {
	Base
	Functions  []*Function
	SourceFile string // display path of the source file
}

func (p *Program) node() {}

// Function represents type name(params) { body }.
type Function struct {
	Base
	ReturnType DataType
	Name       *Identifier
	Params     *Parameters // never nil; empty list for ()
	Body       *CompoundStmt
}

func (f *Function) node() {}

// Parameters is the parameter list of a function.
type Parameters struct {
	Base
	List []*Declaration
}

func (p *Parameters) node() {}

// Declaration is a scalar or array declaration. Size is nil for scalars.
type Declaration struct {
	Base
	Type  DataType
	Size  Literal
	Ident *Identifier
}

func (d *Declaration) node() {}

// IsArray reports whether the declaration carries an array size.
func (d *Declaration) IsArray() bool { return d.Size != nil }

// Assignment represents target = value or target[index] = value.
type Assignment struct {
	Base
	Target *Identifier
	Index  Expr // nil for scalar assignment
	Value  Expr
}

func (a *Assignment) node() {}

// Arguments is the argument list of a call.
type Arguments struct {
	Base
	List []Expr
}

func (a *Arguments) node() {}

// --- Statements ---

// ExprStmt is a statement that is just an expression.
type ExprStmt struct {
	Base
	Expression Expr
}

func (e *ExprStmt) node() {}
func (e *ExprStmt) stmt() {}

// IfStmt represents if (cond) then [else else].
type IfStmt struct {
	Base
	Cond Expr
	Then Statement
	Else Statement // nil without else
}

func (i *IfStmt) node() {}
func (i *IfStmt) stmt() {}

// WhileStmt represents while (cond) body.
type WhileStmt struct {
	Base
	Cond Expr
	Body Statement
}

func (w *WhileStmt) node() {}
func (w *WhileStmt) stmt() {}

// DeclStmt wraps a declaration used as a statement.
type DeclStmt struct {
	Base
	Decl *Declaration
}

func (d *DeclStmt) node() {}
func (d *DeclStmt) stmt() {}

// AssignStmt wraps an assignment used as a statement.
type AssignStmt struct {
	Base
	Assign *Assignment
}

func (a *AssignStmt) node() {}
func (a *AssignStmt) stmt() {}

// CompoundStmt is { stmts... }.
type CompoundStmt struct {
	Base
	Stmts []Statement
}

func (c *CompoundStmt) node() {}
func (c *CompoundStmt) stmt() {}

// ReturnStmt represents return [expr].
type ReturnStmt struct {
	Base
	Value Expr // nil if bare return
}

func (r *ReturnStmt) node() {}
func (r *ReturnStmt) stmt() {}

// --- Expressions ---

// Identifier is a name. It is used both as an expression (variable
// reference) and as the name part of declarations, calls and functions.
type Identifier struct {
	Base
	Name string
}

func (i *Identifier) node() {}
func (i *Identifier) expr() {}

// CallExpr represents name(args...).
type CallExpr struct {
	Base
	Func *Identifier
	Args *Arguments // never nil; empty list for ()
}

func (c *CallExpr) node() {}
func (c *CallExpr) expr() {}

// UnaryExpr represents op operand.
type UnaryExpr struct {
	Base
	Op      UnaryOp
	Operand Expr
}

func (u *UnaryExpr) node() {}
func (u *UnaryExpr) expr() {}

// BinaryExpr represents left op right.
type BinaryExpr struct {
	Base
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) node() {}
func (b *BinaryExpr) expr() {}

// ParenExpr represents (inner).
type ParenExpr struct {
	Base
	Inner Expr
}

func (p *ParenExpr) node() {}
func (p *ParenExpr) expr() {}

// IndexExpr represents array[index].
type IndexExpr struct {
	Base
	Array *Identifier
	Index Expr
}

func (i *IndexExpr) node() {}
func (i *IndexExpr) expr() {}

// --- Literals ---

// IntLiteral is an integer literal.
type IntLiteral struct {
	Base
	Value string
}

func (i *IntLiteral) node()          {}
func (i *IntLiteral) expr()          {}
func (i *IntLiteral) literal()       {}
func (i *IntLiteral) Type() DataType { return Int }

// FloatLiteral is a floating point literal.
type FloatLiteral struct {
	Base
	Value string
}

func (f *FloatLiteral) node()          {}
func (f *FloatLiteral) expr()          {}
func (f *FloatLiteral) literal()       {}
func (f *FloatLiteral) Type() DataType { return Float }

// StringLiteral is a string literal (with quotes stripped).
type StringLiteral struct {
	Base
	Value string
}

func (s *StringLiteral) node()          {}
func (s *StringLiteral) expr()          {}
func (s *StringLiteral) literal()       {}
func (s *StringLiteral) Type() DataType { return String }

// BoolLiteral is true or false.
type BoolLiteral struct {
	Base
	Value bool
}

func (b *BoolLiteral) node()          {}
func (b *BoolLiteral) expr()          {}
func (b *BoolLiteral) literal()       {}
func (b *BoolLiteral) Type() DataType { return Bool }

// IsZeroLiteral reports whether e is the int or float literal zero.
func IsZeroLiteral(e Expr) bool {
	switch lit := e.(type) {
	case *IntLiteral:
		return isZeroDigits(lit.Value, false)
	case *FloatLiteral:
		return isZeroDigits(lit.Value, true)
	}
	return false
}

func isZeroDigits(s string, allowDot bool) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '0':
		case s[i] == '.' && allowDot:
		default:
			return false
		}
	}
	return true
}
