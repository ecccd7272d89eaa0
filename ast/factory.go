package ast

// Factory centralizes AST node creation for the parser and tests.
// Every constructor takes the location of the node it builds.
type Factory struct{}

// NewFactory returns a new Factory.
func NewFactory() *Factory { return &Factory{} }

// --- Top level ---

// Program creates a Program for the given source file.
func (f *Factory) Program(loc Location, file string, funcs []*Function) *Program {
	return &Program{Base: Base{loc}, Functions: funcs, SourceFile: file}
}

// Function creates a function definition. A nil params list becomes empty.
func (f *Factory) Function(loc Location, ret DataType, name *Identifier, params *Parameters, body *CompoundStmt) *Function {
	if params == nil {
		params = &Parameters{Base: Base{loc}}
	}
	return &Function{Base: Base{loc}, ReturnType: ret, Name: name, Params: params, Body: body}
}

// Params creates a parameter list.
func (f *Factory) Params(loc Location, decls ...*Declaration) *Parameters {
	return &Parameters{Base: Base{loc}, List: decls}
}

// Decl creates a scalar declaration.
func (f *Factory) Decl(loc Location, t DataType, name string) *Declaration {
	return &Declaration{Base: Base{loc}, Type: t, Ident: f.Ident(loc, name)}
}

// ArrayDecl creates an array declaration with the given size literal.
func (f *Factory) ArrayDecl(loc Location, t DataType, size Literal, name string) *Declaration {
	return &Declaration{Base: Base{loc}, Type: t, Size: size, Ident: f.Ident(loc, name)}
}

// Ident creates an identifier.
func (f *Factory) Ident(loc Location, name string) *Identifier {
	return &Identifier{Base: Base{loc}, Name: name}
}

// --- Statements ---

// Compound creates a block statement.
func (f *Factory) Compound(loc Location, stmts ...Statement) *CompoundStmt {
	return &CompoundStmt{Base: Base{loc}, Stmts: stmts}
}

// DeclStmt wraps a declaration into a statement.
func (f *Factory) DeclStmt(d *Declaration) *DeclStmt {
	return &DeclStmt{Base: d.Base, Decl: d}
}

// DeclInit expands `type name = value;` into a declaration followed by an
// assignment. Both statements share loc.
func (f *Factory) DeclInit(loc Location, d *Declaration, value Expr) []Statement {
	return []Statement{
		&DeclStmt{Base: Base{loc}, Decl: d},
		f.Assign(loc, d.Ident.Name, value),
	}
}

// Assign creates `name = value;`.
func (f *Factory) Assign(loc Location, name string, value Expr) *AssignStmt {
	a := &Assignment{Base: Base{loc}, Target: f.Ident(loc, name), Value: value}
	return &AssignStmt{Base: Base{loc}, Assign: a}
}

// IndexAssign creates `name[index] = value;`.
func (f *Factory) IndexAssign(loc Location, name string, index, value Expr) *AssignStmt {
	a := &Assignment{Base: Base{loc}, Target: f.Ident(loc, name), Index: index, Value: value}
	return &AssignStmt{Base: Base{loc}, Assign: a}
}

// ExprStmt wraps an expression into a statement.
func (f *Factory) ExprStmt(e Expr) *ExprStmt {
	return &ExprStmt{Base: Base{e.Location()}, Expression: e}
}

// If creates an if statement; elseStmt may be nil.
func (f *Factory) If(loc Location, cond Expr, then, elseStmt Statement) *IfStmt {
	return &IfStmt{Base: Base{loc}, Cond: cond, Then: then, Else: elseStmt}
}

// While creates a while loop.
func (f *Factory) While(loc Location, cond Expr, body Statement) *WhileStmt {
	return &WhileStmt{Base: Base{loc}, Cond: cond, Body: body}
}

// Return creates a return statement; value may be nil.
func (f *Factory) Return(loc Location, value Expr) *ReturnStmt {
	return &ReturnStmt{Base: Base{loc}, Value: value}
}

// --- Expressions ---

// Binary creates left op right spanning both operands.
func (f *Factory) Binary(op BinaryOp, left, right Expr) *BinaryExpr {
	return &BinaryExpr{Base: Base{Span(left.Location(), right.Location())}, Op: op, Left: left, Right: right}
}

// Unary creates op operand.
func (f *Factory) Unary(loc Location, op UnaryOp, operand Expr) *UnaryExpr {
	return &UnaryExpr{Base: Base{loc}, Op: op, Operand: operand}
}

// Call creates name(args...).
func (f *Factory) Call(loc Location, name string, args ...Expr) *CallExpr {
	return &CallExpr{Base: Base{loc}, Func: f.Ident(loc, name), Args: &Arguments{Base: Base{loc}, List: args}}
}

// Paren creates (inner).
func (f *Factory) Paren(loc Location, inner Expr) *ParenExpr {
	return &ParenExpr{Base: Base{loc}, Inner: inner}
}

// Index creates name[index].
func (f *Factory) Index(loc Location, name string, index Expr) *IndexExpr {
	return &IndexExpr{Base: Base{loc}, Array: f.Ident(loc, name), Index: index}
}

// --- Literals ---

// Int creates an integer literal from its source text.
func (f *Factory) Int(loc Location, raw string) *IntLiteral {
	return &IntLiteral{Base: Base{loc}, Value: raw}
}

// Float creates a float literal from its source text.
func (f *Factory) Float(loc Location, raw string) *FloatLiteral {
	return &FloatLiteral{Base: Base{loc}, Value: raw}
}

// String creates a string literal.
func (f *Factory) String(loc Location, s string) *StringLiteral {
	return &StringLiteral{Base: Base{loc}, Value: s}
}

// Bool creates a boolean literal.
func (f *Factory) Bool(loc Location, b bool) *BoolLiteral {
	return &BoolLiteral{Base: Base{loc}, Value: b}
}
