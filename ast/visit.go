package ast

// Callbacks holds one optional hook per node kind. A nil hook is skipped.
//
// The generic hooks (Statement, Expression, Literal) fire for every node of
// their category: before the variant hook in pre-order, after it in
// post-order.
type Callbacks struct {
	Program     func(p *Program, data any)
	Function    func(f *Function, data any)
	Parameters  func(p *Parameters, data any)
	Declaration func(d *Declaration, data any)
	Assignment  func(a *Assignment, data any)
	Arguments   func(a *Arguments, data any)

	Statement    func(s Statement, data any)
	ExprStmt     func(s *ExprStmt, data any)
	IfStmt       func(s *IfStmt, data any)
	WhileStmt    func(s *WhileStmt, data any)
	DeclStmt     func(s *DeclStmt, data any)
	AssignStmt   func(s *AssignStmt, data any)
	CompoundStmt func(s *CompoundStmt, data any)
	ReturnStmt   func(s *ReturnStmt, data any)

	Expression func(e Expr, data any)
	Identifier func(e *Identifier, data any)
	CallExpr   func(e *CallExpr, data any)
	UnaryExpr  func(e *UnaryExpr, data any)
	BinaryExpr func(e *BinaryExpr, data any)
	ParenExpr  func(e *ParenExpr, data any)
	IndexExpr  func(e *IndexExpr, data any)

	Literal       func(l Literal, data any)
	IntLiteral    func(l *IntLiteral, data any)
	FloatLiteral  func(l *FloatLiteral, data any)
	StringLiteral func(l *StringLiteral, data any)
	BoolLiteral   func(l *BoolLiteral, data any)
}

// Visitor configures a depth-first walk. Pre hooks run before a node's
// children, Post hooks after. UserData is passed to every hook.
type Visitor struct {
	Pre      Callbacks
	Post     Callbacks
	UserData any
}

// Walk traverses n depth-first, visiting children left to right.
// Nil nodes are skipped.
func Walk(n Node, v *Visitor) {
	switch n := n.(type) {
	case *Program:
		walkProgram(n, v)
	case *Function:
		walkFunction(n, v)
	case *Parameters:
		walkParameters(n, v)
	case *Declaration:
		walkDeclaration(n, v)
	case *Assignment:
		walkAssignment(n, v)
	case *Arguments:
		walkArguments(n, v)
	case Statement:
		walkStmt(n, v)
	case Expr:
		walkExpr(n, v)
	}
}

func walkProgram(p *Program, v *Visitor) {
	if p == nil {
		return
	}
	if v.Pre.Program != nil {
		v.Pre.Program(p, v.UserData)
	}
	for _, f := range p.Functions {
		walkFunction(f, v)
	}
	if v.Post.Program != nil {
		v.Post.Program(p, v.UserData)
	}
}

func walkFunction(f *Function, v *Visitor) {
	if f == nil {
		return
	}
	if v.Pre.Function != nil {
		v.Pre.Function(f, v.UserData)
	}
	walkIdent(f.Name, v)
	walkParameters(f.Params, v)
	if f.Body != nil {
		walkStmt(f.Body, v)
	}
	if v.Post.Function != nil {
		v.Post.Function(f, v.UserData)
	}
}

func walkParameters(p *Parameters, v *Visitor) {
	if p == nil {
		return
	}
	if v.Pre.Parameters != nil {
		v.Pre.Parameters(p, v.UserData)
	}
	for _, d := range p.List {
		walkDeclaration(d, v)
	}
	if v.Post.Parameters != nil {
		v.Post.Parameters(p, v.UserData)
	}
}

func walkDeclaration(d *Declaration, v *Visitor) {
	if d == nil {
		return
	}
	if v.Pre.Declaration != nil {
		v.Pre.Declaration(d, v.UserData)
	}
	if d.Size != nil {
		walkExpr(d.Size, v)
	}
	walkIdent(d.Ident, v)
	if v.Post.Declaration != nil {
		v.Post.Declaration(d, v.UserData)
	}
}

func walkAssignment(a *Assignment, v *Visitor) {
	if a == nil {
		return
	}
	if v.Pre.Assignment != nil {
		v.Pre.Assignment(a, v.UserData)
	}
	walkIdent(a.Target, v)
	walkExpr(a.Index, v)
	walkExpr(a.Value, v)
	if v.Post.Assignment != nil {
		v.Post.Assignment(a, v.UserData)
	}
}

func walkArguments(a *Arguments, v *Visitor) {
	if a == nil {
		return
	}
	if v.Pre.Arguments != nil {
		v.Pre.Arguments(a, v.UserData)
	}
	for _, e := range a.List {
		walkExpr(e, v)
	}
	if v.Post.Arguments != nil {
		v.Post.Arguments(a, v.UserData)
	}
}

func walkStmt(s Statement, v *Visitor) {
	if s == nil || isNilNode(s) {
		return
	}
	if v.Pre.Statement != nil {
		v.Pre.Statement(s, v.UserData)
	}
	switch st := s.(type) {
	case *ExprStmt:
		if v.Pre.ExprStmt != nil {
			v.Pre.ExprStmt(st, v.UserData)
		}
		walkExpr(st.Expression, v)
		if v.Post.ExprStmt != nil {
			v.Post.ExprStmt(st, v.UserData)
		}
	case *IfStmt:
		if v.Pre.IfStmt != nil {
			v.Pre.IfStmt(st, v.UserData)
		}
		walkExpr(st.Cond, v)
		walkStmt(st.Then, v)
		walkStmt(st.Else, v)
		if v.Post.IfStmt != nil {
			v.Post.IfStmt(st, v.UserData)
		}
	case *WhileStmt:
		if v.Pre.WhileStmt != nil {
			v.Pre.WhileStmt(st, v.UserData)
		}
		walkExpr(st.Cond, v)
		walkStmt(st.Body, v)
		if v.Post.WhileStmt != nil {
			v.Post.WhileStmt(st, v.UserData)
		}
	case *DeclStmt:
		if v.Pre.DeclStmt != nil {
			v.Pre.DeclStmt(st, v.UserData)
		}
		walkDeclaration(st.Decl, v)
		if v.Post.DeclStmt != nil {
			v.Post.DeclStmt(st, v.UserData)
		}
	case *AssignStmt:
		if v.Pre.AssignStmt != nil {
			v.Pre.AssignStmt(st, v.UserData)
		}
		walkAssignment(st.Assign, v)
		if v.Post.AssignStmt != nil {
			v.Post.AssignStmt(st, v.UserData)
		}
	case *CompoundStmt:
		if v.Pre.CompoundStmt != nil {
			v.Pre.CompoundStmt(st, v.UserData)
		}
		for _, inner := range st.Stmts {
			walkStmt(inner, v)
		}
		if v.Post.CompoundStmt != nil {
			v.Post.CompoundStmt(st, v.UserData)
		}
	case *ReturnStmt:
		if v.Pre.ReturnStmt != nil {
			v.Pre.ReturnStmt(st, v.UserData)
		}
		walkExpr(st.Value, v)
		if v.Post.ReturnStmt != nil {
			v.Post.ReturnStmt(st, v.UserData)
		}
	}
	if v.Post.Statement != nil {
		v.Post.Statement(s, v.UserData)
	}
}

func walkIdent(id *Identifier, v *Visitor) {
	if id != nil {
		walkExpr(id, v)
	}
}

func walkExpr(e Expr, v *Visitor) {
	if e == nil || isNilNode(e) {
		return
	}
	if v.Pre.Expression != nil {
		v.Pre.Expression(e, v.UserData)
	}
	switch ex := e.(type) {
	case *Identifier:
		if v.Pre.Identifier != nil {
			v.Pre.Identifier(ex, v.UserData)
		}
		if v.Post.Identifier != nil {
			v.Post.Identifier(ex, v.UserData)
		}
	case *CallExpr:
		if v.Pre.CallExpr != nil {
			v.Pre.CallExpr(ex, v.UserData)
		}
		walkIdent(ex.Func, v)
		walkArguments(ex.Args, v)
		if v.Post.CallExpr != nil {
			v.Post.CallExpr(ex, v.UserData)
		}
	case *UnaryExpr:
		if v.Pre.UnaryExpr != nil {
			v.Pre.UnaryExpr(ex, v.UserData)
		}
		walkExpr(ex.Operand, v)
		if v.Post.UnaryExpr != nil {
			v.Post.UnaryExpr(ex, v.UserData)
		}
	case *BinaryExpr:
		if v.Pre.BinaryExpr != nil {
			v.Pre.BinaryExpr(ex, v.UserData)
		}
		walkExpr(ex.Left, v)
		walkExpr(ex.Right, v)
		if v.Post.BinaryExpr != nil {
			v.Post.BinaryExpr(ex, v.UserData)
		}
	case *ParenExpr:
		if v.Pre.ParenExpr != nil {
			v.Pre.ParenExpr(ex, v.UserData)
		}
		walkExpr(ex.Inner, v)
		if v.Post.ParenExpr != nil {
			v.Post.ParenExpr(ex, v.UserData)
		}
	case *IndexExpr:
		if v.Pre.IndexExpr != nil {
			v.Pre.IndexExpr(ex, v.UserData)
		}
		walkIdent(ex.Array, v)
		walkExpr(ex.Index, v)
		if v.Post.IndexExpr != nil {
			v.Post.IndexExpr(ex, v.UserData)
		}
	case Literal:
		walkLiteral(ex, v)
	}
	if v.Post.Expression != nil {
		v.Post.Expression(e, v.UserData)
	}
}

func walkLiteral(l Literal, v *Visitor) {
	if v.Pre.Literal != nil {
		v.Pre.Literal(l, v.UserData)
	}
	switch lit := l.(type) {
	case *IntLiteral:
		if v.Pre.IntLiteral != nil {
			v.Pre.IntLiteral(lit, v.UserData)
		}
		if v.Post.IntLiteral != nil {
			v.Post.IntLiteral(lit, v.UserData)
		}
	case *FloatLiteral:
		if v.Pre.FloatLiteral != nil {
			v.Pre.FloatLiteral(lit, v.UserData)
		}
		if v.Post.FloatLiteral != nil {
			v.Post.FloatLiteral(lit, v.UserData)
		}
	case *StringLiteral:
		if v.Pre.StringLiteral != nil {
			v.Pre.StringLiteral(lit, v.UserData)
		}
		if v.Post.StringLiteral != nil {
			v.Post.StringLiteral(lit, v.UserData)
		}
	case *BoolLiteral:
		if v.Pre.BoolLiteral != nil {
			v.Pre.BoolLiteral(lit, v.UserData)
		}
		if v.Post.BoolLiteral != nil {
			v.Post.BoolLiteral(lit, v.UserData)
		}
	}
	if v.Post.Literal != nil {
		v.Post.Literal(l, v.UserData)
	}
}

// isNilNode catches typed nil pointers stored in an interface.
func isNilNode(n Node) bool {
	switch x := n.(type) {
	case *ExprStmt:
		return x == nil
	case *IfStmt:
		return x == nil
	case *WhileStmt:
		return x == nil
	case *DeclStmt:
		return x == nil
	case *AssignStmt:
		return x == nil
	case *CompoundStmt:
		return x == nil
	case *ReturnStmt:
		return x == nil
	case *Identifier:
		return x == nil
	case *CallExpr:
		return x == nil
	case *UnaryExpr:
		return x == nil
	case *BinaryExpr:
		return x == nil
	case *ParenExpr:
		return x == nil
	case *IndexExpr:
		return x == nil
	case *IntLiteral:
		return x == nil
	case *FloatLiteral:
		return x == nil
	case *StringLiteral:
		return x == nil
	case *BoolLiteral:
		return x == nil
	}
	return false
}
