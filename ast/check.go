package ast

import "fmt"

// Check validates an AST without modifying it.
type Check interface {
	Name() string
	Check(prog *Program) error
}

// CheckChain runs checks in order, stopping at the first error.
type CheckChain []Check

// Run executes each check in sequence. Returns nil if all pass.
func (cc CheckChain) Run(prog *Program) error {
	for _, c := range cc {
		if err := c.Check(prog); err != nil {
			return err
		}
	}
	return nil
}

// WellFormed returns a Check that rejects trees with missing required
// children. Parsers never build such trees, but hand-built ones can.
func WellFormed() Check { return wellFormed{} }

type wellFormed struct{}

func (wellFormed) Name() string { return "well-formed" }

func (wellFormed) Check(prog *Program) error {
	if prog == nil {
		return fmt.Errorf("malformed AST: nil program")
	}
	var first error
	fail := func(loc Location, what string) {
		if first == nil {
			first = fmt.Errorf("%s: malformed AST: %s", loc, what)
		}
	}
	v := &Visitor{Pre: Callbacks{
		Program: func(p *Program, _ any) {
			for _, f := range p.Functions {
				if f == nil {
					fail(p.Loc, "nil function")
				}
			}
		},
		Function: func(f *Function, _ any) {
			if f.Name == nil {
				fail(f.Loc, "function without name")
			}
			if f.Params == nil {
				fail(f.Loc, "function without parameter list")
			}
			if f.Body == nil {
				fail(f.Loc, "function without body")
			}
			if f.ReturnType == Invalid {
				fail(f.Loc, "function without return type")
			}
		},
		Declaration: func(d *Declaration, _ any) {
			if d.Ident == nil {
				fail(d.Loc, "declaration without identifier")
			}
			if d.Type == Invalid || d.Type == Void {
				fail(d.Loc, fmt.Sprintf("declaration of type %s", d.Type))
			}
		},
		Parameters: func(p *Parameters, _ any) {
			for _, d := range p.List {
				if d == nil {
					fail(p.Loc, "nil parameter")
				}
			}
		},
		Assignment: func(a *Assignment, _ any) {
			if a.Target == nil || a.Value == nil {
				fail(a.Loc, "incomplete assignment")
			}
		},
		ExprStmt: func(s *ExprStmt, _ any) {
			if s.Expression == nil {
				fail(s.Loc, "empty expression statement")
			}
		},
		IfStmt: func(s *IfStmt, _ any) {
			if s.Cond == nil || s.Then == nil {
				fail(s.Loc, "incomplete if statement")
			}
		},
		WhileStmt: func(s *WhileStmt, _ any) {
			if s.Cond == nil || s.Body == nil {
				fail(s.Loc, "incomplete while statement")
			}
		},
		DeclStmt: func(s *DeclStmt, _ any) {
			if s.Decl == nil {
				fail(s.Loc, "empty declaration statement")
			}
		},
		AssignStmt: func(s *AssignStmt, _ any) {
			if s.Assign == nil {
				fail(s.Loc, "empty assignment statement")
			}
		},
		CompoundStmt: func(s *CompoundStmt, _ any) {
			for _, inner := range s.Stmts {
				if inner == nil {
					fail(s.Loc, "nil statement in block")
				}
			}
		},
		CallExpr: func(e *CallExpr, _ any) {
			if e.Func == nil || e.Args == nil {
				fail(e.Loc, "incomplete call")
			}
		},
		UnaryExpr: func(e *UnaryExpr, _ any) {
			if e.Operand == nil {
				fail(e.Loc, "unary operator without operand")
			}
		},
		BinaryExpr: func(e *BinaryExpr, _ any) {
			if e.Left == nil || e.Right == nil {
				fail(e.Loc, "binary operator with missing operand")
			}
		},
		ParenExpr: func(e *ParenExpr, _ any) {
			if e.Inner == nil {
				fail(e.Loc, "empty parentheses")
			}
		},
		IndexExpr: func(e *IndexExpr, _ any) {
			if e.Array == nil || e.Index == nil {
				fail(e.Loc, "incomplete index expression")
			}
		},
		Arguments: func(a *Arguments, _ any) {
			for _, e := range a.List {
				if e == nil {
					fail(a.Loc, "nil argument")
				}
			}
		},
	}}
	Walk(prog, v)
	return first
}
