package sema

import "github.com/FlorianKrull/mcc/ast"

// checkReturns validates the return statements of a non-void function and
// that its body cannot fall off the end.
func (b *body) checkReturns() {
	want := b.fn.ReturnType
	if want == ast.Void {
		return
	}
	for _, r := range b.returns {
		if r.typ != ast.Invalid && r.array {
			b.record(Diagnostic{Loc: r.loc, Kind: InvalidReturnType, Name: b.fn.Name.Name})
			continue
		}
		if r.typ != ast.Invalid && r.typ != want {
			b.record(Diagnostic{
				Loc:      r.loc,
				Kind:     InvalidReturnType,
				Name:     b.fn.Name.Name,
				Expected: want,
				Actual:   r.typ,
			})
		}
	}
	if !guaranteesReturn(b.fn.Body) {
		b.record(Diagnostic{Loc: b.fn.Loc, Kind: NoReturnInNonVoidFunction, Name: b.fn.Name.Name})
	}
}

// guaranteesReturn reports whether executing s always ends in a return.
// Only the last statement of a block is considered.
func guaranteesReturn(s ast.Statement) bool {
	switch s := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.IfStmt:
		return s.Else != nil && guaranteesReturn(s.Then) && guaranteesReturn(s.Else)
	case *ast.WhileStmt:
		return guaranteesReturn(s.Body)
	case *ast.CompoundStmt:
		if len(s.Stmts) == 0 {
			return false
		}
		return guaranteesReturn(s.Stmts[len(s.Stmts)-1])
	}
	return false
}
