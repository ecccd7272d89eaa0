package sema

import (
	"github.com/FlorianKrull/mcc/ast"
	"github.com/FlorianKrull/mcc/symtab"
)

// expr infers the type of e, recording diagnostics on the way. It returns
// ast.Invalid when the type cannot be determined; callers skip their own
// checks on Invalid so a single fault is reported once.
func (b *body) expr(e ast.Expr, scope *symtab.Scope) ast.DataType {
	switch e := e.(type) {
	case ast.Literal:
		return e.Type()
	case *ast.Identifier:
		return b.ident(e, scope)
	case *ast.ParenExpr:
		return b.expr(e.Inner, scope)
	case *ast.IndexExpr:
		t := b.ident(e.Array, scope)
		b.expr(e.Index, scope)
		return t
	case *ast.CallExpr:
		return b.call(e, scope)
	case *ast.UnaryExpr:
		return b.unary(e, scope)
	case *ast.BinaryExpr:
		return b.binary(e, scope)
	}
	return ast.Invalid
}

// ident resolves a variable or array. Arrays yield their element type.
func (b *body) ident(id *ast.Identifier, scope *symtab.Scope) ast.DataType {
	sym, ok := scope.Lookup(id.Name)
	if !ok || isFunction(sym) {
		b.record(Diagnostic{Loc: id.Loc, Kind: VariableNotDeclared, Name: id.Name})
		return ast.Invalid
	}
	return sym.DataType()
}

// arrayOperand returns the identifier when e, inside any parentheses,
// names a whole array rather than one of its elements.
func arrayOperand(e ast.Expr, scope *symtab.Scope) (*ast.Identifier, bool) {
	for {
		p, ok := e.(*ast.ParenExpr)
		if !ok {
			break
		}
		e = p.Inner
	}
	id, ok := e.(*ast.Identifier)
	if !ok {
		return nil, false
	}
	sym, ok := scope.Lookup(id.Name)
	if !ok {
		return nil, false
	}
	_, ok = sym.(*symtab.Array)
	return id, ok
}

func isArrayOperand(e ast.Expr, scope *symtab.Scope) bool {
	_, ok := arrayOperand(e, scope)
	return ok
}

func (b *body) call(c *ast.CallExpr, scope *symtab.Scope) ast.DataType {
	name := c.Func.Name
	sym, ok := scope.Lookup(name)
	fn, isFn := sym.(*symtab.Function)
	if !ok || !isFn {
		b.record(Diagnostic{Loc: c.Loc, Kind: FuncNotDeclared, Name: name})
		for _, a := range c.Args.List {
			b.expr(a, scope)
		}
		return ast.Invalid
	}

	types := make([]ast.DataType, len(c.Args.List))
	for i, a := range c.Args.List {
		types[i] = b.expr(a, scope)
	}
	if len(types) != len(fn.Params) {
		b.record(Diagnostic{Loc: c.Loc, Kind: WrongNumOfArguments, Name: name})
		return fn.Return
	}
	for i, got := range types {
		arg := c.Args.List[i]
		if got != ast.Invalid && isArrayOperand(arg, scope) != fn.IsArrayParam(i) {
			// whole array for a scalar parameter or the other way round
			b.record(Diagnostic{Loc: arg.Location(), Kind: WrongArgumentType, Name: name})
			continue
		}
		want := fn.Params[i]
		if got != ast.Invalid && got != want {
			b.record(Diagnostic{
				Loc:      c.Args.List[i].Location(),
				Kind:     WrongArgumentType,
				Name:     name,
				Expected: want,
				Actual:   got,
			})
		}
	}
	return fn.Return
}

func (b *body) unary(u *ast.UnaryExpr, scope *symtab.Scope) ast.DataType {
	t := b.expr(u.Operand, scope)
	if id, ok := arrayOperand(u.Operand, scope); ok {
		b.record(Diagnostic{Loc: u.Loc, Kind: ArrayOperations, Name: id.Name})
		return ast.Invalid
	}
	if t == ast.Invalid {
		return ast.Invalid
	}
	switch u.Op {
	case ast.OpNot:
		if t != ast.Bool {
			b.record(Diagnostic{Loc: u.Loc, Kind: UnaryOpExpectedBool, Expected: ast.Bool, Actual: t})
		}
		return ast.Bool
	default:
		if !t.IsNumeric() {
			b.record(Diagnostic{Loc: u.Loc, Kind: UnaryOpExpectedNumber, Actual: t})
			return ast.Invalid
		}
		return t
	}
}

func (b *body) binary(e *ast.BinaryExpr, scope *symtab.Scope) ast.DataType {
	lt := b.expr(e.Left, scope)
	rt := b.expr(e.Right, scope)
	t := b.binaryType(e, lt, rt, scope)
	if e.Op == ast.OpDiv && ast.IsZeroLiteral(e.Right) {
		b.record(Diagnostic{Loc: e.Right.Location(), Kind: BinaryOpDivBy0})
	}
	return t
}

// binaryType applies the operand rules in order and records at most one
// diagnostic.
func (b *body) binaryType(e *ast.BinaryExpr, lt, rt ast.DataType, scope *symtab.Scope) ast.DataType {
	for _, side := range []ast.Expr{e.Left, e.Right} {
		if id, ok := arrayOperand(side, scope); ok {
			b.record(Diagnostic{Loc: e.Loc, Kind: ArrayOperations, Name: id.Name})
			return ast.Invalid
		}
	}
	if lt == ast.Invalid || rt == ast.Invalid {
		return ast.Invalid
	}

	switch {
	case e.Op.IsArithmetic() || e.Op.IsComparison():
		if !lt.IsNumeric() {
			b.record(Diagnostic{Loc: e.Loc, Kind: BinaryOpHandsideNumberType, Actual: lt})
			return ast.Invalid
		}
		if !rt.IsNumeric() {
			b.record(Diagnostic{Loc: e.Loc, Kind: BinaryOpHandsideNumberType, Actual: rt})
			return ast.Invalid
		}
	case e.Op.IsLogical():
		if lt != ast.Bool {
			b.record(Diagnostic{Loc: e.Loc, Kind: BinaryOpHandsideBoolType, Expected: ast.Bool, Actual: lt})
			return ast.Invalid
		}
		if rt != ast.Bool {
			b.record(Diagnostic{Loc: e.Loc, Kind: BinaryOpHandsideBoolType, Expected: ast.Bool, Actual: rt})
			return ast.Invalid
		}
	}
	if lt != rt {
		b.record(Diagnostic{Loc: e.Loc, Kind: BinaryOpHandsideSameType, Expected: lt, Actual: rt})
		return ast.Invalid
	}

	if e.Op.IsArithmetic() {
		return lt
	}
	return ast.Bool
}
