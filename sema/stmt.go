package sema

import (
	"errors"
	"strconv"

	"github.com/FlorianKrull/mcc/ast"
	"github.com/FlorianKrull/mcc/symtab"
)

// body is the analysis state of one function. Each body owns its scope
// subtree and its Collector, so bodies can be analyzed concurrently.
type body struct {
	fn      *ast.Function
	scope   *symtab.Scope
	ec      *Collector
	returns []returnSite
}

type returnSite struct {
	loc   ast.Location
	typ   ast.DataType
	array bool // returns a whole array
}

func (b *body) record(d Diagnostic) { b.ec.Record(d) }

func (b *body) run() {
	for _, p := range b.fn.Params.List {
		b.declare(p, b.scope, true)
	}
	// The body block opens a child of the parameter scope, so locals may
	// shadow parameters.
	b.stmt(b.fn.Body, b.scope)
	b.checkReturns()
}

func (b *body) stmt(s ast.Statement, scope *symtab.Scope) {
	switch s := s.(type) {
	case *ast.ExprStmt:
		b.expr(s.Expression, scope)
	case *ast.DeclStmt:
		b.declare(s.Decl, scope, false)
	case *ast.AssignStmt:
		b.assign(s.Assign, scope)
	case *ast.IfStmt:
		b.cond(s.Cond, scope)
		b.stmt(s.Then, scope)
		if s.Else != nil {
			b.stmt(s.Else, scope)
		}
	case *ast.WhileStmt:
		b.cond(s.Cond, scope)
		b.stmt(s.Body, scope)
	case *ast.CompoundStmt:
		child := scope.CreateChild("")
		for _, inner := range s.Stmts {
			b.stmt(inner, child)
		}
	case *ast.ReturnStmt:
		site := returnSite{loc: s.Loc, typ: ast.Void}
		if s.Value != nil {
			site.typ = b.expr(s.Value, scope)
			site.array = isArrayOperand(s.Value, scope)
		}
		b.returns = append(b.returns, site)
	}
}

func (b *body) cond(e ast.Expr, scope *symtab.Scope) {
	t := b.expr(e, scope)
	if t != ast.Invalid && isArrayOperand(e, scope) {
		b.record(Diagnostic{Loc: e.Location(), Kind: ConditionBoolExpected})
		return
	}
	if t != ast.Invalid && t != ast.Bool {
		b.record(Diagnostic{Loc: e.Location(), Kind: ConditionBoolExpected, Expected: ast.Bool, Actual: t})
	}
}

// declare inserts a variable or array symbol for d. Parameter collisions
// are always VariableAlreadyDeclared.
func (b *body) declare(d *ast.Declaration, scope *symtab.Scope, param bool) {
	name := d.Ident.Name
	var sym symtab.Symbol = &symtab.Variable{Name: name, Type: d.Type}
	collision := VariableAlreadyDeclared
	if d.IsArray() {
		sym = &symtab.Array{Name: name, Elem: d.Type, Size: b.arraySize(d)}
		if !param {
			collision = ArrayAlreadyDeclared
		}
	}
	if err := scope.Insert(sym); err != nil {
		if errors.Is(err, symtab.ErrAlreadyDeclared) {
			b.record(Diagnostic{Loc: d.Loc, Kind: collision, Name: name})
		}
	}
}

// arraySize returns the declared size, or 0 after recording
// ArraySizeDefinition when the size is not an int literal or does not fit
// in an int64.
func (b *body) arraySize(d *ast.Declaration) int64 {
	if lit, ok := d.Size.(*ast.IntLiteral); ok {
		n, err := strconv.ParseInt(lit.Value, 10, 64)
		if err == nil {
			return n
		}
		// an int literal too large for int64; its type is fine
		b.record(Diagnostic{Loc: d.Size.Location(), Kind: ArraySizeDefinition, Name: d.Ident.Name})
		return 0
	}
	b.record(Diagnostic{
		Loc:      d.Size.Location(),
		Kind:     ArraySizeDefinition,
		Name:     d.Ident.Name,
		Expected: ast.Int,
		Actual:   d.Size.Type(),
	})
	return 0
}

func (b *body) assign(a *ast.Assignment, scope *symtab.Scope) {
	name := a.Target.Name
	sym, ok := scope.Lookup(name)
	if !ok || isFunction(sym) {
		b.record(Diagnostic{Loc: a.Target.Loc, Kind: VariableNotDeclared, Name: name})
		return
	}
	_, isArray := sym.(*symtab.Array)
	whole := isArray && a.Index == nil
	if whole {
		if _, ok := a.Value.(*ast.BinaryExpr); ok {
			b.record(Diagnostic{Loc: a.Loc, Kind: ArrayOperations, Name: name})
			return
		}
	}
	if a.Index != nil {
		b.expr(a.Index, scope)
	}
	got := b.expr(a.Value, scope)
	if got == ast.Invalid {
		return
	}
	// Only single elements are assignable, and only from values.
	if whole || isArrayOperand(a.Value, scope) {
		b.record(Diagnostic{Loc: a.Loc, Kind: TypeAssignment, Name: name})
		return
	}
	want := sym.DataType()
	if got != want {
		b.record(Diagnostic{Loc: a.Loc, Kind: TypeAssignment, Name: name, Expected: want, Actual: got})
	}
}
