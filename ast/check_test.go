package ast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCheck struct {
	name  string
	err   error
	calls int
}

func (c *countingCheck) Name() string { return c.name }

func (c *countingCheck) Check(*Program) error {
	c.calls++
	return c.err
}

func TestCheckChainStopsAtFirstError(t *testing.T) {
	first := &countingCheck{name: "first"}
	failing := &countingCheck{name: "failing", err: errors.New("boom")}
	last := &countingCheck{name: "last"}

	err := CheckChain{first, failing, last}.Run(sampleProgram())
	require.EqualError(t, err, "boom")
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, failing.calls)
	assert.Zero(t, last.calls)
}

func TestCheckChainEmpty(t *testing.T) {
	assert.NoError(t, CheckChain{}.Run(sampleProgram()))
}

func TestWellFormedAcceptsCompleteTree(t *testing.T) {
	assert.Equal(t, "well-formed", WellFormed().Name())
	assert.NoError(t, WellFormed().Check(sampleProgram()))
}

func TestWellFormedRejectsIncompleteTrees(t *testing.T) {
	f := NewFactory()
	wrap := func(stmts ...Statement) *Program {
		fn := f.Function(L(1, 1), Void, f.Ident(L(1, 6), "main"), nil, f.Compound(L(1, 13), stmts...))
		return f.Program(L(1, 1), "t.mc", []*Function{fn})
	}

	tests := []struct {
		name string
		prog *Program
		want string
	}{
		{"nil program", nil, "malformed AST: nil program"},
		{"nil function", f.Program(L(1, 1), "t.mc", []*Function{nil}), "1:1: malformed AST: nil function"},
		{
			"missing body",
			f.Program(L(1, 1), "t.mc", []*Function{{Base: Base{L(2, 1)}, ReturnType: Int, Name: f.Ident(L(2, 5), "f"), Params: f.Params(L(2, 6))}}),
			"2:1: malformed AST: function without body",
		},
		{"void variable", wrap(f.DeclStmt(f.Decl(L(3, 2), Void, "x"))), "3:2: malformed AST: declaration of type void"},
		{"nil statement", wrap(nil), "1:13: malformed AST: nil statement in block"},
		{"binary without operand", wrap(f.ExprStmt(&BinaryExpr{Base: Base{L(4, 2)}, Op: OpAdd, Left: f.Int(L(4, 2), "1")})), "4:2: malformed AST: binary operator with missing operand"},
		{"if without condition", wrap(&IfStmt{Base: Base{L(5, 2)}, Then: f.Compound(L(5, 9))}), "5:2: malformed AST: incomplete if statement"},
		{"call without arguments", wrap(f.ExprStmt(&CallExpr{Base: Base{L(6, 2)}, Func: f.Ident(L(6, 2), "g")})), "6:2: malformed AST: incomplete call"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WellFormed().Check(tt.prog)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}
