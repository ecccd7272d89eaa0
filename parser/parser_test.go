package parser

import (
	"bytes"
	"errors"
	"testing"

	"github.com/FlorianKrull/mcc/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"modernc.org/scanner"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse("test.mc", []byte(src))
	require.NoError(t, err)
	return prog
}

func TestParseEmptyProgram(t *testing.T) {
	prog := mustParse(t, "")
	assert.Empty(t, prog.Functions)
	assert.Equal(t, "test.mc", prog.SourceFile)
}

func TestParseFunction(t *testing.T) {
	prog := mustParse(t, "int add(int a, float b) { return a; }")
	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	assert.Equal(t, ast.Int, fn.ReturnType)
	assert.Equal(t, "add", fn.Name.Name)
	require.Len(t, fn.Params.List, 2)
	assert.Equal(t, ast.Int, fn.Params.List[0].Type)
	assert.Equal(t, "a", fn.Params.List[0].Ident.Name)
	assert.Equal(t, ast.Float, fn.Params.List[1].Type)

	require.Len(t, fn.Body.Stmts, 1)
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	id, ok := ret.Value.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "a", id.Name)
}

func TestParseEmptyParams(t *testing.T) {
	prog := mustParse(t, "void main() {}")
	fn := prog.Functions[0]
	require.NotNil(t, fn.Params)
	assert.Empty(t, fn.Params.List)
	assert.Empty(t, fn.Body.Stmts)
}

func TestParseArrayDeclarationForms(t *testing.T) {
	prog := mustParse(t, "void main() { int[5] a; float b[3]; }")
	stmts := prog.Functions[0].Body.Stmts
	require.Len(t, stmts, 2)

	a := stmts[0].(*ast.DeclStmt).Decl
	assert.True(t, a.IsArray())
	assert.Equal(t, "a", a.Ident.Name)
	assert.Equal(t, "5", a.Size.(*ast.IntLiteral).Value)

	b := stmts[1].(*ast.DeclStmt).Decl
	assert.True(t, b.IsArray())
	assert.Equal(t, ast.Float, b.Type)
	assert.Equal(t, "3", b.Size.(*ast.IntLiteral).Value)
}

func TestParseNonIntArraySizeIsAccepted(t *testing.T) {
	prog := mustParse(t, "void main() { int[2.5] a; }")
	d := prog.Functions[0].Body.Stmts[0].(*ast.DeclStmt).Decl
	_, isFloat := d.Size.(*ast.FloatLiteral)
	assert.True(t, isFloat)
}

func TestParseInitializedDeclaration(t *testing.T) {
	prog := mustParse(t, "void main() { int x = 1 + 2; }")
	stmts := prog.Functions[0].Body.Stmts
	require.Len(t, stmts, 2)
	decl, ok := stmts[0].(*ast.DeclStmt)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Decl.Ident.Name)
	assign, ok := stmts[1].(*ast.AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Assign.Target.Name)
	assert.Nil(t, assign.Assign.Index)
	bin, ok := assign.Assign.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
}

func TestParseIndexAssignment(t *testing.T) {
	prog := mustParse(t, "void main() { a[2] = 3; }")
	as := prog.Functions[0].Body.Stmts[0].(*ast.AssignStmt).Assign
	assert.Equal(t, "a", as.Target.Name)
	require.NotNil(t, as.Index)
	assert.Equal(t, "2", as.Index.(*ast.IntLiteral).Value)
}

func TestParsePrecedence(t *testing.T) {
	prog := mustParse(t, "void main() { x = 1 + 2 * 3 < 4 && !b || c == d; }")
	v := prog.Functions[0].Body.Stmts[0].(*ast.AssignStmt).Assign.Value

	or, ok := v.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpOr, or.Op)

	and := or.Left.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpAnd, and.Op)
	less := and.Left.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpLess, less.Op)
	add := less.Left.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpAdd, add.Op)
	mul := add.Right.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpMul, mul.Op)

	not := and.Right.(*ast.UnaryExpr)
	assert.Equal(t, ast.OpNot, not.Op)

	eq := or.Right.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpEq, eq.Op)
}

func TestParseLeftAssociative(t *testing.T) {
	prog := mustParse(t, "void main() { x = 10 - 3 - 2; }")
	v := prog.Functions[0].Body.Stmts[0].(*ast.AssignStmt).Assign.Value.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpSub, v.Op)
	inner, ok := v.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "10", inner.Left.(*ast.IntLiteral).Value)
	assert.Equal(t, "2", v.Right.(*ast.IntLiteral).Value)
}

func TestParseControlFlow(t *testing.T) {
	src := `int main() {
	if (x < 1) return 1; else { x = 2; }
	while (true) x = x - 1;
	return 0;
}`
	stmts := mustParse(t, src).Functions[0].Body.Stmts
	require.Len(t, stmts, 3)

	ifs, ok := stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	_, ok = ifs.Then.(*ast.ReturnStmt)
	assert.True(t, ok)
	_, ok = ifs.Else.(*ast.CompoundStmt)
	assert.True(t, ok)

	w, ok := stmts[1].(*ast.WhileStmt)
	require.True(t, ok)
	_, ok = w.Cond.(*ast.BoolLiteral)
	assert.True(t, ok)
}

func TestParseCallsAndLiterals(t *testing.T) {
	prog := mustParse(t, `void main() { print("hi there"); print_float(-1.5); f(a[1], (2)); }`)
	stmts := prog.Functions[0].Body.Stmts
	require.Len(t, stmts, 3)

	call := stmts[0].(*ast.ExprStmt).Expression.(*ast.CallExpr)
	assert.Equal(t, "print", call.Func.Name)
	assert.Equal(t, "hi there", call.Args.List[0].(*ast.StringLiteral).Value)

	neg := stmts[1].(*ast.ExprStmt).Expression.(*ast.CallExpr).Args.List[0].(*ast.UnaryExpr)
	assert.Equal(t, ast.OpNeg, neg.Op)
	assert.Equal(t, "1.5", neg.Operand.(*ast.FloatLiteral).Value)

	f := stmts[2].(*ast.ExprStmt).Expression.(*ast.CallExpr)
	require.Len(t, f.Args.List, 2)
	_, ok := f.Args.List[0].(*ast.IndexExpr)
	assert.True(t, ok)
	_, ok = f.Args.List[1].(*ast.ParenExpr)
	assert.True(t, ok)
}

func TestParseComments(t *testing.T) {
	src := "/* header\n comment */\nvoid main() { // trailing\n}\n"
	prog := mustParse(t, src)
	require.Len(t, prog.Functions, 1)
	assert.Equal(t, 3, prog.Functions[0].Loc.StartLine)
}

func TestParseLocations(t *testing.T) {
	src := "void main() {\n  int x;\n  x = 42;\n}\n"
	stmts := mustParse(t, src).Functions[0].Body.Stmts

	decl := stmts[0].(*ast.DeclStmt)
	assert.Equal(t, ast.Location{StartLine: 2, StartCol: 3, EndLine: 2, EndCol: 7}, decl.Loc)

	as := stmts[1].(*ast.AssignStmt)
	assert.Equal(t, 3, as.Loc.StartLine)
	assert.Equal(t, 3, as.Loc.StartCol)
	lit := as.Assign.Value.(*ast.IntLiteral)
	assert.Equal(t, ast.Location{StartLine: 3, StartCol: 7, EndLine: 3, EndCol: 8}, lit.Loc)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing semicolon", "void main() { x = 1 }", "test.mc:1:21: expected ';', got '}'"},
		{"bad character", "void main() { x = 1 $ 2; }", "test.mc:1:21: unexpected character '$'"},
		{"unterminated string", "void main() {\n print(\"abc\n); }", "test.mc:2:8: unterminated string literal"},
		{"unterminated comment", "/* never closed", "test.mc:1:1: unterminated comment"},
		{"void variable", "void main() { void x; }", "test.mc:1:15: void is not a valid variable type"},
		{"bad assignment target", "void main() { f() = 1; }", "test.mc:1:19: left side of assignment must be a variable or array element"},
		{"missing brace", "void main() {", "test.mc:1:14: expected '}', got end of file"},
		{"statement outside function", "x = 1;", "test.mc:1:1: expected type, got identifier \"x\""},
		{"malformed float", "void main() { float f; f = 1.; }", "test.mc:1:29: malformed float literal"},
		{"malformed number", "void main() { int i; i = 12ab; }", "test.mc:1:28: malformed number literal"},
		{"first of several", "void main() { $ # }", "test.mc:1:15: unexpected character '$'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test.mc", []byte(tt.src))
			require.Error(t, err)
			var perr scanner.ErrWithPosition
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "test.mc", perr.Pos.Filename)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestParseUnnamedSource(t *testing.T) {
	_, err := Parse("", []byte("void main() {\n  int x\n}"))
	assert.EqualError(t, err, "3:1: expected ';', got '}'")
}

func TestParseMultilineComment(t *testing.T) {
	src := "void a() {}\n/* one\n two\n three */ void b() { x = 1; }\n"
	prog := mustParse(t, src)
	require.Len(t, prog.Functions, 2)
	assert.Equal(t, ast.Location{StartLine: 4, StartCol: 10, EndLine: 4, EndCol: 28}, prog.Functions[1].Loc)
}

func TestParsedTreePrints(t *testing.T) {
	prog := mustParse(t, "int main() { return 1 + 2; }")
	var buf bytes.Buffer
	require.NoError(t, ast.PrintText(&buf, prog))
	assert.Contains(t, buf.String(), "Binary +")
	assert.NoError(t, ast.WellFormed().Check(prog))
}
