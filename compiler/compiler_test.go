package compiler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FlorianKrull/mcc/ast"
	"github.com/FlorianKrull/mcc/sema"
	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"modernc.org/scanner"
)

func examplePath(name string) string {
	return filepath.Join("..", "examples", name)
}

func TestValidExamples(t *testing.T) {
	for _, name := range []string{"fib.mc", "arrays.mc"} {
		t.Run(name, func(t *testing.T) {
			c := &Compiler{}
			res, err := c.Check(examplePath(name))
			require.NoError(t, err)
			assert.NoError(t, res.Err())
			assert.Empty(t, res.Diagnostics)
			require.NotNil(t, res.Scope)
			_, ok := res.Scope.Find("main")
			assert.True(t, ok)
		})
	}
}

func TestErrorsExample(t *testing.T) {
	c := &Compiler{}
	res, err := c.Check(examplePath("errors.mc"))
	require.NoError(t, err)

	want := []sema.Kind{
		sema.VariableAlreadyDeclared,
		sema.BinaryOpHandsideSameType,
		sema.NoReturnInNonVoidFunction,
		sema.ArrayOperations,
		sema.WrongNumOfArguments,
		sema.WrongArgumentType,
		sema.VariableNotDeclared,
		sema.ConditionBoolExpected,
		sema.UnaryOpExpectedBool,
		sema.WrongArgumentType,
		sema.MainMissing,
	}
	assert.Equal(t, want, res.Diagnostics.Kinds(), res.Diagnostics.Error())

	checkErr := res.Err()
	require.Error(t, checkErr)
	lines := strings.Split(checkErr.Error(), "\n")
	require.Len(t, lines, len(want))
	file := examplePath("errors.mc")
	assert.Equal(t, file+`:3:9: Variable already declared "x"`, lines[0])
	assert.Equal(t, file+`:18:2: Variable not declared "undeclared"`, lines[6])
	assert.Equal(t, file+`:1:1: Main missing "main"`, lines[10])

	var diags sema.Diagnostics
	require.True(t, errors.As(checkErr, &diags))
	assert.Len(t, diags, len(want))
}

func TestParallelCheckMatchesSequential(t *testing.T) {
	seq, err := (&Compiler{}).Check(examplePath("errors.mc"))
	require.NoError(t, err)
	par, err := (&Compiler{Jobs: 4}).Check(examplePath("errors.mc"))
	require.NoError(t, err)
	assert.Nil(t, deep.Equal(seq.Diagnostics, par.Diagnostics))
}

func TestCheckFromStdin(t *testing.T) {
	c := &Compiler{Stdin: strings.NewReader("void main() { print(\"hi\"); }")}
	res, err := c.Check(StdinName)
	require.NoError(t, err)
	assert.Equal(t, "<stdin>", res.SourceFile)
	assert.NoError(t, res.Err())
}

func TestParseErrorIsReturned(t *testing.T) {
	c := &Compiler{}
	_, err := c.CheckSource([]byte("void main() { int x }"), "bad.mc")
	require.Error(t, err)
	var perr scanner.ErrWithPosition
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 21, perr.Pos.Column)
	assert.Equal(t, "bad.mc:1:21: expected ';', got '}'", err.Error())
}

func TestMissingFile(t *testing.T) {
	c := &Compiler{}
	_, err := c.Check(filepath.Join(t.TempDir(), "nope.mc"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "reading ")
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.mc")
	require.NoError(t, os.WriteFile(path, []byte("int main() { return 0; }\n"), 0o644))

	prog, err := (&Compiler{}).ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, prog.SourceFile)
	require.Len(t, prog.Functions, 1)
}

func TestCheckProgramRejectsMalformedTree(t *testing.T) {
	f := ast.NewFactory()
	loc := ast.Location{StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 1}
	prog := f.Program(loc, "built", []*ast.Function{{Base: ast.Base{Loc: loc}, ReturnType: ast.Void}})

	_, err := (&Compiler{}).CheckProgram(prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed AST")
}
