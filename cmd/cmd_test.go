package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	s := &streams{in: strings.NewReader(stdin), out: &out, err: &errOut}
	err := newCommand("test", s).Run(context.Background(), append([]string{"mcc"}, args...))
	return out.String(), errOut.String(), err
}

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.mc")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestCheckValidFile(t *testing.T) {
	path := writeSource(t, "void main() { print_int(read_int()); }")
	out, errOut, err := runCLI(t, "", "check", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, errOut)
}

func TestCheckReportsDiagnostics(t *testing.T) {
	path := writeSource(t, "void main() {\n  x = 1;\n  print_float(2);\n}\n")
	_, errOut, err := runCLI(t, "", "check", "-j", "2", path)
	require.Error(t, err)
	assert.Equal(t, path+": 2 semantic errors", err.Error())

	lines := strings.Split(strings.TrimSpace(errOut), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, path+`:2:3: error: Variable not declared "x"`, lines[0])
	assert.Equal(t, path+`:3:15: error: Wrong type of argument "print_float" (expected float, got int)`, lines[1])
}

func TestRootShorthand(t *testing.T) {
	path := writeSource(t, "int f() { return 1; }")
	_, errOut, err := runCLI(t, "", path)
	require.Error(t, err)
	assert.Equal(t, path+": 1 semantic error", err.Error())
	assert.Contains(t, errOut, "Main missing")
}

func TestCheckStdin(t *testing.T) {
	_, _, err := runCLI(t, "void main() {}", "check", "-")
	assert.NoError(t, err)
}

func TestCheckParseError(t *testing.T) {
	_, errOut, err := runCLI(t, "void main() {", "check", "-")
	require.Error(t, err)
	assert.Equal(t, "<stdin>:1:14: expected '}', got end of file", err.Error())
	assert.Empty(t, errOut)
}

func TestCheckWithoutFile(t *testing.T) {
	_, _, err := runCLI(t, "", "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage: mcc check")
}

func TestASTCommand(t *testing.T) {
	path := writeSource(t, "int one() { return 1; }\nvoid main() { print_int(one()); }\n")

	out, _, err := runCLI(t, "", "ast", "-f", "one", path)
	require.NoError(t, err)
	assert.Equal(t, `Function int @1:1
  Identifier one @1:5
  Parameters @1:8
  Compound @1:11
    Return @1:13
      Int 1 @1:20
`, out)

	out, _, err = runCLI(t, "", "ast", "--dot", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph \"AST\" {\n"))
	assert.Contains(t, out, `label="Call"`)

	_, _, err = runCLI(t, "", "ast", "-f", "missing", path)
	assert.EqualError(t, err, `function "missing" not found in `+path)
}

func TestASTCommandOutputFile(t *testing.T) {
	path := writeSource(t, "void main() {}")
	dest := filepath.Join(t.TempDir(), "tree.dot")
	out, _, err := runCLI(t, "", "ast", "--dot", "-o", dest, path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `label="Function void"`)
}

func TestSymbolsCommand(t *testing.T) {
	path := writeSource(t, "int add(int a, int b) { return a + b; }\nvoid main() { float[3] xs; { bool ok; } }\n")

	out, _, err := runCLI(t, "", "symbols", path)
	require.NoError(t, err)
	assert.Equal(t, `[global]
  int add(int, int)
  void main()
  [add]
    int a
    int b
    [add]
  [main]
    [main]
      float[3] xs
      [main]
        bool ok
`, out)

	out, _, err = runCLI(t, "", "symbols", "-f", "add", path)
	require.NoError(t, err)
	assert.Equal(t, "[add]\n  int a\n  int b\n  [add]\n", out)
}

func TestSymbolsCommandWithErrors(t *testing.T) {
	path := writeSource(t, "void main() { int x; int x; }")
	out, errOut, err := runCLI(t, "", "symbols", "--no-color", path)
	require.Error(t, err)
	assert.Contains(t, out, "int x")
	assert.Contains(t, errOut, "Variable already declared")
}

func TestDocCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "doc")
	require.NoError(t, err)
	assert.Contains(t, out, "Built-in functions:")
	assert.Contains(t, out, "Semantic errors:")

	out, _, err = runCLI(t, "", "doc", "print_nl")
	require.NoError(t, err)
	assert.Equal(t, "void print_nl()\n    Prints a newline.\n", out)

	_, _, err = runCLI(t, "", "doc", "nope")
	assert.EqualError(t, err, `unknown built-in "nope"`)

	path := writeSource(t, "// Squares n.\nint sq(int n) { return n * n; }\n")
	out, _, err = runCLI(t, "", "doc", path, "sq")
	require.NoError(t, err)
	assert.Equal(t, "int sq(int n)\n    Squares n.\n", out)

	out, _, err = runCLI(t, "", "doc", path)
	require.NoError(t, err)
	assert.Equal(t, "int sq(int n)\n    Squares n.\n", out)

	_, _, err = runCLI(t, "", "doc", path, "cube")
	assert.EqualError(t, err, path+`: no function "cube"`)
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, useColor(&buf, false), "buffers are not terminals")
	assert.False(t, useColor(os.Stderr, true))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, useColor(os.Stderr, false))
}
