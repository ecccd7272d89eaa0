// Package doc extracts documentation from mC source files.
//
// The extraction rule is simple: consecutive // lines immediately before a
// function definition (no blank line gap) are attached as the doc comment
// for that function. A leading comment block followed by a blank line is the
// file doc.
package doc

import (
	"fmt"
	"os"
	"strings"

	"github.com/FlorianKrull/mcc/ast"
	"github.com/FlorianKrull/mcc/parser"
	"github.com/FlorianKrull/mcc/symtab"
)

// FileDoc holds all extracted documentation for a single mC file.
type FileDoc struct {
	Path  string
	Doc   string
	Funcs []FuncDoc
}

// FuncDoc describes a documented function.
type FuncDoc struct {
	Name      string
	Signature string // e.g. "int add(int a, int b)"
	Doc       string
	Line      int // 1-based line number of the definition
}

// ExtractFile reads an mC file and extracts all documentation.
func ExtractFile(path string) (*FileDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Extract(data, path)
}

// Extract parses raw mC source and returns structured documentation.
// Source that does not parse is an error.
func Extract(src []byte, path string) (*FileDoc, error) {
	prog, err := parser.Parse(path, src)
	if err != nil {
		return nil, err
	}
	return FromProgram(prog, src), nil
}

// FromProgram collects documentation for an already parsed program whose
// text is src.
func FromProgram(prog *ast.Program, src []byte) *FileDoc {
	lines := strings.Split(string(src), "\n")
	fd := &FileDoc{Path: prog.SourceFile, Doc: fileDoc(lines)}
	for _, fn := range prog.Functions {
		if fn.Name == nil {
			continue
		}
		line := fn.Loc.StartLine
		fd.Funcs = append(fd.Funcs, FuncDoc{
			Name:      fn.Name.Name,
			Signature: Signature(fn),
			Doc:       commentAbove(lines, line-1),
			Line:      line,
		})
	}
	return fd
}

// fileDoc returns the first comment block when a blank line separates it
// from the code below.
func fileDoc(lines []string) string {
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	var block []string
	for ; i < len(lines); i++ {
		text, ok := commentText(lines[i])
		if !ok {
			break
		}
		block = append(block, text)
	}
	if len(block) == 0 || i < len(lines) && strings.TrimSpace(lines[i]) != "" {
		return ""
	}
	return strings.Join(block, "\n")
}

// commentAbove collects the // block ending right above the 0-based line
// index idx.
func commentAbove(lines []string, idx int) string {
	start := idx
	for start > 0 {
		if _, ok := commentText(lines[start-1]); !ok {
			break
		}
		start--
	}
	if start == idx {
		return ""
	}
	block := make([]string, 0, idx-start)
	for _, l := range lines[start:idx] {
		text, _ := commentText(l)
		block = append(block, text)
	}
	return strings.Join(block, "\n")
}

func commentText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return "", false
	}
	return strings.TrimPrefix(trimmed[2:], " "), true
}

// Signature renders a function header with parameter names.
func Signature(fn *ast.Function) string {
	var params []string
	if fn.Params != nil {
		for _, p := range fn.Params.List {
			params = append(params, declText(p))
		}
	}
	name := ""
	if fn.Name != nil {
		name = fn.Name.Name
	}
	return fmt.Sprintf("%s %s(%s)", fn.ReturnType, name, strings.Join(params, ", "))
}

func declText(d *ast.Declaration) string {
	name := ""
	if d.Ident != nil {
		name = d.Ident.Name
	}
	if !d.IsArray() {
		return fmt.Sprintf("%s %s", d.Type, name)
	}
	size := "?"
	if lit, ok := d.Size.(*ast.IntLiteral); ok {
		size = lit.Value
	}
	return fmt.Sprintf("%s[%s] %s", d.Type, size, name)
}

var builtinDocs = map[string]string{
	"print_nl":    "Prints a newline.",
	"print":       "Prints a string without a trailing newline.",
	"print_int":   "Prints an int.",
	"print_float": "Prints a float.",
	"read_int":    "Reads an int from standard input.",
	"read_float":  "Reads a float from standard input.",
}

// LookupSymbol finds a function by name in fd, falling back to the
// built-in functions. fd may be nil.
func LookupSymbol(fd *FileDoc, name string) (doc string, signature string, found bool) {
	if fd != nil {
		for _, f := range fd.Funcs {
			if f.Name == name {
				return f.Doc, f.Signature, true
			}
		}
	}
	for _, b := range symtab.Builtins() {
		if b.Name == name {
			return builtinDocs[name], b.String(), true
		}
	}
	return "", "", false
}
