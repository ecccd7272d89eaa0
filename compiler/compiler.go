// Package compiler wires the front-end stages together: reading source,
// parsing it and running semantic analysis.
package compiler

import (
	"fmt"
	"io"
	"os"

	"github.com/FlorianKrull/mcc/ast"
	"github.com/FlorianKrull/mcc/parser"
	"github.com/FlorianKrull/mcc/sema"
	"github.com/FlorianKrull/mcc/symtab"
)

// StdinName is the path that selects standard input.
const StdinName = "-"

// Compiler orchestrates the front-end pipeline.
type Compiler struct {
	// Stdin is read when the path is "-". Defaults to os.Stdin.
	Stdin io.Reader
	// Jobs is the number of goroutines analyzing function bodies.
	Jobs int
}

// Result holds the outcome of a check.
type Result struct {
	Program     *ast.Program
	Scope       *symtab.Scope
	Diagnostics sema.Diagnostics
	SourceFile  string
}

// Err returns nil when the program is semantically valid. Otherwise it
// lists every diagnostic as file:line:col: message.
func (r *Result) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	return &CheckError{File: r.SourceFile, Diagnostics: r.Diagnostics}
}

// CheckError reports the semantic errors of one file.
type CheckError struct {
	File        string
	Diagnostics sema.Diagnostics
}

func (e *CheckError) Error() string {
	return e.Diagnostics.Format(e.File)
}

func (e *CheckError) Unwrap() error { return e.Diagnostics }

// ParseFile reads and parses an mC file. A path of "-" reads c.Stdin.
func (c *Compiler) ParseFile(path string) (*ast.Program, error) {
	src, name, err := c.read(path)
	if err != nil {
		return nil, err
	}
	return c.ParseSource(src, name)
}

// ParseSource parses raw mC source. The name is used in positions.
func (c *Compiler) ParseSource(src []byte, name string) (*ast.Program, error) {
	return parser.Parse(name, src)
}

// Check parses and validates an mC file. The returned error is non-nil
// only when the file cannot be read or parsed; semantic errors are in
// Result.Diagnostics.
func (c *Compiler) Check(path string) (*Result, error) {
	src, name, err := c.read(path)
	if err != nil {
		return nil, err
	}
	return c.CheckSource(src, name)
}

// CheckSource parses and validates raw mC source.
func (c *Compiler) CheckSource(src []byte, name string) (*Result, error) {
	prog, err := c.ParseSource(src, name)
	if err != nil {
		return nil, err
	}
	return c.CheckProgram(prog)
}

// CheckProgram validates an already parsed program. A structurally
// incomplete tree is reported as an error.
func (c *Compiler) CheckProgram(prog *ast.Program) (*Result, error) {
	check := sema.NewCheck(sema.WithJobs(c.Jobs))
	err := ast.CheckChain{ast.WellFormed(), check}.Run(prog)
	if check.Scope == nil {
		// stopped before semantic analysis
		return nil, err
	}
	return &Result{
		Program:     prog,
		Scope:       check.Scope,
		Diagnostics: check.Diagnostics,
		SourceFile:  prog.SourceFile,
	}, nil
}

func (c *Compiler) read(path string) ([]byte, string, error) {
	if path == StdinName {
		in := c.Stdin
		if in == nil {
			in = os.Stdin
		}
		src, err := io.ReadAll(in)
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		return src, "<stdin>", nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return src, path, nil
}
