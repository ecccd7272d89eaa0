// Package symtab implements the scoped symbol table used by semantic
// analysis: a tree of scopes holding variables, arrays and functions.
package symtab

import (
	"fmt"
	"strings"

	"github.com/FlorianKrull/mcc/ast"
)

// Symbol is a declared name. Symbols are immutable once created.
type Symbol interface {
	symbol()
	// SymbolName returns the declared name.
	SymbolName() string
	// DataType is the variable type, the array element type or the
	// function return type.
	DataType() ast.DataType
	String() string
}

// Variable is a scalar variable or parameter.
type Variable struct {
	Name string
	Type ast.DataType
}

func (v *Variable) symbol()                {}
func (v *Variable) SymbolName() string     { return v.Name }
func (v *Variable) DataType() ast.DataType { return v.Type }
func (v *Variable) String() string         { return v.Type.String() + " " + v.Name }

// Array is a fixed-size array variable or parameter.
type Array struct {
	Name string
	Elem ast.DataType
	Size int64
}

func (a *Array) symbol()                {}
func (a *Array) SymbolName() string     { return a.Name }
func (a *Array) DataType() ast.DataType { return a.Elem }
func (a *Array) String() string         { return fmt.Sprintf("%s[%d] %s", a.Elem, a.Size, a.Name) }

// Function is a user-defined or built-in function. ArrayParams runs
// parallel to Params and marks array parameters; nil means all scalars.
type Function struct {
	Name        string
	Return      ast.DataType
	Params      []ast.DataType
	ArrayParams []bool
	Builtin     bool
}

func (f *Function) symbol()                {}
func (f *Function) SymbolName() string     { return f.Name }
func (f *Function) DataType() ast.DataType { return f.Return }

func (f *Function) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
		if f.IsArrayParam(i) {
			params[i] += "[]"
		}
	}
	return fmt.Sprintf("%s %s(%s)", f.Return, f.Name, strings.Join(params, ", "))
}

// IsArrayParam reports whether parameter i takes a whole array.
func (f *Function) IsArrayParam(i int) bool {
	return i < len(f.ArrayParams) && f.ArrayParams[i]
}

// builtins are always-available I/O functions.
var builtins = []*Function{
	{Name: "print_nl", Return: ast.Void, Builtin: true},
	{Name: "print", Return: ast.Void, Params: []ast.DataType{ast.String}, Builtin: true},
	{Name: "print_int", Return: ast.Void, Params: []ast.DataType{ast.Int}, Builtin: true},
	{Name: "print_float", Return: ast.Void, Params: []ast.DataType{ast.Float}, Builtin: true},
	{Name: "read_int", Return: ast.Int, Builtin: true},
	{Name: "read_float", Return: ast.Float, Builtin: true},
}

// Builtins returns fresh copies of the built-in function symbols in
// registration order.
func Builtins() []*Function {
	out := make([]*Function, len(builtins))
	for i, b := range builtins {
		fn := *b
		fn.Params = append([]ast.DataType(nil), b.Params...)
		out[i] = &fn
	}
	return out
}
