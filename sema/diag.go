package sema

import (
	"fmt"
	"strings"

	"github.com/FlorianKrull/mcc/ast"
)

// Kind classifies a semantic error.
type Kind int

const (
	VariableAlreadyDeclared Kind = iota
	ArrayAlreadyDeclared
	FuncAlreadyDeclared
	FuncNotDeclared
	VariableNotDeclared
	WrongArgumentType
	WrongNumOfArguments
	ArraySizeDefinition
	ArrayOperations
	TypeAssignment
	MainMissing
	ConditionBoolExpected
	UnaryOpExpectedBool
	UnaryOpExpectedNumber
	BinaryOpHandsideSameType
	BinaryOpHandsideBoolType
	BinaryOpHandsideNumberType
	BinaryOpDivBy0
	InvalidReturnType
	NoReturnInNonVoidFunction
)

var kindInfo = [...]struct{ name, msg string }{
	VariableAlreadyDeclared:    {"VariableAlreadyDeclared", "Variable already declared"},
	ArrayAlreadyDeclared:       {"ArrayAlreadyDeclared", "Array already declared"},
	FuncAlreadyDeclared:        {"FuncAlreadyDeclared", "Function already declared"},
	FuncNotDeclared:            {"FuncNotDeclared", "Function not declared"},
	VariableNotDeclared:        {"VariableNotDeclared", "Variable not declared"},
	WrongArgumentType:          {"WrongArgumentType", "Wrong type of argument"},
	WrongNumOfArguments:        {"WrongNumOfArguments", "Wrong number of arguments"},
	ArraySizeDefinition:        {"ArraySizeDefinition", "Array size definition must be an int"},
	ArrayOperations:            {"ArrayOperations", "Arrays cannot be used as operands"},
	TypeAssignment:             {"TypeAssignment", "Wrong type assigned"},
	MainMissing:                {"MainMissing", "Main missing"},
	ConditionBoolExpected:      {"ConditionBoolExpected", "Condition must result in a bool"},
	UnaryOpExpectedBool:        {"UnaryOpExpectedBool", "Boolean expected"},
	UnaryOpExpectedNumber:      {"UnaryOpExpectedNumber", "Number type expected"},
	BinaryOpHandsideSameType:   {"BinaryOpHandsideSameType", "Both parts of binary operator must be of same type"},
	BinaryOpHandsideBoolType:   {"BinaryOpHandsideBoolType", "Bool expected in binary operator"},
	BinaryOpHandsideNumberType: {"BinaryOpHandsideNumberType", "Number type expected in binary operator"},
	BinaryOpDivBy0:             {"BinaryOpDivBy0", "Division by 0 not allowed"},
	InvalidReturnType:          {"InvalidReturnType", "Wrong type returned"},
	NoReturnInNonVoidFunction:  {"NoReturnInNonVoidFunction", "Missing return in non-void function"},
}

// String returns the taxonomy name, e.g. "MainMissing".
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindInfo) {
		return kindInfo[k].name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Message returns the human readable description.
func (k Kind) Message() string {
	if int(k) >= 0 && int(k) < len(kindInfo) {
		return kindInfo[k].msg
	}
	return "unknown semantic error"
}

// Diagnostic is one semantic error. Name is the identifier involved, if
// any. Expected and Actual are set when a type check failed.
type Diagnostic struct {
	Loc      ast.Location
	Kind     Kind
	Name     string
	Expected ast.DataType
	Actual   ast.DataType
}

// Message renders the diagnostic without its position.
func (d Diagnostic) Message() string {
	var b strings.Builder
	b.WriteString(d.Kind.Message())
	if d.Name != "" {
		fmt.Fprintf(&b, " %q", d.Name)
	}
	switch {
	case d.Expected != ast.Invalid && d.Actual != ast.Invalid:
		fmt.Fprintf(&b, " (expected %s, got %s)", d.Expected, d.Actual)
	case d.Actual != ast.Invalid:
		fmt.Fprintf(&b, " (got %s)", d.Actual)
	}
	return b.String()
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Loc, d.Message())
}

// Format renders file:line:col: message.
func (d Diagnostic) Format(file string) string {
	if file == "" {
		return d.Error()
	}
	return fmt.Sprintf("%s:%s: %s", file, d.Loc, d.Message())
}

// Diagnostics is an ordered list of semantic errors usable as an error.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}

// Format renders every diagnostic on its own line prefixed with file.
func (ds Diagnostics) Format(file string) string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.Format(file)
	}
	return strings.Join(lines, "\n")
}

// Kinds returns the kind of each diagnostic, in order.
func (ds Diagnostics) Kinds() []Kind {
	out := make([]Kind, len(ds))
	for i, d := range ds {
		out[i] = d.Kind
	}
	return out
}

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	out := make([]Kind, len(kindInfo))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}
