package ast

import "fmt"

// Location is a source range. Lines and columns are 1-based.
type Location struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.StartLine, l.StartCol)
}

// Span returns a location covering a through b.
func Span(a, b Location) Location {
	return Location{StartLine: a.StartLine, StartCol: a.StartCol, EndLine: b.EndLine, EndCol: b.EndCol}
}

// DataType is an mC type.
type DataType int

const (
	// Invalid means the type could not be determined. The parser never
	// produces it; the validator uses it to stop cascading diagnostics.
	Invalid DataType = iota
	Int
	Float
	String
	Bool
	Void
)

func (t DataType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Void:
		return "void"
	default:
		return "invalid"
	}
}

// IsNumeric returns true for int and float.
func (t DataType) IsNumeric() bool {
	return t == Int || t == Float
}

// BinaryOp is a binary operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpEq
	OpNotEq
	OpAnd
	OpOr
)

var binaryOpNames = [...]string{
	OpAdd:       "+",
	OpSub:       "-",
	OpMul:       "*",
	OpDiv:       "/",
	OpLess:      "<",
	OpLessEq:    "<=",
	OpGreater:   ">",
	OpGreaterEq: ">=",
	OpEq:        "==",
	OpNotEq:     "!=",
	OpAnd:       "&&",
	OpOr:        "||",
}

func (op BinaryOp) String() string {
	if op >= 0 && int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// IsArithmetic reports + - * /.
func (op BinaryOp) IsArithmetic() bool { return op >= OpAdd && op <= OpDiv }

// IsComparison reports < <= > >=.
func (op BinaryOp) IsComparison() bool { return op >= OpLess && op <= OpGreaterEq }

// IsEquality reports == and !=.
func (op BinaryOp) IsEquality() bool { return op == OpEq || op == OpNotEq }

// IsLogical reports && and ||.
func (op BinaryOp) IsLogical() bool { return op == OpAnd || op == OpOr }

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "!"
	case OpNeg:
		return "-"
	default:
		return "?"
	}
}
