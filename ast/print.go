package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PrintText writes an indented dump of n, one node per line.
func PrintText(w io.Writer, n Node) error {
	p := &textPrinter{w: w}
	v := &Visitor{UserData: p}
	v.Pre = labelCallbacks(func(n Node, label string, data any) {
		tp := data.(*textPrinter)
		tp.emit(label, n.Location())
		tp.depth++
	})
	v.Post = popCallbacks(func(data any) {
		data.(*textPrinter).depth--
	})
	Walk(n, v)
	return p.err
}

type textPrinter struct {
	w     io.Writer
	depth int
	err   error
}

func (p *textPrinter) emit(label string, loc Location) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s @%s\n", strings.Repeat("  ", p.depth), label, loc)
}

// PrintDot writes n as a Graphviz digraph.
func PrintDot(w io.Writer, n Node) error {
	p := &dotPrinter{w: w}
	p.printf("digraph \"AST\" {\n\tnodesep=0.6\n")
	v := &Visitor{UserData: p}
	v.Pre = labelCallbacks(func(n Node, label string, data any) {
		dp := data.(*dotPrinter)
		dp.next++
		id := dp.next
		dp.printf("\t%d [shape=box, label=%s];\n", id, strconv.Quote(label))
		if len(dp.stack) > 0 {
			dp.printf("\t%d -> %d;\n", dp.stack[len(dp.stack)-1], id)
		}
		dp.stack = append(dp.stack, id)
	})
	v.Post = popCallbacks(func(data any) {
		dp := data.(*dotPrinter)
		dp.stack = dp.stack[:len(dp.stack)-1]
	})
	Walk(n, v)
	p.printf("}\n")
	return p.err
}

type dotPrinter struct {
	w     io.Writer
	next  int
	stack []int
	err   error
}

func (p *dotPrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// labelCallbacks installs fn on every concrete node kind with a short label.
// Generic hooks stay nil so each node is reported exactly once.
func labelCallbacks(fn func(n Node, label string, data any)) Callbacks {
	return Callbacks{
		Program: func(p *Program, d any) { fn(p, "Program", d) },
		Function: func(f *Function, d any) {
			fn(f, "Function "+f.ReturnType.String(), d)
		},
		Parameters:  func(p *Parameters, d any) { fn(p, "Parameters", d) },
		Declaration: func(x *Declaration, d any) { fn(x, "Declaration "+x.Type.String(), d) },
		Assignment:  func(a *Assignment, d any) { fn(a, "Assignment", d) },
		Arguments:   func(a *Arguments, d any) { fn(a, "Arguments", d) },

		ExprStmt: func(s *ExprStmt, d any) { fn(s, "ExprStmt", d) },
		IfStmt: func(s *IfStmt, d any) {
			if s.Else != nil {
				fn(s, "IfElse", d)
				return
			}
			fn(s, "If", d)
		},
		WhileStmt:    func(s *WhileStmt, d any) { fn(s, "While", d) },
		DeclStmt:     func(s *DeclStmt, d any) { fn(s, "DeclStmt", d) },
		AssignStmt:   func(s *AssignStmt, d any) { fn(s, "AssignStmt", d) },
		CompoundStmt: func(s *CompoundStmt, d any) { fn(s, "Compound", d) },
		ReturnStmt:   func(s *ReturnStmt, d any) { fn(s, "Return", d) },

		Identifier: func(e *Identifier, d any) { fn(e, "Identifier "+e.Name, d) },
		CallExpr:   func(e *CallExpr, d any) { fn(e, "Call", d) },
		UnaryExpr:  func(e *UnaryExpr, d any) { fn(e, "Unary "+e.Op.String(), d) },
		BinaryExpr: func(e *BinaryExpr, d any) { fn(e, "Binary "+e.Op.String(), d) },
		ParenExpr:  func(e *ParenExpr, d any) { fn(e, "Paren", d) },
		IndexExpr:  func(e *IndexExpr, d any) { fn(e, "Index", d) },

		IntLiteral:    func(l *IntLiteral, d any) { fn(l, "Int "+l.Value, d) },
		FloatLiteral:  func(l *FloatLiteral, d any) { fn(l, "Float "+l.Value, d) },
		StringLiteral: func(l *StringLiteral, d any) { fn(l, "String "+strconv.Quote(l.Value), d) },
		BoolLiteral:   func(l *BoolLiteral, d any) { fn(l, "Bool "+strconv.FormatBool(l.Value), d) },
	}
}

// popCallbacks mirrors labelCallbacks for the post-order side.
func popCallbacks(fn func(data any)) Callbacks {
	return Callbacks{
		Program:     func(_ *Program, d any) { fn(d) },
		Function:    func(_ *Function, d any) { fn(d) },
		Parameters:  func(_ *Parameters, d any) { fn(d) },
		Declaration: func(_ *Declaration, d any) { fn(d) },
		Assignment:  func(_ *Assignment, d any) { fn(d) },
		Arguments:   func(_ *Arguments, d any) { fn(d) },

		ExprStmt:     func(_ *ExprStmt, d any) { fn(d) },
		IfStmt:       func(_ *IfStmt, d any) { fn(d) },
		WhileStmt:    func(_ *WhileStmt, d any) { fn(d) },
		DeclStmt:     func(_ *DeclStmt, d any) { fn(d) },
		AssignStmt:   func(_ *AssignStmt, d any) { fn(d) },
		CompoundStmt: func(_ *CompoundStmt, d any) { fn(d) },
		ReturnStmt:   func(_ *ReturnStmt, d any) { fn(d) },

		Identifier: func(_ *Identifier, d any) { fn(d) },
		CallExpr:   func(_ *CallExpr, d any) { fn(d) },
		UnaryExpr:  func(_ *UnaryExpr, d any) { fn(d) },
		BinaryExpr: func(_ *BinaryExpr, d any) { fn(d) },
		ParenExpr:  func(_ *ParenExpr, d any) { fn(d) },
		IndexExpr:  func(_ *IndexExpr, d any) { fn(d) },

		IntLiteral:    func(_ *IntLiteral, d any) { fn(d) },
		FloatLiteral:  func(_ *FloatLiteral, d any) { fn(d) },
		StringLiteral: func(_ *StringLiteral, d any) { fn(d) },
		BoolLiteral:   func(_ *BoolLiteral, d any) { fn(d) },
	}
}
