// Package parser turns mC source text into an ast.Program.
//
// Lexing runs on modernc.org/scanner; the grammar is small enough for a
// hand-written recursive-descent parser on top. Source positions are tracked
// with modernc.org/token so that every node carries a 1-based line and
// column range.
package parser

import (
	"fmt"

	"github.com/FlorianKrull/mcc/ast"
	"modernc.org/scanner"
)

// Parser holds the state of a single parse. Use Parse for one-shot parsing.
type Parser struct {
	lx   *lexer
	fac  *ast.Factory
	tok  Token
	prev Token
}

// Parse parses an mC translation unit. name is used in positions and
// stored as the program's SourceFile. The first syntax error stops the
// parse and is returned as a scanner.ErrWithPosition.
func Parse(name string, src []byte) (*ast.Program, error) {
	p := &Parser{
		lx:  newLexer(name, src),
		fac: ast.NewFactory(),
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p.parseProgram(name)
}

// firstParseError extracts the first error from a scanner error list.
func firstParseError(err error) error {
	if el, ok := err.(scanner.ErrList); ok && len(el) > 0 {
		return el[0]
	}
	return err
}

func (p *Parser) next() error {
	tok := p.lx.next()
	if err := p.lx.Err(); err != nil {
		return firstParseError(err)
	}
	p.prev = p.tok
	p.tok = tok
	return nil
}

func (p *Parser) at(k TokKind) bool { return p.tok.Kind == k }

func (p *Parser) accept(k TokKind) (bool, error) {
	if !p.at(k) {
		return false, nil
	}
	return true, p.next()
}

func (p *Parser) expect(k TokKind) (Token, error) {
	if !p.at(k) {
		return p.tok, p.errAt(p.tok.Off, fmt.Sprintf("expected %s, got %s", k, p.describe(p.tok)))
	}
	t := p.tok
	return t, p.next()
}

func (p *Parser) describe(t Token) string {
	switch t.Kind {
	case TokEOF:
		return "end of file"
	case TokIdent, TokIntLit, TokFloatLit:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case TokStringLit:
		return "string literal"
	}
	return t.Kind.String()
}

// errAt records a syntax error at off and returns the first error
// recorded so far.
func (p *Parser) errAt(off int, msg string) error {
	p.lx.errAt(off, msg)
	return firstParseError(p.lx.Err())
}

// loc converts a byte range into an ast.Location. The end column points at
// the last byte of the range.
func (p *Parser) loc(start, end int) ast.Location {
	s := p.lx.position(start)
	last := end
	if end > start {
		last = end - 1
	}
	e := p.lx.position(last)
	return ast.Location{StartLine: s.Line, StartCol: s.Column, EndLine: e.Line, EndCol: e.Column}
}

// span is the location from start to the end of the previous token.
func (p *Parser) span(start int) ast.Location {
	return p.loc(start, p.prev.End)
}

func (p *Parser) parseProgram(name string) (*ast.Program, error) {
	var funcs []*ast.Function
	for !p.at(TokEOF) {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, fn)
	}
	return p.fac.Program(p.loc(0, p.tok.Off), name, funcs), nil
}

func typeOf(k TokKind) (ast.DataType, bool) {
	switch k {
	case TokInt:
		return ast.Int, true
	case TokFloat:
		return ast.Float, true
	case TokString:
		return ast.String, true
	case TokBool:
		return ast.Bool, true
	case TokVoid:
		return ast.Void, true
	}
	return ast.Invalid, false
}

func (p *Parser) parseType() (ast.DataType, error) {
	t, ok := typeOf(p.tok.Kind)
	if !ok {
		return ast.Invalid, p.errAt(p.tok.Off, fmt.Sprintf("expected type, got %s", p.describe(p.tok)))
	}
	return t, p.next()
}

func (p *Parser) parseIdent() (*ast.Identifier, error) {
	tok, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	return p.fac.Ident(p.loc(tok.Off, tok.End), tok.Text), nil
}

// function := type ident '(' [declaration {',' declaration}] ')' compound
func (p *Parser) parseFunction() (*ast.Function, error) {
	start := p.tok.Off
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	lparen, err := p.expect(TokLParen)
	if err != nil {
		return nil, err
	}
	var decls []*ast.Declaration
	if !p.at(TokRParen) {
		for {
			d, err := p.parseDeclaration()
			if err != nil {
				return nil, err
			}
			decls = append(decls, d)
			more, err := p.accept(TokComma)
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
		}
	}
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	params := p.fac.Params(p.span(lparen.Off), decls...)
	body, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	return p.fac.Function(p.span(start), ret, name, params, body), nil
}

// declaration := type ['[' literal ']'] ident | type ident '[' literal ']'
func (p *Parser) parseDeclaration() (*ast.Declaration, error) {
	start := p.tok.Off
	typeTok := p.tok
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if t == ast.Void {
		return nil, p.errAt(typeTok.Off, "void is not a valid variable type")
	}
	var size ast.Literal
	if p.at(TokLBracket) {
		if size, err = p.parseArraySize(); err != nil {
			return nil, err
		}
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if size == nil && p.at(TokLBracket) {
		if size, err = p.parseArraySize(); err != nil {
			return nil, err
		}
	}
	var d *ast.Declaration
	if size != nil {
		d = p.fac.ArrayDecl(p.span(start), t, size, name.Name)
	} else {
		d = p.fac.Decl(p.span(start), t, name.Name)
	}
	d.Ident = name
	return d, nil
}

// parseArraySize accepts any literal; non-int sizes are a semantic error.
func (p *Parser) parseArraySize() (ast.Literal, error) {
	if _, err := p.expect(TokLBracket); err != nil {
		return nil, err
	}
	var lit ast.Literal
	switch p.tok.Kind {
	case TokIntLit, TokFloatLit, TokStringLit, TokTrue, TokFalse:
		lit = p.literal(p.tok)
		if err := p.next(); err != nil {
			return nil, err
		}
	default:
		return nil, p.errAt(p.tok.Off, fmt.Sprintf("expected array size literal, got %s", p.describe(p.tok)))
	}
	if _, err := p.expect(TokRBracket); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) literal(t Token) ast.Literal {
	loc := p.loc(t.Off, t.End)
	switch t.Kind {
	case TokIntLit:
		return p.fac.Int(loc, t.Text)
	case TokFloatLit:
		return p.fac.Float(loc, t.Text)
	case TokStringLit:
		return p.fac.String(loc, t.Text)
	case TokTrue:
		return p.fac.Bool(loc, true)
	default:
		return p.fac.Bool(loc, false)
	}
}

func (p *Parser) parseCompound() (*ast.CompoundStmt, error) {
	lbrace, err := p.expect(TokLBrace)
	if err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !p.at(TokRBrace) {
		if p.at(TokEOF) {
			return nil, p.errAt(p.tok.Off, "expected '}', got end of file")
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s...)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p.fac.Compound(p.span(lbrace.Off), stmts...), nil
}

// parseStatement returns more than one statement only for initialized
// declarations, which expand into a declaration and an assignment.
func (p *Parser) parseStatement() ([]ast.Statement, error) {
	start := p.tok.Off
	switch p.tok.Kind {
	case TokLBrace:
		c, err := p.parseCompound()
		if err != nil {
			return nil, err
		}
		return []ast.Statement{c}, nil
	case TokIf:
		s, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		return []ast.Statement{s}, nil
	case TokWhile:
		s, err := p.parseWhile()
		if err != nil {
			return nil, err
		}
		return []ast.Statement{s}, nil
	case TokReturn:
		if err := p.next(); err != nil {
			return nil, err
		}
		var value ast.Expr
		if !p.at(TokSemi) {
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			value = v
		}
		if _, err := p.expect(TokSemi); err != nil {
			return nil, err
		}
		return []ast.Statement{p.fac.Return(p.span(start), value)}, nil
	case TokInt, TokFloat, TokString, TokBool, TokVoid:
		return p.parseDeclStmt()
	}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.at(TokAssign) {
		return p.parseAssign(start, e)
	}
	if _, err := p.expect(TokSemi); err != nil {
		return nil, err
	}
	return []ast.Statement{p.fac.ExprStmt(e)}, nil
}

func (p *Parser) parseDeclStmt() ([]ast.Statement, error) {
	start := p.tok.Off
	d, err := p.parseDeclaration()
	if err != nil {
		return nil, err
	}
	init, err := p.accept(TokAssign)
	if err != nil {
		return nil, err
	}
	if !init {
		if _, err := p.expect(TokSemi); err != nil {
			return nil, err
		}
		return []ast.Statement{p.fac.DeclStmt(d)}, nil
	}
	if d.IsArray() {
		return nil, p.errAt(p.prev.Off, "array declarations cannot be initialized")
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSemi); err != nil {
		return nil, err
	}
	return p.fac.DeclInit(p.span(start), d, value), nil
}

func (p *Parser) parseAssign(start int, target ast.Expr) ([]ast.Statement, error) {
	eq := p.tok
	if err := p.next(); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSemi); err != nil {
		return nil, err
	}
	loc := p.span(start)
	switch t := target.(type) {
	case *ast.Identifier:
		s := p.fac.Assign(loc, t.Name, value)
		s.Assign.Target = t
		return []ast.Statement{s}, nil
	case *ast.IndexExpr:
		s := p.fac.IndexAssign(loc, t.Array.Name, t.Index, value)
		s.Assign.Target = t.Array
		return []ast.Statement{s}, nil
	}
	return nil, p.errAt(eq.Off, "left side of assignment must be a variable or array element")
}

func (p *Parser) parseCond() (ast.Expr, error) {
	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseBody parses a single statement used as an if or while body. An
// initialized declaration there is wrapped in a block.
func (p *Parser) parseBody() (ast.Statement, error) {
	start := p.tok.Off
	stmts, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if len(stmts) == 1 {
		return stmts[0], nil
	}
	return p.fac.Compound(p.span(start), stmts...), nil
}

func (p *Parser) parseIf() (*ast.IfStmt, error) {
	start := p.tok.Off
	if err := p.next(); err != nil {
		return nil, err
	}
	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Statement
	hasElse, err := p.accept(TokElse)
	if err != nil {
		return nil, err
	}
	if hasElse {
		if elseStmt, err = p.parseBody(); err != nil {
			return nil, err
		}
	}
	return p.fac.If(p.span(start), cond, then, elseStmt), nil
}

func (p *Parser) parseWhile() (*ast.WhileStmt, error) {
	start := p.tok.Off
	if err := p.next(); err != nil {
		return nil, err
	}
	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return p.fac.While(p.span(start), cond, body), nil
}

// Binary operator precedence levels, lowest first.
type opEntry struct {
	tok TokKind
	op  ast.BinaryOp
}

var binaryLevels = [][]opEntry{
	{{TokOrOr, ast.OpOr}},
	{{TokAndAnd, ast.OpAnd}},
	{{TokEq, ast.OpEq}, {TokNotEq, ast.OpNotEq}},
	{{TokLess, ast.OpLess}, {TokLessEq, ast.OpLessEq}, {TokGreater, ast.OpGreater}, {TokGreaterEq, ast.OpGreaterEq}},
	{{TokPlus, ast.OpAdd}, {TokMinus, ast.OpSub}},
	{{TokStar, ast.OpMul}, {TokSlash, ast.OpDiv}},
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseBinary(0)
}

// parseBinary parses a left-associative chain at the given level.
func (p *Parser) parseBinary(level int) (ast.Expr, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := matchOp(binaryLevels[level], p.tok.Kind)
		if !ok {
			return left, nil
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = p.fac.Binary(op, left, right)
	}
}

func matchOp(level []opEntry, k TokKind) (ast.BinaryOp, bool) {
	for _, entry := range level {
		if entry.tok == k {
			return entry.op, true
		}
	}
	return 0, false
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	var op ast.UnaryOp
	switch p.tok.Kind {
	case TokNot:
		op = ast.OpNot
	case TokMinus:
		op = ast.OpNeg
	default:
		return p.parsePrimary()
	}
	start := p.tok.Off
	if err := p.next(); err != nil {
		return nil, err
	}
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return p.fac.Unary(p.span(start), op, operand), nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.tok
	switch tok.Kind {
	case TokIntLit, TokFloatLit, TokStringLit, TokTrue, TokFalse:
		lit := p.literal(tok)
		return lit, p.next()
	case TokLParen:
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return p.fac.Paren(p.span(tok.Off), inner), nil
	case TokIdent:
		ident, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		switch p.tok.Kind {
		case TokLParen:
			return p.parseCall(ident)
		case TokLBracket:
			if err := p.next(); err != nil {
				return nil, err
			}
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokRBracket); err != nil {
				return nil, err
			}
			e := p.fac.Index(p.span(tok.Off), ident.Name, index)
			e.Array = ident
			return e, nil
		}
		return ident, nil
	}
	return nil, p.errAt(tok.Off, fmt.Sprintf("expected expression, got %s", p.describe(tok)))
}

func (p *Parser) parseCall(name *ast.Identifier) (ast.Expr, error) {
	start := p.tok.Off
	if err := p.next(); err != nil {
		return nil, err
	}
	var args []ast.Expr
	if !p.at(TokRParen) {
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			more, err := p.accept(TokComma)
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
		}
	}
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	call := p.fac.Call(ast.Span(name.Loc, p.span(start)), name.Name, args...)
	call.Func = name
	call.Args.Loc = p.span(start)
	return call, nil
}
