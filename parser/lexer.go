package parser

import (
	"bytes"
	"fmt"
	gotoken "go/token"

	"modernc.org/scanner"
	"modernc.org/token"
)

// TokKind identifies a lexical token.
type TokKind int

const (
	TokEOF TokKind = iota
	TokIdent
	TokIntLit
	TokFloatLit
	TokStringLit

	// keywords
	TokInt
	TokFloat
	TokString
	TokBool
	TokVoid
	TokIf
	TokElse
	TokWhile
	TokReturn
	TokTrue
	TokFalse

	// punctuation and operators
	TokLParen
	TokRParen
	TokLBrace
	TokRBrace
	TokLBracket
	TokRBracket
	TokComma
	TokSemi
	TokAssign
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokNot
	TokLess
	TokLessEq
	TokGreater
	TokGreaterEq
	TokEq
	TokNotEq
	TokAndAnd
	TokOrOr

	// TokError marks bytes that could not be lexed. The error itself is in
	// the scanner's error list.
	TokError
)

var tokNames = map[TokKind]string{
	TokEOF:       "end of file",
	TokIdent:     "identifier",
	TokIntLit:    "int literal",
	TokFloatLit:  "float literal",
	TokStringLit: "string literal",
	TokLParen:    "'('",
	TokRParen:    "')'",
	TokLBrace:    "'{'",
	TokRBrace:    "'}'",
	TokLBracket:  "'['",
	TokRBracket:  "']'",
	TokComma:     "','",
	TokSemi:      "';'",
	TokAssign:    "'='",
	TokPlus:      "'+'",
	TokMinus:     "'-'",
	TokStar:      "'*'",
	TokSlash:     "'/'",
	TokNot:       "'!'",
	TokLess:      "'<'",
	TokLessEq:    "'<='",
	TokGreater:   "'>'",
	TokGreaterEq: "'>='",
	TokEq:        "'=='",
	TokNotEq:     "'!='",
	TokAndAnd:    "'&&'",
	TokOrOr:      "'||'",
	TokError:     "invalid token",
}

var keywords = map[string]TokKind{
	"int":    TokInt,
	"float":  TokFloat,
	"string": TokString,
	"bool":   TokBool,
	"void":   TokVoid,
	"if":     TokIf,
	"else":   TokElse,
	"while":  TokWhile,
	"return": TokReturn,
	"true":   TokTrue,
	"false":  TokFalse,
}

func (k TokKind) String() string {
	if s, ok := tokNames[k]; ok {
		return s
	}
	for word, kw := range keywords {
		if kw == k {
			return "'" + word + "'"
		}
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// Token is a lexeme with its byte range in the source.
type Token struct {
	Kind TokKind
	Text string // string literals without their quotes
	Off  int    // start offset
	End  int    // offset one past the last byte
}

// lexer drives a modernc.org/scanner Scanner over mC source. Whitespace and
// comments (/* ... */ and // ...) are separators; every other lexeme is a
// token whose Ch is its TokKind. Lexical errors go to the scanner's error
// list. Line and column information comes from file, which knows every line
// start up front.
type lexer struct {
	*scanner.Scanner
	file *token.File
	src  []byte
	off  int
}

func newLexer(name string, src []byte) *lexer {
	lx := &lexer{file: token.NewFile(name, len(src)), src: src}
	lx.file.SetLinesForContent(src)
	lx.Scanner = scanner.NewScanner(name, src, lx.scanSep, lx.scanSrc)
	return lx
}

// next scans the next token. At the end of input it keeps returning
// TokEOF.
func (lx *lexer) next() Token {
	t := lx.Scan()
	text := t.Src()
	off := t.Position().Offset
	tok := Token{Kind: TokKind(t.Ch), Text: text, Off: off, End: off + len(text)}
	if tok.Kind == TokStringLit {
		tok.Text = text[1 : len(text)-1]
	}
	return tok
}

// position maps a byte offset to its file, line and column.
func (lx *lexer) position(off int) gotoken.Position {
	return gotoken.Position(lx.file.Position(lx.file.Pos(off)))
}

func (lx *lexer) errAt(off int, msg string) {
	lx.AddErr(lx.position(off), msg)
}

func (lx *lexer) peek(k int) byte {
	if lx.off+k >= len(lx.src) {
		return 0
	}
	return lx.src[lx.off+k]
}

// scanSep consumes whitespace and comments and reports their length.
func (lx *lexer) scanSep() int {
	start := lx.off
	for lx.off < len(lx.src) {
		ch := lx.src[lx.off]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.off++
		case ch == '/' && lx.peek(1) == '/':
			for lx.off < len(lx.src) && lx.src[lx.off] != '\n' {
				lx.off++
			}
		case ch == '/' && lx.peek(1) == '*':
			end := bytes.Index(lx.src[lx.off+2:], []byte("*/"))
			if end < 0 {
				lx.errAt(lx.off, "unterminated comment")
				lx.off = len(lx.src)
				return lx.off - start
			}
			lx.off += end + 4
		default:
			return lx.off - start
		}
	}
	return lx.off - start
}

// scanSrc consumes one token and reports its length and kind. A zero
// length means end of input.
func (lx *lexer) scanSrc() (int, rune) {
	start := lx.off
	kind := lx.token()
	return lx.off - start, rune(kind)
}

func (lx *lexer) token() TokKind {
	if lx.off >= len(lx.src) {
		return TokEOF
	}
	start := lx.off
	ch := lx.src[lx.off]
	switch {
	case isLetter(ch):
		for lx.off < len(lx.src) && (isLetter(lx.src[lx.off]) || isDigit(lx.src[lx.off])) {
			lx.off++
		}
		if kw, ok := keywords[string(lx.src[start:lx.off])]; ok {
			return kw
		}
		return TokIdent
	case isDigit(ch):
		return lx.number()
	case ch == '"':
		return lx.stringLit()
	}

	two := func(second byte, withKind, without TokKind) TokKind {
		if lx.peek(1) == second {
			lx.off += 2
			return withKind
		}
		lx.off++
		return without
	}

	switch ch {
	case '=':
		return two('=', TokEq, TokAssign)
	case '!':
		return two('=', TokNotEq, TokNot)
	case '<':
		return two('=', TokLessEq, TokLess)
	case '>':
		return two('=', TokGreaterEq, TokGreater)
	case '&':
		if lx.peek(1) == '&' {
			lx.off += 2
			return TokAndAnd
		}
	case '|':
		if lx.peek(1) == '|' {
			lx.off += 2
			return TokOrOr
		}
	}
	if kind, ok := singles[ch]; ok {
		lx.off++
		return kind
	}
	lx.errAt(start, fmt.Sprintf("unexpected character %q", ch))
	lx.off++
	return TokError
}

var singles = map[byte]TokKind{
	'(': TokLParen,
	')': TokRParen,
	'{': TokLBrace,
	'}': TokRBrace,
	'[': TokLBracket,
	']': TokRBracket,
	',': TokComma,
	';': TokSemi,
	'+': TokPlus,
	'-': TokMinus,
	'*': TokStar,
	'/': TokSlash,
}

// number scans digits, optionally followed by '.' and more digits.
func (lx *lexer) number() TokKind {
	lx.digits()
	kind := TokIntLit
	if lx.peek(0) == '.' {
		if !isDigit(lx.peek(1)) {
			lx.errAt(lx.off, "malformed float literal")
			lx.off++
			return TokError
		}
		lx.off++
		lx.digits()
		kind = TokFloatLit
	}
	if isLetter(lx.peek(0)) {
		lx.errAt(lx.off, "malformed number literal")
		for isLetter(lx.peek(0)) || isDigit(lx.peek(0)) {
			lx.off++
		}
		return TokError
	}
	return kind
}

func (lx *lexer) digits() {
	for lx.off < len(lx.src) && isDigit(lx.src[lx.off]) {
		lx.off++
	}
}

// stringLit scans a double-quoted string on a single line. mC has no
// escape sequences.
func (lx *lexer) stringLit() TokKind {
	start := lx.off
	lx.off++
	for lx.off < len(lx.src) && lx.src[lx.off] != '\n' {
		if lx.src[lx.off] == '"' {
			lx.off++
			return TokStringLit
		}
		lx.off++
	}
	lx.errAt(start, "unterminated string literal")
	return TokError
}

func isLetter(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
