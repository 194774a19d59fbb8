// Copyright © 2025 The pysca authors

// Package lexer tokenizes python source for the pysca parser.  The lexer
// follows python's tokenizer model: physical lines are joined into logical
// lines (implicitly inside brackets, explicitly with a trailing backslash),
// logical lines end with a NEWLINE token, and block structure is reported
// with INDENT and DEDENT tokens driven by an indentation stack.  Comments
// and blank lines produce no tokens.
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/luthersystems/pysca/parser/token"
)

// tabSize is the tab stop width used when measuring indentation, matching
// the python tokenizer's default.
const tabSize = 8

// operators lists all multi-rune operators longest first so that greedy
// matching always takes the longest form, followed by the single-rune
// operators and delimiters.
var operators = []string{
	"**=", "//=", ">>=", "<<=", "...",
	"==", "!=", ">=", "<=", "->", ":=",
	"+=", "-=", "*=", "/=", "%=", "@=", "&=", "|=", "^=",
	"**", "//", "<<", ">>",
	"+", "-", "*", "/", "%", "@", "&", "|", "^", "~", "<", ">", "=",
	"(", ")", "[", "]", "{", "}", ",", ":", ".", ";",
}

type Lexer struct {
	s       *token.Scanner
	pending []*token.Token // queued DEDENT tokens
	indents []int          // indentation level stack; always starts with 0
	depth   int            // open bracket nesting

	atLineStart bool
	lastType    token.Type // type of the last token returned
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{
		s:           s,
		indents:     []int{0},
		atLineStart: true,
		lastType:    token.NEWLINE,
	}
}

// ReadToken returns the next token in the stream.  At the end of input the
// lexer emits a final NEWLINE if the last logical line lacks one, a DEDENT
// for every open indentation level, and then EOF forever.  Lexical errors
// are reported as ERROR tokens carrying a message and source location.
func (lex *Lexer) ReadToken() *token.Token {
	tok := lex.read()
	lex.lastType = tok.Type
	return tok
}

func (lex *Lexer) read() *token.Token {
	if len(lex.pending) > 0 {
		return lex.popPending()
	}
	if lex.atLineStart && lex.depth == 0 {
		if tok := lex.lineStart(); tok != nil {
			return tok
		}
		if len(lex.pending) > 0 {
			return lex.popPending()
		}
	}
	for {
		lex.skipSpace()
		c, ok := lex.s.Peek()
		if !ok {
			return lex.eof()
		}
		switch {
		case c == '#':
			lex.s.AcceptSeq(func(r rune) bool { return r != '\n' })
			lex.s.Ignore()
		case c == '\n' || c == '\r':
			lex.s.AcceptRune('\r')
			lex.s.AcceptRune('\n')
			if lex.depth > 0 {
				// Implicit line joining inside brackets.
				lex.s.Ignore()
				continue
			}
			lex.atLineStart = true
			return lex.s.EmitToken(token.NEWLINE)
		case c == '\\':
			lex.s.ScanRune()
			lex.s.AcceptRune('\r')
			if !lex.s.AcceptRune('\n') {
				return lex.errorf("unexpected character after line continuation character")
			}
			lex.s.Ignore()
		case c == '\'' || c == '"':
			return lex.readString()
		case isIdentStart(c):
			return lex.readName()
		case unicode.IsDigit(c):
			lex.s.ScanRune()
			return lex.readNumber()
		case c == '.' && lex.peekIsDigit(1):
			lex.s.ScanRune()
			return lex.readNumber()
		default:
			return lex.readOperator(c)
		}
	}
}

func (lex *Lexer) popPending() *token.Token {
	tok := lex.pending[0]
	lex.pending = lex.pending[1:]
	return tok
}

// lineStart measures indentation at the start of a logical line, skipping
// blank and comment-only lines entirely.  It returns an INDENT or ERROR
// token directly, queues DEDENT tokens on lex.pending, and returns nil when
// the indentation level is unchanged (or at EOF).
func (lex *Lexer) lineStart() *token.Token {
	for {
		width := 0
		for {
			c, ok := lex.s.Peek()
			if !ok {
				break
			}
			switch c {
			case ' ':
				width++
			case '\t':
				width += tabSize - width%tabSize
			case '\f':
				width = 0
			default:
				goto measured
			}
			lex.s.ScanRune()
		}
	measured:
		lex.s.Ignore()
		c, ok := lex.s.Peek()
		if !ok {
			lex.atLineStart = false
			return nil
		}
		if c == '#' {
			lex.s.AcceptSeq(func(r rune) bool { return r != '\n' })
			lex.s.Ignore()
			continue
		}
		if c == '\n' || c == '\r' {
			lex.s.AcceptRune('\r')
			lex.s.AcceptRune('\n')
			lex.s.Ignore()
			continue
		}

		lex.atLineStart = false
		top := lex.indents[len(lex.indents)-1]
		switch {
		case width == top:
			return nil
		case width > top:
			lex.indents = append(lex.indents, width)
			return &token.Token{Type: token.INDENT, Source: lex.s.Loc()}
		default:
			for len(lex.indents) > 1 && lex.indents[len(lex.indents)-1] > width {
				lex.indents = lex.indents[:len(lex.indents)-1]
				lex.pending = append(lex.pending, &token.Token{Type: token.DEDENT, Source: lex.s.Loc()})
			}
			if lex.indents[len(lex.indents)-1] != width {
				return lex.errorf("unindent does not match any outer indentation level")
			}
			return nil
		}
	}
}

// eof emits the closing token sequence: a final NEWLINE when the last
// logical line had content, then one DEDENT per open indentation level,
// then EOF.
func (lex *Lexer) eof() *token.Token {
	if lex.depth > 0 {
		return lex.errorf("unexpected EOF inside brackets")
	}
	switch lex.lastType {
	case token.NEWLINE, token.INDENT, token.DEDENT, token.EOF, token.ERROR:
	default:
		return &token.Token{Type: token.NEWLINE, Source: lex.s.Loc()}
	}
	if len(lex.indents) > 1 {
		lex.indents = lex.indents[:len(lex.indents)-1]
		return &token.Token{Type: token.DEDENT, Source: lex.s.Loc()}
	}
	return &token.Token{Type: token.EOF, Source: lex.s.Loc()}
}

func (lex *Lexer) skipSpace() {
	lex.s.AcceptSeq(func(r rune) bool { return r == ' ' || r == '\t' || r == '\v' || r == '\f' })
	lex.s.Ignore()
}

// readName scans an identifier or keyword.  A short all-prefix identifier
// (r, b, u, f and two-letter combinations) immediately followed by a quote
// introduces a prefixed string literal instead.
func (lex *Lexer) readName() *token.Token {
	lex.s.AcceptSeq(isIdent)
	if isStringPrefix(lex.s.Text()) {
		if c, ok := lex.s.Peek(); ok && (c == '\'' || c == '"') {
			return lex.readString()
		}
	}
	return lex.s.EmitToken(token.NAME)
}

func isStringPrefix(text string) bool {
	if len(text) == 0 || len(text) > 2 {
		return false
	}
	for _, c := range text {
		if !strings.ContainsRune("rRbBuUfF", c) {
			return false
		}
	}
	return true
}

// readString scans a string literal.  The opening quote has not been
// consumed yet; any string prefix letters are already part of the current
// token text.  Triple-quoted literals may span physical lines.
func (lex *Lexer) readString() *token.Token {
	q, _ := lex.s.ScanRune()
	quote := string(q)
	if lex.s.AcceptString(quote + quote) {
		closer := quote + quote + quote
		for {
			if lex.s.AcceptString(closer) {
				return lex.s.EmitToken(token.STRING)
			}
			c, ok := lex.s.ScanRune()
			if !ok {
				return lex.errorf("unterminated triple-quoted string literal")
			}
			if c == '\\' {
				lex.s.ScanRune()
			}
		}
	}
	for {
		c, ok := lex.s.Peek()
		if !ok {
			return lex.errorf("unterminated string literal")
		}
		if c == '\n' || c == '\r' {
			return lex.errorf("EOL while scanning string literal")
		}
		lex.s.ScanRune()
		if c == q {
			return lex.s.EmitToken(token.STRING)
		}
		if c == '\\' {
			if _, ok := lex.s.ScanRune(); !ok {
				return lex.errorf("unterminated string literal")
			}
		}
	}
}

// readNumber scans a numeric literal.  The first rune has already been
// consumed.  The scan is deliberately loose (hex, octal, binary, float,
// exponent, imaginary suffix, and underscores all pass); malformed numbers
// do not affect the facts pysca extracts.
func (lex *Lexer) readNumber() *token.Token {
	for {
		c, ok := lex.s.Peek()
		if !ok {
			break
		}
		if c == 'e' || c == 'E' {
			if sign, ok := lex.s.PeekAhead(1); ok && (sign == '+' || sign == '-') {
				if digit, ok := lex.s.PeekAhead(2); ok && unicode.IsDigit(digit) {
					lex.s.ScanRune()
					lex.s.ScanRune()
					continue
				}
			}
		}
		if !isIdent(c) && c != '.' {
			break
		}
		lex.s.ScanRune()
	}
	return lex.s.EmitToken(token.NUMBER)
}

func (lex *Lexer) readOperator(c rune) *token.Token {
	for _, op := range operators {
		if !lex.s.AcceptString(op) {
			continue
		}
		switch op {
		case "(", "[", "{":
			lex.depth++
		case ")", "]", "}":
			lex.depth--
			if lex.depth < 0 {
				return lex.errorf("unmatched %q", op)
			}
		}
		return lex.s.EmitToken(token.OP)
	}
	return lex.errorf("unexpected character %q", c)
}

func (lex *Lexer) peekIsDigit(n int) bool {
	c, ok := lex.s.PeekAhead(n)
	return ok && unicode.IsDigit(c)
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return &token.Token{
		Type:   token.ERROR,
		Text:   fmt.Sprintf(format, v...),
		Source: lex.s.LocStart(),
	}
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdent(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}
