// Copyright © 2025 The pysca authors

// Package pyparse parses python source into the pyast fact tree.
//
// The parser is a recursive-descent pass over the lexer's token stream.  It
// fully understands def/class headers and assignment statements, and treats
// every other compound statement generically: the header is skipped up to
// its colon and the suite is parsed recursively so that nested definitions
// and assignments are always found.  Expression structure beyond parameter
// defaults is not retained.
package pyparse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/luthersystems/pysca/parser/lexer"
	"github.com/luthersystems/pysca/parser/pyast"
	"github.com/luthersystems/pysca/parser/token"
)

// compoundKeywords are statement keywords that introduce a skipped header
// and a parsed suite.  Soft keywords (match, case) are not listed; they are
// recognized structurally by the indented block following their line.
var compoundKeywords = map[string]bool{
	"if":      true,
	"elif":    true,
	"else":    true,
	"while":   true,
	"for":     true,
	"try":     true,
	"except":  true,
	"finally": true,
	"with":    true,
}

// Parse tokenizes and parses source, returning the module tree.  Errors
// are *token.LocationError values naming the offending source position.
func Parse(filename string, src []byte) (*pyast.Module, error) {
	p := New(lexer.New(token.NewScanner(filename, src)))
	return p.ParseModule()
}

type Parser struct {
	lex *lexer.Lexer
	tok *token.Token
	err error
}

func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

// ParseModule parses the whole token stream.
func (p *Parser) ParseModule() (*pyast.Module, error) {
	p.next()
	body, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != token.EOF {
		return nil, p.errorf(p.tok.Source, "unexpected %s", describe(p.tok))
	}
	return &pyast.Module{Body: body}, nil
}

// next advances the token stream.  An ERROR token latches p.err so that
// every parsing loop unwinds promptly.
func (p *Parser) next() {
	if p.err != nil {
		return
	}
	p.tok = p.lex.ReadToken()
	if p.tok.Type == token.ERROR {
		p.err = &token.LocationError{Err: errors.New(p.tok.Text), Source: p.tok.Source}
	}
}

// parseStatements parses statements until a DEDENT or EOF, leaving the
// terminating token current.
func (p *Parser) parseStatements() ([]pyast.Stmt, error) {
	var body []pyast.Stmt
	for {
		if p.err != nil {
			return nil, p.err
		}
		switch p.tok.Type {
		case token.EOF, token.DEDENT:
			return body, nil
		case token.NEWLINE:
			p.next()
			continue
		case token.INDENT:
			return nil, p.errorf(p.tok.Source, "unexpected indent")
		}
		stmts, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmts...)
	}
}

func (p *Parser) parseStatement() ([]pyast.Stmt, error) {
	if p.tok.Type == token.NAME {
		switch text := p.tok.Text; {
		case text == "def":
			s, err := p.parseFuncDef(false, p.tok.Source)
			if err != nil {
				return nil, err
			}
			return []pyast.Stmt{s}, nil
		case text == "class":
			s, err := p.parseClassDef()
			if err != nil {
				return nil, err
			}
			return []pyast.Stmt{s}, nil
		case text == "async":
			start := p.tok.Source
			p.next()
			if p.tok.Type == token.NAME && p.tok.Text == "def" {
				s, err := p.parseFuncDef(true, start)
				if err != nil {
					return nil, err
				}
				return []pyast.Stmt{s}, nil
			}
			if p.tok.Type == token.NAME && (p.tok.Text == "for" || p.tok.Text == "with") {
				return p.parseCompound()
			}
			return nil, p.errorf(p.tok.Source, "expected def, for, or with after async")
		case compoundKeywords[text]:
			return p.parseCompound()
		}
	}
	if p.isOp("@") {
		// Decorator lines contribute no facts; the decorated definition's
		// location is its own def/class line.
		_, err := p.collectLogicalLine()
		return nil, err
	}

	start := p.tok
	toks, err := p.collectLogicalLine()
	if err != nil {
		return nil, err
	}
	if p.tok.Type == token.INDENT {
		// A suite follows a line outside the hard keyword set: a soft
		// keyword statement such as match or case.
		if len(toks) == 0 || !isOpToken(toks[len(toks)-1], ":") {
			return nil, p.errorf(p.tok.Source, "unexpected indent")
		}
		p.next()
		body, err := p.parseStatements()
		if err != nil {
			return nil, err
		}
		if p.tok.Type == token.DEDENT {
			p.next()
		}
		return []pyast.Stmt{&pyast.Compound{Keyword: start.Text, Body: body, Source: start.Source}}, nil
	}
	return simpleStmts(toks), nil
}

// parseCompound parses a generic compound statement: the keyword, a header
// skipped through its top-level colon, and a suite.
func (p *Parser) parseCompound() ([]pyast.Stmt, error) {
	kw := p.tok
	p.next()
	if err := p.skipHeader(); err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return []pyast.Stmt{&pyast.Compound{Keyword: kw.Text, Body: body, Source: kw.Source}}, nil
}

func (p *Parser) parseFuncDef(async bool, start *token.Location) (pyast.Stmt, error) {
	p.next() // def
	if p.tok.Type != token.NAME {
		return nil, p.errorf(p.tok.Source, "expected function name, found %s", describe(p.tok))
	}
	name := p.tok.Text
	p.next()
	if !p.acceptOp("(") {
		return nil, p.errorf(p.tok.Source, "expected '(' in function definition")
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	// The return annotation, if any, is consumed on the way to the colon.
	if err := p.skipHeader(); err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &pyast.FuncDef{
		Name:   name,
		Async:  async,
		Params: params,
		Body:   body,
		Source: start,
	}, nil
}

func (p *Parser) parseClassDef() (pyast.Stmt, error) {
	kw := p.tok
	p.next() // class
	if p.tok.Type != token.NAME {
		return nil, p.errorf(p.tok.Source, "expected class name, found %s", describe(p.tok))
	}
	name := p.tok.Text
	p.next()
	// Bases and keyword arguments, if any, are consumed with the header.
	if err := p.skipHeader(); err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &pyast.ClassDef{Name: name, Body: body, Source: kw.Source}, nil
}

// parseParams parses a parameter list; the opening paren has been consumed
// and the closing paren is consumed before returning.  Only positional
// parameters are returned: a * or ** marker ends positional collection,
// though the remaining entries are still consumed.
func (p *Parser) parseParams() ([]*pyast.Param, error) {
	var params []*pyast.Param
	positional := true
	for {
		if p.err != nil {
			return nil, p.err
		}
		if p.acceptOp(")") {
			return params, nil
		}
		switch {
		case p.isOp("*"), p.isOp("**"):
			positional = false
			p.next()
			continue
		case p.isOp("/"):
			p.next()
		case p.isOp(","):
			p.next()
			continue
		case p.tok.Type == token.NAME:
			param := &pyast.Param{Name: p.tok.Text, Source: p.tok.Source}
			p.next()
			if p.acceptOp(":") {
				if err := p.skipParamExpr(); err != nil {
					return nil, err
				}
			}
			if p.acceptOp("=") {
				expr, err := p.paramDefault()
				if err != nil {
					return nil, err
				}
				param.Default = expr
			}
			if positional {
				params = append(params, param)
			}
		default:
			return nil, p.errorf(p.tok.Source, "unexpected %s in parameter list", describe(p.tok))
		}
		if p.acceptOp(",") {
			continue
		}
		if p.acceptOp(")") {
			return params, nil
		}
		return nil, p.errorf(p.tok.Source, "expected ',' or ')' in parameter list")
	}
}

// skipParamExpr consumes an annotation expression, stopping before a
// top-level ',', '=', or the parameter list's closing ')'.
func (p *Parser) skipParamExpr() error {
	depth := 0
	for {
		if p.err != nil {
			return p.err
		}
		switch p.tok.Type {
		case token.EOF, token.NEWLINE:
			return p.errorf(p.tok.Source, "unexpected %s in parameter annotation", describe(p.tok))
		case token.OP:
			switch p.tok.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 {
					return nil
				}
				depth--
			case ",", "=":
				if depth == 0 {
					return nil
				}
			}
		}
		p.next()
	}
}

// paramDefault consumes a default value expression, stopping before a
// top-level ',' or the closing ')'.
func (p *Parser) paramDefault() (*pyast.Expr, error) {
	start := p.tok
	var toks []*token.Token
	depth := 0
	for {
		if p.err != nil {
			return nil, p.err
		}
		switch p.tok.Type {
		case token.EOF, token.NEWLINE:
			return nil, p.errorf(p.tok.Source, "unexpected %s in parameter default", describe(p.tok))
		case token.OP:
			switch p.tok.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 {
					return p.defaultExpr(start, toks)
				}
				depth--
			case ",":
				if depth == 0 {
					return p.defaultExpr(start, toks)
				}
			}
		}
		toks = append(toks, p.tok)
		p.next()
	}
}

func (p *Parser) defaultExpr(start *token.Token, toks []*token.Token) (*pyast.Expr, error) {
	if len(toks) == 0 {
		return nil, p.errorf(start.Source, "expected expression after '='")
	}
	return &pyast.Expr{
		Text:    joinTokens(toks),
		Literal: isLiteral(toks),
		Source:  start.Source,
	}, nil
}

// isLiteral reports whether a default expression token span is a literal
// constant: a single number, string, True, False, None, or ellipsis, or a
// run of implicitly concatenated string literals.  Everything else (list,
// dict, set, and call displays, names, negated numbers) is non-constant.
func isLiteral(toks []*token.Token) bool {
	if len(toks) == 1 {
		t := toks[0]
		switch t.Type {
		case token.NUMBER, token.STRING:
			return true
		case token.NAME:
			return t.Text == "True" || t.Text == "False" || t.Text == "None"
		case token.OP:
			return t.Text == "..."
		}
		return false
	}
	for _, t := range toks {
		if t.Type != token.STRING {
			return false
		}
	}
	return len(toks) > 0
}

// skipHeader consumes tokens through the top-level ':' ending a compound
// statement header.  Bracketed colons (dict displays, slices) and lambda
// colons do not terminate the header.
func (p *Parser) skipHeader() error {
	depth := 0
	lambdas := 0
	for {
		if p.err != nil {
			return p.err
		}
		switch p.tok.Type {
		case token.NEWLINE, token.EOF, token.INDENT, token.DEDENT:
			return p.errorf(p.tok.Source, "expected ':', found %s", describe(p.tok))
		case token.NAME:
			if p.tok.Text == "lambda" && depth == 0 {
				lambdas++
			}
		case token.OP:
			switch p.tok.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			case ":":
				if depth == 0 {
					if lambdas > 0 {
						lambdas--
						break
					}
					p.next()
					return nil
				}
			}
		}
		p.next()
	}
}

// parseSuite parses the suite after a header's ':': either an indented
// block or simple statements inline on the header line.
func (p *Parser) parseSuite() ([]pyast.Stmt, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.tok.Type == token.NEWLINE {
		p.next()
		if p.tok.Type != token.INDENT {
			if p.err != nil {
				return nil, p.err
			}
			return nil, p.errorf(p.tok.Source, "expected an indented block")
		}
		p.next()
		body, err := p.parseStatements()
		if err != nil {
			return nil, err
		}
		if p.tok.Type == token.DEDENT {
			p.next()
		}
		return body, nil
	}
	toks, err := p.collectLogicalLine()
	if err != nil {
		return nil, err
	}
	return simpleStmts(toks), nil
}

// collectLogicalLine consumes the remainder of the current logical line,
// returning its tokens with the terminating NEWLINE consumed but excluded.
func (p *Parser) collectLogicalLine() ([]*token.Token, error) {
	var toks []*token.Token
	for {
		if p.err != nil {
			return nil, p.err
		}
		switch p.tok.Type {
		case token.NEWLINE:
			p.next()
			if p.err != nil {
				return nil, p.err
			}
			return toks, nil
		case token.EOF:
			return toks, nil
		case token.INDENT, token.DEDENT:
			return nil, p.errorf(p.tok.Source, "unexpected %s", describe(p.tok))
		}
		toks = append(toks, p.tok)
		p.next()
	}
}

// simpleStmts converts a logical line's tokens to statements.  Semicolons
// separate statements; each statement yields an Assign when it has at
// least one simple-name target, and nothing otherwise.
func simpleStmts(toks []*token.Token) []pyast.Stmt {
	var out []pyast.Stmt
	for _, seg := range splitSegments(toks) {
		if s := assignStmt(seg); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func splitSegments(toks []*token.Token) [][]*token.Token {
	var segs [][]*token.Token
	depth := 0
	start := 0
	for i, t := range toks {
		if t.Type != token.OP {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case ";":
			if depth == 0 {
				segs = append(segs, toks[start:i])
				start = i + 1
			}
		}
	}
	segs = append(segs, toks[start:])
	return segs
}

// assignStmt recognizes an assignment statement and extracts its
// simple-name targets.  Annotated assignments (a ':' before the first '=')
// and statements without a bare '=' produce no node, and target segments
// that are not a single name (tuples, attributes, subscripts) are skipped.
func assignStmt(seg []*token.Token) pyast.Stmt {
	depth := 0
	colonIdx := -1
	var eqIdxs []int
	for i, t := range seg {
		if t.Type != token.OP {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case "=":
			if depth == 0 {
				eqIdxs = append(eqIdxs, i)
			}
		case ":":
			if depth == 0 && colonIdx < 0 {
				colonIdx = i
			}
		}
	}
	if len(eqIdxs) == 0 {
		return nil
	}
	if colonIdx >= 0 && colonIdx < eqIdxs[0] {
		return nil
	}
	var targets []*pyast.Name
	start := 0
	for _, eq := range eqIdxs {
		if eq-start == 1 && seg[start].Type == token.NAME {
			t := seg[start]
			targets = append(targets, &pyast.Name{ID: t.Text, Source: t.Source})
		}
		start = eq + 1
	}
	if len(targets) == 0 {
		return nil
	}
	return &pyast.Assign{Targets: targets, Source: seg[0].Source}
}

func (p *Parser) isOp(text string) bool {
	return isOpToken(p.tok, text)
}

func (p *Parser) acceptOp(text string) bool {
	if p.isOp(text) {
		p.next()
		return true
	}
	return false
}

func isOpToken(t *token.Token, text string) bool {
	return t.Type == token.OP && t.Text == text
}

func (p *Parser) errorf(loc *token.Location, format string, v ...interface{}) error {
	if p.err != nil {
		return p.err
	}
	return &token.LocationError{Err: fmt.Errorf(format, v...), Source: loc}
}

func describe(t *token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of file"
	case token.NEWLINE:
		return "end of line"
	case token.INDENT:
		return "indent"
	case token.DEDENT:
		return "dedent"
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}

func joinTokens(toks []*token.Token) string {
	texts := make([]string, len(toks))
	for i, t := range toks {
		texts[i] = t.Text
	}
	return strings.Join(texts, " ")
}
