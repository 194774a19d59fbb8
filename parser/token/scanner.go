// Copyright © 2025 The pysca authors

package token

import (
	"strings"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from source text held fully in
// memory.  Analysis always reads a file completely before tokenizing, so the
// scanner works over a byte slice instead of a streaming reader.
type Scanner struct {
	file string
	src  []byte

	start int // byte offset of the first rune in the current token
	pos   int // byte offset of the next rune to scan

	line      int // line number at pos
	col       int // column number at pos (in runes, starting at 1)
	startLine int // line number at start
	startCol  int // column number at start
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(file string, src []byte) *Scanner {
	return &Scanner{
		file:      file,
		src:       src,
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}
}

// EOF returns true when all input has been consumed.
func (s *Scanner) EOF() bool {
	return s.pos >= len(s.src)
}

// Peek returns the next rune to be scanned, if there is one.
func (s *Scanner) Peek() (rune, bool) {
	return s.PeekAhead(0)
}

// PeekAhead returns the rune n positions beyond the next rune to be scanned
// (PeekAhead(0) is equivalent to Peek).
func (s *Scanner) PeekAhead(n int) (rune, bool) {
	pos := s.pos
	for {
		if pos >= len(s.src) {
			return 0, false
		}
		c, size := utf8.DecodeRune(s.src[pos:])
		if n == 0 {
			return c, true
		}
		pos += size
		n--
	}
}

// ScanRune consumes the next rune for inclusion in the current token.
func (s *Scanner) ScanRune() (rune, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	c, size := utf8.DecodeRune(s.src[s.pos:])
	s.pos += size
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c, true
}

// Accept consumes the next rune if fn approves of it.
func (s *Scanner) Accept(fn func(rune) bool) bool {
	c, ok := s.Peek()
	if !ok || !fn(c) {
		return false
	}
	s.ScanRune()
	return true
}

// AcceptRune consumes the next rune if it equals c.
func (s *Scanner) AcceptRune(c rune) bool {
	return s.Accept(func(r rune) bool { return r == c })
}

// AcceptAny consumes the next rune if it appears in charset.
func (s *Scanner) AcceptAny(charset string) bool {
	return s.Accept(func(r rune) bool { return strings.ContainsRune(charset, r) })
}

// AcceptSeq consumes a run of runes approved by fn and returns its length.
func (s *Scanner) AcceptSeq(fn func(rune) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

// AcceptString consumes literal if and only if it appears in full at the
// scanner's current position.
func (s *Scanner) AcceptString(literal string) bool {
	i := 0
	for _, c := range literal {
		r, ok := s.PeekAhead(i)
		if !ok || r != c {
			return false
		}
		i++
	}
	for range literal {
		s.ScanRune()
	}
	return true
}

// Text returns the text scanned since the last call to either EmitToken or
// Ignore.
func (s *Scanner) Text() string {
	return string(s.src[s.start:s.pos])
}

// EmitToken returns a token containing the text scanned since the last call
// to either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.pos
	s.startLine = s.line
	s.startCol = s.col
}

// LocStart returns a Location referencing the beginning of the current
// token, just beyond the end of the previous token.
func (s *Scanner) LocStart() *Location {
	return &Location{File: s.file, Line: s.startLine, Col: s.startCol}
}

// Loc returns a Location referencing the current scanner position.
func (s *Scanner) Loc() *Location {
	return &Location{File: s.file, Line: s.line, Col: s.col}
}
