// Copyright © 2025 The pysca authors

package token

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerEmit(t *testing.T) {
	s := NewScanner("test.py", []byte("abc def"))
	n := s.AcceptSeq(func(r rune) bool { return !unicode.IsSpace(r) })
	assert.Equal(t, 3, n)
	tok := s.EmitToken(NAME)
	assert.Equal(t, NAME, tok.Type)
	assert.Equal(t, "abc", tok.Text)
	assert.Equal(t, 1, tok.Source.Line)
	assert.Equal(t, 1, tok.Source.Col)

	require.True(t, s.AcceptRune(' '))
	s.Ignore()
	s.AcceptSeq(func(r rune) bool { return !unicode.IsSpace(r) })
	tok = s.EmitToken(NAME)
	assert.Equal(t, "def", tok.Text)
	assert.Equal(t, 5, tok.Source.Col)
	assert.True(t, s.EOF())
}

func TestScannerLineTracking(t *testing.T) {
	s := NewScanner("test.py", []byte("a\nb"))
	s.ScanRune()
	s.ScanRune()
	s.Ignore()
	loc := s.LocStart()
	assert.Equal(t, 2, loc.Line)
	assert.Equal(t, 1, loc.Col)
}

func TestScannerPeekAhead(t *testing.T) {
	s := NewScanner("test.py", []byte("xyz"))
	c, ok := s.PeekAhead(2)
	require.True(t, ok)
	assert.Equal(t, 'z', c)
	_, ok = s.PeekAhead(3)
	assert.False(t, ok)
	// Peeking does not consume.
	c, _ = s.Peek()
	assert.Equal(t, 'x', c)
}

func TestScannerAcceptString(t *testing.T) {
	s := NewScanner("test.py", []byte("'''doc"))
	assert.False(t, s.AcceptString("'''x"))
	assert.True(t, s.AcceptString("'''"))
	assert.Equal(t, "'''", s.Text())
}

func TestScannerUnicode(t *testing.T) {
	s := NewScanner("test.py", []byte("éé=1"))
	s.ScanRune()
	s.ScanRune()
	loc := s.Loc()
	// Columns count runes, not bytes.
	assert.Equal(t, 3, loc.Col)
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "a.py", (&Location{File: "a.py"}).String())
	assert.Equal(t, "a.py:3", (&Location{File: "a.py", Line: 3}).String())
	assert.Equal(t, "a.py:3:7", (&Location{File: "a.py", Line: 3, Col: 7}).String())
}
