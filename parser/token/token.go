// Copyright © 2025 The pysca authors

// Package token defines the lexical tokens of the python subset understood
// by pysca along with source location tracking shared by the lexer, the
// parser, and diagnostic reporting.
package token

import "fmt"

type Token struct {
	Type   Type
	Text   string
	Source *Location
}

type Type uint

const (
	INVALID Type = iota
	ERROR
	EOF

	// Logical line structure.  NEWLINE terminates a logical line; INDENT
	// and DEDENT bracket suites the way python's tokenizer emits them.
	NEWLINE
	INDENT
	DEDENT

	// Atomic tokens
	NAME
	NUMBER
	STRING

	// Operators and delimiters are not distinguished further; the parser
	// matches on token text.
	OP

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		ERROR:   "error",
		EOF:     "EOF",
		NEWLINE: "newline",
		INDENT:  "indent",
		DEDENT:  "dedent",
		NAME:    "name",
		NUMBER:  "number",
		STRING:  "string",
		OP:      "op",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

type Location struct {
	File string // a name representing the source stream
	Line int    // line number (starting at 1 when tracked)
	Col  int    // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc.Line == 0:
		return loc.File
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}

func (err *LocationError) Unwrap() error {
	return err.Err
}
