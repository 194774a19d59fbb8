// Copyright © 2025 The pysca authors

// Package pyast defines the syntax tree produced by the pysca parser.  The
// tree is a fact-oriented reduction of python source: function and class
// definitions, assignments to simple names, and generic compound statements
// keep their structure, while everything else is represented only as far as
// needed to locate nested definitions and assignments.
package pyast

import "github.com/luthersystems/pysca/parser/token"

// Module is the root of a parsed source file.
type Module struct {
	Body []Stmt
}

// Stmt is a statement node.
type Stmt interface {
	// Loc returns the statement's source location.
	Loc() *token.Location

	stmtNode()
}

// FuncDef is a function definition introduced by def or async def.  Its
// location is the line of the def keyword, which is also the line facts
// about parameters and defaults are attributed to.
type FuncDef struct {
	Name   string
	Async  bool
	Params []*Param
	Body   []Stmt
	Source *token.Location
}

// Param is a positional function parameter.  Keyword-only parameters
// (those following a bare * or *args) are not recorded.
type Param struct {
	Name    string
	Default *Expr // nil when the parameter has no default
	Source  *token.Location
}

// ClassDef is a class definition.
type ClassDef struct {
	Name   string
	Body   []Stmt
	Source *token.Location
}

// Assign is an assignment statement whose targets include at least one
// simple name.  Tuple, attribute, and subscript targets are excluded, as
// are annotated assignments, mirroring the store-context Name nodes a full
// python AST would report.
type Assign struct {
	Targets []*Name
	Source  *token.Location
}

// Name is an identifier appearing as an assignment target.
type Name struct {
	ID     string
	Source *token.Location
}

// Compound is any other statement carrying an indented or inline suite
// (if, for, while, try, with, match, and friends).  Only the suite is
// retained; the header expression is discarded.
type Compound struct {
	Keyword string
	Body    []Stmt
	Source  *token.Location
}

// Expr is a minimally structured expression recorded for parameter
// defaults.  The parser does not build full expression trees; it records
// the token span text and whether the expression is a single literal
// constant (number, string, True, False, None, or ...).
type Expr struct {
	Text    string
	Literal bool
	Source  *token.Location
}

func (s *FuncDef) Loc() *token.Location  { return s.Source }
func (s *ClassDef) Loc() *token.Location { return s.Source }
func (s *Assign) Loc() *token.Location   { return s.Source }
func (s *Compound) Loc() *token.Location { return s.Source }

func (*FuncDef) stmtNode()  {}
func (*ClassDef) stmtNode() {}
func (*Assign) stmtNode()   {}
func (*Compound) stmtNode() {}

// Walk calls fn for every statement in the tree, depth-first.  enclosing is
// the innermost FuncDef containing the statement, or nil at module, class,
// or other non-function level.
func Walk(body []Stmt, fn func(s Stmt, enclosing *FuncDef)) {
	walk(body, nil, fn)
}

func walk(body []Stmt, enclosing *FuncDef, fn func(Stmt, *FuncDef)) {
	for _, s := range body {
		fn(s, enclosing)
		switch s := s.(type) {
		case *FuncDef:
			walk(s.Body, s, fn)
		case *ClassDef:
			walk(s.Body, enclosing, fn)
		case *Compound:
			walk(s.Body, enclosing, fn)
		}
	}
}
