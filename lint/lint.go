// Copyright © 2025 The pysca authors

// Package lint provides static style analysis for python source files.
//
// The analyzer is modeled after go vet: each line rule is an independent
// LineChecker that receives a raw source line plus threaded cross-line
// state and returns a Result, while the identifier rules run over the
// parsed tree in a single walk. The framework handles reading, parsing,
// running checks, merging the two diagnostic streams, and formatting
// output.
package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/luthersystems/pysca/parser/pyparse"
)

// Code identifies a style rule.  Codes render in report form, S001
// through S012.
type Code int

const (
	CodeLineLength     Code = iota + 1 // S001
	CodeIndentation                    // S002
	CodeSemicolon                      // S003
	CodeInlineComment                  // S004
	CodeTodo                           // S005
	CodeBlankLines                     // S006
	CodeDefSpaces                      // S007
	CodeClassName                      // S008
	CodeFunctionName                   // S009
	CodeArgumentName                   // S010
	CodeVariableName                   // S011
	CodeMutableDefault                 // S012
)

func (c Code) String() string {
	return fmt.Sprintf("S%03d", int(c))
}

// ParseCode converts report form ("S011", case-insensitive) or a bare
// number ("11") to a Code.
func ParseCode(s string) (Code, error) {
	digits := s
	if len(s) > 0 && (s[0] == 'S' || s[0] == 's') {
		digits = s[1:]
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < int(CodeLineLength) || n > int(CodeMutableDefault) {
		return 0, fmt.Errorf("unknown check code: %q", s)
	}
	return Code(n), nil
}

// MarshalJSON serializes the code in report form.
func (c Code) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON deserializes a code from report form.
func (c *Code) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	code, err := ParseCode(str)
	if err != nil {
		return err
	}
	*c = code
	return nil
}

// Diagnostic is a single reported style problem.
type Diagnostic struct {
	// File is the path of the analyzed source file.
	File string `json:"file"`

	// Line is the 1-based source line of the problem.
	Line int `json:"line"`

	// Code identifies the violated rule.
	Code Code `json:"code"`

	// Message is a human-readable description of the problem.
	Message string `json:"message"`
}

// String returns the diagnostic in report form:
//
//	path: Line n: Snnn message
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: Line %d: %s %s", d.File, d.Line, d.Code, d.Message)
}

// Result is the outcome of a single line check.
type Result struct {
	// Failed reports a violation on the checked line.
	Failed bool

	// Message overrides the checker's default message when non-empty.
	Message string
}

var ok = Result{}

func fail() Result {
	return Result{Failed: true}
}

func failf(format string, args ...interface{}) Result {
	return Result{Failed: true, Message: fmt.Sprintf(format, args...)}
}

// LineContext carries cross-line state threaded through a file scan.
// Checkers read it; the analyzer owns all mutation.
type LineContext struct {
	// BlankRun is the number of consecutive blank lines immediately above
	// the line being checked.
	BlankRun int
}

// LineChecker defines a single per-line style rule.
type LineChecker struct {
	// Code is the rule this checker reports.
	Code Code

	// Name is a short identifier for the rule (e.g. "line-length").
	Name string

	// Doc is a human-readable description. The first line is a short
	// summary.
	Doc string

	// Message is the default diagnostic message, used when a Result
	// carries none.
	Message string

	// Check examines one raw source line, terminator included.  Blank
	// lines are never passed to Check.
	Check func(line string, ctx *LineContext) Result
}

// Analyzer runs line checkers and the identifier rules over source files.
type Analyzer struct {
	// Checkers are the per-line rules, run in order against every
	// non-blank line.
	Checkers []*LineChecker

	// Enabled restricts the reported codes when non-nil.
	Enabled map[Code]bool

	// StrictScope limits variable naming checks to assignments inside
	// function bodies.  The default checks assignments anywhere in the
	// module.
	StrictScope bool
}

// New returns an analyzer with the default checker set.
func New() *Analyzer {
	return &Analyzer{Checkers: DefaultCheckers()}
}

// CheckFile reads and analyzes a single source file.
func (a *Analyzer) CheckFile(path string) ([]Diagnostic, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: not a regular file", path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return a.CheckSource(src, path)
}

// CheckSource analyzes source, attributing diagnostics to filename.  The
// source must parse; analysis never proceeds on a partial tree.
//
// Identifier diagnostics are collected before the line scan and the merged
// report is sorted by line with a stable sort, so two diagnostics on the
// same line keep identifier rules ahead of line rules.
func (a *Analyzer) CheckSource(src []byte, filename string) ([]Diagnostic, error) {
	mod, err := pyparse.Parse(filename, src)
	if err != nil {
		return nil, err
	}

	diags := factDiagnostics(mod, filename, a.StrictScope)

	ctx := &LineContext{}
	for i, line := range splitLines(string(src)) {
		if strings.TrimSpace(line) == "" {
			ctx.BlankRun++
			continue
		}
		for _, checker := range a.Checkers {
			res := checker.Check(line, ctx)
			if !res.Failed {
				continue
			}
			msg := res.Message
			if msg == "" {
				msg = checker.Message
			}
			diags = append(diags, Diagnostic{
				File:    filename,
				Line:    i + 1,
				Code:    checker.Code,
				Message: msg,
			})
		}
		ctx.BlankRun = 0
	}

	if a.Enabled != nil {
		kept := diags[:0]
		for _, d := range diags {
			if a.Enabled[d.Code] {
				kept = append(kept, d)
			}
		}
		diags = kept
	}

	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Line < diags[j].Line
	})
	return diags, nil
}

// splitLines splits source into physical lines, keeping each line's
// terminator attached.  Line length rules count the terminator.
func splitLines(src string) []string {
	var lines []string
	for len(src) > 0 {
		i := strings.IndexByte(src, '\n')
		if i < 0 {
			lines = append(lines, src)
			break
		}
		lines = append(lines, src[:i+1])
		src = src[i+1:]
	}
	return lines
}

// FormatText writes diagnostics in report form, one per line.
func FormatText(w io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d.String()) //nolint:errcheck // best-effort output to writer
	}
}

// FormatJSON writes diagnostics as JSON.
func FormatJSON(w io.Writer, diags []Diagnostic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}
