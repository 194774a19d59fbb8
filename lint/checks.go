// Copyright © 2025 The pysca authors

package lint

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxLineLength is the PEP 8 line length limit.
const maxLineLength = 79

// maxBlankLines is the largest run of blank lines allowed between
// statements.
const maxBlankLines = 2

var (
	keywordSpacesPattern = regexp.MustCompile(`(def|class) {2,}[A-Za-z_]`)
	classNamePattern     = regexp.MustCompile(`class\s+(\w+)\s*:`)
	funcNamePattern      = regexp.MustCompile(`def\s+(\w+)`)
)

// CheckerLineLength reports lines longer than 79 characters.  Length is
// measured in runes over the raw line, terminator included.
var CheckerLineLength = &LineChecker{
	Code:    CodeLineLength,
	Name:    "line-length",
	Doc:     "Report lines longer than 79 characters.\n\nLength is measured in unicode characters over the whole physical line. Splitting long lines keeps code readable side by side.",
	Message: "Too long",
	Check: func(line string, ctx *LineContext) Result {
		if utf8.RuneCountInString(line) > maxLineLength {
			return fail()
		}
		return ok
	},
}

// CheckerIndentation reports indentation that is not a multiple of four
// characters.
var CheckerIndentation = &LineChecker{
	Code:    CodeIndentation,
	Name:    "indentation",
	Doc:     "Report indentation that is not a multiple of four.\n\nPEP 8 prescribes four spaces per indentation level. The leading whitespace characters of the line are counted directly.",
	Message: "Indentation is not a multiple of four",
	Check: func(line string, ctx *LineContext) Result {
		indent := 0
		for _, r := range line {
			if !unicode.IsSpace(r) {
				break
			}
			indent++
		}
		if indent%4 != 0 {
			return fail()
		}
		return ok
	},
}

// CheckerSemicolon reports statements terminated with a semicolon.
// Semicolons inside comments do not count, so the line's code portion is
// cut at the first '#' before inspection.
var CheckerSemicolon = &LineChecker{
	Code:    CodeSemicolon,
	Name:    "semicolon",
	Doc:     "Report statements ending with an unnecessary semicolon.\n\nPython statements need no terminator. Only the code portion of the line is inspected: a semicolon inside a trailing comment is fine.",
	Message: "Unnecessary semicolon",
	Check: func(line string, ctx *LineContext) Result {
		code, _, _ := strings.Cut(line, "#")
		code = strings.TrimRightFunc(code, unicode.IsSpace)
		if strings.HasSuffix(code, ";") {
			return fail()
		}
		return ok
	},
}

// CheckerInlineComment reports inline comments not separated from code by
// at least two spaces.
var CheckerInlineComment = &LineChecker{
	Code:    CodeInlineComment,
	Name:    "inline-comment",
	Doc:     "Report inline comments without two spaces before the '#'.\n\nPEP 8 requires at least two spaces between a statement and an inline comment. Whole-line comments are exempt.",
	Message: "At least two spaces required before inline comment",
	Check: func(line string, ctx *LineContext) Result {
		code, _, found := strings.Cut(line, "#")
		if !found {
			return ok
		}
		code = strings.TrimLeftFunc(code, unicode.IsSpace)
		if code == "" {
			// Whole-line comment.
			return ok
		}
		trimmed := strings.TrimRightFunc(code, unicode.IsSpace)
		if utf8.RuneCountInString(code) >= 2 && utf8.RuneCountInString(code)-utf8.RuneCountInString(trimmed) >= 2 {
			return ok
		}
		return fail()
	},
}

// CheckerTodo reports comments containing "todo" in any case.
var CheckerTodo = &LineChecker{
	Code:    CodeTodo,
	Name:    "todo",
	Doc:     "Report comments containing TODO.\n\nThe match is case insensitive and only inspects the comment portion of the line; a TODO in code or a string literal does not count.",
	Message: "TODO found",
	Check: func(line string, ctx *LineContext) Result {
		idx := strings.IndexByte(line, '#')
		if idx < 0 {
			return ok
		}
		if strings.Contains(strings.ToLower(line[idx:]), "todo") {
			return fail()
		}
		return ok
	},
}

// CheckerBlankLines reports statements preceded by more than two blank
// lines.  The blank run count is threaded through LineContext; the
// diagnostic lands on the first non-blank line after the run.
var CheckerBlankLines = &LineChecker{
	Code:    CodeBlankLines,
	Name:    "blank-lines",
	Doc:     "Report code preceded by more than two blank lines.\n\nPEP 8 allows at most two blank lines between top-level definitions. The diagnostic is reported on the first code line after the blank run.",
	Message: "More than two blank lines found before this line",
	Check: func(line string, ctx *LineContext) Result {
		if ctx.BlankRun > maxBlankLines {
			return fail()
		}
		return ok
	},
}

// CheckerDefSpaces reports def and class keywords followed by more than
// one space.
var CheckerDefSpaces = &LineChecker{
	Code:    CodeDefSpaces,
	Name:    "keyword-spaces",
	Doc:     "Report more than one space after 'def' or 'class'.\n\nExactly one space separates the keyword from the name it introduces.",
	Message: "Too many spaces after 'def'",
	Check: func(line string, ctx *LineContext) Result {
		m := keywordSpacesPattern.FindStringSubmatch(line)
		if m == nil {
			return ok
		}
		return failf("Too many spaces after '%s'", m[1])
	},
}

// CheckerClassName reports class names that are not CamelCase.  The rule
// only applies to lines containing a class header.
var CheckerClassName = &LineChecker{
	Code:    CodeClassName,
	Name:    "class-name",
	Doc:     "Report class names that do not use CamelCase.\n\nPEP 8 calls for CapWords class names. Acronym runs like HTTPServer are accepted.",
	Message: "Class name should use CamelCase",
	Check: func(line string, ctx *LineContext) Result {
		m := classNamePattern.FindStringSubmatch(line)
		if m == nil {
			return ok
		}
		if isPascalCase(m[1]) {
			return ok
		}
		return failf("Class name '%s' should use CamelCase", m[1])
	},
}

// CheckerFunctionName reports function names that are not snake_case.
// The rule only applies to lines containing a def keyword.
var CheckerFunctionName = &LineChecker{
	Code:    CodeFunctionName,
	Name:    "function-name",
	Doc:     "Report function names that do not use snake_case.\n\nPEP 8 calls for lowercase function names with underscores. Dunder names like __init__ are accepted.",
	Message: "Function name should use snake_case",
	Check: func(line string, ctx *LineContext) Result {
		m := funcNamePattern.FindStringSubmatch(line)
		if m == nil {
			return ok
		}
		if isSnakeCase(m[1]) {
			return ok
		}
		return failf("Function name '%s' should use snake_case", m[1])
	},
}

// DefaultCheckers returns the built-in set of line rules in code order.
func DefaultCheckers() []*LineChecker {
	return []*LineChecker{
		CheckerLineLength,
		CheckerIndentation,
		CheckerSemicolon,
		CheckerInlineComment,
		CheckerTodo,
		CheckerBlankLines,
		CheckerDefSpaces,
		CheckerClassName,
		CheckerFunctionName,
	}
}
