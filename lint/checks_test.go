// Copyright © 2025 The pysca authors

package lint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// runCheck applies a single line checker to one line with a fresh context.
func runCheck(checker *LineChecker, line string) Result {
	return checker.Check(line, &LineContext{})
}

func TestCheckerLineLength(t *testing.T) {
	assert.False(t, runCheck(CheckerLineLength, strings.Repeat("x", 79)).Failed)
	assert.True(t, runCheck(CheckerLineLength, strings.Repeat("x", 80)).Failed)
	// Multibyte characters count as one.
	assert.False(t, runCheck(CheckerLineLength, strings.Repeat("й", 79)).Failed)
}

func TestCheckerIndentation(t *testing.T) {
	assert.False(t, runCheck(CheckerIndentation, "x = 1\n").Failed)
	assert.False(t, runCheck(CheckerIndentation, "    x = 1\n").Failed)
	assert.False(t, runCheck(CheckerIndentation, "        x = 1\n").Failed)
	assert.True(t, runCheck(CheckerIndentation, "  x = 1\n").Failed)
	assert.True(t, runCheck(CheckerIndentation, "   x = 1\n").Failed)
	assert.True(t, runCheck(CheckerIndentation, "\tx = 1\n").Failed)
}

func TestCheckerSemicolon(t *testing.T) {
	assert.True(t, runCheck(CheckerSemicolon, "x = 1;\n").Failed)
	assert.True(t, runCheck(CheckerSemicolon, "x = 1;   \n").Failed)
	assert.True(t, runCheck(CheckerSemicolon, "x = 1;  # comment\n").Failed)
	assert.False(t, runCheck(CheckerSemicolon, "x = 1\n").Failed)
	assert.False(t, runCheck(CheckerSemicolon, "x = 1  # done;\n").Failed)
	assert.False(t, runCheck(CheckerSemicolon, "# just a comment;\n").Failed)
	assert.False(t, runCheck(CheckerSemicolon, "a = 1; b = 2\n").Failed)
}

func TestCheckerInlineComment(t *testing.T) {
	assert.False(t, runCheck(CheckerInlineComment, "x = 1  # fine\n").Failed)
	assert.False(t, runCheck(CheckerInlineComment, "x = 1   # extra\n").Failed)
	assert.False(t, runCheck(CheckerInlineComment, "# whole line comment\n").Failed)
	assert.False(t, runCheck(CheckerInlineComment, "    # indented comment\n").Failed)
	assert.False(t, runCheck(CheckerInlineComment, "no comment here\n").Failed)
	assert.True(t, runCheck(CheckerInlineComment, "x = 1 # one space\n").Failed)
	assert.True(t, runCheck(CheckerInlineComment, "x = 1# none\n").Failed)
}

func TestCheckerTodo(t *testing.T) {
	assert.True(t, runCheck(CheckerTodo, "x = 1  # TODO: fix\n").Failed)
	assert.True(t, runCheck(CheckerTodo, "x = 1  # todo later\n").Failed)
	assert.True(t, runCheck(CheckerTodo, "x = 1  # ToDo\n").Failed)
	assert.False(t, runCheck(CheckerTodo, "todo = 1\n").Failed)
	assert.False(t, runCheck(CheckerTodo, "x = 'TODO'\n").Failed)
	assert.False(t, runCheck(CheckerTodo, "x = 1  # all done\n").Failed)
}

func TestCheckerBlankLines(t *testing.T) {
	ctx := &LineContext{BlankRun: 2}
	assert.False(t, CheckerBlankLines.Check("x = 1\n", ctx).Failed)
	ctx.BlankRun = 3
	assert.True(t, CheckerBlankLines.Check("x = 1\n", ctx).Failed)
}

func TestCheckerDefSpaces(t *testing.T) {
	res := runCheck(CheckerDefSpaces, "def  foo():\n")
	assert.True(t, res.Failed)
	assert.Equal(t, "Too many spaces after 'def'", res.Message)

	res = runCheck(CheckerDefSpaces, "class  Foo:\n")
	assert.True(t, res.Failed)
	assert.Equal(t, "Too many spaces after 'class'", res.Message)

	assert.False(t, runCheck(CheckerDefSpaces, "def foo():\n").Failed)
	assert.False(t, runCheck(CheckerDefSpaces, "class Foo:\n").Failed)
}

func TestCheckerClassName(t *testing.T) {
	res := runCheck(CheckerClassName, "class myClass:\n")
	assert.True(t, res.Failed)
	assert.Equal(t, "Class name 'myClass' should use CamelCase", res.Message)

	assert.True(t, runCheck(CheckerClassName, "class snake_case:\n").Failed)
	assert.False(t, runCheck(CheckerClassName, "class MyClass:\n").Failed)
	assert.False(t, runCheck(CheckerClassName, "class HTTPServer:\n").Failed)
	// Base classes keep the rule on the name only.
	assert.False(t, runCheck(CheckerClassName, "x = some_class\n").Failed)
}

func TestCheckerFunctionName(t *testing.T) {
	res := runCheck(CheckerFunctionName, "def badName():\n")
	assert.True(t, res.Failed)
	assert.Equal(t, "Function name 'badName' should use snake_case", res.Message)

	assert.False(t, runCheck(CheckerFunctionName, "def good_name():\n").Failed)
	assert.False(t, runCheck(CheckerFunctionName, "def __init__(self):\n").Failed)
	assert.False(t, runCheck(CheckerFunctionName, "x = definitely\n").Failed)
}

func TestDoubleSpaceDefSkipsNameRule(t *testing.T) {
	// "def  foo" has two spaces: the spacing rule fires but the name is
	// still valid snake_case.
	diags := checkSource(t, "def  foo():\n    pass\n")
	assertDiagOnLine(t, diags, 1, CodeDefSpaces)
	for _, d := range diags {
		assert.NotEqual(t, CodeFunctionName, d.Code)
	}
}

func TestDefaultCheckersOrdered(t *testing.T) {
	checkers := DefaultCheckers()
	for i := 1; i < len(checkers); i++ {
		assert.Less(t, checkers[i-1].Code, checkers[i].Code)
	}
	for _, c := range checkers {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Doc)
		assert.NotEmpty(t, c.Message)
	}
}
