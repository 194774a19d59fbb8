// Copyright © 2025 The pysca authors

package lint

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkSource runs the default analyzer on the given source and returns
// diagnostics.
func checkSource(t *testing.T, source string) []Diagnostic {
	t.Helper()
	diags, err := New().CheckSource([]byte(source), "test.py")
	require.NoError(t, err)
	return diags
}

// assertDiagOnLine checks that a diagnostic with the given code exists on
// the given line.
func assertDiagOnLine(t *testing.T, diags []Diagnostic, line int, code Code) {
	t.Helper()
	for _, d := range diags {
		if d.Line == line && d.Code == code {
			return
		}
	}
	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, d.String())
	}
	t.Errorf("expected %s on line %d, got: %v", code, line, msgs)
}

// assertNoDiags checks that there are no diagnostics.
func assertNoDiags(t *testing.T, diags []Diagnostic) {
	t.Helper()
	if len(diags) > 0 {
		var msgs []string
		for _, d := range diags {
			msgs = append(msgs, d.String())
		}
		t.Errorf("expected no diagnostics, got %d: %v", len(diags), msgs)
	}
}

func TestCleanSource(t *testing.T) {
	src := "def add(first, second=0):\n" +
		"    total = first + second\n" +
		"    return total\n" +
		"\n" +
		"\n" +
		"class Calculator:\n" +
		"    def reset(self):\n" +
		"        self.value = 0\n"
	assertNoDiags(t, checkSource(t, src))
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{File: "main.py", Line: 3, Code: CodeSemicolon, Message: "Unnecessary semicolon"}
	assert.Equal(t, "main.py: Line 3: S003 Unnecessary semicolon", d.String())
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "S001", CodeLineLength.String())
	assert.Equal(t, "S012", CodeMutableDefault.String())
}

func TestParseCode(t *testing.T) {
	for _, s := range []string{"S011", "s011", "11"} {
		code, err := ParseCode(s)
		require.NoError(t, err)
		assert.Equal(t, CodeVariableName, code)
	}
	for _, s := range []string{"S013", "S000", "bogus", ""} {
		_, err := ParseCode(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestCodeJSON(t *testing.T) {
	data, err := json.Marshal(CodeTodo)
	require.NoError(t, err)
	assert.Equal(t, `"S005"`, string(data))
	var code Code
	require.NoError(t, json.Unmarshal([]byte(`"S008"`), &code))
	assert.Equal(t, CodeClassName, code)
}

func TestBlankLineStateThreaded(t *testing.T) {
	src := "x = 1\n" +
		"\n" +
		"\n" +
		"\n" +
		"y = 2\n" +
		"\n" +
		"z = 3\n"
	diags := checkSource(t, src)
	require.Len(t, diags, 1)
	assert.Equal(t, CodeBlankLines, diags[0].Code)
	assert.Equal(t, 5, diags[0].Line)
}

func TestDiagnosticsSortedByLine(t *testing.T) {
	src := "def f(X=[]):\n" +
		"    pass\n" +
		"x = 1;\n"
	diags := checkSource(t, src)
	for i := 1; i < len(diags); i++ {
		assert.LessOrEqual(t, diags[i-1].Line, diags[i].Line)
	}
	// Identifier rules sort ahead of line rules on the same line.
	assertDiagOnLine(t, diags, 1, CodeArgumentName)
	assertDiagOnLine(t, diags, 1, CodeMutableDefault)
	assertDiagOnLine(t, diags, 3, CodeSemicolon)
}

func TestSameLineKeepsFactFirst(t *testing.T) {
	diags := checkSource(t, "def F(y):  X = 1;\n")
	require.NotEmpty(t, diags)
	var codes []Code
	for _, d := range diags {
		if d.Line == 1 {
			codes = append(codes, d.Code)
		}
	}
	// S011 and S009 both fire on line 1; the variable rule comes first.
	require.Contains(t, codes, CodeVariableName)
	require.Contains(t, codes, CodeFunctionName)
	assert.Equal(t, CodeVariableName, codes[0])
}

func TestEnabledFilter(t *testing.T) {
	a := New()
	a.Enabled = map[Code]bool{CodeSemicolon: true}
	src := "x = 1; # TODO fix\n"
	diags, err := a.CheckSource([]byte(src), "test.py")
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, CodeSemicolon, diags[0].Code)
}

func TestParseErrorReported(t *testing.T) {
	_, err := New().CheckSource([]byte("def broken(:\n"), "test.py")
	require.Error(t, err)
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.py")
	require.NoError(t, os.WriteFile(path, []byte("value = 1;\n"), 0600))

	diags, err := New().CheckFile(path)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, path, diags[0].File)
	assert.Equal(t, CodeSemicolon, diags[0].Code)

	_, err = New().CheckFile(filepath.Join(dir, "missing.py"))
	assert.Error(t, err)

	_, err = New().CheckFile(dir)
	assert.Error(t, err)
}

func TestFormatText(t *testing.T) {
	var buf bytes.Buffer
	FormatText(&buf, []Diagnostic{
		{File: "a.py", Line: 1, Code: CodeTodo, Message: "TODO found"},
		{File: "a.py", Line: 2, Code: CodeLineLength, Message: "Too long"},
	})
	want := "a.py: Line 1: S005 TODO found\n" +
		"a.py: Line 2: S001 Too long\n"
	assert.Equal(t, want, buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	err := FormatJSON(&buf, []Diagnostic{
		{File: "a.py", Line: 7, Code: CodeClassName, Message: "Class name 'foo' should use CamelCase"},
	})
	require.NoError(t, err)

	var decoded []Diagnostic
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, CodeClassName, decoded[0].Code)
	assert.Equal(t, 7, decoded[0].Line)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a\n", "b"}, splitLines("a\nb"))
	assert.Equal(t, []string{"a\n", "\n"}, splitLines("a\n\n"))
	assert.Nil(t, splitLines(""))
}

func TestStrictScope(t *testing.T) {
	src := "Top = 1\n" +
		"def f():\n" +
		"    Inner = 2\n"

	diags := checkSource(t, src)
	assertDiagOnLine(t, diags, 1, CodeVariableName)
	assertDiagOnLine(t, diags, 3, CodeVariableName)

	a := New()
	a.StrictScope = true
	diags, err := a.CheckSource([]byte(src), "test.py")
	require.NoError(t, err)
	var lines []int
	for _, d := range diags {
		if d.Code == CodeVariableName {
			lines = append(lines, d.Line)
		}
	}
	assert.Equal(t, []int{3}, lines)
}
