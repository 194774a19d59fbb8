// Copyright © 2025 The pysca authors

// Package repl implements an interactive loop for checking python
// snippets.  Input is buffered until a complete top-level statement is
// available and then run through the analyzer, printing any findings.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"

	"github.com/luthersystems/pysca/diagnostic"
	"github.com/luthersystems/pysca/lint"
	"github.com/luthersystems/pysca/parser/token"
)

type config struct {
	stdin  io.ReadCloser
	stderr io.WriteCloser
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output of the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// RunRepl runs an interactive check loop with the default analyzer.
func RunRepl(prompt string, opts ...Option) {
	RunAnalyzer(lint.New(), prompt, strings.Repeat(".", len(prompt)-1)+" ", opts...)
}

// RunAnalyzer runs an interactive check loop.  Single-line statements are
// checked immediately; a line opening a suite or left unfinished switches
// to the continuation prompt and the buffered block is checked when a
// blank line submits it.
func RunAnalyzer(analyzer *lint.Analyzer, prompt, cont string, opts ...Option) {
	cfg := newConfig(opts...)
	out := io.WriteCloser(os.Stderr)
	if cfg.stderr != nil {
		out = cfg.stderr
	}

	rlCfg := &readline.Config{
		Stdout:            out,
		Stderr:            out,
		Prompt:            prompt,
		HistoryFile:       historyPath(),
		HistorySearchFold: true,
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		errlnf("readline: %v", err)
		return
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	var buffer []string
	for {
		if len(buffer) == 0 {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(cont)
		}
		line, err := rl.ReadSlice()
		if err == readline.ErrInterrupt {
			buffer = nil
			continue
		}
		if err != nil {
			break
		}
		text := string(line)

		if len(buffer) == 0 {
			if strings.TrimSpace(text) == "" {
				continue
			}
			if needsMore(text) {
				buffer = append(buffer, text)
				continue
			}
			checkSnippet(out, analyzer, text+"\n")
			continue
		}

		if strings.TrimSpace(text) == "" {
			checkSnippet(out, analyzer, strings.Join(buffer, "\n")+"\n")
			buffer = nil
			continue
		}
		buffer = append(buffer, text)
	}
}

// needsMore reports whether a line opens a block or is explicitly
// continued, so that further input belongs to the same statement.  The
// bracket scan is a heuristic: quote characters are not tracked.
func needsMore(line string) bool {
	trimmed := strings.TrimRightFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
	if strings.HasSuffix(trimmed, ":") || strings.HasSuffix(trimmed, "\\") {
		return true
	}
	depth := 0
	for _, r := range trimmed {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	return depth > 0
}

// checkSnippet analyzes one submitted snippet and prints the findings.
func checkSnippet(w io.Writer, analyzer *lint.Analyzer, src string) {
	diags, err := analyzer.CheckSource([]byte(src), "<stdin>")
	if err != nil {
		renderSnippetError(w, err)
		return
	}
	lint.FormatText(w, diags)
}

// renderSnippetError renders a syntax error, with its location in the
// snippet when the error carries one.
func renderSnippetError(w io.Writer, err error) {
	r := &diagnostic.Renderer{Color: diagnostic.ColorNever}
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Message:  err.Error(),
	}
	var lerr *token.LocationError
	if errors.As(err, &lerr) && lerr.Source != nil {
		d.Message = lerr.Err.Error()
		d.Spans = append(d.Spans, diagnostic.Span{
			File: lerr.Source.File,
			Line: lerr.Source.Line,
			Col:  lerr.Source.Col,
		})
	}
	_ = r.Render(w, d)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pysca_history")
}

// errlnf reports REPL infrastructure failures to the process stderr.
func errlnf(format string, v ...interface{}) {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	fmt.Fprintf(os.Stderr, format, v...)
}
