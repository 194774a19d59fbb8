// Copyright © 2025 The pysca authors

package cmd

import (
	"errors"
	"os"

	"github.com/luthersystems/pysca/diagnostic"
	lintpkg "github.com/luthersystems/pysca/lint"
	"github.com/luthersystems/pysca/parser/token"
)

func colorMode() diagnostic.ColorMode {
	switch colorFlag {
	case "always":
		return diagnostic.ColorAlways
	case "never":
		return diagnostic.ColorNever
	default:
		return diagnostic.ColorAuto
	}
}

func newRenderer() *diagnostic.Renderer {
	return &diagnostic.Renderer{Color: colorMode()}
}

// lintDiagToDiagnostic converts a lint.Diagnostic for annotated display.
func lintDiagToDiagnostic(ld lintpkg.Diagnostic) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityWarning,
		Code:     ld.Code.String(),
		Message:  ld.Message,
	}
	if ld.Line > 0 {
		d.Spans = append(d.Spans, diagnostic.Span{
			File: ld.File,
			Line: ld.Line,
		})
	}
	return d
}

// parseErrorToDiagnostic converts a syntax error for annotated display.
// The source span is included when the error carries a location.
func parseErrorToDiagnostic(err error) diagnostic.Diagnostic {
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
	return d
}

// renderCheckDiagnostics renders findings with annotated formatting to stderr.
func renderCheckDiagnostics(diags []lintpkg.Diagnostic) {
	var ds []diagnostic.Diagnostic
	for _, ld := range diags {
		ds = append(ds, lintDiagToDiagnostic(ld))
	}
	r := newRenderer()
	_ = r.RenderAll(os.Stderr, ds)
}

// renderCheckError renders a syntax or IO error to stderr.
func renderCheckError(err error) {
	_ = newRenderer().Render(os.Stderr, parseErrorToDiagnostic(err))
}
