// Copyright © 2025 The pysca authors

package lsp

import (
	"errors"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/luthersystems/pysca/lint"
	"github.com/luthersystems/pysca/parser/token"
)

const debounceDelay = 300 * time.Millisecond

// textDocumentDidOpen handles the textDocument/didOpen notification.
func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.captureNotify(ctx)
	doc := s.docs.Open(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		params.TextDocument.Text,
	)
	s.checkAndPublish(doc)
	return nil
}

// textDocumentDidChange handles the textDocument/didChange notification.
func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.captureNotify(ctx)
	// With full sync, the last content change is the complete document.
	var content string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = c.Text
		}
	}

	doc := s.docs.Change(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		content,
	)

	// Debounce: delay analysis to avoid thrashing during rapid edits.
	s.debounceMu.Lock()
	if t, ok := s.debounce[doc.URI]; ok {
		t.Stop()
	}
	s.debounce[doc.URI] = time.AfterFunc(debounceDelay, func() {
		defer func() { _ = recover() }() // don't crash the server on analysis panic
		d := s.docs.Get(doc.URI)
		if d != nil {
			s.checkAndPublish(d)
		}
	})
	s.debounceMu.Unlock()
	return nil
}

// textDocumentDidSave handles the textDocument/didSave notification.
func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.captureNotify(ctx)
	// Cancel any pending debounce and publish immediately.
	s.debounceMu.Lock()
	if t, ok := s.debounce[params.TextDocument.URI]; ok {
		t.Stop()
		delete(s.debounce, params.TextDocument.URI)
	}
	s.debounceMu.Unlock()

	doc := s.docs.Get(params.TextDocument.URI)
	if doc != nil {
		s.checkAndPublish(doc)
	}
	return nil
}

// textDocumentDidClose handles the textDocument/didClose notification.
func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	// Cancel pending debounce.
	s.debounceMu.Lock()
	if t, ok := s.debounce[params.TextDocument.URI]; ok {
		t.Stop()
		delete(s.debounce, params.TextDocument.URI)
	}
	s.debounceMu.Unlock()

	// Clear diagnostics for the closed file.
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})

	s.docs.Close(params.TextDocument.URI)
	return nil
}

// checkAndPublish runs the analyzer on a document and publishes the
// resulting diagnostics to the client.  A syntax error produces a single
// error diagnostic; otherwise every finding becomes a warning covering
// its source line.
func (s *Server) checkAndPublish(doc *Document) {
	doc.mu.Lock()
	doc.check(s.analyzer)
	checkErr := doc.checkErr
	findings := doc.diags
	content := doc.Content
	uri := doc.URI
	doc.mu.Unlock()

	diags := []protocol.Diagnostic{}
	if checkErr != nil {
		diags = append(diags, protocol.Diagnostic{
			Range:    parseErrorRange(checkErr),
			Severity: severity(protocol.DiagnosticSeverityError),
			Source:   strPtr("pysca"),
			Message:  checkErr.Error(),
		})
	}
	lines := splitContentLines(content)
	for _, d := range findings {
		diags = append(diags, convertDiagnostic(d, lines))
	}

	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

// convertDiagnostic converts a lint.Diagnostic to an LSP Diagnostic
// spanning the finding's whole source line.
func convertDiagnostic(d lint.Diagnostic, lines []string) protocol.Diagnostic {
	line := d.Line
	if line > 0 {
		line--
	}
	endCol := 0
	if line < len(lines) {
		endCol = len([]rune(lines[line]))
	}
	sev := protocol.DiagnosticSeverityWarning
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: safeUint(line), Character: 0},
			End:   protocol.Position{Line: safeUint(line), Character: safeUint(endCol)},
		},
		Severity: &sev,
		Source:   strPtr("pysca"),
		Code:     &protocol.IntegerOrString{Value: d.Code.String()},
		Message:  d.Message,
	}
}

// parseErrorRange extracts source position from a syntax error, returning
// a non-zero LSP range when the error carries a location.
func parseErrorRange(err error) protocol.Range {
	var locErr *token.LocationError
	if errors.As(err, &locErr) && locErr.Source != nil && locErr.Source.Line > 0 {
		return locationRange(locErr.Source, 1)
	}
	return protocol.Range{}
}

func severity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func strPtr(s string) *string {
	return &s
}
