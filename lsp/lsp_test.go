// Copyright © 2025 The pysca authors

package lsp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/luthersystems/pysca/parser/token"
)

// capturingContext returns a context that captures published diagnostics.
func capturingContext() (*glsp.Context, *[]*protocol.PublishDiagnosticsParams) {
	var captured []*protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				captured = append(captured, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
	return ctx, &captured
}

func openParams(uri, content string) *protocol.DidOpenTextDocumentParams {
	return &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: "python",
			Version:    1,
			Text:       content,
		},
	}
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	s := New()
	ctx, captured := capturingContext()

	err := s.textDocumentDidOpen(ctx, openParams("file:///tmp/a.py", "x = 1;\n"))
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	params := (*captured)[0]
	assert.Equal(t, "file:///tmp/a.py", params.URI)
	require.Len(t, params.Diagnostics, 1)
	d := params.Diagnostics[0]
	assert.Equal(t, "Unnecessary semicolon", d.Message)
	assert.Equal(t, "S003", d.Code.Value)
	assert.Equal(t, protocol.UInteger(0), d.Range.Start.Line)
	// The range spans the finding's whole line.
	assert.Equal(t, protocol.UInteger(6), d.Range.End.Character)
}

func TestDidOpenCleanFile(t *testing.T) {
	s := New()
	ctx, captured := capturingContext()

	err := s.textDocumentDidOpen(ctx, openParams("file:///tmp/clean.py", "x = 1\n"))
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	assert.Empty(t, (*captured)[0].Diagnostics)
}

func TestDidOpenSyntaxError(t *testing.T) {
	s := New()
	ctx, captured := capturingContext()

	err := s.textDocumentDidOpen(ctx, openParams("file:///tmp/bad.py", "def broken(\n"))
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	diags := (*captured)[0].Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)
}

func TestDidChangeDebounces(t *testing.T) {
	s := New()
	ctx, captured := capturingContext()

	require.NoError(t, s.textDocumentDidOpen(ctx, openParams("file:///tmp/a.py", "x = 1\n")))
	require.Len(t, *captured, 1)

	change := &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///tmp/a.py"},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "x = 1;\n"},
		},
	}
	require.NoError(t, s.textDocumentDidChange(ctx, change))

	// No publish until the debounce delay elapses.
	assert.Len(t, *captured, 1)
	assert.Eventually(t, func() bool {
		return len(*captured) == 2
	}, 2*time.Second, 10*time.Millisecond)
	require.Len(t, (*captured)[1].Diagnostics, 1)
	assert.Equal(t, "Unnecessary semicolon", (*captured)[1].Diagnostics[0].Message)
}

func TestDidSavePublishesImmediately(t *testing.T) {
	s := New()
	ctx, captured := capturingContext()

	require.NoError(t, s.textDocumentDidOpen(ctx, openParams("file:///tmp/a.py", "x = 1;\n")))
	require.Len(t, *captured, 1)

	save := &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/a.py"},
	}
	require.NoError(t, s.textDocumentDidSave(ctx, save))
	assert.Len(t, *captured, 2)
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	s := New()
	ctx, captured := capturingContext()

	require.NoError(t, s.textDocumentDidOpen(ctx, openParams("file:///tmp/a.py", "x = 1;\n")))

	closeParams := &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/a.py"},
	}
	require.NoError(t, s.textDocumentDidClose(nil, closeParams))

	require.Len(t, *captured, 2)
	assert.Empty(t, (*captured)[1].Diagnostics)
	assert.Nil(t, s.docs.Get("file:///tmp/a.py"))
}

func TestDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	doc := store.Open("file:///a.py", 1, "x = 1\n")
	assert.Equal(t, doc, store.Get("file:///a.py"))
	assert.Len(t, store.All(), 1)

	changed := store.Change("file:///a.py", 2, "y = 2\n")
	assert.Equal(t, doc, changed)
	assert.Equal(t, int32(2), changed.Version)
	assert.Equal(t, "y = 2\n", changed.Content)

	// Changing an untracked document creates it.
	other := store.Change("file:///b.py", 1, "z = 3\n")
	assert.NotNil(t, other)
	assert.Len(t, store.All(), 2)

	store.Close("file:///a.py")
	assert.Nil(t, store.Get("file:///a.py"))
}

func TestPositionConversion(t *testing.T) {
	pos := locationPosition(&token.Location{File: "a.py", Line: 1, Col: 1})
	assert.Equal(t, protocol.UInteger(0), pos.Line)
	assert.Equal(t, protocol.UInteger(0), pos.Character)

	pos = locationPosition(&token.Location{File: "a.py", Line: 5, Col: 10})
	assert.Equal(t, protocol.UInteger(4), pos.Line)
	assert.Equal(t, protocol.UInteger(9), pos.Character)

	// Zero values clamp instead of underflowing.
	pos = locationPosition(&token.Location{File: "a.py"})
	assert.Equal(t, protocol.UInteger(0), pos.Line)
}

func TestURIConversion(t *testing.T) {
	assert.Equal(t, "/tmp/a.py", uriToPath("file:///tmp/a.py"))
	assert.Equal(t, "a.py", uriToPath("a.py"))
	assert.Equal(t, "file:///tmp/a.py", pathToURI("/tmp/a.py"))
	assert.Equal(t, "rel/a.py", pathToURI("rel/a.py"))
}
