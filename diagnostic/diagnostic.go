// Copyright © 2025 The pysca authors

// Package diagnostic provides Rust-style annotated rendering of pysca
// findings for CLI output. It is intentionally independent of the lint/
// package so that it can be used by any command without creating import
// cycles.
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight in the diagnostic.
type Span struct {
	File   string // path for reading source; display name if unreadable
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based end column (0 = auto-detect from source)
	Label  string // text shown under the underline
}

// Diagnostic represents a single finding with optional source annotations
// and trailing notes.
type Diagnostic struct {
	Severity Severity
	Code     string // style rule code shown in the header, e.g. "S003"
	Message  string
	Spans    []Span
	Notes    []string // "= note:" lines
}
