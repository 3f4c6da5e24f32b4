package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"kanso/internal/dispose/report"
)

// ConvertDisposeDiagnostics transforms dispose-state analysis findings
// into LSP diagnostics, mirroring ConvertParseErrors/ConvertScanErrors'
// shape. positions maps a finding's location id to the source range the
// client should underline; a location with no known position is
// skipped, since a diagnostic with no range cannot be displayed.
func ConvertDisposeDiagnostics(findings []report.Finding, positions map[int]protocol.Range) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, f := range findings {
		rng, ok := positions[f.LocationID]
		if !ok {
			continue
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    rng,
			Severity: disposeSeverityPtr(f),
			Source:   disposeStringPtr("kanso-dispose"),
			Message:  disposeMessage(f) + " [" + f.Code() + "]",
		})
	}

	return diagnostics
}

func disposeMessage(f report.Finding) string {
	switch f.Kind.String() {
	case "NotDisposed":
		return "disposable value is never disposed on this path"
	case "MaybeDisposed":
		return "disposable value is disposed on only some paths"
	default:
		return "disposable value's dispose-state could not be determined"
	}
}

func disposeSeverityPtr(f report.Finding) *protocol.DiagnosticSeverity {
	s := protocol.DiagnosticSeverityWarning
	if f.Kind.String() == "NotDisposed" {
		s = protocol.DiagnosticSeverityError
	}
	return &s
}

func disposeStringPtr(s string) *string { return &s }
