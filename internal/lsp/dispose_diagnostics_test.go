package lsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"kanso/internal/dispose"
	"kanso/internal/dispose/report"
	"kanso/internal/lsp"
)

func TestConvertDisposeDiagnostics_SkipsFindingsWithoutAPosition(t *testing.T) {
	findings := []report.Finding{
		{FunctionName: "f", LocationID: 1, Kind: dispose.KindNotDisposed},
		{FunctionName: "f", LocationID: 2, Kind: dispose.KindMaybeDisposed},
	}
	positions := map[int]protocol.Range{
		1: {Start: protocol.Position{Line: 3, Character: 0}, End: protocol.Position{Line: 3, Character: 4}},
	}

	diagnostics := lsp.ConvertDisposeDiagnostics(findings, positions)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, uint32(3), diagnostics[0].Range.Start.Line)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diagnostics[0].Severity)
}

func TestConvertDisposeDiagnostics_MaybeDisposedIsWarning(t *testing.T) {
	findings := []report.Finding{{FunctionName: "f", LocationID: 1, Kind: dispose.KindMaybeDisposed}}
	positions := map[int]protocol.Range{1: {}}

	diagnostics := lsp.ConvertDisposeDiagnostics(findings, positions)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diagnostics[0].Severity)
}
