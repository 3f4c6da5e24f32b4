// Package report formats dispose-state analysis findings for the CLI
// and, via internal/lsp's ConvertDisposeDiagnostics, the language
// server, matching the colorized style cmd/kanso-cli/main.go already
// uses for parse errors.
package report

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/iancoleman/strcase"

	"kanso/internal/dispose"
)

// Finding is one location whose exit-state kind warrants reporting:
// NotDisposed, MaybeDisposed, or Unknown. Disposed and NotDisposable
// locations are never findings — they're the clean cases.
type Finding struct {
	FunctionName string
	LocationID   int
	LocationType string
	Kind         dispose.DisposeKind
}

// Code returns a short, stable, screaming-snake-case identifier for the
// finding's kind (e.g. "MAYBE_DISPOSED"), suitable for grepping CI
// output or keying a suppression list.
func (f Finding) Code() string {
	return strcase.ToScreamingSnake(f.Kind.String())
}

// CollectFindings walks result's exit state and returns one Finding per
// reportable location, sorted by location id for deterministic output.
func CollectFindings(functionName string, result *dispose.AnalysisResult, locationTypes map[int]string) []Finding {
	if result == nil || result.ExitState == nil {
		return nil
	}
	var findings []Finding
	for _, loc := range result.ExitState.Keys() {
		kind := result.ExitState.Get(loc).Kind()
		if kind == dispose.KindDisposed || kind == dispose.KindNotDisposable {
			continue
		}
		findings = append(findings, Finding{
			FunctionName: functionName,
			LocationID:   loc.ID(),
			LocationType: locationTypes[loc.ID()],
			Kind:         kind,
		})
	}
	sort.Slice(findings, func(i, j int) bool { return findings[i].LocationID < findings[j].LocationID })
	return findings
}

// Print writes one colorized line per finding: red for NotDisposed
// (never disposed on this path), yellow for MaybeDisposed or Unknown
// (disposed on only some paths, or state lost at a join/escape).
func Print(findings []Finding) {
	for _, f := range findings {
		line := fmt.Sprintf("[%s] %s: location %d (%s) is %s", f.Code(), f.FunctionName, f.LocationID, f.LocationType, f.Kind)
		switch f.Kind {
		case dispose.KindNotDisposed:
			color.Red(line)
		default:
			color.Yellow(line)
		}
	}
	if len(findings) == 0 {
		color.Green("✅ no undisposed resources found")
	}
}
