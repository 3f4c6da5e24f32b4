// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"kanso/internal/ast"
	"kanso/internal/dispose"
	"kanso/internal/dispose/concurrent"
	"kanso/internal/dispose/irbridge"
	"kanso/internal/dispose/report"
	"kanso/internal/ir"
	"kanso/internal/parser"
	"kanso/internal/semantic"
)

func main() {
	checkDispose := flag.Bool("check-dispose", false, "also run the dispose-state analysis over every function and report undisposed resources")
	disposableStructs := flag.String("disposable-structs", "", "comma-separated struct names treated as disposable resources (required with -check-dispose)")
	ownershipTransferParams := flag.String("ownership-transfer-params", "", "comma-separated parameter type names whose constructor takes ownership of its disposable argument")
	collectionStructs := flag.String("collection-structs", "", "comma-separated struct names treated as collections for the add-heuristic")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: kanso [-check-dispose] [-disposable-structs=A,B] <file.ka>")
		os.Exit(1)
	}

	path := args[0]

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	contract, parseErrs, scanErrs := parser.ParseSource(path, string(source))
	if len(parseErrs) > 0 || len(scanErrs) > 0 {
		reportSourceErrors(string(source), parseErrs, scanErrs)
		os.Exit(1)
	}

	color.Green("✅ Successfully processed %s", path)

	if !*checkDispose {
		return
	}

	cfg := irbridge.Config{
		DisposableStructs:       nameSet(*disposableStructs),
		OwnershipTransferParams: nameSet(*ownershipTransferParams),
		CollectionStructs:       nameSet(*collectionStructs),
	}
	if err := runDisposeCheck(contract, cfg); err != nil {
		color.Red("dispose analysis failed: %v", err)
		os.Exit(1)
	}
}

// reportSourceErrors prints every parse/scan error, caret-style, the
// same way the single top-level parse error used to be reported.
func reportSourceErrors(src string, parseErrs []parser.ParseError, scanErrs []parser.ScanError) {
	lines := strings.Split(src, "\n")
	for _, pe := range parseErrs {
		reportPositionedError("Syntax error", pe.Position, pe.Message, lines)
	}
	for _, se := range scanErrs {
		reportPositionedError("Scan error", se.Position, se.Message, lines)
	}
}

// reportPositionedError prints a friendly caret-style error message at
// the given source position.
func reportPositionedError(kind string, pos parser.Position, message string, lines []string) {
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("❌ %s at unknown location: %s", kind, message)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("❌ %s at line %d, column %d:", kind, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("→ %s\n", message)
}

// runDisposeCheck builds IR for contract and runs the dispose-state
// analysis over every one of its functions concurrently, printing one
// colorized report per function.
func runDisposeCheck(contract *ast.Contract, cfg irbridge.Config) error {
	registry := semantic.NewContextRegistry()
	program := ir.BuildProgram(contract, registry)
	signatures := functionSignatures(program)

	jobs := make([]concurrent.Job, 0, len(program.Functions))
	for _, fn := range program.Functions {
		fn := fn
		jobs = append(jobs, concurrent.Job{
			FunctionName: fn.Name,
			Run: func(ctx context.Context) (*dispose.AnalysisResult, error) {
				return irbridge.AnalyzeFunction(ctx, fn, registry.TypeRegistry(), cfg, signatures)
			},
		})
	}

	cache := concurrent.NewCache()
	results := concurrent.RunAll(context.Background(), jobs, cache, nil)

	var anyFindings bool
	for _, r := range results {
		if r.Err != nil {
			color.Red("%s: dispose analysis error: %v", r.FunctionName, r.Err)
			continue
		}
		findings := report.CollectFindings(r.FunctionName, r.Analysis, nil)
		if len(findings) > 0 {
			anyFindings = true
		}
		report.Print(findings)
	}
	if !anyFindings {
		color.Green("✅ no undisposed resources found across %d functions", len(results))
	}
	return nil
}

// functionSignatures builds the minimal per-function parameter-type
// view irbridge.NewTypeSystem needs to recognize Dispose/Close
// implementations by naming convention, working off the already-built
// IR so the parameter types it sees match what irbridge/translate.go
// produces for call sites.
func functionSignatures(program *ir.Program) []irbridge.FunctionSignature {
	sigs := make([]irbridge.FunctionSignature, 0, len(program.Functions))
	for _, fn := range program.Functions {
		params := make([]string, 0, len(fn.Params))
		for _, p := range fn.Params {
			params = append(params, fmt.Sprintf("%v", p.Type))
		}
		sigs = append(sigs, irbridge.FunctionSignature{Name: fn.Name, ParamTypes: params})
	}
	return sigs
}

func nameSet(csv string) map[string]bool {
	set := make(map[string]bool)
	if strings.TrimSpace(csv) == "" {
		return set
	}
	for _, name := range strings.Split(csv, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			set[name] = true
		}
	}
	return set
}
