package ir

// This file provides the main entry point for the IR system.
// The IR is in Static Single Assignment (SSA) form, which is what lets
// internal/dispose run a standard forward dataflow analysis over it.

import (
	"kanso/internal/ast"
	"kanso/internal/semantic"
)

// BuildProgram is the main entry point for converting AST to IR
func BuildProgram(contract *ast.Contract, context *semantic.ContextRegistry) *Program {
	builder := NewBuilder(context)
	return builder.Build(contract)
}

// PrintProgram returns a pretty-printed representation of the IR
func PrintProgram(program *Program) string {
	return Print(program)
}
