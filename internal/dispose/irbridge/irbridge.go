// Package irbridge adapts Kanso's own SSA IR (internal/ir) and type
// registry (internal/types) onto the dispose package's collaborator
// interfaces, so the dispose-state dataflow analysis can run over a
// compiled contract without the core ever importing a concrete IR.
//
// Kanso functions are free functions over explicit parameters, not
// methods with an implicit receiver, so "Dispose"/"Close" detection
// here is a naming-convention heuristic: a function is treated as a
// type's Dispose/Close implementation when its name matches
// (case-insensitively) and its first parameter's declared type is the
// struct being disposed. This is strictly best-effort, matching the
// read-only, miss-tolerant contract TypeSystem.FindInterfaceImplementation
// already documents.
package irbridge

import (
	"fmt"
	"strings"

	"kanso/internal/dispose"
	"kanso/internal/ir"
	"kanso/internal/types"
)

// Config configures how disposability is recognized in a Kanso
// program, since the language itself has no notion of a Disposable
// capability.
type Config struct {
	// DisposableStructs names the user-defined structs treated as
	// disposable resources.
	DisposableStructs map[string]bool
	// OwnershipTransferParams names the parameter types whose
	// constructor-style function is assumed to take ownership of its
	// disposable argument (spec's ownership-transfer heuristic).
	OwnershipTransferParams map[string]bool
	// CollectionStructs names structs treated as collections for the
	// collection-add heuristic.
	CollectionStructs map[string]bool
}

// disposeType wraps an IR static type (or a bare struct name) as a
// dispose.Type.
type disposeType struct{ name string }

func (t disposeType) Name() string { return t.name }

func typeName(t ir.Type) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%v", t)
}

// disposeMethod wraps a Kanso function being treated as a
// Dispose/Close implementation.
type disposeMethod struct {
	name       string
	containing disposeType
}

func (m disposeMethod) Name() string                { return m.name }
func (m disposeMethod) ContainingType() dispose.Type { return m.containing }

// TypeSystem adapts a *types.TypeRegistry plus a Config into
// dispose.TypeSystem.
type TypeSystem struct {
	registry *types.TypeRegistry
	cfg      Config
	// functionsByStruct indexes every parsed function whose first
	// parameter's declared type matches a struct name, keyed by struct
	// name then lower-cased function name, for FindInterfaceImplementation.
	functionsByStruct map[string]map[string]disposeMethod
}

// NewTypeSystem builds a TypeSystem. functions lists every function in
// the contract under analysis (used only for the Dispose/Close
// implementation lookup).
func NewTypeSystem(registry *types.TypeRegistry, cfg Config, functions []FunctionSignature) *TypeSystem {
	index := make(map[string]map[string]disposeMethod)
	for _, fn := range functions {
		if len(fn.ParamTypes) == 0 {
			continue
		}
		structName := fn.ParamTypes[0]
		if index[structName] == nil {
			index[structName] = make(map[string]disposeMethod)
		}
		index[structName][strings.ToLower(fn.Name)] = disposeMethod{
			name:       fn.Name,
			containing: disposeType{name: structName},
		}
	}
	return &TypeSystem{registry: registry, cfg: cfg, functionsByStruct: index}
}

// FunctionSignature is the minimal shape NewTypeSystem needs from a
// contract's function list; cmd/kanso-cli builds these from the
// *ir.Function values of the built ir.Program.
type FunctionSignature struct {
	Name       string
	ParamTypes []string
}

func (ts *TypeSystem) IsDisposable(t dispose.Type) bool {
	if t == nil {
		return false
	}
	if !ts.cfg.DisposableStructs[t.Name()] {
		return false
	}
	// When a real type registry is available, require the name to also
	// resolve to an actual user-defined struct: a typo in
	// Config.DisposableStructs should silently fail to match rather
	// than be treated as disposable. With no registry (unit tests
	// exercising the bridge in isolation), the name set alone decides.
	if ts.registry != nil {
		return ts.registry.IsUserDefinedType(t.Name())
	}
	return true
}

func (ts *TypeSystem) DerivesFrom(t dispose.Type, other dispose.Type) bool {
	if t == nil || other == nil {
		return false
	}
	if other.Name() == "Collection" {
		return ts.cfg.CollectionStructs[t.Name()]
	}
	return false
}

func (ts *TypeSystem) FindInterfaceImplementation(t dispose.Type, interfaceMethodName string) dispose.Method {
	if t == nil {
		return nil
	}
	methods, ok := ts.functionsByStruct[t.Name()]
	if !ok {
		return nil
	}
	m, ok := methods[strings.ToLower(interfaceMethodName)]
	if !ok {
		return nil
	}
	return m
}

// IsOwnershipTransferParam reports whether paramType is one of the
// configured ownership-transfer parameter types.
func (ts *TypeSystem) IsOwnershipTransferParam(paramType string) bool {
	return ts.cfg.OwnershipTransferParams[paramType]
}
