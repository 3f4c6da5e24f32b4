package irbridge

import (
	"context"

	"kanso/internal/dispose"
	"kanso/internal/ir"
	"kanso/internal/types"
)

// disposableCapability is the single Type every bridged struct is
// checked against; Kanso has no interface/capability system of its
// own, so this is just a fixed marker satisfying
// dispose.Config.DisposableCapability's non-nil precondition.
type disposableCapability struct{}

func (disposableCapability) Name() string { return "Disposable" }

// collectionCapability is the marker DerivesFrom checks against for
// the collection-add heuristic (see TypeSystem.DerivesFrom).
type collectionCapability struct{}

func (collectionCapability) Name() string { return "Collection" }

// AnalyzeFunction runs the dispose-state dataflow analysis over a
// single Kanso function, bridging its IR onto the dispose package's
// collaborator interfaces. functions supplies every function's
// signature in the enclosing contract so Dispose/Close implementations
// can be recognized by naming convention (see TypeSystem).
func AnalyzeFunction(ctx context.Context, fn *ir.Function, registry *types.TypeRegistry, cfg Config, functions []FunctionSignature) (*dispose.AnalysisResult, error) {
	ts := NewTypeSystem(registry, cfg, functions)
	facade, err := dispose.NewDisposeAnalysisFacade(dispose.Config{
		TypeSystem:             ts,
		DisposableCapability:   disposableCapability{},
		CollectionCapability:   collectionCapability{},
		OwnershipTransferTypes: cfg.OwnershipTransferParams,
		PointsTo:               NewPointsToResult(),
	})
	if err != nil {
		return nil, err
	}
	return facade.ComputeDisposeAnalysis(ctx, BuildCFG(fn, ts))
}
