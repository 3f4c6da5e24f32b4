package dispose

import (
	"context"

	"github.com/tliron/commonlog"
)

// Config bundles the inputs spec §4.6/§6 says DisposeAnalysisFacade
// wires together: the domain symbols, the points-to/null collaborators,
// and the enclosing type.
type Config struct {
	TypeSystem                  TypeSystem
	DisposableCapability        Type
	CollectionCapability        Type
	GenericCollectionCapability Type
	OwnershipTransferTypes      map[string]bool
	PointsTo                    PointsToResult
	NullResult                  NullResult // optional
	EnclosingType               Type
	// Logger is optional; a nil Logger disables logging entirely so the
	// core stays silent by default.
	Logger commonlog.Logger
}

// DisposeAnalysisFacade is C6, the single entry point of the core.
type DisposeAnalysisFacade struct {
	cfg Config
}

// NewDisposeAnalysisFacade validates cfg's mandatory inputs and returns
// a facade ready to analyze procedures against it. Mandatory inputs
// missing is a ContractViolation (spec §7), not a recoverable error.
func NewDisposeAnalysisFacade(cfg Config) (*DisposeAnalysisFacade, error) {
	fail := func(message string) (*DisposeAnalysisFacade, error) {
		if cfg.Logger != nil {
			cfg.Logger.Debugf("dispose analysis: precondition failed: %s", message)
		}
		return nil, wrapContractViolation(message)
	}
	if cfg.TypeSystem == nil {
		return fail("TypeSystem is required")
	}
	if cfg.DisposableCapability == nil {
		return fail("DisposableCapability is required")
	}
	if cfg.PointsTo == nil {
		return fail("PointsTo result is required")
	}
	if cfg.OwnershipTransferTypes == nil {
		cfg.OwnershipTransferTypes = map[string]bool{}
	}
	return &DisposeAnalysisFacade{cfg: cfg}, nil
}

// ComputeDisposeAnalysis runs the dispose-state dataflow analysis over
// cfg and returns the per-block result (spec §6: "computeDisposeAnalysis
// (...) -> AnalysisResult"). A nil cfg is a ContractViolation.
func (f *DisposeAnalysisFacade) ComputeDisposeAnalysis(ctx context.Context, cfg *ControlFlowGraph) (*AnalysisResult, error) {
	logger := f.cfg.Logger
	if cfg == nil || cfg.Entry == nil {
		if logger != nil {
			logger.Debugf("dispose analysis: precondition failed: ControlFlowGraph is required")
		}
		return nil, wrapContractViolation("ControlFlowGraph is required")
	}

	if logger != nil {
		logger.Debugf("dispose analysis: starting, %d blocks", len(cfg.Blocks))
	}

	transfer := &DisposeTransferFunction{
		TypeSystem:                  f.cfg.TypeSystem,
		DisposableCapability:        f.cfg.DisposableCapability,
		CollectionCapability:        f.cfg.CollectionCapability,
		GenericCollectionCapability: f.cfg.GenericCollectionCapability,
		OwnershipTransferTypes:      f.cfg.OwnershipTransferTypes,
		PointsTo:                    f.cfg.PointsTo,
		NullResult:                  f.cfg.NullResult,
		EnclosingType:               f.cfg.EnclosingType,
	}
	engine := NewForwardDataflowEngine(transfer)

	result, err := engine.Run(ctx, cfg)
	if err != nil {
		if logger != nil {
			logger.Debugf("dispose analysis: %s", err)
		}
		return nil, err
	}

	if logger != nil {
		logger.Debugf("dispose analysis: converged, %d blocks visited", len(result.Blocks))
	}
	return result, nil
}
