package dispose

import (
	"container/list"
	"context"
)

// BlockState is the entry and exit PerLocationMap of one basic block.
type BlockState struct {
	Entry *PerLocationMap
	Exit  *PerLocationMap
}

// AnalysisResult is C6's/C5's output: the per-block entry/exit maps for
// an entire procedure, plus the final exit state of the procedure's exit
// block(s) merged together.
type AnalysisResult struct {
	Blocks    map[*BasicBlock]BlockState
	ExitState *PerLocationMap
}

// ErrCancelled is returned by Run when ctx is cancelled mid-analysis
// (spec §5/§7). It is a plain sentinel, not wrapped, since cancellation
// is an expected outcome, not a programmer error.
var ErrCancelled = &cancelledError{}

type cancelledError struct{}

func (*cancelledError) Error() string { return "dispose analysis: cancelled" }

// ForwardDataflowEngine is C5: the monotone-framework worklist solver
// described in spec §4.5.
type ForwardDataflowEngine struct {
	transfer *DisposeTransferFunction
	maps     PerLocationMapDomain
}

// NewForwardDataflowEngine builds an engine around transfer. One engine
// is built per procedure analysis (spec §4.6).
func NewForwardDataflowEngine(transfer *DisposeTransferFunction) *ForwardDataflowEngine {
	return &ForwardDataflowEngine{transfer: transfer}
}

// Run executes the worklist algorithm of spec §4.5 over cfg and returns
// the per-block results. ctx is checked at block boundaries only
// (spec §5: "checked at block boundaries"); a cancelled ctx aborts the
// run and returns ErrCancelled with a nil result.
func (e *ForwardDataflowEngine) Run(ctx context.Context, cfg *ControlFlowGraph) (*AnalysisResult, error) {
	entries := make(map[*BasicBlock]*PerLocationMap, len(cfg.Blocks))
	exits := make(map[*BasicBlock]*PerLocationMap, len(cfg.Blocks))
	for _, b := range cfg.Blocks {
		entries[b] = NewPerLocationMap()
		exits[b] = NewPerLocationMap()
	}

	worklist := list.New()
	queued := make(map[*BasicBlock]bool)
	push := func(b *BasicBlock) {
		if !queued[b] {
			queued[b] = true
			worklist.PushBack(b)
		}
	}
	push(cfg.Entry)

	for worklist.Len() > 0 {
		select {
		case <-ctx.Done():
			return nil, ErrCancelled
		default:
		}

		front := worklist.Front()
		worklist.Remove(front)
		block := front.Value.(*BasicBlock)
		queued[block] = false

		entry := e.joinPredecessors(block, exits)
		entries[block] = entry

		exit := e.transfer.VisitBlock(block, entry)

		if e.maps.Equal(exit, exits[block]) {
			continue
		}
		exits[block] = exit

		for _, succ := range block.Successors {
			push(succ)
		}
	}

	blocks := make(map[*BasicBlock]BlockState, len(cfg.Blocks))
	for _, b := range cfg.Blocks {
		blocks[b] = BlockState{Entry: entries[b], Exit: exits[b]}
	}

	finalExit := NewPerLocationMap()
	for _, b := range cfg.Blocks {
		if len(b.Successors) == 0 {
			finalExit = e.maps.Merge(finalExit, exits[b])
		}
	}

	return &AnalysisResult{Blocks: blocks, ExitState: finalExit}, nil
}

// joinPredecessors computes B.entry = merge of predExit(B) (spec §4.5
// step 3). The procedure's entry block has no predecessors and joins to
// the empty map, i.e. all-bottom (spec §4.5 step 1).
func (e *ForwardDataflowEngine) joinPredecessors(b *BasicBlock, exits map[*BasicBlock]*PerLocationMap) *PerLocationMap {
	if len(b.Predecessors) == 0 {
		return NewPerLocationMap()
	}
	result := exits[b.Predecessors[0]]
	for _, pred := range b.Predecessors[1:] {
		result = e.maps.Merge(result, exits[pred])
	}
	return result
}
