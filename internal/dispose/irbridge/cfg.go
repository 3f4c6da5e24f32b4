package irbridge

import (
	"kanso/internal/dispose"
	"kanso/internal/ir"
)

// location adapts an SSA *ir.Value as a dispose.AbstractLocation. Per
// the simplification this bridge makes (no separate points-to pass
// exists over Kanso's IR), SSA value identity stands in directly for
// an abstract location: each *ir.Value already denotes exactly one
// definition, so aliasing through it is already as precise as the
// points-to collaborator's contract requires.
type location struct {
	value *ir.Value
}

func (l *location) ID() int { return l.value.ID }
func (l *location) StaticType() dispose.Type {
	return disposeType{name: typeName(l.value.Type)}
}

// valueProducer is implemented by every bridged operation that
// produces an SSA value, letting the points-to adapter below recover
// the location it denotes without a type switch over every op kind.
type valueProducer interface {
	producedValue() *ir.Value
}

// pointsTo implements dispose.PointsToResult directly off SSA value
// identity: an operation that produces a value points to that value's
// location; anything else has no location.
type pointsTo struct{}

func (pointsTo) PointsTo(op dispose.Operation) dispose.PointsToValue {
	vp, ok := op.(valueProducer)
	if !ok {
		return dispose.PointsToValue{Kind: dispose.PointsToNoLocation}
	}
	v := vp.producedValue()
	if v == nil {
		return dispose.PointsToValue{Kind: dispose.PointsToNoLocation}
	}
	return dispose.PointsToValue{
		Kind:      dispose.PointsToKnown,
		Locations: []dispose.AbstractLocation{&location{value: v}},
	}
}

// NewPointsToResult returns the points-to collaborator used alongside
// BuildCFG's operations.
func NewPointsToResult() dispose.PointsToResult { return pointsTo{} }

// BuildCFG translates fn's basic blocks into a dispose.ControlFlowGraph.
// ts determines which instructions are treated as
// instance creations, Dispose/Close invocations, or assignments that
// escape; every other instruction becomes an opaque OtherOp so the
// transfer function's default no-op case handles it.
func BuildCFG(fn *ir.Function, ts *TypeSystem) *dispose.ControlFlowGraph {
	blockByLabel := make(map[*ir.BasicBlock]*dispose.BasicBlock, len(fn.Blocks))
	for _, b := range fn.Blocks {
		blockByLabel[b] = &dispose.BasicBlock{Label: b.Label}
	}
	for _, b := range fn.Blocks {
		out := blockByLabel[b]
		for _, inst := range b.Instructions {
			out.Operations = append(out.Operations, translate(inst, ts)...)
		}
		if term := b.Terminator; term != nil {
			out.Operations = append(out.Operations, translate(term, ts)...)
		}
		for _, pred := range b.Predecessors {
			out.Predecessors = append(out.Predecessors, blockByLabel[pred])
		}
		for _, succ := range b.Successors {
			out.Successors = append(out.Successors, blockByLabel[succ])
		}
	}

	blocks := make([]*dispose.BasicBlock, 0, len(fn.Blocks))
	for _, b := range fn.Blocks {
		blocks = append(blocks, blockByLabel[b])
	}

	var entry *dispose.BasicBlock
	if fn.Entry != nil {
		entry = blockByLabel[fn.Entry]
	} else if len(blocks) > 0 {
		entry = blocks[0]
	}

	return &dispose.ControlFlowGraph{Entry: entry, Blocks: blocks}
}
