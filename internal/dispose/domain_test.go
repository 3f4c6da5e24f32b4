package dispose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleValues() []DisposeAbstractValue {
	opA := &OtherOp{OperationBase: opID(), Label: "a"}
	opB := &OtherOp{OperationBase: opID(), Label: "b"}
	return []DisposeAbstractValue{
		NotDisposable,
		NotDisposed,
		Unknown,
		NotDisposed.WithNewDisposingOperation(opA),
		NotDisposed.WithNewDisposingOperation(opA).WithNewDisposingOperation(opB),
		Unknown.WithNewEscapingOperation(opA),
	}
}

// Lattice laws, spec §8.
func TestDomain_Idempotence(t *testing.T) {
	d := DisposeValueDomain{}
	for _, v := range sampleValues() {
		assert.True(t, v.Equal(d.Merge(v, v)), "Merge(v, v) should equal v for %v", v)
	}
}

func TestDomain_Commutativity(t *testing.T) {
	d := DisposeValueDomain{}
	values := sampleValues()
	for _, a := range values {
		for _, b := range values {
			assert.True(t, d.Merge(a, b).Equal(d.Merge(b, a)), "Merge should commute for %v, %v", a, b)
		}
	}
}

func TestDomain_Associativity(t *testing.T) {
	d := DisposeValueDomain{}
	values := sampleValues()
	for _, a := range values {
		for _, b := range values {
			for _, c := range values {
				left := d.Merge(a, d.Merge(b, c))
				right := d.Merge(d.Merge(a, b), c)
				assert.True(t, left.Equal(right), "Merge should associate for %v, %v, %v", a, b, c)
			}
		}
	}
}

// Bottom, at the map level: a location absent from one side of a merge
// (no path has established anything about it yet) must pass the other
// side's value through unchanged. This is deliberately NOT the same as
// merging with the materialized NotDisposable value — see
// TestDomain_NotDisposableAbsorbs and the comment on
// PerLocationMapDomain.Merge.
func TestMapDomain_Bottom(t *testing.T) {
	maps := PerLocationMapDomain{}
	op := &OtherOp{OperationBase: opID(), Label: "op"}
	loc := newLocation(newType("D"))

	populated := NewPerLocationMap()
	populated.Set(loc, NotDisposed.WithNewDisposingOperation(op))

	merged := maps.Merge(NewPerLocationMap(), populated)
	assert.True(t, merged.Get(loc).Equal(populated.Get(loc)))
}

func TestDomain_NotDisposableAbsorbs(t *testing.T) {
	d := DisposeValueDomain{}
	op := &OtherOp{OperationBase: opID(), Label: "op"}
	disposed := NotDisposed.WithNewDisposingOperation(op)
	assert.True(t, d.Merge(NotDisposable, disposed).Equal(NotDisposable))
	assert.True(t, d.Merge(disposed, NotDisposable).Equal(NotDisposable))
}

func TestDomain_CompareOrder(t *testing.T) {
	d := DisposeValueDomain{}
	assert.True(t, d.Compare(NotDisposable, NotDisposed) < 0)
	assert.True(t, d.Compare(NotDisposed, Unknown) < 0)
	op := &OtherOp{OperationBase: opID(), Label: "op"}
	disposed := NotDisposed.WithNewDisposingOperation(op)
	maybe := disposed.WithNewDisposingOperation(op)
	assert.True(t, d.Compare(disposed, maybe) < 0)
}

// Monotonicity of the transfer function: for pre-states s1 <= s2 and any
// operation, T(op)(s1) <= T(op)(s2).
func TestTransfer_Monotonic(t *testing.T) {
	d := newType("D")
	ts := newTypeSystem()
	ts.markDisposable(d)
	disposeMethod := newMethod("Dispose", d)
	ts.markDisposeImpl(d, disposeMethod)

	loc := newLocation(d)
	receiverRef := &OtherOp{OperationBase: opID(), Label: "x"}
	disposeOp := &InvocationOp{OperationBase: opID(), Target: disposeMethod, Receiver: receiverRef}

	pointsTo := newPointsTo()
	pointsTo.known(receiverRef, loc)

	tf := &DisposeTransferFunction{TypeSystem: ts, DisposableCapability: newType("Disposable"), PointsTo: pointsTo}

	s1 := NewPerLocationMap()
	s1.Set(loc, NotDisposed)

	s2 := NewPerLocationMap()
	s2.Set(loc, Unknown)

	maps := PerLocationMapDomain{}
	assert.True(t, maps.Leq(s1, s2), "test precondition: s1 <= s2")

	block := &BasicBlock{Operations: []Operation{disposeOp}}
	out1 := tf.VisitBlock(block, s1)
	out2 := tf.VisitBlock(block, s2)

	assert.True(t, maps.Leq(out1, out2), "T(op)(s1) should be <= T(op)(s2)")
}
