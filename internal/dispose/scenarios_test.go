package dispose

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestFacade wires a facade around ts/pointsTo with a "D" Disposable
// capability, matching the common setup of spec §8's scenarios.
func newTestFacade(t *testing.T, ts *fixtureTypeSystem, pointsTo *fixturePointsTo, ownershipTransfer map[string]bool) *DisposeAnalysisFacade {
	t.Helper()
	facade, err := NewDisposeAnalysisFacade(Config{
		TypeSystem:             ts,
		DisposableCapability:   newType("Disposable"),
		PointsTo:               pointsTo,
		OwnershipTransferTypes: ownershipTransfer,
	})
	require.NoError(t, err)
	return facade
}

// Scenario 1 — plain disposal: x := new D(); x.Dispose();
func TestScenario1_PlainDisposal(t *testing.T) {
	d := newType("D")
	ts := newTypeSystem()
	ts.markDisposable(d)

	create := &InstanceCreationOp{OperationBase: opID(), ConstructedType: d}
	loc := newLocation(d)

	disposeMethod := newMethod("Dispose", d)
	ts.markDisposeImpl(d, disposeMethod)
	receiverRef := &OtherOp{OperationBase: opID(), Label: "x"}
	dispose := &InvocationOp{OperationBase: opID(), Target: disposeMethod, Receiver: receiverRef}

	pointsTo := newPointsTo()
	pointsTo.known(create, loc)
	pointsTo.known(receiverRef, loc)

	facade := newTestFacade(t, ts, pointsTo, nil)
	cfg := straightLineCFG(create, dispose)

	result, err := facade.ComputeDisposeAnalysis(context.Background(), cfg)
	require.NoError(t, err)

	final := result.ExitState.Get(loc)
	assert.Equal(t, KindDisposed, final.Kind())
	assert.Len(t, final.DisposingOps(), 1)
	assert.Equal(t, dispose.ID(), final.DisposingOps()[0].ID())
}

// Scenario 2 — branch with missed dispose:
// x := new D(); if (cond) { x.Dispose(); }
func TestScenario2_BranchWithMissedDispose(t *testing.T) {
	d := newType("D")
	ts := newTypeSystem()
	ts.markDisposable(d)
	disposeMethod := newMethod("Dispose", d)
	ts.markDisposeImpl(d, disposeMethod)

	create := &InstanceCreationOp{OperationBase: opID(), ConstructedType: d}
	loc := newLocation(d)

	receiverRef := &OtherOp{OperationBase: opID(), Label: "x"}
	dispose := &InvocationOp{OperationBase: opID(), Target: disposeMethod, Receiver: receiverRef}

	pointsTo := newPointsTo()
	pointsTo.known(create, loc)
	pointsTo.known(receiverRef, loc)

	facade := newTestFacade(t, ts, pointsTo, nil)
	cfg := diamondCFG([]Operation{create}, []Operation{dispose}, nil, nil)

	result, err := facade.ComputeDisposeAnalysis(context.Background(), cfg)
	require.NoError(t, err)

	final := result.ExitState.Get(loc)
	assert.Equal(t, KindMaybeDisposed, final.Kind())
	ops := final.DisposingOps()
	require.Len(t, ops, 1)
	assert.Equal(t, dispose.ID(), ops[0].ID())
}

// Scenario 3 — scoped acquisition: using (r = new D()) { ... }
func TestScenario3_ScopedAcquisition(t *testing.T) {
	d := newType("D")
	ts := newTypeSystem()
	ts.markDisposable(d)

	create := &InstanceCreationOp{OperationBase: opID(), ConstructedType: d}
	loc := newLocation(d)

	scoped := &ScopedAcquisitionOp{OperationBase: opID(), Single: create}

	pointsTo := newPointsTo()
	pointsTo.known(create, loc)

	facade := newTestFacade(t, ts, pointsTo, nil)
	cfg := straightLineCFG(create, scoped)

	result, err := facade.ComputeDisposeAnalysis(context.Background(), cfg)
	require.NoError(t, err)

	final := result.ExitState.Get(loc)
	assert.Equal(t, KindDisposed, final.Kind())
	ops := final.DisposingOps()
	require.Len(t, ops, 1)
	assert.Equal(t, scoped.ID(), ops[0].ID())
}

// Scenario 4 — ownership transfer to constructor:
// T_ownershipTransfer = {Stream}; x := new StreamReader(new FileStream(...))
func TestScenario4_OwnershipTransferToConstructor(t *testing.T) {
	stream := newType("Stream")
	fileStream := newType("FileStream")
	streamReader := newType("StreamReader")

	ts := newTypeSystem()
	ts.markDisposable(fileStream)
	ts.markDisposable(streamReader)

	createFile := &InstanceCreationOp{OperationBase: opID(), ConstructedType: fileStream}
	fileLoc := newLocation(fileStream)

	arg := &ArgumentOp{OperationBase: opID(), Value: createFile, OwnerParamType: stream}

	createReader := &InstanceCreationOp{OperationBase: opID(), ConstructedType: streamReader}
	readerLoc := newLocation(streamReader)

	pointsTo := newPointsTo()
	pointsTo.known(createFile, fileLoc)
	pointsTo.known(createReader, readerLoc)

	facade := newTestFacade(t, ts, pointsTo, map[string]bool{"Stream": true})
	cfg := straightLineCFG(createFile, arg, createReader)

	result, err := facade.ComputeDisposeAnalysis(context.Background(), cfg)
	require.NoError(t, err)

	fileFinal := result.ExitState.Get(fileLoc)
	assert.Equal(t, KindMaybeDisposed, fileFinal.Kind())
	require.Len(t, fileFinal.DisposingOps(), 1)
	assert.Equal(t, arg.ID(), fileFinal.DisposingOps()[0].ID())

	readerFinal := result.ExitState.Get(readerLoc)
	assert.Equal(t, KindNotDisposed, readerFinal.Kind())
	assert.Empty(t, readerFinal.DisposingOps())
}

// Scenario 5 — factory heuristic: x := File.Open("p")
func TestScenario5_FactoryHeuristic(t *testing.T) {
	fileHandle := newType("FileHandle")
	ts := newTypeSystem()
	ts.markDisposable(fileHandle)

	fileType := newType("File")
	openMethod := newMethod("Open", fileType)
	open := &InvocationOp{
		OperationBase:  opID(),
		Target:         openMethod,
		IsStatic:       true,
		ReturnType:     fileHandle,
		NameLower:      "open",
		HasReturnValue: true,
	}
	loc := newLocation(fileHandle)

	pointsTo := newPointsTo()
	pointsTo.known(open, loc)

	facade := newTestFacade(t, ts, pointsTo, nil)
	cfg := straightLineCFG(open)

	result, err := facade.ComputeDisposeAnalysis(context.Background(), cfg)
	require.NoError(t, err)

	final := result.ExitState.Get(loc)
	assert.Equal(t, KindNotDisposed, final.Kind())
	assert.Empty(t, final.DisposingOps())
}

// Scenario 6 — Close from within Dispose must not mark `this` disposed.
func TestScenario6_CloseFromWithinDisposeSuppressed(t *testing.T) {
	d := newType("D")
	ts := newTypeSystem()
	ts.markDisposable(d)
	closeMethod := newMethod("Close", d)

	thisRef := &OtherOp{OperationBase: opID(), Label: "this"}
	closeCall := &InvocationOp{
		OperationBase:  opID(),
		Target:         closeMethod,
		Receiver:       thisRef,
		IsThisReceiver: true,
	}
	loc := newLocation(d)

	pointsTo := newPointsTo()
	pointsTo.known(thisRef, loc)

	facade := newTestFacade(t, ts, pointsTo, nil)
	cfg := straightLineCFG(closeCall)

	result, err := facade.ComputeDisposeAnalysis(context.Background(), cfg)
	require.NoError(t, err)

	// loc never received an explicit entry, so it reads back as bottom
	// (NotDisposable) rather than any disposed state.
	final := result.ExitState.Get(loc)
	assert.Equal(t, KindNotDisposable, final.Kind())
	assert.False(t, result.ExitState.Has(loc))
}
