package dispose

import "strings"

// disposeMethodKind is the result of the dispose-method classification
// helper in spec §4.4.
type disposeMethodKind int

const (
	methodNone disposeMethodKind = iota
	methodDispose
	methodDisposeBool
	methodClose
)

// DisposeTransferFunction is C4: the operation visitor that updates a
// PerLocationMap for each operation in a block. One instance is built
// per procedure analysis (spec §4.6: "Allocates a single transfer
// function... per call").
type DisposeTransferFunction struct {
	TypeSystem                  TypeSystem
	DisposableCapability        Type
	CollectionCapability        Type
	GenericCollectionCapability Type
	// OwnershipTransferTypes is T_ownershipTransfer from spec §4.4,
	// keyed by Type.Name(): types whose single-parameter constructor is
	// heuristically assumed to take ownership of the argument.
	OwnershipTransferTypes map[string]bool
	PointsTo               PointsToResult
	NullResult             NullResult // optional; may be nil
	EnclosingType          Type

	values PerLocationMapDomain
}

// isDisposable reports whether t transitively implements the Disposable
// capability (spec §4.4 "Helper: disposability test").
func (tf *DisposeTransferFunction) isDisposable(t Type) bool {
	if t == nil {
		return false
	}
	return tf.TypeSystem.IsDisposable(t)
}

// SetAbstractValue is the single mutator every update goes through (spec
// §4.4): it precondition-checks that loc's static type is disposable
// before writing.
func (tf *DisposeTransferFunction) SetAbstractValue(m *PerLocationMap, loc AbstractLocation, v DisposeAbstractValue) {
	if !tf.isDisposable(loc.StaticType()) {
		panic(wrapContractViolation("SetAbstractValue: location type is not disposable"))
	}
	m.Set(loc, v)
}

// ResetToTop implements spec §4.4's "state-reset on merge": every key
// currently present is set to Unknown, preserving the key set so the
// monotonicity invariant (keys never shrink) holds.
func (tf *DisposeTransferFunction) ResetToTop(m *PerLocationMap) *PerLocationMap {
	out := m.Clone()
	for _, loc := range out.Keys() {
		out.Set(loc, Unknown)
	}
	return out
}

// VisitBlock runs the transfer function over every operation of block in
// order, starting from entry, and returns the resulting exit map. entry
// is never mutated; VisitBlock works on a clone (spec §4.3: "Cloning is
// deep at the map level").
func (tf *DisposeTransferFunction) VisitBlock(block *BasicBlock, entry *PerLocationMap) *PerLocationMap {
	m := entry.Clone()
	for _, op := range block.Operations {
		tf.visitOperation(m, op)
	}
	return m
}

func (tf *DisposeTransferFunction) visitOperation(m *PerLocationMap, op Operation) {
	// The base visitor in a real operation tree walks children in
	// evaluation order before the dispose-specific update runs (spec
	// §4.4); here every operand is itself a node already present
	// earlier in the block's operation list, so there is nothing
	// further to recurse into — the dispose-specific update below is
	// the entirety of this visitor's post-action.
	switch o := op.(type) {
	case *InstanceCreationOp:
		tf.visitInstanceCreation(m, o)
	case *InvocationOp:
		tf.visitInvocation(m, o)
	case *AssignmentOp:
		tf.visitAssignment(m, o)
	case *ArgumentOp:
		tf.visitArgument(m, o)
	case *ReturnOp:
		tf.visitReturn(m, o)
	case *ScopedAcquisitionOp:
		tf.visitScopedAcquisition(m, o)
	case *ConversionOp:
		tf.visitConversion(m, o)
	case *ElementInitializerOp:
		tf.visitElementInitializer(m, o)
	default:
		// Unrecognized operation shape: default visitor result, no
		// dispose-state change (spec §7).
	}
}

func (tf *DisposeTransferFunction) locationsOf(op Operation) []AbstractLocation {
	if op == nil {
		return nil
	}
	pv := tf.PointsTo.PointsTo(op)
	if pv.Kind != PointsToKnown {
		return nil
	}
	return pv.Locations
}

func (tf *DisposeTransferFunction) visitInstanceCreation(m *PerLocationMap, o *InstanceCreationOp) {
	if !tf.isDisposable(o.ConstructedType) {
		return
	}
	for _, loc := range tf.locationsOf(o) {
		if tf.isDisposable(loc.StaticType()) {
			tf.SetAbstractValue(m, loc, NotDisposed)
		}
	}
}

// applyToReceiver applies f to every location the invocation's receiver
// points to, skipping non-disposable locations. When a null analysis is
// available and reports the receiver as definitely null (spec §6: used
// only to refine precision, never soundness), the call cannot actually
// reach the disposable instance at runtime, so the update is skipped
// rather than recording a disposal that never happens.
func (tf *DisposeTransferFunction) applyToReceiver(m *PerLocationMap, inv *InvocationOp, f func(DisposeAbstractValue) DisposeAbstractValue) {
	if tf.NullResult != nil && tf.NullResult.NullState(inv.Receiver) == NullIsNull {
		return
	}
	for _, loc := range tf.locationsOf(inv.Receiver) {
		if !tf.isDisposable(loc.StaticType()) {
			continue
		}
		tf.SetAbstractValue(m, loc, f(m.Get(loc)))
	}
}

func (tf *DisposeTransferFunction) visitInvocation(m *PerLocationMap, o *InvocationOp) {
	if o.Target == nil {
		return
	}
	switch tf.classifyDisposeMethod(o) {
	case methodDispose, methodDisposeBool:
		tf.applyToReceiver(m, o, func(v DisposeAbstractValue) DisposeAbstractValue {
			return v.WithNewDisposingOperation(o)
		})
	case methodClose:
		// A class's own Close called through `this` (e.g. from within
		// its own Dispose) must not count as disposing itself (spec
		// §4.4). Only a literal `this` receiver is recognized — an
		// alias obtained through a local variable is not (spec §9
		// open question, preserved verbatim).
		if o.IsThisReceiver {
			return
		}
		tf.applyToReceiver(m, o, func(v DisposeAbstractValue) DisposeAbstractValue {
			return v.WithNewDisposingOperation(o)
		})
	case methodNone:
		tf.applyFactoryHeuristic(m, o)
		tf.applyCollectionAddHeuristic(m, o)
	}
}

// classifyDisposeMethod implements spec §4.4's "Helper: dispose-method
// classification".
func (tf *DisposeTransferFunction) classifyDisposeMethod(inv *InvocationOp) disposeMethodKind {
	containing := inv.Target.ContainingType()
	if containing == nil || !tf.isDisposable(containing) {
		return methodNone
	}
	switch {
	case len(inv.ParamTypes) == 0 && !inv.HasReturnValue && tf.isDisposeImplementation(inv):
		return methodDispose
	case strings.EqualFold(inv.Target.Name(), "Dispose") &&
		len(inv.ParamTypes) == 1 && isBoolType(inv.ParamTypes[0]) && !inv.HasReturnValue:
		return methodDisposeBool
	case strings.EqualFold(inv.Target.Name(), "Close") &&
		len(inv.ParamTypes) == 0 && !inv.HasReturnValue:
		return methodClose
	default:
		return methodNone
	}
}

func (tf *DisposeTransferFunction) isDisposeImplementation(inv *InvocationOp) bool {
	impl := tf.TypeSystem.FindInterfaceImplementation(inv.Target.ContainingType(), "Dispose")
	return impl != nil && impl == inv.Target
}

func isBoolType(t Type) bool {
	return t != nil && strings.EqualFold(t.Name(), "Bool")
}

// applyFactoryHeuristic implements spec §4.4's factory heuristic: a
// static call whose name starts (case-insensitively) with "create" or
// "open" and whose return type is disposable is treated as an instance
// creation of a new disposable.
func (tf *DisposeTransferFunction) applyFactoryHeuristic(m *PerLocationMap, o *InvocationOp) {
	if !o.IsStatic {
		return
	}
	if !strings.HasPrefix(o.NameLower, "create") && !strings.HasPrefix(o.NameLower, "open") {
		return
	}
	if !tf.isDisposable(o.ReturnType) {
		return
	}
	for _, loc := range tf.locationsOf(o) {
		if tf.isDisposable(loc.StaticType()) {
			tf.SetAbstractValue(m, loc, NotDisposed)
		}
	}
}

// isCollectionAdd implements spec §4.4's "Helper: collection-add": the
// method name begins with "Add" (ordinal, i.e. exact-case, comparison)
// and the containing type transitively derives from one of the two
// collection capabilities.
func (tf *DisposeTransferFunction) isCollectionAdd(inv *InvocationOp) bool {
	if !strings.HasPrefix(inv.Target.Name(), "Add") {
		return false
	}
	containing := inv.Target.ContainingType()
	if containing == nil {
		return false
	}
	if tf.CollectionCapability != nil && tf.TypeSystem.DerivesFrom(containing, tf.CollectionCapability) {
		return true
	}
	if tf.GenericCollectionCapability != nil && tf.TypeSystem.DerivesFrom(containing, tf.GenericCollectionCapability) {
		return true
	}
	return false
}

// applyCollectionAddHeuristic implements spec §4.4's collection-add
// heuristic: the last argument of a collection-add call escapes.
func (tf *DisposeTransferFunction) applyCollectionAddHeuristic(m *PerLocationMap, o *InvocationOp) {
	if !tf.isCollectionAdd(o) || len(o.Args) == 0 {
		return
	}
	last := o.Args[len(o.Args)-1]
	for _, loc := range tf.locationsOf(last) {
		if tf.isDisposable(loc.StaticType()) {
			tf.SetAbstractValue(m, loc, m.Get(loc).WithNewEscapingOperation(o))
		}
	}
}

// visitAssignment implements spec §4.4: an LHS that is a member/property
// or array-element reference escapes the RHS; any other LHS form
// (locals, parameters) does not, regardless of whether the receiver
// itself is disposable (spec §9 open question, preserved verbatim).
func (tf *DisposeTransferFunction) visitAssignment(m *PerLocationMap, o *AssignmentOp) {
	if !o.TargetIsMemberOrElement {
		return
	}
	for _, loc := range tf.locationsOf(o.Value) {
		if tf.isDisposable(loc.StaticType()) {
			tf.SetAbstractValue(m, loc, m.Get(loc).WithNewEscapingOperation(o))
		}
	}
}

// visitArgument implements spec §4.4's two argument-escape sub-rules.
// OwnerParamType/ByRefOut are computed ahead of time by whatever builds
// the operation (out of this core's scope, spec §1); the ownership
// heuristic here only ever inspects the parameter's static type, never
// whether the constructor actually stores the argument (spec §9 open
// question, preserved verbatim).
func (tf *DisposeTransferFunction) visitArgument(m *PerLocationMap, o *ArgumentOp) {
	escapes := o.ByRefOut
	if !escapes && o.OwnerParamType != nil && tf.OwnershipTransferTypes[o.OwnerParamType.Name()] {
		escapes = true
	}
	if !escapes {
		return
	}
	for _, loc := range tf.locationsOf(o.Value) {
		if tf.isDisposable(loc.StaticType()) {
			tf.SetAbstractValue(m, loc, m.Get(loc).WithNewEscapingOperation(o))
		}
	}
}

// visitReturn implements spec §4.4: the returned value escapes.
func (tf *DisposeTransferFunction) visitReturn(m *PerLocationMap, o *ReturnOp) {
	for _, loc := range tf.locationsOf(o.Value) {
		if tf.isDisposable(loc.StaticType()) {
			tf.SetAbstractValue(m, loc, m.Get(loc).WithNewEscapingOperation(o))
		}
	}
}

// visitScopedAcquisition implements spec §4.4: every resource
// initializer in the block is disposed by the block itself.
func (tf *DisposeTransferFunction) visitScopedAcquisition(m *PerLocationMap, o *ScopedAcquisitionOp) {
	apply := func(value Operation) {
		for _, loc := range tf.locationsOf(value) {
			if tf.isDisposable(loc.StaticType()) {
				tf.SetAbstractValue(m, loc, m.Get(loc).WithNewDisposingOperation(o))
			}
		}
	}
	if o.Single != nil {
		apply(o.Single)
		return
	}
	for _, init := range o.Initializers {
		apply(init)
	}
}

// visitConversion implements spec §4.4: a user-defined conversion
// conservatively escapes its operand; built-in conversions have no
// effect.
func (tf *DisposeTransferFunction) visitConversion(m *PerLocationMap, o *ConversionOp) {
	if o.BuiltIn {
		return
	}
	for _, loc := range tf.locationsOf(o.Operand) {
		if tf.isDisposable(loc.StaticType()) {
			tf.SetAbstractValue(m, loc, m.Get(loc).WithNewEscapingOperation(o))
		}
	}
}

// visitElementInitializer implements spec §4.4: the initializer value
// escapes via the enclosing instance's operation.
func (tf *DisposeTransferFunction) visitElementInitializer(m *PerLocationMap, o *ElementInitializerOp) {
	for _, loc := range tf.locationsOf(o.Value) {
		if tf.isDisposable(loc.StaticType()) {
			tf.SetAbstractValue(m, loc, m.Get(loc).WithNewEscapingOperation(o.Instance))
		}
	}
}
