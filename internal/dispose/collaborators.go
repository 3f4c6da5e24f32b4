package dispose

// This file defines the external, read-only interfaces the core
// consumes per spec §6. The core never imports a concrete type system,
// points-to analysis, null analysis, or CFG; it only depends on these
// shapes, so any front end can supply its own implementation (see
// internal/dispose/irbridge for the adapter onto Kanso's own SSA IR).

// Type is an opaque static type handle. Equality must be symbol
// identity, not structural equality of names.
type Type interface {
	// Name is used only for diagnostics and logging, never for
	// equality or disposability decisions.
	Name() string
}

// TypeSystem is the read-only type-system collaborator.
type TypeSystem interface {
	// IsDisposable reports whether t transitively implements the
	// Disposable capability.
	IsDisposable(t Type) bool

	// DerivesFrom reports whether t transitively derives from other
	// (used for the collection-capability check in the collection-add
	// heuristic).
	DerivesFrom(t Type, other Type) bool

	// FindInterfaceImplementation looks up the method on t that
	// implements the named method of an interface. A nil result means
	// no implementation was found; callers must treat that as a
	// best-effort miss (spec §7), not an error.
	FindInterfaceImplementation(t Type, interfaceMethodName string) Method
}

// Method is an opaque method handle.
type Method interface {
	Name() string
	ContainingType() Type
}

// AbstractLocation identifies a set of runtime objects that may alias,
// as produced by a prior points-to analysis. Two locations are equal
// iff they are the same identifier; ID is used only to obtain a total,
// deterministic order for iteration.
type AbstractLocation interface {
	ID() int
	StaticType() Type
}

// PointsToKind classifies a PointsToValue.
type PointsToKind int

const (
	// PointsToUnknown means the points-to analysis could not determine
	// a precise location set; the transfer function must treat this
	// conservatively (no state update, since there is nothing concrete
	// to update).
	PointsToUnknown PointsToKind = iota
	// PointsToKnown means Locations is a non-empty, precise set.
	PointsToKnown
	// PointsToNoLocation means the operation's value is not a
	// reference type (e.g. a primitive), so it owns no location.
	PointsToNoLocation
)

// PointsToValue is the result of querying the points-to analysis for a
// single operation.
type PointsToValue struct {
	Kind      PointsToKind
	Locations []AbstractLocation
}

// PointsToResult is the read-only points-to collaborator.
type PointsToResult interface {
	PointsTo(op Operation) PointsToValue
}

// NullState classifies the nullability of an entity per spec §6.
type NullState int

const (
	NullUndefined NullState = iota
	NullIsNull
	NullNotNull
	NullMaybeNull
)

// NullResult is the optional null-analysis collaborator. A nil
// NullResult is always valid: the transfer function only uses it to
// refine precision, never to establish soundness (spec §6).
type NullResult interface {
	NullState(op Operation) NullState
}
