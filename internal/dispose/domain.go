package dispose

// DisposeValueDomain implements the C2 lattice over DisposeAbstractValue:
// bottom, Compare, and Merge, exactly as spec §4.2 defines them.
type DisposeValueDomain struct{}

// Bottom is NotDisposable, the lattice's least element. A missing key in
// a PerLocationMap denotes this value (spec §3).
func (DisposeValueDomain) Bottom() DisposeAbstractValue { return NotDisposable }

// Compare implements spec §4.2's three-step comparison. It returns a
// negative number if a < b, zero if a == b, and a positive number if
// a > b. There is no "null" case in this Go port — PerLocationMap's
// missing-key semantics already stand in for it (every caller of
// Compare on a concrete DisposeAbstractValue treats a missing map entry
// as NotDisposable before calling Compare, see maplattice.go).
func (DisposeValueDomain) Compare(a, b DisposeAbstractValue) int {
	if a.kind != b.kind {
		return int(a.kind) - int(b.kind)
	}
	// Same kind: compare by set inclusion/equality (spec §4.2 step 2).
	aSubB := a.opsSubsetOf(b)
	bSubA := b.opsSubsetOf(a)
	switch {
	case aSubB && bSubA:
		return 0
	case aSubB:
		return -1
	case bSubA:
		return 1
	default:
		// Incomparable sets under a total Compare: spec only requires a
		// total order for deterministic iteration (spec §3), not a
		// faithful partial-order comparison here, so break the tie by
		// set size, then leave a deterministic but otherwise arbitrary
		// residual via length already being equal falls through to 0.
		return len(a.ops) - len(b.ops)
	}
}

// Merge implements spec §4.2's join, the heart of the lattice.
func (DisposeValueDomain) Merge(v1, v2 DisposeAbstractValue) DisposeAbstractValue {
	if v1.kind == KindNotDisposable || v2.kind == KindNotDisposable {
		return NotDisposable
	}
	if v1.kind == KindNotDisposed && v2.kind == KindNotDisposed {
		return NotDisposed
	}

	mergedOps := cloneOps(v1.ops)
	for id, op := range v2.ops {
		mergedOps[id] = op
	}

	kind := KindMaybeDisposed
	if v1.kind == KindDisposed && v2.kind == KindDisposed {
		kind = KindDisposed
	}

	if len(mergedOps) == 0 {
		// Only reachable when merging MaybeDisposed/Unknown with a
		// value carrying no ops (NotDisposed or Unknown itself) —
		// collapse to Unknown per spec §4.2.
		return Unknown
	}

	return DisposeAbstractValue{kind: kind, ops: mergedOps}
}

// Leq reports whether a is less than or equal to b in the lattice
// order, used by the monotonicity tests in spec §8.
func (d DisposeValueDomain) Leq(a, b DisposeAbstractValue) bool {
	return d.Compare(a, b) <= 0
}
