package dispose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerLocationMap_GetDefaultsToNotDisposable(t *testing.T) {
	m := NewPerLocationMap()
	loc := newLocation(newType("D"))
	assert.Equal(t, KindNotDisposable, m.Get(loc).Kind())
	assert.False(t, m.Has(loc))
}

func TestPerLocationMap_CloneIsIndependent(t *testing.T) {
	loc := newLocation(newType("D"))
	m := NewPerLocationMap()
	m.Set(loc, NotDisposed)

	clone := m.Clone()
	op := &OtherOp{OperationBase: opID(), Label: "op"}
	clone.Set(loc, NotDisposed.WithNewDisposingOperation(op))

	assert.Equal(t, KindNotDisposed, m.Get(loc).Kind())
	assert.Equal(t, KindDisposed, clone.Get(loc).Kind())
}

func TestPerLocationMap_KeysSortedByID(t *testing.T) {
	typ := newType("D")
	locC := newLocation(typ)
	locA := newLocation(typ)
	locB := newLocation(typ)

	m := NewPerLocationMap()
	m.Set(locC, NotDisposed)
	m.Set(locA, NotDisposed)
	m.Set(locB, NotDisposed)

	keys := m.Keys()
	require := keys
	for i := 1; i < len(require); i++ {
		assert.True(t, require[i-1].ID() < require[i].ID())
	}
}

func TestMapDomain_MergeUnionsKeySets(t *testing.T) {
	typ := newType("D")
	locA := newLocation(typ)
	locB := newLocation(typ)

	m1 := NewPerLocationMap()
	m1.Set(locA, NotDisposed)

	m2 := NewPerLocationMap()
	m2.Set(locB, NotDisposed)

	maps := PerLocationMapDomain{}
	merged := maps.Merge(m1, m2)

	assert.True(t, merged.Has(locA))
	assert.True(t, merged.Has(locB))
	assert.Len(t, merged.Keys(), 2)
}

func TestMapDomain_MergeJoinsSharedKeyPointwise(t *testing.T) {
	typ := newType("D")
	loc := newLocation(typ)
	op := &OtherOp{OperationBase: opID(), Label: "op"}

	m1 := NewPerLocationMap()
	m1.Set(loc, NotDisposed.WithNewDisposingOperation(op))

	m2 := NewPerLocationMap()
	m2.Set(loc, NotDisposed)

	maps := PerLocationMapDomain{}
	merged := maps.Merge(m1, m2)

	// NotDisposed.WithNewDisposingOperation(op) merged with plain
	// NotDisposed: not both NotDisposed, and the merged op set is
	// non-empty, so the result is MaybeDisposed (spec §4.2).
	assert.Equal(t, KindMaybeDisposed, merged.Get(loc).Kind())
}

func TestMapDomain_LeqHoldsAcrossUnionOfKeys(t *testing.T) {
	typ := newType("D")
	locA := newLocation(typ)
	locB := newLocation(typ)

	smaller := NewPerLocationMap()
	smaller.Set(locA, NotDisposed)

	bigger := NewPerLocationMap()
	bigger.Set(locA, Unknown)
	bigger.Set(locB, NotDisposed)

	maps := PerLocationMapDomain{}
	assert.True(t, maps.Leq(smaller, bigger))
	assert.False(t, maps.Leq(bigger, smaller))
}

func TestMapDomain_EqualIsReflexive(t *testing.T) {
	typ := newType("D")
	loc := newLocation(typ)
	m := NewPerLocationMap()
	m.Set(loc, Unknown)

	maps := PerLocationMapDomain{}
	assert.True(t, maps.Equal(m, m.Clone()))
}

// TestMapDomain_MergeKeySetMonotonic checks spec §8's monotonic-key-set
// property at the map-merge level: merging never drops a key either
// side already had.
func TestMapDomain_MergeKeySetMonotonic(t *testing.T) {
	typ := newType("D")
	locs := []AbstractLocation{newLocation(typ), newLocation(typ), newLocation(typ)}

	m1 := NewPerLocationMap()
	m1.Set(locs[0], NotDisposed)
	m1.Set(locs[1], Unknown)

	m2 := NewPerLocationMap()
	m2.Set(locs[1], NotDisposed)
	m2.Set(locs[2], NotDisposed)

	maps := PerLocationMapDomain{}
	merged := maps.Merge(m1, m2)

	for _, loc := range locs {
		assert.True(t, merged.Has(loc), "merged map must retain key %d", loc.ID())
	}
}
