package dispose

import "sort"

// PerLocationMap is the C3 mapping AbstractLocation -> DisposeAbstractValue.
// A missing key denotes the domain's bottom value, NotDisposable (spec
// §3). Keys are never removed once inserted (the monotonicity invariant
// spec §3/§4.4 requires); only Set may grow the key set.
type PerLocationMap struct {
	values map[AbstractLocation]DisposeAbstractValue
}

// NewPerLocationMap returns an empty map, equivalent to all-bottom.
func NewPerLocationMap() *PerLocationMap {
	return &PerLocationMap{values: make(map[AbstractLocation]DisposeAbstractValue)}
}

// Get returns the value at loc, or NotDisposable if loc has no entry.
func (m *PerLocationMap) Get(loc AbstractLocation) DisposeAbstractValue {
	if v, ok := m.values[loc]; ok {
		return v
	}
	return NotDisposable
}

// Set records v for loc. This is the only mutator every transfer-function
// update ultimately goes through (spec §4.4's SetAbstractValue).
func (m *PerLocationMap) Set(loc AbstractLocation, v DisposeAbstractValue) {
	m.values[loc] = v
}

// Has reports whether loc has an explicit entry (as opposed to standing
// in for bottom).
func (m *PerLocationMap) Has(loc AbstractLocation) bool {
	_, ok := m.values[loc]
	return ok
}

// Keys returns every location with an explicit entry, ordered
// deterministically by location id (spec §3: "ordering is arbitrary but
// total... needed only for deterministic iteration").
func (m *PerLocationMap) Keys() []AbstractLocation {
	keys := make([]AbstractLocation, 0, len(m.values))
	for loc := range m.values {
		keys = append(keys, loc)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].ID() < keys[j].ID() })
	return keys
}

// Clone performs the map-level-deep, value-level-shallow copy spec §4.3
// requires (values are immutable, so sharing them across clones is
// safe).
func (m *PerLocationMap) Clone() *PerLocationMap {
	out := make(map[AbstractLocation]DisposeAbstractValue, len(m.values))
	for loc, v := range m.values {
		out[loc] = v
	}
	return &PerLocationMap{values: out}
}

// PerLocationMapDomain is the C3 pointwise lift of DisposeValueDomain.
type PerLocationMapDomain struct {
	values DisposeValueDomain
}

// Merge is the pointwise lift: the result's key set is the union of both
// inputs' key sets. A key present in both maps gets C2.Merge of the two
// values. A key present in only one map keeps that map's value
// unchanged: the missing side is bottom, and merging with bottom yields
// the other value, so a location only one predecessor path has touched
// is not collapsed to the materialized NotDisposable value that C2.Merge
// absorbs into.
func (d PerLocationMapDomain) Merge(m1, m2 *PerLocationMap) *PerLocationMap {
	out := NewPerLocationMap()
	seen := make(map[AbstractLocation]bool)
	mergeKey := func(loc AbstractLocation) {
		switch {
		case !m1.Has(loc):
			out.Set(loc, m2.Get(loc))
		case !m2.Has(loc):
			out.Set(loc, m1.Get(loc))
		default:
			out.Set(loc, d.values.Merge(m1.Get(loc), m2.Get(loc)))
		}
	}
	for _, loc := range m1.Keys() {
		seen[loc] = true
		mergeKey(loc)
	}
	for _, loc := range m2.Keys() {
		if seen[loc] {
			continue
		}
		mergeKey(loc)
	}
	return out
}

// Leq reports whether m1 <= m2 pointwise over the union of both key
// sets (spec §4.3).
func (d PerLocationMapDomain) Leq(m1, m2 *PerLocationMap) bool {
	locs := make(map[AbstractLocation]bool)
	for _, loc := range m1.Keys() {
		locs[loc] = true
	}
	for _, loc := range m2.Keys() {
		locs[loc] = true
	}
	for loc := range locs {
		if d.values.Compare(m1.Get(loc), m2.Get(loc)) > 0 {
			return false
		}
	}
	return true
}

// Equal reports pointwise equality over the union of both key sets.
func (d PerLocationMapDomain) Equal(m1, m2 *PerLocationMap) bool {
	return d.Leq(m1, m2) && d.Leq(m2, m1)
}
