package dispose

// Hand-built fixtures exercising the external collaborator interfaces
// (spec §6) so the core can be tested without a real front end. This
// mirrors how internal/semantic/test_helpers.go supplies small,
// self-contained helpers rather than a full parser round-trip for
// focused unit tests.

var nextFixtureID = 0

func freshID() int {
	nextFixtureID++
	return nextFixtureID
}

// fixtureType is a minimal Type.
type fixtureType struct {
	name string
}

func newType(name string) *fixtureType { return &fixtureType{name: name} }
func (t *fixtureType) Name() string    { return t.name }

// fixtureMethod is a minimal Method.
type fixtureMethod struct {
	name       string
	containing Type
}

func newMethod(name string, containing Type) *fixtureMethod {
	return &fixtureMethod{name: name, containing: containing}
}
func (m *fixtureMethod) Name() string         { return m.name }
func (m *fixtureMethod) ContainingType() Type { return m.containing }

// fixtureLocation is a minimal AbstractLocation.
type fixtureLocation struct {
	id  int
	typ Type
}

func newLocation(typ Type) *fixtureLocation {
	return &fixtureLocation{id: freshID(), typ: typ}
}
func (l *fixtureLocation) ID() int         { return l.id }
func (l *fixtureLocation) StaticType() Type { return l.typ }

// fixtureTypeSystem is a minimal TypeSystem: IsDisposable keys off a
// name set, DerivesFrom off a small explicit edge set, and
// FindInterfaceImplementation off a name-keyed Dispose-method map.
type fixtureTypeSystem struct {
	disposable   map[string]bool
	derivesEdges map[string]map[string]bool
	disposeImpl  map[string]Method
}

func newTypeSystem() *fixtureTypeSystem {
	return &fixtureTypeSystem{
		disposable:   map[string]bool{},
		derivesEdges: map[string]map[string]bool{},
		disposeImpl:  map[string]Method{},
	}
}

func (ts *fixtureTypeSystem) markDisposable(t Type) { ts.disposable[t.Name()] = true }

func (ts *fixtureTypeSystem) markDerives(t Type, other Type) {
	if ts.derivesEdges[t.Name()] == nil {
		ts.derivesEdges[t.Name()] = map[string]bool{}
	}
	ts.derivesEdges[t.Name()][other.Name()] = true
}

func (ts *fixtureTypeSystem) markDisposeImpl(t Type, m Method) { ts.disposeImpl[t.Name()] = m }

func (ts *fixtureTypeSystem) IsDisposable(t Type) bool {
	return t != nil && ts.disposable[t.Name()]
}

func (ts *fixtureTypeSystem) DerivesFrom(t Type, other Type) bool {
	if t == nil || other == nil {
		return false
	}
	return ts.derivesEdges[t.Name()][other.Name()]
}

func (ts *fixtureTypeSystem) FindInterfaceImplementation(t Type, interfaceMethodName string) Method {
	if interfaceMethodName != "Dispose" {
		return nil
	}
	if t == nil {
		return nil
	}
	return ts.disposeImpl[t.Name()]
}

// fixturePointsTo maps each operation's id directly to one or more
// locations, set up per test. It stands in for a real points-to result,
// which is explicitly out of this core's scope (spec §1).
type fixturePointsTo struct {
	byOpID map[int]PointsToValue
}

func newPointsTo() *fixturePointsTo {
	return &fixturePointsTo{byOpID: map[int]PointsToValue{}}
}

func (p *fixturePointsTo) known(op Operation, locs ...AbstractLocation) {
	p.byOpID[op.ID()] = PointsToValue{Kind: PointsToKnown, Locations: locs}
}

func (p *fixturePointsTo) PointsTo(op Operation) PointsToValue {
	if op == nil {
		return PointsToValue{Kind: PointsToNoLocation}
	}
	if v, ok := p.byOpID[op.ID()]; ok {
		return v
	}
	return PointsToValue{Kind: PointsToUnknown}
}

// straightLineCFG is a small helper building a single-block CFG around ops, the
// common case exercised by the spec §8 scenarios (straight-line code or
// a single two-way branch collapsed into a diamond of blocks).
func straightLineCFG(ops ...Operation) *ControlFlowGraph {
	b := &BasicBlock{Label: "entry", Operations: ops}
	return &ControlFlowGraph{Entry: b, Blocks: []*BasicBlock{b}}
}

// diamondCFG builds entry -> {thenBlock, elseBlock} -> exit, the shape
// spec §8 scenario 2 needs.
func diamondCFG(entryOps, thenOps, elseOps, exitOps []Operation) *ControlFlowGraph {
	entry := &BasicBlock{Label: "entry", Operations: entryOps}
	thenB := &BasicBlock{Label: "then", Operations: thenOps}
	elseB := &BasicBlock{Label: "else", Operations: elseOps}
	exit := &BasicBlock{Label: "exit", Operations: exitOps}

	entry.Successors = []*BasicBlock{thenB, elseB}
	thenB.Predecessors = []*BasicBlock{entry}
	elseB.Predecessors = []*BasicBlock{entry}
	thenB.Successors = []*BasicBlock{exit}
	elseB.Successors = []*BasicBlock{exit}
	exit.Predecessors = []*BasicBlock{thenB, elseB}

	return &ControlFlowGraph{Entry: entry, Blocks: []*BasicBlock{entry, thenB, elseB, exit}}
}

func opID() OperationBase { return OperationBase{OpID: freshID()} }

// fixtureNullResult maps each operation's id to a fixed NullState, set
// up per test. Operations with no entry report NullUndefined, matching
// a real null analysis that only tracks entities it has an opinion on.
type fixtureNullResult struct {
	byOpID map[int]NullState
}

func newNullResult() *fixtureNullResult {
	return &fixtureNullResult{byOpID: map[int]NullState{}}
}

func (n *fixtureNullResult) markNull(op Operation) {
	n.byOpID[op.ID()] = NullIsNull
}

func (n *fixtureNullResult) NullState(op Operation) NullState {
	if op == nil {
		return NullUndefined
	}
	if s, ok := n.byOpID[op.ID()]; ok {
		return s
	}
	return NullUndefined
}
