package dispose

// OperationKind enumerates the operation shapes the transfer function
// gives special treatment to (spec §4.4). Every other operation shape a
// real CFG can contain is simply ignored by the transfer function (it
// falls back to the base visitor's no-op default, per spec §7).
type OperationKind int

const (
	OpInstanceCreation OperationKind = iota
	OpInvocation
	OpAssignment
	OpArgument
	OpReturn
	OpScopedAcquisition
	OpConversion
	OpElementInitializer
	// OpOther covers any operation shape the transfer function does not
	// special-case; VisitBlock still walks it for side effects (e.g.
	// nested expression evaluation order) but it contributes no
	// dispose-state update.
	OpOther
)

// Operation is a single CFG instruction/statement, a member of the sum
// type the transfer function switches on. Concrete operation kinds embed
// OperationBase and satisfy the Operation interface through it.
type Operation interface {
	ID() int
	Kind() OperationKind
	String() string
}

// OperationBase carries the identity every concrete operation needs.
// Operation identifiers are small, arena-style integers (spec §9 design
// note): disposingOps sets become sets of ints, not pointers, so they
// stay cheap to copy and compare.
type OperationBase struct {
	OpID int
}

func (b OperationBase) ID() int { return b.OpID }

// InstanceCreationOp constructs a new instance of ConstructedType. Its
// constructor arguments are visited as independent ArgumentOp operations
// (mirroring how a real operation tree visits IArgumentOperation nodes
// separately from their owning IObjectCreationOperation); this operation
// itself carries only the constructed type.
type InstanceCreationOp struct {
	OperationBase
	ConstructedType Type
}

func (o *InstanceCreationOp) Kind() OperationKind { return OpInstanceCreation }
func (o *InstanceCreationOp) String() string      { return "new " + o.ConstructedType.Name() }

// InvocationOp is a call to Target on Receiver (Receiver is nil for a
// static call). IsThisReceiver marks a receiver that is lexically `this`
// (spec §9 open question: only this literal form is recognized).
type InvocationOp struct {
	OperationBase
	Target         Method
	Receiver       Operation
	IsThisReceiver bool
	IsStatic       bool
	ReturnType     Type
	HasReturnValue bool
	Args           []Operation
	ParamTypes     []Type
	// NameLower is the invocation's method name, already lower-cased,
	// used by the factory and collection-add heuristics.
	NameLower string
}

func (o *InvocationOp) Kind() OperationKind { return OpInvocation }
func (o *InvocationOp) String() string      { return "call " + o.Target.Name() }

// AssignmentOp writes Value into Target. TargetIsMemberOrElement
// distinguishes a field/property/array-element LHS (which escapes the
// RHS, spec §4.4) from a local/parameter LHS (which does not).
type AssignmentOp struct {
	OperationBase
	Target                  Operation
	Value                   Operation
	TargetIsMemberOrElement bool
}

func (o *AssignmentOp) Kind() OperationKind { return OpAssignment }
func (o *AssignmentOp) String() string      { return "assign" }

// ArgumentOp is a single argument operation, visited independently of
// its owning call or instance-creation operation (matching how a real
// operation tree visits argument nodes separately from their parent).
type ArgumentOp struct {
	OperationBase
	Value    Operation
	ByRefOut bool
	// OwnerParamType is the constructor parameter type this argument is
	// bound to, or nil if the argument is not part of a single
	// one-parameter constructor call.
	OwnerParamType Type
}

func (o *ArgumentOp) Kind() OperationKind { return OpArgument }
func (o *ArgumentOp) String() string      { return "argument" }

// ReturnOp returns Value from the enclosing procedure.
type ReturnOp struct {
	OperationBase
	Value Operation
}

func (o *ReturnOp) Kind() OperationKind { return OpReturn }
func (o *ReturnOp) String() string      { return "return" }

// ScopedAcquisitionOp models a construct that guarantees release of its
// resource(s) on every exit path (e.g. a `using`/`with` block).
// Initializers holds one operation per declared resource; Single holds
// the resource expression when the block declares a single expression
// rather than a group of declarations.
type ScopedAcquisitionOp struct {
	OperationBase
	Initializers []Operation
	Single       Operation
}

func (o *ScopedAcquisitionOp) Kind() OperationKind { return OpScopedAcquisition }
func (o *ScopedAcquisitionOp) String() string      { return "scoped-acquisition" }

// ConversionOp is a user-defined (non-built-in) conversion of Operand.
type ConversionOp struct {
	OperationBase
	Operand  Operation
	BuiltIn  bool
	FromType Type
	ToType   Type
}

func (o *ConversionOp) Kind() OperationKind { return OpConversion }
func (o *ConversionOp) String() string      { return "conversion" }

// ElementInitializerOp writes Value into an element of the Instance
// being initialized (a collection or object initializer entry).
type ElementInitializerOp struct {
	OperationBase
	Instance Operation
	Value    Operation
}

func (o *ElementInitializerOp) Kind() OperationKind { return OpElementInitializer }
func (o *ElementInitializerOp) String() string      { return "element-initializer" }

// OtherOp is a placeholder for any operation shape the transfer
// function does not special-case.
type OtherOp struct {
	OperationBase
	Label string
}

func (o *OtherOp) Kind() OperationKind { return OpOther }
func (o *OtherOp) String() string      { return o.Label }
