package irbridge

import (
	"strings"

	"kanso/internal/dispose"
	"kanso/internal/ir"
)

// Every dispose.Operation this bridge emits needs a unique, stable id.
// ir.Instruction.GetID() already gives every instruction a unique int;
// a single instruction can expand into more than one dispose.Operation
// (a call's arguments plus the call itself), so each sub-operation
// gets an offset within that instruction's id space.
const idSpacing = 1000

type otherOp struct {
	dispose.OperationBase
	label string
	value *ir.Value
}

func (o *otherOp) Kind() dispose.OperationKind { return dispose.OpOther }
func (o *otherOp) String() string              { return o.label }
func (o *otherOp) producedValue() *ir.Value    { return o.value }

func wrapOther(inst ir.Instruction) dispose.Operation {
	return &otherOp{OperationBase: dispose.OperationBase{OpID: inst.GetID() * idSpacing}, label: inst.String(), value: inst.GetResult()}
}

type instanceCreationOp struct {
	dispose.InstanceCreationOp
	value *ir.Value
}

func (o *instanceCreationOp) producedValue() *ir.Value { return o.value }

type invocationOp struct {
	dispose.InvocationOp
	value *ir.Value
}

func (o *invocationOp) producedValue() *ir.Value { return o.value }

type argumentOp struct {
	dispose.ArgumentOp
}

func (o *argumentOp) producedValue() *ir.Value { return nil }

// translate expands a single IR instruction into the bridged
// operations the transfer function visits. Anything not recognized as
// a disposal-relevant shape becomes an opaque otherOp, which the
// transfer function's default case ignores (spec's §7 "unmatched
// operation" fallback).
func translate(inst ir.Instruction, ts *TypeSystem) []dispose.Operation {
	switch v := inst.(type) {
	case *ir.CallInstruction:
		return translateCall(v, ts)
	case *ir.StoreInstruction:
		return translateStore(v)
	case *ir.StorageStoreInstruction:
		return translateStorageStore(v)
	case *ir.KeyedStorageStoreInstruction:
		return translateKeyedStorageStore(v)
	case *ir.ReturnTerminator:
		return translateReturn(v)
	default:
		return []dispose.Operation{wrapOther(inst)}
	}
}

// translateCall maps a CallInstruction onto either an instance
// creation, a Dispose/Close-style invocation, or a generic invocation,
// following the naming conventions documented on Config.
//
// Kanso functions take explicit parameters rather than an implicit
// receiver, so the "receiver" of a Dispose/Close-shaped call is taken
// to be the call's first argument when that argument's static type is
// disposable; a first argument whose SSA name is "self" is treated as
// the literal `this` receiver the spec's Close-suppression rule keys
// on.
func translateCall(call *ir.CallInstruction, ts *TypeSystem) []dispose.Operation {
	base := call.GetID() * idSpacing
	ops := make([]dispose.Operation, 0, len(call.Args)+1)

	var argOps []dispose.Operation
	for i, arg := range call.Args {
		argOp := &argumentOp{dispose.ArgumentOp{
			OperationBase: dispose.OperationBase{OpID: base + 1 + i},
			Value:         wrapOther(constOperand(arg)),
		}}
		argOps = append(argOps, argOp)
		ops = append(ops, argOp)
	}

	structName := constructorTarget(call.Function)
	if structName != "" && ts.cfg.DisposableStructs[structName] {
		ops = append(ops, &instanceCreationOp{
			InstanceCreationOp: dispose.InstanceCreationOp{
				OperationBase:   dispose.OperationBase{OpID: base},
				ConstructedType: disposeType{name: structName},
			},
			value: call.Result,
		})
		return ops
	}

	if len(call.Args) > 0 {
		receiverType := typeName(call.Args[0].Type)
		if ts.cfg.DisposableStructs[receiverType] {
			receiverOp := wrapOther(constOperand(call.Args[0]))
			inv := &invocationOp{
				InvocationOp: dispose.InvocationOp{
					OperationBase:  dispose.OperationBase{OpID: base},
					Target:         disposeMethod{name: call.Function, containing: disposeType{name: receiverType}},
					Receiver:       receiverOp,
					IsThisReceiver: call.Args[0].Name == "self",
					IsStatic:       false,
					HasReturnValue: call.Result != nil,
					NameLower:      strings.ToLower(call.Function),
				},
				value: call.Result,
			}
			ops = append(ops, inv)
			return ops
		}
	}

	var returnType dispose.Type
	if call.Result != nil {
		returnType = disposeType{name: typeName(call.Result.Type)}
	}
	ops = append(ops, &invocationOp{
		InvocationOp: dispose.InvocationOp{
			OperationBase:  dispose.OperationBase{OpID: base},
			Target:         disposeMethod{name: call.Function, containing: disposeType{name: ""}},
			IsStatic:       true,
			ReturnType:     returnType,
			HasReturnValue: call.Result != nil,
			NameLower:      strings.ToLower(call.Function),
		},
		value: call.Result,
	})
	return ops
}

// constructorTarget recognizes the "new_<Struct>" naming convention a
// Kanso lowering pass could plausibly use for struct construction,
// since the IR itself has no dedicated instance-creation instruction.
func constructorTarget(function string) string {
	const prefix = "new_"
	if !strings.HasPrefix(function, prefix) {
		return ""
	}
	return strings.TrimPrefix(function, prefix)
}

// constOperand wraps a bare *ir.Value reference as a throwaway
// Instruction so it can flow through wrapOther/translate without a
// second code path; it is never type-switched on beyond GetResult.
type constOperand ir.Value

func (v *constOperand) GetID() int               { return (*ir.Value)(v).ID }
func (v *constOperand) GetResult() *ir.Value      { return (*ir.Value)(v) }
func (v *constOperand) GetOperands() []*ir.Value  { return nil }
func (v *constOperand) GetBlock() *ir.BasicBlock  { return (*ir.Value)(v).DefBlock }
func (v *constOperand) IsTerminator() bool        { return false }
func (v *constOperand) String() string            { return (*ir.Value)(v).Name }
func (v *constOperand) GetEffects() []ir.Effect    { return nil }

func translateStore(inst *ir.StoreInstruction) []dispose.Operation {
	return []dispose.Operation{&dispose.AssignmentOp{
		OperationBase:           dispose.OperationBase{OpID: inst.GetID() * idSpacing},
		Value:                   wrapOther((*constOperand)(inst.Value)),
		TargetIsMemberOrElement: false,
	}}
}

// translateStorageStore maps a write to contract storage onto an
// AssignmentOp with TargetIsMemberOrElement=true: storage is always
// visible beyond the current procedure, so it is treated the same way
// the spec treats a field/property write.
func translateStorageStore(inst *ir.StorageStoreInstruction) []dispose.Operation {
	return []dispose.Operation{&dispose.AssignmentOp{
		OperationBase:           dispose.OperationBase{OpID: inst.GetID() * idSpacing},
		Value:                   wrapOther((*constOperand)(inst.Value)),
		TargetIsMemberOrElement: true,
	}}
}

func translateKeyedStorageStore(inst *ir.KeyedStorageStoreInstruction) []dispose.Operation {
	return []dispose.Operation{&dispose.AssignmentOp{
		OperationBase:           dispose.OperationBase{OpID: inst.GetID() * idSpacing},
		Value:                   wrapOther((*constOperand)(inst.Value)),
		TargetIsMemberOrElement: true,
	}}
}

func translateReturn(term *ir.ReturnTerminator) []dispose.Operation {
	if term.Value == nil {
		return []dispose.Operation{wrapOther(term)}
	}
	return []dispose.Operation{&dispose.ReturnOp{
		OperationBase: dispose.OperationBase{OpID: term.GetID() * idSpacing},
		Value:         wrapOther((*constOperand)(term.Value)),
	}}
}
