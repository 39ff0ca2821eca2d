package maqui

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// This file is the only place in the module that imports github.com/llir/llvm. IRGen talks
// to a Builder and never touches the underlying ir/constant/types/value packages directly,
// so the IR-construction library stays swappable behind this one seam.

// Type, Value, Module, Function and Block alias the underlying IR-builder library's own
// types so callers can pass its constants and constructors straight through the façade
// without a wrapper allocation per value.
type (
	Type     = types.Type
	Value    = value.Value
	Module   = ir.Module
	Function = ir.Func
	Block    = ir.Block
)

// The scalar types the language needs. There is no float type: the language has none.
var (
	I1   Type = types.I1
	I8   Type = types.I8
	I32  Type = types.I32
	I64  Type = types.I64
	Void Type = types.Void
	PtrI8 Type = types.I8Ptr
)

// PointerTo builds the pointer-to-elem type.
func PointerTo(elem Type) Type {
	return types.NewPointer(elem)
}

// IntPredicate names an integer comparison, independent of the underlying library's own
// enum so ComparisonOp can map onto it without leaking that enum into the rest of the
// module.
type IntPredicate int

const (
	IntEQ IntPredicate = iota
	IntNE
	IntSLT
	IntSLE
	IntSGT
	IntSGE
)

func (p IntPredicate) toLLVM() enum.IPred {
	switch p {
	case IntEQ:
		return enum.IPredEQ
	case IntNE:
		return enum.IPredNE
	case IntSLT:
		return enum.IPredSLT
	case IntSLE:
		return enum.IPredSLE
	case IntSGT:
		return enum.IPredSGT
	case IntSGE:
		return enum.IPredSGE
	default:
		return enum.IPredEQ
	}
}

// ConstInt32, ConstInt64 and ConstBool build scalar constants.
func ConstInt32(v int32) Value { return constant.NewInt(types.I32, int64(v)) }
func ConstInt64(v int64) Value { return constant.NewInt(types.I64, v) }

func ConstBool(v bool) Value {
	if v {
		return constant.NewInt(types.I1, 1)
	}

	return constant.NewInt(types.I1, 0)
}

// ConstNullPtr builds the null pointer constant of the given pointer type.
func ConstNullPtr(t Type) Value {
	pt, ok := t.(*types.PointerType)
	if !ok {
		pt = types.I8Ptr
	}

	return constant.NewNull(pt)
}

// Builder wraps a single IR module plus an LLVM-IRBuilder-style cursor: the block that
// NewAdd/NewCall/NewBr/... append to. PositionAtEnd moves the cursor; every other
// instruction method appends to wherever it currently points.
type Builder struct {
	Module *Module
	cur    *Block
}

// NewBuilder creates an empty module with no current block. PositionAtEnd must be called
// before any instruction-emitting method.
func NewBuilder() *Builder {
	return &Builder{Module: ir.NewModule()}
}

// DeclareFunction adds fn's signature to the module without any blocks — used for
// functions defined once and called from many places, and for external declarations whose
// body is never emitted (e.g. the C runtime functions).
func (b *Builder) DeclareFunction(name string, ret Type, params ...Type) *Function {
	ps := make([]*ir.Param, len(params))
	for i, t := range params {
		ps[i] = ir.NewParam("", t)
	}

	return b.Module.NewFunc(name, ret, ps...)
}

// MarkVariadic flags fn as accepting a trailing variadic argument list, as printf does.
func MarkVariadic(fn *Function) {
	fn.Sig.Variadic = true
}

// Param returns fn's i-th parameter as a Value.
func Param(fn *Function, i int) Value {
	return fn.Params[i]
}

// AppendBlock adds a new block at the end of fn's block list.
func AppendBlock(fn *Function) *Block {
	return fn.NewBlock("")
}

// InsertBlockAfter adds a new block to fn positioned immediately after "after" in the
// block list. Placement only affects the readability of the emitted text — branches
// reference blocks directly and never rely on textual order — but keeping control flow
// in source order makes the output easier to read against the source it came from.
func InsertBlockAfter(fn *Function, after *Block) *Block {
	nb := fn.NewBlock("")

	blocks := fn.Blocks[:len(fn.Blocks)-1]
	idx := len(blocks) - 1

	for i, blk := range blocks {
		if blk == after {
			idx = i
			break
		}
	}

	reordered := make([]*ir.Block, 0, len(blocks)+1)
	reordered = append(reordered, blocks[:idx+1]...)
	reordered = append(reordered, nb)
	reordered = append(reordered, blocks[idx+1:]...)
	fn.Blocks = reordered

	return nb
}

// PositionAtEnd moves the builder's cursor to the end of blk.
func (b *Builder) PositionAtEnd(blk *Block) {
	b.cur = blk
}

// GetInsertBlock returns the block the builder currently appends to.
func (b *Builder) GetInsertBlock() *Block {
	return b.cur
}

func (b *Builder) Add(l, r Value) Value { return b.cur.NewAdd(l, r) }
func (b *Builder) Sub(l, r Value) Value { return b.cur.NewSub(l, r) }
func (b *Builder) Mul(l, r Value) Value { return b.cur.NewMul(l, r) }
func (b *Builder) SDiv(l, r Value) Value { return b.cur.NewSDiv(l, r) }

func (b *Builder) ICmp(pred IntPredicate, l, r Value) Value {
	return b.cur.NewICmp(pred.toLLVM(), l, r)
}

func (b *Builder) And(l, r Value) Value { return b.cur.NewAnd(l, r) }

// Not computes the boolean complement of an i1 value via xor against true — LLVM has no
// dedicated "not" instruction.
func (b *Builder) Not(v Value) Value {
	return b.cur.NewXor(v, ConstBool(true))
}

func (b *Builder) Alloca(t Type) Value             { return b.cur.NewAlloca(t) }
func (b *Builder) Load(t Type, ptr Value) Value    { return b.cur.NewLoad(t, ptr) }
func (b *Builder) Store(val Value, ptr Value)      { b.cur.NewStore(val, ptr) }
func (b *Builder) Call(fn Value, args ...Value) Value { return b.cur.NewCall(fn, args...) }
func (b *Builder) CondBr(cond Value, then, els *Block) { b.cur.NewCondBr(cond, then, els) }
func (b *Builder) Br(target *Block)                 { b.cur.NewBr(target) }
func (b *Builder) Unreachable()                     { b.cur.NewUnreachable() }
func (b *Builder) PtrCast(v Value, t Type) Value    { return b.cur.NewBitCast(v, t) }

// Ret emits a return; pass nil for a void return.
func (b *Builder) Ret(v Value) {
	if v == nil {
		b.cur.NewRet(nil)
		return
	}

	b.cur.NewRet(v)
}

// DeclareGlobalString interns s (with a trailing NUL byte the caller must account for in
// any length it hands to the runtime) as a module-level constant and returns an i8* to its
// first byte.
func (b *Builder) DeclareGlobalString(name, s string) Value {
	text := s + "\x00"
	data := constant.NewCharArrayFromString(text)
	g := b.Module.NewGlobalDef(name, data)

	arrType := types.NewArray(uint64(len(text)), types.I8)
	zero := constant.NewInt(types.I32, 0)

	return constant.NewGetElementPtr(arrType, g, zero, zero)
}

// RunOptimizations is a deliberate no-op: no optimization passes run on the module, and
// the emitted IR is handed to clang as it is.
func (b *Builder) RunOptimizations() {}

// String renders the full module as LLVM textual IR.
func (b *Builder) String() string {
	return b.Module.String()
}
