package maqui

import (
	"fmt"
	"sort"
)

// IRGen lowers a fully-typed File into LLVM textual IR. It never touches the underlying
// IR-construction library directly — every instruction goes through Builder.
type IRGen struct {
	builder  *Builder
	rt       *runtime
	filename string

	strCounter int

	numberFmt    Value
	stringFmt    Value
	boolTrueStr  Value
	boolFalseStr Value
}

// NewIRGen builds an IRGen with its module-level runtime declarations and format-string
// constants already in place. filename is reported in every test pass/fail message IRGen
// emits, alongside the test's own name.
func NewIRGen(filename string) *IRGen {
	b := NewBuilder()
	rt := declareRuntime(b)

	g := &IRGen{builder: b, rt: rt, filename: filename}
	g.numberFmt = b.DeclareGlobalString("$fmt.number", "%d\n")
	g.stringFmt = b.DeclareGlobalString("$fmt.string", "%s\n")
	g.boolTrueStr = b.DeclareGlobalString("$fmt.true", "true\n")
	g.boolFalseStr = b.DeclareGlobalString("$fmt.false", "false\n")

	return g
}

// Run lowers every function in file and returns the module as LLVM textual IR.
func (g *IRGen) Run(file *File) string {
	for _, fn := range file.Statements {
		g.lowerFunction(fn)
	}

	g.builder.RunOptimizations()
	return g.builder.String()
}

// varSlot is the alloca backing a local variable, plus the static type TypePass assigned
// it (strings are always stored in their canonical borrowed shape — see checkAssignment).
type varSlot struct {
	ptr Value
	typ TypeInfo
}

// funcEnv carries per-function lowering state: the function being built, its variable
// slots, and whether the block currently being appended to has already been terminated
// (by a return, an abort, or a branch), so lowerBody can stop emitting dead instructions.
type funcEnv struct {
	fn         *Function
	vars       map[string]varSlot
	terminated bool
}

func toLLVMType(t TypeInfo) Type {
	switch t.(type) {
	case NumberType:
		return I32
	case BooleanType:
		return I1
	case StringType:
		return PtrI8
	default:
		return Void
	}
}

func (g *IRGen) lowerFunction(fn *FunctionDefinition) {
	retType := toLLVMType(fn.Meta.ReturnType)
	llFn := g.builder.DeclareFunction(fn.Name, retType)

	entry := AppendBlock(llFn)
	g.builder.PositionAtEnd(entry)

	env := &funcEnv{fn: llFn, vars: make(map[string]varSlot)}

	names := make([]string, 0, len(fn.Meta.VarTypes))
	for name := range fn.Meta.VarTypes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		typ := fn.Meta.VarTypes[name]
		ptr := g.builder.Alloca(toLLVMType(typ))
		env.vars[name] = varSlot{ptr: ptr, typ: typ}

		// Strings are primed with a zero-length owned buffer so that an assignment's or
		// the function's own exit's unconditional free has something valid to free even
		// if the variable's first write hasn't happened yet.
		if _, ok := typ.(StringType); ok {
			primed := g.builder.Call(g.rt.malloc, ConstInt64(0))
			g.builder.Store(primed, ptr)
		}
	}

	g.lowerBody(fn.Body, env)

	if !env.terminated {
		g.builder.Unreachable()
	}
}

func (g *IRGen) lowerBody(body CodeBody, env *funcEnv) {
	for _, stmt := range body {
		if env.terminated {
			return
		}

		g.lowerStatement(stmt, env)
	}
}

func (g *IRGen) lowerStatement(stmt Statement, env *funcEnv) {
	switch s := stmt.(type) {
	case *PrintStmt:
		g.lowerPrint(s, env)
	case *AssertStmt:
		g.lowerAssert(s, env)
	case *TestStmt:
		g.lowerTest(s, env)
	case *AssignmentStmt:
		g.lowerAssignment(s, env)
	case *ReturnStmt:
		g.lowerReturn(s, env)
	case *IfStmt:
		g.lowerIf(s, env)
	}
}

func (g *IRGen) lowerPrint(s *PrintStmt, env *funcEnv) {
	val := g.lowerExpr(s.Expr, env)

	switch s.Expr.Type().(type) {
	case NumberType:
		g.builder.Call(g.rt.printf, g.numberFmt, val)
	case BooleanType:
		g.lowerPrintBoolean(val, env)
	case StringType:
		g.builder.Call(g.rt.printf, g.stringFmt, val)
		if IsOwnedString(s.Expr.Type()) {
			g.builder.Call(g.rt.free, val)
		}
	}
}

func (g *IRGen) lowerPrintBoolean(val Value, env *funcEnv) {
	thenBlk := AppendBlock(env.fn)
	elseBlk := AppendBlock(env.fn)
	contBlk := AppendBlock(env.fn)

	g.builder.CondBr(val, thenBlk, elseBlk)

	g.builder.PositionAtEnd(thenBlk)
	g.builder.Call(g.rt.printf, g.boolTrueStr)
	g.builder.Br(contBlk)

	g.builder.PositionAtEnd(elseBlk)
	g.builder.Call(g.rt.printf, g.boolFalseStr)
	g.builder.Br(contBlk)

	g.builder.PositionAtEnd(contBlk)
}

// lowerAssert aborts the process on failure. There is no success message — a passing
// assert is silent. The failure message names the source line the assert was written on.
func (g *IRGen) lowerAssert(s *AssertStmt, env *funcEnv) {
	cond := g.lowerExpr(s.Expr, env)

	okBlk := AppendBlock(env.fn)
	failBlk := AppendBlock(env.fn)

	g.builder.CondBr(cond, okBlk, failBlk)

	g.builder.PositionAtEnd(failBlk)
	msg := g.internString(fmt.Sprintf("Assert on line %d failed\n", s.Span.LineStart))
	g.builder.Call(g.rt.printf, msg)
	g.builder.Call(g.rt.abort)
	g.builder.Unreachable()

	g.builder.PositionAtEnd(okBlk)
}

// lowerTest prints a pass/fail line naming the test and source file and always continues —
// unlike assert, a failing test never aborts the process.
func (g *IRGen) lowerTest(s *TestStmt, env *funcEnv) {
	cond := g.lowerExpr(s.Expr, env)

	okBlk := AppendBlock(env.fn)
	failBlk := AppendBlock(env.fn)
	contBlk := AppendBlock(env.fn)

	g.builder.CondBr(cond, okBlk, failBlk)

	g.builder.PositionAtEnd(okBlk)
	g.builder.Call(g.rt.printf, g.internString(fmt.Sprintf("test %s (%s): ok\n", s.Name, g.filename)))
	g.builder.Br(contBlk)

	g.builder.PositionAtEnd(failBlk)
	g.builder.Call(g.rt.printf, g.internString(fmt.Sprintf("test %s (%s): FAILED\n", s.Name, g.filename)))
	g.builder.Br(contBlk)

	g.builder.PositionAtEnd(contBlk)
}

// lowerAssignment rewrites the variable's owned buffer in place: an already-owned rhs
// simply replaces it (after freeing the old one), a borrowed rhs is copied into a
// reallocation of the old buffer so the variable keeps exactly one owned allocation across
// its lifetime.
func (g *IRGen) lowerAssignment(s *AssignmentStmt, env *funcEnv) {
	slot := env.vars[s.VarName]
	rhs := g.lowerExpr(s.Rhs, env)

	if _, isString := slot.typ.(StringType); !isString {
		g.builder.Store(rhs, slot.ptr)
		return
	}

	oldPtr := g.builder.Load(PtrI8, slot.ptr)

	if IsOwnedString(s.Rhs.Type()) {
		g.builder.Call(g.rt.free, oldPtr)
		g.builder.Store(rhs, slot.ptr)
		return
	}

	totalLen := g.lengthPlusOne(rhs)
	newPtr := g.builder.Call(g.rt.realloc, oldPtr, totalLen)
	g.builder.Call(g.rt.memcpy, newPtr, rhs, totalLen)
	g.builder.Store(newPtr, slot.ptr)
}

// lowerReturn detaches any string result into a fresh owned allocation before freeing the
// function's local string variables, so the returned buffer is never one about to be
// freed out from under the caller.
func (g *IRGen) lowerReturn(s *ReturnStmt, env *funcEnv) {
	val := g.lowerExpr(s.Expr, env)

	if _, isString := s.Expr.Type().(StringType); isString {
		val = g.copyString(val)
	}

	g.freeLiveStrings(env)
	g.builder.Ret(val)
	env.terminated = true
}

func (g *IRGen) copyString(src Value) Value {
	totalLen := g.lengthPlusOne(src)
	newPtr := g.builder.Call(g.rt.malloc, totalLen)
	g.builder.Call(g.rt.memcpy, newPtr, src, totalLen)

	return newPtr
}

func (g *IRGen) lengthPlusOne(s Value) Value {
	length := g.builder.Call(g.rt.strlen, s)
	return g.builder.Add(length, ConstInt64(1))
}

func (g *IRGen) freeLiveStrings(env *funcEnv) {
	names := make([]string, 0, len(env.vars))
	for name := range env.vars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		slot := env.vars[name]
		if _, isString := slot.typ.(StringType); !isString {
			continue
		}

		ptr := g.builder.Load(PtrI8, slot.ptr)
		g.builder.Call(g.rt.free, ptr)
	}
}

func (g *IRGen) lowerIf(s *IfStmt, env *funcEnv) {
	cond := g.lowerExpr(s.Cond, env)

	thenBlk := AppendBlock(env.fn)
	var elseBlk, contBlk *Block

	if s.Otherwise != nil {
		elseBlk = AppendBlock(env.fn)
		g.builder.CondBr(cond, thenBlk, elseBlk)
	} else {
		contBlk = AppendBlock(env.fn)
		g.builder.CondBr(cond, thenBlk, contBlk)
	}

	g.builder.PositionAtEnd(thenBlk)
	env.terminated = false
	g.lowerBody(s.Then, env)

	if !env.terminated {
		if contBlk == nil {
			contBlk = AppendBlock(env.fn)
		}
		g.builder.Br(contBlk)
	}
	thenTerminated := env.terminated

	elseTerminated := false
	if s.Otherwise != nil {
		g.builder.PositionAtEnd(elseBlk)
		env.terminated = false
		g.lowerBody(s.Otherwise, env)

		if !env.terminated {
			if contBlk == nil {
				contBlk = AppendBlock(env.fn)
			}
			g.builder.Br(contBlk)
		}
		elseTerminated = env.terminated
	}

	if contBlk != nil {
		g.builder.PositionAtEnd(contBlk)
		env.terminated = false
		return
	}

	// Both arms terminated (returned or aborted) and there was never a continuation block.
	env.terminated = thenTerminated && elseTerminated
}

func (g *IRGen) lowerExpr(expr Expr, env *funcEnv) Value {
	switch e := expr.(type) {
	case *LiteralExpr:
		return g.lowerLiteral(e)
	case *VarExpr:
		slot := env.vars[e.Name]
		return g.builder.Load(toLLVMType(slot.typ), slot.ptr)
	case *BinaryExpr:
		return g.lowerBinary(e, env)
	case *ComparisonChainExpr:
		return g.lowerComparisonChain(e, env)
	case *PrefixExpr:
		operand := g.lowerExpr(e.Expr, env)
		return g.builder.Not(operand)
	default:
		return nil
	}
}

func (g *IRGen) lowerLiteral(e *LiteralExpr) Value {
	switch e.Kind {
	case LitNumber:
		return ConstInt32(e.Number)
	case LitBoolean:
		return ConstBool(e.Bool)
	case LitString:
		return g.internString(e.Text)
	default:
		return nil
	}
}

func (g *IRGen) lowerBinary(e *BinaryExpr, env *funcEnv) Value {
	left := g.lowerExpr(e.Left, env)
	right := g.lowerExpr(e.Right, env)

	switch e.Op {
	case BinaryAdd:
		return g.builder.Add(left, right)
	case BinarySub:
		return g.builder.Sub(left, right)
	case BinaryMul:
		return g.builder.Mul(left, right)
	case BinaryDiv:
		return g.builder.SDiv(left, right)
	default:
		return nil
	}
}

func (g *IRGen) lowerComparisonChain(e *ComparisonChainExpr, env *funcEnv) Value {
	prevVal := g.lowerExpr(e.First, env)

	var result Value
	for i, step := range e.Rest {
		rightVal := g.lowerExpr(step.Right, env)
		cmp := g.builder.ICmp(predicateFor(step.Op), prevVal, rightVal)

		if i == 0 {
			result = cmp
		} else {
			result = g.builder.And(result, cmp)
		}

		prevVal = rightVal
	}

	return result
}

func predicateFor(op ComparisonOp) IntPredicate {
	switch op {
	case CmpEq:
		return IntEQ
	case CmpNe:
		return IntNE
	case CmpLt:
		return IntSLT
	case CmpLe:
		return IntSLE
	case CmpGt:
		return IntSGT
	case CmpGe:
		return IntSGE
	default:
		return IntEQ
	}
}

// internString declares a fresh module-level constant for text and returns a pointer to
// its first byte. Each call gets its own global — literal strings are never deduplicated,
// matching the rest of the pipeline's single-pass, no-revisit design.
func (g *IRGen) internString(text string) Value {
	name := fmt.Sprintf("$str.%d", g.strCounter)
	g.strCounter++

	return g.builder.DeclareGlobalString(name, text)
}
