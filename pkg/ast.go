package maqui

// File is the root of a parsed program: a sequence of top-level function definitions.
type File struct {
	Statements []*FunctionDefinition
}

// FunctionMeta holds everything the semantic passes compute about a function. It starts
// zero-valued right after parsing and is filled in place by DefinitionPass (ReturnType)
// and TypePass (VarTypes).
type FunctionMeta struct {
	VarTypes   map[string]TypeInfo
	ReturnType TypeInfo
}

// FunctionDefinition is the only top-level statement the language has: a zero-argument
// function with a declared return type.
type FunctionDefinition struct {
	Name           string
	Body           CodeBody
	ReturnTypeName string
	ReturnTypeSpan SourceSpan
	Meta           FunctionMeta
}

// CodeBody is an ordered list of statements making up a function body or an if/else arm.
type CodeBody []Statement

// Statement is implemented by every statement variant.
type Statement interface {
	isStatement()
}

type PrintStmt struct {
	Expr Expr
}

type AssertStmt struct {
	Span SourceSpan
	Expr Expr
}

type TestStmt struct {
	Span SourceSpan
	Name string
	Expr Expr
}

type AssignmentStmt struct {
	Span    SourceSpan
	VarName string
	Rhs     Expr
}

type ReturnStmt struct {
	Span SourceSpan
	Expr Expr
}

type IfStmt struct {
	Span      SourceSpan
	Cond      Expr
	Then      CodeBody
	Otherwise CodeBody
}

func (*PrintStmt) isStatement()      {}
func (*AssertStmt) isStatement()     {}
func (*TestStmt) isStatement()       {}
func (*AssignmentStmt) isStatement() {}
func (*ReturnStmt) isStatement()     {}
func (*IfStmt) isStatement()         {}

// ExprMeta is embedded in every Expr variant. Span is set by the Parser; Type is left nil
// until TypePass fills it in.
type ExprMeta struct {
	SourceSpan SourceSpan
	TypeInfo   TypeInfo
}

func (m *ExprMeta) Span() SourceSpan   { return m.SourceSpan }
func (m *ExprMeta) Type() TypeInfo     { return m.TypeInfo }
func (m *ExprMeta) SetType(t TypeInfo) { m.TypeInfo = t }

// Expr is implemented by every expression variant. After TypePass, Type() is non-nil for
// every reachable Expr.
type Expr interface {
	Span() SourceSpan
	Type() TypeInfo
	SetType(TypeInfo)
}

type LiteralKind int

const (
	LitNumber LiteralKind = iota
	LitString
	LitBoolean
)

// LiteralExpr is a constant value fixed at parse time.
type LiteralExpr struct {
	ExprMeta
	Kind   LiteralKind
	Number int32
	Text   string
	Bool   bool
}

// VarExpr loads the current value of a variable.
type VarExpr struct {
	ExprMeta
	Name string
}

type BinaryOp int

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
)

func (op BinaryOp) String() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	default:
		return "?"
	}
}

// BinaryExpr is a left-associative arithmetic operation between two Number operands.
type BinaryExpr struct {
	ExprMeta
	Op    BinaryOp
	Left  Expr
	Right Expr
}

type ComparisonOp int

const (
	CmpEq ComparisonOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

func (op ComparisonOp) String() string {
	switch op {
	case CmpEq:
		return "=="
	case CmpNe:
		return "!="
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpGt:
		return ">"
	case CmpGe:
		return ">="
	default:
		return "?"
	}
}

// ComparisonStep is one link of a ComparisonChainExpr: an operator and the operand to its
// right.
type ComparisonStep struct {
	Op    ComparisonOp
	Right Expr
}

// ComparisonChainExpr represents "a OP1 b OP2 c ..." as (a OP1 b) AND (b OP2 c) AND ...,
// never as nested binary comparisons. Rest is never empty — a chain with nothing chained
// onto First collapses back to First during parsing.
type ComparisonChainExpr struct {
	ExprMeta
	First Expr
	Rest  []ComparisonStep
}

// PrefixOp identifies a prefix operator. Not is currently the only one the grammar has.
type PrefixOp int

const (
	PrefixNot PrefixOp = iota
)

// PrefixExpr applies a prefix operator to its operand.
type PrefixExpr struct {
	ExprMeta
	Op   PrefixOp
	Expr Expr
}
