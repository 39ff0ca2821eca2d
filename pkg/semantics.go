package maqui

// TypePass is the second and final semantic pass. For every function it walks the body
// once, typing each expression and inferring each variable's type from its first
// assignment, then copies the accumulated variable types into the function's FunctionMeta.
// It requires DefinitionPass to have already filled in every FunctionMeta.ReturnType.
type TypePass struct{}

// NewTypePass builds a TypePass. It carries no state of its own.
func NewTypePass() *TypePass {
	return &TypePass{}
}

// Run types every function in file, returning the first error encountered.
func (t *TypePass) Run(file *File) error {
	for _, fn := range file.Statements {
		if err := t.checkFunction(fn); err != nil {
			return err
		}
	}

	return nil
}

func (t *TypePass) checkFunction(fn *FunctionDefinition) error {
	vars := make(map[string]TypeInfo)

	if err := t.checkBody(fn.Body, vars, fn.Meta.ReturnType); err != nil {
		return err
	}

	fn.Meta.VarTypes = vars
	return nil
}

func (t *TypePass) checkBody(body CodeBody, vars map[string]TypeInfo, expectedReturn TypeInfo) error {
	for _, stmt := range body {
		if err := t.checkStatement(stmt, vars, expectedReturn); err != nil {
			return err
		}
	}

	return nil
}

func (t *TypePass) checkStatement(stmt Statement, vars map[string]TypeInfo, expectedReturn TypeInfo) error {
	switch s := stmt.(type) {
	case *PrintStmt:
		_, err := t.checkExpr(s.Expr, vars)
		return err

	case *AssertStmt:
		typ, err := t.checkExpr(s.Expr, vars)
		if err != nil {
			return err
		}

		if _, ok := typ.(BooleanType); !ok {
			return errExpectedBoolean(s.Expr.Span(), typ)
		}

		return nil

	case *TestStmt:
		typ, err := t.checkExpr(s.Expr, vars)
		if err != nil {
			return err
		}

		if _, ok := typ.(BooleanType); !ok {
			return errExpectedBoolean(s.Expr.Span(), typ)
		}

		return nil

	case *ReturnStmt:
		typ, err := t.checkExpr(s.Expr, vars)
		if err != nil {
			return err
		}

		if !SameType(typ, expectedReturn) {
			return errTypeMismatch(s.Expr.Span(), expectedReturn, typ)
		}

		return nil

	case *AssignmentStmt:
		return t.checkAssignment(s, vars)

	case *IfStmt:
		condType, err := t.checkExpr(s.Cond, vars)
		if err != nil {
			return err
		}

		if _, ok := condType.(BooleanType); !ok {
			return errExpectedBoolean(s.Cond.Span(), condType)
		}

		if err := t.checkBody(s.Then, vars, expectedReturn); err != nil {
			return err
		}

		if s.Otherwise != nil {
			if err := t.checkBody(s.Otherwise, vars, expectedReturn); err != nil {
				return err
			}
		}

		return nil

	default:
		return nil
	}
}

// checkAssignment infers a variable's type from its first assignment, storing strings in
// their canonical borrowed form: ownership is a property of a value at a point in code, not
// of the variable's declared shape, so IRGen re-derives it from each right-hand side rather
// than trusting the variable's recorded type.
func (t *TypePass) checkAssignment(s *AssignmentStmt, vars map[string]TypeInfo) error {
	rhsType, err := t.checkExpr(s.Rhs, vars)
	if err != nil {
		return err
	}

	existing, seen := vars[s.VarName]
	if !seen {
		vars[s.VarName] = MarkBorrowed(rhsType)
		return nil
	}

	if !SameType(existing, rhsType) {
		return errTypeMismatch(s.Rhs.Span(), existing, rhsType)
	}

	return nil
}

func (t *TypePass) checkExpr(expr Expr, vars map[string]TypeInfo) (TypeInfo, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return t.checkLiteral(e), nil

	case *VarExpr:
		typ, ok := vars[e.Name]
		if !ok {
			return nil, errUndefinedName(e.Span(), e.Name)
		}

		e.SetType(typ)
		return typ, nil

	case *BinaryExpr:
		return t.checkBinary(e, vars)

	case *ComparisonChainExpr:
		return t.checkComparisonChain(e, vars)

	case *PrefixExpr:
		return t.checkPrefix(e, vars)

	default:
		return nil, errUndefinedName(expr.Span(), "<expr>")
	}
}

// checkLiteral types a constant. A string literal points at a global constant, so it starts
// life borrowed.
func (t *TypePass) checkLiteral(e *LiteralExpr) TypeInfo {
	var typ TypeInfo

	switch e.Kind {
	case LitNumber:
		typ = NumberType{}
	case LitString:
		typ = StringType{Owned: false}
	case LitBoolean:
		typ = BooleanType{}
	}

	e.SetType(typ)
	return typ
}

func (t *TypePass) checkBinary(e *BinaryExpr, vars map[string]TypeInfo) (TypeInfo, error) {
	leftType, err := t.checkExpr(e.Left, vars)
	if err != nil {
		return nil, err
	}

	rightType, err := t.checkExpr(e.Right, vars)
	if err != nil {
		return nil, err
	}

	if _, ok := leftType.(NumberType); !ok {
		return nil, errIllegalOperator(e.Left.Span(), e.Op.String(), leftType)
	}

	if !SameType(leftType, rightType) {
		return nil, errTypeMismatch(e.Right.Span(), leftType, rightType)
	}

	e.SetType(NumberType{})
	return NumberType{}, nil
}

// checkComparisonChain requires every operand along the chain to be the same Number type;
// the chain as a whole always produces a Boolean.
func (t *TypePass) checkComparisonChain(e *ComparisonChainExpr, vars map[string]TypeInfo) (TypeInfo, error) {
	prev, err := t.checkExpr(e.First, vars)
	if err != nil {
		return nil, err
	}

	if _, ok := prev.(NumberType); !ok {
		return nil, errIllegalOperator(e.First.Span(), e.Rest[0].Op.String(), prev)
	}

	for _, step := range e.Rest {
		next, err := t.checkExpr(step.Right, vars)
		if err != nil {
			return nil, err
		}

		if !SameType(prev, next) {
			return nil, errTypeMismatch(step.Right.Span(), prev, next)
		}

		if _, ok := next.(NumberType); !ok {
			return nil, errIllegalOperator(step.Right.Span(), step.Op.String(), next)
		}

		prev = next
	}

	e.SetType(BooleanType{})
	return BooleanType{}, nil
}

func (t *TypePass) checkPrefix(e *PrefixExpr, vars map[string]TypeInfo) (TypeInfo, error) {
	operandType, err := t.checkExpr(e.Expr, vars)
	if err != nil {
		return nil, err
	}

	if _, ok := operandType.(BooleanType); !ok {
		return nil, errExpectedBoolean(e.Expr.Span(), operandType)
	}

	e.SetType(BooleanType{})
	return BooleanType{}, nil
}
