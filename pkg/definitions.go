package maqui

// DefinitionPass resolves each function's declared return type name to a TypeInfo before
// TypePass runs, so that return-statement checking and forward references never need to
// re-parse a type name.
type DefinitionPass struct{}

// NewDefinitionPass builds a DefinitionPass. It carries no state of its own.
func NewDefinitionPass() *DefinitionPass {
	return &DefinitionPass{}
}

// Run resolves FunctionDefinition.ReturnTypeName into Meta.ReturnType for every function in
// file, returning the first UnknownType error encountered.
func (d *DefinitionPass) Run(file *File) error {
	for _, fn := range file.Statements {
		t, err := resolveTypeName(fn.ReturnTypeName, fn.ReturnTypeSpan)
		if err != nil {
			return err
		}

		fn.Meta.ReturnType = t
	}

	return nil
}

// resolveTypeName maps a surface type name to its TypeInfo. String resolves to an owned
// string: a function returning a bare string is handing ownership of that buffer to its
// caller.
func resolveTypeName(name string, span SourceSpan) (TypeInfo, error) {
	switch name {
	case "Num":
		return NumberType{}, nil
	case "Bool":
		return BooleanType{}, nil
	case "String":
		return StringType{Owned: true}, nil
	default:
		return nil, errUnknownType(span, name)
	}
}
