package maqui

// TypeInfo is the result of semantic analysis attached to every expression and to a
// function's return type. Number and Boolean carry no further state; String carries an
// ownership flag: Owned means the current scope must eventually free the buffer, Borrowed
// means it must not. The flag never affects equality for type-checking purposes (see
// SameType) — it's a runtime property the IR generator consults to decide when to
// allocate, copy, or free.
type TypeInfo interface {
	String() string

	// SameType reports whether two types are interchangeable for type-checking purposes.
	// For strings this ignores ownership: String(true) and String(false) are the same type.
	SameType(other TypeInfo) bool

	isTypeInfo()
}

type NumberType struct{}

func (NumberType) String() string            { return "Number" }
func (NumberType) SameType(o TypeInfo) bool  { _, ok := o.(NumberType); return ok }
func (NumberType) isTypeInfo()                {}

type BooleanType struct{}

func (BooleanType) String() string           { return "Boolean" }
func (BooleanType) SameType(o TypeInfo) bool { _, ok := o.(BooleanType); return ok }
func (BooleanType) isTypeInfo()               {}

// StringType is a heap-backed byte buffer. Owned means this expression's value is this
// scope's responsibility to free; Borrowed means it points at memory owned elsewhere
// (a global string constant, or another scope's buffer).
type StringType struct {
	Owned bool
}

func (StringType) String() string { return "String" }

func (StringType) SameType(o TypeInfo) bool {
	_, ok := o.(StringType)
	return ok
}

func (StringType) isTypeInfo() {}

// MarkOwned returns t with its ownership flag set, if t is a string. Other types are
// returned unchanged.
func MarkOwned(t TypeInfo) TypeInfo {
	if s, ok := t.(StringType); ok {
		s.Owned = true
		return s
	}

	return t
}

// MarkBorrowed returns t with its ownership flag cleared, if t is a string. Other types
// are returned unchanged.
func MarkBorrowed(t TypeInfo) TypeInfo {
	if s, ok := t.(StringType); ok {
		s.Owned = false
		return s
	}

	return t
}

// IsOwnedString reports whether t is a string currently owned by its holding expression.
func IsOwnedString(t TypeInfo) bool {
	s, ok := t.(StringType)
	return ok && s.Owned
}

// SameType reports whether a and b are the same type, ignoring string ownership.
func SameType(a, b TypeInfo) bool {
	if a == nil || b == nil {
		return false
	}

	return a.SameType(b)
}
