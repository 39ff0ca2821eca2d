package maqui

import "fmt"

// CompileError is the single error type produced by every pipeline stage. Compilation is
// fail-fast: the first CompileError returned by any stage aborts the pipeline.
type CompileError struct {
	Span    SourceSpan
	Message string
}

func (e *CompileError) Error() string {
	return e.Message
}

// Report renders the full multi-line diagnostic for e against source: the covered source
// lines prefixed with their line numbers, a caret underline of the span, then the error
// message.
func (e *CompileError) Report(source string) string {
	return fmt.Sprintf("%s\nERROR: %s", e.Span.Highlight(source), e.Message)
}

func errUnexpectedToken(span SourceSpan, expected, got TokenType) *CompileError {
	return &CompileError{Span: span, Message: fmt.Sprintf("expected %s found %s", expected, got)}
}

func errExpectedIdentifier(span SourceSpan, got TokenType) *CompileError {
	return &CompileError{Span: span, Message: fmt.Sprintf("expected identifier found %s", got)}
}

func errExpectedNumberAfterMinus(span SourceSpan, got TokenType) *CompileError {
	return &CompileError{Span: span, Message: fmt.Sprintf("expected number after '-' found %s", got)}
}

func errUnknownType(span SourceSpan, name string) *CompileError {
	return &CompileError{Span: span, Message: fmt.Sprintf("Invalid type name %q", name)}
}

func errUndefinedName(span SourceSpan, name string) *CompileError {
	return &CompileError{Span: span, Message: fmt.Sprintf("Name %s not defined", name)}
}

func errTypeMismatch(span SourceSpan, expected, got TypeInfo) *CompileError {
	return &CompileError{Span: span, Message: fmt.Sprintf("expected %s, but got %s", expected, got)}
}

func errIllegalOperator(span SourceSpan, op string, t TypeInfo) *CompileError {
	return &CompileError{Span: span, Message: fmt.Sprintf("Unsupported operator %s for %s", op, t)}
}

func errExpectedBoolean(span SourceSpan, got TypeInfo) *CompileError {
	return &CompileError{Span: span, Message: fmt.Sprintf("Expected Boolean, got %s", got)}
}
