package maqui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseFile(t *testing.T, source string) *File {
	t.Helper()

	toks, err := NewLexer("testing", source).Tokenize()
	assert.NoError(t, err)

	file, err := NewParser(toks).ParseFile()
	assert.NoError(t, err)

	return file
}

func TestDefinitionPassResolvesReturnTypes(t *testing.T) {
	file := parseFile(t, `
		fn a() -> Num { return 1; }
		fn b() -> Bool { return true; }
		fn c() -> String { return "x"; }
	`)

	err := NewDefinitionPass().Run(file)
	assert.NoError(t, err)

	assert.Equal(t, NumberType{}, file.Statements[0].Meta.ReturnType)
	assert.Equal(t, BooleanType{}, file.Statements[1].Meta.ReturnType)
	assert.Equal(t, StringType{Owned: true}, file.Statements[2].Meta.ReturnType)
}

func TestDefinitionPassUnknownType(t *testing.T) {
	file := parseFile(t, `fn a() -> Nope { return 1; }`)

	err := NewDefinitionPass().Run(file)
	assert.Error(t, err)
}
