package maqui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func generateIR(t *testing.T, source string) string {
	t.Helper()

	toks, err := NewLexer("testing", source).Tokenize()
	assert.NoError(t, err)

	file, err := NewParser(toks).ParseFile()
	assert.NoError(t, err)

	assert.NoError(t, NewDefinitionPass().Run(file))
	assert.NoError(t, NewTypePass().Run(file))

	return NewIRGen("testing.vs").Run(file)
}

func TestIRGenEmitsDeclaredRuntime(t *testing.T) {
	ir := generateIR(t, `fn f() -> Num { return 1; }`)

	for _, want := range []string{"declare", "printf", "malloc", "realloc", "free", "strlen", "memcpy", "abort"} {
		assert.True(t, strings.Contains(ir, want), "expected IR to mention %q", want)
	}
}

func TestIRGenFunctionShape(t *testing.T) {
	ir := generateIR(t, `fn answer() -> Num { return 42; }`)

	assert.True(t, strings.Contains(ir, "@answer"))
	assert.True(t, strings.Contains(ir, "ret i32 42"))
}

func TestIRGenBooleanPrintBranches(t *testing.T) {
	ir := generateIR(t, `fn f() -> Num {
		print true;
		return 0;
	}`)

	assert.True(t, strings.Contains(ir, "br i1"))
	assert.True(t, strings.Contains(ir, "true"))
	assert.True(t, strings.Contains(ir, "false"))
}

func TestIRGenAssertEmitsAbortPath(t *testing.T) {
	ir := generateIR(t, `fn f() -> Num {
		assert 1 == 1;
		return 0;
	}`)

	assert.True(t, strings.Contains(ir, "call void @abort"))
	assert.True(t, strings.Contains(ir, "unreachable"))
}

func TestIRGenAssertMessageNamesLine(t *testing.T) {
	ir := generateIR(t, "fn f() -> Num {\n\tassert 1 == 2;\n\treturn 0;\n}")

	assert.True(t, strings.Contains(ir, "Assert on line 2 failed"))
}

func TestIRGenTestMessageNamesFileAndTest(t *testing.T) {
	ir := generateIR(t, `fn f() -> Num {
		test "my test" -> true;
		return 0;
	}`)

	assert.True(t, strings.Contains(ir, "test my test (testing.vs): ok"))
	assert.True(t, strings.Contains(ir, "test my test (testing.vs): FAILED"))
}

func TestIRGenStringReturnCopiesBuffer(t *testing.T) {
	ir := generateIR(t, `fn f() -> String {
		x = "hi";
		return x;
	}`)

	assert.True(t, strings.Contains(ir, "call i8* @malloc"))
	assert.True(t, strings.Contains(ir, "call i8* @memcpy"))
	assert.True(t, strings.Contains(ir, "call void @free"))
}
