package maqui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileErrorReport(t *testing.T) {
	source := "x = 1\ny = true\n"
	err := &CompileError{Span: NewSpan(2, 5, 8), Message: "type mismatch"}

	report := err.Report(source)
	assert.True(t, strings.Contains(report, "y = true"))
	assert.True(t, strings.Contains(report, "ERROR: type mismatch"))
	assert.True(t, strings.HasSuffix(report, "ERROR: type mismatch"))
}

func TestCompileErrorIsAnError(t *testing.T) {
	var err error = &CompileError{Message: "boom"}
	assert.Equal(t, "boom", err.Error())
}
