package maqui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineSpans(t *testing.T) {
	cases := []struct {
		name   string
		a, b   SourceSpan
		expect SourceSpan
	}{
		{
			name:   "same line",
			a:      NewSpan(1, 1, 3),
			b:      NewSpan(1, 5, 8),
			expect: SourceSpan{LineStart: 1, LineEnd: 1, ColStart: 1, ColEnd: 8},
		},
		{
			name:   "commutative",
			a:      NewSpan(1, 5, 8),
			b:      NewSpan(1, 1, 3),
			expect: SourceSpan{LineStart: 1, LineEnd: 1, ColStart: 1, ColEnd: 8},
		},
		{
			name:   "multi-line",
			a:      NewSpan(2, 4, 10),
			b:      NewSpan(5, 1, 2),
			expect: SourceSpan{LineStart: 2, LineEnd: 5, ColStart: 1, ColEnd: 10},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expect, CombineSpans(c.a, c.b))
		})
	}
}

func TestSourceSpanHighlight(t *testing.T) {
	source := "let x = 1\nlet y = 2\n"
	span := NewSpan(2, 5, 5)

	got := span.Highlight(source)
	expect := "2 | let y = 2\n        ^"

	assert.Equal(t, expect, got)
}

func TestSourceSpanString(t *testing.T) {
	span := NewSpan(3, 1, 4)
	assert.Equal(t, "3:1-3:4", span.String())
}
