package maqui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vivax3794/viv-script/internal/test"
)

func TestLexer(t *testing.T) {
	cases := []struct {
		name   string
		data   string
		fail   bool
		expect []Token
	}{
		{
			name: "function skeleton",
			data: "fn main() -> Num {}",
			expect: []Token{
				{Typ: TokenFn, Value: "fn"},
				{Typ: TokenIdentifier, Value: "main"},
				{Typ: TokenOpenParen, Value: "("},
				{Typ: TokenCloseParen, Value: ")"},
				{Typ: TokenArrow, Value: "->"},
				{Typ: TokenIdentifier, Value: "Num"},
				{Typ: TokenOpenBrace, Value: "{"},
				{Typ: TokenCloseBrace, Value: "}"},
				{Typ: TokenEOF, Value: ""},
			},
		},
		{
			name: "comment is skipped",
			data: "1 // a comment\n2",
			expect: []Token{
				{Typ: TokenNumber, Value: "1"},
				{Typ: TokenNumber, Value: "2"},
				{Typ: TokenEOF, Value: ""},
			},
		},
		{
			name: "bare bang is Bang, not an error",
			data: "!true",
			expect: []Token{
				{Typ: TokenBang, Value: "!"},
				{Typ: TokenTrue, Value: "true"},
				{Typ: TokenEOF, Value: ""},
			},
		},
		{
			name: "bang-equal is one token",
			data: "a != b",
			expect: []Token{
				{Typ: TokenIdentifier, Value: "a"},
				{Typ: TokenBangEqual, Value: "!="},
				{Typ: TokenIdentifier, Value: "b"},
				{Typ: TokenEOF, Value: ""},
			},
		},
		{
			name: "keywords are reserved",
			data: "print assert test return if else true false",
			expect: []Token{
				{Typ: TokenPrint, Value: "print"},
				{Typ: TokenAssert, Value: "assert"},
				{Typ: TokenTest, Value: "test"},
				{Typ: TokenReturn, Value: "return"},
				{Typ: TokenIf, Value: "if"},
				{Typ: TokenElse, Value: "else"},
				{Typ: TokenTrue, Value: "true"},
				{Typ: TokenFalse, Value: "false"},
				{Typ: TokenEOF, Value: ""},
			},
		},
		{
			name: "unicode identifier",
			data: "únicódeIdentifier",
			expect: []Token{
				{Typ: TokenIdentifier, Value: "únicódeIdentifier"},
				{Typ: TokenEOF, Value: ""},
			},
		},
		{
			name: "string literal",
			data: `"hello world"`,
			expect: []Token{
				{Typ: TokenString, Value: "hello world"},
				{Typ: TokenEOF, Value: ""},
			},
		},
		{
			name: "empty string literal",
			data: `""`,
			expect: []Token{
				{Typ: TokenString, Value: ""},
				{Typ: TokenEOF, Value: ""},
			},
		},
		{
			name: "unclosed string fails",
			data: `"unclosed`,
			fail: true,
		},
		{
			name: "invalid character fails",
			data: "@",
			fail: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := NewLexer("testing", c.data).Tokenize()

			if c.fail {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, c.expect, stripSpans(toks))
		})
	}
}

func stripSpans(toks []Token) []Token {
	out := make([]Token, len(toks))
	for i, tok := range toks {
		out[i] = Token{Typ: tok.Typ, Value: tok.Value}
	}

	return out
}

// Use a package-level variable so the lexer call can't be optimized away.
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		data := test.GetRandomTokens(size)
		b.StartTimer()

		toks, err := NewLexer("bench", data).Tokenize()
		if err != nil {
			b.Fatal(err)
		}

		benchResult = toks
	}
}

func BenchmarkLexer100(b *testing.B)   { benchmarkLexer(100, b) }
func BenchmarkLexer1000(b *testing.B)  { benchmarkLexer(1000, b) }
func BenchmarkLexer10000(b *testing.B) { benchmarkLexer(10000, b) }
