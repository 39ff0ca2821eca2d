package test

import (
	"math/rand"
	"strings"
)

// validTokens enumerates one example of every token the lexer can produce except the
// semicolon, which serves as the list separator. GetRandomTokens draws from this set so
// fuzz-style lexer tests exercise nearly the full token alphabet instead of just a
// hand-picked few.
const validTokens = "fn;print;assert;test;return;if;else;true;false;main;(;);{;};->;\"this is a string\";\"this is a longer string containing a bunch of text: Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.\";\"\";+;-;*;/;=;==;!=;<;<=;>;>=;!;,;123;321;0;//comment\n;\n"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}
