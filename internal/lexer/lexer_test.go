// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lexer

import (
	"strings"
	"testing"

	"github.com/mformat/mformat/internal/token"
)

func classesOf(tokens []*token.Token) []token.Class {
	classes := make([]token.Class, len(tokens))
	for i, t := range tokens {
		classes[i] = t.Class
	}
	return classes
}

func wantClasses(t *testing.T, code string, want ...token.Class) []*token.Token {
	t.Helper()
	tokens := Tokenize(code)
	got := classesOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q) = %v, want %v", code, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize(%q)[%d] = %v, want %v (full: %v)", code, i, got[i], want[i], got)
		}
	}
	return tokens
}

func TestTokenizeRoundTrip(t *testing.T) {
	codes := []string{
		"a = 1 + 2;\n",
		"function y = f(x)\n  y = x.^2;\nend\n",
		"A(1,:) = B';\n",
		"s = 'it''s here';\n",
		"x = {1, 2};\n",
		"",
	}
	for _, code := range codes {
		var b strings.Builder
		for _, tok := range Tokenize(code) {
			b.WriteString(tok.Text)
		}
		if b.String() != code {
			t.Errorf("Tokenize(%q) round trip = %q", code, b.String())
		}
	}
}

func TestTokenizeBasicClasses(t *testing.T) {
	wantClasses(t, "a = 1;",
		token.Identifier, token.Whitespace, token.AssignmentOperator, token.Whitespace,
		token.Number, token.Semicolon)
}

func TestTokenizeTransposeVsString(t *testing.T) {
	// after an identifier, a bare quote is a conjugate transpose
	wantClasses(t, "a'", token.Identifier, token.ConjugateTransposeOperator)
	// at the start of an expression, a quote opens a string
	wantClasses(t, "'hi'", token.SingleQuotedString)
	// after a closing paren, a quote is also a transpose
	wantClasses(t, "(a)'", token.OpeningParenthesisWithoutIdentifier, token.Identifier,
		token.ClosingParenthesisWithoutIdentifier, token.ConjugateTransposeOperator)
}

func TestTokenizeSubscriptVsGrouping(t *testing.T) {
	// identifier immediately followed by "(" is a call/subscript opener
	toks := wantClasses(t, "f(x)", token.Identifier, token.OpeningParenthesisWithIdentifier,
		token.Identifier, token.ClosingParenthesisWithIdentifier)
	if toks[3].GroupDepth != 0 {
		t.Errorf("closer GroupDepth = %d, want 0", toks[3].GroupDepth)
	}
	// a bare "(" (no preceding identifier) is an ordinary grouping paren
	wantClasses(t, "(x)", token.OpeningParenthesisWithoutIdentifier, token.Identifier,
		token.ClosingParenthesisWithoutIdentifier)
	// braces behave the same way
	wantClasses(t, "c{1}", token.Identifier, token.OpeningBraceWithIdentifier,
		token.Number, token.ClosingBraceWithIdentifier)
}

func TestTokenizeGroupDepth(t *testing.T) {
	toks := Tokenize("f(g(x))")
	depths := make([]int, len(toks))
	for i, t := range toks {
		depths[i] = t.GroupDepth
	}
	want := []int{0, 0, 1, 1, 2, 1, 0}
	for i := range want {
		if depths[i] != want[i] {
			t.Fatalf("depths = %v, want %v", depths, want)
		}
	}
}

func TestTokenizeBlockComment(t *testing.T) {
	code := "%{\ncomment\nbody\n%}\nx = 1;\n"
	toks := wantClasses(t, code, token.BlockComment, token.Newline,
		token.Identifier, token.Whitespace, token.AssignmentOperator, token.Whitespace,
		token.Number, token.Semicolon, token.Newline)
	if !strings.Contains(toks[0].Text, "comment") {
		t.Errorf("block comment text = %q, want it to contain %q", toks[0].Text, "comment")
	}
}

func TestTokenizeBlockCommentRequiresLineStart(t *testing.T) {
	// "%{" preceded by non-whitespace on its line is just a line comment
	wantClasses(t, "x %{\n", token.Identifier, token.Whitespace, token.LineComment, token.Newline)
}

func TestTokenizeLineContinuation(t *testing.T) {
	wantClasses(t, "a = 1 + ...\n  2;\n",
		token.Identifier, token.Whitespace, token.AssignmentOperator, token.Whitespace,
		token.Number, token.Whitespace, token.AdditionOperator, token.Whitespace,
		token.LineContinuationComment, token.Whitespace, token.Number, token.Semicolon, token.Newline)
}

func TestTokenizeUnknownCharacter(t *testing.T) {
	toks := wantClasses(t, "a @ b", token.Identifier, token.Whitespace, token.Unknown,
		token.Whitespace, token.Identifier)
	if toks[2].Text != "@" {
		t.Errorf("unknown token text = %q, want %q", toks[2].Text, "@")
	}
}

func TestTokenizeKeywordNotPrefixOfIdentifier(t *testing.T) {
	// "endfor" is one identifier, not the keyword "end" plus "for"
	wantClasses(t, "endfor", token.Identifier)
	wantClasses(t, "end", token.Keyword)
}

func TestTokenizeOperatorLongestMatchFirst(t *testing.T) {
	wantClasses(t, "a == b", token.Identifier, token.Whitespace, token.EqOperator,
		token.Whitespace, token.Identifier)
	wantClasses(t, "a & b", token.Identifier, token.Whitespace, token.LogicalAndOperator,
		token.Whitespace, token.Identifier)
	wantClasses(t, "a && b", token.Identifier, token.Whitespace, token.ShortCircuitLogicalAndOperator,
		token.Whitespace, token.Identifier)
}

func TestTokenizeNoFatalErrors(t *testing.T) {
	// an unterminated string must not hang or panic; no rule matches its
	// opening quote, which becomes a single Unknown token, and scanning
	// continues with the rest of the line.
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Tokenize panicked on malformed input: %v", r)
		}
	}()
	Tokenize("s = 'unterminated\n")
}
