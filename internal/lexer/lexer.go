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

// Package lexer turns MATLAB/Octave source text into a stream of classified
// Tokens, implementing spec §4.1: an ordered, regexp-driven class table with
// a handful of context-sensitive disambiguation rules layered on top
// (block comments, conjugate-transpose vs. string, subscript/call vs.
// grouping) and a bracket-nesting depth assigned to every token.
//
// There are no fatal tokenizer errors (spec §4.1, §7): an unmatched
// character is emitted as a single Unknown token and scanning continues.
package lexer

import (
	"regexp"

	"github.com/mformat/mformat/internal/token"
)

// classRule pairs a token class with the regexp that recognises it and an
// optional lookahead boundary check on the character immediately following
// the match (used where the spec pattern table has a "(?=...)" lookahead
// that Go's RE2 engine cannot express directly). Rules are tried in order;
// the first match wins (spec §4.1 "Recognition rule").
type classRule struct {
	class    token.Class
	pattern  *regexp.Regexp
	boundary func(next byte, hasNext bool) bool
}

func notWordByte(next byte, hasNext bool) bool {
	if !hasNext {
		return true
	}
	isWord := (next >= 'A' && next <= 'Z') || (next >= 'a' && next <= 'z') ||
		(next >= '0' && next <= '9') || next == '_'
	return !isWord
}

func notQuote(next byte, hasNext bool) bool {
	return !hasNext || next != '\''
}

// rules is the ordered class table from spec §4.1.  Longest-match-first is
// achieved naturally by listing the multi-character operators before their
// single-character prefixes (e.g. "==" before "=").
var rules = []classRule{
	{token.LineComment, regexp.MustCompile(`\A%.*`), nil},
	{token.LineContinuationComment, regexp.MustCompile(`\A\.\.\..*(\n|$)`), nil},
	{token.Keyword, regexp.MustCompile(`\A(break|case|catch|classdef|continue|else|elseif|end|for|function|global|if|otherwise|parfor|persistent|return|spmd|switch|try|while)`), notWordByte},
	{token.SingleQuotedString, regexp.MustCompile(`\A'([^'\n]*('')*)*'`), notQuote},
	{token.Identifier, regexp.MustCompile(`\A[A-Za-z][A-Za-z0-9_]*`), nil},
	{token.Number, regexp.MustCompile(`\A([0-9]+|[0-9]*\.[0-9]+|[0-9]+\.[0-9]*)([eE][0-9]+)?`), nil},
	{token.OpeningParenthesisWithoutIdentifier, regexp.MustCompile(`\A\(`), nil},
	{token.ClosingParenthesisWithoutIdentifier, regexp.MustCompile(`\A\)`), nil},
	{token.OpeningBracketWithoutIdentifier, regexp.MustCompile(`\A\[`), nil},
	{token.ClosingBracketWithoutIdentifier, regexp.MustCompile(`\A\]`), nil},
	{token.OpeningBraceWithoutIdentifier, regexp.MustCompile(`\A\{`), nil},
	{token.ClosingBraceWithoutIdentifier, regexp.MustCompile(`\A\}`), nil},
	{token.EqOperator, regexp.MustCompile(`\A==`), nil},
	{token.NeOperator, regexp.MustCompile(`\A~=`), nil},
	{token.AssignmentOperator, regexp.MustCompile(`\A=`), nil},
	{token.ShortCircuitLogicalAndOperator, regexp.MustCompile(`\A&&`), nil},
	{token.LogicalAndOperator, regexp.MustCompile(`\A&`), nil},
	{token.ShortCircuitLogicalOrOperator, regexp.MustCompile(`\A\|\|`), nil},
	{token.LogicalOrOperator, regexp.MustCompile(`\A\|`), nil},
	{token.LogicalNotOperator, regexp.MustCompile(`\A~`), nil},
	{token.LteOperator, regexp.MustCompile(`\A<=`), nil},
	{token.LtOperator, regexp.MustCompile(`\A<`), nil},
	{token.GteOperator, regexp.MustCompile(`\A>=`), nil},
	{token.GtOperator, regexp.MustCompile(`\A>`), nil},
	{token.AdditionOperator, regexp.MustCompile(`\A\+`), nil},
	{token.SubtractionOperator, regexp.MustCompile(`\A-`), nil},
	{token.MultiplicationOperator, regexp.MustCompile(`\A\.\*`), nil},
	{token.MatrixMultiplicationOperator, regexp.MustCompile(`\A\*`), nil},
	{token.RightDivisionOperator, regexp.MustCompile(`\A\./`), nil},
	{token.LeftDivisionOperator, regexp.MustCompile(`\A\.\\`), nil},
	{token.MatrixRightDivisionOperator, regexp.MustCompile(`\A/`), nil},
	{token.MatrixLeftDivisionOperator, regexp.MustCompile(`\A\\`), nil},
	{token.PowerOperator, regexp.MustCompile(`\A\.\^`), nil},
	{token.MatrixPowerOperator, regexp.MustCompile(`\A\^`), nil},
	{token.TransposeOperator, regexp.MustCompile(`\A\.'`), nil},
	{token.ColonOperator, regexp.MustCompile(`\A:`), nil},
	{token.Period, regexp.MustCompile(`\A\.`), nil},
	{token.Comma, regexp.MustCompile(`\A,`), nil},
	{token.Semicolon, regexp.MustCompile(`\A;`), nil},
	{token.Tilde, regexp.MustCompile(`\A~`), nil},
	{token.Whitespace, regexp.MustCompile(`\A[ \t]+`), nil},
	{token.Newline, regexp.MustCompile(`\A\n`), nil},
}

// conjugateTransposeClasses is the set of relevant token classes after
// which a bare "'" is a transpose rather than the start of a string
// (spec §4.1 rule 2).
var conjugateTransposeClasses = map[token.Class]bool{
	token.Identifier:                          true,
	token.Number:                              true,
	token.ClosingParenthesisWithIdentifier:    true,
	token.ClosingParenthesisWithoutIdentifier: true,
	token.ClosingBracketWithoutIdentifier:     true,
	token.ClosingBraceWithIdentifier:          true,
	token.ClosingBraceWithoutIdentifier:       true,
}

// state tracks the cursor and open-grouping stack across a single Tokenize
// call.  A fresh state is used per call, so no lexer state is shared across
// inputs (spec §5).
type state struct {
	code     string
	pos      int
	tokens   []*token.Token
	lastRel  *token.Token
	grouping []token.Class // pushed opening class of each currently-open group
}

// Tokenize scans code and returns its tokens in source order, each carrying
// its class, literal text, byte offset, and bracket-nesting depth.
// Unterminated strings and block comments are not diagnosed; unmatched
// characters become Unknown tokens.  There are no fatal errors.
func Tokenize(code string) []*token.Token {
	s := &state{code: code}

	for s.pos < len(s.code) {
		if s.onlyWhitespaceBeforeOnLine() {
			if m, ok := s.matchBlockComment(); ok {
				s.appendText(m, token.BlockComment)
				continue
			}
		}

		if s.lastRel != nil && conjugateTransposeClasses[s.lastRel.Class] && s.peekRune() == '\'' {
			s.appendText("'", token.ConjugateTransposeOperator)
			continue
		}

		if s.lastRel != nil && s.lastRel.Class == token.Identifier {
			if s.peekRune() == '(' {
				s.appendText("(", token.OpeningParenthesisWithIdentifier)
				continue
			}
			if s.peekRune() == '{' {
				s.appendText("{", token.OpeningBraceWithIdentifier)
				continue
			}
		}

		matched := false
		for _, r := range rules {
			loc := r.pattern.FindStringIndex(s.code[s.pos:])
			if loc == nil {
				continue
			}
			if r.boundary != nil {
				nextPos := s.pos + loc[1]
				next, hasNext := byte(0), false
				if nextPos < len(s.code) {
					next, hasNext = s.code[nextPos], true
				}
				if !r.boundary(next, hasNext) {
					continue
				}
			}
			s.appendText(s.code[s.pos:s.pos+loc[1]], r.class)
			matched = true
			break
		}
		if !matched {
			s.appendText(s.code[s.pos:s.pos+1], token.Unknown)
		}
	}

	return s.tokens
}

// onlyWhitespaceBeforeOnLine reports whether every character from the start
// of the current line up to s.pos is a space or tab.
func (s *state) onlyWhitespaceBeforeOnLine() bool {
	lineStart := s.pos
	for lineStart > 0 && s.code[lineStart-1] != '\n' {
		lineStart--
	}
	for i := lineStart; i < s.pos; i++ {
		if s.code[i] != ' ' && s.code[i] != '\t' {
			return false
		}
	}
	return true
}

// matchBlockComment recognises a %{ ... %} block comment (spec §4.1 rule 1:
// "%\{\n ... \n[ \t]*%\}", only when only whitespace precedes the %{ on its
// line). It requires a newline immediately after "%{" and a trailing "%}"
// whose own line holds nothing but leading whitespace, itself followed by a
// newline or end of input (not consumed). Among several valid closings the
// rightmost is chosen, mirroring a greedy regular expression.
func (s *state) matchBlockComment() (string, bool) {
	code, pos := s.code, s.pos
	if pos+3 > len(code) || code[pos:pos+2] != "%{" || code[pos+2] != '\n' {
		return "", false
	}

	end := -1
	for i := pos + 3; i+1 < len(code); i++ {
		if code[i] != '%' || code[i+1] != '}' {
			continue
		}
		j := i
		for j > pos+2 && (code[j-1] == ' ' || code[j-1] == '\t') {
			j--
		}
		if code[j-1] != '\n' {
			continue
		}
		closeEnd := i + 2
		if closeEnd == len(code) || code[closeEnd] == '\n' {
			end = closeEnd
		}
	}
	if end == -1 {
		return "", false
	}
	return code[pos:end], true
}

func (s *state) peekRune() byte {
	if s.pos >= len(s.code) {
		return 0
	}
	return s.code[s.pos]
}

// appendText emits a token of class c holding text, assigns its group
// depth, and updates the grouping stack and last-relevant-token tracking
// per spec §4.1's "Group-depth assignment".
func (s *state) appendText(text string, c token.Class) {
	t := token.New(text, s.pos, c)
	t.GroupDepth = len(s.grouping)

	switch {
	case c.IsOpening():
		s.grouping = append(s.grouping, c)
	case t.Class == token.ClosingParenthesisWithoutIdentifier ||
		t.Class == token.ClosingBracketWithoutIdentifier ||
		t.Class == token.ClosingBraceWithoutIdentifier:
		if len(s.grouping) > 0 {
			top := s.grouping[len(s.grouping)-1]
			if top == token.OpeningParenthesisWithIdentifier {
				t.Class = token.ClosingParenthesisWithIdentifier
			} else if top == token.OpeningBraceWithIdentifier {
				t.Class = token.ClosingBraceWithIdentifier
			}
			s.grouping = s.grouping[:len(s.grouping)-1]
			t.GroupDepth--
		}
	}

	if t.IsRelevant() {
		s.lastRel = t
	}

	s.pos += len(text)
	s.tokens = append(s.tokens, t)
}
