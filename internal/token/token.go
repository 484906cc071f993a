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

// Package token defines the lexical classes produced by the tokenizer and
// consumed by the parser and formatter.
package token

import (
	"fmt"
	"strconv"
	"strings"
)

// Class identifies the lexical category of a Token.  Class is a closed,
// tagged variant rather than a string label: the parser and formatter
// discriminate on it with switch statements instead of suffix tests on a
// class name.
type Class int

// The exhaustive set of token classes.
const (
	Invalid Class = iota

	// trivia
	Whitespace
	Newline
	LineComment
	BlockComment
	LineContinuationComment

	// literals
	SingleQuotedString
	Number

	// keyword (value distinguishes break/case/catch/.../while)
	Keyword

	// identifier
	Identifier

	// grouping
	OpeningParenthesisWithIdentifier
	OpeningParenthesisWithoutIdentifier
	ClosingParenthesisWithIdentifier
	ClosingParenthesisWithoutIdentifier
	OpeningBracketWithoutIdentifier
	ClosingBracketWithoutIdentifier
	OpeningBraceWithIdentifier
	OpeningBraceWithoutIdentifier
	ClosingBraceWithIdentifier
	ClosingBraceWithoutIdentifier

	// operators
	EqOperator
	NeOperator
	AssignmentOperator
	ShortCircuitLogicalAndOperator
	LogicalAndOperator
	ShortCircuitLogicalOrOperator
	LogicalOrOperator
	LogicalNotOperator
	LteOperator
	LtOperator
	GteOperator
	GtOperator
	AdditionOperator
	SubtractionOperator
	MultiplicationOperator
	MatrixMultiplicationOperator
	RightDivisionOperator
	LeftDivisionOperator
	MatrixRightDivisionOperator
	MatrixLeftDivisionOperator
	PowerOperator
	MatrixPowerOperator
	TransposeOperator
	ConjugateTransposeOperator
	ColonOperator

	// punctuation
	Period
	Comma
	Semicolon
	Tilde
	Unknown
)

var classNames = map[Class]string{
	Invalid:                              "invalid",
	Whitespace:                           "whitespace",
	Newline:                              "newline",
	LineComment:                          "lineComment",
	BlockComment:                         "blockComment",
	LineContinuationComment:              "lineContinuationComment",
	SingleQuotedString:                   "singleQuotedString",
	Number:                               "number",
	Keyword:                              "keyword",
	Identifier:                           "identifier",
	OpeningParenthesisWithIdentifier:     "openingParenthesisWithIdentifier",
	OpeningParenthesisWithoutIdentifier:  "openingParenthesisWithoutIdentifier",
	ClosingParenthesisWithIdentifier:     "closingParenthesisWithIdentifier",
	ClosingParenthesisWithoutIdentifier:  "closingParenthesisWithoutIdentifier",
	OpeningBracketWithoutIdentifier:      "openingBracketWithoutIdentifier",
	ClosingBracketWithoutIdentifier:      "closingBracketWithoutIdentifier",
	OpeningBraceWithIdentifier:           "openingBraceWithIdentifier",
	OpeningBraceWithoutIdentifier:        "openingBraceWithoutIdentifier",
	ClosingBraceWithIdentifier:           "closingBraceWithIdentifier",
	ClosingBraceWithoutIdentifier:        "closingBraceWithoutIdentifier",
	EqOperator:                           "eqOperator",
	NeOperator:                           "neOperator",
	AssignmentOperator:                   "assignmentOperator",
	ShortCircuitLogicalAndOperator:       "shortCircuitLogicalAndOperator",
	LogicalAndOperator:                   "logicalAndOperator",
	ShortCircuitLogicalOrOperator:        "shortCircuitLogicalOrOperator",
	LogicalOrOperator:                    "logicalOrOperator",
	LogicalNotOperator:                   "logicalNotOperator",
	LteOperator:                          "lteOperator",
	LtOperator:                           "ltOperator",
	GteOperator:                          "gteOperator",
	GtOperator:                           "gtOperator",
	AdditionOperator:                     "additionOperator",
	SubtractionOperator:                  "subtractionOperator",
	MultiplicationOperator:               "multiplicationOperator",
	MatrixMultiplicationOperator:         "matrixMultiplicationOperator",
	RightDivisionOperator:                "rightDivisionOperator",
	LeftDivisionOperator:                 "leftDivisionOperator",
	MatrixRightDivisionOperator:          "matrixRightDivisionOperator",
	MatrixLeftDivisionOperator:           "matrixLeftDivisionOperator",
	PowerOperator:                        "powerOperator",
	MatrixPowerOperator:                  "matrixPowerOperator",
	TransposeOperator:                    "transposeOperator",
	ConjugateTransposeOperator:           "conjugateTransposeOperator",
	ColonOperator:                        "colonOperator",
	Period:                               "period",
	Comma:                                "comma",
	Semicolon:                            "semicolon",
	Tilde:                                "tilde",
	Unknown:                              "unknown",
}

// String returns c's class name, matching the string labels used by spec.
func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// IsOperator reports whether c is one of the binary/unary operator classes
// that the parser's operator-partition step (spec §4.2.4) considers.
func (c Class) IsOperator() bool {
	switch c {
	case EqOperator, NeOperator, AssignmentOperator, ShortCircuitLogicalAndOperator,
		LogicalAndOperator, ShortCircuitLogicalOrOperator, LogicalOrOperator,
		LogicalNotOperator, LteOperator, LtOperator, GteOperator, GtOperator,
		AdditionOperator, SubtractionOperator, MultiplicationOperator,
		MatrixMultiplicationOperator, RightDivisionOperator, LeftDivisionOperator,
		MatrixRightDivisionOperator, MatrixLeftDivisionOperator, PowerOperator,
		MatrixPowerOperator, TransposeOperator, ConjugateTransposeOperator, ColonOperator:
		return true
	}
	return false
}

// IsOpening reports whether c opens a grouping construct.
func (c Class) IsOpening() bool {
	switch c {
	case OpeningParenthesisWithIdentifier, OpeningParenthesisWithoutIdentifier,
		OpeningBracketWithoutIdentifier, OpeningBraceWithIdentifier, OpeningBraceWithoutIdentifier:
		return true
	}
	return false
}

// IsClosing reports whether c closes a grouping construct, regardless of
// whether it is tagged WithIdentifier or WithoutIdentifier.
func (c Class) IsClosing() bool {
	switch c {
	case ClosingParenthesisWithIdentifier, ClosingParenthesisWithoutIdentifier,
		ClosingBracketWithoutIdentifier, ClosingBraceWithIdentifier, ClosingBraceWithoutIdentifier:
		return true
	}
	return false
}

// IsClosingWithIdentifier reports whether c is a closer of a subscript/call
// group (i.e. its matching opener immediately followed an identifier).
func (c Class) IsClosingWithIdentifier() bool {
	switch c {
	case ClosingParenthesisWithIdentifier, ClosingBraceWithIdentifier:
		return true
	}
	return false
}

// GroupingKind returns the bare grouping kind ("Parenthesis", "Bracket", or
// "Brace") for an opening or closing class, and false if c is neither.
func (c Class) GroupingKind() (string, bool) {
	switch c {
	case OpeningParenthesisWithIdentifier, OpeningParenthesisWithoutIdentifier,
		ClosingParenthesisWithIdentifier, ClosingParenthesisWithoutIdentifier:
		return "Parenthesis", true
	case OpeningBracketWithoutIdentifier, ClosingBracketWithoutIdentifier:
		return "Bracket", true
	case OpeningBraceWithIdentifier, OpeningBraceWithoutIdentifier,
		ClosingBraceWithIdentifier, ClosingBraceWithoutIdentifier:
		return "Brace", true
	}
	return "", false
}

// Token is one lexical unit read from the input, or synthesised by the
// formatter (in which case StartPos is -1, the sentinel described by spec
// DESIGN NOTES §9).
type Token struct {
	Text       string // exact source substring (or synthesised text)
	StartPos   int    // byte offset; -1 for synthetic tokens
	Class      Class
	Value      interface{} // int64 or float64 for numbers, unescaped text for strings, else Text
	GroupDepth int         // count of unclosed openers before this token
}

// New returns a Token of class c holding text, with its Value derived the
// way spec §3 describes: integer-or-float for numbers, unescaped content
// for single-quoted strings, and the literal text otherwise.
func New(text string, startPos int, class Class) *Token {
	t := &Token{Text: text, StartPos: startPos, Class: class}
	t.evaluate()
	return t
}

// Synthetic returns a Token created during formatting, carrying the
// sentinel StartPos of -1.
func Synthetic(text string, class Class) *Token {
	return New(text, -1, class)
}

// evaluate derives Value from Text and Class, per spec §3: numbers become
// an int64 when exact, else a float64; single-quoted strings are unescaped
// (surrounding quotes stripped, "''" collapsed to "'"); everything else
// simply carries its own text.
func (t *Token) evaluate() {
	switch t.Class {
	case SingleQuotedString:
		inner := t.Text
		if len(inner) >= 2 {
			inner = inner[1 : len(inner)-1]
		}
		t.Value = strings.ReplaceAll(inner, "''", "'")
	case Number:
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			t.Value = t.Text
			return
		}
		if i := int64(f); float64(i) == f {
			t.Value = i
		} else {
			t.Value = f
		}
	default:
		t.Value = t.Text
	}
}

// IsRelevant reports whether t carries program meaning, i.e. is not trivia.
func (t *Token) IsRelevant() bool {
	switch t.Class {
	case BlockComment, LineComment, LineContinuationComment, Newline, Whitespace:
		return false
	}
	return true
}

// String renders t for debugging.
func (t *Token) String() string {
	return fmt.Sprintf("%s(text=%q, startPos=%d, depth=%d)", t.Class, t.Text, t.StartPos, t.GroupDepth)
}
