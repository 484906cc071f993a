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

package token

import "testing"

func TestClassString(t *testing.T) {
	tests := []struct {
		class Class
		want  string
	}{
		{Whitespace, "whitespace"},
		{Identifier, "identifier"},
		{AssignmentOperator, "assignmentOperator"},
		{ClosingParenthesisWithIdentifier, "closingParenthesisWithIdentifier"},
		{Class(9999), "Class(9999)"},
	}
	for _, tt := range tests {
		if got := tt.class.String(); got != tt.want {
			t.Errorf("Class(%d).String() = %q, want %q", tt.class, got, tt.want)
		}
	}
}

func TestClassPredicates(t *testing.T) {
	if !AdditionOperator.IsOperator() {
		t.Error("AdditionOperator.IsOperator() = false, want true")
	}
	if Identifier.IsOperator() {
		t.Error("Identifier.IsOperator() = true, want false")
	}
	if !OpeningBracketWithoutIdentifier.IsOpening() {
		t.Error("OpeningBracketWithoutIdentifier.IsOpening() = false, want true")
	}
	if !ClosingBraceWithIdentifier.IsClosing() {
		t.Error("ClosingBraceWithIdentifier.IsClosing() = false, want true")
	}
	if !ClosingBraceWithIdentifier.IsClosingWithIdentifier() {
		t.Error("ClosingBraceWithIdentifier.IsClosingWithIdentifier() = false, want true")
	}
	if ClosingBraceWithoutIdentifier.IsClosingWithIdentifier() {
		t.Error("ClosingBraceWithoutIdentifier.IsClosingWithIdentifier() = true, want false")
	}

	kind, ok := ClosingParenthesisWithoutIdentifier.GroupingKind()
	if !ok || kind != "Parenthesis" {
		t.Errorf("ClosingParenthesisWithoutIdentifier.GroupingKind() = %q, %v, want %q, true", kind, ok, "Parenthesis")
	}
	if _, ok := Identifier.GroupingKind(); ok {
		t.Error("Identifier.GroupingKind() ok = true, want false")
	}
}

func TestNewNumberValue(t *testing.T) {
	tests := []struct {
		text string
		want interface{}
	}{
		{"42", int64(42)},
		{"3.5", 3.5},
		{"1e3", int64(1000)},
	}
	for _, tt := range tests {
		tok := New(tt.text, 0, Number)
		if tok.Value != tt.want {
			t.Errorf("New(%q, Number).Value = %#v, want %#v", tt.text, tok.Value, tt.want)
		}
	}
}

func TestNewStringValue(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{`'hello'`, "hello"},
		{`'it''s'`, "it's"},
		{`''`, ""},
	}
	for _, tt := range tests {
		tok := New(tt.text, 0, SingleQuotedString)
		if tok.Value != tt.want {
			t.Errorf("New(%q, SingleQuotedString).Value = %q, want %q", tt.text, tok.Value, tt.want)
		}
	}
}

func TestSyntheticSentinel(t *testing.T) {
	tok := Synthetic("\n", Newline)
	if tok.StartPos != -1 {
		t.Errorf("Synthetic(...).StartPos = %d, want -1", tok.StartPos)
	}
	if tok.Text != "\n" || tok.Class != Newline {
		t.Errorf("Synthetic(...) = %+v, want Text=%q Class=%v", tok, "\n", Newline)
	}
}

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		class Class
		want  bool
	}{
		{Whitespace, false},
		{Newline, false},
		{LineComment, false},
		{BlockComment, false},
		{LineContinuationComment, false},
		{Identifier, true},
		{Semicolon, true},
		{Comma, true},
	}
	for _, tt := range tests {
		tok := New("x", 0, tt.class)
		if got := tok.IsRelevant(); got != tt.want {
			t.Errorf("New(%q).IsRelevant() = %v, want %v", tt.class, got, tt.want)
		}
	}
}
