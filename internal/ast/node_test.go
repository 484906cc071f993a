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

package ast

import (
	"testing"

	"github.com/mformat/mformat/internal/token"
)

func leaf(text string, c token.Class) *SyntaxNode {
	return Leaf(token.New(text, 0, c))
}

func TestStrRoundTrip(t *testing.T) {
	root := New(Statement)
	root.AppendChild(leaf("a", token.Identifier))
	root.AppendChild(leaf(" ", token.Whitespace))
	root.AppendChild(leaf("=", token.AssignmentOperator))
	root.AppendChild(leaf(" ", token.Whitespace))
	root.AppendChild(leaf("1", token.Number))
	root.AppendChild(leaf(";", token.Semicolon))

	if got, want := root.Str(), "a = 1;"; got != want {
		t.Errorf("Str() = %q, want %q", got, want)
	}
}

func TestInsertChild(t *testing.T) {
	root := New(StatementSequence)
	root.AppendChild(leaf("a", token.Identifier))
	root.AppendChild(leaf("c", token.Identifier))
	middle := leaf("b", token.Identifier)
	root.InsertChild(1, middle)

	if got, want := root.Str(), "abc"; got != want {
		t.Errorf("Str() after InsertChild = %q, want %q", got, want)
	}
	if middle.Parent != root {
		t.Error("InsertChild did not reparent the inserted node")
	}
}

func TestRemoveChildAt(t *testing.T) {
	root := New(StatementSequence)
	root.AppendChild(leaf("a", token.Identifier))
	root.AppendChild(leaf("b", token.Identifier))
	root.AppendChild(leaf("c", token.Identifier))
	root.RemoveChildAt(1)

	if got, want := root.Str(), "ac"; got != want {
		t.Errorf("Str() after RemoveChildAt = %q, want %q", got, want)
	}
	if len(root.Children) != 2 {
		t.Fatalf("len(root.Children) = %d, want 2", len(root.Children))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	root := New(Statement)
	child := leaf("a", token.Identifier)
	root.AppendChild(child)
	root.SetBlockDepth(2)

	clone := root.Clone()
	clone.Children[0].Token.Text = "z"
	*clone.BlockDepth = 9

	if root.Children[0].Token.Text != "a" {
		t.Errorf("mutating clone changed original token text: %q", root.Children[0].Token.Text)
	}
	if *root.BlockDepth != 2 {
		t.Errorf("mutating clone changed original BlockDepth: %d", *root.BlockDepth)
	}
	if clone.Children[0].Parent != clone {
		t.Error("clone's child is not reparented to clone")
	}
	if clone == root || clone.Children[0] == root.Children[0] {
		t.Error("Clone returned the same nodes as the original")
	}
}

func TestWalkPreOrder(t *testing.T) {
	root := New(StatementSequence)
	a := root.AppendNewChild(Statement)
	a.AppendChild(leaf("x", token.Identifier))
	b := root.AppendNewChild(Statement)
	b.AppendChild(leaf("y", token.Identifier))

	var visited []string
	root.Walk(func(n *SyntaxNode) {
		if n.Token != nil {
			visited = append(visited, n.Token.Text)
		} else {
			visited = append(visited, n.Class)
		}
	})

	want := []string{StatementSequence, Statement, "x", Statement, "y"}
	if len(visited) != len(want) {
		t.Fatalf("Walk visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("Walk visited %v, want %v", visited, want)
		}
	}
}

func TestBeforeDocumentOrder(t *testing.T) {
	root := New(StatementSequence)
	a := root.AppendNewChild(Statement)
	b := root.AppendNewChild(Statement)
	aChild := a.AppendNewChild(StatementBody)

	if !Before(a, b) {
		t.Error("Before(a, b) = false, want true (a comes first)")
	}
	if Before(b, a) {
		t.Error("Before(b, a) = true, want false")
	}
	if !Before(a, aChild) {
		t.Error("Before(a, aChild) = false, want true (parent precedes child)")
	}
	if Before(a, a) {
		t.Error("Before(a, a) = true, want false")
	}
}

func TestBlockNodeClassAndOperatorNodeClass(t *testing.T) {
	if got, want := BlockNodeClass("if"), "ifBlock"; got != want {
		t.Errorf("BlockNodeClass(%q) = %q, want %q", "if", got, want)
	}
	if got, want := OperatorNodeClass(token.AdditionOperator), "additionOperatorNode"; got != want {
		t.Errorf("OperatorNodeClass(AdditionOperator) = %q, want %q", got, want)
	}
}
