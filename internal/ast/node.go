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

// Package ast defines the concrete syntax tree the parser builds and the
// formatter rewrites (spec §3). A SyntaxNode either wraps a single leaf
// Token or owns an ordered list of children; str(node) is the faithful
// concatenation of a node's own token text followed by each child's str,
// so immediately after parsing str(root) reproduces the source byte for
// byte (spec §3's round-trip identity).
package ast

import (
	"strings"

	"github.com/mformat/mformat/internal/token"
)

// Node class labels used by the parser and formatter. These are not an
// exhaustive closed set (spec §3 defines class as a plain string label,
// and the parser synthesises class names such as "<operator>Node" or
// "functionCall" dynamically) but naming the structural ones as constants
// keeps call sites free of typos.
const (
	StatementSequence = "statementSequence"
	Statement         = "statement"
	IrrelevantTokens  = "irrelevantTokens"
	StatementBody     = "statementBody"
	Empty             = "empty"
	RelevantToken     = "relevantToken"
	CommaSeparatedList = "commaSeparatedList"
	StructReference          = "structReference"
	ReferencedStruct         = "referencedStruct"
	StructReferenceArguments = "structReferenceArguments"
	FunctionCall         = "functionCall"
	CalledFunction       = "calledFunction"
	FunctionArguments    = "functionArguments"
	CellReference        = "cellReference"
	ReferencedCell       = "referencedCell"
	CellReferenceArguments = "cellReferenceArguments"
	ParenthesisGroup = "parenthesisGroup"
	BracketGroup     = "bracketGroup"
	BraceGroup       = "braceGroup"
	GroupContents    = "groupContents"
	Block            = "block"
)

// BlockNodeClass returns the "<kw>Block" class name for a block-controlling
// keyword, e.g. "if" -> "ifBlock" (spec §3's invariant on block node kinds).
func BlockNodeClass(keyword string) string { return keyword + "Block" }

// OperatorNodeClass returns the "<class>Node" name the parser builds for an
// operator partition (spec §4.2.4 step 3), e.g. additionOperator ->
// additionOperatorNode.
func OperatorNodeClass(c token.Class) string { return c.String() + "Node" }

// SyntaxNode is one node of the concrete syntax tree. Leaf nodes own a
// Token; interior nodes own Children. Parent is set by whichever of
// AppendChild/AppendNewChild attaches the node, and exists purely for
// navigation -- SyntaxNode does not use it to decide ownership.
type SyntaxNode struct {
	Class      string
	Token      *token.Token
	Children   []*SyntaxNode
	Parent     *SyntaxNode
	BlockDepth *int // set only on Statement nodes, by the parser's depth pass
}

// New returns an childless node of the given class.
func New(class string) *SyntaxNode {
	return &SyntaxNode{Class: class}
}

// Leaf returns a node wrapping t, whose class is t.Class's string label.
func Leaf(t *token.Token) *SyntaxNode {
	return &SyntaxNode{Class: t.Class.String(), Token: t}
}

// AppendChild appends child to n's children, reparenting it to n, and
// returns child.
func (n *SyntaxNode) AppendChild(child *SyntaxNode) *SyntaxNode {
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// AppendNewChild creates a node of class and appends it as n's child.
func (n *SyntaxNode) AppendNewChild(class string) *SyntaxNode {
	return n.AppendChild(New(class))
}

// AppendToken creates a leaf node for t and appends it as n's child.
func (n *SyntaxNode) AppendToken(t *token.Token) *SyntaxNode {
	return n.AppendChild(Leaf(t))
}

// InsertChild inserts child at position i among n's children, reparenting
// it to n.
func (n *SyntaxNode) InsertChild(i int, child *SyntaxNode) {
	child.Parent = n
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = child
}

// RemoveChildAt deletes the child at index i.
func (n *SyntaxNode) RemoveChildAt(i int) {
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
}

// Str returns the faithful round-trip text of the subtree rooted at n:
// n's own token text (if any), followed by each child's Str, in order.
func (n *SyntaxNode) Str() string {
	var b strings.Builder
	n.writeTo(&b)
	return b.String()
}

func (n *SyntaxNode) writeTo(b *strings.Builder) {
	if n.Token != nil {
		b.WriteString(n.Token.Text)
	}
	for _, c := range n.Children {
		c.writeTo(b)
	}
}

// Clone returns a deep copy of the subtree rooted at n, with fresh parent
// pointers and an unshared Token (Tokens are treated as immutable value
// data, so copying the pointer would be equally safe, but a deep copy
// keeps the clone fully independent of the original tree, matching
// spec §4.3's "formatter clones the tree, then mutates the clone").
func (n *SyntaxNode) Clone() *SyntaxNode {
	clone := &SyntaxNode{Class: n.Class}
	if n.Token != nil {
		tok := *n.Token
		clone.Token = &tok
	}
	if n.BlockDepth != nil {
		d := *n.BlockDepth
		clone.BlockDepth = &d
	}
	clone.Children = make([]*SyntaxNode, len(n.Children))
	for i, c := range n.Children {
		cc := c.Clone()
		cc.Parent = clone
		clone.Children[i] = cc
	}
	return clone
}

// SetBlockDepth sets n's BlockDepth to depth.
func (n *SyntaxNode) SetBlockDepth(depth int) {
	n.BlockDepth = &depth
}

// Walk calls visit for n and every descendant, in pre-order (document
// order).  Stopping early is not supported; callers that need to abort use
// a sentinel in the closure.
func (n *SyntaxNode) Walk(visit func(*SyntaxNode)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Path returns n's sequence of child indices from the tree root, used to
// compare two nodes' positions in document order without relying on
// memoised iterators (spec DESIGN NOTES §9, "Document-order comparison").
func (n *SyntaxNode) Path() []int {
	var path []int
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		idx := -1
		for i, sib := range cur.Parent.Children {
			if sib == cur {
				idx = i
				break
			}
		}
		path = append([]int{idx}, path...)
	}
	return path
}

// Before reports whether n occurs strictly before other in document order,
// comparing their root-relative paths lexicographically.
func Before(n, other *SyntaxNode) bool {
	p1, p2 := n.Path(), other.Path()
	for i := 0; i < len(p1) && i < len(p2); i++ {
		if p1[i] != p2[i] {
			return p1[i] < p2[i]
		}
	}
	return len(p1) < len(p2)
}
