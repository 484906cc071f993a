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

// Package formatter rewrites a parsed syntax tree into normalised source
// text (spec §4.3): strip original trivia, re-insert newlines between
// statements, drop superfluous semicolons, indent, insert operator/comma/
// keyword whitespace, then serialise.
package formatter

import (
	"strings"

	"github.com/mformat/mformat/internal/ast"
	"github.com/mformat/mformat/internal/config"
	"github.com/mformat/mformat/internal/token"
)

// Format clones tree, rewrites the clone in place, and returns the
// formatted text. The original tree is left untouched (spec §3's
// "Lifecycle").
func Format(tree *ast.SyntaxNode, cfg config.Config) string {
	clone := tree.Clone()

	stripWhitespace(clone)
	insertNewlines(clone)
	removeSuperfluousSemicolons(clone)
	indentStatements(clone, cfg)
	insertWhitespace(clone, cfg)

	code := stripTrailingSpaces(clone.Str())
	if cfg.NewlineAtEndOfFile && !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	return code
}

// stripWhitespace deletes whitespace and lineContinuationComment children,
// recursively: at each level the matching children are removed right to
// left, so indices stay valid, before the remaining children are visited
// (spec §4.3 stage 1).
func stripWhitespace(n *ast.SyntaxNode) {
	for i := len(n.Children) - 1; i >= 0; i-- {
		switch n.Children[i].Class {
		case "whitespace", "lineContinuationComment":
			n.RemoveChildAt(i)
		}
	}
	for _, c := range n.Children {
		stripWhitespace(c)
	}
}

// insertNewlines walks the tree in document order and, between adjacent
// statement nodes not already separated by a newline node, prepends a
// synthetic newline to the later statement (spec §4.3 stage 2). Prepending
// to the later statement -- rather than appending to the earlier one -- is
// what makes the later indent stage's "unless the first child is a
// newline" exception meaningful; see DESIGN.md.
func insertNewlines(root *ast.SyntaxNode) {
	var prevStatement *ast.SyntaxNode
	sawNewline := false

	var visit func(n *ast.SyntaxNode)
	visit = func(n *ast.SyntaxNode) {
		switch n.Class {
		case ast.Statement:
			insert := prevStatement != nil && !sawNewline && n.Str() != "\n"
			prevStatement = n
			sawNewline = false
			for _, c := range n.Children {
				visit(c)
			}
			// inserted after visiting the children, so the synthetic newline
			// does not count as separating this statement from the next one
			if insert {
				n.InsertChild(0, ast.Leaf(token.Synthetic("\n", token.Newline)))
			}
			return
		case "newline":
			sawNewline = true
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(root)
}

// removeSuperfluousSemicolons deletes every semicolon descendant of the
// header statement and the terminating "end" statement of each
// non-function block (spec §4.3 stage 3).
func removeSuperfluousSemicolons(root *ast.SyntaxNode) {
	root.Walk(func(n *ast.SyntaxNode) {
		if n.Class == "functionBlock" || !strings.HasSuffix(n.Class, "Block") {
			return
		}
		if len(n.Children) == 0 {
			return
		}
		if header := n.Children[0]; len(header.Children) > 0 {
			stripSemicolons(header.Children[0])
		}
		if last := n.Children[len(n.Children)-1]; last.Class == "end" && len(last.Children) > 0 {
			stripSemicolons(last.Children[0])
		}
	})
}

func stripSemicolons(n *ast.SyntaxNode) {
	for i := len(n.Children) - 1; i >= 0; i-- {
		if n.Children[i].Class == "semicolon" {
			n.RemoveChildAt(i)
			continue
		}
		stripSemicolons(n.Children[i])
	}
}

// indentStatements inserts a synthetic whitespace child sized to a
// statement's blockDepth, at position 0, or position 1 if the statement
// already starts with a newline inserted by the previous stage (spec §4.3
// stage 4).
func indentStatements(n *ast.SyntaxNode, cfg config.Config) {
	if n.Class == ast.Statement {
		if n.BlockDepth != nil {
			spaces := strings.Repeat(" ", (*n.BlockDepth)*cfg.Indent)
			idx := 0
			if len(n.Children) >= 1 && n.Children[0].Class == "newline" {
				idx = 1
			}
			n.InsertChild(idx, ast.Leaf(token.Synthetic(spaces, token.Whitespace)))
		}
		return
	}
	for _, c := range n.Children {
		indentStatements(c, cfg)
	}
}

// insertWhitespace inserts the spacing rules of spec §4.3 stage 5: a space
// on each side of a binary operator, a space after commas (subject to the
// short-argument omission thresholds), and a trailing space after keyword
// and semicolon leaves.
func insertWhitespace(n *ast.SyntaxNode, cfg config.Config) {
	switch {
	case strings.HasSuffix(n.Class, "OperatorNode"):
		insertSpaces := n.Children[0].Class != ast.Empty
		if insertSpaces && n.Class == ast.OperatorNodeClass(token.ColonOperator) {
			insertSpaces = !(cfg.OmitSpaceAroundColon &&
				allChildrenShortExcluding(n, cfg.OmitSpaceAroundColonMaxLength, "colonOperator"))
		}
		if insertSpaces {
			n.InsertChild(2, ast.Leaf(token.Synthetic(" ", token.Whitespace)))
			n.InsertChild(1, ast.Leaf(token.Synthetic(" ", token.Whitespace)))
		}

	case n.Class == ast.CommaSeparatedList:
		omit := cfg.OmitSpaceAfterComma && allChildrenShortExcluding(n, cfg.OmitSpaceAfterCommaMaxLength, "comma")
		if omit {
			return // do not recurse: children keep their own internal spacing untouched
		}
		old := append([]*ast.SyntaxNode(nil), n.Children...)
		for i := len(old) - 1; i >= 0; i-- {
			if old[i].Class == "comma" {
				n.InsertChild(i+1, ast.Leaf(token.Synthetic(" ", token.Whitespace)))
			}
		}

	case n.Class == "keyword" || n.Class == "semicolon":
		n.AppendChild(ast.Leaf(token.Synthetic(" ", token.Whitespace)))
	}

	for _, c := range n.Children {
		insertWhitespace(c, cfg)
	}
}

func allChildrenShortExcluding(n *ast.SyntaxNode, limit int, excludeClass string) bool {
	for _, c := range n.Children {
		if c.Class == excludeClass {
			continue
		}
		if len(c.Str()) > limit {
			return false
		}
	}
	return true
}

// stripTrailingSpaces removes trailing space/tab runs from every line.
// Unlike the reference implementation's regex (which only strips a run of
// spaces preceded by a non-space character, leaving an all-space line
// untouched), this strips unconditionally, which is what spec §8's "no
// trailing spaces" invariant actually requires.
func stripTrailingSpaces(code string) string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
