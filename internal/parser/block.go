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

package parser

import (
	"strings"

	"github.com/mformat/mformat/internal/ast"
	"github.com/mformat/mformat/internal/token"
)

// blockOpeners start a new <kw>Block; blockBranches attach a labeled
// sub-node to the nearest enclosing block; "end" closes one (spec §4.2.2).
var blockOpeners = map[string]bool{
	"classdef": true, "for": true, "function": true, "if": true,
	"parfor": true, "switch": true, "try": true, "while": true,
}

var blockBranches = map[string]bool{
	"case": true, "catch": true, "else": true, "elseif": true, "otherwise": true,
}

// splitIntoStatements breaks a flat token stream into per-statement slices
// at every semicolon, top-level comma, or non-continued newline (spec
// §4.2.1). The terminator stays the last token of its statement. Tokens
// after the last boundary form one final statement; no empty statement is
// appended when the stream ends on a boundary.
func splitIntoStatements(tokens []*token.Token) [][]*token.Token {
	var statements [][]*token.Token
	var current []*token.Token
	var previous *token.Token

	for _, t := range tokens {
		current = append(current, t)

		boundary := t.Class == token.Semicolon ||
			(t.Class == token.Comma && t.GroupDepth == 0) ||
			(t.Class == token.Newline && previous != nil && previous.Class != token.LineContinuationComment)

		if boundary {
			statements = append(statements, current)
			current = nil
		}
		previous = t
	}
	if len(current) > 0 {
		statements = append(statements, current)
	}

	return statements
}

// parseStatements builds the block tree from raw statement token slices
// (spec §4.2.2), dispatching each parsed statement to the cursor implied by
// its leading keyword.
func parseStatements(statements [][]*token.Token) (*ast.SyntaxNode, error) {
	root := ast.New(ast.StatementSequence)
	cur := root

	for _, statement := range statements {
		var firstNonWhitespace *token.Token
		for _, t := range statement {
			if t.Class != token.Whitespace {
				firstNonWhitespace = t
				break
			}
		}

		stmtNode, err := parseStatement(statement)
		if err != nil {
			return nil, err
		}

		keyword := ""
		if firstNonWhitespace != nil && firstNonWhitespace.Class == token.Keyword {
			keyword = firstNonWhitespace.Text
		}

		switch {
		case blockOpeners[keyword]:
			block := cur.AppendNewChild(ast.BlockNodeClass(keyword))
			header := block.AppendNewChild(keyword)
			header.AppendChild(stmtNode)
			cur = block.AppendNewChild(ast.StatementSequence)
		case blockBranches[keyword]:
			block := goUpToBlock(cur)
			branch := block.AppendNewChild(keyword)
			branch.AppendChild(stmtNode)
			cur = block.AppendNewChild(ast.StatementSequence)
		case keyword == "end":
			block := goUpToBlock(cur)
			terminator := block.AppendNewChild(keyword)
			terminator.AppendChild(stmtNode)
			cur = block.Parent
		default:
			cur.AppendChild(stmtNode)
		}
	}

	return root, nil
}

// goUpToBlock walks n's ancestor chain up to and including the nearest
// node whose class names a block kind (ends in "Block").
func goUpToBlock(n *ast.SyntaxNode) *ast.SyntaxNode {
	for !strings.HasSuffix(n.Class, "Block") {
		n = n.Parent
	}
	return n
}
