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

// Package parser turns a token stream into the concrete syntax tree the
// formatter rewrites, implementing spec §4.2: split into statements, build
// the block tree, parse each statement body by precedence-driven
// partitioning, then annotate every statement with its indentation depth.
package parser

import (
	"github.com/mformat/mformat/internal/ast"
	"github.com/mformat/mformat/internal/token"
)

// Config carries the subset of formatting configuration the block-depth
// pass needs (spec §4.2.6): which function kinds and case/otherwise
// branches receive an extra indentation level.
type Config struct {
	IndentCaseOtherwise  bool
	IndentMainFunction   bool
	IndentLocalFunction  bool
	IndentNestedFunction bool
}

// Parse runs the full three-phase parse plus the block-depth post-pass and
// returns the root statementSequence node.
func Parse(tokens []*token.Token, cfg Config) (*ast.SyntaxNode, error) {
	statements := splitIntoStatements(tokens)
	root, err := parseStatements(statements)
	if err != nil {
		return nil, err
	}
	computeBlockDepths(root, cfg)
	return root, nil
}
