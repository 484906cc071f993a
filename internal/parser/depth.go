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
)

// computeBlockDepths runs spec §4.2.6's post-pass: detect whether functions
// in this file use "end", then walk the tree assigning blockDepth to every
// statement node according to the main/local/nested function model.
func computeBlockDepths(root *ast.SyntaxNode, cfg Config) {
	w := &depthWalker{cfg: cfg, functionsHaveEnd: detectFunctionsHaveEnd(root)}
	w.walk(root, 0, 0)
}

// detectFunctionsHaveEnd finds the first functionBlock in document order
// and reports whether it has an "end" sub-node; false if there is none.
func detectFunctionsHaveEnd(root *ast.SyntaxNode) bool {
	found, hasEnd := false, false
	root.Walk(func(n *ast.SyntaxNode) {
		if found || n.Class != "functionBlock" {
			return
		}
		found = true
		for _, c := range n.Children {
			if c.Class == "end" {
				hasEnd = true
				return
			}
		}
	})
	return hasEnd
}

// depthWalker threads the globally-tracked main-function state (spec
// §4.2.6) through an otherwise purely recursive descent.
type depthWalker struct {
	cfg                 Config
	functionsHaveEnd    bool
	mainFunctionStarted bool
	mainFunctionEnded   bool
}

func (w *depthWalker) walk(n *ast.SyntaxNode, blockDepth, functionDepth int) {
	if n.Class == ast.Statement {
		n.SetBlockDepth(blockDepth)
		return
	}

	if !strings.HasSuffix(n.Class, "Block") {
		for _, child := range n.Children {
			w.walk(child, blockDepth, functionDepth)
		}
		return
	}

	parentIsFunction := n.Class == "functionBlock"

	if parentIsFunction {
		if !w.mainFunctionStarted {
			w.mainFunctionStarted = true
		} else if !w.mainFunctionEnded && (!w.functionsHaveEnd || functionDepth == 0) {
			w.mainFunctionEnded = true
		}
	}

	parentIsMainFunction := parentIsFunction && !w.mainFunctionEnded && functionDepth == 0
	parentIsNestedFunction := parentIsFunction && w.functionsHaveEnd && functionDepth >= 1
	parentIsLocalFunction := parentIsFunction && !parentIsMainFunction && !parentIsNestedFunction

	childFunctionDepth := functionDepth
	if parentIsFunction && (w.functionsHaveEnd || functionDepth == 0) {
		childFunctionDepth++
	}

	childBlockDepthBase := blockDepth
	if parentIsLocalFunction {
		childBlockDepthBase = 0
	}

	indentChildren := !parentIsFunction
	switch {
	case parentIsMainFunction:
		indentChildren = w.cfg.IndentMainFunction
	case parentIsLocalFunction:
		indentChildren = w.cfg.IndentLocalFunction
	case parentIsNestedFunction:
		indentChildren = w.cfg.IndentNestedFunction
	}

	// Only a block's statementSequence children (its own body, and every
	// branch's body) receive the extra indentation level; the keyword
	// header, branch label (case/catch/else/elseif/otherwise) and end
	// nodes stay at the block's own depth, same as the opening/closing
	// line they wrap. A statementSequence immediately following a
	// case/otherwise branch node gets one further level on top of that
	// when configured to.
	extraForNext := false
	for _, child := range n.Children {
		childBlockDepth := childBlockDepthBase
		if child.Class == ast.StatementSequence {
			if indentChildren {
				childBlockDepth++
			}
			if extraForNext {
				childBlockDepth++
			}
		}
		w.walk(child, childBlockDepth, childFunctionDepth)

		extraForNext = (child.Class == "case" || child.Class == "otherwise") && w.cfg.IndentCaseOtherwise
	}
}
