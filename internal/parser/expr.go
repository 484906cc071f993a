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
	"fmt"

	"github.com/mformat/mformat/internal/ast"
	"github.com/mformat/mformat/internal/token"
)

// ParseError reports the fatal "unexpected last relevant top-level token"
// condition from spec §4.2.5: malformed input that the postfix dispatch
// cannot classify. It is returned, never panicked, so callers can continue
// with the next file (spec §7).
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string { return e.msg }

// operatorPrecedence is the table from spec §4.2.4 ("lower = tighter"
// inverted here to "higher number wins" per the spec's max-by-precedence
// rule). Classes absent from this table (the power and transpose family)
// are deliberately left unmapped: Go's zero value for a missing key is 0,
// so they tie with logicalNotOperator rather than panicking the way a
// Python KeyError would. They are still operator classes
// (token.Class.IsOperator), so the operator-partition step splits on them
// like on any other operator, binding as tightly as logicalNotOperator.
var operatorPrecedence = map[token.Class]int{
	token.LogicalNotOperator:              0,
	token.MultiplicationOperator:          1,
	token.RightDivisionOperator:           1,
	token.LeftDivisionOperator:            1,
	token.MatrixMultiplicationOperator:    1,
	token.MatrixRightDivisionOperator:     1,
	token.MatrixLeftDivisionOperator:      1,
	token.AdditionOperator:                2,
	token.SubtractionOperator:             2,
	token.ColonOperator:                   3,
	token.LtOperator:                      4,
	token.LteOperator:                     4,
	token.GtOperator:                      4,
	token.GteOperator:                     4,
	token.EqOperator:                      4,
	token.NeOperator:                      4,
	token.LogicalAndOperator:              5,
	token.LogicalOrOperator:               6,
	token.ShortCircuitLogicalAndOperator:  7,
	token.ShortCircuitLogicalOrOperator:   8,
}

// parseStatement wraps a raw statement's tokens in the three-child shape
// spec §4.2.3 requires: leading trivia, the parsed body, trailing trivia.
func parseStatement(statement []*token.Token) (*ast.SyntaxNode, error) {
	node := ast.New(ast.Statement)
	before := node.AppendNewChild(ast.IrrelevantTokens)
	body := node.AppendNewChild(ast.StatementBody)
	after := node.AppendNewChild(ast.IrrelevantTokens)

	start := -1
	for i, t := range statement {
		if t.IsRelevant() && t.Class != token.Keyword {
			start = i
			break
		}
	}
	if start == -1 {
		for _, t := range statement {
			before.AppendToken(t)
		}
		return node, nil
	}

	end := len(statement)
	for i := len(statement) - 1; i >= 0; i-- {
		t := statement[i]
		if t.IsRelevant() && t.Class != token.Semicolon {
			end = i + 1
			break
		}
	}

	for _, t := range statement[:start] {
		before.AppendToken(t)
	}
	for _, t := range statement[end:] {
		after.AppendToken(t)
	}

	frag, err := parseStatementFragment(statement[start:end])
	if err != nil {
		return nil, err
	}
	body.AppendChild(frag)
	return node, nil
}

// parseStatementFragment implements the precedence-descent-by-partition
// algorithm of spec §4.2.4: assignment, then top-level comma list, then
// highest-precedence top-level operator, then a dispatch on the count of
// remaining relevant top-level tokens.
func parseStatementFragment(tokens []*token.Token) (*ast.SyntaxNode, error) {
	if len(tokens) == 0 {
		return ast.New(ast.Empty), nil
	}
	depthOffset := tokens[0].GroupDepth

	for i, t := range tokens {
		if t.Class == token.AssignmentOperator {
			return divideAndConquer(tokens, i)
		}
	}

	var topCommaIdx []int
	for i, t := range tokens {
		if t.Class == token.Comma && t.GroupDepth == depthOffset {
			topCommaIdx = append(topCommaIdx, i)
		}
	}
	if len(topCommaIdx) > 0 {
		return buildCommaList(tokens, topCommaIdx)
	}

	var topOperatorIdx []int
	for i, t := range tokens {
		if t.GroupDepth == depthOffset && t.Class.IsOperator() {
			topOperatorIdx = append(topOperatorIdx, i)
		}
	}
	if len(topOperatorIdx) > 0 {
		best := topOperatorIdx[0]
		bestPrec := operatorPrecedence[tokens[best].Class]
		for _, i := range topOperatorIdx[1:] {
			if p := operatorPrecedence[tokens[i].Class]; p >= bestPrec {
				best, bestPrec = i, p
			}
		}
		return divideAndConquer(tokens, best)
	}

	var topRelevantIdx []int
	for i, t := range tokens {
		if t.GroupDepth == depthOffset && t.IsRelevant() {
			topRelevantIdx = append(topRelevantIdx, i)
		}
	}

	switch len(topRelevantIdx) {
	case 0:
		node := ast.New(ast.IrrelevantTokens)
		for _, t := range tokens {
			node.AppendToken(t)
		}
		return node, nil
	case 1:
		idx := topRelevantIdx[0]
		node := ast.New(ast.RelevantToken)
		before := node.AppendNewChild(ast.IrrelevantTokens)
		node.AppendToken(tokens[idx])
		after := node.AppendNewChild(ast.IrrelevantTokens)
		for _, t := range tokens[:idx] {
			before.AppendToken(t)
		}
		for _, t := range tokens[idx+1:] {
			after.AppendToken(t)
		}
		return node, nil
	}

	return postfixDispatch(tokens, topRelevantIdx)
}

// divideAndConquer builds "<class>Node { parse(left), opToken, parse(right) }"
// for the operator token at index i (spec §4.2.4 steps 1 and 3).
func divideAndConquer(tokens []*token.Token, i int) (*ast.SyntaxNode, error) {
	node := ast.New(ast.OperatorNodeClass(tokens[i].Class))
	left, err := parseStatementFragment(tokens[:i])
	if err != nil {
		return nil, err
	}
	node.AppendChild(left)
	node.AppendToken(tokens[i])
	right, err := parseStatementFragment(tokens[i+1:])
	if err != nil {
		return nil, err
	}
	node.AppendChild(right)
	return node, nil
}

// buildCommaList builds the commaSeparatedList node for the top-level comma
// indices found in spec §4.2.4 step 2.
func buildCommaList(tokens []*token.Token, commaIdx []int) (*ast.SyntaxNode, error) {
	node := ast.New(ast.CommaSeparatedList)
	last := -1
	for _, idx := range commaIdx {
		frag, err := parseStatementFragment(tokens[last+1 : idx])
		if err != nil {
			return nil, err
		}
		node.AppendChild(frag)
		node.AppendToken(tokens[idx])
		last = idx
	}
	if last < len(tokens)-1 {
		frag, err := parseStatementFragment(tokens[last+1:])
		if err != nil {
			return nil, err
		}
		node.AppendChild(frag)
	}
	return node, nil
}

// postfixDispatch implements spec §4.2.5: classify an expression fragment
// with two or more relevant top-level tokens by looking at the last two.
func postfixDispatch(tokens []*token.Token, topRelevantIdx []int) (*ast.SyntaxNode, error) {
	l2Idx := topRelevantIdx[len(topRelevantIdx)-2]
	l1Idx := topRelevantIdx[len(topRelevantIdx)-1]
	l1, l2 := tokens[l1Idx], tokens[l2Idx]

	switch {
	case l1.Class == token.Identifier && l2.Class == token.Period:
		return buildDotted(tokens, l2Idx, l1Idx, ast.StructReference, ast.ReferencedStruct, ast.StructReferenceArguments)

	case l1.Class.IsClosingWithIdentifier():
		kind, _ := l1.Class.GroupingKind()
		switch kind {
		case "Parenthesis":
			return buildDotted(tokens, l2Idx, l1Idx, ast.FunctionCall, ast.CalledFunction, ast.FunctionArguments)
		case "Brace":
			return buildDotted(tokens, l2Idx, l1Idx, ast.CellReference, ast.ReferencedCell, ast.CellReferenceArguments)
		}
		return nil, &ParseError{fmt.Sprintf("unexpected last relevant top-level token %q", l1.Class)}

	case l1.Class.IsClosing():
		if len(topRelevantIdx) != 2 {
			return nil, &ParseError{fmt.Sprintf("unexpected last relevant top-level token %q", l1.Class)}
		}
		kind, _ := l1.Class.GroupingKind()
		var groupClass string
		switch kind {
		case "Parenthesis":
			groupClass = ast.ParenthesisGroup
		case "Bracket":
			groupClass = ast.BracketGroup
		case "Brace":
			groupClass = ast.BraceGroup
		}

		node := ast.New(groupClass)
		before := node.AppendNewChild(ast.IrrelevantTokens)
		node.AppendToken(l2)
		contents := node.AppendNewChild(ast.GroupContents)
		frag, err := parseStatementFragment(tokens[l2Idx+1 : l1Idx])
		if err != nil {
			return nil, err
		}
		contents.AppendChild(frag)
		node.AppendToken(l1)
		after := node.AppendNewChild(ast.IrrelevantTokens)
		for _, t := range tokens[:l2Idx] {
			before.AppendToken(t)
		}
		for _, t := range tokens[l1Idx+1:] {
			after.AppendToken(t)
		}
		return node, nil
	}

	return nil, &ParseError{fmt.Sprintf("unexpected last relevant top-level token %q", l1.Class)}
}

// buildDotted builds the shared shape behind structReference, functionCall
// and cellReference (spec §4.2.5): a recursively-parsed "referenced" part,
// the dot or opening bracket, a recursively-parsed argument list, the
// closer, and trailing trivia.
func buildDotted(tokens []*token.Token, l2Idx, l1Idx int, rootClass, referencedClass, argsClass string) (*ast.SyntaxNode, error) {
	l1, l2 := tokens[l1Idx], tokens[l2Idx]

	node := ast.New(rootClass)
	referenced := node.AppendNewChild(referencedClass)
	refFrag, err := parseStatementFragment(tokens[:l2Idx])
	if err != nil {
		return nil, err
	}
	referenced.AppendChild(refFrag)

	node.AppendToken(l2)

	args := node.AppendNewChild(argsClass)
	argFrag, err := parseStatementFragment(tokens[l2Idx+1 : l1Idx])
	if err != nil {
		return nil, err
	}
	args.AppendChild(argFrag)

	node.AppendToken(l1)

	after := node.AppendNewChild(ast.IrrelevantTokens)
	for _, t := range tokens[l1Idx+1:] {
		after.AppendToken(t)
	}
	return node, nil
}
