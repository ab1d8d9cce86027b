package internal

import (
	"context"
	"fmt"
	"strings"
)

// IfBranch is one arm of an if tag. Condition is nil for the else arm.
type IfBranch struct {
	Condition ExprNode
	Body      []Node
}

// IfNode is the if-tag AST node: condition branches evaluated in
// order, the first truthy one rendered.
type IfNode struct {
	pos      Position
	Branches []IfBranch
}

// ParseIfTag constructs an IfNode, consuming elsif/else arms up to
// the endif terminator.
func ParseIfTag(tok Token, p *Parser) (Node, error) {
	cond, err := ParseExpression(tok.Value)
	if err != nil {
		return nil, NewParserErrorWithCause(ErrMsgIfSyntax, tok.Position, err)
	}

	node := &IfNode{pos: tok.Position}
	seenElse := false

	for {
		body, stop, err := p.ParseBody(TagNameEndIf, TagNameElsif, TagNameElse)
		if err != nil {
			return nil, err
		}
		node.Branches = append(node.Branches, IfBranch{Condition: cond, Body: body})

		switch stop {
		case TagNameEndIf:
			return node, nil
		case TagNameElse:
			if seenElse {
				return nil, NewParserError(ErrMsgIfDuplicateElse, tok.Position, StringValueEmpty)
			}
			seenElse = true
			cond = nil
		case TagNameElsif:
			if seenElse {
				return nil, NewParserError(ErrMsgIfElsifAfterElse, tok.Position, StringValueEmpty)
			}
			elsifTok := p.tokens[p.pos-1]
			cond, err = ParseExpression(elsifTok.Value)
			if err != nil {
				return nil, NewParserErrorWithCause(ErrMsgIfSyntax, elsifTok.Position, err)
			}
		}
	}
}

// Type returns NodeTypeIf
func (n *IfNode) Type() NodeType {
	return NodeTypeIf
}

// Pos returns the source position
func (n *IfNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *IfNode) String() string {
	return fmt.Sprintf("IfNode{branches=%d @ %s}", len(n.Branches), n.pos)
}

// Expressions returns the branch condition handles
func (n *IfNode) Expressions() []ExprNode {
	var exprs []ExprNode
	for _, branch := range n.Branches {
		if branch.Condition != nil {
			exprs = append(exprs, branch.Condition)
		}
	}
	return exprs
}

// ChildNodes returns all branch bodies
func (n *IfNode) ChildNodes() []Node {
	var nodes []Node
	for _, branch := range n.Branches {
		nodes = append(nodes, branch.Body...)
	}
	return nodes
}

// Render evaluates branches in order and renders the first match.
// The else arm (nil condition) always matches when reached.
func (n *IfNode) Render(ctx context.Context, r *Renderer, rc *RenderContext, buf *strings.Builder, depth int) error {
	for _, branch := range n.Branches {
		if branch.Condition == nil {
			return r.RenderNodes(ctx, branch.Body, rc, buf, depth+1)
		}

		ok, err := r.EvaluateBool(branch.Condition, rc)
		if err != nil {
			return NewRenderErrorWithCause(ErrMsgEvalFailed, TagNameIf, n.pos, err)
		}
		if ok {
			return r.RenderNodes(ctx, branch.Body, rc, buf, depth+1)
		}
	}
	return nil
}

// If-tag error messages
const (
	ErrMsgIfSyntax         = "invalid if tag condition"
	ErrMsgIfDuplicateElse  = "duplicate else branch"
	ErrMsgIfElsifAfterElse = "elsif after else branch"
)
