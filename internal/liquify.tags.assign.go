package internal

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// assignNamePattern validates the target variable name
var assignNamePattern = regexp.MustCompile(`^\w+$`)

// AssignNode binds a variable in the current scope: {% assign x = expr %}
type AssignNode struct {
	pos  Position
	Name string
	Expr ExprNode
}

// ParseAssignTag constructs an AssignNode from "name = expression" markup
func ParseAssignTag(tok Token, _ *Parser) (Node, error) {
	name, exprPart, found := strings.Cut(tok.Value, "=")
	if !found {
		return nil, NewParserError(ErrMsgAssignSyntax, tok.Position, tok.Value)
	}

	name = strings.TrimSpace(name)
	if !assignNamePattern.MatchString(name) {
		return nil, NewParserError(ErrMsgAssignSyntax, tok.Position, tok.Value)
	}

	expr, err := ParseExpression(strings.TrimSpace(exprPart))
	if err != nil {
		return nil, NewParserErrorWithCause(ErrMsgAssignSyntax, tok.Position, err)
	}

	return &AssignNode{
		pos:  tok.Position,
		Name: name,
		Expr: expr,
	}, nil
}

// Type returns NodeTypeAssign
func (n *AssignNode) Type() NodeType {
	return NodeTypeAssign
}

// Pos returns the source position
func (n *AssignNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *AssignNode) String() string {
	return fmt.Sprintf("AssignNode{%s = %s @ %s}", n.Name, n.Expr.String(), n.pos)
}

// Expressions returns the assigned expression handle
func (n *AssignNode) Expressions() []ExprNode {
	return []ExprNode{n.Expr}
}

// Render evaluates the expression and binds the result
func (n *AssignNode) Render(_ context.Context, r *Renderer, rc *RenderContext, _ *strings.Builder, _ int) error {
	val, err := r.Evaluate(n.Expr, rc)
	if err != nil {
		return NewRenderErrorWithCause(ErrMsgEvalFailed, TagNameAssign, n.pos, err)
	}
	rc.Set(n.Name, val)
	return nil
}

// ErrMsgAssignSyntax rejects malformed assign markup
const ErrMsgAssignSyntax = "invalid assign tag syntax"
