package internal

import (
	"context"
	"fmt"
	"strings"
)

// Node is the interface all AST nodes implement
type Node interface {
	// Type returns the node type identifier
	Type() NodeType
	// Pos returns the source position of this node
	Pos() Position
	// String returns a human-readable representation
	String() string
	// Render writes the node's output into buf
	Render(ctx context.Context, r *Renderer, rc *RenderContext, buf *strings.Builder, depth int) error
}

// ExpressionHolder is implemented by nodes that carry expression
// handles. It is the static-analysis hook used by dependency
// extraction tooling; rendering never goes through it.
type ExpressionHolder interface {
	// Expressions returns the expression handles this node holds
	Expressions() []ExprNode
}

// NodeContainer is implemented by nodes that own child node sequences
type NodeContainer interface {
	// ChildNodes returns all nested nodes, across all branches
	ChildNodes() []Node
}

// WalkExpressions walks a node tree depth-first and invokes fn for
// every expression handle it finds.
func WalkExpressions(nodes []Node, fn func(ExprNode)) {
	for _, node := range nodes {
		if holder, ok := node.(ExpressionHolder); ok {
			for _, expr := range holder.Expressions() {
				if expr != nil {
					fn(expr)
				}
			}
		}
		if container, ok := node.(NodeContainer); ok {
			WalkExpressions(container.ChildNodes(), fn)
		}
	}
}

// RootNode is the top-level container for an AST
type RootNode struct {
	Children []Node
}

// Type returns NodeTypeRoot
func (n *RootNode) Type() NodeType {
	return NodeTypeRoot
}

// Pos returns a zero position (root has no specific position)
func (n *RootNode) Pos() Position {
	return Position{Offset: 0, Line: 1, Column: 1}
}

// String returns a string representation of the root node
func (n *RootNode) String() string {
	var sb strings.Builder
	sb.WriteString("RootNode{\n")
	for i, child := range n.Children {
		sb.WriteString(fmt.Sprintf("  [%d] %s\n", i, child.String()))
	}
	sb.WriteString("}")
	return sb.String()
}

// Render renders all children in order
func (n *RootNode) Render(ctx context.Context, r *Renderer, rc *RenderContext, buf *strings.Builder, depth int) error {
	return r.RenderNodes(ctx, n.Children, rc, buf, depth)
}

// ChildNodes returns the root's children
func (n *RootNode) ChildNodes() []Node {
	return n.Children
}

// TextNode represents literal text content
type TextNode struct {
	pos     Position
	Content string
}

// NewTextNode creates a new text node
func NewTextNode(content string, pos Position) *TextNode {
	return &TextNode{
		pos:     pos,
		Content: content,
	}
}

// Type returns NodeTypeText
func (n *TextNode) Type() NodeType {
	return NodeTypeText
}

// Pos returns the source position
func (n *TextNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *TextNode) String() string {
	content := n.Content
	if len(content) > MaxStringDisplayLength {
		content = content[:TruncatedStringLength] + TruncationSuffix
	}
	return fmt.Sprintf("TextNode{%q @ %s}", content, n.pos)
}

// Render writes the literal content
func (n *TextNode) Render(_ context.Context, _ *Renderer, _ *RenderContext, buf *strings.Builder, _ int) error {
	buf.WriteString(n.Content)
	return nil
}

// OutputNode represents an output marker: {{ expression }}
type OutputNode struct {
	pos  Position
	Expr ExprNode
}

// NewOutputNode creates a new output node
func NewOutputNode(expr ExprNode, pos Position) *OutputNode {
	return &OutputNode{
		pos:  pos,
		Expr: expr,
	}
}

// Type returns NodeTypeOutput
func (n *OutputNode) Type() NodeType {
	return NodeTypeOutput
}

// Pos returns the source position
func (n *OutputNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *OutputNode) String() string {
	return fmt.Sprintf("OutputNode{%s @ %s}", n.Expr.String(), n.pos)
}

// Render evaluates the expression and writes its output form
func (n *OutputNode) Render(_ context.Context, r *Renderer, rc *RenderContext, buf *strings.Builder, _ int) error {
	val, err := r.Evaluate(n.Expr, rc)
	if err != nil {
		return NewRenderErrorWithCause(ErrMsgEvalFailed, StringValueEmpty, n.pos, err)
	}
	buf.WriteString(Stringify(val))
	return nil
}

// Expressions returns the output expression handle
func (n *OutputNode) Expressions() []ExprNode {
	return []ExprNode{n.Expr}
}
