package internal

import (
	"context"
	"fmt"
	"strings"
)

// InterruptNode raises a break or continue interrupt when rendered.
// The signal travels through the interrupt mailbox, not through
// errors, and is consumed by the nearest enclosing loop.
type InterruptNode struct {
	pos  Position
	Kind Interrupt
}

// ParseBreakTag constructs a break node
func ParseBreakTag(tok Token, _ *Parser) (Node, error) {
	if strings.TrimSpace(tok.Value) != StringValueEmpty {
		return nil, NewParserError(ErrMsgInterruptMarkup, tok.Position, tok.Value)
	}
	return &InterruptNode{pos: tok.Position, Kind: InterruptBreak}, nil
}

// ParseContinueTag constructs a continue node
func ParseContinueTag(tok Token, _ *Parser) (Node, error) {
	if strings.TrimSpace(tok.Value) != StringValueEmpty {
		return nil, NewParserError(ErrMsgInterruptMarkup, tok.Position, tok.Value)
	}
	return &InterruptNode{pos: tok.Position, Kind: InterruptContinue}, nil
}

// Type returns NodeTypeInterrupt
func (n *InterruptNode) Type() NodeType {
	return NodeTypeInterrupt
}

// Pos returns the source position
func (n *InterruptNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *InterruptNode) String() string {
	return fmt.Sprintf("InterruptNode{%s @ %s}", n.Kind, n.pos)
}

// Render raises the interrupt
func (n *InterruptNode) Render(_ context.Context, _ *Renderer, rc *RenderContext, _ *strings.Builder, _ int) error {
	rc.PushInterrupt(n.Kind)
	return nil
}

// ErrMsgInterruptMarkup rejects markup after break/continue
const ErrMsgInterruptMarkup = "unexpected markup after tag"
