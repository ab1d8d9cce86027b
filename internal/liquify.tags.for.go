package internal

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ForSpec is the parsed header of a for tag. It is created once at
// parse time and immutable thereafter.
type ForSpec struct {
	Vars           []string // Loop variable names, order significant, non-empty
	Collection     ExprNode // Collection expression handle
	Reversed       bool     // Iterate the segment back to front
	Offset         ExprNode // Offset expression, nil when absent or continuing
	OffsetContinue bool     // True for "offset: continue"
	Limit          ExprNode // Limit expression, nil means unbounded
}

// StableName derives the resume-state key for this loop: the variable
// names joined with the collection expression's textual form. Stable
// across renders of the same tag instance, but not guaranteed unique
// across sibling loops with identical source text.
func (s *ForSpec) StableName() string {
	return strings.Join(s.Vars, ",") + "-" + s.Collection.String()
}

// ForNode is the for-tag AST node: the loop spec plus the main body
// and the optional else body rendered when the segment is empty.
type ForNode struct {
	pos      Position
	Spec     *ForSpec
	Body     []Node
	ElseBody []Node // nil when no else branch was parsed
}

// ParseForTag constructs a ForNode from a for tag token. The markup
// is parsed by the configured syntax strategy; the body is consumed
// up to an else marker or the endfor terminator.
func ParseForTag(tok Token, p *Parser) (Node, error) {
	spec, err := forSyntaxFor(p.Config().Syntax).ParseFor(tok.Value)
	if err != nil {
		return nil, NewParserErrorWithCause(ErrMsgForSyntax, tok.Position, err)
	}

	body, stop, err := p.ParseBody(TagNameEndFor, TagNameElse)
	if err != nil {
		return nil, err
	}

	var elseBody []Node
	if stop == TagNameElse {
		elseBody, _, err = p.ParseBody(TagNameEndFor)
		if err != nil {
			return nil, err
		}
	}

	return &ForNode{
		pos:      tok.Position,
		Spec:     spec,
		Body:     body,
		ElseBody: elseBody,
	}, nil
}

// Type returns NodeTypeFor
func (n *ForNode) Type() NodeType {
	return NodeTypeFor
}

// Pos returns the source position
func (n *ForNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *ForNode) String() string {
	return fmt.Sprintf("ForNode{%s in %s, body=%d, else=%d @ %s}",
		strings.Join(n.Spec.Vars, ","), n.Spec.Collection.String(), len(n.Body), len(n.ElseBody), n.pos)
}

// Expressions returns the collection, limit, and offset expression
// handles for static dependency analysis.
func (n *ForNode) Expressions() []ExprNode {
	exprs := []ExprNode{n.Spec.Collection}
	if n.Spec.Limit != nil {
		exprs = append(exprs, n.Spec.Limit)
	}
	if n.Spec.Offset != nil {
		exprs = append(exprs, n.Spec.Offset)
	}
	return exprs
}

// ChildNodes returns the main and else bodies
func (n *ForNode) ChildNodes() []Node {
	nodes := make([]Node, 0, len(n.Body)+len(n.ElseBody))
	nodes = append(nodes, n.Body...)
	nodes = append(nodes, n.ElseBody...)
	return nodes
}

// Render computes the segment for this pass and routes to the
// iteration renderer, or to the else branch when the segment is
// empty. An empty collection and an offset/limit-exhausted segment
// are indistinguishable here; both take the else path.
func (n *ForNode) Render(ctx context.Context, r *Renderer, rc *RenderContext, buf *strings.Builder, depth int) error {
	segment, err := n.selectSegment(r, rc)
	if err != nil {
		return NewRenderErrorWithCause(ErrMsgForFailed, TagNameFor, n.pos, err)
	}

	if len(segment) == 0 {
		r.logger.Debug(LogMsgForElse, zap.String(LogFieldLoop, n.Spec.StableName()))
		return n.renderElse(ctx, r, rc, buf, depth)
	}

	return n.renderSegment(ctx, r, rc, buf, segment, depth)
}

// selectSegment computes the concrete sub-sequence to iterate this
// pass and records the new resume cursor. Out-of-range bounds yield
// an empty segment, never an error.
func (n *ForNode) selectSegment(r *Renderer, rc *RenderContext) ([]any, error) {
	name := n.Spec.StableName()

	offset := 0
	if n.Spec.OffsetContinue {
		offset = rc.ResumeOffset(name)
	} else if n.Spec.Offset != nil {
		val, err := r.Evaluate(n.Spec.Offset, rc)
		if err != nil {
			return nil, err
		}
		offset, err = ToInteger(val)
		if err != nil {
			return nil, err
		}
	}

	collection, err := r.Evaluate(n.Spec.Collection, rc)
	if err != nil {
		return nil, err
	}
	seq := ToSequence(collection)

	to := -1 // Missing upper bound means "to end"
	if n.Spec.Limit != nil {
		val, err := r.Evaluate(n.Spec.Limit, rc)
		if err != nil {
			return nil, err
		}
		limit, err := ToInteger(val)
		if err != nil {
			return nil, err
		}
		to = offset + limit
	}

	segment := SliceSequence(seq, offset, to)
	if n.Spec.Reversed && len(segment) > 0 {
		// Copy before reversing so the caller's collection stays intact
		segment = append([]any(nil), segment...)
		ReverseSequence(segment)
	}

	// The new cursor is recorded on every pass, empty segment included
	rc.SetResumeOffset(name, offset+len(segment))

	r.logger.Debug(LogMsgForSegment,
		zap.String(LogFieldLoop, name),
		zap.Int(LogFieldOffset, offset),
		zap.Int(LogFieldSegment, len(segment)),
		zap.Bool(LogFieldReversed, n.Spec.Reversed))

	return segment, nil
}

// renderSegment drives one render pass over a non-empty segment:
// links the loop metadata to any enclosing loop, binds loop
// variables per element, renders the body, and reacts to interrupts.
// The metadata pop and scope exit run on every exit path, including
// error unwinding through the body.
func (n *ForNode) renderSegment(ctx context.Context, r *Renderer, rc *RenderContext, buf *strings.Builder, segment []any, depth int) error {
	loop := NewForLoop(len(segment), rc.CurrentLoop())
	rc.PushLoop(loop)
	rc.PushScope()
	defer func() {
		rc.PopLoop()
		rc.PopScope()
	}()

	rc.Set(VarNameForLoop, loop)

	for _, elem := range segment {
		n.bindVars(rc, elem)

		if err := r.RenderNodes(ctx, n.Body, rc, buf, depth+1); err != nil {
			return err
		}

		loop.Increment()

		switch rc.PeekInterrupt() {
		case InterruptBreak:
			rc.PopInterrupt()
			r.logger.Debug(LogMsgForBreak, zap.String(LogFieldLoop, n.Spec.StableName()))
			return nil
		case InterruptContinue:
			rc.PopInterrupt()
		}
	}

	return nil
}

// bindVars binds the loop variables for one element. A single name
// binds the element directly; multiple names destructure it
// positionally, with missing components binding to nil.
func (n *ForNode) bindVars(rc *RenderContext, elem any) {
	if len(n.Spec.Vars) == 1 {
		rc.Set(n.Spec.Vars[0], elem)
		return
	}
	for i, name := range n.Spec.Vars {
		val, _ := IndexValue(elem, i)
		rc.Set(name, val)
	}
}

// renderElse renders the else body if one was captured, otherwise
// does nothing.
func (n *ForNode) renderElse(ctx context.Context, r *Renderer, rc *RenderContext, buf *strings.Builder, depth int) error {
	if n.ElseBody == nil {
		return nil
	}
	return r.RenderNodes(ctx, n.ElseBody, rc, buf, depth+1)
}

// ErrMsgForFailed is the for-tag render failure message
const ErrMsgForFailed = "for loop rendering failed"
