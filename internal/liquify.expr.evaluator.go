package internal

import (
	"fmt"
)

// ExprEvaluator evaluates expression AST nodes against a render context
type ExprEvaluator struct {
	funcs *FuncRegistry
	rc    *RenderContext
}

// NewExprEvaluator creates a new expression evaluator
func NewExprEvaluator(funcs *FuncRegistry, rc *RenderContext) *ExprEvaluator {
	return &ExprEvaluator{
		funcs: funcs,
		rc:    rc,
	}
}

// Evaluate evaluates an expression and returns the result.
// A nil expression evaluates to nil.
func (e *ExprEvaluator) Evaluate(node ExprNode) (any, error) {
	if node == nil {
		return nil, nil
	}

	switch n := node.(type) {
	case *LiteralNode:
		return n.Value, nil

	case *IdentifierNode:
		return e.evaluateIdentifier(n)

	case *MemberNode:
		return e.evaluateMember(n)

	case *IndexNode:
		return e.evaluateIndex(n)

	case *RangeNode:
		return e.evaluateRange(n)

	case *UnaryNode:
		return e.evaluateUnary(n)

	case *BinaryNode:
		return e.evaluateBinary(n)

	case *CallNode:
		return e.evaluateCall(n)

	default:
		return nil, NewExprEvalError(ErrMsgExprUnknownNodeType, fmt.Sprintf("%T", node))
	}
}

// EvaluateBool evaluates an expression and coerces the result to a boolean
func (e *ExprEvaluator) EvaluateBool(node ExprNode) (bool, error) {
	result, err := e.Evaluate(node)
	if err != nil {
		return false, err
	}
	return Truthy(result), nil
}

// evaluateIdentifier looks up a variable from the render context
func (e *ExprEvaluator) evaluateIdentifier(node *IdentifierNode) (any, error) {
	if e.rc == nil {
		return nil, NewExprEvalError(ErrMsgExprNoContext, node.Name)
	}

	val, found := e.rc.Get(node.Name)
	if !found {
		return nil, nil // Missing variables resolve to nil, not an error
	}
	return val, nil
}

// evaluateMember resolves dotted member access on maps, loop metadata,
// and collection properties.
func (e *ExprEvaluator) evaluateMember(node *MemberNode) (any, error) {
	target, err := e.Evaluate(node.Target)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, nil
	}

	switch t := target.(type) {
	case map[string]any:
		return t[node.Name], nil
	case map[string]string:
		return t[node.Name], nil
	case *ForLoop:
		return t.Field(node.Name)
	}

	// Collection properties available via dot access
	switch node.Name {
	case PropNameSize:
		return SequenceLength(target), nil
	case PropNameFirst:
		seq := ToSequence(target)
		if len(seq) == 0 {
			return nil, nil
		}
		return seq[0], nil
	case PropNameLast:
		seq := ToSequence(target)
		if len(seq) == 0 {
			return nil, nil
		}
		return seq[len(seq)-1], nil
	}

	return nil, nil
}

// evaluateIndex resolves bracketed index access
func (e *ExprEvaluator) evaluateIndex(node *IndexNode) (any, error) {
	target, err := e.Evaluate(node.Target)
	if err != nil {
		return nil, err
	}

	index, err := e.Evaluate(node.Index)
	if err != nil {
		return nil, err
	}

	// String keys index into maps
	if key, ok := index.(string); ok {
		if m, ok := target.(map[string]any); ok {
			return m[key], nil
		}
		return nil, nil
	}

	i, err := ToInteger(index)
	if err != nil {
		return nil, err
	}
	val, _ := IndexValue(target, i)
	return val, nil
}

// evaluateRange evaluates a range literal into a RangeValue
func (e *ExprEvaluator) evaluateRange(node *RangeNode) (any, error) {
	loVal, err := e.Evaluate(node.Lo)
	if err != nil {
		return nil, err
	}
	lo, err := ToInteger(loVal)
	if err != nil {
		return nil, err
	}

	hiVal, err := e.Evaluate(node.Hi)
	if err != nil {
		return nil, err
	}
	hi, err := ToInteger(hiVal)
	if err != nil {
		return nil, err
	}

	return RangeValue{Lo: lo, Hi: hi}, nil
}

// evaluateUnary evaluates a unary operation
func (e *ExprEvaluator) evaluateUnary(node *UnaryNode) (any, error) {
	right, err := e.Evaluate(node.Right)
	if err != nil {
		return nil, err
	}

	switch node.Op {
	case ExprTokenTypeNot:
		return !Truthy(right), nil
	default:
		return nil, NewExprEvalError(ErrMsgExprUnknownOperator, string(node.Op))
	}
}

// evaluateBinary evaluates a binary operation
func (e *ExprEvaluator) evaluateBinary(node *BinaryNode) (any, error) {
	// Short-circuit evaluation for logical operators
	if node.Op == ExprTokenTypeAnd {
		left, err := e.Evaluate(node.Left)
		if err != nil {
			return nil, err
		}
		if !Truthy(left) {
			return false, nil
		}
		right, err := e.Evaluate(node.Right)
		if err != nil {
			return nil, err
		}
		return Truthy(right), nil
	}

	if node.Op == ExprTokenTypeOr {
		left, err := e.Evaluate(node.Left)
		if err != nil {
			return nil, err
		}
		if Truthy(left) {
			return true, nil
		}
		right, err := e.Evaluate(node.Right)
		if err != nil {
			return nil, err
		}
		return Truthy(right), nil
	}

	// Evaluate both sides for other operators
	left, err := e.Evaluate(node.Left)
	if err != nil {
		return nil, err
	}

	right, err := e.Evaluate(node.Right)
	if err != nil {
		return nil, err
	}

	switch node.Op {
	case ExprTokenTypeEq:
		return compareEqual(left, right), nil
	case ExprTokenTypeNeq:
		return !compareEqual(left, right), nil
	case ExprTokenTypeLt:
		return compareLess(left, right)
	case ExprTokenTypeGt:
		return compareGreater(left, right)
	case ExprTokenTypeLte:
		result, err := compareGreater(left, right)
		if err != nil {
			return nil, err
		}
		return !result, nil
	case ExprTokenTypeGte:
		result, err := compareLess(left, right)
		if err != nil {
			return nil, err
		}
		return !result, nil
	case ExprTokenTypeContains:
		return containsValue(left, right), nil
	default:
		return nil, NewExprEvalError(ErrMsgExprUnknownOperator, string(node.Op))
	}
}

// evaluateCall evaluates a function call
func (e *ExprEvaluator) evaluateCall(node *CallNode) (any, error) {
	if e.funcs == nil {
		return nil, NewExprEvalError(ErrMsgExprNoFuncRegistry, node.Name)
	}

	args := make([]any, len(node.Args))
	for i, argNode := range node.Args {
		val, err := e.Evaluate(argNode)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}

	return e.funcs.Call(node.Name, args)
}

// ExprEvalError represents an error during expression evaluation
type ExprEvalError struct {
	Message string
	Detail  string
}

// NewExprEvalError creates a new expression evaluation error
func NewExprEvalError(message, detail string) *ExprEvalError {
	return &ExprEvalError{
		Message: message,
		Detail:  detail,
	}
}

// Error implements the error interface
func (e *ExprEvalError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Expression evaluator error messages
const (
	ErrMsgExprUnknownNodeType = "unknown expression node type"
	ErrMsgExprUnknownOperator = "unknown operator"
	ErrMsgExprNoContext       = "no context available for variable lookup"
	ErrMsgExprNoFuncRegistry  = "no function registry available"
)

// Collection property name constants
const (
	PropNameSize  = "size"
	PropNameFirst = "first"
	PropNameLast  = "last"
)
