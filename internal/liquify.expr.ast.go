package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// ExprNodeType identifies the type of expression AST node
type ExprNodeType int

// Expression node type constants
const (
	ExprNodeTypeLiteral ExprNodeType = iota
	ExprNodeTypeIdentifier
	ExprNodeTypeMember
	ExprNodeTypeIndex
	ExprNodeTypeRange
	ExprNodeTypeUnary
	ExprNodeTypeBinary
	ExprNodeTypeCall
)

// Expression node type names for debugging
const (
	ExprNodeTypeNameLiteral    = "LITERAL"
	ExprNodeTypeNameIdentifier = "IDENTIFIER"
	ExprNodeTypeNameMember     = "MEMBER"
	ExprNodeTypeNameIndex      = "INDEX"
	ExprNodeTypeNameRange      = "RANGE"
	ExprNodeTypeNameUnary      = "UNARY"
	ExprNodeTypeNameBinary     = "BINARY"
	ExprNodeTypeNameCall       = "CALL"
)

// String returns the string representation of the node type
func (t ExprNodeType) String() string {
	switch t {
	case ExprNodeTypeLiteral:
		return ExprNodeTypeNameLiteral
	case ExprNodeTypeIdentifier:
		return ExprNodeTypeNameIdentifier
	case ExprNodeTypeMember:
		return ExprNodeTypeNameMember
	case ExprNodeTypeIndex:
		return ExprNodeTypeNameIndex
	case ExprNodeTypeRange:
		return ExprNodeTypeNameRange
	case ExprNodeTypeUnary:
		return ExprNodeTypeNameUnary
	case ExprNodeTypeBinary:
		return ExprNodeTypeNameBinary
	case ExprNodeTypeCall:
		return ExprNodeTypeNameCall
	default:
		return ExprNodeTypeNameLiteral
	}
}

// ExprNode is the interface for all expression AST nodes
type ExprNode interface {
	// Type returns the node type
	Type() ExprNodeType
	// String returns a source-equivalent textual form of the expression
	String() string
	// exprNode is a marker method to ensure type safety
	exprNode()
}

// LiteralKind identifies the kind of literal value
type LiteralKind int

// Literal kind constants
const (
	LiteralKindString LiteralKind = iota
	LiteralKindNumber
	LiteralKindBool
	LiteralKindNil
)

// LiteralNode represents a literal value (string, number, bool, nil)
type LiteralNode struct {
	Value any
	Kind  LiteralKind
}

func (n *LiteralNode) Type() ExprNodeType { return ExprNodeTypeLiteral }
func (n *LiteralNode) exprNode()          {}

func (n *LiteralNode) String() string {
	switch n.Kind {
	case LiteralKindString:
		return fmt.Sprintf("%q", n.Value)
	case LiteralKindNumber:
		return strconv.FormatFloat(n.Value.(float64), 'f', -1, 64)
	case LiteralKindBool:
		return strconv.FormatBool(n.Value.(bool))
	default:
		return StringValueNil
	}
}

// NewLiteralString creates a string literal node
func NewLiteralString(value string) *LiteralNode {
	return &LiteralNode{Value: value, Kind: LiteralKindString}
}

// NewLiteralNumber creates a numeric literal node
func NewLiteralNumber(value float64) *LiteralNode {
	return &LiteralNode{Value: value, Kind: LiteralKindNumber}
}

// NewLiteralBool creates a boolean literal node
func NewLiteralBool(value bool) *LiteralNode {
	return &LiteralNode{Value: value, Kind: LiteralKindBool}
}

// NewLiteralNil creates a nil literal node
func NewLiteralNil() *LiteralNode {
	return &LiteralNode{Value: nil, Kind: LiteralKindNil}
}

// IdentifierNode represents a variable reference
type IdentifierNode struct {
	Name string
}

func (n *IdentifierNode) Type() ExprNodeType { return ExprNodeTypeIdentifier }
func (n *IdentifierNode) exprNode()          {}
func (n *IdentifierNode) String() string     { return n.Name }

// NewIdentifier creates an identifier node
func NewIdentifier(name string) *IdentifierNode {
	return &IdentifierNode{Name: name}
}

// MemberNode represents dotted member access (e.g., user.name)
type MemberNode struct {
	Target ExprNode
	Name   string
}

func (n *MemberNode) Type() ExprNodeType { return ExprNodeTypeMember }
func (n *MemberNode) exprNode()          {}
func (n *MemberNode) String() string     { return n.Target.String() + "." + n.Name }

// NewMember creates a member access node
func NewMember(target ExprNode, name string) *MemberNode {
	return &MemberNode{Target: target, Name: name}
}

// IndexNode represents bracketed index access (e.g., items[0])
type IndexNode struct {
	Target ExprNode
	Index  ExprNode
}

func (n *IndexNode) Type() ExprNodeType { return ExprNodeTypeIndex }
func (n *IndexNode) exprNode()          {}
func (n *IndexNode) String() string     { return n.Target.String() + "[" + n.Index.String() + "]" }

// NewIndex creates an index access node
func NewIndex(target, index ExprNode) *IndexNode {
	return &IndexNode{Target: target, Index: index}
}

// RangeNode represents a bounded integer range literal (e.g., (1..5))
type RangeNode struct {
	Lo ExprNode
	Hi ExprNode
}

func (n *RangeNode) Type() ExprNodeType { return ExprNodeTypeRange }
func (n *RangeNode) exprNode()          {}
func (n *RangeNode) String() string     { return "(" + n.Lo.String() + ".." + n.Hi.String() + ")" }

// NewRange creates a range literal node
func NewRange(lo, hi ExprNode) *RangeNode {
	return &RangeNode{Lo: lo, Hi: hi}
}

// UnaryNode represents a unary operation
type UnaryNode struct {
	Op    ExprTokenType
	Right ExprNode
}

func (n *UnaryNode) Type() ExprNodeType { return ExprNodeTypeUnary }
func (n *UnaryNode) exprNode()          {}
func (n *UnaryNode) String() string     { return ExprOpNot + n.Right.String() }

// NewUnary creates a unary operation node
func NewUnary(op ExprTokenType, right ExprNode) *UnaryNode {
	return &UnaryNode{Op: op, Right: right}
}

// BinaryNode represents a binary operation
type BinaryNode struct {
	Left  ExprNode
	Op    ExprTokenType
	Right ExprNode
}

func (n *BinaryNode) Type() ExprNodeType { return ExprNodeTypeBinary }
func (n *BinaryNode) exprNode()          {}

func (n *BinaryNode) String() string {
	return "(" + n.Left.String() + " " + binaryOpString(n.Op) + " " + n.Right.String() + ")"
}

// binaryOpString maps a binary operator token type to its source form
func binaryOpString(op ExprTokenType) string {
	switch op {
	case ExprTokenTypeAnd:
		return ExprKeywordAnd
	case ExprTokenTypeOr:
		return ExprKeywordOr
	case ExprTokenTypeEq:
		return ExprOpEq
	case ExprTokenTypeNeq:
		return ExprOpNeq
	case ExprTokenTypeLt:
		return ExprOpLt
	case ExprTokenTypeGt:
		return ExprOpGt
	case ExprTokenTypeLte:
		return ExprOpLte
	case ExprTokenTypeGte:
		return ExprOpGte
	case ExprTokenTypeContains:
		return ExprOpContains
	default:
		return string(op)
	}
}

// NewBinary creates a binary operation node
func NewBinary(left ExprNode, op ExprTokenType, right ExprNode) *BinaryNode {
	return &BinaryNode{Left: left, Op: op, Right: right}
}

// CallNode represents a function call
type CallNode struct {
	Name string
	Args []ExprNode
}

func (n *CallNode) Type() ExprNodeType { return ExprNodeTypeCall }
func (n *CallNode) exprNode()          {}

func (n *CallNode) String() string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.String()
	}
	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

// NewCall creates a function call node
func NewCall(name string, args []ExprNode) *CallNode {
	return &CallNode{Name: name, Args: args}
}

// CollectIdentifiers walks an expression tree and records the root
// identifier names it references. Used by static dependency analysis.
func CollectIdentifiers(node ExprNode, out map[string]struct{}) {
	if node == nil {
		return
	}
	switch n := node.(type) {
	case *IdentifierNode:
		out[n.Name] = struct{}{}
	case *MemberNode:
		CollectIdentifiers(n.Target, out)
	case *IndexNode:
		CollectIdentifiers(n.Target, out)
		CollectIdentifiers(n.Index, out)
	case *RangeNode:
		CollectIdentifiers(n.Lo, out)
		CollectIdentifiers(n.Hi, out)
	case *UnaryNode:
		CollectIdentifiers(n.Right, out)
	case *BinaryNode:
		CollectIdentifiers(n.Left, out)
		CollectIdentifiers(n.Right, out)
	case *CallNode:
		for _, arg := range n.Args {
			CollectIdentifiers(arg, out)
		}
	}
}
