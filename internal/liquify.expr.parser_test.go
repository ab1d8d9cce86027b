package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression_SourceForms(t *testing.T) {
	// String() renders a source-equivalent form, which doubles as a
	// compact structural assertion.
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"identifier", "items", "items"},
		{"string literal", `"hello"`, `"hello"`},
		{"number literal", "42", "42"},
		{"float literal", "3.5", "3.5"},
		{"bool literal", "true", "true"},
		{"nil literal", "nil", "nil"},
		{"member access", "user.name", "user.name"},
		{"chained members", "a.b.c", "a.b.c"},
		{"index access", "items[0]", "items[0]"},
		{"index with string key", `data["key"]`, `data["key"]`},
		{"range literal", "(1..5)", "(1..5)"},
		{"range with identifiers", "(lo..hi)", "(lo..hi)"},
		{"equality", "a == b", "(a == b)"},
		{"comparison", "a < 3", "(a < 3)"},
		{"contains", "items contains x", "(items contains x)"},
		{"and precedence over or", "a or b and c", "(a or (b and c))"},
		{"grouping", "(a or b) and c", "((a or b) and c)"},
		{"negation", "not a", "!a"},
		{"call", "size(items)", "size(items)"},
		{"call with args", `join(items, ", ")`, `join(items, ", ")`},
		{"member after index", "items[0].name", "items[0].name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseExpression(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, node.String())
		})
	}
}

func TestParseExpression_NodeTypes(t *testing.T) {
	tests := []struct {
		input    string
		nodeType ExprNodeType
	}{
		{"x", ExprNodeTypeIdentifier},
		{"42", ExprNodeTypeLiteral},
		{"a.b", ExprNodeTypeMember},
		{"a[0]", ExprNodeTypeIndex},
		{"(1..3)", ExprNodeTypeRange},
		{"not x", ExprNodeTypeUnary},
		{"a == b", ExprNodeTypeBinary},
		{"f(x)", ExprNodeTypeCall},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := ParseExpression(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.nodeType, node.Type())
		})
	}
}

func TestParseExpression_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"empty input", "", ErrMsgExprEmptyExpression},
		{"trailing garbage", "a b", ErrMsgExprUnexpectedToken},
		{"missing rparen", "(a", ErrMsgExprExpectedRParen},
		{"missing rbracket", "a[0", ErrMsgExprExpectedRBracket},
		{"dot without member", "a.", ErrMsgExprExpectedMember},
		{"dangling operator", "a ==", ErrMsgExprUnexpectedToken},
		{"unclosed call", "f(a", ErrMsgExprExpectedRParen},
		{"unclosed range", "(1..5", ErrMsgExprExpectedRParen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExpression(tt.input)
			require.Error(t, err)

			var parseErr *ExprParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.message, parseErr.Message)
		})
	}
}

func TestParseExpression_ParenthesizedIsNotRange(t *testing.T) {
	node, err := ParseExpression("(a)")
	require.NoError(t, err)
	assert.Equal(t, ExprNodeTypeIdentifier, node.Type())
}

func TestCollectIdentifiers(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"items", []string{"items"}},
		{"user.name", []string{"user"}},
		{"items[idx]", []string{"items", "idx"}},
		{"(lo..hi)", []string{"lo", "hi"}},
		{"a == b and c", []string{"a", "b", "c"}},
		{"join(items, sep)", []string{"items", "sep"}},
		{"42", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := ParseExpression(tt.input)
			require.NoError(t, err)

			out := make(map[string]struct{})
			CollectIdentifiers(node, out)

			assert.Len(t, out, len(tt.expected))
			for _, name := range tt.expected {
				assert.Contains(t, out, name)
			}
		})
	}
}
