package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParser_Parse_NodeSequence(t *testing.T) {
	root, err := newTestParser(t, SyntaxLenient, "a{{ x }}b{% assign y = 1 %}").Parse()
	require.NoError(t, err)
	require.Len(t, root.Children, 4)

	assert.Equal(t, NodeTypeText, root.Children[0].Type())
	assert.Equal(t, NodeTypeOutput, root.Children[1].Type())
	assert.Equal(t, NodeTypeText, root.Children[2].Type())
	assert.Equal(t, NodeTypeAssign, root.Children[3].Type())
}

func TestParser_Parse_EmptySource(t *testing.T) {
	root, err := newTestParser(t, SyntaxLenient, "").Parse()
	require.NoError(t, err)
	assert.Empty(t, root.Children)
}

func TestParser_Parse_UnknownTag(t *testing.T) {
	_, err := newTestParser(t, SyntaxLenient, "{% bogus %}").Parse()
	require.Error(t, err)

	var parserErr *ParserError
	require.ErrorAs(t, err, &parserErr)
	assert.Equal(t, ErrMsgUnknownTag, parserErr.Message)
	assert.Equal(t, "bogus", parserErr.Detail)
}

func TestParser_Parse_DanglingTerminator(t *testing.T) {
	// Terminators are not tags; one outside its block is unknown
	_, err := newTestParser(t, SyntaxLenient, "{% endfor %}").Parse()
	require.Error(t, err)

	var parserErr *ParserError
	require.ErrorAs(t, err, &parserErr)
	assert.Equal(t, ErrMsgUnknownTag, parserErr.Message)
}

func TestParser_Parse_InvalidOutputExpression(t *testing.T) {
	_, err := newTestParser(t, SyntaxLenient, "{{ a ++ b }}").Parse()
	require.Error(t, err)

	var parserErr *ParserError
	require.ErrorAs(t, err, &parserErr)
	assert.Equal(t, ErrMsgInvalidOutput, parserErr.Message)
}

func TestParser_ParseBody_ReturnsTerminatorName(t *testing.T) {
	tokens, err := NewLexer("body{% else %}", zap.NewNop()).Tokenize()
	require.NoError(t, err)

	registry := NewTagRegistry(zap.NewNop())
	RegisterBuiltinTags(registry)
	p := NewParser(tokens, registry, zap.NewNop())

	nodes, stop, err := p.ParseBody(TagNameEndFor, TagNameElse)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, TagNameElse, stop)
}

func TestTagRegistry(t *testing.T) {
	r := NewTagRegistry(zap.NewNop())

	_, ok := r.Get("custom")
	assert.False(t, ok)

	r.Register("custom", func(tok Token, _ *Parser) (Node, error) {
		return NewTextNode(tok.Value, tok.Position), nil
	})

	fn, ok := r.Get("custom")
	require.True(t, ok)
	assert.NotNil(t, fn)
}

func TestParser_CustomTag(t *testing.T) {
	tokens, err := NewLexer("{% shout hello %}", zap.NewNop()).Tokenize()
	require.NoError(t, err)

	registry := NewTagRegistry(zap.NewNop())
	registry.Register("shout", func(tok Token, _ *Parser) (Node, error) {
		return NewTextNode(tok.Value+"!", tok.Position), nil
	})

	root, err := NewParser(tokens, registry, zap.NewNop()).Parse()
	require.NoError(t, err)
	require.Len(t, root.Children, 1)

	text, ok := root.Children[0].(*TextNode)
	require.True(t, ok)
	assert.Equal(t, "hello!", text.Content)
}

func TestIfNode_Render(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		data     map[string]any
		expected string
	}{
		{
			name:     "true branch",
			source:   "{% if ok %}yes{% endif %}",
			data:     map[string]any{"ok": true},
			expected: "yes",
		},
		{
			name:     "false without else",
			source:   "{% if ok %}yes{% endif %}",
			data:     map[string]any{"ok": false},
			expected: "",
		},
		{
			name:     "else branch",
			source:   "{% if ok %}yes{% else %}no{% endif %}",
			data:     map[string]any{"ok": false},
			expected: "no",
		},
		{
			name:     "elsif chain",
			source:   "{% if a %}A{% elsif b %}B{% else %}C{% endif %}",
			data:     map[string]any{"a": false, "b": true},
			expected: "B",
		},
		{
			name:     "comparison condition",
			source:   "{% if n > 2 %}big{% endif %}",
			data:     map[string]any{"n": 5},
			expected: "big",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, renderSource(t, SyntaxLenient, tt.source, tt.data))
		})
	}
}

func TestIfNode_Parse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"duplicate else", "{% if a %}x{% else %}y{% else %}z{% endif %}"},
		{"elsif after else", "{% if a %}x{% else %}y{% elsif b %}z{% endif %}"},
		{"missing endif", "{% if a %}x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestParser(t, SyntaxLenient, tt.source).Parse()
			assert.Error(t, err)
		})
	}
}

func TestAssignNode_Render(t *testing.T) {
	out := renderSource(t, SyntaxLenient, "{% assign greeting = \"hi\" %}{{ greeting }}", nil)
	assert.Equal(t, "hi", out)

	out = renderSource(t, SyntaxLenient, "{% assign n = 2 %}{% for i in (1..n) %}{{ i }}{% endfor %}", nil)
	assert.Equal(t, "12", out)
}

func TestAssignNode_Parse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"missing equals", "{% assign x %}"},
		{"invalid name", "{% assign a.b = 1 %}"},
		{"missing expression", "{% assign x = %}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestParser(t, SyntaxLenient, tt.source).Parse()
			assert.Error(t, err)
		})
	}
}

func TestInterruptNode_Parse_RejectsMarkup(t *testing.T) {
	_, err := newTestParser(t, SyntaxLenient, "{% for x in xs %}{% break now %}{% endfor %}").Parse()
	require.Error(t, err)

	var parserErr *ParserError
	require.ErrorAs(t, err, &parserErr)
	assert.Equal(t, ErrMsgInterruptMarkup, parserErr.Message)
}

func TestWalkExpressions_CollectsNestedIdentifiers(t *testing.T) {
	source := "{% for x in items limit: take %}{% if x > threshold %}{{ x }}{{ label }}{% endif %}{% else %}{{ fallback }}{% endfor %}"
	root, err := newTestParser(t, SyntaxLenient, source).Parse()
	require.NoError(t, err)

	names := make(map[string]struct{})
	WalkExpressions(root.Children, func(expr ExprNode) {
		CollectIdentifiers(expr, names)
	})

	for _, want := range []string{"items", "take", "x", "threshold", "label", "fallback"} {
		assert.Contains(t, names, want)
	}
}
