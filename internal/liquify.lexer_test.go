package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLexer_Tokenize_PlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "empty string",
			input: "",
			expected: []Token{
				{Type: TokenTypeEOF, Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
		{
			name:  "simple text",
			input: "Hello, world!",
			expected: []Token{
				{Type: TokenTypeText, Value: "Hello, world!", Position: Position{Offset: 0, Line: 1, Column: 1}},
				{Type: TokenTypeEOF, Position: Position{Offset: 13, Line: 1, Column: 14}},
			},
		},
		{
			name:  "multiline text",
			input: "Line 1\nLine 2",
			expected: []Token{
				{Type: TokenTypeText, Value: "Line 1\nLine 2", Position: Position{Offset: 0, Line: 1, Column: 1}},
				{Type: TokenTypeEOF, Position: Position{Offset: 13, Line: 2, Column: 7}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewLexer(tt.input, zap.NewNop()).Tokenize()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestLexer_Tokenize_Tags(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		tag    string
		markup string
	}{
		{"tag with markup", "{% for item in items %}", "for", "item in items"},
		{"tag without markup", "{% break %}", "break", ""},
		{"tight delimiters", "{%endfor%}", "endfor", ""},
		{"markup with attributes", "{% for x in items offset: 2 limit: 3 %}", "for", "x in items offset: 2 limit: 3"},
		{"internal whitespace collapses at edges only", "{%  if  a  %}", "if", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewLexer(tt.input, zap.NewNop()).Tokenize()
			require.NoError(t, err)
			require.Len(t, tokens, 2)

			assert.Equal(t, TokenTypeTag, tokens[0].Type)
			assert.Equal(t, tt.tag, tokens[0].Name)
			assert.Equal(t, tt.markup, tokens[0].Value)
			assert.Equal(t, TokenTypeEOF, tokens[1].Type)
		})
	}
}

func TestLexer_Tokenize_Output(t *testing.T) {
	tokens, err := NewLexer("{{ user.name }}", zap.NewNop()).Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.Equal(t, TokenTypeOutput, tokens[0].Type)
	assert.Equal(t, "user.name", tokens[0].Value)
}

func TestLexer_Tokenize_Mixed(t *testing.T) {
	input := "a{% for x in xs %}{{ x }}{% endfor %}b"
	tokens, err := NewLexer(input, zap.NewNop()).Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 6)

	assert.Equal(t, TokenTypeText, tokens[0].Type)
	assert.Equal(t, "a", tokens[0].Value)
	assert.Equal(t, TokenTypeTag, tokens[1].Type)
	assert.Equal(t, "for", tokens[1].Name)
	assert.Equal(t, TokenTypeOutput, tokens[2].Type)
	assert.Equal(t, "x", tokens[2].Value)
	assert.Equal(t, TokenTypeTag, tokens[3].Type)
	assert.Equal(t, "endfor", tokens[3].Name)
	assert.Equal(t, TokenTypeText, tokens[4].Type)
	assert.Equal(t, "b", tokens[4].Value)
	assert.Equal(t, TokenTypeEOF, tokens[5].Type)
}

func TestLexer_Tokenize_PositionsTrackLines(t *testing.T) {
	input := "line one\n{% break %}"
	tokens, err := NewLexer(input, zap.NewNop()).Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	assert.Equal(t, Position{Offset: 9, Line: 2, Column: 1}, tokens[1].Position)
}

func TestLexer_Tokenize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"unterminated tag", "{% for x in items", ErrMsgUnterminatedTag},
		{"unterminated output", "{{ name", ErrMsgUnterminatedOutput},
		{"empty tag", "{% %}", ErrMsgEmptyTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer(tt.input, zap.NewNop()).Tokenize()
			require.Error(t, err)

			var lexErr *LexerError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.message, lexErr.Message)
		})
	}
}

func TestLexer_Tokenize_CustomDelimiters(t *testing.T) {
	config := LexerConfig{
		TagOpen:     "<%",
		TagClose:    "%>",
		OutputOpen:  "<<",
		OutputClose: ">>",
	}
	tokens, err := NewLexerWithConfig("<% for x in xs %><< x >><% endfor %>", config, zap.NewNop()).Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 4)

	assert.Equal(t, TokenTypeTag, tokens[0].Type)
	assert.Equal(t, "for", tokens[0].Name)
	assert.Equal(t, TokenTypeOutput, tokens[1].Type)
	assert.Equal(t, "x", tokens[1].Value)
	assert.Equal(t, TokenTypeTag, tokens[2].Type)
}

func TestSplitTagMarkup(t *testing.T) {
	tests := []struct {
		inner  string
		name   string
		markup string
	}{
		{" for item in items ", "for", "item in items"},
		{"break", "break", ""},
		{"  endfor  ", "endfor", ""},
		{"if a == b", "if", "a == b"},
		{"", "", ""},
		{"   ", "", ""},
	}

	for _, tt := range tests {
		name, markup := splitTagMarkup(tt.inner)
		assert.Equal(t, tt.name, name)
		assert.Equal(t, tt.markup, markup)
	}
}
