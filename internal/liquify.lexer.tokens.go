package internal

import "fmt"

// Position represents a location in the template source
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token represents a lexical token produced by the template lexer.
// TEXT tokens carry literal content in Value. OUTPUT tokens carry the
// raw expression markup in Value. TAG tokens carry the tag name in Name
// and the remaining raw markup (excluding the name) in Value.
type Token struct {
	Type     TokenType
	Value    string
	Name     string
	Position Position
}

// String returns the string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenTypeTag:
		return fmt.Sprintf("%s(%s %q)", t.Type, t.Name, t.Value)
	case TokenTypeEOF:
		return string(t.Type)
	default:
		return fmt.Sprintf("%s(%q)", t.Type, t.Value)
	}
}

// NewTextToken creates a TEXT token
func NewTextToken(value string, pos Position) Token {
	return Token{Type: TokenTypeText, Value: value, Position: pos}
}

// NewOutputToken creates an OUTPUT token carrying raw expression markup
func NewOutputToken(markup string, pos Position) Token {
	return Token{Type: TokenTypeOutput, Value: markup, Position: pos}
}

// NewTagToken creates a TAG token carrying a tag name and raw markup
func NewTagToken(name, markup string, pos Position) Token {
	return Token{Type: TokenTypeTag, Name: name, Value: markup, Position: pos}
}

// NewEOFToken creates an EOF token
func NewEOFToken(pos Position) Token {
	return Token{Type: TokenTypeEOF, Position: pos}
}
