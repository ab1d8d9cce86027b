package internal

import (
	"strings"

	"go.uber.org/zap"
)

// LexerConfig holds lexer configuration
type LexerConfig struct {
	TagOpen     string // Opening tag delimiter (default: "{%")
	TagClose    string // Closing tag delimiter (default: "%}")
	OutputOpen  string // Opening output delimiter (default: "{{")
	OutputClose string // Closing output delimiter (default: "}}")
}

// DefaultLexerConfig returns the default lexer configuration
func DefaultLexerConfig() LexerConfig {
	return LexerConfig{
		TagOpen:     StrTagOpen,
		TagClose:    StrTagClose,
		OutputOpen:  StrOutputOpen,
		OutputClose: StrOutputClose,
	}
}

// Lexer tokenizes template source into a token stream
type Lexer struct {
	source string
	config LexerConfig
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
	logger *zap.Logger
}

// NewLexer creates a new lexer with default configuration
func NewLexer(source string, logger *zap.Logger) *Lexer {
	return NewLexerWithConfig(source, DefaultLexerConfig(), logger)
}

// NewLexerWithConfig creates a lexer with custom configuration
func NewLexerWithConfig(source string, config LexerConfig, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgLexerCreated, zap.Int(LogFieldSource, len(source)))
	return &Lexer{
		source: source,
		config: config,
		pos:    0,
		line:   1,
		column: 1,
		logger: logger,
	}
}

// Tokenize processes the source and returns a token stream
func (l *Lexer) Tokenize() ([]Token, error) {
	l.logger.Debug(LogMsgTokenizerStart)
	var tokens []Token

	for !l.isAtEnd() {
		// Check for tag marker {% ... %}
		if l.matchStr(l.config.TagOpen) {
			tok, err := l.scanTag()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			continue
		}

		// Check for output marker {{ ... }}
		if l.matchStr(l.config.OutputOpen) {
			tok, err := l.scanOutput()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			continue
		}

		// Scan regular text until the next marker
		textToken := l.scanText()
		if textToken.Value != StringValueEmpty {
			tokens = append(tokens, textToken)
		}
	}

	tokens = append(tokens, NewEOFToken(l.currentPosition()))
	l.logger.Debug(LogMsgTokenizerEnd, zap.Int(LogFieldTokens, len(tokens)))
	return tokens, nil
}

// scanText scans text content until the next marker
func (l *Lexer) scanText() Token {
	startPos := l.currentPosition()
	var sb strings.Builder

	for !l.isAtEnd() {
		if l.matchStr(l.config.TagOpen) || l.matchStr(l.config.OutputOpen) {
			break
		}
		sb.WriteByte(l.advance())
	}

	return NewTextToken(sb.String(), startPos)
}

// scanTag scans a tag marker: {% name markup %}
func (l *Lexer) scanTag() (Token, error) {
	startPos := l.currentPosition()
	l.advanceN(len(l.config.TagOpen))

	inner, ok := l.scanUntil(l.config.TagClose)
	if !ok {
		return Token{}, NewLexerError(ErrMsgUnterminatedTag, startPos)
	}

	name, markup := splitTagMarkup(inner)
	if name == StringValueEmpty {
		return Token{}, NewLexerError(ErrMsgEmptyTag, startPos)
	}
	return NewTagToken(name, markup, startPos), nil
}

// scanOutput scans an output marker: {{ expression }}
func (l *Lexer) scanOutput() (Token, error) {
	startPos := l.currentPosition()
	l.advanceN(len(l.config.OutputOpen))

	inner, ok := l.scanUntil(l.config.OutputClose)
	if !ok {
		return Token{}, NewLexerError(ErrMsgUnterminatedOutput, startPos)
	}
	return NewOutputToken(strings.TrimSpace(inner), startPos), nil
}

// scanUntil consumes input up to and including the given terminator,
// returning the consumed content (terminator excluded). Returns false
// if the terminator is never found.
func (l *Lexer) scanUntil(terminator string) (string, bool) {
	var sb strings.Builder
	for !l.isAtEnd() {
		if l.matchStr(terminator) {
			l.advanceN(len(terminator))
			return sb.String(), true
		}
		sb.WriteByte(l.advance())
	}
	return StringValueEmpty, false
}

// splitTagMarkup splits raw tag content into a tag name and the
// remaining markup string.
func splitTagMarkup(inner string) (string, string) {
	trimmed := strings.TrimSpace(inner)
	if trimmed == StringValueEmpty {
		return StringValueEmpty, StringValueEmpty
	}
	idx := strings.IndexAny(trimmed, " \t\n\r")
	if idx < 0 {
		return trimmed, StringValueEmpty
	}
	return trimmed[:idx], strings.TrimSpace(trimmed[idx:])
}

// Helper methods

// currentPosition returns the current position
func (l *Lexer) currentPosition() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// isAtEnd returns true if we've reached the end of source
func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

// advance consumes and returns the current character
func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == CharNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// advanceN advances by n characters
func (l *Lexer) advanceN(n int) {
	for i := 0; i < n && !l.isAtEnd(); i++ {
		l.advance()
	}
}

// matchStr returns true if the remaining source starts with s
func (l *Lexer) matchStr(s string) bool {
	return strings.HasPrefix(l.source[l.pos:], s)
}

// LexerError represents a lexer error with position
type LexerError struct {
	Message  string
	Position Position
}

// NewLexerError creates a new lexer error
func NewLexerError(message string, pos Position) *LexerError {
	return &LexerError{Message: message, Position: pos}
}

func (e *LexerError) Error() string {
	return e.Message + " at " + e.Position.String()
}

// Error message constants for lexer
const (
	ErrMsgUnterminatedTag    = "unterminated tag marker"
	ErrMsgUnterminatedOutput = "unterminated output marker"
	ErrMsgEmptyTag           = "tag name cannot be empty"
)
