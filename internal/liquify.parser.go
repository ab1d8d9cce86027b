package internal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// TagParserFunc constructs an AST node for a tag token. Block tags
// use the parser handle to consume their body up to a terminator.
type TagParserFunc func(tok Token, p *Parser) (Node, error)

// TagRegistry maps tag names to their parser functions
type TagRegistry struct {
	tags   map[string]TagParserFunc
	logger *zap.Logger
}

// NewTagRegistry creates an empty tag registry
func NewTagRegistry(logger *zap.Logger) *TagRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TagRegistry{
		tags:   make(map[string]TagParserFunc),
		logger: logger,
	}
}

// Register adds a tag parser under the given name
func (r *TagRegistry) Register(name string, fn TagParserFunc) {
	r.tags[name] = fn
	r.logger.Debug(LogMsgTagRegistered, zap.String(LogFieldTag, name))
}

// Get retrieves a tag parser by name
func (r *TagRegistry) Get(name string) (TagParserFunc, bool) {
	fn, ok := r.tags[name]
	return fn, ok
}

// ParserConfig holds parser configuration
type ParserConfig struct {
	Syntax SyntaxMode // For-tag markup parsing strategy
}

// DefaultParserConfig returns the default parser configuration
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		Syntax: SyntaxLenient,
	}
}

// Parser produces an AST from a token stream
type Parser struct {
	tokens   []Token
	pos      int
	config   ParserConfig
	registry *TagRegistry
	logger   *zap.Logger
}

// NewParser creates a new parser with default configuration
func NewParser(tokens []Token, registry *TagRegistry, logger *zap.Logger) *Parser {
	return NewParserWithConfig(tokens, DefaultParserConfig(), registry, logger)
}

// NewParserWithConfig creates a parser with custom configuration
func NewParserWithConfig(tokens []Token, config ParserConfig, registry *TagRegistry, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldTokens, len(tokens)))
	return &Parser{
		tokens:   tokens,
		pos:      0,
		config:   config,
		registry: registry,
		logger:   logger,
	}
}

// Config returns the parser configuration
func (p *Parser) Config() ParserConfig {
	return p.config
}

// Parse produces the AST root node from the token stream
func (p *Parser) Parse() (*RootNode, error) {
	p.logger.Debug(LogMsgParserStart)

	nodes, _, err := p.ParseBody()
	if err != nil {
		return nil, err
	}

	root := &RootNode{Children: nodes}
	p.logger.Debug(LogMsgParserEnd, zap.Int(LogFieldNodes, len(nodes)))
	return root, nil
}

// ParseBody parses nodes until one of the given terminator tags or,
// with no terminators, until EOF. The terminator token is consumed
// and its name returned so block tags can branch on it (e.g., the
// for tag distinguishing "else" from "endfor").
func (p *Parser) ParseBody(terminators ...string) ([]Node, string, error) {
	var nodes []Node

	for {
		tok := p.current()

		switch tok.Type {
		case TokenTypeEOF:
			if len(terminators) > 0 {
				return nil, StringValueEmpty, NewParserError(ErrMsgMissingTerminator, tok.Position, strings.Join(terminators, ", "))
			}
			return nodes, StringValueEmpty, nil

		case TokenTypeText:
			p.advance()
			nodes = append(nodes, NewTextNode(tok.Value, tok.Position))

		case TokenTypeOutput:
			p.advance()
			expr, err := ParseExpression(tok.Value)
			if err != nil {
				return nil, StringValueEmpty, NewParserErrorWithCause(ErrMsgInvalidOutput, tok.Position, err)
			}
			nodes = append(nodes, NewOutputNode(expr, tok.Position))

		case TokenTypeTag:
			if isTerminator(tok.Name, terminators) {
				p.advance()
				return nodes, tok.Name, nil
			}

			fn, ok := p.registry.Get(tok.Name)
			if !ok {
				return nil, StringValueEmpty, NewParserError(ErrMsgUnknownTag, tok.Position, tok.Name)
			}

			p.advance()
			node, err := fn(tok, p)
			if err != nil {
				return nil, StringValueEmpty, err
			}
			nodes = append(nodes, node)

		default:
			return nil, StringValueEmpty, NewParserError(ErrMsgUnexpectedToken, tok.Position, string(tok.Type))
		}
	}
}

// isTerminator reports whether a tag name is one of the terminators
func isTerminator(name string, terminators []string) bool {
	for _, t := range terminators {
		if name == t {
			return true
		}
	}
	return false
}

// Helper methods

// current returns the current token without advancing
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenTypeEOF}
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token
func (p *Parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// ParserError represents a parse error with position context
type ParserError struct {
	Message  string
	Position Position
	Detail   string
	Cause    error
}

// NewParserError creates a new parser error
func NewParserError(message string, pos Position, detail string) *ParserError {
	return &ParserError{
		Message:  message,
		Position: pos,
		Detail:   detail,
	}
}

// NewParserErrorWithCause creates a parser error wrapping a cause
func NewParserErrorWithCause(message string, pos Position, cause error) *ParserError {
	return &ParserError{
		Message:  message,
		Position: pos,
		Cause:    cause,
	}
}

// Error implements the error interface
func (e *ParserError) Error() string {
	result := e.Message
	if e.Detail != StringValueEmpty {
		result = fmt.Sprintf("%s: %s", result, e.Detail)
	}
	result = result + " at " + e.Position.String()
	if e.Cause != nil {
		result = result + ": " + e.Cause.Error()
	}
	return result
}

// Unwrap returns the underlying cause error
func (e *ParserError) Unwrap() error {
	return e.Cause
}

// Parser error message constants
const (
	ErrMsgUnknownTag        = "unknown tag"
	ErrMsgMissingTerminator = "missing block terminator"
	ErrMsgInvalidOutput     = "invalid output expression"
	ErrMsgUnexpectedToken   = "unexpected token"
)
