package internal

import "fmt"

// ParseExpression tokenizes and parses a complete expression string
func ParseExpression(input string) (ExprNode, error) {
	tokens, err := NewExprTokenizer(input).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewExprParser(tokens).Parse()
}

// ExprParser parses expression tokens into an AST
type ExprParser struct {
	tokens []ExprToken
	pos    int
}

// NewExprParser creates a new expression parser
func NewExprParser(tokens []ExprToken) *ExprParser {
	return &ExprParser{
		tokens: tokens,
		pos:    0,
	}
}

// Parse parses the expression and returns the root AST node.
// All tokens must be consumed.
func (p *ExprParser) Parse() (ExprNode, error) {
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	// Ensure we consumed all tokens
	if !p.isAtEnd() && p.peek().Type != ExprTokenTypeEOF {
		return nil, NewExprParseError(ErrMsgExprUnexpectedToken, p.peek().Pos, p.peek().Value)
	}

	return node, nil
}

// parseExpression parses a single expression without requiring EOF.
// Used by callers that embed expressions in larger markup (e.g., the
// strict for-tag syntax).
func (p *ExprParser) parseExpression() (ExprNode, error) {
	if len(p.tokens) == 0 || (len(p.tokens) == 1 && p.tokens[0].Type == ExprTokenTypeEOF) {
		return nil, NewExprParseError(ErrMsgExprEmptyExpression, 0, "")
	}
	return p.parseOr()
}

// parseOr parses OR expressions (lowest precedence)
func (p *ExprParser) parseOr() (ExprNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.match(ExprTokenTypeOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = NewBinary(left, ExprTokenTypeOr, right)
	}

	return left, nil
}

// parseAnd parses AND expressions
func (p *ExprParser) parseAnd() (ExprNode, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	for p.match(ExprTokenTypeAnd) {
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = NewBinary(left, ExprTokenTypeAnd, right)
	}

	return left, nil
}

// parseEquality parses equality expressions (==, !=)
func (p *ExprParser) parseEquality() (ExprNode, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.matchAny(ExprTokenTypeEq, ExprTokenTypeNeq) {
		op := p.previous().Type
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = NewBinary(left, op, right)
	}

	return left, nil
}

// parseComparison parses comparison expressions (<, >, <=, >=, contains)
func (p *ExprParser) parseComparison() (ExprNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.matchAny(ExprTokenTypeLt, ExprTokenTypeGt, ExprTokenTypeLte, ExprTokenTypeGte, ExprTokenTypeContains) {
		op := p.previous().Type
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = NewBinary(left, op, right)
	}

	return left, nil
}

// parseUnary parses unary expressions (!, not)
func (p *ExprParser) parseUnary() (ExprNode, error) {
	if p.match(ExprTokenTypeNot) {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return NewUnary(ExprTokenTypeNot, right), nil
	}

	return p.parsePostfix()
}

// parsePostfix parses member access, index access, and function calls
func (p *ExprParser) parsePostfix() (ExprNode, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		// Member access: target.name
		if p.match(ExprTokenTypeDot) {
			if !p.check(ExprTokenTypeIdentifier) {
				return nil, NewExprParseError(ErrMsgExprExpectedMember, p.currentPos(), p.peek().Value)
			}
			name := p.advance().Value
			node = NewMember(node, name)
			continue
		}

		// Index access: target[expr]
		if p.match(ExprTokenTypeLBracket) {
			index, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if !p.match(ExprTokenTypeRBracket) {
				return nil, NewExprParseError(ErrMsgExprExpectedRBracket, p.currentPos(), "")
			}
			node = NewIndex(node, index)
			continue
		}

		// Function call: identifier(args)
		if ident, ok := node.(*IdentifierNode); ok && p.match(ExprTokenTypeLParen) {
			node, err = p.finishCall(ident.Name)
			if err != nil {
				return nil, err
			}
			continue
		}

		return node, nil
	}
}

// finishCall finishes parsing a function call after the opening paren
func (p *ExprParser) finishCall(name string) (ExprNode, error) {
	var args []ExprNode

	// Handle no arguments case
	if !p.check(ExprTokenTypeRParen) {
		for {
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if !p.match(ExprTokenTypeComma) {
				break
			}
		}
	}

	if !p.match(ExprTokenTypeRParen) {
		return nil, NewExprParseError(ErrMsgExprExpectedRParen, p.currentPos(), "")
	}

	return NewCall(name, args), nil
}

// parsePrimary parses primary expressions (literals, identifiers,
// parenthesized expressions, range literals)
func (p *ExprParser) parsePrimary() (ExprNode, error) {
	// Literals
	if p.match(ExprTokenTypeString) {
		return NewLiteralString(p.previous().Literal.(string)), nil
	}

	if p.match(ExprTokenTypeNumber) {
		return NewLiteralNumber(p.previous().Literal.(float64)), nil
	}

	if p.match(ExprTokenTypeBool) {
		return NewLiteralBool(p.previous().Literal.(bool)), nil
	}

	if p.match(ExprTokenTypeNil) {
		return NewLiteralNil(), nil
	}

	// Identifiers (variable references)
	if p.match(ExprTokenTypeIdentifier) {
		return NewIdentifier(p.previous().Value), nil
	}

	// Parenthesized expressions and range literals: (expr) or (lo..hi)
	if p.match(ExprTokenTypeLParen) {
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}

		if p.match(ExprTokenTypeDotDot) {
			hi, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if !p.match(ExprTokenTypeRParen) {
				return nil, NewExprParseError(ErrMsgExprExpectedRParen, p.currentPos(), "")
			}
			return NewRange(expr, hi), nil
		}

		if !p.match(ExprTokenTypeRParen) {
			return nil, NewExprParseError(ErrMsgExprExpectedRParen, p.currentPos(), "")
		}
		return expr, nil
	}

	return nil, NewExprParseError(ErrMsgExprUnexpectedToken, p.currentPos(), p.peek().Value)
}

// Helper methods

// match consumes the current token if it matches the given type
func (p *ExprParser) match(tokenType ExprTokenType) bool {
	if p.check(tokenType) {
		p.advance()
		return true
	}
	return false
}

// matchAny consumes the current token if it matches any of the given types
func (p *ExprParser) matchAny(tokenTypes ...ExprTokenType) bool {
	for _, tokenType := range tokenTypes {
		if p.match(tokenType) {
			return true
		}
	}
	return false
}

// check returns true if the current token matches the given type
func (p *ExprParser) check(tokenType ExprTokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tokenType
}

// peek returns the current token without advancing
func (p *ExprParser) peek() ExprToken {
	if p.pos >= len(p.tokens) {
		return ExprToken{Type: ExprTokenTypeEOF}
	}
	return p.tokens[p.pos]
}

// previous returns the most recently consumed token
func (p *ExprParser) previous() ExprToken {
	if p.pos == 0 {
		return ExprToken{Type: ExprTokenTypeEOF}
	}
	return p.tokens[p.pos-1]
}

// advance consumes and returns the current token
func (p *ExprParser) advance() ExprToken {
	tok := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

// isAtEnd returns true when all tokens are consumed
func (p *ExprParser) isAtEnd() bool {
	return p.pos >= len(p.tokens) || p.tokens[p.pos].Type == ExprTokenTypeEOF
}

// currentPos returns the source position of the current token
func (p *ExprParser) currentPos() int {
	return p.peek().Pos
}

// ExprParseError represents an error during expression parsing
type ExprParseError struct {
	Message string
	Pos     int
	Detail  string
}

// NewExprParseError creates a new expression parse error
func NewExprParseError(message string, pos int, detail string) *ExprParseError {
	return &ExprParseError{
		Message: message,
		Pos:     pos,
		Detail:  detail,
	}
}

// Error implements the error interface
func (e *ExprParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s at position %d: %s", e.Message, e.Pos, e.Detail)
	}
	return fmt.Sprintf("%s at position %d", e.Message, e.Pos)
}

// Expression parser error messages
const (
	ErrMsgExprEmptyExpression  = "empty expression"
	ErrMsgExprUnexpectedToken  = "unexpected token"
	ErrMsgExprExpectedRParen   = "expected closing parenthesis"
	ErrMsgExprExpectedRBracket = "expected closing bracket"
	ErrMsgExprExpectedMember   = "expected member name after '.'"
)
