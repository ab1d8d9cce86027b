package internal

import (
	"fmt"
	"regexp"
	"strings"
)

// forSyntax parses raw for-tag markup into a ForSpec. Two strategies
// exist: a lenient pattern-based one and a strict tokenizer-based
// one. They share no code but must agree on results for equivalent
// markup; the conformance tests hold them to that.
type forSyntax interface {
	ParseFor(markup string) (*ForSpec, error)
}

// forSyntaxFor returns the strategy for the configured syntax mode
func forSyntaxFor(mode SyntaxMode) forSyntax {
	if mode == SyntaxStrict {
		return strictForSyntax{}
	}
	return lenientForSyntax{}
}

// Lenient strategy patterns
var (
	lenientForPattern  = regexp.MustCompile(`^([\w\t ,]+?)\s+in\s+(\S+)(\s+reversed)?`)
	lenientAttrPattern = regexp.MustCompile(`(\w+)\s*:\s*(\S+)`)
	lenientVarSplit    = regexp.MustCompile(`[\s,]+`)
)

// lenientForSyntax matches "<vars> in <collection> [reversed]" and
// scans the remaining markup for offset/limit key:value pairs,
// ignoring unknown keys.
type lenientForSyntax struct{}

func (lenientForSyntax) ParseFor(markup string) (*ForSpec, error) {
	m := lenientForPattern.FindStringSubmatchIndex(markup)
	if m == nil {
		return nil, NewForSyntaxError(ErrMsgForSyntax, markup)
	}

	varsPart := markup[m[2]:m[3]]
	collectionPart := markup[m[4]:m[5]]
	reversed := m[6] >= 0

	spec := &ForSpec{Reversed: reversed}
	for _, name := range lenientVarSplit.Split(strings.TrimSpace(varsPart), -1) {
		if name != StringValueEmpty {
			spec.Vars = append(spec.Vars, name)
		}
	}
	if len(spec.Vars) == 0 {
		return nil, NewForSyntaxError(ErrMsgForSyntax, markup)
	}

	collection, err := ParseExpression(collectionPart)
	if err != nil {
		return nil, NewForSyntaxError(ErrMsgForSyntax, markup)
	}
	spec.Collection = collection

	// Scan the remaining markup for key:value pairs. Only offset and
	// limit are recognized; the last occurrence wins on repeats.
	rest := markup[m[1]:]
	for _, attr := range lenientAttrPattern.FindAllStringSubmatch(rest, -1) {
		key, value := attr[1], attr[2]
		switch key {
		case ForAttrOffset:
			if value == ForKeywordContinue {
				spec.OffsetContinue = true
				spec.Offset = nil
				continue
			}
			expr, err := ParseExpression(value)
			if err != nil {
				return nil, NewForSyntaxError(ErrMsgForSyntax, markup)
			}
			spec.OffsetContinue = false
			spec.Offset = expr
		case ForAttrLimit:
			expr, err := ParseExpression(value)
			if err != nil {
				return nil, NewForSyntaxError(ErrMsgForSyntax, markup)
			}
			spec.Limit = expr
		}
	}

	return spec, nil
}

// strictForSyntax tokenizes the markup and requires the exact shape:
// one or more comma-separated identifiers, the literal "in", a full
// collection expression, an optional "reversed" keyword, then zero or
// more "key : expression" pairs restricted to limit/offset, then
// end-of-input.
type strictForSyntax struct{}

func (strictForSyntax) ParseFor(markup string) (*ForSpec, error) {
	tokens, err := NewExprTokenizer(markup).Tokenize()
	if err != nil {
		return nil, NewForSyntaxError(ErrMsgForSyntax, err.Error())
	}
	p := NewExprParser(tokens)

	spec := &ForSpec{}

	// Variable list: identifier ("," identifier)*
	if !p.check(ExprTokenTypeIdentifier) {
		return nil, NewForSyntaxError(ErrMsgForExpectedVar, markup)
	}
	spec.Vars = append(spec.Vars, p.advance().Value)
	for p.match(ExprTokenTypeComma) {
		if !p.check(ExprTokenTypeIdentifier) {
			return nil, NewForSyntaxError(ErrMsgForExpectedVar, markup)
		}
		spec.Vars = append(spec.Vars, p.advance().Value)
	}

	// Literal "in"
	if !p.check(ExprTokenTypeIdentifier) || p.peek().Value != ForKeywordIn {
		return nil, NewForSyntaxError(ErrMsgForMissingIn, markup)
	}
	p.advance()

	// Collection expression
	collection, err := p.parseExpression()
	if err != nil {
		return nil, NewForSyntaxError(ErrMsgForSyntax, err.Error())
	}
	spec.Collection = collection

	// Optional "reversed" keyword
	if p.check(ExprTokenTypeIdentifier) && p.peek().Value == ForKeywordReversed {
		p.advance()
		spec.Reversed = true
	}

	// Attribute pairs: ("limit" | "offset") ":" expression
	// The last occurrence wins on repeats.
	for !p.isAtEnd() {
		if !p.check(ExprTokenTypeIdentifier) {
			return nil, NewForSyntaxError(ErrMsgForUnknownAttribute, p.peek().Value)
		}
		key := p.peek().Value
		if key != ForAttrLimit && key != ForAttrOffset {
			return nil, NewForSyntaxError(ErrMsgForUnknownAttribute, key)
		}
		p.advance()

		if !p.match(ExprTokenTypeColon) {
			return nil, NewForSyntaxError(ErrMsgForExpectedColon, key)
		}

		if key == ForAttrOffset && p.check(ExprTokenTypeIdentifier) && p.peek().Value == ForKeywordContinue {
			p.advance()
			spec.OffsetContinue = true
			spec.Offset = nil
			continue
		}

		expr, err := p.parseExpression()
		if err != nil {
			return nil, NewForSyntaxError(ErrMsgForSyntax, err.Error())
		}
		if key == ForAttrOffset {
			spec.OffsetContinue = false
			spec.Offset = expr
		} else {
			spec.Limit = expr
		}
	}

	return spec, nil
}

// ForSyntaxError represents malformed for-tag markup
type ForSyntaxError struct {
	Message string
	Detail  string
}

// NewForSyntaxError creates a new for-tag syntax error
func NewForSyntaxError(message, detail string) *ForSyntaxError {
	return &ForSyntaxError{Message: message, Detail: detail}
}

// Error implements the error interface
func (e *ForSyntaxError) Error() string {
	if e.Detail != StringValueEmpty {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// For-tag syntax error messages
const (
	ErrMsgForSyntax           = "invalid for tag syntax"
	ErrMsgForExpectedVar      = "expected loop variable name"
	ErrMsgForMissingIn        = "for tag missing 'in' keyword"
	ErrMsgForUnknownAttribute = "unknown for tag attribute"
	ErrMsgForExpectedColon    = "expected ':' after for tag attribute"
)
