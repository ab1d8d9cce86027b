package internal

// TokenType represents the type of a lexical token
type TokenType string

// Token type constants
const (
	TokenTypeText   TokenType = "TEXT"
	TokenTypeOutput TokenType = "OUTPUT"
	TokenTypeTag    TokenType = "TAG"
	TokenTypeEOF    TokenType = "EOF"
)

// NodeType identifies AST node types
type NodeType int

// Node type constants
const (
	NodeTypeRoot NodeType = iota
	NodeTypeText
	NodeTypeOutput
	NodeTypeFor
	NodeTypeIf
	NodeTypeAssign
	NodeTypeInterrupt
)

// Node type string names for debugging
const (
	NodeTypeNameRoot      = "ROOT"
	NodeTypeNameText      = "TEXT"
	NodeTypeNameOutput    = "OUTPUT"
	NodeTypeNameFor       = "FOR"
	NodeTypeNameIf        = "IF"
	NodeTypeNameAssign    = "ASSIGN"
	NodeTypeNameInterrupt = "INTERRUPT"
)

// String returns the string representation of the node type
func (n NodeType) String() string {
	switch n {
	case NodeTypeRoot:
		return NodeTypeNameRoot
	case NodeTypeText:
		return NodeTypeNameText
	case NodeTypeOutput:
		return NodeTypeNameOutput
	case NodeTypeFor:
		return NodeTypeNameFor
	case NodeTypeIf:
		return NodeTypeNameIf
	case NodeTypeAssign:
		return NodeTypeNameAssign
	case NodeTypeInterrupt:
		return NodeTypeNameInterrupt
	default:
		return NodeTypeNameRoot
	}
}

// SyntaxMode selects the for-tag markup parsing strategy
type SyntaxMode int

// Syntax mode constants
const (
	SyntaxLenient SyntaxMode = iota
	SyntaxStrict
)

// Tag name constants
const (
	TagNameFor      = "for"
	TagNameEndFor   = "endfor"
	TagNameElse     = "else"
	TagNameElsif    = "elsif"
	TagNameIf       = "if"
	TagNameEndIf    = "endif"
	TagNameBreak    = "break"
	TagNameContinue = "continue"
	TagNameAssign   = "assign"
)

// For-tag markup keyword constants
const (
	ForKeywordIn       = "in"
	ForKeywordReversed = "reversed"
	ForKeywordContinue = "continue"
	ForAttrOffset      = "offset"
	ForAttrLimit       = "limit"
)

// VarNameForLoop is the well-known variable exposing loop metadata
// to the expression layer inside a for body.
const VarNameForLoop = "forloop"

// Register key constants for per-context engine state
const (
	RegisterKeyForOffsets = "for"
	RegisterKeyLoopStack  = "for_stack"
)

// Default delimiter constants
const (
	StrTagOpen     = "{%"
	StrTagClose    = "%}"
	StrOutputOpen  = "{{"
	StrOutputClose = "}}"
)

// Character constants
const (
	CharNewline     = '\n'
	CharSpace       = ' '
	CharTab         = '\t'
	CharCarriageRet = '\r'
)

// String value constants
const (
	StringValueEmpty = ""
	StringValueNil   = "nil"
)

// Display truncation constants for String() debug output
const (
	MaxStringDisplayLength = 40
	TruncatedStringLength  = 37
	TruncationSuffix       = "..."
)

// Default configuration values
const (
	DefaultMaxDepth = 100
)

// Log message constants
const (
	LogMsgLexerCreated      = "lexer created"
	LogMsgTokenizerStart    = "tokenization started"
	LogMsgTokenizerEnd      = "tokenization complete"
	LogMsgParserCreated     = "parser created"
	LogMsgParserStart       = "parsing started"
	LogMsgParserEnd         = "parsing complete"
	LogMsgRendererCreated   = "renderer created"
	LogMsgRenderStart       = "render started"
	LogMsgRenderEnd         = "render complete"
	LogMsgForSegment        = "for segment selected"
	LogMsgForElse           = "for else branch taken"
	LogMsgForBreak          = "for loop interrupted"
	LogMsgTagRegistered     = "tag registered"
	LogMsgContextCreated    = "render context created"
	LogMsgInterruptRaised   = "interrupt raised"
	LogMsgInterruptConsumed = "interrupt consumed"
)

// Log field name constants
const (
	LogFieldSource   = "sourceLen"
	LogFieldTokens   = "tokens"
	LogFieldNodes    = "nodes"
	LogFieldTag      = "tag"
	LogFieldLoop     = "loop"
	LogFieldSegment  = "segmentLen"
	LogFieldOffset   = "offset"
	LogFieldReversed = "reversed"
	LogFieldKind     = "kind"
)
