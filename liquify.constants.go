package liquify

// Version is the current library version
const Version = "0.1.0"

// Default delimiter constants
const (
	DefaultTagOpen     = "{%"
	DefaultTagClose    = "%}"
	DefaultOutputOpen  = "{{"
	DefaultOutputClose = "}}"
)

// Default configuration values
const (
	DefaultMaxDepth = 100
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Syntax errors
	ErrMsgParseFailed   = "template parsing failed"
	ErrMsgInvalidSyntax = "invalid template syntax"

	// Type errors
	ErrMsgTypeCoercion = "integer coercion failed"

	// Render errors
	ErrMsgRenderFailed = "template rendering failed"
	ErrMsgNilTemplate  = "template cannot be nil"
	ErrMsgNilContext   = "context cannot be nil"
)

// Error code constants for categorization
const (
	ErrCodeSyntax = "LIQUIFY_SYNTAX"
	ErrCodeType   = "LIQUIFY_TYPE"
	ErrCodeRender = "LIQUIFY_RENDER"
)

// Metadata key constants for error context
const (
	MetaKeyErrorCode = "errorCode"
	MetaKeyLine      = "line"
	MetaKeyColumn    = "column"
	MetaKeyOffset    = "offset"
)
