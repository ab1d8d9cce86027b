package liquify

import (
	"go.uber.org/zap"

	"github.com/itsatony/go-liquify/internal"
)

// SyntaxMode selects the for-tag markup parsing strategy
type SyntaxMode = internal.SyntaxMode

// Syntax mode constants
const (
	// SyntaxLenient is the default pattern-based for-tag parser.
	// Unknown attributes in for-tag markup are ignored.
	SyntaxLenient = internal.SyntaxLenient
	// SyntaxStrict is the tokenizer-based for-tag parser. Unknown
	// attributes and trailing garbage are syntax errors.
	SyntaxStrict = internal.SyntaxStrict
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	tagOpen     string
	tagClose    string
	outputOpen  string
	outputClose string
	syntax      SyntaxMode
	maxDepth    int
	logger      *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		tagOpen:     DefaultTagOpen,
		tagClose:    DefaultTagClose,
		outputOpen:  DefaultOutputOpen,
		outputClose: DefaultOutputClose,
		syntax:      SyntaxLenient,
		maxDepth:    DefaultMaxDepth,
		logger:      nil,
	}
}

// WithTagDelimiters sets custom delimiters for tag markers.
// Default: "{%" and "%}"
func WithTagDelimiters(open, close string) Option {
	return func(c *engineConfig) {
		if open != "" {
			c.tagOpen = open
		}
		if close != "" {
			c.tagClose = close
		}
	}
}

// WithOutputDelimiters sets custom delimiters for output markers.
// Default: "{{" and "}}"
func WithOutputDelimiters(open, close string) Option {
	return func(c *engineConfig) {
		if open != "" {
			c.outputOpen = open
		}
		if close != "" {
			c.outputClose = close
		}
	}
}

// WithSyntaxMode selects the for-tag markup parsing strategy.
// Default: SyntaxLenient
func WithSyntaxMode(mode SyntaxMode) Option {
	return func(c *engineConfig) {
		c.syntax = mode
	}
}

// WithMaxDepth sets the maximum nesting depth for templates.
// Use 0 for unlimited depth.
// Default: 100
func WithMaxDepth(depth int) Option {
	return func(c *engineConfig) {
		c.maxDepth = depth
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
