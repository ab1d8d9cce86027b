package liquify

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/itsatony/go-liquify/internal"
)

// Engine is the main entry point for the liquify templating system.
// It manages parsing, tag registration, and rendering configuration.
type Engine struct {
	registry *internal.TagRegistry
	config   *engineConfig
	renderer *internal.Renderer
	logger   *zap.Logger
}

// New creates a new liquify Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := internal.NewTagRegistry(logger)
	internal.RegisterBuiltinTags(registry)

	rendererConfig := internal.RendererConfig{
		MaxDepth: config.maxDepth,
	}
	renderer := internal.NewRenderer(rendererConfig, logger)

	return &Engine{
		registry: registry,
		config:   config,
		renderer: renderer,
		logger:   logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// RegisterTag registers a custom tag parser under the given name.
func (e *Engine) RegisterTag(name string, fn internal.TagParserFunc) {
	e.registry.Register(name, fn)
}

// Parse parses a template source string and returns a Template.
// The returned Template can be rendered multiple times with
// different data.
func (e *Engine) Parse(source string) (*Template, error) {
	lexerConfig := internal.LexerConfig{
		TagOpen:     e.config.tagOpen,
		TagClose:    e.config.tagClose,
		OutputOpen:  e.config.outputOpen,
		OutputClose: e.config.outputClose,
	}
	lexer := internal.NewLexerWithConfig(source, lexerConfig, e.logger)

	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, NewSyntaxError(ErrMsgParseFailed, errorPosition(err), err)
	}

	parserConfig := internal.ParserConfig{
		Syntax: e.config.syntax,
	}
	parser := internal.NewParserWithConfig(tokens, parserConfig, e.registry, e.logger)

	root, err := parser.Parse()
	if err != nil {
		return nil, NewSyntaxError(ErrMsgParseFailed, errorPosition(err), err)
	}

	return &Template{
		root:   root,
		engine: e,
	}, nil
}

// Render parses and renders a template source in one step.
func (e *Engine) Render(ctx context.Context, source string, data map[string]any) (string, error) {
	tmpl, err := e.Parse(source)
	if err != nil {
		return "", err
	}
	return tmpl.Render(ctx, data)
}

// errorPosition extracts a source position from an internal error,
// falling back to the zero position.
func errorPosition(err error) Position {
	var lexErr *internal.LexerError
	if errors.As(err, &lexErr) {
		return lexErr.Position
	}
	var parseErr *internal.ParserError
	if errors.As(err, &parseErr) {
		return parseErr.Position
	}
	return Position{}
}
