package internal

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Interrupt is a cooperative signal requesting early loop termination
// or a per-iteration skip. Interrupts are not errors: they surface
// through normal control flow and are consumed by the nearest
// enclosing loop.
type Interrupt int

// Interrupt kind constants
const (
	InterruptNone Interrupt = iota
	InterruptBreak
	InterruptContinue
)

// Interrupt kind names for debugging
const (
	InterruptNameNone     = "NONE"
	InterruptNameBreak    = "BREAK"
	InterruptNameContinue = "CONTINUE"
)

// String returns the string representation of the interrupt kind
func (i Interrupt) String() string {
	switch i {
	case InterruptBreak:
		return InterruptNameBreak
	case InterruptContinue:
		return InterruptNameContinue
	default:
		return InterruptNameNone
	}
}

// RenderContext carries all mutable state for one render context:
// the scope stack, the register storage (resume offsets, loop stack),
// and the interrupt mailbox. It is shared across all tags within the
// context and may be reused across separate render passes.
//
// No internal locking: exactly one render is assumed active per
// context at a time, and concurrent renders of the same context must
// be serialized by the caller.
type RenderContext struct {
	scopes     []map[string]any
	registers  map[string]any
	interrupts []Interrupt
	logger     *zap.Logger
}

// NewRenderContext creates a render context seeded with the given
// variables as the outermost scope.
func NewRenderContext(data map[string]any, logger *zap.Logger) *RenderContext {
	if data == nil {
		data = make(map[string]any)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgContextCreated)
	return &RenderContext{
		scopes:    []map[string]any{data},
		registers: make(map[string]any),
		logger:    logger,
	}
}

// Scope discipline

// PushScope enters a fresh variable scope
func (rc *RenderContext) PushScope() {
	rc.scopes = append(rc.scopes, make(map[string]any))
}

// PopScope exits the current scope, restoring prior bindings.
// The outermost scope is never popped.
func (rc *RenderContext) PopScope() {
	if len(rc.scopes) > 1 {
		rc.scopes = rc.scopes[:len(rc.scopes)-1]
	}
}

// Get resolves a variable innermost-scope first
func (rc *RenderContext) Get(name string) (any, bool) {
	for i := len(rc.scopes) - 1; i >= 0; i-- {
		if val, ok := rc.scopes[i][name]; ok {
			return val, true
		}
	}
	return nil, false
}

// Set binds a variable in the innermost scope
func (rc *RenderContext) Set(name string, value any) {
	rc.scopes[len(rc.scopes)-1][name] = value
}

// SetGlobal binds a variable in the outermost scope so it survives
// scope pops.
func (rc *RenderContext) SetGlobal(name string, value any) {
	rc.scopes[0][name] = value
}

// Has reports whether a variable is bound in any scope
func (rc *RenderContext) Has(name string) bool {
	_, ok := rc.Get(name)
	return ok
}

// Register storage

// Register returns the register value stored under the given key
func (rc *RenderContext) Register(key string) (any, bool) {
	val, ok := rc.registers[key]
	return val, ok
}

// SetRegister stores a register value under the given key
func (rc *RenderContext) SetRegister(key string, value any) {
	rc.registers[key] = value
}

// ResumeOffset returns the recorded resume cursor for a loop name,
// defaulting to zero.
func (rc *RenderContext) ResumeOffset(name string) int {
	offsets, ok := rc.registers[RegisterKeyForOffsets].(map[string]int)
	if !ok {
		return 0
	}
	return offsets[name]
}

// SetResumeOffset records the resume cursor for a loop name, creating
// the offset table lazily.
func (rc *RenderContext) SetResumeOffset(name string, offset int) {
	offsets, ok := rc.registers[RegisterKeyForOffsets].(map[string]int)
	if !ok {
		offsets = make(map[string]int)
		rc.registers[RegisterKeyForOffsets] = offsets
	}
	offsets[name] = offset
}

// Loop stack

// PushLoop pushes loop metadata onto the active-loop stack
func (rc *RenderContext) PushLoop(loop *ForLoop) {
	stack, _ := rc.registers[RegisterKeyLoopStack].([]*ForLoop)
	rc.registers[RegisterKeyLoopStack] = append(stack, loop)
}

// PopLoop pops the top loop metadata off the active-loop stack
func (rc *RenderContext) PopLoop() {
	stack, _ := rc.registers[RegisterKeyLoopStack].([]*ForLoop)
	if len(stack) > 0 {
		rc.registers[RegisterKeyLoopStack] = stack[:len(stack)-1]
	}
}

// CurrentLoop returns the innermost active loop's metadata, or nil
func (rc *RenderContext) CurrentLoop() *ForLoop {
	stack, _ := rc.registers[RegisterKeyLoopStack].([]*ForLoop)
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

// Interrupt mailbox

// PushInterrupt raises an interrupt
func (rc *RenderContext) PushInterrupt(i Interrupt) {
	rc.logger.Debug(LogMsgInterruptRaised, zap.String(LogFieldKind, i.String()))
	rc.interrupts = append(rc.interrupts, i)
}

// PopInterrupt consumes and returns the pending interrupt, or
// InterruptNone when the mailbox is empty.
func (rc *RenderContext) PopInterrupt() Interrupt {
	if len(rc.interrupts) == 0 {
		return InterruptNone
	}
	i := rc.interrupts[len(rc.interrupts)-1]
	rc.interrupts = rc.interrupts[:len(rc.interrupts)-1]
	rc.logger.Debug(LogMsgInterruptConsumed, zap.String(LogFieldKind, i.String()))
	return i
}

// PeekInterrupt returns the pending interrupt without consuming it
func (rc *RenderContext) PeekInterrupt() Interrupt {
	if len(rc.interrupts) == 0 {
		return InterruptNone
	}
	return rc.interrupts[len(rc.interrupts)-1]
}

// Interrupted reports whether an interrupt is pending
func (rc *RenderContext) Interrupted() bool {
	return len(rc.interrupts) > 0
}

// RendererConfig holds renderer configuration options
type RendererConfig struct {
	MaxDepth int // Maximum nesting depth (0 = unlimited)
}

// DefaultRendererConfig returns the default renderer configuration
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		MaxDepth: DefaultMaxDepth,
	}
}

// Renderer walks an AST and writes output into a shared buffer.
// Rendering is single-threaded, synchronous, and recursive: each
// node fully completes (or fails) before the next begins.
type Renderer struct {
	config RendererConfig
	funcs  *FuncRegistry
	logger *zap.Logger
}

// NewRenderer creates a new renderer with the given configuration
func NewRenderer(config RendererConfig, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgRendererCreated)

	funcs := NewFuncRegistry()
	RegisterBuiltinFuncs(funcs)

	return &Renderer{
		config: config,
		funcs:  funcs,
		logger: logger,
	}
}

// Render processes a root node and writes its output into buf
func (r *Renderer) Render(ctx context.Context, root *RootNode, rc *RenderContext, buf *strings.Builder) error {
	r.logger.Debug(LogMsgRenderStart)

	if err := r.RenderNodes(ctx, root.Children, rc, buf, 0); err != nil {
		return err
	}

	r.logger.Debug(LogMsgRenderEnd)
	return nil
}

// RenderNodes renders a node sequence into buf. Rendering stops early
// when an interrupt is pending so the signal surfaces to the nearest
// enclosing loop.
func (r *Renderer) RenderNodes(ctx context.Context, nodes []Node, rc *RenderContext, buf *strings.Builder, depth int) error {
	if r.config.MaxDepth > 0 && depth > r.config.MaxDepth {
		return NewRenderError(ErrMsgMaxDepthExceeded, StringValueEmpty, Position{})
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, node := range nodes {
		if rc.Interrupted() {
			return nil
		}
		if err := node.Render(ctx, r, rc, buf, depth); err != nil {
			return err
		}
	}

	return nil
}

// Evaluate evaluates an expression node against the render context.
// A nil expression evaluates to nil.
func (r *Renderer) Evaluate(expr ExprNode, rc *RenderContext) (any, error) {
	return NewExprEvaluator(r.funcs, rc).Evaluate(expr)
}

// EvaluateBool evaluates an expression and coerces it to a boolean
func (r *Renderer) EvaluateBool(expr ExprNode, rc *RenderContext) (bool, error) {
	return NewExprEvaluator(r.funcs, rc).EvaluateBool(expr)
}

// RenderError represents a render-time error with tag context
type RenderError struct {
	Message  string
	TagName  string
	Position Position
	Cause    error
}

// NewRenderError creates a new render error
func NewRenderError(message, tagName string, pos Position) *RenderError {
	return &RenderError{
		Message:  message,
		TagName:  tagName,
		Position: pos,
	}
}

// NewRenderErrorWithCause creates a new render error with a cause
func NewRenderErrorWithCause(message, tagName string, pos Position, cause error) *RenderError {
	return &RenderError{
		Message:  message,
		TagName:  tagName,
		Position: pos,
		Cause:    cause,
	}
}

// Error implements the error interface
func (e *RenderError) Error() string {
	result := e.Message
	if e.TagName != StringValueEmpty {
		result = result + " in tag '" + e.TagName + "' at " + e.Position.String()
	} else {
		result = result + " at " + e.Position.String()
	}
	if e.Cause != nil {
		result = result + ": " + e.Cause.Error()
	}
	return result
}

// Unwrap returns the underlying cause error
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Renderer error message constants
const (
	ErrMsgMaxDepthExceeded = "maximum nesting depth exceeded"
	ErrMsgEvalFailed       = "expression evaluation failed"
)
