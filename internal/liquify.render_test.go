package internal

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRenderContext_Scopes(t *testing.T) {
	rc := NewRenderContext(map[string]any{"name": "outer"}, zap.NewNop())

	val, ok := rc.Get("name")
	require.True(t, ok)
	assert.Equal(t, "outer", val)

	rc.PushScope()
	rc.Set("name", "inner")
	rc.Set("local", 1)

	val, _ = rc.Get("name")
	assert.Equal(t, "inner", val)
	assert.True(t, rc.Has("local"))

	rc.PopScope()

	val, _ = rc.Get("name")
	assert.Equal(t, "outer", val)
	assert.False(t, rc.Has("local"))
}

func TestRenderContext_OutermostScopeNeverPops(t *testing.T) {
	rc := NewRenderContext(map[string]any{"keep": true}, zap.NewNop())

	rc.PopScope()
	rc.PopScope()

	assert.True(t, rc.Has("keep"))
	rc.Set("still", "works")
	assert.True(t, rc.Has("still"))
}

func TestRenderContext_SetGlobal(t *testing.T) {
	rc := NewRenderContext(nil, zap.NewNop())

	rc.PushScope()
	rc.SetGlobal("g", 42)
	rc.PopScope()

	val, ok := rc.Get("g")
	require.True(t, ok)
	assert.Equal(t, 42, val)
}

func TestRenderContext_MissingVariable(t *testing.T) {
	rc := NewRenderContext(nil, zap.NewNop())

	val, ok := rc.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestRenderContext_Registers(t *testing.T) {
	rc := NewRenderContext(nil, zap.NewNop())

	_, ok := rc.Register("key")
	assert.False(t, ok)

	rc.SetRegister("key", "value")
	val, ok := rc.Register("key")
	require.True(t, ok)
	assert.Equal(t, "value", val)
}

func TestRenderContext_ResumeOffsets(t *testing.T) {
	rc := NewRenderContext(nil, zap.NewNop())

	// Unknown loops start at zero
	assert.Equal(t, 0, rc.ResumeOffset("x-items"))

	rc.SetResumeOffset("x-items", 5)
	assert.Equal(t, 5, rc.ResumeOffset("x-items"))

	// Distinct loop names have independent cursors
	rc.SetResumeOffset("y-other", 2)
	assert.Equal(t, 5, rc.ResumeOffset("x-items"))
	assert.Equal(t, 2, rc.ResumeOffset("y-other"))

	rc.SetResumeOffset("x-items", 8)
	assert.Equal(t, 8, rc.ResumeOffset("x-items"))
}

func TestRenderContext_LoopStack(t *testing.T) {
	rc := NewRenderContext(nil, zap.NewNop())

	assert.Nil(t, rc.CurrentLoop())

	outer := NewForLoop(2, nil)
	rc.PushLoop(outer)
	assert.Same(t, outer, rc.CurrentLoop())

	inner := NewForLoop(3, outer)
	rc.PushLoop(inner)
	assert.Same(t, inner, rc.CurrentLoop())

	rc.PopLoop()
	assert.Same(t, outer, rc.CurrentLoop())

	rc.PopLoop()
	assert.Nil(t, rc.CurrentLoop())

	// Popping an empty stack is harmless
	rc.PopLoop()
	assert.Nil(t, rc.CurrentLoop())
}

func TestRenderContext_Interrupts(t *testing.T) {
	rc := NewRenderContext(nil, zap.NewNop())

	assert.False(t, rc.Interrupted())
	assert.Equal(t, InterruptNone, rc.PeekInterrupt())
	assert.Equal(t, InterruptNone, rc.PopInterrupt())

	rc.PushInterrupt(InterruptBreak)
	assert.True(t, rc.Interrupted())
	assert.Equal(t, InterruptBreak, rc.PeekInterrupt())
	assert.True(t, rc.Interrupted())

	assert.Equal(t, InterruptBreak, rc.PopInterrupt())
	assert.False(t, rc.Interrupted())
}

func TestInterrupt_String(t *testing.T) {
	assert.Equal(t, InterruptNameNone, InterruptNone.String())
	assert.Equal(t, InterruptNameBreak, InterruptBreak.String())
	assert.Equal(t, InterruptNameContinue, InterruptContinue.String())
}

func TestRenderer_Render_TextAndOutput(t *testing.T) {
	data := map[string]any{"name": "World"}
	out := renderSource(t, SyntaxLenient, "Hello, {{ name }}!", data)
	assert.Equal(t, "Hello, World!", out)
}

func TestRenderer_Render_MissingVariableRendersEmpty(t *testing.T) {
	out := renderSource(t, SyntaxLenient, "[{{ missing }}]", nil)
	assert.Equal(t, "[]", out)
}

func TestRenderer_Render_ContextCancellation(t *testing.T) {
	root, err := newTestParser(t, SyntaxLenient, "{% for x in items %}{{ x }}{% endfor %}").Parse()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	renderer := NewRenderer(DefaultRendererConfig(), zap.NewNop())
	rc := NewRenderContext(map[string]any{"items": []any{"a"}}, zap.NewNop())
	var buf strings.Builder

	err = renderer.Render(ctx, root, rc, &buf)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderer_Render_MaxDepthExceeded(t *testing.T) {
	// Deeply nested ifs blow past a tiny MaxDepth
	source := strings.Repeat("{% if true %}", 5) + "x" + strings.Repeat("{% endif %}", 5)
	root, err := newTestParser(t, SyntaxLenient, source).Parse()
	require.NoError(t, err)

	renderer := NewRenderer(RendererConfig{MaxDepth: 3}, zap.NewNop())
	rc := NewRenderContext(nil, zap.NewNop())
	var buf strings.Builder

	err = renderer.Render(context.Background(), root, rc, &buf)
	require.Error(t, err)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrMsgMaxDepthExceeded, renderErr.Message)
}

func TestRenderer_RenderNodes_StopsOnPendingInterrupt(t *testing.T) {
	rc := NewRenderContext(nil, zap.NewNop())
	rc.PushInterrupt(InterruptBreak)

	renderer := NewRenderer(DefaultRendererConfig(), zap.NewNop())
	var buf strings.Builder

	nodes := []Node{NewTextNode("never", Position{})}
	require.NoError(t, renderer.RenderNodes(context.Background(), nodes, rc, &buf, 0))
	assert.Empty(t, buf.String())
}

func TestRenderError_Unwrap(t *testing.T) {
	cause := NewCoercionError("x")
	err := NewRenderErrorWithCause(ErrMsgEvalFailed, TagNameFor, Position{Line: 1, Column: 1}, cause)

	var coercionErr *CoercionError
	assert.ErrorAs(t, err, &coercionErr)
	assert.Contains(t, err.Error(), TagNameFor)
}
