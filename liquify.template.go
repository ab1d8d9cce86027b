package liquify

import (
	"context"
	"sort"
	"strings"

	"github.com/itsatony/go-liquify/internal"
)

// Template is a parsed template ready for rendering.
type Template struct {
	root   *internal.RootNode
	engine *Engine
}

// Render renders the template with the given data in a fresh context.
func (t *Template) Render(ctx context.Context, data map[string]any) (string, error) {
	return t.RenderContext(ctx, NewContext(data))
}

// RenderContext renders the template into an existing context.
// Register state (including for-loop resume cursors) carries over
// between passes, which is what makes "offset: continue" work across
// repeated renders of the same context.
//
// A context supports one active render at a time; concurrent renders
// of the same context must be serialized by the caller.
func (t *Template) RenderContext(ctx context.Context, c *Context) (string, error) {
	if c == nil {
		return "", NewRenderError(internal.NewRenderError(ErrMsgNilContext, "", Position{}))
	}

	var buf strings.Builder
	if err := t.engine.renderer.Render(ctx, t.root, c.rc, &buf); err != nil {
		return "", wrapRenderError(err)
	}
	return buf.String(), nil
}

// Variables returns the sorted root identifier names the template's
// expressions reference. This is a static analysis over the parsed
// tree; nothing is evaluated. The well-known forloop variable is
// excluded since loops bind it themselves.
func (t *Template) Variables() []string {
	found := make(map[string]struct{})
	internal.WalkExpressions(t.root.Children, func(expr internal.ExprNode) {
		internal.CollectIdentifiers(expr, found)
	})
	delete(found, internal.VarNameForLoop)

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
