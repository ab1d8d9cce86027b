package liquify

import (
	"github.com/itsatony/go-liquify/internal"
)

// Context holds template variables and per-context render state: the
// variable scope stack, the register storage backing resumable loops,
// and the interrupt mailbox. A Context may be reused across render
// passes to carry loop resume cursors forward.
//
// No internal locking is provided; a Context assumes at most one
// active render at a time.
type Context struct {
	rc *internal.RenderContext
}

// NewContext creates a new render context seeded with the given
// variables. A nil map is treated as empty.
func NewContext(data map[string]any) *Context {
	return &Context{
		rc: internal.NewRenderContext(data, nil),
	}
}

// Get retrieves a variable, innermost scope first.
func (c *Context) Get(name string) (any, bool) {
	return c.rc.Get(name)
}

// Set binds a variable in the current scope.
func (c *Context) Set(name string, value any) {
	c.rc.Set(name, value)
}

// SetGlobal binds a variable in the outermost scope so it survives
// scope exits.
func (c *Context) SetGlobal(name string, value any) {
	c.rc.SetGlobal(name, value)
}

// Has reports whether a variable is bound in any scope.
func (c *Context) Has(name string) bool {
	return c.rc.Has(name)
}
