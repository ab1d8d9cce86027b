package internal

import "fmt"

// ForLoop exposes loop-progress metadata to the expression layer as
// the well-known "forloop" variable. One instance exists per active
// nesting level per render pass; its lifetime is strictly scoped to
// that pass.
type ForLoop struct {
	length int
	index0 int
	parent *ForLoop // Enclosing active loop, nil at the outermost level
}

// NewForLoop creates loop metadata for a segment of the given length,
// linked to the enclosing loop's metadata (nil when not nested).
func NewForLoop(length int, parent *ForLoop) *ForLoop {
	return &ForLoop{
		length: length,
		parent: parent,
	}
}

// Length returns the segment length, constant through the pass
func (l *ForLoop) Length() int { return l.length }

// Index0 returns the zero-based index of the current element.
// It doubles as the iteration counter once the pass ends.
func (l *ForLoop) Index0() int { return l.index0 }

// Index returns the one-based index of the current element
func (l *ForLoop) Index() int { return l.index0 + 1 }

// RIndex returns the position from the end: length - index0
func (l *ForLoop) RIndex() int { return l.length - l.index0 }

// RIndex0 returns the zero-based position from the end
func (l *ForLoop) RIndex0() int { return l.length - l.index0 - 1 }

// First reports whether the current element is the first
func (l *ForLoop) First() bool { return l.index0 == 0 }

// Last reports whether the current element is the last
func (l *ForLoop) Last() bool { return l.index0 == l.length-1 }

// Parent returns the enclosing loop's metadata, or nil
func (l *ForLoop) Parent() *ForLoop { return l.parent }

// Increment advances the iteration counter by one element
func (l *ForLoop) Increment() { l.index0++ }

// Loop metadata field name constants (expression-layer surface)
const (
	LoopFieldLength     = "length"
	LoopFieldIndex      = "index"
	LoopFieldIndex0     = "index0"
	LoopFieldRIndex     = "rindex"
	LoopFieldRIndex0    = "rindex0"
	LoopFieldFirst      = "first"
	LoopFieldLast       = "last"
	LoopFieldParentLoop = "parentloop"
)

// Field resolves a metadata field by name for dotted access
// (e.g., forloop.index). Unknown fields resolve to nil.
func (l *ForLoop) Field(name string) (any, error) {
	switch name {
	case LoopFieldLength:
		return l.Length(), nil
	case LoopFieldIndex:
		return l.Index(), nil
	case LoopFieldIndex0:
		return l.Index0(), nil
	case LoopFieldRIndex:
		return l.RIndex(), nil
	case LoopFieldRIndex0:
		return l.RIndex0(), nil
	case LoopFieldFirst:
		return l.First(), nil
	case LoopFieldLast:
		return l.Last(), nil
	case LoopFieldParentLoop:
		if l.parent == nil {
			return nil, nil
		}
		return l.parent, nil
	default:
		return nil, nil
	}
}

// String returns a debug representation
func (l *ForLoop) String() string {
	return fmt.Sprintf("ForLoop{index0=%d, length=%d, nested=%t}", l.index0, l.length, l.parent != nil)
}
