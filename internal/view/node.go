// Package view builds the declarative tree for the board widget and
// defines the contract of the renderers that commit it to a screen.
package view

import (
	"image/color"

	"github.com/hailam/chessboard/internal/assets"
)

// Display selects how a node lays out its children.
type Display uint8

const (
	Block       Display = iota // children fill the node
	InlineBlock                // fixed size cell inside a grid
	Grid                       // children flow into Style.Columns columns
)

// Style holds the visual properties of a node, in logical units.
type Style struct {
	Display    Display
	Width      int
	Height     int
	MaxWidth   int
	Columns    int
	Gap        int
	Background color.RGBA
	Selectable bool
}

// EventType identifies a pointer event.
type EventType uint8

const (
	PointerDown EventType = iota
	PointerUp
	Click
)

func (t EventType) String() string {
	switch t {
	case PointerDown:
		return "pointerdown"
	case PointerUp:
		return "pointerup"
	case Click:
		return "click"
	default:
		return "unknown"
	}
}

// Event is a pointer event travelling from the hit node up to the root.
type Event struct {
	Type          EventType
	X, Y          int
	Target        *Node // innermost node under the pointer
	CurrentTarget *Node // node whose handler is running

	defaultPrevented bool
	stopped          bool
}

// PreventDefault suppresses the renderer's default action, such as dragging
// an image or selecting text.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation keeps the event from reaching ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// EventHandler reacts to an event on a node.
type EventHandler func(ev *Event)

// Handlers are the event hooks attached to a node. Nil hooks are skipped.
type Handlers struct {
	Click       EventHandler
	PointerDown EventHandler
	PointerUp   EventHandler
}

func (h *Handlers) forType(t EventType) EventHandler {
	switch t {
	case PointerDown:
		return h.PointerDown
	case PointerUp:
		return h.PointerUp
	case Click:
		return h.Click
	default:
		return nil
	}
}

// Node is one element of the declarative tree.
type Node struct {
	Tag      string
	ID       string
	Classes  []string
	Style    Style
	Image    *assets.Image
	Text     string // fallback label when Image is nil
	On       Handlers
	Children []*Node
}

// HasClass reports whether the node carries class c.
func (n *Node) HasClass(c string) bool {
	for _, cl := range n.Classes {
		if cl == c {
			return true
		}
	}
	return false
}

// Walk calls fn for n and every descendant in document order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns the first node with the given id.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// Dispatch delivers ev along path, innermost node first, running each node's
// handler for ev.Type until one stops propagation.
func Dispatch(path []*Node, ev *Event) {
	if len(path) == 0 {
		return
	}
	ev.Target = path[0]
	for _, n := range path {
		h := n.On.forType(ev.Type)
		if h == nil {
			continue
		}
		ev.CurrentTarget = n
		h(ev)
		if ev.stopped {
			return
		}
	}
}
