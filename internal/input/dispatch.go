package input

import "github.com/hailam/chessboard/internal/view"

// Target is anything that can map a screen point to a node path.
// view.View implementations satisfy it.
type Target interface {
	HitTest(x, y int) []*view.Node
}

// Stack hit tests several targets, topmost last.
type Stack []Target

// HitTest returns the path of the topmost target under (x, y).
func (s Stack) HitTest(x, y int) []*view.Node {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == nil {
			continue
		}
		if path := s[i].HitTest(x, y); path != nil {
			return path
		}
	}
	return nil
}

// Dispatcher turns presses and releases at screen points into node events.
//
// For one physical click the order is: pointer down on the pressed nodes,
// pointer up on the released nodes, the window's release listeners, then a
// click on the nearest node both the press and the release hit.
type Dispatcher struct {
	window  *Window
	pressed []*view.Node
}

// NewDispatcher creates a dispatcher that reports releases to w.
func NewDispatcher(w *Window) *Dispatcher {
	return &Dispatcher{window: w}
}

// Press delivers a pointer down at (x, y).
func (d *Dispatcher) Press(t Target, x, y int) {
	d.pressed = nil
	if t == nil {
		return
	}
	path := t.HitTest(x, y)
	d.pressed = path
	view.Dispatch(path, &view.Event{Type: view.PointerDown, X: x, Y: y})
}

// Release delivers a pointer up at (x, y). The window hears the release
// even when no node is under the pointer.
func (d *Dispatcher) Release(t Target, x, y int) {
	var path []*view.Node
	if t != nil {
		path = t.HitTest(x, y)
	}
	view.Dispatch(path, &view.Event{Type: view.PointerUp, X: x, Y: y})

	if d.window != nil {
		d.window.Release()
	}

	pressed := d.pressed
	d.pressed = nil
	if i := commonAncestor(pressed, path); i >= 0 {
		view.Dispatch(path[i:], &view.Event{Type: view.Click, X: x, Y: y})
	}
}

// commonAncestor returns the index in up of the innermost node that is also
// in down, or -1. Keyed nodes match by ID so a re-render between press and
// release still yields a click.
func commonAncestor(down, up []*view.Node) int {
	for i, n := range up {
		for _, m := range down {
			if n == m || (n.ID != "" && n.ID == m.ID) {
				return i
			}
		}
	}
	return -1
}
