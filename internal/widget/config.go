// Package widget implements the interactive board: it holds the position,
// orientation and drag state, re-renders on every change and turns square
// pointer events into click, drag and drop notifications for the host.
package widget

import (
	"errors"

	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/input"
	"github.com/hailam/chessboard/internal/view"
)

var (
	ErrNoPosition = errors.New("widget: config has no position")
	ErrNoRenderer = errors.New("widget: config has no renderer")
	ErrNoWindow   = errors.New("widget: config has no window")
)

// DragDecision is the host's answer to a drag start.
type DragDecision uint8

const (
	DragDefault DragDecision = iota // no opinion, the drag starts
	DragAllow
	DragDeny // the only answer that vetoes the drag
)

// Config is the set of options a board is created with.
//
// Hooks are optional and run synchronously on the goroutine delivering
// input. A panic in a hook is not recovered: it unwinds through the event
// dispatch and can abort the render or dispatch in progress, so hooks that
// want graceful degradation must not panic.
type Config struct {
	// Position is the initial position string. Required.
	Position string
	// Orientation defaults to board.WhiteSide.
	Orientation board.Orientation

	// OnClick is called for every click on a square, with NoPiece for an
	// empty square. Clicks never change the drag state.
	OnClick func(sq board.Square, p board.Piece)
	// OnDragStart may veto a drag by returning DragDeny.
	OnDragStart func(sq board.Square) DragDecision
	// OnDragEnd is called on every pointer release anywhere in the window,
	// whether or not a drag was in progress.
	OnDragEnd func()
	// OnDrop is called when a drag ends over a square, including the square
	// it started on.
	OnDrop func(from, to board.Square)

	Renderer view.Renderer
	Window   *input.Window
	Skin     view.Skin
}

func (c *Config) validate() error {
	if c.Position == "" {
		return ErrNoPosition
	}
	if c.Renderer == nil {
		return ErrNoRenderer
	}
	if c.Window == nil {
		return ErrNoWindow
	}
	if !c.Orientation.IsValid() {
		return board.ErrInvalidOrientation
	}
	return nil
}

// Mount identifies the container a board is mounted into, either directly
// or by a locator resolved against a document.
type Mount struct {
	container *view.Container
	doc       *view.Document
	locator   string
}

// MountContainer mounts into c.
func MountContainer(c *view.Container) Mount {
	return Mount{container: c}
}

// MountLocator mounts into the single container of doc matching locator.
func MountLocator(doc *view.Document, locator string) Mount {
	return Mount{doc: doc, locator: locator}
}

func (m Mount) resolve() (*view.Container, error) {
	if m.container != nil {
		return m.container, nil
	}
	if m.doc == nil {
		return nil, &view.MountResolutionError{Locator: m.locator}
	}
	return m.doc.Resolve(m.locator)
}
