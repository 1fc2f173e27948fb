package widget

import (
	"log"

	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/input"
	"github.com/hailam/chessboard/internal/view"
)

// Board is one mounted board widget.
//
// A board is not safe for concurrent use: create it, mutate it and feed it
// input from a single goroutine. Boards share nothing with each other, so
// any number can live in the same window.
type Board struct {
	config      Config
	container   *view.Container
	position    string
	orientation board.Orientation
	dragging    board.Square
	view        view.View

	// Bound once so every render hands out the same callbacks.
	handlers view.SquareHandlers

	listener input.ListenerID
	attached bool
}

// Create mounts a new board. It fails when the mount target cannot be
// resolved, the config is incomplete, the initial position does not decode
// or the renderer rejects the first tree. On success the board listens for
// releases on cfg.Window until Teardown.
func Create(m Mount, cfg Config) (*Board, error) {
	container, err := m.resolve()
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	b := &Board{
		config:      cfg,
		container:   container,
		position:    cfg.Position,
		orientation: cfg.Orientation,
		dragging:    board.NoSquare,
	}
	b.handlers = view.SquareHandlers{
		Click:       b.handleClick,
		PointerDown: b.handlePointerDown,
		PointerUp:   b.handlePointerUp,
	}

	tree, err := b.config.Skin.RenderBoard(b)
	if err != nil {
		return nil, err
	}
	b.view, err = cfg.Renderer.Mount(container, tree)
	if err != nil {
		return nil, err
	}

	b.listener = cfg.Window.AddReleaseListener(b.handleRelease)
	b.attached = true

	log.Printf("[BOARD] Mounted on %q (orientation %v)", container.ID, b.orientation)
	return b, nil
}

// Position returns the committed position string.
func (b *Board) Position() string {
	return b.position
}

// SetPosition decodes fen and re-renders the board. On error the committed
// position and view are left unchanged.
func (b *Board) SetPosition(fen string) error {
	return b.commit(fen, b.orientation)
}

// Orientation returns the side shown at the bottom of the board.
func (b *Board) Orientation() board.Orientation {
	return b.orientation
}

// SetOrientation changes the viewing side and re-renders the board.
func (b *Board) SetOrientation(o board.Orientation) error {
	if !o.IsValid() {
		return board.ErrInvalidOrientation
	}
	return b.commit(b.position, o)
}

// Flip shows the board from the other side.
func (b *Board) Flip() error {
	return b.SetOrientation(b.orientation.Flip())
}

// Dragging returns the square the current drag started on.
func (b *Board) Dragging() (board.Square, bool) {
	return b.dragging, b.dragging != board.NoSquare
}

// SquareHandlers returns the callbacks square nodes forward events to.
func (b *Board) SquareHandlers() view.SquareHandlers {
	return b.handlers
}

// View returns the last committed view.
func (b *Board) View() view.View {
	return b.view
}

// Container returns the container the board is mounted in.
func (b *Board) Container() *view.Container {
	return b.container
}

// Render rebuilds the tree from the committed state and patches the view.
func (b *Board) Render() error {
	return b.commit(b.position, b.orientation)
}

// Teardown stops listening for window releases. Calling it again is a no-op.
// The board can still be mutated afterwards but no longer hears releases
// outside its squares.
func (b *Board) Teardown() {
	if !b.attached {
		log.Printf("[BOARD] Teardown of %q called twice", b.container.ID)
		return
	}
	b.config.Window.RemoveReleaseListener(b.listener)
	b.attached = false
	b.dragging = board.NoSquare
	log.Printf("[BOARD] Torn down %q", b.container.ID)
}

// commit renders (position, orientation) and, once the renderer accepts
// the tree, makes it the board's state.
func (b *Board) commit(position string, o board.Orientation) error {
	next := snapshot{position: position, orientation: o, handlers: b.handlers}
	tree, err := b.config.Skin.RenderBoard(next)
	if err != nil {
		return err
	}
	v, err := b.config.Renderer.Patch(b.view, tree)
	if err != nil {
		return err
	}
	b.position = position
	b.orientation = o
	b.view = v
	return nil
}

// snapshot is a candidate state rendered before it is committed.
type snapshot struct {
	position    string
	orientation board.Orientation
	handlers    view.SquareHandlers
}

func (s snapshot) Position() string                    { return s.position }
func (s snapshot) Orientation() board.Orientation      { return s.orientation }
func (s snapshot) SquareHandlers() view.SquareHandlers { return s.handlers }
