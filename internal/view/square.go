package view

import (
	"github.com/hailam/chessboard/internal/assets"
	"github.com/hailam/chessboard/internal/board"
)

// SquareHandlers are the callbacks a square node forwards pointer events to.
type SquareHandlers struct {
	Click       func(sq board.Square, p board.Piece)
	PointerDown func(sq board.Square)
	PointerUp   func(sq board.Square)
}

// Skin holds the colors and imagery used to build nodes.
type Skin struct {
	Theme  *Theme
	Assets assets.Lookup // may be nil; pieces then render as text
}

// DefaultSkin returns a skin with the default theme and no imagery.
func DefaultSkin() Skin {
	return Skin{Theme: DefaultTheme()}
}

func (s Skin) theme() *Theme {
	if s.Theme == nil {
		return DefaultTheme()
	}
	return s.Theme
}

// RenderSquare builds the node for one square: a fixed size, non-selectable
// cell with the shade's background and, for an occupied square, the piece
// image. The node only reads its arguments; all state changes happen in h.
func (s Skin) RenderSquare(sq board.Square, p board.Piece, shade board.Shade, h SquareHandlers) *Node {
	n := &Node{
		Tag:     "div",
		ID:      sq.String(),
		Classes: []string{"square", shade.String()},
		Style: Style{
			Display:    InlineBlock,
			Width:      SquareSize,
			Height:     SquareSize,
			Background: s.theme().SquareColor(shade),
		},
		On: Handlers{
			Click: func(ev *Event) {
				if h.Click != nil {
					h.Click(sq, p)
				}
			},
			PointerDown: func(ev *Event) {
				ev.PreventDefault()
				if h.PointerDown != nil {
					h.PointerDown(sq)
				}
			},
			PointerUp: func(ev *Event) {
				ev.PreventDefault()
				if h.PointerUp != nil {
					h.PointerUp(sq)
				}
			},
		},
	}

	if p.IsPiece() {
		img := &Node{
			Tag:  "img",
			Text: p.String(),
			On: Handlers{
				// Avoid image drag.
				PointerDown: func(ev *Event) { ev.PreventDefault() },
			},
		}
		if s.Assets != nil {
			img.Image = s.Assets.Lookup(p)
		}
		n.Children = []*Node{img}
	}

	return n
}
