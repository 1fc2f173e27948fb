package widget

import "github.com/hailam/chessboard/internal/board"

// Drag state machine:
//
//	idle --down(sq)--> dragging(sq)     unless OnDragStart returns DragDeny
//	dragging(from) --up(sq)--> idle     OnDrop(from, sq)
//	any --window release--> idle        OnDragEnd()
//
// A release over a square runs the square's up handler before the window
// listener, so OnDrop comes before OnDragEnd for the same gesture.

func (b *Board) handlePointerDown(sq board.Square) {
	if b.config.OnDragStart != nil && b.config.OnDragStart(sq) == DragDeny {
		return
	}
	b.dragging = sq
}

func (b *Board) handlePointerUp(sq board.Square) {
	from := b.dragging
	b.dragging = board.NoSquare
	if from == board.NoSquare {
		return
	}
	if b.config.OnDrop != nil {
		b.config.OnDrop(from, sq)
	}
}

func (b *Board) handleRelease() {
	b.dragging = board.NoSquare
	if b.config.OnDragEnd != nil {
		b.config.OnDragEnd()
	}
}

func (b *Board) handleClick(sq board.Square, p board.Piece) {
	if b.config.OnClick != nil {
		b.config.OnClick(sq, p)
	}
}
