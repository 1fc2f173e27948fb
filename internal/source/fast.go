package source

import (
	"github.com/dylhunn/dragontoothmg"
	"github.com/hailam/chessboard/internal/board"
)

// Fast is a Source backed by a bitboard move generator. It keeps no game
// record and is cheap enough to run one per connection.
type Fast struct {
	start string
	board dragontoothmg.Board
}

// NewFast starts from fen. A bare piece placement starts with white to
// move.
func NewFast(fen string) (*Fast, error) {
	full, err := completeFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Fast{start: full, board: dragontoothmg.ParseFen(full)}, nil
}

// FEN returns the current position string.
func (f *Fast) FEN() string {
	return f.board.ToFen()
}

// Turn returns the side to move.
func (f *Fast) Turn() board.Color {
	if f.board.Wtomove {
		return board.White
	}
	return board.Black
}

// Move plays from-to if it is legal. Both square numberings start at a1.
func (f *Fast) Move(from, to board.Square) bool {
	for _, m := range f.board.GenerateLegalMoves() {
		if m.From() != uint8(from) || m.To() != uint8(to) {
			continue
		}
		if p := m.Promote(); p != 0 && p != dragontoothmg.Queen {
			continue
		}
		f.board.Apply(m)
		return true
	}
	return false
}

// Reset returns to the starting position.
func (f *Fast) Reset() {
	f.board = dragontoothmg.ParseFen(f.start)
}
