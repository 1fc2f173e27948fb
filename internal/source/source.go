// Package source supplies positions to board hosts. A source knows the
// rules; the board widget does not.
package source

import (
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/hailam/chessboard/internal/board"
)

// fenDefaults fills the fields a position string may leave out: white to
// move, no castling, no en passant square, fresh clocks.
var fenDefaults = []string{"w", "-", "-", "0", "1"}

// Source is a game a host drives from board drops.
type Source interface {
	// FEN returns the current position string.
	FEN() string
	// Turn returns the side to move.
	Turn() board.Color
	// Move plays from-to if it is legal, promoting to a queen when the
	// move promotes. It reports whether a move was played.
	Move(from, to board.Square) bool
	// Reset returns to the starting position.
	Reset()
}

// CanDrag reports whether the piece on sq belongs to the side to move.
func CanDrag(s Source, sq board.Square) bool {
	grid, err := board.Decode(s.FEN())
	if err != nil {
		return false
	}
	p := grid.PieceAt(sq)
	return p.IsPiece() && p.Color() == s.Turn()
}

// completeFEN returns fen with every missing field after the piece
// placement filled from fenDefaults. It rejects position strings the rule
// engines would misread.
func completeFEN(fen string) (string, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return "", fmt.Errorf("source: empty position")
	}
	if len(fields) > 1+len(fenDefaults) {
		return "", fmt.Errorf("source: position %q has %d fields", fen, len(fields))
	}
	grid, err := board.Decode(fields[0])
	if err != nil {
		return "", err
	}
	if !grid.Complete() {
		return "", fmt.Errorf("source: position %q is not a full 8x8 board", fen)
	}
	for _, c := range []board.Color{board.White, board.Black} {
		if n := countPiece(grid, board.NewPiece(board.King, c)); n != 1 {
			return "", fmt.Errorf("source: position %q has %d %v kings", fen, n, c)
		}
	}
	fields = append(fields, fenDefaults[len(fields)-1:]...)
	full := strings.Join(fields, " ")
	if _, err := chess.FEN(full); err != nil {
		return "", fmt.Errorf("source: position %q: %w", fen, err)
	}
	return full, nil
}

func countPiece(grid board.Grid, p board.Piece) int {
	n := 0
	for sq := board.Square(0); sq < 64; sq++ {
		if grid.PieceAt(sq) == p {
			n++
		}
	}
	return n
}
