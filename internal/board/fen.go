package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the position string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// EmptyFEN is the occupancy field of a board with no pieces.
const EmptyFEN = "8/8/8/8/8/8/8/8"

// DecodeError reports a malformed position string.
type DecodeError struct {
	Position string // the full input
	Offset   int    // byte offset of the offending character in the occupancy field
	Char     rune
	Reason   string
}

func (e *DecodeError) Error() string {
	if e.Char == 0 {
		return fmt.Sprintf("invalid FEN %q: %s", e.Position, e.Reason)
	}
	return fmt.Sprintf("invalid FEN %q: %s at offset %d (%q)", e.Position, e.Reason, e.Offset, e.Char)
}

// Grid is the decoded occupancy of a board in row-major order.
// Row 0 is rank 8 and column 0 is file a.
//
// Decode does not force 8 rows of 8 cells; see Complete.
type Grid [][]Piece

// Decode parses the occupancy field of a position string into a Grid.
//
// Only the text before the first space is read; side to move, castling
// rights and the clocks are ignored. Ranks are separated by '/', digits
// 1-8 expand to that many empty squares and the twelve letters PNBRQK /
// pnbrqk are pieces. Anything else is a *DecodeError.
//
// Rank and file counts are not validated: "8/8" decodes to two rows and
// "4" to a single row of four empty squares.
func Decode(position string) (Grid, error) {
	field, _, _ := strings.Cut(position, " ")
	if field == "" {
		return nil, &DecodeError{Position: position, Reason: "empty piece placement"}
	}

	grid := make(Grid, 0, 8)
	row := make([]Piece, 0, 8)

	for i, c := range field {
		if c == '/' {
			grid = append(grid, row)
			row = make([]Piece, 0, 8)
			continue
		}

		if c < 0x80 {
			if p := PieceFromChar(byte(c)); p.IsPiece() {
				row = append(row, p)
				continue
			}
		}

		n, err := strconv.Atoi(string(c))
		if err != nil {
			return nil, &DecodeError{Position: position, Offset: i, Char: c, Reason: "expecting piece or integer"}
		}
		if n < 1 || n > 8 {
			return nil, &DecodeError{Position: position, Offset: i, Char: c, Reason: "empty run out of range 1-8"}
		}
		for j := 0; j < n; j++ {
			row = append(row, NoPiece)
		}
	}

	// Flush final row
	grid = append(grid, row)

	return grid, nil
}

// Complete reports whether the grid has exactly 8 rows of 8 cells.
func (g Grid) Complete() bool {
	if len(g) != 8 {
		return false
	}
	for _, row := range g {
		if len(row) != 8 {
			return false
		}
	}
	return true
}

// At returns the occupant at grid row r, column c. ok is false when the
// cell does not exist in a short or missing row.
func (g Grid) At(r, c int) (p Piece, ok bool) {
	if r < 0 || r >= len(g) || c < 0 || c >= len(g[r]) {
		return NoPiece, false
	}
	return g[r][c], true
}

// PieceAt returns the occupant of sq, reading the grid as rank 8 first.
func (g Grid) PieceAt(sq Square) Piece {
	p, _ := g.At(7-sq.Rank(), sq.File())
	return p
}

// Count returns the number of cells across all rows.
func (g Grid) Count() int {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	return n
}

// String encodes the grid back into an occupancy field.
func (g Grid) String() string {
	var sb strings.Builder

	for r, row := range g {
		empty := 0
		for _, piece := range row {
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r < len(g)-1 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}
