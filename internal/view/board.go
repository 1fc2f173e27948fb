package view

import "github.com/hailam/chessboard/internal/board"

// Source is the state a board tree is built from.
type Source interface {
	Position() string
	Orientation() board.Orientation
	SquareHandlers() SquareHandlers
}

// RenderBoard decodes the source's position and builds the board tree: an
// 8-column grid with no gaps holding one square node per cell in reading
// order.
//
// For BlackSide the rows are reversed and each row is reversed, so the
// cell at display (r, c) is grid cell (7-r, 7-c) of a full board. Cells of
// overlong rows that land outside the 8x8 display are dropped and short
// rows contribute fewer cells, so an incomplete grid yields fewer than 64
// square nodes.
func (s Skin) RenderBoard(src Source) (*Node, error) {
	grid, err := board.Decode(src.Position())
	if err != nil {
		return nil, err
	}

	o := src.Orientation()
	rows := displayRows(grid, o)
	h := src.SquareHandlers()

	root := &Node{
		Tag:     "div",
		Classes: []string{"board"},
		Style: Style{
			Display:  Grid,
			Columns:  BoardColumns,
			Gap:      0,
			MaxWidth: BoardMaxSize,
		},
		Children: make([]*Node, 0, 64),
	}

	for r, row := range rows {
		for c, piece := range row {
			sq := board.SquareAt(r, c, o)
			if sq == board.NoSquare {
				continue
			}
			root.Children = append(root.Children, s.RenderSquare(sq, piece, board.ShadeAt(r, c), h))
		}
	}

	return root, nil
}

// displayRows returns the grid rows in the order they are shown under o.
// The decoded grid is not modified.
func displayRows(g board.Grid, o board.Orientation) [][]board.Piece {
	if o != board.BlackSide {
		return g
	}
	rows := make([][]board.Piece, len(g))
	for i, row := range g {
		rev := make([]board.Piece, len(row))
		for j, p := range row {
			rev[len(row)-1-j] = p
		}
		rows[len(g)-1-i] = rev
	}
	return rows
}
