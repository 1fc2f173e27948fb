package source

import (
	"testing"

	"github.com/hailam/chessboard/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const promoFEN = "7k/P7/8/8/8/8/8/K7 w - - 0 1"

func sources(t *testing.T, fen string) map[string]Source {
	t.Helper()
	g, err := NewGame(fen)
	require.NoError(t, err)
	f, err := NewFast(fen)
	require.NoError(t, err)
	return map[string]Source{"game": g, "fast": f}
}

func placement(fen string) string {
	grid, err := board.Decode(fen)
	if err != nil {
		return ""
	}
	return grid.String()
}

func TestLegalMove(t *testing.T) {
	for name, s := range sources(t, board.StartFEN) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, board.White, s.Turn())
			require.True(t, s.Move(board.E2, board.E4))
			assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR", placement(s.FEN()))
			assert.Equal(t, board.Black, s.Turn())
		})
	}
}

func TestIllegalMove(t *testing.T) {
	for name, s := range sources(t, board.StartFEN) {
		t.Run(name, func(t *testing.T) {
			before := s.FEN()
			assert.False(t, s.Move(board.E2, board.E5))
			assert.False(t, s.Move(board.E7, board.E5), "black cannot move first")
			assert.False(t, s.Move(board.A2, board.A2))
			assert.Equal(t, before, s.FEN())
		})
	}
}

func TestPromotionPicksQueen(t *testing.T) {
	for name, s := range sources(t, promoFEN) {
		t.Run(name, func(t *testing.T) {
			require.True(t, s.Move(board.A7, board.A8))
			grid, err := board.Decode(s.FEN())
			require.NoError(t, err)
			assert.Equal(t, board.WhiteQueen, grid.PieceAt(board.A8))
		})
	}
}

func TestReset(t *testing.T) {
	for name, s := range sources(t, board.StartFEN) {
		t.Run(name, func(t *testing.T) {
			require.True(t, s.Move(board.G1, board.F3))
			s.Reset()
			assert.Equal(t, placement(board.StartFEN), placement(s.FEN()))
			assert.Equal(t, board.White, s.Turn())
		})
	}
}

func TestCanDrag(t *testing.T) {
	for name, s := range sources(t, board.StartFEN) {
		t.Run(name, func(t *testing.T) {
			assert.True(t, CanDrag(s, board.E2))
			assert.False(t, CanDrag(s, board.E7))
			assert.False(t, CanDrag(s, board.E4))
			require.True(t, s.Move(board.E2, board.E4))
			assert.True(t, CanDrag(s, board.E7))
			assert.False(t, CanDrag(s, board.E4))
		})
	}
}

func TestRejectsPartialBoards(t *testing.T) {
	for _, fen := range []string{
		"8/8/8",
		"rnbqkbnr/ppp",
		"x",
		"",
		"k7/8/8/8/8/8/8/K7 x",
		"k7/8/8/8/8/8/8/K7 w - z9 0 1",
		"k7/8/8/8/8/8/8/K7 w - - 0 1 extra",
		"8/8/8/8/8/8/8/8",
		"kk6/8/8/8/8/8/8/K7",
	} {
		_, err := NewGame(fen)
		assert.Error(t, err, fen)
		_, err = NewFast(fen)
		assert.Error(t, err, fen)
	}
}

func TestGameOutcome(t *testing.T) {
	g, err := NewGame(board.StartFEN)
	require.NoError(t, err)
	// Fool's mate.
	moves := [][2]board.Square{
		{board.F2, board.F3}, {board.E7, board.E5},
		{board.G2, board.G4}, {board.D8, board.H4},
	}
	for _, m := range moves {
		require.True(t, g.Move(m[0], m[1]))
	}
	assert.Equal(t, 4, g.Moves())
	assert.Equal(t, "0-1", g.Outcome())
	assert.False(t, g.Move(board.A2, board.A3))
}

func TestBarePlacement(t *testing.T) {
	for _, fen := range []string{"k7/8/8/8/8/8/8/K7", "4k3/8/8/8/8/8/8/4K3", "k7/8/8/8/8/8/8/K7 b"} {
		t.Run(fen, func(t *testing.T) {
			for name, s := range sources(t, fen) {
				assert.Equal(t, placement(fen), placement(s.FEN()), name)
			}
		})
	}

	for name, s := range sources(t, "k7/8/8/8/8/8/8/K7") {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, board.White, s.Turn())
			require.True(t, s.Move(board.A1, board.B2))
			s.Reset()
			assert.Equal(t, board.White, s.Turn())
			assert.True(t, CanDrag(s, board.A1))
		})
	}

	for name, s := range sources(t, "k7/8/8/8/8/8/8/K7 b") {
		assert.Equal(t, board.Black, s.Turn(), name)
	}
}
