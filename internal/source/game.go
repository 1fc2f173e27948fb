package source

import (
	"github.com/corentings/chess/v2"
	"github.com/hailam/chessboard/internal/board"
)

// Game is a Source backed by a full game record, with outcome detection.
type Game struct {
	start string
	game  *chess.Game
}

// NewGame starts a game from fen. A bare piece placement starts with
// white to move.
func NewGame(fen string) (*Game, error) {
	full, err := completeFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{start: full}
	if err := g.load(full); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) load(fen string) error {
	opt, err := chess.FEN(fen)
	if err != nil {
		return err
	}
	g.game = chess.NewGame(opt)
	return nil
}

// FEN returns the current position string.
func (g *Game) FEN() string {
	return g.game.FEN()
}

// Turn returns the side to move.
func (g *Game) Turn() board.Color {
	if g.game.Position().Turn() == chess.Black {
		return board.Black
	}
	return board.White
}

// Move plays from-to if it is legal.
func (g *Game) Move(from, to board.Square) bool {
	if g.game.Outcome() != chess.NoOutcome {
		return false
	}
	pos := g.game.Position()
	for _, m := range g.game.ValidMoves() {
		if m.S1() != chess.Square(from) || m.S2() != chess.Square(to) {
			continue
		}
		if m.Promo() != chess.NoPieceType && m.Promo() != chess.Queen {
			continue
		}
		san := chess.AlgebraicNotation{}.Encode(pos, &m)
		return g.game.PushMove(san, nil) == nil
	}
	return false
}

// Outcome returns the result notation: "*" while the game is running.
func (g *Game) Outcome() string {
	return g.game.Outcome().String()
}

// Moves returns the number of half-moves played.
func (g *Game) Moves() int {
	return len(g.game.Moves())
}

// Reset returns to the starting position.
func (g *Game) Reset() {
	// The start position was validated by NewGame.
	_ = g.load(g.start)
}
