package ui

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hailam/chessboard/internal/assets"
	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/host"
	"github.com/hailam/chessboard/internal/input"
	"github.com/hailam/chessboard/internal/source"
	"github.com/hailam/chessboard/internal/storage"
	"github.com/hailam/chessboard/internal/view"
)

// UI Constants
const (
	BoardSize    = view.BoardMaxSize
	StatusHeight = 28
	ScreenWidth  = BoardSize
	ScreenHeight = BoardSize + StatusHeight
)

// Options configures the desktop game.
type Options struct {
	BoardID     string
	FEN         string // empty restores the saved position
	Orientation string // empty restores the saved orientation
	Muted       bool
	Storage     *storage.Storage // optional
}

// Game implements ebiten.Game interface.
type Game struct {
	source   *source.Game
	session  *host.Session
	pointer  *input.Dispatcher
	pieces   assets.Lookup
	renderer *Renderer
	input    *InputHandler
	feedback *FeedbackManager

	// HiDPI scaling
	scale float64
}

// NewGame mounts a board and the game driving it.
func NewGame(opts Options) (*Game, error) {
	fen, orientation := host.Restore(opts.Storage, opts.BoardID, opts.FEN, opts.Orientation)
	src, err := source.NewGame(fen)
	if err != nil {
		log.Printf("Warning: Failed to load position %q: %v", fen, err)
		if src, err = source.NewGame(board.StartFEN); err != nil {
			return nil, err
		}
	}

	pieces, err := assets.Default(view.SquareSize * 2)
	if err != nil {
		return nil, fmt.Errorf("load pieces: %w", err)
	}

	var audio *AudioManager
	if !opts.Muted {
		audio = NewAudioManager(true)
	}

	g := &Game{
		source:   src,
		pieces:   pieces,
		renderer: NewRenderer(nil),
		input:    NewInputHandler(),
		feedback: NewFeedbackManager(audio),
		scale:    1.0,
	}
	window := input.NewWindow()
	g.pointer = input.NewDispatcher(window)

	g.session, err = host.Start(host.Config{
		ID:          opts.BoardID,
		Source:      src,
		Orientation: orientation,
		Renderer:    g.renderer,
		Window:      window,
		Skin:        view.Skin{Theme: g.renderer.Theme(), Assets: pieces},
		Store:       opts.Storage,
		Notify:      g.feedback,
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()

	if IsKeyJustPressed(ebiten.KeyF) {
		if err := g.session.Flip(); err != nil {
			log.Printf("Warning: Failed to flip board: %v", err)
		}
	}
	if IsKeyJustPressed(ebiten.KeyR) {
		if err := g.session.Reset(); err != nil {
			log.Printf("Warning: Failed to reset board: %v", err)
		} else {
			g.feedback.Info("New game")
		}
	}

	g.input.Deliver(g.pointer, g.session.Board().View())
	g.updateCursor()
	return nil
}

// updateCursor shows a grab cursor while a piece is held.
func (g *Game) updateCursor() {
	if _, dragging := g.session.Board().Dragging(); dragging && g.input.IsLeftPressed() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)
	screen.Fill(g.renderer.Theme().Background)

	v, ok := g.session.Board().View().(*View)
	if !ok {
		return
	}
	v.Draw(screen)
	g.feedback.DrawFlashes(screen, v)

	if from, dragging := g.session.Board().Dragging(); dragging {
		grid, err := board.Decode(g.session.Board().Position())
		if err == nil {
			if img := g.pieces.Lookup(grid.PieceAt(from)); img != nil {
				mx, my := g.input.MousePosition()
				g.renderer.DrawPiece(screen, img, mx, my, view.SquareSize)
			}
		}
	}

	g.drawStatus(screen)
	g.feedback.Toasts().Draw(screen, BoardSize, g.scale)
}

// drawStatus writes the side to move and the key bindings below the board.
func (g *Game) drawStatus(screen *ebiten.Image) {
	status := fmt.Sprintf("%v to move", g.source.Turn())
	if outcome := g.source.Outcome(); outcome != "*" {
		status = "Game over " + outcome
	}
	status += "   F flip   R reset"
	v, _ := g.session.Board().View().(*View)
	if v == nil {
		return
	}
	y := g.renderer.s(BoardSize + StatusHeight/2)
	v.drawLabel(screen, status, g.renderer.s(8), y-g.renderer.s(defaultFontSize)/2-2, 0, defaultFontSize+1, g.renderer.Theme().TextColor)
}

// Layout returns the game's screen dimensions.
// Uses device scale factor for crisp rendering on HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Get and store device scale factor (2.0 on Retina, 1.0 on standard displays)
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}
	g.input.SetScale(g.scale)
	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// Close saves the board and releases its listener.
func (g *Game) Close() {
	g.session.Close()
}
