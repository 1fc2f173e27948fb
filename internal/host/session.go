// Package host drives a board widget from a position source: it vetoes
// drags of the wrong side, plays drops through the source and persists the
// board between runs.
package host

import (
	"errors"
	"image"
	"log"

	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/input"
	"github.com/hailam/chessboard/internal/source"
	"github.com/hailam/chessboard/internal/storage"
	"github.com/hailam/chessboard/internal/view"
	"github.com/hailam/chessboard/internal/widget"
)

// Rejection messages passed to Notifier.Rejected.
const (
	ReasonNotYourTurn = "Not your turn"
	ReasonIllegal     = "Illegal move"
	ReasonGameOver    = "Game over"
)

var ErrNoSource = errors.New("host: config has no source")

// Notifier receives what happened to a session's board.
type Notifier interface {
	Moved(from, to board.Square)
	Rejected(sq board.Square, reason string)
	GameOver(result string)
}

// Config describes a session.
type Config struct {
	// ID names the board container and keys its saved preferences.
	ID          string
	Source      source.Source
	Orientation board.Orientation
	Origin      image.Point

	Renderer view.Renderer
	Window   *input.Window
	Skin     view.Skin

	Store  *storage.Storage // optional
	Notify Notifier         // optional
}

// Session is one board driven by one source.
type Session struct {
	cfg   Config
	board *widget.Board
}

// outcomer is implemented by sources that detect the end of the game.
type outcomer interface {
	Outcome() string
}

// Start mounts the board for cfg.Source's current position.
func Start(cfg Config) (*Session, error) {
	if cfg.Source == nil {
		return nil, ErrNoSource
	}
	s := &Session{cfg: cfg}
	container := &view.Container{ID: cfg.ID, Classes: []string{"board-host"}, Origin: cfg.Origin}

	b, err := widget.Create(widget.MountContainer(container), widget.Config{
		Position:    cfg.Source.FEN(),
		Orientation: cfg.Orientation,
		OnDragStart: s.dragStart,
		OnDrop:      s.drop,
		Renderer:    cfg.Renderer,
		Window:      cfg.Window,
		Skin:        cfg.Skin,
	})
	if err != nil {
		return nil, err
	}
	s.board = b
	s.stats(func(st *storage.SessionStats) { st.Sessions++ })
	return s, nil
}

// Board returns the session's board.
func (s *Session) Board() *widget.Board {
	return s.board
}

// Source returns the session's position source.
func (s *Session) Source() source.Source {
	return s.cfg.Source
}

// Flip shows the board from the other side and remembers the choice.
func (s *Session) Flip() error {
	if err := s.board.Flip(); err != nil {
		return err
	}
	s.stats(func(st *storage.SessionStats) { st.Flips++ })
	s.save()
	return nil
}

// Reset returns the source to its starting position.
func (s *Session) Reset() error {
	s.cfg.Source.Reset()
	if err := s.board.SetPosition(s.cfg.Source.FEN()); err != nil {
		return err
	}
	s.stats(func(st *storage.SessionStats) { st.Resets++ })
	s.save()
	return nil
}

// Close saves the board and detaches it from the window.
func (s *Session) Close() {
	s.save()
	s.board.Teardown()
}

func (s *Session) dragStart(sq board.Square) widget.DragDecision {
	if s.gameOver() {
		s.reject(sq, ReasonGameOver)
		return widget.DragDeny
	}
	if source.CanDrag(s.cfg.Source, sq) {
		return widget.DragAllow
	}
	grid, err := board.Decode(s.board.Position())
	if err == nil && grid.PieceAt(sq).Color() == s.cfg.Source.Turn().Other() {
		s.reject(sq, ReasonNotYourTurn)
	}
	return widget.DragDeny
}

func (s *Session) drop(from, to board.Square) {
	if from == to {
		return
	}
	if !s.cfg.Source.Move(from, to) {
		s.reject(to, ReasonIllegal)
		return
	}
	if err := s.board.SetPosition(s.cfg.Source.FEN()); err != nil {
		log.Printf("[HOST] Warning: source produced an unusable position: %v", err)
		return
	}
	if s.cfg.Notify != nil {
		s.cfg.Notify.Moved(from, to)
	}
	s.stats(func(st *storage.SessionStats) { st.Moves++ })
	s.save()

	if s.gameOver() && s.cfg.Notify != nil {
		s.cfg.Notify.GameOver(s.cfg.Source.(outcomer).Outcome())
	}
}

func (s *Session) gameOver() bool {
	o, ok := s.cfg.Source.(outcomer)
	return ok && o.Outcome() != "*"
}

func (s *Session) reject(sq board.Square, reason string) {
	if s.cfg.Notify != nil {
		s.cfg.Notify.Rejected(sq, reason)
	}
}

func (s *Session) save() {
	if s.cfg.Store == nil || s.cfg.ID == "" {
		return
	}
	prefs := &storage.BoardPreferences{
		Orientation: s.board.Orientation().String(),
		Position:    s.cfg.Source.FEN(),
	}
	if err := s.cfg.Store.SavePreferences(s.cfg.ID, prefs); err != nil {
		log.Printf("[STORE] Warning: Failed to save board %q: %v", s.cfg.ID, err)
	}
}

func (s *Session) stats(fn func(*storage.SessionStats)) {
	if s.cfg.Store == nil {
		return
	}
	if err := s.cfg.Store.UpdateStats(fn); err != nil {
		log.Printf("[STORE] Warning: Failed to update stats: %v", err)
	}
}

// Restore returns the saved position and orientation of board id, falling
// back to fen and o for anything missing or unusable. Non-empty fen or
// override values win over saved ones.
func Restore(store *storage.Storage, id, fen, orientation string) (string, board.Orientation) {
	pos, o := board.StartFEN, board.WhiteSide
	if store != nil && id != "" {
		prefs, err := store.LoadPreferences(id)
		if err != nil {
			log.Printf("[STORE] Warning: Failed to load board %q: %v", id, err)
		} else {
			pos = prefs.Position
			if saved, err := board.ParseOrientation(prefs.Orientation); err == nil {
				o = saved
			}
		}
	}
	if fen != "" {
		pos = fen
	}
	if orientation != "" {
		if parsed, err := board.ParseOrientation(orientation); err == nil {
			o = parsed
		} else {
			log.Printf("Warning: %v, keeping %v", err, o)
		}
	}
	return pos, o
}
