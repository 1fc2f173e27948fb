package ui

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hailam/chessboard/internal/board"
)

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastSuccess
)

// Toast represents a notification message.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// ToastManager manages toast notifications.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3}
}

// Show displays a new toast notification.
func (tm *ToastManager) Show(message string, toastType ToastType, duration time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{
		Message:   message,
		Type:      toastType,
		StartTime: time.Now(),
		Duration:  duration,
	})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update(now time.Time) {
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.StartTime) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

// Messages returns the active toast messages, oldest first.
func (tm *ToastManager) Messages() []string {
	msgs := make([]string, len(tm.toasts))
	for i, t := range tm.toasts {
		msgs[i] = t.Message
	}
	return msgs
}

// Draw renders all active toasts centered over a board of the given width.
func (tm *ToastManager) Draw(screen *ebiten.Image, boardWidth, scale float64) {
	face := GetFaceWithSize(titleFontSize * scale)
	if face == nil {
		return
	}

	y := 40.0 * scale
	for _, t := range tm.toasts {
		elapsed := time.Since(t.StartTime).Seconds()
		duration := t.Duration.Seconds()

		// Fade in/out
		alpha := 1.0
		fadeTime := 0.2
		if elapsed < fadeTime {
			alpha = elapsed / fadeTime
		} else if elapsed > duration-fadeTime {
			alpha = (duration - elapsed) / fadeTime
		}
		alpha = max(0, min(1, alpha))

		var bg color.RGBA
		switch t.Type {
		case ToastWarning:
			bg = color.RGBA{180, 140, 20, uint8(220 * alpha)}
		case ToastSuccess:
			bg = color.RGBA{50, 150, 50, uint8(220 * alpha)}
		default:
			bg = color.RGBA{50, 100, 150, uint8(220 * alpha)}
		}
		fg := color.RGBA{255, 255, 255, uint8(255 * alpha)}

		w, h := MeasureText(t.Message, face)
		padding := 12.0 * scale
		boxW, boxH := w+padding*2, h+padding*2
		x := boardWidth*scale/2 - boxW/2

		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), bg, false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(x+padding, y+padding)
		op.ColorScale.ScaleWithColor(fg)
		text.Draw(screen, t.Message, face, op)

		y += boxH + 8*scale
	}
}

// FlashAnimation represents a square flash effect.
type FlashAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Color     color.RGBA
}

// FeedbackManager turns host decisions into toasts, square flashes and
// sounds.
type FeedbackManager struct {
	toasts  *ToastManager
	flashes []*FlashAnimation
	audio   *AudioManager
}

// NewFeedbackManager creates a feedback manager. audio may be nil.
func NewFeedbackManager(audio *AudioManager) *FeedbackManager {
	return &FeedbackManager{
		toasts: NewToastManager(),
		audio:  audio,
	}
}

// Update drops expired toasts and flashes.
func (fm *FeedbackManager) Update() {
	now := time.Now()
	fm.toasts.Update(now)
	active := fm.flashes[:0]
	for _, f := range fm.flashes {
		if now.Sub(f.StartTime) < f.Duration {
			active = append(active, f)
		}
	}
	fm.flashes = active
}

// Toasts returns the toast manager.
func (fm *FeedbackManager) Toasts() *ToastManager {
	return fm.toasts
}

// Moved acknowledges a played move.
func (fm *FeedbackManager) Moved(from, to board.Square) {
	fm.audio.Play(SoundDrop)
}

// Rejected reports a drag or drop the host refused on sq.
func (fm *FeedbackManager) Rejected(sq board.Square, message string) {
	fm.toasts.Show(message, ToastWarning, 2*time.Second)
	fm.flashes = append(fm.flashes, &FlashAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  400 * time.Millisecond,
		Color:     color.RGBA{255, 80, 80, 150},
	})
	fm.audio.Play(SoundRejected)
}

// GameOver announces a finished game.
func (fm *FeedbackManager) GameOver(message string) {
	fm.toasts.Show(message, ToastSuccess, 5*time.Second)
	fm.audio.Play(SoundGameEnd)
}

// Info shows a short informational message.
func (fm *FeedbackManager) Info(message string) {
	fm.toasts.Show(message, ToastInfo, 1500*time.Millisecond)
}

// DrawFlashes renders the active flash overlays on the squares of v.
func (fm *FeedbackManager) DrawFlashes(screen *ebiten.Image, v *View) {
	r := v.renderer
	for _, f := range fm.flashes {
		box := v.Layout().Find(f.Square.String())
		if box == nil {
			continue
		}
		progress := time.Since(f.StartTime).Seconds() / f.Duration.Seconds()
		if progress >= 1.0 {
			continue
		}
		// Fade out
		c := f.Color
		c.A = uint8(float64(c.A) * (1.0 - progress))
		vector.DrawFilledRect(screen, r.s(box.Rect.Min.X), r.s(box.Rect.Min.Y), r.s(box.Rect.Dx()), r.s(box.Rect.Dy()), c, false)
	}
}
