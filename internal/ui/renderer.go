package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hailam/chessboard/internal/assets"
	"github.com/hailam/chessboard/internal/view"
)

// Renderer commits board trees to views that draw with Ebitengine.
type Renderer struct {
	sprites *SpriteManager
	theme   *view.Theme
	scale   float64 // HiDPI scale factor
}

// NewRenderer creates a new renderer.
func NewRenderer(theme *view.Theme) *Renderer {
	if theme == nil {
		theme = view.DefaultTheme()
	}
	return &Renderer{
		sprites: NewSpriteManager(),
		theme:   theme,
		scale:   1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
}

// s returns the scaled value for rendering.
func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// Mount commits the first tree of a container.
func (r *Renderer) Mount(c *view.Container, tree *view.Node) (view.View, error) {
	return &View{Committed: view.Commit(c, tree), renderer: r}, nil
}

// Patch replaces the tree of a view mounted by this renderer.
func (r *Renderer) Patch(prev view.View, tree *view.Node) (view.View, error) {
	old, ok := prev.(*View)
	if !ok || old.renderer != r {
		return nil, fmt.Errorf("ui: cannot patch view of type %T", prev)
	}
	return &View{Committed: view.Commit(old.Container(), tree), renderer: r}, nil
}

// Theme returns the current theme.
func (r *Renderer) Theme() *view.Theme {
	return r.theme
}

// View is a committed tree that can draw itself onto an Ebitengine image.
type View struct {
	*view.Committed
	renderer *Renderer
}

// Draw paints the view onto screen.
func (v *View) Draw(screen *ebiten.Image) {
	root := v.Layout()
	v.drawBox(screen, root)
	v.drawCoordinates(screen, root)
}

// drawBox paints a box and its children, parents first.
func (v *View) drawBox(screen *ebiten.Image, b *view.Box) {
	r := v.renderer
	n := b.Node
	x, y := r.s(b.Rect.Min.X), r.s(b.Rect.Min.Y)
	w, h := r.s(b.Rect.Dx()), r.s(b.Rect.Dy())

	if n.Style.Background.A > 0 {
		vector.DrawFilledRect(screen, x, y, w, h, n.Style.Background, false)
	}

	switch {
	case n.Image != nil:
		r.sprites.DrawAt(screen, n.Image, x, y, w, h)
	case n.Text != "":
		v.drawLabel(screen, n.Text, x+w/2, y+h/2, 0.5, titleFontSize*2, r.theme.Background)
	}

	for _, child := range b.Children {
		v.drawBox(screen, child)
	}
}

// drawCoordinates labels the files along the bottom row and the ranks
// along the left column, using the square ids of the committed tree.
func (v *View) drawCoordinates(screen *ebiten.Image, root *view.Box) {
	r := v.renderer
	for _, sq := range root.Children {
		id := sq.Node.ID
		if len(id) != 2 {
			continue
		}
		c := r.theme.DarkSquare
		if sq.Node.HasClass("b") {
			c = r.theme.LightSquare
		}
		if sq.Rect.Min.X == root.Rect.Min.X {
			v.drawLabel(screen, id[1:], r.s(sq.Rect.Min.X+2), r.s(sq.Rect.Min.Y+2), 0, defaultFontSize, c)
		}
		if sq.Rect.Max.Y == root.Rect.Max.Y {
			v.drawLabel(screen, id[:1], r.s(sq.Rect.Max.X-10), r.s(sq.Rect.Max.Y-18), 0, defaultFontSize, c)
		}
	}
}

// drawLabel draws s at (x, y). align 0.5 centers the text on the point.
func (v *View) drawLabel(screen *ebiten.Image, s string, x, y float32, align float64, size float64, c color.Color) {
	face := GetFaceWithSize(size * v.renderer.scale)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	if align > 0 {
		w, h := MeasureText(s, face)
		op.GeoM.Translate(-w*align, -h*align)
	}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// DrawPiece draws img as a square of logical size centered on the logical
// point (cx, cy). Used for the piece following the cursor during a drag.
func (r *Renderer) DrawPiece(screen *ebiten.Image, img *assets.Image, cx, cy, size int) {
	half := size / 2
	r.sprites.DrawAt(screen, img, r.s(cx-half), r.s(cy-half), r.s(size), r.s(size))
}
