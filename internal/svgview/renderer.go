// Package svgview commits board trees to SVG documents, for hosts that draw
// the board somewhere else, such as a browser.
package svgview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"image/color"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/hailam/chessboard/internal/view"
)

// Renderer commits trees to SVG views.
type Renderer struct {
	// OnCommit, if set, is called with every view the renderer commits.
	OnCommit func(*View)
}

// NewRenderer creates a renderer that reports commits to onCommit.
func NewRenderer(onCommit func(*View)) *Renderer {
	return &Renderer{OnCommit: onCommit}
}

// Mount commits the first tree of a container.
func (r *Renderer) Mount(c *view.Container, tree *view.Node) (view.View, error) {
	return r.commit(c, tree, view.Diff(nil, tree)), nil
}

// Patch replaces the tree of a view mounted by this renderer.
func (r *Renderer) Patch(prev view.View, tree *view.Node) (view.View, error) {
	old, ok := prev.(*View)
	if !ok || old.renderer != r {
		return nil, fmt.Errorf("svgview: cannot patch view of type %T", prev)
	}
	return r.commit(old.Container(), tree, view.Diff(old.Root(), tree)), nil
}

func (r *Renderer) commit(c *view.Container, tree *view.Node, changes []view.Change) *View {
	v := &View{Committed: view.Commit(c, tree), renderer: r, changes: changes}
	if r.OnCommit != nil {
		r.OnCommit(v)
	}
	return v
}

// View is a committed tree that serializes to SVG.
type View struct {
	*view.Committed
	renderer *Renderer
	changes  []view.Change
}

// Changes returns the keyed nodes that differ from the previous commit.
func (v *View) Changes() []view.Change {
	return v.changes
}

// SVG returns the document as bytes.
func (v *View) SVG() []byte {
	var buf bytes.Buffer
	v.WriteTo(&buf)
	return buf.Bytes()
}

// WriteTo writes the SVG document to w.
func (v *View) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	root := v.Layout()
	r := root.Rect

	canvas := svg.New(cw)
	canvas.Startview(r.Dx(), r.Dy(), r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	if c := v.Container(); c != nil && c.ID != "" {
		canvas.Title(c.ID)
	}
	drawBox(canvas, root)
	canvas.End()
	return cw.n, cw.err
}

// drawBox writes a box and its children, parents first.
func drawBox(canvas *svg.SVG, b *view.Box) {
	n := b.Node
	x, y, w, h := b.Rect.Min.X, b.Rect.Min.Y, b.Rect.Dx(), b.Rect.Dy()

	canvas.Group(nodeAttrs(n)...)
	if n.Style.Background.A > 0 {
		canvas.Rect(x, y, w, h, fill(n.Style.Background))
	}
	switch {
	case n.Image != nil && len(n.Image.SVG) > 0:
		canvas.Image(x, y, w, h, dataURI(n.Image.SVG), `class="piece"`, `pointer-events="none"`)
	case n.Text != "":
		size := h / 2
		canvas.Text(x+w/2, y+h/2, n.Text,
			fmt.Sprintf("text-anchor:middle;dominant-baseline:central;font-size:%dpx;pointer-events:none", size))
	}
	for _, child := range b.Children {
		drawBox(canvas, child)
	}
	canvas.Gend()
}

func nodeAttrs(n *view.Node) []string {
	var attrs []string
	if n.ID != "" {
		attrs = append(attrs, fmt.Sprintf(`id="%s"`, html.EscapeString(n.ID)))
	}
	if len(n.Classes) > 0 {
		attrs = append(attrs, fmt.Sprintf(`class="%s"`, html.EscapeString(strings.Join(n.Classes, " "))))
	}
	if !n.Style.Selectable {
		attrs = append(attrs, "user-select:none")
	}
	return attrs
}

func fill(c color.RGBA) string {
	return fmt.Sprintf("fill:#%02x%02x%02x", c.R, c.G, c.B)
}

func dataURI(doc []byte) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(doc)
}

// countingWriter keeps the first write error, since svgo ignores them.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	cw.err = err
	return n, err
}
