package svgview

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hailam/chessboard/internal/assets"
	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/input"
	"github.com/hailam/chessboard/internal/view"
	"github.com/hailam/chessboard/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, r *Renderer, fen string) *widget.Board {
	t.Helper()
	set, err := assets.Default(0)
	require.NoError(t, err)
	b, err := widget.Create(widget.MountContainer(&view.Container{ID: "board"}), widget.Config{
		Position: fen,
		Renderer: r,
		Window:   input.NewWindow(),
		Skin:     view.Skin{Theme: view.DefaultTheme(), Assets: set},
	})
	require.NoError(t, err)
	t.Cleanup(b.Teardown)
	return b
}

func TestMountWritesDocument(t *testing.T) {
	var commits []*View
	r := NewRenderer(func(v *View) { commits = append(commits, v) })
	b := newBoard(t, r, board.StartFEN)

	require.Len(t, commits, 1)
	v, ok := b.View().(*View)
	require.True(t, ok)
	assert.Same(t, commits[0], v)
	assert.Len(t, v.Changes(), 64, "every square is new")

	doc := string(v.SVG())
	assert.True(t, strings.HasPrefix(doc, "<?xml"))
	assert.Contains(t, doc, `viewBox="0 0 512 512"`)
	assert.Contains(t, doc, `<title>board</title>`)
	assert.Contains(t, doc, `id="e4" class="square w"`)
	assert.Contains(t, doc, `id="e1" class="square b"`)
	assert.Contains(t, doc, "fill:#f0d9b5")
	assert.Contains(t, doc, "fill:#b58863")
	assert.Equal(t, 32, strings.Count(doc, "data:image/svg+xml;base64,"))
	assert.Equal(t, 64, strings.Count(doc, `class="square `))
}

func TestPatchReportsChanges(t *testing.T) {
	var commits []*View
	r := NewRenderer(func(v *View) { commits = append(commits, v) })
	b := newBoard(t, r, board.StartFEN)

	require.NoError(t, b.SetPosition("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR"))
	require.Len(t, commits, 2)

	var ids []string
	for _, c := range commits[1].Changes() {
		assert.Equal(t, view.Updated, c.Kind)
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{"e2", "e4"}, ids)
	assert.Equal(t, 32, strings.Count(string(commits[1].SVG()), "data:image/svg+xml;base64,"))
}

func TestFlipReversesDrawOrder(t *testing.T) {
	r := NewRenderer(nil)
	b := newBoard(t, r, board.EmptyFEN)

	before := string(b.View().(*View).SVG())
	require.NoError(t, b.Flip())
	after := string(b.View().(*View).SVG())

	// h1 is drawn first when viewed from black.
	assert.Less(t, strings.Index(before, `id="a8"`), strings.Index(before, `id="h1"`))
	assert.Less(t, strings.Index(after, `id="h1"`), strings.Index(after, `id="a8"`))
}

func TestTextFallback(t *testing.T) {
	r := NewRenderer(nil)
	b, err := widget.Create(widget.MountContainer(&view.Container{}), widget.Config{
		Position: "8/8/8/8/8/8/8/4K3",
		Renderer: r,
		Window:   input.NewWindow(),
	})
	require.NoError(t, err)
	defer b.Teardown()

	doc := string(b.View().(*View).SVG())
	assert.Contains(t, doc, ">K</text>")
	assert.NotContains(t, doc, "<title>")
}

func TestPatchForeignView(t *testing.T) {
	r := NewRenderer(nil)
	other := NewRenderer(nil)
	tree := &view.Node{ID: "root"}

	v, err := other.Mount(&view.Container{}, tree)
	require.NoError(t, err)
	_, err = r.Patch(v, tree)
	assert.Error(t, err)
	_, err = r.Patch(view.Commit(&view.Container{}, tree), tree)
	assert.Error(t, err)
}

type failingWriter struct{ after int }

var errDiskFull = errors.New("disk full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errDiskFull
	}
	w.after--
	return len(p), nil
}

func TestWriteToReportsErrors(t *testing.T) {
	r := NewRenderer(nil)
	b := newBoard(t, r, board.StartFEN)
	v := b.View().(*View)

	var buf bytes.Buffer
	n, err := v.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	_, err = v.WriteTo(&failingWriter{after: 3})
	assert.ErrorIs(t, err, errDiskFull)
}
