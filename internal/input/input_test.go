package input

import (
	"image"
	"slices"
	"testing"

	"github.com/hailam/chessboard/internal/view"
)

func TestWindowListeners(t *testing.T) {
	w := NewWindow()
	var calls []string

	w.AddReleaseListener(func() { calls = append(calls, "a") })
	b := w.AddReleaseListener(func() { calls = append(calls, "b") })
	w.AddReleaseListener(func() { calls = append(calls, "c") })

	w.Release()
	if want := []string{"a", "b", "c"}; !slices.Equal(calls, want) {
		t.Errorf("expected %v, got %v", want, calls)
	}

	if !w.RemoveReleaseListener(b) {
		t.Error("expected first removal to succeed")
	}
	if w.RemoveReleaseListener(b) {
		t.Error("expected second removal to report false")
	}
	if w.ListenerCount() != 2 {
		t.Errorf("expected 2 listeners, got %d", w.ListenerCount())
	}

	calls = nil
	w.Release()
	if want := []string{"a", "c"}; !slices.Equal(calls, want) {
		t.Errorf("expected %v, got %v", want, calls)
	}
}

func TestListenerRemovedDuringRelease(t *testing.T) {
	w := NewWindow()
	var calls []string
	var second ListenerID
	w.AddReleaseListener(func() {
		calls = append(calls, "first")
		w.RemoveReleaseListener(second)
	})
	second = w.AddReleaseListener(func() { calls = append(calls, "second") })

	w.Release()
	if want := []string{"first"}; !slices.Equal(calls, want) {
		t.Errorf("expected %v, got %v", want, calls)
	}
}

// tree is a 2x1 grid of 10x10 cells "l" and "r" that records events.
func tree(log *[]string) *view.Node {
	cell := func(id string) *view.Node {
		record := func(ev *view.Event) {
			*log = append(*log, ev.Type.String()+" "+id)
		}
		return &view.Node{
			ID:    id,
			Style: view.Style{Width: 10, Height: 10},
			On:    view.Handlers{Click: record, PointerDown: record, PointerUp: record},
		}
	}
	root := &view.Node{
		ID:       "root",
		Style:    view.Style{Display: view.Grid, Columns: 2},
		Children: []*view.Node{cell("l"), cell("r")},
	}
	root.On.Click = func(ev *view.Event) {
		*log = append(*log, ev.Type.String()+" root")
	}
	return root
}

func TestDispatchOrder(t *testing.T) {
	tests := []struct {
		name            string
		downX, upX, upY int
		want            []string
	}{
		{
			name: "same cell",
			upX:  5,
			upY:  5,
			want: []string{"pointerdown l", "pointerup l", "release", "click l", "click root"},
		},
		{
			name: "other cell clicks the parent",
			upX:  15,
			upY:  5,
			want: []string{"pointerdown l", "pointerup r", "release", "click root"},
		},
		{
			name: "outside",
			upX:  50,
			upY:  50,
			want: []string{"pointerdown l", "release"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			target := view.Commit(&view.Container{}, tree(&log))
			w := NewWindow()
			w.AddReleaseListener(func() { log = append(log, "release") })
			d := NewDispatcher(w)

			d.Press(target, tt.downX+5, 5)
			d.Release(target, tt.upX, tt.upY)
			if !slices.Equal(log, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, log)
			}
		})
	}
}

func TestClickSurvivesRerender(t *testing.T) {
	var log []string
	before := view.Commit(&view.Container{}, tree(&log))
	after := view.Commit(&view.Container{}, tree(&log))
	d := NewDispatcher(NewWindow())

	d.Press(before, 5, 5)
	d.Release(after, 5, 5)
	want := []string{"pointerdown l", "pointerup l", "click l", "click root"}
	if !slices.Equal(log, want) {
		t.Errorf("expected %v, got %v", want, log)
	}
}

func TestStack(t *testing.T) {
	var log []string
	bottom := view.Commit(&view.Container{}, tree(&log))
	top := view.Commit(&view.Container{Origin: image.Pt(10, 0)}, tree(&log))
	s := Stack{nil, bottom, top}

	path := s.HitTest(15, 5)
	if len(path) == 0 || path[0] != top.Root().Children[0] {
		t.Errorf("expected the top view's left cell, got %v", path)
	}
	path = s.HitTest(5, 5)
	if len(path) == 0 || path[0] != bottom.Root().Children[0] {
		t.Errorf("expected the bottom view's left cell, got %v", path)
	}
	if s.HitTest(100, 100) != nil {
		t.Error("expected no hit outside every view")
	}
}
