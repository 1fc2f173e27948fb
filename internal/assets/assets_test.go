package assets

import (
	"testing"
	"testing/fstest"

	"github.com/hailam/chessboard/internal/board"
)

const dotSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10" viewBox="0 0 10 10"><circle cx="5" cy="5" r="4" fill="#000000"/></svg>`

func TestDefaultSet(t *testing.T) {
	set, err := Default(0)
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	for _, p := range board.AllPieces {
		img := set.Lookup(p)
		if img == nil {
			t.Fatalf("no image for %v", p.Name())
		}
		if img.Name != p.Name() || img.Piece != p {
			t.Errorf("image for %v labelled %s/%v", p.Name(), img.Name, img.Piece)
		}
		if len(img.SVG) == 0 {
			t.Errorf("%s: empty SVG", img.Name)
		}
		if img.Raster != nil {
			t.Errorf("%s: raster should be skipped at size 0", img.Name)
		}
	}

	if set.Lookup(board.NoPiece) != nil {
		t.Error("NoPiece should have no image")
	}
}

func TestLoadRasterizes(t *testing.T) {
	fsys := fstest.MapFS{}
	for _, p := range board.AllPieces {
		fsys[p.Name()+".svg"] = &fstest.MapFile{Data: []byte(dotSVG)}
	}

	set, err := Load(fsys, 16)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	img := set.Lookup(board.BlackQueen)
	if img.Raster == nil {
		t.Fatal("expected a raster image")
	}
	if b := img.Raster.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("raster bounds %v, want 16x16", b)
	}
	// The centre of the dot is opaque, the corner is not.
	if _, _, _, a := img.Raster.At(8, 8).RGBA(); a == 0 {
		t.Error("centre pixel should be painted")
	}
	if _, _, _, a := img.Raster.At(0, 0).RGBA(); a != 0 {
		t.Error("corner pixel should be transparent")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fsys := fstest.MapFS{
		"wP.svg": &fstest.MapFile{Data: []byte(dotSVG)},
	}
	if _, err := Load(fsys, 0); err == nil {
		t.Error("expected error for incomplete piece set")
	}
}
