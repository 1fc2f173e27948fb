// Package assets provides piece imagery for the board widget.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"io/fs"

	"github.com/hailam/chessboard/internal/board"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

//go:embed pieces/*.svg
var pieceAssets embed.FS

// Image is the imagery for one piece identity.
type Image struct {
	Piece  board.Piece
	Name   string      // asset name, e.g. "wP"
	SVG    []byte      // source document
	Raster *image.RGBA // nil when the set was loaded without a raster size
}

// Lookup resolves a piece identity to its imagery.
// Implementations return nil for NoPiece and unknown pieces.
type Lookup interface {
	Lookup(p board.Piece) *Image
}

// Set is a Lookup backed by one SVG file per piece.
type Set struct {
	images      map[board.Piece]*Image
	size        int     // raster size in pixels, 0 for none
	renderScale float64 // render at higher resolution, then scale down
}

// Load reads "<name>.svg" for every piece (e.g. "wP.svg", "bK.svg") from
// fsys. When size is positive each piece is also rasterized to a size x size
// image.
func Load(fsys fs.FS, size int) (*Set, error) {
	s := &Set{
		images:      make(map[board.Piece]*Image, len(board.AllPieces)),
		size:        size,
		renderScale: 3.0, // Render at 3x resolution for sharp scaling
	}

	for _, p := range board.AllPieces {
		path := p.Name() + ".svg"
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read piece asset %s: %w", path, err)
		}

		img := &Image{Piece: p, Name: p.Name(), SVG: data}
		if size > 0 {
			img.Raster, err = s.rasterize(data)
			if err != nil {
				return nil, fmt.Errorf("rasterize %s: %w", path, err)
			}
		}
		s.images[p] = img
	}

	return s, nil
}

// Default returns the embedded piece set.
func Default(size int) (*Set, error) {
	sub, err := fs.Sub(pieceAssets, "pieces")
	if err != nil {
		return nil, err
	}
	return Load(sub, size)
}

// Lookup returns the imagery for p, or nil for NoPiece.
func (s *Set) Lookup(p board.Piece) *Image {
	if !p.IsPiece() {
		return nil
	}
	return s.images[p]
}

// Size returns the raster size in pixels.
func (s *Set) Size() int {
	return s.size
}

// rasterize renders an SVG document at renderScale times the target size and
// scales the result down to size x size.
func (s *Set) rasterize(data []byte) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	renderSize := int(float64(s.size) * s.renderScale)
	icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

	// Create RGBA image and render with anti-aliasing at high resolution
	hi := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	scanner := rasterx.NewScannerGV(renderSize, renderSize, hi, hi.Bounds())
	raster := rasterx.NewDasher(renderSize, renderSize, scanner)
	icon.Draw(raster, 1.0)

	out := image.NewRGBA(image.Rect(0, 0, s.size, s.size))
	xdraw.CatmullRom.Scale(out, out.Bounds(), hi, hi.Bounds(), xdraw.Over, nil)
	return out, nil
}
