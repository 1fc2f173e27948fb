// Package ui draws board views with Ebitengine and feeds its mouse input
// to the widget.
package ui

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hailam/chessboard/internal/assets"
)

// SpriteManager uploads piece rasters to the GPU on first use.
type SpriteManager struct {
	sprites map[string]*ebiten.Image
}

// NewSpriteManager creates an empty sprite cache.
func NewSpriteManager() *SpriteManager {
	return &SpriteManager{sprites: make(map[string]*ebiten.Image)}
}

// Get returns the sprite for an asset, or nil if it has no raster.
func (sm *SpriteManager) Get(img *assets.Image) *ebiten.Image {
	if img == nil {
		return nil
	}
	if sprite, ok := sm.sprites[img.Name]; ok {
		return sprite
	}
	if img.Raster == nil {
		log.Printf("Piece asset %s has no raster; load the set with a size", img.Name)
		sm.sprites[img.Name] = nil
		return nil
	}
	sprite := ebiten.NewImageFromImage(img.Raster)
	sm.sprites[img.Name] = sprite
	return sprite
}

// DrawAt draws an asset stretched over the rectangle (x, y, w, h).
func (sm *SpriteManager) DrawAt(screen *ebiten.Image, img *assets.Image, x, y, w, h float32) {
	sprite := sm.Get(img)
	if sprite == nil {
		return
	}
	b := sprite.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	// Use linear filtering for smooth scaling
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}
