package view

import (
	"image/color"

	"github.com/hailam/chessboard/internal/board"
)

// Board geometry in logical units.
const (
	SquareSize   = 64
	BoardColumns = 8
	BoardMaxSize = SquareSize * BoardColumns
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	Background  color.RGBA
	TextColor   color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare: color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:  color.RGBA{181, 136, 99, 255},  // Brown
		Background:  color.RGBA{40, 44, 52, 255},    // Dark gray
		TextColor:   color.RGBA{220, 220, 220, 255}, // Light gray
	}
}

// SquareColor returns the background color for a shade.
func (t *Theme) SquareColor(s board.Shade) color.RGBA {
	if s == board.Dark {
		return t.DarkSquare
	}
	return t.LightSquare
}
