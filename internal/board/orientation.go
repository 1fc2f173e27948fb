package board

import (
	"errors"
	"fmt"
)

// ErrInvalidOrientation is returned for an unknown orientation name.
var ErrInvalidOrientation = errors.New("invalid orientation")

// Orientation is the side of the board shown at the bottom of the view.
type Orientation uint8

const (
	WhiteSide Orientation = iota // a8 in the top-left corner
	BlackSide                    // h1 in the top-left corner
)

// String returns the short form used by position strings: "w" or "b".
func (o Orientation) String() string {
	if o == BlackSide {
		return "b"
	}
	return "w"
}

// Flip returns the other orientation.
func (o Orientation) Flip() Orientation {
	if o == BlackSide {
		return WhiteSide
	}
	return BlackSide
}

// IsValid reports whether o is one of the two orientations.
func (o Orientation) IsValid() bool {
	return o == WhiteSide || o == BlackSide
}

// ParseOrientation accepts "w", "white", "b" and "black".
// An empty string is the default, WhiteSide.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "", "w", "white":
		return WhiteSide, nil
	case "b", "black":
		return BlackSide, nil
	default:
		return WhiteSide, fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
	}
}

// Shade is the background tone of a square.
type Shade uint8

const (
	Light Shade = iota
	Dark
)

// String returns the class name used for the shade: "w" or "b".
func (s Shade) String() string {
	if s == Dark {
		return "b"
	}
	return "w"
}

// ShadeAt returns the shade of the cell at display row r, column c.
// The top-left cell is light. Shading does not depend on orientation.
func ShadeAt(r, c int) Shade {
	if (r+c)%2 == 0 {
		return Light
	}
	return Dark
}

// SquareAt maps display row r and column c (0,0 = top-left) to the square
// shown there under orientation o. Returns NoSquare outside the 8x8 display.
func SquareAt(r, c int, o Orientation) Square {
	if r < 0 || r > 7 || c < 0 || c > 7 {
		return NoSquare
	}
	if o == BlackSide {
		return SquareAtIndex((7-r)*8 + (7 - c))
	}
	return SquareAtIndex(r*8 + c)
}

// CoordOf returns the display row and column of sq under orientation o.
// It is the inverse of SquareAt.
func CoordOf(sq Square, o Orientation) (r, c int) {
	i := sq.DisplayIndex()
	if i < 0 {
		return -1, -1
	}
	r, c = i/8, i%8
	if o == BlackSide {
		return 7 - r, 7 - c
	}
	return r, c
}
