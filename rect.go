package mandel

import (
	"fmt"
	"image"
)

// ScreenRect is a relative screen rectangle: origin plus a positive, non-zero size.
type ScreenRect struct {
	X, Y int
	W, H int
}

// Abs converts s to absolute corners. A 1x1 rectangle has identical corners.
func (s ScreenRect) Abs() ZoomRect {
	return ZoomRect{
		X1: s.X,
		Y1: s.Y,
		X2: s.X + s.W - 1,
		Y2: s.Y + s.H - 1,
	}
}

// Image returns the half-open image.Rectangle covering s.
func (s ScreenRect) Image() image.Rectangle {
	return image.Rect(s.X, s.Y, s.X+s.W, s.Y+s.H)
}

func (s ScreenRect) String() string {
	return fmt.Sprintf("%d,%d %dx%d", s.X, s.Y, s.W, s.H)
}

// ZoomRect holds the absolute start and end corners of a drag. The corners
// keep the drag direction, so X1 > X2 or Y1 > Y2 are both legal.
type ZoomRect struct {
	X1, Y1 int
	X2, Y2 int
}

// Norm swaps the corners per axis so that X1 <= X2 and Y1 <= Y2.
func (r ZoomRect) Norm() ZoomRect {
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

// Rel converts a normalised rectangle to origin and size.
// Identical corners yield a width and height of one.
func (r ZoomRect) Rel() ScreenRect {
	return ScreenRect{
		X: r.X1,
		Y: r.Y1,
		W: r.X2 - r.X1 + 1,
		H: r.Y2 - r.Y1 + 1,
	}
}

// Contains reports whether the pixel x, y lies on or inside r.
func (r ZoomRect) Contains(x, y int) bool {
	n := r.Norm()
	return x >= n.X1 && x <= n.X2 && y >= n.Y1 && y <= n.Y2
}

func (r ZoomRect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}
