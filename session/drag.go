package session

import (
	"math"

	mandel "github.com/marben/mandelzoom"
)

// State is the position of a session in the drag gesture.
type State int

const (
	// Idle has no zoom rectangle.
	Idle State = iota
	// Dragging tracks the rectangle while the button is held.
	Dragging
	// Marked holds a fixed rectangle and waits for a click.
	Marked
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Marked:
		return "marked"
	default:
		return "unknown"
	}
}

// dragTo moves the end corner of r towards the cursor at mx, my.
// The cursor is clamped to the screen, the width is never zero and the height
// follows from the width via the aspect ratio. When that height would leave
// the screen it is clamped and the width is derived from it instead.
func dragTo(r mandel.ZoomRect, mx, my int, screen mandel.Screen) mandel.ZoomRect {
	sw, sh := screen.Width, screen.Height
	ar := screen.AspectRatio()
	x1, y1 := r.X1, r.Y1

	mx = min(max(mx, 0), sw-1)
	my = min(max(my, 0), sh-1)

	w := abs(mx-x1) + 1
	h := max(int(math.Round(float64(w)/ar)), 1)

	y2 := y1 + h - 1
	if my < y1 {
		y2 = y1 - h + 1
	}
	if y2 < 0 || y2 > sh-1 {
		y2 = min(max(y2, 0), sh-1)
		h = abs(y2-y1) + 1
		w = max(int(math.Round(float64(h)*ar)), 1)
	}

	x2 := x1 + w - 1
	if mx < x1 {
		x2 = x1 - w + 1
	}
	x2 = min(max(x2, 0), sw-1)

	return mandel.ZoomRect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
