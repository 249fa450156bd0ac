package mandel

import (
	"context"
	"image"
)

// ImgProvider hands out the last fully rendered frame.
type ImgProvider interface {
	ColorBuffer() *image.RGBA
}

// Explorer is what a windowing front end drives: it sets views, forwards
// mouse button and motion events and blits the colour buffer.
type Explorer interface {
	ImgProvider
	SetViewport(ctx context.Context, v ViewRect) error
	View() ViewRect
	Press(ctx context.Context, x, y int) (PressOutcome, error)
	Motion(x, y int)
	Release()
}

// PressOutcome describes what a button press did to the drag state.
type PressOutcome int

const (
	PressIgnored PressOutcome = iota
	DragStarted
	// ZoomCleared means the press fell outside the marked rectangle.
	ZoomCleared
	ZoomApplied
	ZoomRejectedLimit
	ZoomRejectedNoop
)

// PressOutcomeOf maps the result of a zoom attempt to a press outcome.
func PressOutcomeOf(r ZoomResult) PressOutcome {
	switch r {
	case Zoomed:
		return ZoomApplied
	case ZoomLimit:
		return ZoomRejectedLimit
	default:
		return ZoomRejectedNoop
	}
}

func (o PressOutcome) String() string {
	switch o {
	case PressIgnored:
		return "ignored"
	case DragStarted:
		return "drag started"
	case ZoomCleared:
		return "zoom cleared"
	case ZoomApplied:
		return "zoomed"
	case ZoomRejectedLimit:
		return "zoom limit"
	case ZoomRejectedNoop:
		return "zoom no-op"
	default:
		return "unknown"
	}
}
