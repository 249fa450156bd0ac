package mandel

// ZoomResult is the outcome of Zoom. Only Zoomed changes the view.
type ZoomResult int

const (
	Zoomed ZoomResult = iota
	// ZoomLimit means the new view would be narrower than the minimum width.
	ZoomLimit
	// ZoomNoop means the drag covered the whole screen.
	ZoomNoop
)

func (r ZoomResult) String() string {
	switch r {
	case Zoomed:
		return "zoomed"
	case ZoomLimit:
		return "zoom limit"
	case ZoomNoop:
		return "no-op"
	default:
		return "unknown"
	}
}

// Zoom maps a drag rectangle on the screen showing cur into a new view.
// The zoom rectangle is integer based and may carry small aspect ratio errors,
// so the new height is always derived from the new width.
// On ZoomLimit and ZoomNoop cur is returned.
func Zoom(cur ViewRect, drag ZoomRect, screen Screen, minWidth float64) (ViewRect, ZoomResult) {
	rz := drag.Norm().Rel()
	sw, sh := float64(screen.Width), float64(screen.Height)
	ar := screen.AspectRatio()

	// Screen rect to a centred system with Y growing upwards.
	zw := float64(rz.W)
	zh := zw / ar
	zx := float64(rz.X) - sw/2 + zw/2
	zy := -(float64(rz.Y) - sh/2 + zh/2)

	nw := cur.Width * zw / sw
	next := ViewRect{
		CenterX: cur.CenterX + cur.Width*zx/sw,
		CenterY: cur.CenterY + cur.Height*zy/sh,
		Width:   nw,
		Height:  nw / ar,
	}

	if nw < minWidth {
		return cur, ZoomLimit
	}
	if next == cur {
		return cur, ZoomNoop
	}
	return next, Zoomed
}
