// Package session holds the state of one interactive viewer: the current
// view, the last rendered frame and the zoom drag gesture.
package session

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log/slog"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/render"
)

// Session is driven from a single goroutine.
type Session struct {
	cfg     mandel.Config
	opts    render.Options
	palette *render.Palette
	log     *slog.Logger

	view  mandel.ViewRect
	frame *render.Frame
	img   *image.RGBA

	state State
	zoom  mandel.ZoomRect
}

var _ mandel.Explorer = (*Session)(nil)

// Option configures a Session.
type Option func(*Session)

// WithLogger replaces slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithProgress reports finished columns of every evaluation pass.
func WithProgress(fn func(done, total int)) Option {
	return func(s *Session) { s.opts.Progress = fn }
}

// New creates an idle session showing a blank screen. Call SetViewport to
// render the first view.
func New(cfg mandel.Config, opts ...Option) *Session {
	s := &Session{
		cfg:     cfg,
		opts:    render.OptionsFromConfig(cfg),
		palette: render.NewPalette(cfg.MaxDepth + 1),
		log:     slog.Default(),
		view:    mandel.WorldView(cfg),
		img:     image.NewRGBA(image.Rect(0, 0, cfg.Screen.Width, cfg.Screen.Height)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Config returns the configuration the session was created with.
func (s *Session) Config() mandel.Config { return s.cfg }

// View returns the view of the current frame.
func (s *Session) View() mandel.ViewRect { return s.view }

// Frame returns the last complete evaluation, or nil before the first one.
func (s *Session) Frame() *render.Frame { return s.frame }

// Palette returns the palette balanced for the current frame.
func (s *Session) Palette() *render.Palette { return s.palette }

// State returns the drag gesture state.
func (s *Session) State() State { return s.state }

// ZoomRect returns the zoom rectangle, if one is being dragged or is marked.
func (s *Session) ZoomRect() (mandel.ZoomRect, bool) {
	return s.zoom, s.state != Idle
}

// ColorBuffer returns the last fully rendered frame. It is never partially drawn.
func (s *Session) ColorBuffer() *image.RGBA { return s.img }

// Overlay returns a copy of the colour buffer with the zoom rectangle outlined.
func (s *Session) Overlay() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	draw.Draw(out, out.Bounds(), s.img, image.Point{}, draw.Src)
	if r, ok := s.ZoomRect(); ok {
		render.Outline(out, r.Norm().Rel(), render.ZoomColor)
	}
	return out
}

// SetViewport evaluates v, rebalances the palette and renders the colour
// buffer. The view, frame and buffer are only replaced once the whole pass
// has finished; a cancelled pass leaves the previous frame in place.
func (s *Session) SetViewport(ctx context.Context, v mandel.ViewRect) error {
	if err := v.Validate(s.cfg); err != nil {
		return err
	}
	c := mandel.CompactView(v, s.cfg.Precision, s.cfg.MaxDecimalPlaces)
	s.log.Info("calculating", "x", c[0], "y", c[1], "w", c[2], "h", c[3])

	frame, err := render.Evaluate(v, s.opts, render.ContextCheck(ctx))
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", v, err)
	}

	s.palette.Reset()
	s.palette.Accumulate(frame.Histogram)
	b := s.palette.Rebalance(s.cfg.LowFraction, s.cfg.HighFraction)
	s.log.Debug("palette balanced", "low", b.Low, "high", b.High, "gain", b.Gain)

	s.view = v
	s.frame = frame
	s.img = render.Colorize(frame, s.palette)
	return nil
}

// Press handles a button press at x, y. In Idle it starts a drag anchored at
// x, y clamped to the screen. With a marked rectangle a press inside it zooms
// and a press outside clears it. If the zoomed view fails to render the
// previous view stays and PressIgnored is returned with the error.
func (s *Session) Press(ctx context.Context, x, y int) (mandel.PressOutcome, error) {
	switch s.state {
	case Idle:
		x = min(max(x, 0), s.cfg.Screen.Width-1)
		y = min(max(y, 0), s.cfg.Screen.Height-1)
		s.state = Dragging
		s.zoom = mandel.ZoomRect{X1: x, Y1: y, X2: x, Y2: y}
		return mandel.DragStarted, nil

	case Marked:
		drag := s.zoom
		s.clear()
		if !drag.Contains(x, y) {
			return mandel.ZoomCleared, nil
		}
		next, res := mandel.Zoom(s.view, drag, s.cfg.Screen, s.cfg.MinWidth)
		if res != mandel.Zoomed {
			s.log.Info(res.String(), "rect", drag)
			return mandel.PressOutcomeOf(res), nil
		}
		if err := s.SetViewport(ctx, next); err != nil {
			return mandel.PressIgnored, err
		}
		return mandel.ZoomApplied, nil
	}
	return mandel.PressIgnored, nil
}

// Motion updates the dragged rectangle. It is ignored unless dragging.
func (s *Session) Motion(x, y int) {
	if s.state != Dragging {
		return
	}
	s.zoom = dragTo(s.zoom, x, y, s.cfg.Screen)
}

// Release fixes the dragged rectangle.
func (s *Session) Release() {
	if s.state == Dragging {
		s.state = Marked
	}
}

// Reset discards any dragged or marked rectangle.
func (s *Session) Reset() {
	s.clear()
}

func (s *Session) clear() {
	s.state = Idle
	s.zoom = mandel.ZoomRect{}
}
