package session

import (
	"context"
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/render"
)

func smallConfig() mandel.Config {
	cfg := mandel.DefaultConfig()
	cfg.Screen = mandel.Screen{Width: 60, Height: 40}
	cfg.MaxDepth = 32
	return cfg
}

func TestDragReverse(t *testing.T) {
	s := New(mandel.DefaultConfig())
	out, err := s.Press(context.Background(), 100, 100)
	require.NoError(t, err)
	assert.Equal(t, mandel.DragStarted, out)
	assert.Equal(t, Dragging, s.State())

	r, ok := s.ZoomRect()
	require.True(t, ok)
	assert.Equal(t, mandel.ZoomRect{X1: 100, Y1: 100, X2: 100, Y2: 100}, r)

	s.Motion(50, 80)
	r, _ = s.ZoomRect()
	assert.Equal(t, mandel.ZoomRect{X1: 100, Y1: 100, X2: 50, Y2: 67}, r)
	assert.Less(t, r.X2, r.X1)
	assert.Less(t, r.Y2, r.Y1)
	assert.Equal(t, mandel.ScreenRect{X: 50, Y: 67, W: 51, H: 34}, r.Norm().Rel())
}

func TestDragTo(t *testing.T) {
	screen := mandel.Screen{Width: 600, Height: 400}
	testCases := []struct {
		name   string
		x, y   int
		mx, my int
		want   mandel.ZoomRect
	}{
		{"forward", 100, 100, 400, 380, mandel.ZoomRect{X1: 100, Y1: 100, X2: 400, Y2: 300}},
		{"bottom edge", 100, 300, 500, 390, mandel.ZoomRect{X1: 100, Y1: 300, X2: 249, Y2: 399}},
		{"top edge", 500, 50, 100, 0, mandel.ZoomRect{X1: 500, Y1: 50, X2: 424, Y2: 0}},
		{"outside screen", 10, 10, -50, 1000, mandel.ZoomRect{X1: 10, Y1: 10, X2: 0, Y2: 16}},
		{"same point", 42, 42, 42, 42, mandel.ZoomRect{X1: 42, Y1: 42, X2: 42, Y2: 42}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			start := mandel.ZoomRect{X1: tc.x, Y1: tc.y, X2: tc.x, Y2: tc.y}
			assert.Equal(t, tc.want, dragTo(start, tc.mx, tc.my, screen))
		})
	}
}

func TestDragStaysOnScreen(t *testing.T) {
	screen := mandel.Screen{Width: 600, Height: 400}
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		x, y := rnd.Intn(600), rnd.Intn(400)
		start := mandel.ZoomRect{X1: x, Y1: y, X2: x, Y2: y}
		r := dragTo(start, rnd.Intn(800)-100, rnd.Intn(600)-100, screen)

		n := r.Norm()
		rel := n.Rel()
		require.GreaterOrEqual(t, rel.W, 1, "%s", r)
		require.GreaterOrEqual(t, rel.H, 1, "%s", r)
		require.GreaterOrEqual(t, n.X1, 0, "%s", r)
		require.GreaterOrEqual(t, n.Y1, 0, "%s", r)
		require.Less(t, n.X2, 600, "%s", r)
		require.Less(t, n.Y2, 400, "%s", r)
		assert.Equal(t, x, r.X1)
		assert.Equal(t, y, r.Y1)
	}
}

func TestStateMachine(t *testing.T) {
	ctx := context.Background()
	s := New(smallConfig())

	// motion and release do nothing without a drag
	s.Motion(10, 10)
	s.Release()
	assert.Equal(t, Idle, s.State())
	_, ok := s.ZoomRect()
	assert.False(t, ok)

	_, err := s.Press(ctx, 5, 5)
	require.NoError(t, err)
	out, err := s.Press(ctx, 6, 6)
	require.NoError(t, err)
	assert.Equal(t, mandel.PressIgnored, out)
	assert.Equal(t, Dragging, s.State())

	s.Motion(20, 15)
	s.Release()
	assert.Equal(t, Marked, s.State())

	// motion after release does not move the marked rectangle
	before, _ := s.ZoomRect()
	s.Motion(40, 30)
	after, _ := s.ZoomRect()
	assert.Equal(t, before, after)

	out, err = s.Press(ctx, 50, 35)
	require.NoError(t, err)
	assert.Equal(t, mandel.ZoomCleared, out)
	assert.Equal(t, Idle, s.State())
	_, ok = s.ZoomRect()
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := New(smallConfig())

	_, err := s.Press(ctx, 5, 5)
	require.NoError(t, err)
	s.Motion(20, 15)
	s.Release()
	s.Reset()
	assert.Equal(t, Idle, s.State())
	_, ok := s.ZoomRect()
	assert.False(t, ok)

	// the next press starts a new drag instead of zooming
	out, err := s.Press(ctx, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, mandel.DragStarted, out)
}

func TestPressOffScreen(t *testing.T) {
	ctx := context.Background()
	s := New(smallConfig())
	require.NoError(t, s.SetViewport(ctx, mandel.WorldView(s.Config())))

	out, err := s.Press(ctx, -1000, -1000)
	require.NoError(t, err)
	assert.Equal(t, mandel.DragStarted, out)
	r, _ := s.ZoomRect()
	assert.Equal(t, mandel.ZoomRect{X1: 0, Y1: 0, X2: 0, Y2: 0}, r)

	s.Motion(59, 39)
	s.Release()
	r, _ = s.ZoomRect()
	assert.Equal(t, mandel.ScreenRect{X: 0, Y: 0, W: 60, H: 40}, r.Norm().Rel())

	// the whole screen again: the view must not grow past the world view
	out, err = s.Press(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, mandel.ZoomRejectedNoop, out)
	assert.Equal(t, mandel.WorldView(s.Config()), s.View())

	_, err = s.Press(ctx, 500, 500)
	require.NoError(t, err)
	r, _ = s.ZoomRect()
	assert.Equal(t, mandel.ZoomRect{X1: 59, Y1: 39, X2: 59, Y2: 39}, r)
}

func TestZoomFailureKeepsView(t *testing.T) {
	s := New(smallConfig())
	require.NoError(t, s.SetViewport(context.Background(), mandel.WorldView(s.Config())))
	before := s.ColorBuffer()

	ctx, cancel := context.WithCancel(context.Background())
	_, err := s.Press(ctx, 15, 10)
	require.NoError(t, err)
	s.Motion(44, 29)
	s.Release()
	cancel()

	out, err := s.Press(ctx, 30, 20)
	assert.ErrorIs(t, err, render.ErrCancelled)
	assert.Equal(t, mandel.PressIgnored, out)
	assert.Equal(t, mandel.WorldView(s.Config()), s.View())
	assert.Same(t, before, s.ColorBuffer())
	assert.Equal(t, Idle, s.State())
}

func TestZoomIn(t *testing.T) {
	ctx := context.Background()
	s := New(smallConfig())
	world := mandel.WorldView(s.Config())
	require.NoError(t, s.SetViewport(ctx, world))
	first := s.ColorBuffer()

	_, err := s.Press(ctx, 15, 10)
	require.NoError(t, err)
	s.Motion(44, 29)
	s.Release()

	out, err := s.Press(ctx, 30, 20)
	require.NoError(t, err)
	assert.Equal(t, mandel.ZoomApplied, out)
	assert.Equal(t, Idle, s.State())

	v := s.View()
	assert.InDelta(t, world.Width/2, v.Width, 1e-12)
	assert.Equal(t, v.Width/s.Config().Screen.AspectRatio(), v.Height)
	assert.NotSame(t, first, s.ColorBuffer())
	require.NotNil(t, s.Frame())
	assert.Equal(t, v, s.Frame().View)
}

func TestZoomNoop(t *testing.T) {
	ctx := context.Background()
	s := New(smallConfig())
	require.NoError(t, s.SetViewport(ctx, mandel.WorldView(s.Config())))
	frame := s.Frame()

	_, err := s.Press(ctx, 0, 0)
	require.NoError(t, err)
	s.Motion(59, 39)
	s.Release()
	r, _ := s.ZoomRect()
	require.Equal(t, mandel.ZoomRect{X1: 0, Y1: 0, X2: 59, Y2: 39}, r)

	out, err := s.Press(ctx, 30, 20)
	require.NoError(t, err)
	assert.Equal(t, mandel.ZoomRejectedNoop, out)
	assert.Same(t, frame, s.Frame())
	assert.Equal(t, Idle, s.State())
}

func TestZoomLimit(t *testing.T) {
	ctx := context.Background()
	cfg := smallConfig()
	s := New(cfg)
	tiny := mandel.NewViewRect(1, 1, 2*cfg.MinWidth, cfg.Screen)
	require.NoError(t, s.SetViewport(ctx, tiny))

	_, err := s.Press(ctx, 10, 10)
	require.NoError(t, err)
	s.Motion(20, 20)
	s.Release()

	out, err := s.Press(ctx, 12, 12)
	require.NoError(t, err)
	assert.Equal(t, mandel.ZoomRejectedLimit, out)
	assert.Equal(t, tiny, s.View())
	assert.Equal(t, Idle, s.State())
	_, ok := s.ZoomRect()
	assert.False(t, ok)
}

func TestSetViewportCancelledKeepsFrame(t *testing.T) {
	s := New(smallConfig())
	world := mandel.WorldView(s.Config())
	require.NoError(t, s.SetViewport(context.Background(), world))
	img, frame := s.ColorBuffer(), s.Frame()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := mandel.Presets()[2]
	err := s.SetViewport(ctx, p.View)
	assert.ErrorIs(t, err, render.ErrCancelled)

	assert.Equal(t, world, s.View())
	assert.Same(t, img, s.ColorBuffer())
	assert.Same(t, frame, s.Frame())
}

func TestSetViewportRejectsInvalid(t *testing.T) {
	s := New(smallConfig())
	err := s.SetViewport(context.Background(), mandel.ViewRect{Width: 10, Height: 1})
	assert.ErrorIs(t, err, mandel.ErrOutOfRange)
	assert.Nil(t, s.Frame())
}

func TestProgressOption(t *testing.T) {
	var last int
	s := New(smallConfig(), WithProgress(func(done, total int) { last = done }))
	require.NoError(t, s.SetViewport(context.Background(), mandel.WorldView(s.Config())))
	assert.Equal(t, 60, last)
}

func TestOverlay(t *testing.T) {
	ctx := context.Background()
	s := New(smallConfig())
	require.NoError(t, s.SetViewport(ctx, mandel.WorldView(s.Config())))

	_, err := s.Press(ctx, 10, 10)
	require.NoError(t, err)
	s.Motion(25, 20)

	img := s.Overlay()
	assert.Equal(t, render.ZoomColor, img.RGBAAt(10, 10))
	assert.NotEqual(t, render.ZoomColor, s.ColorBuffer().RGBAAt(10, 10))
	assert.Equal(t, image.Rect(0, 0, 60, 40), img.Bounds())
}
