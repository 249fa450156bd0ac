package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/render"
	"github.com/marben/mandelzoom/session"
)

// clientMessage is a mouse or menu event sent by the viewer page.
type clientMessage struct {
	Type   string `json:"type"` // press, motion, release, preset, world
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Preset string `json:"preset,omitempty"`
}

type zoomJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// statusMessage follows every handled event. Frames are sent before it as
// binary PNG messages.
type statusMessage struct {
	Type    string    `json:"type"`
	State   string    `json:"state"`
	View    [4]string `json:"view"`
	Zoom    *zoomJSON `json:"zoom"`
	Message string    `json:"message,omitempty"`
}

type progressMessage struct {
	Type    string `json:"type"`
	Percent int    `json:"percent"`
}

type viewer struct {
	conn *websocket.Conn
	s    *session.Session
	cfg  mandel.Config
	log  *slog.Logger

	// mu serialises writes from progress callbacks of concurrent workers.
	mu           sync.Mutex
	lastProgress int
}

// serveViewer runs a session for one connection. Reading happens on a
// separate goroutine so that a disconnect cancels a running evaluation.
func serveViewer(ctx context.Context, c *websocket.Conn, cfg mandel.Config, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer c.CloseNow()

	v := &viewer{conn: c, cfg: cfg, log: log}
	v.s = session.New(cfg, session.WithLogger(log), session.WithProgress(v.progress(ctx)))

	msgs := make(chan clientMessage, 16)
	go func() {
		defer cancel()
		for {
			var m clientMessage
			if err := wsjson.Read(ctx, c, &m); err != nil {
				log.Debug("read", "err", err)
				return
			}
			select {
			case msgs <- m:
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := v.show(ctx, mandel.WorldView(cfg)); err != nil {
		return ignoreCancel(ctx, err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case m := <-msgs:
			if err := v.handle(ctx, m); err != nil {
				return ignoreCancel(ctx, err)
			}
		}
	}
}

// ignoreCancel drops errors caused by the connection going away.
func ignoreCancel(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (v *viewer) handle(ctx context.Context, m clientMessage) error {
	switch m.Type {
	case "press":
		v.resetProgress()
		out, err := v.s.Press(ctx, m.X, m.Y)
		if err != nil {
			return err
		}
		switch out {
		case mandel.ZoomApplied:
			if err := v.sendFrame(ctx); err != nil {
				return err
			}
			return v.sendStatus(ctx, "")
		case mandel.ZoomRejectedLimit:
			return v.sendStatus(ctx, "Zoom Limit")
		case mandel.ZoomRejectedNoop:
			return v.sendStatus(ctx, "Zoom No-op")
		}
		return v.sendStatus(ctx, "")

	case "motion":
		v.s.Motion(m.X, m.Y)
		return v.sendStatus(ctx, "")

	case "release":
		v.s.Release()
		return v.sendStatus(ctx, "")

	case "world":
		return v.show(ctx, mandel.WorldView(v.cfg))

	case "preset":
		p, ok := mandel.Presets().Lookup(m.Preset)
		if !ok {
			return v.sendStatus(ctx, fmt.Sprintf("unknown preset %q", m.Preset))
		}
		return v.show(ctx, p.View)
	}
	return v.sendStatus(ctx, fmt.Sprintf("unknown message type %q", m.Type))
}

// show renders view from scratch, discarding any zoom rectangle.
func (v *viewer) show(ctx context.Context, view mandel.ViewRect) error {
	v.s.Reset()
	v.resetProgress()
	if err := v.s.SetViewport(ctx, view); err != nil {
		return err
	}
	if err := v.sendFrame(ctx); err != nil {
		return err
	}
	return v.sendStatus(ctx, "")
}

func (v *viewer) sendFrame(ctx context.Context) error {
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, v.s.ColorBuffer()); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.conn.Write(ctx, websocket.MessageBinary, buf.Bytes()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (v *viewer) sendStatus(ctx context.Context, message string) error {
	msg := statusMessage{
		Type:    "status",
		State:   v.s.State().String(),
		View:    mandel.CompactView(v.s.View(), v.cfg.Precision, v.cfg.MaxDecimalPlaces),
		Message: message,
	}
	if r, ok := v.s.ZoomRect(); ok {
		rel := r.Norm().Rel()
		msg.Zoom = &zoomJSON{X: rel.X, Y: rel.Y, W: rel.W, H: rel.H}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := wsjson.Write(ctx, v.conn, msg); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	return nil
}

// resetProgress is called before anything that may start an evaluation pass.
func (v *viewer) resetProgress() {
	v.mu.Lock()
	v.lastProgress = -1
	v.mu.Unlock()
}

// progress sends the evaluation progress in whole percent, skipping repeats.
func (v *viewer) progress(ctx context.Context) func(done, total int) {
	return func(done, total int) {
		pct := done * 100 / total
		v.mu.Lock()
		defer v.mu.Unlock()
		if pct == v.lastProgress {
			return
		}
		v.lastProgress = pct
		if err := wsjson.Write(ctx, v.conn, progressMessage{Type: "progress", Percent: pct}); err != nil {
			v.log.Debug("write progress", "err", err)
		}
	}
}
