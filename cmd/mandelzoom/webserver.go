package main

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

//go:embed static
var staticFS embed.FS

// webServer creates a server for the embedded viewer page and its websocket
// endpoint. Upgraded connections are handed out by the returned listener.
func webServer(ctx context.Context, addr string, origins []string) (*WebsocketListener, *http.Server) {
	l := NewWSListener(ctx, addr+"/ws")
	srv := &http.Server{
		Addr:              addr,
		Handler:           viewerMux(l, origins),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return l, srv
}

func viewerMux(l *WebsocketListener, origins []string) *http.ServeMux {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(l, origins))
	mux.Handle("/", http.FileServerFS(static))
	return mux
}

// websocketHandler upgrades the request and passes the connection on to l.
// Without origin patterns only same-origin requests are accepted.
func websocketHandler(l *WebsocketListener, origins []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: origins,
		})
		if err != nil {
			slog.Warn("websocket accept", "remote", r.RemoteAddr, "err", err)
			return
		}

		select {
		case l.ch <- c:
		case <-l.ctx.Done():
			c.Close(websocket.StatusGoingAway, "server shutting down")
		}
	}
}

// WebsocketListener hands out upgraded websocket connections.
type WebsocketListener struct {
	ch     chan *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	addr   wsAddr
}

func NewWSListener(ctx context.Context, addr string) *WebsocketListener {
	ctx, cancel := context.WithCancel(ctx)
	return &WebsocketListener{
		ch:     make(chan *websocket.Conn),
		ctx:    ctx,
		cancel: cancel,
		addr:   wsAddr{addr: addr},
	}
}

// Accept blocks until a client connects or the listener is closed.
func (l *WebsocketListener) Accept() (*websocket.Conn, error) {
	select {
	case c := <-l.ch:
		return c, nil
	case <-l.ctx.Done():
		return nil, net.ErrClosed
	}
}

func (l *WebsocketListener) Addr() net.Addr {
	return l.addr
}

func (l *WebsocketListener) Close() error {
	l.cancel()
	return nil
}

// wsAddr implements net.Addr
type wsAddr struct {
	addr string
}

func (a wsAddr) Network() string {
	return "ws"
}

func (a wsAddr) String() string {
	return a.addr
}
