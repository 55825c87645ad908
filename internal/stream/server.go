// Package stream serves the scene to a browser. The page at / opens a
// websocket on /ws, sends orbit input as JSON and draws the WebP frames it
// gets back.
package stream

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"surface-renderer/internal/camera"
	"surface-renderer/internal/encode"
	"surface-renderer/internal/logging"
	"surface-renderer/internal/raster"
	"surface-renderer/internal/scene"
	"surface-renderer/internal/session"
)

//go:embed web
var webFS embed.FS

const (
	defaultInterval   = 33 * time.Millisecond
	defaultCacheLimit = 256
	maxViewport       = 4096
	maxWheelDelta     = 50
)

// Message is a client input event.
type Message struct {
	Type   string  `json:"type"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
}

// Options configures a Server.
type Options struct {
	Width       int
	Height      int
	Supersample int
	Damping     bool
	// Interval between frame checks. Zero means about 30 per second.
	Interval time.Duration
	// CacheLimit bounds the shared frame cache. Zero means 256 frames.
	CacheLimit int
}

// Server renders one scene for any number of websocket clients. Each client
// gets its own camera.
type Server struct {
	sc   *scene.Scene
	cam  camera.Perspective
	opts Options

	cache    *frameCache
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu      sync.Mutex
	clients int
}

// New creates a server for sc starting every client at cam.
func New(sc *scene.Scene, cam camera.Perspective, opts Options) *Server {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.CacheLimit <= 0 {
		opts.CacheLimit = defaultCacheLimit
	}
	return &Server{
		sc:    sc,
		cam:   cam,
		opts:  opts,
		cache: newFrameCache(opts.CacheLimit),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: logging.Logger().With("component", "stream"),
	}
}

// Clients returns the number of open websocket connections.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clients
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("stream: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("stream: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("stream: %w", err)
	}
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	s.mu.Lock()
	s.clients++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.clients--
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &client{
		srv:  s,
		conn: conn,
		sess: session.New(s.sc, s.cam, s.opts.Width, s.opts.Height, s.opts.Supersample, s.opts.Damping),
		log:  s.log.With("remote", r.RemoteAddr),
	}
	c.log.Debug("client connected")

	go func() {
		defer cancel()
		c.readLoop()
	}()
	if err := c.writeLoop(ctx); err != nil {
		c.log.Debug("client closed", "err", err)
	}
}

// client couples a connection with its session. Reads and the frame loop
// run on separate goroutines; mu guards the session.
type client struct {
	srv  *Server
	conn *websocket.Conn
	log  *slog.Logger

	mu   sync.Mutex
	sess *session.Session
}

func (c *client) readLoop() {
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debug("websocket read", "err", err)
			}
			return
		}
		c.mu.Lock()
		err := c.apply(msg)
		c.mu.Unlock()
		if err != nil {
			c.log.Debug("ignoring message", "type", msg.Type, "err", err)
		}
	}
}

// apply feeds msg into the session. The caller holds c.mu.
func (c *client) apply(msg Message) error {
	switch msg.Type {
	case "rotate", "pan":
		if !withinLimit(msg.DX, maxViewport) || !withinLimit(msg.DY, maxViewport) {
			return fmt.Errorf("drag %g,%g out of range", msg.DX, msg.DY)
		}
		mode := session.Rotate
		if msg.Type == "pan" {
			mode = session.Pan
		}
		c.sess.Drag(mode, msg.DX, msg.DY)
	case "zoom":
		if !withinLimit(msg.Delta, maxWheelDelta) {
			return fmt.Errorf("zoom %g out of range", msg.Delta)
		}
		c.sess.Zoom(msg.Delta)
	case "resize":
		if msg.Width > maxViewport || msg.Height > maxViewport {
			return fmt.Errorf("viewport %dx%d too large", msg.Width, msg.Height)
		}
		c.sess.Resize(msg.Width, msg.Height)
	case "reset":
		c.sess.Reset()
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

// writeLoop sends a frame whenever the camera or viewport changed since the
// last one it sent.
func (c *client) writeLoop(ctx context.Context) error {
	ticker := time.NewTicker(c.srv.opts.Interval)
	defer ticker.Stop()

	var last frameKey
	for {
		c.mu.Lock()
		c.sess.Tick()
		cam := c.sess.Camera()
		w, h := c.sess.Size()
		c.mu.Unlock()

		if key := keyFor(cam, w, h); key != last {
			data, err := c.srv.cache.Get(key, func() ([]byte, error) {
				return c.srv.encodeFrame(cam, w, h)
			})
			if err != nil {
				return err
			}
			c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return err
			}
			last = key
		}

		select {
		case <-ctx.Done():
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// withinLimit reports whether v is finite and |v| <= limit.
func withinLimit(v, limit float64) bool {
	return !math.IsNaN(v) && math.Abs(v) <= limit
}

func (s *Server) encodeFrame(cam camera.Perspective, w, h int) ([]byte, error) {
	img := raster.RenderFrame(s.sc, cam, w, h, s.opts.Supersample)
	var buf bytes.Buffer
	if err := encode.Write(&buf, img, encode.WebP); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
