package stream

import (
	"bytes"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"surface-renderer/internal/camera"
	"surface-renderer/internal/mathutil"
	"surface-renderer/internal/scene"
	"surface-renderer/internal/session"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	sc, err := scene.Build(scene.DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := New(sc, camera.Default(), Options{
		Width:       64,
		Height:      48,
		Supersample: 1,
		Interval:    5 * time.Millisecond,
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	typ, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if typ != websocket.BinaryMessage {
		t.Fatalf("message type = %d, want binary", typ)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Fatalf("frame is not a WebP container (%d bytes)", len(data))
	}
	return data
}

func TestIndexPage(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Contains(body, []byte("/ws")) {
		t.Errorf("index page does not open the websocket")
	}
}

func TestInitialFrame(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readFrame(t, conn)
}

func TestRotateSendsNewFrame(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	first := readFrame(t, conn)

	if err := conn.WriteJSON(Message{Type: "rotate", DX: 20}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	second := readFrame(t, conn)
	if bytes.Equal(first, second) {
		t.Errorf("frame after rotate is identical to the first")
	}
}

func TestResizeAndReset(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	first := readFrame(t, conn)

	if err := conn.WriteJSON(Message{Type: "resize", Width: 32, Height: 32}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	readFrame(t, conn)

	if err := conn.WriteJSON(Message{Type: "resize", Width: 64, Height: 48}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if err := conn.WriteJSON(Message{Type: "reset"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	// The last frame back at the starting pose comes from the shared cache.
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if bytes.Equal(readFrame(t, conn), first) {
			return
		}
	}
	t.Fatalf("no frame matched the initial view after reset")
}

func TestApplyRejectsBadMessages(t *testing.T) {
	s, _ := newTestServer(t)
	c := &client{srv: s}

	tests := []Message{
		{Type: "spin"},
		{Type: "resize", Width: maxViewport + 1, Height: 10},
		{Type: "zoom", Delta: -1e6},
		{Type: "zoom", Delta: math.NaN()},
		{Type: "rotate", DX: 1e9},
		{Type: "pan", DY: math.Inf(-1)},
	}
	for _, msg := range tests {
		if err := c.apply(msg); err == nil {
			t.Errorf("apply(%+v) = nil, want error", msg)
		}
	}
}

func TestApplyZoomKeepsCameraFinite(t *testing.T) {
	s, _ := newTestServer(t)
	c := &client{srv: s, sess: session.New(s.sc, s.cam, 64, 48, 1, false)}

	for i := 0; i < 100; i++ {
		if err := c.apply(Message{Type: "zoom", Delta: -maxWheelDelta}); err != nil {
			t.Fatalf("apply: %v", err)
		}
		c.sess.Tick()
	}
	cam := c.sess.Camera()
	if d := cam.Position.Sub(cam.Target).Len(); math.IsInf(d, 0) || math.IsNaN(d) || d > cam.Far+1e-9 {
		t.Errorf("camera distance = %v, want at most far plane %v", d, cam.Far)
	}
}

func TestFrameCache(t *testing.T) {
	c := newFrameCache(2)
	calls := 0
	fn := func() ([]byte, error) {
		calls++
		return []byte{byte(calls)}, nil
	}

	a1, _ := c.Get("a", fn)
	a2, _ := c.Get("a", fn)
	if calls != 1 || !bytes.Equal(a1, a2) {
		t.Errorf("second Get re-encoded: calls = %d", calls)
	}

	c.Get("b", fn)
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	c.Get("c", fn)
	if c.Len() != 1 {
		t.Errorf("Len after overflow = %d, want 1", c.Len())
	}

	boom := errors.New("boom")
	if _, err := c.Get("d", func() ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("Get error = %v, want boom", err)
	}
	if c.Len() != 1 {
		t.Errorf("failed encode was cached")
	}
}

func TestKeyForDistinguishesCameraAndSize(t *testing.T) {
	cam := camera.Default()
	moved := cam
	moved.Position[0] += 0.5

	if keyFor(cam, 10, 10) == keyFor(moved, 10, 10) {
		t.Errorf("different positions share a key")
	}
	if keyFor(cam, 10, 10) == keyFor(cam, 20, 10) {
		t.Errorf("different sizes share a key")
	}
	for name, mod := range map[string]func(*camera.Perspective){
		"up":   func(c *camera.Perspective) { c.Up = mathutil.Vec3{0, 0, 1} },
		"near": func(c *camera.Perspective) { c.Near = 1 },
		"far":  func(c *camera.Perspective) { c.Far = 50 },
		"fov":  func(c *camera.Perspective) { c.FOV = 45 },
	} {
		other := cam
		mod(&other)
		if keyFor(cam, 10, 10) == keyFor(other, 10, 10) {
			t.Errorf("different %s share a key", name)
		}
	}
	if keyFor(cam, 10, 10) != keyFor(cam, 10, 10) {
		t.Errorf("key is not stable")
	}
}
