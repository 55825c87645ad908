// Package session holds the state of one interactive view: an orbiting
// camera, the viewport size, and the last rendered frame. It carries no
// windowing code so both the desktop viewer and the websocket server drive
// it the same way.
package session

import (
	"image"

	"surface-renderer/internal/camera"
	"surface-renderer/internal/raster"
	"surface-renderer/internal/scene"
)

// DragMode selects what a pointer drag does.
type DragMode int

const (
	Rotate DragMode = iota
	Pan
)

// Session is not safe for concurrent use.
type Session struct {
	sc          *scene.Scene
	cam         camera.Perspective
	home        camera.Perspective
	orbit       *camera.Orbit
	width       int
	height      int
	supersample int

	frame *image.NRGBA
	dirty bool
}

// New starts a session at cam with a w×h viewport.
func New(sc *scene.Scene, cam camera.Perspective, w, h, supersample int, damping bool) *Session {
	if supersample < 1 {
		supersample = 1
	}
	s := &Session{
		sc:          sc,
		cam:         cam,
		home:        cam,
		width:       max(w, 1),
		height:      max(h, 1),
		supersample: supersample,
		dirty:       true,
	}
	s.orbit = camera.NewOrbit(&s.cam)
	s.orbit.EnableDamping = damping
	s.cam.SetAspect(s.width, s.height)
	return s
}

// Size returns the viewport size in pixels.
func (s *Session) Size() (int, int) {
	return s.width, s.height
}

// Camera returns a copy of the current camera.
func (s *Session) Camera() camera.Perspective {
	return s.cam
}

// Resize updates the viewport and camera aspect. It reports whether the
// size changed; non-positive sizes are ignored.
func (s *Session) Resize(w, h int) bool {
	if w <= 0 || h <= 0 || (w == s.width && h == s.height) {
		return false
	}
	s.width, s.height = w, h
	s.cam.SetAspect(w, h)
	s.dirty = true
	return true
}

// Drag feeds a pointer movement in pixels.
func (s *Session) Drag(mode DragMode, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	switch mode {
	case Rotate:
		s.orbit.DragRotate(dx, dy, s.height)
	case Pan:
		s.orbit.DragPan(dx, dy, s.height)
	}
}

// Zoom feeds scroll-wheel notches; positive zooms in.
func (s *Session) Zoom(notches float64) {
	if notches != 0 {
		s.orbit.Wheel(notches)
	}
}

// Reset returns the camera to where the session started.
func (s *Session) Reset() {
	damping := s.orbit.EnableDamping
	s.cam = s.home
	s.cam.SetAspect(s.width, s.height)
	s.orbit = camera.NewOrbit(&s.cam)
	s.orbit.EnableDamping = damping
	s.dirty = true
}

// Tick advances the orbit controller one step and reports whether the next
// Frame will differ from the last one.
func (s *Session) Tick() bool {
	if !s.orbit.Settled() && s.orbit.Update() {
		s.dirty = true
	}
	return s.dirty
}

// Frame returns the current image, rendering only when something changed.
func (s *Session) Frame() *image.NRGBA {
	if s.dirty || s.frame == nil {
		s.frame = raster.RenderFrame(s.sc, s.cam, s.width, s.height, s.supersample)
		s.dirty = false
	}
	return s.frame
}
