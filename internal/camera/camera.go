// Package camera provides a perspective camera and an orbit controller that
// rotates, pans and dollies it around a target point.
package camera

import "surface-renderer/internal/mathutil"

// Perspective is a pinhole camera looking from Position toward Target.
type Perspective struct {
	FOV      float64 // vertical field of view, degrees
	Aspect   float64
	Near     float64
	Far      float64
	Position mathutil.Vec3
	Target   mathutil.Vec3
	Up       mathutil.Vec3
}

// Default returns the viewer's stock camera: 60° FOV, clip 0.1–200, placed
// at (10, 2, 0) looking at the origin.
func Default() Perspective {
	return Perspective{
		FOV:      60,
		Aspect:   1,
		Near:     0.1,
		Far:      200,
		Position: mathutil.Vec3{10, 2, 0},
		Up:       mathutil.Vec3{0, 1, 0},
	}
}

// SetAspect updates the aspect ratio after a viewport resize. Degenerate
// sizes leave the camera unchanged.
func (c *Perspective) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
}

// View returns the world-to-camera matrix.
func (c *Perspective) View() mathutil.Mat4 {
	return mathutil.LookAt(c.Position, c.Target, c.Up)
}

// Projection returns the camera-to-clip matrix.
func (c *Perspective) Projection() mathutil.Mat4 {
	return mathutil.Perspective(mathutil.Deg2Rad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns Projection × View.
func (c *Perspective) ViewProjection() mathutil.Mat4 {
	return mathutil.Mat4Mul(c.Projection(), c.View())
}
