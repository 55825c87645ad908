package camera

import (
	"math"

	"surface-renderer/internal/mathutil"
)

const (
	// DefaultDampingFactor matches the inertia of a typical orbit control.
	DefaultDampingFactor = 0.05

	polarEpsilon = 1e-6
	settleEps    = 1e-6

	// maxWheelNotches bounds a single Wheel call.
	maxWheelNotches = 50
)

// Orbit moves a camera on a sphere around its target. Input accumulates into
// pending deltas; Update applies them, fully or damped.
type Orbit struct {
	Cam *Perspective

	EnableDamping bool
	DampingFactor float64
	RotateSpeed   float64
	ZoomSpeed     float64
	MinDistance   float64
	MaxDistance   float64
	MinPolar      float64
	MaxPolar      float64

	dTheta, dPhi float64
	scale        float64
	pan          mathutil.Vec3
}

// NewOrbit attaches a controller to cam with damping enabled. The camera
// may not back away beyond its far plane.
func NewOrbit(cam *Perspective) *Orbit {
	maxDist := math.Inf(1)
	if cam.Far > 0 {
		maxDist = cam.Far
	}
	return &Orbit{
		Cam:           cam,
		EnableDamping: true,
		DampingFactor: DefaultDampingFactor,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		MinDistance:   0,
		MaxDistance:   maxDist,
		MinPolar:      0,
		MaxPolar:      math.Pi,
		scale:         1,
	}
}

// Rotate queues an azimuth (about Up) and polar rotation, in radians.
func (o *Orbit) Rotate(dTheta, dPhi float64) {
	o.dTheta += dTheta
	o.dPhi += dPhi
}

// DragRotate converts a pointer drag in pixels to a rotation: a drag across
// the full viewport height turns a full circle.
func (o *Orbit) DragRotate(dx, dy float64, viewportHeight int) {
	if viewportHeight <= 0 {
		return
	}
	h := float64(viewportHeight)
	o.Rotate(-2*math.Pi*dx/h*o.RotateSpeed, -2*math.Pi*dy/h*o.RotateSpeed)
}

// Pan queues a target translation in camera-plane units: dx right, dy up.
func (o *Orbit) Pan(dx, dy float64) {
	c := o.Cam
	fwd := c.Target.Sub(c.Position).Normalize()
	right := fwd.Cross(c.Up).Normalize()
	up := right.Cross(fwd)
	o.pan = o.pan.Add(right.Scale(dx)).Add(up.Scale(dy))
}

// DragPan converts a pointer drag in pixels to a pan so that the target
// plane tracks the pointer.
func (o *Orbit) DragPan(dx, dy float64, viewportHeight int) {
	if viewportHeight <= 0 {
		return
	}
	dist := o.Cam.Position.Sub(o.Cam.Target).Len()
	visible := 2 * dist * math.Tan(mathutil.Deg2Rad(o.Cam.FOV)/2)
	perPixel := visible / float64(viewportHeight)
	o.Pan(-dx*perPixel, dy*perPixel)
}

// Dolly scales the camera distance; s < 1 moves closer.
func (o *Orbit) Dolly(s float64) {
	if s > 0 && !math.IsInf(s, 1) {
		o.scale *= s
	}
}

// Wheel dollies by one notch per unit of scroll; positive scrolls in.
func (o *Orbit) Wheel(delta float64) {
	if math.IsNaN(delta) {
		return
	}
	delta = mathutil.Clamp(delta, -maxWheelNotches, maxWheelNotches)
	o.Dolly(math.Pow(0.95, o.ZoomSpeed*delta))
}

// Update applies pending input to the camera and reports whether it moved.
func (o *Orbit) Update() bool {
	c := o.Cam
	offset := c.Position.Sub(c.Target)

	radius := offset.Len()
	theta := math.Atan2(offset[0], offset[2])
	phi := 0.0
	if radius > 0 {
		phi = math.Acos(mathutil.Clamp(offset[1]/radius, -1, 1))
	}

	k := 1.0
	if o.EnableDamping {
		k = o.DampingFactor
	}
	theta += o.dTheta * k
	phi += o.dPhi * k
	phi = mathutil.Clamp(phi, math.Max(o.MinPolar, polarEpsilon), math.Min(o.MaxPolar, math.Pi-polarEpsilon))

	radius = mathutil.Clamp(radius*o.scale, o.MinDistance, o.MaxDistance)
	c.Target = c.Target.Add(o.pan.Scale(k))

	sinPhi := math.Sin(phi)
	offset = mathutil.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	}
	prev := c.Position
	c.Position = c.Target.Add(offset)

	if o.EnableDamping {
		o.dTheta *= 1 - o.DampingFactor
		o.dPhi *= 1 - o.DampingFactor
		o.pan = o.pan.Scale(1 - o.DampingFactor)
	} else {
		o.dTheta, o.dPhi = 0, 0
		o.pan = mathutil.Vec3{}
	}
	o.scale = 1

	return prev.Sub(c.Position).Len() > settleEps
}

// Settled reports whether no input is pending, so Update would not move
// the camera.
func (o *Orbit) Settled() bool {
	return math.Abs(o.dTheta) < settleEps && math.Abs(o.dPhi) < settleEps &&
		o.pan.Len() < settleEps && o.scale == 1
}

// Orbited returns a copy of cam rotated by theta radians about the target's
// vertical axis. It does not touch any controller state.
func Orbited(cam Perspective, theta float64) Perspective {
	o := NewOrbit(&cam)
	o.EnableDamping = false
	o.Rotate(theta, 0)
	o.Update()
	return cam
}
