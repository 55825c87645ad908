package camera

import (
	"math"
	"testing"

	"surface-renderer/internal/mathutil"
)

func TestSetAspect(t *testing.T) {
	c := Default()
	c.SetAspect(1600, 800)
	if c.Aspect != 2 {
		t.Errorf("Aspect = %v, want 2", c.Aspect)
	}
	c.SetAspect(0, 800)
	if c.Aspect != 2 {
		t.Errorf("degenerate resize changed aspect to %v", c.Aspect)
	}
}

func TestTargetProjectsToCentre(t *testing.T) {
	c := Default()
	c.SetAspect(4, 3)
	clip := c.ViewProjection().MulPoint4(c.Target)
	if math.Abs(clip[0]/clip[3]) > 1e-9 || math.Abs(clip[1]/clip[3]) > 1e-9 {
		t.Errorf("target ndc = (%v, %v), want centre", clip[0]/clip[3], clip[1]/clip[3])
	}
}

func TestOrbitWithoutDampingPreservesDistance(t *testing.T) {
	c := Default()
	o := NewOrbit(&c)
	o.EnableDamping = false
	before := c.Position.Len()

	o.Rotate(math.Pi/2, 0)
	if !o.Update() {
		t.Fatal("Update reported no movement")
	}
	if d := c.Position.Len(); math.Abs(d-before) > 1e-9 {
		t.Errorf("distance = %v, want %v", d, before)
	}
	// (10,2,0) rotated +90° about Y lands on (0,2,-10)
	want := mathutil.Vec3{0, 2, -10}
	if c.Position.Sub(want).Len() > 1e-9 {
		t.Errorf("Position = %v, want %v", c.Position, want)
	}
	if !o.Settled() {
		t.Error("controller should settle immediately without damping")
	}
}

func TestOrbitDampingConverges(t *testing.T) {
	damped := Default()
	od := NewOrbit(&damped)
	od.Rotate(0.5, 0)

	direct := Default()
	o := NewOrbit(&direct)
	o.EnableDamping = false
	o.Rotate(0.5, 0)
	o.Update()

	first := true
	for i := 0; i < 2000 && !od.Settled(); i++ {
		moved := od.Update()
		if first && !moved {
			t.Fatal("first damped update did not move")
		}
		first = false
	}
	if damped.Position.Sub(direct.Position).Len() > 1e-3 {
		t.Errorf("damped end = %v, direct = %v", damped.Position, direct.Position)
	}
}

func TestOrbitPolarClamp(t *testing.T) {
	c := Default()
	o := NewOrbit(&c)
	o.EnableDamping = false
	o.Rotate(0, -10) // far past the pole
	o.Update()
	if c.Position[1] <= 0 {
		t.Errorf("camera flipped below target: %v", c.Position)
	}
	if math.Hypot(c.Position[0], c.Position[2]) > 1e-3 {
		t.Errorf("camera should sit at the pole, got %v", c.Position)
	}
}

func TestDollyAndDistanceLimits(t *testing.T) {
	c := Default()
	o := NewOrbit(&c)
	o.EnableDamping = false
	start := c.Position.Len()

	o.Dolly(0.5)
	o.Update()
	if got := c.Position.Len(); math.Abs(got-start/2) > 1e-9 {
		t.Errorf("distance after Dolly(0.5) = %v, want %v", got, start/2)
	}

	o.MaxDistance = 6
	o.Dolly(100)
	o.Update()
	if got := c.Position.Len(); math.Abs(got-6) > 1e-9 {
		t.Errorf("distance = %v, want clamp to 6", got)
	}

	o.Wheel(1)
	o.Update()
	if got := c.Position.Len(); got >= 6 {
		t.Errorf("wheel in should move closer, distance %v", got)
	}
}

func TestPanMovesTargetAndCamera(t *testing.T) {
	c := Default()
	o := NewOrbit(&c)
	o.EnableDamping = false
	offset := c.Position.Sub(c.Target)

	o.Pan(0, 1)
	o.Update()
	if c.Target.Len() < 0.99 {
		t.Errorf("target did not move: %v", c.Target)
	}
	if c.Position.Sub(c.Target).Sub(offset).Len() > 1e-9 {
		t.Error("pan changed the camera offset")
	}
}

func TestOrbitedLeavesInputUntouched(t *testing.T) {
	base := Default()
	turned := Orbited(base, math.Pi)
	if base.Position != Default().Position {
		t.Error("Orbited mutated its argument")
	}
	want := mathutil.Vec3{-10, 2, 0}
	if turned.Position.Sub(want).Len() > 1e-9 {
		t.Errorf("Orbited(π) = %v, want %v", turned.Position, want)
	}
}

func TestDragRotateFullHeightIsFullTurn(t *testing.T) {
	c := Default()
	o := NewOrbit(&c)
	o.EnableDamping = false
	o.DragRotate(600, 0, 600)
	o.Update()
	if c.Position.Sub(Default().Position).Len() > 1e-9 {
		t.Errorf("full-height drag should return to start, got %v", c.Position)
	}
}

func TestWheelOutStopsAtFarPlane(t *testing.T) {
	c := Default()
	o := NewOrbit(&c)
	o.EnableDamping = false
	if o.MaxDistance != c.Far {
		t.Errorf("MaxDistance = %v, want far plane %v", o.MaxDistance, c.Far)
	}

	o.Wheel(-1e6)
	o.Update()
	d := c.Position.Sub(c.Target).Len()
	if math.IsInf(d, 0) || math.IsNaN(d) || d > c.Far+1e-9 {
		t.Errorf("distance after huge zoom out = %v", d)
	}

	o.Wheel(math.NaN())
	if !o.Settled() {
		t.Error("NaN wheel delta was queued")
	}
}

func TestSettledTracksPendingZoom(t *testing.T) {
	c := Default()
	o := NewOrbit(&c)
	o.EnableDamping = false
	if !o.Settled() {
		t.Fatal("fresh controller should be settled")
	}
	o.Wheel(1)
	if o.Settled() {
		t.Error("pending zoom reported as settled")
	}
	o.Update()
	if !o.Settled() {
		t.Error("controller not settled after applying zoom")
	}
}
