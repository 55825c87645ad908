package mathutil

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestComposeOrder(t *testing.T) {
	// Scale 2, rotate -90° about Z, then translate: (0,1,0) → (2,0,0) → +t
	m := Compose(Vec3{1, 1, 1}, RotZ(-math.Pi/2), 2)
	got := m.MulPoint(Vec3{0, 1, 0})
	want := Vec3{3, 1, 1}
	for i := range got {
		if !near(got[i], want[i]) {
			t.Fatalf("Compose().MulPoint = %v, want %v", got, want)
		}
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{10, 2, 0}
	v := LookAt(eye, Vec3{}, Vec3{0, 1, 0})
	p := v.MulPoint(eye)
	if p.Len() > 1e-9 {
		t.Errorf("eye in view space = %v, want origin", p)
	}
	// target lies straight ahead on -Z
	tgt := v.MulPoint(Vec3{})
	if !near(tgt[0], 0) || !near(tgt[1], 0) || tgt[2] >= 0 {
		t.Errorf("target in view space = %v, want (0,0,-d)", tgt)
	}
}

func TestPerspectiveW(t *testing.T) {
	p := Perspective(Deg2Rad(60), 1.5, 0.1, 200)
	c := p.MulPoint4(Vec3{0, 0, -5})
	if !near(c[3], 5) {
		t.Errorf("clip w = %v, want 5", c[3])
	}
	// near plane maps to ndc z = -1, far to +1
	n := p.MulPoint4(Vec3{0, 0, -0.1})
	f := p.MulPoint4(Vec3{0, 0, -200})
	if !near(n[2]/n[3], -1) || !near(f[2]/f[3], 1) {
		t.Errorf("ndc z near=%v far=%v", n[2]/n[3], f[2]/f[3])
	}
}

func TestHex(t *testing.T) {
	c := Hex(0xFF0080)
	if c.R != 1 || c.G != 0 || !near(c.B, 128.0/255) {
		t.Errorf("Hex(0xFF0080) = %+v", c)
	}
	r, g, b := Color{1.5, -0.2, 0.5}.RGBA8()
	if r != 255 || g != 0 || b != 128 {
		t.Errorf("RGBA8 = %d,%d,%d", r, g, b)
	}
}
