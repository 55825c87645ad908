package raster

import (
	"math"
	"testing"

	"surface-renderer/internal/camera"
	"surface-renderer/internal/mathutil"
	"surface-renderer/internal/scene"
)

func pixel(fb *FrameBuffer, x, y int) [4]uint8 {
	i := (y*fb.Width + x) * 4
	return [4]uint8{fb.Color[i], fb.Color[i+1], fb.Color[i+2], fb.Color[i+3]}
}

func TestRasterizeTriangleInterpolatesColor(t *testing.T) {
	fb := NewFrameBuffer(64, 64)
	fb.Clear(mathutil.Color{})
	red := mathutil.Color{R: 1}
	RasterizeTriangle(fb,
		Vertex{X: 0, Y: 0, InvW: 1, C: red},
		Vertex{X: 64, Y: 0, InvW: 1, C: red},
		Vertex{X: 0, Y: 64, InvW: 1, C: red},
		1)
	if got := pixel(fb, 5, 5); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("inside pixel = %v", got)
	}
	if got := pixel(fb, 60, 60); got != [4]uint8{0, 0, 0, 255} {
		t.Errorf("outside pixel = %v", got)
	}
}

func TestDepthTestKeepsNearest(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	fb.Clear(mathutil.Color{})
	quad := func(invW float64, c mathutil.Color) {
		RasterizeTriangle(fb,
			Vertex{X: 0, Y: 0, InvW: invW, C: c},
			Vertex{X: 16, Y: 0, InvW: invW, C: c},
			Vertex{X: 0, Y: 16, InvW: invW, C: c}, 1)
	}
	quad(0.5, mathutil.Color{G: 1}) // nearer
	quad(0.1, mathutil.Color{B: 1}) // farther, drawn later
	if got := pixel(fb, 2, 2); got[1] != 255 || got[2] != 0 {
		t.Errorf("pixel = %v, want the nearer green triangle", got)
	}
}

func TestTranslucentBlend(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	fb.Clear(mathutil.Color{})
	RasterizeTriangle(fb,
		Vertex{X: 0, Y: 0, InvW: 1, C: mathutil.White},
		Vertex{X: 8, Y: 0, InvW: 1, C: mathutil.White},
		Vertex{X: 0, Y: 8, InvW: 1, C: mathutil.White}, 0.25)
	got := pixel(fb, 1, 1)
	if got[0] < 62 || got[0] > 65 {
		t.Errorf("blended red = %d, want ~64", got[0])
	}
	if !math.IsInf(fb.ZBuf[1*8+1], -1) {
		t.Error("translucent triangle wrote depth")
	}
}

func TestDrawLine(t *testing.T) {
	fb := NewFrameBuffer(10, 10)
	fb.Clear(mathutil.Color{})
	c := mathutil.Color{R: 1, G: 1}
	DrawLine(fb, Vertex{X: 0.5, Y: 5.5, InvW: 1, C: c}, Vertex{X: 9.5, Y: 5.5, InvW: 1, C: c}, 1, 1)
	for x := 0; x < 10; x++ {
		if got := pixel(fb, x, 5); got[0] != 255 || got[1] != 255 {
			t.Fatalf("pixel (%d,5) = %v", x, got)
		}
	}
	if got := pixel(fb, 3, 4); got[0] != 0 {
		t.Errorf("line bled into row 4: %v", got)
	}
}

func TestUnclampedColorSaturates(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	fb.Clear(mathutil.Color{})
	hot := mathutil.Color{R: 0.2, G: 0.4, B: 2.0} // blue channel > 1
	RasterizeTriangle(fb,
		Vertex{X: 0, Y: 0, InvW: 1, C: hot},
		Vertex{X: 4, Y: 0, InvW: 1, C: hot},
		Vertex{X: 0, Y: 4, InvW: 1, C: hot}, 1)
	if got := pixel(fb, 0, 0); got[2] != 255 {
		t.Errorf("blue = %d, want saturation at 255", got[2])
	}
}

func TestShadeFacesLight(t *testing.T) {
	sc := &scene.Scene{
		Ambient: scene.AmbientLight{Color: mathutil.White, Intensity: 0.1},
		Sun:     scene.DirectionalLight{Color: mathutil.White, Intensity: 1, Position: mathutil.Vec3{0, 100, 0}},
	}
	lc := NewLightConfig(sc, mathutil.Vec3{0, 10, 0})
	mat := scene.PhongMaterial(mathutil.White, mathutil.Color{}, 0)

	up := lc.Shade(mathutil.White, mathutil.Vec3{0, 1, 0}, mathutil.Vec3{}, &mat)
	if math.Abs(up.R-1.1) > 1e-9 {
		t.Errorf("lit face = %v, want 1.1", up.R)
	}
	// the normal is flipped toward the eye, so a downward normal lights the same
	down := lc.Shade(mathutil.White, mathutil.Vec3{0, -1, 0}, mathutil.Vec3{}, &mat)
	if down != up {
		t.Errorf("flipped face = %v, want %v", down, up)
	}
	side := lc.Shade(mathutil.White, mathutil.Vec3{1, 0, 0}, mathutil.Vec3{}, &mat)
	if math.Abs(side.R-0.1) > 1e-9 {
		t.Errorf("edge-on face = %v, want ambient only", side.R)
	}
}

func TestRenderDefaultScene(t *testing.T) {
	sc, err := scene.Build(scene.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	// face-on to the surface's XY plane
	cam := camera.Default()
	cam.Position = mathutil.Vec3{0, 0, 6}

	img := Render(sc, cam, 160, 120)
	if img.Bounds().Dx() != 160 || img.Bounds().Dy() != 120 {
		t.Fatalf("size = %v", img.Bounds())
	}

	// the surface tint keeps green low, so red-dominant pixels are surface
	surfacePx := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if int(img.Pix[i]) > int(img.Pix[i+1])+30 {
			surfacePx++
		}
	}
	if surfacePx < 160*120/10 {
		t.Errorf("surface covers %d pixels, want at least 10%%", surfacePx)
	}

	c := img.PixOffset(0, 0)
	if img.Pix[c] != 0 || img.Pix[c+1] != 0 || img.Pix[c+2] != 0 {
		t.Errorf("corner pixel = %v, want background", img.Pix[c:c+4])
	}
}

func TestWireEdgesDeduplicates(t *testing.T) {
	// two triangles sharing edge 1-2
	edges := wireEdges([]uint32{0, 1, 2, 2, 1, 3})
	if len(edges) != 5 {
		t.Errorf("edges = %v, want 5 unique", edges)
	}
}

func TestRenderFrameDownsamples(t *testing.T) {
	sc, err := scene.Build(scene.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	img := RenderFrame(sc, camera.Default(), 64, 48, 2)
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Errorf("size = %v, want 64x48", img.Bounds())
	}
}

func TestRenderSkipsGeometryBehindCamera(t *testing.T) {
	mat := scene.BasicMaterial(mathutil.White)
	tri := &scene.Mesh{
		Positions: []mathutil.Vec3{{20, -1, -1}, {20, 1, -1}, {20, 0, 1}},
		Indices:   []uint32{0, 1, 2},
		Material:  mat,
	}
	sc := &scene.Scene{Root: scene.NewMeshNode("behind", tri)}
	img := Render(sc, camera.Default(), 32, 32)
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatal("geometry behind the camera was drawn")
		}
	}
}
