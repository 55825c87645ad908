package raster

import (
	"math"

	"surface-renderer/internal/mathutil"
)

// Vertex is a projected vertex: screen position, 1/w for depth and
// perspective correction, and its color.
type Vertex struct {
	X, Y float64
	InvW float64
	C    mathutil.Color
}

// RasterizeTriangle fills a triangle with perspective-correct per-vertex
// color interpolation and a z-buffer. Opaque triangles (alpha >= 1) write
// depth; translucent ones only test it.
//
// Hot path: no allocation inside the pixel loop.
func RasterizeTriangle(fb *FrameBuffer, v0, v1, v2 Vertex, alpha float64) {
	x0, y0 := v0.X, v0.Y
	x1, y1 := v1.X, v1.Y
	x2, y2 := v2.X, v2.Y

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	// Attributes pre-divided by w
	q0, q1, q2 := v0.InvW, v1.InvW, v2.InvW
	c0 := v0.C.Scale(q0)
	c1 := v1.C.Scale(q1)
	c2 := v2.C.Scale(q2)

	writeDepth := alpha >= 1

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -1e-9 || w1 < -1e-9 || w2 < -1e-9 {
				continue
			}

			q := w0*q0 + w1*q1 + w2*q2
			zIdx := rowOff + sx
			if q <= fb.ZBuf[zIdx] {
				continue
			}
			if writeDepth {
				fb.ZBuf[zIdx] = q
			}

			inv := 1 / q
			c := mathutil.Color{
				R: (w0*c0.R + w1*c1.R + w2*c2.R) * inv,
				G: (w0*c0.G + w1*c1.G + w2*c2.G) * inv,
				B: (w0*c0.B + w1*c1.B + w2*c2.B) * inv,
			}
			fb.plot(zIdx, c, alpha)
		}
	}
}
