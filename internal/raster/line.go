package raster

import (
	"math"

	"surface-renderer/internal/mathutil"
)

// lineDepthBias lets lines win depth ties against the faces they outline.
const lineDepthBias = 1e-6

// DrawLine draws a depth-tested segment of the given pixel width with
// perspective-correct color interpolation.
func DrawLine(fb *FrameBuffer, a, b Vertex, width int, alpha float64) {
	if width < 1 {
		width = 1
	}
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps < 1 {
		steps = 1
	}

	ca := a.C.Scale(a.InvW)
	cb := b.C.Scale(b.InvW)
	lo := -(width - 1) / 2
	hi := lo + width - 1

	// track the last plotted pixel so translucent lines don't blend twice
	lastX, lastY := math.MinInt, math.MinInt

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		px := int(math.Floor(a.X + dx*t))
		py := int(math.Floor(a.Y + dy*t))
		if px == lastX && py == lastY {
			continue
		}
		lastX, lastY = px, py

		q := a.InvW + (b.InvW-a.InvW)*t
		inv := 1 / q
		c := mathutil.Color{
			R: (ca.R + (cb.R-ca.R)*t) * inv,
			G: (ca.G + (cb.G-ca.G)*t) * inv,
			B: (ca.B + (cb.B-ca.B)*t) * inv,
		}

		for oy := lo; oy <= hi; oy++ {
			y := py + oy
			if y < 0 || y >= fb.Height {
				continue
			}
			for ox := lo; ox <= hi; ox++ {
				x := px + ox
				if x < 0 || x >= fb.Width {
					continue
				}
				idx := y*fb.Width + x
				if q+lineDepthBias*q <= fb.ZBuf[idx] {
					continue
				}
				if alpha >= 1 {
					fb.ZBuf[idx] = q
				}
				fb.plot(idx, c, alpha)
			}
		}
	}
}
