package raster

import (
	"image"
	"math"

	"surface-renderer/internal/mathutil"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
// Depth is stored as 1/w: larger is nearer.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // 1/w per pixel, len = W*H, initialized to -inf
}

// NewFrameBuffer allocates a transparent color buffer and -inf z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	zbuf := make([]float64, n)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   zbuf,
	}
}

// Clear fills the color buffer with an opaque background and resets depth.
func (fb *FrameBuffer) Clear(bg mathutil.Color) {
	r, g, b := bg.RGBA8()
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = r
		fb.Color[i+1] = g
		fb.Color[i+2] = b
		fb.Color[i+3] = 255
	}
	for i := range fb.ZBuf {
		fb.ZBuf[i] = math.Inf(-1)
	}
}

// Image copies the color buffer into a new NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

// plot writes c at pixel index i, blending by alpha over what is there.
func (fb *FrameBuffer) plot(i int, c mathutil.Color, alpha float64) {
	p := i * 4
	if alpha >= 1 {
		fb.Color[p], fb.Color[p+1], fb.Color[p+2] = c.RGBA8()
		fb.Color[p+3] = 255
		return
	}
	inv := 1 - alpha
	fb.Color[p] = mathutil.Clamp255(c.R*255*alpha + float64(fb.Color[p])*inv)
	fb.Color[p+1] = mathutil.Clamp255(c.G*255*alpha + float64(fb.Color[p+1])*inv)
	fb.Color[p+2] = mathutil.Clamp255(c.B*255*alpha + float64(fb.Color[p+2])*inv)
	if a := mathutil.Clamp255(alpha*255 + float64(fb.Color[p+3])*inv); a > fb.Color[p+3] {
		fb.Color[p+3] = a
	}
}
