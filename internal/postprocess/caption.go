package postprocess

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	captionMargin = 6
	captionPad    = 3
)

// Caption draws text lines in the bottom-left corner over a translucent
// panel so they stay readable over the surface.
func Caption(img *image.NRGBA, text string) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	lines := strings.Split(text, "\n")
	m := face.Metrics()
	lineH := m.Height.Ceil()
	b := img.Bounds()
	x := b.Min.X + captionMargin
	y0 := b.Max.Y - captionMargin - (len(lines)-1)*lineH - m.Descent.Ceil()

	panel := image.Rect(
		x-captionPad, y0-m.Ascent.Ceil()-captionPad,
		x+TextWidth(text)+captionPad, b.Max.Y-captionMargin+captionPad,
	).Intersect(b)
	draw.Draw(img, panel, image.NewUniform(color.NRGBA{0, 0, 0, 140}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{230, 230, 230, 255}),
		Face: face,
	}
	for i, line := range lines {
		d.Dot = fixed.P(x, y0+i*lineH)
		d.DrawString(line)
	}
}

// TextWidth returns the rendered width in pixels of the widest line.
func TextWidth(text string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := 0
	for _, line := range strings.Split(text, "\n") {
		if lw := d.MeasureString(line).Ceil(); lw > w {
			w = lw
		}
	}
	return w
}
