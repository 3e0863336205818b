package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// statusLineHeight is the vertical spacing of HUD text lines in pixels
const statusLineHeight = 15

// DrawStatus writes lines of status text onto dst with the top left of the
// first line at pt
func DrawStatus(dst draw.Image, pt image.Point, lines []string, clr color.RGBA) {

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(clr),
		Face: basicfont.Face7x13,
	}

	ascent := basicfont.Face7x13.Metrics().Ascent.Ceil()

	for i, line := range lines {
		d.Dot = fixed.P(pt.X, pt.Y+ascent+i*statusLineHeight)
		d.DrawString(line)
	}
}

// Status writes lines of status text in the top left corner of the canvas
func (t *GGTarget) Status(lines []string, clr color.RGBA) {

	img, ok := t.dc.Image().(draw.Image)

	if !ok {
		return
	}

	DrawStatus(img, image.Pt(8, 8), lines, clr)
}
