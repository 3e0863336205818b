package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 50, A: 255}

	// posePalette are the colors used for the skeleton keypoints
	posePalette = []color.RGBA{
		{R: 255, G: 128, B: 0, A: 255},
		{R: 51, G: 153, B: 255, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
	}

	// keyPointColors correspond to the skeleton/pose key points and colors
	// to use to render the joints; face, arms then legs.  Requires 17 colors
	keyPointColors = []color.RGBA{
		posePalette[2], posePalette[2], posePalette[2], posePalette[2], posePalette[2],
		posePalette[1], posePalette[1], posePalette[1], posePalette[1], posePalette[1],
		posePalette[1], posePalette[0], posePalette[0], posePalette[0], posePalette[0],
		posePalette[0], posePalette[0],
	}
)

// Palette holds one color per stick connection
type Palette []color.RGBA

// NewPalette returns n colors spaced evenly in hue around the HCL color
// wheel starting at hue degrees, so neighbouring sticks stay distinct and
// equally bright
func NewPalette(n int, hue, chroma, luminance float64) Palette {

	p := make(Palette, n)

	for i := 0; i < n; i++ {
		h := hue + float64(i)*360/float64(n)

		for h >= 360 {
			h -= 360
		}

		c := colorful.Hcl(h, chroma, luminance).Clamped()
		r, g, b := c.RGB255()
		p[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}

	return p
}

// DefaultPalette returns the palette for the default connection table
func DefaultPalette(n int) Palette {
	return NewPalette(n, 20, 0.75, 0.7)
}

// At returns the color for a connection index, wrapping around the palette.
// White is returned for an empty palette.
func (p Palette) At(i int) color.RGBA {
	if len(p) == 0 {
		return White
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

// Fade dims the color towards the black projection background by the fade
// factor in [0,1]
func Fade(clr color.RGBA, fade float64) color.RGBA {

	if fade >= 1 {
		return clr
	}

	if fade <= 0 {
		return color.RGBA{A: clr.A}
	}

	src, _ := colorful.MakeColor(clr)
	c := colorful.Color{}.BlendRgb(src, fade)
	r, g, b := c.Clamped().RGB255()

	return color.RGBA{R: r, G: g, B: b, A: clr.A}
}
