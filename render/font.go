package render

import (
	"gocv.io/x/gocv"
	"image/color"
)

// Font defines the parameters for rendering status text on a Mat using GoCV
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
	// Padding to place around text
	LeftPad   int
	TopPad    int
	BottomPad int
}

// DefaultFont returns default font settings
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     White,
		Thickness: 1,
		LineType:  gocv.LineAA,
		LeftPad:   8,
		TopPad:    4,
		BottomPad: 6,
	}
}
