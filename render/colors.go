package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette
var (
	RgbBackground = colorful.Color{R: 0, G: 0, B: 0}
	RgbWireframe  = colorful.Color{R: 1, G: 1, B: 1}
	RgbEdges      = colorful.Color{R: 0.6, G: 0.6, B: 0.6}
	RgbStatusText = colorful.Color{R: 0.55, G: 0.55, B: 0.6}
	RgbStatusBg   = colorful.Color{R: 0.08, G: 0.08, B: 0.12}
)

// BlendOver composites an RGBA element color, channels in [0,1], onto bg
func BlendOver(bg colorful.Color, col [4]float32) colorful.Color {
	fg := colorful.Color{R: float64(col[0]), G: float64(col[1]), B: float64(col[2])}
	return bg.BlendRgb(fg, float64(col[3])).Clamped()
}

// ToTcell converts a colorful.Color to a true-color tcell.Color
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Scale darkens c by f in [0,1], used for depth cueing
func Scale(c colorful.Color, f float64) colorful.Color {
	return colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}.Clamped()
}
