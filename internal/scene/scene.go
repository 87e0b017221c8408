// Package scene describes a rendered frame as plain shapes and labels.
//
// The game core fills a Frame every tick; a renderer (see package draw) turns
// it into pixels. Coordinates are logical playfield units.
package scene

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Palette
var (
	Background = Color{13, 17, 23}
	White      = Color{255, 255, 255}
	LightGrey  = Color{180, 180, 180}
	Grey       = Color{128, 128, 128}
	Green      = Color{0, 255, 0}
	Yellow     = Color{255, 255, 0}
	Red        = Color{255, 0, 0}
	ButtonGo   = Color{50, 150, 50}
	ButtonStop = Color{150, 50, 50}
	ButtonIdle = Color{100, 100, 100}
)

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b}
}

// Fade blends c toward bg; opacity 1 keeps c, opacity 0 yields bg.
func Fade(c, bg Color, opacity float64) Color {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		return bg
	}
	return fromColorful(bg.colorful().BlendRgb(c.colorful(), opacity))
}

// Circle is a filled disc.
type Circle struct {
	X, Y   float64
	Radius float64
	Color  Color
}

// Rect is a filled axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
	Color      Color
}

// Contains reports whether the point lies inside the rectangle, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Align controls how a label is positioned relative to its anchor.
type Align int

const (
	AlignLeft   Align = iota // Anchor is the start of the text
	AlignCenter              // Anchor is the middle of the text
)

// Label is a line of text anchored at a logical point.
type Label struct {
	Text  string
	X, Y  float64
	Color Color
	Align Align
}

// Frame is everything visible in one tick, in paint order:
// rects, then circles, then labels.
type Frame struct {
	Rects   []Rect
	Circles []Circle
	Labels  []Label
	Dim     bool // Darken the shapes beneath the labels (pause overlay)
}

// AddRect appends a rectangle.
func (f *Frame) AddRect(r Rect) {
	f.Rects = append(f.Rects, r)
}

// AddCircle appends a disc.
func (f *Frame) AddCircle(x, y, radius float64, c Color) {
	f.Circles = append(f.Circles, Circle{X: x, Y: y, Radius: radius, Color: c})
}

// AddText appends a left-aligned label.
func (f *Frame) AddText(text string, x, y float64, c Color) {
	f.Labels = append(f.Labels, Label{Text: text, X: x, Y: y, Color: c})
}

// AddCentered appends a label centered on x.
func (f *Frame) AddCentered(text string, x, y float64, c Color) {
	f.Labels = append(f.Labels, Label{Text: text, X: x, Y: y, Color: c, Align: AlignCenter})
}
