package object

import (
	"time"

	"github.com/tomz197/steady/internal/loop/config"
	"github.com/tomz197/steady/internal/scene"
)

// Popup is a short-lived label that drifts up and fades, such as the points
// scored by a hit.
type Popup struct {
	X, Y  float64 // Anchor at spawn
	Value string
	Color scene.Color
	Born  time.Duration // Session clock at spawn
	age   time.Duration
}

// NewPopup creates a popup anchored at (x,y).
func NewPopup(x, y float64, value string, c scene.Color, born time.Duration) *Popup {
	return &Popup{X: x, Y: y, Value: value, Color: c, Born: born}
}

// Update ages the popup. Returns true once it has faded out.
func (p *Popup) Update(ctx UpdateContext) (bool, error) {
	p.age = ctx.Now - p.Born
	return p.age >= config.PopupLifetime, nil
}

// Draw adds the label above its anchor, faded by age.
func (p *Popup) Draw(ctx DrawContext) error {
	if ctx.Frame == nil {
		return ErrNoFrame
	}
	if p.Value == "" {
		return nil
	}
	left := 1 - p.age.Seconds()/config.PopupLifetime.Seconds()
	if left <= 0 {
		return nil
	}
	y := p.Y - config.PopupRise*p.age.Seconds()
	ctx.Frame.AddCentered(p.Value, p.X, y, scene.Fade(p.Color, scene.Background, left))
	return nil
}
