package object

import "github.com/tomz197/steady/internal/scene"

// Tier groups targets by their (multiplied) point value.
type Tier int

const (
	TierLow  Tier = iota // 1..3 points
	TierMid              // 4..6 points
	TierHigh             // 7+ points
)

// TierFor maps a point value to its tier.
func TierFor(points int) Tier {
	switch {
	case points <= 3:
		return TierLow
	case points <= 6:
		return TierMid
	default:
		return TierHigh
	}
}

// Color returns the display color of the tier.
func (t Tier) Color() scene.Color {
	switch t {
	case TierLow:
		return scene.Green
	case TierMid:
		return scene.Yellow
	default:
		return scene.Red
	}
}

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMid:
		return "mid"
	default:
		return "high"
	}
}
