package object

import (
	"errors"
	"math/rand"
	"time"

	"github.com/tomz197/steady/internal/difficulty"
	"github.com/tomz197/steady/internal/loop/config"
	"github.com/tomz197/steady/internal/physics"
)

// ErrFieldSaturated is returned when no free spot was found within the attempt budget.
var ErrFieldSaturated = errors.New("no free spot for target")

// Placer picks random, non-overlapping spots for new targets.
type Placer struct {
	Field     Field
	MinRadius int
	MaxRadius int
	Margin    float64
	Attempts  int
	Rand      *rand.Rand
}

// NewPlacer creates a placer with the standard radius range for the field.
func NewPlacer(field Field, rng *rand.Rand) *Placer {
	return &Placer{
		Field:     field,
		MinRadius: config.MinTargetRadius,
		MaxRadius: config.MaxTargetRadius,
		Margin:    config.PlacementMargin,
		Attempts:  config.PlacementAttempts,
		Rand:      rng,
	}
}

// Place samples radius and center until the new circle clears every existing
// target, exploding ones included. Gives up with ErrFieldSaturated.
func (p *Placer) Place(existing []*Target, profile difficulty.Profile, born time.Duration) (*Target, error) {
	for attempt := 0; attempt < p.Attempts; attempt++ {
		radius := p.MinRadius + p.Rand.Intn(p.MaxRadius-p.MinRadius+1)
		if 2*radius > p.Field.Width || 2*radius > p.Field.Height {
			continue
		}
		x := float64(radius + p.Rand.Intn(p.Field.Width-2*radius+1))
		y := float64(radius + p.Rand.Intn(p.Field.Height-2*radius+1))

		if !p.clear(existing, x, y, float64(radius)) {
			continue
		}

		points := (config.MinTargetPoints + p.Rand.Intn(config.MaxTargetPoints-config.MinTargetPoints+1)) * profile.Multiplier
		return NewTarget(x, y, radius, points, profile.Lifetime, born), nil
	}
	return nil, ErrFieldSaturated
}

func (p *Placer) clear(existing []*Target, x, y, radius float64) bool {
	for _, t := range existing {
		if physics.CirclesOverlap(x, y, radius+p.Margin, t.X, t.Y, t.Radius) {
			return false
		}
	}
	return true
}
