package object

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/tomz197/steady/internal/loop/config"
	"github.com/tomz197/steady/internal/physics"
	"github.com/tomz197/steady/internal/scene"
)

// Target is a shrinking disc the player has to click before it vanishes.
type Target struct {
	X, Y       float64       // Center
	Radius     float64       // Current radius
	BaseRadius int           // Radius at spawn
	Born       time.Duration // Session clock at spawn
	Lifetime   time.Duration // Time to shrink to nothing
	Points     int           // Awarded on hit (multiplier already applied)
	Tier       Tier
	Exploding  bool
	Particles  []Particle
}

// NewTarget creates a target centered at (x,y).
func NewTarget(x, y float64, radius int, points int, lifetime, born time.Duration) *Target {
	return &Target{
		X:          x,
		Y:          y,
		Radius:     float64(radius),
		BaseRadius: radius,
		Born:       born,
		Lifetime:   lifetime,
		Points:     points,
		Tier:       TierFor(points),
	}
}

// Update shrinks the target, or animates its explosion.
// Returns true when the target expired unclicked or its explosion has finished.
func (t *Target) Update(ctx UpdateContext) (bool, error) {
	if t.Exploding {
		ticks := ctx.Ticks()
		kept := t.Particles[:0]
		for i := range t.Particles {
			p := t.Particles[i]
			if !p.Update(ticks) {
				kept = append(kept, p)
			}
		}
		t.Particles = kept
		return len(t.Particles) == 0, nil
	}

	age := ctx.Now - t.Born
	if age < t.Lifetime {
		t.Radius = float64(t.BaseRadius) * (1 - age.Seconds()/t.Lifetime.Seconds())
		if t.Radius < 0 {
			t.Radius = 0
		}
		return false, nil
	}
	t.Radius = 0
	return true, nil
}

// Explode switches the target to its particle burst.
func (t *Target) Explode(rng *rand.Rand) {
	if t.Exploding {
		return
	}
	t.Exploding = true
	t.Particles = SpawnExplosion(rng, t.X, t.Y,
		config.ExplosionParticles, config.ParticleMinSpeed, config.ParticleMaxSpeed)
}

// CheckHit reports whether a click at (x,y) lands on the live target.
func (t *Target) CheckHit(x, y float64) bool {
	if t.Exploding {
		return false
	}
	return physics.PointInCircle(x, y, t.X, t.Y, t.Radius)
}

// Draw renders the disc with its point value, or the fading particles.
func (t *Target) Draw(ctx DrawContext) error {
	if ctx.Frame == nil {
		return ErrNoFrame
	}
	color := t.Tier.Color()
	if t.Exploding {
		for _, p := range t.Particles {
			ctx.Frame.AddCircle(p.X, p.Y, config.ParticleRadius, scene.Fade(color, scene.Background, p.Opacity))
		}
		return nil
	}
	if t.Radius <= 0 {
		return nil
	}
	ctx.Frame.AddCircle(t.X, t.Y, t.Radius, color)
	ctx.Frame.AddCentered(strconv.Itoa(t.Points), t.X, t.Y, scene.White)
	return nil
}
