package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/steady/internal/loop/config"
)

// Particle is one fragment of an exploding target.
type Particle struct {
	X, Y    float64 // Position
	VX, VY  float64 // Velocity in units per reference tick
	Opacity float64 // 1 when spawned, removed at 0
}

// Update advances the particle by the given number of reference ticks.
// Returns true once the particle has faded out.
func (p *Particle) Update(ticks float64) bool {
	p.X += p.VX * ticks
	p.Y += p.VY * ticks
	p.Opacity -= config.ParticleFadeStep * ticks
	return p.Opacity <= 0
}

// SpawnExplosion creates count particles at (x,y) flying in random directions
// with a random speed in [minSpeed, maxSpeed).
func SpawnExplosion(rng *rand.Rand, x, y float64, count int, minSpeed, maxSpeed float64) []Particle {
	particles := make([]Particle, count)
	for i := range particles {
		angle := rng.Float64() * 2 * math.Pi
		speed := minSpeed + rng.Float64()*(maxSpeed-minSpeed)
		particles[i] = Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Opacity: 1,
		}
	}
	return particles
}
