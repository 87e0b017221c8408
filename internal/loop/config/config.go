// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield resolution in logical units. Rendering scales it to fit the terminal.
const (
	FieldWidth  = 1024
	FieldHeight = 768
)

// Session
const (
	InitialScore    = 10
	SessionDuration = 180 * time.Second
	CountdownStart  = 3
)

// Targets
const (
	MinTargetRadius   = 20
	MaxTargetRadius   = 50
	PlacementMargin   = 4  // Extra clearance between a new target and its neighbours
	PlacementAttempts = 64 // Samples tried before a spawn is skipped for this tick
	MinTargetPoints   = 1
	MaxTargetPoints   = 3
)

// Explosion particles
const (
	ExplosionParticles = 20
	ParticleMinSpeed   = 2.0 // Units per reference tick
	ParticleMaxSpeed   = 5.0
	ParticleFadeStep   = 0.1 // Opacity lost per reference tick
	ParticleRadius     = 2.0
)

// Tick rate. Particle physics are expressed per reference tick and scaled by
// the actual frame delta, so the game stays correct if TargetFPS changes.
const (
	ReferenceTickRate = 60
	TargetFPS         = 60
	TargetFrameTime   = time.Second / TargetFPS
)

// Terminal rendering
const (
	MaxTermWidth  = 200
	MaxTermHeight = 75
)

// Hit popups
const (
	PopupLifetime = 600 * time.Millisecond
	PopupRise     = 60.0 // Units per second
)
