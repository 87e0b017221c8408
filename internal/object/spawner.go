package object

import (
	"time"

	"github.com/tomz197/steady/internal/difficulty"
)

// TargetSpawner keeps the live target population at the difficulty's level.
type TargetSpawner struct {
	profile difficulty.Profile
	placer  *Placer
	last    time.Duration // Session clock of the last completed check
	primed  bool          // False until the first check, so a session starts populated
}

// NewTargetSpawner creates a spawner for the given difficulty.
func NewTargetSpawner(profile difficulty.Profile, placer *Placer) *TargetSpawner {
	return &TargetSpawner{
		profile: profile,
		placer:  placer,
	}
}

// Update tops the population up once per spawn interval.
// A placement failure leaves the timer untouched so the next tick retries;
// the error is returned so the caller can note it.
func (s *TargetSpawner) Update(ctx UpdateContext) (bool, error) {
	if s.primed && ctx.Now-s.last < s.profile.SpawnInterval {
		return false, nil
	}

	live := CountLive(ctx.Targets)
	occupied := make([]*Target, len(ctx.Targets), len(ctx.Targets)+s.profile.Count)
	copy(occupied, ctx.Targets)

	for live < s.profile.Count {
		t, err := s.placer.Place(occupied, s.profile, ctx.Now)
		if err != nil {
			return false, err
		}
		ctx.Spawner.Spawn(t)
		occupied = append(occupied, t)
		live++
	}

	s.last = ctx.Now
	s.primed = true
	return false, nil
}

// Draw is a no-op; spawner is not visible.
func (s *TargetSpawner) Draw(_ DrawContext) error {
	return nil
}

// CountLive returns the number of targets that can still be hit.
func CountLive(targets []*Target) int {
	n := 0
	for _, t := range targets {
		if !t.Exploding {
			n++
		}
	}
	return n
}
