package object

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/steady/internal/difficulty"
	"github.com/tomz197/steady/internal/physics"
)

func TestPlaceKeepsTargetsApartAndInside(t *testing.T) {
	field := DefaultField()
	p := NewPlacer(field, rand.New(rand.NewSource(42)))
	profile := difficulty.Default()

	var placed []*Target
	for i := 0; i < 12; i++ {
		tg, err := p.Place(placed, profile, 0)
		if err != nil {
			t.Fatalf("placement %d failed: %v", i, err)
		}
		placed = append(placed, tg)
	}

	for i, a := range placed {
		if a.BaseRadius < p.MinRadius || a.BaseRadius > p.MaxRadius {
			t.Fatalf("target %d radius %d out of range", i, a.BaseRadius)
		}
		r := a.Radius
		if a.X-r < 0 || a.Y-r < 0 || a.X+r > float64(field.Width) || a.Y+r > float64(field.Height) {
			t.Fatalf("target %d at (%f,%f) r=%f leaves the field", i, a.X, a.Y, r)
		}
		for j := i + 1; j < len(placed); j++ {
			b := placed[j]
			if physics.Distance(a.X, a.Y, b.X, b.Y) < a.Radius+b.Radius {
				t.Fatalf("targets %d and %d overlap", i, j)
			}
		}
	}
}

func TestPlacePointsUseMultiplier(t *testing.T) {
	p := NewPlacer(DefaultField(), rand.New(rand.NewSource(9)))
	hard, _ := difficulty.ByName(difficulty.Hard)

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		tg, err := p.Place(nil, hard, time.Second)
		if err != nil {
			t.Fatalf("place: %v", err)
		}
		if tg.Points%hard.Multiplier != 0 || tg.Points < 3 || tg.Points > 9 {
			t.Fatalf("unexpected points %d", tg.Points)
		}
		if tg.Tier != TierFor(tg.Points) {
			t.Fatalf("tier %v does not match points %d", tg.Tier, tg.Points)
		}
		if tg.Lifetime != hard.Lifetime || tg.Born != time.Second {
			t.Fatalf("lifetime/born not taken from profile/clock: %+v", tg)
		}
		seen[tg.Points] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected all three point values, saw %v", seen)
	}
}

func TestPlaceReportsSaturation(t *testing.T) {
	p := &Placer{
		Field:     Field{Width: 100, Height: 100},
		MinRadius: 50,
		MaxRadius: 50,
		Attempts:  16,
		Rand:      rand.New(rand.NewSource(1)),
	}
	blocker := NewTarget(50, 50, 50, 1, time.Second, 0)
	profile := difficulty.Default()

	for attempt := 0; attempt < 2; attempt++ {
		tg, err := p.Place([]*Target{blocker}, profile, 0)
		if !errors.Is(err, ErrFieldSaturated) {
			t.Fatalf("attempt %d: err = %v, want ErrFieldSaturated", attempt, err)
		}
		if tg != nil {
			t.Fatalf("attempt %d: got target on failure", attempt)
		}
	}
}

func TestPlaceChecksExplodingTargets(t *testing.T) {
	p := &Placer{
		Field:     Field{Width: 100, Height: 100},
		MinRadius: 50,
		MaxRadius: 50,
		Attempts:  8,
		Rand:      rand.New(rand.NewSource(1)),
	}
	blocker := NewTarget(50, 50, 10, 1, time.Second, 0)
	blocker.Explode(rand.New(rand.NewSource(2)))

	if _, err := p.Place([]*Target{blocker}, difficulty.Default(), 0); !errors.Is(err, ErrFieldSaturated) {
		t.Fatalf("exploding target should still block placement, err = %v", err)
	}
}

func TestPlaceRadiusLargerThanField(t *testing.T) {
	p := &Placer{
		Field:     Field{Width: 30, Height: 30},
		MinRadius: 20,
		MaxRadius: 20,
		Attempts:  4,
		Rand:      rand.New(rand.NewSource(1)),
	}
	if _, err := p.Place(nil, difficulty.Default(), 0); !errors.Is(err, ErrFieldSaturated) {
		t.Fatalf("oversized radius should fail cleanly, err = %v", err)
	}
}
