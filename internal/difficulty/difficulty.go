// Package difficulty defines the fixed difficulty presets.
package difficulty

import (
	"strings"
	"time"
)

// Profile is an immutable set of tunables selected from the menu.
type Profile struct {
	Name          string
	SpawnInterval time.Duration // Minimum time between population top-ups
	Lifetime      time.Duration // Time for a target to shrink from full size to nothing
	Multiplier    int           // Applied to the base points of every target
	Count         int           // Live targets kept on the field
}

// Preset names, in menu order.
const (
	Easy   = "Easy"
	Normal = "Normal"
	Hard   = "Hard"
)

var presets = [...]Profile{
	{Name: Easy, SpawnInterval: 1200 * time.Millisecond, Lifetime: 1500 * time.Millisecond, Multiplier: 1, Count: 3},
	{Name: Normal, SpawnInterval: 1000 * time.Millisecond, Lifetime: 1000 * time.Millisecond, Multiplier: 2, Count: 3},
	{Name: Hard, SpawnInterval: 800 * time.Millisecond, Lifetime: 700 * time.Millisecond, Multiplier: 3, Count: 3},
}

// All returns the presets from easiest to hardest.
func All() []Profile {
	out := make([]Profile, len(presets))
	copy(out, presets[:])
	return out
}

// Default returns the preset selected on a fresh start.
func Default() Profile {
	return presets[1]
}

// ByName looks a preset up by name, ignoring case.
func ByName(name string) (Profile, bool) {
	i := Index(name)
	if i < 0 {
		return Profile{}, false
	}
	return presets[i], true
}

// Index returns the menu position of the named preset, or -1.
func Index(name string) int {
	for i, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return i
		}
	}
	return -1
}

// At returns the preset at menu position i, wrapping around.
func At(i int) Profile {
	n := len(presets)
	return presets[((i%n)+n)%n]
}
