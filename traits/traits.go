// Package traits defines shadow-snake temperaments and their steering modifiers.
package traits

import (
	"math/rand"
	"strings"
)

// Trait defines shadow behavior tendencies.
type Trait uint32

const (
	// Steering traits
	Greedy  Trait = 1 << iota // chases nibbles at a higher gain
	Timid                     // keeps a wider margin from the walls
	Erratic                   // larger steering jitter

	// Movement traits (mutually exclusive)
	Swift    // moves faster than the configured shadow speed
	Sluggish // moves slower
)

// Has checks if a trait set contains a trait.
func (t Trait) Has(other Trait) bool {
	return t&other != 0
}

// Add adds a trait to the set.
func (t Trait) Add(other Trait) Trait {
	return t | other
}

// Remove removes a trait from the set.
func (t Trait) Remove(other Trait) Trait {
	return t &^ other
}

// String returns the temperament as a display string.
func (t Trait) String() string {
	var names []string
	for _, entry := range []struct {
		flag Trait
		name string
	}{
		{Greedy, "Greedy"},
		{Timid, "Timid"},
		{Erratic, "Erratic"},
		{Swift, "Swift"},
		{Sluggish, "Sluggish"},
	} {
		if t.Has(entry.flag) {
			names = append(names, entry.name)
		}
	}
	if len(names) == 0 {
		return "Plain"
	}
	return strings.Join(names, "+")
}

// Derive rolls a temperament for a newly spawned shadow snake. Swift and
// Sluggish never co-occur.
func Derive(rng *rand.Rand) Trait {
	var t Trait
	if rng.Float64() < 0.35 {
		t = t.Add(Greedy)
	}
	if rng.Float64() < 0.25 {
		t = t.Add(Timid)
	}
	if rng.Float64() < 0.30 {
		t = t.Add(Erratic)
	}
	switch {
	case rng.Float64() < 0.20:
		t = t.Add(Swift)
	case rng.Float64() < 0.15:
		t = t.Add(Sluggish)
	}
	return t
}

// SeekGainFactor scales the nibble-seek gain.
func (t Trait) SeekGainFactor() float64 {
	if t.Has(Greedy) {
		return 1.5
	}
	return 1.0
}

// WallBufferFactor scales the wall-avoidance safe band.
func (t Trait) WallBufferFactor() float64 {
	if t.Has(Timid) {
		return 1.6
	}
	return 1.0
}

// JitterFactor scales the steering jitter amplitude.
func (t Trait) JitterFactor() float64 {
	if t.Has(Erratic) {
		return 2.5
	}
	return 1.0
}

// SpeedFactor scales the configured shadow speed.
func (t Trait) SpeedFactor() float64 {
	switch {
	case t.Has(Swift):
		return 1.25
	case t.Has(Sluggish):
		return 0.8
	}
	return 1.0
}
