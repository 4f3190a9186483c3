// Package components defines ECS components for the simulation.
package components

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Kind classifies a tracked entity for collision filtering.
// The kind is assigned at creation time and never changes; collision code
// must branch on it rather than on any render-side property.
type Kind uint8

const (
	KindHead    Kind = iota // a snake's head
	KindSegment             // one body piece of a snake
	KindNibble              // a collectible
	KindWall                // static arena face geometry
)

// String returns the display name for a Kind.
func (k Kind) String() string {
	names := KindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// KindNames returns the display names for all kinds.
// The order matches the Kind constants.
func KindNames() []string {
	return []string{"Head", "Segment", "Nibble", "Wall"}
}

// Position is an entity's world position.
// This is the authoritative simulation position; cosmetic offsets (head
// wiggle, nibble wobble) live elsewhere and never feed back into it.
type Position struct {
	r3.Vec
}

// Body tags a tracked entity with its collision identity.
type Body struct {
	Kind  Kind
	Owner uint32 // id of the owning snake, 0 when not part of a snake
	Index int32  // segment index behind the head, -1 for heads and non-segments
}

// Nibble holds collectible state. The wobble fields are cosmetic only.
type Nibble struct {
	Phase    float32 // wobble phase offset, fixed at spawn
	Scale    float32 // current render scale, pulsed each frame
	FromDrop bool    // true when dropped by a dissolving snake
}

// Wall marks one arena face. Normal is the unit vector pointing back
// into the arena.
type Wall struct {
	Normal r3.Vec
}
