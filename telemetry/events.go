// Package telemetry provides game health tracking, highlight detection,
// leaderboards, and scene snapshots.
package telemetry

import (
	"github.com/AdrianBisson/YEN/components"
	"gonum.org/v1/gonum/spatial/r3"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventPickup EventType = iota
	EventCollision
	EventDissolve
	EventShadowSpawn
	EventBoundary
	EventWallClamp
)

// Event represents a single telemetry event.
type Event struct {
	Type    EventType
	Tick    int32
	SnakeID uint32
	Player  bool
	Pos     r3.Vec

	// Optional fields depending on event type
	TargetID   uint32          // collision: owner of the struck body
	TargetKind components.Kind // collision: what was struck
	Axis       int             // boundary: crossed axis (0=x, 1=y, 2=z)
	Count      int             // dissolve: nibbles dropped
}

// NewPickupEvent creates a nibble pickup event.
func NewPickupEvent(tick int32, snakeID uint32, player bool, pos r3.Vec) Event {
	return Event{
		Type:    EventPickup,
		Tick:    tick,
		SnakeID: snakeID,
		Player:  player,
		Pos:     pos,
	}
}

// NewCollisionEvent creates a resolved collision event.
func NewCollisionEvent(tick int32, snakeID uint32, player bool, targetID uint32, targetKind components.Kind, pos r3.Vec) Event {
	return Event{
		Type:       EventCollision,
		Tick:       tick,
		SnakeID:    snakeID,
		Player:     player,
		Pos:        pos,
		TargetID:   targetID,
		TargetKind: targetKind,
	}
}

// NewDissolveEvent creates a snake dissolution event. count is the number
// of nibbles dropped at the former segment positions.
func NewDissolveEvent(tick int32, snakeID uint32, player bool, count int, pos r3.Vec) Event {
	return Event{
		Type:    EventDissolve,
		Tick:    tick,
		SnakeID: snakeID,
		Player:  player,
		Pos:     pos,
		Count:   count,
	}
}

// NewShadowSpawnEvent creates a shadow spawn event at the wall hit point.
func NewShadowSpawnEvent(tick int32, snakeID uint32, pos r3.Vec) Event {
	return Event{
		Type:    EventShadowSpawn,
		Tick:    tick,
		SnakeID: snakeID,
		Pos:     pos,
	}
}

// NewBoundaryEvent creates a boundary crossing event.
func NewBoundaryEvent(tick int32, snakeID uint32, player bool, axis int, pos r3.Vec) Event {
	return Event{
		Type:    EventBoundary,
		Tick:    tick,
		SnakeID: snakeID,
		Player:  player,
		Pos:     pos,
		Axis:    axis,
	}
}

// NewWallClampEvent creates a wall clamp event (shadow steering pushed a
// head back into the safe band).
func NewWallClampEvent(tick int32, snakeID uint32, pos r3.Vec) Event {
	return Event{
		Type:    EventWallClamp,
		Tick:    tick,
		SnakeID: snakeID,
		Pos:     pos,
	}
}
