package telemetry

import "github.com/AdrianBisson/YEN/traits"

// Dissolution causes recorded in LifeStats.
const (
	CauseSelf   = "self"   // hit own segment past the skip window
	CauseShadow = "shadow" // hit a shadow snake's body or head
	CausePlayer = "player" // shadow hit the player's body
	CauseReset  = "reset"  // game reset or shutdown while alive
)

// LifeStats tracks per-snake statistics over its lifetime.
type LifeStats struct {
	BornTick        int32
	SurvivalTimeSec float64
	Player          bool
	Traits          traits.Trait

	NibblesEaten int
	PeakLength   int
	Distance     float64 // cumulative head travel
	WallClamps   int     // times steering pushed the head off a wall
	Crossings    int     // boundary crossings (player only in practice)

	Cause string // dissolution cause, empty while alive
}

// LifeTracker manages per-snake lifetime statistics.
type LifeTracker struct {
	stats map[uint32]*LifeStats
}

// NewLifeTracker creates a new life tracker.
func NewLifeTracker() *LifeTracker {
	return &LifeTracker{
		stats: make(map[uint32]*LifeStats),
	}
}

// Register creates life stats for a new snake.
func (lt *LifeTracker) Register(snakeID uint32, bornTick int32, player bool, tr traits.Trait) {
	lt.stats[snakeID] = &LifeStats{
		BornTick: bornTick,
		Player:   player,
		Traits:   tr,
	}
}

// Get returns the life stats for a snake, or nil if not found.
func (lt *LifeTracker) Get(snakeID uint32) *LifeStats {
	return lt.stats[snakeID]
}

// Remove removes a snake's stats and returns them (for leaderboard/logging).
func (lt *LifeTracker) Remove(snakeID uint32) *LifeStats {
	stats := lt.stats[snakeID]
	delete(lt.stats, snakeID)
	return stats
}

// RecordNibble increments the pickup count.
func (lt *LifeTracker) RecordNibble(snakeID uint32) {
	if s := lt.stats[snakeID]; s != nil {
		s.NibblesEaten++
	}
}

// RecordWallClamp increments the wall clamp count.
func (lt *LifeTracker) RecordWallClamp(snakeID uint32) {
	if s := lt.stats[snakeID]; s != nil {
		s.WallClamps++
	}
}

// RecordCrossing increments the boundary crossing count.
func (lt *LifeTracker) RecordCrossing(snakeID uint32) {
	if s := lt.stats[snakeID]; s != nil {
		s.Crossings++
	}
}

// AddDistance accumulates head travel.
func (lt *LifeTracker) AddDistance(snakeID uint32, d float64) {
	if s := lt.stats[snakeID]; s != nil {
		s.Distance += d
	}
}

// UpdateLength tracks peak body length.
func (lt *LifeTracker) UpdateLength(snakeID uint32, length int) {
	if s := lt.stats[snakeID]; s != nil {
		if length > s.PeakLength {
			s.PeakLength = length
		}
	}
}

// UpdateSurvivalTime updates the survival time based on current tick.
func (lt *LifeTracker) UpdateSurvivalTime(snakeID uint32, currentTick int32, dt float64) {
	if s := lt.stats[snakeID]; s != nil {
		s.SurvivalTimeSec = float64(currentTick-s.BornTick) * dt
	}
}

// SetCause records the dissolution cause.
func (lt *LifeTracker) SetCause(snakeID uint32, cause string) {
	if s := lt.stats[snakeID]; s != nil {
		s.Cause = cause
	}
}

// All returns all tracked stats (for snapshots).
func (lt *LifeTracker) All() map[uint32]*LifeStats {
	return lt.stats
}

// Count returns the number of tracked snakes.
func (lt *LifeTracker) Count() int {
	return len(lt.stats)
}
