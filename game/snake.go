package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/systems"
	"github.com/AdrianBisson/YEN/traits"
)

// Snake aggregates one snake: its head entity, the ordered segment
// entities, and the motion state that drives them. Snakes are plain
// structs owned by the Game, not components; the ECS world carries only
// their bodies.
type Snake struct {
	ID       uint32
	IsPlayer bool

	Head  ecs.Entity
	Yaw   float64
	Pitch float64
	Speed float64

	// Segments are ordered head-outward; Segments[i] carries Body.Index i.
	// The list grows monotonically except on dissolution.
	Segments []ecs.Entity

	// Trail holds recent head positions, newest first, bounded by the
	// configured capacity. It is the sole input to the centerline curve.
	Trail []r3.Vec

	NibblesEaten int

	// Cosmetic vertical wiggle. The offset is a render-only displacement
	// and never feeds the trail, collision, or boundary logic.
	WigglePhase  float64
	WiggleOffset float64

	// Shadow-only state. InvulnUntil and ReflectUntil are sim-time
	// milliseconds; the player leaves them at zero.
	Traits       traits.Trait
	TargetDir    r3.Vec
	BornTick     int32
	InvulnUntil  float64
	ReflectUntil float64

	// speedFactor is last frame's steering output: 1 at full speed, 0.5
	// while a shadow prepares to eat.
	speedFactor float64

	curve    *systems.Curve
	trailCap int
	spacing  float64
}

func newSnake(id uint32, player bool, head ecs.Entity, pos r3.Vec, yaw, pitch, speed float64, trailCap int, spacing float64) *Snake {
	if trailCap < 1 {
		trailCap = 1
	}
	s := &Snake{
		ID:          id,
		IsPlayer:    player,
		Head:        head,
		Yaw:         yaw,
		Pitch:       pitch,
		Speed:       speed,
		speedFactor: 1,
		curve:       systems.NewCurve(),
		trailCap:    trailCap,
		spacing:     spacing,
	}
	s.Trail = append(make([]r3.Vec, 0, trailCap), pos)
	return s
}

// Forward returns the unit heading direction.
func (s *Snake) Forward() r3.Vec {
	return systems.Forward(s.Yaw, s.Pitch)
}

// HeadPos returns the authoritative head position (the newest trail point).
func (s *Snake) HeadPos() r3.Vec {
	return s.Trail[0]
}

// pushTrail records a new head position at the front of the trail,
// evicting the oldest point once the capacity is reached.
func (s *Snake) pushTrail(p r3.Vec) {
	if len(s.Trail) < s.trailCap {
		s.Trail = append(s.Trail, r3.Vec{})
	}
	copy(s.Trail[1:], s.Trail)
	s.Trail[0] = p
}

// refit recomputes the centerline curve through the trail. The curve is
// authoritative for segment placement.
func (s *Snake) refit(samplesPerSegment int) {
	s.curve.Fit(s.Trail, samplesPerSegment)
}

// segmentTarget returns where segment i belongs: at arc length
// (i+1)*spacing along the centerline. A trail too short to supply that
// arc length (always the case just after spawning) extrapolates straight
// back behind the head instead of crashing on a degenerate curve.
func (s *Snake) segmentTarget(i int) r3.Vec {
	want := float64(i+1) * s.spacing
	if want <= s.curve.Length() {
		return s.curve.PointAt(want)
	}
	return r3.Add(s.HeadPos(), r3.Scale(-want, s.Forward()))
}

// Length returns the body length in segments.
func (s *Snake) Length() int {
	return len(s.Segments)
}

// Invulnerable reports whether the snake is still inside its post-spawn
// invulnerability window. Invulnerable snakes neither die in collisions
// nor kill: the window exists because a shadow spawns at the very wall
// point the player just crossed.
func (s *Snake) Invulnerable(nowMs float64) bool {
	return nowMs < s.InvulnUntil
}

// Reflecting reports whether the snake still steers along its reflected
// spawn direction instead of seeking nibbles.
func (s *Snake) Reflecting(nowMs float64) bool {
	return nowMs < s.ReflectUntil
}

// clampPitch keeps player steering inside the same vertical limits the
// shadow steering uses.
func clampPitch(pitch float64) float64 {
	return systems.Clamp(pitch, -systems.MaxPitch, systems.MaxPitch)
}
