package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

// ParticleType identifies the effect a particle belongs to.
type ParticleType uint8

const (
	ParticlePickup   ParticleType = iota // nibble eaten
	ParticleDissolve                     // snake burst into drops
	ParticleSpawn                        // shadow materialized at a wall
)

// EffectParticle is one short-lived visual feedback particle.
type EffectParticle struct {
	Pos     r3.Vec
	Vel     r3.Vec
	Life    int32
	MaxLife int32
	Type    ParticleType
	Size    float32
}

// ParticleSystem manages effect particles. Purely cosmetic: it draws from
// the global math/rand source and never touches simulation state.
type ParticleSystem struct {
	particles []EffectParticle
	max       int
}

// NewParticleSystem creates a particle system with a hard cap.
func NewParticleSystem(max int) *ParticleSystem {
	return &ParticleSystem{
		particles: make([]EffectParticle, 0, 256),
		max:       max,
	}
}

// EmitPickup bursts a small gold puff where a nibble was eaten.
func (s *ParticleSystem) EmitPickup(pos r3.Vec) {
	count := 6 + rand.Intn(5)
	for i := 0; i < count; i++ {
		s.emitRadial(pos, ParticlePickup, 0.15, 30, 20)
	}
}

// EmitDissolve bursts one particle per dropped nibble, capped so a long
// snake cannot flood the pool in one frame.
func (s *ParticleSystem) EmitDissolve(pos r3.Vec, drops int) {
	count := 8 + drops*2
	if count > 60 {
		count = 60
	}
	for i := 0; i < count; i++ {
		s.emitRadial(pos, ParticleDissolve, 0.25, 50, 40)
	}
}

// EmitSpawn rings the wall hit point where a shadow materialized.
func (s *ParticleSystem) EmitSpawn(pos r3.Vec) {
	count := 10 + rand.Intn(7)
	for i := 0; i < count; i++ {
		s.emitRadial(pos, ParticleSpawn, 0.2, 40, 30)
	}
}

// emitRadial adds one particle with a uniformly random direction.
func (s *ParticleSystem) emitRadial(pos r3.Vec, ptype ParticleType, speed float64, baseLife, lifeJitter int32) {
	if len(s.particles) >= s.max {
		return
	}

	// Uniform direction on the sphere.
	z := rand.Float64()*2 - 1
	theta := rand.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	dir := r3.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: z}

	v := speed * (0.5 + rand.Float64())
	life := baseLife + rand.Int31n(lifeJitter)

	s.particles = append(s.particles, EffectParticle{
		Pos:     pos,
		Vel:     r3.Scale(v, dir),
		Life:    life,
		MaxLife: life,
		Type:    ptype,
		Size:    float32(0.1 + rand.Float64()*0.15),
	})
}

// Update ages all particles one frame and compacts the pool in place.
func (s *ParticleSystem) Update() {
	alive := 0
	for i := range s.particles {
		p := &s.particles[i]

		p.Life--
		if p.Life <= 0 {
			continue
		}

		switch p.Type {
		case ParticlePickup:
			p.Vel.Y += 0.004 // drift upward
		case ParticleDissolve:
			p.Vel.Y -= 0.006 // sink
		}

		p.Vel = r3.Scale(0.94, p.Vel)
		p.Pos = r3.Add(p.Pos, p.Vel)

		s.particles[alive] = s.particles[i]
		alive++
	}
	s.particles = s.particles[:alive]
}

// Draw renders all particles. Must run inside an active 3D mode.
func (s *ParticleSystem) Draw() {
	for i := range s.particles {
		p := &s.particles[i]
		t := float32(p.Life) / float32(p.MaxLife)

		var col rl.Color
		switch p.Type {
		case ParticlePickup:
			col = rl.Color{R: 255, G: 210, B: 90, A: uint8(220 * t)}
		case ParticleDissolve:
			col = rl.Color{R: 170, G: 120, B: 220, A: uint8(190 * t)}
		default:
			col = rl.Color{R: 90, G: 220, B: 230, A: uint8(200 * t)}
		}

		size := p.Size * (0.4 + 0.6*t)
		pos := rl.Vector3{X: float32(p.Pos.X), Y: float32(p.Pos.Y), Z: float32(p.Pos.Z)}
		rl.DrawSphereEx(pos, size, 4, 4, col)
	}
}

// Count returns the number of live particles.
func (s *ParticleSystem) Count() int {
	return len(s.particles)
}
