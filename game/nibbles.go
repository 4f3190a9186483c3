package game

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/components"
	"github.com/AdrianBisson/YEN/config"
	"github.com/AdrianBisson/YEN/systems"
)

// Cosmetic wobble tuning; the pulse only affects rendering scale.
const (
	nibbleWobbleRate = 3.0
	nibbleWobbleAmp  = 0.15
)

// NibbleField owns the collectible population: initial seeding, timed
// spawns, dissolution drops, and proximity pickup. Nibbles are kept in
// creation order because pickup deliberately takes the first match in
// that order, not the nearest.
type NibbleField struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Body, components.Nibble]
	posMap *ecs.Map1[components.Position]
	nibMap *ecs.Map1[components.Nibble]
	index  *systems.SpatialIndex
	rng    *rand.Rand

	list []ecs.Entity
	buf  []ecs.Entity // spatial query buffer for safe sampling
}

func newNibbleField(world *ecs.World, index *systems.SpatialIndex, rng *rand.Rand) *NibbleField {
	return &NibbleField{
		world:  world,
		mapper: ecs.NewMap3[components.Position, components.Body, components.Nibble](world),
		posMap: ecs.NewMap1[components.Position](world),
		nibMap: ecs.NewMap1[components.Nibble](world),
		index:  index,
		rng:    rng,
		list:   make([]ecs.Entity, 0, 64),
		buf:    make([]ecs.Entity, 0, 32),
	}
}

// Spawn creates one nibble at a safely sampled position: uniform inside
// the arena, rejecting candidates near a face or near any tracked entity.
// After maxAttempts rejections the last candidate is accepted anyway, so
// a crowded arena cannot stall spawning.
func (nf *NibbleField) Spawn(cfg *config.Config) ecs.Entity {
	half := cfg.Arena.Half
	var pos r3.Vec
	for attempt := 0; attempt < cfg.Nibbles.MaxAttempts; attempt++ {
		pos = r3.Vec{
			X: nf.uniform(half),
			Y: nf.uniform(half),
			Z: nf.uniform(half),
		}
		if nf.safeAt(pos, cfg) {
			break
		}
	}
	return nf.create(pos, false)
}

// SeedInitial populates the arena at game start or reset.
func (nf *NibbleField) SeedInitial(cfg *config.Config) {
	for i := 0; i < cfg.Nibbles.InitialCount; i++ {
		nf.Spawn(cfg)
	}
}

// CreateAt places a dissolution drop at pos, displaced per axis by a
// uniform jitter. Player drops pass zero jitter and land exactly on the
// former segment positions.
func (nf *NibbleField) CreateAt(pos r3.Vec, jitter float64) ecs.Entity {
	if jitter > 0 {
		pos.X += nf.uniform(jitter)
		pos.Y += nf.uniform(jitter)
		pos.Z += nf.uniform(jitter)
	}
	return nf.create(pos, true)
}

// FindNearby returns the first nibble in creation order within the
// squared pickup radius of pos.
func (nf *NibbleField) FindNearby(pos r3.Vec, radiusSq float64) (ecs.Entity, bool) {
	for _, e := range nf.list {
		p := nf.posMap.Get(e)
		if p == nil {
			continue
		}
		if systems.DistSq(pos, p.Vec) < radiusSq {
			return e, true
		}
	}
	return ecs.Entity{}, false
}

// Remove deletes a nibble from the field, the spatial index, and the
// world. The list splice preserves creation order.
func (nf *NibbleField) Remove(e ecs.Entity) {
	for i, other := range nf.list {
		if other != e {
			continue
		}
		nf.list = append(nf.list[:i], nf.list[i+1:]...)
		break
	}
	nf.index.Remove(e)
	nf.world.RemoveEntity(e)
}

// Clear removes every nibble. Used on reset and unload.
func (nf *NibbleField) Clear() {
	for _, e := range nf.list {
		nf.index.Remove(e)
		nf.world.RemoveEntity(e)
	}
	nf.list = nf.list[:0]
}

// Animate advances the cosmetic wobble one step.
func (nf *NibbleField) Animate(dt float64) {
	for _, e := range nf.list {
		nib := nf.nibMap.Get(e)
		if nib == nil {
			continue
		}
		nib.Phase += float32(dt * nibbleWobbleRate)
		nib.Scale = float32(1 + nibbleWobbleAmp*fastSin(float64(nib.Phase)))
	}
}

// Positions appends the current nibble positions to dst in creation
// order. Steering reads this snapshot each frame.
func (nf *NibbleField) Positions(dst []r3.Vec) []r3.Vec {
	for _, e := range nf.list {
		if p := nf.posMap.Get(e); p != nil {
			dst = append(dst, p.Vec)
		}
	}
	return dst
}

// Each visits every nibble in creation order.
func (nf *NibbleField) Each(fn func(pos r3.Vec, scale float32, fromDrop bool)) {
	for _, e := range nf.list {
		p := nf.posMap.Get(e)
		nib := nf.nibMap.Get(e)
		if p == nil || nib == nil {
			continue
		}
		fn(p.Vec, nib.Scale, nib.FromDrop)
	}
}

// Count returns the nibble population.
func (nf *NibbleField) Count() int {
	return len(nf.list)
}

// safeAt reports whether pos keeps the safe distance from every face and
// from every tracked entity. The spatial query is a superset, so hits are
// re-checked by exact distance.
func (nf *NibbleField) safeAt(pos r3.Vec, cfg *config.Config) bool {
	band := cfg.Arena.Half - cfg.Nibbles.SafeWallDistance
	if math.Abs(pos.X) > band || math.Abs(pos.Y) > band || math.Abs(pos.Z) > band {
		return false
	}
	objDist := cfg.Nibbles.SafeObjectDistance
	nf.buf = nf.index.QueryInto(nf.buf[:0], pos, objDist)
	for _, e := range nf.buf {
		p := nf.posMap.Get(e)
		if p == nil {
			continue
		}
		if systems.Dist(pos, p.Vec) < objDist {
			return false
		}
	}
	return true
}

func (nf *NibbleField) create(pos r3.Vec, fromDrop bool) ecs.Entity {
	e := nf.mapper.NewEntity(
		&components.Position{Vec: pos},
		&components.Body{Kind: components.KindNibble, Index: -1},
		&components.Nibble{
			Phase:    float32(nf.rng.Float64() * 2 * math.Pi),
			Scale:    1,
			FromDrop: fromDrop,
		},
	)
	nf.index.Insert(e, pos)
	nf.list = append(nf.list, e)
	return e
}

// uniform returns a sample in [-extent, extent).
func (nf *NibbleField) uniform(extent float64) float64 {
	return (nf.rng.Float64()*2 - 1) * extent
}
