package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/components"
)

// CollisionEvent describes one head-versus-entity proximity hit. Events
// are advisory: the engine never mutates state, interpretation belongs to
// the orchestrator.
type CollisionEvent struct {
	Subject      ecs.Entity // the head that hit
	SubjectOwner uint32     // id of the snake owning that head
	Target       ecs.Entity
	TargetKind   components.Kind
	TargetOwner  uint32
	TargetIndex  int32
	Distance     float64
}

// CollisionParams are the classification thresholds, read fresh from
// config each frame.
type CollisionParams struct {
	Distance   float64 // exact-distance hit threshold
	SelfSkip   int32   // own-segment indices below this are exempt
	QueryScale float64 // index query radius as a multiple of Distance
}

// HeadRef identifies one active head to classify.
type HeadRef struct {
	Entity ecs.Entity
	Owner  uint32
	Pos    r3.Vec
}

// CollisionEngine classifies entities near snake heads into collision
// events. Wall geometry is excluded by its Kind tag before any distance
// math; a snake's own segments within the skip window are exempt because
// they sit too close to the head during normal turning to be legitimate
// hits.
type CollisionEngine struct {
	index   *SpatialIndex
	posMap  *ecs.Map1[components.Position]
	bodyMap *ecs.Map1[components.Body]

	buf []ecs.Entity // query buffer reused across frames
}

// NewCollisionEngine creates an engine over the given index and component
// accessors.
func NewCollisionEngine(index *SpatialIndex, posMap *ecs.Map1[components.Position], bodyMap *ecs.Map1[components.Body]) *CollisionEngine {
	return &CollisionEngine{
		index:   index,
		posMap:  posMap,
		bodyMap: bodyMap,
		buf:     make([]ecs.Entity, 0, 64),
	}
}

// Classify appends events for every head, in the given order, to dst and
// returns it. The order matters to the caller: the player head is
// classified before shadow heads.
func (ce *CollisionEngine) Classify(dst []CollisionEvent, heads []HeadRef, p CollisionParams) []CollisionEvent {
	for _, h := range heads {
		dst = ce.ClassifyHead(dst, h, p)
	}
	return dst
}

// ClassifyHead appends events for a single head to dst and returns it.
func (ce *CollisionEngine) ClassifyHead(dst []CollisionEvent, head HeadRef, p CollisionParams) []CollisionEvent {
	ce.buf = ce.index.QueryInto(ce.buf[:0], head.Pos, p.Distance*p.QueryScale)

	for _, e := range ce.buf {
		if e == head.Entity {
			continue
		}
		body := ce.bodyMap.Get(e)
		if body == nil {
			continue
		}
		// Wall exclusion comes before the distance check so the static
		// faces never register as near-misses.
		if body.Kind == components.KindWall {
			continue
		}
		if body.Kind == components.KindSegment && body.Owner == head.Owner && body.Index < p.SelfSkip {
			continue
		}
		pos := ce.posMap.Get(e)
		if pos == nil {
			continue
		}
		d := Dist(head.Pos, pos.Vec)
		if d >= p.Distance {
			continue
		}
		dst = append(dst, CollisionEvent{
			Subject:      head.Entity,
			SubjectOwner: head.Owner,
			Target:       e,
			TargetKind:   body.Kind,
			TargetOwner:  body.Owner,
			TargetIndex:  body.Index,
			Distance:     d,
		})
	}
	return dst
}
