package game

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlange-42/ark/ecs"

	"github.com/AdrianBisson/YEN/components"
)

// newHeadEntity creates a snake head at pos and registers it with the
// spatial index.
func (g *Game) newHeadEntity(owner uint32, pos r3.Vec) ecs.Entity {
	e := g.bodyMapper.NewEntity(
		&components.Position{Vec: pos},
		&components.Body{Kind: components.KindHead, Owner: owner, Index: -1},
	)
	g.index.Insert(e, pos)
	return e
}

// newSegmentEntity creates a body segment at pos. The segment is not
// inserted into the spatial index here: placement inserts it on the next
// frame, so a just-grown segment becomes collidable only then.
func (g *Game) newSegmentEntity(owner uint32, index int32, pos r3.Vec) ecs.Entity {
	return g.bodyMapper.NewEntity(
		&components.Position{Vec: pos},
		&components.Body{Kind: components.KindSegment, Owner: owner, Index: index},
	)
}

// growSnake appends one segment at the current tail position. Pickup
// accounting is the caller's concern; growing never touches NibblesEaten,
// so initial body construction and pickup growth share this path.
func (g *Game) growSnake(s *Snake) {
	idx := int32(len(s.Segments))
	tail := s.HeadPos()
	if n := len(s.Segments); n > 0 {
		if pos := g.posMap.Get(s.Segments[n-1]); pos != nil {
			tail = pos.Vec
		}
	}
	s.Segments = append(s.Segments, g.newSegmentEntity(s.ID, idx, tail))
}

// createWalls registers the six arena faces as wall entities. They live
// in the spatial index like everything else; collision classification
// excludes them by Kind before any distance math.
func (g *Game) createWalls() {
	half := g.cfg.Arena.Half
	for axis := 0; axis < 3; axis++ {
		for _, sign := range [2]float64{1, -1} {
			pos := axisVec(axis, sign*half)
			e := g.wallMapper.NewEntity(
				&components.Position{Vec: pos},
				&components.Body{Kind: components.KindWall, Index: -1},
				&components.Wall{Normal: axisVec(axis, -sign)},
			)
			g.index.Insert(e, pos)
			g.walls = append(g.walls, e)
		}
	}
}

// releaseSnakeEntities removes a snake's head and segments from the
// spatial index and the world.
func (g *Game) releaseSnakeEntities(s *Snake) {
	g.index.Remove(s.Head)
	g.world.RemoveEntity(s.Head)
	for _, e := range s.Segments {
		g.index.Remove(e)
		g.world.RemoveEntity(e)
	}
}

func axisVec(axis int, v float64) r3.Vec {
	switch axis {
	case 0:
		return r3.Vec{X: v}
	case 1:
		return r3.Vec{Y: v}
	default:
		return r3.Vec{Z: v}
	}
}
