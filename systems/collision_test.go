package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/components"
)

type collisionFixture struct {
	index   *SpatialIndex
	mapper  *ecs.Map2[components.Position, components.Body]
	posMap  *ecs.Map1[components.Position]
	bodyMap *ecs.Map1[components.Body]
	engine  *CollisionEngine
}

func newCollisionFixture() *collisionFixture {
	world := ecs.NewWorld()
	f := &collisionFixture{
		index:   NewSpatialIndex(10),
		mapper:  ecs.NewMap2[components.Position, components.Body](world),
		posMap:  ecs.NewMap1[components.Position](world),
		bodyMap: ecs.NewMap1[components.Body](world),
	}
	f.engine = NewCollisionEngine(f.index, f.posMap, f.bodyMap)
	return f
}

func (f *collisionFixture) spawn(pos r3.Vec, body components.Body) ecs.Entity {
	e := f.mapper.NewEntity(&components.Position{Vec: pos}, &body)
	f.index.Insert(e, pos)
	return e
}

func testCollisionParams() CollisionParams {
	return CollisionParams{Distance: 1.8, SelfSkip: 10, QueryScale: 2}
}

func TestClassifySelfSegmentSkipWindow(t *testing.T) {
	tests := []struct {
		name      string
		index     int32
		dist      float64
		wantEvent bool
	}{
		{name: "index 0 adjacent", index: 0, dist: 0.5, wantEvent: false},
		{name: "index 9 inside window", index: 9, dist: 1.0, wantEvent: false},
		{name: "index 10 just past window", index: 10, dist: 1.0, wantEvent: true},
		{name: "index 25 far down the body", index: 25, dist: 1.7, wantEvent: true},
		{name: "index 10 but out of range", index: 10, dist: 2.5, wantEvent: false},
		{name: "index 10 exactly at threshold", index: 10, dist: 1.8, wantEvent: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newCollisionFixture()
			const owner = uint32(1)
			headPos := r3.Vec{}
			head := f.spawn(headPos, components.Body{Kind: components.KindHead, Owner: owner, Index: -1})
			f.spawn(r3.Vec{X: tc.dist}, components.Body{Kind: components.KindSegment, Owner: owner, Index: tc.index})

			events := f.engine.ClassifyHead(nil, HeadRef{Entity: head, Owner: owner, Pos: headPos}, testCollisionParams())

			if got := len(events) > 0; got != tc.wantEvent {
				t.Errorf("event emitted = %v, want %v (index %d at %v)", got, tc.wantEvent, tc.index, tc.dist)
			}
		})
	}
}

func TestClassifyExcludesWalls(t *testing.T) {
	f := newCollisionFixture()
	headPos := r3.Vec{X: 49.5}
	head := f.spawn(headPos, components.Body{Kind: components.KindHead, Owner: 1, Index: -1})
	f.spawn(r3.Vec{X: 50}, components.Body{Kind: components.KindWall, Index: -1})

	events := f.engine.ClassifyHead(nil, HeadRef{Entity: head, Owner: 1, Pos: headPos}, testCollisionParams())

	if len(events) != 0 {
		t.Errorf("got %d events near a wall, want 0", len(events))
	}
}

func TestClassifyExcludesOwnHead(t *testing.T) {
	f := newCollisionFixture()
	headPos := r3.Vec{X: 5, Y: 5, Z: 5}
	head := f.spawn(headPos, components.Body{Kind: components.KindHead, Owner: 1, Index: -1})

	events := f.engine.ClassifyHead(nil, HeadRef{Entity: head, Owner: 1, Pos: headPos}, testCollisionParams())

	if len(events) != 0 {
		t.Errorf("head classified against itself: %d events", len(events))
	}
}

func TestClassifyOtherSnakes(t *testing.T) {
	tests := []struct {
		name      string
		kind      components.Kind
		owner     uint32
		index     int32
		dist      float64
		wantEvent bool
	}{
		{name: "enemy segment in range", kind: components.KindSegment, owner: 2, index: 0, dist: 1.7, wantEvent: true},
		{name: "enemy segment out of range", kind: components.KindSegment, owner: 2, index: 0, dist: 1.9, wantEvent: false},
		{name: "enemy head in range", kind: components.KindHead, owner: 2, index: -1, dist: 1.0, wantEvent: true},
		{name: "nibble in range", kind: components.KindNibble, owner: 0, index: -1, dist: 1.0, wantEvent: true},
		{name: "same cell but far", kind: components.KindSegment, owner: 2, index: 0, dist: 5.0, wantEvent: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newCollisionFixture()
			headPos := r3.Vec{}
			head := f.spawn(headPos, components.Body{Kind: components.KindHead, Owner: 1, Index: -1})
			target := f.spawn(r3.Vec{X: tc.dist}, components.Body{Kind: tc.kind, Owner: tc.owner, Index: tc.index})

			events := f.engine.ClassifyHead(nil, HeadRef{Entity: head, Owner: 1, Pos: headPos}, testCollisionParams())

			if got := len(events) > 0; got != tc.wantEvent {
				t.Fatalf("event emitted = %v, want %v", got, tc.wantEvent)
			}
			if !tc.wantEvent {
				return
			}
			ev := events[0]
			if ev.Target != target {
				t.Errorf("Target = %v, want %v", ev.Target, target)
			}
			if ev.TargetKind != tc.kind {
				t.Errorf("TargetKind = %v, want %v", ev.TargetKind, tc.kind)
			}
			if ev.TargetOwner != tc.owner {
				t.Errorf("TargetOwner = %d, want %d", ev.TargetOwner, tc.owner)
			}
			if ev.SubjectOwner != 1 {
				t.Errorf("SubjectOwner = %d, want 1", ev.SubjectOwner)
			}
			if d := ev.Distance; math.Abs(d-tc.dist) > 1e-9 {
				t.Errorf("Distance = %v, want %v", d, tc.dist)
			}
		})
	}
}

func TestClassifyOrderFollowsHeads(t *testing.T) {
	f := newCollisionFixture()
	p := testCollisionParams()

	playerPos := r3.Vec{}
	player := f.spawn(playerPos, components.Body{Kind: components.KindHead, Owner: 1, Index: -1})
	shadowPos := r3.Vec{X: 20}
	shadow := f.spawn(shadowPos, components.Body{Kind: components.KindHead, Owner: 2, Index: -1})

	// One target near each head.
	f.spawn(r3.Vec{X: 1}, components.Body{Kind: components.KindSegment, Owner: 2, Index: 0})
	f.spawn(r3.Vec{X: 21}, components.Body{Kind: components.KindSegment, Owner: 1, Index: 15})

	heads := []HeadRef{
		{Entity: player, Owner: 1, Pos: playerPos},
		{Entity: shadow, Owner: 2, Pos: shadowPos},
	}
	events := f.engine.Classify(nil, heads, p)

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].SubjectOwner != 1 || events[1].SubjectOwner != 2 {
		t.Errorf("event order = [%d, %d], want player first", events[0].SubjectOwner, events[1].SubjectOwner)
	}
}
