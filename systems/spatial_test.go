package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/components"
)

func newTestIndex() (*SpatialIndex, *ecs.Map1[components.Position]) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	return NewSpatialIndex(10), mapper
}

func TestSpatialIndexInsertQuery(t *testing.T) {
	tests := []struct {
		name     string
		insertAt r3.Vec
		queryAt  r3.Vec
		radius   float64
		want     bool
	}{
		{
			name:     "own position zero radius",
			insertAt: r3.Vec{X: 1, Y: 2, Z: 3},
			queryAt:  r3.Vec{X: 1, Y: 2, Z: 3},
			radius:   0,
			want:     true,
		},
		{
			name:     "negative coordinates",
			insertAt: r3.Vec{X: -49.9, Y: -0.1, Z: 0},
			queryAt:  r3.Vec{X: -49.9, Y: -0.1, Z: 0},
			radius:   0,
			want:     true,
		},
		{
			name:     "neighboring cell within reach",
			insertAt: r3.Vec{X: 12, Y: 0, Z: 0},
			queryAt:  r3.Vec{X: 8, Y: 0, Z: 0},
			radius:   5,
			want:     true,
		},
		{
			name:     "distant cell out of reach",
			insertAt: r3.Vec{X: 35, Y: 0, Z: 0},
			queryAt:  r3.Vec{X: 0, Y: 0, Z: 0},
			radius:   5,
			want:     false,
		},
		{
			name:     "same cell beyond exact radius still returned",
			insertAt: r3.Vec{X: 9.5, Y: 0, Z: 0},
			queryAt:  r3.Vec{X: 0.5, Y: 0, Z: 0},
			radius:   1,
			want:     true, // superset contract: callers re-filter by distance
		},
		{
			name:     "diagonal neighbor cell",
			insertAt: r3.Vec{X: 11, Y: 11, Z: 11},
			queryAt:  r3.Vec{X: 9, Y: 9, Z: 9},
			radius:   4,
			want:     true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			idx, mapper := newTestIndex()
			e := mapper.NewEntity(&components.Position{Vec: tc.insertAt})
			idx.Insert(e, tc.insertAt)

			got := false
			for _, found := range idx.Query(tc.queryAt, tc.radius) {
				if found == e {
					got = true
				}
			}
			if got != tc.want {
				t.Errorf("Query(%v, %v) includes entity = %v, want %v", tc.queryAt, tc.radius, got, tc.want)
			}
		})
	}
}

func TestSpatialIndexRemove(t *testing.T) {
	idx, mapper := newTestIndex()
	pos := r3.Vec{X: 5, Y: 5, Z: 5}
	e := mapper.NewEntity(&components.Position{Vec: pos})

	idx.Insert(e, pos)
	if !idx.Contains(e) {
		t.Fatal("Contains(e) = false after Insert")
	}

	idx.Remove(e)
	if idx.Contains(e) {
		t.Error("Contains(e) = true after Remove")
	}
	if got := idx.Query(pos, 20); len(got) != 0 {
		t.Errorf("Query after Remove returned %d entities, want 0", len(got))
	}

	// Removing again must be a no-op.
	idx.Remove(e)
	if idx.Count() != 0 {
		t.Errorf("Count = %d after double Remove, want 0", idx.Count())
	}

	// Removing a never-inserted entity must be a no-op.
	other := mapper.NewEntity(&components.Position{})
	idx.Remove(other)
	if idx.Count() != 0 {
		t.Errorf("Count = %d after removing untracked entity, want 0", idx.Count())
	}
}

func TestSpatialIndexMoveRelocates(t *testing.T) {
	idx, mapper := newTestIndex()
	oldPos := r3.Vec{X: 0, Y: 0, Z: 0}
	newPos := r3.Vec{X: 55, Y: 0, Z: 0}
	e := mapper.NewEntity(&components.Position{Vec: oldPos})

	idx.Insert(e, oldPos)
	idx.Insert(e, newPos) // move is remove-then-reinsert

	if idx.Count() != 1 {
		t.Errorf("Count = %d after move, want 1", idx.Count())
	}
	for _, found := range idx.Query(oldPos, 0) {
		if found == e {
			t.Error("entity still found at old position after move")
		}
	}
	found := false
	for _, got := range idx.Query(newPos, 0) {
		if got == e {
			found = true
		}
	}
	if !found {
		t.Error("entity not found at new position after move")
	}
}

func TestSpatialIndexEvictsEmptyCells(t *testing.T) {
	idx, mapper := newTestIndex()
	pos := r3.Vec{X: 3, Y: 3, Z: 3}
	a := mapper.NewEntity(&components.Position{Vec: pos})
	b := mapper.NewEntity(&components.Position{Vec: pos})

	idx.Insert(a, pos)
	idx.Insert(b, pos)
	if idx.CellCount() != 1 {
		t.Fatalf("CellCount = %d, want 1", idx.CellCount())
	}

	idx.Remove(a)
	if idx.CellCount() != 1 {
		t.Errorf("CellCount = %d after first removal, want 1", idx.CellCount())
	}

	idx.Remove(b)
	if idx.CellCount() != 0 {
		t.Errorf("CellCount = %d after last removal, want 0", idx.CellCount())
	}
}

func TestSpatialIndexQueryIntoAppends(t *testing.T) {
	idx, mapper := newTestIndex()
	pos := r3.Vec{X: 1, Y: 1, Z: 1}
	a := mapper.NewEntity(&components.Position{Vec: pos})
	b := mapper.NewEntity(&components.Position{Vec: pos})
	idx.Insert(a, pos)

	buf := []ecs.Entity{b} // pre-existing content must survive
	buf = idx.QueryInto(buf, pos, 0)

	if len(buf) != 2 {
		t.Fatalf("len(buf) = %d, want 2", len(buf))
	}
	if buf[0] != b {
		t.Error("QueryInto overwrote existing buffer content")
	}
	if buf[1] != a {
		t.Error("QueryInto did not append the query result")
	}
}

func TestSpatialIndexClear(t *testing.T) {
	idx, mapper := newTestIndex()
	for i := 0; i < 5; i++ {
		pos := r3.Vec{X: float64(i) * 15}
		idx.Insert(mapper.NewEntity(&components.Position{Vec: pos}), pos)
	}
	idx.Clear()
	if idx.Count() != 0 || idx.CellCount() != 0 {
		t.Errorf("after Clear: Count = %d, CellCount = %d, want 0, 0", idx.Count(), idx.CellCount())
	}
}
