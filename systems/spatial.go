// Package systems implements the simulation subsystems: the spatial index,
// collision classification, boundary monitoring, centerline curve fitting,
// and AI steering.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultCellSize is the grid cell edge length. Larger cells mean fewer
// cells per query but more occupants per cell.
const DefaultCellSize = 10.0

// CellKey addresses one grid cell. Keys derive from positions by flooring
// each coordinate divided by the cell size.
type CellKey struct {
	X, Y, Z int
}

// SpatialIndex is a uniform-grid spatial hash over tracked entities.
// Every tracked entity occupies exactly one cell; an entity absent from the
// index is not collidable. Cells are created on demand and deleted as soon
// as their last occupant leaves, so memory stays proportional to the
// occupied region rather than the arena volume.
type SpatialIndex struct {
	cellSize    float64
	invCellSize float64
	cells       map[CellKey][]ecs.Entity
	entries     map[ecs.Entity]CellKey
}

// NewSpatialIndex creates an index with the given cell size.
func NewSpatialIndex(cellSize float64) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialIndex{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cells:       make(map[CellKey][]ecs.Entity),
		entries:     make(map[ecs.Entity]CellKey),
	}
}

// Insert places e in the cell for pos. An entity already tracked is removed
// from its prior cell first; the index never updates a cell in place.
func (idx *SpatialIndex) Insert(e ecs.Entity, pos r3.Vec) {
	if prev, ok := idx.entries[e]; ok {
		idx.removeFromCell(e, prev)
	}
	key := idx.cellFor(pos)
	idx.entries[e] = key
	idx.cells[key] = append(idx.cells[key], e)
}

// Remove drops e from the index. Removing an entity that is not tracked is
// a no-op.
func (idx *SpatialIndex) Remove(e ecs.Entity) {
	key, ok := idx.entries[e]
	if !ok {
		return
	}
	idx.removeFromCell(e, key)
	delete(idx.entries, e)
}

func (idx *SpatialIndex) removeFromCell(e ecs.Entity, key CellKey) {
	bucket := idx.cells[key]
	for i := range bucket {
		if bucket[i] != e {
			continue
		}
		bucket[i] = bucket[len(bucket)-1]
		bucket = bucket[:len(bucket)-1]
		break
	}
	if len(bucket) == 0 {
		delete(idx.cells, key)
	} else {
		idx.cells[key] = bucket
	}
}

// Query returns every entity in the cube of cells spanning radius around
// pos. The result is a superset of the true radius query; callers must
// re-filter by exact distance.
func (idx *SpatialIndex) Query(pos r3.Vec, radius float64) []ecs.Entity {
	return idx.QueryInto(nil, pos, radius)
}

// QueryInto appends query results to dst and returns the extended slice,
// so callers on the frame path can reuse one buffer across frames.
func (idx *SpatialIndex) QueryInto(dst []ecs.Entity, pos r3.Vec, radius float64) []ecs.Entity {
	if radius < 0 {
		radius = 0
	}
	center := idx.cellFor(pos)
	reach := int(math.Ceil(radius * idx.invCellSize))
	for dz := -reach; dz <= reach; dz++ {
		for dy := -reach; dy <= reach; dy++ {
			for dx := -reach; dx <= reach; dx++ {
				key := CellKey{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz}
				dst = append(dst, idx.cells[key]...)
			}
		}
	}
	return dst
}

// Contains reports whether e is currently tracked.
func (idx *SpatialIndex) Contains(e ecs.Entity) bool {
	_, ok := idx.entries[e]
	return ok
}

// Count returns the number of tracked entities.
func (idx *SpatialIndex) Count() int {
	return len(idx.entries)
}

// CellCount returns the number of occupied cells.
func (idx *SpatialIndex) CellCount() int {
	return len(idx.cells)
}

// EachCell visits every occupied cell with its occupant count. Used by the
// debug overlay; the visit order is unspecified.
func (idx *SpatialIndex) EachCell(fn func(key CellKey, occupants int)) {
	for key, bucket := range idx.cells {
		fn(key, len(bucket))
	}
}

// Clear releases every tracked entity.
func (idx *SpatialIndex) Clear() {
	clear(idx.cells)
	clear(idx.entries)
}

// CellSize returns the configured cell edge length.
func (idx *SpatialIndex) CellSize() float64 {
	return idx.cellSize
}

func (idx *SpatialIndex) cellFor(pos r3.Vec) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X * idx.invCellSize)),
		Y: int(math.Floor(pos.Y * idx.invCellSize)),
		Z: int(math.Floor(pos.Z * idx.invCellSize)),
	}
}
