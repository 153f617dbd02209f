package world

import (
	"sort"

	"github.com/townforge/townsim/internal/component"
	"github.com/townforge/townsim/internal/core/ecs"
	"github.com/townforge/townsim/internal/mathx"
)

// Grid is the uniform broad-phase partition of the town's ground plane.
// Cell size is chosen so a 3x3 neighbourhood of cells covers the
// largest expected collision pair; entities whose radius exceeds half a
// cell can miss contacts across a 2-cell gap, which is an accepted
// trade of recall for speed.
//
// Rebuilt from scratch every tick by the physics system, which is its
// only owner. Accessed only from the game loop goroutine — no locks.
type Grid struct {
	cellSize  float64
	worldSize float64
	cols      int

	cells [][]ecs.EntityID          // index = cz*cols + cx
	where map[ecs.EntityID]int      // entity → cell index of last rebuild
}

// NewGrid partitions [0,worldSize)² into square cells.
func NewGrid(worldSize, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 10
	}
	if worldSize <= 0 {
		worldSize = 100
	}
	cols := int((worldSize + cellSize - 1) / cellSize)
	if cols < 1 {
		cols = 1
	}
	return &Grid{
		cellSize:  cellSize,
		worldSize: worldSize,
		cols:      cols,
		cells:     make([][]ecs.EntityID, cols*cols),
		where:     make(map[ecs.EntityID]int, 256),
	}
}

func (g *Grid) Cols() int { return g.cols }

// cellCoord clamps a world coordinate into grid range and returns its
// cell ordinate. Out-of-bounds positions clamp to the border cell.
func (g *Grid) cellCoord(v float64) int {
	v = mathx.Clamp(v, 0, g.worldSize)
	c := int(v / g.cellSize)
	if c >= g.cols {
		c = g.cols - 1
	}
	return c
}

// Rebuild clears all buckets and reinserts every positioned entity.
// Each entity lands in exactly one bucket, chosen by its clamped (x,z).
func (g *Grid) Rebuild(positions *ecs.Store[component.Position]) {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	clear(g.where)
	positions.Each(func(id ecs.EntityID, p *component.Position) {
		idx := g.cellCoord(p.Z)*g.cols + g.cellCoord(p.X)
		g.cells[idx] = append(g.cells[idx], id)
		g.where[id] = idx
	})
}

// Neighbors returns every entity in the 3x3 neighbourhood of cells
// around id's own cell, excluding id itself. Border cells clamp rather
// than wrap. The result is sorted by entity ID so downstream collision
// handling is independent of bucket insertion order.
func (g *Grid) Neighbors(id ecs.EntityID) []ecs.EntityID {
	idx, ok := g.where[id]
	if !ok {
		return nil
	}
	cx := idx % g.cols
	cz := idx / g.cols

	var out []ecs.EntityID
	for dz := -1; dz <= 1; dz++ {
		z := cz + dz
		if z < 0 || z >= g.cols {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			x := cx + dx
			if x < 0 || x >= g.cols {
				continue
			}
			for _, other := range g.cells[z*g.cols+x] {
				if other != id {
					out = append(out, other)
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
