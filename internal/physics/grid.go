package physics

import "math"

// SpatialGrid is a uniform bucket grid for broad-phase overlap queries in a
// bounded world. Objects are inserted by position and index; box queries then
// visit only the buckets the box touches.
//
// Bucket size should be >= the largest object extent so that an object stored
// in one bucket is found by any box that overlaps it once the query box is
// padded by that extent.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	originX     float64
	originY     float64
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of objects that fall within a bucket.
// The slice is reused between ticks (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a grid covering [originX, originX+worldW) x
// [originY, originY+worldH).
func NewSpatialGrid(originX, originY, worldW, worldH, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(worldW / cellSize))
	rows := int(math.Ceil(worldH / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		originX:     originX,
		originY:     originY,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating bucket memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given world position.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryBox calls fn for each item stored in a bucket touched by the box.
// Items may be reported that do not actually overlap; callers do the narrow phase.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryBox(minX, minY, maxX, maxY float64, fn func(index int) bool) {
	c0, r0 := g.posToCell(minX, minY)
	c1, r1 := g.posToCell(maxX, maxY)

	for r := r0; r <= r1; r++ {
		rowOffset := r * g.cols
		for c := c0; c <= c1; c++ {
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts world coordinates to bucket coordinates.
// Clamps to the valid range so out-of-bounds positions land in edge buckets.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor((x - g.originX) * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor((y - g.originY) * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
