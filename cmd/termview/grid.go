package main

import (
	"math"

	"horde-server/sim"
)

// gridCellSize is about one screen of world height.
const gridCellSize = 400.0

// Grid buckets entity indices by position so drawing only visits the
// cells under the viewport. Positions outside the bounds clamp to the edge
// cells.
type Grid struct {
	minX, minY float64
	cols, rows int
	cells      [][]int
}

// NewGrid covers [-halfW, halfW] × [-halfH, halfH].
func NewGrid(halfW, halfH float64) *Grid {
	cols := int(math.Ceil(2*halfW/gridCellSize)) + 1
	rows := int(math.Ceil(2*halfH/gridCellSize)) + 1
	return &Grid{
		minX:  -halfW,
		minY:  -halfH,
		cols:  cols,
		rows:  rows,
		cells: make([][]int, cols*rows),
	}
}

func (g *Grid) cellOf(p sim.Vec2) (int, int) {
	cx := int(math.Floor((p.X - g.minX) / gridCellSize))
	cy := int(math.Floor((p.Y - g.minY) / gridCellSize))
	return min(max(cx, 0), g.cols-1), min(max(cy, 0), g.rows-1)
}

// Insert adds index i at p
func (g *Grid) Insert(p sim.Vec2, i int) {
	cx, cy := g.cellOf(p)
	idx := cy*g.cols + cx
	g.cells[idx] = append(g.cells[idx], i)
}

// QueryBuf appends the indices in every cell overlapping the rectangle
// [lo, hi] to buf, avoiding per-call allocation
func (g *Grid) QueryBuf(lo, hi sim.Vec2, buf []int) []int {
	minCX, minCY := g.cellOf(lo)
	maxCX, maxCY := g.cellOf(hi)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			buf = append(buf, g.cells[cy*g.cols+cx]...)
		}
	}
	return buf
}
