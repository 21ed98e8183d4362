package main

import (
	"math"

	"horde-server/sim"
)

// World units covered by one terminal cell. Cells are about twice as tall
// as they are wide.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
	followLerp = 0.1
)

// Camera tracks a world point shown at the centre of the screen.
type Camera struct {
	Pos sim.Vec2
}

// Follow eases the camera toward target.
func (c *Camera) Follow(target sim.Vec2) {
	c.Pos = c.Pos.Add(target.Sub(c.Pos).Scale(followLerp))
}

// WorldToScreen maps a world point to a cell for a w×h screen. +y is up in
// the world and down on screen.
func (c *Camera) WorldToScreen(p sim.Vec2, w, h int) (int, int) {
	d := p.Sub(c.Pos)
	col := w/2 + int(math.Floor(d.X/cellWidth))
	row := h/2 - int(math.Floor(d.Y/cellHeight))
	return col, row
}

// ScreenToWorld returns the world point at the centre of a cell.
func (c *Camera) ScreenToWorld(col, row, w, h int) sim.Vec2 {
	return sim.Vec2{
		X: c.Pos.X + (float64(col-w/2)+0.5)*cellWidth,
		Y: c.Pos.Y + (float64(h/2-row)+0.5)*cellHeight,
	}
}

// Visible returns the world rectangle a w×h screen shows, as min and max
// corners.
func (c *Camera) Visible(w, h int) (sim.Vec2, sim.Vec2) {
	half := sim.V(float64(w)*cellWidth/2+cellWidth, float64(h)*cellHeight/2+cellHeight)
	return c.Pos.Sub(half), c.Pos.Add(half)
}
