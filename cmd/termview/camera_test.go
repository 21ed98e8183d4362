package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"horde-server/sim"
)

func TestCameraScreenRoundTrip(t *testing.T) {
	cam := Camera{Pos: sim.V(123.4, -56.7)}
	for _, cell := range [][2]int{{0, 0}, {40, 12}, {79, 23}, {13, 5}} {
		p := cam.ScreenToWorld(cell[0], cell[1], 80, 24)
		col, row := cam.WorldToScreen(p, 80, 24)
		assert.Equal(t, cell[0], col)
		assert.Equal(t, cell[1], row)
	}
}

func TestCameraUpIsUpOnScreen(t *testing.T) {
	var cam Camera
	_, centre := cam.WorldToScreen(sim.V(0, 0), 80, 24)
	_, above := cam.WorldToScreen(sim.V(0, 100), 80, 24)
	assert.Less(t, above, centre)
}

func TestCameraFollowLerps(t *testing.T) {
	var cam Camera
	cam.Follow(sim.V(100, -50))
	assert.InDelta(t, 10.0, cam.Pos.X, 1e-9)
	assert.InDelta(t, -5.0, cam.Pos.Y, 1e-9)
	for i := 0; i < 200; i++ {
		cam.Follow(sim.V(100, -50))
	}
	assert.InDelta(t, 100.0, cam.Pos.X, 1e-6)
	assert.InDelta(t, -50.0, cam.Pos.Y, 1e-6)
}
