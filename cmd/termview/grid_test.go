package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"horde-server/sim"
)

func TestGridQueryFindsNearbyOnly(t *testing.T) {
	g := NewGrid(3000, 3000)
	g.Insert(sim.V(100, 100), 1)
	g.Insert(sim.V(-2900, 2900), 2)

	got := g.QueryBuf(sim.V(0, 0), sim.V(200, 200), nil)
	assert.Contains(t, got, 1)
	assert.NotContains(t, got, 2)
}

func TestGridClampsOutOfBounds(t *testing.T) {
	g := NewGrid(100, 100)
	g.Insert(sim.V(1e6, -1e6), 7)
	got := g.QueryBuf(sim.V(50, -150), sim.V(350, -50), nil)
	assert.Equal(t, []int{7}, got)
}
