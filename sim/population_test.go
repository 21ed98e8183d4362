package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withHorde(max, burst int) func(*Config) {
	return func(c *Config) {
		c.MaxEnemies = max
		c.SpawnBurst = burst
	}
}

func TestPopulationSpawnCountFromStartingCount(t *testing.T) {
	cases := []struct {
		start, max, burst, want int
	}{
		{0, 800, 20, 20},
		{790, 800, 20, 10},
		{799, 800, 20, 1},
		{800, 800, 20, 0},
		{5, 3, 20, 0},
		{0, 7, 20, 7},
	}
	for _, tc := range cases {
		w := newTestWorld(t, withHorde(tc.max, tc.burst))
		for i := 0; i < tc.start; i++ {
			spawnEnemyAt(w, V(float64(i), 0))
		}
		w.populate(w.cfg.SpawnInterval)
		assert.Equal(t, tc.start+tc.want, w.arena.Count(KindEnemy), "%+v", tc)
		assert.Equal(t, tc.want, w.Stats().EnemiesSpawned, "%+v", tc)
	}
}

func TestPopulationNeverExceedsMax(t *testing.T) {
	w := newTestWorld(t, withHorde(55, 20))
	for i := 0; i < 10; i++ {
		w.populate(w.cfg.SpawnInterval)
		assert.LessOrEqual(t, w.arena.Count(KindEnemy), 55)
	}
	assert.Equal(t, 55, w.arena.Count(KindEnemy))
}

func TestPopulationRateLimited(t *testing.T) {
	w := newTestWorld(t, withHorde(800, 20))
	for i := 0; i < 9; i++ {
		w.Tick(TickContext{Delta: frame})
	}
	assert.Zero(t, w.arena.Count(KindEnemy))
	w.Tick(TickContext{Delta: frame})
	assert.Equal(t, 20, w.arena.Count(KindEnemy))
}

func TestPopulationOncePerTickOnLongFrame(t *testing.T) {
	w := newTestWorld(t, withHorde(800, 20))
	w.Tick(TickContext{Delta: 5 * time.Second})
	assert.Equal(t, 20, w.arena.Count(KindEnemy))
}

func TestPopulationNoPlayerNoop(t *testing.T) {
	w := newTestWorld(t, withHorde(800, 20))
	w.arena.Remove(mustPlayer(t, w).ID)
	w.populate(w.cfg.SpawnInterval)
	assert.Zero(t, w.arena.Count(KindEnemy))
}

func TestPopulationSpawnedEnemiesInBounds(t *testing.T) {
	w := newTestWorld(t, withHorde(400, 400), func(c *Config) {
		c.WorldWidth = 100
		c.WorldHeight = 50
	})
	w.populate(w.cfg.SpawnInterval)
	assert.Equal(t, 400, w.arena.Count(KindEnemy))
	w.arena.Each(KindEnemy, func(e *Entity) {
		assert.GreaterOrEqual(t, e.Pos.X, -100.0)
		assert.Less(t, e.Pos.X, 100.0)
		assert.GreaterOrEqual(t, e.Pos.Y, -50.0)
		assert.Less(t, e.Pos.Y, 50.0)
		assert.Equal(t, DepthEnemy, e.Z)
		assert.Equal(t, FrameEnemy, e.Frame)
		assert.True(t, e.Animated)
		assert.Equal(t, w.cfg.AnimationPeriod, e.Anim.Period)
	})
}
