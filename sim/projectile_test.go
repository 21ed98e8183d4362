package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fireHeld = Input{Fire: true}

func TestFireFirstShotAfterTimeout(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < 9; i++ {
		w.Tick(TickContext{Delta: frame, Input: fireHeld})
		require.Zero(t, w.arena.Count(KindProjectile), "tick %d", i+1)
	}
	w.Tick(TickContext{Delta: frame, Input: fireHeld})
	assert.Equal(t, 1, w.arena.Count(KindProjectile))
	assert.Equal(t, 1, w.Stats().ShotsFired)
}

func TestFireHeldForThreeTimeouts(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < 30; i++ {
		w.Tick(TickContext{Delta: frame, Input: fireHeld})
	}
	assert.Equal(t, 3, w.arena.Count(KindProjectile))
}

func TestFireNotHeld(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < 30; i++ {
		w.Tick(TickContext{Delta: frame})
	}
	assert.Zero(t, w.arena.Count(KindProjectile))

	// cooldown kept running, so the first held tick fires at once
	w.Tick(TickContext{Delta: frame, Input: fireHeld})
	assert.Equal(t, 1, w.arena.Count(KindProjectile))
	w.Tick(TickContext{Delta: frame, Input: fireHeld})
	assert.Equal(t, 1, w.arena.Count(KindProjectile))
}

func TestProjectileSpawnAndFlight(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.GunTimeout = frame })
	w.Tick(TickContext{Delta: frame, Input: fireHeld, Cursor: cursorAt(0, 100)})
	require.Equal(t, 1, w.arena.Count(KindProjectile))

	g := mustWeapon(t, w)
	var shot *Entity
	w.arena.Each(KindProjectile, func(e *Entity) { shot = e })
	require.NotNil(t, shot)

	// first seen where it left the weapon, not yet integrated
	assert.Equal(t, g.Pos, shot.Pos)
	assert.Equal(t, DepthProjectile, shot.Z)
	assert.Equal(t, FrameProjectile, shot.Frame)
	assert.InDelta(t, math.Pi/2, shot.Rotation, 1e-12)
	assert.Zero(t, shot.Age)

	id := shot.ID
	before := shot.Pos
	// aim elsewhere: direction stays frozen
	w.Tick(TickContext{Delta: frame, Cursor: cursorAt(-100, 0)})
	shot, ok := w.arena.Get(id)
	require.True(t, ok)
	assert.InDelta(t, before.X, shot.Pos.X, 1e-9)
	assert.InDelta(t, before.Y+w.cfg.BulletSpeed, shot.Pos.Y, 1e-9)
	assert.Equal(t, DepthFront, shot.Z)
}

func TestProjectileEmittedAtDepthOne(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.GunTimeout = frame })
	w.fire(frame, true)
	w.arena.Each(KindProjectile, func(e *Entity) {
		assert.Equal(t, DepthProjectile, e.Z)
		assert.Equal(t, FrameProjectile, e.Frame)
	})
	assert.Equal(t, 1, w.arena.Count(KindProjectile))
}

func TestProjectilesPersistWithoutLifetime(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.GunTimeout = frame })
	w.Tick(TickContext{Delta: frame, Input: fireHeld})
	for i := 0; i < 600; i++ {
		w.Tick(TickContext{Delta: frame})
	}
	assert.Equal(t, 1, w.arena.Count(KindProjectile))
	assert.Zero(t, w.Stats().Expired)
}

func TestProjectileLifetimeExpires(t *testing.T) {
	w := newTestWorld(t, func(c *Config) {
		c.GunTimeout = frame
		c.ProjectileLifetime = 500 * time.Millisecond
	})
	w.Tick(TickContext{Delta: frame, Input: fireHeld}) // emitted, age 0
	for i := 0; i < 4; i++ {
		w.Tick(TickContext{Delta: frame})
	}
	assert.Equal(t, 1, w.arena.Count(KindProjectile), "age 400ms")
	w.Tick(TickContext{Delta: frame})
	assert.Zero(t, w.arena.Count(KindProjectile), "age 500ms")
	assert.Equal(t, 1, w.Stats().Expired)
}

func TestFireWithoutWeaponNoop(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.GunTimeout = frame })
	w.arena.Remove(mustWeapon(t, w).ID)
	p := *mustPlayer(t, w)

	for i := 0; i < 5; i++ {
		w.Tick(TickContext{Delta: frame, Input: fireHeld, Cursor: cursorAt(100, 0)})
	}
	assert.Zero(t, w.arena.Count(KindProjectile))
	assert.Zero(t, w.Stats().ShotsFired)
	assert.Equal(t, p.Pos, mustPlayer(t, w).Pos)
}
