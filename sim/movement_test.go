package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovementMagnitudeAllCombinations(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		in := Input{
			Up:    mask&1 != 0,
			Down:  mask&2 != 0,
			Left:  mask&4 != 0,
			Right: mask&8 != 0,
		}
		w := newTestWorld(t)
		before := mustPlayer(t, w).Pos

		w.Tick(TickContext{Delta: frame, Input: in})

		p := mustPlayer(t, w)
		d := p.Pos.Sub(before).Len()
		assert.False(t, math.IsNaN(d), "mask %04b", mask)
		if in.Direction().IsZero() {
			assert.Zero(t, d, "mask %04b", mask)
			assert.Equal(t, Idle, p.Movement, "mask %04b", mask)
		} else {
			assert.InDelta(t, w.cfg.PlayerSpeed, d, 1e-12, "mask %04b", mask)
			assert.Equal(t, Moving, p.Movement, "mask %04b", mask)
		}
	}
}

func TestMovementCancellingKeysIdle(t *testing.T) {
	w := newTestWorld(t)
	w.Tick(TickContext{Delta: frame, Input: Input{Left: true, Right: true}})
	p := mustPlayer(t, w)
	assert.Equal(t, Idle, p.Movement)
	assert.Equal(t, Vec2{}, p.Pos)
}

func TestMovementUpIsPositiveY(t *testing.T) {
	w := newTestWorld(t)
	w.Tick(TickContext{Delta: frame, Input: Input{Up: true}})
	p := mustPlayer(t, w)
	assert.Equal(t, V(0, 3), p.Pos)
	assert.Equal(t, DepthFront, p.Z)
}

func TestMovementNotScaledByDelta(t *testing.T) {
	w := newTestWorld(t)
	w.Tick(TickContext{Delta: 10 * frame, Input: Input{Right: true}})
	assert.Equal(t, V(3, 0), mustPlayer(t, w).Pos)
}

func TestMovementIdleKeepsDepth(t *testing.T) {
	w := newTestWorld(t)
	w.Tick(TickContext{Delta: frame})
	assert.Equal(t, 0.0, mustPlayer(t, w).Z)
}

func TestMovementWithoutPlayerNoop(t *testing.T) {
	w := newTestWorld(t)
	w.arena.Remove(mustPlayer(t, w).ID)
	g := *mustWeapon(t, w)

	assert.NotPanics(t, func() {
		w.Tick(TickContext{Delta: frame, Input: Input{Up: true, Right: true, Fire: true}, Cursor: cursorAt(50, 50)})
	})
	_, ok := w.Player()
	assert.False(t, ok)
	assert.Equal(t, 1, w.arena.Len(), "only the weapon is left")
	assert.Equal(t, g.Pos, mustWeapon(t, w).Pos)
}
