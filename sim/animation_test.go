package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnimationPlayerFollowsMovementBand(t *testing.T) {
	w := newTestWorld(t)
	idle := TickContext{Delta: frame}
	moving := TickContext{Delta: frame, Input: Input{Down: true}}

	var got []int
	for _, ctx := range []TickContext{idle, idle, idle, moving, moving, moving, idle} {
		w.Tick(ctx)
		got = append(got, mustPlayer(t, w).Frame)
	}
	assert.Equal(t, []int{6, 7, 8, 4, 0, 1, 7}, got)
}

func TestAnimationEnemyStrip(t *testing.T) {
	w := newTestWorld(t)
	id := spawnEnemyAt(w, V(500, 500))

	var got []int
	for i := 0; i < 6; i++ {
		w.Tick(TickContext{Delta: frame})
		e, _ := w.arena.Get(id)
		got = append(got, e.Frame)
	}
	assert.Equal(t, []int{11, 12, 13, 14, 10, 11}, got)
}

func TestAnimationAdvancesPerCompletedPeriod(t *testing.T) {
	w := newTestWorld(t)
	id := spawnEnemyAt(w, V(500, 500))

	w.Tick(TickContext{Delta: 40 * time.Millisecond})
	e, _ := w.arena.Get(id)
	assert.Equal(t, FrameEnemy, e.Frame, "no period completed")

	w.Tick(TickContext{Delta: 260 * time.Millisecond}) // 300ms total
	e, _ = w.arena.Get(id)
	assert.Equal(t, FrameEnemy+3, e.Frame)

	// N periods from start index s lands on (s+N) mod 5 + band
	w.Tick(TickContext{Delta: 700 * time.Millisecond})
	e, _ = w.arena.Get(id)
	assert.Equal(t, (0+10)%SheetWidth+FrameEnemy, e.Frame)
}

func TestAnimationSkipsStaticEntities(t *testing.T) {
	w := newTestWorld(t)
	w.Tick(TickContext{Delta: time.Second})
	assert.Equal(t, FrameWeapon, mustWeapon(t, w).Frame)
}
