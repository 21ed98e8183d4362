package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const frame = 100 * time.Millisecond

// newTestWorld returns an initialized world without decorations or
// spawning unless opts turn them back on.
func newTestWorld(t *testing.T, opts ...func(*Config)) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Decorations = 0
	cfg.MaxEnemies = 0
	cfg.Seed = 42
	for _, o := range opts {
		o(&cfg)
	}
	w := NewWorld(cfg)
	w.Init()
	require.Equal(t, PhaseInGame, w.Phase())
	return w
}

func mustPlayer(t *testing.T, w *World) *Entity {
	t.Helper()
	p, ok := w.Player()
	require.True(t, ok, "player missing")
	return p
}

func mustWeapon(t *testing.T, w *World) *Entity {
	t.Helper()
	g, ok := w.Weapon()
	require.True(t, ok, "weapon missing")
	return g
}

func spawnEnemyAt(w *World, pos Vec2) EntityID {
	return w.arena.Spawn(Entity{
		Kind:     KindEnemy,
		Pos:      pos,
		Z:        DepthEnemy,
		Frame:    FrameEnemy,
		Animated: true,
		Anim:     NewTimer(w.cfg.AnimationPeriod),
	})
}

func cursorAt(x, y float64) *Vec2 {
	c := V(x, y)
	return &c
}
