package sim

import "time"

// populate tops up the enemy horde on the spawn interval.
func (w *World) populate(dt time.Duration) {
	if w.spawnTimer.Tick(dt) == 0 {
		return
	}
	if _, ok := w.arena.First(KindPlayer); !ok {
		return
	}
	n := w.arena.Count(KindEnemy)
	if n >= w.cfg.MaxEnemies {
		return
	}
	burst := min(w.cfg.MaxEnemies-n, w.cfg.SpawnBurst)
	for range burst {
		w.arena.Spawn(Entity{
			Kind:     KindEnemy,
			Pos:      V(w.uniform(w.cfg.WorldWidth), w.uniform(w.cfg.WorldHeight)),
			Z:        DepthEnemy,
			Frame:    FrameEnemy,
			Animated: true,
			Anim:     NewTimer(w.cfg.AnimationPeriod),
		})
	}
	w.stats.EnemiesSpawned += burst
	w.log.Debug().Int("spawned", burst).Int("enemies", n+burst).Msg("horde topped up")
}

// uniform returns a value in [-half, half).
func (w *World) uniform(half float64) float64 {
	return -half + w.rng.Float64()*2*half
}
