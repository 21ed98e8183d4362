package sim

import (
	"math/rand/v2"

	"github.com/rs/zerolog"
)

// Phase is the world's lifecycle state.
type Phase uint8

const (
	PhaseLoading Phase = iota
	PhaseInGame
)

func (p Phase) String() string {
	if p == PhaseInGame {
		return "in_game"
	}
	return "loading"
}

// Stats are cumulative counters since Init.
type Stats struct {
	Ticks          uint64
	ShotsFired     int
	EnemiesSpawned int
	Expired        int
}

// World owns every entity and runs the per-tick systems. It is not safe for
// concurrent use.
type World struct {
	cfg   Config
	arena Arena
	rng   *rand.Rand
	log   zerolog.Logger

	phase       Phase
	spawnTimer  Timer
	decorations []EntityID
	stats       Stats
}

// NewWorld creates an empty world in PhaseLoading.
func NewWorld(cfg Config) *World {
	return &World{
		cfg:        cfg,
		rng:        rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		log:        zerolog.Nop(),
		spawnTimer: NewTimer(cfg.SpawnInterval),
	}
}

// SetLogger replaces the no-op logger.
func (w *World) SetLogger(l zerolog.Logger) { w.log = l }

func (w *World) Config() Config { return w.cfg }
func (w *World) Phase() Phase { return w.phase }
func (w *World) Stats() Stats { return w.stats }
func (w *World) Arena() *Arena { return &w.arena }

// Init populates the world and starts the game. Calling it twice is a no-op.
func (w *World) Init() {
	if w.phase != PhaseLoading {
		return
	}
	w.arena.Spawn(Entity{
		Kind:     KindPlayer,
		Frame:    FramePlayerMoving,
		Animated: true,
		Anim:     NewTimer(w.cfg.AnimationPeriod),
		Movement: Idle,
	})
	w.arena.Spawn(Entity{
		Kind:  KindWeapon,
		Frame: FrameWeapon,
	})
	w.scatterDecorations()
	w.phase = PhaseInGame
	w.log.Info().Int("decorations", len(w.decorations)).Uint64("seed", w.cfg.Seed).Msg("world ready")
}

// Tick runs one simulation step. It does nothing before Init.
func (w *World) Tick(ctx TickContext) {
	if w.phase != PhaseInGame {
		return
	}
	w.movePlayer(ctx.Input)
	w.aim(ctx.Cursor)
	// projectiles emitted this tick first move on the next one
	w.moveProjectiles(ctx.Delta)
	w.fire(ctx.Delta, ctx.Input.Fire)
	w.populate(ctx.Delta)
	w.pursue()
	w.animate(ctx.Delta)
	w.stats.Ticks++
}

// Player returns the player entity.
func (w *World) Player() (*Entity, bool) { return w.arena.First(KindPlayer) }

// Weapon returns the weapon entity.
func (w *World) Weapon() (*Entity, bool) { return w.arena.First(KindWeapon) }

// Snapshot captures the drawable dynamic state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        w.stats.Ticks,
		Enemies:     make([]EntityState, 0, w.arena.Count(KindEnemy)),
		Projectiles: make([]EntityState, 0, w.arena.Count(KindProjectile)),
	}
	if p, ok := w.arena.First(KindPlayer); ok {
		st := stateOf(p)
		s.Player = &st
	}
	if g, ok := w.arena.First(KindWeapon); ok {
		st := stateOf(g)
		s.Weapon = &st
	}
	w.arena.Each(KindEnemy, func(e *Entity) { s.Enemies = append(s.Enemies, stateOf(e)) })
	w.arena.Each(KindProjectile, func(e *Entity) { s.Projectiles = append(s.Projectiles, stateOf(e)) })
	s.EnemyCount = len(s.Enemies)
	s.ShotCount = len(s.Projectiles)
	return s
}

// Decorations returns the static ground cover placed by Init.
func (w *World) Decorations() []EntityState {
	out := make([]EntityState, 0, len(w.decorations))
	for _, id := range w.decorations {
		if e, ok := w.arena.Get(id); ok {
			out = append(out, stateOf(e))
		}
	}
	return out
}
