package main

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"

	"horde-server/sim"
)

// Client roles within a session
const (
	RolePilot     = "pilot"
	RoleSpectator = "spectator"
)

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
	// SendBinary queues a binary frame and reports whether it was accepted.
	SendBinary(data []byte) bool
}

// GameOptions configures one session's game loop
type GameOptions struct {
	World         sim.Config
	TickRate      int
	BroadcastRate int
	MaxSpectators int
	Metrics       *Metrics
}

// Game runs one sim.World on a fixed ticker and fans its snapshots out to
// the pilot and spectators.
type Game struct {
	mu    sync.RWMutex
	id    string
	name  string
	world *sim.World
	opts  GameOptions
	log   zerolog.Logger

	pilotID    string
	pilot      Broadcaster
	spectators map[string]Broadcaster // clientID -> client
	input      ClientInput

	tick            uint64
	running         bool
	stop            chan struct{}
	startedAt       time.Time
	endedAt         time.Time
	last            sim.Stats
	peakEnemies     int
	peakProjectiles int
}

// NewGame creates a Game with an initialized world
func NewGame(id, name string, opts GameOptions) *Game {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.BroadcastRate <= 0 || opts.BroadcastRate > opts.TickRate {
		opts.BroadcastRate = opts.TickRate
	}
	g := &Game{
		id:         id,
		name:       name,
		world:      sim.NewWorld(opts.World),
		opts:       opts,
		log:        log.With().Str("session", id).Logger(),
		spectators: make(map[string]Broadcaster),
		stop:       make(chan struct{}),
		startedAt:  time.Now(),
	}
	g.world.SetLogger(g.log)
	g.world.Init()
	return g
}

// TickDuration is the fixed simulation step
func (g *Game) TickDuration() time.Duration {
	return time.Second / time.Duration(g.opts.TickRate)
}

func (g *Game) broadcastEvery() uint64 {
	return uint64(g.opts.TickRate / g.opts.BroadcastRate)
}

// Run starts the game loop
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	ticker := time.NewTicker(g.TickDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.update()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the game loop. It reports false if the game was already
// stopped.
func (g *Game) Stop() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.endedAt.IsZero() {
		g.endedAt = time.Now()
		g.running = false
		close(g.stop)
		return true
	}
	return false
}

// AttachPilot makes c the session's pilot. A previous pilot is demoted to
// spectator.
func (g *Game) AttachPilot(clientID string, c Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pilot != nil && g.pilotID != clientID {
		g.spectators[g.pilotID] = g.pilot
	}
	delete(g.spectators, clientID)
	g.pilotID = clientID
	g.pilot = c
	g.input = ClientInput{}
}

// AddSpectator attaches a view-only client. A client already attached keeps
// its role.
func (g *Game) AddSpectator(clientID string, c Broadcaster) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.spectators[clientID]; ok || clientID == g.pilotID {
		return nil
	}
	if len(g.spectators) >= g.opts.MaxSpectators {
		return ErrSessionFull
	}
	g.spectators[clientID] = c
	return nil
}

// RemoveClient detaches a client in either role
func (g *Game) RemoveClient(clientID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pilotID == clientID {
		g.pilotID = ""
		g.pilot = nil
		g.input = ClientInput{}
		return
	}
	delete(g.spectators, clientID)
}

// HandleInput stores the pilot's latest input. Input from anyone else is
// ignored.
func (g *Game) HandleInput(clientID string, input ClientInput) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if clientID == "" || clientID != g.pilotID {
		return
	}
	g.input = input
}

// RoleOf reports the client's role, or "" when not attached
func (g *Game) RoleOf(clientID string) string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if clientID != "" && clientID == g.pilotID {
		return RolePilot
	}
	if _, ok := g.spectators[clientID]; ok {
		return RoleSpectator
	}
	return ""
}

// ViewerCount returns the number of attached clients
func (g *Game) ViewerCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := len(g.spectators)
	if g.pilot != nil {
		n++
	}
	return n
}

// HasPilot reports whether someone is steering
func (g *Game) HasPilot() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pilot != nil
}

// Info describes the session for lists
func (g *Game) Info() SessionInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return SessionInfo{
		ID:         g.id,
		Name:       g.name,
		HasPilot:   g.pilot != nil,
		Spectators: len(g.spectators),
		Enemies:    g.world.Arena().Count(sim.KindEnemy),
		Uptime:     time.Since(g.startedAt).Round(time.Second).String(),
	}
}

// Welcome builds the join payload for a client in role
func (g *Game) Welcome(role string) WelcomeMsg {
	g.mu.RLock()
	defer g.mu.RUnlock()
	cfg := g.world.Config()
	return WelcomeMsg{
		SID:         g.id,
		Role:        role,
		WorldWidth:  cfg.WorldWidth,
		WorldHeight: cfg.WorldHeight,
		Decorations: g.world.Decorations(),
	}
}

// Record returns the run row for persistence
func (g *Game) Record() RunRow {
	g.mu.RLock()
	defer g.mu.RUnlock()
	st := g.world.Stats()
	ended := g.endedAt
	if ended.IsZero() {
		ended = time.Now()
	}
	return RunRow{
		SessionID:       g.id,
		Name:            g.name,
		Seed:            g.world.Config().Seed,
		StartedAt:       g.startedAt,
		EndedAt:         ended,
		Ticks:           st.Ticks,
		ShotsFired:      st.ShotsFired,
		EnemiesSpawned:  st.EnemiesSpawned,
		PeakEnemies:     g.peakEnemies,
		PeakProjectiles: g.peakProjectiles,
	}
}

// update runs one game tick
func (g *Game) update() {
	started := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()

	in, cursor := g.input.TickInput()
	g.world.Tick(sim.TickContext{Delta: g.TickDuration(), Input: in, Cursor: cursor})
	g.tick++

	arena := g.world.Arena()
	enemies, projectiles := arena.Count(sim.KindEnemy), arena.Count(sim.KindProjectile)
	g.peakEnemies = max(g.peakEnemies, enemies)
	g.peakProjectiles = max(g.peakProjectiles, projectiles)
	g.observe(enemies, projectiles)

	if g.tick%g.broadcastEvery() == 0 {
		g.broadcastState()
	}
	if m := g.opts.Metrics; m != nil {
		m.tickSeconds.Observe(time.Since(started).Seconds())
	}
}

// observe pushes this tick's deltas into the metrics
func (g *Game) observe(enemies, projectiles int) {
	st := g.world.Stats()
	prev := g.last
	g.last = st
	m := g.opts.Metrics
	if m == nil {
		return
	}
	m.shots.Add(float64(st.ShotsFired - prev.ShotsFired))
	m.spawned.Add(float64(st.EnemiesSpawned - prev.EnemiesSpawned))
	m.expired.Add(float64(st.Expired - prev.Expired))
	m.enemies.WithLabelValues(g.id).Set(float64(enemies))
	m.projectiles.WithLabelValues(g.id).Set(float64(projectiles))
}

// broadcastState sends the current snapshot to every attached client
func (g *Game) broadcastState() {
	if g.pilot == nil && len(g.spectators) == 0 {
		return
	}
	data, err := msgpack.Marshal(g.world.Snapshot())
	if err != nil {
		g.log.Error().Err(err).Msg("encode snapshot")
		return
	}
	dropped := 0
	if g.pilot != nil && !g.pilot.SendBinary(data) {
		dropped++
	}
	for _, c := range g.spectators {
		if !c.SendBinary(data) {
			dropped++
		}
	}
	if dropped > 0 && g.opts.Metrics != nil {
		g.opts.Metrics.droppedFrames.Add(float64(dropped))
	}
}

// broadcastMsg sends a message to all clients in the session
func (g *Game) broadcastMsg(msg Envelope) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.pilot != nil {
		g.pilot.SendJSON(msg)
	}
	for _, c := range g.spectators {
		c.SendJSON(msg)
	}
}
