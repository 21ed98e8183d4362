package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFull     = errors.New("session full")
)

// Session represents a game session that clients can join
type Session struct {
	ID        string
	Name      string
	Game      *Game
	CreatedAt time.Time

	lastActive time.Time // guarded by SessionManager.mu
}

// SessionOptions configures a SessionManager
type SessionOptions struct {
	MaxSessions int
	IdleTimeout time.Duration
	Game        GameOptions
	DB          *DB
	Analytics   *Analytics
	Metrics     *Metrics
}

// SessionManager handles creation, lookup and teardown of sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     SessionOptions
	wg       sync.WaitGroup
}

// NewSessionManager creates a new SessionManager
func NewSessionManager(opts SessionOptions) *SessionManager {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 100
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 30 * time.Second
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// CreateSession starts a new game session. A zero seed picks a random one.
func (sm *SessionManager) CreateSession(name string, seed uint64) (*Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= sm.opts.MaxSessions {
		return nil, fmt.Errorf("%w: %d active sessions", ErrSessionFull, len(sm.sessions))
	}

	id := GenerateUUID()
	gopts := sm.opts.Game
	gopts.Metrics = sm.opts.Metrics
	if seed != 0 {
		gopts.World.Seed = seed
	}
	if gopts.World.Seed == 0 {
		gopts.World.Seed = randomSeed()
	}
	now := time.Now()
	sess := &Session{
		ID:         id,
		Name:       name,
		Game:       NewGame(id, name, gopts),
		CreatedAt:  now,
		lastActive: now,
	}
	sm.sessions[id] = sess
	go sess.Game.Run()
	sm.scheduleIdleCheck(id)

	if m := sm.opts.Metrics; m != nil {
		m.sessions.Inc()
	}
	sm.opts.Analytics.Track(EvtSessionStart, id, "")
	log.Info().Str("session", id).Str("name", name).Uint64("seed", gopts.World.Seed).Msg("session created")
	return sess, nil
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sess, ok := sm.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// MarkActive refreshes the idle clock of a session
func (sm *SessionManager) MarkActive(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sess, ok := sm.sessions[id]; ok {
		sess.lastActive = time.Now()
	}
}

// Leave detaches a client and starts the idle countdown if nobody is left
func (sm *SessionManager) Leave(sessionID, clientID string) {
	sess, err := sm.GetSession(sessionID)
	if err != nil {
		return
	}
	sess.Game.RemoveClient(clientID)
	if sess.Game.ViewerCount() == 0 {
		sm.MarkActive(sessionID)
		sm.scheduleIdleCheck(sessionID)
	}
}

func (sm *SessionManager) scheduleIdleCheck(id string) {
	time.AfterFunc(sm.opts.IdleTimeout, func() { sm.reapIfIdle(id) })
}

// reapIfIdle ends the session when it has had no viewers for IdleTimeout
func (sm *SessionManager) reapIfIdle(id string) {
	sm.mu.Lock()
	sess, ok := sm.sessions[id]
	if !ok || sess.Game.ViewerCount() > 0 || time.Since(sess.lastActive) < sm.opts.IdleTimeout {
		sm.mu.Unlock()
		return
	}
	delete(sm.sessions, id)
	sm.mu.Unlock()
	sm.end(sess, "idle")
}

// end stops the game, tells remaining viewers and records the run
func (sm *SessionManager) end(sess *Session, reason string) {
	if !sess.Game.Stop() {
		return
	}
	rec := sess.Game.Record()
	sess.Game.broadcastMsg(Envelope{T: MsgEnded, Data: Summarize(rec)})

	if m := sm.opts.Metrics; m != nil {
		m.sessions.Dec()
		m.forgetSession(sess.ID)
	}
	sm.opts.Analytics.Track(EvtSessionEnd, sess.ID, fmt.Sprintf(`{"reason":%q,"ticks":%d}`, reason, rec.Ticks))
	log.Info().
		Str("session", sess.ID).
		Str("reason", reason).
		Str("duration", rec.Duration().Round(time.Second).String()).
		Str("shots", humanize.Comma(int64(rec.ShotsFired))).
		Str("spawned", humanize.Comma(int64(rec.EnemiesSpawned))).
		Int("peak_enemies", rec.PeakEnemies).
		Msg("session ended")

	if sm.opts.DB == nil {
		return
	}
	sm.wg.Add(1)
	go func() {
		defer sm.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := sm.opts.DB.RecordRun(ctx, rec); err != nil {
			log.Error().Err(err).Str("session", sess.ID).Msg("record run")
		}
	}()
}

// Shutdown ends every session and waits for their runs to be recorded
func (sm *SessionManager) Shutdown() {
	sm.mu.Lock()
	all := make([]*Session, 0, len(sm.sessions))
	for id, sess := range sm.sessions {
		all = append(all, sess)
		delete(sm.sessions, id)
	}
	sm.mu.Unlock()
	for _, sess := range all {
		sm.end(sess, "shutdown")
	}
	sm.wg.Wait()
}

// Count returns the number of running sessions
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// ListSessions returns info about all active sessions, oldest first
func (sm *SessionManager) ListSessions() []SessionInfo {
	sm.mu.RLock()
	all := make([]*Session, 0, len(sm.sessions))
	for _, sess := range sm.sessions {
		all = append(all, sess)
	}
	sm.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	list := make([]SessionInfo, 0, len(all))
	for _, sess := range all {
		list = append(list, sess.Game.Info())
	}
	return list
}

// LiveSummaries describes running sessions in the same shape as finished runs
func (sm *SessionManager) LiveSummaries() []RunSummary {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	out := make([]RunSummary, 0, len(sm.sessions))
	for _, sess := range sm.sessions {
		s := Summarize(sess.Game.Record())
		s.Ended = ""
		out = append(out, s)
	}
	return out
}
