package sim

import "time"

// Kind tags what an entity is.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindWeapon
	KindProjectile
	KindDecoration
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindWeapon:
		return "weapon"
	case KindProjectile:
		return "projectile"
	case KindDecoration:
		return "decoration"
	default:
		return "unknown"
	}
}

// MovementState is the player's locomotion state for the current tick.
type MovementState uint8

const (
	Idle MovementState = iota
	Moving
)

func (s MovementState) String() string {
	if s == Moving {
		return "moving"
	}
	return "idle"
}

// EntityID is a generational handle: low 32 bits slot index, high 32 bits
// generation. The zero value never names a live entity.
type EntityID uint64

func makeID(index, gen uint32) EntityID { return EntityID(uint64(gen)<<32 | uint64(index)) }

func (id EntityID) index() uint32 { return uint32(id) }
func (id EntityID) gen() uint32 { return uint32(id >> 32) }

// Entity is one simulated object. Which of the trailing fields are
// meaningful depends on Kind.
type Entity struct {
	ID       EntityID
	Kind     Kind
	Pos      Vec2
	Z        float64
	Rotation float64
	FlipX    bool
	FlipY    bool
	Frame    int

	// Animated entities advance Frame on Anim's cadence.
	Animated bool
	Anim     Timer

	// player
	Movement MovementState

	// weapon
	Cooldown Stopwatch

	// projectile
	Dir Vec2
	Age time.Duration
}

type slot struct {
	gen  uint32
	live bool
	e    Entity
}

// Arena stores every entity in one indexed slice. Removed slots are
// recycled with a bumped generation so stale ids stop resolving.
//
// Pointers handed out by Get, First and Each are only valid until the next
// Spawn.
type Arena struct {
	slots  []slot
	free   []uint32
	counts [kindCount]int
}

// Spawn stores e and returns its id. e.ID is overwritten.
func (a *Arena) Spawn(e Entity) EntityID {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	s := &a.slots[idx]
	s.gen++
	s.live = true
	e.ID = makeID(idx, s.gen)
	s.e = e
	a.counts[e.Kind]++
	return e.ID
}

// Remove deletes the entity if it is still live.
func (a *Arena) Remove(id EntityID) bool {
	idx := id.index()
	if int(idx) >= len(a.slots) {
		return false
	}
	s := &a.slots[idx]
	if !s.live || s.gen != id.gen() {
		return false
	}
	a.counts[s.e.Kind]--
	s.live = false
	s.e = Entity{}
	a.free = append(a.free, idx)
	return true
}

// Get resolves id to its entity.
func (a *Arena) Get(id EntityID) (*Entity, bool) {
	idx := id.index()
	if int(idx) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[idx]
	if !s.live || s.gen != id.gen() {
		return nil, false
	}
	return &s.e, true
}

// Count returns the number of live entities of kind k.
func (a *Arena) Count(k Kind) int {
	if k >= kindCount {
		return 0
	}
	return a.counts[k]
}

// Len returns the number of live entities.
func (a *Arena) Len() int {
	n := 0
	for _, c := range a.counts {
		n += c
	}
	return n
}

// First returns the first live entity of kind k. Used for the single-instance
// kinds (player, weapon); callers must handle absence.
func (a *Arena) First(k Kind) (*Entity, bool) {
	if a.Count(k) == 0 {
		return nil, false
	}
	for i := range a.slots {
		s := &a.slots[i]
		if s.live && s.e.Kind == k {
			return &s.e, true
		}
	}
	return nil, false
}

// Each calls fn for every live entity of kind k in slot order. fn may
// remove the entity it is given but must not spawn.
func (a *Arena) Each(k Kind, fn func(e *Entity)) {
	if a.Count(k) == 0 {
		return
	}
	for i := range a.slots {
		s := &a.slots[i]
		if s.live && s.e.Kind == k {
			fn(&s.e)
		}
	}
}

// EachAnimated calls fn for every live animated entity regardless of kind.
func (a *Arena) EachAnimated(fn func(e *Entity)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.live && s.e.Animated {
			fn(&s.e)
		}
	}
}
