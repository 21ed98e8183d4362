package sim

// EntityState is the drawable state of one entity.
type EntityState struct {
	ID       EntityID `msgpack:"id" json:"id"`
	Kind     Kind     `msgpack:"k" json:"k"`
	Pos      Vec2     `msgpack:"p" json:"p"`
	Z        float64  `msgpack:"z" json:"z"`
	Rotation float64  `msgpack:"r,omitempty" json:"r,omitempty"`
	FlipX    bool     `msgpack:"fx,omitempty" json:"fx,omitempty"`
	FlipY    bool     `msgpack:"fy,omitempty" json:"fy,omitempty"`
	Frame    int      `msgpack:"f" json:"f"`
}

// Snapshot is the dynamic part of the world after a tick.
type Snapshot struct {
	Tick        uint64        `msgpack:"tick" json:"tick"`
	Player      *EntityState  `msgpack:"pl,omitempty" json:"pl,omitempty"`
	Weapon      *EntityState  `msgpack:"wp,omitempty" json:"wp,omitempty"`
	Enemies     []EntityState `msgpack:"en" json:"en"`
	Projectiles []EntityState `msgpack:"pr" json:"pr"`
	EnemyCount  int           `msgpack:"ne" json:"ne"`
	ShotCount   int           `msgpack:"np" json:"np"`
}

func stateOf(e *Entity) EntityState {
	return EntityState{
		ID:       e.ID,
		Kind:     e.Kind,
		Pos:      e.Pos,
		Z:        e.Z,
		Rotation: e.Rotation,
		FlipX:    e.FlipX,
		FlipY:    e.FlipY,
		Frame:    e.Frame,
	}
}
