package sim

// movePlayer integrates the player by the held directions. Speed is per tick.
func (w *World) movePlayer(in Input) {
	p, ok := w.arena.First(KindPlayer)
	if !ok {
		return
	}
	dir := in.Direction()
	if dir.IsZero() {
		p.Movement = Idle
	} else {
		p.Movement = Moving
		p.Z = DepthFront
		p.Pos = p.Pos.Add(dir.Normalize().Scale(w.cfg.PlayerSpeed))
	}
	if w.cfg.DebugPlayer {
		w.log.Debug().Float64("x", p.Pos.X).Float64("y", p.Pos.Y).Stringer("state", p.Movement).Msg("player")
	}
}
