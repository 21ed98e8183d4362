package sim

// pursue steps every enemy toward the player.
func (w *World) pursue() {
	p, ok := w.arena.First(KindPlayer)
	if !ok {
		return
	}
	target := p.Pos
	speed := w.cfg.EnemySpeed
	w.arena.Each(KindEnemy, func(e *Entity) {
		step := target.Sub(e.Pos).Normalize().Scale(speed)
		e.Pos = e.Pos.Add(step)
		e.FlipX = e.Pos.X >= target.X
	})
}
