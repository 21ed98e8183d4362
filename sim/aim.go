package sim

import "math"

// aim mirrors the player toward the cursor and points the weapon from the
// player at it. Skipped without a cursor.
func (w *World) aim(cursor *Vec2) {
	if cursor == nil {
		return
	}
	p, ok := w.arena.First(KindPlayer)
	if !ok {
		return
	}
	c := *cursor
	if w.cfg.DebugCursor {
		w.log.Debug().Float64("x", c.X).Float64("y", c.Y).Msg("cursor")
	}
	p.FlipX = c.X < p.Pos.X

	g, ok := w.arena.First(KindWeapon)
	if !ok {
		return
	}

	angle := math.Atan2(p.Pos.Y-c.Y, p.Pos.X-c.X) + math.Pi
	g.Pos = Vec2{
		X: p.Pos.X + WeaponRadius*math.Cos(angle) + WeaponPivotX,
		Y: p.Pos.Y + WeaponRadius*math.Sin(angle) + WeaponPivotY,
	}
	g.Rotation = angle
	g.Z = DepthFront

	g.FlipY = c.X < g.Pos.X
}
