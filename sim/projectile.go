package sim

import "time"

// fire advances the weapon cooldown and emits a projectile when the trigger
// is held and the cooldown has run out.
func (w *World) fire(dt time.Duration, held bool) {
	g, ok := w.arena.First(KindWeapon)
	if !ok {
		return
	}
	g.Cooldown.Tick(dt)
	if !held || g.Cooldown.Elapsed() < w.cfg.GunTimeout {
		return
	}
	g.Cooldown.Reset()

	pos, rot := g.Pos, g.Rotation
	w.arena.Spawn(Entity{
		Kind:     KindProjectile,
		Pos:      pos,
		Z:        DepthProjectile,
		Rotation: rot,
		Frame:    FrameProjectile,
		Dir:      FromAngle(rot),
	})
	w.stats.ShotsFired++
}

// moveProjectiles integrates every projectile along its frozen direction and
// expires those that have outlived ProjectileLifetime.
func (w *World) moveProjectiles(dt time.Duration) {
	lifetime := w.cfg.ProjectileLifetime
	speed := w.cfg.BulletSpeed
	w.arena.Each(KindProjectile, func(e *Entity) {
		e.Pos = e.Pos.Add(e.Dir.Normalize().Scale(speed))
		e.Z = DepthFront
		e.Age += dt
		if lifetime > 0 && e.Age >= lifetime {
			w.arena.Remove(e.ID)
			w.stats.Expired++
		}
	})
}
