package sim

import "time"

// animate advances sprite frames of every animated entity. Each completed
// period steps the frame once.
func (w *World) animate(dt time.Duration) {
	w.arena.EachAnimated(func(e *Entity) {
		for n := e.Anim.Tick(dt); n > 0; n-- {
			e.Frame = nextFrame(e)
		}
	})
}

func nextFrame(e *Entity) int {
	switch e.Kind {
	case KindPlayer:
		base := FramePlayerIdle
		if e.Movement == Moving {
			base = FramePlayerMoving
		}
		return base + (e.Frame+1)%SheetWidth
	case KindEnemy:
		return (e.Frame+1)%SheetWidth + FrameEnemy
	default:
		return e.Frame
	}
}
