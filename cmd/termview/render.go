package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"horde-server/sim"
)

var (
	styleGround  = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleEnemy   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleShot    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleIdle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleMoving  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleWeapon  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleHUD     = tcell.StyleDefault.Reverse(true)
	enemyGlyphs  = []rune("oO0Oo")
	weaponGlyphs = []rune(`-/|\`)
)

// View draws a world onto a tcell screen through a follow camera.
type View struct {
	screen tcell.Screen
	cam    Camera
	grid   *Grid
	decos  []sim.EntityState
	buf    []int
}

// NewView indexes the world's static decorations for drawing.
func NewView(screen tcell.Screen, w *sim.World) *View {
	cfg := w.Config()
	v := &View{
		screen: screen,
		grid:   NewGrid(cfg.WorldWidth, cfg.WorldHeight),
		decos:  w.Decorations(),
	}
	for i, d := range v.decos {
		v.grid.Insert(d.Pos, i)
	}
	return v
}

// Cursor resolves a screen cell to world coordinates through the camera.
func (v *View) Cursor(col, row int) sim.Vec2 {
	w, h := v.screen.Size()
	return v.cam.ScreenToWorld(col, row, w, h)
}

func (v *View) put(p sim.Vec2, r rune, st tcell.Style) {
	w, h := v.screen.Size()
	col, row := v.cam.WorldToScreen(p, w, h)
	if col < 0 || row < 1 || col >= w || row >= h {
		return
	}
	v.screen.SetContent(col, row, r, nil, st)
}

func weaponGlyph(rot float64) rune {
	i := int(math.Round(sim.NormalizeAngle(rot) / (math.Pi / 4)))
	return weaponGlyphs[((i%4)+4)%4]
}

// Draw renders one frame. Ground first, the player last.
func (v *View) Draw(w *sim.World) {
	if p, ok := w.Player(); ok {
		v.cam.Follow(p.Pos)
	}
	v.screen.Clear()
	sw, sh := v.screen.Size()

	lo, hi := v.cam.Visible(sw, sh)
	v.buf = v.grid.QueryBuf(lo, hi, v.buf[:0])
	for _, i := range v.buf {
		d := v.decos[i]
		r := '.'
		if d.Frame != sim.FrameDecoration {
			r = ','
		}
		v.put(d.Pos, r, styleGround)
	}

	arena := w.Arena()
	arena.Each(sim.KindEnemy, func(e *sim.Entity) {
		v.put(e.Pos, enemyGlyphs[(e.Frame-sim.FrameEnemy)%len(enemyGlyphs)], styleEnemy)
	})
	arena.Each(sim.KindProjectile, func(e *sim.Entity) {
		v.put(e.Pos, '*', styleShot)
	})
	if g, ok := w.Weapon(); ok {
		v.put(g.Pos, weaponGlyph(g.Rotation), styleWeapon)
	}
	if p, ok := w.Player(); ok {
		st := styleIdle
		if p.Movement == sim.Moving {
			st = styleMoving
		}
		v.put(p.Pos, '@', st)
	}

	stats := w.Stats()
	hud := fmt.Sprintf(" enemies %d  shots %d  tick %d | wasd/arrows move, space/click fire, q quit ",
		arena.Count(sim.KindEnemy), stats.ShotsFired, stats.Ticks)
	drawText(v.screen, 0, 0, sw, hud, styleHUD)
	v.screen.Show()
}

func drawText(s tcell.Screen, x, y, maxW int, text string, st tcell.Style) {
	for _, r := range text {
		if x >= maxW {
			return
		}
		s.SetContent(x, y, r, nil, st)
		x++
	}
}
