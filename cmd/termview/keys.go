package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"horde-server/sim"
)

// Terminals report key presses and repeats but never releases, so a key
// counts as held until holdWindow passes without a repeat.
const holdWindow = 150 * time.Millisecond

type action uint8

const (
	actUp action = iota
	actDown
	actLeft
	actRight
	actFire
	actionCount
)

// KeyTracker turns press events into held state.
type KeyTracker struct {
	last      [actionCount]time.Time
	mouseDown bool
	mouseCol  int
	mouseRow  int
	mouseSeen bool
}

func actionFor(ev *tcell.EventKey) (action, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return actUp, true
	case tcell.KeyDown:
		return actDown, true
	case tcell.KeyLeft:
		return actLeft, true
	case tcell.KeyRight:
		return actRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return actUp, true
		case 's', 'S':
			return actDown, true
		case 'a', 'A':
			return actLeft, true
		case 'd', 'D':
			return actRight, true
		case ' ':
			return actFire, true
		}
	}
	return 0, false
}

// Key records a key press at now. It reports false for keys it ignores.
func (k *KeyTracker) Key(ev *tcell.EventKey, now time.Time) bool {
	a, ok := actionFor(ev)
	if ok {
		k.last[a] = now
	}
	return ok
}

// Mouse records pointer position and the primary button.
func (k *KeyTracker) Mouse(ev *tcell.EventMouse) {
	k.mouseCol, k.mouseRow = ev.Position()
	k.mouseSeen = true
	k.mouseDown = ev.Buttons()&tcell.Button1 != 0
}

func (k *KeyTracker) held(a action, now time.Time) bool {
	t := k.last[a]
	return !t.IsZero() && now.Sub(t) < holdWindow
}

// Input is the held state at now.
func (k *KeyTracker) Input(now time.Time) sim.Input {
	return sim.Input{
		Up:    k.held(actUp, now),
		Down:  k.held(actDown, now),
		Left:  k.held(actLeft, now),
		Right: k.held(actRight, now),
		Fire:  k.held(actFire, now) || k.mouseDown,
	}
}

// Pointer returns the last mouse cell, if the mouse has been seen.
func (k *KeyTracker) Pointer() (col, row int, ok bool) {
	return k.mouseCol, k.mouseRow, k.mouseSeen
}
