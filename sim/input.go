package sim

import "time"

// Input is the held state of the controls for one tick.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Fire  bool
}

// Direction sums the held directional flags. +y is up.
func (in Input) Direction() Vec2 {
	var d Vec2
	if in.Up {
		d.Y++
	}
	if in.Down {
		d.Y--
	}
	if in.Left {
		d.X--
	}
	if in.Right {
		d.X++
	}
	return d
}

// TickContext is everything the outside world hands to one Tick.
type TickContext struct {
	Delta time.Duration
	Input Input
	// Cursor is the pointer in world coordinates, nil when unavailable.
	Cursor *Vec2
}
