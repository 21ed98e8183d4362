package sim

import "time"

// Timer is a repeating countdown. Each Tick reports how many whole periods
// completed during that tick; the remainder carries over.
type Timer struct {
	Period  time.Duration
	elapsed time.Duration
}

// NewTimer returns a repeating timer with the given period.
func NewTimer(period time.Duration) Timer {
	return Timer{Period: period}
}

// Tick advances the timer by dt and returns the number of completed periods.
func (t *Timer) Tick(dt time.Duration) int {
	if t.Period <= 0 || dt <= 0 {
		return 0
	}
	t.elapsed += dt
	n := int(t.elapsed / t.Period)
	t.elapsed %= t.Period
	return n
}

// Elapsed returns the time accumulated toward the next period.
func (t *Timer) Elapsed() time.Duration { return t.elapsed }

// Stopwatch accumulates elapsed time until reset.
type Stopwatch struct {
	elapsed time.Duration
}

func (s *Stopwatch) Tick(dt time.Duration) {
	if dt > 0 {
		s.elapsed += dt
	}
}

func (s *Stopwatch) Elapsed() time.Duration { return s.elapsed }
func (s *Stopwatch) Reset() { s.elapsed = 0 }
