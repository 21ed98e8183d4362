package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerCompletesExactly(t *testing.T) {
	tm := NewTimer(time.Second)
	total := 0
	for i := 0; i < 10; i++ {
		total += tm.Tick(frame)
	}
	assert.Equal(t, 1, total)
	assert.Zero(t, tm.Elapsed())
}

func TestTimerMultiplePeriodsKeepRemainder(t *testing.T) {
	tm := NewTimer(100 * time.Millisecond)
	assert.Equal(t, 2, tm.Tick(250*time.Millisecond))
	assert.Equal(t, 50*time.Millisecond, tm.Elapsed())
	assert.Equal(t, 3, tm.Tick(250*time.Millisecond))
	assert.Zero(t, tm.Elapsed())
}

func TestTimerIgnoresNonPositive(t *testing.T) {
	tm := NewTimer(0)
	assert.Zero(t, tm.Tick(time.Hour))

	tm = NewTimer(time.Second)
	assert.Zero(t, tm.Tick(-time.Second))
	assert.Zero(t, tm.Elapsed())
}

func TestStopwatch(t *testing.T) {
	var s Stopwatch
	s.Tick(300 * time.Millisecond)
	s.Tick(700 * time.Millisecond)
	assert.Equal(t, time.Second, s.Elapsed())
	s.Reset()
	assert.Zero(t, s.Elapsed())
}
