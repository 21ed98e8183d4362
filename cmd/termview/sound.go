package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	shotFreq   = 880.0
	shotLength = 60 * time.Millisecond
)

// Sound plays the shot blip. A zero Sound is silent.
type Sound struct {
	mixer *beep.Mixer
}

// NewSound opens the speaker. Callers treat an error as "no audio".
func NewSound() (*Sound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	s := &Sound{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Shot queues one blip.
func (s *Sound) Shot() {
	if s == nil || s.mixer == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(beep.Take(sampleRate.N(shotLength), &blip{sr: sampleRate, freq: shotFreq}))
	speaker.Unlock()
}

// Close stops playback.
func (s *Sound) Close() {
	if s == nil || s.mixer == nil {
		return
	}
	speaker.Close()
}

// blip is a sine tone with a falling pitch and linear fade out.
type blip struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func (b *blip) Stream(samples [][2]float64) (n int, ok bool) {
	total := float64(b.sr.N(shotLength))
	for i := range samples {
		t := float64(b.pos) / float64(b.sr)
		fade := math.Max(0, 1-float64(b.pos)/total)
		v := 0.2 * fade * math.Sin(2*math.Pi*b.freq*(1-0.3*t/shotLength.Seconds())*t)
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
	}
	return len(samples), true
}

func (b *blip) Err() error { return nil }
