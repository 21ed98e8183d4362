package main

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// GenerateID returns a random hex string of the given byte length
func GenerateID(byteLen int) string {
	b := make([]byte, byteLen)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// GenerateUUID returns a random (version 4) UUID string
func GenerateUUID() string {
	return uuid.NewString()
}

// randomSeed returns a non-zero world seed
func randomSeed() uint64 {
	var b [8]byte
	rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:]) | 1
}

// Summarize renders a run row for the API and log lines
func Summarize(r RunRow) RunSummary {
	s := RunSummary{
		SessionID:       r.SessionID,
		Name:            r.Name,
		Duration:        r.Duration().Round(time.Second).String(),
		Ticks:           r.Ticks,
		ShotsFired:      r.ShotsFired,
		EnemiesSpawned:  r.EnemiesSpawned,
		PeakEnemies:     r.PeakEnemies,
		PeakProjectiles: r.PeakProjectiles,
	}
	if !r.EndedAt.IsZero() {
		s.Ended = humanize.Time(r.EndedAt)
	}
	return s
}
