package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "horde.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)
	assert.Equal(t, "", db.GetSetting("missing"))

	require.NoError(t, db.SetSetting("k", "one"))
	require.NoError(t, db.SetSetting("k", "two"))
	assert.Equal(t, "two", db.GetSetting("k"))
}

func TestRecordAndListRuns(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	start := time.Now().Add(-time.Minute).Truncate(time.Second)

	for i, name := range []string{"first", "second", "third"} {
		id, err := db.RecordRun(ctx, RunRow{
			SessionID:       "s" + name,
			Name:            name,
			Seed:            1<<63 + uint64(i),
			StartedAt:       start,
			EndedAt:         start.Add(time.Duration(i+1) * time.Second),
			Ticks:           uint64(60 * (i + 1)),
			ShotsFired:      i,
			EnemiesSpawned:  20 * i,
			PeakEnemies:     20 * i,
			PeakProjectiles: i,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id)
	}

	runs, err := db.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "third", runs[0].Name)
	assert.Equal(t, "second", runs[1].Name)

	r := runs[0]
	assert.Equal(t, uint64(1<<63+2), r.Seed)
	assert.Equal(t, uint64(180), r.Ticks)
	assert.Equal(t, 40, r.EnemiesSpawned)
	assert.WithinDuration(t, start, r.StartedAt, time.Second)
	assert.Equal(t, 3*time.Second, r.Duration())
}

func TestAnalyticsDrainsOnShutdown(t *testing.T) {
	db := openTestDB(t)
	a := NewAnalytics(db)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	a.Track(EvtSessionStart, "s1", "")
	a.Track(EvtPilotJoin, "s1", `{"client":"c1"}`)
	a.Track(EvtSpectatorJoin, "s1", "")
	a.Track(EvtSpectatorJoin, "s1", "")
	cancel()
	require.NoError(t, <-done)

	counts, err := a.EventCounts(1)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		EvtSessionStart:  1,
		EvtPilotJoin:     1,
		EvtSpectatorJoin: 2,
	}, counts)
}

func TestAnalyticsNil(t *testing.T) {
	var a *Analytics
	a.Track(EvtSessionEnd, "s1", "")
	counts, err := a.EventCounts(7)
	assert.NoError(t, err)
	assert.Nil(t, counts)
}
