package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horde-server/sim"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 60, cfg.Server.TickRate)
	assert.Equal(t, 30, cfg.Server.BroadcastRate)
	assert.Equal(t, 30*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 12*time.Hour, cfg.Tickets.TTL)

	w := cfg.Sim.World()
	d := sim.DefaultConfig()
	assert.Equal(t, d.PlayerSpeed, w.PlayerSpeed)
	assert.Equal(t, d.BulletSpeed, w.BulletSpeed)
	assert.Equal(t, d.GunTimeout, w.GunTimeout)
	assert.Equal(t, d.MaxEnemies, w.MaxEnemies)
	assert.Equal(t, 5*time.Second, w.ProjectileLifetime)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horde.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9999"
  tick_rate: 30
  broadcast_rate: 15
sim:
  max_enemies: 50
  gun_timeout: 250ms
`), 0o644))
	t.Setenv("HORDE_SIM_SPAWN_BURST", "5")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 30, cfg.Server.TickRate)
	assert.Equal(t, 50, cfg.Sim.MaxEnemies)
	assert.Equal(t, 250*time.Millisecond, cfg.Sim.GunTimeout)
	assert.Equal(t, 5, cfg.Sim.SpawnBurst)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadRates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horde.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  tick_rate: 20\n  broadcast_rate: 40\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "broadcast_rate")
}
