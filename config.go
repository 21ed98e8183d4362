package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"horde-server/sim"
)

// Config is the full server configuration
type Config struct {
	Server  ServerConfig `mapstructure:"server"`
	DB      DBConfig     `mapstructure:"db"`
	Log     LogConfig    `mapstructure:"log"`
	Tickets TicketConfig `mapstructure:"tickets"`
	Sim     SimConfig    `mapstructure:"sim"`
}

type ServerConfig struct {
	Addr          string        `mapstructure:"addr"`
	ClientDir     string        `mapstructure:"client_dir"`
	PublicURL     string        `mapstructure:"public_url"`
	TickRate      int           `mapstructure:"tick_rate"`
	BroadcastRate int           `mapstructure:"broadcast_rate"`
	MaxSessions   int           `mapstructure:"max_sessions"`
	MaxSpectators int           `mapstructure:"max_spectators"`
	MessageRate   float64       `mapstructure:"message_rate"`
	MessageBurst  int           `mapstructure:"message_burst"`
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

type TicketConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// SimConfig mirrors sim.Config with config-file friendly names
type SimConfig struct {
	PlayerSpeed        float64       `mapstructure:"player_speed"`
	EnemySpeed         float64       `mapstructure:"enemy_speed"`
	BulletSpeed        float64       `mapstructure:"bullet_speed"`
	GunTimeout         time.Duration `mapstructure:"gun_timeout"`
	SpawnInterval      time.Duration `mapstructure:"spawn_interval"`
	AnimationPeriod    time.Duration `mapstructure:"animation_period"`
	MaxEnemies         int           `mapstructure:"max_enemies"`
	SpawnBurst         int           `mapstructure:"spawn_burst"`
	WorldWidth         float64       `mapstructure:"world_width"`
	WorldHeight        float64       `mapstructure:"world_height"`
	Decorations        int           `mapstructure:"decorations"`
	ProjectileLifetime time.Duration `mapstructure:"projectile_lifetime"`
	Seed               uint64        `mapstructure:"seed"`
	DebugCursor        bool          `mapstructure:"debug_cursor"`
	DebugPlayer        bool          `mapstructure:"debug_player"`
}

// World returns the sim tunables. A zero seed means "pick one per session".
func (c SimConfig) World() sim.Config {
	return sim.Config{
		PlayerSpeed:        c.PlayerSpeed,
		EnemySpeed:         c.EnemySpeed,
		BulletSpeed:        c.BulletSpeed,
		GunTimeout:         c.GunTimeout,
		SpawnInterval:      c.SpawnInterval,
		AnimationPeriod:    c.AnimationPeriod,
		MaxEnemies:         c.MaxEnemies,
		SpawnBurst:         c.SpawnBurst,
		WorldWidth:         c.WorldWidth,
		WorldHeight:        c.WorldHeight,
		Decorations:        c.Decorations,
		ProjectileLifetime: c.ProjectileLifetime,
		Seed:               c.Seed,
		DebugCursor:        c.DebugCursor,
		DebugPlayer:        c.DebugPlayer,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.client_dir", "./client")
	v.SetDefault("server.public_url", "http://localhost:8080")
	v.SetDefault("server.tick_rate", 60)
	v.SetDefault("server.broadcast_rate", 30)
	v.SetDefault("server.max_sessions", 100)
	v.SetDefault("server.max_spectators", 16)
	v.SetDefault("server.message_rate", 50.0)
	v.SetDefault("server.message_burst", 100)
	v.SetDefault("server.idle_timeout", "30s")

	v.SetDefault("db.path", "horde.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)

	v.SetDefault("tickets.secret", "")
	v.SetDefault("tickets.ttl", "12h")

	d := sim.DefaultConfig()
	v.SetDefault("sim.player_speed", d.PlayerSpeed)
	v.SetDefault("sim.enemy_speed", d.EnemySpeed)
	v.SetDefault("sim.bullet_speed", d.BulletSpeed)
	v.SetDefault("sim.gun_timeout", d.GunTimeout.String())
	v.SetDefault("sim.spawn_interval", d.SpawnInterval.String())
	v.SetDefault("sim.animation_period", d.AnimationPeriod.String())
	v.SetDefault("sim.max_enemies", d.MaxEnemies)
	v.SetDefault("sim.spawn_burst", d.SpawnBurst)
	v.SetDefault("sim.world_width", d.WorldWidth)
	v.SetDefault("sim.world_height", d.WorldHeight)
	v.SetDefault("sim.decorations", d.Decorations)
	v.SetDefault("sim.projectile_lifetime", "5s")
	v.SetDefault("sim.seed", 0)
	v.SetDefault("sim.debug_cursor", false)
	v.SetDefault("sim.debug_player", false)
}

// LoadConfig reads defaults, then the optional YAML file at path (or
// horde.yaml in the working directory when path is empty), then HORDE_*
// environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("horde")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("horde")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.TickRate <= 0 {
		return fmt.Errorf("server.tick_rate must be positive, got %d", c.Server.TickRate)
	}
	if c.Server.BroadcastRate <= 0 || c.Server.BroadcastRate > c.Server.TickRate {
		return fmt.Errorf("server.broadcast_rate must be in 1..%d, got %d", c.Server.TickRate, c.Server.BroadcastRate)
	}
	if c.Sim.MaxEnemies < 0 || c.Sim.SpawnBurst < 0 {
		return errors.New("sim.max_enemies and sim.spawn_burst must not be negative")
	}
	return nil
}
