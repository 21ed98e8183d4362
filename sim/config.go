package sim

import "time"

// Atlas layout shared with the display side.
const (
	SheetWidth = 5 // frames per animation strip

	FramePlayerMoving = 0
	FramePlayerIdle   = 5
	FrameEnemy        = 10
	FrameProjectile   = 15
	FrameWeapon       = 16
	FrameDecoration   = 20 // variants 20 and 21
)

// Display depths (z)
const (
	DepthGround     = 0.0
	DepthEnemy      = 1.0
	DepthProjectile = 1.0 // at creation; pinned to DepthFront once moving
	DepthFront      = 10.0
)

const (
	WeaponRadius   = 20.0
	WeaponPivotX   = -5.0
	WeaponPivotY   = -10.0
	DefaultWorldHW = 3000.0
)

// Config holds the simulation tunables.
type Config struct {
	PlayerSpeed float64 // units per tick
	EnemySpeed  float64 // units per tick
	BulletSpeed float64 // units per tick

	GunTimeout      time.Duration
	SpawnInterval   time.Duration
	AnimationPeriod time.Duration

	MaxEnemies int
	SpawnBurst int

	WorldWidth  float64 // half extent on x
	WorldHeight float64 // half extent on y
	Decorations int

	// ProjectileLifetime removes projectiles once they reach this age.
	// Zero keeps them forever.
	ProjectileLifetime time.Duration

	Seed uint64

	DebugCursor bool
	DebugPlayer bool
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		PlayerSpeed:     3.0,
		EnemySpeed:      1.1,
		BulletSpeed:     6.219120383494598549854985498203,
		GunTimeout:      time.Second,
		SpawnInterval:   time.Second,
		AnimationPeriod: 100 * time.Millisecond,
		MaxEnemies:      800,
		SpawnBurst:      20,
		WorldWidth:      DefaultWorldHW,
		WorldHeight:     DefaultWorldHW,
		Decorations:     1000,
	}
}
