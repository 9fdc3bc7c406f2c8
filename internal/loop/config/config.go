// Package config centralizes all tunable game parameters.
package config

import "time"

// Field scaling - the arena uses browser-like logical pixels.
// One canvas sub-pixel covers PixelScale logical units on both axes.
const (
	PixelScale = 8.0
)

// Terminal limits. Larger terminals are centered and bordered.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Simulation tick rate. Per-tick factors (follow smoothing, drag,
// enemy displacement) are calibrated for this rate.
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// Colors used by the simulation for particle bursts and by renderers.
const (
	ColorPlayer = 0x4CAF50
	ColorEnemy  = 0xF44336
	ColorShield = 0xFFC107
	ColorSlow   = 0x2196F3
)

// Tuning holds every gameplay constant. Values are per tick unless the
// field is a time.Duration.
type Tuning struct {
	PlayerRadius  float64 `yaml:"playerRadius"`
	KeyboardSpeed float64 `yaml:"keyboardSpeed"`
	FollowFactor  float64 `yaml:"followFactor"`

	EnemyRadius       float64 `yaml:"enemyRadius"`
	EnemyBaseSpeed    float64 `yaml:"enemyBaseSpeed"`
	EnemyMaxSpeed     float64 `yaml:"enemyMaxSpeed"`
	EnemySpeedStep    float64 `yaml:"enemySpeedStep"`
	HomingStrength    float64 `yaml:"homingStrength"`
	HomingNoiseFactor float64 `yaml:"homingNoiseFactor"`
	MaxEnemies        int     `yaml:"maxEnemies"`

	SpawnInterval    time.Duration `yaml:"spawnInterval"`
	MinSpawnInterval time.Duration `yaml:"minSpawnInterval"`
	DifficultyFactor float64       `yaml:"difficultyFactor"`

	ShieldDuration     time.Duration `yaml:"shieldDuration"`
	SlowDuration       time.Duration `yaml:"slowDuration"`
	SlowFactor         float64       `yaml:"slowFactor"`
	PowerUpSpawnChance float64       `yaml:"powerUpSpawnChance"`
	PowerUpLife        time.Duration `yaml:"powerUpLife"`
	PowerUpRadius      float64       `yaml:"powerUpRadius"`
	MaxPowerUps        int           `yaml:"maxPowerUps"`

	ParticleCountCollision int     `yaml:"particleCountCollision"`
	ParticleCountPowerUp   int     `yaml:"particleCountPowerUp"`
	MaxParticles           int     `yaml:"maxParticles"`
	ParticleDrag           float64 `yaml:"particleDrag"`
}

// DefaultTuning returns the stock game balance.
func DefaultTuning() Tuning {
	return Tuning{
		PlayerRadius:  15,
		KeyboardSpeed: 4,
		FollowFactor:  0.2,

		EnemyRadius:       10,
		EnemyBaseSpeed:    1.5,
		EnemyMaxSpeed:     8,
		EnemySpeedStep:    0.005,
		HomingStrength:    0.03,
		HomingNoiseFactor: 0.05,
		MaxEnemies:        100,

		SpawnInterval:    1500 * time.Millisecond,
		MinSpawnInterval: 300 * time.Millisecond,
		DifficultyFactor: 0.98,

		ShieldDuration:     5 * time.Second,
		SlowDuration:       5 * time.Second,
		SlowFactor:         0.5,
		PowerUpSpawnChance: 0.005,
		PowerUpLife:        10 * time.Second,
		PowerUpRadius:      12,
		MaxPowerUps:        2,

		ParticleCountCollision: 20,
		ParticleCountPowerUp:   10,
		MaxParticles:           300,
		ParticleDrag:           0.98,
	}
}
