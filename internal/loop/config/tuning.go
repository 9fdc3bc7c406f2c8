package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning is wrapped by every Validate failure.
var ErrInvalidTuning = errors.New("invalid tuning")

// LoadTuning reads a YAML tuning file. Keys missing from the file keep
// their DefaultTuning values.
//
// Durations are written as Go duration strings ("1500ms", "5s").
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to read tuning file: %w", err)
	}

	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("failed to parse tuning file: %w", err)
	}

	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// LoadTuningOrDefault is LoadTuning, except an empty path yields DefaultTuning.
func LoadTuningOrDefault(path string) (Tuning, error) {
	if path == "" {
		return DefaultTuning(), nil
	}
	return LoadTuning(path)
}

// Validate checks that the values describe a playable game.
func (t Tuning) Validate() error {
	switch {
	case t.PlayerRadius <= 0 || t.EnemyRadius <= 0 || t.PowerUpRadius <= 0:
		return fmt.Errorf("%w: radii must be positive", ErrInvalidTuning)
	case t.EnemyBaseSpeed <= 0:
		return fmt.Errorf("%w: enemyBaseSpeed must be positive", ErrInvalidTuning)
	case t.EnemyBaseSpeed > t.EnemyMaxSpeed:
		return fmt.Errorf("%w: enemyBaseSpeed(%.3f) > enemyMaxSpeed(%.3f)",
			ErrInvalidTuning, t.EnemyBaseSpeed, t.EnemyMaxSpeed)
	case t.EnemySpeedStep < 0:
		return fmt.Errorf("%w: enemySpeedStep must not be negative", ErrInvalidTuning)
	case t.HomingStrength < 0 || t.HomingStrength > 1:
		return fmt.Errorf("%w: homingStrength must be in [0,1]", ErrInvalidTuning)
	case t.MinSpawnInterval <= 0 || t.SpawnInterval < t.MinSpawnInterval:
		return fmt.Errorf("%w: spawnInterval(%s) must be >= minSpawnInterval(%s) > 0",
			ErrInvalidTuning, t.SpawnInterval, t.MinSpawnInterval)
	case t.DifficultyFactor <= 0 || t.DifficultyFactor > 1:
		return fmt.Errorf("%w: difficultyFactor must be in (0,1]", ErrInvalidTuning)
	case t.PowerUpSpawnChance < 0 || t.PowerUpSpawnChance > 1:
		return fmt.Errorf("%w: powerUpSpawnChance must be in [0,1]", ErrInvalidTuning)
	case t.FollowFactor < 0 || t.FollowFactor > 1:
		return fmt.Errorf("%w: followFactor must be in [0,1]", ErrInvalidTuning)
	case t.ParticleDrag < 0 || t.ParticleDrag > 1:
		return fmt.Errorf("%w: particleDrag must be in [0,1]", ErrInvalidTuning)
	case t.MaxEnemies < 0 || t.MaxPowerUps < 0 || t.MaxParticles < 0:
		return fmt.Errorf("%w: caps must not be negative", ErrInvalidTuning)
	}
	return nil
}
