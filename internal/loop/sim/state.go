// Package sim runs the authoritative game simulation: entity updates,
// collisions, the difficulty ramp and the session phase machine.
package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/dodger/internal/loop/config"
	"github.com/tomz197/dodger/internal/object"
)

// Phase is the session's position in the start -> playing -> game over cycle.
type Phase int

const (
	PhaseStart    Phase = iota // Idle, waiting for a start command
	PhasePlaying               // Simulation active
	PhaseGameOver              // Frozen, final score exposed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ErrAlreadyPlaying is returned by Start while a game is running.
var ErrAlreadyPlaying = errors.New("session already playing")

// Session holds all simulation state for one game.
// It is not safe for concurrent use; Driver serializes access.
type Session struct {
	phase  Phase
	field  object.Field
	tuning config.Tuning

	player    *object.Player
	enemies   []*object.Enemy
	powerUps  []*object.PowerUp
	particles []*object.Particle

	elapsed     time.Duration // Survived time, frozen on game over
	startedAt   time.Time
	shieldTimer time.Duration
	slowTimer   time.Duration
	difficulty  Difficulty
}

// NewSession creates an idle session for the given field.
func NewSession(tuning config.Tuning, field object.Field) *Session {
	s := &Session{
		phase:  PhaseStart,
		field:  field,
		tuning: tuning,
	}
	s.difficulty = NewDifficulty(&s.tuning)
	return s
}

// Emit adds a particle, evicting the oldest ones beyond the cap.
// Implements object.Emitter.
func (s *Session) Emit(p *object.Particle) {
	s.particles = append(s.particles, p)

	over := len(s.particles) - s.tuning.MaxParticles
	if over <= 0 {
		return
	}
	for _, old := range s.particles[:over] {
		old.Release()
	}
	n := copy(s.particles, s.particles[over:])
	clear(s.particles[n:])
	s.particles = s.particles[:n]
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Field returns the current field bounds.
func (s *Session) Field() object.Field {
	return s.field
}

// Tuning returns the session's gameplay constants.
func (s *Session) Tuning() config.Tuning {
	return s.tuning
}

// Player returns the avatar, or nil before the first start.
func (s *Session) Player() *object.Player {
	return s.player
}

// Enemies returns the live enemies. The slice must not be modified.
func (s *Session) Enemies() []*object.Enemy {
	return s.enemies
}

// PowerUps returns the live power-ups. The slice must not be modified.
func (s *Session) PowerUps() []*object.PowerUp {
	return s.powerUps
}

// Particles returns the live particles, oldest first. The slice must not be modified.
func (s *Session) Particles() []*object.Particle {
	return s.particles
}

// ShieldTimer returns the remaining shield time.
func (s *Session) ShieldTimer() time.Duration {
	return s.shieldTimer
}

// SlowTimer returns the remaining slow time.
func (s *Session) SlowTimer() time.Duration {
	return s.slowTimer
}

// Difficulty returns the current difficulty scalars.
func (s *Session) Difficulty() Difficulty {
	return s.difficulty
}

// Elapsed returns the survived time of the current or last game.
func (s *Session) Elapsed() time.Duration {
	return s.elapsed
}

// StartedAt returns the wall-clock time the current game started.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Score returns the survived time in whole tenths of a second.
func (s *Session) Score() int {
	return ScoreTenths(s.elapsed)
}

// ScoreTenths truncates d to tenths of a second.
func ScoreTenths(d time.Duration) int {
	return int(d / (100 * time.Millisecond))
}

// FormatScore renders a tenths score as seconds with one decimal place.
func FormatScore(tenths int) string {
	return fmt.Sprintf("%.1f", float64(tenths)/10)
}
