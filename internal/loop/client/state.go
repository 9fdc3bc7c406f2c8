package client

import (
	"github.com/tomz197/dodger/internal/input"
	"github.com/tomz197/dodger/internal/loop/sim"
)

// GameState represents the current screen shown to the player.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateGameOver                  // Final time and submission form
)

// ClientState holds per-terminal frontend state. The simulation itself
// lives in the driver; this is only what the screens need.
type ClientState struct {
	Input     input.Input
	GameState GameState
	LastEvent sim.Event // Most recent game-over event, for the final time
	Running   bool      // Client loop running
	starting  bool      // Start requested, waiting for the driver to confirm

	isInactive    bool      // Whether the inactivity warning is shown
	prevGameState GameState // For full-clear on screen changes
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}
