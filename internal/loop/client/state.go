package client

import (
	"time"

	"github.com/tomz197/bombers/internal/draw"
	"github.com/tomz197/bombers/internal/loop/server"
	"github.com/tomz197/bombers/internal/object"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateDead                      // Player died, show respawn prompt
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-player state (input, score, own player view, etc.).
// Each client has their own instance, managed by the Client.
type ClientState struct {
	Input                object.Input
	GameState            GameState         // This client's game phase
	Player               server.PlayerView // This client's character as of the last snapshot
	HasPlayer            bool
	Score                int     // This client's score
	KilledBy             string  // Who set off the blast that killed us last
	RespawnTimeRemaining float64 // Seconds until respawn is allowed
	LastPowerup          string  // Most recent pickup, shown briefly in the HUD
	powerupTimer         float64
	termSizeFunc         draw.TermSizeFunc // Function to get terminal size
	Running              bool              // Client loop running
	delta                time.Duration     // Frame delta time (client-side)
	shutdownTimer        float64           // Countdown before auto-disconnect on shutdown
	isInactive           bool              // Whether the client is in inactive warning state
	arenaFull            bool              // Last spawn request was rejected

	prevGameState GameState
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}
