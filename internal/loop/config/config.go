// Package config centralizes all tunable game parameters.
package config

import "time"

// Arena layout, in tiles. Odd sizes give the classic pillar pattern.
const (
	ArenaCols = 15
	ArenaRows = 13
	GridSize  = 100.0 // World units per tile
)

// Level generation
const (
	BlockDensity       = 0.7 // Chance a free tile starts as a destructible block
	PowerupSpawnChance = 0.3 // Chance a destroyed block drops a power-up
	PowerupRevealDelay = 600 * time.Millisecond
)

// Rendering: each tile is drawn as TileCols x TileRows terminal cells.
const (
	TileCols = 4
	TileRows = 2
)

// Max render resolution. Terminals larger than this get a centered frame.
const (
	MaxTermWidth  = 120
	MaxTermHeight = 40
)

// Scoring
const (
	ScoreKill  = 100
	ScoreBlock = 10
)

// Player
const (
	MaxPlayers           = 4
	CharacterExtent      = 35.0  // Half-extent of a character's box
	MoveSpeed            = 300.0 // Units per second
	SpeedUpStep          = 50.0
	MaxMoveSpeed         = 550.0
	MaxBombsCap          = 8
	MaxPowerCap          = 8
	InvincibilitySeconds = 2.0
	RespawnDelaySeconds  = 3.0
	PlayerBlinkFrequency = 10.0 // Hz
	MaxUsernameLength    = 16   // Maximum display length for player usernames
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Spectator feed
const (
	SpectatorFPS       = 10
	SpectatorFrameTime = time.Second / SpectatorFPS
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)
