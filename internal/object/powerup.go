package object

import (
	"math/rand/v2"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/loop/config"
)

// PowerupKind is the effect a power-up grants.
type PowerupKind uint8

const (
	PowerupBombUp  PowerupKind = iota // One more bomb at a time
	PowerupFireUp                     // One more tile of blast reach
	PowerupSpeedUp                    // Faster movement
	PowerupKick                       // Allows kicking bombs
)

var powerupKinds = [...]PowerupKind{PowerupBombUp, PowerupFireUp, PowerupSpeedUp, PowerupKick}

func (k PowerupKind) String() string {
	switch k {
	case PowerupBombUp:
		return "bomb-up"
	case PowerupFireUp:
		return "fire-up"
	case PowerupSpeedUp:
		return "speed-up"
	case PowerupKick:
		return "kick"
	default:
		return "unknown"
	}
}

// Glyph is the single character drawn for the power-up.
func (k PowerupKind) Glyph() rune {
	switch k {
	case PowerupBombUp:
		return 'B'
	case PowerupFireUp:
		return 'F'
	case PowerupSpeedUp:
		return 'S'
	case PowerupKick:
		return 'K'
	default:
		return '?'
	}
}

// Powerup is a power-up lying on a floor tile.
type Powerup struct {
	Kind     PowerupKind
	Col, Row int
	Handle   arena.ObstacleHandle
}

// RandomPowerupKind picks a kind uniformly.
func RandomPowerupKind(rng *rand.Rand) PowerupKind {
	return powerupKinds[rng.IntN(len(powerupKinds))]
}

// Apply grants the power-up to a character and its bomb profile.
func (k PowerupKind) Apply(c *Character, p *arena.OwnerProfile) {
	switch k {
	case PowerupBombUp:
		p.MaxBombs = min(p.MaxBombs+1, config.MaxBombsCap)
	case PowerupFireUp:
		p.Power = min(p.Power+1, config.MaxPowerCap)
	case PowerupSpeedUp:
		c.Speed = min(c.Speed+config.SpeedUpStep, config.MaxMoveSpeed)
	case PowerupKick:
		c.CanKick = true
	}
}
