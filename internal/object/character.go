package object

import (
	"github.com/google/uuid"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/loop/config"
	"github.com/tomz197/bombers/internal/physics"
)

// Character is a player's avatar in the arena. Bomb damage is lethal unless
// the character is still invincible from spawning.
type Character struct {
	ID     uuid.UUID
	Name   string
	Pos    physics.Vec3
	Facing physics.Vec3 // Last non-zero move direction, used for kicks

	Speed   float64 // Units per second
	CanKick bool

	Alive      bool
	Invincible float64 // Remaining invincibility in seconds

	Kills  int
	Deaths int

	// Set by TakeBombDamage, consumed by the server when it reports the death.
	diedTo    arena.SegmentID
	deathSeen bool
}

var _ arena.Character = (*Character)(nil)

// NewCharacter creates a living character at pos with spawn invincibility.
func NewCharacter(id uuid.UUID, name string, pos physics.Vec3) *Character {
	return &Character{
		ID:         id,
		Name:       name,
		Pos:        pos,
		Facing:     physics.South,
		Speed:      config.MoveSpeed,
		Alive:      true,
		Invincible: config.InvincibilitySeconds,
	}
}

func (c *Character) Position() physics.Vec3 { return c.Pos }

// TakeBombDamage kills the character. Any positive amount is lethal.
func (c *Character) TakeBombDamage(amount float64, source arena.SegmentID) {
	if !c.Alive || c.Invincible > 0 || amount <= 0 {
		return
	}
	c.Alive = false
	c.Deaths++
	c.diedTo = source
	c.deathSeen = true
}

// ConsumeDeath reports a death that has not been reported yet.
func (c *Character) ConsumeDeath() (arena.SegmentID, bool) {
	if !c.deathSeen {
		return 0, false
	}
	c.deathSeen = false
	return c.diedTo, true
}

// Tick counts down spawn invincibility.
func (c *Character) Tick(dt float64) {
	if c.Invincible > 0 {
		c.Invincible -= dt
		if c.Invincible < 0 {
			c.Invincible = 0
		}
	}
}

// Respawn brings a dead character back at pos with base stats.
func (c *Character) Respawn(pos physics.Vec3) {
	c.Pos = pos
	c.Facing = physics.South
	c.Speed = config.MoveSpeed
	c.CanKick = false
	c.Alive = true
	c.Invincible = config.InvincibilitySeconds
	c.deathSeen = false
}

// Face records the last direction the character moved in.
func (c *Character) Face(dir physics.Vec3) {
	if !dir.IsZero() {
		c.Facing = dir
	}
}
