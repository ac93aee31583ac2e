// Package object holds the player-side entities of a match: characters and
// the power-ups they pick up.
package object

import (
	"github.com/tomz197/bombers/internal/input"
	"github.com/tomz197/bombers/internal/physics"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// MoveDirection turns held direction keys into a unit direction on the grid
// plane. Opposite keys cancel out.
func MoveDirection(in Input) physics.Vec3 {
	var d physics.Vec3
	if in.Left {
		d.X--
	}
	if in.Right {
		d.X++
	}
	if in.Up {
		d.Y--
	}
	if in.Down {
		d.Y++
	}
	return d.Horizontal()
}

// ShouldRenderBlink returns true if an object with remaining protection/invincibility
// time should be rendered this frame (for blinking effect).
// Returns true always if remainingTime <= 0 (no protection).
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	// Blink based on frequency (e.g., 5.0 = 5Hz, 10.0 = 10Hz)
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
