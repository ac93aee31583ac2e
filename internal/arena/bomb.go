package arena

import (
	"math"
	"time"

	"github.com/tomz197/bombers/internal/physics"
	"github.com/tomz197/bombers/internal/sched"
)

// Pulse animation.
const (
	pulseHz        = 2.0
	pulseAmplitude = 0.2
	pulseMin       = 0.8
	pulseMax       = 1.2
)

// Bomb is a placed bomb. All methods must be called from the simulation goroutine.
type Bomb struct {
	a *Arena

	id     BombID
	owner  OwnerID
	pos    physics.Vec3
	power  int
	fuse   time.Duration
	state  BombState
	placed time.Duration
	armed  time.Duration

	fuseTok sched.Token
	passTok sched.Token

	// ownerPass is true while the owner may walk through the bomb.
	ownerPass bool

	kick   KickState
	dir    physics.Vec3
	speed  float64
	kicker OwnerID
}

// ID is unique within the arena and never reused.
func (b *Bomb) ID() BombID { return b.id }

// Owner is the player who placed the bomb.
func (b *Bomb) Owner() OwnerID { return b.owner }

// Position is the bomb center, snapped to a cell unless sliding.
func (b *Bomb) Position() physics.Vec3 { return b.pos }

// Power is the blast reach in cells.
func (b *Bomb) Power() int { return b.power }

// FuseDuration is the full fuse length set at placement.
func (b *Bomb) FuseDuration() time.Duration { return b.fuse }

func (b *Bomb) State() BombState { return b.state }

// KickState reports whether the bomb is resting or sliding.
func (b *Bomb) KickState() KickState { return b.kick }

// Direction and Speed describe the slide of a kicked bomb.
func (b *Bomb) Direction() physics.Vec3 { return b.dir }

func (b *Bomb) Speed() float64 { return b.speed }

// PlacedAt is the clock time the fuse started.
func (b *Bomb) PlacedAt() time.Duration { return b.placed }

// OwnerCanPass is true until the owner first steps off the bomb.
func (b *Bomb) OwnerCanPass() bool { return b.ownerPass }

// Live reports whether the bomb is armed and can still explode.
func (b *Bomb) Live() bool { return b.state == BombArmed }

// Remaining returns the time left on the fuse at now.
func (b *Bomb) Remaining(now time.Duration) time.Duration {
	if b.state != BombArmed {
		return 0
	}
	left := b.armed + b.fuse - now
	if left < 0 {
		return 0
	}
	return left
}

// SetPower changes the blast reach. Only allowed before the bomb is armed.
func (b *Bomb) SetPower(n int) bool {
	if b.state != BombInert || n < 1 {
		return false
	}
	b.power = n
	return true
}

// Arm starts the fuse. Arming an armed bomb restarts its fuse with the
// bomb's own duration. Returns false once the bomb is exploding or gone.
func (b *Bomb) Arm() bool {
	first := false
	switch b.state {
	case BombInert:
		b.state = BombArmed
		first = true
	case BombArmed:
		b.a.clock.Cancel(b.fuseTok)
	default:
		return false
	}

	id := b.id
	b.armed = b.a.clock.Now()
	b.fuseTok = b.a.clock.ScheduleOnce(b.fuse, func() { b.a.fuseExpired(id) })

	if first && b.ownerPass && b.a.rules.OwnerPass == OwnerPassTimed {
		b.passTok = b.a.clock.ScheduleOnce(b.a.rules.OwnerPassDuration, func() {
			if bomb, ok := b.a.liveBomb(id); ok {
				bomb.ownerPass = false
				bomb.passTok = 0
			}
		})
	}
	return true
}

// ForceExplode detonates the bomb now. Only the first call on an armed bomb
// has any effect.
func (b *Bomb) ForceExplode() bool {
	if b.state != BombArmed {
		return false
	}
	b.a.detonate(b)
	return true
}

// BlocksCharacter reports whether the bomb is solid for the given character.
func (b *Bomb) BlocksCharacter(who OwnerID) bool {
	if b.state != BombArmed {
		return false
	}
	if b.kick == KickMoving {
		return true
	}
	return !(b.ownerPass && who == b.owner)
}

// PulseScale is the cosmetic size multiplier of the bomb sprite at now.
func (b *Bomb) PulseScale(now time.Duration) float64 {
	if b.state != BombArmed {
		return 1
	}
	t := (now - b.armed).Seconds()
	s := 1 + pulseAmplitude*math.Sin(2*math.Pi*pulseHz*t)
	return math.Min(pulseMax, math.Max(pulseMin, s))
}

// updateOwnerPass clears the until-clear pass once the owner has walked off.
func (b *Bomb) updateOwnerPass() {
	if !b.ownerPass || b.a.rules.OwnerPass != OwnerPassUntilClear {
		return
	}
	ch, ok := b.a.world.Character(b.owner)
	if !ok || ch.Position().Dist2D(b.pos) >= b.a.rules.GridSize {
		b.ownerPass = false
	}
}

func (b *Bomb) cancelTimers() {
	if b.fuseTok != 0 {
		b.a.clock.Cancel(b.fuseTok)
		b.fuseTok = 0
	}
	if b.passTok != 0 {
		b.a.clock.Cancel(b.passTok)
		b.passTok = 0
	}
}
