package arena

import (
	"math"

	"github.com/tomz197/bombers/internal/physics"
)

// CanBeKicked reports whether a kick would be accepted right now.
func (b *Bomb) CanBeKicked() bool {
	return b.a.rules.KickEnabled && b.state == BombArmed && b.kick == KickIdle
}

// StartKick sends the bomb sliding along the dominant axis of direction.
func (b *Bomb) StartKick(direction physics.Vec3, kicker OwnerID) bool {
	if !b.CanBeKicked() {
		return false
	}
	dir := axisOf(direction)
	if dir.IsZero() {
		return false
	}

	b.kick = KickMoving
	b.dir = dir
	b.speed = b.a.rules.KickSpeed
	b.kicker = kicker

	b.a.log.Debug("bomb kicked", "bomb", b.id, "kicker", kicker, "dir", dir)
	b.a.observer.KickStarted(b, kicker)
	return true
}

// axisOf snaps a direction to the closest cardinal, preferring X on ties.
func axisOf(v physics.Vec3) physics.Vec3 {
	h := v.Horizontal()
	switch {
	case h.IsZero():
		return physics.Vec3{}
	case math.Abs(h.X) >= math.Abs(h.Y):
		return physics.Vec3{X: math.Copysign(1, h.X)}
	default:
		return physics.Vec3{Y: math.Copysign(1, h.Y)}
	}
}

// updateKick advances a sliding bomb. Motion is split into sub-steps of at
// most a quarter cell and each sub-step probes from the leading edge, so a
// bomb never skips over a one-cell obstacle.
func (b *Bomb) updateKick(dt float64) {
	if b.kick != KickMoving {
		return
	}
	r := &b.a.rules

	b.speed = math.Max(0, b.speed-r.KickDeceleration*dt)
	if b.speed == 0 {
		b.stopKick()
		return
	}

	dist := b.speed * dt
	maxStep := r.GridSize / 4
	steps := int(math.Ceil(dist / maxStep))
	step := dist / float64(steps)

	for range steps {
		candidate := b.pos.Add(b.dir.Scale(step))
		if b.a.kickBlocked(b, candidate) {
			b.stopKick()
			return
		}
		b.pos = candidate
	}
}

// stopKick ends the slide at the last unobstructed cell.
func (b *Bomb) stopKick() {
	b.pos = physics.ToGrid(b.pos, b.a.rules.GridSize)
	b.kick = KickIdle
	b.dir = physics.Vec3{}
	b.speed = 0

	b.a.log.Debug("bomb stopped", "bomb", b.id, "pos", b.pos)
	b.a.observer.KickStopped(b)
}

// kickBlocked reports whether moving b to candidate would hit something.
func (a *Arena) kickBlocked(b *Bomb, candidate physics.Vec3) bool {
	half := a.rules.GridSize / 2
	edge := b.pos.Add(b.dir.Scale(half))
	lead := candidate.Add(b.dir.Scale(half))
	if a.world.QueryLineObstacle(edge, lead).Kind != ObstacleNone {
		return true
	}

	for _, id := range a.bombOrder {
		o := a.bombs[id]
		if o == b || o.state != BombArmed {
			continue
		}
		if physics.BoxesOverlap(candidate, a.rules.BombExtent, o.pos, a.rules.BombExtent) {
			return true
		}
	}

	ignore := [...]ActorRef{BombRef(b.id), CharacterRef(b.kicker)}
	return a.world.QuerySweepBlocked(candidate, a.rules.BombExtent, ignore[:])
}
