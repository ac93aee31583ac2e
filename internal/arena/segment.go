package arena

import (
	"time"

	"github.com/tomz197/bombers/internal/physics"
	"github.com/tomz197/bombers/internal/sched"
)

// Segment is one cell of an explosion. It damages each actor at most once
// and expires on its own after the explosion lifetime.
type Segment struct {
	a *Arena

	id      SegmentID
	kind    SegmentKind
	pos     physics.Vec3
	owner   OwnerID
	source  BombID
	spawned time.Duration
	expired bool

	lifeTok sched.Token
	damaged map[ActorRef]struct{}
}

// ID is unique within the arena.
func (s *Segment) ID() SegmentID { return s.id }

// Kind tells the blast center from arms and tips.
func (s *Segment) Kind() SegmentKind      { return s.kind }
func (s *Segment) Position() physics.Vec3 { return s.pos }

// Owner and Source name the player and bomb behind the blast.
func (s *Segment) Owner() OwnerID { return s.owner }
func (s *Segment) Source() BombID { return s.source }

// SpawnedAt is the clock time the segment appeared.
func (s *Segment) SpawnedAt() time.Duration { return s.spawned }

// Expired reports whether the segment outlived its lifetime and awaits sweeping.
func (s *Segment) Expired() bool { return s.expired }

// Damaged reports whether ref has already been handled by this segment.
func (s *Segment) Damaged(ref ActorRef) bool {
	_, ok := s.damaged[ref]
	return ok
}

// HandleOverlap applies the segment's effect to an overlapping actor. Only the
// first overlap per actor has an effect; it returns whether this one did.
func (s *Segment) HandleOverlap(ref ActorRef) bool {
	if s.expired {
		return false
	}
	if _, seen := s.damaged[ref]; seen {
		return false
	}
	s.damaged[ref] = struct{}{}

	a := s.a
	switch ref.Kind {
	case ActorCharacter:
		if ref.Character == s.owner {
			return false
		}
		ch, ok := a.world.Character(ref.Character)
		if !ok {
			return false
		}
		ch.TakeBombDamage(a.rules.Damage, s.id)
		a.log.Debug("player hit", "segment", s.id, "victim", ref.Character, "owner", s.owner)
		a.observer.PlayerHit(s, ref.Character)

	case ActorBlock:
		a.observer.BlockDestroyed(s, ref.Obstacle)

	case ActorBomb:
		if ref.Bomb == s.source {
			return false
		}
		if _, ok := a.liveBomb(ref.Bomb); !ok {
			return false
		}
		a.scheduleChain(s.id, ref.Bomb)

	case ActorPowerup:
		if !a.world.DestroyObstacle(ref.Obstacle) {
			return false
		}
		a.observer.PowerupDestroyed(s, ref.Obstacle)

	default:
		return false
	}
	return true
}

// expire ends the segment. Safe to call more than once.
func (s *Segment) expire(notify bool) {
	if s.expired {
		return
	}
	s.expired = true
	if s.lifeTok != 0 {
		s.a.clock.Cancel(s.lifeTok)
		s.lifeTok = 0
	}
	if notify {
		s.a.observer.SegmentExpired(s)
	}
}
