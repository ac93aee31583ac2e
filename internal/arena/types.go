package arena

import (
	"github.com/google/uuid"

	"github.com/tomz197/bombers/internal/physics"
)

// OwnerID identifies the character a bomb or blast segment is attributed to.
// The arena only ever holds it as a weak reference: the character may be gone.
type OwnerID = uuid.UUID

// NoOwner marks bombs placed by the level itself.
var NoOwner = uuid.Nil

// BombID is a stable handle to a bomb slot in the arena.
type BombID uint32

// SegmentID is a stable handle to a blast segment slot in the arena.
type SegmentID uint32

// ObstacleHandle is an opaque world handle for a destructible obstacle or power-up.
type ObstacleHandle uint64

// BombState is the bomb lifecycle state.
type BombState uint8

const (
	BombInert     BombState = iota // Constructed, fuse not started
	BombArmed                      // Fuse running
	BombExploding                  // Detonation in progress
	BombDestroyed                  // Terminal
)

func (s BombState) String() string {
	switch s {
	case BombInert:
		return "inert"
	case BombArmed:
		return "armed"
	case BombExploding:
		return "exploding"
	case BombDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// KickState is the orthogonal motion sub-state of an armed bomb.
type KickState uint8

const (
	KickIdle KickState = iota
	KickMoving
)

func (s KickState) String() string {
	if s == KickMoving {
		return "moving"
	}
	return "idle"
}

// SegmentKind tells renderers which blast sprite a segment uses.
type SegmentKind uint8

const (
	SegmentCenter SegmentKind = iota
	SegmentMiddle
	SegmentEnd
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentCenter:
		return "center"
	case SegmentMiddle:
		return "middle"
	case SegmentEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ObstacleKind classifies what a blast ray or kicked bomb ran into.
type ObstacleKind uint8

const (
	ObstacleNone ObstacleKind = iota
	ObstacleIndestructible
	ObstacleDestructible
)

// Obstacle is the result of a line query. Handle and Position are only
// meaningful for ObstacleDestructible; Position is the obstacle's cell center.
type Obstacle struct {
	Kind     ObstacleKind
	Handle   ObstacleHandle
	Position physics.Vec3
}

// ActorKind is the kind of thing a blast segment can overlap.
type ActorKind uint8

const (
	ActorCharacter ActorKind = iota + 1
	ActorBlock
	ActorPowerup
	ActorBomb
)

// ActorRef names an overlapped actor. It is comparable and used as the key of
// a segment's damaged-actor set.
type ActorRef struct {
	Kind      ActorKind
	Character OwnerID
	Obstacle  ObstacleHandle
	Bomb      BombID
}

// CharacterRef refers to a character by ID.
func CharacterRef(id OwnerID) ActorRef {
	return ActorRef{Kind: ActorCharacter, Character: id}
}

// BlockRef refers to a destructible block.
func BlockRef(h ObstacleHandle) ActorRef {
	return ActorRef{Kind: ActorBlock, Obstacle: h}
}

// PowerupRef refers to a power-up lying on the floor.
func PowerupRef(h ObstacleHandle) ActorRef {
	return ActorRef{Kind: ActorPowerup, Obstacle: h}
}

// BombRef refers to a bomb in this arena.
func BombRef(id BombID) ActorRef {
	return ActorRef{Kind: ActorBomb, Bomb: id}
}
