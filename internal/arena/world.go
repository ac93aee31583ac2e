package arena

import (
	"time"

	"github.com/tomz197/bombers/internal/physics"
	"github.com/tomz197/bombers/internal/sched"
)

//go:generate go tool mockgen -destination=./mocks/character_mock.go -package=mocks . Character

// World is the host collaborator that owns obstacles and characters and
// answers the arena's spatial queries.
type World interface {
	// QueryLineObstacle returns the first obstacle between from and to.
	QueryLineObstacle(from, to physics.Vec3) Obstacle
	// QuerySweepBlocked reports whether a box at position with the given
	// half-extent overlaps anything solid, skipping the ignored actors.
	QuerySweepBlocked(position, extent physics.Vec3, ignore []ActorRef) bool
	// DestroyObstacle removes a destructible obstacle or power-up.
	// Returns false if it was already gone.
	DestroyObstacle(h ObstacleHandle) bool
	// OverlapBox reports the characters, blocks and power-ups touching a box.
	OverlapBox(center, extent physics.Vec3) []ActorRef
	// Character looks up a character. Owners are weak references, so a
	// missing character is normal.
	Character(id OwnerID) (Character, bool)
}

// Character is the damage-receiving side of a player.
type Character interface {
	Position() physics.Vec3
	TakeBombDamage(amount float64, source SegmentID)
}

// Clock is the deferred-callback scheduler the arena runs its timers on.
// *sched.Scheduler satisfies it.
type Clock interface {
	Now() time.Duration
	ScheduleOnce(delay time.Duration, fn func()) sched.Token
	Cancel(tok sched.Token) bool
}

var _ Clock = (*sched.Scheduler)(nil)
