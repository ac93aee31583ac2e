// Package arena implements the bomb gameplay core: bombs with fuses and
// kicks, cross-shaped explosions, blast segments and the per-owner bomb
// registry.
//
// The arena is single-threaded. Every method, and every timer callback it
// schedules on its Clock, must run on the simulation goroutine. The host
// advances the clock before calling Update each tick so that all due fuses,
// chains and expirations fire before movement is simulated.
package arena

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/tomz197/bombers/internal/physics"
	"github.com/tomz197/bombers/internal/sched"
)

// Arena owns every bomb and blast segment of one match.
type Arena struct {
	rules    Rules
	world    World
	clock    Clock
	observer Observer
	log      *log.Logger

	registry *Registry

	bombs     map[BombID]*Bomb
	bombOrder []BombID
	nextBomb  BombID

	segments map[SegmentID]*Segment
	segOrder []SegmentID
	nextSeg  SegmentID

	chains map[sched.Token]struct{}
}

// Option configures an Arena.
type Option func(*Arena)

// WithObserver sets the gameplay event sink.
func WithObserver(o Observer) Option {
	return func(a *Arena) {
		if o != nil {
			a.observer = o
		}
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(a *Arena) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates an arena. It fails if the rules are invalid or a collaborator
// is missing.
func New(rules Rules, world World, clock Clock, opts ...Option) (*Arena, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("new arena: %w", err)
	}
	if world == nil {
		return nil, fmt.Errorf("new arena: %w: world", ErrMissingCollaborator)
	}
	if clock == nil {
		return nil, fmt.Errorf("new arena: %w: clock", ErrMissingCollaborator)
	}

	a := &Arena{
		rules:    rules,
		world:    world,
		clock:    clock,
		observer: NopObserver{},
		log:      log.New(io.Discard),
		bombs:    make(map[BombID]*Bomb),
		segments: make(map[SegmentID]*Segment),
		chains:   make(map[sched.Token]struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.registry = newRegistry(a)
	return a, nil
}

// Rules returns the validated rules the arena was built with.
func (a *Arena) Rules() Rules { return a.rules }

// Registry gives access to per-owner profiles and placement checks.
func (a *Arena) Registry() *Registry { return a.registry }

// Clock is the simulation clock driving fuses and blast lifetimes.
func (a *Arena) Clock() Clock { return a.clock }

// PlaceBomb drops a bomb for owner using the owner's profile power.
func (a *Arena) PlaceBomb(owner OwnerID, position physics.Vec3) (*Bomb, bool) {
	return a.registry.PlaceBomb(owner, position)
}

// PlaceBombWithPower drops a bomb with an explicit power.
func (a *Arena) PlaceBombWithPower(owner OwnerID, position physics.Vec3, power int) (*Bomb, bool) {
	return a.registry.PlaceBombWithPower(owner, position, power)
}

// Kick finds the nearest kickable bomb around position and kicks it.
func (a *Arena) Kick(kicker OwnerID, position, direction physics.Vec3) (*Bomb, bool) {
	b := a.registry.FindKickTarget(kicker, position, a.rules.KickSearchRadius)
	if b == nil {
		return nil, false
	}
	if !b.StartKick(direction, kicker) {
		return nil, false
	}
	return b, true
}

// Bomb looks up a bomb that has not been swept yet.
func (a *Arena) Bomb(id BombID) (*Bomb, bool) {
	b, ok := a.bombs[id]
	return b, ok
}

// Segment looks up a segment that has not been swept yet.
func (a *Arena) Segment(id SegmentID) (*Segment, bool) {
	s, ok := a.segments[id]
	return s, ok
}

// Bombs returns the armed bombs in placement order.
func (a *Arena) Bombs() []*Bomb {
	out := make([]*Bomb, 0, len(a.bombOrder))
	for _, id := range a.bombOrder {
		if b := a.bombs[id]; b.state == BombArmed {
			out = append(out, b)
		}
	}
	return out
}

// Segments returns the live segments in spawn order.
func (a *Arena) Segments() []*Segment {
	out := make([]*Segment, 0, len(a.segOrder))
	for _, id := range a.segOrder {
		if s := a.segments[id]; !s.expired {
			out = append(out, s)
		}
	}
	return out
}

// DetonateOwned explodes every live bomb of owner and returns how many went off.
func (a *Arena) DetonateOwned(owner OwnerID) int {
	n := 0
	for _, b := range a.registry.owned(owner) {
		if b.ForceExplode() {
			n++
		}
	}
	return n
}

// NotifyOverlap forwards an overlap found by the host to a segment.
func (a *Arena) NotifyOverlap(id SegmentID, ref ActorRef) bool {
	s, ok := a.segments[id]
	if !ok {
		return false
	}
	return s.HandleOverlap(ref)
}

// BlocksCharacter reports whether a character box at pos collides with a bomb
// that is solid for who.
func (a *Arena) BlocksCharacter(pos, extent physics.Vec3, who OwnerID) bool {
	for _, id := range a.bombOrder {
		b := a.bombs[id]
		if !b.BlocksCharacter(who) {
			continue
		}
		if physics.BoxesOverlap(pos, extent, b.pos, a.rules.BombExtent) {
			return true
		}
	}
	return false
}

// BlocksMove is BlocksCharacter for a move from one position to another. A
// bomb the character already overlaps does not stop it, so it can walk off.
func (a *Arena) BlocksMove(from, to, extent physics.Vec3, who OwnerID) bool {
	for _, id := range a.bombOrder {
		b := a.bombs[id]
		if !b.BlocksCharacter(who) {
			continue
		}
		if !physics.BoxesOverlap(to, extent, b.pos, a.rules.BombExtent) {
			continue
		}
		if physics.BoxesOverlap(from, extent, b.pos, a.rules.BombExtent) {
			continue
		}
		return true
	}
	return false
}

// Update runs one simulation step: kick motion, owner-pass checks, the
// overlap pass over live segments, then the sweep of dead entities.
func (a *Arena) Update(dt float64) {
	for i := 0; i < len(a.bombOrder); i++ {
		b := a.bombs[a.bombOrder[i]]
		if b.state != BombArmed {
			continue
		}
		b.updateKick(dt)
		b.updateOwnerPass()
	}

	n := len(a.segOrder)
	for i := 0; i < n; i++ {
		a.scanOverlaps(a.segments[a.segOrder[i]])
	}

	a.sweep()
}

// Clear tears everything down. No timer scheduled by the arena fires afterwards.
func (a *Arena) Clear() {
	for _, id := range a.bombOrder {
		b := a.bombs[id]
		b.cancelTimers()
		b.state = BombDestroyed
	}
	for _, id := range a.segOrder {
		a.segments[id].expire(false)
	}
	for tok := range a.chains {
		a.clock.Cancel(tok)
	}

	clear(a.chains)
	clear(a.bombs)
	clear(a.segments)
	a.bombOrder = a.bombOrder[:0]
	a.segOrder = a.segOrder[:0]
	a.registry.reset()
}

func (a *Arena) newBomb(owner OwnerID, pos physics.Vec3) *Bomb {
	a.nextBomb++
	b := &Bomb{
		a:         a,
		id:        a.nextBomb,
		owner:     owner,
		pos:       pos,
		power:     a.rules.DefaultPower,
		fuse:      a.rules.FuseDuration,
		placed:    a.clock.Now(),
		ownerPass: a.rules.OwnerPass != OwnerPassNone && owner != NoOwner,
	}
	a.bombs[b.id] = b
	a.bombOrder = append(a.bombOrder, b.id)
	return b
}

func (a *Arena) newSegment(kind SegmentKind, pos physics.Vec3, src *Bomb) *Segment {
	a.nextSeg++
	s := &Segment{
		a:       a,
		id:      a.nextSeg,
		kind:    kind,
		pos:     pos,
		owner:   src.owner,
		source:  src.id,
		spawned: a.clock.Now(),
		damaged: make(map[ActorRef]struct{}),
	}
	id := s.id
	s.lifeTok = a.clock.ScheduleOnce(a.rules.ExplosionLifetime, func() {
		if seg, ok := a.segments[id]; ok {
			seg.lifeTok = 0
			seg.expire(true)
		}
	})
	a.segments[s.id] = s
	a.segOrder = append(a.segOrder, s.id)
	return s
}

// liveBomb returns the bomb if it is still armed.
func (a *Arena) liveBomb(id BombID) (*Bomb, bool) {
	b, ok := a.bombs[id]
	if !ok || b.state != BombArmed {
		return nil, false
	}
	return b, true
}

func (a *Arena) fuseExpired(id BombID) {
	b, ok := a.liveBomb(id)
	if !ok {
		return
	}
	b.fuseTok = 0
	a.detonate(b)
}

// detonate runs the explosion of an armed bomb.
func (a *Arena) detonate(b *Bomb) {
	b.state = BombExploding
	b.cancelTimers()
	b.kick = KickIdle
	b.speed = 0
	b.dir = physics.Vec3{}
	b.pos = physics.ToGrid(b.pos, a.rules.GridSize)

	a.log.Debug("bomb exploding", "bomb", b.id, "owner", b.owner, "power", b.power, "pos", b.pos)
	a.spawnBlast(b)

	a.registry.exploded(b)
	a.observer.BombExploded(b)
	b.state = BombDestroyed
}

// scheduleChain detonates the bomb after the chain delay if it is still
// armed by then.
func (a *Arena) scheduleChain(trigger SegmentID, id BombID) {
	var tok sched.Token
	tok = a.clock.ScheduleOnce(a.rules.ChainDelay, func() {
		delete(a.chains, tok)
		b, ok := a.liveBomb(id)
		if !ok {
			return
		}
		a.log.Debug("chain reaction", "bomb", id, "segment", trigger)
		a.observer.BombChainExploded(trigger, b)
		b.ForceExplode()
	})
	a.chains[tok] = struct{}{}
}

// scanOverlaps feeds a segment everything currently touching it.
func (a *Arena) scanOverlaps(s *Segment) {
	if s.expired {
		return
	}
	for _, ref := range a.world.OverlapBox(s.pos, a.rules.SegmentExtent) {
		s.HandleOverlap(ref)
	}
	for _, id := range a.bombOrder {
		b := a.bombs[id]
		if b.state != BombArmed || b.id == s.source {
			continue
		}
		if physics.BoxesOverlap(s.pos, a.rules.SegmentExtent, b.pos, a.rules.BombExtent) {
			s.HandleOverlap(BombRef(b.id))
		}
	}
}

// sweep frees destroyed bombs and expired segments.
func (a *Arena) sweep() {
	a.bombOrder = slices.DeleteFunc(a.bombOrder, func(id BombID) bool {
		if a.bombs[id].state == BombDestroyed {
			delete(a.bombs, id)
			return true
		}
		return false
	})
	a.segOrder = slices.DeleteFunc(a.segOrder, func(id SegmentID) bool {
		if a.segments[id].expired {
			delete(a.segments, id)
			return true
		}
		return false
	})
}
