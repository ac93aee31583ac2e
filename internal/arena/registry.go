package arena

import (
	"time"

	"github.com/tomz197/bombers/internal/physics"
)

// OwnerProfile holds the per-player bomb limits that power-ups raise.
type OwnerProfile struct {
	MaxBombs int
	Power    int
}

type ownerEntry struct {
	profile    OwnerProfile
	bombs      []*Bomb
	lastPlaced time.Duration
	placedOnce bool
	forgotten  bool
}

// Registry tracks live bombs per owner and decides whether a placement is
// allowed. A bomb is registered from placement until it explodes.
type Registry struct {
	a      *Arena
	owners map[OwnerID]*ownerEntry
	live   []*Bomb
}

func newRegistry(a *Arena) *Registry {
	return &Registry{
		a:      a,
		owners: make(map[OwnerID]*ownerEntry),
	}
}

func (r *Registry) entry(owner OwnerID) *ownerEntry {
	e, ok := r.owners[owner]
	if !ok {
		e = &ownerEntry{profile: r.defaultProfile()}
		r.owners[owner] = e
	}
	return e
}

func (r *Registry) defaultProfile() OwnerProfile {
	return OwnerProfile{MaxBombs: r.a.rules.MaxBombs, Power: r.a.rules.DefaultPower}
}

// SetProfile replaces an owner's limits. Values below 1 are raised to 1.
func (r *Registry) SetProfile(owner OwnerID, p OwnerProfile) {
	p.MaxBombs = max(1, p.MaxBombs)
	p.Power = max(1, p.Power)
	e := r.entry(owner)
	e.profile = p
	e.forgotten = false
}

// Profile returns the owner's limits, or the rule defaults for unknown owners.
func (r *Registry) Profile(owner OwnerID) OwnerProfile {
	if e, ok := r.owners[owner]; ok {
		return e.profile
	}
	return r.defaultProfile()
}

// LiveCount returns how many of the owner's bombs are still registered.
func (r *Registry) LiveCount(owner OwnerID) int {
	if e, ok := r.owners[owner]; ok {
		return len(e.bombs)
	}
	return 0
}

// Forget drops the owner's profile. Its bombs stay in play and keep the
// now dangling owner ID.
func (r *Registry) Forget(owner OwnerID) {
	e, ok := r.owners[owner]
	if !ok {
		return
	}
	if len(e.bombs) == 0 {
		delete(r.owners, owner)
		return
	}
	e.profile = r.defaultProfile()
	e.placedOnce = false
	e.forgotten = true
}

// CanPlaceAt reports whether the grid cell under position is free for the
// owner's bomb: no live bomb within half a cell and nothing solid other than
// the owner. Capacity and cooldown are checked by PlaceBomb.
func (r *Registry) CanPlaceAt(position physics.Vec3, owner OwnerID) bool {
	rules := &r.a.rules

	target := physics.ToGrid(position, rules.GridSize)
	for _, b := range r.live {
		if b.pos.Dist2D(target) < rules.GridSize/2 {
			return false
		}
	}

	ignore := [...]ActorRef{CharacterRef(owner)}
	return !r.a.world.QuerySweepBlocked(target, rules.BombExtent, ignore[:])
}

// canPlaceMore reports whether the owner is under capacity and off cooldown.
func (r *Registry) canPlaceMore(owner OwnerID) bool {
	e, ok := r.owners[owner]
	if !ok {
		return true
	}
	if len(e.bombs) >= e.profile.MaxBombs {
		return false
	}
	return !e.placedOnce || r.a.clock.Now()-e.lastPlaced >= r.a.rules.PlacementCooldown
}

// PlaceBomb drops a bomb with the owner's profile power.
func (r *Registry) PlaceBomb(owner OwnerID, position physics.Vec3) (*Bomb, bool) {
	return r.PlaceBombWithPower(owner, position, r.Profile(owner).Power)
}

// PlaceBombWithPower drops and arms a bomb at the grid cell under position.
func (r *Registry) PlaceBombWithPower(owner OwnerID, position physics.Vec3, power int) (*Bomb, bool) {
	if !r.canPlaceMore(owner) || !r.CanPlaceAt(position, owner) {
		return nil, false
	}

	b := r.a.newBomb(owner, physics.ToGrid(position, r.a.rules.GridSize))
	b.SetPower(max(1, power))

	e := r.entry(owner)
	e.bombs = append(e.bombs, b)
	e.lastPlaced = r.a.clock.Now()
	e.placedOnce = true
	r.live = append(r.live, b)

	b.Arm()

	r.a.log.Debug("bomb placed", "bomb", b.id, "owner", owner, "power", b.power, "pos", b.pos)
	r.a.observer.BombPlaced(b)
	return b, true
}

// FindKickTarget returns the nearest armed, idle bomb within radius,
// preferring the requester's own bombs.
func (r *Registry) FindKickTarget(requester OwnerID, position physics.Vec3, radius float64) *Bomb {
	if e, ok := r.owners[requester]; ok {
		if b := nearestKickable(e.bombs, position, radius); b != nil {
			return b
		}
	}
	return nearestKickable(r.live, position, radius)
}

func nearestKickable(bombs []*Bomb, position physics.Vec3, radius float64) *Bomb {
	var best *Bomb
	bestDist := radius
	for _, b := range bombs {
		if !b.CanBeKicked() || !physics.PointInCircle(b.pos.X, b.pos.Y, position.X, position.Y, radius) {
			continue
		}
		if d := b.pos.Dist2D(position); d <= bestDist {
			best, bestDist = b, d
		}
	}
	return best
}

// exploded deregisters b. Repeated calls are no-ops.
func (r *Registry) exploded(b *Bomb) {
	idx := -1
	for i, live := range r.live {
		if live == b {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	r.live = append(r.live[:idx], r.live[idx+1:]...)

	e, ok := r.owners[b.owner]
	if !ok {
		return
	}
	for i, owned := range e.bombs {
		if owned == b {
			e.bombs = append(e.bombs[:i], e.bombs[i+1:]...)
			break
		}
	}
	if e.forgotten && len(e.bombs) == 0 {
		delete(r.owners, b.owner)
	}
}

// owned returns a copy of the owner's registered bombs.
func (r *Registry) owned(owner OwnerID) []*Bomb {
	e, ok := r.owners[owner]
	if !ok {
		return nil
	}
	return append([]*Bomb(nil), e.bombs...)
}

func (r *Registry) reset() {
	clear(r.owners)
	r.live = r.live[:0]
}
