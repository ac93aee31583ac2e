package arena_test

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/physics"
	"github.com/tomz197/bombers/internal/sched"
)

const grid = 100.0

var charExtent = physics.Vec3{X: 40, Y: 40, Z: 40}

type cell [2]int

// fakeWorld is a tile world on a 100 unit grid with no outer bounds.
type fakeWorld struct {
	walls     map[cell]bool
	blocks    map[cell]arena.ObstacleHandle
	powerups  map[cell]arena.ObstacleHandle
	chars     map[arena.OwnerID]arena.Character
	destroyed map[arena.ObstacleHandle]int
	next      arena.ObstacleHandle
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		walls:     make(map[cell]bool),
		blocks:    make(map[cell]arena.ObstacleHandle),
		powerups:  make(map[cell]arena.ObstacleHandle),
		chars:     make(map[arena.OwnerID]arena.Character),
		destroyed: make(map[arena.ObstacleHandle]int),
	}
}

func (w *fakeWorld) wall(col, row int) { w.walls[cell{col, row}] = true }

func (w *fakeWorld) block(col, row int) arena.ObstacleHandle {
	w.next++
	w.blocks[cell{col, row}] = w.next
	return w.next
}

func (w *fakeWorld) powerup(col, row int) arena.ObstacleHandle {
	w.next++
	w.powerups[cell{col, row}] = w.next
	return w.next
}

func (w *fakeWorld) QueryLineObstacle(from, to physics.Vec3) arena.Obstacle {
	d := to.Sub(from)
	l := d.Len2D()
	dir := d.Horizontal()
	for t := 1e-3; ; t += grid / 10 {
		if t > l {
			t = l
		}
		c := cellAt(from.Add(dir.Scale(t)))
		if w.walls[c] {
			return arena.Obstacle{Kind: arena.ObstacleIndestructible}
		}
		if h, ok := w.blocks[c]; ok {
			return arena.Obstacle{
				Kind:     arena.ObstacleDestructible,
				Handle:   h,
				Position: physics.CellCenter(c[0], c[1], grid),
			}
		}
		if t >= l {
			return arena.Obstacle{}
		}
	}
}

func (w *fakeWorld) QuerySweepBlocked(pos, extent physics.Vec3, ignore []arena.ActorRef) bool {
	tile := physics.Vec3{X: grid / 2, Y: grid / 2}
	for c := range w.walls {
		if physics.BoxesOverlap(pos, extent, physics.CellCenter(c[0], c[1], grid), tile) {
			return true
		}
	}
	for c := range w.blocks {
		if physics.BoxesOverlap(pos, extent, physics.CellCenter(c[0], c[1], grid), tile) {
			return true
		}
	}
next:
	for id, ch := range w.chars {
		for _, ref := range ignore {
			if ref == arena.CharacterRef(id) {
				continue next
			}
		}
		if physics.BoxesOverlap(pos, extent, ch.Position(), charExtent) {
			return true
		}
	}
	return false
}

func (w *fakeWorld) DestroyObstacle(h arena.ObstacleHandle) bool {
	for c, bh := range w.blocks {
		if bh == h {
			delete(w.blocks, c)
			w.destroyed[h]++
			return true
		}
	}
	for c, ph := range w.powerups {
		if ph == h {
			delete(w.powerups, c)
			w.destroyed[h]++
			return true
		}
	}
	return false
}

func (w *fakeWorld) OverlapBox(center, extent physics.Vec3) []arena.ActorRef {
	var refs []arena.ActorRef
	for id, ch := range w.chars {
		if physics.BoxesOverlap(center, extent, ch.Position(), charExtent) {
			refs = append(refs, arena.CharacterRef(id))
		}
	}
	tile := physics.Vec3{X: grid / 2, Y: grid / 2}
	for c, h := range w.blocks {
		if physics.BoxesOverlap(center, extent, physics.CellCenter(c[0], c[1], grid), tile) {
			refs = append(refs, arena.BlockRef(h))
		}
	}
	for c, h := range w.powerups {
		if physics.BoxesOverlap(center, extent, physics.CellCenter(c[0], c[1], grid), tile) {
			refs = append(refs, arena.PowerupRef(h))
		}
	}
	return refs
}

func (w *fakeWorld) Character(id arena.OwnerID) (arena.Character, bool) {
	ch, ok := w.chars[id]
	return ch, ok
}

func cellAt(p physics.Vec3) cell {
	col, row := physics.CellOf(p, grid)
	return cell{col, row}
}

// dummy is a character that records the damage it took.
type dummy struct {
	pos  physics.Vec3
	hits int
	dmg  float64
}

func (d *dummy) Position() physics.Vec3 { return d.pos }

func (d *dummy) TakeBombDamage(amount float64, _ arena.SegmentID) {
	d.hits++
	d.dmg += amount
}

// recorder counts observer notifications.
type recorder struct {
	arena.NopObserver
	placed, exploded, chained, hits, blocks, powerups, kicks, stops int
}

func (r *recorder) BombPlaced(*arena.Bomb)                              { r.placed++ }
func (r *recorder) BombExploded(*arena.Bomb)                            { r.exploded++ }
func (r *recorder) BombChainExploded(arena.SegmentID, *arena.Bomb)      { r.chained++ }
func (r *recorder) PlayerHit(*arena.Segment, arena.OwnerID)             { r.hits++ }
func (r *recorder) BlockDestroyed(*arena.Segment, arena.ObstacleHandle) { r.blocks++ }
func (r *recorder) PowerupDestroyed(*arena.Segment, arena.ObstacleHandle) {
	r.powerups++
}
func (r *recorder) KickStarted(*arena.Bomb, arena.OwnerID) { r.kicks++ }
func (r *recorder) KickStopped(*arena.Bomb)                { r.stops++ }

// tb is the part of testing.TB that rapid.T also provides.
type tb interface {
	Helper()
	Fatalf(format string, args ...any)
}

type harness struct {
	t     tb
	world *fakeWorld
	clock *sched.Scheduler
	arena *arena.Arena
}

func newHarness(t tb, rules arena.Rules, obs arena.Observer) *harness {
	t.Helper()
	h := &harness{t: t, world: newFakeWorld(), clock: sched.New()}
	var opts []arena.Option
	if obs != nil {
		opts = append(opts, arena.WithObserver(obs))
	}
	a, err := arena.New(rules, h.world, h.clock, opts...)
	if err != nil {
		t.Fatalf("arena.New: %v", err)
	}
	h.arena = a
	return h
}

// run advances the simulation by d in 10ms ticks.
func (h *harness) run(d time.Duration) {
	const tick = 10 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		h.clock.Advance(tick)
		h.arena.Update(tick.Seconds())
	}
}

func (h *harness) place(owner arena.OwnerID, col, row, power int) *arena.Bomb {
	h.t.Helper()
	b, ok := h.arena.PlaceBombWithPower(owner, physics.CellCenter(col, row, grid), power)
	if !ok {
		h.t.Fatalf("PlaceBombWithPower at (%d,%d) rejected", col, row)
	}
	return b
}

// segmentsByDir groups live segment positions by their offset from origin.
func segmentsByDir(segs []*arena.Segment, origin physics.Vec3) map[physics.Vec3][]*arena.Segment {
	out := make(map[physics.Vec3][]*arena.Segment)
	for _, s := range segs {
		d := s.Position().Sub(origin)
		var dir physics.Vec3
		switch {
		case d.X > 0:
			dir = physics.East
		case d.X < 0:
			dir = physics.West
		case d.Y > 0:
			dir = physics.South
		case d.Y < 0:
			dir = physics.North
		}
		out[dir] = append(out[dir], s)
	}
	return out
}

func near(a, b physics.Vec3) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func newOwner() arena.OwnerID { return uuid.New() }
