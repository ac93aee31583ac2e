package world

import (
	"math"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/loop/config"
	"github.com/tomz197/bombers/internal/object"
	"github.com/tomz197/bombers/internal/physics"
)

// lineSteps is how many samples a line query takes per tile.
const lineSteps = 10

// QueryLineObstacle walks the segment from..to and returns the first wall or
// block it enters. The start point itself is not sampled.
func (l *Level) QueryLineObstacle(from, to physics.Vec3) arena.Obstacle {
	d := to.Sub(from)
	length := d.Len2D()
	dir := d.Horizontal()
	step := l.grid / lineSteps

	for t := math.Min(1e-3, length); ; t += step {
		if t > length {
			t = length
		}
		c, r := physics.CellOf(from.Add(dir.Scale(t)), l.grid)
		switch l.TileAt(c, r) {
		case TileWall:
			return arena.Obstacle{Kind: arena.ObstacleIndestructible}
		case TileBlock:
			return arena.Obstacle{
				Kind:     arena.ObstacleDestructible,
				Handle:   makeHandle(handleBlock, l.idx(c, r)),
				Position: physics.CellCenter(c, r, l.grid),
			}
		}
		if t >= length {
			return arena.Obstacle{}
		}
	}
}

// QuerySweepBlocked reports whether a box overlaps a wall, a block or a
// living character that is not ignored.
func (l *Level) QuerySweepBlocked(pos, extent physics.Vec3, ignore []arena.ActorRef) bool {
	if l.solidAt(pos, extent) {
		return true
	}
	blocked := false
	l.eachCharacter(pos, extent, func(ch *object.Character) bool {
		for _, ref := range ignore {
			if ref == arena.CharacterRef(ch.ID) {
				return false
			}
		}
		blocked = true
		return true
	})
	return blocked
}

// DestroyObstacle removes a block or a power-up. Destroyed blocks may leave
// a power-up behind, revealed after a short delay.
func (l *Level) DestroyObstacle(h arena.ObstacleHandle) bool {
	kind, i := splitHandle(h)
	if i < 0 || i >= len(l.tiles) {
		return false
	}

	switch kind {
	case handleBlock:
		if l.tiles[i] != TileBlock {
			return false
		}
		l.tiles[i] = TileEmpty
		if l.rng.Float64() < l.powerupChance {
			l.pending = append(l.pending, pendingDrop{
				idx:  i,
				kind: object.RandomPowerupKind(l.rng),
				left: l.revealDelay,
			})
		}
		return true

	case handlePowerup:
		if _, ok := l.powerups[i]; !ok {
			return false
		}
		delete(l.powerups, i)
		return true
	}
	return false
}

// OverlapBox reports living characters, blocks and power-ups touching a box.
func (l *Level) OverlapBox(center, extent physics.Vec3) []arena.ActorRef {
	var refs []arena.ActorRef
	l.eachCharacter(center, extent, func(ch *object.Character) bool {
		refs = append(refs, arena.CharacterRef(ch.ID))
		return false
	})

	c0, r0, c1, r1 := l.cellRange(center, extent)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if !l.inBounds(c, r) {
				continue
			}
			i := l.idx(c, r)
			if l.tiles[i] == TileBlock {
				refs = append(refs, arena.BlockRef(makeHandle(handleBlock, i)))
			}
			if p, ok := l.powerups[i]; ok {
				refs = append(refs, arena.PowerupRef(p.Handle))
			}
		}
	}
	return refs
}

// Character looks up a character, living or dead.
func (l *Level) Character(id arena.OwnerID) (arena.Character, bool) {
	ch, ok := l.chars[id]
	if !ok {
		return nil, false
	}
	return ch, true
}

// cellRange returns the cells a box strictly overlaps.
func (l *Level) cellRange(center, extent physics.Vec3) (c0, r0, c1, r1 int) {
	const eps = 1e-6
	h := l.grid / 2
	c0 = int(math.Floor((center.X - extent.X + h + eps) / l.grid))
	r0 = int(math.Floor((center.Y - extent.Y + h + eps) / l.grid))
	c1 = int(math.Ceil((center.X+extent.X+h-eps)/l.grid)) - 1
	r1 = int(math.Ceil((center.Y+extent.Y+h-eps)/l.grid)) - 1
	return c0, r0, c1, r1
}

// solidAt reports whether a box overlaps a wall, a block or the outside.
func (l *Level) solidAt(pos, extent physics.Vec3) bool {
	c0, r0, c1, r1 := l.cellRange(pos, extent)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if l.TileAt(c, r) != TileEmpty {
				return true
			}
		}
	}
	return false
}

// eachCharacter calls fn for every living character whose box overlaps the
// given one, until fn returns true.
func (l *Level) eachCharacter(center, extent physics.Vec3, fn func(*object.Character) bool) {
	charExt := physics.Vec3{X: config.CharacterExtent, Y: config.CharacterExtent}
	l.index.QueryBox(
		center.X-extent.X-charExt.X, center.Y-extent.Y-charExt.Y,
		center.X+extent.X+charExt.X, center.Y+extent.Y+charExt.Y,
		func(i int) bool {
			ch := l.charList[i]
			if !ch.Alive || !physics.BoxesOverlap(center, extent, ch.Pos, charExt) {
				return false
			}
			return fn(ch)
		},
	)
}
