package world

import (
	"github.com/google/uuid"

	"github.com/tomz197/bombers/internal/loop/config"
	"github.com/tomz197/bombers/internal/object"
	"github.com/tomz197/bombers/internal/physics"
)

// BlockFunc reports whether something other than the level itself, such as a
// bomb, stops a character moving from one position to another.
type BlockFunc func(from, to physics.Vec3) bool

// SpawnCharacter adds a character to the level, replacing one with the same ID.
func (l *Level) SpawnCharacter(ch *object.Character) {
	if _, ok := l.chars[ch.ID]; ok {
		l.RemoveCharacter(ch.ID)
	}
	l.chars[ch.ID] = ch
	l.charList = append(l.charList, ch)
	l.Reindex()
}

// RemoveCharacter drops a character from the level.
func (l *Level) RemoveCharacter(id uuid.UUID) {
	if _, ok := l.chars[id]; !ok {
		return
	}
	delete(l.chars, id)
	for i, ch := range l.charList {
		if ch.ID == id {
			l.charList = append(l.charList[:i], l.charList[i+1:]...)
			break
		}
	}
	l.Reindex()
}

// CharacterByID returns the concrete character.
func (l *Level) CharacterByID(id uuid.UUID) (*object.Character, bool) {
	ch, ok := l.chars[id]
	return ch, ok
}

// Characters returns the characters in join order.
func (l *Level) Characters() []*object.Character {
	return append([]*object.Character(nil), l.charList...)
}

// Reindex rebuilds the character index after positions changed.
func (l *Level) Reindex() {
	l.index.Clear()
	for i, ch := range l.charList {
		l.index.Insert(ch.Pos.X, ch.Pos.Y, i)
	}
}

// MoveCharacter moves a living character along dir for dt seconds, one axis
// at a time so it slides along walls. It returns the power-ups picked up.
func (l *Level) MoveCharacter(id uuid.UUID, dir physics.Vec3, dt float64, blocked BlockFunc) []object.Powerup {
	ch, ok := l.chars[id]
	if !ok || !ch.Alive {
		return nil
	}
	dir = dir.Horizontal()
	if dir.IsZero() {
		return l.pickup(ch)
	}
	ch.Face(dir)

	ext := physics.Vec3{X: config.CharacterExtent, Y: config.CharacterExtent}
	dist := ch.Speed * dt

	moved := false
	for _, axis := range [2]physics.Vec3{{X: dir.X}, {Y: dir.Y}} {
		if axis.IsZero() {
			continue
		}
		to := ch.Pos.Add(axis.Scale(dist))
		if l.solidAt(to, ext) {
			to = l.nudge(ch.Pos, axis, ext)
		}
		if to == ch.Pos {
			continue
		}
		if blocked != nil && blocked(ch.Pos, to) {
			continue
		}
		ch.Pos = to
		moved = true
	}
	if !moved && (dir.X == 0 || dir.Y == 0) {
		l.align(ch, dir, dist, blocked)
	}

	l.Reindex()
	return l.pickup(ch)
}

// nudge moves pos along axis as far as possible without entering a solid
// tile, which lines the character up flush with the obstacle.
func (l *Level) nudge(pos, axis, ext physics.Vec3) physics.Vec3 {
	c, r := physics.CellOf(pos, l.grid)
	center := physics.CellCenter(c, r, l.grid)
	limit := l.grid/2 - config.CharacterExtent

	to := pos
	switch {
	case axis.X > 0:
		to.X = max(pos.X, center.X+limit)
	case axis.X < 0:
		to.X = min(pos.X, center.X-limit)
	case axis.Y > 0:
		to.Y = max(pos.Y, center.Y+limit)
	case axis.Y < 0:
		to.Y = min(pos.Y, center.Y-limit)
	}
	if l.solidAt(to, ext) {
		return pos
	}
	return to
}

// pickup collects the power-up on the character's tile.
func (l *Level) pickup(ch *object.Character) []object.Powerup {
	c, r := physics.CellOf(ch.Pos, l.grid)
	if !l.inBounds(c, r) {
		return nil
	}
	i := l.idx(c, r)
	p, ok := l.powerups[i]
	if !ok {
		return nil
	}
	delete(l.powerups, i)
	l.log.Debug("powerup picked up", "kind", p.Kind, "player", ch.Name)
	return []object.Powerup{*p}
}

// align slides a character that is stuck on a corner toward the center of
// its lane when the tile ahead of that lane is open.
func (l *Level) align(ch *object.Character, dir physics.Vec3, dist float64, blocked BlockFunc) {
	c, r := physics.CellOf(ch.Pos, l.grid)
	dc, dr := int(dir.X), int(dir.Y)
	if l.TileAt(c+dc, r+dr) != TileEmpty {
		return
	}

	center := physics.CellCenter(c, r, l.grid)
	to := ch.Pos
	if dir.X != 0 {
		to.Y += clampAbs(center.Y-ch.Pos.Y, dist)
	} else {
		to.X += clampAbs(center.X-ch.Pos.X, dist)
	}
	if to == ch.Pos {
		return
	}
	ext := physics.Vec3{X: config.CharacterExtent, Y: config.CharacterExtent}
	if l.solidAt(to, ext) || (blocked != nil && blocked(ch.Pos, to)) {
		return
	}
	ch.Pos = to
}

func clampAbs(v, limit float64) float64 {
	return max(-limit, min(limit, v))
}
