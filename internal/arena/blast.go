package arena

import "github.com/tomz197/bombers/internal/physics"

// blastCell is one segment of a planned explosion.
type blastCell struct {
	kind SegmentKind
	pos  physics.Vec3
	// breaks is the destructible obstacle this cell ends on, if any.
	breaks   ObstacleHandle
	hasBreak bool
}

// planBlast walks the four rays out of center and returns the cells that get
// a segment: the center first, then each direction in physics.Cardinals order.
// Rays stop before indestructible obstacles and on destructible ones. Bombs
// never stop a ray.
func (a *Arena) planBlast(center physics.Vec3, power int) []blastCell {
	g := a.rules.GridSize
	cells := make([]blastCell, 0, 1+4*power)
	cells = append(cells, blastCell{kind: SegmentCenter, pos: center})

	for _, dir := range physics.Cardinals {
		for i := 1; i <= power; i++ {
			from := center.Add(dir.Scale(float64(i-1)*g + g/2))
			to := center.Add(dir.Scale(float64(i) * g))

			hit := a.world.QueryLineObstacle(from, to)
			if hit.Kind == ObstacleIndestructible {
				break
			}
			if hit.Kind == ObstacleDestructible {
				cells = append(cells, blastCell{
					kind:     SegmentEnd,
					pos:      physics.ToGrid(hit.Position, g),
					breaks:   hit.Handle,
					hasBreak: true,
				})
				break
			}

			kind := SegmentMiddle
			if i == power {
				kind = SegmentEnd
			}
			cells = append(cells, blastCell{kind: kind, pos: to})
		}
	}
	return cells
}

// spawnBlast creates the segments of b's explosion and destroys the
// obstacles the rays ended on.
func (a *Arena) spawnBlast(b *Bomb) {
	cells := a.planBlast(b.pos, b.power)
	spawned := make([]*Segment, 0, len(cells))

	for _, c := range cells {
		s := a.newSegment(c.kind, c.pos, b)
		spawned = append(spawned, s)
		a.observer.SegmentSpawned(s)

		if !c.hasBreak {
			continue
		}
		ref := BlockRef(c.breaks)
		s.damaged[ref] = struct{}{}
		if a.world.DestroyObstacle(c.breaks) {
			a.log.Debug("block destroyed", "segment", s.id, "handle", c.breaks)
			a.observer.BlockDestroyed(s, c.breaks)
		}
	}

	for _, s := range spawned {
		a.scanOverlaps(s)
	}
}
