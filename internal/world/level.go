// Package world is the tile arena the bomb core plays on: indestructible
// walls, destructible blocks, power-up drops and the characters walking
// between them. Level implements arena.World.
package world

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/loop/config"
	"github.com/tomz197/bombers/internal/object"
	"github.com/tomz197/bombers/internal/physics"
)

// Tile is the static content of a grid cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileWall       // Indestructible
	TileBlock      // Destructible
)

// Obstacle handles are the handle kind in the high 32 bits and the tile
// index in the low 32 bits.
const (
	handleBlock   = 1
	handlePowerup = 2
)

func makeHandle(kind, idx int) arena.ObstacleHandle {
	return arena.ObstacleHandle(uint64(kind)<<32 | uint64(uint32(idx)))
}

func splitHandle(h arena.ObstacleHandle) (kind, idx int) {
	return int(uint64(h) >> 32), int(uint32(h))
}

// Options configures level generation.
type Options struct {
	Cols, Rows    int
	GridSize      float64
	Seed          uint64
	BlockDensity  float64
	PowerupChance float64
	RevealDelay   time.Duration
	Logger        *log.Logger
}

// DefaultOptions returns the classic arena layout.
func DefaultOptions() Options {
	return Options{
		Cols:          config.ArenaCols,
		Rows:          config.ArenaRows,
		GridSize:      config.GridSize,
		Seed:          1,
		BlockDensity:  config.BlockDensity,
		PowerupChance: config.PowerupSpawnChance,
		RevealDelay:   config.PowerupRevealDelay,
	}
}

type pendingDrop struct {
	idx  int
	kind object.PowerupKind
	left time.Duration
}

// Level is a rectangular tile arena. Cell (c, r) is centered at
// (c*GridSize, r*GridSize). Not safe for concurrent use.
type Level struct {
	cols, rows int
	grid       float64
	tiles      []Tile

	powerups map[int]*object.Powerup
	pending  []pendingDrop

	chars    map[uuid.UUID]*object.Character
	charList []*object.Character
	index    *physics.SpatialGrid

	rng           *rand.Rand
	powerupChance float64
	revealDelay   time.Duration
	log           *log.Logger
}

var _ arena.World = (*Level)(nil)

// NewLevel generates a level: walls around the border and on every even
// cell, random blocks elsewhere, and the spawn corners kept clear.
func NewLevel(opts Options) *Level {
	if opts.Cols < 5 {
		opts.Cols = 5
	}
	if opts.Rows < 5 {
		opts.Rows = 5
	}
	if opts.GridSize <= 0 {
		opts.GridSize = config.GridSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := opts.GridSize
	l := &Level{
		cols:          opts.Cols,
		rows:          opts.Rows,
		grid:          g,
		tiles:         make([]Tile, opts.Cols*opts.Rows),
		powerups:      make(map[int]*object.Powerup),
		chars:         make(map[uuid.UUID]*object.Character),
		index:         physics.NewSpatialGrid(-g/2, -g/2, float64(opts.Cols)*g, float64(opts.Rows)*g, g),
		rng:           rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		powerupChance: opts.PowerupChance,
		revealDelay:   opts.RevealDelay,
		log:           logger,
	}
	l.generate(opts.BlockDensity)
	return l
}

func (l *Level) generate(density float64) {
	safe := make(map[int]bool)
	for _, p := range l.spawnCells() {
		c, r := p[0], p[1]
		for _, d := range [][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			if l.inBounds(c+d[0], r+d[1]) {
				safe[l.idx(c+d[0], r+d[1])] = true
			}
		}
	}

	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			i := l.idx(c, r)
			switch {
			case c == 0 || r == 0 || c == l.cols-1 || r == l.rows-1:
				l.tiles[i] = TileWall
			case c%2 == 0 && r%2 == 0:
				l.tiles[i] = TileWall
			case safe[i]:
				l.tiles[i] = TileEmpty
			case l.rng.Float64() < density:
				l.tiles[i] = TileBlock
			}
		}
	}
}

func (l *Level) spawnCells() [][2]int {
	return [][2]int{
		{1, 1},
		{l.cols - 2, l.rows - 2},
		{l.cols - 2, 1},
		{1, l.rows - 2},
	}
}

func (l *Level) idx(c, r int) int { return r*l.cols + c }

func (l *Level) inBounds(c, r int) bool {
	return c >= 0 && r >= 0 && c < l.cols && r < l.rows
}

func (l *Level) Cols() int         { return l.cols }
func (l *Level) Rows() int         { return l.rows }
func (l *Level) GridSize() float64 { return l.grid }

// TileAt returns the tile at a cell. Cells outside the level are walls.
func (l *Level) TileAt(c, r int) Tile {
	if !l.inBounds(c, r) {
		return TileWall
	}
	return l.tiles[l.idx(c, r)]
}

// SetTile overwrites a tile. Used by tests and editors.
func (l *Level) SetTile(c, r int, t Tile) {
	if l.inBounds(c, r) {
		l.tiles[l.idx(c, r)] = t
	}
}

// Tiles returns a copy of the tile grid in row-major order.
func (l *Level) Tiles() []Tile {
	return append([]Tile(nil), l.tiles...)
}

// Powerups returns the visible power-ups.
func (l *Level) Powerups() []object.Powerup {
	out := make([]object.Powerup, 0, len(l.powerups))
	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			if p, ok := l.powerups[l.idx(c, r)]; ok {
				out = append(out, *p)
			}
		}
	}
	return out
}

// PlacePowerup puts a power-up on an empty tile.
func (l *Level) PlacePowerup(c, r int, kind object.PowerupKind) bool {
	if l.TileAt(c, r) != TileEmpty {
		return false
	}
	i := l.idx(c, r)
	l.powerups[i] = &object.Powerup{Kind: kind, Col: c, Row: r, Handle: makeHandle(handlePowerup, i)}
	return true
}

// SpawnPoints returns the corner spawn positions in fill order.
func (l *Level) SpawnPoints() []physics.Vec3 {
	cells := l.spawnCells()
	out := make([]physics.Vec3, len(cells))
	for i, p := range cells {
		out[i] = physics.CellCenter(p[0], p[1], l.grid)
	}
	return out
}

// Update reveals power-ups dropped by destroyed blocks once the blast that
// uncovered them has faded.
func (l *Level) Update(dt time.Duration) {
	kept := l.pending[:0]
	for _, p := range l.pending {
		p.left -= dt
		if p.left > 0 {
			kept = append(kept, p)
			continue
		}
		c, r := p.idx%l.cols, p.idx/l.cols
		if l.PlacePowerup(c, r, p.kind) {
			l.log.Debug("powerup revealed", "kind", p.kind, "col", c, "row", r)
		}
	}
	l.pending = kept
}
