package server

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/object"
	"github.com/tomz197/bombers/internal/physics"
	"github.com/tomz197/bombers/internal/world"
)

// topScoreCount is how many entries the leaderboard carries.
const topScoreCount = 5

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Kills    int
	Deaths   int
	clientID int // Used for deterministic tie-break when scores are equal
}

// PlayerView is a read-only copy of one connected player.
type PlayerView struct {
	ClientID   int
	ID         uuid.UUID
	Name       string
	Pos        physics.Vec3
	Spawned    bool
	Alive      bool
	Invincible float64
	Kills      int
	Deaths     int
	MaxBombs   int
	Power      int
	Speed      float64
	CanKick    bool
}

// BombView is a read-only copy of an armed bomb.
type BombView struct {
	ID        arena.BombID
	Owner     uuid.UUID
	Pos       physics.Vec3
	Power     int
	Remaining time.Duration
	Moving    bool
	Scale     float64 // Pulse animation scale
}

// SegmentView is a read-only copy of a live blast segment.
type SegmentView struct {
	ID   arena.SegmentID
	Kind arena.SegmentKind
	Pos  physics.Vec3
}

// WorldSnapshot is an immutable snapshot of the world state for rendering.
type WorldSnapshot struct {
	Tick     uint64
	Time     time.Duration
	Cols     int
	Rows     int
	GridSize float64
	Tiles    []world.Tile // Row-major, Cols*Rows

	Bombs     []BombView
	Segments  []SegmentView
	Powerups  []object.Powerup
	Players   []PlayerView
	Clients   int
	TopScores []TopScoreEntry // Top N scores for leaderboard display
}

// TileAt returns the tile at (col, row). Outside the arena is a wall.
func (w *WorldSnapshot) TileAt(col, row int) world.Tile {
	if col < 0 || row < 0 || col >= w.Cols || row >= w.Rows {
		return world.TileWall
	}
	return w.Tiles[row*w.Cols+col]
}

// Player returns the view of the given client's player.
func (w *WorldSnapshot) Player(clientID int) (PlayerView, bool) {
	for _, p := range w.Players {
		if p.ClientID == clientID {
			return p, true
		}
	}
	return PlayerView{}, false
}

// createSnapshot creates an immutable snapshot of the current world state.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.clock.Now()
	snap := &WorldSnapshot{
		Tick:     s.tick,
		Time:     now,
		Cols:     s.level.Cols(),
		Rows:     s.level.Rows(),
		GridSize: s.level.GridSize(),
		Tiles:    s.level.Tiles(),
		Powerups: s.level.Powerups(),
		Clients:  len(s.clients),
	}

	for _, b := range s.arena.Bombs() {
		snap.Bombs = append(snap.Bombs, BombView{
			ID:        b.ID(),
			Owner:     b.Owner(),
			Pos:       b.Position(),
			Power:     b.Power(),
			Remaining: b.Remaining(now),
			Moving:    b.KickState() == arena.KickMoving,
			Scale:     b.PulseScale(now),
		})
	}
	for _, seg := range s.arena.Segments() {
		snap.Segments = append(snap.Segments, SegmentView{
			ID:   seg.ID(),
			Kind: seg.Kind(),
			Pos:  seg.Position(),
		})
	}

	for _, h := range s.clients {
		pv := PlayerView{ClientID: h.ID, ID: h.PlayerID, Name: h.Username}
		if ch := h.character; ch != nil {
			profile := s.arena.Registry().Profile(h.PlayerID)
			pv.Spawned = true
			pv.Pos = ch.Pos
			pv.Alive = ch.Alive
			pv.Invincible = ch.Invincible
			pv.Kills = ch.Kills
			pv.Deaths = ch.Deaths
			pv.MaxBombs = profile.MaxBombs
			pv.Power = profile.Power
			pv.Speed = ch.Speed
			pv.CanKick = ch.CanKick
		}
		snap.Players = append(snap.Players, pv)
	}
	slices.SortFunc(snap.Players, func(a, b PlayerView) int { return cmp.Compare(a.ClientID, b.ClientID) })
	snap.TopScores = topScores(snap.Players)

	s.snapshot.Store(snap)
}

// topScores ranks spawned players by kills, then fewer deaths, then join order.
func topScores(players []PlayerView) []TopScoreEntry {
	var entries []TopScoreEntry
	for _, p := range players {
		if !p.Spawned {
			continue
		}
		entries = append(entries, TopScoreEntry{
			Username: p.Name,
			Kills:    p.Kills,
			Deaths:   p.Deaths,
			clientID: p.ClientID,
		})
	}
	slices.SortFunc(entries, func(a, b TopScoreEntry) int {
		return cmp.Or(
			cmp.Compare(b.Kills, a.Kills),
			cmp.Compare(a.Deaths, b.Deaths),
			cmp.Compare(a.clientID, b.clientID),
		)
	})
	if len(entries) > topScoreCount {
		entries = entries[:topScoreCount]
	}
	return entries
}
