// Package spectate streams the match to web spectators as msgpack frames over
// a websocket.
package spectate

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/loop/server"
)

// Frame is one spectator update. Positions are in world units; divide by
// Grid to get cells.
type Frame struct {
	Tick     uint64    `msgpack:"tick"`
	Cols     int       `msgpack:"cols"`
	Rows     int       `msgpack:"rows"`
	Grid     float64   `msgpack:"grid"`
	Tiles    []byte    `msgpack:"tiles"` // Row-major world.Tile values
	Bombs    []Bomb    `msgpack:"bombs"`
	Blasts   []Blast   `msgpack:"blasts"`
	Powerups []Powerup `msgpack:"powerups"`
	Players  []Player  `msgpack:"players"`
	Scores   []Score   `msgpack:"scores"`
}

type Bomb struct {
	X       float64 `msgpack:"x"`
	Y       float64 `msgpack:"y"`
	Power   int     `msgpack:"power"`
	FuseMS  int64   `msgpack:"fuseMs"`
	Moving  bool    `msgpack:"moving"`
	Scale   float64 `msgpack:"scale"`
	OwnerID string  `msgpack:"owner"`
}

type Blast struct {
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Center bool    `msgpack:"center"`
}

type Powerup struct {
	Col  int    `msgpack:"col"`
	Row  int    `msgpack:"row"`
	Kind string `msgpack:"kind"`
}

type Player struct {
	ID    string  `msgpack:"id"`
	Name  string  `msgpack:"name"`
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	Alive bool    `msgpack:"alive"`
}

type Score struct {
	Name   string `msgpack:"name"`
	Kills  int    `msgpack:"kills"`
	Deaths int    `msgpack:"deaths"`
}

// FromSnapshot converts a server snapshot into a spectator frame. Players
// that have not spawned yet are left out.
func FromSnapshot(s *server.WorldSnapshot) Frame {
	f := Frame{
		Tick:  s.Tick,
		Cols:  s.Cols,
		Rows:  s.Rows,
		Grid:  s.GridSize,
		Tiles: make([]byte, len(s.Tiles)),
	}
	for i, t := range s.Tiles {
		f.Tiles[i] = byte(t)
	}
	for _, b := range s.Bombs {
		f.Bombs = append(f.Bombs, Bomb{
			X:       b.Pos.X,
			Y:       b.Pos.Y,
			Power:   b.Power,
			FuseMS:  b.Remaining.Milliseconds(),
			Moving:  b.Moving,
			Scale:   b.Scale,
			OwnerID: b.Owner.String(),
		})
	}
	for _, seg := range s.Segments {
		f.Blasts = append(f.Blasts, Blast{X: seg.Pos.X, Y: seg.Pos.Y, Center: seg.Kind == arena.SegmentCenter})
	}
	for _, p := range s.Powerups {
		f.Powerups = append(f.Powerups, Powerup{Col: p.Col, Row: p.Row, Kind: p.Kind.String()})
	}
	for _, p := range s.Players {
		if !p.Spawned {
			continue
		}
		f.Players = append(f.Players, Player{
			ID:    p.ID.String(),
			Name:  p.Name,
			X:     p.Pos.X,
			Y:     p.Pos.Y,
			Alive: p.Alive,
		})
	}
	for _, e := range s.TopScores {
		f.Scores = append(f.Scores, Score{Name: e.Username, Kills: e.Kills, Deaths: e.Deaths})
	}
	return f
}

// Encode marshals a frame for the wire.
func Encode(f Frame) ([]byte, error) {
	data, err := msgpack.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode frame %d: %w", f.Tick, err)
	}
	return data, nil
}

// Decode unmarshals a frame received from the wire.
func Decode(data []byte) (Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	return f, nil
}
