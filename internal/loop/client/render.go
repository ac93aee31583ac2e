package client

import (
	"math"
	"strconv"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/draw"
	"github.com/tomz197/bombers/internal/loop/config"
	"github.com/tomz197/bombers/internal/loop/server"
	"github.com/tomz197/bombers/internal/object"
	"github.com/tomz197/bombers/internal/physics"
	"github.com/tomz197/bombers/internal/world"
)

// arenaSize returns the arena size in terminal cells, border excluded.
func arenaSize(snap *server.WorldSnapshot) (width, height int) {
	return snap.Cols * config.TileCols, snap.Rows * config.TileRows
}

// arenaView draws one snapshot into a frame region starting at (originCol, originRow).
type arenaView struct {
	frame     *draw.Frame
	snap      *server.WorldSnapshot
	originCol int
	originRow int
	self      int // Client ID whose character blinks while invincible, 0 for none
}

// toCell maps a world position to the top-left terminal cell of the tile
// sprite drawn there.
func (v arenaView) toCell(pos physics.Vec3) (col, row int) {
	g := v.snap.GridSize
	col = int(math.Round(pos.X / g * config.TileCols))
	row = int(math.Round(pos.Y / g * config.TileRows))
	return v.originCol + col, v.originRow + row
}

func (v arenaView) sprite(col, row int, lines [config.TileRows]string, color draw.Color) {
	for i, line := range lines {
		v.frame.Text(col, row+i, line, color)
	}
}

// draw renders tiles, power-ups, segments, bombs and characters, back to front.
func (v arenaView) draw() {
	v.drawTiles()

	for _, p := range v.snap.Powerups {
		col, row := v.toCell(physics.CellCenter(p.Col, p.Row, v.snap.GridSize))
		v.sprite(col, row, [config.TileRows]string{"[" + string(p.Kind.Glyph()) + "]", "    "}, powerupColor(p.Kind))
	}

	for _, b := range v.snap.Bombs {
		col, row := v.toCell(b.Pos)
		secs := int(math.Ceil(b.Remaining.Seconds()))
		color := draw.ColorOrange
		if b.Scale > 1.1 {
			color = draw.ColorRed
		}
		v.sprite(col, row, [config.TileRows]string{"(" + strconv.Itoa(secs) + ")", " ▀▀ "}, color)
	}

	for _, s := range v.snap.Segments {
		col, row := v.toCell(s.Pos)
		v.frame.Fill(col, row, config.TileCols, config.TileRows, draw.ShadeLevel(segmentShade(s.Kind)), segmentColor(s.Kind))
	}

	for i, p := range v.snap.Players {
		if !p.Spawned || !p.Alive {
			continue
		}
		if p.ClientID == v.self && !object.ShouldRenderBlink(p.Invincible, config.PlayerBlinkFrequency) {
			continue
		}
		col, row := v.toCell(p.Pos)
		v.sprite(col, row, playerSprite(p.Name), draw.PlayerColors[i%len(draw.PlayerColors)])
	}
}

func (v arenaView) drawTiles() {
	for r := 0; r < v.snap.Rows; r++ {
		for c := 0; c < v.snap.Cols; c++ {
			col := v.originCol + c*config.TileCols
			row := v.originRow + r*config.TileRows
			switch v.snap.TileAt(c, r) {
			case world.TileWall:
				v.frame.Fill(col, row, config.TileCols, config.TileRows, draw.BlockFull, draw.ColorGray)
			case world.TileBlock:
				v.frame.Fill(col, row, config.TileCols, config.TileRows, draw.BlockDark, draw.ColorBrown)
			}
		}
	}
}

func playerSprite(name string) [config.TileRows]string {
	initial := "?"
	for _, r := range name {
		initial = string(r)
		break
	}
	return [config.TileRows]string{"<" + initial + "> ", "/ \\ "}
}

func powerupColor(k object.PowerupKind) draw.Color {
	switch k {
	case object.PowerupBombUp:
		return draw.ColorBlue
	case object.PowerupFireUp:
		return draw.ColorRed
	case object.PowerupSpeedUp:
		return draw.ColorGreen
	default:
		return draw.ColorMagenta
	}
}

// segmentShade fades the blast from the center out to the tips.
func segmentShade(k arena.SegmentKind) float64 {
	switch k {
	case arena.SegmentCenter:
		return 1
	case arena.SegmentMiddle:
		return 0.75
	default:
		return 0.5
	}
}

func segmentColor(k arena.SegmentKind) draw.Color {
	if k == arena.SegmentCenter {
		return draw.ColorYellow
	}
	return draw.ColorOrange
}
