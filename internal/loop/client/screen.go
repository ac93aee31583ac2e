package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/bombers/internal/draw"
	"github.com/tomz197/bombers/internal/loop/config"
	"github.com/tomz197/bombers/internal/loop/server"
)

// styles are the lipgloss styles for overlay screens, bound to the client's
// own renderer so color support follows the remote terminal.
type styles struct {
	box    lipgloss.Style
	title  lipgloss.Style
	hint   lipgloss.Style
	danger lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(1, 3).
			Align(lipgloss.Center),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		hint:   r.NewStyle().Faint(true),
		danger: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.frame.Invalidate()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.frame.Clear()

	snapshot := c.server.GetSnapshot()
	if c.state.GameState == GameStatePlaying && !c.state.isInactive && snapshot != nil {
		c.drawPlaying(snapshot)
	}
	c.frame.Render(c.chunkWriter)

	c.drawOverlay()

	return c.chunkWriter.Flush()
}

// drawPlaying draws the arena with the HUD above it and the leaderboard beside it.
func (c *Client) drawPlaying(snapshot *server.WorldSnapshot) {
	f := c.frame
	aw, ah := arenaSize(snapshot)

	// HUD row, arena border, arena, border.
	if f.Width() < aw+2 || f.Height() < ah+4 {
		msg := fmt.Sprintf("Terminal too small, need %dx%d", aw+2, ah+4)
		f.Text(max(0, (f.Width()-len(msg))/2), f.Height()/2, msg, draw.ColorRed)
		return
	}

	boardWidth := 24
	left := (f.Width() - aw - 2) / 2
	showBoard := f.Width() >= aw+2+boardWidth+2
	if showBoard {
		left = max(0, (f.Width()-aw-2-boardWidth-2)/2)
	}
	top := 2

	c.drawHUD(left, snapshot)
	f.Box(left, top, aw+2, ah+2, draw.ColorGray)
	arenaView{
		frame:     f,
		snap:      snapshot,
		originCol: left + 1,
		originRow: top + 1,
		self:      c.handle.ID,
	}.draw()

	if showBoard {
		c.drawLeaderboard(left+aw+4, top, snapshot)
	}
}

// drawHUD draws the player's stats on the first row.
func (c *Client) drawHUD(col int, snapshot *server.WorldSnapshot) {
	f := c.frame
	score := fmt.Sprintf("Score: %-6d", c.state.Score)
	f.Text(col, 0, score, draw.ColorWhite)

	if !c.state.HasPlayer || !c.state.Player.Spawned {
		f.Text(col+len(score)+2, 0, "spawning...", draw.ColorGray)
		return
	}
	p := c.state.Player
	kick := "no"
	if p.CanKick {
		kick = "yes"
	}
	stats := fmt.Sprintf("Bombs:%d  Fire:%d  Speed:%.0f  Kick:%s  K/D:%d/%d",
		p.MaxBombs, p.Power, p.Speed, kick, p.Kills, p.Deaths)
	f.Text(col+len(score)+2, 0, stats, draw.ColorDefault)

	if c.state.LastPowerup != "" {
		f.Text(col, 1, "+ "+c.state.LastPowerup, draw.ColorGreen)
	}
	players := fmt.Sprintf("Players: %d", snapshot.Clients)
	f.Text(f.Width()-len(players)-1, 1, players, draw.ColorGray)
}

// drawLeaderboard draws the top scores in a box.
func (c *Client) drawLeaderboard(col, row int, snapshot *server.WorldSnapshot) {
	f := c.frame
	f.Box(col, row, 24, len(snapshot.TopScores)+3, draw.ColorGray)
	f.Text(col+2, row+1, "Kills  Deaths  Name", draw.ColorYellow)
	for i, e := range snapshot.TopScores {
		color := draw.ColorDefault
		if e.Username == c.handle.Username {
			color = draw.ColorCyan
		}
		f.Text(col+2, row+2+i, fmt.Sprintf("%5d  %6d  %-.8s", e.Kills, e.Deaths, e.Username), color)
	}
}

// drawOverlay draws the screen for every state except active play.
func (c *Client) drawOverlay() {
	var body string
	switch {
	case c.state.GameState == GameStateShutdown:
		body = c.shutdownScreen()
	case c.state.isInactive:
		body = c.inactivityScreen()
	case c.state.GameState == GameStateStart:
		body = c.startScreen()
	case c.state.GameState == GameStateDead:
		body = c.deadScreen()
	default:
		return
	}
	c.writeCentered(c.styles.box.Render(body))
}

// writeCentered writes a multi-line block centered in the render area.
func (c *Client) writeCentered(block string) {
	lines := strings.Split(block, "\n")
	width := lipgloss.Width(block)
	col := max(1, (c.frame.Width()-width)/2+1)
	row := max(1, (c.frame.Height()-len(lines))/2+1)
	for i, line := range lines {
		c.chunkWriter.WriteAt(col, row+i, line)
	}
}

func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// startScreen builds the title screen.
func (c *Client) startScreen() string {
	// ASCII art title (figlet "small" font)
	title := c.styles.title.Render(strings.Join([]string{
		` ___  ___  __  __ ___ ___ ___  ___ `,
		`| _ )/ _ \|  \/  | _ ) __| _ \/ __|`,
		`| _ \ (_) | |\/| | _ \ _||   /\__ \`,
		`|___/\___/|_|  |_|___/___|_|_\|___/`,
	}, "\n"))

	controls := strings.Join([]string{
		"WASD / arrows . . . Move",
		"SPACE  . . .  Drop bomb",
		"E  . . . . . Kick bomb",
		"Q  . . . . . . . . Quit",
	}, "\n")

	prompt := " "
	if blinkOn() {
		prompt = ">>  Press SPACE to Start  <<"
	}
	if c.state.arenaFull {
		prompt = c.styles.danger.Render(fmt.Sprintf("Arena is full (%d players), try again soon", config.MaxPlayers))
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		"~ Multiplayer bombers over SSH ~",
		"",
		controls,
		"",
		prompt,
		"",
		c.styles.hint.Render("playing as "+c.username),
	)
}

// deadScreen builds the death screen.
func (c *Client) deadScreen() string {
	killedBy := "You were blown up"
	if c.state.KilledBy != "" {
		killedBy = "Blown up by " + c.state.KilledBy
	}

	prompt := " "
	if c.state.RespawnTimeRemaining > 0 {
		prompt = fmt.Sprintf("Respawn in %.1f seconds...", c.state.RespawnTimeRemaining)
	} else if blinkOn() {
		prompt = ">>  Press SPACE to Respawn  <<"
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		c.styles.danger.Render("YOU DIED"),
		"",
		killedBy,
		fmt.Sprintf("Score: %d", c.state.Score),
		"",
		prompt,
	)
}

// inactivityScreen builds the inactivity warning.
func (c *Client) inactivityScreen() string {
	left := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	return lipgloss.JoinVertical(lipgloss.Center,
		c.styles.title.Render("INACTIVITY WARNING"),
		"",
		fmt.Sprintf("You will be disconnected in %d seconds.", max(0, left)),
		"",
		c.styles.hint.Render("Press any key to continue"),
	)
}

// shutdownScreen builds the server shutdown notification.
func (c *Client) shutdownScreen() string {
	remaining := int(c.state.shutdownTimer) + 1
	return lipgloss.JoinVertical(lipgloss.Center,
		c.styles.danger.Render("SERVER SHUTTING DOWN"),
		"",
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
		"",
		fmt.Sprintf("Disconnecting in %d seconds...", remaining),
		c.styles.hint.Render("Press Q to disconnect now"),
	)
}
