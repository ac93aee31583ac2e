package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/bombers/internal/draw"
	"github.com/tomz197/bombers/internal/input"
	"github.com/tomz197/bombers/internal/loop/config"
	"github.com/tomz197/bombers/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	frame        *draw.Frame
	chunkWriter  *draw.ChunkWriter // Accumulates output for chunked writes
	styles       styles
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	offsetCol    int
	offsetRow    int
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	handle := gs.RegisterClient(opts.Username)
	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	// Create the frame with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		frame:        draw.NewFrame(renderWidth, renderHeight),
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		styles:       newStyles(lipgloss.NewRenderer(w)),
		reader:       r,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     handle.Username,
		termSizeFunc: termSizeFunc,
		offsetCol:    offsetCol,
		offsetRow:    offsetRow,
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.tick()

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// tick advances the client state by one frame without drawing.
func (c *Client) tick() {
	c.processInput()
	c.processServerEvents()
	c.updateScreen()

	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState()
	case GameStatePlaying:
		c.updatePlayingState()
	case GameStateDead:
		c.updateDeadState()
	case GameStateShutdown:
		c.updateShutdownState()
	}
}

// processInput reads input and sends it to the server.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}

	// Send input to server if playing
	if c.state.GameState == GameStatePlaying {
		c.server.SendInput(c.handle.ID, c.state.Input)
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventPlayerDied:
				c.state.GameState = GameStateDead
				c.state.KilledBy = event.KilledBy
				c.state.RespawnTimeRemaining = config.RespawnDelaySeconds
			case server.EventScoreAdd:
				c.state.Score += event.ScoreAdd
			case server.EventPowerup:
				c.state.LastPowerup = event.Powerup.String()
				c.state.powerupTimer = 2
			case server.EventArenaFull:
				c.state.arenaFull = true
				c.state.GameState = GameStateStart
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual cells
// outside the new render area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.frame.Width() || renderHeight != c.frame.Height() ||
		offsetCol != c.offsetCol || offsetRow != c.offsetRow {
		draw.ClearScreen(c.writer)
		c.frame.Resize(renderWidth, renderHeight)
		c.offsetCol, c.offsetRow = offsetCol, offsetRow
		c.chunkWriter.SetOffset(offsetCol, offsetRow)
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol, offsetRow = draw.CenterOffset(termWidth, termHeight, renderWidth, renderHeight)
	return
}

// updateStartState handles the start screen.
func (c *Client) updateStartState() {
	if c.state.Input.Bomb || c.state.Input.Enter {
		c.startGame()
	}
}

// updatePlayingState handles the playing state.
func (c *Client) updatePlayingState() {
	if c.state.powerupTimer > 0 {
		c.state.powerupTimer -= c.state.delta.Seconds()
		if c.state.powerupTimer <= 0 {
			c.state.LastPowerup = ""
		}
	}

	snapshot := c.server.GetSnapshot()
	if snapshot == nil {
		return
	}
	c.state.Player, c.state.HasPlayer = snapshot.Player(c.handle.ID)
}

// updateDeadState handles the death screen.
func (c *Client) updateDeadState() {
	if c.state.RespawnTimeRemaining > 0 {
		c.state.RespawnTimeRemaining -= c.state.delta.Seconds()
		if c.state.RespawnTimeRemaining < 0 {
			c.state.RespawnTimeRemaining = 0
		}
	}
	if (c.state.Input.Bomb || c.state.Input.Enter) && c.state.RespawnTimeRemaining <= 0 {
		c.startGame()
	}
}

// startGame asks the server for a (re)spawn.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)

	if c.state.GameState == GameStateStart {
		c.state.Score = 0
	}
	c.state.arenaFull = false
	c.state.KilledBy = ""

	c.server.SpawnPlayer(c.handle.ID)
	c.state.GameState = GameStatePlaying
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
