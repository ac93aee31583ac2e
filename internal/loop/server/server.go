package server

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/loop/config"
	"github.com/tomz197/bombers/internal/object"
	"github.com/tomz197/bombers/internal/physics"
	"github.com/tomz197/bombers/internal/sched"
	"github.com/tomz197/bombers/internal/world"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendInput(clientID int, input object.Input)
	GetSnapshot() *WorldSnapshot
	SpawnPlayer(clientID int)
}

// Options configures a Server.
type Options struct {
	Rules    arena.Rules
	Level    world.Options
	Logger   *log.Logger
	Observer arena.Observer // Extra gameplay event sink, may be nil
}

// DefaultOptions returns the classic ruleset on the classic level.
func DefaultOptions() Options {
	return Options{
		Rules: arena.DefaultRules(),
		Level: world.DefaultOptions(),
	}
}

// Server owns the match: level, bomb arena and simulation clock. All of them
// are only touched on the tick goroutine, with mu held.
type Server struct {
	arena.NopObserver

	log   *log.Logger
	clock *sched.Scheduler
	level *world.Level
	arena *arena.Arena

	snapshot     atomic.Pointer[WorldSnapshot]
	clients      map[int]*ClientHandle
	byPlayer     map[uuid.UUID]*ClientHandle
	nextClientID int
	inputChan    chan ClientInput
	registerCh   chan *ClientHandle
	unregisterCh chan int
	spawnCh      chan int
	mu           sync.RWMutex

	tick   uint64
	fallen []uuid.UUID // Died this tick, bombs not yet detonated
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string // Display name for this client
	PlayerID uuid.UUID
	Input    object.Input
	EventsCh chan ClientEvent // Events sent to client (death, etc.)

	character *object.Character
	prevBomb  bool
	prevKick  bool
}

// ClientInput represents input from a specific client.
type ClientInput struct {
	ClientID int
	Input    object.Input
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type     ClientEventType
	KilledBy string // For death events
	ScoreAdd int    // For score events
	Powerup  object.PowerupKind
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventPlayerDied ClientEventType = iota
	EventScoreAdd
	EventServerShutdown
	EventArenaFull
	EventPowerup
)

// NewServer creates a new game server.
func NewServer(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	opts.Level.Logger = logger.WithPrefix("level")

	s := &Server{
		log:          logger,
		clock:        sched.New(),
		level:        world.NewLevel(opts.Level),
		clients:      make(map[int]*ClientHandle),
		byPlayer:     make(map[uuid.UUID]*ClientHandle),
		nextClientID: 1,
		inputChan:    make(chan ClientInput, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		spawnCh:      make(chan int, 16),
	}

	var observer arena.Observer = s
	if opts.Observer != nil {
		observer = arena.Observers{s, opts.Observer}
	}
	a, err := arena.New(opts.Rules, s.level, s.clock,
		arena.WithObserver(observer),
		arena.WithLogger(logger.WithPrefix("arena")),
	)
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}
	s.arena = a

	s.createSnapshot()
	return s, nil
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	lastTime := time.Now()
	defer s.stop()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		// Long stalls are not simulated in one giant step.
		s.step(min(delta, 100*time.Millisecond))

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ServerTickTime {
			time.Sleep(config.ServerTickTime - elapsed)
		}
	}
}

// step runs one simulation tick.
func (s *Server) step(dt time.Duration) {
	s.processRegistrations()
	s.collectInputs()

	s.mu.Lock()
	s.tick++
	s.clock.Advance(dt)
	s.updatePlayers(dt.Seconds())
	s.arena.Update(dt.Seconds())
	s.detonateFallen()
	s.level.Update(dt)
	s.mu.Unlock()

	s.createSnapshot()
}

// stop cancels every pending bomb and blast timer.
func (s *Server) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arena.Clear()
	s.log.Info("game server stopped", "ticks", s.tick)
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}
	if username == "" {
		username = fmt.Sprintf("player%d", id)
	}

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		PlayerID: uuid.New(),
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendInput sends input from a client to the server.
func (s *Server) SendInput(clientID int, input object.Input) {
	select {
	case s.inputChan <- ClientInput{ClientID: clientID, Input: input}:
	default:
		// Input channel full, drop input
	}
}

// GetSnapshot returns the current world snapshot.
func (s *Server) GetSnapshot() *WorldSnapshot {
	return s.snapshot.Load()
}

// SpawnPlayer asks the server to put the client's character into the arena.
// The character shows up in the snapshot after the next tick.
func (s *Server) SpawnPlayer(clientID int) {
	select {
	case s.spawnCh <- clientID:
	default:
	}
}

// processRegistrations handles pending client registrations, unregistrations
// and spawn requests, in that order. A client always registers before its
// first spawn request is sent, so draining registrations first means no spawn
// arrives for an unknown client.
func (s *Server) processRegistrations() {
	s.mu.Lock()
	defer s.mu.Unlock()

registrations:
	for {
		select {
		case handle := <-s.registerCh:
			s.clients[handle.ID] = handle
			s.byPlayer[handle.PlayerID] = handle
			s.log.Info("client registered", "client", handle.ID, "name", handle.Username)
		default:
			break registrations
		}
	}

unregistrations:
	for {
		select {
		case clientID := <-s.unregisterCh:
			s.removeClientLocked(clientID)
		default:
			break unregistrations
		}
	}

	for {
		select {
		case clientID := <-s.spawnCh:
			if handle, ok := s.clients[clientID]; ok {
				s.spawnLocked(handle)
			}
		default:
			return
		}
	}
}

// removeClientLocked detonates the client's bombs and drops it from the
// match. Must be called with lock held.
func (s *Server) removeClientLocked(clientID int) {
	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	n := s.arena.DetonateOwned(handle.PlayerID)
	s.arena.Registry().Forget(handle.PlayerID)
	s.level.RemoveCharacter(handle.PlayerID)
	close(handle.EventsCh)
	delete(s.clients, clientID)
	delete(s.byPlayer, handle.PlayerID)
	s.log.Info("client unregistered", "client", clientID, "name", handle.Username, "detonated", n)
}

// spawnLocked puts a client's character on the free spawn point farthest
// from everyone else. Must be called with lock held.
func (s *Server) spawnLocked(handle *ClientHandle) {
	if handle.character != nil && handle.character.Alive {
		return
	}

	alive := 0
	for _, h := range s.clients {
		if h.character != nil && h.character.Alive {
			alive++
		}
	}
	if alive >= config.MaxPlayers {
		notify(handle, ClientEvent{Type: EventArenaFull})
		return
	}

	pos := s.pickSpawn()
	if handle.character == nil {
		handle.character = object.NewCharacter(handle.PlayerID, handle.Username, pos)
		s.level.SpawnCharacter(handle.character)
	} else {
		handle.character.Respawn(pos)
		s.level.Reindex()
	}
	rules := s.arena.Rules()
	s.arena.Registry().SetProfile(handle.PlayerID, arena.OwnerProfile{
		MaxBombs: rules.MaxBombs,
		Power:    rules.DefaultPower,
	})
	handle.prevBomb, handle.prevKick = true, true

	s.log.Info("player spawned", "client", handle.ID, "name", handle.Username, "pos", pos)
}

func (s *Server) pickSpawn() physics.Vec3 {
	points := s.level.SpawnPoints()
	best, bestDist := points[0], -1.0
	for _, p := range points {
		nearest := math.Inf(1)
		for _, h := range s.clients {
			if h.character != nil && h.character.Alive {
				nearest = min(nearest, p.Dist2D(h.character.Pos))
			}
		}
		if nearest > bestDist {
			best, bestDist = p, nearest
		}
	}
	return best
}

// collectInputs gathers all pending inputs from clients.
func (s *Server) collectInputs() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case ci := <-s.inputChan:
			if handle, ok := s.clients[ci.ClientID]; ok {
				handle.Input = ci.Input
			}
		default:
			return
		}
	}
}

// updatePlayers applies movement, bomb placement and kicks. Bomb and kick are
// edge triggered so holding the key does not repeat them.
func (s *Server) updatePlayers(dt float64) {
	ext := physics.Vec3{X: config.CharacterExtent, Y: config.CharacterExtent}

	for _, handle := range s.clients {
		ch := handle.character
		if ch == nil || !ch.Alive {
			continue
		}
		ch.Tick(dt)

		id := handle.PlayerID
		dir := object.MoveDirection(handle.Input)
		pickups := s.level.MoveCharacter(id, dir, dt, func(from, to physics.Vec3) bool {
			return s.arena.BlocksMove(from, to, ext, id)
		})
		for _, p := range pickups {
			profile := s.arena.Registry().Profile(id)
			p.Kind.Apply(ch, &profile)
			s.arena.Registry().SetProfile(id, profile)
			notify(handle, ClientEvent{Type: EventPowerup, Powerup: p.Kind})
		}

		if handle.Input.Bomb && !handle.prevBomb {
			s.arena.PlaceBomb(id, ch.Pos)
		}
		if handle.Input.Kick && !handle.prevKick && ch.CanKick {
			s.arena.Kick(id, ch.Pos, ch.Facing)
		}
		handle.prevBomb = handle.Input.Bomb
		handle.prevKick = handle.Input.Kick
	}
}

// notify sends an event without blocking the tick.
func notify(handle *ClientHandle, ev ClientEvent) {
	select {
	case handle.EventsCh <- ev:
	default:
	}
}
