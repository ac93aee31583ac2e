package server

import (
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/tomz197/bombers/internal/arena/mocks"
	"github.com/tomz197/bombers/internal/object"
	"github.com/tomz197/bombers/internal/physics"
)

const tick = 10 * time.Millisecond

func newTestServer(t *testing.T) *Server {
	t.Helper()
	opts := DefaultOptions()
	opts.Level.BlockDensity = 0
	s, err := NewServer(opts)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func (s *Server) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		s.step(tick)
	}
}

// join registers and spawns a client.
func (s *Server) join(t *testing.T, name string) *ClientHandle {
	t.Helper()
	h := s.RegisterClient(name)
	s.SpawnPlayer(h.ID)
	s.step(tick)
	if h.character == nil {
		t.Fatalf("%s was not spawned", name)
	}
	return h
}

// press releases every key for a tick and then holds in.
func (s *Server) press(h *ClientHandle, in object.Input) {
	s.SendInput(h.ID, object.Input{})
	s.step(tick)
	s.SendInput(h.ID, in)
	s.step(tick)
}

func drain(ch chan ClientEvent) []ClientEvent {
	var out []ClientEvent
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestNewServerRejectsBadRules(t *testing.T) {
	opts := DefaultOptions()
	opts.Rules.GridSize = 0
	if _, err := NewServer(opts); err == nil {
		t.Fatal("expected error for zero grid size")
	}
}

func TestSpawnUsesDistinctCorners(t *testing.T) {
	s := newTestServer(t)
	a := s.join(t, "alice")
	b := s.join(t, "bob")

	if a.character.Pos == b.character.Pos {
		t.Fatalf("both players spawned at %v", a.character.Pos)
	}

	snap := s.GetSnapshot()
	if snap.Clients != 2 || len(snap.Players) != 2 {
		t.Fatalf("clients=%d players=%d, want 2 and 2", snap.Clients, len(snap.Players))
	}
	if p, ok := snap.Player(a.ID); !ok || !p.Alive || p.MaxBombs != 1 || p.Power != 1 {
		t.Errorf("alice view = %+v", p)
	}
}

func TestLongUsernameTruncated(t *testing.T) {
	s := newTestServer(t)
	h := s.RegisterClient("a-very-long-username-indeed")
	if len(h.Username) > 16 {
		t.Errorf("username %q not truncated", h.Username)
	}
	if h2 := s.RegisterClient(""); h2.Username == "" {
		t.Error("empty username not replaced")
	}
}

func TestBombPlacementIsEdgeTriggered(t *testing.T) {
	s := newTestServer(t)
	a := s.join(t, "alice")

	s.press(a, object.Input{Bomb: true})
	s.run(200 * time.Millisecond) // key still held

	snap := s.GetSnapshot()
	if len(snap.Bombs) != 1 {
		t.Fatalf("bombs = %d, want 1", len(snap.Bombs))
	}
	if got := snap.Bombs[0].Pos; got != a.character.Pos {
		t.Errorf("bomb at %v, want %v", got, a.character.Pos)
	}
	if snap.Bombs[0].Remaining <= 0 || snap.Bombs[0].Remaining > 3*time.Second {
		t.Errorf("remaining = %v", snap.Bombs[0].Remaining)
	}
}

func TestKillScoresForBombOwner(t *testing.T) {
	s := newTestServer(t)
	a := s.join(t, "alice")
	b := s.join(t, "bob")

	// Put bob right next to alice's spawn.
	s.mu.Lock()
	b.character.Pos = a.character.Pos.Add(physics.East.Scale(s.level.GridSize()))
	b.character.Invincible = 0
	s.level.Reindex()
	s.mu.Unlock()

	s.press(a, object.Input{Bomb: true})
	s.run(3100 * time.Millisecond)

	if b.character.Alive {
		t.Fatal("bob survived the blast")
	}
	if !a.character.Alive {
		t.Fatal("alice died to her own bomb")
	}
	if a.character.Kills != 1 || b.character.Deaths != 1 {
		t.Errorf("kills=%d deaths=%d, want 1 and 1", a.character.Kills, b.character.Deaths)
	}

	var died bool
	for _, ev := range drain(b.EventsCh) {
		if ev.Type == EventPlayerDied {
			died = true
			if ev.KilledBy != "alice" {
				t.Errorf("KilledBy = %q, want alice", ev.KilledBy)
			}
		}
	}
	if !died {
		t.Error("bob got no death event")
	}

	var score int
	for _, ev := range drain(a.EventsCh) {
		if ev.Type == EventScoreAdd {
			score += ev.ScoreAdd
		}
	}
	if score != 100 {
		t.Errorf("alice score = %d, want 100", score)
	}

	top := s.GetSnapshot().TopScores
	if len(top) != 2 || top[0].Username != "alice" {
		t.Errorf("top scores = %+v", top)
	}
}

func TestRespawnAfterDeath(t *testing.T) {
	s := newTestServer(t)
	a := s.join(t, "alice")

	s.mu.Lock()
	a.character.Invincible = 0
	a.character.TakeBombDamage(1, 0)
	s.mu.Unlock()

	s.SpawnPlayer(a.ID)
	s.step(tick)

	if !a.character.Alive || a.character.Invincible <= 0 {
		t.Errorf("respawned character = %+v", a.character)
	}
}

func TestUnregisterDetonatesBombs(t *testing.T) {
	s := newTestServer(t)
	a := s.join(t, "alice")

	s.press(a, object.Input{Bomb: true})
	if n := len(s.GetSnapshot().Bombs); n != 1 {
		t.Fatalf("bombs = %d, want 1", n)
	}

	s.UnregisterClient(a.ID)
	s.step(tick)

	snap := s.GetSnapshot()
	if len(snap.Bombs) != 0 {
		t.Errorf("bombs = %d after disconnect, want 0", len(snap.Bombs))
	}
	if len(snap.Segments) == 0 {
		t.Error("disconnect did not detonate the bomb")
	}
	if snap.Clients != 0 || len(snap.Players) != 0 {
		t.Errorf("clients=%d players=%d after disconnect", snap.Clients, len(snap.Players))
	}
	if _, ok := <-a.EventsCh; ok {
		t.Error("events channel not closed")
	}
}

func TestShutdownNotifiesClients(t *testing.T) {
	s := newTestServer(t)
	a := s.join(t, "alice")

	s.Shutdown(10 * time.Millisecond)

	select {
	case ev := <-a.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Errorf("event = %v, want shutdown", ev.Type)
		}
	default:
		t.Error("no shutdown event")
	}
}

func TestArenaFull(t *testing.T) {
	s := newTestServer(t)
	for i := range 4 {
		s.join(t, string(rune('a'+i)))
	}
	late := s.RegisterClient("late")
	s.SpawnPlayer(late.ID)
	s.step(tick)

	if late.character != nil {
		t.Fatal("fifth player spawned")
	}
	evs := drain(late.EventsCh)
	if len(evs) != 1 || evs[0].Type != EventArenaFull {
		t.Errorf("events = %+v, want arena full", evs)
	}
}

func TestJoinBurstSpawnsEveryone(t *testing.T) {
	s := newTestServer(t)
	var hs []*ClientHandle
	for i := range 4 {
		h := s.RegisterClient(string(rune('a' + i)))
		s.SpawnPlayer(h.ID)
		hs = append(hs, h)
	}
	s.step(tick)

	seen := map[physics.Vec3]bool{}
	for _, h := range hs {
		if h.character == nil {
			t.Fatalf("%s was not spawned", h.Username)
		}
		if seen[h.character.Pos] {
			t.Errorf("%s shares spawn %v", h.Username, h.character.Pos)
		}
		seen[h.character.Pos] = true
	}
	if n := len(s.GetSnapshot().Players); n != 4 {
		t.Errorf("players = %d, want 4", n)
	}
}

func TestDeathDetonatesOwnBombs(t *testing.T) {
	s := newTestServer(t)
	a := s.join(t, "alice")
	b := s.join(t, "bob")

	// Alice arms first so her bomb goes off while bob's is still ticking.
	s.press(a, object.Input{Bomb: true})
	s.run(500 * time.Millisecond)
	s.press(b, object.Input{Bomb: true})
	if n := len(s.GetSnapshot().Bombs); n != 2 {
		t.Fatalf("bombs = %d, want 2", n)
	}

	s.mu.Lock()
	b.character.Pos = a.character.Pos.Add(physics.East.Scale(s.level.GridSize()))
	b.character.Invincible = 0
	s.level.Reindex()
	s.mu.Unlock()

	for elapsed := time.Duration(0); b.character.Alive && elapsed < 4*time.Second; elapsed += tick {
		s.step(tick)
	}
	if b.character.Alive {
		t.Fatal("bob survived the blast")
	}

	snap := s.GetSnapshot()
	for _, bomb := range snap.Bombs {
		if bomb.Owner == b.PlayerID {
			t.Fatalf("bob's bomb still armed with %v left", bomb.Remaining)
		}
	}
	if !a.character.Alive {
		t.Error("bob's far bomb reached alice")
	}
}

func TestExtraObserverSeesGameplay(t *testing.T) {
	ctrl := gomock.NewController(t)
	obs := mocks.NewMockObserver(ctrl)
	obs.EXPECT().BombPlaced(gomock.Any()).Times(1)

	opts := DefaultOptions()
	opts.Level.BlockDensity = 0
	opts.Observer = obs
	s, err := NewServer(opts)
	if err != nil {
		t.Fatal(err)
	}

	a := s.join(t, "alice")
	s.press(a, object.Input{Bomb: true})
}
