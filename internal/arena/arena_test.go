package arena_test

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/arena/mocks"
	"github.com/tomz197/bombers/internal/physics"
	"github.com/tomz197/bombers/internal/sched"
)

func TestNewRejectsBadConfig(t *testing.T) {
	bad := arena.DefaultRules()
	bad.GridSize = 0
	bad.MaxBombs = 0

	if _, err := arena.New(bad, newFakeWorld(), sched.New()); !errors.Is(err, arena.ErrInvalidRules) {
		t.Errorf("New with invalid rules: err = %v, want ErrInvalidRules", err)
	}
	if _, err := arena.New(arena.DefaultRules(), nil, sched.New()); !errors.Is(err, arena.ErrMissingCollaborator) {
		t.Errorf("New without world: err = %v, want ErrMissingCollaborator", err)
	}
	if _, err := arena.New(arena.DefaultRules(), newFakeWorld(), nil); !errors.Is(err, arena.ErrMissingCollaborator) {
		t.Errorf("New without clock: err = %v, want ErrMissingCollaborator", err)
	}
	if err := arena.DefaultRules().Validate(); err != nil {
		t.Errorf("DefaultRules().Validate() = %v", err)
	}
}

func TestChainReactionWaitsForDelay(t *testing.T) {
	rec := &recorder{}
	h := newHarness(t, arena.DefaultRules(), rec)

	a := h.place(newOwner(), 0, 0, 1)
	h.run(500 * time.Millisecond)
	b := h.place(newOwner(), 1, 0, 1)

	h.run(2500 * time.Millisecond)
	if a.State() != arena.BombDestroyed {
		t.Fatalf("A state = %v, want destroyed", a.State())
	}
	if b.State() != arena.BombArmed {
		t.Fatalf("B went off with A, state = %v", b.State())
	}

	h.run(80 * time.Millisecond)
	if b.State() != arena.BombArmed {
		t.Fatalf("B went off before the chain delay, state = %v", b.State())
	}
	h.run(30 * time.Millisecond)
	if b.State() != arena.BombDestroyed {
		t.Fatalf("B state = %v after chain delay, want destroyed", b.State())
	}
	if rec.chained != 1 {
		t.Errorf("BombChainExploded = %d, want 1", rec.chained)
	}
	if rec.exploded != 2 {
		t.Errorf("BombExploded = %d, want 2", rec.exploded)
	}
}

func TestChainOutlivesSegment(t *testing.T) {
	rules := arena.DefaultRules()
	rules.ChainDelay = time.Second
	h := newHarness(t, rules, nil)

	a := h.place(newOwner(), 0, 0, 1)
	b := h.place(newOwner(), 0, 1, 1)
	a.ForceExplode()

	h.run(600 * time.Millisecond)
	if len(h.arena.Segments()) != 0 {
		t.Fatal("segments outlived their lifetime")
	}
	if b.State() != arena.BombArmed {
		t.Fatalf("B state = %v, want armed", b.State())
	}
	h.run(500 * time.Millisecond)
	if b.State() != arena.BombDestroyed {
		t.Errorf("B state = %v, want destroyed by the chain", b.State())
	}
}

func TestChainSkipsBombThatAlreadyWentOff(t *testing.T) {
	rec := &recorder{}
	h := newHarness(t, arena.DefaultRules(), rec)

	a := h.place(newOwner(), 0, 0, 1)
	b := h.place(newOwner(), 1, 0, 1)
	a.ForceExplode()
	b.ForceExplode()
	h.run(time.Second)

	if rec.chained != 0 {
		t.Errorf("BombChainExploded = %d for a bomb that was already gone", rec.chained)
	}
	if rec.exploded != 2 {
		t.Errorf("BombExploded = %d, want 2", rec.exploded)
	}
}

func TestDetonateOwned(t *testing.T) {
	h := newHarness(t, arena.DefaultRules(), nil)
	owner := newOwner()
	h.arena.Registry().SetProfile(owner, arena.OwnerProfile{MaxBombs: 2, Power: 1})
	h.place(owner, 0, 0, 1)
	h.run(200 * time.Millisecond)
	h.place(owner, 3, 3, 1)
	other := h.place(newOwner(), -3, 0, 1)

	if n := h.arena.DetonateOwned(owner); n != 2 {
		t.Errorf("DetonateOwned = %d, want 2", n)
	}
	if other.State() != arena.BombArmed {
		t.Errorf("other player's bomb state = %v, want armed", other.State())
	}
	if got := h.arena.Bombs(); len(got) != 1 || got[0] != other {
		t.Errorf("Bombs() = %d bombs, want only the other player's", len(got))
	}
}

func TestClearCancelsTimers(t *testing.T) {
	ctrl := gomock.NewController(t)
	obs := mocks.NewMockObserver(ctrl)
	obs.EXPECT().BombPlaced(gomock.Any()).Times(2)
	obs.EXPECT().SegmentSpawned(gomock.Any()).Times(5)
	obs.EXPECT().BombExploded(gomock.Any()).Times(1)

	h := newHarness(t, arena.DefaultRules(), obs)
	a := h.place(newOwner(), 0, 0, 1)
	h.place(newOwner(), 1, 0, 1)
	a.ForceExplode()

	h.arena.Clear()
	if n := h.clock.Pending(); n != 0 {
		t.Errorf("Pending after Clear = %d, want 0", n)
	}
	h.run(10 * time.Second)

	if len(h.arena.Bombs()) != 0 || len(h.arena.Segments()) != 0 {
		t.Error("entities left after Clear")
	}
}

func TestBlocksCharacter(t *testing.T) {
	owner, other := newOwner(), newOwner()
	h := newHarness(t, arena.DefaultRules(), nil)
	h.place(owner, 2, 2, 1)

	pos := physics.Vec3{X: 200, Y: 150}
	if h.arena.BlocksCharacter(pos, charExtent, owner) {
		t.Error("fresh bomb blocks its owner")
	}
	if !h.arena.BlocksCharacter(pos, charExtent, other) {
		t.Error("bomb does not block another player")
	}
	if h.arena.BlocksCharacter(physics.Vec3{X: 200, Y: 50}, charExtent, other) {
		t.Error("bomb blocks a player in the next cell")
	}
}
