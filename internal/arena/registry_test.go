package arena_test

import (
	"testing"
	"time"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/physics"
)

func TestRegistryCapacity(t *testing.T) {
	h := newHarness(t, arena.DefaultRules(), nil)
	reg := h.arena.Registry()
	owner := newOwner()

	b := h.place(owner, 0, 0, 1)
	h.run(200 * time.Millisecond)
	if _, ok := h.arena.PlaceBomb(owner, physics.Vec3{X: 300}); ok {
		t.Fatal("placed over capacity")
	}
	if got := reg.LiveCount(owner); got != 1 {
		t.Errorf("LiveCount = %d, want 1", got)
	}

	b.ForceExplode()
	b.ForceExplode()
	if got := reg.LiveCount(owner); got != 0 {
		t.Errorf("LiveCount after explosion = %d, want 0", got)
	}
	if _, ok := h.arena.PlaceBomb(owner, physics.Vec3{X: 300}); !ok {
		t.Error("placement rejected after the bomb exploded")
	}
}

func TestRegistryProfile(t *testing.T) {
	h := newHarness(t, arena.DefaultRules(), nil)
	reg := h.arena.Registry()
	owner := newOwner()

	if p := reg.Profile(owner); p.MaxBombs != 1 || p.Power != 1 {
		t.Errorf("default profile = %+v", p)
	}
	reg.SetProfile(owner, arena.OwnerProfile{MaxBombs: 3, Power: 4})

	for i := range 3 {
		b, ok := h.arena.PlaceBomb(owner, physics.CellCenter(i*2, 0, grid))
		if !ok {
			t.Fatalf("placement %d rejected", i)
		}
		if b.Power() != 4 {
			t.Errorf("bomb %d power = %d, want 4", i, b.Power())
		}
		h.run(200 * time.Millisecond)
	}
	if _, ok := h.arena.PlaceBomb(owner, physics.Vec3{Y: 300}); ok {
		t.Error("fourth bomb placed with MaxBombs 3")
	}

	reg.Forget(owner)
	if p := reg.Profile(owner); p.MaxBombs != 1 {
		t.Errorf("profile after Forget = %+v, want defaults", p)
	}
	if got := reg.LiveCount(owner); got != 3 {
		t.Errorf("LiveCount after Forget = %d, want 3", got)
	}
}

func TestRegistryCanPlaceAt(t *testing.T) {
	owner, other := newOwner(), newOwner()

	tests := []struct {
		name  string
		setup func(h *harness)
		pos   physics.Vec3
		want  bool
	}{
		{"open floor", func(*harness) {}, physics.Vec3{X: 12, Y: -30}, true},
		{"wall", func(h *harness) { h.world.wall(1, 0) }, physics.Vec3{X: 90}, false},
		{"block", func(h *harness) { h.world.block(1, 0) }, physics.Vec3{X: 110}, false},
		{"owner standing there", func(h *harness) {
			h.world.chars[owner] = &dummy{pos: physics.Vec3{X: 5}}
		}, physics.Vec3{}, true},
		{"other player standing there", func(h *harness) {
			h.world.chars[other] = &dummy{pos: physics.Vec3{X: 5}}
		}, physics.Vec3{}, false},
		{"occupied cell", func(h *harness) { h.place(other, 0, 0, 1) }, physics.Vec3{X: 20}, false},
		{"owner at capacity", func(h *harness) { h.place(owner, 0, 0, 1) }, physics.CellCenter(5, 5, grid), true},
		{"owner on cooldown", func(h *harness) {
			h.arena.Registry().SetProfile(owner, arena.OwnerProfile{MaxBombs: 5, Power: 1})
			h.place(owner, 0, 0, 1)
		}, physics.CellCenter(2, 0, grid), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, arena.DefaultRules(), nil)
			tt.setup(h)
			if got := h.arena.Registry().CanPlaceAt(tt.pos, owner); got != tt.want {
				t.Errorf("CanPlaceAt(%+v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestRegistryCooldown(t *testing.T) {
	h := newHarness(t, arena.DefaultRules(), nil)
	owner := newOwner()
	h.arena.Registry().SetProfile(owner, arena.OwnerProfile{MaxBombs: 5, Power: 1})

	h.place(owner, 0, 0, 1)
	if !h.arena.Registry().CanPlaceAt(physics.Vec3{X: 200}, owner) {
		t.Fatal("free cell reported blocked during cooldown")
	}
	if _, ok := h.arena.PlaceBomb(owner, physics.Vec3{X: 200}); ok {
		t.Error("placed during cooldown")
	}
	h.run(100 * time.Millisecond)
	if _, ok := h.arena.PlaceBomb(owner, physics.Vec3{X: 200}); !ok {
		t.Error("placement rejected after cooldown")
	}
}

func TestRegistrySnapsToGrid(t *testing.T) {
	h := newHarness(t, arena.DefaultRules(), nil)
	b, ok := h.arena.PlaceBomb(newOwner(), physics.Vec3{X: 149, Y: -51, Z: 7})
	if !ok {
		t.Fatal("placement rejected")
	}
	if want := (physics.Vec3{X: 100, Y: -100, Z: 7}); b.Position() != want {
		t.Errorf("Position = %+v, want %+v", b.Position(), want)
	}
}

func TestFindKickTargetPrefersOwnBombs(t *testing.T) {
	h := newHarness(t, kickRules(), nil)
	me, other := newOwner(), newOwner()

	theirs := h.place(other, 0, 0, 1)
	mine := h.place(me, 1, 0, 1)
	reg := h.arena.Registry()

	if got := reg.FindKickTarget(me, physics.Vec3{X: 10}, 150); got != mine {
		t.Errorf("FindKickTarget = bomb %d, want own bomb %d", idOf(got), mine.ID())
	}
	if got := reg.FindKickTarget(newOwner(), physics.Vec3{X: 10}, 150); got != theirs {
		t.Errorf("FindKickTarget without own bombs = %d, want nearest %d", idOf(got), theirs.ID())
	}
	if got := reg.FindKickTarget(me, physics.Vec3{X: 1000}, 150); got != nil {
		t.Errorf("FindKickTarget out of range = %d, want nil", idOf(got))
	}
}

func idOf(b *arena.Bomb) arena.BombID {
	if b == nil {
		return 0
	}
	return b.ID()
}
