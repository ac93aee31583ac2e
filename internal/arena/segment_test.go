package arena_test

import (
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/arena/mocks"
	"github.com/tomz197/bombers/internal/physics"
)

func TestSegmentDamagesOncePerActor(t *testing.T) {
	ctrl := gomock.NewController(t)
	victim := newOwner()
	ch := mocks.NewMockCharacter(ctrl)
	ch.EXPECT().Position().Return(physics.Vec3{X: 100}).AnyTimes()
	ch.EXPECT().TakeBombDamage(100.0, gomock.Any()).Times(1)

	rec := &recorder{}
	h := newHarness(t, arena.DefaultRules(), rec)
	h.world.chars[victim] = ch

	b := h.place(newOwner(), 0, 0, 1)
	b.ForceExplode()

	var hitSeg arena.SegmentID
	for _, s := range h.arena.Segments() {
		if near(s.Position(), physics.Vec3{X: 100}) {
			hitSeg = s.ID()
		}
	}
	if h.arena.NotifyOverlap(hitSeg, arena.CharacterRef(victim)) {
		t.Error("duplicate overlap reported as handled")
	}
	h.run(300 * time.Millisecond)

	if rec.hits != 1 {
		t.Errorf("PlayerHit = %d, want 1", rec.hits)
	}
}

func TestSegmentSkipsOwner(t *testing.T) {
	owner := newOwner()
	me := &dummy{}
	h := newHarness(t, arena.DefaultRules(), nil)
	h.world.chars[owner] = me

	b := h.place(owner, 0, 0, 1)
	b.ForceExplode()
	h.run(100 * time.Millisecond)

	if me.hits != 0 {
		t.Errorf("owner took %d hits from their own bomb", me.hits)
	}
}

func TestSegmentLateArrival(t *testing.T) {
	victim := newOwner()
	d := &dummy{pos: physics.Vec3{X: 500}}
	h := newHarness(t, arena.DefaultRules(), nil)
	h.world.chars[victim] = d

	b := h.place(newOwner(), 0, 0, 1)
	b.ForceExplode()
	h.run(100 * time.Millisecond)
	if d.hits != 0 {
		t.Fatalf("hits = %d before walking in", d.hits)
	}

	d.pos = physics.Vec3{X: 0, Y: 90}
	h.run(100 * time.Millisecond)
	if d.hits != 1 {
		t.Errorf("hits = %d after walking into the blast, want 1", d.hits)
	}

	h.run(time.Second)
	d.pos = physics.Vec3{X: 100}
	h.run(100 * time.Millisecond)
	if d.hits != 1 {
		t.Errorf("hits = %d after the blast expired, want 1", d.hits)
	}
}

func TestSegmentPowerupAndBlock(t *testing.T) {
	rec := &recorder{}
	h := newHarness(t, arena.DefaultRules(), rec)
	pu := h.world.powerup(-1, 0)

	b := h.place(newOwner(), 0, 0, 1)
	b.ForceExplode()

	if h.world.destroyed[pu] != 1 {
		t.Errorf("powerup destroyed %d times, want 1", h.world.destroyed[pu])
	}
	if rec.powerups != 1 {
		t.Errorf("PowerupDestroyed = %d, want 1", rec.powerups)
	}

	center := h.arena.Segments()[0]
	if !h.arena.NotifyOverlap(center.ID(), arena.BlockRef(99)) {
		t.Error("block overlap not handled")
	}
	if rec.blocks != 1 {
		t.Errorf("BlockDestroyed = %d, want 1", rec.blocks)
	}
	if h.world.destroyed[99] != 0 {
		t.Error("block overlap destroyed the obstacle itself")
	}
}

func TestSegmentExpires(t *testing.T) {
	h := newHarness(t, arena.DefaultRules(), nil)
	b := h.place(newOwner(), 0, 0, 1)
	b.ForceExplode()

	segs := h.arena.Segments()
	h.run(490 * time.Millisecond)
	if n := len(h.arena.Segments()); n != 5 {
		t.Fatalf("live segments = %d before lifetime, want 5", n)
	}
	h.run(20 * time.Millisecond)
	if n := len(h.arena.Segments()); n != 0 {
		t.Errorf("live segments = %d after lifetime, want 0", n)
	}
	if _, ok := h.arena.Segment(segs[0].ID()); ok {
		t.Error("expired segment not swept")
	}
	if h.arena.NotifyOverlap(segs[0].ID(), arena.CharacterRef(newOwner())) {
		t.Error("overlap on a swept segment handled")
	}
}
