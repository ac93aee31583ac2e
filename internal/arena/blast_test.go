package arena_test

import (
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/arena/mocks"
	"github.com/tomz197/bombers/internal/physics"
)

func TestBlastOpenFloorSegmentCount(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		power := rapid.IntRange(1, 8).Draw(rt, "power")
		col := rapid.IntRange(-20, 20).Draw(rt, "col")
		row := rapid.IntRange(-20, 20).Draw(rt, "row")

		h := newHarness(rt, arena.DefaultRules(), nil)
		b := h.place(newOwner(), col, row, power)
		origin := b.Position()
		b.ForceExplode()

		segs := h.arena.Segments()
		if len(segs) != 1+4*power {
			rt.Fatalf("segments = %d, want %d", len(segs), 1+4*power)
		}
		if segs[0].Kind() != arena.SegmentCenter || !near(segs[0].Position(), origin) {
			rt.Fatalf("first segment = %v at %+v, want center at %+v", segs[0].Kind(), segs[0].Position(), origin)
		}

		byDir := segmentsByDir(segs, origin)
		for _, dir := range physics.Cardinals {
			ray := byDir[dir]
			if len(ray) != power {
				rt.Fatalf("ray %+v has %d segments, want %d", dir, len(ray), power)
			}
			for i, s := range ray {
				want := origin.Add(dir.Scale(float64(i+1) * grid))
				if !near(s.Position(), want) {
					rt.Fatalf("ray %+v segment %d at %+v, want %+v", dir, i, s.Position(), want)
				}
				wantKind := arena.SegmentMiddle
				if i == power-1 {
					wantKind = arena.SegmentEnd
				}
				if s.Kind() != wantKind {
					rt.Fatalf("ray %+v segment %d kind = %v, want %v", dir, i, s.Kind(), wantKind)
				}
			}
		}
	})
}

func TestBlastPowerTwoAtOrigin(t *testing.T) {
	h := newHarness(t, arena.DefaultRules(), nil)
	b := h.place(newOwner(), 0, 0, 2)
	b.ForceExplode()

	want := []struct {
		pos  physics.Vec3
		kind arena.SegmentKind
	}{
		{physics.Vec3{}, arena.SegmentCenter},
		{physics.Vec3{X: 100}, arena.SegmentMiddle},
		{physics.Vec3{X: 200}, arena.SegmentEnd},
		{physics.Vec3{X: -100}, arena.SegmentMiddle},
		{physics.Vec3{X: -200}, arena.SegmentEnd},
		{physics.Vec3{Y: 100}, arena.SegmentMiddle},
		{physics.Vec3{Y: 200}, arena.SegmentEnd},
		{physics.Vec3{Y: -100}, arena.SegmentMiddle},
		{physics.Vec3{Y: -200}, arena.SegmentEnd},
	}

	segs := h.arena.Segments()
	if len(segs) != len(want) {
		t.Fatalf("segments = %d, want %d", len(segs), len(want))
	}
	for i, w := range want {
		if !near(segs[i].Position(), w.pos) || segs[i].Kind() != w.kind {
			t.Errorf("segment %d = %v at %+v, want %v at %+v", i, segs[i].Kind(), segs[i].Position(), w.kind, w.pos)
		}
	}
}

func TestBlastStoppedByWall(t *testing.T) {
	tests := []struct {
		name  string
		power int
		wall  int
		want  int
	}{
		{"adjacent wall", 3, 1, 0},
		{"wall mid ray", 4, 3, 2},
		{"wall at tip", 2, 2, 1},
		{"wall out of reach", 2, 5, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, arena.DefaultRules(), nil)
			h.world.wall(tt.wall, 0)
			b := h.place(newOwner(), 0, 0, tt.power)
			b.ForceExplode()

			east := segmentsByDir(h.arena.Segments(), physics.Vec3{})[physics.East]
			if len(east) != tt.want {
				t.Errorf("east segments = %d, want %d", len(east), tt.want)
			}
			for _, s := range east {
				if s.Position().X >= float64(tt.wall)*grid {
					t.Errorf("segment at %+v reached the wall", s.Position())
				}
			}
		})
	}
}

func TestBlastStoppedByWallProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		power := rapid.IntRange(1, 8).Draw(rt, "power")
		k := rapid.IntRange(1, power).Draw(rt, "k")

		h := newHarness(rt, arena.DefaultRules(), nil)
		h.world.wall(0, -k)
		b := h.place(newOwner(), 0, 0, power)
		b.ForceExplode()

		north := segmentsByDir(h.arena.Segments(), physics.Vec3{})[physics.North]
		if len(north) != k-1 {
			rt.Fatalf("north segments = %d, want %d", len(north), k-1)
		}
	})
}

func TestBlastDestroysBlockOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	obs := mocks.NewMockObserver(ctrl)
	obs.EXPECT().BombPlaced(gomock.Any())
	obs.EXPECT().SegmentSpawned(gomock.Any()).Times(1 + 3 + 3 + 3 + 2)
	obs.EXPECT().BombExploded(gomock.Any())
	obs.EXPECT().SegmentExpired(gomock.Any()).AnyTimes()

	h := newHarness(t, arena.DefaultRules(), obs)
	handle := h.world.block(2, 0)

	var blockSeg *arena.Segment
	obs.EXPECT().BlockDestroyed(gomock.Any(), handle).Times(1).Do(func(s *arena.Segment, _ arena.ObstacleHandle) {
		blockSeg = s
	})

	b := h.place(newOwner(), 0, 0, 3)
	b.ForceExplode()
	h.run(arena.DefaultRules().ExplosionLifetime * 2)

	if got := h.world.destroyed[handle]; got != 1 {
		t.Errorf("block destroyed %d times, want 1", got)
	}
	if blockSeg == nil {
		t.Fatal("BlockDestroyed not delivered")
	}
	if blockSeg.Kind() != arena.SegmentEnd {
		t.Errorf("block segment kind = %v, want end", blockSeg.Kind())
	}
	if !near(blockSeg.Position(), physics.Vec3{X: 200}) {
		t.Errorf("block segment at %+v, want (200,0)", blockSeg.Position())
	}
}

func TestBlastIgnoresBombsInRay(t *testing.T) {
	rules := arena.DefaultRules()
	rules.ChainDelay = time.Hour
	h := newHarness(t, rules, nil)

	a := h.place(newOwner(), 0, 0, 3)
	h.place(newOwner(), 1, 0, 1)
	a.ForceExplode()

	east := segmentsByDir(h.arena.Segments(), physics.Vec3{})[physics.East]
	if len(east) != 3 {
		t.Errorf("east segments = %d, want 3", len(east))
	}
}
