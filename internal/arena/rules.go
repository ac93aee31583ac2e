package arena

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/bombers/internal/physics"
)

var (
	// ErrInvalidRules is wrapped by every Rules validation failure.
	ErrInvalidRules = errors.New("invalid arena rules")
	// ErrMissingCollaborator is returned by New when the world or clock is nil.
	ErrMissingCollaborator = errors.New("missing arena collaborator")
)

// OwnerPassMode selects when a freshly placed bomb starts blocking its owner.
type OwnerPassMode uint8

const (
	// OwnerPassTimed re-enables owner collision after Rules.OwnerPassDuration.
	OwnerPassTimed OwnerPassMode = iota
	// OwnerPassUntilClear re-enables it once the owner is a full cell away.
	OwnerPassUntilClear
	// OwnerPassNone blocks the owner immediately.
	OwnerPassNone
)

func (m OwnerPassMode) String() string {
	switch m {
	case OwnerPassTimed:
		return "timed"
	case OwnerPassUntilClear:
		return "until-clear"
	case OwnerPassNone:
		return "none"
	default:
		return "unknown"
	}
}

// Rules holds the gameplay tunables of an arena.
type Rules struct {
	GridSize float64

	FuseDuration      time.Duration
	OwnerPass         OwnerPassMode
	OwnerPassDuration time.Duration

	ChainDelay        time.Duration
	ExplosionLifetime time.Duration
	Damage            float64

	KickEnabled      bool
	KickSpeed        float64 // units per second
	KickDeceleration float64 // units per second squared
	KickSearchRadius float64

	BombExtent    physics.Vec3 // half-extent
	SegmentExtent physics.Vec3 // half-extent

	MaxBombs          int
	DefaultPower      int
	PlacementCooldown time.Duration
}

// DefaultRules returns the classic ruleset.
func DefaultRules() Rules {
	return Rules{
		GridSize:          100,
		FuseDuration:      3 * time.Second,
		OwnerPass:         OwnerPassTimed,
		OwnerPassDuration: 500 * time.Millisecond,
		ChainDelay:        100 * time.Millisecond,
		ExplosionLifetime: 500 * time.Millisecond,
		Damage:            100,
		KickEnabled:       true,
		KickSpeed:         800,
		KickDeceleration:  1000,
		KickSearchRadius:  150,
		BombExtent:        physics.Vec3{X: 45, Y: 45, Z: 45},
		SegmentExtent:     physics.Vec3{X: 45, Y: 45, Z: 45},
		MaxBombs:          1,
		DefaultPower:      1,
		PlacementCooldown: 100 * time.Millisecond,
	}
}

// Validate reports every problem with the rules, each wrapping ErrInvalidRules.
func (r Rules) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidRules}, args...)...))
	}

	if r.GridSize <= 0 {
		bad("grid size must be positive, got %v", r.GridSize)
	}
	if r.FuseDuration <= 0 {
		bad("fuse duration must be positive, got %v", r.FuseDuration)
	}
	if r.OwnerPass > OwnerPassNone {
		bad("unknown owner pass mode %d", r.OwnerPass)
	}
	if r.OwnerPassDuration < 0 {
		bad("owner pass duration must not be negative, got %v", r.OwnerPassDuration)
	}
	if r.ChainDelay < 0 {
		bad("chain delay must not be negative, got %v", r.ChainDelay)
	}
	if r.ExplosionLifetime <= 0 {
		bad("explosion lifetime must be positive, got %v", r.ExplosionLifetime)
	}
	if r.Damage < 0 {
		bad("damage must not be negative, got %v", r.Damage)
	}
	if r.KickEnabled {
		if r.KickSpeed <= 0 {
			bad("kick speed must be positive, got %v", r.KickSpeed)
		}
		if r.KickDeceleration <= 0 {
			bad("kick deceleration must be positive, got %v", r.KickDeceleration)
		}
	}
	if r.KickSearchRadius < 0 {
		bad("kick search radius must not be negative, got %v", r.KickSearchRadius)
	}
	if r.BombExtent.X <= 0 || r.BombExtent.Y <= 0 {
		bad("bomb extent must be positive, got %+v", r.BombExtent)
	}
	if r.SegmentExtent.X <= 0 || r.SegmentExtent.Y <= 0 {
		bad("segment extent must be positive, got %+v", r.SegmentExtent)
	}
	if r.MaxBombs < 1 {
		bad("max bombs must be at least 1, got %d", r.MaxBombs)
	}
	if r.DefaultPower < 1 {
		bad("default power must be at least 1, got %d", r.DefaultPower)
	}
	if r.PlacementCooldown < 0 {
		bad("placement cooldown must not be negative, got %v", r.PlacementCooldown)
	}

	return errors.Join(errs...)
}
