package config

import (
	"github.com/tomz197/bombers/internal/arena"
)

// ArenaRules applies BOMB_FUSE, BOMB_CHAIN_DELAY, BOMB_KICK_SPEED and
// BOMB_KICK to base. Unset or unparsable values keep the base value; the
// result still has to pass Rules.Validate.
func ArenaRules(base arena.Rules) arena.Rules {
	r := base
	r.FuseDuration = GetEnvDuration("BOMB_FUSE", r.FuseDuration)
	r.ChainDelay = GetEnvDuration("BOMB_CHAIN_DELAY", r.ChainDelay)
	r.KickSpeed = GetEnvFloat("BOMB_KICK_SPEED", r.KickSpeed)
	r.KickEnabled = GetEnvBool("BOMB_KICK", r.KickEnabled)
	return r
}

// ArenaSeed returns the level seed from ARENA_SEED.
func ArenaSeed(fallback uint64) uint64 {
	return uint64(GetEnvInt64("ARENA_SEED", int64(fallback)))
}
