package server

import (
	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/loop/config"
)

// PlayerHit turns a lethal blast hit into a death event and a kill score, and
// queues the victim's bombs for detonation.
func (s *Server) PlayerHit(seg *arena.Segment, victim arena.OwnerID) {
	vh, ok := s.byPlayer[victim]
	if !ok || vh.character == nil {
		return
	}
	if _, died := vh.character.ConsumeDeath(); !died {
		return
	}

	killer := "a stray bomb"
	if kh, ok := s.byPlayer[seg.Owner()]; ok {
		killer = kh.Username
		if kh.character != nil {
			kh.character.Kills++
		}
		notify(kh, ClientEvent{Type: EventScoreAdd, ScoreAdd: config.ScoreKill})
	}
	notify(vh, ClientEvent{Type: EventPlayerDied, KilledBy: killer})
	s.fallen = append(s.fallen, victim)

	s.log.Info("player died", "victim", vh.Username, "killer", killer, "segment", seg.ID())
}

// detonateFallen sets off the armed bombs of players who died this tick.
// Those blasts can kill more players, so it runs until nobody new has died.
// Must be called with lock held, outside arena callbacks.
func (s *Server) detonateFallen() {
	for len(s.fallen) > 0 {
		victim := s.fallen[0]
		s.fallen = s.fallen[1:]
		if n := s.arena.DetonateOwned(victim); n > 0 {
			s.log.Debug("fallen player's bombs detonated", "owner", victim, "bombs", n)
		}
	}
}

// BlockDestroyed scores a destroyed block for the bomb's owner.
func (s *Server) BlockDestroyed(seg *arena.Segment, _ arena.ObstacleHandle) {
	if kh, ok := s.byPlayer[seg.Owner()]; ok {
		notify(kh, ClientEvent{Type: EventScoreAdd, ScoreAdd: config.ScoreBlock})
	}
}

// BombChainExploded logs chain reactions.
func (s *Server) BombChainExploded(trigger arena.SegmentID, b *arena.Bomb) {
	s.log.Debug("chain reaction", "bomb", b.ID(), "trigger", trigger)
}
