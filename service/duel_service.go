package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"vicebot/events"
	"vicebot/games"
	"vicebot/models"
	"vicebot/scheduler"
)

type pendingEntry struct {
	duel   models.PendingDuel
	expiry uuid.UUID
}

type duelService struct {
	economy EconomyService
	sched   scheduler.Scheduler
	clock   scheduler.Clock
	bus     EventPublisher

	mu    sync.Mutex
	duels map[string]pendingEntry
	rng   *rand.Rand
	flip  func(*rand.Rand, string, string) string
}

// NewDuelService creates the duel session tracker. Pending challenges live
// only in memory; a restart drops them.
func NewDuelService(economy EconomyService, sched scheduler.Scheduler, clock scheduler.Clock, rng *rand.Rand, bus EventPublisher) DuelService {
	return &duelService{
		economy: economy,
		sched:   sched,
		clock:   clock,
		bus:     bus,
		duels:   make(map[string]pendingEntry),
		rng:     rng,
		flip:    games.FlipWinner,
	}
}

func duelKey(guildID, messageID string) string {
	return fmt.Sprintf("%s:%s", guildID, messageID)
}

func (s *duelService) Propose(ctx context.Context, guildID, challengerID, opponentID string, bet int64) error {
	if opponentID == challengerID {
		return ErrInvalidTarget
	}
	if bet <= 0 {
		return ErrInvalidAmount
	}

	// Both parties must be able to cover the bet at issue time. Balances
	// are re-checked at settlement.
	if s.economy.Balance(ctx, guildID, challengerID) < bet {
		return ErrInsufficientFunds
	}
	if s.economy.Balance(ctx, guildID, opponentID) < bet {
		return ErrInsufficientFunds
	}
	return nil
}

func (s *duelService) Open(guildID, messageID, challengerID, opponentID string, bet int64, onExpire func(models.PendingDuel)) {
	key := duelKey(guildID, messageID)
	duel := models.PendingDuel{
		GuildID:      guildID,
		MessageID:    messageID,
		ChallengerID: challengerID,
		OpponentID:   opponentID,
		Bet:          bet,
		ExpiresAt:    s.clock.Now().Add(models.DuelTimeout),
	}

	expiry := s.sched.Schedule(models.DuelTimeout, func() {
		s.expire(key, onExpire)
	})

	s.mu.Lock()
	s.duels[key] = pendingEntry{duel: duel, expiry: expiry}
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"guild":      guildID,
		"message":    messageID,
		"challenger": challengerID,
		"opponent":   opponentID,
		"bet":        bet,
	}).Info("Duel challenge opened")
}

// expire is the scheduled sweep for an unanswered challenge.
func (s *duelService) expire(key string, onExpire func(models.PendingDuel)) {
	s.mu.Lock()
	entry, ok := s.duels[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.duels, key)
	s.mu.Unlock()

	s.emitResolved(entry.duel, models.DuelStateExpired, "")
	if onExpire != nil {
		onExpire(entry.duel)
	}
}

func (s *duelService) Respond(ctx context.Context, guildID, messageID, responderID string, accept bool) (*models.DuelResolution, error) {
	key := duelKey(guildID, messageID)

	s.mu.Lock()
	entry, ok := s.duels[key]
	if !ok {
		s.mu.Unlock()
		return nil, ErrDuelNotFound
	}
	duel := entry.duel

	if !duel.IsOpponent(responderID) {
		// Rejected without changing state.
		s.mu.Unlock()
		return nil, ErrNotOpponent
	}

	if duel.Expired(s.clock.Now()) {
		delete(s.duels, key)
		s.mu.Unlock()
		s.sched.Cancel(entry.expiry)
		s.emitResolved(duel, models.DuelStateExpired, "")
		return nil, ErrDuelExpired
	}

	// The challenge resolves now, one way or another.
	delete(s.duels, key)
	winner := s.flip(s.rng, duel.ChallengerID, duel.OpponentID)
	s.mu.Unlock()
	s.sched.Cancel(entry.expiry)

	if !accept {
		s.emitResolved(duel, models.DuelStateDeclined, "")
		return &models.DuelResolution{State: models.DuelStateDeclined, Duel: duel}, nil
	}

	settlement, err := s.economy.SettleDuel(ctx, guildID, duel.ChallengerID, duel.OpponentID, duel.Bet, winner)
	if err != nil {
		// One player can no longer cover the bet; no funds move.
		s.emitResolved(duel, models.DuelStateCancelled, "")
		return &models.DuelResolution{State: models.DuelStateCancelled, Duel: duel}, nil
	}

	loser := duel.ChallengerID
	if winner == loser {
		loser = duel.OpponentID
	}

	s.emitResolved(duel, models.DuelStateSettled, winner)
	return &models.DuelResolution{
		State:             models.DuelStateSettled,
		Duel:              duel,
		WinnerID:          winner,
		LoserID:           loser,
		Pot:               settlement.Pot,
		ChallengerBalance: settlement.ChallengerBalance,
		OpponentBalance:   settlement.OpponentBalance,
	}, nil
}

func (s *duelService) emitResolved(duel models.PendingDuel, state models.DuelState, winnerID string) {
	s.bus.Emit(context.Background(), events.DuelResolvedEvent{
		GuildID:      duel.GuildID,
		ChallengerID: duel.ChallengerID,
		OpponentID:   duel.OpponentID,
		Bet:          duel.Bet,
		State:        state,
		WinnerID:     winnerID,
	})
}
