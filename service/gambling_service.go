package service

import (
	"context"
	"math/rand"
	"sync"

	"vicebot/games"
	"vicebot/models"
)

type gamblingService struct {
	economy EconomyService

	mu   sync.Mutex
	rng  *rand.Rand
	spin func(*rand.Rand) games.SpinResult
}

// NewGamblingService creates the slot machine service.
func NewGamblingService(economy EconomyService, rng *rand.Rand) GamblingService {
	return &gamblingService{
		economy: economy,
		rng:     rng,
		spin:    games.Spin,
	}
}

func (s *gamblingService) PlaySlots(ctx context.Context, guildID, userID string, bet int64) (*models.SlotsResult, error) {
	if bet <= 0 {
		return nil, ErrInvalidAmount
	}

	// The bet is debited unconditionally at spin time; any payout is
	// credited after.
	newBalance, err := s.economy.Withdraw(ctx, guildID, userID, bet, models.TransactionTypeSlotsBet)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	spin := s.spin(s.rng)
	s.mu.Unlock()

	payout := bet * spin.Multiplier
	if payout > 0 {
		newBalance = s.economy.Deposit(ctx, guildID, userID, payout, models.TransactionTypeSlotsPayout)
	}

	return &models.SlotsResult{
		Reels:      spin.Reels,
		Multiplier: spin.Multiplier,
		Label:      spin.Label,
		Bet:        bet,
		Payout:     payout,
		Net:        payout - bet,
		NewBalance: newBalance,
	}, nil
}
