package service

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"vicebot/events"
	"vicebot/models"
	"vicebot/scheduler"
)

type economyService struct {
	mu     sync.Mutex
	ledger models.Ledger
	store  LedgerStore
	clock  scheduler.Clock
	rng    *rand.Rand
	bus    EventPublisher
}

// NewEconomyService creates the economy ledger service over a previously
// loaded ledger. The service takes ownership of the map.
func NewEconomyService(ledger models.Ledger, store LedgerStore, clock scheduler.Clock, rng *rand.Rand, bus EventPublisher) EconomyService {
	return &economyService{
		ledger: ledger,
		store:  store,
		clock:  clock,
		rng:    rng,
		bus:    bus,
	}
}

func (s *economyService) Balance(ctx context.Context, guildID, userID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Lazily created accounts are persisted on the next mutation.
	return s.ledger.Account(guildID, userID).Balance
}

func (s *economyService) AddBalance(ctx context.Context, guildID, userID string, delta int64, reason models.TransactionType) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.apply(ctx, guildID, userID, delta, reason)
}

func (s *economyService) SetBalance(ctx context.Context, guildID, userID string, amount int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount < 0 {
		amount = 0
	}
	account := s.ledger.Account(guildID, userID)
	return s.apply(ctx, guildID, userID, amount-account.Balance, models.TransactionTypeAdminSet)
}

func (s *economyService) ResetAccount(ctx context.Context, guildID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.ledger.Account(guildID, userID)
	oldBalance := account.Balance
	*account = *models.NewAccount()
	s.persist()

	s.bus.Emit(ctx, events.BalanceChangeEvent{
		GuildID:         guildID,
		UserID:          userID,
		OldBalance:      oldBalance,
		NewBalance:      0,
		ChangeAmount:    -oldBalance,
		TransactionType: models.TransactionTypeAdminReset,
	})
}

func (s *economyService) ResetGuild(ctx context.Context, guildID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.ledger, guildID)
	s.persist()
	log.WithField("guild", guildID).Info("Guild economy reset")
}

func (s *economyService) ClaimDaily(ctx context.Context, guildID, userID string) (*models.ClaimResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.ledger.Account(guildID, userID)
	now := s.clock.Now()
	if remaining := account.DailyRemaining(now); remaining > 0 {
		return nil, &CooldownError{Remaining: remaining}
	}

	account.LastDaily = now.UnixMilli()
	newBalance := s.apply(ctx, guildID, userID, models.DailyReward, models.TransactionTypeDaily)
	return &models.ClaimResult{Reward: models.DailyReward, NewBalance: newBalance}, nil
}

func (s *economyService) ClaimWeekly(ctx context.Context, guildID, userID string) (*models.ClaimResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.ledger.Account(guildID, userID)
	now := s.clock.Now()
	if remaining := account.WeeklyRemaining(now); remaining > 0 {
		return nil, &CooldownError{Remaining: remaining}
	}

	account.LastWeekly = now.UnixMilli()
	newBalance := s.apply(ctx, guildID, userID, models.WeeklyReward, models.TransactionTypeWeekly)
	return &models.ClaimResult{Reward: models.WeeklyReward, NewBalance: newBalance}, nil
}

func (s *economyService) Work(ctx context.Context, guildID, userID string) (*models.WorkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.ledger.Account(guildID, userID)
	now := s.clock.Now()
	if remaining := account.WorkRemaining(now); remaining > 0 {
		return nil, &CooldownError{Remaining: remaining}
	}

	minPay, maxPay, _, jobName := account.WorkTerms()
	earned := minPay + s.rng.Int63n(maxPay-minPay+1)

	account.LastWork = now.UnixMilli()
	newBalance := s.apply(ctx, guildID, userID, earned, models.TransactionTypeWork)

	result := &models.WorkResult{JobName: jobName, Earned: earned, NewBalance: newBalance}
	if job, ok := models.JobByKey(account.Job); ok {
		result.Blurb = job.Blurb
	}
	return result, nil
}

func (s *economyService) Transfer(ctx context.Context, guildID, fromID, toID string, amount int64) (*models.TransferResult, error) {
	if fromID == toID {
		return nil, ErrInvalidTarget
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.ledger.Account(guildID, fromID)
	if from.Balance < amount {
		return nil, ErrInsufficientFunds
	}

	fromBalance := s.apply(ctx, guildID, fromID, -amount, models.TransactionTypeTransferOut)
	toBalance := s.apply(ctx, guildID, toID, amount, models.TransactionTypeTransferIn)

	return &models.TransferResult{
		Amount:      amount,
		FromBalance: fromBalance,
		ToBalance:   toBalance,
	}, nil
}

func (s *economyService) SetJob(ctx context.Context, guildID, userID, jobKey string) (models.Job, error) {
	job, ok := models.JobByKey(jobKey)
	if !ok {
		return models.Job{}, ErrUnknownJob
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Account(guildID, userID).Job = jobKey
	s.persist()
	return job, nil
}

func (s *economyService) Job(ctx context.Context, guildID, userID string) (models.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.JobByKey(s.ledger.Account(guildID, userID).Job)
}

func (s *economyService) TopBalances(ctx context.Context, guildID string, limit int) []models.BalanceEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	// No lazy creation here: a guild without accounts stays empty.
	guild := s.ledger[guildID]
	entries := make([]models.BalanceEntry, 0, len(guild))
	for userID, account := range guild {
		entries = append(entries, models.BalanceEntry{UserID: userID, Balance: account.Balance})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Balance == entries[j].Balance {
			return entries[i].UserID < entries[j].UserID
		}
		return entries[i].Balance > entries[j].Balance
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func (s *economyService) Withdraw(ctx context.Context, guildID, userID string, amount int64, reason models.TransactionType) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.ledger.Account(guildID, userID)
	if account.Balance < amount {
		return account.Balance, ErrInsufficientFunds
	}
	return s.apply(ctx, guildID, userID, -amount, reason), nil
}

func (s *economyService) Deposit(ctx context.Context, guildID, userID string, amount int64, reason models.TransactionType) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.apply(ctx, guildID, userID, amount, reason)
}

func (s *economyService) SettleDuel(ctx context.Context, guildID, challengerID, opponentID string, bet int64, winnerID string) (*models.DuelSettlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenger := s.ledger.Account(guildID, challengerID)
	opponent := s.ledger.Account(guildID, opponentID)

	// Balances may have changed while the challenge was open.
	if challenger.Balance < bet || opponent.Balance < bet {
		return nil, ErrInsufficientFunds
	}

	s.apply(ctx, guildID, challengerID, -bet, models.TransactionTypeDuelStake)
	s.apply(ctx, guildID, opponentID, -bet, models.TransactionTypeDuelStake)

	pot := bet * 2
	s.apply(ctx, guildID, winnerID, pot, models.TransactionTypeDuelWin)

	return &models.DuelSettlement{
		Pot:               pot,
		ChallengerBalance: challenger.Balance,
		OpponentBalance:   opponent.Balance,
	}, nil
}

// apply mutates one balance, clamping at 0, persists and emits the change
// event. Callers must hold s.mu.
func (s *economyService) apply(ctx context.Context, guildID, userID string, delta int64, reason models.TransactionType) int64 {
	account := s.ledger.Account(guildID, userID)
	oldBalance := account.Balance
	newBalance := oldBalance + delta
	if newBalance < 0 {
		newBalance = 0
	}
	account.Balance = newBalance
	s.persist()

	s.bus.Emit(ctx, events.BalanceChangeEvent{
		GuildID:         guildID,
		UserID:          userID,
		OldBalance:      oldBalance,
		NewBalance:      newBalance,
		ChangeAmount:    newBalance - oldBalance,
		TransactionType: reason,
	})
	return newBalance
}

// persist rewrites the ledger document. Save failures are logged, not
// propagated: in-memory state stays authoritative.
func (s *economyService) persist() {
	if err := s.store.SaveLedger(s.ledger); err != nil {
		log.Errorf("Failed to save ledger: %v", err)
	}
}
