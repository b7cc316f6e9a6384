package service

import (
	"context"

	"vicebot/events"
	"vicebot/models"
)

// LedgerStore persists the economy ledger document.
type LedgerStore interface {
	SaveLedger(ledger models.Ledger) error
}

// ScoreStore persists the RPS win count document.
type ScoreStore interface {
	SaveScores(scores models.Scores) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// EconomyService owns the per-guild coin ledger. Every mutating operation
// persists synchronously (best effort) and emits a balance change event.
type EconomyService interface {
	// Balance returns the user's balance, lazily creating the account.
	Balance(ctx context.Context, guildID, userID string) int64

	// AddBalance applies a signed delta, clamping the result at 0.
	AddBalance(ctx context.Context, guildID, userID string, delta int64, reason models.TransactionType) int64

	// SetBalance overwrites the balance, clamping at 0. Admin only at the
	// dispatch layer.
	SetBalance(ctx context.Context, guildID, userID string, amount int64) int64

	// ResetAccount reinitializes one account to defaults.
	ResetAccount(ctx context.Context, guildID, userID string)

	// ResetGuild drops every account in the guild.
	ResetGuild(ctx context.Context, guildID string)

	// ClaimDaily credits the fixed daily reward, or fails with a
	// CooldownError.
	ClaimDaily(ctx context.Context, guildID, userID string) (*models.ClaimResult, error)

	// ClaimWeekly credits the fixed weekly reward, or fails with a
	// CooldownError.
	ClaimWeekly(ctx context.Context, guildID, userID string) (*models.ClaimResult, error)

	// Work earns a random payout within the user's job range, or fails
	// with a CooldownError.
	Work(ctx context.Context, guildID, userID string) (*models.WorkResult, error)

	// Transfer moves coins between two users in the same guild.
	Transfer(ctx context.Context, guildID, fromID, toID string, amount int64) (*models.TransferResult, error)

	// SetJob assigns a job from the catalog.
	SetJob(ctx context.Context, guildID, userID, jobKey string) (models.Job, error)

	// Job returns the user's assigned job, if any.
	Job(ctx context.Context, guildID, userID string) (models.Job, bool)

	// TopBalances returns up to limit accounts ordered by descending
	// balance. A guild with no accounts yields an empty result.
	TopBalances(ctx context.Context, guildID string, limit int) []models.BalanceEntry

	// Withdraw atomically checks funds and debits. Unlike AddBalance it
	// refuses rather than clamps.
	Withdraw(ctx context.Context, guildID, userID string, amount int64, reason models.TransactionType) (int64, error)

	// Deposit credits an amount.
	Deposit(ctx context.Context, guildID, userID string, amount int64, reason models.TransactionType) int64

	// SettleDuel re-checks both stakes, debits both parties and credits
	// the pot to the winner, all under one lock.
	SettleDuel(ctx context.Context, guildID, challengerID, opponentID string, bet int64, winnerID string) (*models.DuelSettlement, error)
}

// RPSService owns the per-guild rock-paper-scissors win counters.
type RPSService interface {
	// Play resolves a round against a random bot move and records wins.
	Play(ctx context.Context, guildID, userID, move string) (*models.RPSResult, error)

	// Leaderboard returns up to limit entries by descending win count.
	Leaderboard(ctx context.Context, guildID string, limit int) []models.WinEntry
}

// GamblingService runs the coin-wagering slot machine.
type GamblingService interface {
	// PlaySlots debits the bet, spins, and credits any payout.
	PlaySlots(ctx context.Context, guildID, userID string, bet int64) (*models.SlotsResult, error)
}

// DuelService tracks open duel challenges and settles them.
type DuelService interface {
	// Propose validates a new challenge before it is posted.
	Propose(ctx context.Context, guildID, challengerID, opponentID string, bet int64) error

	// Open registers a posted challenge under its message ID. onExpire is
	// called if the challenge times out unanswered.
	Open(guildID, messageID, challengerID, opponentID string, bet int64, onExpire func(models.PendingDuel))

	// Respond resolves a pending challenge on behalf of the opponent.
	Respond(ctx context.Context, guildID, messageID, responderID string, accept bool) (*models.DuelResolution, error)
}
