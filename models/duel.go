package models

import (
	"time"
)

// DuelTimeout is how long the opponent has to accept or decline.
const DuelTimeout = 60 * time.Second

// DuelState represents the terminal state of a resolved duel challenge.
type DuelState string

const (
	DuelStateSettled   DuelState = "settled"
	DuelStateDeclined  DuelState = "declined"
	DuelStateExpired   DuelState = "expired"
	DuelStateCancelled DuelState = "cancelled" // insufficient funds at acceptance
)

// PendingDuel is an open duel challenge, keyed by (guild, challenge message).
// Pending duels live only in memory; a restart drops them.
type PendingDuel struct {
	GuildID      string
	MessageID    string
	ChallengerID string
	OpponentID   string
	Bet          int64
	ExpiresAt    time.Time
}

// IsOpponent reports whether userID is the challenged player.
func (d *PendingDuel) IsOpponent(userID string) bool {
	return d.OpponentID == userID
}

// Expired reports whether the challenge window has elapsed.
func (d *PendingDuel) Expired(now time.Time) bool {
	return now.After(d.ExpiresAt)
}

// DuelResolution is the outcome of responding to a pending duel.
type DuelResolution struct {
	State             DuelState
	Duel              PendingDuel
	WinnerID          string
	LoserID           string
	Pot               int64
	ChallengerBalance int64
	OpponentBalance   int64
}
