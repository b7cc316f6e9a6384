package models

import (
	"time"
)

// Account is a user's economy record within one guild. Claim timestamps are
// stored as milliseconds since epoch; zero means "never claimed". The JSON
// layout matches the on-disk ledger document.
type Account struct {
	Balance    int64  `json:"balance"`
	LastDaily  int64  `json:"lastDaily"`
	LastWeekly int64  `json:"lastWeekly"`
	LastWork   int64  `json:"lastWork"`
	Job        string `json:"job,omitempty"`
}

// Ledger maps guild ID -> user ID -> account.
type Ledger map[string]map[string]*Account

// Scores maps guild ID -> user ID -> RPS win count.
type Scores map[string]map[string]int64

// Wins returns the recorded win count for (guildID, userID).
func (s Scores) Wins(guildID, userID string) int64 {
	return s[guildID][userID]
}

// AddWin increments and returns the win count for (guildID, userID).
func (s Scores) AddWin(guildID, userID string) int64 {
	guild, ok := s[guildID]
	if !ok {
		guild = make(map[string]int64)
		s[guildID] = guild
	}
	guild[userID]++
	return guild[userID]
}

// NewAccount returns an account with default values.
func NewAccount() *Account {
	return &Account{}
}

// Account returns the account for (guildID, userID), lazily creating it with
// defaults if absent.
func (l Ledger) Account(guildID, userID string) *Account {
	guild, ok := l[guildID]
	if !ok {
		guild = make(map[string]*Account)
		l[guildID] = guild
	}
	account, ok := guild[userID]
	if !ok {
		account = NewAccount()
		guild[userID] = account
	}
	return account
}

// DailyRemaining returns how long until the daily reward can be claimed
// again. Zero or negative means it is claimable now.
func (a *Account) DailyRemaining(now time.Time) time.Duration {
	return remaining(a.LastDaily, DailyCooldown, now)
}

// WeeklyRemaining returns how long until the weekly reward can be claimed
// again.
func (a *Account) WeeklyRemaining(now time.Time) time.Duration {
	return remaining(a.LastWeekly, WeeklyCooldown, now)
}

// WorkRemaining returns how long until the account can work again, using the
// cooldown of its assigned job (or the unassigned fallback).
func (a *Account) WorkRemaining(now time.Time) time.Duration {
	_, _, cooldown, _ := a.WorkTerms()
	return remaining(a.LastWork, cooldown, now)
}

// WorkTerms returns the payout range, cooldown and display name governing
// this account's work shifts.
func (a *Account) WorkTerms() (minPay, maxPay int64, cooldown time.Duration, jobName string) {
	if job, ok := JobByKey(a.Job); ok {
		return job.Min, job.Max, job.Cooldown(), job.Name
	}
	return WorkMin, WorkMax, WorkCooldown, "Unassigned"
}

func remaining(lastMillis int64, cooldown time.Duration, now time.Time) time.Duration {
	last := time.UnixMilli(lastMillis)
	return cooldown - now.Sub(last)
}
