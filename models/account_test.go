package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerLazyAccountCreation(t *testing.T) {
	ledger := make(Ledger)

	account := ledger.Account("g1", "u1")
	require.NotNil(t, account)
	assert.Equal(t, int64(0), account.Balance)
	assert.Empty(t, account.Job)

	// Same pointer on repeated access.
	account.Balance = 42
	assert.Equal(t, int64(42), ledger.Account("g1", "u1").Balance)

	// Guilds are independent namespaces.
	assert.Equal(t, int64(0), ledger.Account("g2", "u1").Balance)
}

func TestAccountCooldownRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	account := NewAccount()

	// Never claimed: immediately available.
	assert.LessOrEqual(t, account.DailyRemaining(now), time.Duration(0))
	assert.LessOrEqual(t, account.WeeklyRemaining(now), time.Duration(0))
	assert.LessOrEqual(t, account.WorkRemaining(now), time.Duration(0))

	account.LastDaily = now.UnixMilli()
	assert.Equal(t, DailyCooldown, account.DailyRemaining(now))
	assert.Equal(t, 18*time.Hour, account.DailyRemaining(now.Add(6*time.Hour)))
	assert.LessOrEqual(t, account.DailyRemaining(now.Add(24*time.Hour)), time.Duration(0))

	account.LastWeekly = now.UnixMilli()
	assert.Equal(t, 4*24*time.Hour, account.WeeklyRemaining(now.Add(3*24*time.Hour)))
}

func TestAccountWorkTerms(t *testing.T) {
	account := NewAccount()

	minPay, maxPay, cooldown, name := account.WorkTerms()
	assert.Equal(t, int64(WorkMin), minPay)
	assert.Equal(t, int64(WorkMax), maxPay)
	assert.Equal(t, WorkCooldown, cooldown)
	assert.Equal(t, "Unassigned", name)

	account.Job = "miner"
	minPay, maxPay, cooldown, name = account.WorkTerms()
	assert.Equal(t, int64(0), minPay)
	assert.Equal(t, int64(420), maxPay)
	assert.Equal(t, 90*time.Minute, cooldown)
	assert.Equal(t, "Miner", name)

	// A stale key falls back to the unassigned terms.
	account.Job = "astronaut"
	_, _, _, name = account.WorkTerms()
	assert.Equal(t, "Unassigned", name)
}

func TestJobCatalog(t *testing.T) {
	assert.Len(t, Jobs, 5)

	job, ok := JobByKey("developer")
	require.True(t, ok)
	assert.Equal(t, "Developer", job.Name)
	assert.Equal(t, 90*time.Minute, job.Cooldown())

	_, ok = JobByKey("")
	assert.False(t, ok)
}

func TestScoresAddWin(t *testing.T) {
	scores := make(Scores)

	assert.Equal(t, int64(0), scores.Wins("g1", "u1"))
	assert.Equal(t, int64(1), scores.AddWin("g1", "u1"))
	assert.Equal(t, int64(2), scores.AddWin("g1", "u1"))
	assert.Equal(t, int64(2), scores.Wins("g1", "u1"))

	assert.Equal(t, int64(1), scores.AddWin("g2", "u1"))
}
