package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vicebot/events"
	"vicebot/models"
	"vicebot/scheduler"
	"vicebot/storage"
)

var testEpoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestEconomy(t *testing.T) (EconomyService, *scheduler.FakeClock) {
	t.Helper()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	clock := scheduler.NewFakeClock(testEpoch)
	rng := rand.New(rand.NewSource(1))
	svc := NewEconomyService(store.LoadLedger(), store, clock, rng, events.NewBus())
	return svc, clock
}

func TestEconomyService_BalanceStartsAtZero(t *testing.T) {
	svc, _ := newTestEconomy(t)
	ctx := context.Background()

	assert.Equal(t, int64(0), svc.Balance(ctx, "g1", "u1"))
}

func TestEconomyService_BalanceNeverNegative(t *testing.T) {
	svc, _ := newTestEconomy(t)
	ctx := context.Background()

	svc.AddBalance(ctx, "g1", "u1", 100, models.TransactionTypeAdminAdd)
	balance := svc.AddBalance(ctx, "g1", "u1", -300, models.TransactionTypeAdminAdd)
	assert.Equal(t, int64(0), balance)

	balance = svc.SetBalance(ctx, "g1", "u1", -50)
	assert.Equal(t, int64(0), balance)

	// Arbitrary add/set sequences keep the invariant.
	deltas := []int64{40, -10, -100, 25, -1}
	for _, d := range deltas {
		balance = svc.AddBalance(ctx, "g1", "u1", d, models.TransactionTypeAdminAdd)
		assert.GreaterOrEqual(t, balance, int64(0))
	}
}

func TestEconomyService_ClaimDaily(t *testing.T) {
	svc, clock := newTestEconomy(t)
	ctx := context.Background()

	result, err := svc.ClaimDaily(ctx, "g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(models.DailyReward), result.Reward)
	assert.Equal(t, int64(250), result.NewBalance)

	// Second claim within 24h fails with the remaining time.
	clock.Advance(6 * time.Hour)
	_, err = svc.ClaimDaily(ctx, "g1", "u1")
	var cooldown *CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, 18*time.Hour, cooldown.Remaining)

	// After the full window it succeeds and credits exactly 250 again.
	clock.Advance(18 * time.Hour)
	result, err = svc.ClaimDaily(ctx, "g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(500), result.NewBalance)
}

func TestEconomyService_ClaimWeekly(t *testing.T) {
	svc, clock := newTestEconomy(t)
	ctx := context.Background()

	result, err := svc.ClaimWeekly(ctx, "g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1200), result.NewBalance)

	clock.Advance(3 * 24 * time.Hour)
	_, err = svc.ClaimWeekly(ctx, "g1", "u1")
	var cooldown *CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, 4*24*time.Hour, cooldown.Remaining)

	clock.Advance(4 * 24 * time.Hour)
	_, err = svc.ClaimWeekly(ctx, "g1", "u1")
	assert.NoError(t, err)
}

func TestEconomyService_WorkUnassigned(t *testing.T) {
	svc, clock := newTestEconomy(t)
	ctx := context.Background()

	result, err := svc.Work(ctx, "g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Unassigned", result.JobName)
	assert.GreaterOrEqual(t, result.Earned, int64(models.WorkMin))
	assert.LessOrEqual(t, result.Earned, int64(models.WorkMax))

	// Default cooldown is one hour.
	_, err = svc.Work(ctx, "g1", "u1")
	var cooldown *CooldownError
	require.ErrorAs(t, err, &cooldown)

	clock.Advance(time.Hour)
	_, err = svc.Work(ctx, "g1", "u1")
	assert.NoError(t, err)
}

func TestEconomyService_WorkAsMiner(t *testing.T) {
	svc, clock := newTestEconomy(t)
	ctx := context.Background()

	_, err := svc.SetJob(ctx, "g1", "u1", "miner")
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		result, err := svc.Work(ctx, "g1", "u1")
		require.NoError(t, err)
		assert.Equal(t, "Miner", result.JobName)
		assert.Equal(t, "High risk, high reward.", result.Blurb)
		assert.GreaterOrEqual(t, result.Earned, int64(0))
		assert.LessOrEqual(t, result.Earned, int64(420))

		// Cooldown between successful shifts is at least 90 minutes.
		clock.Advance(89 * time.Minute)
		_, err = svc.Work(ctx, "g1", "u1")
		var cooldown *CooldownError
		require.ErrorAs(t, err, &cooldown)

		clock.Advance(time.Minute)
	}
}

func TestEconomyService_Transfer(t *testing.T) {
	svc, _ := newTestEconomy(t)
	ctx := context.Background()

	svc.SetBalance(ctx, "g1", "alice", 300)
	svc.SetBalance(ctx, "g1", "bob", 100)

	result, err := svc.Transfer(ctx, "g1", "alice", "bob", 300)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.FromBalance)
	assert.Equal(t, int64(400), result.ToBalance)

	// Total across both accounts is unchanged.
	total := svc.Balance(ctx, "g1", "alice") + svc.Balance(ctx, "g1", "bob")
	assert.Equal(t, int64(400), total)
}

func TestEconomyService_TransferInsufficientFunds(t *testing.T) {
	svc, _ := newTestEconomy(t)
	ctx := context.Background()

	svc.SetBalance(ctx, "g1", "alice", 50)
	svc.SetBalance(ctx, "g1", "bob", 10)

	_, err := svc.Transfer(ctx, "g1", "alice", "bob", 100)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// Both balances are untouched.
	assert.Equal(t, int64(50), svc.Balance(ctx, "g1", "alice"))
	assert.Equal(t, int64(10), svc.Balance(ctx, "g1", "bob"))
}

func TestEconomyService_TransferValidation(t *testing.T) {
	svc, _ := newTestEconomy(t)
	ctx := context.Background()

	_, err := svc.Transfer(ctx, "g1", "alice", "alice", 10)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = svc.Transfer(ctx, "g1", "alice", "bob", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Transfer(ctx, "g1", "alice", "bob", -5)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestEconomyService_SetJob(t *testing.T) {
	svc, _ := newTestEconomy(t)
	ctx := context.Background()

	_, err := svc.SetJob(ctx, "g1", "u1", "astronaut")
	assert.ErrorIs(t, err, ErrUnknownJob)

	job, err := svc.SetJob(ctx, "g1", "u1", "developer")
	require.NoError(t, err)
	assert.Equal(t, "Developer", job.Name)

	assigned, ok := svc.Job(ctx, "g1", "u1")
	require.True(t, ok)
	assert.Equal(t, "developer", assigned.Key)
}

func TestEconomyService_JobUnassigned(t *testing.T) {
	svc, _ := newTestEconomy(t)

	_, ok := svc.Job(context.Background(), "g1", "u1")
	assert.False(t, ok)
}

func TestEconomyService_TopBalances(t *testing.T) {
	svc, _ := newTestEconomy(t)
	ctx := context.Background()

	svc.SetBalance(ctx, "g1", "alice", 300)
	svc.SetBalance(ctx, "g1", "bob", 500)
	svc.SetBalance(ctx, "g1", "carol", 300)
	svc.SetBalance(ctx, "g1", "dave", 100)

	top := svc.TopBalances(ctx, "g1", 3)
	require.Len(t, top, 3)
	assert.Equal(t, "bob", top[0].UserID)
	// Ties break by a stable order.
	assert.Equal(t, "alice", top[1].UserID)
	assert.Equal(t, "carol", top[2].UserID)
}

func TestEconomyService_TopBalancesEmptyGuildVsZeroBalances(t *testing.T) {
	svc, _ := newTestEconomy(t)
	ctx := context.Background()

	// A guild no one has touched yields an empty result.
	assert.Empty(t, svc.TopBalances(ctx, "empty", 10))

	// A guild whose accounts are all at 0 still lists them.
	svc.Balance(ctx, "g1", "u1")
	top := svc.TopBalances(ctx, "g1", 10)
	require.Len(t, top, 1)
	assert.Equal(t, int64(0), top[0].Balance)
}

func TestEconomyService_ResetAccountAndGuild(t *testing.T) {
	svc, _ := newTestEconomy(t)
	ctx := context.Background()

	svc.SetBalance(ctx, "g1", "u1", 500)
	_, err := svc.SetJob(ctx, "g1", "u1", "miner")
	require.NoError(t, err)

	svc.ResetAccount(ctx, "g1", "u1")
	assert.Equal(t, int64(0), svc.Balance(ctx, "g1", "u1"))
	_, ok := svc.Job(ctx, "g1", "u1")
	assert.False(t, ok)

	svc.SetBalance(ctx, "g1", "u2", 42)
	svc.ResetGuild(ctx, "g1")
	assert.Empty(t, svc.TopBalances(ctx, "g1", 10))
}

func TestEconomyService_Withdraw(t *testing.T) {
	svc, _ := newTestEconomy(t)
	ctx := context.Background()

	svc.SetBalance(ctx, "g1", "u1", 100)

	_, err := svc.Withdraw(ctx, "g1", "u1", 150, models.TransactionTypeSlotsBet)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, int64(100), svc.Balance(ctx, "g1", "u1"))

	balance, err := svc.Withdraw(ctx, "g1", "u1", 60, models.TransactionTypeSlotsBet)
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance)
}

func TestEconomyService_SettleDuel(t *testing.T) {
	svc, _ := newTestEconomy(t)
	ctx := context.Background()

	svc.SetBalance(ctx, "g1", "alice", 100)
	svc.SetBalance(ctx, "g1", "bob", 100)

	settlement, err := svc.SettleDuel(ctx, "g1", "alice", "bob", 40, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(80), settlement.Pot)
	assert.Equal(t, int64(140), settlement.ChallengerBalance)
	assert.Equal(t, int64(60), settlement.OpponentBalance)

	// Pot conserved: no coins created or destroyed.
	total := svc.Balance(ctx, "g1", "alice") + svc.Balance(ctx, "g1", "bob")
	assert.Equal(t, int64(200), total)
}

func TestEconomyService_SettleDuelInsufficientFunds(t *testing.T) {
	svc, _ := newTestEconomy(t)
	ctx := context.Background()

	svc.SetBalance(ctx, "g1", "alice", 100)
	svc.SetBalance(ctx, "g1", "bob", 30)

	_, err := svc.SettleDuel(ctx, "g1", "alice", "bob", 40, "alice")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// No funds moved.
	assert.Equal(t, int64(100), svc.Balance(ctx, "g1", "alice"))
	assert.Equal(t, int64(30), svc.Balance(ctx, "g1", "bob"))
}

func TestEconomyService_SaveFailureIsSwallowed(t *testing.T) {
	mockStore := new(MockLedgerStore)
	mockStore.On("SaveLedger", mock.Anything).Return(errors.New("disk full"))

	clock := scheduler.NewFakeClock(testEpoch)
	rng := rand.New(rand.NewSource(1))
	svc := NewEconomyService(make(models.Ledger), mockStore, clock, rng, events.NewBus())

	// The mutation succeeds against in-memory state despite the IO failure.
	balance := svc.AddBalance(context.Background(), "g1", "u1", 100, models.TransactionTypeAdminAdd)
	assert.Equal(t, int64(100), balance)
	assert.Equal(t, int64(100), svc.Balance(context.Background(), "g1", "u1"))

	mockStore.AssertExpectations(t)
}
