package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vicebot/events"
	"vicebot/models"
	"vicebot/scheduler"
	"vicebot/storage"
)

type duelFixture struct {
	duels   DuelService
	economy EconomyService
	sched   *scheduler.Manual
	clock   *scheduler.FakeClock
}

func newTestDuel(t *testing.T) *duelFixture {
	t.Helper()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	clock := scheduler.NewFakeClock(testEpoch)
	sched := scheduler.NewManual(clock)
	bus := events.NewBus()
	economy := NewEconomyService(store.LoadLedger(), store, clock, rand.New(rand.NewSource(1)), bus)
	duels := NewDuelService(economy, sched, clock, rand.New(rand.NewSource(2)), bus)
	return &duelFixture{duels: duels, economy: economy, sched: sched, clock: clock}
}

func (f *duelFixture) forceWinner(winnerID string) {
	f.duels.(*duelService).flip = func(_ *rand.Rand, _, _ string) string {
		return winnerID
	}
}

func TestDuelService_ProposeValidation(t *testing.T) {
	f := newTestDuel(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.duels.Propose(ctx, "g1", "alice", "alice", 10), ErrInvalidTarget)
	assert.ErrorIs(t, f.duels.Propose(ctx, "g1", "alice", "bob", 0), ErrInvalidAmount)
	assert.ErrorIs(t, f.duels.Propose(ctx, "g1", "alice", "bob", -5), ErrInvalidAmount)

	// Challenger broke.
	f.economy.SetBalance(ctx, "g1", "bob", 100)
	assert.ErrorIs(t, f.duels.Propose(ctx, "g1", "alice", "bob", 50), ErrInsufficientFunds)

	// Opponent broke.
	f.economy.SetBalance(ctx, "g1", "alice", 100)
	f.economy.SetBalance(ctx, "g1", "bob", 10)
	assert.ErrorIs(t, f.duels.Propose(ctx, "g1", "alice", "bob", 50), ErrInsufficientFunds)

	f.economy.SetBalance(ctx, "g1", "bob", 100)
	assert.NoError(t, f.duels.Propose(ctx, "g1", "alice", "bob", 50))
}

func TestDuelService_AcceptSettles(t *testing.T) {
	f := newTestDuel(t)
	ctx := context.Background()

	f.economy.SetBalance(ctx, "g1", "alice", 100)
	f.economy.SetBalance(ctx, "g1", "bob", 100)
	f.forceWinner("bob")

	f.duels.Open("g1", "m1", "alice", "bob", 40, nil)

	resolution, err := f.duels.Respond(ctx, "g1", "m1", "bob", true)
	require.NoError(t, err)
	assert.Equal(t, models.DuelStateSettled, resolution.State)
	assert.Equal(t, "bob", resolution.WinnerID)
	assert.Equal(t, "alice", resolution.LoserID)
	assert.Equal(t, int64(80), resolution.Pot)
	assert.Equal(t, int64(60), resolution.ChallengerBalance)
	assert.Equal(t, int64(140), resolution.OpponentBalance)

	// Pot conserved.
	total := f.economy.Balance(ctx, "g1", "alice") + f.economy.Balance(ctx, "g1", "bob")
	assert.Equal(t, int64(200), total)

	// The challenge is consumed.
	_, err = f.duels.Respond(ctx, "g1", "m1", "bob", true)
	assert.ErrorIs(t, err, ErrDuelNotFound)
}

func TestDuelService_Decline(t *testing.T) {
	f := newTestDuel(t)
	ctx := context.Background()

	f.economy.SetBalance(ctx, "g1", "alice", 100)
	f.economy.SetBalance(ctx, "g1", "bob", 100)

	f.duels.Open("g1", "m1", "alice", "bob", 40, nil)

	resolution, err := f.duels.Respond(ctx, "g1", "m1", "bob", false)
	require.NoError(t, err)
	assert.Equal(t, models.DuelStateDeclined, resolution.State)

	// No funds move on a decline.
	assert.Equal(t, int64(100), f.economy.Balance(ctx, "g1", "alice"))
	assert.Equal(t, int64(100), f.economy.Balance(ctx, "g1", "bob"))
}

func TestDuelService_NotOpponent(t *testing.T) {
	f := newTestDuel(t)
	ctx := context.Background()

	f.duels.Open("g1", "m1", "alice", "bob", 40, nil)

	// Neither the challenger nor a bystander may answer.
	_, err := f.duels.Respond(ctx, "g1", "m1", "alice", true)
	assert.ErrorIs(t, err, ErrNotOpponent)
	_, err = f.duels.Respond(ctx, "g1", "m1", "carol", true)
	assert.ErrorIs(t, err, ErrNotOpponent)

	// The challenge stays open for the real opponent.
	_, err = f.duels.Respond(ctx, "g1", "m1", "bob", false)
	assert.NoError(t, err)
}

func TestDuelService_Expiry(t *testing.T) {
	f := newTestDuel(t)

	var expired []models.PendingDuel
	f.duels.Open("g1", "m1", "alice", "bob", 40, func(d models.PendingDuel) {
		expired = append(expired, d)
	})

	f.sched.Advance(59 * time.Second)
	assert.Empty(t, expired)

	f.sched.Advance(time.Second)
	require.Len(t, expired, 1)
	assert.Equal(t, "m1", expired[0].MessageID)
	assert.Equal(t, int64(40), expired[0].Bet)

	_, err := f.duels.Respond(context.Background(), "g1", "m1", "bob", true)
	assert.ErrorIs(t, err, ErrDuelNotFound)
}

func TestDuelService_RespondAfterDeadlineWithoutSweep(t *testing.T) {
	f := newTestDuel(t)

	f.duels.Open("g1", "m1", "alice", "bob", 40, nil)

	// The clock passes the deadline but the scheduler has not swept yet.
	f.clock.Advance(2 * time.Minute)

	_, err := f.duels.Respond(context.Background(), "g1", "m1", "bob", true)
	assert.ErrorIs(t, err, ErrDuelExpired)

	// The sweep later finds nothing.
	f.sched.Advance(0)
	_, err = f.duels.Respond(context.Background(), "g1", "m1", "bob", true)
	assert.ErrorIs(t, err, ErrDuelNotFound)
}

func TestDuelService_AcceptWithDepletedFundsCancels(t *testing.T) {
	f := newTestDuel(t)
	ctx := context.Background()

	f.economy.SetBalance(ctx, "g1", "alice", 100)
	f.economy.SetBalance(ctx, "g1", "bob", 100)

	f.duels.Open("g1", "m1", "alice", "bob", 40, nil)

	// The challenger loses their stake money while the challenge is open.
	f.economy.SetBalance(ctx, "g1", "alice", 10)

	resolution, err := f.duels.Respond(ctx, "g1", "m1", "bob", true)
	require.NoError(t, err)
	assert.Equal(t, models.DuelStateCancelled, resolution.State)

	assert.Equal(t, int64(10), f.economy.Balance(ctx, "g1", "alice"))
	assert.Equal(t, int64(100), f.economy.Balance(ctx, "g1", "bob"))
}

func TestDuelService_SettlementCancelsExpiryTask(t *testing.T) {
	f := newTestDuel(t)
	ctx := context.Background()

	f.economy.SetBalance(ctx, "g1", "alice", 100)
	f.economy.SetBalance(ctx, "g1", "bob", 100)
	f.forceWinner("alice")

	var expired int
	f.duels.Open("g1", "m1", "alice", "bob", 40, func(models.PendingDuel) {
		expired++
	})

	_, err := f.duels.Respond(ctx, "g1", "m1", "bob", true)
	require.NoError(t, err)

	f.sched.Advance(models.DuelTimeout * 2)
	assert.Zero(t, expired)
}

func TestDuelService_ConcurrentChallengesAreIndependent(t *testing.T) {
	f := newTestDuel(t)
	ctx := context.Background()

	for _, user := range []string{"alice", "bob", "carol", "dave"} {
		f.economy.SetBalance(ctx, "g1", user, 100)
	}
	f.forceWinner("bob")

	f.duels.Open("g1", "m1", "alice", "bob", 10, nil)
	f.duels.Open("g1", "m2", "carol", "dave", 20, nil)

	resolution, err := f.duels.Respond(ctx, "g1", "m1", "bob", true)
	require.NoError(t, err)
	assert.Equal(t, models.DuelStateSettled, resolution.State)

	// The second challenge is untouched.
	resolution, err = f.duels.Respond(ctx, "g1", "m2", "dave", false)
	require.NoError(t, err)
	assert.Equal(t, models.DuelStateDeclined, resolution.State)
}
