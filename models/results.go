package models

// ClaimResult is the outcome of a successful daily or weekly claim.
type ClaimResult struct {
	Reward     int64
	NewBalance int64
}

// WorkResult is the outcome of a successful work shift.
type WorkResult struct {
	JobName    string
	Blurb      string
	Earned     int64
	NewBalance int64
}

// TransferResult is the outcome of a successful transfer between two users.
type TransferResult struct {
	Amount      int64
	FromBalance int64
	ToBalance   int64
}

// SlotsResult is the outcome of one slot machine spin.
type SlotsResult struct {
	Reels      [3]string
	Multiplier int64
	Label      string
	Bet        int64
	Payout     int64
	Net        int64
	NewBalance int64
}

// DuelSettlement reports the money movement of a settled duel.
type DuelSettlement struct {
	Pot               int64
	ChallengerBalance int64
	OpponentBalance   int64
}

// RPSResult is the outcome of one rock-paper-scissors round.
type RPSResult struct {
	PlayerMove string
	BotMove    string
	Outcome    string // "win", "lose" or "tie"
	Wins       int64  // caller's leaderboard wins after this round
}

// BalanceEntry is one row of the rich list.
type BalanceEntry struct {
	UserID  string
	Balance int64
}

// WinEntry is one row of the RPS leaderboard.
type WinEntry struct {
	UserID string
	Wins   int64
}
