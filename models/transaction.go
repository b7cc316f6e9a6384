package models

// TransactionType categorizes a balance change for the audit trail.
type TransactionType string

const (
	TransactionTypeDaily       TransactionType = "daily"
	TransactionTypeWeekly      TransactionType = "weekly"
	TransactionTypeWork        TransactionType = "work"
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"
	TransactionTypeSlotsBet    TransactionType = "slots_bet"
	TransactionTypeSlotsPayout TransactionType = "slots_payout"
	TransactionTypeDuelStake   TransactionType = "duel_stake"
	TransactionTypeDuelWin     TransactionType = "duel_win"
	TransactionTypeAdminAdd    TransactionType = "admin_add"
	TransactionTypeAdminSet    TransactionType = "admin_set"
	TransactionTypeAdminReset  TransactionType = "admin_reset"
)
