package service

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors surfaced by the services. All of them are recovered at the
// bot dispatch boundary and rendered as user-visible embeds.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidTarget     = errors.New("invalid target user")
	ErrUnknownJob        = errors.New("unknown job")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrNotOpponent       = errors.New("not the challenged player")
	ErrDuelNotFound      = errors.New("duel not found")
	ErrDuelExpired       = errors.New("duel expired")
)

// CooldownError means a timed reward was claimed before its cooldown
// elapsed. Remaining is reported for user-facing display.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("on cooldown for another %s", e.Remaining)
}
