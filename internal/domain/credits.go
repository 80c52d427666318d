package domain

import (
	"context"
	"time"
)

// UserCredits is the per-user daily credit ledger row. CreditsRemaining never
// goes negative and TotalCreditsUsed only grows; LastResetDate tracks the last
// calendar day the balance was refilled to DailyLimit.
type UserCredits struct {
	UserID           string
	CreditsRemaining int
	DailyLimit       int
	LastResetDate    time.Time
	TotalCreditsUsed int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CreditLedger manages daily conversion credits.
type CreditLedger interface {
	// GetOrReset returns the user's ledger row, creating it on first touch and
	// refilling the balance when the calendar day has rolled over. Calling it
	// twice on the same day without a deduction yields the same balance.
	GetOrReset(ctx context.Context, userID string) (*UserCredits, error)

	// Deduct atomically spends amount credits. It returns false without
	// mutating anything when the balance is too low.
	Deduct(ctx context.Context, userID string, amount int) (bool, error)

	// HasSufficient reports whether the user could afford amount credits right now.
	HasSufficient(ctx context.Context, userID string, amount int) (bool, error)
}
