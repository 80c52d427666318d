package repo

import (
	"context"
	"fmt"

	"scriptbridge/internal/domain"
	"scriptbridge/internal/infra"
	"scriptbridge/internal/sqlinline"
)

// CreditLedgerPG implements domain.CreditLedger backed by PostgreSQL. All
// mutations are single conditional statements so overlapping requests cannot
// observe a negative balance or double-apply the daily reset.
type CreditLedgerPG struct {
	sql        infra.SQLExecutor
	dailyLimit int
}

// NewCreditLedger creates a CreditLedgerPG. dailyLimit seeds brand-new rows;
// existing rows keep whatever limit an operator assigned them.
func NewCreditLedger(sql infra.SQLExecutor, dailyLimit int) *CreditLedgerPG {
	return &CreditLedgerPG{sql: sql, dailyLimit: dailyLimit}
}

// GetOrReset returns the ledger row for userID, creating it with the default
// daily limit on first touch and refilling the balance on date rollover.
func (r *CreditLedgerPG) GetOrReset(ctx context.Context, userID string) (*domain.UserCredits, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QGetOrResetCredits, userID, r.dailyLimit)
	var uc domain.UserCredits
	if err := row.Scan(
		&uc.UserID,
		&uc.CreditsRemaining,
		&uc.DailyLimit,
		&uc.LastResetDate,
		&uc.TotalCreditsUsed,
		&uc.CreatedAt,
		&uc.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("get or reset credits: %w (%w)", err, domain.ErrStorage)
	}
	return &uc, nil
}

// Deduct spends amount credits. The conditional update only matches a
// same-day row holding enough balance, so two racing deductions cannot both
// succeed past the remaining credits. A date rollover between the reset and
// the update shows up as zero matched rows and is retried once.
func (r *CreditLedgerPG) Deduct(ctx context.Context, userID string, amount int) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("deduct amount must be positive: %w", domain.ErrInvalidRequest)
	}

	for attempt := 0; attempt < 2; attempt++ {
		uc, err := r.GetOrReset(ctx, userID)
		if err != nil {
			return false, err
		}
		if uc.CreditsRemaining < amount {
			return false, nil
		}

		var remaining, used int
		err = r.sql.QueryRow(ctx, sqlinline.QDeductCredits, userID, amount).Scan(&remaining, &used)
		if err == nil {
			return true, nil
		}
		if !infra.IsNoRows(err) {
			return false, fmt.Errorf("deduct credits: %w (%w)", err, domain.ErrStorage)
		}
		// No row matched: either a concurrent deduction drained the balance
		// or the calendar day rolled over mid-flight. Re-check once.
	}
	return false, nil
}

// HasSufficient reports whether the user's current balance covers amount.
func (r *CreditLedgerPG) HasSufficient(ctx context.Context, userID string, amount int) (bool, error) {
	uc, err := r.GetOrReset(ctx, userID)
	if err != nil {
		return false, err
	}
	return uc.CreditsRemaining >= amount, nil
}

var _ domain.CreditLedger = (*CreditLedgerPG)(nil)
