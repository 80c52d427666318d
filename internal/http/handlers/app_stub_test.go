package handlers

import (
	"context"
	"net/http"
	"time"

	"scriptbridge/internal/domain"
	"scriptbridge/internal/middleware"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

type simpleRow struct {
	scan func(dest ...any) error
}

func (r simpleRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

type execCall struct {
	query string
	args  []any
}

// stubSQL records Exec calls so tests can assert on usage events.
type stubSQL struct {
	execs   []execCall
	execErr error
}

func (s *stubSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.execs = append(s.execs, execCall{query: query, args: args})
	return pgconn.CommandTag{}, s.execErr
}

func (s *stubSQL) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return simpleRow{}
}

func (s *stubSQL) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

type stubLedger struct {
	credits   *domain.UserCredits
	getErr    error
	deductOK  bool
	deductErr error
	deducted  []int
}

func (l *stubLedger) GetOrReset(_ context.Context, _ string) (*domain.UserCredits, error) {
	if l.getErr != nil {
		return nil, l.getErr
	}
	return l.credits, nil
}

func (l *stubLedger) Deduct(_ context.Context, _ string, amount int) (bool, error) {
	l.deducted = append(l.deducted, amount)
	return l.deductOK, l.deductErr
}

func (l *stubLedger) HasSufficient(_ context.Context, _ string, amount int) (bool, error) {
	if l.getErr != nil {
		return false, l.getErr
	}
	return l.credits != nil && l.credits.CreditsRemaining >= amount, nil
}

type stubUsers struct {
	user      *domain.User
	upsertErr error
	getErr    error
	upserted  []*domain.User
}

func (u *stubUsers) UpsertByGoogleSub(_ context.Context, in *domain.User) (*domain.User, error) {
	u.upserted = append(u.upserted, in)
	if u.upsertErr != nil {
		return nil, u.upsertErr
	}
	return u.user, nil
}

func (u *stubUsers) GetByID(_ context.Context, _ string) (*domain.User, error) {
	if u.getErr != nil {
		return nil, u.getErr
	}
	return u.user, nil
}

type stubConverter struct {
	result *domain.ConversionResult
	err    error
	calls  []domain.ConversionRequest
}

func (c *stubConverter) Convert(_ context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error) {
	c.calls = append(c.calls, req)
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

type verifierFunc func(ctx context.Context, token string) (map[string]any, error)

func (f verifierFunc) VerifyIDToken(ctx context.Context, token string) (map[string]any, error) {
	return f(ctx, token)
}

func testCredits(remaining, limit, used int) *domain.UserCredits {
	return &domain.UserCredits{
		UserID:           "11111111-2222-3333-4444-555555555555",
		CreditsRemaining: remaining,
		DailyLimit:       limit,
		LastResetDate:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		TotalCreditsUsed: used,
	}
}

func newTestApp(ledger *stubLedger, users *stubUsers, conv *stubConverter, verify verifierFunc) (*App, *stubSQL) {
	sql := &stubSQL{}
	app := &App{
		SQL:            sql,
		Users:          users,
		Ledger:         ledger,
		Converter:      conv,
		Google:         verify,
		Logger:         zerolog.Nop(),
		JWTSecret:      "test-secret",
		ConversionCost: 1,
	}
	return app, sql
}

func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.ContextWithUserID(r.Context(), userID))
}
