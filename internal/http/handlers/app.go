package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"scriptbridge/internal/domain"
	"scriptbridge/internal/infra"
	"scriptbridge/internal/middleware"
	"scriptbridge/internal/providers/translit"
	"scriptbridge/internal/sqlinline"

	"github.com/rs/zerolog"
)

// GoogleVerifier validates Google ID tokens during sign-in.
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (map[string]any, error)
}

// App is the handler container: everything the HTTP surface needs, injected
// once at startup.
type App struct {
	SQL            infra.SQLExecutor
	Users          domain.UserRepository
	Ledger         domain.CreditLedger
	Converter      translit.Converter
	Google         GoogleVerifier
	Logger         zerolog.Logger
	JWTSecret      string
	ConversionCost int
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// domainError maps sentinel errors onto HTTP responses. The envelope shape
// stays uniform across all of them.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		a.error(w, http.StatusBadRequest, "invalid_request", "text and language pair are required")
	case errors.Is(err, domain.ErrUnauthenticated):
		a.error(w, http.StatusUnauthorized, "unauthenticated", "missing user context")
	case errors.Is(err, domain.ErrInsufficientCredits):
		a.error(w, http.StatusPaymentRequired, "insufficient_credits", "daily credit balance too low")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrConfiguration):
		a.error(w, http.StatusInternalServerError, "configuration_error", domain.ErrConfiguration.Error())
	case errors.Is(err, domain.ErrUpstream):
		a.error(w, http.StatusBadGateway, "upstream_error", "failed to convert text")
	case errors.Is(err, domain.ErrStorage):
		a.error(w, http.StatusInternalServerError, "storage_error", "temporary storage failure")
	default:
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// logUsage records a usage event. Best-effort: failures are logged, never
// surfaced to the caller.
func (a *App) logUsage(ctx context.Context, userID, eventType string, success bool, latencyMS int, props map[string]any) {
	if a.SQL == nil {
		return
	}
	raw, err := json.Marshal(props)
	if err != nil {
		raw = []byte(`{}`)
	}
	requestID := middleware.RequestIDFromContext(ctx)
	if _, err := a.SQL.Exec(ctx, sqlinline.QInsertUsageEvent, userID, requestID, eventType, success, latencyMS, raw); err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Str("event", eventType).Msg("log usage failed")
	}
}
