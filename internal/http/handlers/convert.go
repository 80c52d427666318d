package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"scriptbridge/internal/domain"
	"scriptbridge/internal/middleware"
)

type convertRequest struct {
	Text         string `json:"text"`
	LanguagePair string `json:"languagePair"`
}

type convertResponse struct {
	ConvertedText    string `json:"convertedText"`
	LanguagePair     string `json:"languagePair"`
	CreditsRemaining int    `json:"creditsRemaining"`
}

// ConvertScript proxies one transliteration request to the model. One
// conversion costs ConversionCost credits, deducted before the upstream call;
// a failed upstream call does not refund them.
func (a *App) ConvertScript(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.domainError(w, domain.ErrUnauthenticated)
		return
	}

	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.LanguagePair) == "" {
		a.domainError(w, domain.ErrInvalidRequest)
		return
	}

	// Unknown pair values convert with the default pair's instruction
	// instead of failing.
	pair := domain.ParsePair(req.LanguagePair)

	ok, err := a.Ledger.Deduct(r.Context(), userID, a.ConversionCost)
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("credit deduction failed")
		a.domainError(w, err)
		return
	}
	if !ok {
		a.domainError(w, domain.ErrInsufficientCredits)
		return
	}

	start := time.Now()
	result, err := a.Converter.Convert(r.Context(), domain.ConversionRequest{Text: req.Text, Pair: pair})
	latency := int(time.Since(start).Milliseconds())
	props := map[string]any{
		"pair":    string(pair),
		"locale":  middleware.LocaleFromContext(r.Context()),
		"country": middleware.CountryFromContext(r.Context()),
		"chars":   len(req.Text),
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Str("pair", string(pair)).Msg("conversion failed")
		a.logUsage(r.Context(), userID, "CONVERT_SCRIPT", false, latency, props)
		a.domainError(w, err)
		return
	}
	a.logUsage(r.Context(), userID, "CONVERT_SCRIPT", true, latency, props)

	remaining := 0
	if uc, err := a.Ledger.GetOrReset(r.Context(), userID); err == nil {
		remaining = uc.CreditsRemaining
	}
	a.json(w, http.StatusOK, convertResponse{
		ConvertedText:    result.ConvertedText,
		LanguagePair:     string(pair),
		CreditsRemaining: remaining,
	})
}
