package handlers

import (
	"net/http"

	"scriptbridge/internal/domain"
)

type creditsResponse struct {
	CreditsRemaining int    `json:"creditsRemaining"`
	DailyLimit       int    `json:"dailyLimit"`
	LastResetDate    string `json:"lastResetDate"`
	TotalCreditsUsed int    `json:"totalCreditsUsed"`
}

// Credits returns the caller's ledger row, refilling it first when the
// calendar day has rolled over.
func (a *App) Credits(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.domainError(w, domain.ErrUnauthenticated)
		return
	}
	uc, err := a.Ledger.GetOrReset(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("fetch credits failed")
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toCreditsResponse(uc))
}

func toCreditsResponse(uc *domain.UserCredits) creditsResponse {
	return creditsResponse{
		CreditsRemaining: uc.CreditsRemaining,
		DailyLimit:       uc.DailyLimit,
		LastResetDate:    uc.LastResetDate.Format("2006-01-02"),
		TotalCreditsUsed: uc.TotalCreditsUsed,
	}
}
