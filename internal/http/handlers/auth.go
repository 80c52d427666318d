package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"scriptbridge/internal/domain"
	"scriptbridge/internal/middleware"
)

type googleVerifyRequest struct {
	IDToken string `json:"id_token"`
}

type googleVerifyResponse struct {
	Token   string          `json:"token"`
	User    userProfileDTO  `json:"user"`
	Credits creditsResponse `json:"credits"`
}

type userProfileDTO struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	Locale  string `json:"locale"`
}

// AuthGoogleVerify exchanges a Google ID token for a session JWT, upserting
// the user row and touching the credit ledger so the row exists before the
// first conversion.
func (a *App) AuthGoogleVerify(w http.ResponseWriter, r *http.Request) {
	var req googleVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_request", "invalid payload")
		return
	}
	if req.IDToken == "" {
		a.error(w, http.StatusBadRequest, "invalid_request", "id_token required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	claims, err := a.Google.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		a.Logger.Error().Err(err).Msg("google verify failed")
		a.error(w, http.StatusUnauthorized, "unauthenticated", "invalid google token")
		return
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)
	locale, _ := claims["locale"].(string)
	if locale == "" {
		locale = middleware.LocaleFromContext(r.Context())
	}

	user, err := a.Users.UpsertByGoogleSub(r.Context(), &domain.User{
		GoogleSub: sub,
		Email:     email,
		Name:      name,
		Picture:   picture,
		Locale:    locale,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("upsert user failed")
		a.domainError(w, err)
		return
	}

	credits, err := a.Ledger.GetOrReset(r.Context(), user.ID)
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", user.ID).Msg("init credits failed")
		a.domainError(w, err)
		return
	}

	token, err := middleware.SignJWT(a.JWTSecret, middleware.TokenClaims{
		Sub:      user.ID,
		Locale:   user.Locale,
		Exp:      time.Now().Add(24 * time.Hour).Unix(),
		Issuer:   "scriptbridge",
		Audience: "scriptbridge-web",
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}

	a.json(w, http.StatusOK, googleVerifyResponse{
		Token:   token,
		User:    toUserProfile(user),
		Credits: toCreditsResponse(credits),
	})
}

// Me returns the signed-in user's profile and current credit balance.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.domainError(w, domain.ErrUnauthenticated)
		return
	}
	user, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	credits, err := a.Ledger.GetOrReset(r.Context(), userID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"user":    toUserProfile(user),
		"credits": toCreditsResponse(credits),
	})
}

func toUserProfile(u *domain.User) userProfileDTO {
	return userProfileDTO{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Picture: u.Picture,
		Locale:  u.Locale,
	}
}
