package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scriptbridge/internal/domain"
	"scriptbridge/internal/middleware"
)

func TestAuthGoogleVerifyIssuesSessionToken(t *testing.T) {
	users := &stubUsers{user: &domain.User{
		ID:     "11111111-2222-3333-4444-555555555555",
		Email:  "asha@example.com",
		Name:   "Asha",
		Locale: "bn",
	}}
	ledger := &stubLedger{credits: testCredits(50, 50, 0)}
	verify := verifierFunc(func(_ context.Context, token string) (map[string]any, error) {
		if token != "google-id-token" {
			t.Errorf("verifier got token %q", token)
		}
		return map[string]any{
			"sub":    "google-sub-1",
			"email":  "asha@example.com",
			"name":   "Asha",
			"locale": "bn",
		}, nil
	})
	app, _ := newTestApp(ledger, users, &stubConverter{}, verify)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/google/verify",
		strings.NewReader(`{"id_token":"google-id-token"}`))
	rec := httptest.NewRecorder()
	app.AuthGoogleVerify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID     string `json:"id"`
			Email  string `json:"email"`
			Locale string `json:"locale"`
		} `json:"user"`
		Credits struct {
			CreditsRemaining int `json:"creditsRemaining"`
			DailyLimit       int `json:"dailyLimit"`
		} `json:"credits"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	claims, err := middleware.VerifyJWT("test-secret", resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Sub != users.user.ID {
		t.Errorf("token sub = %q, want %q", claims.Sub, users.user.ID)
	}
	if resp.User.Email != "asha@example.com" || resp.User.Locale != "bn" {
		t.Errorf("user = %+v", resp.User)
	}
	if resp.Credits.CreditsRemaining != 50 || resp.Credits.DailyLimit != 50 {
		t.Errorf("credits = %+v", resp.Credits)
	}
	if len(users.upserted) != 1 || users.upserted[0].GoogleSub != "google-sub-1" {
		t.Errorf("upserted = %+v", users.upserted)
	}
}

func TestAuthGoogleVerifyRejectsMissingToken(t *testing.T) {
	app, _ := newTestApp(&stubLedger{}, &stubUsers{}, &stubConverter{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/google/verify", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	app.AuthGoogleVerify(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAuthGoogleVerifyRejectsInvalidToken(t *testing.T) {
	verify := verifierFunc(func(_ context.Context, _ string) (map[string]any, error) {
		return nil, errors.New("signature mismatch")
	})
	users := &stubUsers{}
	app, _ := newTestApp(&stubLedger{}, users, &stubConverter{}, verify)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/google/verify",
		strings.NewReader(`{"id_token":"forged"}`))
	rec := httptest.NewRecorder()
	app.AuthGoogleVerify(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if len(users.upserted) != 0 {
		t.Errorf("user upserted despite failed verification")
	}
}

func TestMeReturnsProfileAndCredits(t *testing.T) {
	users := &stubUsers{user: &domain.User{ID: "u-1", Email: "asha@example.com", Name: "Asha", Locale: "bn"}}
	ledger := &stubLedger{credits: testCredits(7, 50, 43)}
	app, _ := newTestApp(ledger, users, &stubConverter{}, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/v1/me", nil), "u-1")
	rec := httptest.NewRecorder()
	app.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		User    userProfileDTO  `json:"user"`
		Credits creditsResponse `json:"credits"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.ID != "u-1" {
		t.Errorf("user.id = %q", resp.User.ID)
	}
	if resp.Credits.CreditsRemaining != 7 || resp.Credits.TotalCreditsUsed != 43 {
		t.Errorf("credits = %+v", resp.Credits)
	}
}

func TestMeUnknownUserIs404(t *testing.T) {
	users := &stubUsers{getErr: domain.ErrNotFound}
	app, _ := newTestApp(&stubLedger{}, users, &stubConverter{}, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/v1/me", nil), "ghost")
	rec := httptest.NewRecorder()
	app.Me(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
