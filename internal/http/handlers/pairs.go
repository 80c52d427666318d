package handlers

import (
	"net/http"

	"scriptbridge/internal/domain"
)

func (a *App) Pairs(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"pairs": domain.Pairs()})
}
