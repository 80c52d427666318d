package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var converterPage []byte

// WebUI serves the embedded converter page.
func (a *App) WebUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(converterPage)
}
