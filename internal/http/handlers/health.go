package handlers

import (
	"net/http"
)

// Health is a liveness probe. It deliberately skips the database so a
// degraded pool does not pull the whole service out of rotation.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok", "service": "scriptbridge"})
}
