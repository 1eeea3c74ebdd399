package handler

import (
	"net/http"
	"time"
)

var startedAt = time.Now()

// HealthcheckHandler responde ao liveness com o tempo desde a subida do processo
func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]any{
			"status":         "ok",
			"time":           time.Now().UTC().Format(time.RFC3339),
			"uptime_seconds": int64(time.Since(startedAt).Seconds()),
		})
	})
}
