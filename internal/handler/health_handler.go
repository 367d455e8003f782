package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger es cualquier dependencia que el health check revisa (Mongo, Redis).
type Pinger func(ctx context.Context) error

// Health responde 200 si todas las dependencias contestan y 503 si alguna falla.
//
// @Summary Healthcheck
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func Health(deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		out := map[string]string{"status": "ok"}
		for name, ping := range deps {
			if err := ping(ctx); err != nil {
				status = http.StatusServiceUnavailable
				out["status"] = "degraded"
				out[name] = err.Error()
				continue
			}
			out[name] = "ok"
		}
		writeJSON(w, status, out)
	}
}
