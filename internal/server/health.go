package server

import (
	"context"
	"net/http"

	"github.com/florianilch/agency/types"
)

// Health probe states.
const (
	HealthStatusAlive       = "alive"
	HealthStatusReady       = "ready"
	HealthStatusUnavailable = "unavailable"
)

// HealthStatus is the body of the health probe responses.
type HealthStatus struct {
	Status string `json:"status"`
	// Conversions lists the source schemas the service accepts while ready.
	Conversions []types.Provider `json:"conversions,omitempty"`
}

// livenessHandler reports that the process is up. Conversion is stateless, so
// there is nothing else that could be unhealthy.
func livenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeProbe(r.Context(), w, http.StatusOK, HealthStatus{Status: HealthStatusAlive})
	}
}

// readinessHandler reports 200 while checker is ready and 503 otherwise, e.g.
// during startup and while draining on shutdown.
func readinessHandler(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !checker.IsReady() {
			writeProbe(r.Context(), w, http.StatusServiceUnavailable, HealthStatus{Status: HealthStatusUnavailable})
			return
		}
		writeProbe(r.Context(), w, http.StatusOK, HealthStatus{
			Status:      HealthStatusReady,
			Conversions: []types.Provider{types.ProviderOpenAI, types.ProviderAnthropic},
		})
	}
}

func writeProbe(ctx context.Context, w http.ResponseWriter, status int, body HealthStatus) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(ctx, w, body, status)
}
