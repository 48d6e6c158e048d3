package api

import (
	"net/http"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]any
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
	insights      InsightDependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider, insights InsightDependencies) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider, insights: insights}
}

// HandleStats handles GET /stats: assessment analytics plus runtime stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.stats"
	analytics, err := h.insights.Analytics(r.Context())
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"analytics": analytics,
		"service":   h.statsProvider.GetStats(),
	})
}
