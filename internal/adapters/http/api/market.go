package api

import (
	"net/http"

	"github.com/okian/careerlens/internal/domain/model"
)

type marketResponse struct {
	Career  string       `json:"career"`
	Market  model.Market `json:"market"`
	Roadmap []string     `json:"roadmap"`
}

// MarketHandler serves per-career demand and learning milestones.
type MarketHandler struct {
	deps InsightDependencies
}

// NewMarketHandler creates a new market handler.
func NewMarketHandler(deps InsightDependencies) *MarketHandler {
	return &MarketHandler{deps: deps}
}

// HandleMarket handles GET /market/{career}. Unknown careers get fallback
// figures rather than 404.
func (h *MarketHandler) HandleMarket(w http.ResponseWriter, r *http.Request) {
	career := r.PathValue("career")
	writeJSON(w, http.StatusOK, marketResponse{
		Career:  career,
		Market:  h.deps.Market(career),
		Roadmap: h.deps.Roadmap(career),
	})
}
