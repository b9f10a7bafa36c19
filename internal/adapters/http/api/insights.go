package api

import (
	"context"
	"net/http"

	"github.com/okian/harmony/internal/domain/access"
)

// InsightsDependencies defines the interface for the precomputed leaderboards.
type InsightsDependencies interface {
	TopTeams(ctx context.Context, limit int) (Table, error)
	TopSolo(ctx context.Context, limit int) (Table, error)
}

// InsightsHandler serves the static leaderboards.
type InsightsHandler struct {
	deps     InsightsDependencies
	maxLimit int
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(deps InsightsDependencies, maxLimit int) *InsightsHandler {
	return &InsightsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleTopTeams handles GET /api/insights/teams?limit=N requests.
func (h *InsightsHandler) HandleTopTeams(w http.ResponseWriter, r *http.Request, caps access.Capabilities) {
	h.serve(w, r, caps, "api.get_top_teams", h.deps.TopTeams)
}

// HandleTopSolo handles GET /api/insights/solo?limit=N requests.
func (h *InsightsHandler) HandleTopSolo(w http.ResponseWriter, r *http.Request, caps access.Capabilities) {
	h.serve(w, r, caps, "api.get_top_solo", h.deps.TopSolo)
}

func (h *InsightsHandler) serve(w http.ResponseWriter, r *http.Request, caps access.Capabilities, op string,
	read func(context.Context, int) (Table, error),
) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if !caps.Insights {
		denied(w, op)
		return
	}
	// 0 lets the service apply its configured default.
	limit, err := queryCount(r, "limit", 0, h.maxLimit)
	if err != nil {
		writeCountError(w, op, "limit", err)
		return
	}
	table, err := read(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, table)
}
