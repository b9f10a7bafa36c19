// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/harmony/internal/domain/dataset"
	"github.com/okian/harmony/internal/domain/types"
	"github.com/okian/harmony/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	TeamDependencies
	InsightsDependencies
	ProfileDependencies
}

// Table mirrors the read shape of reference tables.
type Table = dataset.Table

// TeamRanking mirrors the read shape of a ranking run.
type TeamRanking = types.TeamRanking

// Limits bound the ranking and leaderboard sizes a caller may request.
type Limits struct {
	DefaultTopN int
	MaxTopN     int
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	sessionHandler   *SessionHandler
	teamsHandler     *TeamsHandler
	insightsHandler  *InsightsHandler
	profilesHandler  *ProfilesHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, limits Limits) *Server {
	if limits.MaxTopN < 1 {
		limits.MaxTopN = 50
	}
	if limits.DefaultTopN < 1 || limits.DefaultTopN > limits.MaxTopN {
		limits.DefaultTopN = min(3, limits.MaxTopN)
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		sessionHandler:   NewSessionHandler(),
		teamsHandler:     NewTeamsHandler(deps, limits),
		insightsHandler:  NewInsightsHandler(deps, limits.MaxTopN),
		profilesHandler:  NewProfilesHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/session", MetricsMiddleware(withCapabilities(s.sessionHandler.HandleSession), "session"))
	mux.HandleFunc("/api/tasks", MetricsMiddleware(withCapabilities(s.teamsHandler.HandleTasks), "tasks"))
	mux.HandleFunc("/api/teams", MetricsMiddleware(withCapabilities(s.teamsHandler.HandleTeams), "teams"))
	mux.HandleFunc("/api/solo", MetricsMiddleware(withCapabilities(s.teamsHandler.HandleSolo), "solo"))
	mux.HandleFunc("/api/insights/teams", MetricsMiddleware(withCapabilities(s.insightsHandler.HandleTopTeams), "insights_teams"))
	mux.HandleFunc("/api/insights/solo", MetricsMiddleware(withCapabilities(s.insightsHandler.HandleTopSolo), "insights_solo"))
	mux.HandleFunc("/api/profiles", MetricsMiddleware(withCapabilities(s.profilesHandler.HandleProfiles), "profiles"))
	mux.HandleFunc("/api/profiles/me", MetricsMiddleware(withCapabilities(s.profilesHandler.HandleSelf), "profile_self"))
	mux.HandleFunc("/api/traits", MetricsMiddleware(withCapabilities(s.profilesHandler.HandleTraits), "traits"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before writing the status so an encoding failure
// still reaches the client as a 500 and is logged.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Get().Error(context.Background(), "failed to encode response",
			logger.Int("status", status), logger.Error(err))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Code: "internal_error", Message: "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// queryCount reads a positive integer query parameter. A missing value
// yields def; values above ceiling are reported as ErrLimitExceeded.
func queryCount(r *http.Request, name string, def, ceiling int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrBadRequest
	}
	if n > ceiling {
		return 0, ErrLimitExceeded
	}
	return n, nil
}

// writeCountError maps a queryCount failure to a 400 response.
func writeCountError(w http.ResponseWriter, op, name string, err error) {
	code := "bad_request"
	if errors.Is(err, ErrLimitExceeded) {
		code = "limit_exceeded"
	}
	writeError(w, http.StatusBadRequest, code, WrapKind(op, err, fmt.Errorf("invalid %s", name)))
}
