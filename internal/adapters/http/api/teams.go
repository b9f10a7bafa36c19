package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/harmony/internal/domain/access"
	"github.com/okian/harmony/internal/domain/scoring"
	"github.com/okian/harmony/internal/domain/types"
)

// TeamDependencies defines the interface for task matching operations.
type TeamDependencies interface {
	Tasks(ctx context.Context) ([]string, error)
	RankTeams(ctx context.Context, task string, topN int) (types.TeamRanking, error)
	BestSolo(ctx context.Context, task string, n int) ([]types.SoloEntry, error)
}

type tasksResponse struct {
	Tasks []string `json:"tasks"`
}

type soloResponse struct {
	Task      string            `json:"task"`
	Employees []types.SoloEntry `json:"employees"`
}

// TeamsHandler handles task matching requests.
type TeamsHandler struct {
	deps   TeamDependencies
	limits Limits
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies, limits Limits) *TeamsHandler {
	return &TeamsHandler{deps: deps, limits: limits}
}

// HandleTasks handles GET /api/tasks requests.
func (h *TeamsHandler) HandleTasks(w http.ResponseWriter, r *http.Request, caps access.Capabilities) {
	const op = "api.get_tasks"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if !caps.TaskMatching {
		denied(w, op)
		return
	}
	tasks, err := h.deps.Tasks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, tasksResponse{Tasks: tasks})
}

// HandleTeams handles GET /api/teams?task=T&top=N requests.
func (h *TeamsHandler) HandleTeams(w http.ResponseWriter, r *http.Request, caps access.Capabilities) {
	const op = "api.get_teams"
	task, topN, ok := h.matchParams(w, r, caps, op)
	if !ok {
		return
	}
	ranking, err := h.deps.RankTeams(r.Context(), task, topN)
	switch {
	case errors.Is(err, scoring.ErrInsufficientCandidates):
		writeError(w, http.StatusUnprocessableEntity, "insufficient_candidates", scoring.ErrInsufficientCandidates)
		return
	case errors.Is(err, scoring.ErrCandidatePoolTooLarge):
		writeError(w, http.StatusUnprocessableEntity, "candidate_pool_too_large", Wrap(op, err))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

// HandleSolo handles GET /api/solo?task=T&top=N requests.
func (h *TeamsHandler) HandleSolo(w http.ResponseWriter, r *http.Request, caps access.Capabilities) {
	const op = "api.get_solo"
	task, n, ok := h.matchParams(w, r, caps, op)
	if !ok {
		return
	}
	solo, err := h.deps.BestSolo(r.Context(), task, n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, soloResponse{Task: task, Employees: solo})
}

// matchParams validates method, capability, task and top for the task
// matching routes. It writes the error response itself when ok is false.
func (h *TeamsHandler) matchParams(w http.ResponseWriter, r *http.Request, caps access.Capabilities, op string) (task string, topN int, ok bool) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return "", 0, false
	}
	if !caps.TaskMatching {
		denied(w, op)
		return "", 0, false
	}
	task = strings.TrimSpace(r.URL.Query().Get("task"))
	if task == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing task")))
		return "", 0, false
	}
	topN, err := queryCount(r, "top", h.limits.DefaultTopN, h.limits.MaxTopN)
	if err != nil {
		writeCountError(w, op, "top", err)
		return "", 0, false
	}
	return task, topN, true
}
