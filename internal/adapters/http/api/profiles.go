package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/harmony/internal/domain/access"
)

// ProfileDependencies defines the interface for profile reads.
type ProfileDependencies interface {
	Profiles(ctx context.Context) (Table, error)
	Traits(ctx context.Context) (Table, error)
	Profile(ctx context.Context, name string) (Table, error)
}

// ProfilesHandler handles profile requests.
type ProfilesHandler struct {
	deps ProfileDependencies
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(deps ProfileDependencies) *ProfilesHandler {
	return &ProfilesHandler{deps: deps}
}

// HandleProfiles handles GET /api/profiles requests.
func (h *ProfilesHandler) HandleProfiles(w http.ResponseWriter, r *http.Request, caps access.Capabilities) {
	h.serveAll(w, r, caps, "api.get_profiles", h.deps.Profiles)
}

// HandleTraits handles GET /api/traits requests.
func (h *ProfilesHandler) HandleTraits(w http.ResponseWriter, r *http.Request, caps access.Capabilities) {
	h.serveAll(w, r, caps, "api.get_traits", h.deps.Traits)
}

func (h *ProfilesHandler) serveAll(w http.ResponseWriter, r *http.Request, caps access.Capabilities, op string,
	read func(context.Context) (Table, error),
) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if !caps.AllProfiles {
		denied(w, op)
		return
	}
	table, err := read(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// HandleSelf handles GET /api/profiles/me?name=X requests.
func (h *ProfilesHandler) HandleSelf(w http.ResponseWriter, r *http.Request, caps access.Capabilities) {
	const op = "api.get_own_profile"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if !caps.SelfProfile {
		denied(w, op)
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing name")))
		return
	}
	table, err := h.deps.Profile(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if table.Len() == 0 {
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, fmt.Errorf("no profile for %q", name)))
		return
	}
	writeJSON(w, http.StatusOK, table)
}
