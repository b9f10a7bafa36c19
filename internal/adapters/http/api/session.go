package api

import (
	"net/http"

	"github.com/okian/harmony/internal/domain/access"
)

type sessionResponse struct {
	Role         access.Role         `json:"role"`
	Capabilities access.Capabilities `json:"capabilities"`
}

// SessionHandler reports the caller's role and views.
type SessionHandler struct{}

// NewSessionHandler creates a new session handler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// HandleSession handles GET /api/session requests.
func (h *SessionHandler) HandleSession(w http.ResponseWriter, r *http.Request, caps access.Capabilities) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Role: requestRole(r), Capabilities: caps})
}
