package api

import (
	"net/http"

	"github.com/okian/harmony/internal/domain/access"
)

// HeaderRole carries the dashboard role when no role query parameter is set.
const HeaderRole = "X-Harmony-Role"

// capabilityHandler is a handler that receives the caller's view flags.
type capabilityHandler func(w http.ResponseWriter, r *http.Request, caps access.Capabilities)

// requestRole reads the role from the query string, then the header.
func requestRole(r *http.Request) access.Role {
	if v := r.URL.Query().Get("role"); v != "" {
		return access.ParseRole(v)
	}
	return access.ParseRole(r.Header.Get(HeaderRole))
}

// withCapabilities resolves the caller's capabilities once and hands them to next.
func withCapabilities(next capabilityHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next(w, r, access.CapabilitiesFor(requestRole(r)))
	}
}

// denied writes the 403 response for a missing capability.
func denied(w http.ResponseWriter, op string) {
	writeError(w, http.StatusForbidden, "capability_required", NewKind(op, ErrCapabilityRequired))
}
