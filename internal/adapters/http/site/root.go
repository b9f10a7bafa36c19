// Package site handles the landing routes: the root redirect and the
// embedded help pages.
package site

import (
	"context"
	"net/http"
)

// DashboardPath is where the root path sends browsers.
const DashboardPath = "/dashboard"

// Register attaches the root redirect and the /docs/ help pages to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("/", NewRootHandler().HandleRoot)
	mux.Handle("/docs/", http.StripPrefix("/docs/", http.FileServer(FS())))
}

// RootHandler handles root path requests
type RootHandler struct{}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot redirects GET / to the dashboard. Every other path that
// reaches the catch-all route is not found.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, DashboardPath, http.StatusFound)
}
