package handlers

import (
	"net/http"
)

func (a *API) Graph(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	graph, err := a.svc.Graph()
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.writeJSON(w, r, http.StatusOK, graph)
}

// Reload runs a load cycle synchronously and returns the new status. On
// failure the previous network keeps serving and the error is returned.
func (a *API) Reload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	status, err := a.svc.Reload(r.Context())
	if err != nil {
		a.logger.Warn("Reload failed", "error", err)
		http.Error(w, "Reload failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	a.writeJSON(w, r, http.StatusOK, status)
}
