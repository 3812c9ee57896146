package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/costarnet/core/internal/models"
)

const defaultSearchLimit = 20

type costarsResponse struct {
	Character    string                 `json:"character"`
	AppearedWith []models.CostarSummary `json:"appeared_with"`
}

func nodeID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid character id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// Character returns the enriched character record behind a node.
func (a *API) Character(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	id, ok := nodeID(w, r)
	if !ok {
		return
	}

	graph, err := a.svc.Graph()
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	record, found := graph.Characters[id]
	if !found {
		a.writeError(w, r, &models.LookupError{Kind: "node", Key: strconv.Itoa(id)})
		return
	}

	a.writeJSON(w, r, http.StatusOK, record)
}

func (a *API) Detail(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	id, ok := nodeID(w, r)
	if !ok {
		return
	}

	detail, err := a.svc.Detail(id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.writeJSON(w, r, http.StatusOK, detail)
}

func (a *API) Costars(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("character"))
	if name == "" {
		http.Error(w, "Missing character parameter", http.StatusBadRequest)
		return
	}

	costars, err := a.svc.AppearedWith(name)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.writeJSON(w, r, http.StatusOK, costarsResponse{Character: name, AppearedWith: costars})
}

// IssueLink resolves an issue to its URL. With redirect=true it answers with
// a 302 to the link instead of a JSON body.
func (a *API) IssueLink(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	comic := r.PathValue("comic")
	link, err := a.svc.ResolveLink(comic)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("redirect") == "true" {
		http.Redirect(w, r, link, http.StatusFound)
		return
	}

	a.writeJSON(w, r, http.StatusOK, models.IssueLink{Comic: comic, Link: link})
}

func (a *API) Search(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	hits, err := a.svc.Search(r.URL.Query().Get("q"), limit)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.writeJSON(w, r, http.StatusOK, hits)
}
