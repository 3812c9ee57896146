// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/costarnet/core/internal/catalog"
	"github.com/costarnet/core/internal/models"
)

// Service is the read side of the network plus the reload trigger.
// *catalog.Catalog implements it.
type Service interface {
	Reload(ctx context.Context) (catalog.Status, error)
	Status() (catalog.Status, error)
	Graph() (*models.Graph, error)
	AppearedWith(name string) ([]models.CostarSummary, error)
	Detail(id int) (*models.CharacterDetail, error)
	ResolveLink(comic models.IssueID) (string, error)
	Search(query string, limit int) ([]models.SearchHit, error)
}

type API struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{svc: svc, logger: logger}
}

// Register mounts every endpoint on mux. Method checks happen inside the
// handlers so that a wrong method yields 405 rather than 404.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", a.Health)
	mux.HandleFunc("/graph", a.Graph)
	mux.HandleFunc("/characters/{id}", a.Character)
	mux.HandleFunc("/characters/{id}/detail", a.Detail)
	mux.HandleFunc("/costars", a.Costars)
	mux.HandleFunc("/issues/{comic}/link", a.IssueLink)
	mux.HandleFunc("/search", a.Search)
	mux.HandleFunc("/reload", a.Reload)
}

func (a *API) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		a.logger.Error("Error encoding response", "path", r.URL.Path, "error", err)
	}
}

// writeError maps domain errors onto status codes.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrLookup):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, catalog.ErrNotLoaded):
		http.Error(w, "Network not loaded", http.StatusServiceUnavailable)
	default:
		a.logger.Error("Request failed", "path", r.URL.Path, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
