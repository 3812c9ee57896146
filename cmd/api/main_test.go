package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/costarnet/core/internal/catalog"
	"github.com/costarnet/core/internal/config"
	"github.com/costarnet/core/internal/handlers"
	"github.com/costarnet/core/internal/loader"
	"github.com/costarnet/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	appearancesCSV = `Comic,Character
Amazing Fantasy #15,Spider-Man
Amazing Fantasy #15,Aunt May
Amazing Fantasy #15,Uncle Ben
Amazing Spider-Man #1,Spider-Man
Amazing Spider-Man #1,Fantastic Four
Amazing Spider-Man #1,J. Jonah Jameson
`
	charactersCSV = `Character,Alternate Names,Alternate Appearances,Publisher
Spider-Man,"Peter Parker, Spidey",Spider-Man (Black Suit),Marvel
Aunt May,May Parker,,Marvel
Uncle Ben,Ben Parker,,Marvel
Fantastic Four,FF,,Marvel
J. Jonah Jameson,JJJ,,Marvel
Mysterio,Quentin Beck,,Marvel
`
	comicsCSV = `Comic,Link
Amazing Fantasy #15,https://example.com/af15
Amazing Spider-Man #1,https://example.com/asm1
`
)

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "appearances.csv"), []byte(appearancesCSV), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "characters.csv"), []byte(charactersCSV), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comics.csv"), []byte(comicsCSV), 0600))
	return dir
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	env := map[string]string{"DATA_DIR": writeDataDir(t)}
	cfg, err := config.FromEnv(func(key string) string { return env[key] })
	require.NoError(t, err)

	l, closer, err := loader.FromConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { closer.Close() })

	cat := catalog.New(l, cfg.CostarCache, logger)
	_, err = cat.Reload(context.Background())
	require.NoError(t, err)

	return newRouter(handlers.New(cat, logger), "*", logger)
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMainRoutes(t *testing.T) {
	router := setupRouter(t)

	t.Run("health endpoint is accessible", func(t *testing.T) {
		w := get(router, "/health")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("responses carry cors and request id headers", func(t *testing.T) {
		w := get(router, "/graph")

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("metrics endpoint exposes build metrics", func(t *testing.T) {
		w := get(router, "/metrics")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "costarnet_graph_nodes")
	})

	t.Run("non-existent route returns 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(router, "/nonexistent").Code)
	})

	t.Run("root path returns 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(router, "/").Code)
	})
}

func TestGraphEndpointIntegration(t *testing.T) {
	router := setupRouter(t)

	w := get(router, "/graph")
	require.Equal(t, http.StatusOK, w.Code)

	var graph models.Graph
	require.NoError(t, json.NewDecoder(w.Body).Decode(&graph))

	labels := make([]string, 0, len(graph.Nodes))
	for _, n := range graph.Nodes {
		labels = append(labels, n.Label)
	}
	assert.Equal(t, []string{"Aunt May", "Spider-Man", "Uncle Ben", "Fantastic Four", "J. Jonah Jameson"}, labels)
	assert.NotContains(t, labels, "Mysterio")

	// Three pairs per issue, one issue each.
	assert.Len(t, graph.Edges, 6)
	for _, e := range graph.Edges {
		assert.Equal(t, 1, e.Weight)
	}
	require.NotNil(t, graph.Stats)
	assert.Equal(t, 2, graph.Stats.TotalIssues)
}

func TestCostarsEndpointIntegration(t *testing.T) {
	router := setupRouter(t)

	w := get(router, "/costars?character=Spider-Man")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AppearedWith []models.CostarSummary `json:"appeared_with"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))

	names := make([]string, 0, len(body.AppearedWith))
	for _, c := range body.AppearedWith {
		names = append(names, c.Costar)
	}
	assert.Equal(t, []string{"Aunt May", "Fantastic Four", "J. Jonah Jameson", "Uncle Ben"}, names)
}

func TestDetailEndpointIntegration(t *testing.T) {
	router := setupRouter(t)

	w := get(router, "/characters/1/detail")
	require.Equal(t, http.StatusOK, w.Code)

	var detail models.CharacterDetail
	require.NoError(t, json.NewDecoder(w.Body).Decode(&detail))

	assert.Equal(t, "Spider-Man", detail.Name)
	assert.Equal(t, []models.IssueLink{
		{Comic: "Amazing Fantasy #15", Link: "https://example.com/af15"},
		{Comic: "Amazing Spider-Man #1", Link: "https://example.com/asm1"},
	}, detail.Appearances)

	alternates := make([]string, 0, len(detail.Alternates))
	for _, a := range detail.Alternates {
		alternates = append(alternates, a.Name)
	}
	assert.Equal(t, []string{"Peter Parker", "Spidey", "Spider-Man (Black Suit)"}, alternates)
}

func TestCharacterMetadataIntegration(t *testing.T) {
	router := setupRouter(t)

	w := get(router, "/characters/0")
	require.Equal(t, http.StatusOK, w.Code)

	assert.True(t, strings.Contains(w.Body.String(), `"Publisher":"Marvel"`))
}

func TestRun_FailsWithoutData(t *testing.T) {
	cfg := &config.Config{
		Source:  config.SourceDir,
		DataDir: filepath.Join(t.TempDir(), "missing"),
	}

	err := run(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "init loader")
}
