// Package network turns appearance rows into the co-appearance graph and
// answers the costar and link queries a detail view needs.
package network

import (
	"maps"
	"slices"
	"strings"

	"github.com/costarnet/core/internal/models"
)

// BuildGraph derives nodes, weighted edges and enriched character records
// from the edge multiset. Only characters with at least one co-appearance get
// a node. A name with no character record fails the whole build.
func BuildGraph(characters []models.CharacterRecord, edges []models.Edge) (*models.Graph, error) {
	graph, _, err := buildGraph(characters, edges)
	return graph, err
}

// buildGraph also returns the per-character comic lists the enriched records
// were built from.
func buildGraph(characters []models.CharacterRecord, edges []models.Edge) (*models.Graph, map[string][]models.IssueID, error) {
	records := indexCharacters(characters)
	names := distinctNames(edges)

	ids := make(map[string]int, len(names))
	for i, name := range names {
		ids[name] = i
	}

	appearances := appearancesByName(edges, len(names))

	graph := &models.Graph{
		Nodes:      make([]models.Node, 0, len(names)),
		Edges:      []models.AggregatedEdge{},
		Characters: make(map[int]models.CharacterRecord, len(names)),
	}

	for _, name := range names {
		record, ok := records[name]
		if !ok {
			return nil, nil, &models.LookupError{Kind: "character", Key: name}
		}

		id := ids[name]
		graph.Characters[id] = enrich(record, id, appearances[name])
		graph.Nodes = append(graph.Nodes, models.Node{
			ID:    id,
			Label: name,
			Image: models.ImagePath(name),
			Shape: "image",
		})
	}

	pairOrder := []models.Pair{}
	weights := make(map[models.Pair]int)
	for _, e := range edges {
		if _, seen := weights[e.Pair]; !seen {
			pairOrder = append(pairOrder, e.Pair)
		}
		weights[e.Pair]++
	}

	comics := make(map[models.IssueID]struct{})
	for _, e := range edges {
		comics[e.Comic] = struct{}{}
	}

	total := 0
	for _, p := range pairOrder {
		graph.Edges = append(graph.Edges, models.AggregatedEdge{
			From:   ids[p.First],
			To:     ids[p.Second],
			Weight: weights[p],
		})
		total += weights[p]
	}

	graph.Stats = &models.Stats{
		TotalNodes:  len(graph.Nodes),
		TotalEdges:  len(graph.Edges),
		TotalIssues: len(comics),
		TotalWeight: total,
	}

	return graph, appearances, nil
}

// indexCharacters maps names to records. The first record wins when the
// table lists a name twice.
func indexCharacters(characters []models.CharacterRecord) map[string]models.CharacterRecord {
	index := make(map[string]models.CharacterRecord, len(characters))
	for _, c := range characters {
		if _, exists := index[c.Name]; !exists {
			index[c.Name] = c
		}
	}
	return index
}

func distinctNames(edges []models.Edge) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, e := range edges {
		for _, name := range [2]string{e.Pair.First, e.Pair.Second} {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// appearancesByName collects, per character, the distinct comics of the
// edges it belongs to in first-encounter order.
func appearancesByName(edges []models.Edge, size int) map[string][]models.IssueID {
	out := make(map[string][]models.IssueID, size)
	seen := make(map[string]map[models.IssueID]bool, size)

	add := func(name string, comic models.IssueID) {
		if seen[name] == nil {
			seen[name] = make(map[models.IssueID]bool)
		}
		if seen[name][comic] {
			return
		}
		seen[name][comic] = true
		out[name] = append(out[name], comic)
	}

	for _, e := range edges {
		add(e.Pair.First, e.Comic)
		add(e.Pair.Second, e.Comic)
	}
	return out
}

func enrich(record models.CharacterRecord, id int, comics []models.IssueID) models.CharacterRecord {
	record.ID = id
	record.Appearances = strings.Join(comics, ", ")
	record.AlternateNames = slices.Clone(record.AlternateNames)
	record.AlternateAppearances = slices.Clone(record.AlternateAppearances)
	record.Metadata = maps.Clone(record.Metadata)
	return record
}
