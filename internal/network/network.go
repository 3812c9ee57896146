// Package network turns appearance rows into the co-appearance graph and
// answers the costar and link queries a detail view needs.
package network

import (
	"strconv"
	"strings"

	"github.com/costarnet/core/internal/models"
)

// Network is the immutable result of one load cycle.
type Network struct {
	Edges []models.Edge
	Graph *models.Graph

	characters  []models.CharacterRecord
	byName      map[string]models.CharacterRecord
	ids         map[string]int
	appearances map[string][]models.IssueID
	issues      IssueIndex
}

// Build runs extract and build over one set of tables.
func Build(tables models.Tables) (*Network, error) {
	edges := ExtractEdges(tables.Appearances)

	graph, appearances, err := buildGraph(tables.Characters, edges)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]int, len(graph.Nodes))
	for _, n := range graph.Nodes {
		ids[n.Label] = n.ID
	}

	return &Network{
		Edges:       edges,
		Graph:       graph,
		characters:  tables.Characters,
		byName:      indexCharacters(tables.Characters),
		ids:         ids,
		appearances: appearances,
		issues:      NewIssueIndex(tables.Issues),
	}, nil
}

// Character returns the enriched record behind node id.
func (n *Network) Character(id int) (models.CharacterRecord, error) {
	record, ok := n.Graph.Characters[id]
	if !ok {
		return models.CharacterRecord{}, &models.LookupError{Kind: "node", Key: strconv.Itoa(id)}
	}
	return record, nil
}

// NodeID returns the node id assigned to name, if it has one.
func (n *Network) NodeID(name string) (int, bool) {
	id, ok := n.ids[name]
	return id, ok
}

// AppearedWith ranks the costars of a character known to the character table.
func (n *Network) AppearedWith(name string) ([]models.CostarSummary, error) {
	if _, ok := n.byName[name]; !ok {
		return nil, &models.LookupError{Kind: "character", Key: name}
	}
	return AppearedWith(n.Edges, name), nil
}

// ResolveLink returns the link of comic from the issue table loaded with the
// network.
func (n *Network) ResolveLink(comic models.IssueID) (string, error) {
	return n.issues.Resolve(comic)
}

// Detail assembles the detail panel for node id. Costars may be passed in
// precomputed; nil means compute them here.
func (n *Network) Detail(id int, costars []models.CostarSummary) (*models.CharacterDetail, error) {
	record, err := n.Character(id)
	if err != nil {
		return nil, err
	}

	if costars == nil {
		costars = AppearedWith(n.Edges, record.Name)
	}

	appearances, err := n.links(n.appearances[record.Name])
	if err != nil {
		return nil, err
	}

	detail := &models.CharacterDetail{
		ID:           id,
		Name:         record.Name,
		Image:        models.ImagePath(record.Name),
		Appearances:  appearances,
		Alternates:   []models.Alternate{},
		AppearedWith: make([]models.CostarDetail, 0, len(costars)),
	}

	for _, alt := range record.Alternates() {
		detail.Alternates = append(detail.Alternates, models.Alternate{
			Name:  alt,
			Image: models.ImagePath(alt),
		})
	}

	for _, c := range costars {
		issues, err := n.links(c.Issues)
		if err != nil {
			return nil, err
		}
		detail.AppearedWith = append(detail.AppearedWith, models.CostarDetail{
			Costar: c.Costar,
			Count:  c.Count,
			Issues: issues,
		})
	}

	return detail, nil
}

func (n *Network) links(comics []models.IssueID) ([]models.IssueLink, error) {
	out := make([]models.IssueLink, 0, len(comics))
	for _, comic := range comics {
		link, err := n.issues.Resolve(comic)
		if err != nil {
			return nil, err
		}
		out = append(out, models.IssueLink{Comic: comic, Link: link})
	}
	return out, nil
}

// Search matches query case-insensitively against every character's search
// title, in character table order. A limit of zero or less means no limit.
func (n *Network) Search(query string, limit int) []models.SearchHit {
	query = strings.ToLower(strings.TrimSpace(query))
	hits := []models.SearchHit{}

	for _, c := range n.characters {
		title := c.Title()
		if query != "" && !strings.Contains(strings.ToLower(title), query) {
			continue
		}

		hit := models.SearchHit{Name: c.Name, Title: title}
		if id, ok := n.ids[c.Name]; ok {
			hit.ID = &id
		}
		hits = append(hits, hit)

		if limit > 0 && len(hits) >= limit {
			break
		}
	}

	return hits
}
