// Package network turns appearance rows into the co-appearance graph and
// answers the costar and link queries a detail view needs.
//
// The pipeline is a chain of pure stages:
//
//	ExtractEdges -> BuildGraph -> AppearedWith / ResolveLink
//
// Every stage takes immutable input and returns freshly allocated output, so
// a Network built from one load cycle can be shared across goroutines.
package network

import "github.com/costarnet/core/internal/models"

// ExtractEdges emits one edge per pair of rows sharing an issue. Issues are
// visited in order of first appearance and pairs in row order, so the output
// is deterministic for a given input. Duplicate rows are not collapsed: a
// character listed twice in one issue pairs with every other row twice.
func ExtractEdges(rows []models.AppearanceRow) []models.Edge {
	order := []models.IssueID{}
	byComic := make(map[models.IssueID][]string)

	for _, row := range rows {
		if _, seen := byComic[row.Comic]; !seen {
			order = append(order, row.Comic)
		}
		byComic[row.Comic] = append(byComic[row.Comic], row.Character)
	}

	edges := []models.Edge{}
	for _, comic := range order {
		characters := byComic[comic]
		for i := 0; i < len(characters); i++ {
			for j := i + 1; j < len(characters); j++ {
				if characters[i] == characters[j] {
					continue
				}
				edges = append(edges, models.Edge{
					Comic: comic,
					Pair:  models.NewPair(characters[i], characters[j]),
				})
			}
		}
	}

	return edges
}
