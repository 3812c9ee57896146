// Package network turns appearance rows into the co-appearance graph and
// answers the costar and link queries a detail view needs.
package network

import (
	"cmp"
	"slices"

	"github.com/costarnet/core/internal/models"
)

// AppearedWith ranks the costars of character: most shared edges first, then
// by name. Each summary lists the comics of those edges in encounter order,
// duplicates included, so Count always equals len(Issues).
func AppearedWith(edges []models.Edge, character string) []models.CostarSummary {
	order := []string{}
	groups := make(map[string][]models.IssueID)

	for _, e := range edges {
		if !e.Pair.Contains(character) {
			continue
		}
		costar := e.Pair.Other(character)
		if _, seen := groups[costar]; !seen {
			order = append(order, costar)
		}
		groups[costar] = append(groups[costar], e.Comic)
	}

	out := make([]models.CostarSummary, 0, len(order))
	for _, costar := range order {
		issues := groups[costar]
		out = append(out, models.CostarSummary{
			Costar: costar,
			Issues: issues,
			Count:  len(issues),
		})
	}

	slices.SortStableFunc(out, func(a, b models.CostarSummary) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Costar, b.Costar)
	})

	return out
}
