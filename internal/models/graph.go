// Package models defines the core data structures shared across the service.
// It includes the input table records, graph types and query results.
package models

type Pair struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// NewPair orders a and b lexicographically.
func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{First: a, Second: b}
}

// Contains reports whether name is either member of the pair.
func (p Pair) Contains(name string) bool {
	return p.First == name || p.Second == name
}

// Other returns the member that is not name. The result is only meaningful
// when Contains(name) is true.
func (p Pair) Other(name string) string {
	if p.First == name {
		return p.Second
	}
	return p.First
}

type Edge struct {
	Comic IssueID `json:"comic"`
	Pair  Pair    `json:"pair"`
}

type Node struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Image string `json:"image"`
	Shape string `json:"shape"`
}

type AggregatedEdge struct {
	From   int `json:"from"`
	To     int `json:"to"`
	Weight int `json:"weight"`
}

type Graph struct {
	Nodes      []Node                  `json:"nodes"`
	Edges      []AggregatedEdge        `json:"edges"`
	Characters map[int]CharacterRecord `json:"-"`
	Stats      *Stats                  `json:"stats,omitempty"`
}

type Stats struct {
	TotalNodes  int `json:"total_nodes"`
	TotalEdges  int `json:"total_edges"`
	TotalIssues int `json:"total_issues"`
	TotalWeight int `json:"total_weight"`
}

type CostarSummary struct {
	Costar string    `json:"costar"`
	Issues []IssueID `json:"issues"`
	Count  int       `json:"count"`
}

// IssueLink is an issue reference paired with its resolved URL.
type IssueLink struct {
	Comic IssueID `json:"comic"`
	Link  string  `json:"link"`
}

type Alternate struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type CostarDetail struct {
	Costar string      `json:"costar"`
	Count  int         `json:"count"`
	Issues []IssueLink `json:"issues"`
}

// CharacterDetail is everything a detail panel shows for one selected node.
type CharacterDetail struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Image        string         `json:"image"`
	Appearances  []IssueLink    `json:"appearances"`
	Alternates   []Alternate    `json:"alternates"`
	AppearedWith []CostarDetail `json:"appeared_with"`
}

// SearchHit is one entry of the search box source. ID is nil for characters
// that never co-appear and therefore have no node.
type SearchHit struct {
	ID    *int   `json:"id,omitempty"`
	Name  string `json:"name"`
	Title string `json:"title"`
}
