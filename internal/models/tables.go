// Package models defines the core data structures shared across the service.
// It includes the input table records, graph types and query results.
package models

import "strings"

// IssueID identifies a single comic issue, e.g. "Amazing Fantasy #15".
type IssueID = string

type AppearanceRow struct {
	Comic     IssueID `json:"comic" validate:"required"`
	Character string  `json:"character" validate:"required"`
}

type CharacterRecord struct {
	Name                 string            `json:"character" validate:"required"`
	AlternateNames       []string          `json:"alternate_names"`
	AlternateAppearances []string          `json:"alternate_appearances"`
	Metadata             map[string]string `json:"metadata,omitempty"`

	// Filled on the enriched copy produced by the graph builder.
	ID          int    `json:"id"`
	Appearances string `json:"appearances"`
}

type IssueRecord struct {
	Comic IssueID `json:"comic" validate:"required"`
	Link  string  `json:"link" validate:"required"`
}

// Tables is one load cycle's worth of raw input.
type Tables struct {
	Appearances []AppearanceRow
	Characters  []CharacterRecord
	Issues      []IssueRecord
}

// Title is the text a search box matches against: the name followed by
// every alternate name.
func (c CharacterRecord) Title() string {
	var b strings.Builder
	b.WriteString(c.Name)
	for _, alt := range c.AlternateNames {
		b.WriteString(" / ")
		b.WriteString(alt)
	}
	return b.String()
}

// Alternates lists alternate names followed by alternate appearances.
func (c CharacterRecord) Alternates() []string {
	out := make([]string, 0, len(c.AlternateNames)+len(c.AlternateAppearances))
	out = append(out, c.AlternateNames...)
	return append(out, c.AlternateAppearances...)
}

// ImagePath returns the asset path used by the renderer for a character name.
func ImagePath(name string) string {
	return "img/" + name + ".png"
}
