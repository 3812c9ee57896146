// Package parser provides utilities for parsing and transforming input data.
// It handles data normalization, validation, and conversion between formats.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/costarnet/core/internal/models"
	"github.com/go-playground/validator/v10"
)

// Column names as they appear in the header row of each table.
const (
	ColComic                = "Comic"
	ColCharacter            = "Character"
	ColLink                 = "Link"
	ColAlternateNames       = "Alternate Names"
	ColAlternateAppearances = "Alternate Appearances"
)

const (
	TableAppearances = "appearances"
	TableCharacters  = "characters"
	TableIssues      = "issues"
)

var rowValidate = validator.New(validator.WithRequiredStructEnabled())

// fieldColumns maps struct field names to the header used in error messages.
var fieldColumns = map[string]string{
	"Comic":     ColComic,
	"Character": ColCharacter,
	"Name":      ColCharacter,
	"Link":      ColLink,
}

// table is a decoded CSV document keyed by header name.
type table struct {
	header []string
	index  map[string]int
	rows   [][]string
}

func readTable(name string, r io.Reader, required ...string) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s csv: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty %s data", name)
	}

	t := &table{
		header: make([]string, len(records[0])),
		index:  make(map[string]int, len(records[0])),
		rows:   records[1:],
	}
	for i, col := range records[0] {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		t.header[i] = col
		if _, dup := t.index[col]; !dup {
			t.index[col] = i
		}
	}

	for _, col := range required {
		if _, ok := t.index[col]; !ok {
			return nil, fmt.Errorf("invalid %s csv: missing %q column", name, col)
		}
	}

	return t, nil
}

func (t *table) value(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParseAppearances decodes the appearances table (Comic, Character).
func ParseAppearances(r io.Reader) ([]models.AppearanceRow, error) {
	t, err := readTable(TableAppearances, r, ColComic, ColCharacter)
	if err != nil {
		return nil, err
	}

	rows := make([]models.AppearanceRow, 0, len(t.rows))
	for i, rec := range t.rows {
		row := models.AppearanceRow{
			Comic:     t.value(rec, ColComic),
			Character: t.value(rec, ColCharacter),
		}
		if err := ValidateRow(TableAppearances, i+1, row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ParseCharacters decodes the characters table. Columns other than the
// three recognised ones are kept in Metadata unchanged.
func ParseCharacters(r io.Reader) ([]models.CharacterRecord, error) {
	t, err := readTable(TableCharacters, r, ColCharacter)
	if err != nil {
		return nil, err
	}

	records := make([]models.CharacterRecord, 0, len(t.rows))
	for i, rec := range t.rows {
		record := models.CharacterRecord{
			Name:                 t.value(rec, ColCharacter),
			AlternateNames:       SplitList(t.value(rec, ColAlternateNames)),
			AlternateAppearances: SplitList(t.value(rec, ColAlternateAppearances)),
			Metadata:             passThrough(t, rec),
		}
		if err := ValidateRow(TableCharacters, i+1, record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// ParseIssues decodes the issues table (Comic, Link).
func ParseIssues(r io.Reader) ([]models.IssueRecord, error) {
	t, err := readTable(TableIssues, r, ColComic, ColLink)
	if err != nil {
		return nil, err
	}

	issues := make([]models.IssueRecord, 0, len(t.rows))
	for i, rec := range t.rows {
		issue := models.IssueRecord{
			Comic: t.value(rec, ColComic),
			Link:  t.value(rec, ColLink),
		}
		if err := ValidateRow(TableIssues, i+1, issue); err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}

	return issues, nil
}

// SplitList splits a comma separated cell. An empty cell yields no entries
// and blank entries are dropped.
func SplitList(cell string) []string {
	out := []string{}
	for _, part := range strings.Split(cell, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func passThrough(t *table, rec []string) map[string]string {
	var meta map[string]string
	for i, col := range t.header {
		switch col {
		case ColCharacter, ColAlternateNames, ColAlternateAppearances, "":
			continue
		}
		if t.index[col] != i {
			continue
		}
		if meta == nil {
			meta = make(map[string]string)
		}
		meta[col] = t.value(rec, col)
	}
	return meta
}

// ValidateRow checks the required fields of a decoded row. Loaders that do
// not go through CSV use it to report the same MalformedRowError.
func ValidateRow(tableName string, row int, v any) error {
	err := rowValidate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].StructField()
		if col, ok := fieldColumns[field]; ok {
			field = col
		}
		return &models.MalformedRowError{Table: tableName, Row: row, Field: field}
	}

	return fmt.Errorf("validate %s row %d: %w", tableName, row, err)
}
