// Package loader fetches the three input tables for one load cycle.
//
// The tables are independent reads, so CSVLoader issues them concurrently and
// waits for all three behind an errgroup. A failure in any read cancels the
// others and fails the whole load; callers never see a partial set.
package loader

import (
	"context"
	"fmt"
	"io"

	"github.com/costarnet/core/internal/models"
	"github.com/costarnet/core/internal/parser"
	"golang.org/x/sync/errgroup"
)

// Loader produces a complete set of tables or an error.
type Loader interface {
	Load(ctx context.Context) (models.Tables, error)
}

// Source opens a named CSV document.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Files names the three documents inside a Source.
type Files struct {
	Appearances string
	Characters  string
	Issues      string
}

func DefaultFiles() Files {
	return Files{
		Appearances: "appearances.csv",
		Characters:  "characters.csv",
		Issues:      "comics.csv",
	}
}

type CSVLoader struct {
	source Source
	files  Files
}

func NewCSVLoader(source Source, files Files) *CSVLoader {
	defaults := DefaultFiles()
	if files.Appearances == "" {
		files.Appearances = defaults.Appearances
	}
	if files.Characters == "" {
		files.Characters = defaults.Characters
	}
	if files.Issues == "" {
		files.Issues = defaults.Issues
	}
	return &CSVLoader{source: source, files: files}
}

func (l *CSVLoader) Files() Files {
	return l.files
}

func (l *CSVLoader) Load(ctx context.Context) (models.Tables, error) {
	var tables models.Tables
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := readCSV(gCtx, l.source, l.files.Appearances, parser.ParseAppearances)
		if err != nil {
			return fmt.Errorf("load %s: %w", parser.TableAppearances, err)
		}
		tables.Appearances = rows
		return nil
	})

	g.Go(func() error {
		records, err := readCSV(gCtx, l.source, l.files.Characters, parser.ParseCharacters)
		if err != nil {
			return fmt.Errorf("load %s: %w", parser.TableCharacters, err)
		}
		tables.Characters = records
		return nil
	})

	g.Go(func() error {
		issues, err := readCSV(gCtx, l.source, l.files.Issues, parser.ParseIssues)
		if err != nil {
			return fmt.Errorf("load %s: %w", parser.TableIssues, err)
		}
		tables.Issues = issues
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.Tables{}, err
	}

	return tables, nil
}

func readCSV[T any](ctx context.Context, src Source, name string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return parse(rc)
}
