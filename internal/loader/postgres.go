package loader

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/costarnet/core/internal/models"
	"github.com/costarnet/core/internal/parser"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"
)

var (
	identPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)
	columnPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

type PostgresConfig struct {
	DSN              string
	AppearancesTable string
	CharactersTable  string
	IssuesTable      string
	// OrderBy, when set, is a column present in all three tables that fixes
	// row order, e.g. an insertion serial. Rows tied on it, and all rows when
	// it is empty, are ordered by their whole value so that identical tables
	// always load in identical order.
	OrderBy string
}

// PostgresLoader reads the three tables from Postgres. It only reads.
type PostgresLoader struct {
	db  *sql.DB
	cfg PostgresConfig
}

func NewPostgresLoader(cfg PostgresConfig) (*PostgresLoader, error) {
	cfg, err := normalizePostgresConfig(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &PostgresLoader{db: db, cfg: cfg}, nil
}

func normalizePostgresConfig(cfg PostgresConfig) (PostgresConfig, error) {
	cfg.DSN = strings.TrimSpace(cfg.DSN)
	if cfg.DSN == "" {
		return cfg, fmt.Errorf("postgres dsn is required")
	}
	if cfg.AppearancesTable == "" {
		cfg.AppearancesTable = "appearances"
	}
	if cfg.CharactersTable == "" {
		cfg.CharactersTable = "characters"
	}
	if cfg.IssuesTable == "" {
		cfg.IssuesTable = "comics"
	}
	for _, ident := range []string{cfg.AppearancesTable, cfg.CharactersTable, cfg.IssuesTable} {
		if !identPattern.MatchString(ident) {
			return cfg, fmt.Errorf("invalid table name %q", ident)
		}
	}
	if cfg.OrderBy != "" && !columnPattern.MatchString(cfg.OrderBy) {
		return cfg, fmt.Errorf("invalid order column %q", cfg.OrderBy)
	}
	return cfg, nil
}

func (l *PostgresLoader) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// selectStatement reads every column of table in a total order. Node ids
// follow row order, so the statement must never leave it to the planner.
func selectStatement(table, orderBy string) string {
	order := "src"
	if orderBy != "" {
		order = `src."` + orderBy + `", src`
	}
	return "SELECT * FROM " + table + " AS src ORDER BY " + order
}

func (l *PostgresLoader) Load(ctx context.Context) (models.Tables, error) {
	var tables models.Tables
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := l.query(gCtx, l.cfg.AppearancesTable, func(row int, cols []string, vals []any) error {
			r := models.AppearanceRow{
				Comic:     cellString(vals[colIndex(cols, parser.ColComic)]),
				Character: cellString(vals[colIndex(cols, parser.ColCharacter)]),
			}
			if err := parser.ValidateRow(parser.TableAppearances, row, r); err != nil {
				return err
			}
			tables.Appearances = append(tables.Appearances, r)
			return nil
		}, parser.ColComic, parser.ColCharacter)
		if err != nil {
			return fmt.Errorf("load %s: %w", parser.TableAppearances, err)
		}
		return nil
	})

	g.Go(func() error {
		err := l.query(gCtx, l.cfg.CharactersTable, func(row int, cols []string, vals []any) error {
			c, err := characterFromColumns(row, cols, vals)
			if err != nil {
				return err
			}
			tables.Characters = append(tables.Characters, c)
			return nil
		}, parser.ColCharacter)
		if err != nil {
			return fmt.Errorf("load %s: %w", parser.TableCharacters, err)
		}
		return nil
	})

	g.Go(func() error {
		err := l.query(gCtx, l.cfg.IssuesTable, func(row int, cols []string, vals []any) error {
			issue := models.IssueRecord{
				Comic: cellString(vals[colIndex(cols, parser.ColComic)]),
				Link:  cellString(vals[colIndex(cols, parser.ColLink)]),
			}
			if err := parser.ValidateRow(parser.TableIssues, row, issue); err != nil {
				return err
			}
			tables.Issues = append(tables.Issues, issue)
			return nil
		}, parser.ColComic, parser.ColLink)
		if err != nil {
			return fmt.Errorf("load %s: %w", parser.TableIssues, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.Tables{}, err
	}

	return tables, nil
}

// query scans every row of table, failing up front when any of the required
// columns is absent.
func (l *PostgresLoader) query(ctx context.Context, table string, fn func(row int, cols []string, vals []any) error, required ...string) error {
	rows, err := l.db.QueryContext(ctx, selectStatement(table, l.cfg.OrderBy))
	if err != nil {
		return err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	for _, name := range required {
		if colIndex(cols, name) < 0 {
			return fmt.Errorf("invalid %s table: missing %q column", table, name)
		}
	}

	n := 0
	for rows.Next() {
		n++
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		if err := fn(n, cols, vals); err != nil {
			return err
		}
	}

	return rows.Err()
}

// normalizeColumn maps both "Alternate Names" and "alternate_names" to the
// same key.
func normalizeColumn(col string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(col)), " ", "_")
}

// colIndex finds a CSV header name among database columns, or returns -1.
func colIndex(cols []string, header string) int {
	want := normalizeColumn(header)
	for i, col := range cols {
		if normalizeColumn(col) == want {
			return i
		}
	}
	return -1
}

func characterFromColumns(row int, cols []string, vals []any) (models.CharacterRecord, error) {
	record := models.CharacterRecord{
		AlternateNames:       []string{},
		AlternateAppearances: []string{},
	}

	for i, col := range cols {
		v := cellString(vals[i])
		switch normalizeColumn(col) {
		case "character":
			record.Name = v
		case "alternate_names":
			record.AlternateNames = parser.SplitList(v)
		case "alternate_appearances":
			record.AlternateAppearances = parser.SplitList(v)
		default:
			if record.Metadata == nil {
				record.Metadata = make(map[string]string)
			}
			record.Metadata[col] = v
		}
	}

	if err := parser.ValidateRow(parser.TableCharacters, row, record); err != nil {
		return models.CharacterRecord{}, err
	}
	return record, nil
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}
