package loader

import (
	"fmt"
	"io"

	"github.com/costarnet/core/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func FilesFrom(fc config.FilesConfig) Files {
	return Files{
		Appearances: fc.Appearances,
		Characters:  fc.Characters,
		Issues:      fc.Issues,
	}
}

// FromConfig picks the loader for cfg.Source. On success the returned closer
// is non-nil and releases whatever connection the loader holds.
func FromConfig(cfg *config.Config) (Loader, io.Closer, error) {
	files := FilesFrom(cfg.Files)

	switch cfg.Source {
	case config.SourceDir:
		src, err := NewDirSource(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return NewCSVLoader(src, files), nopCloser{}, nil

	case config.SourceS3:
		src, err := NewS3Source(S3Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Prefix:    cfg.S3.Prefix,
			UseSSL:    cfg.S3.UseSSL,
		})
		if err != nil {
			return nil, nil, err
		}
		return NewCSVLoader(src, files), nopCloser{}, nil

	case config.SourcePostgres:
		pg, err := NewPostgresLoader(PostgresConfig{
			DSN:              cfg.Postgres.DSN,
			AppearancesTable: cfg.Postgres.AppearancesTable,
			CharactersTable:  cfg.Postgres.CharactersTable,
			IssuesTable:      cfg.Postgres.IssuesTable,
			OrderBy:          cfg.Postgres.OrderBy,
		})
		if err != nil {
			return nil, nil, err
		}
		return pg, pg, nil
	}

	return nil, nil, fmt.Errorf("unsupported data source %q", cfg.Source)
}
