// Package config reads service settings from the environment, with optional
// .env file support.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceDir      = "dir"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

type Config struct {
	Port       string
	Env        string
	CORSOrigin string

	LogLevel  string
	LogFormat string

	Source   string
	DataDir  string
	Files    FilesConfig
	S3       S3Config
	Postgres PostgresConfig

	Watch         bool
	WatchDebounce time.Duration
	CostarCache   int
}

type FilesConfig struct {
	Appearances string
	Characters  string
	Issues      string
}

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

type PostgresConfig struct {
	DSN              string
	AppearancesTable string
	CharactersTable  string
	IssuesTable      string
	OrderBy          string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	return LoadWith(nil)
}

// LoadWith is Load with overrides taking precedence over the environment.
func LoadWith(overrides map[string]string) (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(func(key string) string {
		if v, ok := overrides[key]; ok {
			return v
		}
		return os.Getenv(key)
	})
}

// FromEnv builds a Config from a lookup function so tests need not touch the
// process environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	env := func(key string) string { return strings.TrimSpace(getenv(key)) }

	port := firstNonEmpty(env("PORT"), "8080")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	cfg := &Config{
		Port:       port,
		Env:        firstNonEmpty(env("APP_ENV"), "local"),
		CORSOrigin: firstNonEmpty(env("CORS_ALLOWED_ORIGIN"), "*"),
		LogLevel:   strings.ToLower(firstNonEmpty(env("LOG_LEVEL"), "info")),
		LogFormat:  strings.ToLower(firstNonEmpty(env("LOG_FORMAT"), "json")),
		Source:     strings.ToLower(firstNonEmpty(env("DATA_SOURCE"), SourceDir)),
		DataDir:    firstNonEmpty(env("DATA_DIR"), "data"),
		Files: FilesConfig{
			Appearances: firstNonEmpty(env("APPEARANCES_FILE"), "appearances.csv"),
			Characters:  firstNonEmpty(env("CHARACTERS_FILE"), "characters.csv"),
			Issues:      firstNonEmpty(env("COMICS_FILE"), "comics.csv"),
		},
		S3: S3Config{
			Endpoint:  firstNonEmpty(env("DATA_S3_ENDPOINT"), env("MINIO_ENDPOINT")),
			Region:    firstNonEmpty(env("DATA_S3_REGION"), "us-east-1"),
			AccessKey: firstNonEmpty(env("DATA_S3_ACCESS_KEY"), env("MINIO_ROOT_USER")),
			SecretKey: firstNonEmpty(env("DATA_S3_SECRET_KEY"), env("MINIO_ROOT_PASSWORD")),
			Bucket:    firstNonEmpty(env("DATA_S3_BUCKET"), "costarnet"),
			Prefix:    env("DATA_S3_PREFIX"),
			UseSSL:    parseBool(env("DATA_S3_USE_SSL"), true),
		},
		Postgres: PostgresConfig{
			DSN:              env("DATA_PG_DSN"),
			AppearancesTable: firstNonEmpty(env("DATA_PG_APPEARANCES_TABLE"), "appearances"),
			CharactersTable:  firstNonEmpty(env("DATA_PG_CHARACTERS_TABLE"), "characters"),
			IssuesTable:      firstNonEmpty(env("DATA_PG_COMICS_TABLE"), "comics"),
			OrderBy:          env("DATA_PG_ORDER_BY"),
		},
		Watch:       parseBool(env("DATA_WATCH"), false),
		CostarCache: 1024,
	}

	if raw := env("COSTAR_CACHE_SIZE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid COSTAR_CACHE_SIZE %q: must be a positive integer", raw)
		}
		cfg.CostarCache = n
	}

	cfg.WatchDebounce = 250 * time.Millisecond
	if raw := env("DATA_WATCH_DEBOUNCE"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DATA_WATCH_DEBOUNCE %q: %w", raw, err)
		}
		cfg.WatchDebounce = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be 'text' or 'json'", c.LogFormat)
	}

	switch c.Source {
	case SourceDir:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the %q source", SourceDir)
		}
	case SourceS3:
		if c.S3.Endpoint == "" {
			return fmt.Errorf("DATA_S3_ENDPOINT is required for the %q source", SourceS3)
		}
	case SourcePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("DATA_PG_DSN is required for the %q source", SourcePostgres)
		}
	default:
		return fmt.Errorf("invalid data source %q: must be %q, %q or %q", c.Source, SourceDir, SourceS3, SourcePostgres)
	}

	if c.Watch && c.Source != SourceDir {
		return fmt.Errorf("DATA_WATCH is only supported for the %q source", SourceDir)
	}

	return nil
}

func parseBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
