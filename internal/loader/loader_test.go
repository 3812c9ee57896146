package loader

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/costarnet/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	appearancesCSV = "Comic,Character\nASM #1,Spider-Man\nASM #1,Fantastic Four\n"
	charactersCSV  = "Character,Alternate Names,Alternate Appearances\nSpider-Man,Peter Parker,\nFantastic Four,,\n"
	issuesCSV      = "Comic,Link\nASM #1,https://example.com/asm1\n"
)

type mapSource struct {
	docs  map[string]string
	errs  map[string]error
	opens atomic.Int32
}

func (s *mapSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	s.opens.Add(1)
	if err := s.errs[name]; err != nil {
		return nil, err
	}
	doc, ok := s.docs[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(strings.NewReader(doc)), nil
}

func validSource() *mapSource {
	return &mapSource{docs: map[string]string{
		"appearances.csv": appearancesCSV,
		"characters.csv":  charactersCSV,
		"comics.csv":      issuesCSV,
	}}
}

func TestCSVLoader(t *testing.T) {
	t.Run("loads all three tables", func(t *testing.T) {
		l := NewCSVLoader(validSource(), Files{})

		tables, err := l.Load(context.Background())

		require.NoError(t, err)
		assert.Len(t, tables.Appearances, 2)
		assert.Len(t, tables.Characters, 2)
		assert.Equal(t, []models.IssueRecord{{Comic: "ASM #1", Link: "https://example.com/asm1"}}, tables.Issues)
	})

	t.Run("applies default file names", func(t *testing.T) {
		l := NewCSVLoader(validSource(), Files{Issues: "issues.csv"})

		assert.Equal(t, Files{
			Appearances: "appearances.csv",
			Characters:  "characters.csv",
			Issues:      "issues.csv",
		}, l.Files())
	})

	t.Run("any failing table fails the load", func(t *testing.T) {
		src := validSource()
		src.errs = map[string]error{"characters.csv": errors.New("boom")}

		tables, err := NewCSVLoader(src, Files{}).Load(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "load characters: boom")
		assert.Empty(t, tables.Appearances)
		assert.Empty(t, tables.Issues)
	})

	t.Run("missing document", func(t *testing.T) {
		src := validSource()
		delete(src.docs, "comics.csv")

		_, err := NewCSVLoader(src, Files{}).Load(context.Background())

		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("malformed row surfaces typed error", func(t *testing.T) {
		src := validSource()
		src.docs["appearances.csv"] = "Comic,Character\n,Spider-Man\n"

		_, err := NewCSVLoader(src, Files{}).Load(context.Background())

		assert.True(t, errors.Is(err, models.ErrMalformedRow))
	})
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "appearances.csv"), []byte(appearancesCSV), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "characters.csv"), []byte(charactersCSV), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comics.csv"), []byte(issuesCSV), 0600))

	t.Run("loads tables from directory", func(t *testing.T) {
		src, err := NewDirSource(dir)
		require.NoError(t, err)

		tables, err := NewCSVLoader(src, DefaultFiles()).Load(context.Background())

		require.NoError(t, err)
		assert.Len(t, tables.Appearances, 2)
		assert.Equal(t, []string{"Peter Parker"}, tables.Characters[0].AlternateNames)
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := NewDirSource(" ")
		assert.Error(t, err)
	})

	t.Run("rejects file path", func(t *testing.T) {
		_, err := NewDirSource(filepath.Join(dir, "comics.csv"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "is not a directory")
	})

	t.Run("honours cancelled context", func(t *testing.T) {
		src, err := NewDirSource(dir)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = src.Open(ctx, "comics.csv")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewS3Source(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     S3Config
		wantErr string
	}{
		{"missing endpoint", S3Config{AccessKey: "a", SecretKey: "b", Bucket: "c"}, "endpoint is required"},
		{"missing credentials", S3Config{Endpoint: "localhost:9000", Bucket: "c"}, "access key and secret key are required"},
		{"missing bucket", S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, "bucket is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewS3Source(tc.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	t.Run("valid config builds client", func(t *testing.T) {
		src, err := NewS3Source(S3Config{
			Endpoint:  "localhost:9000",
			AccessKey: "minio",
			SecretKey: "minio123",
			Bucket:    "costarnet",
			Prefix:    "/datasets/swords/",
		})

		require.NoError(t, err)
		assert.Equal(t, "datasets/swords", src.prefix)
	})
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "comics.csv", objectKey("", "/comics.csv"))
	assert.Equal(t, "data/comics.csv", objectKey("data", "comics.csv"))
}
