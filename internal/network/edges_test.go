package network

import (
	"testing"

	"github.com/costarnet/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(pairs ...string) []models.AppearanceRow {
	out := []models.AppearanceRow{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.AppearanceRow{Comic: pairs[i], Character: pairs[i+1]})
	}
	return out
}

func TestExtractEdges(t *testing.T) {
	t.Run("empty input yields no edges", func(t *testing.T) {
		edges := ExtractEdges(nil)

		assert.NotNil(t, edges)
		assert.Empty(t, edges)
	})

	t.Run("issue with a single character yields no edges", func(t *testing.T) {
		edges := ExtractEdges(rows("1", "Alice", "2", "Bob"))

		assert.Empty(t, edges)
	})

	t.Run("issue with k characters yields k(k-1)/2 edges", func(t *testing.T) {
		for k := 0; k <= 6; k++ {
			input := []models.AppearanceRow{}
			for i := 0; i < k; i++ {
				input = append(input, models.AppearanceRow{Comic: "X", Character: string(rune('A' + i))})
			}

			edges := ExtractEdges(input)

			assert.Len(t, edges, k*(k-1)/2, "k=%d", k)
		}
	})

	t.Run("pairs are ordered and never self edges", func(t *testing.T) {
		edges := ExtractEdges(rows(
			"1", "Zed", "1", "Alice", "1", "Mona",
			"2", "Bob", "2", "Alice",
		))

		require.Len(t, edges, 4)
		for _, e := range edges {
			assert.Less(t, e.Pair.First, e.Pair.Second)
		}
		assert.Equal(t, models.Edge{Comic: "1", Pair: models.Pair{First: "Alice", Second: "Zed"}}, edges[0])
		assert.Equal(t, models.Edge{Comic: "2", Pair: models.Pair{First: "Alice", Second: "Bob"}}, edges[3])
	})

	t.Run("end-to-end example", func(t *testing.T) {
		edges := ExtractEdges(rows("1", "Alice", "1", "Bob", "2", "Alice", "2", "Carol"))

		assert.Equal(t, []models.Edge{
			{Comic: "1", Pair: models.Pair{First: "Alice", Second: "Bob"}},
			{Comic: "2", Pair: models.Pair{First: "Alice", Second: "Carol"}},
		}, edges)
	})

	t.Run("interleaved rows are grouped by issue", func(t *testing.T) {
		edges := ExtractEdges(rows("1", "Alice", "2", "Carol", "1", "Bob", "2", "Dan"))

		require.Len(t, edges, 2)
		assert.Equal(t, "1", edges[0].Comic)
		assert.Equal(t, models.NewPair("Alice", "Bob"), edges[0].Pair)
		assert.Equal(t, "2", edges[1].Comic)
		assert.Equal(t, models.NewPair("Carol", "Dan"), edges[1].Pair)
	})

	t.Run("duplicate rows count as separate occurrences", func(t *testing.T) {
		edges := ExtractEdges(rows("1", "Alice", "1", "Alice", "1", "Bob"))

		require.Len(t, edges, 2)
		for _, e := range edges {
			assert.Equal(t, models.NewPair("Alice", "Bob"), e.Pair)
		}
	})

	t.Run("output is deterministic", func(t *testing.T) {
		input := rows("3", "C", "1", "A", "3", "B", "1", "C", "2", "A", "2", "B", "3", "A")

		assert.Equal(t, ExtractEdges(input), ExtractEdges(input))
	})
}
