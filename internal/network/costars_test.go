package network

import (
	"testing"

	"github.com/costarnet/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppearedWith(t *testing.T) {
	t.Run("ranks by count then name", func(t *testing.T) {
		edges := []models.Edge{
			edge("Issue1", "A", "B"),
			edge("Issue2", "A", "B"),
			edge("Issue1", "A", "C"),
		}

		costars := AppearedWith(edges, "A")

		assert.Equal(t, []models.CostarSummary{
			{Costar: "B", Issues: []string{"Issue1", "Issue2"}, Count: 2},
			{Costar: "C", Issues: []string{"Issue1"}, Count: 1},
		}, costars)
	})

	t.Run("ties broken alphabetically", func(t *testing.T) {
		edges := []models.Edge{
			edge("1", "Mona", "Zed"),
			edge("1", "Mona", "Bob"),
			edge("2", "Mona", "Kim"),
		}

		costars := AppearedWith(edges, "Mona")

		require.Len(t, costars, 3)
		assert.Equal(t, "Bob", costars[0].Costar)
		assert.Equal(t, "Kim", costars[1].Costar)
		assert.Equal(t, "Zed", costars[2].Costar)
	})

	t.Run("works from either side of the pair", func(t *testing.T) {
		edges := []models.Edge{edge("1", "Alice", "Bob"), edge("2", "Bob", "Carol")}

		costars := AppearedWith(edges, "Bob")

		require.Len(t, costars, 2)
		assert.Equal(t, "Alice", costars[0].Costar)
		assert.Equal(t, "Carol", costars[1].Costar)
	})

	t.Run("duplicate issues are preserved", func(t *testing.T) {
		edges := ExtractEdges(rows("1", "A", "1", "A", "1", "B"))

		costars := AppearedWith(edges, "B")

		require.Len(t, costars, 1)
		assert.Equal(t, []string{"1", "1"}, costars[0].Issues)
		assert.Equal(t, 2, costars[0].Count)
	})

	t.Run("unknown character yields empty list", func(t *testing.T) {
		costars := AppearedWith([]models.Edge{edge("1", "A", "B")}, "Nobody")

		assert.NotNil(t, costars)
		assert.Empty(t, costars)
	})

	t.Run("name match is exact", func(t *testing.T) {
		costars := AppearedWith([]models.Edge{edge("1", "Spider-Man", "Mary Jane")}, "Spider")

		assert.Empty(t, costars)
	})
}
