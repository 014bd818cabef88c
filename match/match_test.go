package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBest(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Title: "Cowboy Bebop"},
		{ID: 2, Title: "Cowboy Bebop: The Movie"},
		{ID: 3, Title: "Space Dandy"},
	}

	t.Run("exact title wins with full score", func(t *testing.T) {
		best, score, ok := Best("Cowboy Bebop", candidates)
		assert.True(t, ok)
		assert.Equal(t, 1, best.ID)
		assert.Equal(t, 100, score)
	})

	t.Run("no candidate above threshold", func(t *testing.T) {
		_, score, ok := Best("Neon Genesis Evangelion", candidates)
		assert.False(t, ok)
		assert.Less(t, score, Threshold)
	})

	t.Run("empty candidate list", func(t *testing.T) {
		_, _, ok := Best("Cowboy Bebop", nil)
		assert.False(t, ok)
	})

	t.Run("empty titles are skipped", func(t *testing.T) {
		_, _, ok := Best("Cowboy Bebop", []Candidate{{ID: 9, Title: ""}})
		assert.False(t, ok)
	})
}
