package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordDeterministic(t *testing.T) {
	a := map[string]any{
		"id":   "marina-towers",
		"name": "Marina Towers",
		"scores": map[string]any{
			"quiet": float64(4),
			"light": float64(5),
		},
	}
	b := map[string]any{
		"scores": map[string]any{
			"light": float64(5),
			"quiet": float64(4),
		},
		"name": "Marina Towers",
		"id":   "marina-towers",
	}

	assert.Equal(t, Record(a), Record(b), "key order should not affect the hash")
}

func TestRecordIgnoresVolatilePaths(t *testing.T) {
	base := map[string]any{"id": "marina-towers", "name": "Marina Towers"}
	withSource := map[string]any{"id": "marina-towers", "name": "Marina Towers", "source": "crm"}

	assert.Equal(t, Record(base), Record(withSource))
}

func TestRecordDetectsContentChange(t *testing.T) {
	before := Record(map[string]any{"id": "marina-towers", "name": "Marina Towers"})
	after := Record(map[string]any{"id": "marina-towers", "name": "Marina Towers II"})

	assert.True(t, Changed(before, after))
	assert.False(t, Changed(before, before))
}

func TestWithExclusionsDropsSubtree(t *testing.T) {
	record := map[string]any{
		"id": "marina-towers",
		"overview": map[string]any{
			"tagline": "Waterfront living",
		},
	}
	bare := map[string]any{"id": "marina-towers"}

	exclude := map[string]bool{"overview": true}
	assert.Equal(t, WithExclusions(bare, exclude), WithExclusions(record, exclude))
}

func TestArrayOrderMatters(t *testing.T) {
	a := Record(map[string]any{"amenities": []any{"gym", "pool"}})
	b := Record(map[string]any{"amenities": []any{"pool", "gym"}})

	assert.NotEqual(t, a, b)
}
