package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

func scoredRecord(id string, value, quiet, management, amenities, location int) models.BuildingRecord {
	return models.BuildingRecord{
		"id": id,
		"scores": map[string]any{
			"value":      value,
			"quiet":      quiet,
			"management": management,
			"amenities":  amenities,
			"location":   location,
		},
	}
}

func TestOverallScore(t *testing.T) {
	tests := []struct {
		name   string
		record models.BuildingRecord
		want   float64
	}{
		{"mixed", scoredRecord("a", 4, 5, 3, 4, 5), 4.2},
		{"all max", scoredRecord("a", 5, 5, 5, 5, 5), 5.0},
		{"all min", scoredRecord("a", 1, 1, 1, 1, 1), 1.0},
		{"exact tenth", scoredRecord("a", 3, 3, 3, 4, 4), 3.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OverallScore(tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverallScoreErrors(t *testing.T) {
	t.Run("no scores", func(t *testing.T) {
		_, err := OverallScore(models.BuildingRecord{"id": "a"})
		require.Error(t, err)
	})

	t.Run("missing dimension", func(t *testing.T) {
		record := scoredRecord("a", 4, 4, 4, 4, 4)
		delete(record["scores"].(map[string]any), "quiet")
		_, err := OverallScore(record)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quiet")
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := OverallScore(scoredRecord("a", 6, 4, 4, 4, 4))
		require.Error(t, err)
	})
}

func TestScoreFor(t *testing.T) {
	record := scoredRecord("a", 4, 2, 5, 3, 1)

	quiet, err := ScoreFor(record, models.PriorityQuiet)
	require.NoError(t, err)
	assert.Equal(t, 2.0, quiet)

	overall, err := ScoreFor(record, models.PriorityOverall)
	require.NoError(t, err)
	assert.Equal(t, 3.0, overall)

	delete(record["scores"].(map[string]any), "management")
	_, err = ScoreFor(record, models.PriorityManagement)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "management")
}

func TestCompare(t *testing.T) {
	records := []models.BuildingRecord{
		scoredRecord("cedar-court", 3, 5, 3, 3, 3),
		scoredRecord("marina-towers", 5, 2, 4, 5, 5),
		scoredRecord("birch-house", 3, 5, 3, 3, 3),
	}

	t.Run("by dimension", func(t *testing.T) {
		rankings, err := Compare(records, models.PriorityQuiet)
		require.NoError(t, err)
		require.Len(t, rankings, 3)

		// Ties order by ascending ID.
		assert.Equal(t, "birch-house", rankings[0].ID)
		assert.Equal(t, "cedar-court", rankings[1].ID)
		assert.Equal(t, "marina-towers", rankings[2].ID)
		assert.Equal(t, 5.0, rankings[0].Score)
	})

	t.Run("by overall", func(t *testing.T) {
		rankings, err := Compare(records, models.PriorityOverall)
		require.NoError(t, err)
		require.Len(t, rankings, 3)

		assert.Equal(t, models.Ranking{ID: "marina-towers", Score: 4.2}, rankings[0])
		assert.Equal(t, 3.4, rankings[1].Score)
	})

	t.Run("skips unscored buildings", func(t *testing.T) {
		withBroken := append(records, models.BuildingRecord{"id": "no-scores"})
		rankings, err := Compare(withBroken, models.PriorityValue)
		require.NoError(t, err)
		assert.Len(t, rankings, 3)
	})

	t.Run("unknown priority", func(t *testing.T) {
		_, err := Compare(records, models.Priority("charm"))
		require.Error(t, err)
	})
}
