// Package scoring derives overall building scores from the five component
// dimensions and ranks buildings against a viewer-chosen priority.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/Ramsey-B/fern/pkg/models"
)

// OverallScore computes the unweighted mean of the five component scores,
// rounded half away from zero to one decimal place. It fails when any
// dimension is missing or outside the valid range.
func OverallScore(record models.BuildingRecord) (float64, error) {
	components, _ := record.ComponentScores()
	if components == nil {
		return 0, fmt.Errorf("building %s has no component scores", record.ID())
	}

	sum := 0
	for _, dimension := range models.ScoreDimensions {
		score, ok := components[dimension]
		if !ok {
			return 0, fmt.Errorf("building %s is missing the %s score", record.ID(), dimension)
		}
		if score < models.ScoreMin || score > models.ScoreMax {
			return 0, fmt.Errorf("building %s has %s score %d outside [%d, %d]", record.ID(), dimension, score, models.ScoreMin, models.ScoreMax)
		}
		sum += score
	}

	mean := float64(sum) / float64(len(models.ScoreDimensions))
	return math.Round(mean*10) / 10, nil
}

// ScoreFor returns a building's score along one priority. Dimension
// priorities read the component score directly; the overall priority computes
// the aggregate.
func ScoreFor(record models.BuildingRecord, priority models.Priority) (float64, error) {
	if priority == models.PriorityOverall {
		return OverallScore(record)
	}

	components, _ := record.ComponentScores()
	if components == nil {
		return 0, fmt.Errorf("building %s has no component scores", record.ID())
	}

	score, ok := components[models.ScoreDimension(priority)]
	if !ok {
		return 0, fmt.Errorf("building %s is missing the %s score", record.ID(), priority)
	}
	return float64(score), nil
}

// Compare ranks buildings by the given priority, highest score first.
// Buildings tied on score order by ascending ID so a ranking is stable across
// calls. A building without usable scores is excluded from the result.
func Compare(records []models.BuildingRecord, priority models.Priority) ([]models.Ranking, error) {
	if !models.IsValidPriority(string(priority)) {
		return nil, fmt.Errorf("unknown ranking priority %q", priority)
	}

	rankings := make([]models.Ranking, 0, len(records))
	for _, record := range records {
		score, err := ScoreFor(record, priority)
		if err != nil {
			continue
		}
		rankings = append(rankings, models.Ranking{ID: record.ID(), Score: score})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].Score != rankings[j].Score {
			return rankings[i].Score > rankings[j].Score
		}
		return rankings[i].ID < rankings[j].ID
	})

	return rankings, nil
}
