// Package models defines the canonical building record shape and the
// enumerations shared across the rendering and scoring pipeline.
package models

// Canonical field paths used by the validator, renderer, and scoring aggregator.
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldLocation  = "location"
	FieldOverview  = "overview"
	FieldPricing   = "pricing"
	FieldFloor     = "floorPlans"
	FieldAmenities = "amenities"
	FieldScores    = "scores"
	FieldReviews   = "reviews"
	FieldContact   = "contact"
	FieldMedia     = "media"
	FieldSEO       = "seo"
)

// FloorPlanType enumerates the allowed floorPlans[].type values.
type FloorPlanType string

const (
	FloorPlanStudio   FloorPlanType = "studio"
	FloorPlanOneBed   FloorPlanType = "1bed"
	FloorPlanTwoBed   FloorPlanType = "2bed"
	FloorPlanThreeBed FloorPlanType = "3bed"
)

// FloorPlanTypes lists every valid floor plan type.
var FloorPlanTypes = []FloorPlanType{FloorPlanStudio, FloorPlanOneBed, FloorPlanTwoBed, FloorPlanThreeBed}

// IsValidFloorPlanType reports whether s is an allowed floor plan type.
func IsValidFloorPlanType(s string) bool {
	for _, t := range FloorPlanTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// ScoreDimension names one of the five component scores on a record.
type ScoreDimension string

const (
	ScoreValue      ScoreDimension = "value"
	ScoreQuiet      ScoreDimension = "quiet"
	ScoreManagement ScoreDimension = "management"
	ScoreAmenities  ScoreDimension = "amenities"
	ScoreLocation   ScoreDimension = "location"
)

// ScoreDimensions lists the five component score dimensions in canonical order.
var ScoreDimensions = []ScoreDimension{ScoreValue, ScoreQuiet, ScoreManagement, ScoreAmenities, ScoreLocation}

const (
	// ScoreMin and ScoreMax bound every component score (closed integer range).
	ScoreMin = 1
	ScoreMax = 5
)

// BuildingRecord is the canonical representation of one property. Record data
// flows through the pipeline as nested maps (the same shape it has on the wire),
// so consumers resolve fields by path rather than via struct tags.
type BuildingRecord map[string]any

// ID returns the record's stable slug, or "" when absent.
func (r BuildingRecord) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// Name returns the record's display name, or "" when absent.
func (r BuildingRecord) Name() string {
	name, _ := r[FieldName].(string)
	return name
}

// ComponentScores returns the component scores present on the record, keyed
// by dimension. ok reports whether all five dimensions are present and
// numeric; validated records always return ok=true. A record without a scores
// block returns a nil map.
func (r BuildingRecord) ComponentScores() (map[ScoreDimension]int, bool) {
	block, blockOK := r[FieldScores].(map[string]any)
	if !blockOK {
		return nil, false
	}

	scores := make(map[ScoreDimension]int, len(ScoreDimensions))
	complete := true
	for _, dim := range ScoreDimensions {
		n, ok := toInt(block[string(dim)])
		if !ok {
			complete = false
			continue
		}
		scores[dim] = n
	}
	return scores, complete
}

// toInt accepts the numeric representations a record can arrive with. JSON
// decoding yields float64; hand-built records may carry int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int64(n)) {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}
