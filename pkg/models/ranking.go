package models

// Priority selects which score dimension a comparison is ranked by.
type Priority string

const (
	PriorityValue      Priority = "value"
	PriorityQuiet      Priority = "quiet"
	PriorityManagement Priority = "management"
	PriorityAmenities  Priority = "amenities"
	PriorityLocation   Priority = "location"
	PriorityOverall    Priority = "overall"
)

// Priorities lists every valid comparison priority.
var Priorities = []Priority{
	PriorityValue,
	PriorityQuiet,
	PriorityManagement,
	PriorityAmenities,
	PriorityLocation,
	PriorityOverall,
}

// IsValidPriority reports whether s names a comparison priority.
func IsValidPriority(s string) bool {
	for _, p := range Priorities {
		if string(p) == s {
			return true
		}
	}
	return false
}

// Ranking is one entry of a cross-property comparison.
type Ranking struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}
