package personalization

import (
	"github.com/Ramsey-B/fern/pkg/models"
)

// Selector picks content variants for a record and viewer context. Selection
// is a pure lookup over the rule table; the record is never mutated.
type Selector struct {
	table *RuleTable
}

// NewSelector creates a Selector over a loaded rule table. A nil table behaves
// like an empty one (every selection falls through to record content).
func NewSelector(table *RuleTable) *Selector {
	if table == nil {
		table = &RuleTable{}
	}
	return &Selector{table: table}
}

// Select returns the variant overlay for a viewer context. The first matching
// rule wins; with no match the zero overlay is returned and the renderer uses
// the record's own tagline and key features verbatim.
func (s *Selector) Select(record models.BuildingRecord, viewer models.ViewerContext) models.VariantSet {
	normalized := viewer.Normalize()
	for _, rule := range s.table.Rules {
		if rule.Matches(normalized) {
			return rule.Variant
		}
	}

	return models.VariantSet{}
}
