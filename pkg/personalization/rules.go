// Package personalization selects content variants for a viewer context from
// an ordered rule table.
package personalization

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Ramsey-B/fern/pkg/models"
)

// MatchAny is the wildcard value a rule may use for either context dimension.
const MatchAny = "*"

// Rule maps one (locationType, audience) combination to a content variant.
// Either dimension may be the wildcard "*".
type Rule struct {
	LocationType string            `yaml:"location_type" json:"location_type"`
	Audience     string            `yaml:"audience" json:"audience"`
	Variant      models.VariantSet `yaml:"variant" json:"variant"`
}

// Matches reports whether the rule applies to a normalized viewer context.
func (r Rule) Matches(viewer models.ViewerContext) bool {
	if r.LocationType != MatchAny && r.LocationType != string(viewer.LocationType) {
		return false
	}
	if r.Audience != MatchAny && r.Audience != string(viewer.Audience) {
		return false
	}
	return true
}

// RuleTable is the ordered personalization rule list. First match wins, so
// content owners put specific rules before broad ones. The table is static
// configuration: loaded once at startup, read-only thereafter.
type RuleTable struct {
	Rules []Rule `yaml:"rules"`
}

// ParseRules parses a YAML rule table.
func ParseRules(data []byte) (*RuleTable, error) {
	var table RuleTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse personalization rules: %w", err)
	}

	for i, rule := range table.Rules {
		if rule.LocationType == "" || rule.Audience == "" {
			return nil, fmt.Errorf("personalization rule %d must set location_type and audience (use %q to match any)", i, MatchAny)
		}
	}

	return &table, nil
}

// LoadRules reads and parses a YAML rule table from disk.
func LoadRules(path string) (*RuleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read personalization rules %q: %w", path, err)
	}
	return ParseRules(data)
}
