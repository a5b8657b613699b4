// Package migration adapts heterogeneous legacy property records into the
// canonical building schema.
package migration

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/extractor"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/normalizers"
)

// MigrationError reports the canonical fields that could not be derived from a
// legacy record. It is unrecoverable for that record; the caller decides
// whether to skip the record or abort the run.
type MigrationError struct {
	MissingRequired []string
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration failed, missing required fields: %s", strings.Join(e.MissingRequired, ", "))
}

// Adapter maps legacy records onto the canonical schema using the fixed
// mapping table. It holds no per-record state and is safe for concurrent use.
type Adapter struct {
	logger ectologger.Logger
}

// NewAdapter creates a new Adapter
func NewAdapter(logger ectologger.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Adapt maps a legacy record into a canonical BuildingRecord. Unmapped legacy
// keys are dropped and logged for audit. Returns a MigrationError when a
// required field with no derivation (id, name) is absent.
func (a *Adapter) Adapt(legacy map[string]any) (models.BuildingRecord, *MigrationError) {
	record := make(map[string]any)
	consumed := make(map[string]struct{})
	var missing []string

	for _, m := range buildingMappings {
		value, legacyKey, ok := firstPresent(legacy, m.Legacy)
		if !ok {
			if m.Required {
				missing = append(missing, m.Canonical)
			}
			continue
		}
		consumed[rootKey(legacyKey)] = struct{}{}

		coerced, ok := coerceValue(value, m)
		if !ok {
			if m.Required {
				missing = append(missing, m.Canonical)
			}
			continue
		}

		if m.Canonical == models.FieldFloor {
			coerced = a.adaptFloorPlans(coerced)
		}

		record = extractor.Assign(record, m.Canonical, coerced)
	}

	// The slug can be derived from the name when the legacy system never
	// assigned one. A name with no sluggable characters yields no id.
	if _, ok := record[models.FieldID]; !ok {
		name, _ := record[models.FieldName].(string)
		if slug := normalizers.NormalizeSlug(name); slug != "" {
			record[models.FieldID] = slug
		} else {
			missing = append(missing, models.FieldID)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MigrationError{MissingRequired: missing}
	}

	a.auditDropped(legacy, consumed)

	return models.BuildingRecord(record), nil
}

// adaptFloorPlans runs the item-level mapping table over each legacy floor
// plan entry, folding legacy unit type spellings into the canonical enum.
func (a *Adapter) adaptFloorPlans(value any) any {
	arr, ok := extractor.ToArray(value)
	if !ok {
		return value
	}

	plans := make([]any, 0, len(arr))
	for _, item := range arr {
		legacyPlan, ok := item.(map[string]any)
		if !ok {
			continue
		}

		plan := make(map[string]any)
		for _, m := range floorPlanItemMappings {
			v, _, ok := firstPresent(legacyPlan, m.Legacy)
			if !ok {
				continue
			}
			coerced, ok := coerceValue(v, m)
			if !ok {
				continue
			}
			if m.Canonical == "type" {
				if canonical, ok := legacyFloorPlanTypes[coerced.(string)]; ok {
					coerced = canonical
				}
			}
			plan[m.Canonical] = coerced
		}
		plans = append(plans, plan)
	}

	return plans
}

// auditDropped logs every top-level legacy key the mapping table did not
// consume. Dropping is silent for the caller but leaves an audit trail.
func (a *Adapter) auditDropped(legacy map[string]any, consumed map[string]struct{}) {
	for key := range legacy {
		if _, ok := consumed[key]; ok {
			continue
		}
		a.logger.WithFields(map[string]any{
			"legacy_key": key,
		}).Info("Dropped unmapped legacy field")
	}
}

// firstPresent returns the value of the first legacy path present on the input.
func firstPresent(legacy map[string]any, paths []string) (any, string, bool) {
	for _, path := range paths {
		if value, ok := extractor.Extract(legacy, path); ok {
			return value, path, true
		}
	}
	return nil, "", false
}

// rootKey returns the top-level segment of a legacy path for audit bookkeeping.
func rootKey(path string) string {
	if idx := strings.Index(path, "."); idx != -1 {
		return path[:idx]
	}
	return path
}

// coerceValue applies the mapping's normalizer chain and value kind. Returns
// ok=false when the legacy value cannot be coerced (empty after normalization,
// unparsable number).
func coerceValue(value any, m FieldMapping) (any, bool) {
	switch m.Kind {
	case KindRaw:
		return value, value != nil

	case KindList:
		// Already-shaped lists pass through; delimited strings are split.
		if arr, ok := extractor.ToArray(value); ok {
			result := make([]any, 0, len(arr))
			for _, item := range arr {
				if s := strings.TrimSpace(extractor.ToString(item)); s != "" {
					result = append(result, s)
				}
			}
			return result, true
		}
		items := normalizers.SplitList(extractor.ToString(value))
		result := make([]any, len(items))
		for i, s := range items {
			result[i] = s
		}
		return result, true

	case KindInt:
		s := normalizers.ApplyChain(extractor.ToString(value), m.Normalizers...)
		n, err := strconv.Atoi(normalizers.DigitsOnly(s))
		if err != nil {
			return nil, false
		}
		return n, true

	default:
		s := normalizers.ApplyChain(extractor.ToString(value), m.Normalizers...)
		return s, s != ""
	}
}
