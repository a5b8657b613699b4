package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() map[string]any {
	return map[string]any{
		"id":   "marina-towers",
		"name": "The Marina Towers",
		"location": map[string]any{
			"city":  "Stockton",
			"state": "CA",
		},
		"floorPlans": []any{
			map[string]any{"type": "studio", "name": "The Anchor", "sqFt": float64(520)},
			map[string]any{"type": "2bed", "name": "The Helm", "sqFt": float64(980)},
		},
		"scores": map[string]any{
			"value":      float64(4),
			"quiet":      float64(3),
			"management": float64(5),
			"amenities":  float64(4),
			"location":   float64(5),
		},
	}
}

func TestValidator_ValidRecord(t *testing.T) {
	validator := NewBuildingValidator()

	result := validator.Validate(validRecord())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Violations)
}

func TestValidator_RequiredFields(t *testing.T) {
	validator := NewBuildingValidator()

	t.Run("missing name", func(t *testing.T) {
		record := validRecord()
		delete(record, "name")
		result := validator.Validate(record)
		assert.False(t, result.Valid)
		require.Len(t, result.Violations, 1)
		assert.Equal(t, "name", result.Violations[0].Path)
		assert.Equal(t, RuleRequired, result.Violations[0].Rule)
	})

	t.Run("missing nested score", func(t *testing.T) {
		record := validRecord()
		delete(record["scores"].(map[string]any), "quiet")
		result := validator.Validate(record)
		assert.False(t, result.Valid)
		require.Len(t, result.Violations, 1)
		assert.Equal(t, "scores.quiet", result.Violations[0].Path)
		assert.Equal(t, RuleRequired, result.Violations[0].Rule)
	})

	t.Run("optional block can be absent", func(t *testing.T) {
		record := validRecord()
		delete(record, "location")
		delete(record, "floorPlans")
		result := validator.Validate(record)
		assert.True(t, result.Valid)
	})
}

func TestValidator_ScoreRange(t *testing.T) {
	validator := NewBuildingValidator()

	t.Run("score above range", func(t *testing.T) {
		record := validRecord()
		record["scores"].(map[string]any)["value"] = float64(6)
		result := validator.Validate(record)
		assert.False(t, result.Valid)
		require.Len(t, result.Violations, 1)
		assert.Equal(t, "scores.value", result.Violations[0].Path)
		assert.Equal(t, RuleRange, result.Violations[0].Rule)
		assert.Equal(t, 6, result.Violations[0].Actual)
	})

	t.Run("score below range", func(t *testing.T) {
		record := validRecord()
		record["scores"].(map[string]any)["quiet"] = float64(0)
		result := validator.Validate(record)
		assert.False(t, result.Valid)
		assert.Equal(t, RuleRange, result.Violations[0].Rule)
	})

	t.Run("fractional score is a type violation", func(t *testing.T) {
		record := validRecord()
		record["scores"].(map[string]any)["quiet"] = 3.5
		result := validator.Validate(record)
		assert.False(t, result.Valid)
		assert.Equal(t, RuleType, result.Violations[0].Rule)
	})
}

func TestValidator_FloorPlans(t *testing.T) {
	validator := NewBuildingValidator()

	t.Run("unknown plan type", func(t *testing.T) {
		record := validRecord()
		record["floorPlans"].([]any)[0].(map[string]any)["type"] = "penthouse"
		result := validator.Validate(record)
		assert.False(t, result.Valid)
		require.Len(t, result.Violations, 1)
		assert.Equal(t, "floorPlans[0].type", result.Violations[0].Path)
		assert.Equal(t, RuleEnum, result.Violations[0].Rule)
		assert.Equal(t, "penthouse", result.Violations[0].Actual)
	})

	t.Run("non-positive square footage", func(t *testing.T) {
		record := validRecord()
		record["floorPlans"].([]any)[1].(map[string]any)["sqFt"] = float64(0)
		result := validator.Validate(record)
		assert.False(t, result.Valid)
		require.Len(t, result.Violations, 1)
		assert.Equal(t, "floorPlans[1].sqFt", result.Violations[0].Path)
		assert.Equal(t, RulePositive, result.Violations[0].Rule)
	})

	t.Run("missing plan type", func(t *testing.T) {
		record := validRecord()
		delete(record["floorPlans"].([]any)[0].(map[string]any), "type")
		result := validator.Validate(record)
		assert.False(t, result.Valid)
		assert.Equal(t, "floorPlans[0].type", result.Violations[0].Path)
		assert.Equal(t, RuleRequired, result.Violations[0].Rule)
	})
}

func TestValidator_CollectsAllViolations(t *testing.T) {
	validator := NewBuildingValidator()

	record := validRecord()
	delete(record, "name")
	record["scores"].(map[string]any)["value"] = float64(9)
	record["floorPlans"].([]any)[0].(map[string]any)["type"] = "loft"
	record["floorPlans"].([]any)[1].(map[string]any)["sqFt"] = float64(-10)

	result := validator.Validate(record)
	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 4)

	paths := make([]string, len(result.Violations))
	for i, violation := range result.Violations {
		paths[i] = violation.Path
	}
	// Sorted by path: the full correction list comes back in one pass.
	assert.Equal(t, []string{"floorPlans[0].type", "floorPlans[1].sqFt", "name", "scores.value"}, paths)
}

func TestValidator_WrongTypes(t *testing.T) {
	validator := NewBuildingValidator()

	record := validRecord()
	record["name"] = 123
	result := validator.Validate(record)
	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "name", result.Violations[0].Path)
	assert.Equal(t, RuleType, result.Violations[0].Rule)
	assert.Equal(t, "number", result.Violations[0].Actual)
}

func TestValidator_PureOverJSONInput(t *testing.T) {
	validator := NewBuildingValidator()

	// Records decoded from JSON carry float64 numbers; validation must treat
	// them as integers when whole.
	raw, err := json.Marshal(validRecord())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	first := validator.Validate(decoded)
	second := validator.Validate(decoded)
	assert.True(t, first.Valid)
	assert.Equal(t, first, second)
}
