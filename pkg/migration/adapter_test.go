package migration

import (
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAdapter() *Adapter {
	return NewAdapter(ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {}))
}

func legacyFixture() map[string]any {
	return map[string]any{
		"property_name": "The  Marina Towers",
		"slug":          "marina-towers",
		"address":       "500 Embarcadero Way",
		"city":          "Stockton",
		"state":         "CA",
		"zip":           "95202",
		"headline":      "Waterfront living, downtown convenience",
		"summary":       "A mid-rise on the deep water channel.",
		"studio_price":  "1200-1500",
		"specials":      "First month free; Reduced deposit",
		"deposit":       "500",
		"units": []any{
			map[string]any{
				"unit_type": "1BR",
				"plan_name": "The Mast",
				"sq_ft":     "760 sq. ft.",
				"rent":      "$1,650/mo",
				"features":  "balcony, in-unit laundry",
			},
		},
		"ratings": map[string]any{
			"value":      4,
			"noise":      3,
			"management": 5,
			"amenities":  4,
			"location":   5,
		},
		"phone":          "(209) 555-0144",
		"email":          "Leasing@MarinaTowers.example.com ",
		"legacy_cms_rev": 42,
	}
}

func TestAdapter_Adapt(t *testing.T) {
	adapter := testAdapter()

	record, merr := adapter.Adapt(legacyFixture())
	require.Nil(t, merr)

	t.Run("renamed fields", func(t *testing.T) {
		assert.Equal(t, "marina-towers", record.ID())
		assert.Equal(t, "The Marina Towers", record.Name())
	})

	t.Run("nested location", func(t *testing.T) {
		location := record["location"].(map[string]any)
		assert.Equal(t, "Stockton", location["city"])
		assert.Equal(t, "95202", location["zipCode"])
	})

	t.Run("price normalization", func(t *testing.T) {
		pricing := record["pricing"].(map[string]any)
		assert.Equal(t, "$1,200 - $1,500", pricing["studioRange"])
		costs := pricing["moveInCosts"].(map[string]any)
		assert.Equal(t, "$500", costs["deposit"])
	})

	t.Run("string to list split", func(t *testing.T) {
		pricing := record["pricing"].(map[string]any)
		assert.Equal(t, []any{"First month free", "Reduced deposit"}, pricing["currentSpecials"])
	})

	t.Run("floor plan item mapping", func(t *testing.T) {
		plans := record["floorPlans"].([]any)
		require.Len(t, plans, 1)
		plan := plans[0].(map[string]any)
		assert.Equal(t, "1bed", plan["type"])
		assert.Equal(t, "The Mast", plan["name"])
		assert.Equal(t, 760, plan["sqFt"])
		assert.Equal(t, "$1,650", plan["price"])
		assert.Equal(t, []any{"balcony", "in-unit laundry"}, plan["features"])
	})

	t.Run("score mapping", func(t *testing.T) {
		scores := record["scores"].(map[string]any)
		assert.Equal(t, 4, scores["value"])
		assert.Equal(t, 3, scores["quiet"])
		assert.Equal(t, 5, scores["management"])
	})

	t.Run("contact normalization", func(t *testing.T) {
		contact := record["contact"].(map[string]any)
		assert.Equal(t, "2095550144", contact["phone"])
		assert.Equal(t, "leasing@marinatowers.example.com", contact["email"])
	})

	t.Run("unmapped legacy fields are dropped", func(t *testing.T) {
		_, ok := record["legacy_cms_rev"]
		assert.False(t, ok)
	})
}

func TestAdapter_Adapt_DerivedID(t *testing.T) {
	adapter := testAdapter()

	record, merr := adapter.Adapt(map[string]any{
		"property_name": "Harborview Flats",
	})
	require.Nil(t, merr)
	assert.Equal(t, "harborview-flats", record.ID())
}

func TestAdapter_Adapt_MissingRequired(t *testing.T) {
	adapter := testAdapter()

	t.Run("no name and no id", func(t *testing.T) {
		_, merr := adapter.Adapt(map[string]any{
			"city": "Stockton",
		})
		require.NotNil(t, merr)
		assert.Equal(t, []string{"id", "name"}, merr.MissingRequired)
		assert.Contains(t, merr.Error(), "missing required fields")
	})

	t.Run("id alone is not enough", func(t *testing.T) {
		_, merr := adapter.Adapt(map[string]any{
			"slug": "mystery-building",
		})
		require.NotNil(t, merr)
		assert.Equal(t, []string{"name"}, merr.MissingRequired)
	})

	t.Run("name with no sluggable characters", func(t *testing.T) {
		_, merr := adapter.Adapt(map[string]any{
			"property_name": "!!! ???",
		})
		require.NotNil(t, merr)
		assert.Equal(t, []string{"id"}, merr.MissingRequired)
	})
}

func TestAdapter_Adapt_AuditsDroppedFields(t *testing.T) {
	audits := 0
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {
		audits++
	})
	adapter := NewAdapter(logger)

	_, merr := adapter.Adapt(map[string]any{
		"property_name":  "Harborview Flats",
		"legacy_cms_rev": 42,
	})
	require.Nil(t, merr)
	// One audit entry for the single unmapped key.
	assert.Equal(t, 1, audits)
}
