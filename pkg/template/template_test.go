package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

func testRecord() models.BuildingRecord {
	return models.BuildingRecord{
		"id":   "marina-towers",
		"name": "Marina Towers",
		"overview": map[string]any{
			"tagline":     "City living on the water",
			"description": "A landmark tower.",
		},
		"pricing": map[string]any{
			"priceRange": "$1,200 - $1,500",
			"specials":   []any{},
		},
		"amenities": []any{"pool", "gym"},
		"floorPlans": []any{
			map[string]any{"type": "studio", "sqFt": 420},
			map[string]any{"type": "2bed", "sqFt": 910},
		},
		"scores": map[string]any{"value": 4, "quiet": 3},
	}
}

func TestRenderInterpolation(t *testing.T) {
	tmpl, err := Parse("t", "Welcome to {{name}}, from {{pricing.priceRange}}.")
	require.NoError(t, err)

	out := tmpl.Render(testRecord(), models.VariantSet{})
	assert.Equal(t, "Welcome to Marina Towers, from $1,200 - $1,500.", out)
}

func TestRenderMissingFieldRendersEmpty(t *testing.T) {
	tmpl, err := Parse("t", "Contact: {{contact.phone}}!")
	require.NoError(t, err)

	out := tmpl.Render(testRecord(), models.VariantSet{})
	assert.Equal(t, "Contact: !", out)
}

func TestRenderIf(t *testing.T) {
	tmpl, err := Parse("t", "{{#if overview.tagline}}T: {{overview.tagline}}{{/if}}")
	require.NoError(t, err)

	out := tmpl.Render(testRecord(), models.VariantSet{})
	assert.Equal(t, "T: City living on the water", out)
}

func TestRenderIfElse(t *testing.T) {
	tmpl, err := Parse("t", "{{#if contact.phone}}call{{else}}visit{{/if}}")
	require.NoError(t, err)

	out := tmpl.Render(testRecord(), models.VariantSet{})
	assert.Equal(t, "visit", out)
}

func TestRenderIfFalsyValues(t *testing.T) {
	tmpl, err := Parse("t", "{{#if subject}}yes{{else}}no{{/if}}")
	require.NoError(t, err)

	tests := []struct {
		name    string
		subject any
		want    string
	}{
		{"absent", nil, "no"},
		{"empty string", "", "no"},
		{"empty list", []any{}, "no"},
		{"zero int", 0, "no"},
		{"zero float", float64(0), "no"},
		{"false", false, "no"},
		{"non-empty string", "x", "yes"},
		{"non-empty list", []any{"x"}, "yes"},
		{"non-zero number", 3, "yes"},
		{"true", true, "yes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := models.BuildingRecord{}
			if tt.subject != nil {
				record["subject"] = tt.subject
			}
			assert.Equal(t, tt.want, tmpl.Render(record, models.VariantSet{}))
		})
	}
}

func TestRenderEach(t *testing.T) {
	tmpl, err := Parse("t", "{{#each amenities}}[{{this}}]{{/each}}")
	require.NoError(t, err)

	out := tmpl.Render(testRecord(), models.VariantSet{})
	assert.Equal(t, "[pool][gym]", out)
}

func TestRenderEachObjectFields(t *testing.T) {
	tmpl, err := Parse("t", "{{#each floorPlans}}{{type}}:{{sqFt}};{{/each}}")
	require.NoError(t, err)

	out := tmpl.Render(testRecord(), models.VariantSet{})
	assert.Equal(t, "studio:420;2bed:910;", out)
}

func TestRenderEachRootFallback(t *testing.T) {
	tmpl, err := Parse("t", "{{#each floorPlans}}{{name}}/{{type}} {{/each}}")
	require.NoError(t, err)

	out := tmpl.Render(testRecord(), models.VariantSet{})
	assert.Equal(t, "Marina Towers/studio Marina Towers/2bed ", out)
}

func TestRenderEachMissingSequence(t *testing.T) {
	tmpl, err := Parse("t", "a{{#each nothing}}x{{/each}}b")
	require.NoError(t, err)

	out := tmpl.Render(testRecord(), models.VariantSet{})
	assert.Equal(t, "ab", out)
}

func TestRenderNestedBlocks(t *testing.T) {
	tmpl, err := Parse("t", "{{#each floorPlans}}{{#if sqFt}}{{type}} {{/if}}{{/each}}")
	require.NoError(t, err)

	out := tmpl.Render(testRecord(), models.VariantSet{})
	assert.Equal(t, "studio 2bed ", out)
}

func TestRenderVariantOverlay(t *testing.T) {
	tmpl, err := Parse("t", "{{overview.tagline}} | {{overview.description}} |{{#each overview.keyFeatures}} {{title}}{{/each}}")
	require.NoError(t, err)

	record := testRecord()
	variants := models.VariantSet{
		Tagline: "Quiet waterfront retirement",
		Highlights: []models.FeatureHighlight{
			{Title: "Concierge", Description: "On call", Icon: "bell"},
			{Title: "Marina", Description: "Private slips", Icon: "anchor"},
		},
	}

	out := tmpl.Render(record, variants)
	assert.Equal(t, "Quiet waterfront retirement | A landmark tower. | Concierge Marina", out)

	// The record itself is untouched by the overlay.
	overview := record["overview"].(map[string]any)
	assert.Equal(t, "City living on the water", overview["tagline"])
	assert.NotContains(t, overview, "keyFeatures")
}

func TestShippedListingTemplate(t *testing.T) {
	store, err := LoadStore("../../assets/templates")
	require.NoError(t, err)
	tmpl := store.Get("listing")
	require.NotNil(t, tmpl)

	variants := models.VariantSet{
		Tagline: "Life at the water's edge",
		Highlights: []models.FeatureHighlight{
			{Title: "Marina access", Description: "Private slips and kayak storage for residents.", Icon: "anchor"},
		},
	}

	out := tmpl.Render(testRecord(), variants)
	assert.Contains(t, out, "- **Marina access**: Private slips and kayak storage for residents.")
	assert.NotContains(t, out, "{\"", "highlight objects must render field by field, not as JSON")
}

func TestRenderIdempotent(t *testing.T) {
	tmpl, err := Parse("t", "{{name}}: {{#each amenities}}{{this}},{{/each}}{{#if scores.quiet}}quiet={{scores.quiet}}{{/if}}")
	require.NoError(t, err)

	record := testRecord()
	first := tmpl.Render(record, models.VariantSet{})
	second := tmpl.Render(record, models.VariantSet{})
	assert.Equal(t, first, second)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unterminated tag", "hello {{name"},
		{"unterminated if", "{{#if name}}hello"},
		{"unterminated each", "{{#each amenities}}hello"},
		{"stray close", "hello {{/if}}"},
		{"stray else", "hello {{else}}"},
		{"mismatched closer", "{{#if name}}hello{{/each}}"},
		{"unknown block", "{{#unless name}}hello{{/unless}}"},
		{"duplicate else", "{{#if name}}a{{else}}b{{else}}c{{/if}}"},
		{"empty tag", "hello {{}}"},
		{"empty tag with spaces", "hello {{   }}"},
		{"empty if subject", "{{#if }}hello{{/if}}"},
		{"empty each subject", "{{#each }}hello{{/each}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("t", tt.doc)
			require.Error(t, err)

			var renderErr *RenderError
			require.ErrorAs(t, err, &renderErr)
		})
	}
}

func TestStoreLoadAndGet(t *testing.T) {
	store, err := LoadStore("testdata")
	require.NoError(t, err)

	assert.Equal(t, []string{"listing"}, store.IDs())

	tmpl := store.Get("listing")
	require.NotNil(t, tmpl)

	out := tmpl.Render(testRecord(), models.VariantSet{})
	assert.Contains(t, out, "Marina Towers")
	assert.Contains(t, out, "- studio (420 sq ft)")

	assert.Nil(t, store.Get("unknown"))
}

func TestStoreMissingDir(t *testing.T) {
	_, err := LoadStore("testdata/nope")
	require.Error(t, err)
}
