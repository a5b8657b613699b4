package normalizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCurrency(t *testing.T) {
	t.Run("bare number", func(t *testing.T) {
		assert.Equal(t, "$1,200", NormalizeCurrency("1200"))
	})

	t.Run("monthly suffix stripped", func(t *testing.T) {
		assert.Equal(t, "$1,200", NormalizeCurrency("$1200/mo"))
		assert.Equal(t, "$1,200", NormalizeCurrency("1,200 per month"))
		assert.Equal(t, "$950", NormalizeCurrency("950 pcm"))
	})

	t.Run("no digits yields empty", func(t *testing.T) {
		assert.Equal(t, "", NormalizeCurrency("call for pricing"))
	})

	t.Run("thousands grouping", func(t *testing.T) {
		assert.Equal(t, "$12,500", NormalizeCurrency("12500"))
		assert.Equal(t, "$1,250,000", NormalizeCurrency("1250000"))
	})
}

func TestNormalizePriceRange(t *testing.T) {
	t.Run("dash separated", func(t *testing.T) {
		assert.Equal(t, "$1,200 - $1,500", NormalizePriceRange("1200-1500"))
	})

	t.Run("to separated", func(t *testing.T) {
		assert.Equal(t, "$950 - $1,100", NormalizePriceRange("$950 to $1,100/mo"))
	})

	t.Run("single value", func(t *testing.T) {
		assert.Equal(t, "$1,800", NormalizePriceRange("1800"))
	})
}

func TestNormalizeSquareFeet(t *testing.T) {
	assert.Equal(t, "850", NormalizeSquareFeet("850 sq. ft."))
	assert.Equal(t, "1100", NormalizeSquareFeet("1,100sqft"))
}

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "the-marina-towers", NormalizeSlug("The Marina Towers"))
	assert.Equal(t, "500-main-st", NormalizeSlug("  500 Main St. "))
	assert.Equal(t, "harborview", NormalizeSlug("Harborview!"))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5551234567", NormalizePhone("(555) 123-4567"))
}

func TestSplitList(t *testing.T) {
	t.Run("semicolons", func(t *testing.T) {
		assert.Equal(t, []string{"pool", "gym", "parking"}, SplitList("pool; gym; parking"))
	})

	t.Run("mixed separators", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c"}, SplitList("a, b|c"))
	})

	t.Run("empty segments dropped", func(t *testing.T) {
		assert.Equal(t, []string{"one"}, SplitList(";one;;"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SplitList(""))
	})
}

func TestApplyChain(t *testing.T) {
	assert.Equal(t, "hello world", ApplyChain("  Hello   World ", "collapse_whitespace", "lowercase"))

	t.Run("unknown normalizer is a no-op", func(t *testing.T) {
		assert.Equal(t, "value", ApplyChain("value", "does_not_exist"))
	})
}
