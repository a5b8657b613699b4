// Package normalizers provides field normalization functions for record migration
package normalizers

import (
	"regexp"
	"strings"
	"unicode"
)

// Normalizer is a function that normalizes a string value
type Normalizer func(string) string

// registry holds all registered normalizers
var registry = make(map[string]Normalizer)

func init() {
	// Register built-in normalizers
	Register("lowercase", Lowercase)
	Register("trim", Trim)
	Register("collapse_whitespace", CollapseWhitespace)
	Register("nphone", NormalizePhone)
	Register("nemail", NormalizeEmail)
	Register("ncurrency", NormalizeCurrency)
	Register("nprice_range", NormalizePriceRange)
	Register("nsqft", NormalizeSquareFeet)
	Register("nslug", NormalizeSlug)
	Register("nzip", NormalizeZipCode)
	Register("digits_only", DigitsOnly)
}

// Register adds a normalizer to the registry
func Register(name string, fn Normalizer) {
	registry[name] = fn
}

// Get retrieves a normalizer by name
func Get(name string) (Normalizer, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Apply applies a named normalizer to a value
func Apply(value, normalizer string) string {
	fn, ok := registry[normalizer]
	if !ok {
		return value
	}
	return fn(value)
}

// ApplyChain applies multiple normalizers in sequence
func ApplyChain(value string, normalizers ...string) string {
	result := value
	for _, name := range normalizers {
		result = Apply(result, name)
	}
	return result
}

// Built-in normalizers

// Lowercase converts string to lowercase
func Lowercase(s string) string {
	return strings.ToLower(s)
}

// Trim removes leading and trailing whitespace
func Trim(s string) string {
	return strings.TrimSpace(s)
}

var spaceRe = regexp.MustCompile(`\s+`)

// CollapseWhitespace collapses runs of whitespace into a single space
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// NormalizePhone removes all non-digit characters from a phone number
func NormalizePhone(s string) string {
	var result strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// NormalizeEmail normalizes an email address (lowercase, trim)
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var currencySuffixRe = regexp.MustCompile(`(?i)\s*(/\s*(mo|month|monthly)|per\s+month|pcm)\.?$`)

// NormalizeCurrency normalizes a monthly price string to "$N,NNN" form.
// Accepts "1200", "$1200/mo", "1,200 per month" and similar legacy formats.
func NormalizeCurrency(s string) string {
	s = currencySuffixRe.ReplaceAllString(strings.TrimSpace(s), "")
	digits := DigitsOnly(s)
	if digits == "" {
		return ""
	}
	return "$" + groupThousands(digits)
}

var rangeSepRe = regexp.MustCompile(`\s*(–|—|to|-)\s*`)

// NormalizePriceRange normalizes a price range string to "$N,NNN - $N,NNN".
// Single values are normalized as a lone currency amount.
func NormalizePriceRange(s string) string {
	parts := rangeSepRe.Split(strings.TrimSpace(s), 2)
	if len(parts) == 2 && DigitsOnly(parts[0]) != "" && DigitsOnly(parts[1]) != "" {
		return NormalizeCurrency(parts[0]) + " - " + NormalizeCurrency(parts[1])
	}
	return NormalizeCurrency(s)
}

// NormalizeSquareFeet reduces an area string ("850 sq. ft.", "850sqft") to its digits
func NormalizeSquareFeet(s string) string {
	return DigitsOnly(s)
}

// NormalizeSlug converts a string into a stable lowercase slug
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var result strings.Builder
	prevDash := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			result.WriteRune(r)
			prevDash = false
		case !prevDash && result.Len() > 0:
			result.WriteRune('-')
			prevDash = true
		}
	}
	return strings.TrimRight(result.String(), "-")
}

// NormalizeZipCode normalizes a US zip code
func NormalizeZipCode(s string) string {
	digits := DigitsOnly(s)
	if len(digits) == 5 || len(digits) == 9 {
		return digits
	}
	return ""
}

// DigitsOnly keeps only digit characters
func DigitsOnly(s string) string {
	var result strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

var listSepRe = regexp.MustCompile(`[;,\n|]`)

// SplitList splits a delimited legacy string ("pool; gym, parking") into a
// trimmed list, dropping empty segments.
func SplitList(s string) []string {
	parts := listSepRe.Split(s, -1)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// groupThousands inserts comma separators into a digit string
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var result strings.Builder
	rem := n % 3
	if rem > 0 {
		result.WriteString(digits[:rem])
	}
	for i := rem; i < n; i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(digits[i : i+3])
	}
	return result.String()
}
