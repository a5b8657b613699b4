// Package extractor provides tools for reading and writing values in nested record data
package extractor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Extract reads a value from data using a dotted path expression.
// Supported syntax:
// - Simple path: "name", "location.city", "overview.tagline"
// - Array access: "floorPlans[0]", "overview.keyFeatures[2].title"
// A missing key or out-of-range index yields (nil, false), never an error;
// callers decide what absence means.
func Extract(data any, path string) (any, bool) {
	if path == "" {
		return data, data != nil
	}

	current := data
	for _, part := range parsePath(path) {
		var ok bool
		current, ok = extractPart(current, part)
		if !ok || current == nil {
			return nil, false
		}
	}

	return current, true
}

// ExtractString reads a value and converts it to its string form. Absent
// values come back as ("", false).
func ExtractString(data any, path string) (string, bool) {
	value, ok := Extract(data, path)
	if !ok {
		return "", false
	}
	return ToString(value), true
}

// Assign writes a value into nested maps at a dotted path, creating
// intermediate objects as needed. Existing non-map values along the path are
// replaced by objects.
func Assign(targetRaw map[string]any, path string, value any) map[string]any {
	if path == "" {
		return targetRaw
	}

	paths := strings.Split(path, ".")

	if len(paths) == 1 {
		targetRaw[paths[0]] = value
		return targetRaw
	}

	existingValue, ok := targetRaw[paths[0]].(map[string]any)
	if !ok {
		existingValue = make(map[string]any)
	}

	targetRaw[paths[0]] = Assign(existingValue, strings.Join(paths[1:], "."), value)

	return targetRaw
}

// pathPart represents a parsed path segment
type pathPart struct {
	key        string
	isArray    bool
	arrayIndex int
}

// parsePath parses a dotted path expression into parts
func parsePath(path string) []pathPart {
	var parts []pathPart

	for _, seg := range strings.Split(path, ".") {
		part := pathPart{key: seg}

		if idx := strings.Index(seg, "["); idx != -1 && strings.HasSuffix(seg, "]") {
			indexPart := seg[idx+1 : len(seg)-1]
			if i, err := strconv.Atoi(indexPart); err == nil {
				part.key = seg[:idx]
				part.isArray = true
				part.arrayIndex = i
			}
		}

		parts = append(parts, part)
	}

	return parts
}

// extractPart reads a value for a single path part
func extractPart(data any, part pathPart) (any, bool) {
	value := data

	if part.key != "" {
		m, ok := data.(map[string]any)
		if !ok {
			return nil, false
		}
		value, ok = m[part.key]
		if !ok {
			return nil, false
		}
	}

	if part.isArray {
		arr, ok := ToArray(value)
		if !ok {
			return nil, false
		}
		if part.arrayIndex < 0 || part.arrayIndex >= len(arr) {
			return nil, false
		}
		return arr[part.arrayIndex], true
	}

	return value, true
}

// ToArray converts a value to a []any, accepting the concrete slice types
// record data arrives with
func ToArray(v any) ([]any, bool) {
	switch arr := v.(type) {
	case []any:
		return arr, true
	case []string:
		result := make([]any, len(arr))
		for i, s := range arr {
			result[i] = s
		}
		return result, true
	case []map[string]any:
		result := make([]any, len(arr))
		for i, m := range arr {
			result[i] = m
		}
		return result, true
	default:
		return nil, false
	}
}

// ToString converts any value to a string
func ToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case nil:
		return ""
	default:
		// For complex types, JSON encode
		b, _ := json.Marshal(v)
		return string(b)
	}
}
