// Package fingerprint produces deterministic content hashes for canonical
// building records so repeated ingests of an unchanged export can be skipped.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// volatilePaths are dot-notation paths excluded from record fingerprints.
// They change between exports without the content itself changing.
var volatilePaths = map[string]bool{
	"source":     true,
	"ingestedAt": true,
}

// Record hashes a canonical building record, ignoring volatile paths.
func Record(record map[string]any) string {
	return WithExclusions(record, volatilePaths)
}

// WithExclusions hashes a record, skipping the given dot-notation paths.
// A path excludes its subtree, so "overview" also drops "overview.tagline".
func WithExclusions(record map[string]any, exclude map[string]bool) string {
	var sb strings.Builder
	writeCanonical(&sb, record, exclude, "")
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// Changed reports whether two fingerprints differ.
func Changed(previous, current string) bool {
	return previous != current
}

func writeCanonical(sb *strings.Builder, value any, exclude map[string]bool, path string) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteByte('{')
		first := true
		for _, k := range keys {
			keyPath := k
			if path != "" {
				keyPath = path + "." + k
			}
			if excluded(keyPath, exclude) {
				continue
			}
			if !first {
				sb.WriteByte(',')
			}
			first = false
			keyJSON, _ := json.Marshal(k)
			sb.Write(keyJSON)
			sb.WriteByte(':')
			writeCanonical(sb, v[k], exclude, keyPath)
		}
		sb.WriteByte('}')
	case []any:
		sb.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeCanonical(sb, item, exclude, path)
		}
		sb.WriteByte(']')
	default:
		b, _ := json.Marshal(v)
		sb.Write(b)
	}
}

func excluded(path string, exclude map[string]bool) bool {
	if exclude == nil {
		return false
	}
	if exclude[path] {
		return true
	}
	for prefix := range exclude {
		if strings.HasPrefix(path, prefix+".") {
			return true
		}
	}
	return false
}
