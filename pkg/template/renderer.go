package template

import (
	"strings"

	"github.com/Ramsey-B/fern/pkg/extractor"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Render expands the template against a record and its personalization
// overlay. Rendering never fails: an unresolved interpolation renders as the
// empty string, an unresolved {{#if}} subject is falsy, and an unresolved
// {{#each}} subject is an empty sequence. Identical inputs always yield
// byte-identical output.
func (t *Template) Render(record models.BuildingRecord, variants models.VariantSet) string {
	view := mergedView(record, variants)

	var sb strings.Builder
	renderNodes(&sb, t.nodes, view, nil)
	return sb.String()
}

// renderNodes walks a node list. scope is the innermost {{#each}} element, or
// nil outside iteration.
func renderNodes(sb *strings.Builder, nodes []Node, view map[string]any, scope any) {
	for _, node := range nodes {
		switch node.Kind {
		case NodeText:
			sb.WriteString(node.Text)

		case NodeInterpolate:
			value, ok := resolve(node.Path, view, scope)
			if ok {
				sb.WriteString(extractor.ToString(value))
			}

		case NodeIf:
			value, _ := resolve(node.Path, view, scope)
			if isTruthy(value) {
				renderNodes(sb, node.Body, view, scope)
			} else {
				renderNodes(sb, node.Else, view, scope)
			}

		case NodeEach:
			value, _ := resolve(node.Path, view, scope)
			items, _ := extractor.ToArray(value)
			for _, item := range items {
				renderNodes(sb, node.Body, view, item)
			}
		}
	}
}

// resolve looks a dotted path up against the current scope. Inside an
// {{#each}} body, "this" names the current element and bare paths resolve
// relative to it first, falling back to the root view.
func resolve(path string, view map[string]any, scope any) (any, bool) {
	if scope != nil {
		if path == "this" {
			return scope, true
		}
		if rest, ok := strings.CutPrefix(path, "this."); ok {
			return extractor.Extract(scope, rest)
		}
		if value, ok := extractor.Extract(scope, path); ok {
			return value, true
		}
	}

	return extractor.Extract(view, path)
}

// isTruthy implements template conditional semantics: absent values, empty
// strings, empty lists, numeric zero, and false are falsy; everything else is
// truthy.
func isTruthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		if arr, ok := extractor.ToArray(value); ok {
			return len(arr) > 0
		}
		return true
	}
}

// mergedView overlays the personalization variant onto the record at the two
// personalizable slots (overview.tagline and overview.keyFeatures) without
// mutating the record.
func mergedView(record models.BuildingRecord, variants models.VariantSet) map[string]any {
	if variants.IsZero() {
		return record
	}

	view := make(map[string]any, len(record))
	for k, v := range record {
		view[k] = v
	}

	overview := make(map[string]any)
	if existing, ok := record[models.FieldOverview].(map[string]any); ok {
		for k, v := range existing {
			overview[k] = v
		}
	}

	if variants.Tagline != "" {
		overview["tagline"] = variants.Tagline
	}
	if len(variants.Highlights) > 0 {
		features := make([]any, len(variants.Highlights))
		for i, highlight := range variants.Highlights {
			features[i] = map[string]any{
				"title":       highlight.Title,
				"description": highlight.Description,
				"icon":        highlight.Icon,
			}
		}
		overview["keyFeatures"] = features
	}

	view[models.FieldOverview] = overview
	return view
}
