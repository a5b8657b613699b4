// Package template implements the building page template language: literal
// text, {{path}} interpolation, {{#if}} conditionals, and {{#each}} iteration
// over a record merged with its personalization overlay.
package template

import "fmt"

// NodeKind identifies one of the four template node variants.
type NodeKind int

const (
	// NodeText is literal output copied through verbatim.
	NodeText NodeKind = iota
	// NodeInterpolate substitutes the value at a dotted path.
	NodeInterpolate
	// NodeIf renders its body when the subject path is truthy, otherwise its
	// else branch.
	NodeIf
	// NodeEach renders its body once per element of the list at the subject
	// path, with "this" bound to the current element.
	NodeEach
)

func (k NodeKind) String() string {
	switch k {
	case NodeText:
		return "text"
	case NodeInterpolate:
		return "interpolate"
	case NodeIf:
		return "if"
	case NodeEach:
		return "each"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Node is one element of a parsed template. Body and Else are only populated
// for block nodes.
type Node struct {
	Kind NodeKind
	Text string // literal content for NodeText
	Path string // subject path for interpolate/if/each
	Body []Node
	Else []Node // else branch of NodeIf
}

// Template is a parsed, immutable template document. Rendering never mutates
// it, so a Template may be shared across goroutines.
type Template struct {
	ID    string
	nodes []Node
}

// RenderError reports a structurally malformed template. It is a build-time
// defect in the template source, never a per-record condition.
type RenderError struct {
	NodeIndex int
	Reason    string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("malformed template at tag %d: %s", e.NodeIndex, e.Reason)
}
