package template

import (
	"strings"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// token is one lexed piece of a template document: either literal text or the
// trimmed contents of a {{...}} tag.
type token struct {
	isTag bool
	value string
	index int // tag ordinal, used in RenderError positions
}

// Parse parses a template document into its node tree. It fails only for
// structural defects: an unterminated tag or block, a mismatched closer, an
// empty tag, or an {{else}} outside a conditional.
func Parse(id, doc string) (*Template, error) {
	tokens, err := lex(doc)
	if err != nil {
		return nil, err
	}

	nodes, _, err := parseNodes(tokens, "")
	if err != nil {
		return nil, err
	}

	return &Template{ID: id, nodes: nodes}, nil
}

// lex splits a document into text and tag tokens.
func lex(doc string) ([]token, error) {
	var tokens []token
	tagIndex := 0

	for len(doc) > 0 {
		open := strings.Index(doc, openDelim)
		if open == -1 {
			tokens = append(tokens, token{value: doc})
			break
		}

		if open > 0 {
			tokens = append(tokens, token{value: doc[:open]})
		}

		rest := doc[open+len(openDelim):]
		closing := strings.Index(rest, closeDelim)
		if closing == -1 {
			return nil, &RenderError{NodeIndex: tagIndex, Reason: "unterminated tag"}
		}

		tokens = append(tokens, token{
			isTag: true,
			value: strings.TrimSpace(rest[:closing]),
			index: tagIndex,
		})
		tagIndex++

		doc = rest[closing+len(closeDelim):]
	}

	return tokens, nil
}

// parseNodes consumes tokens until it hits a closer for the enclosing block
// (identified by openKind: "if", "each", or "" at the top level). It returns
// the unconsumed tokens beginning with that closer.
func parseNodes(tokens []token, openKind string) ([]Node, []token, error) {
	nodes := []Node{}

	for len(tokens) > 0 {
		tok := tokens[0]

		if !tok.isTag {
			nodes = append(nodes, Node{Kind: NodeText, Text: tok.value})
			tokens = tokens[1:]
			continue
		}

		switch {
		case strings.HasPrefix(tok.value, "#if "):
			node, rest, err := parseIf(tok, tokens[1:])
			if err != nil {
				return nil, nil, err
			}
			nodes = append(nodes, node)
			tokens = rest

		case strings.HasPrefix(tok.value, "#each "):
			path := strings.TrimSpace(strings.TrimPrefix(tok.value, "#each "))
			body, rest, err := parseNodes(tokens[1:], "each")
			if err != nil {
				return nil, nil, err
			}
			if len(rest) == 0 {
				return nil, nil, &RenderError{NodeIndex: tok.index, Reason: "unterminated {{#each}}"}
			}
			if rest[0].value != "/each" {
				return nil, nil, &RenderError{NodeIndex: rest[0].index, Reason: "expected {{/each}}, got {{" + rest[0].value + "}}"}
			}
			nodes = append(nodes, Node{Kind: NodeEach, Path: path, Body: body})
			tokens = rest[1:]

		case tok.value == "/if", tok.value == "/each", tok.value == "else":
			// Owned by the enclosing block; hand back for it to consume.
			if openKind == "" {
				return nil, nil, &RenderError{NodeIndex: tok.index, Reason: "unexpected {{" + tok.value + "}}"}
			}
			return nodes, tokens, nil

		case strings.HasPrefix(tok.value, "#"):
			return nil, nil, &RenderError{NodeIndex: tok.index, Reason: "unknown block {{" + tok.value + "}}"}

		case tok.value == "":
			return nil, nil, &RenderError{NodeIndex: tok.index, Reason: "empty tag"}

		default:
			nodes = append(nodes, Node{Kind: NodeInterpolate, Path: tok.value})
			tokens = tokens[1:]
		}
	}

	// Out of tokens. Block callers detect the missing closer via empty rest.
	return nodes, tokens, nil
}

// parseIf parses the body and optional else branch of a conditional. The
// opening token has already been consumed.
func parseIf(open token, tokens []token) (Node, []token, error) {
	path := strings.TrimSpace(strings.TrimPrefix(open.value, "#if "))

	body, rest, err := parseNodes(tokens, "if")
	if err != nil {
		return Node{}, nil, err
	}
	if len(rest) == 0 {
		return Node{}, nil, &RenderError{NodeIndex: open.index, Reason: "unterminated {{#if}}"}
	}

	var elseBranch []Node
	if rest[0].value == "else" {
		elseBranch, rest, err = parseNodes(rest[1:], "if")
		if err != nil {
			return Node{}, nil, err
		}
		if len(rest) == 0 {
			return Node{}, nil, &RenderError{NodeIndex: open.index, Reason: "unterminated {{#if}}"}
		}
		if rest[0].value == "else" {
			return Node{}, nil, &RenderError{NodeIndex: rest[0].index, Reason: "duplicate {{else}}"}
		}
	}

	if rest[0].value != "/if" {
		return Node{}, nil, &RenderError{NodeIndex: rest[0].index, Reason: "expected {{/if}}, got {{" + rest[0].value + "}}"}
	}

	return Node{Kind: NodeIf, Path: path, Body: body, Else: elseBranch}, rest[1:], nil
}

