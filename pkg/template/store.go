package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store holds the parsed templates for a deployment. Templates are parsed
// once at load time; a parse failure aborts the load so a malformed template
// can never reach rendering.
type Store struct {
	templates map[string]*Template
}

// NewStore builds a store from pre-parsed templates, keyed by ID.
func NewStore(templates ...*Template) *Store {
	store := &Store{templates: make(map[string]*Template, len(templates))}
	for _, tmpl := range templates {
		store.templates[tmpl.ID] = tmpl
	}
	return store
}

// LoadStore parses every *.tmpl file under dir. The template ID is the file
// name without its extension.
func LoadStore(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory %s: %w", dir, err)
	}

	store := &Store{templates: make(map[string]*Template)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}

		doc, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", entry.Name(), err)
		}

		id := strings.TrimSuffix(entry.Name(), ".tmpl")
		tmpl, err := Parse(id, string(doc))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", id, err)
		}
		store.templates[id] = tmpl
	}

	return store, nil
}

// Get returns the template with the given ID, or nil when unknown.
func (s *Store) Get(id string) *Template {
	return s.templates[id]
}

// IDs returns the loaded template IDs in sorted order.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.templates))
	for id := range s.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
