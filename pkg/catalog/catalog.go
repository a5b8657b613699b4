// Package catalog holds the validated building records a deployment serves
// from. It is the working set behind the HTTP surface and the comparison
// endpoint, safe for concurrent readers and writers.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Ramsey-B/fern/pkg/models"
)

type Catalog struct {
	mu      sync.RWMutex
	records map[string]models.BuildingRecord
}

func New() *Catalog {
	return &Catalog{records: make(map[string]models.BuildingRecord)}
}

// Put stores a record under its ID, replacing any previous version.
func (c *Catalog) Put(record models.BuildingRecord) error {
	id := record.ID()
	if id == "" {
		return fmt.Errorf("cannot catalog a building without an id")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[id] = record
	return nil
}

// Get returns the record with the given ID.
func (c *Catalog) Get(id string) (models.BuildingRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	record, ok := c.records[id]
	return record, ok
}

// List returns every record ordered by ID.
func (c *Catalog) List() []models.BuildingRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.records))
	for id := range c.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]models.BuildingRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, c.records[id])
	}
	return records
}

// Delete removes a record, reporting whether it existed.
func (c *Catalog) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.records[id]
	delete(c.records, id)
	return ok
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}
