package kafka

import (
	"encoding/json"
	"fmt"
	"time"
)

// IncomingMessage wraps a raw Kafka message with parsed headers
type IncomingMessage struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Partition int
	Offset    int64
	Timestamp time.Time
	Topic     string

	// Trace context (extracted from Kafka headers)
	TraceParent string

	// Parsed content
	Listing *ListingMessage
}

// ListingMessage is the envelope legacy CMS exports arrive in. Record holds
// the raw legacy field set exactly as the export produced it.
type ListingMessage struct {
	Source ListingSource  `json:"source"`
	Record map[string]any `json:"record"`
}

// ListingSource identifies where an export came from
type ListingSource struct {
	System     string `json:"system"`
	BatchID    string `json:"batch_id"`
	ExportedAt string `json:"exported_at,omitempty"`
}

// ParseListing parses the message value as a listing export envelope
func (m *IncomingMessage) ParseListing() error {
	var msg ListingMessage
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		return err
	}
	if msg.Record == nil {
		return fmt.Errorf("listing message has no record payload")
	}
	m.Listing = &msg
	return nil
}

// GetSystem returns the source CMS name, falling back to the header
func (m *IncomingMessage) GetSystem() string {
	if m.Listing != nil && m.Listing.Source.System != "" {
		return m.Listing.Source.System
	}
	return m.Headers["source_system"]
}

// GetBatchID returns the export batch this record belongs to
func (m *IncomingMessage) GetBatchID() string {
	if m.Listing != nil {
		return m.Listing.Source.BatchID
	}
	return ""
}
