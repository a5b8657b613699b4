// Package events handles event emission for record lifecycle changes
package events

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// Emitter handles event emission for Fern
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitRecordIngested emits an event for a record that passed validation and
// entered the catalog
func (e *Emitter) EmitRecordIngested(ctx context.Context, record models.BuildingRecord, source string) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitRecordIngested")
	defer span.End()

	data, _ := json.Marshal(record)

	event := &kafka.RecordEvent{
		EventType:  "record.ingested",
		BuildingID: record.ID(),
		Source:     source,
		Data:       data,
	}

	if err := e.producer.PublishRecordEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit record.ingested event")
		return err
	}

	return nil
}

// EmitRecordRejected emits an event for a record that failed migration or
// validation. buildingID may be empty when the legacy payload had no usable
// identity.
func (e *Emitter) EmitRecordRejected(ctx context.Context, buildingID, source string, violations []string) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitRecordRejected")
	defer span.End()

	event := &kafka.RecordEvent{
		EventType:  "record.rejected",
		BuildingID: buildingID,
		Source:     source,
		Violations: violations,
	}

	if err := e.producer.PublishRecordEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit record.rejected event")
		return err
	}

	return nil
}

// EmitDocumentRendered emits an event for a freshly rendered marketing
// document
func (e *Emitter) EmitDocumentRendered(ctx context.Context, buildingID, templateID, document string) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitDocumentRendered")
	defer span.End()

	event := &kafka.DocumentEvent{
		EventType:  "document.rendered",
		BuildingID: buildingID,
		TemplateID: templateID,
		Document:   document,
	}

	if err := e.producer.PublishDocumentEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit document.rendered event")
		return err
	}

	return nil
}
