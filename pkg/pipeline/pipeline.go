// Package pipeline drives legacy records through migration, validation, and
// cataloging, and serves personalized renders from the cataloged records.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/cache"
	"github.com/Ramsey-B/fern/pkg/catalog"
	"github.com/Ramsey-B/fern/pkg/fingerprint"
	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/migration"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/personalization"
	"github.com/Ramsey-B/fern/pkg/schema"
	"github.com/Ramsey-B/fern/pkg/template"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// EventEmitter publishes record lifecycle and document events. A nil emitter
// disables emission.
type EventEmitter interface {
	EmitRecordIngested(ctx context.Context, record models.BuildingRecord, source string) error
	EmitRecordRejected(ctx context.Context, buildingID, source string, violations []string) error
	EmitDocumentRendered(ctx context.Context, buildingID, templateID, document string) error
}

// RejectionError reports why a legacy record could not enter the catalog.
// Exactly one of Missing and Violations is populated, depending on which
// stage rejected it.
type RejectionError struct {
	BuildingID string
	Missing    []string
	Violations []schema.Violation
}

func (e *RejectionError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("record rejected by migration: missing required fields %v", e.Missing)
	}
	return fmt.Sprintf("record %s rejected by validation: %d violations", e.BuildingID, len(e.Violations))
}

// Reasons flattens the rejection into event-friendly strings.
func (e *RejectionError) Reasons() []string {
	if len(e.Missing) > 0 {
		reasons := make([]string, len(e.Missing))
		for i, field := range e.Missing {
			reasons[i] = "missing:" + field
		}
		return reasons
	}

	reasons := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		reasons[i] = v.Path + ":" + v.Rule
	}
	return reasons
}

// Pipeline wires the processing stages together
type Pipeline struct {
	logger    ectologger.Logger
	adapter   *migration.Adapter
	validator *schema.Validator
	selector  *personalization.Selector
	templates *template.Store
	catalog   *catalog.Catalog
	emitter   EventEmitter
	renders   *cache.RenderCache
	workers   int
}

// Options holds the optional pieces of a pipeline
type Options struct {
	Emitter     EventEmitter
	RenderCache *cache.RenderCache
	Workers     int
}

// New creates a pipeline over the given selector, template store, and
// catalog. The migration adapter and building validator are built in.
func New(logger ectologger.Logger, selector *personalization.Selector, templates *template.Store, cat *catalog.Catalog, opts Options) *Pipeline {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	return &Pipeline{
		logger:    logger,
		adapter:   migration.NewAdapter(logger),
		validator: schema.NewBuildingValidator(),
		selector:  selector,
		templates: templates,
		catalog:   cat,
		emitter:   opts.Emitter,
		renders:   opts.RenderCache,
		workers:   workers,
	}
}

// Ingest runs one legacy record through migration and validation and, when it
// passes, catalogs it. A *RejectionError reports a bad record; other errors
// are infrastructure failures.
func (p *Pipeline) Ingest(ctx context.Context, legacy map[string]any, source string) (models.BuildingRecord, error) {
	ctx, span := tracing.StartSpan(ctx, "pipeline.Ingest")
	defer span.End()

	start := time.Now()
	log := p.logger.WithContext(ctx).WithFields(map[string]any{"source": source})

	record, migErr := p.adapter.Adapt(legacy)
	if migErr != nil {
		rejection := &RejectionError{Missing: migErr.MissingRequired}
		p.reject(ctx, rejection, source, log)
		return nil, rejection
	}
	metrics.RecordStage("migration", time.Since(start).Seconds())

	validateStart := time.Now()
	result := p.validator.Validate(record)
	metrics.RecordStage("validation", time.Since(validateStart).Seconds())
	if !result.Valid {
		rejection := &RejectionError{BuildingID: record.ID(), Violations: result.Violations}
		p.reject(ctx, rejection, source, log)
		return nil, rejection
	}

	if existing, ok := p.catalog.Get(record.ID()); ok {
		if !fingerprint.Changed(fingerprint.Record(existing), fingerprint.Record(record)) {
			metrics.RecordIngestion(source, "unchanged")
			log.WithFields(map[string]any{"building_id": record.ID()}).Debug("Record unchanged, skipping re-ingest")
			return existing, nil
		}
	}

	if err := p.catalog.Put(record); err != nil {
		log.WithError(err).Error("Failed to catalog record")
		return nil, err
	}
	metrics.CatalogSize.Set(float64(p.catalog.Len()))
	metrics.RecordIngestion(source, "accepted")

	if p.renders != nil {
		if err := p.renders.Invalidate(ctx, record.ID()); err != nil {
			log.WithError(err).Warn("Failed to invalidate cached renders")
		}
	}

	if p.emitter != nil {
		if err := p.emitter.EmitRecordIngested(ctx, record, source); err != nil {
			log.WithError(err).Warn("Failed to emit record.ingested event")
		}
	}

	log.WithFields(map[string]any{
		"building_id": record.ID(),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Record ingested")

	return record, nil
}

func (p *Pipeline) reject(ctx context.Context, rejection *RejectionError, source string, log ectologger.Logger) {
	metrics.RecordIngestion(source, "rejected")

	rules := ectolinq.Map(rejection.Violations, func(v schema.Violation) string {
		return v.Rule
	})
	metrics.RecordViolations(rules)

	if p.emitter != nil {
		if err := p.emitter.EmitRecordRejected(ctx, rejection.BuildingID, source, rejection.Reasons()); err != nil {
			log.WithError(err).Warn("Failed to emit record.rejected event")
		}
	}

	log.WithFields(map[string]any{
		"building_id": rejection.BuildingID,
		"reasons":     rejection.Reasons(),
	}).Warn("Record rejected")
}

// Render produces the personalized document for a cataloged building.
func (p *Pipeline) Render(ctx context.Context, buildingID, templateID string, viewer models.ViewerContext) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "pipeline.Render")
	defer span.End()

	record, ok := p.catalog.Get(buildingID)
	if !ok {
		return "", fmt.Errorf("unknown building %q", buildingID)
	}

	tmpl := p.templates.Get(templateID)
	if tmpl == nil {
		return "", fmt.Errorf("unknown template %q", templateID)
	}

	if p.renders != nil {
		if doc, ok := p.renders.Get(ctx, buildingID, templateID, viewer); ok {
			return doc, nil
		}
	}

	start := time.Now()
	variants := p.selector.Select(record, viewer)
	document := tmpl.Render(record, variants)
	metrics.RecordStage("render", time.Since(start).Seconds())
	metrics.RecordRender(templateID, "success")

	if p.renders != nil {
		p.renders.Set(ctx, buildingID, templateID, viewer, document)
	}

	if p.emitter != nil {
		if err := p.emitter.EmitDocumentRendered(ctx, buildingID, templateID, document); err != nil {
			p.logger.WithContext(ctx).WithError(err).Warn("Failed to emit document.rendered event")
		}
	}

	return document, nil
}

// Preview renders the personalization overlay for a building without going
// through a template.
func (p *Pipeline) Preview(ctx context.Context, buildingID string, viewer models.ViewerContext) (models.VariantSet, error) {
	record, ok := p.catalog.Get(buildingID)
	if !ok {
		return models.VariantSet{}, fmt.Errorf("unknown building %q", buildingID)
	}
	return p.selector.Select(record, viewer), nil
}

// HandleMessage is the Kafka consumer entry point. Rejections are terminal
// for the message, so they return nil and the offset commits; only
// infrastructure failures propagate for redelivery.
func (p *Pipeline) HandleMessage(ctx context.Context, msg *kafka.IncomingMessage) error {
	ctx, span := tracing.StartSpan(ctx, "pipeline.HandleMessage")
	defer span.End()

	if msg.Listing == nil {
		if err := msg.ParseListing(); err != nil {
			p.logger.WithContext(ctx).WithError(err).Error("Failed to parse listing message")
			return nil
		}
	}

	source := msg.GetSystem()
	if source == "" {
		source = "unknown"
	}

	_, err := p.Ingest(ctx, msg.Listing.Record, source)
	if err != nil {
		var rejection *RejectionError
		if errors.As(err, &rejection) {
			return nil
		}
		return err
	}
	return nil
}
