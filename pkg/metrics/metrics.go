// Package metrics provides Prometheus metrics for the Fern service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsIngestedTotal tracks legacy records ingested by outcome
	RecordsIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "pipeline",
			Name:      "records_ingested_total",
			Help:      "Total number of legacy records ingested by outcome",
		},
		[]string{"source", "outcome"},
	)

	// PipelineStageDuration tracks per-stage processing duration in seconds
	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fern",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages in seconds",
			Buckets:   []float64{0.0001, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"stage"},
	)

	// ValidationViolationsTotal tracks schema violations by rule
	ValidationViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "schema",
			Name:      "violations_total",
			Help:      "Total number of schema violations by rule",
		},
		[]string{"rule"},
	)

	// DocumentsRenderedTotal tracks rendered documents by template
	DocumentsRenderedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "template",
			Name:      "documents_rendered_total",
			Help:      "Total number of documents rendered by template",
		},
		[]string{"template", "status"},
	)

	// RenderCacheHits tracks render cache lookups
	RenderCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "cache",
			Name:      "render_lookups_total",
			Help:      "Total number of render cache lookups by result",
		},
		[]string{"result"},
	)

	// CatalogSize tracks the number of buildings currently in the catalog
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fern",
			Subsystem: "catalog",
			Name:      "buildings",
			Help:      "Number of buildings currently in the catalog",
		},
	)

	// KafkaMessagesPublished tracks Kafka messages published
	KafkaMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "kafka",
			Name:      "messages_published_total",
			Help:      "Total number of messages published to Kafka",
		},
		[]string{"topic", "status"},
	)
)

// RecordIngestion records an ingestion attempt and its outcome
func RecordIngestion(source, outcome string) {
	RecordsIngestedTotal.WithLabelValues(source, outcome).Inc()
}

// RecordStage records the duration of one pipeline stage
func RecordStage(stage string, durationSeconds float64) {
	PipelineStageDuration.WithLabelValues(stage).Observe(durationSeconds)
}

// RecordViolations records schema violations by rule
func RecordViolations(rules []string) {
	for _, rule := range rules {
		ValidationViolationsTotal.WithLabelValues(rule).Inc()
	}
}

// RecordRender records a rendered document
func RecordRender(template, status string) {
	DocumentsRenderedTotal.WithLabelValues(template, status).Inc()
}

// RecordCacheLookup records a render cache hit or miss
func RecordCacheLookup(result string) {
	RenderCacheHits.WithLabelValues(result).Inc()
}
