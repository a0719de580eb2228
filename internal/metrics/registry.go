package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome labels for processed documents
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

// Registry holds the document metrics for the application
type Registry struct {
	meter metric.Meter

	DocumentsProcessed metric.Int64Counter
	DocumentsGenerated metric.Int64Counter
	RecordDuration     metric.Float64Histogram
	RecordsInFlight    metric.Int64UpDownCounter
}

// NewRegistry creates a registry on the global meter provider
func NewRegistry(meterName string) (*Registry, error) {
	return NewRegistryWithProvider(otel.GetMeterProvider(), meterName)
}

// NewRegistryWithProvider creates a registry on an explicit meter provider
func NewRegistryWithProvider(mp metric.MeterProvider, meterName string) (*Registry, error) {
	r := &Registry{meter: mp.Meter(meterName)}

	if err := r.initDocumentMetrics(); err != nil {
		return nil, err
	}

	if err := r.initRecordMetrics(); err != nil {
		return nil, err
	}

	return r, nil
}

// initDocumentMetrics initializes per-document counters
func (r *Registry) initDocumentMetrics() error {
	var err error

	r.DocumentsProcessed, err = r.meter.Int64Counter(
		"brdocs.document.processed_total",
		metric.WithDescription("Total number of documents processed, by kind and outcome"),
	)
	if err != nil {
		return err
	}

	r.DocumentsGenerated, err = r.meter.Int64Counter(
		"brdocs.document.generated_total",
		metric.WithDescription("Total number of sample documents generated, by kind"),
	)
	if err != nil {
		return err
	}

	return nil
}

// initRecordMetrics initializes record-level metrics
func (r *Registry) initRecordMetrics() error {
	var err error

	r.RecordDuration, err = r.meter.Float64Histogram(
		"brdocs.record.processing_duration",
		metric.WithDescription("Duration of record processing in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return err
	}

	r.RecordsInFlight, err = r.meter.Int64UpDownCounter(
		"brdocs.record.in_flight",
		metric.WithDescription("Records currently being processed"),
	)
	if err != nil {
		return err
	}

	return nil
}

// RecordDocument counts one processed document
func (r *Registry) RecordDocument(ctx context.Context, kind string, valid bool) {
	outcome := OutcomeInvalid
	if valid {
		outcome = OutcomeValid
	}

	r.DocumentsProcessed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

// RecordGenerated counts generated sample documents
func (r *Registry) RecordGenerated(ctx context.Context, kind string, n int) {
	r.DocumentsGenerated.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

// StartRecord marks a record in flight and returns the function that ends it
func (r *Registry) StartRecord(ctx context.Context) func() {
	start := time.Now()
	r.RecordsInFlight.Add(ctx, 1)

	return func() {
		r.RecordsInFlight.Add(ctx, -1)
		r.RecordDuration.Record(ctx, float64(time.Since(start).Microseconds())/1000.0)
	}
}
