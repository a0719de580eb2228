package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestRegistry_Counters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	reg, err := NewRegistryWithProvider(mp, "brdocs-test")
	require.NoError(t, err)

	ctx := context.Background()
	reg.RecordDocument(ctx, "cpf", true)
	reg.RecordDocument(ctx, "cpf", true)
	reg.RecordDocument(ctx, "phone", false)
	reg.RecordGenerated(ctx, "cnpj", 5)

	done := reg.StartRecord(ctx)
	done()

	got := collect(t, reader)

	processed, ok := got["brdocs.document.processed_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)

	counts := map[string]int64{}
	for _, dp := range processed.DataPoints {
		kind, _ := dp.Attributes.Value(attribute.Key("kind"))
		outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
		counts[kind.AsString()+"/"+outcome.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"cpf/valid": 2, "phone/invalid": 1}, counts)

	generated, ok := got["brdocs.document.generated_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, generated.DataPoints, 1)
	assert.Equal(t, int64(5), generated.DataPoints[0].Value)

	duration, ok := got["brdocs.record.processing_duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, duration.DataPoints, 1)
	assert.Equal(t, uint64(1), duration.DataPoints[0].Count)

	inFlight, ok := got["brdocs.record.in_flight"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, inFlight.DataPoints, 1)
	assert.Equal(t, int64(0), inFlight.DataPoints[0].Value)
}

func TestNewRegistry_GlobalProvider(t *testing.T) {
	reg, err := NewRegistry("brdocs-test")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		reg.RecordDocument(context.Background(), "cnpj", false)
		reg.StartRecord(context.Background())()
	})
}
