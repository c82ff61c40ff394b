// Package telemetry provides OpenTelemetry metrics for the query gateway.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName identifies the gateway meter.
const MeterName = "github.com/felixgeelhaar/sqlgate"

// Metrics holds the gateway's metric instruments. Instrument creation
// failures degrade to nil instruments and recording becomes a no-op,
// so metrics can never take down a query path.
type Metrics struct {
	statements     metric.Int64Counter
	trappedErrors  metric.Int64Counter
	statementTime  metric.Float64Histogram
	schemaRequests metric.Int64Counter
}

// NewMetrics creates the gateway metrics on the globally registered
// meter provider.
func NewMetrics() *Metrics {
	meter := otel.Meter(MeterName)

	m := &Metrics{}
	m.statements, _ = meter.Int64Counter(
		"sqlgate.statements",
		metric.WithDescription("SQL statements processed by the gateway"),
	)
	m.trappedErrors, _ = meter.Int64Counter(
		"sqlgate.statement_errors",
		metric.WithDescription("Store-engine failures trapped into error records"),
	)
	m.statementTime, _ = meter.Float64Histogram(
		"sqlgate.statement_duration_ms",
		metric.WithDescription("Statement execution duration in milliseconds"),
	)
	m.schemaRequests, _ = meter.Int64Counter(
		"sqlgate.schema_requests",
		metric.WithDescription("Schema introspection requests"),
	)
	return m
}

// RecordStatement records one gateway execution.
func (m *Metrics) RecordStatement(ctx context.Context, kind string, trapped bool, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("error", trapped),
	)
	if m.statements != nil {
		m.statements.Add(ctx, 1, attrs)
	}
	if trapped && m.trappedErrors != nil {
		m.trappedErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
	if m.statementTime != nil {
		m.statementTime.Record(ctx, float64(d.Milliseconds()), attrs)
	}
}

// RecordSchemaRequest records one schema introspection request.
func (m *Metrics) RecordSchemaRequest(ctx context.Context, ok bool) {
	if m == nil || m.schemaRequests == nil {
		return
	}
	m.schemaRequests.Add(ctx, 1, metric.WithAttributes(attribute.Bool("ok", ok)))
}
