package telemetry

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// InitMeterProvider registers a Prometheus-backed MeterProvider and starts
// Go runtime metrics. The returned handler serves /metrics.
func InitMeterProvider(serviceName, serviceVersion string) (http.Handler, func(context.Context) error, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	)

	mp := metric.NewMeterProvider(
		metric.WithReader(exporter),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	if err := runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
		return nil, nil, err
	}

	return promhttp.Handler(), mp.Shutdown, nil
}

// StorefrontMetrics records session activity and checkouts.
type StorefrontMetrics struct {
	events     otelmetric.Int64Counter
	checkouts  otelmetric.Int64Counter
	orderValue otelmetric.Float64Histogram
}

func NewStorefrontMetrics(meter otelmetric.Meter) (*StorefrontMetrics, error) {
	events, err := meter.Int64Counter("storefront.session.events",
		otelmetric.WithDescription("State changes applied to the storefront session"),
	)
	if err != nil {
		return nil, err
	}

	checkouts, err := meter.Int64Counter("storefront.checkouts",
		otelmetric.WithDescription("Checkout attempts by outcome"),
	)
	if err != nil {
		return nil, err
	}

	orderValue, err := meter.Float64Histogram("storefront.order.value",
		otelmetric.WithDescription("Order totals at checkout"),
		otelmetric.WithUnit("{ZAR}"),
	)
	if err != nil {
		return nil, err
	}

	return &StorefrontMetrics{
		events:     events,
		checkouts:  checkouts,
		orderValue: orderValue,
	}, nil
}

func (m *StorefrontMetrics) RecordEvent(ctx context.Context, kind, action string) {
	m.events.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("action", action),
	))
}

func (m *StorefrontMetrics) RecordCheckout(ctx context.Context, outcome string, total float64) {
	m.checkouts.Add(ctx, 1, otelmetric.WithAttributes(attribute.String("outcome", outcome)))
	if outcome == "placed" {
		m.orderValue.Record(ctx, total)
	}
}
