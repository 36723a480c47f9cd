package metrics

import (
	"context"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector
	registry      *promclient.Registry

	// OTel meters and instruments
	meter              metric.Meter
	attemptsCounter    metric.Int64ObservableCounter
	outcomesCounter    metric.Int64ObservableCounter
	verificationsCount metric.Int64ObservableCounter
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus
// format. Each exporter owns its registry, so several can coexist in one process.
func NewOTelExporter(serviceName string, collector Collector) (*OTelExporter, error) {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		serviceName,
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		registry:      registry,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.attemptsCounter, err = oe.meter.Int64ObservableCounter(
		"webhook_delivery_attempts",
		metric.WithDescription("Number of delivery attempts by attempt status"),
		metric.WithUnit("{attempts}"),
		metric.WithInt64Callback(oe.observe(oe.collector.GetAttemptCounts, "status")),
	)
	if err != nil {
		return fmt.Errorf("creating attempts counter: %w", err)
	}

	oe.outcomesCounter, err = oe.meter.Int64ObservableCounter(
		"webhook_delivery_outcomes",
		metric.WithDescription("Number of events by final delivery status"),
		metric.WithUnit("{events}"),
		metric.WithInt64Callback(oe.observe(oe.collector.GetOutcomeCounts, "status")),
	)
	if err != nil {
		return fmt.Errorf("creating outcomes counter: %w", err)
	}

	oe.verificationsCount, err = oe.meter.Int64ObservableCounter(
		"webhook_verifications",
		metric.WithDescription("Number of received webhooks by verification result"),
		metric.WithUnit("{requests}"),
		metric.WithInt64Callback(oe.observe(oe.collector.GetVerificationCounts, "reason")),
	)
	if err != nil {
		return fmt.Errorf("creating verifications counter: %w", err)
	}

	return nil
}

// observe builds a callback reporting one value per key of get's result
func (oe *OTelExporter) observe(get func(context.Context) (map[string]int64, error), label string) metric.Int64Callback {
	return func(ctx context.Context, observer metric.Int64Observer) error {
		counts, err := get(ctx)
		if err != nil {
			return err
		}

		for key, count := range counts {
			observer.Observe(count, metric.WithAttributes(
				attribute.String(label, key),
			))
		}

		return nil
	}
}

// Handler serves Prometheus-formatted metrics from this exporter's registry
func (oe *OTelExporter) Handler() http.Handler {
	return promhttp.HandlerFor(oe.registry, promhttp.HandlerOpts{})
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
