package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/tinyioc/config"
	"github.com/kbukum/tinyioc/logger"
	"github.com/kbukum/tinyioc/version"
)

// Resolution outcomes recorded on di.resolve.total.
const (
	OutcomeCached   = "cached"
	OutcomeProduced = "produced"
	OutcomeAbsent   = "absent"
	OutcomeFailed   = "failed"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.Short(),
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// MeterConfigFromSettings derives a meter configuration from loaded settings.
func MeterConfigFromSettings(s *config.Settings) *MeterConfig {
	return &MeterConfig{
		ServiceName:    s.Base.Name,
		ServiceVersion: serviceVersion(s),
		Environment:    s.Base.Environment,
		Endpoint:       s.Telemetry.Endpoint,
		Insecure:       s.Telemetry.Insecure,
		Interval:       s.Telemetry.MetricInterval,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, cfg *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the registry's metric instruments.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	resolveTotal    metric.Int64Counter
	produceDuration metric.Float64Histogram
	registrations   metric.Int64UpDownCounter
	modules         metric.Int64UpDownCounter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	resolveTotal, err := meter.Int64Counter("di.resolve.total",
		metric.WithDescription("Total number of service resolutions by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.resolve.total counter: %w", err)
	}

	produceDuration, err := meter.Float64Histogram("di.produce.duration",
		metric.WithDescription("Duration of producer calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.produce.duration histogram: %w", err)
	}

	registrations, err := meter.Int64UpDownCounter("di.registrations",
		metric.WithDescription("Number of registered services"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.registrations gauge: %w", err)
	}

	modules, err := meter.Int64UpDownCounter("di.modules",
		metric.WithDescription("Number of registered modules"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.modules gauge: %w", err)
	}

	return &Metrics{
		resolveTotal:    resolveTotal,
		produceDuration: produceDuration,
		registrations:   registrations,
		modules:         modules,
	}, nil
}

// RecordResolve records one resolution and its outcome.
func (m *Metrics) RecordResolve(ctx context.Context, module, service, outcome string) {
	if m == nil {
		return
	}
	m.resolveTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("module", module),
		attribute.String("service", service),
		attribute.String("outcome", outcome),
	))
}

// RecordProduce records the duration of one producer call.
func (m *Metrics) RecordProduce(ctx context.Context, module, service string, duration time.Duration) {
	if m == nil {
		return
	}
	m.produceDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("module", module),
		attribute.String("service", service),
	))
}

// RecordRegistration adjusts the registered service count of a module.
func (m *Metrics) RecordRegistration(ctx context.Context, module string, delta int64) {
	if m == nil {
		return
	}
	m.registrations.Add(ctx, delta, metric.WithAttributes(attribute.String("module", module)))
}

// RecordModule adjusts the registered module count.
func (m *Metrics) RecordModule(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.modules.Add(ctx, delta)
}
