package telemetry

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cleitonmarx/symbiont/depend"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.30.0"
)

// InitOpenTelemetry sets up OpenTelemetry tracing and metrics exporters when their endpoints are configured.
type InitOpenTelemetry struct {
	Logger          *log.Logger   `resolve:""`
	TracesEndpoint  string        `config:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT" default:"-"`
	MetricsEndpoint string        `config:"OTEL_EXPORTER_OTLP_METRICS_ENDPOINT" default:"-"`
	SampleRatio     float64       `config:"OTEL_TRACES_SAMPLE_RATIO" default:"1"`
	ExportInterval  time.Duration `config:"OTEL_METRIC_EXPORT_INTERVAL" default:"5s"`
	tp              *sdktrace.TracerProvider
	se              sdktrace.SpanExporter
	mp              *sdkmetric.MeterProvider
	me              sdkmetric.Exporter
}

// Initialize sets up OpenTelemetry tracing and exporting.
func (o *InitOpenTelemetry) Initialize(ctx context.Context) (context.Context, error) {
	if o.SampleRatio < 0 || o.SampleRatio > 1 {
		return ctx, fmt.Errorf("OTEL_TRACES_SAMPLE_RATIO must be within [0,1], got %v", o.SampleRatio)
	}
	otel.SetTextMapPropagator(newPropagator())

	res, err := newAppResource(ctx)
	if err != nil {
		return ctx, err
	}

	if o.TracesEndpoint != "-" {
		o.tp, o.se, err = newTracerProvider(ctx, res, o.SampleRatio)
		if err != nil {
			return ctx, err
		}
		otel.SetTracerProvider(o.tp)
		o.Logger.Printf("InitOpenTelemetry: exporting traces (sample ratio %v)", o.SampleRatio)
	}

	if o.MetricsEndpoint != "-" {
		o.mp, o.me, err = newMeterProvider(ctx, res, o.ExportInterval)
		if err != nil {
			return ctx, err
		}
		otel.SetMeterProvider(o.mp)
		o.Logger.Printf("InitOpenTelemetry: exporting metrics every %s", o.ExportInterval)
	}

	return ctx, nil
}

// Close shuts down the OpenTelemetry tracer provider and span exporter.
func (o *InitOpenTelemetry) Close() {
	if o.tp == nil && o.mp == nil {
		return
	}

	cancelCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if o.tp != nil {
		if err := o.tp.Shutdown(cancelCtx); err != nil {
			o.Logger.Printf("InitOpenTelemetry: error shutting down tracer provider: %v", err)
		}
		if err := o.se.Shutdown(cancelCtx); err != nil {
			o.Logger.Printf("InitOpenTelemetry: error shutting down span exporter: %v", err)
		}
	}
	if o.mp != nil {
		if err := o.mp.Shutdown(cancelCtx); err != nil {
			o.Logger.Printf("InitOpenTelemetry: error shutting down meter provider: %v", err)
		}
		if err := o.me.Shutdown(cancelCtx); err != nil {
			o.Logger.Printf("InitOpenTelemetry: error shutting down meter exporter: %v", err)
		}
	}
}

// InitHttpClient registers the retrying, instrumented *http.Client used to reach the backend.
type InitHttpClient struct {
	Logger       *log.Logger   `resolve:""`
	MaxAttempts  int           `config:"BACKEND_MAX_ATTEMPTS" default:"3"`
	RetryWaitMin time.Duration `config:"BACKEND_RETRY_WAIT_MIN" default:"1s"`
	RetryWaitMax time.Duration `config:"BACKEND_RETRY_WAIT_MAX" default:"8s"`
}

// Initialize builds the client from the configured retry policy.
func (i InitHttpClient) Initialize(ctx context.Context) (context.Context, error) {
	if i.MaxAttempts < 1 {
		return ctx, fmt.Errorf("BACKEND_MAX_ATTEMPTS must be at least 1, got %d", i.MaxAttempts)
	}
	client := NewRetryableHTTPClient(RetryPolicy{
		MaxAttempts: i.MaxAttempts,
		WaitMin:     i.RetryWaitMin,
		WaitMax:     i.RetryWaitMax,
	}, i.Logger)

	depend.Register(client)
	return ctx, nil
}

// newPropagator creates a new composite text map propagator.
func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

func newAppResource(ctx context.Context) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String("toolgateway"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
