package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("toolgateway")

	// spanNames caches the span name derived for each caller program counter.
	spanNames sync.Map
)

// untracedRoutes are polled by orchestrators and would only add noise.
var untracedRoutes = map[string]bool{
	"/healthz": true,
}

// SpanNameFormatter names HTTP server spans after the matched route pattern,
// falling back to the method and raw path for unmatched requests.
func SpanNameFormatter(_ string, r *http.Request) string {
	return getHttpRoute(r)
}

func getHttpRoute(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
}

// Start opens a span named after the calling function, e.g. "usecases::ExecuteToolImpl.Execute".
func Start(ctx context.Context, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return tracer.Start(ctx, callerSpanName(2), opts...)
}

// RecordErrorAndStatus records err on span and sets the span status.
// It returns true when err is not nil.
func RecordErrorAndStatus(span trace.Span, err error) bool {
	if err == nil {
		span.SetStatus(codes.Ok, "OK")
		return false
	}
	span.RecordError(err, trace.WithAttributes(
		attribute.String("error.type", fmt.Sprintf("%T", err)),
	))
	span.SetStatus(codes.Error, err.Error())
	return true
}

// Middleware instruments every route except the health check.
func Middleware(operation string) func(http.Handler) http.Handler {
	return middleware(operation)
}

func middleware(operation string, extra ...otelhttp.Option) func(http.Handler) http.Handler {
	opts := append([]otelhttp.Option{
		otelhttp.WithSpanNameFormatter(SpanNameFormatter),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return !untracedRoutes[r.URL.Path]
		}),
		otelhttp.WithMetricAttributesFn(WithHttpMetricAttributes),
	}, extra...)
	return otelhttp.NewMiddleware(operation, opts...)
}

func callerSpanName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	if name, ok := spanNames.Load(pc); ok {
		return name.(string)
	}

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	// "usecases.(*ExecuteToolImpl).Execute" -> "usecases::ExecuteToolImpl.Execute"
	name = strings.NewReplacer("(*", "", ")", "").Replace(name)
	name = strings.Replace(name, ".", "::", 1)

	spanNames.Store(pc, name)
	return name
}

// newTracerProvider exports spans over OTLP HTTP, sampling root spans at ratio.
func newTracerProvider(ctx context.Context, res *resource.Resource, ratio float64) (*sdktrace.TracerProvider, sdktrace.SpanExporter, error) {
	otlpExporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(otlpExporter,
			sdktrace.WithBatchTimeout(time.Second),
		),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithResource(res),
	)
	return tracerProvider, otlpExporter, nil
}
