package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestSpanNameFormatter(t *testing.T) {
	req, _ := http.NewRequest("POST", "/rpc", nil)
	req.Pattern = "POST /rpc"
	assert.Equal(t, "POST /rpc", SpanNameFormatter("", req))

	req.Pattern = ""
	assert.Equal(t, "POST /rpc", SpanNameFormatter("", req))

	req, _ = http.NewRequest("GET", "/unknown", nil)
	assert.Equal(t, "GET /unknown", SpanNameFormatter("", req))
}

func TestRecordErrorAndStatus(t *testing.T) {
	span := &mockSpan{}
	err := errors.New("fail")
	assert.True(t, RecordErrorAndStatus(span, err))
	assert.Equal(t, "fail", span.lastError)
	assert.Equal(t, "fail", span.statusMsg)
	assert.Equal(t, codes.Error, span.statusCode)

	span = &mockSpan{}
	assert.False(t, RecordErrorAndStatus(span, nil))
	assert.Equal(t, "OK", span.statusMsg)
	assert.Equal(t, codes.Ok, span.statusCode)
}

type spanNamer struct{}

func (*spanNamer) open() string {
	return callerSpanName(1)
}

func TestStart(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
	)
	tracer = tp.Tracer("test-tracer")

	_, span := Start(t.Context())
	span.End()
	_, span = Start(t.Context())
	RecordErrorAndStatus(span, errors.New("boom"))
	span.End()

	spans := exporter.GetSpans()
	assert.Equal(t, 2, len(spans))
	assert.Equal(t, "telemetry::TestStart", spans[0].Name)
	assert.Equal(t, spans[0].Name, spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	if assert.Len(t, spans[1].Events, 1) {
		assert.Contains(t, spans[1].Events[0].Attributes, attribute.String("error.type", "*errors.errorString"))
	}
}

func TestCallerSpanName_Method(t *testing.T) {
	assert.Equal(t, "telemetry::spanNamer.open", (&spanNamer{}).open())
}

func TestMiddleware_SkipsHealthCheck(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /status", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	h := middleware("test-api", otelhttp.WithTracerProvider(tp))(mux)
	for _, path := range []string{"/healthz", "/status"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	spans := exporter.GetSpans()
	if assert.Len(t, spans, 1) {
		assert.Equal(t, "GET /status", spans[0].Name)
	}
}

func TestWithHttpMetricAttributes(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/cache/invalidate", nil)
	req.Pattern = "POST /cache/invalidate"

	attrs := WithHttpMetricAttributes(req)
	assert.Contains(t, attrs, attribute.String("http.route", "POST /cache/invalidate"))
	assert.Contains(t, attrs, attribute.String("http.request.method", "POST"))
}

func TestMetricViews(t *testing.T) {
	assert.Len(t, metricViews(), 2)
}

// --- Mocks ---

type mockSpan struct {
	trace.Span
	lastError  string
	statusCode codes.Code
	statusMsg  string
}

func (m *mockSpan) RecordError(err error, _ ...trace.EventOption) {
	m.lastError = err.Error()
}
func (m *mockSpan) SetStatus(code codes.Code, msg string) {
	m.statusCode = code
	m.statusMsg = msg
}
