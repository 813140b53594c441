package tracing

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// spanName is used for every client span.
const spanName = "fetcher.request"

var ErrNilTracer = errors.New("tracer must not be nil")

// transport is an http.RoundTripper starting a client span per request.
type transport struct {
	tracer trace.Tracer
	next   http.RoundTripper
	logFn  func() *slog.Logger
}

// NewRoundTripper returns an http.RoundTripper that traces requests with
// tracer before handing them to next. logFn lazily resolves the logger at
// request time; a nil-returning logFn disables the debug log line.
func NewRoundTripper(tracer trace.Tracer, logFn func() *slog.Logger, next http.RoundTripper) (http.RoundTripper, error) {
	if tracer == nil {
		return nil, ErrNilTracer
	}

	if next == nil {
		next = http.DefaultTransport
	}

	return &transport{tracer: tracer, next: next, logFn: logFn}, nil
}

func (t *transport) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx, span := t.tracer.Start(r.Context(), spanName, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("http.request.method", r.Method),
		attribute.String("url.full", r.URL.String()),
		attribute.String("server.address", r.URL.Host),
	)

	requestID := span.SpanContext().TraceID().String()
	if !span.SpanContext().TraceID().IsValid() {
		requestID = uuid.New().String()
	}

	cpy := r.Clone(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(cpy.Header))
	if cpy.Header.Get(RequestIDHeader) == "" {
		cpy.Header.Set(RequestIDHeader, requestID)
	}

	if t.logFn != nil {
		if logger := t.logFn(); logger != nil {
			logger.Debug("http request", "request_id", cpy.Header.Get(RequestIDHeader), "method", r.Method, "url", r.URL.String())
		}
	}

	resp, err := t.next.RoundTrip(cpy)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, resp.Status)
	}

	return resp, nil
}
