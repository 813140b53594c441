// Package tracing provides an [http.RoundTripper] that wraps every outbound
// request in an OpenTelemetry client span and propagates the trace context
// to the server.
//
// Each request also carries an X-Request-ID header: the trace ID when the
// span is recording, otherwise a random UUID, so requests stay correlatable
// in server logs even with a no-op tracer.
//
//	rt, err := tracing.NewRoundTripper(
//		otel.Tracer("fetcher"),
//		func() *slog.Logger { return slog.Default() },
//		http.DefaultTransport,
//	)
package tracing
